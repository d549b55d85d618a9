package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/elexus/guest-registry/internal/core/domain"
	"github.com/elexus/guest-registry/internal/core/ports"
)

// GuestRepository persists guest profiles and their visit notes.
type GuestRepository struct {
	db *sql.DB
}

func NewGuestRepository(db *sql.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

// searchColumns are the free-text fields the search filter matches against.
var searchColumns = []string{"name", "alcohol", "cigarette", "cigar", "special_requests", "other_info"}

const guestColumns = `g.id, g.name, g.class,
	coalesce(g.photo_path, ''), coalesce(g.alcohol, ''), coalesce(g.cigarette, ''),
	coalesce(g.cigar, ''), coalesce(g.special_requests, ''), coalesce(g.other_info, ''),
	g.created_at, g.updated_at, coalesce(g.created_by, 0)`

// List assembles the filter from WHERE fragments with positional
// placeholders; user input only ever enters the args slice, never the
// statement text.
func (r *GuestRepository) List(ctx context.Context, filter ports.ListGuestsFilter) ([]domain.Guest, error) {
	var (
		conds []string
		args  []any
	)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		parts := make([]string, len(searchColumns))
		for i, col := range searchColumns {
			args = append(args, pattern)
			parts[i] = fmt.Sprintf("%s ilike $%d", col, len(args))
		}
		conds = append(conds, "("+strings.Join(parts, " or ")+")")
	}

	if len(filter.Classes) > 0 {
		placeholders := make([]string, len(filter.Classes))
		for i, class := range filter.Classes {
			args = append(args, class)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		conds = append(conds, "class in ("+strings.Join(placeholders, ", ")+")")
	}

	query := `select ` + guestColumns + ` from guests g`
	if len(conds) > 0 {
		query += " where " + strings.Join(conds, " and ")
	}
	query += " order by g.created_at desc, g.id desc"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	defer rows.Close()

	var guests []domain.Guest
	for rows.Next() {
		var g domain.Guest
		if err := scanGuest(rows, &g); err != nil {
			return nil, err
		}
		guests = append(guests, g)
	}
	return guests, rows.Err()
}

func (r *GuestRepository) Insert(ctx context.Context, g *domain.Guest) (*domain.Guest, error) {
	row := r.db.QueryRowContext(ctx, `
		insert into guests (name, class, photo_path, alcohol, cigarette, cigar, special_requests, other_info, created_by)
		values ($1, $2, nullif($3, ''), $4, $5, $6, $7, $8, nullif($9, 0))
		returning id, created_at, updated_at
	`, g.Name, g.Class, g.PhotoPath, g.Alcohol, g.Cigarette, g.Cigar, g.SpecialRequests, g.OtherInfo, g.CreatedBy)

	created := *g
	if err := row.Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt); err != nil {
		return nil, fmt.Errorf("insert guest: %w", err)
	}
	return &created, nil
}

func (r *GuestRepository) FindByID(ctx context.Context, id int) (*domain.Guest, error) {
	row := r.db.QueryRowContext(ctx, `
		select `+guestColumns+`, coalesce(a.full_name, '')
		from guests g
		left join accounts a on a.id = g.created_by
		where g.id = $1
	`, id)

	var g domain.Guest
	err := row.Scan(&g.ID, &g.Name, &g.Class, &g.PhotoPath, &g.Alcohol, &g.Cigarette,
		&g.Cigar, &g.SpecialRequests, &g.OtherInfo, &g.CreatedAt, &g.UpdatedAt, &g.CreatedBy,
		&g.CreatedByName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrGuestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find guest: %w", err)
	}
	return &g, nil
}

// Update overwrites all editable fields. The photo_path column is written
// only when replacePhoto is true, matching the create/update contract where
// an omitted photo preserves the existing reference.
func (r *GuestRepository) Update(ctx context.Context, g *domain.Guest, replacePhoto bool) (*domain.Guest, error) {
	var row *sql.Row
	if replacePhoto {
		row = r.db.QueryRowContext(ctx, `
			update guests
			set name = $1, class = $2, alcohol = $3, cigarette = $4, cigar = $5,
				special_requests = $6, other_info = $7, photo_path = nullif($8, ''), updated_at = now()
			where id = $9
			returning id, created_at, updated_at, coalesce(photo_path, ''), coalesce(created_by, 0)
		`, g.Name, g.Class, g.Alcohol, g.Cigarette, g.Cigar, g.SpecialRequests, g.OtherInfo, g.PhotoPath, g.ID)
	} else {
		row = r.db.QueryRowContext(ctx, `
			update guests
			set name = $1, class = $2, alcohol = $3, cigarette = $4, cigar = $5,
				special_requests = $6, other_info = $7, updated_at = now()
			where id = $8
			returning id, created_at, updated_at, coalesce(photo_path, ''), coalesce(created_by, 0)
		`, g.Name, g.Class, g.Alcohol, g.Cigarette, g.Cigar, g.SpecialRequests, g.OtherInfo, g.ID)
	}

	updated := *g
	err := row.Scan(&updated.ID, &updated.CreatedAt, &updated.UpdatedAt, &updated.PhotoPath, &updated.CreatedBy)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrGuestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update guest: %w", err)
	}
	return &updated, nil
}

func (r *GuestRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `delete from guests where id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete guest: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrGuestNotFound
	}
	return nil
}

func (r *GuestRepository) InsertVisit(ctx context.Context, v *domain.Visit) (*domain.Visit, error) {
	row := r.db.QueryRowContext(ctx, `
		insert into guest_visits (guest_id, notes, created_by)
		values ($1, $2, nullif($3, 0))
		returning id, visit_date
	`, v.GuestID, v.Notes, v.CreatedBy)

	created := *v
	if err := row.Scan(&created.ID, &created.VisitDate); err != nil {
		return nil, fmt.Errorf("insert visit: %w", err)
	}
	return &created, nil
}

func (r *GuestRepository) ListVisits(ctx context.Context, guestID int) ([]domain.Visit, error) {
	rows, err := r.db.QueryContext(ctx, `
		select v.id, v.guest_id, v.visit_date, coalesce(v.notes, ''), coalesce(v.created_by, 0), coalesce(a.full_name, '')
		from guest_visits v
		left join accounts a on a.id = v.created_by
		where v.guest_id = $1
		order by v.visit_date desc, v.id desc
	`, guestID)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()

	var visits []domain.Visit
	for rows.Next() {
		var v domain.Visit
		if err := rows.Scan(&v.ID, &v.GuestID, &v.VisitDate, &v.Notes, &v.CreatedBy, &v.CreatedByName); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

func (r *GuestRepository) Stats(ctx context.Context) (*domain.Stats, error) {
	var s domain.Stats

	err := r.db.QueryRowContext(ctx, `
		select
			(select count(*) from guests),
			(select count(*) from guests where class = 'VIP'),
			(select count(*) from guest_visits),
			(select count(*) from guest_visits where visit_date >= now() - interval '7 days')
	`).Scan(&s.TotalGuests, &s.VIPGuests, &s.TotalVisits, &s.RecentVisits)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`select class, count(*) from guests group by class order by count(*) desc, class asc`)
	if err != nil {
		return nil, fmt.Errorf("stats classes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cc domain.ClassCount
		if err := rows.Scan(&cc.Class, &cc.Count); err != nil {
			return nil, fmt.Errorf("scan class count: %w", err)
		}
		s.Classes = append(s.Classes, cc)
	}
	return &s, rows.Err()
}

// scanGuest scans a list row (no creator join).
func scanGuest(rows *sql.Rows, g *domain.Guest) error {
	if err := rows.Scan(&g.ID, &g.Name, &g.Class, &g.PhotoPath, &g.Alcohol, &g.Cigarette,
		&g.Cigar, &g.SpecialRequests, &g.OtherInfo, &g.CreatedAt, &g.UpdatedAt, &g.CreatedBy); err != nil {
		return fmt.Errorf("scan guest: %w", err)
	}
	return nil
}
