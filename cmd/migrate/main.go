// Command migrate manages the guest registry database schema and bootstrap
// data: applying/rolling back migrations, loading seed files, and creating
// staff accounts with a bcrypt-hashed password.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/crypto/bcrypt"

	"github.com/elexus/guest-registry/internal/core/domain"
	"github.com/elexus/guest-registry/internal/infrastructure/db/postgres"
	"github.com/elexus/guest-registry/internal/migrate"
)

func main() {
	log.SetFlags(0)
	var (
		dsn            = flag.String("dsn", os.Getenv("DATABASE_URL"), "PostgreSQL DSN")
		migrationsPath = flag.String("migrations", "migrations", "Path to SQL migrations")
		seedsPath      = flag.String("seeds", "seeds", "Path to SQL seeds")

		username = flag.String("username", "", "Username for create-account")
		password = flag.String("password", "", "Password for create-account")
		fullName = flag.String("full-name", "", "Display name for create-account")
		role     = flag.String("role", domain.RoleStaff, "Role for create-account (admin or staff)")
	)
	flag.Parse()

	if *dsn == "" {
		log.Fatal("missing DSN: provide via -dsn or DATABASE_URL")
	}
	if len(flag.Args()) == 0 {
		log.Fatal("usage: migrate [up|down|status|seed|create-account]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	mgr := migrate.NewManager(db, *migrationsPath, *seedsPath)

	switch flag.Arg(0) {
	case "up":
		err = mgr.Up(ctx)
	case "down":
		err = mgr.Down(ctx)
	case "seed":
		err = mgr.Seed(ctx)
	case "status":
		var history []string
		history, err = mgr.Status(ctx)
		if err == nil {
			for _, item := range history {
				fmt.Println(item)
			}
		}
	case "create-account":
		err = createAccount(ctx, db, *username, *password, *fullName, *role)
	default:
		log.Fatalf("unknown command %q", flag.Arg(0))
	}
	if err != nil {
		log.Fatalf("migrate %s: %v", flag.Arg(0), err)
	}
}

func createAccount(ctx context.Context, db *sql.DB, username, password, fullName, role string) error {
	if username == "" || password == "" {
		return fmt.Errorf("create-account requires -username and -password")
	}
	if role != domain.RoleAdmin && role != domain.RoleStaff {
		return fmt.Errorf("role must be %q or %q", domain.RoleAdmin, domain.RoleStaff)
	}
	if fullName == "" {
		fullName = username
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	repo := postgres.NewAuthRepository(db)
	account, err := repo.Create(ctx, &domain.Account{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         role,
	})
	if err != nil {
		return err
	}

	fmt.Printf("created account %d (%s, role %s)\n", account.ID, account.Username, account.Role)
	return nil
}
