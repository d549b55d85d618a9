package domain

import "time"

// Visit is a timestamped free-text note attached to a guest. Visits are
// immutable once recorded and are removed only when their guest is deleted.
type Visit struct {
	ID            int       `json:"id"`
	GuestID       int       `json:"guest_id"`
	VisitDate     time.Time `json:"visit_date"`
	Notes         string    `json:"notes"`
	CreatedBy     int       `json:"created_by,omitempty"`
	CreatedByName string    `json:"created_by_name,omitempty"`
}

// ClassCount is one bucket of the per-class guest distribution.
type ClassCount struct {
	Class GuestClass `json:"class"`
	Count int        `json:"count"`
}

// Stats aggregates registry-wide counters for the dashboard.
type Stats struct {
	TotalGuests  int          `json:"total_guests"`
	VIPGuests    int          `json:"vip_guests"`
	TotalVisits  int          `json:"total_visits"`
	RecentVisits int          `json:"recent_visits"`
	Classes      []ClassCount `json:"class_distribution"`
}
