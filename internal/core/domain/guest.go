package domain

import (
	"errors"
	"time"
)

// GuestClass is the enumerated membership tier of a guest. It controls no
// behavior beyond filtering and display.
type GuestClass string

const (
	ClassVIP   GuestClass = "VIP"
	ClassA     GuestClass = "A"
	ClassB     GuestClass = "B"
	ClassC     GuestClass = "C"
	ClassD     GuestClass = "D"
	ClassLokal GuestClass = "Lokal"
)

// GuestClasses lists every recognised class, in display order.
var GuestClasses = []GuestClass{ClassVIP, ClassA, ClassB, ClassC, ClassD, ClassLokal}

var ErrGuestNotFound = errors.New("guest not found")

// ValidationError reports a rejected guest payload. The reason is safe to
// return to the client verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Valid reports whether c is one of the recognised membership classes.
func (c GuestClass) Valid() bool {
	for _, gc := range GuestClasses {
		if c == gc {
			return true
		}
	}
	return false
}

// Guest is the core profile record.
type Guest struct {
	ID              int        `json:"id"`
	Name            string     `json:"name"`
	Class           GuestClass `json:"class"`
	PhotoPath       string     `json:"photo_path,omitempty"`
	Alcohol         string     `json:"alcohol,omitempty"`
	Cigarette       string     `json:"cigarette,omitempty"`
	Cigar           string     `json:"cigar,omitempty"`
	SpecialRequests string     `json:"special_requests,omitempty"`
	OtherInfo       string     `json:"other_info,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	CreatedBy       int        `json:"created_by,omitempty"`
	CreatedByName   string     `json:"created_by_name,omitempty"`
}
