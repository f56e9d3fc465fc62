package models

import (
	"time"

	"github.com/swiffapp/swiff/internal/money"
)

// Bill statuses derived from the due date and paid flag.
const (
	StatusPaid     = "paid"
	StatusOverdue  = "overdue"
	StatusDueSoon  = "due_soon"
	StatusUpcoming = "upcoming"
)

// dueSoonDays is how close the due date must be for a bill to be "due soon".
const dueSoonDays = 3

// Bill is an expense, optionally split among participants.
type Bill struct {
	// ID is the unique identifier for the bill (UUID format).
	ID string

	Name     string
	Amount   money.Money
	Currency string
	DueDate  time.Time
	Category string
	Notes    string

	// CreatedBy is the email of the user who created (and paid) the bill.
	CreatedBy string

	// GroupID is set when the bill belongs to a group.
	GroupID string

	Paid   bool
	PaidAt int64

	// SplitMethod is empty for bills that are not split.
	SplitMethod string

	// Participants holds the computed share of everyone on a split bill,
	// in the order they were entered.
	Participants []BillParticipant

	CreatedAt int64
	UpdatedAt int64
}

// IsSplit reports whether the bill is shared with participants.
func (b *Bill) IsSplit() bool {
	return b.SplitMethod != "" && len(b.Participants) > 0
}

// HasParticipant reports whether email has a share of the bill.
func (b *Bill) HasParticipant(email string) bool {
	for _, p := range b.Participants {
		if p.Email == email {
			return true
		}
	}
	return false
}

// Status classifies the bill relative to now.
func (b *Bill) Status(now time.Time) string {
	if b.Paid {
		return StatusPaid
	}
	days := DaysUntilDue(b.DueDate, now)
	switch {
	case days < 0:
		return StatusOverdue
	case days <= dueSoonDays:
		return StatusDueSoon
	default:
		return StatusUpcoming
	}
}

// DaysUntilDue returns the whole days from now until due, rounded up.
func DaysUntilDue(due, now time.Time) int {
	d := due.Sub(now)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// BillParticipant is one person's share of a split bill.
type BillParticipant struct {
	BillID string
	Email  string
	Name   string

	// Share is the amount this participant owes for the bill.
	Share money.Money

	// Percentage is set for percentage splits (hundredths of a percent).
	Percentage money.Percent

	Paid       bool
	PaidAmount money.Money
}
