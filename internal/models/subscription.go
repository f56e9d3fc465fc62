package models

import (
	"time"

	"github.com/swiffapp/swiff/internal/money"
)

// Subscription statuses.
const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
)

// Subscription is a recurring personal charge such as a streaming service.
// Unlike a Bill it is never split.
type Subscription struct {
	// ID is the unique identifier for the subscription (UUID format).
	ID string

	// UserEmail is the owner.
	UserEmail string

	ServiceName string
	Amount      money.Money
	Currency    string

	// BillingCycle is one of weekly, monthly, quarterly or yearly.
	BillingCycle    string
	NextBillingDate time.Time

	Category  string
	AutoRenew bool
	Notes     string
	IconURL   string

	Status string

	CreatedAt   int64
	UpdatedAt   int64
	CancelledAt int64
}

// IsActive reports whether the subscription is still being charged.
func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionActive
}
