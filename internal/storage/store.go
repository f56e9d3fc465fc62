// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/swiffapp/swiff/internal/models"
)

// ErrNotFound is returned (wrapped) when a record does not exist.
var ErrNotFound = errors.New("not found")

// BillFilter narrows ListBills results.
type BillFilter struct {
	// Paid, when non-nil, keeps only bills with that paid flag.
	Paid *bool
	// Category, when non-empty, keeps only bills in that category.
	Category string
	// NameContains, when non-empty, keeps bills whose name contains it,
	// ignoring ASCII case.
	NameContains string
	// DueFrom and DueTo, when non-zero, bound the due date inclusively.
	DueFrom time.Time
	DueTo   time.Time
}

// Subscription sort keys for SubscriptionFilter.SortBy.
const (
	SortByNextBillingDate = "next_billing_date"
	SortByAmount          = "amount"
	SortByServiceName     = "service_name"
)

// SubscriptionFilter narrows ListSubscriptions results.
type SubscriptionFilter struct {
	// Status, when non-empty, keeps only subscriptions with that status.
	Status   string
	Category string
	// RenewsFrom and RenewsTo, when non-zero, bound the next billing date
	// inclusively.
	RenewsFrom time.Time
	RenewsTo   time.Time
	// SortBy is one of the SortBy constants; empty means next billing date.
	SortBy     string
	Descending bool
}

// ShareRow is a participant's share exactly as persisted. Share is NaN when
// the stored value is NULL.
type ShareRow struct {
	Email string
	Name  string
	Share float64
}

// ParticipationRow is one of a user's participant rows joined to its bill.
// Bill holds the header only and is nil if the bill no longer exists.
type ParticipationRow struct {
	Email string
	Share float64
	Bill  *models.Bill
}

// LedgerRow is a split bill with all of its participant rows as persisted.
type LedgerRow struct {
	Bill   models.Bill
	Shares []ShareRow
}

// Store defines the interface for storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	UserStore

	// CreateBill persists a new bill with its participants.
	// The ID and timestamps are populated by the store when empty.
	CreateBill(ctx context.Context, bill *models.Bill) error

	// GetBill retrieves a bill and its participants.
	GetBill(ctx context.Context, billID string) (*models.Bill, error)

	// UpdateBill replaces a bill's fields and participants.
	UpdateBill(ctx context.Context, bill *models.Bill) error

	// SetBillPaid marks a bill paid (with paidAt) or unpaid.
	SetBillPaid(ctx context.Context, billID string, paid bool, paidAt int64) error

	// DeleteBill removes a bill and its participants.
	DeleteBill(ctx context.Context, billID string) error

	// ListBills returns the bills created by email, ordered by due date.
	ListBills(ctx context.Context, createdBy string, filter BillFilter) ([]*models.Bill, error)

	// ListBillsByGroup returns the bills of a group, with participants.
	ListBillsByGroup(ctx context.Context, groupID string) ([]*models.Bill, error)

	// ListParticipations returns every participant row for email with its bill.
	ListParticipations(ctx context.Context, email string) ([]ParticipationRow, error)

	// ListCreatedSplitBills returns the split bills created by email.
	ListCreatedSplitBills(ctx context.Context, email string) ([]LedgerRow, error)

	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	// ListGroupsForMember returns the groups that have email as a member.
	ListGroupsForMember(ctx context.Context, email string) ([]*models.Group, error)
	AddGroupMembers(ctx context.Context, groupID string, members []string) error
	// UpdateGroup saves a group's name and description.
	UpdateGroup(ctx context.Context, group *models.Group) error
	// DeleteGroup removes a group. Its bills and settlements lose their group.
	DeleteGroup(ctx context.Context, groupID string) error
	RemoveGroupMember(ctx context.Context, groupID, email string) error

	// CreateSubscription persists a new subscription, filling ID, timestamps
	// and status when empty.
	CreateSubscription(ctx context.Context, sub *models.Subscription) error
	GetSubscription(ctx context.Context, id string) (*models.Subscription, error)
	// UpdateSubscription replaces every stored field of sub.
	UpdateSubscription(ctx context.Context, sub *models.Subscription) error
	DeleteSubscription(ctx context.Context, id string) error
	// ListSubscriptions returns the subscriptions owned by email.
	ListSubscriptions(ctx context.Context, email string, filter SubscriptionFilter) ([]*models.Subscription, error)

	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	// ListSettlementsForUser returns settlements where email paid or was paid, newest first.
	ListSettlementsForUser(ctx context.Context, email string) ([]*models.Settlement, error)
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// Close releases any resources held by the store.
	Close() error
}

// UserStore is the user persistence needed by authentication.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	// GetUserByEmail returns ErrNotFound (wrapped) when no user has email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	// GetUsersByEmails returns the known users among emails, keyed by email.
	GetUsersByEmails(ctx context.Context, emails []string) (map[string]*models.User, error)
}
