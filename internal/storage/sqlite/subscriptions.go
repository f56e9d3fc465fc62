package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/swiffapp/swiff/internal/models"
	"github.com/swiffapp/swiff/internal/money"
	"github.com/swiffapp/swiff/internal/storage"
)

const subscriptionColumns = `id, user_email, service_name, amount, currency, billing_cycle,
	next_billing_date, category, auto_renew, notes, icon_url, status,
	created_at, updated_at, cancelled_at`

// subscriptionOrder maps a sort key to its ORDER BY column.
var subscriptionOrder = map[string]string{
	"":                            "next_billing_date",
	storage.SortByNextBillingDate: "next_billing_date",
	storage.SortByAmount:          "amount",
	storage.SortByServiceName:     "service_name COLLATE NOCASE",
}

// CreateSubscription persists a new subscription.
func (s *SQLiteStore) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	if sub.CreatedAt == 0 {
		sub.CreatedAt = time.Now().Unix()
	}
	if sub.UpdatedAt == 0 {
		sub.UpdatedAt = sub.CreatedAt
	}
	if sub.Currency == "" {
		sub.Currency = money.DefaultCurrency
	}
	if sub.Status == "" {
		sub.Status = models.SubscriptionActive
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO subscriptions (`+subscriptionColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.UserEmail, sub.ServiceName, sub.Amount.Float64(), sub.Currency, sub.BillingCycle,
		sub.NextBillingDate.Unix(), sub.Category, sub.AutoRenew, sub.Notes, sub.IconURL, sub.Status,
		sub.CreatedAt, sub.UpdatedAt, sub.CancelledAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert subscription: %w", err)
	}
	return nil
}

// GetSubscription retrieves a subscription by ID.
func (s *SQLiteStore) GetSubscription(ctx context.Context, id string) (*models.Subscription, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+subscriptionColumns+` FROM subscriptions WHERE id = ?`, id)
	sub, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("subscription %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return sub, nil
}

// UpdateSubscription saves every field of sub and bumps UpdatedAt.
func (s *SQLiteStore) UpdateSubscription(ctx context.Context, sub *models.Subscription) error {
	sub.UpdatedAt = time.Now().Unix()
	res, err := s.db.ExecContext(ctx,
		`UPDATE subscriptions SET service_name = ?, amount = ?, currency = ?, billing_cycle = ?,
			next_billing_date = ?, category = ?, auto_renew = ?, notes = ?, icon_url = ?,
			status = ?, updated_at = ?, cancelled_at = ?
		 WHERE id = ?`,
		sub.ServiceName, sub.Amount.Float64(), sub.Currency, sub.BillingCycle,
		sub.NextBillingDate.Unix(), sub.Category, sub.AutoRenew, sub.Notes, sub.IconURL,
		sub.Status, sub.UpdatedAt, sub.CancelledAt, sub.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update subscription: %w", err)
	}
	return requireAffected(res, "subscription", sub.ID)
}

// DeleteSubscription removes a subscription for good.
func (s *SQLiteStore) DeleteSubscription(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM subscriptions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return requireAffected(res, "subscription", id)
}

// ListSubscriptions retrieves the subscriptions owned by email.
func (s *SQLiteStore) ListSubscriptions(ctx context.Context, email string, filter storage.SubscriptionFilter) ([]*models.Subscription, error) {
	order, ok := subscriptionOrder[filter.SortBy]
	if !ok {
		return nil, fmt.Errorf("unknown subscription sort key %q", filter.SortBy)
	}
	dir := "ASC"
	if filter.Descending {
		dir = "DESC"
	}

	where := []string{"user_email = ?"}
	args := []any{email}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Category != "" {
		where = append(where, "category = ?")
		args = append(args, filter.Category)
	}
	if !filter.RenewsFrom.IsZero() {
		where = append(where, "next_billing_date >= ?")
		args = append(args, filter.RenewsFrom.Unix())
	}
	if !filter.RenewsTo.IsZero() {
		where = append(where, "next_billing_date <= ?")
		args = append(args, filter.RenewsTo.Unix())
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+subscriptionColumns+` FROM subscriptions
		 WHERE `+strings.Join(where, " AND ")+`
		 ORDER BY `+order+` `+dir+`, created_at ASC, id ASC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []*models.Subscription
	for rows.Next() {
		sub, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscriptions: %w", err)
	}
	return subs, nil
}

func scanSubscription(row rowScanner) (*models.Subscription, error) {
	var (
		sub    models.Subscription
		amount float64
		next   int64
	)
	err := row.Scan(
		&sub.ID, &sub.UserEmail, &sub.ServiceName, &amount, &sub.Currency, &sub.BillingCycle,
		&next, &sub.Category, &sub.AutoRenew, &sub.Notes, &sub.IconURL, &sub.Status,
		&sub.CreatedAt, &sub.UpdatedAt, &sub.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	if sub.Amount, err = readMoney(amount, "amount", sub.ID); err != nil {
		return nil, err
	}
	sub.NextBillingDate = time.Unix(next, 0).UTC()
	return &sub, nil
}
