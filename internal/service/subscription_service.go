package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/swiffapp/swiff/internal/calculator"
	"github.com/swiffapp/swiff/internal/models"
	"github.com/swiffapp/swiff/internal/money"
	"github.com/swiffapp/swiff/internal/storage"
	"github.com/swiffapp/swiff/pkg/api"
	"github.com/swiffapp/swiff/pkg/api/apiconnect"
)

var _ apiconnect.SubscriptionServiceHandler = (*SubscriptionService)(nil)

// defaultRenewalDays is the GetUpcomingRenewals window when none is given.
const defaultRenewalDays = 7

// SubscriptionService implements the Connect SubscriptionService. Each
// subscription belongs to one user and is visible only to them.
type SubscriptionService struct {
	store    storage.Store
	now      func() time.Time
	currency string
}

// NewSubscriptionService creates a new SubscriptionService with the given storage backend.
func NewSubscriptionService(store storage.Store) *SubscriptionService {
	return &SubscriptionService{store: store, now: time.Now, currency: money.DefaultCurrency}
}

// WithDefaultCurrency sets the currency used for subscriptions that name none.
func (s *SubscriptionService) WithDefaultCurrency(code string) *SubscriptionService {
	s.currency = money.NormalizeCurrency(code)
	return s
}

func (s *SubscriptionService) applyInput(sub *models.Subscription, in api.SubscriptionInput) error {
	name := strings.TrimSpace(in.ServiceName)
	if name == "" {
		return invalidArgument("service_name is required")
	}
	if in.Amount <= 0 {
		return invalidArgument("amount must be greater than zero")
	}
	cycle, err := calculator.ParseBillingCycle(in.BillingCycle)
	if err != nil {
		return invalidArgument("%v", err)
	}
	next, err := parseDate("next_billing_date", in.NextBillingDate)
	if err != nil {
		return err
	}
	currency := currencyOr(in.Currency, s.currency)
	if !money.IsSupported(currency) {
		return invalidArgument("unsupported currency %q", currency)
	}

	sub.ServiceName = name
	sub.Amount = in.Amount
	sub.Currency = currency
	sub.BillingCycle = string(cycle)
	sub.NextBillingDate = next
	sub.Category = strings.TrimSpace(in.Category)
	sub.AutoRenew = in.AutoRenew == nil || *in.AutoRenew
	sub.Notes = in.Notes
	sub.IconURL = strings.TrimSpace(in.IconURL)
	return nil
}

// ownSubscription loads a subscription owned by the caller. Other users get
// NotFound.
func (s *SubscriptionService) ownSubscription(ctx context.Context, id string) (*models.Subscription, error) {
	caller, err := callerEmail(ctx)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, invalidArgument("id is required")
	}
	sub, err := s.store.GetSubscription(ctx, id)
	if err != nil {
		return nil, storeError("failed to load subscription", err, "subscription_id", id)
	}
	if sub.UserEmail != caller {
		slog.Warn("Subscription access denied", "subscription_id", id, "email", caller)
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("subscription %s: %w", id, storage.ErrNotFound))
	}
	return sub, nil
}

func (s *SubscriptionService) respond(sub *models.Subscription) *connect.Response[api.SubscriptionResponse] {
	return connect.NewResponse(&api.SubscriptionResponse{Subscription: toAPISubscription(sub, s.now())})
}

// CreateSubscription stores a new active subscription for the caller.
func (s *SubscriptionService) CreateSubscription(ctx context.Context, req *connect.Request[api.CreateSubscriptionRequest]) (*connect.Response[api.SubscriptionResponse], error) {
	caller, err := callerEmail(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateSubscription request received", "service_name", req.Msg.ServiceName, "billing_cycle", req.Msg.BillingCycle)

	sub := &models.Subscription{UserEmail: caller, Status: models.SubscriptionActive}
	if err := s.applyInput(sub, req.Msg.SubscriptionInput); err != nil {
		return nil, err
	}
	if err := s.store.CreateSubscription(ctx, sub); err != nil {
		return nil, storeError("CreateSubscription failed", err)
	}

	slog.Info("Subscription created", "subscription_id", sub.ID)
	return s.respond(sub), nil
}

// GetSubscription returns one of the caller's subscriptions.
func (s *SubscriptionService) GetSubscription(ctx context.Context, req *connect.Request[api.GetSubscriptionRequest]) (*connect.Response[api.SubscriptionResponse], error) {
	sub, err := s.ownSubscription(ctx, req.Msg.ID)
	if err != nil {
		return nil, err
	}
	return s.respond(sub), nil
}

// ListSubscriptions lists the caller's subscriptions with the cost totals of
// the active ones among them.
func (s *SubscriptionService) ListSubscriptions(ctx context.Context, req *connect.Request[api.ListSubscriptionsRequest]) (*connect.Response[api.ListSubscriptionsResponse], error) {
	caller, err := callerEmail(ctx)
	if err != nil {
		return nil, err
	}

	filter := storage.SubscriptionFilter{
		Category:   strings.TrimSpace(req.Msg.Category),
		Descending: req.Msg.Descending,
	}
	switch status := strings.ToLower(strings.TrimSpace(req.Msg.Status)); status {
	case "", "all":
	case models.SubscriptionActive, models.SubscriptionCancelled:
		filter.Status = status
	default:
		return nil, invalidArgument("unknown status %q", req.Msg.Status)
	}
	switch sortBy := strings.TrimSpace(req.Msg.SortBy); sortBy {
	case "", storage.SortByNextBillingDate, storage.SortByAmount, storage.SortByServiceName:
		filter.SortBy = sortBy
	default:
		return nil, invalidArgument("unknown sort_by %q", req.Msg.SortBy)
	}

	subs, err := s.store.ListSubscriptions(ctx, caller, filter)
	if err != nil {
		return nil, storeError("ListSubscriptions failed", err, "email", caller)
	}

	now := s.now()
	out := make([]api.Subscription, len(subs))
	for i, sub := range subs {
		out[i] = toAPISubscription(sub, now)
	}
	return connect.NewResponse(&api.ListSubscriptionsResponse{
		Subscriptions: out,
		Totals:        subscriptionTotals(subs),
	}), nil
}

// UpdateSubscription replaces a subscription's editable fields. Its status
// is left alone.
func (s *SubscriptionService) UpdateSubscription(ctx context.Context, req *connect.Request[api.UpdateSubscriptionRequest]) (*connect.Response[api.SubscriptionResponse], error) {
	sub, err := s.ownSubscription(ctx, req.Msg.ID)
	if err != nil {
		return nil, err
	}
	if err := s.applyInput(sub, req.Msg.SubscriptionInput); err != nil {
		return nil, err
	}
	if !sub.IsActive() {
		sub.AutoRenew = false
	}

	if err := s.store.UpdateSubscription(ctx, sub); err != nil {
		return nil, storeError("UpdateSubscription failed", err, "subscription_id", sub.ID)
	}

	slog.Info("Subscription updated", "subscription_id", sub.ID)
	return s.respond(sub), nil
}

// CancelSubscription stops an active subscription but keeps it in history.
func (s *SubscriptionService) CancelSubscription(ctx context.Context, req *connect.Request[api.CancelSubscriptionRequest]) (*connect.Response[api.SubscriptionResponse], error) {
	sub, err := s.ownSubscription(ctx, req.Msg.ID)
	if err != nil {
		return nil, err
	}
	if !sub.IsActive() {
		return nil, connect.NewError(connect.CodeFailedPrecondition, fmt.Errorf("subscription %s is already cancelled", sub.ID))
	}

	sub.Status = models.SubscriptionCancelled
	sub.AutoRenew = false
	sub.CancelledAt = s.now().Unix()
	if err := s.store.UpdateSubscription(ctx, sub); err != nil {
		return nil, storeError("CancelSubscription failed", err, "subscription_id", sub.ID)
	}

	slog.Info("Subscription cancelled", "subscription_id", sub.ID)
	return s.respond(sub), nil
}

// ReactivateSubscription restarts a cancelled subscription from a new next
// billing date.
func (s *SubscriptionService) ReactivateSubscription(ctx context.Context, req *connect.Request[api.ReactivateSubscriptionRequest]) (*connect.Response[api.SubscriptionResponse], error) {
	sub, err := s.ownSubscription(ctx, req.Msg.ID)
	if err != nil {
		return nil, err
	}
	if sub.IsActive() {
		return nil, connect.NewError(connect.CodeFailedPrecondition, fmt.Errorf("subscription %s is already active", sub.ID))
	}
	next, err := parseDate("next_billing_date", req.Msg.NextBillingDate)
	if err != nil {
		return nil, err
	}

	sub.Status = models.SubscriptionActive
	sub.AutoRenew = true
	sub.NextBillingDate = next
	sub.CancelledAt = 0
	if err := s.store.UpdateSubscription(ctx, sub); err != nil {
		return nil, storeError("ReactivateSubscription failed", err, "subscription_id", sub.ID)
	}

	slog.Info("Subscription reactivated", "subscription_id", sub.ID)
	return s.respond(sub), nil
}

// DeleteSubscription removes a subscription and its history.
func (s *SubscriptionService) DeleteSubscription(ctx context.Context, req *connect.Request[api.DeleteSubscriptionRequest]) (*connect.Response[api.DeleteSubscriptionResponse], error) {
	sub, err := s.ownSubscription(ctx, req.Msg.ID)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteSubscription(ctx, sub.ID); err != nil {
		return nil, storeError("DeleteSubscription failed", err, "subscription_id", sub.ID)
	}

	slog.Info("Subscription deleted", "subscription_id", sub.ID)
	return connect.NewResponse(&api.DeleteSubscriptionResponse{}), nil
}

// GetUpcomingRenewals lists active subscriptions renewing between today and
// Days days from now, soonest first.
func (s *SubscriptionService) GetUpcomingRenewals(ctx context.Context, req *connect.Request[api.GetUpcomingRenewalsRequest]) (*connect.Response[api.GetUpcomingRenewalsResponse], error) {
	caller, err := callerEmail(ctx)
	if err != nil {
		return nil, err
	}
	days := req.Msg.Days
	switch {
	case days < 0:
		return nil, invalidArgument("days must not be negative")
	case days == 0:
		days = defaultRenewalDays
	}

	now := s.now()
	today := startOfDay(now)
	subs, err := s.store.ListSubscriptions(ctx, caller, storage.SubscriptionFilter{
		Status:     models.SubscriptionActive,
		RenewsFrom: today,
		RenewsTo:   today.AddDate(0, 0, days),
	})
	if err != nil {
		return nil, storeError("GetUpcomingRenewals failed", err, "email", caller)
	}

	out := make([]api.Subscription, len(subs))
	for i, sub := range subs {
		out[i] = toAPISubscription(sub, now)
	}
	return connect.NewResponse(&api.GetUpcomingRenewalsResponse{Subscriptions: out}), nil
}

// GetSubscriptionCosts totals what the caller's active subscriptions cost per
// month and per year.
func (s *SubscriptionService) GetSubscriptionCosts(ctx context.Context, req *connect.Request[api.GetSubscriptionCostsRequest]) (*connect.Response[api.GetSubscriptionCostsResponse], error) {
	caller, err := callerEmail(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := s.store.ListSubscriptions(ctx, caller, storage.SubscriptionFilter{Status: models.SubscriptionActive})
	if err != nil {
		return nil, storeError("GetSubscriptionCosts failed", err, "email", caller)
	}
	return connect.NewResponse(&api.GetSubscriptionCostsResponse{Totals: subscriptionTotals(subs)}), nil
}

func subscriptionTotals(subs []*models.Subscription) api.SubscriptionCosts {
	costs := make([]calculator.SubscriptionCost, len(subs))
	for i, sub := range subs {
		costs[i] = calculator.SubscriptionCost{
			Amount: sub.Amount,
			Cycle:  calculator.BillingCycle(sub.BillingCycle),
			Active: sub.IsActive(),
		}
	}
	t := calculator.TotalCosts(costs)
	return api.SubscriptionCosts{Monthly: t.Monthly, Yearly: t.Yearly, Count: t.Count}
}
