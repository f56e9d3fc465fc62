package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/swiffapp/swiff/internal/auth"
	"github.com/swiffapp/swiff/internal/calculator"
	"github.com/swiffapp/swiff/internal/middleware"
	"github.com/swiffapp/swiff/internal/models"
	"github.com/swiffapp/swiff/internal/money"
	"github.com/swiffapp/swiff/internal/storage"
	"github.com/swiffapp/swiff/pkg/api"
)

// Metadata keys set on InvalidArgument errors from split validation.
const (
	RemainingAmountKey  = "Swiff-Remaining-Amount"
	RemainingPercentKey = "Swiff-Remaining-Percent"
)

// callerEmail returns the authenticated email from ctx.
func callerEmail(ctx context.Context) (string, error) {
	email := middleware.GetEmail(ctx)
	if email == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return email, nil
}

// storeError maps a storage error onto a Connect error, logging server faults.
func storeError(msg string, err error, args ...any) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	slog.Error(msg, append(args, "error", err)...)
	return connect.NewError(connect.CodeInternal, err)
}

func invalidArgument(format string, args ...any) error {
	return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf(format, args...))
}

func permissionDenied(format string, args ...any) error {
	return connect.NewError(connect.CodePermissionDenied, fmt.Errorf(format, args...))
}

// splitError converts a failed split into InvalidArgument, carrying what is
// left to allocate in the error metadata.
func splitError(err error) error {
	var se *calculator.SplitError
	if !errors.As(err, &se) {
		return connect.NewError(connect.CodeInvalidArgument, err)
	}
	cerr := connect.NewError(connect.CodeInvalidArgument, err)
	switch se.Method {
	case calculator.MethodCustom:
		cerr.Meta().Set(RemainingAmountKey, se.RemainingAmount.String())
	case calculator.MethodPercentage:
		cerr.Meta().Set(RemainingPercentKey, se.RemainingPercent.String())
	}
	return cerr
}

// currencyOr normalizes code, using fallback when code is blank.
func currencyOr(code, fallback string) string {
	if strings.TrimSpace(code) == "" {
		return fallback
	}
	return money.NormalizeCurrency(code)
}

// parseDate parses a DateLayout value, naming field in the error.
func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(api.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, invalidArgument("%s must be YYYY-MM-DD: %v", field, err)
	}
	return t, nil
}

// startOfDay truncates t to midnight UTC, the instant due dates are stored at.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func unixTime(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func toAPIUser(u *models.User) api.User {
	return api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   unixTime(u.CreatedAt),
	}
}

func toAPIBill(b *models.Bill, now time.Time) api.Bill {
	out := api.Bill{
		ID:           b.ID,
		Name:         b.Name,
		Amount:       b.Amount,
		Currency:     b.Currency,
		DueDate:      b.DueDate.Format(api.DateLayout),
		Category:     b.Category,
		Notes:        b.Notes,
		CreatedBy:    b.CreatedBy,
		GroupID:      b.GroupID,
		Paid:         b.Paid,
		Status:       b.Status(now),
		DaysUntilDue: models.DaysUntilDue(b.DueDate, now),
		SplitMethod:  b.SplitMethod,
		Participants: make([]api.Share, len(b.Participants)),
		CreatedAt:    unixTime(b.CreatedAt),
		UpdatedAt:    unixTime(b.UpdatedAt),
	}
	if b.Paid && b.PaidAt != 0 {
		paidAt := unixTime(b.PaidAt)
		out.PaidAt = &paidAt
	}
	if b.IsSplit() {
		out.SplitSummary = calculator.MethodSummary(calculator.Method(b.SplitMethod), len(b.Participants))
	}
	for i, p := range b.Participants {
		out.Participants[i] = api.Share{
			Email:      p.Email,
			Name:       p.Name,
			Amount:     p.Share,
			Percentage: p.Percentage,
		}
	}
	return out
}

func toAPISubscription(sub *models.Subscription, now time.Time) api.Subscription {
	cost := calculator.NormalizeCost(sub.Amount, calculator.BillingCycle(sub.BillingCycle))
	out := api.Subscription{
		ID:               sub.ID,
		ServiceName:      sub.ServiceName,
		Amount:           sub.Amount,
		Currency:         sub.Currency,
		BillingCycle:     sub.BillingCycle,
		NextBillingDate:  sub.NextBillingDate.Format(api.DateLayout),
		DaysUntilRenewal: models.DaysUntilDue(sub.NextBillingDate, now),
		Category:         sub.Category,
		AutoRenew:        sub.AutoRenew,
		Notes:            sub.Notes,
		IconURL:          sub.IconURL,
		Status:           sub.Status,
		MonthlyCost:      cost.Monthly,
		YearlyCost:       cost.Yearly,
		CreatedAt:        unixTime(sub.CreatedAt),
		UpdatedAt:        unixTime(sub.UpdatedAt),
	}
	if sub.CancelledAt != 0 {
		cancelled := unixTime(sub.CancelledAt)
		out.CancelledAt = &cancelled
	}
	return out
}

func toAPIGroup(g *models.Group) api.Group {
	members := g.Members
	if members == nil {
		members = []string{}
	}
	return api.Group{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		CreatedBy:   g.CreatedBy,
		Members:     members,
		CreatedAt:   unixTime(g.CreatedAt),
	}
}

func toAPISettlement(s *models.Settlement) api.Settlement {
	return api.Settlement{
		ID:         s.ID,
		GroupID:    s.GroupID,
		PayerEmail: s.PayerEmail,
		PayeeEmail: s.PayeeEmail,
		Amount:     s.Amount,
		Currency:   s.Currency,
		Notes:      s.Notes,
		SettledAt:  unixTime(s.SettledAt),
		CreatedAt:  unixTime(s.CreatedAt),
	}
}

func toAPITransfer(t calculator.Transfer) api.Transfer {
	return api.Transfer{From: t.From, To: t.To, Amount: t.Amount, Currency: t.Currency}
}

func toAPITransfers(ts []calculator.Transfer, currency string) []api.Transfer {
	out := make([]api.Transfer, len(ts))
	for i, t := range ts {
		if t.Currency == "" {
			t.Currency = currency
		}
		out[i] = toAPITransfer(t)
	}
	return out
}

func toAPIBalance(b calculator.NetBalance, names map[string]*models.User) api.Balance {
	out := api.Balance{
		Email:    b.With,
		YouOwe:   b.YouOwe,
		TheyOwe:  b.TheyOwe,
		Settled:  b.Settled,
		Net:      b.Net,
		Amount:   b.Amount,
		Type:     string(b.Type),
		Currency: b.Currency,
		Bills:    make([]api.BalanceBill, len(b.Bills)),
	}
	if u, ok := names[b.With]; ok {
		out.DisplayName = u.DisplayName
	}
	for i, c := range b.Bills {
		out.Bills[i] = api.BalanceBill{
			BillID:   c.BillID,
			BillName: c.BillName,
			Amount:   c.Amount,
			DueDate:  c.DueDate.Format(api.DateLayout),
			Type:     string(c.Type),
		}
	}
	return out
}
