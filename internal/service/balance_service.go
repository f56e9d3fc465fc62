package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/swiffapp/swiff/internal/calculator"
	"github.com/swiffapp/swiff/internal/models"
	"github.com/swiffapp/swiff/internal/money"
	"github.com/swiffapp/swiff/internal/storage"
	"github.com/swiffapp/swiff/pkg/api"
	"github.com/swiffapp/swiff/pkg/api/apiconnect"
)

var _ apiconnect.BalanceServiceHandler = (*BalanceService)(nil)

// BalanceService implements the Connect BalanceService. Balances are
// recomputed from storage on every call.
type BalanceService struct {
	store    storage.Store
	now      func() time.Time
	currency string
}

// NewBalanceService creates a new BalanceService with the given storage backend.
func NewBalanceService(store storage.Store) *BalanceService {
	return &BalanceService{store: store, now: time.Now, currency: money.DefaultCurrency}
}

// WithDefaultCurrency sets the currency used for settlements that name none.
func (s *BalanceService) WithDefaultCurrency(code string) *BalanceService {
	s.currency = money.NormalizeCurrency(code)
	return s
}

// displayNames looks up registered users for the counterparties of balances.
// Lookup failures only cost the display names.
func (s *BalanceService) displayNames(ctx context.Context, balances []calculator.NetBalance) map[string]*models.User {
	emails := make([]string, len(balances))
	for i, b := range balances {
		emails[i] = b.With
	}
	users, err := s.store.GetUsersByEmails(ctx, emails)
	if err != nil {
		slog.Warn("Failed to resolve display names", "error", err)
		return nil
	}
	return users
}

// GetBalances returns the caller's balance with everyone they share bills with.
func (s *BalanceService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	caller, err := callerEmail(ctx)
	if err != nil {
		return nil, err
	}

	report, err := userBalances(ctx, s.store, caller)
	if err != nil {
		return nil, storeError("GetBalances failed", err, "email", caller)
	}

	balances := report.Balances
	if req.Msg.IncludeEven {
		balances = report.AllBalances
	}
	names := s.displayNames(ctx, balances)

	resp := &api.GetBalancesResponse{
		Summary: api.BalanceSummary{
			TotalOwed:  report.Summary.TotalOwed,
			TotalOwe:   report.Summary.TotalOwe,
			NetBalance: report.Summary.NetBalance,
		},
		Balances: make([]api.Balance, len(balances)),
	}
	for i, b := range balances {
		resp.Balances[i] = toAPIBalance(b, names)
	}

	slog.Info("GetBalances successful", "email", caller, "counterparties", len(balances))
	return connect.NewResponse(resp), nil
}

func (s *BalanceService) balanceWith(ctx context.Context, email string) (string, calculator.NetBalance, error) {
	caller, err := callerEmail(ctx)
	if err != nil {
		return "", calculator.NetBalance{}, err
	}
	other := models.NormalizeEmail(email)
	if other == "" {
		return "", calculator.NetBalance{}, invalidArgument("email is required")
	}
	if other == caller {
		return "", calculator.NetBalance{}, invalidArgument("cannot compute a balance with yourself")
	}

	report, err := userBalances(ctx, s.store, caller)
	if err != nil {
		return "", calculator.NetBalance{}, storeError("failed to compute balances", err, "email", caller)
	}
	return caller, calculator.BalanceWith(report, other), nil
}

// GetBalanceWith returns the caller's balance with one person.
func (s *BalanceService) GetBalanceWith(ctx context.Context, req *connect.Request[api.GetBalanceWithRequest]) (*connect.Response[api.GetBalanceWithResponse], error) {
	_, balance, err := s.balanceWith(ctx, req.Msg.Email)
	if err != nil {
		return nil, err
	}
	names := s.displayNames(ctx, []calculator.NetBalance{balance})
	return connect.NewResponse(&api.GetBalanceWithResponse{Balance: toAPIBalance(balance, names)}), nil
}

// GetSuggestedSettlement returns the payment that would clear the caller's
// balance with one person.
func (s *BalanceService) GetSuggestedSettlement(ctx context.Context, req *connect.Request[api.GetBalanceWithRequest]) (*connect.Response[api.GetSuggestedSettlementResponse], error) {
	caller, balance, err := s.balanceWith(ctx, req.Msg.Email)
	if err != nil {
		return nil, err
	}

	resp := &api.GetSuggestedSettlementResponse{}
	if balance.Type != calculator.DirectionEven {
		t := toAPITransfer(calculator.SuggestSettlement(caller, balance))
		resp.Settlement = &t
	}
	return connect.NewResponse(resp), nil
}

// outstanding returns how much payer currently owes payee, either personally
// or, for a group settlement, within the group.
func (s *BalanceService) outstanding(ctx context.Context, payer, payee, groupID string) (money.Money, error) {
	if groupID == "" {
		report, err := userBalances(ctx, s.store, payer)
		if err != nil {
			return 0, err
		}
		b := calculator.BalanceWith(report, payee)
		if b.Type != calculator.DirectionOwe {
			return 0, nil
		}
		return b.Amount, nil
	}

	members, _, _, err := groupBalances(ctx, s.store, groupID)
	if err != nil {
		return 0, err
	}
	for _, m := range members {
		if m.Member == payer && m.NetBalance < 0 {
			return m.NetBalance.Abs(), nil
		}
	}
	return 0, nil
}

// RecordSettlement records a payment between the caller and someone else.
// The amount may not exceed what the payer currently owes the payee.
func (s *BalanceService) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	caller, err := callerEmail(ctx)
	if err != nil {
		return nil, err
	}

	payer := models.NormalizeEmail(req.Msg.PayerEmail)
	payee := models.NormalizeEmail(req.Msg.PayeeEmail)
	slog.Info("RecordSettlement request received",
		"payer", payer,
		"payee", payee,
		"amount", req.Msg.Amount.String(),
		"group_id", req.Msg.GroupID,
	)

	switch {
	case payer == "" || payee == "":
		return nil, invalidArgument("payer_email and payee_email are required")
	case payer == payee:
		return nil, invalidArgument("payer and payee must be different people")
	case req.Msg.Amount <= 0:
		return nil, invalidArgument("amount must be greater than zero")
	case caller != payer && caller != payee:
		return nil, permissionDenied("you can only record settlements you are part of")
	}
	currency := currencyOr(req.Msg.Currency, s.currency)
	if !money.IsSupported(currency) {
		return nil, invalidArgument("unsupported currency %q", currency)
	}

	if req.Msg.GroupID != "" {
		group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
		if err != nil {
			return nil, storeError("failed to get group for settlement", err, "group_id", req.Msg.GroupID)
		}
		if !group.HasMember(payer) || !group.HasMember(payee) {
			return nil, invalidArgument("payer and payee must both be members of group %s", req.Msg.GroupID)
		}
	}

	owed, err := s.outstanding(ctx, payer, payee, req.Msg.GroupID)
	if err != nil {
		return nil, storeError("failed to compute outstanding balance", err, "payer", payer, "payee", payee)
	}
	if req.Msg.Amount > owed {
		return nil, connect.NewError(connect.CodeFailedPrecondition,
			fmt.Errorf("settlement of %s exceeds the outstanding balance of %s", req.Msg.Amount.Format(currency), owed.Format(currency)))
	}

	settlement := &models.Settlement{
		GroupID:    req.Msg.GroupID,
		PayerEmail: payer,
		PayeeEmail: payee,
		Amount:     req.Msg.Amount,
		Currency:   currency,
		Notes:      req.Msg.Notes,
		CreatedAt:  s.now().Unix(),
	}
	if req.Msg.SettledAt != nil {
		settlement.SettledAt = req.Msg.SettledAt.Unix()
	}

	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		return nil, storeError("RecordSettlement failed", err)
	}

	slog.Info("Settlement recorded", "settlement_id", settlement.ID, "payer", payer, "payee", payee)
	return connect.NewResponse(&api.RecordSettlementResponse{Settlement: toAPISettlement(settlement)}), nil
}

// ListSettlements returns the caller's settlement history, newest first.
func (s *BalanceService) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	caller, err := callerEmail(ctx)
	if err != nil {
		return nil, err
	}

	settlements, err := s.store.ListSettlementsForUser(ctx, caller)
	if err != nil {
		return nil, storeError("ListSettlements failed", err, "email", caller)
	}

	out := make([]api.Settlement, len(settlements))
	for i, st := range settlements {
		out[i] = toAPISettlement(st)
	}
	return connect.NewResponse(&api.ListSettlementsResponse{Settlements: out}), nil
}
