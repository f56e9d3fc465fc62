package service

import (
	"context"
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

var _ apiconnect.SplitServiceHandler = (*SplitService)(nil)

// SplitService implements the Connect SplitService: split previews over the
// calculator plus bill storage.
type SplitService struct {
	store    storage.Store
	now      func() time.Time
	currency string
}

// NewSplitService creates a new SplitService with the given storage backend.
func NewSplitService(store storage.Store) *SplitService {
	return &SplitService{store: store, now: time.Now, currency: money.DefaultCurrency}
}

// WithDefaultCurrency sets the currency used for bills that name none.
func (s *SplitService) WithDefaultCurrency(code string) *SplitService {
	s.currency = money.NormalizeCurrency(code)
	return s
}

// isParticipant checks if email is in the participants list.
func isParticipant(email string, participants []string) bool {
	for _, p := range participants {
		if p == email {
			return true
		}
	}
	return false
}

// findNewParticipants returns participants that are not already in existingMembers.
func findNewParticipants(participants, existingMembers []string) []string {
	memberSet := make(map[string]bool, len(existingMembers))
	for _, m := range existingMembers {
		memberSet[m] = true
	}
	var newOnes []string
	for _, p := range participants {
		if !memberSet[p] {
			newOnes = append(newOnes, p)
		}
	}
	return newOnes
}

// autoAddParticipantsToGroup adds any bill participants (and the creator) not already in the group.
func (s *SplitService) autoAddParticipantsToGroup(ctx context.Context, bill *models.Bill) {
	if bill.GroupID == "" {
		return
	}
	group, err := s.store.GetGroup(ctx, bill.GroupID)
	if err != nil {
		slog.Warn("autoAddParticipantsToGroup: failed to get group", "group_id", bill.GroupID, "error", err)
		return
	}

	people := make([]string, 0, len(bill.Participants)+1)
	for _, p := range bill.Participants {
		people = append(people, p.Email)
	}
	if !isParticipant(bill.CreatedBy, people) {
		people = append(people, bill.CreatedBy)
	}

	newMembers := findNewParticipants(people, group.Members)
	if len(newMembers) == 0 {
		return
	}

	if err := s.store.AddGroupMembers(ctx, bill.GroupID, newMembers); err != nil {
		slog.Error("autoAddParticipantsToGroup: failed to add members", "group_id", bill.GroupID, "error", err)
		return
	}
	slog.Info("Auto-added participants to group", "group_id", bill.GroupID, "new_members", newMembers)
}

// parseSplit turns a split request into participant IDs and a policy.
// Emails are normalized; duplicates and blanks are rejected.
func parseSplit(in api.SplitInput) ([]string, calculator.Policy, error) {
	method, err := calculator.ParseMethod(in.Method)
	if err != nil {
		return nil, nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if len(in.Participants) == 0 {
		return nil, nil, invalidArgument("at least one participant is required")
	}

	ids := make([]string, len(in.Participants))
	seen := make(map[string]bool, len(in.Participants))
	for i, p := range in.Participants {
		id := models.NormalizeEmail(p.Email)
		if id == "" {
			return nil, nil, invalidArgument("participant %d has no email", i+1)
		}
		if seen[id] {
			return nil, nil, invalidArgument("participant %s is listed twice", id)
		}
		seen[id] = true
		ids[i] = id
	}

	switch method {
	case calculator.MethodCustom:
		entries := make([]calculator.CustomEntry, len(ids))
		for i, p := range in.Participants {
			entries[i] = calculator.CustomEntry{ParticipantID: ids[i], Amount: p.Amount}
		}
		return ids, calculator.Custom{Amounts: entries}, nil
	case calculator.MethodPercentage:
		entries := make([]calculator.PercentageEntry, len(ids))
		for i, p := range in.Participants {
			entries[i] = calculator.PercentageEntry{ParticipantID: ids[i], Percentage: p.Percentage}
		}
		return ids, calculator.Percentage{Percentages: entries}, nil
	default:
		return ids, calculator.Equal{}, nil
	}
}

// CalculateEqualSplit previews an equal split.
func (s *SplitService) CalculateEqualSplit(ctx context.Context, req *connect.Request[api.EqualSplitRequest]) (*connect.Response[api.EqualSplitResponse], error) {
	eq := calculator.ComputeEqualSplit(req.Msg.Total, req.Msg.ParticipantCount)
	return connect.NewResponse(&api.EqualSplitResponse{
		AmountPerPerson: eq.AmountPerPerson,
		Shares:          eq.Shares,
		TotalAllocated:  eq.TotalAllocated,
	}), nil
}

// ValidateSplit checks custom or percentage allocations. An unbalanced
// allocation is a normal response with Valid unset, not an error.
func (s *SplitService) ValidateSplit(ctx context.Context, req *connect.Request[api.ValidateSplitRequest]) (*connect.Response[api.ValidateSplitResponse], error) {
	method, err := calculator.ParseMethod(req.Msg.Split.Method)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	var resp api.ValidateSplitResponse
	switch method {
	case calculator.MethodCustom:
		entries := make([]calculator.CustomEntry, len(req.Msg.Split.Participants))
		for i, p := range req.Msg.Split.Participants {
			entries[i] = calculator.CustomEntry{ParticipantID: p.Email, Amount: p.Amount}
		}
		v := calculator.ValidateCustomSplit(entries, req.Msg.Total)
		resp = api.ValidateSplitResponse{
			Valid:           v.Valid,
			Error:           v.Error,
			RemainingAmount: v.Remaining,
			TotalAllocated:  v.TotalAllocated,
		}
	case calculator.MethodPercentage:
		entries := make([]calculator.PercentageEntry, len(req.Msg.Split.Participants))
		for i, p := range req.Msg.Split.Participants {
			entries[i] = calculator.PercentageEntry{ParticipantID: p.Email, Percentage: p.Percentage}
		}
		v := calculator.ValidatePercentageSplit(entries)
		resp = api.ValidateSplitResponse{
			Valid:            v.Valid,
			Error:            v.Error,
			RemainingPercent: v.Remaining,
			TotalPercentage:  v.TotalPercentage,
		}
	default:
		// Equal splits always reconcile.
		resp = api.ValidateSplitResponse{Valid: true, TotalAllocated: req.Msg.Total}
	}

	return connect.NewResponse(&resp), nil
}

// CalculateSplit previews the shares a bill would get, without storing anything.
func (s *SplitService) CalculateSplit(ctx context.Context, req *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	slog.Debug("CalculateSplit request received",
		"total", req.Msg.Total.String(),
		"method", req.Msg.Split.Method,
		"participants_count", len(req.Msg.Split.Participants),
	)

	ids, policy, err := parseSplit(req.Msg.Split)
	if err != nil {
		return nil, err
	}

	shares, err := calculator.Split(req.Msg.Total, ids, policy)
	if err != nil {
		return nil, splitError(err)
	}

	resp := &api.CalculateSplitResponse{
		Shares:  make([]api.Share, len(shares)),
		Summary: calculator.MethodSummary(policy.Method(), len(shares)),
	}
	for i, sh := range shares {
		resp.Shares[i] = api.Share{
			Email:      sh.ParticipantID,
			Name:       req.Msg.Split.Participants[i].Name,
			Amount:     sh.Amount,
			Percentage: sh.Percentage,
		}
		resp.TotalAllocated += sh.Amount
	}
	return connect.NewResponse(resp), nil
}

// SimplifyDebts works out the transfers that settle a single bill.
func (s *SplitService) SimplifyDebts(ctx context.Context, req *connect.Request[api.SimplifyDebtsRequest]) (*connect.Response[api.SimplifyDebtsResponse], error) {
	contribs := make([]calculator.Contribution, len(req.Msg.Participants))
	for i, p := range req.Msg.Participants {
		contribs[i] = calculator.Contribution{ID: p.ID, Share: p.Share, Paid: p.Paid}
	}

	transfers := calculator.CalculateBalances(contribs, req.Msg.PayerID)
	currency := currencyOr(req.Msg.Currency, s.currency)
	return connect.NewResponse(&api.SimplifyDebtsResponse{
		Transfers: toAPITransfers(transfers, currency),
	}), nil
}

// applyBillInput validates in and writes it onto bill, re-splitting when a
// split is given. The creator's own share is marked paid.
func (s *SplitService) applyBillInput(ctx context.Context, caller string, bill *models.Bill, in api.BillInput) error {
	if in.Amount <= 0 {
		return invalidArgument("amount must be greater than zero")
	}
	due, err := parseDate("due_date", in.DueDate)
	if err != nil {
		return err
	}
	currency := currencyOr(in.Currency, s.currency)
	if !money.IsSupported(currency) {
		return invalidArgument("unsupported currency %q", currency)
	}

	if in.GroupID != "" {
		group, err := s.store.GetGroup(ctx, in.GroupID)
		if err != nil {
			return storeError("failed to get group for bill", err, "group_id", in.GroupID)
		}
		if !group.HasMember(caller) {
			return permissionDenied("not a member of group %s", in.GroupID)
		}
	}

	bill.Name = strings.TrimSpace(in.Name)
	bill.Amount = in.Amount
	bill.Currency = currency
	bill.DueDate = due
	bill.Category = strings.TrimSpace(in.Category)
	bill.Notes = in.Notes
	bill.GroupID = in.GroupID
	bill.SplitMethod = ""
	bill.Participants = nil

	if in.Split == nil {
		return nil
	}

	ids, policy, err := parseSplit(*in.Split)
	if err != nil {
		return err
	}
	shares, err := calculator.Split(in.Amount, ids, policy)
	if err != nil {
		return splitError(err)
	}

	bill.SplitMethod = string(policy.Method())
	bill.Participants = make([]models.BillParticipant, len(shares))
	for i, sh := range shares {
		p := models.BillParticipant{
			Email:      sh.ParticipantID,
			Name:       strings.TrimSpace(in.Split.Participants[i].Name),
			Share:      sh.Amount,
			Percentage: sh.Percentage,
		}
		if p.Email == caller {
			p.Paid = true
			p.PaidAmount = sh.Amount
		}
		bill.Participants[i] = p
	}
	return nil
}

// CreateBill stores a new bill owned by the caller.
func (s *SplitService) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.BillResponse], error) {
	caller, err := callerEmail(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateBill request received", "name", req.Msg.Name, "amount", req.Msg.Amount.String(), "created_by", caller)

	bill := &models.Bill{CreatedBy: caller}
	if err := s.applyBillInput(ctx, caller, bill, req.Msg.BillInput); err != nil {
		return nil, err
	}

	if err := s.store.CreateBill(ctx, bill); err != nil {
		return nil, storeError("CreateBill failed", err)
	}
	s.autoAddParticipantsToGroup(ctx, bill)

	slog.Info("Bill created", "bill_id", bill.ID, "split_method", bill.SplitMethod, "participants", len(bill.Participants))
	return connect.NewResponse(&api.BillResponse{Bill: toAPIBill(bill, s.now())}), nil
}

// GetBill returns a bill the caller created or has a share of.
func (s *SplitService) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.BillResponse], error) {
	caller, err := callerEmail(ctx)
	if err != nil {
		return nil, err
	}

	bill, err := s.store.GetBill(ctx, req.Msg.ID)
	if err != nil {
		return nil, storeError("GetBill failed", err, "bill_id", req.Msg.ID)
	}
	if bill.CreatedBy != caller && !bill.HasParticipant(caller) {
		return nil, permissionDenied("no access to bill %s", req.Msg.ID)
	}

	return connect.NewResponse(&api.BillResponse{Bill: toAPIBill(bill, s.now())}), nil
}

// loadOwnBill fetches a bill and checks the caller created it.
func (s *SplitService) loadOwnBill(ctx context.Context, billID string) (*models.Bill, string, error) {
	caller, err := callerEmail(ctx)
	if err != nil {
		return nil, "", err
	}
	bill, err := s.store.GetBill(ctx, billID)
	if err != nil {
		return nil, "", storeError("failed to load bill", err, "bill_id", billID)
	}
	if bill.CreatedBy != caller {
		return nil, "", permissionDenied("only the creator can change bill %s", billID)
	}
	return bill, caller, nil
}

// UpdateBill replaces a bill's fields and re-splits it.
func (s *SplitService) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.BillResponse], error) {
	bill, caller, err := s.loadOwnBill(ctx, req.Msg.ID)
	if err != nil {
		return nil, err
	}
	if err := s.applyBillInput(ctx, caller, bill, req.Msg.BillInput); err != nil {
		return nil, err
	}

	if err := s.store.UpdateBill(ctx, bill); err != nil {
		return nil, storeError("UpdateBill failed", err, "bill_id", bill.ID)
	}
	s.autoAddParticipantsToGroup(ctx, bill)

	slog.Info("Bill updated", "bill_id", bill.ID)
	return connect.NewResponse(&api.BillResponse{Bill: toAPIBill(bill, s.now())}), nil
}

// DeleteBill removes a bill the caller created.
func (s *SplitService) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	bill, _, err := s.loadOwnBill(ctx, req.Msg.ID)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteBill(ctx, bill.ID); err != nil {
		return nil, storeError("DeleteBill failed", err, "bill_id", bill.ID)
	}

	slog.Info("Bill deleted", "bill_id", bill.ID)
	return connect.NewResponse(&api.DeleteBillResponse{}), nil
}

// MarkBillPaid sets or clears the paid flag. Paid bills drop out of balances.
func (s *SplitService) MarkBillPaid(ctx context.Context, req *connect.Request[api.MarkBillPaidRequest]) (*connect.Response[api.BillResponse], error) {
	bill, _, err := s.loadOwnBill(ctx, req.Msg.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.store.SetBillPaid(ctx, bill.ID, req.Msg.Paid, now.Unix()); err != nil {
		return nil, storeError("MarkBillPaid failed", err, "bill_id", bill.ID)
	}
	bill.Paid = req.Msg.Paid
	bill.PaidAt = 0
	if bill.Paid {
		bill.PaidAt = now.Unix()
	}

	slog.Info("Bill paid status changed", "bill_id", bill.ID, "paid", bill.Paid)
	return connect.NewResponse(&api.BillResponse{Bill: toAPIBill(bill, now)}), nil
}

// ListBills lists the caller's bills, soonest due first.
func (s *SplitService) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	caller, err := callerEmail(ctx)
	if err != nil {
		return nil, err
	}

	filter, err := s.billFilter(req.Msg)
	if err != nil {
		return nil, err
	}
	bills, err := s.store.ListBills(ctx, caller, filter)
	if err != nil {
		return nil, storeError("ListBills failed", err, "email", caller)
	}

	now := s.now()
	out := make([]api.Bill, len(bills))
	for i, b := range bills {
		out[i] = toAPIBill(b, now)
	}
	return connect.NewResponse(&api.ListBillsResponse{Bills: out}), nil
}

// billFilter turns a ListBills request into a storage filter. Upcoming and
// overdue windows are relative to today in UTC and imply unpaid.
func (s *SplitService) billFilter(req *api.ListBillsRequest) (storage.BillFilter, error) {
	filter := storage.BillFilter{
		Paid:         req.Paid,
		Category:     strings.TrimSpace(req.Category),
		NameContains: strings.TrimSpace(req.Search),
	}
	var err error
	if req.DueFrom != "" {
		if filter.DueFrom, err = parseDate("due_from", req.DueFrom); err != nil {
			return filter, err
		}
	}
	if req.DueTo != "" {
		if filter.DueTo, err = parseDate("due_to", req.DueTo); err != nil {
			return filter, err
		}
	}
	if !filter.DueFrom.IsZero() && !filter.DueTo.IsZero() && filter.DueFrom.After(filter.DueTo) {
		return filter, invalidArgument("due_from %s is after due_to %s", req.DueFrom, req.DueTo)
	}

	switch {
	case req.UpcomingDays < 0:
		return filter, invalidArgument("upcoming_days must not be negative")
	case req.UpcomingDays > 0 && req.Overdue:
		return filter, invalidArgument("upcoming_days and overdue cannot be combined")
	case req.UpcomingDays == 0 && !req.Overdue:
		return filter, nil
	}
	if req.Paid != nil && *req.Paid {
		return filter, invalidArgument("paid bills are never upcoming or overdue")
	}
	if req.DueFrom != "" || req.DueTo != "" {
		return filter, invalidArgument("due_from and due_to cannot be combined with upcoming_days or overdue")
	}

	unpaid := false
	filter.Paid = &unpaid
	today := startOfDay(s.now())
	if req.Overdue {
		filter.DueTo = today.AddDate(0, 0, -1)
	} else {
		filter.DueFrom = today
		filter.DueTo = today.AddDate(0, 0, req.UpcomingDays)
	}
	return filter, nil
}
