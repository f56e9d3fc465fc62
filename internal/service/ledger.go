package service

import (
	"context"
	"fmt"
	"time"

	"github.com/swiffapp/swiff/internal/calculator"
	"github.com/swiffapp/swiff/internal/models"
	"github.com/swiffapp/swiff/internal/money"
	"github.com/swiffapp/swiff/internal/storage"
)

// userBalances computes email's balances from the current ledger and its
// recorded settlements. Nothing is cached; every call rescans the store.
// Settlements only offset bills that are still unpaid, see
// calculator.BalanceReport.WithSettlements.
func userBalances(ctx context.Context, store storage.Store, email string) (calculator.BalanceReport, error) {
	participations, err := store.ListParticipations(ctx, email)
	if err != nil {
		return calculator.BalanceReport{}, fmt.Errorf("failed to load participations: %w", err)
	}
	created, err := store.ListCreatedSplitBills(ctx, email)
	if err != nil {
		return calculator.BalanceReport{}, fmt.Errorf("failed to load created bills: %w", err)
	}
	settlements, err := store.ListSettlementsForUser(ctx, email)
	if err != nil {
		return calculator.BalanceReport{}, fmt.Errorf("failed to load settlements: %w", err)
	}

	records := make([]calculator.ParticipationRecord, len(participations))
	for i, p := range participations {
		records[i] = calculator.ParticipationRecord{ParticipantID: p.Email, Share: p.Share}
		if p.Bill != nil {
			ref := billRef(p.Bill)
			records[i].Bill = &ref
		}
	}

	entries := make([]calculator.LedgerEntry, len(created))
	for i, row := range created {
		entries[i] = calculator.LedgerEntry{
			BillRef:      billRef(&row.Bill),
			Participants: make([]calculator.ShareRecord, len(row.Shares)),
		}
		for j, sh := range row.Shares {
			entries[i].Participants[j] = calculator.ShareRecord{
				ParticipantID: sh.Email,
				Name:          sh.Name,
				Share:         sh.Share,
			}
		}
	}

	report := calculator.ComputeBalances(email, records, entries)
	return report.WithSettlements(email, settlementsForBalance(settlements)), nil
}

// groupBalances computes member balances and settling transfers for a group.
// Paid bills and bills without a split are left out.
func groupBalances(ctx context.Context, store storage.Store, groupID string) ([]calculator.MemberBalance, []calculator.Transfer, string, error) {
	bills, err := store.ListBillsByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to list group bills: %w", err)
	}
	settlements, err := store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to list group settlements: %w", err)
	}

	currency := ""
	var forBalance []calculator.BillForBalance
	for _, bill := range bills {
		if bill.Paid || !bill.IsSplit() {
			continue
		}
		if currency == "" {
			currency = bill.Currency
		}
		shares := make([]calculator.Share, len(bill.Participants))
		for i, p := range bill.Participants {
			shares[i] = calculator.Share{ParticipantID: p.Email, Amount: p.Share}
		}
		forBalance = append(forBalance, calculator.BillForBalance{
			ID:        bill.ID,
			PayerID:   bill.CreatedBy,
			Total:     bill.Amount,
			Shares:    shares,
			CreatedAt: time.Unix(bill.CreatedAt, 0),
		})
	}
	if currency == "" {
		currency = money.DefaultCurrency
	}

	members, transfers := calculator.CalculateGroupBalances(forBalance, settlementsForBalance(settlements))
	return members, transfers, currency, nil
}

func billRef(b *models.Bill) calculator.BillRef {
	return calculator.BillRef{
		ID:        b.ID,
		Name:      b.Name,
		Amount:    b.Amount,
		Currency:  b.Currency,
		DueDate:   b.DueDate,
		CreatorID: b.CreatedBy,
		Paid:      b.Paid,
		CreatedAt: time.Unix(b.CreatedAt, 0),
	}
}

func settlementsForBalance(in []*models.Settlement) []calculator.SettlementForBalance {
	out := make([]calculator.SettlementForBalance, len(in))
	for i, s := range in {
		out[i] = calculator.SettlementForBalance{
			FromUserID: s.PayerEmail,
			ToUserID:   s.PayeeEmail,
			Amount:     s.Amount,
			RecordedAt: time.Unix(s.CreatedAt, 0),
		}
	}
	return out
}
