package calculator

import (
	"log/slog"
	"slices"
	"time"

	"github.com/swiffapp/swiff/internal/money"
)

// BillForBalance represents a bill with the minimal information needed for
// group balance calculations.
type BillForBalance struct {
	ID      string
	PayerID string
	Total   money.Money
	Shares  []Share
	// CreatedAt is when the bill was recorded.
	CreatedAt time.Time
}

// MemberBalance represents the balance information for one group member.
type MemberBalance struct {
	Member     string
	NetBalance money.Money // Positive = owed money, Negative = owes money
	TotalPaid  money.Money
	TotalOwed  money.Money
}

// CalculateGroupBalances computes balances across multiple bills and
// settlements, and the transfers that would settle the group.
//
// Algorithm:
//   - For each bill: payer contributed +total, each participant owes their share
//   - For each settlement, oldest first: payer's balance improves, receiver's
//     balance decreases, by at most what the payer still owes
//   - Aggregate: net_balance = total_paid - total_owed
//   - Transfers: greedy creditor/debtor matching, see CalculateBalances
//
// Settlements recorded before the oldest bill are ignored, as are all
// settlements when there are no bills; they paid for bills that are no
// longer outstanding. Members are listed in order of first appearance.
func CalculateGroupBalances(bills []BillForBalance, settlements []SettlementForBalance) ([]MemberBalance, []Transfer) {
	var order []string
	balances := make(map[string]*MemberBalance)
	member := func(id string) *MemberBalance {
		if b, ok := balances[id]; ok {
			return b
		}
		b := &MemberBalance{Member: id}
		balances[id] = b
		order = append(order, id)
		return b
	}

	var oldest time.Time
	seenBill := false
	for _, bill := range bills {
		// Skip bills without payer (can't calculate balances)
		if bill.PayerID == "" {
			continue
		}
		if !seenBill || bill.CreatedAt.Before(oldest) {
			oldest = bill.CreatedAt
			seenBill = true
		}
		member(bill.PayerID).TotalPaid += bill.Total

		for _, s := range bill.Shares {
			if s.Amount < 0 {
				slog.Warn("Negative share in group bill, skipping",
					"bill_id", bill.ID,
					"participant", s.ParticipantID,
					"amount", s.Amount.String(),
				)
				continue
			}
			member(s.ParticipantID).TotalOwed += s.Amount
		}
	}

	ordered := slices.Clone(settlements)
	slices.SortStableFunc(ordered, func(a, b SettlementForBalance) int {
		return a.RecordedAt.Compare(b.RecordedAt)
	})
	for _, s := range ordered {
		if !seenBill || s.Amount <= 0 || s.FromUserID == s.ToUserID || s.RecordedAt.Before(oldest) {
			continue
		}
		from, ok := balances[s.FromUserID]
		if !ok {
			continue
		}
		amount := min(s.Amount, max(0, from.TotalOwed-from.TotalPaid))
		if amount == 0 {
			continue
		}
		from.TotalPaid += amount
		member(s.ToUserID).TotalOwed += amount
	}

	memberBalances := make([]MemberBalance, 0, len(order))
	contribs := make([]Contribution, 0, len(order))
	for _, id := range order {
		b := balances[id]
		b.NetBalance = b.TotalPaid - b.TotalOwed
		memberBalances = append(memberBalances, *b)
		contribs = append(contribs, Contribution{ID: id, Share: b.TotalOwed, Paid: b.TotalPaid})
	}

	return memberBalances, CalculateBalances(contribs, "")
}
