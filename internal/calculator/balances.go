package calculator

import (
	"log/slog"
	"time"

	"github.com/swiffapp/swiff/internal/money"
)

// Direction says which way a net balance points from the current user's side.
type Direction string

const (
	// DirectionOwed means the counterparty owes the user.
	DirectionOwed Direction = "owed"
	// DirectionOwe means the user owes the counterparty.
	DirectionOwe Direction = "owe"
	// DirectionEven means nothing is outstanding.
	DirectionEven Direction = "even"
)

// BillRef is the bill header a balance computation needs.
type BillRef struct {
	ID        string
	Name      string
	Amount    money.Money
	Currency  string
	DueDate   time.Time
	CreatorID string
	Paid      bool
	CreatedAt time.Time
}

// ShareRecord is a persisted participant row. Share is kept as stored so
// malformed values can be detected here.
type ShareRecord struct {
	ParticipantID string
	Name          string
	Share         float64
}

// LedgerEntry is a bill the user created, with all of its participants.
type LedgerEntry struct {
	BillRef
	Participants []ShareRecord
}

// ParticipationRecord is the user's own row on some bill. Bill may be nil
// when the bill row could not be joined.
type ParticipationRecord struct {
	ParticipantID string
	Share         float64
	Bill          *BillRef
}

// BillContribution is one bill's part in a NetBalance.
type BillContribution struct {
	BillID   string
	BillName string
	Amount   money.Money
	DueDate  time.Time
	Type     Direction
	// CreatedAt is when the bill was recorded.
	CreatedAt time.Time
}

// NetBalance summarises everything outstanding between the user and one
// counterparty. It is derived on every query and never stored.
type NetBalance struct {
	With    string
	YouOwe  money.Money
	TheyOwe money.Money
	// Settled is the net of the settlements that still apply: what the user
	// paid the counterparty minus what they received from them. It never
	// exceeds the debt the unpaid bills leave between the two.
	Settled money.Money
	// Net is positive when the counterparty owes the user.
	Net      money.Money
	Amount   money.Money
	Type     Direction
	Currency string
	Bills    []BillContribution
}

// Summary totals a BalanceReport.
type Summary struct {
	TotalOwed  money.Money
	TotalOwe   money.Money
	NetBalance money.Money
}

// BalanceReport is the result of ComputeBalances.
type BalanceReport struct {
	Summary Summary
	// Balances holds only non-even balances, for display.
	Balances []NetBalance
	// AllBalances includes even balances.
	AllBalances []NetBalance
}

// SettlementForBalance is a recorded payment between two people.
type SettlementForBalance struct {
	FromUserID string
	ToUserID   string
	Amount     money.Money
	// RecordedAt is when the settlement was recorded.
	RecordedAt time.Time
}

// ComputeBalances nets the user's obligations per counterparty.
//
// participations are the user's rows on other people's bills (the user owes
// the creator); created are the user's own bills (each other participant owes
// the user). Paid bills are ignored entirely. Shares that are NaN, infinite or
// negative are logged and skipped. Counterparties appear in the order they are
// first seen.
//
// The result depends only on the arguments; callers recompute it from the
// full set of current entries rather than patching an earlier report.
func ComputeBalances(userID string, participations []ParticipationRecord, created []LedgerEntry) BalanceReport {
	acc := newBalanceAccumulator()

	for _, p := range participations {
		bill := p.Bill
		if bill == nil || bill.Paid {
			continue
		}
		share, ok := validShare(bill.ID, p.Share)
		if !ok {
			continue
		}
		if bill.CreatorID == userID {
			continue
		}

		b := acc.get(bill.CreatorID, bill.Currency)
		b.YouOwe += share
		b.Bills = append(b.Bills, BillContribution{
			BillID:   bill.ID,
			BillName: bill.Name,
			Amount:   share,
			DueDate:   bill.DueDate,
			Type:      DirectionOwe,
			CreatedAt: bill.CreatedAt,
		})
	}

	for _, bill := range created {
		if bill.Paid {
			continue
		}
		for _, p := range bill.Participants {
			if p.ParticipantID == userID {
				continue
			}
			share, ok := validShare(bill.ID, p.Share)
			if !ok {
				continue
			}

			b := acc.get(p.ParticipantID, bill.Currency)
			b.TheyOwe += share
			b.Bills = append(b.Bills, BillContribution{
				BillID:   bill.ID,
				BillName: bill.Name,
				Amount:   share,
				DueDate:   bill.DueDate,
				Type:      DirectionOwed,
				CreatedAt: bill.CreatedAt,
			})
		}
	}

	return acc.report()
}

// WithSettlements returns a copy of r in which recorded settlements between
// userID and a counterparty are applied as adjustments.
//
// A settlement pays down unpaid bills, so it only counts against a
// counterparty the user still shares unpaid bills with, and only when it was
// recorded no earlier than the oldest of those bills. The applied total is
// clamped so it can reduce the outstanding debt to zero but never reverse
// it. Settlements that do not involve userID, or have a non-positive amount,
// are ignored.
func (r BalanceReport) WithSettlements(userID string, settlements []SettlementForBalance) BalanceReport {
	acc := newBalanceAccumulator()
	for _, b := range r.AllBalances {
		nb := acc.get(b.With, b.Currency)
		nb.YouOwe = b.YouOwe
		nb.TheyOwe = b.TheyOwe
		nb.Settled = b.Settled
		nb.Bills = append([]BillContribution(nil), b.Bills...)
	}

	for _, s := range settlements {
		if s.Amount <= 0 || s.FromUserID == s.ToUserID {
			continue
		}
		var (
			other  string
			amount money.Money
		)
		switch userID {
		case s.FromUserID:
			other, amount = s.ToUserID, s.Amount
		case s.ToUserID:
			other, amount = s.FromUserID, -s.Amount
		default:
			continue
		}
		b, ok := acc.index[other]
		if !ok || len(b.Bills) == 0 || s.RecordedAt.Before(oldestBill(b.Bills)) {
			continue
		}
		b.Settled += amount
	}

	for _, b := range acc.order {
		b.Settled = clampSettled(b.TheyOwe-b.YouOwe, b.Settled)
	}

	return acc.report()
}

// clampSettled bounds settled so that gross+settled lies between gross and 0.
func clampSettled(gross, settled money.Money) money.Money {
	switch {
	case gross < 0:
		return max(0, min(settled, -gross))
	case gross > 0:
		return min(0, max(settled, -gross))
	default:
		return 0
	}
}

func oldestBill(bills []BillContribution) time.Time {
	oldest := bills[0].CreatedAt
	for _, b := range bills[1:] {
		if b.CreatedAt.Before(oldest) {
			oldest = b.CreatedAt
		}
	}
	return oldest
}

// BalanceWith returns the outstanding balance with one counterparty. When
// nothing is outstanding, including when the two are even, it returns an
// empty even balance in the default currency.
func BalanceWith(r BalanceReport, counterparty string) NetBalance {
	for _, b := range r.Balances {
		if b.With == counterparty {
			return b
		}
	}
	return NetBalance{
		With:     counterparty,
		Type:     DirectionEven,
		Currency: money.DefaultCurrency,
		Bills:    []BillContribution{},
	}
}

// SuggestSettlement proposes the transfer that clears b.
func SuggestSettlement(userID string, b NetBalance) Transfer {
	t := Transfer{From: b.With, To: userID, Amount: b.Amount, Currency: b.Currency}
	if b.Type == DirectionOwe {
		t.From, t.To = userID, b.With
	}
	return t
}

func validShare(billID string, raw float64) (money.Money, bool) {
	share, err := money.FromFloat(raw)
	if err != nil || share < 0 {
		slog.Warn("Invalid share amount for participant, skipping",
			"bill_id", billID,
			"share", raw,
		)
		return 0, false
	}
	return share, true
}

type balanceAccumulator struct {
	order []*NetBalance
	index map[string]*NetBalance
}

func newBalanceAccumulator() *balanceAccumulator {
	return &balanceAccumulator{index: make(map[string]*NetBalance)}
}

// get returns the balance for counterparty, creating it with currency.
func (a *balanceAccumulator) get(counterparty, currency string) *NetBalance {
	if b, ok := a.index[counterparty]; ok {
		if b.Currency == "" {
			b.Currency = currency
		}
		return b
	}
	b := &NetBalance{With: counterparty, Currency: currency, Bills: []BillContribution{}}
	a.index[counterparty] = b
	a.order = append(a.order, b)
	return b
}

func (a *balanceAccumulator) report() BalanceReport {
	r := BalanceReport{
		Balances:    []NetBalance{},
		AllBalances: make([]NetBalance, 0, len(a.order)),
	}

	for _, b := range a.order {
		nb := *b
		if nb.Currency == "" {
			nb.Currency = money.DefaultCurrency
		}
		nb.Net = nb.TheyOwe - nb.YouOwe + nb.Settled
		nb.Amount = nb.Net.Abs()
		switch {
		case nb.Net > 0:
			nb.Type = DirectionOwed
			r.Summary.TotalOwed += nb.Amount
		case nb.Net < 0:
			nb.Type = DirectionOwe
			r.Summary.TotalOwe += nb.Amount
		default:
			nb.Type = DirectionEven
		}

		r.AllBalances = append(r.AllBalances, nb)
		if nb.Type != DirectionEven {
			r.Balances = append(r.Balances, nb)
		}
	}

	r.Summary.NetBalance = r.Summary.TotalOwed - r.Summary.TotalOwe
	return r
}
