package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/swiffapp/swiff/internal/money"
)

const (
	alice = "alice@example.com"
	bob   = "bob@example.com"
	carol = "carol@example.com"
)

// dinnerAndTaxi builds the two-bill scenario: alice created a $30 dinner split
// with bob, and bob created a $10 taxi split with alice.
func dinnerAndTaxi(taxiPaid bool) ([]ParticipationRecord, []LedgerEntry) {
	due := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	created := []LedgerEntry{{
		BillRef: BillRef{ID: "dinner", Name: "Dinner", Amount: 3000, Currency: "USD", DueDate: due, CreatorID: alice},
		Participants: []ShareRecord{
			{ParticipantID: alice, Share: 15},
			{ParticipantID: bob, Share: 15},
		},
	}}
	participations := []ParticipationRecord{{
		ParticipantID: alice,
		Share:         5,
		Bill:          &BillRef{ID: "taxi", Name: "Taxi", Amount: 1000, Currency: "USD", DueDate: due, CreatorID: bob, Paid: taxiPaid},
	}}
	return participations, created
}

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name         string
		taxiPaid     bool
		wantYouOwe   money.Money
		wantTheyOwe  money.Money
		wantAmount   money.Money
		wantBillRefs int
	}{
		{
			name:         "both bills unpaid net out",
			wantYouOwe:   500,
			wantTheyOwe:  1500,
			wantAmount:   1000,
			wantBillRefs: 2,
		},
		{
			name:         "paid bill is excluded",
			taxiPaid:     true,
			wantYouOwe:   0,
			wantTheyOwe:  1500,
			wantAmount:   1500,
			wantBillRefs: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			participations, created := dinnerAndTaxi(tt.taxiPaid)
			report := ComputeBalances(alice, participations, created)

			if len(report.Balances) != 1 {
				t.Fatalf("expected 1 balance, got %d: %+v", len(report.Balances), report.Balances)
			}
			b := report.Balances[0]
			if b.With != bob {
				t.Errorf("With = %q, want %q", b.With, bob)
			}
			if b.YouOwe != tt.wantYouOwe {
				t.Errorf("YouOwe = %v, want %v", b.YouOwe, tt.wantYouOwe)
			}
			if b.TheyOwe != tt.wantTheyOwe {
				t.Errorf("TheyOwe = %v, want %v", b.TheyOwe, tt.wantTheyOwe)
			}
			if b.Amount != tt.wantAmount {
				t.Errorf("Amount = %v, want %v", b.Amount, tt.wantAmount)
			}
			if b.Type != DirectionOwed {
				t.Errorf("Type = %v, want %v", b.Type, DirectionOwed)
			}
			if len(b.Bills) != tt.wantBillRefs {
				t.Errorf("expected %d contributing bills, got %d", tt.wantBillRefs, len(b.Bills))
			}
			if report.Summary.TotalOwed != tt.wantAmount || report.Summary.TotalOwe != 0 {
				t.Errorf("Summary = %+v, want owed %v and owe 0", report.Summary, tt.wantAmount)
			}
			if report.Summary.NetBalance != tt.wantAmount {
				t.Errorf("NetBalance = %v, want %v", report.Summary.NetBalance, tt.wantAmount)
			}
		})
	}
}

func TestComputeBalances_EvenIsHiddenButKept(t *testing.T) {
	created := []LedgerEntry{{
		BillRef:      BillRef{ID: "b1", Currency: "EUR", CreatorID: alice},
		Participants: []ShareRecord{{ParticipantID: bob, Share: 12.5}},
	}}
	participations := []ParticipationRecord{{
		ParticipantID: alice,
		Share:         12.5,
		Bill:          &BillRef{ID: "b2", Currency: "EUR", CreatorID: bob},
	}}

	report := ComputeBalances(alice, participations, created)
	if len(report.Balances) != 0 {
		t.Errorf("expected no visible balances, got %+v", report.Balances)
	}
	if len(report.AllBalances) != 1 {
		t.Fatalf("expected 1 balance in AllBalances, got %d", len(report.AllBalances))
	}
	if got := report.AllBalances[0]; got.Type != DirectionEven || got.With != bob || got.Amount != 0 {
		t.Errorf("AllBalances[0] = %+v, want even balance with bob", got)
	}
	if report.Summary != (Summary{}) {
		t.Errorf("Summary = %+v, want zero", report.Summary)
	}
}

func TestComputeBalances_SkipsMalformedShares(t *testing.T) {
	created := []LedgerEntry{{
		BillRef: BillRef{ID: "b1", CreatorID: alice},
		Participants: []ShareRecord{
			{ParticipantID: bob, Share: math.NaN()},
			{ParticipantID: carol, Share: -4},
			{ParticipantID: bob, Share: 7.25},
			{ParticipantID: alice, Share: 100},
		},
	}}
	participations := []ParticipationRecord{
		{ParticipantID: alice, Share: math.Inf(1), Bill: &BillRef{ID: "b2", CreatorID: carol}},
		{ParticipantID: alice, Share: 3, Bill: nil},
	}

	report := ComputeBalances(alice, participations, created)
	if len(report.AllBalances) != 1 {
		t.Fatalf("expected only bob's balance, got %+v", report.AllBalances)
	}
	b := report.AllBalances[0]
	if b.With != bob || b.TheyOwe != 725 || b.YouOwe != 0 {
		t.Errorf("balance = %+v, want bob owing 7.25", b)
	}
	if b.Currency != money.DefaultCurrency {
		t.Errorf("Currency = %q, want default %q", b.Currency, money.DefaultCurrency)
	}
}

func TestComputeBalances_OrderAndDirections(t *testing.T) {
	participations := []ParticipationRecord{
		{ParticipantID: alice, Share: 20, Bill: &BillRef{ID: "rent", CreatorID: carol, Currency: "USD"}},
		{ParticipantID: alice, Share: 10, Bill: &BillRef{ID: "own", CreatorID: alice, Currency: "USD"}},
	}
	created := []LedgerEntry{{
		BillRef:      BillRef{ID: "groceries", CreatorID: alice, Currency: "USD"},
		Participants: []ShareRecord{{ParticipantID: bob, Share: 8}, {ParticipantID: carol, Share: 5}},
	}}

	report := ComputeBalances(alice, participations, created)
	if len(report.Balances) != 2 {
		t.Fatalf("expected 2 balances, got %+v", report.Balances)
	}
	if report.Balances[0].With != carol || report.Balances[0].Type != DirectionOwe || report.Balances[0].Amount != 1500 {
		t.Errorf("Balances[0] = %+v, want alice owing carol 15.00", report.Balances[0])
	}
	if report.Balances[1].With != bob || report.Balances[1].Type != DirectionOwed || report.Balances[1].Amount != 800 {
		t.Errorf("Balances[1] = %+v, want bob owing alice 8.00", report.Balances[1])
	}
	want := Summary{TotalOwed: 800, TotalOwe: 1500, NetBalance: -700}
	if report.Summary != want {
		t.Errorf("Summary = %+v, want %+v", report.Summary, want)
	}
}

func TestComputeBalances_Empty(t *testing.T) {
	report := ComputeBalances(alice, nil, nil)
	if len(report.Balances) != 0 || len(report.AllBalances) != 0 || report.Summary != (Summary{}) {
		t.Errorf("expected empty report, got %+v", report)
	}
}

func TestWithSettlements(t *testing.T) {
	participations, created := dinnerAndTaxi(false)
	report := ComputeBalances(alice, participations, created)

	settled := report.WithSettlements(alice, []SettlementForBalance{
		{FromUserID: bob, ToUserID: alice, Amount: 400},
		{FromUserID: alice, ToUserID: carol, Amount: 250},
		{FromUserID: bob, ToUserID: carol, Amount: 999},
		{FromUserID: bob, ToUserID: alice, Amount: -5},
	})

	if len(settled.AllBalances) != 1 {
		t.Fatalf("expected only bob, got %+v", settled.AllBalances)
	}
	withBob := BalanceWith(settled, bob)
	if withBob.Net != 600 || withBob.Type != DirectionOwed || withBob.Settled != -400 {
		t.Errorf("balance with bob = %+v, want owed 6.00 after settlement", withBob)
	}
	if settled.Summary.TotalOwed != 600 {
		t.Errorf("TotalOwed = %v, want 6.00", settled.Summary.TotalOwed)
	}

	if orig := BalanceWith(report, bob); orig.Amount != 1000 || orig.Settled != 0 {
		t.Errorf("original report changed: %+v", orig)
	}
}

func TestWithSettlements_OnlyCoverUnpaidBills(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 10, d, 12, 0, 0, 0, time.UTC) }
	lunch := func(created time.Time, paid bool) LedgerEntry {
		return LedgerEntry{
			BillRef:      BillRef{ID: "lunch", Amount: 3000, Currency: "USD", CreatorID: alice, Paid: paid, CreatedAt: created},
			Participants: []ShareRecord{{ParticipantID: alice, Share: 15}, {ParticipantID: bob, Share: 15}},
		}
	}
	coffee := LedgerEntry{
		BillRef:      BillRef{ID: "coffee", Amount: 1000, Currency: "USD", CreatorID: alice, CreatedAt: day(5)},
		Participants: []ShareRecord{{ParticipantID: alice, Share: 5}, {ParticipantID: bob, Share: 5}},
	}

	tests := []struct {
		name        string
		created     []LedgerEntry
		settlements []SettlementForBalance
		wantType    Direction
		wantNet     money.Money
		wantSettled money.Money
		wantEntries int
	}{
		{
			name:        "partial settlement on an unpaid bill",
			created:     []LedgerEntry{lunch(day(1), false)},
			settlements: []SettlementForBalance{{FromUserID: bob, ToUserID: alice, Amount: 500, RecordedAt: day(2)}},
			wantType:    DirectionOwed,
			wantNet:     1000,
			wantSettled: -500,
			wantEntries: 1,
		},
		{
			name:        "settlement then bill marked paid leaves nothing",
			created:     []LedgerEntry{lunch(day(1), true)},
			settlements: []SettlementForBalance{{FromUserID: bob, ToUserID: alice, Amount: 1500, RecordedAt: day(2)}},
			wantType:    DirectionEven,
			wantEntries: 0,
		},
		{
			name:        "old settlement does not cover a newer bill",
			created:     []LedgerEntry{lunch(day(1), true), coffee},
			settlements: []SettlementForBalance{{FromUserID: bob, ToUserID: alice, Amount: 1500, RecordedAt: day(2)}},
			wantType:    DirectionOwed,
			wantNet:     500,
			wantEntries: 1,
		},
		{
			name:        "overpayment is capped at the debt",
			created:     []LedgerEntry{coffee},
			settlements: []SettlementForBalance{{FromUserID: bob, ToUserID: alice, Amount: 2000, RecordedAt: day(6)}},
			wantType:    DirectionEven,
			wantSettled: -500,
			wantEntries: 1,
		},
		{
			name:        "payment in the wrong direction is ignored",
			created:     []LedgerEntry{coffee},
			settlements: []SettlementForBalance{{FromUserID: alice, ToUserID: bob, Amount: 300, RecordedAt: day(6)}},
			wantType:    DirectionOwed,
			wantNet:     500,
			wantEntries: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := ComputeBalances(alice, nil, tt.created).WithSettlements(alice, tt.settlements)

			if len(report.AllBalances) != tt.wantEntries {
				t.Fatalf("AllBalances = %+v, want %d entries", report.AllBalances, tt.wantEntries)
			}
			if tt.wantEntries > 0 {
				got := report.AllBalances[0]
				if got.Type != tt.wantType || got.Net != tt.wantNet || got.Settled != tt.wantSettled {
					t.Errorf("balance = %+v, want type %v net %v settled %v", got, tt.wantType, tt.wantNet, tt.wantSettled)
				}
			}
			if got := BalanceWith(report, bob).Type; got != tt.wantType {
				t.Errorf("BalanceWith().Type = %v, want %v", got, tt.wantType)
			}
			if report.Summary.TotalOwe != 0 {
				t.Errorf("TotalOwe = %v, want 0", report.Summary.TotalOwe)
			}
		})
	}
}

func TestBalanceWith_Unknown(t *testing.T) {
	got := BalanceWith(BalanceReport{}, "dave@example.com")
	if got.Type != DirectionEven || got.Amount != 0 || got.Currency != "USD" || got.With != "dave@example.com" {
		t.Errorf("BalanceWith(unknown) = %+v, want even USD zero balance", got)
	}
}

func TestBalanceWith_EvenIsEmpty(t *testing.T) {
	created := []LedgerEntry{{
		BillRef:      BillRef{ID: "b1", Currency: "EUR", CreatorID: alice},
		Participants: []ShareRecord{{ParticipantID: bob, Share: 12.5}},
	}}
	participations := []ParticipationRecord{{
		ParticipantID: alice,
		Share:         12.5,
		Bill:          &BillRef{ID: "b2", Currency: "EUR", CreatorID: bob},
	}}

	got := BalanceWith(ComputeBalances(alice, participations, created), bob)
	if got.Type != DirectionEven || got.Currency != money.DefaultCurrency || len(got.Bills) != 0 || got.YouOwe != 0 {
		t.Errorf("BalanceWith(even) = %+v, want empty USD even balance", got)
	}
}

func TestSuggestSettlement(t *testing.T) {
	owe := NetBalance{With: bob, Amount: 1200, Type: DirectionOwe, Currency: "GBP"}
	got := SuggestSettlement(alice, owe)
	want := Transfer{From: alice, To: bob, Amount: 1200, Currency: "GBP"}
	if got != want {
		t.Errorf("SuggestSettlement(owe) = %+v, want %+v", got, want)
	}

	owed := NetBalance{With: bob, Amount: 300, Type: DirectionOwed, Currency: "USD"}
	got = SuggestSettlement(alice, owed)
	want = Transfer{From: bob, To: alice, Amount: 300, Currency: "USD"}
	if got != want {
		t.Errorf("SuggestSettlement(owed) = %+v, want %+v", got, want)
	}
}
