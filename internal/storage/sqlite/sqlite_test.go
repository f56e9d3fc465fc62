package sqlite

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/swiffapp/swiff/internal/models"
	"github.com/swiffapp/swiff/internal/money"
	"github.com/swiffapp/swiff/internal/storage"
)

const (
	alice = "alice@example.com"
	bob   = "bob@example.com"
	carol = "carol@example.com"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func dinner(due time.Time) *models.Bill {
	return &models.Bill{
		Name:        "Dinner",
		Amount:      money.Cents(9000),
		DueDate:     due,
		CreatedBy:   alice,
		SplitMethod: "equal",
		Participants: []models.BillParticipant{
			{Email: alice, Name: "Alice", Share: 3000},
			{Email: bob, Name: "Bob", Share: 3000},
			{Email: carol, Name: "Carol", Share: 3000},
		},
	}
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	due := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	t.Run("CreateBill generates ID and defaults", func(t *testing.T) {
		bill := dinner(due)
		bill.Name = ""
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
		if bill.ID == "" {
			t.Error("Expected bill ID to be generated")
		}
		if bill.CreatedAt == 0 {
			t.Error("Expected CreatedAt to be set")
		}
		if bill.Currency != money.DefaultCurrency {
			t.Errorf("Currency = %q, want %q", bill.Currency, money.DefaultCurrency)
		}
		if bill.Name != "Split with Alice, Bob, Carol" {
			t.Errorf("Unexpected generated name: %s", bill.Name)
		}
	})

	t.Run("GetBill retrieves complete bill", func(t *testing.T) {
		original := dinner(due)
		original.Category = "food"
		original.Participants[1].Percentage = 3333
		if err := store.CreateBill(ctx, original); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}

		got, err := store.GetBill(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if got.Name != "Dinner" || got.Amount != 9000 || got.Category != "food" {
			t.Errorf("GetBill() = %+v", got)
		}
		if !got.DueDate.Equal(due) {
			t.Errorf("DueDate = %v, want %v", got.DueDate, due)
		}
		if len(got.Participants) != 3 {
			t.Fatalf("Expected 3 participants, got %d", len(got.Participants))
		}
		for i, want := range []string{alice, bob, carol} {
			if got.Participants[i].Email != want {
				t.Errorf("Participant %d = %s, want %s", i, got.Participants[i].Email, want)
			}
		}
		if got.Participants[1].Percentage != 3333 || got.Participants[1].Share != 3000 {
			t.Errorf("Participant bob = %+v", got.Participants[1])
		}
	})

	t.Run("GetBill returns ErrNotFound for nonexistent bill", func(t *testing.T) {
		_, err := store.GetBill(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateBill replaces participants", func(t *testing.T) {
		bill := dinner(due)
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
		bill.Amount = 5000
		bill.Participants = []models.BillParticipant{
			{Email: alice, Share: 2500},
			{Email: bob, Share: 2500},
		}
		if err := store.UpdateBill(ctx, bill); err != nil {
			t.Fatalf("UpdateBill failed: %v", err)
		}

		got, err := store.GetBill(ctx, bill.ID)
		if err != nil {
			t.Fatalf("GetBill failed: %v", err)
		}
		if got.Amount != 5000 || len(got.Participants) != 2 {
			t.Errorf("Updated bill = %+v", got)
		}
	})

	t.Run("UpdateBill on missing bill", func(t *testing.T) {
		err := store.UpdateBill(ctx, &models.Bill{ID: "missing", DueDate: due})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteBill cascades participants", func(t *testing.T) {
		bill := dinner(due)
		if err := store.CreateBill(ctx, bill); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
		if err := store.DeleteBill(ctx, bill.ID); err != nil {
			t.Fatalf("DeleteBill failed: %v", err)
		}
		if _, err := store.GetBill(ctx, bill.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
		if err := store.DeleteBill(ctx, bill.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestListBillsFilter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	late := dinner(base.AddDate(0, 0, 5))
	early := dinner(base)
	for _, b := range []*models.Bill{late, early} {
		if err := store.CreateBill(ctx, b); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
	}
	if err := store.SetBillPaid(ctx, late.ID, true, 1700000000); err != nil {
		t.Fatalf("SetBillPaid failed: %v", err)
	}

	all, err := store.ListBills(ctx, alice, storage.BillFilter{})
	if err != nil {
		t.Fatalf("ListBills failed: %v", err)
	}
	if len(all) != 2 || all[0].ID != early.ID {
		t.Fatalf("ListBills() should return both bills soonest first, got %d", len(all))
	}
	if len(all[0].Participants) != 3 {
		t.Errorf("Expected participants to be loaded, got %d", len(all[0].Participants))
	}

	paid := true
	onlyPaid, err := store.ListBills(ctx, alice, storage.BillFilter{Paid: &paid})
	if err != nil {
		t.Fatalf("ListBills failed: %v", err)
	}
	if len(onlyPaid) != 1 || onlyPaid[0].ID != late.ID || onlyPaid[0].PaidAt != 1700000000 {
		t.Errorf("ListBills(paid) = %+v", onlyPaid)
	}

	if err := store.SetBillPaid(ctx, late.ID, false, 1700000000); err != nil {
		t.Fatalf("SetBillPaid failed: %v", err)
	}
	got, _ := store.GetBill(ctx, late.ID)
	if got.Paid || got.PaidAt != 0 {
		t.Errorf("Expected unpaid bill with cleared PaidAt, got paid=%v paidAt=%d", got.Paid, got.PaidAt)
	}

	none, err := store.ListBills(ctx, bob, storage.BillFilter{})
	if err != nil {
		t.Fatalf("ListBills failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Bob created no bills, got %d", len(none))
	}
}

func TestListBillsSearchAndDueRange(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	names := []string{"Electricity", "Water bill", "100% juice", "Internet_fiber"}
	bills := make([]*models.Bill, len(names))
	for i, name := range names {
		bills[i] = dinner(base.AddDate(0, 0, i*7))
		bills[i].Name = name
		if err := store.CreateBill(ctx, bills[i]); err != nil {
			t.Fatalf("CreateBill failed: %v", err)
		}
	}

	tests := []struct {
		name   string
		filter storage.BillFilter
		want   []int
	}{
		{"search ignores case", storage.BillFilter{NameContains: "BILL"}, []int{1}},
		{"percent is literal", storage.BillFilter{NameContains: "100%"}, []int{2}},
		{"underscore is literal", storage.BillFilter{NameContains: "t_f"}, []int{3}},
		{"no match", storage.BillFilter{NameContains: "gas"}, nil},
		{"inclusive range", storage.BillFilter{DueFrom: base.AddDate(0, 0, 7), DueTo: base.AddDate(0, 0, 14)}, []int{1, 2}},
		{"open start", storage.BillFilter{DueTo: base}, []int{0}},
		{"open end", storage.BillFilter{DueFrom: base.AddDate(0, 0, 15)}, []int{3}},
		{"combined", storage.BillFilter{NameContains: "e", DueFrom: base.AddDate(0, 0, 1)}, []int{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.ListBills(ctx, alice, tt.filter)
			if err != nil {
				t.Fatalf("ListBills failed: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ListBills() returned %d bills, want %d", len(got), len(tt.want))
			}
			for i, idx := range tt.want {
				if got[i].ID != bills[idx].ID {
					t.Errorf("bill %d = %q, want %q", i, got[i].Name, bills[idx].Name)
				}
			}
		})
	}
}

func TestSubscriptions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	netflix := &models.Subscription{
		UserEmail: alice, ServiceName: "Netflix", Amount: 1599, BillingCycle: "monthly",
		NextBillingDate: base.AddDate(0, 0, 10), Category: "streaming", AutoRenew: true,
	}
	github := &models.Subscription{
		UserEmail: alice, ServiceName: "github", Amount: 40000, Currency: "EUR", BillingCycle: "yearly",
		NextBillingDate: base.AddDate(0, 0, 2), Category: "software",
	}
	gym := &models.Subscription{
		UserEmail: alice, ServiceName: "Gym", Amount: 2500, BillingCycle: "monthly",
		NextBillingDate: base.AddDate(0, 0, 5), Category: "fitness", Status: models.SubscriptionCancelled,
	}
	other := &models.Subscription{
		UserEmail: bob, ServiceName: "Spotify", Amount: 1099, BillingCycle: "monthly",
		NextBillingDate: base,
	}
	for _, sub := range []*models.Subscription{netflix, github, gym, other} {
		if err := store.CreateSubscription(ctx, sub); err != nil {
			t.Fatalf("CreateSubscription failed: %v", err)
		}
	}
	if netflix.ID == "" || netflix.Status != models.SubscriptionActive || netflix.Currency != money.DefaultCurrency {
		t.Errorf("CreateSubscription defaults = %+v", netflix)
	}

	got, err := store.GetSubscription(ctx, github.ID)
	if err != nil {
		t.Fatalf("GetSubscription failed: %v", err)
	}
	if got.Amount != 40000 || got.Currency != "EUR" || !got.NextBillingDate.Equal(github.NextBillingDate) || got.AutoRenew {
		t.Errorf("GetSubscription() = %+v", got)
	}
	if _, err := store.GetSubscription(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	ids := func(subs []*models.Subscription) string {
		out := make([]string, len(subs))
		for i, s := range subs {
			out[i] = s.ServiceName
		}
		return strings.Join(out, ",")
	}
	tests := []struct {
		name   string
		filter storage.SubscriptionFilter
		want   string
	}{
		{"default order is next billing date", storage.SubscriptionFilter{}, "github,Gym,Netflix"},
		{"active only", storage.SubscriptionFilter{Status: models.SubscriptionActive}, "github,Netflix"},
		{"category", storage.SubscriptionFilter{Category: "fitness"}, "Gym"},
		{"amount descending", storage.SubscriptionFilter{SortBy: storage.SortByAmount, Descending: true}, "github,Gym,Netflix"},
		{"name ignores case", storage.SubscriptionFilter{SortBy: storage.SortByServiceName}, "github,Gym,Netflix"},
		{"renewal window", storage.SubscriptionFilter{RenewsFrom: base.AddDate(0, 0, 3), RenewsTo: base.AddDate(0, 0, 10)}, "Gym,Netflix"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs, err := store.ListSubscriptions(ctx, alice, tt.filter)
			if err != nil {
				t.Fatalf("ListSubscriptions failed: %v", err)
			}
			if got := ids(subs); got != tt.want {
				t.Errorf("ListSubscriptions() = %s, want %s", got, tt.want)
			}
		})
	}
	if _, err := store.ListSubscriptions(ctx, alice, storage.SubscriptionFilter{SortBy: "id; DROP TABLE bills"}); err == nil {
		t.Error("Expected unknown sort key to fail")
	}

	gym.Status = models.SubscriptionActive
	gym.CancelledAt = 0
	gym.Amount = 3000
	if err := store.UpdateSubscription(ctx, gym); err != nil {
		t.Fatalf("UpdateSubscription failed: %v", err)
	}
	got, _ = store.GetSubscription(ctx, gym.ID)
	if got.Amount != 3000 || !got.IsActive() {
		t.Errorf("updated subscription = %+v", got)
	}
	if err := store.UpdateSubscription(ctx, &models.Subscription{ID: "missing"}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if err := store.DeleteSubscription(ctx, netflix.ID); err != nil {
		t.Fatalf("DeleteSubscription failed: %v", err)
	}
	if err := store.DeleteSubscription(ctx, netflix.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestGroupUpdateRemoveAndDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Flat", CreatedBy: alice, Members: []string{alice, bob, carol}}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	bill := dinner(time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC))
	bill.GroupID = group.ID
	if err := store.CreateBill(ctx, bill); err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	settlement := &models.Settlement{GroupID: group.ID, PayerEmail: bob, PayeeEmail: alice, Amount: 1000}
	if err := store.CreateSettlement(ctx, settlement); err != nil {
		t.Fatalf("CreateSettlement failed: %v", err)
	}

	group.Name = "Flat 4B"
	group.Description = "shared costs"
	if err := store.UpdateGroup(ctx, group); err != nil {
		t.Fatalf("UpdateGroup failed: %v", err)
	}
	if err := store.RemoveGroupMember(ctx, group.ID, bob); err != nil {
		t.Fatalf("RemoveGroupMember failed: %v", err)
	}
	if err := store.RemoveGroupMember(ctx, group.ID, bob); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound removing twice, got %v", err)
	}

	got, err := store.GetGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if got.Name != "Flat 4B" || got.Description != "shared costs" || strings.Join(got.Members, ",") != alice+","+carol {
		t.Errorf("GetGroup() = %+v", got)
	}

	if err := store.DeleteGroup(ctx, group.ID); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	if _, err := store.GetGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := store.DeleteGroup(ctx, group.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound deleting twice, got %v", err)
	}
	if err := store.UpdateGroup(ctx, group); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound updating deleted group, got %v", err)
	}

	kept, err := store.GetBill(ctx, bill.ID)
	if err != nil {
		t.Fatalf("GetBill after group delete failed: %v", err)
	}
	if kept.GroupID != "" {
		t.Errorf("bill GroupID = %q, want empty", kept.GroupID)
	}
	settlements, err := store.ListSettlementsForUser(ctx, bob)
	if err != nil {
		t.Fatalf("ListSettlementsForUser failed: %v", err)
	}
	if len(settlements) != 1 || settlements[0].GroupID != "" {
		t.Errorf("settlements = %+v, want one without a group", settlements)
	}
}

func TestLedgerQueries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	due := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)

	mine := dinner(due)
	if err := store.CreateBill(ctx, mine); err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	theirs := &models.Bill{
		Name: "Taxi", Amount: 2000, DueDate: due, CreatedBy: bob, SplitMethod: "equal",
		Participants: []models.BillParticipant{
			{Email: bob, Share: 1000},
			{Email: alice, Share: 1000},
		},
	}
	if err := store.CreateBill(ctx, theirs); err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}
	// A bill that is not split never shows up in the ledger.
	solo := &models.Bill{Name: "Rent", Amount: 100000, DueDate: due, CreatedBy: alice}
	if err := store.CreateBill(ctx, solo); err != nil {
		t.Fatalf("CreateBill failed: %v", err)
	}

	parts, err := store.ListParticipations(ctx, alice)
	if err != nil {
		t.Fatalf("ListParticipations failed: %v", err)
	}
	if len(parts) != 2 {
		t.Fatalf("Expected 2 participations, got %d", len(parts))
	}
	for _, p := range parts {
		if p.Bill == nil || p.Email != alice {
			t.Errorf("Unexpected participation %+v", p)
		}
	}

	ledger, err := store.ListCreatedSplitBills(ctx, alice)
	if err != nil {
		t.Fatalf("ListCreatedSplitBills failed: %v", err)
	}
	if len(ledger) != 1 || ledger[0].Bill.ID != mine.ID {
		t.Fatalf("Expected only the split dinner, got %+v", ledger)
	}
	if len(ledger[0].Shares) != 3 || ledger[0].Shares[2].Email != carol || ledger[0].Shares[2].Share != 30 {
		t.Errorf("Shares = %+v", ledger[0].Shares)
	}

	// A NULL share is surfaced as NaN for the balance engine to reject.
	if _, err := store.db.ExecContext(ctx,
		`UPDATE bill_participants SET share = NULL WHERE bill_id = ? AND email = ?`, mine.ID, bob); err != nil {
		t.Fatalf("Failed to null share: %v", err)
	}
	ledger, err = store.ListCreatedSplitBills(ctx, alice)
	if err != nil {
		t.Fatalf("ListCreatedSplitBills failed: %v", err)
	}
	if !math.IsNaN(ledger[0].Shares[1].Share) {
		t.Errorf("Expected NaN share for NULL, got %v", ledger[0].Shares[1].Share)
	}
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := models.NewUser(alice, "Alice", "hash")
	if err := store.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := store.CreateUser(ctx, models.NewUser(alice, "Other", "hash")); err == nil {
		t.Error("Expected duplicate email to fail")
	}

	got, err := store.GetUserByEmail(ctx, alice)
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got.ID != user.ID || got.DisplayName != "Alice" {
		t.Errorf("GetUserByEmail() = %+v", got)
	}

	if _, err := store.GetUserByID(ctx, user.ID); err != nil {
		t.Errorf("GetUserByID failed: %v", err)
	}
	if _, err := store.GetUserByEmail(ctx, bob); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	users, err := store.GetUsersByEmails(ctx, []string{alice, bob})
	if err != nil {
		t.Fatalf("GetUsersByEmails failed: %v", err)
	}
	if len(users) != 1 || users[alice] == nil {
		t.Errorf("GetUsersByEmails() = %v", users)
	}
}

func TestGroupsAndSettlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Roommates", CreatedBy: alice, Members: []string{alice, bob}}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if err := store.AddGroupMembers(ctx, group.ID, []string{bob, carol}); err != nil {
		t.Fatalf("AddGroupMembers failed: %v", err)
	}

	got, err := store.GetGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if strings.Join(got.Members, ",") != strings.Join([]string{alice, bob, carol}, ",") {
		t.Errorf("Members = %v", got.Members)
	}

	groups, err := store.ListGroupsForMember(ctx, carol)
	if err != nil {
		t.Fatalf("ListGroupsForMember failed: %v", err)
	}
	if len(groups) != 1 || groups[0].ID != group.ID {
		t.Errorf("ListGroupsForMember() = %v", groups)
	}
	if err := store.AddGroupMembers(ctx, "missing", []string{bob}); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	older := &models.Settlement{GroupID: group.ID, PayerEmail: bob, PayeeEmail: alice, Amount: 1500, SettledAt: 100}
	newer := &models.Settlement{PayerEmail: carol, PayeeEmail: bob, Amount: 700, SettledAt: 200}
	for _, s := range []*models.Settlement{older, newer} {
		if err := store.CreateSettlement(ctx, s); err != nil {
			t.Fatalf("CreateSettlement failed: %v", err)
		}
	}

	forBob, err := store.ListSettlementsForUser(ctx, bob)
	if err != nil {
		t.Fatalf("ListSettlementsForUser failed: %v", err)
	}
	if len(forBob) != 2 || forBob[0].ID != newer.ID {
		t.Errorf("Expected both settlements newest first, got %+v", forBob)
	}
	if forBob[1].Amount != 1500 || forBob[1].Currency != money.DefaultCurrency {
		t.Errorf("Settlement = %+v", forBob[1])
	}
	if forBob[0].GroupID != "" || forBob[1].GroupID != group.ID {
		t.Errorf("GroupIDs = %q, %q, want \"\", %q", forBob[0].GroupID, forBob[1].GroupID, group.ID)
	}
	if forBob[1].PayerEmail != bob || forBob[1].PayeeEmail != alice || forBob[1].SettledAt != 100 {
		t.Errorf("Settlement parties = %+v", forBob[1])
	}

	byGroup, err := store.ListSettlementsByGroup(ctx, group.ID)
	if err != nil {
		t.Fatalf("ListSettlementsByGroup failed: %v", err)
	}
	if len(byGroup) != 1 || byGroup[0].ID != older.ID {
		t.Errorf("ListSettlementsByGroup() = %+v", byGroup)
	}
}

func TestGenerateTitle(t *testing.T) {
	created := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	people := func(names ...string) []models.BillParticipant {
		ps := make([]models.BillParticipant, len(names))
		for i, n := range names {
			ps[i] = models.BillParticipant{Name: n, Email: strings.ToLower(n) + "@example.com"}
		}
		return ps
	}

	tests := []struct {
		participants []models.BillParticipant
		want         string
	}{
		{nil, "Bill - Jan 2, 2026"},
		{people("Alice"), "Split with Alice"},
		{people("Alice", "Bob", "Carol"), "Split with Alice, Bob, Carol"},
		{people("Alice", "Bob", "Carol", "Dan"), "Split with Alice, Bob and 2 others"},
		{[]models.BillParticipant{{Email: bob}}, "Split with " + bob},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := generateTitle(tt.participants, created); got != tt.want {
				t.Errorf("generateTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
