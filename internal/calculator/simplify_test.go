package calculator

import (
	"reflect"
	"testing"

	"github.com/swiffapp/swiff/internal/money"
)

func TestCalculateBalances(t *testing.T) {
	tests := []struct {
		name         string
		participants []Contribution
		payerID      string
		want         []Transfer
	}{
		{
			name: "two creditors one debtor needs two transfers",
			participants: []Contribution{
				{ID: "a", Share: 1000, Paid: 2000},
				{ID: "b", Share: 500, Paid: 1000},
				{ID: "c", Share: 1500, Paid: 0},
			},
			want: []Transfer{
				{From: "c", To: "a", Amount: 1000},
				{From: "c", To: "b", Amount: 500},
			},
		},
		{
			name: "payer assumed to cover the bill when nobody reported payment",
			participants: []Contribution{
				{ID: "a", Share: 1000},
				{ID: "b", Share: 1000},
				{ID: "c", Share: 1000},
			},
			payerID: "a",
			want: []Transfer{
				{From: "b", To: "a", Amount: 1000},
				{From: "c", To: "a", Amount: 1000},
			},
		},
		{
			name: "no payments and no payer yields no transfers",
			participants: []Contribution{
				{ID: "a", Share: 1000},
				{ID: "b", Share: 1000},
			},
			want: []Transfer{},
		},
		{
			name: "reported payments win over payerID",
			participants: []Contribution{
				{ID: "a", Share: 500},
				{ID: "b", Share: 500, Paid: 1000},
			},
			payerID: "a",
			want: []Transfer{
				{From: "a", To: "b", Amount: 500},
			},
		},
		{
			name: "payer outside the split",
			participants: []Contribution{
				{ID: "b", Share: 334},
				{ID: "c", Share: 333},
			},
			payerID: "a",
			want: []Transfer{
				{From: "b", To: "a", Amount: 334},
				{From: "c", To: "a", Amount: 333},
			},
		},
		{
			name: "debtor split across creditors in input order",
			participants: []Contribution{
				{ID: "a", Share: 0, Paid: 700},
				{ID: "b", Share: 1000, Paid: 0},
				{ID: "c", Share: 0, Paid: 300},
			},
			want: []Transfer{
				{From: "b", To: "a", Amount: 700},
				{From: "b", To: "c", Amount: 300},
			},
		},
		{
			name: "one cent nets are noise",
			participants: []Contribution{
				{ID: "a", Share: 333, Paid: 334},
				{ID: "b", Share: 334, Paid: 333},
			},
			want: []Transfer{},
		},
		{
			name: "repeated id keeps first position and last value",
			participants: []Contribution{
				{ID: "a", Share: 0, Paid: 100},
				{ID: "b", Share: 500, Paid: 0},
				{ID: "a", Share: 0, Paid: 500},
			},
			want: []Transfer{
				{From: "b", To: "a", Amount: 500},
			},
		},
		{
			name:         "empty",
			participants: nil,
			want:         []Transfer{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateBalances(tt.participants, tt.payerID)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CalculateBalances() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculateBalances_TransferBound(t *testing.T) {
	participants := []Contribution{
		{ID: "a", Share: 1250, Paid: 4000},
		{ID: "b", Share: 1250, Paid: 0},
		{ID: "c", Share: 1250, Paid: 2250},
		{ID: "d", Share: 1250, Paid: 0},
		{ID: "e", Share: 1250, Paid: 0},
	}
	before := append([]Contribution(nil), participants...)

	transfers := CalculateBalances(participants, "")

	var creditors, debtors int
	net := make(map[string]money.Money)
	for _, p := range participants {
		n := p.Paid - p.Share
		net[p.ID] = n
		if n > 0 {
			creditors++
		} else if n < 0 {
			debtors++
		}
	}
	if len(transfers) > creditors+debtors-1 {
		t.Errorf("got %d transfers, want at most %d", len(transfers), creditors+debtors-1)
	}
	for _, tr := range transfers {
		net[tr.From] += tr.Amount
		net[tr.To] -= tr.Amount
	}
	for id, n := range net {
		if n != 0 {
			t.Errorf("%s left with net %v after transfers", id, n)
		}
	}
	if !reflect.DeepEqual(participants, before) {
		t.Error("CalculateBalances mutated its input")
	}
}
