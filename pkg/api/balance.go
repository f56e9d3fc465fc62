package api

import (
	"time"

	"github.com/swiffapp/swiff/internal/money"
)

// BalanceBill is one bill's contribution to a balance. Type is "owed" when
// the counterparty owes on this bill, "owe" otherwise.
type BalanceBill struct {
	BillID   string      `json:"bill_id"`
	BillName string      `json:"bill_name"`
	Amount   money.Money `json:"amount"`
	DueDate  string      `json:"due_date"`
	Type     string      `json:"type"`
}

// Balance is the net position between the caller and one counterparty.
// Type is "owed", "owe" or "even".
type Balance struct {
	Email       string        `json:"email"`
	DisplayName string        `json:"display_name,omitempty"`
	YouOwe      money.Money   `json:"you_owe"`
	TheyOwe     money.Money   `json:"they_owe"`
	Settled     money.Money   `json:"settled"`
	Net         money.Money   `json:"net"`
	Amount      money.Money   `json:"amount"`
	Type        string        `json:"type"`
	Currency    string        `json:"currency"`
	Bills       []BalanceBill `json:"bills"`
}

type BalanceSummary struct {
	TotalOwed  money.Money `json:"total_owed"`
	TotalOwe   money.Money `json:"total_owe"`
	NetBalance money.Money `json:"net_balance"`
}

// GetBalancesRequest lists the caller's balances. Even balances are left out
// unless IncludeEven is set.
type GetBalancesRequest struct {
	IncludeEven bool `json:"include_even,omitempty"`
}

type GetBalancesResponse struct {
	Summary  BalanceSummary `json:"summary"`
	Balances []Balance      `json:"balances"`
}

type GetBalanceWithRequest struct {
	Email string `json:"email"`
}

type GetBalanceWithResponse struct {
	Balance Balance `json:"balance"`
}

// GetSuggestedSettlementResponse carries the transfer that would clear the
// balance, or nil when the two are even.
type GetSuggestedSettlementResponse struct {
	Settlement *Transfer `json:"settlement,omitempty"`
}

// Settlement is a recorded payment between two people.
type Settlement struct {
	ID         string      `json:"id"`
	GroupID    string      `json:"group_id,omitempty"`
	PayerEmail string      `json:"payer_email"`
	PayeeEmail string      `json:"payee_email"`
	Amount     money.Money `json:"amount"`
	Currency   string      `json:"currency"`
	Notes      string      `json:"notes,omitempty"`
	SettledAt  time.Time   `json:"settled_at"`
	CreatedAt  time.Time   `json:"created_at"`
}

// RecordSettlementRequest records a payment. The caller must be the payer or
// the payee. SettledAt defaults to now.
type RecordSettlementRequest struct {
	PayerEmail string      `json:"payer_email"`
	PayeeEmail string      `json:"payee_email"`
	Amount     money.Money `json:"amount"`
	Currency   string      `json:"currency,omitempty"`
	Notes      string      `json:"notes,omitempty"`
	GroupID    string      `json:"group_id,omitempty"`
	SettledAt  *time.Time  `json:"settled_at,omitempty"`
}

type RecordSettlementResponse struct {
	Settlement Settlement `json:"settlement"`
}

type ListSettlementsRequest struct{}

type ListSettlementsResponse struct {
	Settlements []Settlement `json:"settlements"`
}
