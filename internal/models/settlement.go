package models

import "github.com/swiffapp/swiff/internal/money"

// Settlement is a real-world payment between two people, recorded by one of them.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID optionally ties the settlement to a group's balances.
	GroupID string

	// PayerEmail is the person who paid (debtor settling up).
	PayerEmail string

	// PayeeEmail is the person who received payment (creditor being paid).
	PayeeEmail string

	Amount   money.Money
	Currency string

	// Notes is an optional description for the settlement.
	Notes string

	// SettledAt is the Unix timestamp of the payment.
	SettledAt int64

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64
}
