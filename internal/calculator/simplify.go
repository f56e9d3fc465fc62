package calculator

import "github.com/swiffapp/swiff/internal/money"

// settleThreshold is the amount at or below which a balance or transfer is
// treated as rounding noise.
const settleThreshold money.Money = 1

// Contribution is what one participant owes on a bill and what they paid.
type Contribution struct {
	ID    string
	Share money.Money
	Paid  money.Money
}

// Transfer is a payment from a debtor to a creditor.
type Transfer struct {
	From     string
	To       string
	Amount   money.Money
	Currency string
}

// CalculateBalances works out who pays whom to settle a bill.
//
// Each participant's net is Paid - Share. Creditors (net > 0) and debtors
// (net < 0) keep their input order, and are matched greedily: the current
// debtor pays the current creditor the smaller of the two remainders, and
// whichever side is exhausted advances. This yields at most
// creditors+debtors-1 transfers.
//
// payerID is consulted only when no participant reports a paid amount. Then
// payerID is assumed to have paid the sum of all shares, and a payer who is
// not a participant is added with a zero share. Without this, a bill with no
// recorded payments nets to nothing and yields no transfers; callers that
// want that pure net computation pass an empty payerID. Repeated IDs keep
// their first position and their last values.
func CalculateBalances(participants []Contribution, payerID string) []Transfer {
	contribs := dedupeContributions(participants)
	if payerID != "" && !anyPaid(contribs) {
		contribs = assumePayerPaid(contribs, payerID)
	}

	type party struct {
		id     string
		amount money.Money
	}
	var creditors, debtors []party
	for _, c := range contribs {
		net := c.Paid - c.Share
		if net > settleThreshold {
			creditors = append(creditors, party{id: c.ID, amount: net})
		} else if net < -settleThreshold {
			debtors = append(debtors, party{id: c.ID, amount: -net})
		}
	}

	transfers := []Transfer{}
	ci, di := 0, 0
	for ci < len(creditors) && di < len(debtors) {
		creditor := &creditors[ci]
		debtor := &debtors[di]

		amount := min(creditor.amount, debtor.amount)
		if amount > settleThreshold {
			transfers = append(transfers, Transfer{From: debtor.id, To: creditor.id, Amount: amount})
		}

		creditor.amount -= amount
		debtor.amount -= amount

		if creditor.amount < settleThreshold {
			ci++
		}
		if debtor.amount < settleThreshold {
			di++
		}
	}

	return transfers
}

func dedupeContributions(in []Contribution) []Contribution {
	out := make([]Contribution, 0, len(in))
	pos := make(map[string]int, len(in))
	for _, c := range in {
		if i, ok := pos[c.ID]; ok {
			out[i] = c
			continue
		}
		pos[c.ID] = len(out)
		out = append(out, c)
	}
	return out
}

func anyPaid(contribs []Contribution) bool {
	for _, c := range contribs {
		if c.Paid != 0 {
			return true
		}
	}
	return false
}

func assumePayerPaid(contribs []Contribution, payerID string) []Contribution {
	var total money.Money
	payerIdx := -1
	for i, c := range contribs {
		total += c.Share
		if c.ID == payerID {
			payerIdx = i
		}
	}
	if payerIdx < 0 {
		return append(contribs, Contribution{ID: payerID, Paid: total})
	}
	contribs[payerIdx].Paid = total
	return contribs
}
