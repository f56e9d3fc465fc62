package calculator

import (
	"fmt"

	"github.com/swiffapp/swiff/internal/money"
)

const (
	// CustomTolerance is the slack allowed between entered custom amounts and
	// the bill total before the split is rejected.
	CustomTolerance money.Money = 1

	// PercentTolerance is the slack allowed around 100% (0.1%).
	PercentTolerance money.Percent = 10
)

// Share represents one participant's portion of a bill.
type Share struct {
	ParticipantID string
	Amount        money.Money
	// Percentage is set only for percentage splits.
	Percentage money.Percent
}

// EqualSplit is the result of ComputeEqualSplit.
type EqualSplit struct {
	AmountPerPerson money.Money
	Shares          []money.Money
	TotalAllocated  money.Money
}

// ComputeEqualSplit divides total among participantCount people.
//
// Every participant gets floor(total / count) cents and the leftover cents go,
// one each, to the earliest participants. The shares always sum to total.
// A non-positive count yields an empty result.
func ComputeEqualSplit(total money.Money, participantCount int) EqualSplit {
	if participantCount <= 0 {
		return EqualSplit{Shares: []money.Money{}}
	}

	n := int64(participantCount)
	base := floorDiv(int64(total), n)
	remainder := int64(total) - base*n

	shares := make([]money.Money, participantCount)
	for i := range shares {
		shares[i] = money.Money(base)
		if int64(i) < remainder {
			shares[i]++
		}
	}

	return EqualSplit{
		AmountPerPerson: money.Money(base),
		Shares:          shares,
		TotalAllocated:  money.Sum(shares...),
	}
}

// CustomEntry is an amount entered by hand for one participant.
// A blank form field is represented by a zero Amount.
type CustomEntry struct {
	ParticipantID string
	Amount        money.Money
}

// CustomValidation is the result of ValidateCustomSplit.
type CustomValidation struct {
	Valid bool
	Error string
	// Remaining is total minus the entered sum; set when the sum is off.
	Remaining money.Money
	// Difference is the entered sum minus total; set when the sum is off.
	Difference     money.Money
	TotalAllocated money.Money
}

// ValidateCustomSplit checks that entered amounts add up to total (within
// CustomTolerance) and that every amount is positive.
func ValidateCustomSplit(entries []CustomEntry, total money.Money) CustomValidation {
	var sum money.Money
	for _, e := range entries {
		sum += e.Amount
	}

	if diff := sum - total; diff.Abs() > CustomTolerance {
		return CustomValidation{
			Error: fmt.Sprintf("Total of custom amounts ($%s) must equal bill total ($%s)",
				sum, total),
			Difference: diff,
			Remaining:  total - sum,
		}
	}

	for _, e := range entries {
		if e.Amount <= 0 {
			return CustomValidation{Error: "All amounts must be greater than zero"}
		}
	}

	return CustomValidation{Valid: true, TotalAllocated: sum}
}

// PercentageEntry is a percentage entered for one participant.
type PercentageEntry struct {
	ParticipantID string
	Percentage    money.Percent
}

// PercentageSplit is the result of CalculatePercentageSplit.
type PercentageSplit struct {
	Shares         []Share
	TotalAllocated money.Money
}

// CalculatePercentageSplit converts percentages into amounts.
//
// Each share is total * percentage rounded to the cent. Whatever rounding
// leaves over is added in full to the largest share (the first one on a tie),
// so the shares reconcile with total.
func CalculatePercentageSplit(total money.Money, entries []PercentageEntry) PercentageSplit {
	shares := make([]Share, len(entries))
	var sum money.Money
	for i, e := range entries {
		shares[i] = Share{
			ParticipantID: e.ParticipantID,
			Amount:        money.MulPercent(total, e.Percentage),
			Percentage:    e.Percentage,
		}
		sum += shares[i].Amount
	}

	if diff := total - sum; diff != 0 && len(shares) > 0 {
		shares[largestShare(shares)].Amount += diff
	}

	var allocated money.Money
	for _, s := range shares {
		allocated += s.Amount
	}
	return PercentageSplit{Shares: shares, TotalAllocated: allocated}
}

// PercentageValidation is the result of ValidatePercentageSplit.
type PercentageValidation struct {
	Valid bool
	Error string
	// Remaining is 100% minus the entered sum; set when the sum is off.
	Remaining       money.Percent
	Difference      money.Percent
	TotalPercentage money.Percent
}

// ValidatePercentageSplit checks that percentages add up to 100 (within
// PercentTolerance) and that each lies in (0, 100].
func ValidatePercentageSplit(entries []PercentageEntry) PercentageValidation {
	var sum money.Percent
	for _, e := range entries {
		sum += e.Percentage
	}

	diff := sum - money.Hundred
	if diff < -PercentTolerance || diff > PercentTolerance {
		return PercentageValidation{
			Error:      fmt.Sprintf("Total of percentages (%s%%) must equal 100%%", sum.StringFixed(1)),
			Difference: diff,
			Remaining:  money.Hundred - sum,
		}
	}

	for _, e := range entries {
		if e.Percentage <= 0 {
			return PercentageValidation{Error: "All percentages must be greater than zero"}
		}
	}
	for _, e := range entries {
		if e.Percentage > money.Hundred {
			return PercentageValidation{Error: "Individual percentages cannot exceed 100%"}
		}
	}

	return PercentageValidation{Valid: true, TotalPercentage: sum}
}

// largestShare returns the index of the first share with the largest amount.
func largestShare(shares []Share) int {
	maxIdx := 0
	for i, s := range shares {
		if s.Amount > shares[maxIdx].Amount {
			maxIdx = i
		}
	}
	return maxIdx
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
