package calculator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/swiffapp/swiff/internal/money"
)

// Method names a split policy on the wire and in storage.
type Method string

const (
	MethodEqual      Method = "equal"
	MethodCustom     Method = "custom"
	MethodPercentage Method = "percentage"
)

// ErrNoPolicy is returned by Split when called without a policy.
var ErrNoPolicy = errors.New("split policy is required")

// ParseMethod maps a method name such as "Equal" or "percentage" to a Method.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case MethodEqual, MethodCustom, MethodPercentage:
		return m, nil
	default:
		return "", fmt.Errorf("unknown split method: %q", s)
	}
}

// MethodSummary describes how a bill is split, for display.
func MethodSummary(method Method, participantCount int) string {
	switch method {
	case MethodEqual:
		return fmt.Sprintf("Split equally among %d people", participantCount)
	case MethodCustom:
		return fmt.Sprintf("Custom amounts for %d people", participantCount)
	case MethodPercentage:
		return fmt.Sprintf("Percentage-based split among %d people", participantCount)
	default:
		return "Split method not specified"
	}
}

// Policy is a split policy: one of Equal, Custom or Percentage.
type Policy interface {
	Method() Method
	isPolicy()
}

// Equal divides the bill evenly.
type Equal struct{}

// Custom assigns entered amounts per participant.
type Custom struct {
	Amounts []CustomEntry
}

// Percentage assigns entered percentages per participant.
type Percentage struct {
	Percentages []PercentageEntry
}

func (Equal) Method() Method      { return MethodEqual }
func (Custom) Method() Method     { return MethodCustom }
func (Percentage) Method() Method { return MethodPercentage }

func (Equal) isPolicy()      {}
func (Custom) isPolicy()     {}
func (Percentage) isPolicy() {}

// SplitError reports a custom or percentage split that does not reconcile.
// It carries the same information as the validation result so callers can
// tell the user how much is left to allocate.
type SplitError struct {
	Method           Method
	Message          string
	RemainingAmount  money.Money
	RemainingPercent money.Percent
}

func (e *SplitError) Error() string {
	return fmt.Sprintf("invalid %s split: %s", e.Method, e.Message)
}

// Split computes every participant's share of total under policy.
//
// Shares are returned in participant order and always sum to total. Custom
// and percentage entries are matched to participants by ID; a participant
// without an entry counts as zero, which fails validation. Invalid
// allocations are reported as *SplitError.
func Split(total money.Money, participants []string, policy Policy) ([]Share, error) {
	if policy == nil {
		return nil, ErrNoPolicy
	}
	if len(participants) == 0 {
		return []Share{}, nil
	}

	switch p := policy.(type) {
	case Equal:
		eq := ComputeEqualSplit(total, len(participants))
		shares := make([]Share, len(participants))
		for i, id := range participants {
			shares[i] = Share{ParticipantID: id, Amount: eq.Shares[i]}
		}
		return shares, nil

	case Custom:
		byID := make(map[string]money.Money, len(p.Amounts))
		for _, e := range p.Amounts {
			byID[e.ParticipantID] = e.Amount
		}
		entries := make([]CustomEntry, len(participants))
		for i, id := range participants {
			entries[i] = CustomEntry{ParticipantID: id, Amount: byID[id]}
		}

		v := ValidateCustomSplit(entries, total)
		if !v.Valid {
			return nil, &SplitError{Method: MethodCustom, Message: v.Error, RemainingAmount: v.Remaining}
		}

		shares := make([]Share, len(entries))
		for i, e := range entries {
			shares[i] = Share{ParticipantID: e.ParticipantID, Amount: e.Amount}
		}
		// Absorb the cent the tolerance lets through.
		if diff := total - v.TotalAllocated; diff != 0 {
			shares[largestShare(shares)].Amount += diff
		}
		return shares, nil

	case Percentage:
		byID := make(map[string]money.Percent, len(p.Percentages))
		for _, e := range p.Percentages {
			byID[e.ParticipantID] = e.Percentage
		}
		entries := make([]PercentageEntry, len(participants))
		for i, id := range participants {
			entries[i] = PercentageEntry{ParticipantID: id, Percentage: byID[id]}
		}

		v := ValidatePercentageSplit(entries)
		if !v.Valid {
			return nil, &SplitError{Method: MethodPercentage, Message: v.Error, RemainingPercent: v.Remaining}
		}
		return CalculatePercentageSplit(total, entries).Shares, nil

	default:
		return nil, fmt.Errorf("unsupported split policy %T", policy)
	}
}
