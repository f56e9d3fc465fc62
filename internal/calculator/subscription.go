package calculator

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/swiffapp/swiff/internal/money"
)

// BillingCycle is how often a subscription renews.
type BillingCycle string

const (
	CycleWeekly    BillingCycle = "weekly"
	CycleMonthly   BillingCycle = "monthly"
	CycleQuarterly BillingCycle = "quarterly"
	CycleYearly    BillingCycle = "yearly"
)

// ParseBillingCycle maps a name such as "Monthly" to a BillingCycle.
func ParseBillingCycle(s string) (BillingCycle, error) {
	switch c := BillingCycle(strings.ToLower(strings.TrimSpace(s))); c {
	case CycleWeekly, CycleMonthly, CycleQuarterly, CycleYearly:
		return c, nil
	default:
		return "", fmt.Errorf("unknown billing cycle: %q", s)
	}
}

// weeksPerMonth is the average month length used for weekly prices.
var weeksPerMonth = decimal.RequireFromString("4.33")

// RecurringCost is a subscription price expressed per month and per year.
type RecurringCost struct {
	Monthly money.Money
	Yearly  money.Money
}

// NormalizeCost converts amount charged once per cycle into monthly and
// yearly costs, each rounded to the cent. An unrecognised cycle is treated
// as monthly.
func NormalizeCost(amount money.Money, cycle BillingCycle) RecurringCost {
	a := amount.Decimal()
	var monthly, yearly decimal.Decimal
	switch cycle {
	case CycleWeekly:
		monthly = a.Mul(weeksPerMonth)
		yearly = a.Mul(decimal.NewFromInt(52))
	case CycleQuarterly:
		monthly = a.Div(decimal.NewFromInt(3))
		yearly = a.Mul(decimal.NewFromInt(4))
	case CycleYearly:
		monthly = a.Div(decimal.NewFromInt(12))
		yearly = a
	default:
		monthly = a
		yearly = a.Mul(decimal.NewFromInt(12))
	}
	return RecurringCost{Monthly: toCents(monthly), Yearly: toCents(yearly)}
}

// toCents rounds d to the cent, saturating at the supported range.
func toCents(d decimal.Decimal) money.Money {
	m, err := money.FromDecimal(d)
	if err != nil {
		if d.IsNegative() {
			return money.Money(-maxMoney)
		}
		return money.Money(maxMoney)
	}
	return m
}

const maxMoney = 1<<62 - 1

// SubscriptionCost is the part of a subscription TotalCosts needs.
type SubscriptionCost struct {
	Amount money.Money
	Cycle  BillingCycle
	Active bool
}

// CostTotals sums the recurring cost of active subscriptions.
type CostTotals struct {
	Monthly money.Money
	Yearly  money.Money
	Count   int
}

// TotalCosts adds up the normalised costs of the active subscriptions. Each
// cost is rounded to the cent before summing.
func TotalCosts(subs []SubscriptionCost) CostTotals {
	var t CostTotals
	for _, s := range subs {
		if !s.Active {
			continue
		}
		c := NormalizeCost(s.Amount, s.Cycle)
		t.Monthly += c.Monthly
		t.Yearly += c.Yearly
		t.Count++
	}
	return t
}
