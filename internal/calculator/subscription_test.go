package calculator

import (
	"testing"

	"github.com/swiffapp/swiff/internal/money"
)

func TestNormalizeCost(t *testing.T) {
	tests := []struct {
		cycle       BillingCycle
		amount      money.Money
		wantMonthly money.Money
		wantYearly  money.Money
	}{
		{CycleWeekly, 1000, 4330, 52000},
		{CycleMonthly, 1599, 1599, 19188},
		{CycleQuarterly, 1000, 333, 4000},
		{CycleYearly, 9999, 833, 9999},
		{CycleYearly, 1000, 83, 1000},
		{"fortnightly", 500, 500, 6000},
	}

	for _, tt := range tests {
		t.Run(string(tt.cycle), func(t *testing.T) {
			got := NormalizeCost(tt.amount, tt.cycle)
			if got.Monthly != tt.wantMonthly || got.Yearly != tt.wantYearly {
				t.Errorf("NormalizeCost(%v, %s) = %+v, want monthly %v yearly %v",
					tt.amount, tt.cycle, got, tt.wantMonthly, tt.wantYearly)
			}
		})
	}
}

func TestTotalCosts(t *testing.T) {
	subs := []SubscriptionCost{
		{Amount: 1599, Cycle: CycleMonthly, Active: true},
		{Amount: 9999, Cycle: CycleYearly, Active: true},
		{Amount: 1000, Cycle: CycleWeekly, Active: false},
	}
	want := CostTotals{Monthly: 1599 + 833, Yearly: 19188 + 9999, Count: 2}
	if got := TotalCosts(subs); got != want {
		t.Errorf("TotalCosts() = %+v, want %+v", got, want)
	}
	if got := TotalCosts(nil); got != (CostTotals{}) {
		t.Errorf("TotalCosts(nil) = %+v, want zero", got)
	}
}

func TestParseBillingCycle(t *testing.T) {
	for _, in := range []string{"weekly", " Monthly ", "QUARTERLY", "yearly"} {
		if _, err := ParseBillingCycle(in); err != nil {
			t.Errorf("ParseBillingCycle(%q) error: %v", in, err)
		}
	}
	if _, err := ParseBillingCycle("daily"); err == nil {
		t.Error("ParseBillingCycle(daily) expected error")
	}
}
