package api

import (
	"time"

	"github.com/swiffapp/swiff/internal/money"
)

// SubscriptionInput holds the editable fields of a subscription.
// NextBillingDate uses DateLayout. BillingCycle is one of weekly, monthly,
// quarterly or yearly.
type SubscriptionInput struct {
	ServiceName     string      `json:"service_name"`
	Amount          money.Money `json:"amount"`
	Currency        string      `json:"currency,omitempty"`
	BillingCycle    string      `json:"billing_cycle"`
	NextBillingDate string      `json:"next_billing_date"`
	Category        string      `json:"category,omitempty"`
	// AutoRenew defaults to true when omitted.
	AutoRenew *bool  `json:"auto_renew,omitempty"`
	Notes     string `json:"notes,omitempty"`
	IconURL   string `json:"icon_url,omitempty"`
}

// Subscription is a stored subscription with its derived costs.
type Subscription struct {
	ID               string      `json:"id"`
	ServiceName      string      `json:"service_name"`
	Amount           money.Money `json:"amount"`
	Currency         string      `json:"currency"`
	BillingCycle     string      `json:"billing_cycle"`
	NextBillingDate  string      `json:"next_billing_date"`
	DaysUntilRenewal int         `json:"days_until_renewal"`
	Category         string      `json:"category,omitempty"`
	AutoRenew        bool        `json:"auto_renew"`
	Notes            string      `json:"notes,omitempty"`
	IconURL          string      `json:"icon_url,omitempty"`
	Status           string      `json:"status"`
	MonthlyCost      money.Money `json:"monthly_cost"`
	YearlyCost       money.Money `json:"yearly_cost"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
	CancelledAt      *time.Time  `json:"cancelled_at,omitempty"`
}

// SubscriptionCosts totals the active subscriptions of a list.
type SubscriptionCosts struct {
	Monthly money.Money `json:"monthly"`
	Yearly  money.Money `json:"yearly"`
	Count   int         `json:"count"`
}

type CreateSubscriptionRequest struct {
	SubscriptionInput
}

type SubscriptionResponse struct {
	Subscription Subscription `json:"subscription"`
}

type GetSubscriptionRequest struct {
	ID string `json:"id"`
}

// ListSubscriptionsRequest lists the caller's subscriptions. Status is
// "active", "cancelled" or "all" (the default). SortBy is next_billing_date
// (the default), amount or service_name.
type ListSubscriptionsRequest struct {
	Status     string `json:"status,omitempty"`
	Category   string `json:"category,omitempty"`
	SortBy     string `json:"sort_by,omitempty"`
	Descending bool   `json:"descending,omitempty"`
}

type ListSubscriptionsResponse struct {
	Subscriptions []Subscription    `json:"subscriptions"`
	Totals        SubscriptionCosts `json:"totals"`
}

// UpdateSubscriptionRequest replaces a subscription's editable fields.
type UpdateSubscriptionRequest struct {
	ID string `json:"id"`
	SubscriptionInput
}

type CancelSubscriptionRequest struct {
	ID string `json:"id"`
}

// ReactivateSubscriptionRequest restarts a cancelled subscription from
// NextBillingDate (DateLayout).
type ReactivateSubscriptionRequest struct {
	ID              string `json:"id"`
	NextBillingDate string `json:"next_billing_date"`
}

type DeleteSubscriptionRequest struct {
	ID string `json:"id"`
}

type DeleteSubscriptionResponse struct{}

// GetUpcomingRenewalsRequest lists active subscriptions renewing within Days
// days from today. Days defaults to 7.
type GetUpcomingRenewalsRequest struct {
	Days int `json:"days,omitempty"`
}

type GetUpcomingRenewalsResponse struct {
	Subscriptions []Subscription `json:"subscriptions"`
}

type GetSubscriptionCostsRequest struct{}

type GetSubscriptionCostsResponse struct {
	Totals SubscriptionCosts `json:"totals"`
}
