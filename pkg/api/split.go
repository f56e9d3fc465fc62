package api

import (
	"time"

	"github.com/swiffapp/swiff/internal/money"
)

// Share is one participant's portion of a bill.
type Share struct {
	Email      string        `json:"email"`
	Name       string        `json:"name,omitempty"`
	Amount     money.Money   `json:"amount"`
	Percentage money.Percent `json:"percentage,omitempty"`
}

// ParticipantInput names a participant and, for custom and percentage
// splits, what they were allocated.
type ParticipantInput struct {
	Email      string        `json:"email"`
	Name       string        `json:"name,omitempty"`
	Amount     money.Money   `json:"amount,omitempty"`
	Percentage money.Percent `json:"percentage,omitempty"`
}

// SplitInput selects a split method and lists the participants.
// Method is one of "equal", "custom" or "percentage".
type SplitInput struct {
	Method       string             `json:"method"`
	Participants []ParticipantInput `json:"participants"`
}

// BillInput holds the editable fields of a bill. DueDate uses DateLayout.
type BillInput struct {
	Name     string      `json:"name"`
	Amount   money.Money `json:"amount"`
	Currency string      `json:"currency,omitempty"`
	DueDate  string      `json:"due_date"`
	Category string      `json:"category,omitempty"`
	Notes    string      `json:"notes,omitempty"`
	GroupID  string      `json:"group_id,omitempty"`
	Split    *SplitInput `json:"split,omitempty"`
}

// Bill is a stored bill as returned to clients.
type Bill struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Amount       money.Money `json:"amount"`
	Currency     string      `json:"currency"`
	DueDate      string      `json:"due_date"`
	Category     string      `json:"category,omitempty"`
	Notes        string      `json:"notes,omitempty"`
	CreatedBy    string      `json:"created_by"`
	GroupID      string      `json:"group_id,omitempty"`
	Paid         bool        `json:"paid"`
	PaidAt       *time.Time  `json:"paid_at,omitempty"`
	Status       string      `json:"status"`
	DaysUntilDue int         `json:"days_until_due"`
	SplitMethod  string      `json:"split_method,omitempty"`
	SplitSummary string      `json:"split_summary,omitempty"`
	Participants []Share     `json:"participants"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type CreateBillRequest struct {
	BillInput
}

type GetBillRequest struct {
	ID string `json:"id"`
}

type UpdateBillRequest struct {
	ID string `json:"id"`
	BillInput
}

type DeleteBillRequest struct {
	ID string `json:"id"`
}

type DeleteBillResponse struct{}

// MarkBillPaidRequest sets or clears a bill's paid flag.
type MarkBillPaidRequest struct {
	ID   string `json:"id"`
	Paid bool   `json:"paid"`
}

// BillResponse carries a single bill.
type BillResponse struct {
	Bill Bill `json:"bill"`
}

// ListBillsRequest lists the caller's bills. Paid filters by paid flag when
// set. Search matches bill names case-insensitively. DueFrom and DueTo are
// inclusive DateLayout bounds. UpcomingDays selects unpaid bills due between
// today and that many days ahead; Overdue selects unpaid bills due before
// today. The two cannot be combined.
type ListBillsRequest struct {
	Paid         *bool  `json:"paid,omitempty"`
	Category     string `json:"category,omitempty"`
	Search       string `json:"search,omitempty"`
	DueFrom      string `json:"due_from,omitempty"`
	DueTo        string `json:"due_to,omitempty"`
	UpcomingDays int    `json:"upcoming_days,omitempty"`
	Overdue      bool   `json:"overdue,omitempty"`
}

type ListBillsResponse struct {
	Bills []Bill `json:"bills"`
}

// EqualSplitRequest previews an equal split.
type EqualSplitRequest struct {
	Total            money.Money `json:"total"`
	ParticipantCount int         `json:"participant_count"`
}

type EqualSplitResponse struct {
	AmountPerPerson money.Money   `json:"amount_per_person"`
	Shares          []money.Money `json:"shares"`
	TotalAllocated  money.Money   `json:"total_allocated"`
}

// ValidateSplitRequest checks custom or percentage allocations against Total.
type ValidateSplitRequest struct {
	Total money.Money `json:"total"`
	Split SplitInput  `json:"split"`
}

type ValidateSplitResponse struct {
	Valid            bool          `json:"valid"`
	Error            string        `json:"error,omitempty"`
	RemainingAmount  money.Money   `json:"remaining_amount,omitempty"`
	RemainingPercent money.Percent `json:"remaining_percent,omitempty"`
	TotalAllocated   money.Money   `json:"total_allocated,omitempty"`
	TotalPercentage  money.Percent `json:"total_percentage,omitempty"`
}

// CalculateSplitRequest previews the shares of a split without storing anything.
type CalculateSplitRequest struct {
	Total money.Money `json:"total"`
	Split SplitInput  `json:"split"`
}

type CalculateSplitResponse struct {
	Shares         []Share     `json:"shares"`
	TotalAllocated money.Money `json:"total_allocated"`
	Summary        string      `json:"summary"`
}

// Contribution is what one participant owes and paid on a bill.
type Contribution struct {
	ID    string      `json:"id"`
	Share money.Money `json:"share"`
	Paid  money.Money `json:"paid"`
}

// Transfer is a suggested payment from a debtor to a creditor.
type Transfer struct {
	From     string      `json:"from"`
	To       string      `json:"to"`
	Amount   money.Money `json:"amount"`
	Currency string      `json:"currency,omitempty"`
}

// SimplifyDebtsRequest works out who pays whom for one bill.
// When nobody reports a paid amount, PayerID is taken to have paid everything.
type SimplifyDebtsRequest struct {
	Participants []Contribution `json:"participants"`
	PayerID      string         `json:"payer_id,omitempty"`
	Currency     string         `json:"currency,omitempty"`
}

type SimplifyDebtsResponse struct {
	Transfers []Transfer `json:"transfers"`
}
