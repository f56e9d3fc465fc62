package api

import (
	"time"

	"github.com/swiffapp/swiff/internal/money"
)

// Group is a named set of members who share bills.
type Group struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by"`
	Members     []string  `json:"members"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateGroupRequest creates a group. The caller is always a member.
type CreateGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Members     []string `json:"members"`
}

type GroupResponse struct {
	Group Group `json:"group"`
}

type GetGroupRequest struct {
	ID string `json:"id"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []Group `json:"groups"`
}

type AddGroupMembersRequest struct {
	GroupID string   `json:"group_id"`
	Members []string `json:"members"`
}

type GetGroupBalancesRequest struct {
	GroupID string `json:"group_id"`
}

// MemberBalance is one member's position in a group.
// NetBalance is positive when the member is owed money.
type MemberBalance struct {
	Email      string      `json:"email"`
	TotalPaid  money.Money `json:"total_paid"`
	TotalOwed  money.Money `json:"total_owed"`
	NetBalance money.Money `json:"net_balance"`
}

type GetGroupBalancesResponse struct {
	Members   []MemberBalance `json:"members"`
	Transfers []Transfer      `json:"transfers"`
}

// UpdateGroupRequest renames a group or changes its description.
type UpdateGroupRequest struct {
	GroupID     string `json:"group_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// DeleteGroupRequest deletes a group. Its bills and settlements are kept
// without a group.
type DeleteGroupRequest struct {
	GroupID string `json:"group_id"`
}

type DeleteGroupResponse struct{}

type RemoveGroupMemberRequest struct {
	GroupID string `json:"group_id"`
	Email   string `json:"email"`
}

type LeaveGroupRequest struct {
	GroupID string `json:"group_id"`
}

type LeaveGroupResponse struct{}

type ListGroupBillsRequest struct {
	GroupID string `json:"group_id"`
}

type ListGroupBillsResponse struct {
	Bills []Bill `json:"bills"`
}
