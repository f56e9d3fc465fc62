package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/swiffapp/swiff/internal/models"
	"github.com/swiffapp/swiff/internal/storage"
	"github.com/swiffapp/swiff/pkg/api"
	"github.com/swiffapp/swiff/pkg/api/apiconnect"
)

var _ apiconnect.GroupServiceHandler = (*GroupService)(nil)

// GroupService implements the Connect GroupService
type GroupService struct {
	store storage.Store
	now   func() time.Time
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store, now: time.Now}
}

// normalizeMembers lowercases and dedupes member emails, keeping first
// occurrence order and dropping blanks.
func normalizeMembers(members []string) []string {
	seen := make(map[string]bool, len(members))
	out := make([]string, 0, len(members))
	for _, m := range members {
		email := models.NormalizeEmail(m)
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true
		out = append(out, email)
	}
	return out
}

// memberGroup loads a group the caller belongs to. Non-members get NotFound
// so group IDs are not disclosed.
func (s *GroupService) memberGroup(ctx context.Context, groupID string) (*models.Group, string, error) {
	caller, err := callerEmail(ctx)
	if err != nil {
		return nil, "", err
	}
	if groupID == "" {
		return nil, "", invalidArgument("group_id required")
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, "", storeError("failed to get group", err, "group_id", groupID)
	}
	if !group.HasMember(caller) {
		slog.Warn("Group access denied", "group_id", groupID, "email", caller)
		return nil, "", connect.NewError(connect.CodeNotFound, storage.ErrNotFound)
	}
	return group, caller, nil
}

// CreateGroup creates a new group. The caller is always its first member.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	caller, err := callerEmail(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("group name is required")
	}

	group := &models.Group{
		Name:        name,
		Description: strings.TrimSpace(req.Msg.Description),
		CreatedBy:   caller,
		Members:     normalizeMembers(append([]string{caller}, req.Msg.Members...)),
	}

	// Save to storage (generates ID and CreatedAt)
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, storeError("CreateGroup failed", err)
	}

	slog.Info("Group created", "group_id", group.ID)
	return connect.NewResponse(&api.GroupResponse{Group: toAPIGroup(group)}), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.ID)

	group, _, err := s.memberGroup(ctx, req.Msg.ID)
	if err != nil {
		return nil, err
	}

	slog.Info("GetGroup successful", "group_id", group.ID, "name", group.Name)
	return connect.NewResponse(&api.GroupResponse{Group: toAPIGroup(group)}), nil
}

// ListGroups retrieves the groups the caller belongs to.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	caller, err := callerEmail(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.store.ListGroupsForMember(ctx, caller)
	if err != nil {
		return nil, storeError("ListGroups failed", err, "email", caller)
	}

	out := make([]api.Group, len(groups))
	for i, group := range groups {
		out[i] = toAPIGroup(group)
	}

	slog.Info("ListGroups successful", "count", len(groups))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// AddGroupMembers adds people to a group the caller belongs to. Existing
// members are left as they are.
func (s *GroupService) AddGroupMembers(ctx context.Context, req *connect.Request[api.AddGroupMembersRequest]) (*connect.Response[api.GroupResponse], error) {
	group, _, err := s.memberGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	members := normalizeMembers(req.Msg.Members)
	if len(members) == 0 {
		return nil, invalidArgument("at least one member is required")
	}

	if err := s.store.AddGroupMembers(ctx, group.ID, members); err != nil {
		return nil, storeError("AddGroupMembers failed", err, "group_id", group.ID)
	}

	updated, err := s.store.GetGroup(ctx, group.ID)
	if err != nil {
		return nil, storeError("failed to fetch updated group", err, "group_id", group.ID)
	}

	slog.Info("Group members added", "group_id", group.ID, "added", len(members))
	return connect.NewResponse(&api.GroupResponse{Group: toAPIGroup(updated)}), nil
}

// GetGroupBalances calculates balances across all unpaid bills in a group.
func (s *GroupService) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	groupID := req.Msg.GroupID
	slog.Info("GetGroupBalances request received", "group_id", groupID)

	if _, _, err := s.memberGroup(ctx, groupID); err != nil {
		return nil, err
	}

	members, transfers, currency, err := groupBalances(ctx, s.store, groupID)
	if err != nil {
		return nil, storeError("GetGroupBalances failed", err, "group_id", groupID)
	}

	out := make([]api.MemberBalance, len(members))
	for i, m := range members {
		out[i] = api.MemberBalance{
			Email:      m.Member,
			TotalPaid:  m.TotalPaid,
			TotalOwed:  m.TotalOwed,
			NetBalance: m.NetBalance,
		}
	}

	slog.Info("GetGroupBalances successful",
		"group_id", groupID,
		"members_count", len(members),
		"transfers_count", len(transfers),
	)
	return connect.NewResponse(&api.GetGroupBalancesResponse{
		Members:   out,
		Transfers: toAPITransfers(transfers, currency),
	}), nil
}

// ownedGroup loads a group and checks the caller created it.
func (s *GroupService) ownedGroup(ctx context.Context, groupID string) (*models.Group, string, error) {
	group, caller, err := s.memberGroup(ctx, groupID)
	if err != nil {
		return nil, "", err
	}
	if group.CreatedBy != caller {
		return nil, "", permissionDenied("only the creator can change group %s", groupID)
	}
	return group, caller, nil
}

// requireSettledUp fails unless email has nothing outstanding in the group.
func (s *GroupService) requireSettledUp(ctx context.Context, groupID, email string) error {
	members, _, _, err := groupBalances(ctx, s.store, groupID)
	if err != nil {
		return storeError("failed to compute group balances", err, "group_id", groupID)
	}
	for _, m := range members {
		if m.Member == email && m.NetBalance != 0 {
			return connect.NewError(connect.CodeFailedPrecondition,
				fmt.Errorf("%s has an unsettled balance of %s in this group", email, m.NetBalance))
		}
	}
	return nil
}

// UpdateGroup renames a group or changes its description.
func (s *GroupService) UpdateGroup(ctx context.Context, req *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	slog.Info("UpdateGroup request received", "group_id", req.Msg.GroupID, "name", req.Msg.Name)

	group, _, err := s.ownedGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("group name is required")
	}
	group.Name = name
	group.Description = strings.TrimSpace(req.Msg.Description)

	if err := s.store.UpdateGroup(ctx, group); err != nil {
		return nil, storeError("UpdateGroup failed", err, "group_id", group.ID)
	}

	slog.Info("Group updated", "group_id", group.ID)
	return connect.NewResponse(&api.GroupResponse{Group: toAPIGroup(group)}), nil
}

// DeleteGroup removes a group. Its bills and settlements stay, without a group.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	group, _, err := s.ownedGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}
	if err := s.store.DeleteGroup(ctx, group.ID); err != nil {
		return nil, storeError("DeleteGroup failed", err, "group_id", group.ID)
	}

	slog.Info("Group deleted", "group_id", group.ID)
	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// RemoveGroupMember removes someone other than the creator from a group. The
// member must be settled up within the group.
func (s *GroupService) RemoveGroupMember(ctx context.Context, req *connect.Request[api.RemoveGroupMemberRequest]) (*connect.Response[api.GroupResponse], error) {
	group, _, err := s.ownedGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	email := models.NormalizeEmail(req.Msg.Email)
	switch {
	case email == "":
		return nil, invalidArgument("email is required")
	case email == group.CreatedBy:
		return nil, invalidArgument("the creator cannot be removed from the group")
	case !group.HasMember(email):
		return nil, connect.NewError(connect.CodeNotFound, fmt.Errorf("%s is not a member: %w", email, storage.ErrNotFound))
	}
	if err := s.requireSettledUp(ctx, group.ID, email); err != nil {
		return nil, err
	}

	if err := s.store.RemoveGroupMember(ctx, group.ID, email); err != nil {
		return nil, storeError("RemoveGroupMember failed", err, "group_id", group.ID)
	}
	updated, err := s.store.GetGroup(ctx, group.ID)
	if err != nil {
		return nil, storeError("failed to fetch updated group", err, "group_id", group.ID)
	}

	slog.Info("Group member removed", "group_id", group.ID, "email", email)
	return connect.NewResponse(&api.GroupResponse{Group: toAPIGroup(updated)}), nil
}

// LeaveGroup removes the caller from a group. The creator cannot leave and
// must delete the group instead.
func (s *GroupService) LeaveGroup(ctx context.Context, req *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.LeaveGroupResponse], error) {
	group, caller, err := s.memberGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}
	if group.CreatedBy == caller {
		return nil, connect.NewError(connect.CodeFailedPrecondition,
			fmt.Errorf("the creator cannot leave group %s; delete it instead", group.ID))
	}
	if err := s.requireSettledUp(ctx, group.ID, caller); err != nil {
		return nil, err
	}

	if err := s.store.RemoveGroupMember(ctx, group.ID, caller); err != nil {
		return nil, storeError("LeaveGroup failed", err, "group_id", group.ID)
	}

	slog.Info("Group member left", "group_id", group.ID, "email", caller)
	return connect.NewResponse(&api.LeaveGroupResponse{}), nil
}

// ListGroupBills lists every bill in a group, paid or not, soonest due first.
func (s *GroupService) ListGroupBills(ctx context.Context, req *connect.Request[api.ListGroupBillsRequest]) (*connect.Response[api.ListGroupBillsResponse], error) {
	group, _, err := s.memberGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, err
	}

	bills, err := s.store.ListBillsByGroup(ctx, group.ID)
	if err != nil {
		return nil, storeError("ListGroupBills failed", err, "group_id", group.ID)
	}

	now := s.now()
	out := make([]api.Bill, len(bills))
	for i, b := range bills {
		out[i] = toAPIBill(b, now)
	}

	slog.Info("ListGroupBills successful", "group_id", group.ID, "count", len(bills))
	return connect.NewResponse(&api.ListGroupBillsResponse{Bills: out}), nil
}
