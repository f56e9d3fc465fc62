package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/swiffapp/swiff/pkg/api"
)

// GroupServiceName is the fully-qualified name of the GroupService.
const GroupServiceName = "swiff.v1.GroupService"

// Procedure paths of the GroupService.
const (
	GroupServiceCreateGroupProcedure       = "/swiff.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure          = "/swiff.v1.GroupService/GetGroup"
	GroupServiceListGroupsProcedure        = "/swiff.v1.GroupService/ListGroups"
	GroupServiceAddGroupMembersProcedure   = "/swiff.v1.GroupService/AddGroupMembers"
	GroupServiceGetGroupBalancesProcedure  = "/swiff.v1.GroupService/GetGroupBalances"
	GroupServiceUpdateGroupProcedure       = "/swiff.v1.GroupService/UpdateGroup"
	GroupServiceDeleteGroupProcedure       = "/swiff.v1.GroupService/DeleteGroup"
	GroupServiceRemoveGroupMemberProcedure = "/swiff.v1.GroupService/RemoveGroupMember"
	GroupServiceLeaveGroupProcedure        = "/swiff.v1.GroupService/LeaveGroup"
	GroupServiceListGroupBillsProcedure    = "/swiff.v1.GroupService/ListGroupBills"
)

// GroupServiceHandler is implemented by the server side of the GroupService,
// which manages groups and their balances.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	AddGroupMembers(context.Context, *connect.Request[api.AddGroupMembersRequest]) (*connect.Response[api.GroupResponse], error)
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
	UpdateGroup(context.Context, *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.GroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	RemoveGroupMember(context.Context, *connect.Request[api.RemoveGroupMemberRequest]) (*connect.Response[api.GroupResponse], error)
	LeaveGroup(context.Context, *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.LeaveGroupResponse], error)
	ListGroupBills(context.Context, *connect.Request[api.ListGroupBillsRequest]) (*connect.Response[api.ListGroupBillsResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler for svc. It returns the path to
// mount it on.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	unary(mux, GroupServiceCreateGroupProcedure, svc.CreateGroup, opts)
	unary(mux, GroupServiceGetGroupProcedure, svc.GetGroup, opts)
	unary(mux, GroupServiceListGroupsProcedure, svc.ListGroups, opts)
	unary(mux, GroupServiceAddGroupMembersProcedure, svc.AddGroupMembers, opts)
	unary(mux, GroupServiceGetGroupBalancesProcedure, svc.GetGroupBalances, opts)
	unary(mux, GroupServiceUpdateGroupProcedure, svc.UpdateGroup, opts)
	unary(mux, GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts)
	unary(mux, GroupServiceRemoveGroupMemberProcedure, svc.RemoveGroupMember, opts)
	unary(mux, GroupServiceLeaveGroupProcedure, svc.LeaveGroup, opts)
	unary(mux, GroupServiceListGroupBillsProcedure, svc.ListGroupBills, opts)
	return "/" + GroupServiceName + "/", mux
}

// GroupServiceClient is a client for the GroupService.
type GroupServiceClient interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	AddGroupMembers(context.Context, *connect.Request[api.AddGroupMembersRequest]) (*connect.Response[api.GroupResponse], error)
	GetGroupBalances(context.Context, *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error)
	UpdateGroup(context.Context, *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.GroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	RemoveGroupMember(context.Context, *connect.Request[api.RemoveGroupMemberRequest]) (*connect.Response[api.GroupResponse], error)
	LeaveGroup(context.Context, *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.LeaveGroupResponse], error)
	ListGroupBills(context.Context, *connect.Request[api.ListGroupBillsRequest]) (*connect.Response[api.ListGroupBillsResponse], error)
}

// NewGroupServiceClient constructs a client for the GroupService at baseURL
// (for example, http://localhost:8080).
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroupServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &groupServiceClient{
		createGroup:       connect.NewClient[api.CreateGroupRequest, api.GroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		getGroup:          connect.NewClient[api.GetGroupRequest, api.GroupResponse](httpClient, baseURL+GroupServiceGetGroupProcedure, opts...),
		listGroups:        connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		addGroupMembers:   connect.NewClient[api.AddGroupMembersRequest, api.GroupResponse](httpClient, baseURL+GroupServiceAddGroupMembersProcedure, opts...),
		getGroupBalances:  connect.NewClient[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse](httpClient, baseURL+GroupServiceGetGroupBalancesProcedure, opts...),
		updateGroup:       connect.NewClient[api.UpdateGroupRequest, api.GroupResponse](httpClient, baseURL+GroupServiceUpdateGroupProcedure, opts...),
		deleteGroup:       connect.NewClient[api.DeleteGroupRequest, api.DeleteGroupResponse](httpClient, baseURL+GroupServiceDeleteGroupProcedure, opts...),
		removeGroupMember: connect.NewClient[api.RemoveGroupMemberRequest, api.GroupResponse](httpClient, baseURL+GroupServiceRemoveGroupMemberProcedure, opts...),
		leaveGroup:        connect.NewClient[api.LeaveGroupRequest, api.LeaveGroupResponse](httpClient, baseURL+GroupServiceLeaveGroupProcedure, opts...),
		listGroupBills:    connect.NewClient[api.ListGroupBillsRequest, api.ListGroupBillsResponse](httpClient, baseURL+GroupServiceListGroupBillsProcedure, opts...),
	}
}

type groupServiceClient struct {
	createGroup       *connect.Client[api.CreateGroupRequest, api.GroupResponse]
	getGroup          *connect.Client[api.GetGroupRequest, api.GroupResponse]
	listGroups        *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	addGroupMembers   *connect.Client[api.AddGroupMembersRequest, api.GroupResponse]
	getGroupBalances  *connect.Client[api.GetGroupBalancesRequest, api.GetGroupBalancesResponse]
	updateGroup       *connect.Client[api.UpdateGroupRequest, api.GroupResponse]
	deleteGroup       *connect.Client[api.DeleteGroupRequest, api.DeleteGroupResponse]
	removeGroupMember *connect.Client[api.RemoveGroupMemberRequest, api.GroupResponse]
	leaveGroup        *connect.Client[api.LeaveGroupRequest, api.LeaveGroupResponse]
	listGroupBills    *connect.Client[api.ListGroupBillsRequest, api.ListGroupBillsResponse]
}

func (c *groupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *groupServiceClient) AddGroupMembers(ctx context.Context, req *connect.Request[api.AddGroupMembersRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.addGroupMembers.CallUnary(ctx, req)
}

func (c *groupServiceClient) GetGroupBalances(ctx context.Context, req *connect.Request[api.GetGroupBalancesRequest]) (*connect.Response[api.GetGroupBalancesResponse], error) {
	return c.getGroupBalances.CallUnary(ctx, req)
}

func (c *groupServiceClient) UpdateGroup(ctx context.Context, req *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.updateGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) RemoveGroupMember(ctx context.Context, req *connect.Request[api.RemoveGroupMemberRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.removeGroupMember.CallUnary(ctx, req)
}

func (c *groupServiceClient) LeaveGroup(ctx context.Context, req *connect.Request[api.LeaveGroupRequest]) (*connect.Response[api.LeaveGroupResponse], error) {
	return c.leaveGroup.CallUnary(ctx, req)
}

func (c *groupServiceClient) ListGroupBills(ctx context.Context, req *connect.Request[api.ListGroupBillsRequest]) (*connect.Response[api.ListGroupBillsResponse], error) {
	return c.listGroupBills.CallUnary(ctx, req)
}
