package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/swiffapp/swiff/pkg/api"
)

// BalanceServiceName is the fully-qualified name of the BalanceService.
const BalanceServiceName = "swiff.v1.BalanceService"

// Procedure paths of the BalanceService.
const (
	BalanceServiceGetBalancesProcedure            = "/swiff.v1.BalanceService/GetBalances"
	BalanceServiceGetBalanceWithProcedure         = "/swiff.v1.BalanceService/GetBalanceWith"
	BalanceServiceGetSuggestedSettlementProcedure = "/swiff.v1.BalanceService/GetSuggestedSettlement"
	BalanceServiceRecordSettlementProcedure       = "/swiff.v1.BalanceService/RecordSettlement"
	BalanceServiceListSettlementsProcedure        = "/swiff.v1.BalanceService/ListSettlements"
)

// BalanceServiceHandler is implemented by the server side of the BalanceService,
// which reports balances and records settlements.
type BalanceServiceHandler interface {
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	GetBalanceWith(context.Context, *connect.Request[api.GetBalanceWithRequest]) (*connect.Response[api.GetBalanceWithResponse], error)
	GetSuggestedSettlement(context.Context, *connect.Request[api.GetBalanceWithRequest]) (*connect.Response[api.GetSuggestedSettlementResponse], error)
	RecordSettlement(context.Context, *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error)
}

// NewBalanceServiceHandler builds an HTTP handler for svc. It returns the path to
// mount it on.
func NewBalanceServiceHandler(svc BalanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	unary(mux, BalanceServiceGetBalancesProcedure, svc.GetBalances, opts)
	unary(mux, BalanceServiceGetBalanceWithProcedure, svc.GetBalanceWith, opts)
	unary(mux, BalanceServiceGetSuggestedSettlementProcedure, svc.GetSuggestedSettlement, opts)
	unary(mux, BalanceServiceRecordSettlementProcedure, svc.RecordSettlement, opts)
	unary(mux, BalanceServiceListSettlementsProcedure, svc.ListSettlements, opts)
	return "/" + BalanceServiceName + "/", mux
}

// BalanceServiceClient is a client for the BalanceService.
type BalanceServiceClient interface {
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	GetBalanceWith(context.Context, *connect.Request[api.GetBalanceWithRequest]) (*connect.Response[api.GetBalanceWithResponse], error)
	GetSuggestedSettlement(context.Context, *connect.Request[api.GetBalanceWithRequest]) (*connect.Response[api.GetSuggestedSettlementResponse], error)
	RecordSettlement(context.Context, *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error)
	ListSettlements(context.Context, *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error)
}

// NewBalanceServiceClient constructs a client for the BalanceService at baseURL
// (for example, http://localhost:8080).
func NewBalanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) BalanceServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &balanceServiceClient{
		getBalances:            connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](httpClient, baseURL+BalanceServiceGetBalancesProcedure, opts...),
		getBalanceWith:         connect.NewClient[api.GetBalanceWithRequest, api.GetBalanceWithResponse](httpClient, baseURL+BalanceServiceGetBalanceWithProcedure, opts...),
		getSuggestedSettlement: connect.NewClient[api.GetBalanceWithRequest, api.GetSuggestedSettlementResponse](httpClient, baseURL+BalanceServiceGetSuggestedSettlementProcedure, opts...),
		recordSettlement:       connect.NewClient[api.RecordSettlementRequest, api.RecordSettlementResponse](httpClient, baseURL+BalanceServiceRecordSettlementProcedure, opts...),
		listSettlements:        connect.NewClient[api.ListSettlementsRequest, api.ListSettlementsResponse](httpClient, baseURL+BalanceServiceListSettlementsProcedure, opts...),
	}
}

type balanceServiceClient struct {
	getBalances            *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	getBalanceWith         *connect.Client[api.GetBalanceWithRequest, api.GetBalanceWithResponse]
	getSuggestedSettlement *connect.Client[api.GetBalanceWithRequest, api.GetSuggestedSettlementResponse]
	recordSettlement       *connect.Client[api.RecordSettlementRequest, api.RecordSettlementResponse]
	listSettlements        *connect.Client[api.ListSettlementsRequest, api.ListSettlementsResponse]
}

func (c *balanceServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetBalanceWith(ctx context.Context, req *connect.Request[api.GetBalanceWithRequest]) (*connect.Response[api.GetBalanceWithResponse], error) {
	return c.getBalanceWith.CallUnary(ctx, req)
}

func (c *balanceServiceClient) GetSuggestedSettlement(ctx context.Context, req *connect.Request[api.GetBalanceWithRequest]) (*connect.Response[api.GetSuggestedSettlementResponse], error) {
	return c.getSuggestedSettlement.CallUnary(ctx, req)
}

func (c *balanceServiceClient) RecordSettlement(ctx context.Context, req *connect.Request[api.RecordSettlementRequest]) (*connect.Response[api.RecordSettlementResponse], error) {
	return c.recordSettlement.CallUnary(ctx, req)
}

func (c *balanceServiceClient) ListSettlements(ctx context.Context, req *connect.Request[api.ListSettlementsRequest]) (*connect.Response[api.ListSettlementsResponse], error) {
	return c.listSettlements.CallUnary(ctx, req)
}
