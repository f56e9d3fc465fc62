package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/swiffapp/swiff/pkg/api"
)

// SplitServiceName is the fully-qualified name of the SplitService.
const SplitServiceName = "swiff.v1.SplitService"

// Procedure paths of the SplitService.
const (
	SplitServiceCalculateEqualSplitProcedure = "/swiff.v1.SplitService/CalculateEqualSplit"
	SplitServiceValidateSplitProcedure       = "/swiff.v1.SplitService/ValidateSplit"
	SplitServiceCalculateSplitProcedure      = "/swiff.v1.SplitService/CalculateSplit"
	SplitServiceSimplifyDebtsProcedure       = "/swiff.v1.SplitService/SimplifyDebts"
	SplitServiceCreateBillProcedure          = "/swiff.v1.SplitService/CreateBill"
	SplitServiceGetBillProcedure             = "/swiff.v1.SplitService/GetBill"
	SplitServiceUpdateBillProcedure          = "/swiff.v1.SplitService/UpdateBill"
	SplitServiceDeleteBillProcedure          = "/swiff.v1.SplitService/DeleteBill"
	SplitServiceMarkBillPaidProcedure        = "/swiff.v1.SplitService/MarkBillPaid"
	SplitServiceListBillsProcedure           = "/swiff.v1.SplitService/ListBills"
)

// SplitServiceHandler is implemented by the server side of the SplitService,
// which computes splits and manages bills.
type SplitServiceHandler interface {
	CalculateEqualSplit(context.Context, *connect.Request[api.EqualSplitRequest]) (*connect.Response[api.EqualSplitResponse], error)
	ValidateSplit(context.Context, *connect.Request[api.ValidateSplitRequest]) (*connect.Response[api.ValidateSplitResponse], error)
	CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error)
	SimplifyDebts(context.Context, *connect.Request[api.SimplifyDebtsRequest]) (*connect.Response[api.SimplifyDebtsResponse], error)
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.BillResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.BillResponse], error)
	UpdateBill(context.Context, *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.BillResponse], error)
	DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error)
	MarkBillPaid(context.Context, *connect.Request[api.MarkBillPaidRequest]) (*connect.Response[api.BillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
}

// NewSplitServiceHandler builds an HTTP handler for svc. It returns the path to
// mount it on.
func NewSplitServiceHandler(svc SplitServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	unary(mux, SplitServiceCalculateEqualSplitProcedure, svc.CalculateEqualSplit, opts)
	unary(mux, SplitServiceValidateSplitProcedure, svc.ValidateSplit, opts)
	unary(mux, SplitServiceCalculateSplitProcedure, svc.CalculateSplit, opts)
	unary(mux, SplitServiceSimplifyDebtsProcedure, svc.SimplifyDebts, opts)
	unary(mux, SplitServiceCreateBillProcedure, svc.CreateBill, opts)
	unary(mux, SplitServiceGetBillProcedure, svc.GetBill, opts)
	unary(mux, SplitServiceUpdateBillProcedure, svc.UpdateBill, opts)
	unary(mux, SplitServiceDeleteBillProcedure, svc.DeleteBill, opts)
	unary(mux, SplitServiceMarkBillPaidProcedure, svc.MarkBillPaid, opts)
	unary(mux, SplitServiceListBillsProcedure, svc.ListBills, opts)
	return "/" + SplitServiceName + "/", mux
}

// SplitServiceClient is a client for the SplitService.
type SplitServiceClient interface {
	CalculateEqualSplit(context.Context, *connect.Request[api.EqualSplitRequest]) (*connect.Response[api.EqualSplitResponse], error)
	ValidateSplit(context.Context, *connect.Request[api.ValidateSplitRequest]) (*connect.Response[api.ValidateSplitResponse], error)
	CalculateSplit(context.Context, *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error)
	SimplifyDebts(context.Context, *connect.Request[api.SimplifyDebtsRequest]) (*connect.Response[api.SimplifyDebtsResponse], error)
	CreateBill(context.Context, *connect.Request[api.CreateBillRequest]) (*connect.Response[api.BillResponse], error)
	GetBill(context.Context, *connect.Request[api.GetBillRequest]) (*connect.Response[api.BillResponse], error)
	UpdateBill(context.Context, *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.BillResponse], error)
	DeleteBill(context.Context, *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error)
	MarkBillPaid(context.Context, *connect.Request[api.MarkBillPaidRequest]) (*connect.Response[api.BillResponse], error)
	ListBills(context.Context, *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error)
}

// NewSplitServiceClient constructs a client for the SplitService at baseURL
// (for example, http://localhost:8080).
func NewSplitServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SplitServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &splitServiceClient{
		calculateEqualSplit: connect.NewClient[api.EqualSplitRequest, api.EqualSplitResponse](httpClient, baseURL+SplitServiceCalculateEqualSplitProcedure, opts...),
		validateSplit:       connect.NewClient[api.ValidateSplitRequest, api.ValidateSplitResponse](httpClient, baseURL+SplitServiceValidateSplitProcedure, opts...),
		calculateSplit:      connect.NewClient[api.CalculateSplitRequest, api.CalculateSplitResponse](httpClient, baseURL+SplitServiceCalculateSplitProcedure, opts...),
		simplifyDebts:       connect.NewClient[api.SimplifyDebtsRequest, api.SimplifyDebtsResponse](httpClient, baseURL+SplitServiceSimplifyDebtsProcedure, opts...),
		createBill:          connect.NewClient[api.CreateBillRequest, api.BillResponse](httpClient, baseURL+SplitServiceCreateBillProcedure, opts...),
		getBill:             connect.NewClient[api.GetBillRequest, api.BillResponse](httpClient, baseURL+SplitServiceGetBillProcedure, opts...),
		updateBill:          connect.NewClient[api.UpdateBillRequest, api.BillResponse](httpClient, baseURL+SplitServiceUpdateBillProcedure, opts...),
		deleteBill:          connect.NewClient[api.DeleteBillRequest, api.DeleteBillResponse](httpClient, baseURL+SplitServiceDeleteBillProcedure, opts...),
		markBillPaid:        connect.NewClient[api.MarkBillPaidRequest, api.BillResponse](httpClient, baseURL+SplitServiceMarkBillPaidProcedure, opts...),
		listBills:           connect.NewClient[api.ListBillsRequest, api.ListBillsResponse](httpClient, baseURL+SplitServiceListBillsProcedure, opts...),
	}
}

type splitServiceClient struct {
	calculateEqualSplit *connect.Client[api.EqualSplitRequest, api.EqualSplitResponse]
	validateSplit       *connect.Client[api.ValidateSplitRequest, api.ValidateSplitResponse]
	calculateSplit      *connect.Client[api.CalculateSplitRequest, api.CalculateSplitResponse]
	simplifyDebts       *connect.Client[api.SimplifyDebtsRequest, api.SimplifyDebtsResponse]
	createBill          *connect.Client[api.CreateBillRequest, api.BillResponse]
	getBill             *connect.Client[api.GetBillRequest, api.BillResponse]
	updateBill          *connect.Client[api.UpdateBillRequest, api.BillResponse]
	deleteBill          *connect.Client[api.DeleteBillRequest, api.DeleteBillResponse]
	markBillPaid        *connect.Client[api.MarkBillPaidRequest, api.BillResponse]
	listBills           *connect.Client[api.ListBillsRequest, api.ListBillsResponse]
}

func (c *splitServiceClient) CalculateEqualSplit(ctx context.Context, req *connect.Request[api.EqualSplitRequest]) (*connect.Response[api.EqualSplitResponse], error) {
	return c.calculateEqualSplit.CallUnary(ctx, req)
}

func (c *splitServiceClient) ValidateSplit(ctx context.Context, req *connect.Request[api.ValidateSplitRequest]) (*connect.Response[api.ValidateSplitResponse], error) {
	return c.validateSplit.CallUnary(ctx, req)
}

func (c *splitServiceClient) CalculateSplit(ctx context.Context, req *connect.Request[api.CalculateSplitRequest]) (*connect.Response[api.CalculateSplitResponse], error) {
	return c.calculateSplit.CallUnary(ctx, req)
}

func (c *splitServiceClient) SimplifyDebts(ctx context.Context, req *connect.Request[api.SimplifyDebtsRequest]) (*connect.Response[api.SimplifyDebtsResponse], error) {
	return c.simplifyDebts.CallUnary(ctx, req)
}

func (c *splitServiceClient) CreateBill(ctx context.Context, req *connect.Request[api.CreateBillRequest]) (*connect.Response[api.BillResponse], error) {
	return c.createBill.CallUnary(ctx, req)
}

func (c *splitServiceClient) GetBill(ctx context.Context, req *connect.Request[api.GetBillRequest]) (*connect.Response[api.BillResponse], error) {
	return c.getBill.CallUnary(ctx, req)
}

func (c *splitServiceClient) UpdateBill(ctx context.Context, req *connect.Request[api.UpdateBillRequest]) (*connect.Response[api.BillResponse], error) {
	return c.updateBill.CallUnary(ctx, req)
}

func (c *splitServiceClient) DeleteBill(ctx context.Context, req *connect.Request[api.DeleteBillRequest]) (*connect.Response[api.DeleteBillResponse], error) {
	return c.deleteBill.CallUnary(ctx, req)
}

func (c *splitServiceClient) MarkBillPaid(ctx context.Context, req *connect.Request[api.MarkBillPaidRequest]) (*connect.Response[api.BillResponse], error) {
	return c.markBillPaid.CallUnary(ctx, req)
}

func (c *splitServiceClient) ListBills(ctx context.Context, req *connect.Request[api.ListBillsRequest]) (*connect.Response[api.ListBillsResponse], error) {
	return c.listBills.CallUnary(ctx, req)
}
