package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/swiffapp/swiff/pkg/api"
)

// SubscriptionServiceName is the fully-qualified name of the SubscriptionService.
const SubscriptionServiceName = "swiff.v1.SubscriptionService"

// Procedure paths of the SubscriptionService.
const (
	SubscriptionServiceCreateSubscriptionProcedure     = "/swiff.v1.SubscriptionService/CreateSubscription"
	SubscriptionServiceGetSubscriptionProcedure        = "/swiff.v1.SubscriptionService/GetSubscription"
	SubscriptionServiceListSubscriptionsProcedure      = "/swiff.v1.SubscriptionService/ListSubscriptions"
	SubscriptionServiceUpdateSubscriptionProcedure     = "/swiff.v1.SubscriptionService/UpdateSubscription"
	SubscriptionServiceCancelSubscriptionProcedure     = "/swiff.v1.SubscriptionService/CancelSubscription"
	SubscriptionServiceReactivateSubscriptionProcedure = "/swiff.v1.SubscriptionService/ReactivateSubscription"
	SubscriptionServiceDeleteSubscriptionProcedure     = "/swiff.v1.SubscriptionService/DeleteSubscription"
	SubscriptionServiceGetUpcomingRenewalsProcedure    = "/swiff.v1.SubscriptionService/GetUpcomingRenewals"
	SubscriptionServiceGetSubscriptionCostsProcedure   = "/swiff.v1.SubscriptionService/GetSubscriptionCosts"
)

// SubscriptionServiceHandler is implemented by the server side of the
// SubscriptionService, which tracks recurring personal charges.
type SubscriptionServiceHandler interface {
	CreateSubscription(context.Context, *connect.Request[api.CreateSubscriptionRequest]) (*connect.Response[api.SubscriptionResponse], error)
	GetSubscription(context.Context, *connect.Request[api.GetSubscriptionRequest]) (*connect.Response[api.SubscriptionResponse], error)
	ListSubscriptions(context.Context, *connect.Request[api.ListSubscriptionsRequest]) (*connect.Response[api.ListSubscriptionsResponse], error)
	UpdateSubscription(context.Context, *connect.Request[api.UpdateSubscriptionRequest]) (*connect.Response[api.SubscriptionResponse], error)
	CancelSubscription(context.Context, *connect.Request[api.CancelSubscriptionRequest]) (*connect.Response[api.SubscriptionResponse], error)
	ReactivateSubscription(context.Context, *connect.Request[api.ReactivateSubscriptionRequest]) (*connect.Response[api.SubscriptionResponse], error)
	DeleteSubscription(context.Context, *connect.Request[api.DeleteSubscriptionRequest]) (*connect.Response[api.DeleteSubscriptionResponse], error)
	GetUpcomingRenewals(context.Context, *connect.Request[api.GetUpcomingRenewalsRequest]) (*connect.Response[api.GetUpcomingRenewalsResponse], error)
	GetSubscriptionCosts(context.Context, *connect.Request[api.GetSubscriptionCostsRequest]) (*connect.Response[api.GetSubscriptionCostsResponse], error)
}

// NewSubscriptionServiceHandler builds an HTTP handler for svc. It returns the
// path to mount it on.
func NewSubscriptionServiceHandler(svc SubscriptionServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	unary(mux, SubscriptionServiceCreateSubscriptionProcedure, svc.CreateSubscription, opts)
	unary(mux, SubscriptionServiceGetSubscriptionProcedure, svc.GetSubscription, opts)
	unary(mux, SubscriptionServiceListSubscriptionsProcedure, svc.ListSubscriptions, opts)
	unary(mux, SubscriptionServiceUpdateSubscriptionProcedure, svc.UpdateSubscription, opts)
	unary(mux, SubscriptionServiceCancelSubscriptionProcedure, svc.CancelSubscription, opts)
	unary(mux, SubscriptionServiceReactivateSubscriptionProcedure, svc.ReactivateSubscription, opts)
	unary(mux, SubscriptionServiceDeleteSubscriptionProcedure, svc.DeleteSubscription, opts)
	unary(mux, SubscriptionServiceGetUpcomingRenewalsProcedure, svc.GetUpcomingRenewals, opts)
	unary(mux, SubscriptionServiceGetSubscriptionCostsProcedure, svc.GetSubscriptionCosts, opts)
	return "/" + SubscriptionServiceName + "/", mux
}

// SubscriptionServiceClient is a client for the SubscriptionService.
type SubscriptionServiceClient interface {
	CreateSubscription(context.Context, *connect.Request[api.CreateSubscriptionRequest]) (*connect.Response[api.SubscriptionResponse], error)
	GetSubscription(context.Context, *connect.Request[api.GetSubscriptionRequest]) (*connect.Response[api.SubscriptionResponse], error)
	ListSubscriptions(context.Context, *connect.Request[api.ListSubscriptionsRequest]) (*connect.Response[api.ListSubscriptionsResponse], error)
	UpdateSubscription(context.Context, *connect.Request[api.UpdateSubscriptionRequest]) (*connect.Response[api.SubscriptionResponse], error)
	CancelSubscription(context.Context, *connect.Request[api.CancelSubscriptionRequest]) (*connect.Response[api.SubscriptionResponse], error)
	ReactivateSubscription(context.Context, *connect.Request[api.ReactivateSubscriptionRequest]) (*connect.Response[api.SubscriptionResponse], error)
	DeleteSubscription(context.Context, *connect.Request[api.DeleteSubscriptionRequest]) (*connect.Response[api.DeleteSubscriptionResponse], error)
	GetUpcomingRenewals(context.Context, *connect.Request[api.GetUpcomingRenewalsRequest]) (*connect.Response[api.GetUpcomingRenewalsResponse], error)
	GetSubscriptionCosts(context.Context, *connect.Request[api.GetSubscriptionCostsRequest]) (*connect.Response[api.GetSubscriptionCostsResponse], error)
}

// NewSubscriptionServiceClient constructs a client for the SubscriptionService
// at baseURL (for example, http://localhost:8080).
func NewSubscriptionServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SubscriptionServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &subscriptionServiceClient{
		createSubscription:     connect.NewClient[api.CreateSubscriptionRequest, api.SubscriptionResponse](httpClient, baseURL+SubscriptionServiceCreateSubscriptionProcedure, opts...),
		getSubscription:        connect.NewClient[api.GetSubscriptionRequest, api.SubscriptionResponse](httpClient, baseURL+SubscriptionServiceGetSubscriptionProcedure, opts...),
		listSubscriptions:      connect.NewClient[api.ListSubscriptionsRequest, api.ListSubscriptionsResponse](httpClient, baseURL+SubscriptionServiceListSubscriptionsProcedure, opts...),
		updateSubscription:     connect.NewClient[api.UpdateSubscriptionRequest, api.SubscriptionResponse](httpClient, baseURL+SubscriptionServiceUpdateSubscriptionProcedure, opts...),
		cancelSubscription:     connect.NewClient[api.CancelSubscriptionRequest, api.SubscriptionResponse](httpClient, baseURL+SubscriptionServiceCancelSubscriptionProcedure, opts...),
		reactivateSubscription: connect.NewClient[api.ReactivateSubscriptionRequest, api.SubscriptionResponse](httpClient, baseURL+SubscriptionServiceReactivateSubscriptionProcedure, opts...),
		deleteSubscription:     connect.NewClient[api.DeleteSubscriptionRequest, api.DeleteSubscriptionResponse](httpClient, baseURL+SubscriptionServiceDeleteSubscriptionProcedure, opts...),
		getUpcomingRenewals:    connect.NewClient[api.GetUpcomingRenewalsRequest, api.GetUpcomingRenewalsResponse](httpClient, baseURL+SubscriptionServiceGetUpcomingRenewalsProcedure, opts...),
		getSubscriptionCosts:   connect.NewClient[api.GetSubscriptionCostsRequest, api.GetSubscriptionCostsResponse](httpClient, baseURL+SubscriptionServiceGetSubscriptionCostsProcedure, opts...),
	}
}

type subscriptionServiceClient struct {
	createSubscription     *connect.Client[api.CreateSubscriptionRequest, api.SubscriptionResponse]
	getSubscription        *connect.Client[api.GetSubscriptionRequest, api.SubscriptionResponse]
	listSubscriptions      *connect.Client[api.ListSubscriptionsRequest, api.ListSubscriptionsResponse]
	updateSubscription     *connect.Client[api.UpdateSubscriptionRequest, api.SubscriptionResponse]
	cancelSubscription     *connect.Client[api.CancelSubscriptionRequest, api.SubscriptionResponse]
	reactivateSubscription *connect.Client[api.ReactivateSubscriptionRequest, api.SubscriptionResponse]
	deleteSubscription     *connect.Client[api.DeleteSubscriptionRequest, api.DeleteSubscriptionResponse]
	getUpcomingRenewals    *connect.Client[api.GetUpcomingRenewalsRequest, api.GetUpcomingRenewalsResponse]
	getSubscriptionCosts   *connect.Client[api.GetSubscriptionCostsRequest, api.GetSubscriptionCostsResponse]
}

func (c *subscriptionServiceClient) CreateSubscription(ctx context.Context, req *connect.Request[api.CreateSubscriptionRequest]) (*connect.Response[api.SubscriptionResponse], error) {
	return c.createSubscription.CallUnary(ctx, req)
}

func (c *subscriptionServiceClient) GetSubscription(ctx context.Context, req *connect.Request[api.GetSubscriptionRequest]) (*connect.Response[api.SubscriptionResponse], error) {
	return c.getSubscription.CallUnary(ctx, req)
}

func (c *subscriptionServiceClient) ListSubscriptions(ctx context.Context, req *connect.Request[api.ListSubscriptionsRequest]) (*connect.Response[api.ListSubscriptionsResponse], error) {
	return c.listSubscriptions.CallUnary(ctx, req)
}

func (c *subscriptionServiceClient) UpdateSubscription(ctx context.Context, req *connect.Request[api.UpdateSubscriptionRequest]) (*connect.Response[api.SubscriptionResponse], error) {
	return c.updateSubscription.CallUnary(ctx, req)
}

func (c *subscriptionServiceClient) CancelSubscription(ctx context.Context, req *connect.Request[api.CancelSubscriptionRequest]) (*connect.Response[api.SubscriptionResponse], error) {
	return c.cancelSubscription.CallUnary(ctx, req)
}

func (c *subscriptionServiceClient) ReactivateSubscription(ctx context.Context, req *connect.Request[api.ReactivateSubscriptionRequest]) (*connect.Response[api.SubscriptionResponse], error) {
	return c.reactivateSubscription.CallUnary(ctx, req)
}

func (c *subscriptionServiceClient) DeleteSubscription(ctx context.Context, req *connect.Request[api.DeleteSubscriptionRequest]) (*connect.Response[api.DeleteSubscriptionResponse], error) {
	return c.deleteSubscription.CallUnary(ctx, req)
}

func (c *subscriptionServiceClient) GetUpcomingRenewals(ctx context.Context, req *connect.Request[api.GetUpcomingRenewalsRequest]) (*connect.Response[api.GetUpcomingRenewalsResponse], error) {
	return c.getUpcomingRenewals.CallUnary(ctx, req)
}

func (c *subscriptionServiceClient) GetSubscriptionCosts(ctx context.Context, req *connect.Request[api.GetSubscriptionCostsRequest]) (*connect.Response[api.GetSubscriptionCostsResponse], error) {
	return c.getSubscriptionCosts.CallUnary(ctx, req)
}
