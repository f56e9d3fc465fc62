package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"connectrpc.com/connect"

	"github.com/swiffapp/swiff/internal/middleware"
	"github.com/swiffapp/swiff/internal/storage/sqlite"
	"github.com/swiffapp/swiff/pkg/api/apiconnect"
)

// testUserHeader carries the caller's email in tests in place of a bearer token.
const testUserHeader = "X-Test-User"

// testAuthInterceptor returns a Connect interceptor that takes the caller's
// identity from testUserHeader.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if email := req.Header().Get(testUserHeader); email != "" {
				ctx = middleware.WithUser(ctx, "id-"+email, email)
			}
			return next(ctx, req)
		}
	}
}

type testClients struct {
	split   apiconnect.SplitServiceClient
	balance apiconnect.BalanceServiceClient
	group   apiconnect.GroupServiceClient
	subs    apiconnect.SubscriptionServiceClient
}

// setupTestServer creates a test server with every bill, group and
// subscription service over a temporary SQLite database.
func setupTestServer(t *testing.T) (testClients, func()) {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "swiff-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	authInterceptor := connect.WithInterceptors(testAuthInterceptor())
	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewSplitServiceHandler(NewSplitService(store), authInterceptor))
	mux.Handle(apiconnect.NewBalanceServiceHandler(NewBalanceService(store), authInterceptor))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store), authInterceptor))
	mux.Handle(apiconnect.NewSubscriptionServiceHandler(NewSubscriptionService(store), authInterceptor))

	server := httptest.NewServer(mux)

	clients := testClients{
		split:   apiconnect.NewSplitServiceClient(http.DefaultClient, server.URL),
		balance: apiconnect.NewBalanceServiceClient(http.DefaultClient, server.URL),
		group:   apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
		subs:    apiconnect.NewSubscriptionServiceClient(http.DefaultClient, server.URL),
	}

	cleanup := func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	}
	return clients, cleanup
}

// as builds a request made by email.
func as[T any](email string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set(testUserHeader, email)
	return req
}

// wantCode fails the test unless err is a Connect error with code.
func wantCode(t *testing.T, err error, code connect.Code) *connect.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", code)
	}
	var cerr *connect.Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected connect error, got %T: %v", err, err)
	}
	if cerr.Code() != code {
		t.Fatalf("code = %v, want %v (%v)", cerr.Code(), code, err)
	}
	return cerr
}
