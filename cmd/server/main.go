package main

import (
	"log/slog"
	"net/http"
	"os"
	"slices"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/swiffapp/swiff/internal/auth"
	"github.com/swiffapp/swiff/internal/config"
	"github.com/swiffapp/swiff/internal/middleware"
	"github.com/swiffapp/swiff/internal/service"
	"github.com/swiffapp/swiff/internal/storage/sqlite"
	"github.com/swiffapp/swiff/pkg/api/apiconnect"
	"github.com/swiffapp/swiff/pkg/logging"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid config", "error", err)
		os.Exit(1)
	}

	// Setup structured logging
	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))
	if cfg.ConfigPath != "" {
		slog.Info("Config file loaded", "path", cfg.ConfigPath)
	}

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	mux := http.NewServeMux()

	interceptors := []connect.Interceptor{middleware.LoggingInterceptor()}
	if cfg.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		interceptors = append(interceptors, middleware.NewMetrics(reg).Interceptor())
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		slog.Info("Metrics enabled", "path", "/metrics")
	}

	// Auth endpoints accept anonymous callers; everything else needs a token.
	publicOpts := connect.WithInterceptors(append(slices.Clone(interceptors), middleware.OptionalAuth(jwtManager))...)
	protectedOpts := connect.WithInterceptors(append(slices.Clone(interceptors), middleware.RequireAuth(jwtManager))...)

	// Register Connect services
	mux.Handle(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(authenticator, jwtManager, store, slog.Default()),
		publicOpts,
	))
	mux.Handle(apiconnect.NewSplitServiceHandler(
		service.NewSplitService(store).WithDefaultCurrency(cfg.DefaultCurrency),
		protectedOpts,
	))
	mux.Handle(apiconnect.NewBalanceServiceHandler(
		service.NewBalanceService(store).WithDefaultCurrency(cfg.DefaultCurrency),
		protectedOpts,
	))
	mux.Handle(apiconnect.NewGroupServiceHandler(service.NewGroupService(store), protectedOpts))
	mux.Handle(apiconnect.NewSubscriptionServiceHandler(
		service.NewSubscriptionService(store).WithDefaultCurrency(cfg.DefaultCurrency),
		protectedOpts,
	))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Add logging and CORS middleware
	loggedHandler := loggingMiddleware(corsMiddleware(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(loggedHandler, &http2.Server{})

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           h2cHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("Connect server starting", "address", server.Addr, "url", "http://localhost"+server.Addr)
	if err := server.ListenAndServe(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// loggingMiddleware logs plain HTTP requests. RPCs are logged by the
// Connect interceptor instead.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/swiff.v1.") {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, Swiff-Remaining-Amount, Swiff-Remaining-Percent")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
