package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/Totenem/Time-Tracker-App/internal/auth/http"
	"github.com/Totenem/Time-Tracker-App/internal/common/bootstrap"
	commonhttp "github.com/Totenem/Time-Tracker-App/internal/common/http"
	"github.com/Totenem/Time-Tracker-App/internal/common/httpmetrics"
	"github.com/Totenem/Time-Tracker-App/internal/common/jwtverify"
	srv "github.com/Totenem/Time-Tracker-App/internal/common/server"
	trackhttp "github.com/Totenem/Time-Tracker-App/internal/track/http"
)

func main() {
	app, err := bootstrap.New()
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to bootstrap: %v\n", err))
		os.Exit(1)
	}
	defer app.Pool.Close()

	log := app.Log
	cfg := app.Config

	mux := http.NewServeMux()
	mux.HandleFunc("/", commonhttp.RootHandler())
	mux.HandleFunc("/health", commonhttp.HealthHandler(app.Pool, log))
	mux.Handle("/metrics", promhttp.Handler())

	authHandler := authhttp.NewHandler(app.AuthService, cfg.RequestTimeout, log)
	authHandler.Register(mux)

	authGate := jwtverify.Middleware(app.TokenService.Secret(), log)
	trackHandler := trackhttp.NewHandler(app.TrackService, cfg.RequestTimeout, log)
	trackHandler.Register(mux, authGate)

	rateLimiter := commonhttp.NewStrictRateLimiter()
	rateLimitMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "/health" || path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			rateLimiter.MiddlewareForPath(path)(next).ServeHTTP(w, r)
		})
	}

	authCollector := httpmetrics.New("auth")
	timeCollector := httpmetrics.New("time")
	metricsMiddleware := func(next http.Handler) http.Handler {
		authWrapped := authCollector.Wrap(next)
		timeWrapped := timeCollector.Wrap(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/v1/auth/") {
				authWrapped.ServeHTTP(w, r)
				return
			}
			timeWrapped.ServeHTTP(w, r)
		})
	}

	handler := commonhttp.RecoveryMiddleware(log)(
		rateLimitMiddleware(
			commonhttp.MaxRequestSizeMiddleware(commonhttp.DefaultMaxRequestSize)(
				metricsMiddleware(mux),
			),
		),
	)

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, handler)

	srv.StartWithGracefulShutdown(server, log, "time-tracker")
}
