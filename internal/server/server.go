package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/habbi3/spinbot/internal/handler"
	"github.com/habbi3/spinbot/internal/leaderboard"
	"github.com/habbi3/spinbot/internal/logger"
	"github.com/habbi3/spinbot/internal/metrics"
	"github.com/habbi3/spinbot/internal/slots"
	"github.com/habbi3/spinbot/internal/sse"
	"github.com/habbi3/spinbot/internal/store"
)

type Server struct {
	httpServer         *http.Server
	st                 store.Store
	slotsService       slots.Service
	leaderboardService leaderboard.Service
}

// NewServer creates a new Server instance
func NewServer(port int, apiKey string, trustedProxies []string, st store.Store, slotsService slots.Service, leaderboardService leaderboard.Service, hub *sse.Hub) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(st))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes. The overlay runs as an unauthenticated browser
	// source, so everything outside /admin stays public.
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/spin", func(r chi.Router) {
			r.Get("/current", handler.HandleGetCurrentSpin(slotsService))
			r.Post("/complete", handler.HandleCompleteSpin(slotsService))
			r.Post("/test", handler.HandleTestSpin(slotsService))
		})

		r.Get("/leaderboard", handler.HandleGetLeaderboard(leaderboardService))
		r.Get("/leaderboard/stats", handler.HandleGetLeaderboardStats(leaderboardService))
		r.Get("/jackpots", handler.HandleGetJackpots(leaderboardService))

		r.Get("/mute", handler.HandleGetMute(st))
		r.Put("/mute", handler.HandleSetMute(st))

		// Live event stream for the overlay widget
		r.Get("/events", sse.Handler(hub))

		// Admin routes (API key required)
		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuthMiddleware(apiKey, trustedProxies, detector))
			r.Post("/reset", handler.HandleResetLeaderboard(leaderboardService))
			r.Post("/reset-jackpots", handler.HandleResetJackpots(leaderboardService))
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		st:                 st,
		slotsService:       slotsService,
		leaderboardService: leaderboardService,
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // default status
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush lets wrapped handlers stream; the SSE endpoint needs it.
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		// Use HasPrefix to catch potential variations (e.g. /healthz/)
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		// Generate unique request ID
		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, "Authorization") {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
