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

	"github.com/osse101/pisle-planner/internal/calculator"
	"github.com/osse101/pisle-planner/internal/handler"
	"github.com/osse101/pisle-planner/internal/logger"
	"github.com/osse101/pisle-planner/internal/metrics"
	"github.com/osse101/pisle-planner/internal/planner"
	"github.com/osse101/pisle-planner/internal/repository"
)

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance. pinger may be nil when the state
// store has no connectivity to check.
func NewServer(port int, apiKey string, trustedProxies []string, pinger repository.Pinger, engine *planner.Engine, service calculator.Service) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(loggingMiddleware)
	r.Use(AuthMiddleware(apiKey, trustedProxies, detector))
	r.Use(RateLimitMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)

	if apiKey == "" {
		slog.Warn(LogMsgAuthDisabled)
	}

	// Ops routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(pinger))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	planHandler := handler.NewPlanHandler(engine)
	profileHandler := handler.NewProfileHandler(service)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/habitats", planHandler.HandleHabitats)

		// Stateless planning
		r.Route("/plan", func(r chi.Router) {
			r.Post("/upgrade", planHandler.HandleUpgrade)
			r.Post("/evolve", planHandler.HandleEvolve)
			r.Post("/penguin", planHandler.HandlePenguin)
		})

		// Per-profile state
		r.Route("/profiles/{"+handler.ProfileParam+"}", func(r chi.Router) {
			r.Get("/", profileHandler.HandleGetState)

			// Setup
			r.Post("/unlock", profileHandler.HandleUnlock)
			r.Post("/input", profileHandler.HandleInput)
			r.Post("/save", profileHandler.HandleSave)
			r.Post("/reset", profileHandler.HandleReset)
			r.Post("/edit", profileHandler.HandleEdit)

			// Suggestions
			r.Post("/upgrade", profileHandler.HandleSuggestUpgrades)
			r.Post("/evolve", profileHandler.HandleSuggestEvolve)
			r.Post("/research", profileHandler.HandleSuggestResearch)
			r.Post("/commit", profileHandler.HandleCommit)
			r.Post("/cancel", profileHandler.HandleCancel)
			r.Post("/penguin", profileHandler.HandleAddPenguin)

			// Queries
			r.Get("/ranking", profileHandler.HandleRanking)
			r.Get("/penguin-price", profileHandler.HandlePenguinPrice)

			// Sharing
			r.Get("/export", profileHandler.HandleExport)
			r.Post("/import", profileHandler.HandleImport)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
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

// requestID reuses a sane client-supplied X-Request-ID or generates one
func requestID(r *http.Request) string {
	id := r.Header.Get(HeaderRequestID)
	if id == "" || len(id) > MaxRequestIDLength || strings.ContainsAny(id, " \t\r\n") {
		return logger.GenerateRequestID()
	}
	return id
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for probes and scrapes
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		id := requestID(r)
		ctx := logger.WithRequestID(r.Context(), id)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, id)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	slog.Default().Info(LogMsgServerStopping)
	return s.httpServer.Shutdown(ctx)
}
