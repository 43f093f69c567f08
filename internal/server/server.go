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

	"github.com/gevornos/Life-is-RPG/internal/activity"
	"github.com/gevornos/Life-is-RPG/internal/authority"
	"github.com/gevornos/Life-is-RPG/internal/character"
	"github.com/gevornos/Life-is-RPG/internal/database"
	"github.com/gevornos/Life-is-RPG/internal/handler"
	"github.com/gevornos/Life-is-RPG/internal/logger"
	"github.com/gevornos/Life-is-RPG/internal/metrics"
	"github.com/gevornos/Life-is-RPG/internal/monster"
	"github.com/gevornos/Life-is-RPG/internal/repository"
)

// Services bundles everything the router exposes. Keeping it a struct
// keeps the NewServer signature stable as endpoints grow.
type Services struct {
	Sessions  repository.Sessions
	Character character.Service
	Activity  activity.Service
	Authority authority.Service
	Monster   monster.Service
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance
func NewServer(port int, trustedProxies []string, dbPool database.Pool, svcs Services) *Server {
	r := chi.NewRouter()

	// Middleware stack
	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()
	sessionCache := NewSessionCache(SessionCacheSize, SessionCacheTTL)

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(svcs.Sessions, sessionCache, trustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(trustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(1 << 20)) // 1MB limit
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/character", func(r chi.Router) {
			r.Get("/", handler.HandleGetCharacter(svcs.Character))
			r.Post("/", handler.HandleCreateCharacter(svcs.Character))
			r.Post("/reset", handler.HandleResetCharacter(svcs.Character))
		})

		r.Route("/habits", func(r chi.Router) {
			r.Get("/", handler.HandleListHabits(svcs.Activity))
			r.Post("/", handler.HandleAddHabit(svcs.Activity))
			r.Post("/reorder", handler.HandleReorderHabits(svcs.Activity))
			r.Put("/{id}", handler.HandleUpdateHabit(svcs.Activity))
			r.Delete("/{id}", handler.HandleDeleteHabit(svcs.Activity))
			r.Post("/{id}/complete", handler.HandleCompleteHabit(svcs.Activity))
			r.Post("/{id}/fail", handler.HandleFailHabit(svcs.Activity))
		})

		r.Route("/dailies", func(r chi.Router) {
			r.Get("/", handler.HandleListDailies(svcs.Activity))
			r.Post("/", handler.HandleAddDaily(svcs.Activity))
			r.Post("/reorder", handler.HandleReorderDailies(svcs.Activity))
			r.Put("/{id}", handler.HandleUpdateDaily(svcs.Activity))
			r.Delete("/{id}", handler.HandleDeleteDaily(svcs.Activity))
			r.Post("/{id}/complete", handler.HandleCompleteDaily(svcs.Activity))
			r.Post("/{id}/uncomplete", handler.HandleUncompleteDaily(svcs.Activity))
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", handler.HandleListTasks(svcs.Activity))
			r.Post("/", handler.HandleAddTask(svcs.Activity))
			r.Post("/reorder", handler.HandleReorderTasks(svcs.Activity))
			r.Put("/{id}", handler.HandleUpdateTask(svcs.Activity))
			r.Delete("/{id}", handler.HandleDeleteTask(svcs.Activity))
			r.Post("/{id}/complete", handler.HandleCompleteTask(svcs.Activity))
			r.Post("/{id}/uncomplete", handler.HandleUncompleteTask(svcs.Activity))
		})

		r.Route("/rewards", func(r chi.Router) {
			r.Post("/grant", handler.HandleGrantReward(svcs.Authority))
		})

		r.Route("/monster", func(r chi.Router) {
			r.Get("/", handler.HandleGetMonster(svcs.Monster))
			r.Post("/damage", handler.HandleDealDamage(svcs.Monster))
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
		dbPool: dbPool,
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

		// Add request ID to context
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)

		// Get scoped logger
		log := logger.FromContext(ctx)

		// Log request start with details
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		// Sanitize headers for logging
		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		// Wrap response writer to capture status code
		rw := newResponseWriter(w)

		// Process request
		next.ServeHTTP(rw, r)

		// Log request completion with metrics
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
