package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"moneta/internal/cache"
	"moneta/internal/core"
)

// TransactionAPI is the transaction surface the server exposes.
type TransactionAPI interface {
	CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error)
	ToggleStatus(ctx context.Context, id int64) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
}

// GoalAPI is the savings goal surface the server exposes.
type GoalAPI interface {
	CreateGoal(ctx context.Context, g core.Goal) (core.Goal, error)
	ListGoals(ctx context.Context) ([]core.Goal, error)
	Deposit(ctx context.Context, id int64, amount core.Money) (core.Goal, bool, error)
	Pause(ctx context.Context, id int64) (core.Goal, error)
	Resume(ctx context.Context, id int64) (core.Goal, error)
	Progress(ctx context.Context, id int64, now time.Time) (core.Goal, core.GoalProgress, error)
}

// ReportAPI is the read-side aggregation surface the server exposes.
type ReportAPI interface {
	BuildReport(ctx context.Context, now time.Time) (core.Report, error)
	CardCycle(ctx context.Context, cardID int64, now time.Time) (core.CycleInfo, error)
}

type Server struct {
	http.Server
	transactions TransactionAPI
	goals        GoalAPI
	reports      ReportAPI
	rateLimiter  *rateLimiter

	// Reports are expensive to assemble (full snapshot scan) and cheap to
	// cache: any transaction write purges the whole cache.
	reportCache *cache.LRUCache[core.Report]

	stopCacheCleanup chan struct{}
	shutdownOnce     sync.Once
}

// NewServer configures routes and caches, returning a ready-to-run server.
func NewServer(addr string, tx TransactionAPI, goals GoalAPI, reports ReportAPI, cacheTTL time.Duration) *Server {
	mux := http.NewServeMux()

	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		transactions:     tx,
		goals:            goals,
		reports:          reports,
		rateLimiter:      newRateLimiter(),
		reportCache:      cache.NewLRUCache[core.Report](100, cacheTTL),
		stopCacheCleanup: make(chan struct{}),
	}

	go s.startCacheCleanup()

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	mux.HandleFunc("GET /api/report", s.withSecurityHeaders(s.handleReport))
	mux.HandleFunc("GET /api/cards/{id}/cycle", s.withSecurityHeaders(s.handleCardCycle))

	mux.HandleFunc("POST /api/transactions", s.withSecurityHeaders(s.handleCreateTransaction))
	mux.HandleFunc("POST /api/transactions/{id}/toggle", s.withSecurityHeaders(s.handleToggleTransaction))
	mux.HandleFunc("DELETE /api/transactions/{id}", s.withSecurityHeaders(s.handleDeleteTransaction))

	mux.HandleFunc("GET /api/goals", s.withSecurityHeaders(s.handleListGoals))
	mux.HandleFunc("POST /api/goals", s.withSecurityHeaders(s.handleCreateGoal))
	mux.HandleFunc("POST /api/goals/{id}/deposit", s.withSecurityHeaders(s.handleGoalDeposit))
	mux.HandleFunc("POST /api/goals/{id}/pause", s.withSecurityHeaders(s.handleGoalPause))
	mux.HandleFunc("POST /api/goals/{id}/resume", s.withSecurityHeaders(s.handleGoalResume))
	mux.HandleFunc("GET /api/goals/{id}/progress", s.withSecurityHeaders(s.handleGoalProgress))

	return s
}

// startCacheCleanup runs periodic cleanup for the report cache
func (s *Server) startCacheCleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if cleaned := s.reportCache.CleanExpired(); cleaned > 0 {
				slog.Debug("Cache cleanup completed", "report_entries_removed", cleaned)
			}
		case <-s.stopCacheCleanup:
			return
		}
	}
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.stopCacheCleanup != nil {
			close(s.stopCacheCleanup)
		}

		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}

		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request logging to responses
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ip := clientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", ip,
			"user_agent", r.Header.Get("User-Agent"))

		// Rate limit mutations only; dashboard polling stays unthrottled.
		if r.Method != http.MethodGet && !s.rateLimiter.allow(ip) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", ip, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, please try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", ip)
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// reportCacheKey buckets reports by reference month; the engine computes
// windows from the reference date's month, so same-month requests share a
// cached result.
func reportCacheKey(now time.Time) string {
	return now.Format("2006-01")
}

// invalidateReports drops every cached report after a write.
func (s *Server) invalidateReports() {
	s.reportCache.Purge()
}
