package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/agbru/headergen/internal/logging"
	"github.com/agbru/headergen/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

// Server serves an output tree read-only, plus /metrics and /healthz.
type Server struct {
	addr     string
	root     string
	metrics  *Metrics
	logger   logging.Logger
	security SecurityConfig
}

// NewServer creates a server for root on addr. HTTP metrics are added to the
// collector's registry so /metrics exposes run and traffic metrics together.
func NewServer(addr, root string, collector *metrics.Collector, logger logging.Logger) *Server {
	return &Server{
		addr:     addr,
		root:     root,
		metrics:  NewMetrics(collector.Registry()),
		logger:   logger,
		security: DefaultSecurityConfig(),
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	files := http.FileServer(http.Dir(s.root))
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		files.ServeHTTP(w, r)
	})
	return SecurityMiddleware(s.security, s.metricsMiddleware(mux.ServeHTTP))
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving output", logging.String("addr", s.addr), logging.String("root", s.root))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down server")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("rejected metrics request", logging.String("method", r.Method))
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// metricsMiddleware tracks in-flight requests, status codes and latency.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next(rec, r)
		s.metrics.ObserveRequest(rec.code, time.Since(start))
	}
}
