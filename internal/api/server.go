//
//
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// Server represents the HTTP API server.
type Server struct {
	httpServer     *http.Server
	statusStore    StatusPort
	arbiter        CommandPort
	channel        ChannelHealth
	metricsHandler http.Handler
	startTime      time.Time
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
}

// NewServer creates a new API server.
func NewServer(statusStore StatusPort, arbiter CommandPort, channel ChannelHealth, readTimeout, writeTimeout, idleTimeout time.Duration) *Server {
	return &Server{
		statusStore:  statusStore,
		arbiter:      arbiter,
		channel:      channel,
		startTime:    time.Now(),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
		idleTimeout:  idleTimeout,
	}
}

// SetMetricsHandler mounts a handler at /metrics. Must be called before
// Start.
func (s *Server) SetMetricsHandler(h http.Handler) {
	s.metricsHandler = h
}

// Start starts the HTTP server.
func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()

	// Register all routes
	s.RegisterRoutes(mux)

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      corsMiddleware(mux),
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
		IdleTimeout:  s.idleTimeout,
	}

	// Start server
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	// Shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	return nil
}

// GetServer returns the underlying HTTP server for testing.
func (s *Server) GetServer() *http.Server {
	return s.httpServer
}

// corsMiddleware allows the interface to be called from dashboards served
// off-device. The endpoint only listens on the local network.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
