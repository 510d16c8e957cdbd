// Package httpserver exposes a finished analysis report over HTTP.
package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tinytelemetry/loglens/internal/report"
)

// Server serves the report produced by one completed analysis run. The
// data is immutable once the server is constructed, so handlers need no
// locking.
type Server struct {
	addr      string
	data      report.Data
	server    *http.Server
	ctx       context.Context
	cancel    context.CancelFunc
	startTime time.Time
}

// NewServer creates a report API server for addr.
func NewServer(addr string, data report.Data) *Server {
	if addr == "" {
		addr = "127.0.0.1:3000"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:   addr,
		data:   data,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins serving HTTP requests in the background.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/api/health", s.handleHealth)
	r.GET("/api/report", s.handleReport)
	r.GET("/api/findings", s.handleFindings)

	s.server = &http.Server{
		Handler:           r,
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.startTime = time.Now()

	go s.server.Serve(listener)
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	s.cancel()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.addr }

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"uptime":         time.Since(s.startTime).String(),
		"total_requests": s.data.Stats.TotalRequests,
		"findings":       len(s.data.Findings),
	})
}

func (s *Server) handleReport(c *gin.Context) {
	c.JSON(http.StatusOK, s.data)
}

func (s *Server) handleFindings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"count":    len(s.data.Findings),
		"findings": s.data.Findings,
	})
}
