// Package mockbackend serves the log-search HTTP API from an in-memory
// fixture. It backs the demo command and the client tests.
package mockbackend

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/tinytelemetry/logsearch/internal/model"
)

// Options tunes the mock's behavior.
type Options struct {
	// Latency delays every data response.
	Latency time.Duration
	// FailPaths maps a route path (e.g. "/api/density") to the status code
	// the mock answers with instead of data.
	FailPaths map[string]int
}

// Server is a gin HTTP server implementing the backend endpoints.
type Server struct {
	addr     string
	fixture  *Fixture
	opts     Options
	server   *http.Server
	listener net.Listener
	ctx      context.Context
	cancel   context.CancelFunc

	mu    sync.Mutex
	calls map[string]int
}

// NewServer creates a mock backend. An empty addr binds a random local port.
func NewServer(addr string, fixture *Fixture, opts Options) *Server {
	if addr == "" {
		addr = "127.0.0.1:0"
	}
	if fixture == nil {
		fixture = NewFixture()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		addr:    addr,
		fixture: fixture,
		opts:    opts,
		ctx:     ctx,
		cancel:  cancel,
		calls:   make(map[string]int),
	}
}

// Handler returns the gin engine with every route registered.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.countCalls, s.injectFaults)

	r.GET("/api/health", s.handleHealth)
	r.POST("/api/density", s.handleDensity)
	r.POST("/api/logs", s.handleLogs)
	r.GET("/api/listviews", s.handleListViews)
	r.POST("/api/view", s.handleCreateView)
	r.DELETE("/api/view/:view_name", s.handleDeleteView)
	r.GET("/api/metric", s.handleListMetrics)
	r.POST("/api/get/metric", s.handleGetMetric)
	return r
}

// Start begins serving HTTP requests.
func (s *Server) Start() error {
	gin.SetMode(gin.ReleaseMode)

	s.server = &http.Server{
		Handler:           s.Handler(),
		BaseContext:       func(_ net.Listener) context.Context { return s.ctx },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = listener

	log.Info().Str("addr", listener.Addr().String()).Msg("mockbackend: listening")
	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("mockbackend: serve")
		}
	}()
	return nil
}

// URL returns the base URL of a started server.
func (s *Server) URL() string {
	if s.listener == nil {
		return "http://" + s.addr
	}
	return "http://" + s.listener.Addr().String()
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop() error {
	s.cancel()
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Calls returns how many requests hit the given route path.
func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

func (s *Server) countCalls(c *gin.Context) {
	s.mu.Lock()
	s.calls[c.FullPath()]++
	s.mu.Unlock()
	c.Next()
}

func (s *Server) injectFaults(c *gin.Context) {
	if code, ok := s.opts.FailPaths[c.FullPath()]; ok {
		c.String(code, "Error")
		c.Abort()
		return
	}
	if s.opts.Latency > 0 {
		select {
		case <-time.After(s.opts.Latency):
		case <-c.Request.Context().Done():
			c.Abort()
			return
		}
	}
	c.Next()
}

// internalError mirrors the real server, which hides failure detail behind
// a bare 500.
func internalError(c *gin.Context, err error) {
	log.Debug().Err(err).Str("path", c.FullPath()).Msg("mockbackend: request failed")
	c.String(http.StatusInternalServerError, "Error")
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, model.Health{Status: "success", Message: "Log viewer utility"})
}

type rangeQuery struct {
	Start  model.Timestamp `json:"start"`
	End    model.Timestamp `json:"end"`
	Table  string          `json:"table"`
	Offset int64           `json:"offset"`
}

func (s *Server) handleDensity(c *gin.Context) {
	var q rangeQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	counts, err := s.fixture.Density(q.Start.Time(), q.End.Time(), q.Table)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (s *Server) handleLogs(c *gin.Context) {
	var q rangeQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	rows, err := s.fixture.Logs(q.Start.Time(), q.End.Time(), q.Table, q.Offset)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (s *Server) handleGetMetric(c *gin.Context) {
	var q model.MetricQuery
	if err := c.ShouldBindJSON(&q); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	series, err := s.fixture.Metric(q.Start.Time(), q.End.Time(), q.MetricName, q.ViewName)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

func (s *Server) handleListViews(c *gin.Context) {
	c.JSON(http.StatusOK, s.fixture.Views())
}

func (s *Server) handleListMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, s.fixture.MetricNames())
}

func (s *Server) handleCreateView(c *gin.Context) {
	var def model.ViewDefinition
	if err := c.ShouldBindJSON(&def); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	s.fixture.UpsertView(def)
	c.String(http.StatusCreated, "{}")
}

func (s *Server) handleDeleteView(c *gin.Context) {
	s.fixture.DeleteView(c.Param("view_name"))
	c.Status(http.StatusOK)
}
