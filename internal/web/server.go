// Package web serves the record views, calendar, kiosk and briefing as a
// JSON API behind basic auth.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/leitstand/internal/briefing"
	"github.com/julianstephens/leitstand/internal/calendar"
	"github.com/julianstephens/leitstand/internal/logger"
	"github.com/julianstephens/leitstand/internal/models"
	"github.com/julianstephens/leitstand/internal/refresh"
)

// Assistant generates briefing text from a payload
type Assistant interface {
	Generate(ctx context.Context, payload briefing.Payload) (string, error)
	Ask(ctx context.Context, question string, payload briefing.Payload) (string, error)
}

// Options wires a Server to its collaborators
type Options struct {
	Cache    *refresh.Cache
	Users    UserSource
	Location *time.Location
	// Assistant is optional; without it the briefing routes only return payloads
	Assistant Assistant
	Metrics   *Metrics
	Now       func() time.Time
}

// Server is the HTTP front of a running leitstand
type Server struct {
	cache     *refresh.Cache
	users     UserSource
	loc       *time.Location
	assistant Assistant
	metrics   *Metrics
	now       func() time.Time
	engine    *gin.Engine
}

// NewServer builds the router. The metrics gauge follows every cache refresh.
func NewServer(opts Options) *Server {
	s := &Server{
		cache:     opts.Cache,
		users:     opts.Users,
		loc:       opts.Location,
		assistant: opts.Assistant,
		metrics:   opts.Metrics,
		now:       opts.Now,
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}
	if s.users == nil {
		s.users = func() ([]models.User, error) { return nil, nil }
	}
	s.cache.OnRefresh(func(snap *models.Snapshot, at time.Time) {
		s.metrics.ObserveSnapshot(snap, s.today(), at)
	})
	s.engine = s.routes()
	return s
}

// Handler returns the gin engine
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) today() calendar.Day {
	return calendar.Today(s.now(), s.loc)
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(), s.metrics.middleware())

	r.GET("/health", s.handleHealth)

	authed := r.Group("/", basicAuth(s.users))
	authed.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	authed.GET("/calendar.ics", s.handleICS)

	api := authed.Group("/api")
	api.GET("/records/:collection", s.handleRecords)
	api.GET("/calendar", s.handleCalendar)
	api.GET("/dashboard", s.handleDashboard)
	api.GET("/tiles", s.handleTiles)

	admin := api.Group("/briefing", requireAdmin())
	admin.GET("", s.handleBriefing)
	admin.POST("/generate", s.handleBriefingGenerate)
	admin.POST("/ask", s.handleBriefingAsk)

	return r
}

// requestLogger writes one debug line per request
func requestLogger() gin.HandlerFunc {
	log := logger.With("component", "web")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", "listen", "http://"+addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("Shutting down HTTP server")
	return srv.Shutdown(shutdownCtx)
}
