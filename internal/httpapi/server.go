// Package httpapi mounts the interview engine behind a JSON HTTP API.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/mockinterview/internal/auth"
	"github.com/abhisek/mockinterview/internal/interview"
	"github.com/abhisek/mockinterview/internal/llm"
)

// Verifier turns a bearer credential into an identity.
type Verifier interface {
	Verify(credential string) (auth.Identity, error)
}

// ContentResolver picks a per-user content provider when the caller sends
// X-LLM-* headers.
type ContentResolver interface {
	Content(ctx context.Context, owner string, o llm.Override) (interview.ContentProvider, error)
	Evict(owner string) int
}

// Server holds the handler dependencies.
type Server struct {
	engine   *interview.Engine
	verifier Verifier
	resolver ContentResolver
	log      *zap.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithResolver enables per-user provider selection.
func WithResolver(r ContentResolver) Option {
	return func(s *Server) { s.resolver = r }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Server) { s.log = l }
}

func New(engine *interview.Engine, verifier Verifier, opts ...Option) *Server {
	s := &Server{engine: engine, verifier: verifier, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the gin router.
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(s.log))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/interview", s.authenticate())
	api.POST("/start", s.startInterview)
	api.GET("/active", s.listActive)
	api.DELETE("/providers", s.evictProviders)
	api.POST("/:id/answer", s.submitAnswer)
	api.GET("/:id/summary", s.getSummary)
	api.DELETE("/:id", s.deleteInterview)

	return router
}
