// Package server exposes the orchestrator over HTTP. One endpoint covers
// both invocation shapes: a plain JSON response, or a Server-Sent Events
// stream of the typed progress events when the caller asks for streaming.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hupe1980/agentpilot/engine"
	"github.com/hupe1980/agentpilot/logging"
)

// Options configures the HTTP server.
type Options struct {
	// Host is the bind address. Empty binds all interfaces.
	Host string
	// Port is the listen port.
	Port int
	// Logger receives request diagnostics. Defaults to NoOp.
	Logger logging.Logger
}

// Server wraps the orchestrator behind a gin router.
type Server struct {
	orchestrator *engine.Orchestrator
	logger       logging.Logger
	addr         string
}

// New creates a Server for the given orchestrator.
func New(orchestrator *engine.Orchestrator, optFns ...func(o *Options)) *Server {
	opts := Options{
		Port:   8093,
		Logger: logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Server{
		orchestrator: orchestrator,
		logger:       opts.Logger,
		addr:         fmt.Sprintf("%s:%d", opts.Host, opts.Port),
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/agents", s.handleListAgents)
	api.GET("/prompts/versions", s.handleListPromptVersions)
	api.PUT("/prompts/active", s.handleSetActivePromptVersion)
	api.POST("/invoke", s.handleInvoke)
	api.POST("/skills/enhance", s.handleEnhanceSkill)

	return r
}

// ListenAndServe starts serving and blocks until the listener fails.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("http server listening", "addr", s.addr)
	return srv.ListenAndServe()
}
