package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/killallgit/vad-annotator/api/types"
	"github.com/killallgit/vad-annotator/pkg/config"
)

// Server represents the HTTP server
type Server struct {
	engine             *gin.Engine
	httpServer         *http.Server
	security           config.SecurityConfig
	log                logrus.FieldLogger
	rateLimiters       *sync.Map
	cleanupInitialized sync.Once
	cleanupStop        chan struct{}
	stopOnce           sync.Once

	// Dependencies for handlers
	dependencies *types.Dependencies
}

// NewServer creates a new HTTP server
func NewServer(cfg config.ServerConfig) *Server {
	// Create Gin engine with recovery middleware only
	engine := gin.New()
	engine.Use(gin.Recovery())

	maxHeaderBytes := cfg.MaxHeaderBytes
	if maxHeaderBytes <= 0 {
		maxHeaderBytes = 1 << 20
	}

	return &Server{
		engine:       engine,
		log:          logrus.StandardLogger(),
		rateLimiters: &sync.Map{},
		cleanupStop:  make(chan struct{}),
		security: config.SecurityConfig{
			CORSOrigins: []string{"*"},
			SubmitRate:  5,
			SubmitBurst: 10,
		},
		httpServer: &http.Server{
			Addr:           net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
			Handler:        engine,
			ReadTimeout:    cfg.ReadTimeout,
			WriteTimeout:   cfg.WriteTimeout,
			IdleTimeout:    cfg.ReadTimeout,
			MaxHeaderBytes: maxHeaderBytes,
		},
	}
}

// SetDependencies sets all handler dependencies
func (s *Server) SetDependencies(deps *types.Dependencies) {
	s.dependencies = deps
}

// SetSecurity sets CORS origins and the submission rate limit
func (s *Server) SetSecurity(sec config.SecurityConfig) {
	s.security = sec
}

// SetLogger sets the logger used for request logging
func (s *Server) SetLogger(log logrus.FieldLogger) {
	if log != nil {
		s.log = log
	}
}

// Engine returns the Gin engine for testing
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Addr returns the address the server listens on
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Initialize sets up middleware and routes
func (s *Server) Initialize() error {
	if s.dependencies == nil || s.dependencies.Catalog == nil || s.dependencies.RatingService == nil {
		return errors.New("server dependencies are not configured")
	}

	s.setupMiddleware()

	submitLimit := PerClientRateLimit(s.rateLimiters, s.cleanupStop, &s.cleanupInitialized,
		s.security.SubmitRate, s.security.SubmitBurst)
	RegisterRoutes(s.engine, s.dependencies, submitLimit)
	return nil
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	s.engine.Use(RequestLogger(s.log))
	s.engine.Use(CORS(s.security.CORSOrigins))
	s.engine.Use(RequestSizeLimit())
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Serve accepts connections on l until Shutdown is called
func (s *Server) Serve(l net.Listener) error {
	if err := s.httpServer.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Stop the rate limiter cleanup goroutine
	s.stopOnce.Do(func() { close(s.cleanupStop) })

	return s.httpServer.Shutdown(ctx)
}
