package api

import (
	"log"
	"sync"

	"github.com/gin-gonic/gin"

	"stratcore/app"
	"stratcore/domain/core"
	"stratcore/domain/transform"
	"stratcore/internal/config"
	"stratcore/ports"
)

// Server exposes the planning core over HTTP
type Server struct {
	router    *gin.Engine
	port      string
	sessions  *app.SessionManager
	gapFiller *app.GapFiller
	registry  *transform.Registry

	// Generated questions are cached per session so answer ids can be
	// resolved back to option values on the answers endpoint.
	questionMu       sync.RWMutex
	pendingQuestions map[core.SessionID][]ports.GapFillerQuestion
}

// NewServer wires the HTTP surface over the application services
func NewServer(cfg config.ServerConfig, sessions *app.SessionManager, gapFiller *app.GapFiller, registry *transform.Registry) *Server {
	gin.SetMode(cfg.GinMode)

	s := &Server{
		router:           gin.Default(),
		port:             cfg.Port,
		sessions:         sessions,
		gapFiller:        gapFiller,
		registry:         registry,
		pendingQuestions: make(map[core.SessionID][]ports.GapFillerQuestion),
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.POST("/sessions", s.handleCreateSession)
		api.GET("/sessions/:id/context", s.handleGetContext)
		api.POST("/sessions/:id/outputs", s.handleIngestOutput)
		api.POST("/sessions/:id/gap-analysis", s.handleGapAnalysis)
		api.POST("/sessions/:id/answers", s.handleApplyAnswers)
		api.DELETE("/sessions/:id", s.handleDeleteSession)

		api.POST("/claims/classify", s.handleClassifyClaims)

		api.GET("/transformations", s.handleListTransformations)
		api.POST("/transformations/apply", s.handleApplyTransformation)
	}
}

// Run starts the HTTP server and blocks
func (s *Server) Run() error {
	log.Printf("[Server] Listening on port %s", s.port)
	return s.router.Run(":" + s.port)
}

func (s *Server) cacheQuestions(sessionID core.SessionID, questions []ports.GapFillerQuestion) {
	s.questionMu.Lock()
	s.pendingQuestions[sessionID] = questions
	s.questionMu.Unlock()
}

func (s *Server) cachedQuestions(sessionID core.SessionID) []ports.GapFillerQuestion {
	s.questionMu.RLock()
	defer s.questionMu.RUnlock()
	return s.pendingQuestions[sessionID]
}

func (s *Server) dropQuestions(sessionID core.SessionID) {
	s.questionMu.Lock()
	delete(s.pendingQuestions, sessionID)
	s.questionMu.Unlock()
}
