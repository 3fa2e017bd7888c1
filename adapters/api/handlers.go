package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stratcore/domain/claims"
	"stratcore/domain/core"
	"stratcore/domain/strategy"
	"stratcore/domain/transform"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type createSessionRequest struct {
	BusinessProfile strategy.BusinessProfile `json:"business_profile" binding:"required"`
}

func (s *Server) handleCreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	acc, err := s.sessions.CreateSession(c.Request.Context(), req.BusinessProfile)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": acc.SessionID(),
		"context":    acc.Snapshot(),
	})
}

func (s *Server) handleGetContext(c *gin.Context) {
	sessionID, ok := s.sessionID(c)
	if !ok {
		return
	}

	acc, err := s.sessions.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	c.JSON(http.StatusOK, acc.Snapshot())
}

type ingestRequest struct {
	ModuleID   string         `json:"module_id" binding:"required"`
	OutputType string         `json:"output_type" binding:"required"`
	Payload    map[string]any `json:"payload"`
	// SourceType triggers a registry transform before ingestion when the
	// payload was produced in another framework's shape.
	SourceType string `json:"source_type"`
}

func (s *Server) handleIngestOutput(c *gin.Context) {
	sessionID, ok := s.sessionID(c)
	if !ok {
		return
	}

	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	moduleID, err := core.ParseModuleID(req.ModuleID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	acc, err := s.sessions.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	payload := req.Payload
	if req.SourceType != "" && req.SourceType != req.OutputType {
		snap := acc.Snapshot()
		payload = s.registry.Transform(payload,
			transform.DataType(req.SourceType), transform.DataType(req.OutputType), &snap)
	}

	acc.Ingest(moduleID, strategy.OutputType(req.OutputType), payload)

	if err := s.sessions.Persist(c.Request.Context(), acc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"executed_modules": acc.ExecutedModules(),
		"confidence":       acc.Snapshot().Metadata.Confidence,
	})
}

func (s *Server) handleGapAnalysis(c *gin.Context) {
	sessionID, ok := s.sessionID(c)
	if !ok {
		return
	}

	acc, err := s.sessions.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	result := s.gapFiller.AnalyzeAndPrepare(c.Request.Context(), acc)
	s.cacheQuestions(sessionID, result.Questions)

	c.JSON(http.StatusOK, gin.H{
		"analysis":                  result.Analysis,
		"questions":                 result.Questions,
		"requires_user_input":       result.RequiresUserInput,
		"can_proceed_without_input": result.CanProceedWithoutInput,
		"status":                    s.gapFiller.Status(result.Analysis),
	})
}

type answersRequest struct {
	Answers map[string]any `json:"answers" binding:"required"`
}

func (s *Server) handleApplyAnswers(c *gin.Context) {
	sessionID, ok := s.sessionID(c)
	if !ok {
		return
	}

	var req answersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	acc, err := s.sessions.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}

	answers := make(map[core.RequirementID]any, len(req.Answers))
	for k, v := range req.Answers {
		answers[core.RequirementID(k)] = v
	}

	s.gapFiller.ApplyUserAnswers(acc, answers, s.cachedQuestions(sessionID))
	s.dropQuestions(sessionID)

	if err := s.sessions.Persist(c.Request.Context(), acc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to persist session"})
		return
	}

	analysis := s.gapFiller.Analyze(acc.Snapshot())
	c.JSON(http.StatusOK, gin.H{
		"analysis": analysis,
		"status":   s.gapFiller.Status(analysis),
	})
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	sessionID, ok := s.sessionID(c)
	if !ok {
		return
	}

	s.dropQuestions(sessionID)
	if err := s.sessions.DeleteSession(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": sessionID})
}

type classifyRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) handleClassifyClaims(c *gin.Context) {
	var req classifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	classifications, err := claims.Classify(req.Text)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"claims": classifications})
}

func (s *Server) handleListTransformations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"transformations": s.registry.List()})
}

type applyTransformRequest struct {
	Payload    map[string]any `json:"payload" binding:"required"`
	SourceType string         `json:"source_type" binding:"required"`
	TargetType string         `json:"target_type" binding:"required"`
	SessionID  string         `json:"session_id"`
}

func (s *Server) handleApplyTransformation(c *gin.Context) {
	var req applyTransformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	source := transform.DataType(req.SourceType)
	target := transform.DataType(req.TargetType)

	if !s.registry.CanTransform(source, target) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "No transformation path between the given types",
		})
		return
	}

	var snap *strategy.Context
	if req.SessionID != "" {
		sessionID, err := core.ParseSessionID(req.SessionID)
		if err == nil {
			if acc, err := s.sessions.GetSession(c.Request.Context(), sessionID); err == nil {
				clone := acc.Snapshot()
				snap = &clone
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"payload": s.registry.Transform(req.Payload, source, target, snap),
	})
}

func (s *Server) sessionID(c *gin.Context) (core.SessionID, bool) {
	sessionID, err := core.ParseSessionID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Session ID is required"})
		return "", false
	}
	return sessionID, true
}
