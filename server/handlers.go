package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hupe1980/agentpilot/core"
	"github.com/hupe1980/agentpilot/engine"
)

// InvokeRequest is the JSON body for POST /api/invoke.
type InvokeRequest struct {
	Prompt         string `json:"prompt" binding:"required"`
	AgentID        string `json:"agent_id"`
	SessionID      string `json:"session_id"`
	PlanStepBudget int    `json:"plan_step_budget"`
	Stream         bool   `json:"stream"`
	TraceTools     bool   `json:"trace_tools"`
}

// EnhanceSkillRequest is the JSON body for POST /api/skills/enhance.
type EnhanceSkillRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleListAgents(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"agents": s.orchestrator.Agents().Descriptions()})
}

func (s *Server) handleListPromptVersions(c *gin.Context) {
	versions, err := s.orchestrator.Prompts().ListVersions()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	active, err := s.orchestrator.Prompts().GetActiveVersion()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"versions": versions, "active": active})
}

func (s *Server) handleSetActivePromptVersion(c *gin.Context) {
	var body struct {
		Version string `json:"version" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := s.orchestrator.Prompts().SetActiveVersion(body.Version); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": body.Version})
}

func (s *Server) handleInvoke(c *gin.Context) {
	var body InvokeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	req := engine.Request{
		Input:          body.Prompt,
		AgentID:        body.AgentID,
		SessionID:      body.SessionID,
		PlanStepBudget: body.PlanStepBudget,
		TraceTools:     body.TraceTools,
	}

	if body.Stream {
		s.streamInvoke(c, req)
		return
	}

	result, err := s.orchestrator.Invoke(c.Request.Context(), req)
	if err != nil {
		s.logger.Error("invocation failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// handleEnhanceSkill expands a short skill description into a full
// instruction set via the skill_enhancer agent.
func (s *Server) handleEnhanceSkill(c *gin.Context) {
	var body EnhanceSkillRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := s.orchestrator.Invoke(c.Request.Context(), engine.Request{
		Input:   fmt.Sprintf("Skill Title: %s\nDescription: %s", body.Title, body.Description),
		AgentID: "skill_enhancer",
	})
	if err != nil {
		s.logger.Error("skill enhancement failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) streamInvoke(c *gin.Context, req engine.Request) {
	writer, err := newSSEWriter(c.Writer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "streaming not supported"})
		return
	}

	eventCh, errCh := s.orchestrator.Stream(c.Request.Context(), req)
	for event := range eventCh {
		if err := writer.WriteEvent(event); err != nil {
			s.logger.Warn("client disconnected mid-stream", "error", err.Error())
			return
		}
	}
	if err := <-errCh; err != nil {
		s.logger.Error("streaming invocation failed", "error", err.Error())
		return
	}
	// transport-level completion sentinel after the orchestrator's own
	// terminal metadata event
	if err := writer.WriteEvent(core.StreamEvent{Type: core.EventDone}); err != nil {
		s.logger.Warn("client disconnected before completion sentinel", "error", err.Error())
	}
}
