package api

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/nexusdebate/internal/audit"
	"github.com/nexusdebate/internal/debate"
	"github.com/nexusdebate/internal/session"
	"github.com/nexusdebate/pkg/models"
)

// DebateRequest is the body of POST /api/v1/debates.
type DebateRequest struct {
	Query string `json:"query"`
}

// DebateResponse is the synchronous debate result. AuditStatus is
// "completed" or "failed"; a failed audit never fails the request
// because the transcript and synthesis are already valid.
type DebateResponse struct {
	SessionID   string                 `json:"session_id"`
	Messages    []models.DebateMessage `json:"messages"`
	Summary     *models.Synthesis      `json:"summary"`
	AuditStatus string                 `json:"audit_status"`
	Receipt     *models.Receipt        `json:"receipt,omitempty"`
	AuditError  string                 `json:"audit_error,omitempty"`
}

func (s *Server) runDebate(c echo.Context) error {
	var req DebateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	sessionID := uuid.NewString()
	ctx := c.Request().Context()

	dc, err := s.engine.Run(ctx, req.Query, sessionID)
	if err != nil {
		if errors.Is(err, debate.ErrEmptyQuery) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		s.store.Put(sessionID, &session.Record{Context: dc, Failed: true, Error: err.Error()})
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	s.store.Put(sessionID, &session.Record{Context: dc})

	resp := DebateResponse{
		SessionID:   sessionID,
		Messages:    dc.Messages,
		Summary:     dc.Synthesis,
		AuditStatus: string(audit.StatusCompleted),
	}

	receipt, err := s.recorder.Record(ctx, req.Query, dc.Messages, *dc.Synthesis, sessionID)
	if err != nil {
		resp.AuditStatus = string(audit.StatusFailed)
		resp.AuditError = err.Error()
	} else {
		resp.Receipt = &receipt
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *Server) getDebate(c echo.Context) error {
	id := c.Param("id")

	record, ok := s.store.Get(id)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}

	if record.Failed {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"session_id": id,
			"failed":     true,
			"error":      record.Error,
			"messages":   record.Context.Messages,
		})
	}

	return c.JSON(http.StatusOK, DebateResponse{
		SessionID: id,
		Messages:  record.Context.Messages,
		Summary:   record.Context.Synthesis,
	})
}

func (s *Server) getAudit(c echo.Context) error {
	id := c.Param("id")

	entry, ok := s.recorder.Status(id)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no audit record for session"})
	}

	return c.JSON(http.StatusOK, entry)
}
