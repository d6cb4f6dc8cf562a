package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/nexusdebate/internal/debate"
	"github.com/nexusdebate/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// CORS is handled at the HTTP layer; the socket accepts any origin
	// the middleware let through.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsQuery is the client's request frame.
type wsQuery struct {
	Query string `json:"query"`
}

// Wire frames, one struct per event type.
type wsMessage struct {
	Type       string `json:"type"`
	Agent      string `json:"agent"`
	Role       string `json:"role"`
	Round      string `json:"round"`
	Content    string `json:"content"`
	Timestamp  string `json:"timestamp"`
	IsRebuttal bool   `json:"is_rebuttal"`
}

type wsSynthesis struct {
	Type    string                 `json:"type"`
	Summary map[string]interface{} `json:"summary"`
}

type wsAuditStatus struct {
	Type    string `json:"type"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type wsAudit struct {
	Type        string `json:"type"`
	Status      string `json:"status"`
	TxHash      string `json:"tx_hash,omitempty"`
	ExplorerURL string `json:"explorer_url,omitempty"`
	ContentHash string `json:"content_hash,omitempty"`
	Error       string `json:"error,omitempty"`
}

type wsError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// streamDebate serves one websocket connection. Each request frame
// starts a fresh debate; messages stream as they are produced, followed
// by the synthesis and the audit trail events.
func (s *Server) streamDebate(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx := c.Request().Context()

	for {
		var req wsQuery
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Msg("Websocket closed unexpectedly")
			}
			return nil
		}

		sessionID := uuid.NewString()

		for ev := range s.engine.Stream(ctx, req.Query, sessionID) {
			switch ev.Kind {
			case debate.EventMessage:
				frame := wsMessage{
					Type:       "message",
					Agent:      ev.Message.Agent,
					Role:       string(ev.Message.Role),
					Round:      string(ev.Message.Round),
					Content:    ev.Message.Content,
					Timestamp:  ev.Message.Timestamp.Format(time.RFC3339),
					IsRebuttal: ev.Message.IsRebuttal,
				}
				if err := conn.WriteJSON(frame); err != nil {
					return nil
				}

			case debate.EventComplete:
				s.store.Put(sessionID, &session.Record{Context: ev.Final})
				if err := s.finishStream(c, conn, req.Query, sessionID, ev.Final); err != nil {
					return nil
				}

			case debate.EventError:
				if ev.Final != nil {
					s.store.Put(sessionID, &session.Record{Context: ev.Final, Failed: true, Error: ev.Err.Error()})
				}
				if err := conn.WriteJSON(wsError{Type: "error", Message: ev.Err.Error()}); err != nil {
					return nil
				}
			}
		}
	}
}

// finishStream sends the synthesis and runs the audit flow, emitting
// the status transitions the client renders as a progress indicator.
func (s *Server) finishStream(c echo.Context, conn *websocket.Conn, query, sessionID string, final *debate.Context) error {
	synthesis := final.Synthesis

	if err := conn.WriteJSON(wsSynthesis{
		Type: "synthesis",
		Summary: map[string]interface{}{
			"risk_score":    synthesis.RiskScore,
			"risk_color":    synthesis.RiskColor,
			"cost_of_delay": synthesis.CostOfDelay,
			"confidence":    synthesis.Confidence,
			"approach":      synthesis.Approach,
		},
	}); err != nil {
		return err
	}

	if err := conn.WriteJSON(wsAuditStatus{
		Type:    "audit_status",
		Status:  "recording",
		Message: "Recording to ledger...",
	}); err != nil {
		return err
	}

	receipt, err := s.recorder.Record(c.Request().Context(), query, final.Messages, *synthesis, sessionID)
	if err != nil {
		return conn.WriteJSON(wsAudit{Type: "audit", Status: "failed", Error: err.Error()})
	}

	return conn.WriteJSON(wsAudit{
		Type:        "audit",
		Status:      "completed",
		TxHash:      receipt.TxHash,
		ExplorerURL: receipt.ExplorerURL,
		ContentHash: truncateHash(receipt.ContentHash),
	})
}

func truncateHash(hash string) string {
	if len(hash) <= 16 {
		return hash
	}
	return hash[:16] + "..."
}
