package debate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nexusdebate/internal/agents"
	"github.com/nexusdebate/pkg/models"
)

// Pacing holds the cosmetic delays used by the streaming driver. Both
// may be zero; they affect delivery timing only, never ordering.
type Pacing struct {
	Thinking time.Duration // pause before each non-initial phase
	Message  time.Duration // pause after each emitted message
}

// Engine drives one debate topology over a fixed participant roster.
// Agents must be safe for concurrent use: an Engine may run many
// independent debates at once, each with its own Context.
type Engine struct {
	risk     agents.Debater
	growth   agents.Debater
	mediator agents.Mediator
	pacing   Pacing
	clock    func() time.Time
}

// Option customizes an Engine.
type Option func(*Engine)

// WithPacing sets the streaming delays.
func WithPacing(p Pacing) Option {
	return func(e *Engine) { e.pacing = p }
}

// WithClock overrides message timestamping.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) { e.clock = clock }
}

// NewEngine builds an engine for the two-sided adversarial flow.
func NewEngine(risk, growth agents.Debater, mediator agents.Mediator, opts ...Option) *Engine {
	e := &Engine{
		risk:     risk,
		growth:   growth,
		mediator: mediator,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run executes the full state machine to completion and returns the
// final context. On a phase failure the partially filled context is
// returned alongside the error so already-appended messages stay
// inspectable; the result is failed, not complete.
func (e *Engine) Run(ctx context.Context, query, sessionID string) (*Context, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	dc := newContext(query, sessionID)

	for dc.State != StateComplete {
		if err := e.executeState(ctx, dc); err != nil {
			return dc, err
		}
		dc.State = transitions[dc.State]
	}

	log.Info().
		Str("session_id", sessionID).
		Int("messages", len(dc.Messages)).
		Str("risk_score", dc.Synthesis.RiskScore).
		Msg("Debate complete")

	return dc, nil
}

// executeState runs the current state's phase handler: it invokes the
// corresponding agent operation with exactly the context slots that
// operation's contract specifies, appends the resulting message, and
// advances the round marker at round boundaries.
func (e *Engine) executeState(ctx context.Context, dc *Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	switch dc.State {
	case StateInit:
		dc.Round = models.RoundOpening

	case StateRiskOpening:
		response, err := e.risk.OpeningArgument(ctx, dc.Query)
		if err := e.checkResponse(dc, response, err); err != nil {
			return err
		}
		dc.RiskOpening = response
		e.appendMessage(dc, e.risk.Name(), e.risk.Role(), models.RoundOpening, response, false)

	case StateGrowthOpening:
		response, err := e.growth.OpeningArgument(ctx, dc.Query)
		if err := e.checkResponse(dc, response, err); err != nil {
			return err
		}
		dc.GrowthOpening = response
		e.appendMessage(dc, e.growth.Name(), e.growth.Role(), models.RoundOpening, response, false)
		dc.Round = models.RoundRebuttal

	case StateRiskRebuttal:
		// Risk rebuts the growth side's opening only.
		response, err := e.risk.Rebut(ctx, dc.Query, dc.GrowthOpening, e.growth.Role())
		if err := e.checkResponse(dc, response, err); err != nil {
			return err
		}
		dc.RiskRebuttal = response
		e.appendMessage(dc, e.risk.Name(), e.risk.Role(), models.RoundRebuttal, response, true)

	case StateGrowthRebuttal:
		// Growth rebuts everything risk has said so far.
		response, err := e.growth.Rebut(ctx, dc.Query, dc.RiskOpening+"\n\n"+dc.RiskRebuttal, e.risk.Role())
		if err := e.checkResponse(dc, response, err); err != nil {
			return err
		}
		dc.GrowthRebuttal = response
		e.appendMessage(dc, e.growth.Name(), e.growth.Role(), models.RoundRebuttal, response, true)
		dc.Round = models.RoundFinal

	case StateRiskFinal:
		response, err := e.risk.FinalPosition(ctx, dc.Query, dc.GrowthRebuttal)
		if err := e.checkResponse(dc, response, err); err != nil {
			return err
		}
		dc.RiskFinal = response
		e.appendMessage(dc, e.risk.Name(), e.risk.Role(), models.RoundFinal, response, false)

	case StateGrowthFinal:
		response, err := e.growth.FinalPosition(ctx, dc.Query, dc.RiskRebuttal)
		if err := e.checkResponse(dc, response, err); err != nil {
			return err
		}
		dc.GrowthFinal = response
		e.appendMessage(dc, e.growth.Name(), e.growth.Role(), models.RoundFinal, response, false)
		dc.Round = models.RoundSynthesis

	case StateSynthesis:
		synthesis, err := e.mediator.Synthesize(ctx, dc.RiskPosition(), dc.GrowthPosition(), dc.Query)
		if err != nil {
			return e.phaseError(dc, err)
		}
		dc.Synthesis = &synthesis
		e.appendMessage(dc, e.mediator.Name(), models.RoleMediator, models.RoundSynthesis, synthesis.Verdict, false)

	default:
		return fmt.Errorf("no handler for state %s", dc.State)
	}

	return nil
}

func (e *Engine) checkResponse(dc *Context, response string, err error) error {
	if err != nil {
		return e.phaseError(dc, err)
	}
	if strings.TrimSpace(response) == "" {
		return e.phaseError(dc, agents.ErrEmptyResponse)
	}
	return nil
}

func (e *Engine) phaseError(dc *Context, err error) error {
	log.Error().
		Err(err).
		Str("session_id", dc.SessionID).
		Str("state", string(dc.State)).
		Msg("Debate phase failed")
	return fmt.Errorf("phase %s failed: %w", dc.State, err)
}

func (e *Engine) appendMessage(dc *Context, agent string, role models.Role, round models.Round, content string, rebuttal bool) {
	dc.Messages = append(dc.Messages, models.DebateMessage{
		Agent:              agent,
		Role:               role,
		Round:              round,
		Content:            content,
		Timestamp:          e.clock(),
		IsRebuttal:         rebuttal,
		ReferencesPrevious: rebuttal,
	})
}
