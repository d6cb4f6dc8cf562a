// Package debate implements the deliberation state machine: it
// sequences opening arguments, rebuttals, final positions, and
// synthesis across the participants, threading each phase's output
// into the next phase's input.
package debate

import (
	"errors"

	"github.com/nexusdebate/pkg/models"
)

var (
	// ErrEmptyQuery rejects a debate before any phase executes.
	ErrEmptyQuery = errors.New("debate query is empty")
)

// State is one stop in the debate flow.
type State string

const (
	StateInit           State = "init"
	StateRiskOpening    State = "risk_opening"
	StateGrowthOpening  State = "growth_opening"
	StateRiskRebuttal   State = "risk_rebuttal"
	StateGrowthRebuttal State = "growth_rebuttal"
	StateRiskFinal      State = "risk_final"
	StateGrowthFinal    State = "growth_final"
	StateSynthesis      State = "synthesis"
	StateComplete       State = "complete"
)

// transitions is a total function from every non-terminal state to its
// successor. The path through all phases is always fully walked; no
// transition depends on message content.
var transitions = map[State]State{
	StateInit:           StateRiskOpening,
	StateRiskOpening:    StateGrowthOpening,
	StateGrowthOpening:  StateRiskRebuttal,
	StateRiskRebuttal:   StateGrowthRebuttal,
	StateGrowthRebuttal: StateRiskFinal,
	StateRiskFinal:      StateGrowthFinal,
	StateGrowthFinal:    StateSynthesis,
	StateSynthesis:      StateComplete,
}

// Context is the mutable accumulator for one debate run. It holds the
// append-only message sequence plus named slots so later phases can
// reference any earlier phase's output directly. One debate owns one
// Context; it is never shared across runs.
type Context struct {
	Query     string `json:"query"`
	SessionID string `json:"session_id"`

	State State        `json:"state"`
	Round models.Round `json:"round"`

	Messages []models.DebateMessage `json:"messages"`

	RiskOpening    string `json:"risk_opening,omitempty"`
	GrowthOpening  string `json:"growth_opening,omitempty"`
	RiskRebuttal   string `json:"risk_rebuttal,omitempty"`
	GrowthRebuttal string `json:"growth_rebuttal,omitempty"`
	RiskFinal      string `json:"risk_final,omitempty"`
	GrowthFinal    string `json:"growth_final,omitempty"`

	Synthesis *models.Synthesis `json:"synthesis,omitempty"`
}

func newContext(query, sessionID string) *Context {
	return &Context{
		Query:     query,
		SessionID: sessionID,
		State:     StateInit,
		Round:     models.RoundOpening,
		Messages:  []models.DebateMessage{},
	}
}

// RiskPosition is the risk side's full accumulated position across all
// of its phases, formatted for the mediator.
func (c *Context) RiskPosition() string {
	return "OPENING: " + c.RiskOpening + "\nREBUTTAL: " + c.RiskRebuttal + "\nFINAL: " + c.RiskFinal
}

// GrowthPosition is the growth side's full accumulated position.
func (c *Context) GrowthPosition() string {
	return "OPENING: " + c.GrowthOpening + "\nREBUTTAL: " + c.GrowthRebuttal + "\nFINAL: " + c.GrowthFinal
}
