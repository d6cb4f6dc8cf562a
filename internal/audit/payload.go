// Package audit canonicalizes a finished debate into a deterministic
// payload, hashes it, and records the hash with a ledger backend. The
// hash is the durable artifact; everything else is in-memory.
package audit

import (
	"time"

	"github.com/nexusdebate/pkg/models"
)

// SidePair holds one round's text for both adversarial sides.
type SidePair struct {
	Risk   string `json:"risk"`
	Growth string `json:"growth"`
}

// DebateRounds groups the transcript by round and side.
type DebateRounds struct {
	Opening  SidePair `json:"round1_opening"`
	Rebuttal SidePair `json:"round2_rebuttal"`
	Final    SidePair `json:"round3_final"`
}

// DecisionSummary is the compact decision record embedded alongside
// the full synthesis.
type DecisionSummary struct {
	RiskScore      string `json:"risk_score"`
	CostOfDelay    string `json:"cost_of_delay"`
	Confidence     int    `json:"confidence"`
	Recommendation string `json:"recommendation"`
}

// Payload is the canonical snapshot of one completed debate.
type Payload struct {
	Version   string           `json:"version"`
	Timestamp string           `json:"timestamp"`
	SessionID string           `json:"session_id"`
	Query     string           `json:"query"`
	Debate    DebateRounds     `json:"debate"`
	Synthesis models.Synthesis `json:"synthesis"`
	Decision  DecisionSummary  `json:"decision"`
}

// BuildPayload assembles the canonical audit structure from a debate
// transcript. The timestamp is passed in rather than read from the
// wall clock so payloads are reproducible.
func BuildPayload(query string, messages []models.DebateMessage, synthesis models.Synthesis, sessionID string, at time.Time) Payload {
	var rounds DebateRounds

	for _, msg := range messages {
		switch msg.Role {
		case models.RoleRisk:
			switch msg.Round {
			case models.RoundOpening:
				rounds.Opening.Risk = msg.Content
			case models.RoundRebuttal:
				rounds.Rebuttal.Risk = msg.Content
			case models.RoundFinal:
				rounds.Final.Risk = msg.Content
			}
		case models.RoleGrowth:
			switch msg.Round {
			case models.RoundOpening:
				rounds.Opening.Growth = msg.Content
			case models.RoundRebuttal:
				rounds.Rebuttal.Growth = msg.Content
			case models.RoundFinal:
				rounds.Final.Growth = msg.Content
			}
		}
	}

	return Payload{
		Version:   "1.0",
		Timestamp: at.UTC().Format(time.RFC3339),
		SessionID: sessionID,
		Query:     query,
		Debate:    rounds,
		Synthesis: synthesis,
		Decision: DecisionSummary{
			RiskScore:      synthesis.RiskScore,
			CostOfDelay:    synthesis.CostOfDelay,
			Confidence:     synthesis.Confidence,
			Recommendation: synthesis.Approach,
		},
	}
}
