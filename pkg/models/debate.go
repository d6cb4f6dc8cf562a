package models

import "time"

// Role identifies which chair a participant occupies in a deliberation.
type Role string

const (
	// Adversarial two-sided flow.
	RoleRisk     Role = "risk"
	RoleGrowth   Role = "growth"
	RoleMediator Role = "mediator"

	// Council flow adds dedicated legal and tax chairs.
	RoleLegal Role = "legal"
	RoleTax   Role = "tax"
)

// Round is the coarse grouping of debate phases.
type Round string

const (
	RoundOpening   Round = "opening"
	RoundRebuttal  Round = "rebuttal"
	RoundFinal     Round = "final"
	RoundSynthesis Round = "synthesis"

	// Council-only rounds.
	RoundAnalysis Round = "analysis"
	RoundDebate   Round = "debate"
)

// DebateMessage is a single turn of a debate. Messages are created once
// per phase and never mutated afterwards.
type DebateMessage struct {
	Agent              string    `json:"agent"`
	Role               Role      `json:"role"`
	Round              Round     `json:"round"`
	Content            string    `json:"content"`
	Timestamp          time.Time `json:"timestamp"`
	IsRebuttal         bool      `json:"is_rebuttal"`
	ReferencesPrevious bool      `json:"references_previous"`
}

// Synthesis is the mediator's derived decision from both sides'
// accumulated positions. Immutable once produced.
type Synthesis struct {
	Verdict     string `json:"verdict"`
	RiskScore   string `json:"risk_score"`
	RiskColor   string `json:"risk_color"`
	CostOfDelay string `json:"cost_of_delay"`
	Confidence  int    `json:"confidence"`
	Approach    string `json:"approach"`
}

// CouncilDecision is the three-agent council's terminal outcome.
type CouncilDecision struct {
	Decision       string   `json:"decision"`
	Consensus      bool     `json:"consensus"`
	Dissents       []string `json:"dissents"`
	RiskAssessment string   `json:"risk_assessment"`
}

// Receipt confirms that a content hash was accepted by the ledger
// backend.
type Receipt struct {
	TxHash      string    `json:"tx_hash"`
	BlockNumber int64     `json:"block_number"`
	ContentHash string    `json:"content_hash"`
	ExplorerURL string    `json:"explorer_url"`
	Timestamp   time.Time `json:"timestamp"`
}
