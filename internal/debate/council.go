package debate

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nexusdebate/internal/agents"
	"github.com/nexusdebate/internal/audit"
	"github.com/nexusdebate/internal/decision"
	"github.com/nexusdebate/pkg/models"
)

// Council is the three-chair topology: independent initial analyses,
// then open debate rounds, then a consensus decision. It reuses the
// engine machinery's message and pacing conventions rather than
// duplicating a second state machine.
type Council struct {
	chairs []agents.Analyst
	rounds int
	clock  func() time.Time
}

// CouncilResult is the council's terminal output.
type CouncilResult struct {
	Query     string                 `json:"query"`
	SessionID string                 `json:"session_id"`
	Messages  []models.DebateMessage `json:"messages"`
	Decision  models.CouncilDecision `json:"decision"`
	AuditHash string                 `json:"audit_hash"`
}

// NewCouncil assembles the legal, tax, and growth chairs. Chair order
// fixes the message ordering of the analysis round regardless of which
// analysis finishes first.
func NewCouncil(legal, tax, growth agents.Analyst) *Council {
	return &Council{
		chairs: []agents.Analyst{legal, tax, growth},
		rounds: 2,
		clock:  time.Now,
	}
}

// Deliberate runs the full council flow. The initial analyses are
// independent of each other and run concurrently; every later round is
// strictly sequential because each response depends on the combined
// positions so far.
func (c *Council) Deliberate(ctx context.Context, query, sessionID string) (*CouncilResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	result := &CouncilResult{
		Query:     query,
		SessionID: sessionID,
		Messages:  []models.DebateMessage{},
	}

	// Phase 1: concurrent initial analyses.
	analyses := make([]string, len(c.chairs))
	errs := make([]error, len(c.chairs))

	var wg sync.WaitGroup
	for i, chair := range c.chairs {
		wg.Add(1)
		go func(i int, chair agents.Analyst) {
			defer wg.Done()
			analyses[i], errs[i] = chair.Analyze(ctx, query)
		}(i, chair)
	}
	wg.Wait()

	for i, chair := range c.chairs {
		if errs[i] != nil {
			return result, fmt.Errorf("analysis by %s failed: %w", chair.Name(), errs[i])
		}
		if strings.TrimSpace(analyses[i]) == "" {
			return result, fmt.Errorf("analysis by %s: %w", chair.Name(), agents.ErrEmptyResponse)
		}
		result.Messages = append(result.Messages, models.DebateMessage{
			Agent:     chair.Name(),
			Role:      chair.Role(),
			Round:     models.RoundAnalysis,
			Content:   analyses[i],
			Timestamp: c.clock(),
		})
	}

	// Phase 2: sequential debate rounds over the combined positions.
	positions := c.combinedPositions(analyses)
	for round := 1; round <= c.rounds; round++ {
		for _, chair := range c.chairs {
			response, err := chair.Respond(ctx, query, positions)
			if err != nil {
				return result, fmt.Errorf("round %d response by %s failed: %w", round, chair.Name(), err)
			}
			if strings.TrimSpace(response) == "" {
				return result, fmt.Errorf("round %d response by %s: %w", round, chair.Name(), agents.ErrEmptyResponse)
			}
			result.Messages = append(result.Messages, models.DebateMessage{
				Agent:              chair.Name(),
				Role:               chair.Role(),
				Round:              models.RoundDebate,
				Content:            fmt.Sprintf("Round %d: %s", round, response),
				Timestamp:          c.clock(),
				ReferencesPrevious: true,
			})
		}
	}

	// Phase 3: consensus decision and audit hash.
	result.Decision = decision.SynthesizeCouncil(analyses[0], analyses[1], analyses[2])

	hash, err := audit.CanonicalHash(map[string]interface{}{
		"query":     query,
		"decision":  result.Decision.Decision,
		"consensus": result.Decision.Consensus,
		"dissents":  result.Decision.Dissents,
		"messages":  messageContents(result.Messages),
	})
	if err != nil {
		return result, fmt.Errorf("failed to hash council record: %w", err)
	}
	result.AuditHash = "0x" + hash

	log.Info().
		Str("session_id", sessionID).
		Bool("consensus", result.Decision.Consensus).
		Int("dissents", len(result.Decision.Dissents)).
		Msg("Council deliberation complete")

	return result, nil
}

func (c *Council) combinedPositions(analyses []string) string {
	var b strings.Builder
	for i, chair := range c.chairs {
		fmt.Fprintf(&b, "%s position: %s\n", chair.Role(), analyses[i])
	}
	return b.String()
}

func messageContents(messages []models.DebateMessage) []string {
	contents := make([]string, len(messages))
	for i, m := range messages {
		contents[i] = fmt.Sprintf("%s|%s|%s", m.Role, m.Round, m.Content)
	}
	return contents
}
