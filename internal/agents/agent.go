// Package agents defines the participant contracts for a debate and
// provides both scripted (deterministic template) and LLM-backed
// implementations. The orchestrator depends only on the interfaces
// here, never on how an agent decides its content.
package agents

import (
	"context"
	"errors"
	"strings"

	"github.com/nexusdebate/pkg/models"
)

// ErrEmptyResponse indicates an agent returned blank content, which is
// a contract violation: the orchestrator never fabricates filler text.
var ErrEmptyResponse = errors.New("agent returned empty response")

// Debater is one adversarial side of a debate.
type Debater interface {
	Name() string
	Role() models.Role

	// OpeningArgument produces an initial position from the raw query.
	OpeningArgument(ctx context.Context, query string) (string, error)

	// Rebut produces a response that engages with the opponent's most
	// recent cumulative statement. Implementations must reference
	// opponentText, not merely restate their own opening.
	Rebut(ctx context.Context, query, opponentText string, opponentRole models.Role) (string, error)

	// FinalPosition produces a closing stance given the opponent's
	// latest message.
	FinalPosition(ctx context.Context, query, opponentLast string) (string, error)
}

// Mediator synthesizes two full positions into a decision.
type Mediator interface {
	Name() string
	Synthesize(ctx context.Context, riskPosition, growthPosition, query string) (models.Synthesis, error)
}

// Analyst is a council chair: it analyzes the query independently and
// then responds to the combined positions in open debate rounds.
type Analyst interface {
	Name() string
	Role() models.Role
	Analyze(ctx context.Context, query string) (string, error)
	Respond(ctx context.Context, query, otherPositions string) (string, error)
}

// snippet extracts a short quotable excerpt from an opponent's text so
// rebuttals visibly engage with the claim they answer.
func snippet(text string) string {
	text = strings.TrimSpace(text)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			if len(line) > 120 {
				return line[:120] + "..."
			}
			return line
		}
	}
	return ""
}
