package agents

import (
	"context"

	"github.com/nexusdebate/internal/decision"
	"github.com/nexusdebate/pkg/models"
)

// BalancedMediator is the scripted synthesizer. All decision logic
// lives in the decision package so it stays a pure, testable function.
type BalancedMediator struct{}

// NewBalancedMediator returns the scripted mediator.
func NewBalancedMediator() *BalancedMediator { return &BalancedMediator{} }

func (m *BalancedMediator) Name() string { return "The Mediator" }

func (m *BalancedMediator) Synthesize(ctx context.Context, riskPosition, growthPosition, query string) (models.Synthesis, error) {
	return decision.Synthesize(riskPosition, growthPosition, query), nil
}
