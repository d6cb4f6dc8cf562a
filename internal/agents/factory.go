package agents

import (
	"context"
	"fmt"

	"github.com/nexusdebate/internal/config"
	"github.com/nexusdebate/internal/retry"
	"github.com/nexusdebate/pkg/models"
)

// Roster is the set of participants for one deliberation topology.
type Roster struct {
	Risk     Debater
	Growth   Debater
	Mediator Mediator

	// Council chairs.
	Legal       Analyst
	Tax         Analyst
	GrowthChair Analyst
}

// BuildRoster constructs all participants from configuration. In
// scripted mode agents are stateless and deterministic; in llm mode
// every debater shares one model backend but carries its own persona.
func BuildRoster(ctx context.Context, cfg *config.Config) (*Roster, error) {
	roster := &Roster{
		Legal:       NewLegalScholar(),
		Tax:         NewTaxComptroller(),
		GrowthChair: NewGrowthHacker(),
	}

	switch cfg.Agents.Mode {
	case config.ModeScripted:
		roster.Risk = NewRiskCounsel()
		roster.Growth = NewGrowthFinance()
		roster.Mediator = NewBalancedMediator()
		return roster, nil

	case config.ModeLLM:
		opts := ModelOptions{
			Provider:    cfg.Agents.LLM.Provider,
			Model:       cfg.Agents.LLM.Model,
			APIKey:      cfg.Agents.LLM.APIKey,
			BaseURL:     cfg.Agents.LLM.BaseURL,
			Temperature: cfg.Agents.LLM.Temperature,
			MaxTokens:   cfg.Agents.LLM.MaxTokens,
		}

		model, err := NewModel(ctx, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM backend: %w", err)
		}

		retryCfg := retry.Config{
			MaxRetries: cfg.Retry.MaxRetries,
			BaseDelay:  cfg.Retry.BaseDelay,
			MaxDelay:   cfg.Retry.MaxDelay,
			Multiplier: cfg.Retry.Multiplier,
			Jitter:     true,
		}
		timeout := cfg.Timeouts.Agent

		roster.Risk = NewLLMDebater("Paranoid Lawyer", models.RoleRisk, riskPersona, model, opts, timeout, retryCfg)
		roster.Growth = NewLLMDebater("Greedy Finance", models.RoleGrowth, growthPersona, model, opts, timeout, retryCfg)
		roster.Mediator = NewLLMMediator(model, opts, timeout, retryCfg)
		return roster, nil

	default:
		return nil, fmt.Errorf("unknown agents.mode %q", cfg.Agents.Mode)
	}
}
