package agents

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/nexusdebate/internal/decision"
	"github.com/nexusdebate/internal/retry"
	"github.com/nexusdebate/pkg/models"
)

// ModelOptions configures the language model backing an LLM agent.
type ModelOptions struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
	MaxTokens   int
}

// NewModel creates a langchaingo model for the configured provider.
func NewModel(ctx context.Context, opts ModelOptions) (llms.Model, error) {
	log.Debug().
		Str("provider", opts.Provider).
		Str("model", opts.Model).
		Msg("Creating LLM backend")

	switch opts.Provider {
	case "openai":
		o := []openai.Option{
			openai.WithModel(opts.Model),
			openai.WithToken(opts.APIKey),
		}
		if opts.BaseURL != "" {
			o = append(o, openai.WithBaseURL(opts.BaseURL))
		}
		return openai.New(o...)
	case "anthropic":
		return anthropic.New(
			anthropic.WithToken(opts.APIKey),
			anthropic.WithModel(opts.Model),
		)
	case "gemini":
		return googleai.New(ctx, googleai.WithAPIKey(opts.APIKey))
	case "ollama":
		baseURL := opts.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.New(
			ollama.WithServerURL(baseURL),
			ollama.WithModel(opts.Model),
		)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", opts.Provider)
	}
}

// LLMDebater backs one debate side with a language model completion
// endpoint. Calls carry a bounded timeout and retry transient failures
// with exponential backoff; an empty completion is fatal.
type LLMDebater struct {
	name     string
	role     models.Role
	persona  string
	model    llms.Model
	opts     ModelOptions
	timeout  time.Duration
	retryCfg retry.Config
}

// NewLLMDebater wires a persona prompt to a model backend.
func NewLLMDebater(name string, role models.Role, persona string, model llms.Model, opts ModelOptions, timeout time.Duration, retryCfg retry.Config) *LLMDebater {
	return &LLMDebater{
		name:     name,
		role:     role,
		persona:  persona,
		model:    model,
		opts:     opts,
		timeout:  timeout,
		retryCfg: retryCfg,
	}
}

func (a *LLMDebater) Name() string      { return a.name }
func (a *LLMDebater) Role() models.Role { return a.role }

func (a *LLMDebater) OpeningArgument(ctx context.Context, query string) (string, error) {
	prompt := fmt.Sprintf(`%s

The business decision under debate:
%s

Deliver your OPENING ARGUMENT. State your position clearly, back it with concrete figures and precedents in your persona's style, and end with an explicit recommendation. Stay under 300 words.`,
		a.persona, query)

	return a.generate(ctx, prompt)
}

func (a *LLMDebater) Rebut(ctx context.Context, query, opponentText string, opponentRole models.Role) (string, error) {
	prompt := fmt.Sprintf(`%s

The business decision under debate:
%s

Your opponent (the %s advisor) just argued:
---
%s
---

Deliver your REBUTTAL. You must directly engage with your opponent's specific claims above, quoting or paraphrasing at least one of them, before countering with your own reasoning. Stay under 300 words.`,
		a.persona, query, opponentRole, opponentText)

	return a.generate(ctx, prompt)
}

func (a *LLMDebater) FinalPosition(ctx context.Context, query, opponentLast string) (string, error) {
	prompt := fmt.Sprintf(`%s

The business decision under debate:
%s

Your opponent's latest message:
---
%s
---

Deliver your FINAL POSITION. You may concede minor points, but restate your core recommendation unambiguously. Stay under 250 words.`,
		a.persona, query, opponentLast)

	return a.generate(ctx, prompt)
}

func (a *LLMDebater) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	logger := log.With().Str("agent", a.name).Logger()

	var out string
	result := retry.Do(ctx, a.retryCfg, logger, func() error {
		completion, err := llms.GenerateFromSinglePrompt(ctx, a.model, prompt,
			llms.WithMaxTokens(a.opts.MaxTokens),
			llms.WithTemperature(a.opts.Temperature),
		)
		if err != nil {
			return err
		}
		out = completion
		return nil
	})
	if !result.Success {
		return "", fmt.Errorf("agent %s call failed after %d attempts: %w", a.name, result.Attempts, result.LastError)
	}

	if strings.TrimSpace(out) == "" {
		return "", fmt.Errorf("agent %s: %w", a.name, ErrEmptyResponse)
	}

	return out, nil
}

// LLMMediator asks the model for verdict prose but derives every
// numeric and categorical field deterministically from the positions,
// so the decision itself stays reproducible.
type LLMMediator struct {
	inner *LLMDebater
}

// NewLLMMediator wraps a debater-shaped LLM caller as the mediator.
func NewLLMMediator(model llms.Model, opts ModelOptions, timeout time.Duration, retryCfg retry.Config) *LLMMediator {
	return &LLMMediator{
		inner: NewLLMDebater("The Mediator", models.RoleMediator, mediatorPersona, model, opts, timeout, retryCfg),
	}
}

func (m *LLMMediator) Name() string { return m.inner.name }

func (m *LLMMediator) Synthesize(ctx context.Context, riskPosition, growthPosition, query string) (models.Synthesis, error) {
	base := decision.Synthesize(riskPosition, growthPosition, query)

	prompt := fmt.Sprintf(`%s

The business decision under debate:
%s

The risk advisor's full position:
---
%s
---

The growth advisor's full position:
---
%s
---

The agreed classification is %s with approach "%s". Write the mediator's VERDICT: a balanced synthesis of both positions ending in a concrete phased action plan consistent with that classification. Stay under 400 words.`,
		mediatorPersona, query, riskPosition, growthPosition, base.RiskScore, base.Approach)

	verdict, err := m.inner.generate(ctx, prompt)
	if err != nil {
		return models.Synthesis{}, err
	}

	base.Verdict = verdict
	return base, nil
}

// Persona prompts for the LLM-backed roster.
const (
	riskPersona = `You are "Paranoid Lawyer", an ultra risk-averse legal counsel. You see legal landmines everywhere, cite real precedents and statutes, quantify worst-case fines, and recommend blocking risky moves until reviewed. Use the word BLOCK when you mean it.`

	growthPersona = `You are "Greedy Finance", an aggressive growth-obsessed finance advisor. You quantify upside in concrete dollar figures, cite companies that won by moving fast, treat delay as the biggest cost, and push to SHIP NOW.`

	mediatorPersona = `You are "The Mediator", a balanced judge who synthesizes opposing legal and financial positions into one actionable business decision.`
)
