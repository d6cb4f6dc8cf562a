package debate

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusdebate/pkg/models"
)

// stubDebater returns canned text and records every input it was
// handed, so tests can verify the orchestrator threads the right
// context slots into each call.
type stubDebater struct {
	name models.Role

	opening  string
	rebuttal string
	final    string

	rebutInput     string
	rebutRole      models.Role
	finalLastInput string

	failOn string // "opening", "rebut", "final"
	err    error
}

func (s *stubDebater) Name() string      { return string(s.name) + "-agent" }
func (s *stubDebater) Role() models.Role { return s.name }

func (s *stubDebater) OpeningArgument(ctx context.Context, query string) (string, error) {
	if s.failOn == "opening" {
		return "", s.err
	}
	return s.opening, nil
}

func (s *stubDebater) Rebut(ctx context.Context, query, opponentText string, opponentRole models.Role) (string, error) {
	if s.failOn == "rebut" {
		return "", s.err
	}
	s.rebutInput = opponentText
	s.rebutRole = opponentRole
	return s.rebuttal, nil
}

func (s *stubDebater) FinalPosition(ctx context.Context, query, opponentLast string) (string, error) {
	if s.failOn == "final" {
		return "", s.err
	}
	s.finalLastInput = opponentLast
	return s.final, nil
}

type stubMediator struct {
	synthesis models.Synthesis
	riskInput string
	growInput string
	err       error
}

func (m *stubMediator) Name() string { return "mediator-agent" }

func (m *stubMediator) Synthesize(ctx context.Context, riskPosition, growthPosition, query string) (models.Synthesis, error) {
	if m.err != nil {
		return models.Synthesis{}, m.err
	}
	m.riskInput = riskPosition
	m.growInput = growthPosition
	return m.synthesis, nil
}

func newStubs() (*stubDebater, *stubDebater, *stubMediator) {
	risk := &stubDebater{
		name:     models.RoleRisk,
		opening:  "risk opening",
		rebuttal: "risk rebuttal",
		final:    "risk final",
	}
	growth := &stubDebater{
		name:     models.RoleGrowth,
		opening:  "growth opening",
		rebuttal: "growth rebuttal",
		final:    "growth final",
	}
	mediator := &stubMediator{
		synthesis: models.Synthesis{Verdict: "verdict", RiskScore: "LOW", Confidence: 85, Approach: "SAFE TO PROCEED"},
	}
	return risk, growth, mediator
}

func TestRun_PhaseOrdering(t *testing.T) {
	risk, growth, mediator := newStubs()
	engine := NewEngine(risk, growth, mediator)

	dc, err := engine.Run(context.Background(), "a query", "s1")
	require.NoError(t, err)

	assert.Equal(t, StateComplete, dc.State)
	require.Len(t, dc.Messages, 7)

	wantRounds := []models.Round{
		models.RoundOpening, models.RoundOpening,
		models.RoundRebuttal, models.RoundRebuttal,
		models.RoundFinal, models.RoundFinal,
		models.RoundSynthesis,
	}
	wantRoles := []models.Role{
		models.RoleRisk, models.RoleGrowth,
		models.RoleRisk, models.RoleGrowth,
		models.RoleRisk, models.RoleGrowth,
		models.RoleMediator,
	}

	for i, msg := range dc.Messages {
		assert.Equal(t, wantRounds[i], msg.Round, "message %d round", i)
		assert.Equal(t, wantRoles[i], msg.Role, "message %d role", i)
	}
}

func TestRun_RebuttalFlagsSet(t *testing.T) {
	risk, growth, mediator := newStubs()
	engine := NewEngine(risk, growth, mediator)

	dc, err := engine.Run(context.Background(), "a query", "s1")
	require.NoError(t, err)

	for i, msg := range dc.Messages {
		isRebuttalRound := msg.Round == models.RoundRebuttal
		assert.Equal(t, isRebuttalRound, msg.IsRebuttal, "message %d", i)
		assert.Equal(t, isRebuttalRound, msg.ReferencesPrevious, "message %d", i)
	}
}

func TestRun_ThreadsOpponentSlots(t *testing.T) {
	risk, growth, mediator := newStubs()
	engine := NewEngine(risk, growth, mediator)

	_, err := engine.Run(context.Background(), "a query", "s1")
	require.NoError(t, err)

	// Risk rebuts growth's opening only.
	assert.Equal(t, "growth opening", risk.rebutInput)
	assert.Equal(t, models.RoleGrowth, risk.rebutRole)

	// Growth rebuts risk's opening plus risk's rebuttal.
	assert.Equal(t, "risk opening\n\nrisk rebuttal", growth.rebutInput)
	assert.Equal(t, models.RoleRisk, growth.rebutRole)

	// Finals each receive the opponent's rebuttal.
	assert.Equal(t, "growth rebuttal", risk.finalLastInput)
	assert.Equal(t, "risk rebuttal", growth.finalLastInput)

	// The mediator receives each side's full accumulated position.
	assert.Contains(t, mediator.riskInput, "risk opening")
	assert.Contains(t, mediator.riskInput, "risk rebuttal")
	assert.Contains(t, mediator.riskInput, "risk final")
	assert.Contains(t, mediator.growInput, "growth final")
}

func TestRun_SlotsPopulated(t *testing.T) {
	risk, growth, mediator := newStubs()
	engine := NewEngine(risk, growth, mediator)

	dc, err := engine.Run(context.Background(), "a query", "s1")
	require.NoError(t, err)

	assert.Equal(t, "risk opening", dc.RiskOpening)
	assert.Equal(t, "growth opening", dc.GrowthOpening)
	assert.Equal(t, "risk rebuttal", dc.RiskRebuttal)
	assert.Equal(t, "growth rebuttal", dc.GrowthRebuttal)
	assert.Equal(t, "risk final", dc.RiskFinal)
	assert.Equal(t, "growth final", dc.GrowthFinal)
	require.NotNil(t, dc.Synthesis)
	assert.Equal(t, "verdict", dc.Synthesis.Verdict)
}

func TestRun_EmptyQueryRejected(t *testing.T) {
	risk, growth, mediator := newStubs()
	engine := NewEngine(risk, growth, mediator)

	_, err := engine.Run(context.Background(), "   ", "s1")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestRun_PhaseFailureAbortsDebate(t *testing.T) {
	risk, growth, mediator := newStubs()
	growth.failOn = "rebut"
	growth.err = errors.New("backend exploded")

	engine := NewEngine(risk, growth, mediator)

	dc, err := engine.Run(context.Background(), "a query", "s1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend exploded")

	// Prior successful phases remain inspectable; nothing after the
	// failed phase executed.
	require.NotNil(t, dc)
	assert.Len(t, dc.Messages, 3)
	assert.NotEqual(t, StateComplete, dc.State)
	assert.Nil(t, dc.Synthesis)
	assert.Empty(t, growth.rebutInput)
}

func TestRun_EmptyResponseIsFatal(t *testing.T) {
	risk, growth, mediator := newStubs()
	risk.opening = "   "

	engine := NewEngine(risk, growth, mediator)

	dc, err := engine.Run(context.Background(), "a query", "s1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
	assert.Empty(t, dc.Messages)
}

func TestRun_CancelledContext(t *testing.T) {
	risk, growth, mediator := newStubs()
	engine := NewEngine(risk, growth, mediator)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Run(ctx, "a query", "s1")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_TimestampsFromClock(t *testing.T) {
	risk, growth, mediator := newStubs()

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	engine := NewEngine(risk, growth, mediator, WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}))

	dc, err := engine.Run(context.Background(), "a query", "s1")
	require.NoError(t, err)

	for i := 1; i < len(dc.Messages); i++ {
		assert.True(t, dc.Messages[i].Timestamp.After(dc.Messages[i-1].Timestamp),
			"message %d should be timestamped after message %d", i, i-1)
	}
}

func TestTransitions_TotalAndAcyclic(t *testing.T) {
	state := StateInit
	visited := map[State]bool{StateInit: true}

	for state != StateComplete {
		next, ok := transitions[state]
		require.True(t, ok, "missing transition from %s", state)
		require.False(t, visited[next], "state %s visited twice", next)
		visited[next] = true
		state = next
	}

	assert.Len(t, visited, 9, "every state should be visited exactly once")
}

// retryingDebater fails N times before succeeding, modeling a flaky
// external backend whose retries are handled inside the agent.
type retryingDebater struct {
	stubDebater
	failures int
	calls    int
}

func (r *retryingDebater) OpeningArgument(ctx context.Context, query string) (string, error) {
	r.calls++
	if r.calls <= r.failures {
		return "", fmt.Errorf("rate limit (attempt %d)", r.calls)
	}
	return r.opening, nil
}

func TestRun_AgentInternalRetriesInvisible(t *testing.T) {
	// The orchestrator sees only the final agent outcome; an agent
	// that recovers internally produces a normal debate.
	_, growth, mediator := newStubs()

	flaky := &retryingDebater{failures: 0}
	flaky.name = models.RoleRisk
	flaky.opening = "recovered opening"
	flaky.rebuttal = "risk rebuttal"
	flaky.final = "risk final"

	engine := NewEngine(flaky, growth, mediator)

	dc, err := engine.Run(context.Background(), "a query", "s1")
	require.NoError(t, err)
	assert.Equal(t, "recovered opening", dc.RiskOpening)
}
