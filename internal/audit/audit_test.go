package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusdebate/pkg/models"
)

var fixedTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func sampleMessages() []models.DebateMessage {
	return []models.DebateMessage{
		{Agent: "Paranoid Lawyer", Role: models.RoleRisk, Round: models.RoundOpening, Content: "BLOCK this"},
		{Agent: "Greedy Finance", Role: models.RoleGrowth, Round: models.RoundOpening, Content: "SHIP NOW"},
		{Agent: "Paranoid Lawyer", Role: models.RoleRisk, Round: models.RoundRebuttal, Content: "still no"},
		{Agent: "Greedy Finance", Role: models.RoleGrowth, Round: models.RoundRebuttal, Content: "still yes"},
		{Agent: "Paranoid Lawyer", Role: models.RoleRisk, Round: models.RoundFinal, Content: "phased only"},
		{Agent: "Greedy Finance", Role: models.RoleGrowth, Round: models.RoundFinal, Content: "ship phased"},
		{Agent: "The Mediator", Role: models.RoleMediator, Round: models.RoundSynthesis, Content: "verdict"},
	}
}

func sampleSynthesis() models.Synthesis {
	return models.Synthesis{
		Verdict:     "verdict",
		RiskScore:   "HIGH",
		RiskColor:   "#ef4444",
		CostOfDelay: "$500K/month",
		Confidence:  45,
		Approach:    "PROCEED WITH CAUTION",
	}
}

func TestBuildPayload_GroupsByRoundAndSide(t *testing.T) {
	p := BuildPayload("query", sampleMessages(), sampleSynthesis(), "session-1", fixedTime)

	assert.Equal(t, "1.0", p.Version)
	assert.Equal(t, "BLOCK this", p.Debate.Opening.Risk)
	assert.Equal(t, "SHIP NOW", p.Debate.Opening.Growth)
	assert.Equal(t, "still no", p.Debate.Rebuttal.Risk)
	assert.Equal(t, "still yes", p.Debate.Rebuttal.Growth)
	assert.Equal(t, "phased only", p.Debate.Final.Risk)
	assert.Equal(t, "ship phased", p.Debate.Final.Growth)
	assert.Equal(t, "HIGH", p.Decision.RiskScore)
	assert.Equal(t, "PROCEED WITH CAUTION", p.Decision.Recommendation)
}

func TestHashPayload_Deterministic(t *testing.T) {
	p1 := BuildPayload("query", sampleMessages(), sampleSynthesis(), "session-1", fixedTime)
	p2 := BuildPayload("query", sampleMessages(), sampleSynthesis(), "session-1", fixedTime)

	h1, err := HashPayload(p1)
	require.NoError(t, err)
	h2, err := HashPayload(p2)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64) // hex-encoded SHA-256
}

func TestCanonicalHash_KeyOrderIndependent(t *testing.T) {
	// Two maps with the same logical content built in different key
	// orders must hash identically after canonicalization.
	a := map[string]interface{}{"alpha": 1, "beta": "two", "gamma": []string{"x", "y"}}
	b := map[string]interface{}{"gamma": []string{"x", "y"}, "beta": "two", "alpha": 1}

	ha, err := CanonicalHash(a)
	require.NoError(t, err)
	hb, err := CanonicalHash(b)
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
}

func TestHashPayload_SensitiveToContent(t *testing.T) {
	base := BuildPayload("query", sampleMessages(), sampleSynthesis(), "session-1", fixedTime)

	mutated := base
	mutated.Debate.Opening.Risk = "BLOCK thiS" // single character change

	h1, err := HashPayload(base)
	require.NoError(t, err)
	h2, err := HashPayload(mutated)
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
}

func TestRecorder_CompletedFlow(t *testing.T) {
	ledger := NewSimulatedLedger(0)
	recorder := NewRecorder(ledger).WithClock(func() time.Time { return fixedTime })

	receipt, err := recorder.Record(context.Background(), "query", sampleMessages(), sampleSynthesis(), "session-1")
	require.NoError(t, err)

	assert.NotEmpty(t, receipt.TxHash)
	assert.Contains(t, receipt.TxHash, "0x")
	assert.NotEmpty(t, receipt.ContentHash)
	assert.GreaterOrEqual(t, receipt.BlockNumber, int64(15234567))

	entry, ok := recorder.Status("session-1")
	require.True(t, ok)
	assert.Equal(t, StatusCompleted, entry.Status)
	require.NotNil(t, entry.Receipt)
	assert.Equal(t, receipt.TxHash, entry.Receipt.TxHash)
}

type failingLedger struct{ err error }

func (l *failingLedger) Submit(ctx context.Context, contentHash string) (models.Receipt, error) {
	return models.Receipt{}, l.err
}

func TestRecorder_FailurePreservesReason(t *testing.T) {
	ledger := &failingLedger{err: errors.New("chain unavailable")}
	recorder := NewRecorder(ledger).WithClock(func() time.Time { return fixedTime })

	_, err := recorder.Record(context.Background(), "query", sampleMessages(), sampleSynthesis(), "session-1")
	require.Error(t, err)

	entry, ok := recorder.Status("session-1")
	require.True(t, ok)
	assert.Equal(t, StatusFailed, entry.Status)
	assert.Contains(t, entry.Error, "chain unavailable")
}

func TestSimulatedLedger_DeterministicReceipt(t *testing.T) {
	ledger := NewSimulatedLedger(0)

	r1, err := ledger.Submit(context.Background(), "abc123")
	require.NoError(t, err)
	r2, err := ledger.Submit(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, r1.TxHash, r2.TxHash)
	assert.Equal(t, r1.BlockNumber, r2.BlockNumber)
}

func TestSimulatedLedger_CancelledContext(t *testing.T) {
	ledger := NewSimulatedLedger(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ledger.Submit(ctx, "abc123")
	assert.ErrorIs(t, err, context.Canceled)
}
