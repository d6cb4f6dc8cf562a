package decision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Table(t *testing.T) {
	cases := []struct {
		name       string
		riskText   string
		growthText string
		score      string
		confidence int
		approach   string
	}{
		{
			name:       "block and ship",
			riskText:   "LEGAL ALERT: BLOCK THIS IMMEDIATELY",
			growthText: "SHIP IT NOW - EVERY DAY COSTS US MONEY",
			score:      RiskHigh,
			confidence: 45,
			approach:   "PROCEED WITH CAUTION",
		},
		{
			name:       "block only",
			riskText:   "Serious risk of violation here",
			growthText: "Moderate opportunity, take your time",
			score:      RiskMediumHigh,
			confidence: 60,
			approach:   "PHASED APPROACH REQUIRED",
		},
		{
			name:       "ship only",
			riskText:   "No concerns, documentation is in order",
			growthText: "SHIP this quarter to beat competitors",
			score:      RiskMedium,
			confidence: 75,
			approach:   "PROCEED WITH MONITORING",
		},
		{
			name:       "neither",
			riskText:   "Compliance posture acceptable",
			growthText: "Steady growth expected",
			score:      RiskLow,
			confidence: 85,
			approach:   "SAFE TO PROCEED",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			outcome := Classify(tc.riskText, tc.growthText)
			assert.Equal(t, tc.score, outcome.RiskScore)
			assert.Equal(t, tc.confidence, outcome.Confidence)
			assert.Equal(t, tc.approach, outcome.Approach)
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	risk := "BLOCK everything, massive risk"
	growth := "SHIP NOW"

	first := Classify(risk, growth)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(risk, growth))
	}
}

func TestSynthesize_EUExample(t *testing.T) {
	// The canonical scenario: blocking risk text plus urgent growth text
	// must always resolve to HIGH/45/PROCEED WITH CAUTION.
	query := "Should we launch in the EU without full compliance?"
	riskText := "BLOCK: GDPR fines up to 4% of revenue"
	growthText := "SHIP NOW before competitors arrive"

	synthesis := Synthesize(riskText, growthText, query)

	assert.Equal(t, RiskHigh, synthesis.RiskScore)
	assert.Equal(t, 45, synthesis.Confidence)
	assert.Equal(t, "PROCEED WITH CAUTION", synthesis.Approach)
	assert.Contains(t, synthesis.Verdict, "PROCEED WITH CAUTION")
	assert.Contains(t, synthesis.Verdict, "GDPR")
	require.NotEmpty(t, synthesis.CostOfDelay)
}

func TestCostOfDelay(t *testing.T) {
	assert.Equal(t, "$50K immediate + $200K/month", CostOfDelay("driver gets a $50K bonus"))
	assert.Equal(t, "$1M/month", CostOfDelay("a $5M contract is on the table"))
	assert.Equal(t, "$1M/month", CostOfDelay("worth several million"))
	assert.Equal(t, "$500K/month", CostOfDelay("should we expand?"))
}

func TestActionPlan_DomainCues(t *testing.T) {
	assert.Contains(t, ActionPlan("launch in the EU"), "GDPR")
	assert.Contains(t, ActionPlan("transport hemp through Idaho"), "Farm Bill")
	assert.Contains(t, ActionPlan("hire contractors in California"), "AB5")
	assert.Contains(t, ActionPlan("open a new product line"), "risk assessment")
}

func TestBreakEven(t *testing.T) {
	assert.Equal(t, "18 months (high risk premium)", BreakEven(RiskHigh))
	assert.Equal(t, "9 months", BreakEven(RiskMedium))
	assert.Equal(t, "4 months", BreakEven(RiskLow))
}

func TestSynthesizeCouncil_NoConsensusWhenAllPull(t *testing.T) {
	d := SynthesizeCouncil(
		"BLOCK: severe compliance risk",
		"Unacceptable tax exposure in three states",
		"We must ship immediately",
	)

	assert.False(t, d.Consensus)
	assert.Len(t, d.Dissents, 2)
	assert.Equal(t, "MEDIUM-HIGH", d.RiskAssessment)
	assert.Contains(t, d.Decision, "PROCEED WITH CAUTION")
}

func TestSynthesizeCouncil_FavorableOutcome(t *testing.T) {
	d := SynthesizeCouncil(
		"Compliance requirements are manageable",
		"Tax structure is acceptable",
		"Ship it, strong upside",
	)

	assert.True(t, d.Consensus)
	assert.Empty(t, d.Dissents)
	assert.Equal(t, "LOW-MEDIUM", d.RiskAssessment)
	assert.Contains(t, d.Decision, "PROCEED WITH MONITORING")
}
