package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexusdebate/pkg/models"
)

func TestRiskCounsel_OpeningIsDeterministic(t *testing.T) {
	a := NewRiskCounsel()
	query := "Should we launch in the EU without full compliance?"

	first, err := a.OpeningArgument(context.Background(), query)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := a.OpeningArgument(context.Background(), query)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRiskCounsel_OpeningContainsBlockSignal(t *testing.T) {
	a := NewRiskCounsel()

	for _, query := range []string{
		"Should we launch in the EU without full compliance?",
		"Transport hemp through Idaho for a $50K bonus?",
		"Hire 10 contractors in California?",
		"Open an office in Germany?",
		"Should we do the thing?",
	} {
		opening, err := a.OpeningArgument(context.Background(), query)
		require.NoError(t, err)
		assert.Contains(t, opening, "BLOCK", "query %q", query)
	}
}

func TestGrowthFinance_OpeningContainsShipSignal(t *testing.T) {
	a := NewGrowthFinance()

	opening, err := a.OpeningArgument(context.Background(), "Should we launch in the EU?")
	require.NoError(t, err)
	assert.Contains(t, opening, "SHIP")
	assert.Contains(t, opening, "NOW")
}

func TestRebuttalsReferenceOpponent(t *testing.T) {
	ctx := context.Background()
	query := "Should we launch in the EU without full compliance?"
	opponentText := "A one-of-a-kind claim that should be quoted verbatim"

	risk := NewRiskCounsel()
	rebuttal, err := risk.Rebut(ctx, query, opponentText, models.RoleGrowth)
	require.NoError(t, err)
	assert.Contains(t, rebuttal, opponentText)

	growth := NewGrowthFinance()
	rebuttal, err = growth.Rebut(ctx, query, opponentText, models.RoleRisk)
	require.NoError(t, err)
	assert.Contains(t, rebuttal, opponentText)
}

func TestFinalPositionsReferenceOpponentLast(t *testing.T) {
	ctx := context.Background()
	last := "the final counterpoint nobody else made"

	risk := NewRiskCounsel()
	final, err := risk.FinalPosition(ctx, "query", last)
	require.NoError(t, err)
	assert.Contains(t, final, last)

	growth := NewGrowthFinance()
	final, err = growth.FinalPosition(ctx, "query", last)
	require.NoError(t, err)
	assert.Contains(t, final, last)
}

func TestClassifyTopic(t *testing.T) {
	cases := map[string]topic{
		"Launch in the EU without GDPR work": topicEU,
		"Transport hemp through Idaho":       topicHemp,
		"Hire contractors in California":     topicContractor,
		"Open an office in Germany":          topicExpansion,
		"Acquire a small competitor":         topicGeneric,
	}

	for query, want := range cases {
		assert.Equal(t, want, classifyTopic(query), "query %q", query)
	}
}

func TestCouncilAnalysts_Roles(t *testing.T) {
	assert.Equal(t, models.RoleLegal, NewLegalScholar().Role())
	assert.Equal(t, models.RoleTax, NewTaxComptroller().Role())
	assert.Equal(t, models.RoleGrowth, NewGrowthHacker().Role())
}

func TestCouncilResponsesReferenceOtherPositions(t *testing.T) {
	ctx := context.Background()
	positions := "combined positions marker text"

	for _, a := range []Analyst{NewLegalScholar(), NewTaxComptroller(), NewGrowthHacker()} {
		resp, err := a.Respond(ctx, "query", positions)
		require.NoError(t, err)
		assert.Contains(t, resp, positions, "analyst %s", a.Name())
	}
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "first line", snippet("  first line\nsecond line"))
	assert.Equal(t, "", snippet("   \n  \n"))

	long := make([]byte, 200)
	for i := range long {
		long[i] = 'x'
	}
	s := snippet(string(long))
	assert.Len(t, s, 123) // 120 chars + "..."
}
