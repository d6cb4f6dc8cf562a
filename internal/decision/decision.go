// Package decision derives the mediator's verdict from the two sides'
// accumulated positions. Everything here is a pure function of its
// string inputs so synthesis outcomes are reproducible in tests.
package decision

import (
	"fmt"
	"strings"

	"github.com/nexusdebate/pkg/models"
)

// Risk classification labels, ordered by severity.
const (
	RiskLow        = "LOW"
	RiskMedium     = "MEDIUM"
	RiskMediumHigh = "MEDIUM-HIGH"
	RiskHigh       = "HIGH"
)

// Outcome is the fixed (label, confidence, approach) tuple selected by
// the two boolean debate signals.
type Outcome struct {
	RiskScore  string
	RiskColor  string
	Confidence int
	Approach   string
}

// RiskBlocks reports whether the risk side's aggregate text contains a
// blocking recommendation.
func RiskBlocks(riskPosition string) bool {
	return strings.Contains(riskPosition, "BLOCK") ||
		strings.Contains(strings.ToLower(riskPosition), "risk")
}

// GrowthPushes reports whether the growth side's aggregate text
// contains an urgency recommendation.
func GrowthPushes(growthPosition string) bool {
	return strings.Contains(growthPosition, "SHIP") ||
		strings.Contains(growthPosition, "NOW")
}

// Classify maps the two debate signals onto the fixed decision table.
// Confidence decreases as combined risk increases.
func Classify(riskPosition, growthPosition string) Outcome {
	blocks := RiskBlocks(riskPosition)
	pushes := GrowthPushes(growthPosition)

	switch {
	case blocks && pushes:
		return Outcome{RiskScore: RiskHigh, RiskColor: "#ef4444", Confidence: 45, Approach: "PROCEED WITH CAUTION"}
	case blocks:
		return Outcome{RiskScore: RiskMediumHigh, RiskColor: "#f59e0b", Confidence: 60, Approach: "PHASED APPROACH REQUIRED"}
	case pushes:
		return Outcome{RiskScore: RiskMedium, RiskColor: "#eab308", Confidence: 75, Approach: "PROCEED WITH MONITORING"}
	default:
		return Outcome{RiskScore: RiskLow, RiskColor: "#22c55e", Confidence: 85, Approach: "SAFE TO PROCEED"}
	}
}

// CostOfDelay estimates what waiting costs, pattern-matched from
// monetary figures in the query, with a fixed default.
func CostOfDelay(query string) string {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "50k") || strings.Contains(q, "bonus"):
		return "$50K immediate + $200K/month"
	case strings.Contains(q, "5m") || strings.Contains(q, "million"):
		return "$1M/month"
	default:
		return "$500K/month"
	}
}

// LegalExposure summarizes the downside scenario the risk side raised.
func LegalExposure(riskPosition string) string {
	lower := strings.ToLower(riskPosition)
	switch {
	case strings.Contains(riskPosition, "GDPR"):
		return "Up to 4% global revenue"
	case strings.Contains(lower, "criminal"):
		return "Criminal liability risk"
	case strings.Contains(lower, "violation"):
		return "$100K-$1M in fines"
	default:
		return "Manageable with documentation"
	}
}

// GrowthImpact summarizes the upside scenario the growth side raised.
func GrowthImpact(growthPosition string) string {
	switch {
	case strings.Contains(growthPosition, "BILLION"):
		return "Massive first-mover advantage"
	case strings.Contains(growthPosition, "500K"):
		return "Significant market opportunity"
	default:
		return "Moderate growth potential"
	}
}

// OpportunityWindow estimates how long the opportunity stays open.
func OpportunityWindow(query string) string {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "3 month") || strings.Contains(q, "3-month"):
		return "3 months (closing fast)"
	case strings.Contains(q, "10 days"):
		return "10 days (urgent)"
	default:
		return "6-12 months"
	}
}

// BreakEven estimates time to break even given the risk classification.
func BreakEven(riskScore string) string {
	switch riskScore {
	case RiskHigh:
		return "18 months (high risk premium)"
	case RiskMedium:
		return "9 months"
	default:
		return "4 months"
	}
}

// ActionPlan selects a phased plan matching domain cues in the query,
// falling back to a generic plan.
func ActionPlan(query string) string {
	q := strings.ToLower(query)

	switch {
	case strings.Contains(q, "gdpr") || strings.Contains(q, "eu"):
		return `1. **Immediate:** Launch US-only version (2 weeks)
2. **Week 3-4:** Implement cookie consent + data minimization
3. **Week 5-6:** Add data portability + deletion features
4. **Week 7-8:** EU soft launch with 95% GDPR compliance
5. **Ongoing:** Complete remaining 5% while operating`

	case strings.Contains(q, "hemp") || strings.Contains(q, "transport"):
		return `1. **Immediate:** Legal review of Idaho/Kansas laws (24 hours)
2. **Day 2:** Secure legal counsel in transit states
3. **Day 3:** Document federal compliance (2018 Farm Bill)
4. **Day 4-5:** Alternative route if legal risk too high
5. **Execute:** Choose route based on risk/reward analysis`

	case strings.Contains(q, "contractor") || strings.Contains(q, "california"):
		return `1. **Immediate:** Structure as corp-to-corp contracts
2. **Week 1:** Implement clear contractor agreements
3. **Week 2:** Ensure no day-to-day management
4. **Month 2:** Review for AB5 compliance
5. **Month 3:** Convert high-risk roles to employment`

	default:
		return `1. **Week 1:** Complete risk assessment
2. **Week 2:** Implement minimum viable compliance
3. **Month 2:** Launch with monitoring
4. **Month 3:** Iterate based on feedback
5. **Ongoing:** Scale compliance with growth`
	}
}

// Synthesize produces the complete mediator decision from both sides'
// full positions and the original query.
func Synthesize(riskPosition, growthPosition, query string) models.Synthesis {
	outcome := Classify(riskPosition, growthPosition)
	costOfDelay := CostOfDelay(query)

	verdict := fmt.Sprintf(`**MEDIATOR VERDICT: %s**

After analyzing both positions, here's my synthesis:

**Risk Assessment:**
- Risk Score: **%s**
- Legal Exposure: %s
- Growth Impact: %s

**Financial Analysis:**
- Cost of Delay: **%s**
- Opportunity Window: %s
- Break-even Point: %s

**Recommended Action Plan:**
%s

**Confidence Level:** %d%%
**Decision Speed:** Execute within 2 weeks

This balances legal compliance with business growth, reducing risk while capturing the bulk of the opportunity.`,
		outcome.Approach,
		outcome.RiskScore,
		LegalExposure(riskPosition),
		GrowthImpact(growthPosition),
		costOfDelay,
		OpportunityWindow(query),
		BreakEven(outcome.RiskScore),
		ActionPlan(query),
		outcome.Confidence,
	)

	return models.Synthesis{
		Verdict:     verdict,
		RiskScore:   outcome.RiskScore,
		RiskColor:   outcome.RiskColor,
		CostOfDelay: costOfDelay,
		Confidence:  outcome.Confidence,
		Approach:    outcome.Approach,
	}
}
