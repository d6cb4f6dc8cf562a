package decision

import (
	"strings"

	"github.com/nexusdebate/pkg/models"
)

// Council signals, one per chair.
func legalBlocks(legal string) bool {
	return strings.Contains(legal, "BLOCK") || strings.Contains(strings.ToLower(legal), "risk")
}

func taxBlocks(tax string) bool {
	return strings.Contains(tax, "BLOCK") || strings.Contains(strings.ToLower(tax), "exposure")
}

func growthShips(growth string) bool {
	return strings.Contains(strings.ToLower(growth), "ship")
}

const cautionDecision = `**NEXUS COUNCIL DECISION**

After extensive deliberation, the Council recommends:

**Decision: PROCEED WITH CAUTION**

**Key Findings:**
1. Legal: Critical compliance issues identified that require immediate attention
2. Tax: Significant financial exposure that needs restructuring
3. Growth: Strong market opportunity but must be balanced with compliance

**Required Actions Before Proceeding:**
1. Complete comprehensive legal review and implement safeguards
2. Restructure operations to minimize tax nexus exposure
3. Phase rollout to balance growth with compliance milestones

**Risk Assessment:** MEDIUM-HIGH
**Compliance Priority:** CRITICAL
**Implementation:** Phased approach with legal checkpoints`

const monitoringDecision = `**NEXUS COUNCIL DECISION**

After extensive deliberation, the Council recommends:

**Decision: PROCEED WITH MONITORING**

**Key Findings:**
1. Legal: Manageable compliance requirements identified
2. Tax: Acceptable tax implications with optimization opportunities
3. Growth: Strong market opportunity with first-mover advantage

**Recommended Approach:**
1. Implement basic compliance documentation
2. Set up tax-efficient structure as outlined
3. Launch quickly while maintaining audit trail

**Risk Assessment:** LOW-MEDIUM
**Growth Priority:** HIGH
**Implementation:** Immediate with compliance monitoring`

// SynthesizeCouncil derives the council's terminal decision from the
// three chairs' analyses. Consensus fails only when every chair pulls
// in its own direction at once.
func SynthesizeCouncil(legal, tax, growth string) models.CouncilDecision {
	lb := legalBlocks(legal)
	tb := taxBlocks(tax)
	gp := growthShips(growth)

	consensus := !(lb && tb && gp)

	dissents := []string{}
	if lb {
		dissents = append(dissents, "Legal Scholar: Significant compliance risks must be addressed")
	}
	if tb {
		dissents = append(dissents, "Tax Comptroller: Unacceptable tax exposure detected")
	}
	if !gp {
		dissents = append(dissents, "Growth Hacker: Missing growth opportunity")
	}

	decision := monitoringDecision
	riskAssessment := "LOW-MEDIUM"
	if lb || tb {
		decision = cautionDecision
		riskAssessment = "MEDIUM-HIGH"
	}

	return models.CouncilDecision{
		Decision:       decision,
		Consensus:      consensus,
		Dissents:       dissents,
		RiskAssessment: riskAssessment,
	}
}
