package agents

import (
	"context"
	"fmt"

	"github.com/nexusdebate/pkg/models"
)

// RiskCounsel is the scripted risk-averse legal advisor. Its output is
// a deterministic function of the query and the opponent's text; the
// figures are fixed illustrative values, never randomized.
type RiskCounsel struct{}

// NewRiskCounsel returns the scripted legal chair.
func NewRiskCounsel() *RiskCounsel { return &RiskCounsel{} }

func (a *RiskCounsel) Name() string      { return "Paranoid Lawyer" }
func (a *RiskCounsel) Role() models.Role { return models.RoleRisk }

func (a *RiskCounsel) OpeningArgument(ctx context.Context, query string) (string, error) {
	body := riskOpenings[classifyTopic(query)]

	return "**LEGAL ALERT: BLOCK THIS IMMEDIATELY**\n\n" + body + `
**WORST CASE SCENARIO:**
- Fines: $5M-$25M
- Criminal charges: Possible
- Reputation: Destroyed
- Recovery time: 2-5 years

**MY POSITION: ABSOLUTELY NOT**
The legal exposure here is CATASTROPHIC. We need a minimum of 3 months of legal review before even considering this path.`, nil
}

func (a *RiskCounsel) Rebut(ctx context.Context, query, opponentText string, opponentRole models.Role) (string, error) {
	return fmt.Sprintf(`**REBUTTAL TO THE %s POSITION**

My colleague claims: "%s"

That framing is exactly how companies end up in front of a grand jury. Three problems with it:

1. Enforcement statistics describe the past; regulators make examples out of the next violator, not the last one.
2. Revenue projections are hypothetical; fines, injunctions, and personal liability for officers are not.
3. "Everyone does it" has never once succeeded as a legal defense.

The risk I identified in my opening stands. A short delay for proper review costs weeks; a violation costs years.`,
		opponentRole, snippet(opponentText)), nil
}

func (a *RiskCounsel) FinalPosition(ctx context.Context, query, opponentLast string) (string, error) {
	return fmt.Sprintf(`**FINAL POSITION: RISK MUST BE CONTAINED FIRST**

I have heard the latest counterargument ("%s") and I will concede one point: the opportunity is real and waiting forever has its own cost.

But my core recommendation is unchanged: BLOCK the current plan until compliance review completes. Proceed only on a phased basis with documented legal sign-off at every milestone. That path captures most of the upside while keeping officers out of depositions.`,
		snippet(opponentLast)), nil
}

var riskOpenings = map[topic]string{
	topicEU: `**GDPR CATASTROPHE INCOMING:**
- Meta paid **$1.3 BILLION** for GDPR violations (2023)
- Articles 6, 7, 13 require EXPLICIT consent mechanisms
- Article 33 mandates 72-hour breach notification
- Penalty: Up to **4% of GLOBAL revenue** or EUR 20M
- Personal liability for executives under Article 82

**Required BEFORE launch:**
- 6-8 week comprehensive legal review
- Privacy Impact Assessment (mandatory)
- Data Protection Officer appointment
- Standard Contractual Clauses for transfers

`,
	topicHemp: `**FEDERAL/STATE CONFLICT NIGHTMARE:**
- Idaho Code 37-2701: **ZERO TOLERANCE** for THC
- Kansas makes ANY detectable THC a **FELONY**
- 2018 Farm Bill ONLY protects <0.3% Delta-9 THC
- Testing variance could make legal hemp **illegal**

**Criminal Exposure:**
- Driver: 5-10 years federal prison
- Company: Criminal conspiracy charges
- Asset forfeiture of vehicles and funds

`,
	topicContractor: `**AB5 CLASSIFICATION DISASTER:**
- Uber paid **$100 MILLION** for misclassification
- FedEx: **$228 MILLION** settlement
- Dynamex decision makes contractors nearly **IMPOSSIBLE**
- ABC Test: You WILL fail part B

**Penalties per contractor:**
- $5,000-$25,000 EACH for willful misclassification
- Back taxes + 30% penalties
- Unpaid overtime going back 4 years

`,
	topicExpansion: `**PERMANENT ESTABLISHMENT TAX TRAP:**
- Creates nexus in **15+ jurisdictions**
- German labor law: dismissal protection after 6 months
- Works councils mandatory at 5+ employees
- Combined tax rate jumps to **30%**

**Hidden liabilities:**
- Pension obligations: EUR 500K+ per employee
- Mandatory health insurance: 15% of salary
- Co-determination rights = lose control

`,
	topicGeneric: `**GENERAL COMPLIANCE FAILURES:**
- Theranos: Executives got **prison time**
- Wells Fargo: **$3 BILLION** in penalties
- Your proposed action violates:
  - Federal regulations (multiple)
  - State compliance requirements
  - Fiduciary duties to stakeholders

`,
}
