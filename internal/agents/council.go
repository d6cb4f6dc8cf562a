package agents

import (
	"context"
	"fmt"

	"github.com/nexusdebate/pkg/models"
)

// Scripted council chairs. Each analyzes the query from its own angle
// and then responds to the other chairs' combined positions.

// LegalScholar is the council's compliance chair.
type LegalScholar struct{}

func NewLegalScholar() *LegalScholar { return &LegalScholar{} }

func (a *LegalScholar) Name() string      { return "Dr. Miranda Blackstone, Esq." }
func (a *LegalScholar) Role() models.Role { return models.RoleLegal }

func (a *LegalScholar) Analyze(ctx context.Context, query string) (string, error) {
	switch classifyTopic(query) {
	case topicEU:
		return `**LEGAL ANALYSIS**

Primary risk: GDPR non-compliance. Articles 6, 13, and 33 all apply from day one of EU operations. Recommendation: BLOCK launch until a Privacy Impact Assessment completes; the penalty ceiling of 4% of global revenue makes this a board-level risk.`, nil
	case topicHemp:
		return `**LEGAL ANALYSIS**

Primary risk: federal/state conflict on THC thresholds. Idaho and Kansas criminalize what the 2018 Farm Bill permits. Recommendation: BLOCK the proposed route; criminal exposure for the driver and the company is a risk no indemnity clause absorbs.`, nil
	case topicContractor:
		return `**LEGAL ANALYSIS**

Primary risk: AB5 worker misclassification. The ABC test's part B is nearly impossible to satisfy for core-business roles. Recommendation: restructure before hiring; misclassification penalties accrue per contractor, per pay period.`, nil
	default:
		return `**LEGAL ANALYSIS**

No single blocking statute identified, but the proposal touches multiple compliance regimes. Recommendation: a scoped legal review before launch; the residual risk is manageable with documentation.`, nil
	}
}

func (a *LegalScholar) Respond(ctx context.Context, query, otherPositions string) (string, error) {
	return fmt.Sprintf(`**LEGAL RESPONSE**

Having reviewed the other chairs' positions ("%s"), my compliance assessment is unchanged. Revenue projections do not amortize legal risk; they concentrate it. Any path forward must carry documented legal checkpoints.`,
		snippet(otherPositions)), nil
}

// TaxComptroller is the council's tax chair.
type TaxComptroller struct{}

func NewTaxComptroller() *TaxComptroller { return &TaxComptroller{} }

func (a *TaxComptroller) Name() string      { return "Harold P. Pennywhistle, CPA" }
func (a *TaxComptroller) Role() models.Role { return models.RoleTax }

func (a *TaxComptroller) Analyze(ctx context.Context, query string) (string, error) {
	switch classifyTopic(query) {
	case topicExpansion:
		return `**TAX ANALYSIS**

A foreign office creates permanent establishment exposure in every jurisdiction it touches. Combined corporate rate approaches 30%, with social charges on top. This structure creates unacceptable tax exposure as proposed; an entity restructuring is required first.`, nil
	case topicEU:
		return `**TAX ANALYSIS**

EU sales trigger VAT registration obligations from the first transaction, and digital services fall under OSS rules. Exposure is real but mechanical: registration plus quarterly filings contains it.`, nil
	default:
		return `**TAX ANALYSIS**

No structural tax exposure identified at this scale. Standard nexus monitoring applies. Keep transaction records audit-ready and revisit once revenue crosses state thresholds.`, nil
	}
}

func (a *TaxComptroller) Respond(ctx context.Context, query, otherPositions string) (string, error) {
	return fmt.Sprintf(`**TAX RESPONSE**

The other chairs argue ("%s"), but the ledger does not care about momentum. My figures stand: whatever route the council picks must keep the effective tax structure intact. Phased entry preserves optionality; a big-bang launch locks in the worst treatment.`,
		snippet(otherPositions)), nil
}

// GrowthHacker is the council's growth chair.
type GrowthHacker struct{}

func NewGrowthHacker() *GrowthHacker { return &GrowthHacker{} }

func (a *GrowthHacker) Name() string      { return "Blake 'Rocket' Morrison" }
func (a *GrowthHacker) Role() models.Role { return models.RoleGrowth }

func (a *GrowthHacker) Analyze(ctx context.Context, query string) (string, error) {
	body := growthOpenings[classifyTopic(query)]
	return "**GROWTH ANALYSIS**\n\n" + body + "Verdict: ship now, iterate in market. The window does not wait for paperwork.", nil
}

func (a *GrowthHacker) Respond(ctx context.Context, query, otherPositions string) (string, error) {
	return fmt.Sprintf(`**GROWTH RESPONSE**

I hear the caution ("%s"). Fine: take the two-week compliance sprint. But the core call stands: ship inside the quarter or concede the category. Every model I run says the cost of delay compounds faster than the cost of remediation.`,
		snippet(otherPositions)), nil
}
