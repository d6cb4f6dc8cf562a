package agents

import (
	"context"
	"fmt"

	"github.com/nexusdebate/pkg/models"
)

// GrowthFinance is the scripted growth-obsessed finance advisor.
type GrowthFinance struct{}

// NewGrowthFinance returns the scripted finance chair.
func NewGrowthFinance() *GrowthFinance { return &GrowthFinance{} }

func (a *GrowthFinance) Name() string      { return "Greedy Finance" }
func (a *GrowthFinance) Role() models.Role { return models.RoleGrowth }

func (a *GrowthFinance) OpeningArgument(ctx context.Context, query string) (string, error) {
	body := growthOpenings[classifyTopic(query)]

	return "**SHIP IT NOW - EVERY DAY COSTS US MONEY**\n\n" + body + `
**THE MATH IS SIMPLE:**
- Upside dwarfs the worst-case downside
- First movers set the terms; followers pay rent
- Compliance can be layered in while revenue flows

We move NOW or we watch someone else take this market.`, nil
}

func (a *GrowthFinance) Rebut(ctx context.Context, query, opponentText string, opponentRole models.Role) (string, error) {
	return fmt.Sprintf(`**REBUTTAL TO THE %s POSITION**

Counsel warns: "%s"

With respect, that is the same speech that kept every unicorn's competitors on the sidelines:

1. The doomsday fines quoted are the statutory MAXIMUM, reserved for willful repeat offenders, not first-time entrants acting in good faith.
2. A 3-month legal review is not free: it costs us the entire opportunity window plus compounding market share.
3. Every risk listed is insurable, contractable, or phased around. None of them is existential. Missing the market is.

SHIP NOW, document as we go, and let legal polish the edges in parallel.`,
		opponentRole, snippet(opponentText)), nil
}

func (a *GrowthFinance) FinalPosition(ctx context.Context, query, opponentLast string) (string, error) {
	return fmt.Sprintf(`**FINAL POSITION: SPEED IS THE STRATEGY**

I acknowledge counsel's latest point ("%s") and I will grant this much: a minimal compliance baseline before launch is cheap insurance.

But the recommendation stands: commit to launch NOW with a two-week compliance sprint running in parallel. Delay is the only option on the table with a guaranteed loss attached.`,
		snippet(opponentLast)), nil
}

var growthOpenings = map[topic]string{
	topicEU: `**EU MARKET OPPORTUNITY:**
- Market size: **450 MILLION consumers**
- Projected revenue: **$5M ARR** in Year 1
- First-mover advantage: Worth **$50M valuation bump**
- Competitors launching in: **3 months**
- Cost of delay: **$500K/month** in lost market share

**GDPR IS OVERBLOWN:**
- Startups get warnings first, not fines
- Average SME fine: Only **EUR 10,000**
- Stripe processed **$100B** before full compliance

`,
	topicHemp: `**THIS IS THE GOLD RUSH OF OUR GENERATION:**
- Hemp market: **$20 BILLION** by 2025
- First movers capturing **40% margins**
- $50K bonus = **IMMEDIATE CASH**
- Customer lifetime value: **$2M+**

**Opportunity cost:**
- Miss delivery = Lose customer (**-$2M LTV**)
- Miss bonus = **-$50K** immediate
- Alternative route cost: **+$75K**

`,
	topicContractor: `**CONTRACTOR MODEL = MASSIVE SAVINGS:**
- Save per contractor: **$70K/year**
- 10 contractors = **$700K saved**
- No equity dilution (worth **$3M**)
- Competitors using contractors: **ALL OF THEM**

**Growth impact:**
- Hire 10 contractors: **Tomorrow**
- Hire 10 employees: **3 months**
- Speed premium: **$2M in faster revenue**

`,
	topicExpansion: `**GERMAN MARKET = UNTAPPED GOLDMINE:**
- Market size: **EUR 4 TRILLION economy**
- Tech adoption: **10 years behind**
- Projected: **EUR 20M revenue Year 1**

**Financial projections:**
- Investment: EUR 500K
- ROI: **3,900%**
- Valuation impact: **+EUR 100M**

`,
	topicGeneric: `**MASSIVE OPPORTUNITY DETECTED:**
- Market window: **Open, but closing**
- Projected revenue: **$500K/month** once live
- Competitor response time: **One quarter, maximum**
- Every week of delay hands them the lead

`,
}
