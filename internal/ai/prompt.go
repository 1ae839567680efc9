package ai

import (
	"fmt"
	"strings"

	"tourcalc/internal/modules/pricing"
	"tourcalc/internal/modules/trip"
	"tourcalc/internal/types"
)

// ProposalPrompt asks for a client-facing proposal email. Raw costs are left
// out on purpose; only the per-person price is quoted.
func ProposalPrompt(p trip.Params, b pricing.Breakdown) string {
	var services []string
	if p.Guide.Included {
		services = append(services, "expert cycling guide")
	}
	if p.Driver.Included {
		services = append(services, "driver with support van")
	}
	services = append(services, "half-board accommodation")
	if p.HasBikeRental {
		services = append(services, "bike rental")
	}

	return fmt.Sprintf(`Act as an experienced tour operator specialised in cycling holidays.
Write a formal but engaging draft email to a client proposing this trip.
Keep a professional, inviting tone and include a short sample itinerary based on the duration.

Trip details:
- Trip name: %s
- Duration: %d days
- Participants: %d people
- Included services: %s

Pricing (use it to convey value, do not list raw costs):
- Proposed price per person: EUR %s

Format the answer in Markdown.
Reply in Italian.`,
		p.TripName, p.DurationDays, p.ParticipantCount,
		strings.Join(services, ", "),
		types.FormatAmount(b.SuggestedPricePerPerson))
}

// AnalysisPrompt asks for three short cost optimisation tips.
func AnalysisPrompt(b pricing.Breakdown) string {
	staff := b.FixedCosts.StaffFees + b.FixedCosts.StaffTravel + b.FixedCosts.StaffAccommodation
	return fmt.Sprintf(`Analyse the following financial data for a group trip run by a tour operator.
Give 3 short strategic tips to reduce costs or improve the margin, pointing out where most money is spent.

Data:
- Total fixed costs: EUR %s (staff, van, staff lodging)
- Total variable costs: EUR %s (client lodging, bikes)
- Current profit: EUR %s
- Staff cost share (fees, travel, lodging): EUR %s

Reply in Italian as a Markdown bullet list.`,
		types.FormatAmount(b.FixedCosts.Total),
		types.FormatAmount(b.VariableCosts.Total),
		types.FormatAmount(b.TotalProfit),
		types.FormatAmount(staff))
}
