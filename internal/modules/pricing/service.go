// README: Pricing engine derives the full cost breakdown from a trip snapshot.
package pricing

import (
	"math"

	"tourcalc/internal/modules/trip"
	"tourcalc/internal/types"
)

// Recorder counts recomputations; nil disables it.
type Recorder interface {
	Recomputed()
}

type Service struct {
	recorder Recorder
}

func NewService(recorder Recorder) *Service {
	return &Service{recorder: recorder}
}

// Quote recomputes the breakdown for p.
func (s *Service) Quote(p trip.Params) Breakdown {
	if s != nil && s.recorder != nil {
		s.recorder.Recomputed()
	}
	return Calculate(p)
}

// Calculate is the pure cost derivation. p must satisfy the shape invariants
// (see trip.Validate); they are not re-checked here.
func Calculate(p trip.Params) Breakdown {
	pax := float64(p.ParticipantCount)

	// 1. Hotel cost per person. The DUS supplement is data only.
	hotelPerPerson := 0.0
	for _, s := range p.HotelStays {
		hotelPerPerson += float64(s.Nights) * s.CostPerNight
	}

	// 2. Per-role fixed costs.
	guide := staffCosts(p, p.Guide)
	driver := staffCosts(p, p.Driver)

	// 3. Vehicle, only with a driver.
	var vanTotal, fuelTotal float64
	if p.Driver.Included {
		vanTotal = types.Sum(p.VanDailyRentalCostsBefore) + types.Sum(p.VanDailyRentalCosts) + types.Sum(p.VanDailyRentalCostsAfter)
		fuelTotal = types.Sum(p.FuelDailyCostsBefore) + types.Sum(p.FuelDailyCosts) + types.Sum(p.FuelDailyCostsAfter)
	}
	guideBike := 0.0
	if p.Guide.Included {
		guideBike = types.Sum(p.GuideBikeDailyCosts)
	}

	// 4. Fixed total.
	fixed := FixedCosts{
		StaffFees:          guide.Fees + driver.Fees,
		StaffTravel:        guide.Travel + driver.Travel,
		StaffAccommodation: guide.Accommodation + driver.Accommodation,
		StaffLunch:         guide.Lunch + driver.Lunch,
		GuideBike:          guideBike,
		VanRental:          vanTotal,
		Fuel:               fuelTotal,
		Tolls:              p.StaffTollsCost,
		Scouting:           p.ScoutingCost,
	}
	fixed.Total = fixed.StaffFees + fixed.StaffTravel + fixed.StaffAccommodation + fixed.StaffLunch +
		fixed.GuideBike + fixed.VanRental + fixed.Fuel + fixed.Tolls + fixed.Scouting

	// 5-6. Participant-scaled costs. Transfer is already a group total.
	bikePerPerson := 0.0
	if p.HasBikeRental {
		bikePerPerson = types.Sum(p.BikeDailyRentalCosts)
	}
	dinnerPerPerson := types.Sum(p.ClientDailyDinnerCosts)
	variable := VariableCosts{
		ClientAccommodation: hotelPerPerson * pax,
		ClientBike:          bikePerPerson * pax,
		ClientDinner:        dinnerPerPerson * pax,
		ClientTransfer:      p.ClientTotalTransferCost,
		ClientExperience:    p.ClientExperienceCost * pax,
		ClientInsurance:     p.ClientInsuranceCost * pax,
	}
	variable.Total = variable.ClientAccommodation + variable.ClientBike + variable.ClientDinner +
		variable.ClientTransfer + variable.ClientExperience + variable.ClientInsurance

	// 7-8. Totals. Zero participants means a zero per-person cost.
	totalCost := fixed.Total + variable.Total
	costPerPerson := 0.0
	if p.ParticipantCount > 0 {
		costPerPerson = totalCost / pax
	}

	// 9. Margin, then gross up so commissions on the sale price are covered.
	targetNet := costPerPerson * (1 + p.ProfitMarginPercent/100)
	commissionFraction := (p.BankingFeePercent + p.AgencyCommissionPercent) / 100
	safeDivisor := math.Max(0.01, 1-commissionFraction)
	price := targetNet / safeDivisor

	// 10. Revenue, commissions, profit.
	revenue := price * pax
	commercial := CommercialCosts{
		BankingFees:       revenue * p.BankingFeePercent / 100,
		AgencyCommissions: revenue * p.AgencyCommissionPercent / 100,
	}
	commercial.Total = commercial.BankingFees + commercial.AgencyCommissions
	profit := revenue - totalCost - commercial.BankingFees - commercial.AgencyCommissions

	// 11. Break-even headcount.
	transferPerPerson := p.ClientTotalTransferCost / float64(max(p.ParticipantCount, 1))
	variablePerPerson := hotelPerPerson + bikePerPerson + dinnerPerPerson + transferPerPerson +
		p.ClientExperienceCost + p.ClientInsuranceCost
	commissionPerPerson := price * commissionFraction
	contribution := price - variablePerPerson - commissionPerPerson

	breakEven, impossible := breakEvenCount(fixed.Total, contribution)

	return Breakdown{
		FixedCosts:              fixed,
		VariableCosts:           variable,
		CommercialCosts:         commercial,
		Guide:                   guide,
		Driver:                  driver,
		TotalCost:               totalCost,
		CostPerPerson:           costPerPerson,
		SuggestedPricePerPerson: price,
		TotalRevenue:            revenue,
		TotalProfit:             profit,
		BreakEvenParticipants:   breakEven,
		IsBreakEvenImpossible:   impossible,
	}
}

// staffCosts is step 2 for one role. Each role draws only its own prefix of the
// shared Before/After pools even though they are sized for the longer stay.
func staffCosts(p trip.Params, r trip.StaffRole) RoleCosts {
	if !r.Included {
		return RoleCosts{}
	}
	return RoleCosts{
		Fees: types.Sum(r.DailyRatesBefore) + types.Sum(r.DailyRatesDuring) + types.Sum(r.DailyRatesAfter),
		Accommodation: types.Sum(prefix(p.StaffDailyAccommodationCostsBefore, r.ExtraDaysBefore)) +
			types.Sum(p.StaffDailyAccommodationCosts) +
			types.Sum(prefix(p.StaffDailyAccommodationCostsAfter, r.ExtraDaysAfter)),
		Lunch: types.Sum(prefix(p.StaffDailyLunchCostsBefore, r.ExtraDaysBefore)) +
			types.Sum(p.StaffDailyLunchCosts) +
			types.Sum(prefix(p.StaffDailyLunchCostsAfter, r.ExtraDaysAfter)),
		Travel: r.TravelCost,
	}
}

// breakEvenCount is ceil(fixed/contribution). A non-positive contribution, or a
// headcount too large for an int, is Unbounded.
func breakEvenCount(fixed, contribution float64) (int, bool) {
	if !(contribution > 0) {
		return Unbounded, true
	}
	n := math.Ceil(fixed / contribution)
	if math.IsNaN(n) || n >= float64(math.MaxInt) {
		return Unbounded, true
	}
	if n < 0 {
		n = 0
	}
	return int(n), false
}

// prefix mirrors slice(0, n): it never panics on a short vector.
func prefix(v []float64, n int) []float64 {
	if n < 0 {
		n = 0
	}
	if n > len(v) {
		n = len(v)
	}
	return v[:n]
}
