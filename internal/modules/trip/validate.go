// README: Shape validation for snapshots crossing the persistence boundary.
package trip

import (
	"fmt"
	"math"
)

// Validate checks every shape invariant the cost engine relies on. The engine
// itself does not re-check them, so anything loaded from outside must pass here.
func Validate(p Params) error {
	if p.ParticipantCount < 0 {
		return invalid("participantCount must be >= 0")
	}
	if p.DurationDays < 0 {
		return invalid("durationDays must be >= 0")
	}
	for _, r := range []struct {
		name string
		role StaffRole
	}{{"guide", p.Guide}, {"driver", p.Driver}} {
		if r.role.ExtraDaysBefore < 0 || r.role.ExtraDaysAfter < 0 {
			return invalid(r.name + " extra days must be >= 0")
		}
		if err := checkLen(r.name+".dailyRatesDuring", r.role.DailyRatesDuring, p.DurationDays); err != nil {
			return err
		}
		if err := checkLen(r.name+".dailyRatesBefore", r.role.DailyRatesBefore, r.role.ExtraDaysBefore); err != nil {
			return err
		}
		if err := checkLen(r.name+".dailyRatesAfter", r.role.DailyRatesAfter, r.role.ExtraDaysAfter); err != nil {
			return err
		}
		if !finite(r.role.TravelCost) {
			return invalid(r.name + ".travelCost is not a finite number")
		}
	}

	before, after := SharedBefore(p), SharedAfter(p)
	checks := []struct {
		name Vector
		v    []float64
		n    int
	}{
		{VecStaffLunch, p.StaffDailyLunchCosts, p.DurationDays},
		{VecStaffLunchBefore, p.StaffDailyLunchCostsBefore, before},
		{VecStaffLunchAfter, p.StaffDailyLunchCostsAfter, after},
		{VecStaffAccommodation, p.StaffDailyAccommodationCosts, p.DurationDays},
		{VecStaffAccommodationBefore, p.StaffDailyAccommodationCostsBefore, before},
		{VecStaffAccommodationAfter, p.StaffDailyAccommodationCostsAfter, after},
		{VecVanRental, p.VanDailyRentalCosts, p.DurationDays},
		{VecVanRentalBefore, p.VanDailyRentalCostsBefore, p.Driver.ExtraDaysBefore},
		{VecVanRentalAfter, p.VanDailyRentalCostsAfter, p.Driver.ExtraDaysAfter},
		{VecFuel, p.FuelDailyCosts, p.DurationDays},
		{VecFuelBefore, p.FuelDailyCostsBefore, p.Driver.ExtraDaysBefore},
		{VecFuelAfter, p.FuelDailyCostsAfter, p.Driver.ExtraDaysAfter},
		{VecBikeRental, p.BikeDailyRentalCosts, p.DurationDays},
		{VecClientDinner, p.ClientDailyDinnerCosts, p.DurationDays},
		{VecGuideBike, p.GuideBikeDailyCosts, p.DurationDays},
	}
	for _, c := range checks {
		if err := checkLen(string(c.name), c.v, c.n); err != nil {
			return err
		}
	}

	scalars := []struct {
		name string
		v    float64
	}{
		{"profitMarginPercent", p.ProfitMarginPercent},
		{"staffTollsCost", p.StaffTollsCost},
		{"scoutingCost", p.ScoutingCost},
		{"clientTotalTransferCost", p.ClientTotalTransferCost},
		{"clientExperienceCost", p.ClientExperienceCost},
		{"clientInsuranceCost", p.ClientInsuranceCost},
		{"bankingFeePercent", p.BankingFeePercent},
		{"agencyCommissionPercent", p.AgencyCommissionPercent},
	}
	for _, s := range scalars {
		if !finite(s.v) {
			return invalid(s.name + " is not a finite number")
		}
	}

	seen := make(map[string]bool, len(p.HotelStays))
	for i, s := range p.HotelStays {
		if s.ID == "" {
			return invalid(fmt.Sprintf("hotelStays[%d].id is empty", i))
		}
		if seen[s.ID] {
			return invalid(fmt.Sprintf("hotelStays[%d].id %q is duplicated", i, s.ID))
		}
		seen[s.ID] = true
		if s.Nights < 0 {
			return invalid(fmt.Sprintf("hotelStays[%d].nights must be >= 0", i))
		}
		if !finite(s.CostPerNight) || !finite(s.DUSSupplement) {
			return invalid(fmt.Sprintf("hotelStays[%d] has a non-finite amount", i))
		}
	}
	return nil
}

func checkLen(name string, v []float64, want int) error {
	if len(v) != want {
		return invalid(fmt.Sprintf("%s has length %d, want %d", name, len(v), want))
	}
	for i, x := range v {
		if !finite(x) {
			return invalid(fmt.Sprintf("%s[%d] is not a finite number", name, i))
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidSnapshot, msg)
}
