// Package triptest builds random shape-consistent trip snapshots for tests.
package triptest

import (
	"math/rand"
	"strconv"

	"tourcalc/internal/modules/trip"
)

// Random returns a valid snapshot with random durations, extra days, rates and stays.
func Random(r *rand.Rand) trip.Params {
	rec := trip.NewReconciler(trip.ReconcilerConfig{})
	seq := 0
	rec.NewID = func() string {
		seq++
		return "stay-" + strconv.Itoa(seq)
	}

	p := trip.Params{
		TripName:                "random",
		ParticipantCount:        r.Intn(30),
		ProfitMarginPercent:     float64(r.Intn(80)),
		Guide:                   trip.StaffRole{Included: r.Intn(2) == 0, TravelCost: amount(r, 500)},
		Driver:                  trip.StaffRole{Included: r.Intn(2) == 0, TravelCost: amount(r, 500)},
		StaffTollsCost:          amount(r, 300),
		ScoutingCost:            amount(r, 1000),
		HasBikeRental:           r.Intn(2) == 0,
		ClientTotalTransferCost: amount(r, 800),
		ClientExperienceCost:    amount(r, 200),
		ClientInsuranceCost:     amount(r, 100),
		BankingFeePercent:       float64(r.Intn(5)),
		AgencyCommissionPercent: float64(r.Intn(20)),
	}
	stays := r.Intn(3)
	for i := 0; i < stays; i++ {
		p.HotelStays = append(p.HotelStays, trip.HotelStay{
			ID:           "seed-" + strconv.Itoa(i),
			Name:         "Hotel " + strconv.Itoa(i),
			Nights:       r.Intn(5),
			CostPerNight: amount(r, 200),
		})
	}

	p = rec.SetDuration(p, r.Intn(15))
	p = rec.SetExtraDays(p, trip.RoleGuide, trip.SideBefore, r.Intn(4))
	p = rec.SetExtraDays(p, trip.RoleGuide, trip.SideAfter, r.Intn(4))
	p = rec.SetExtraDays(p, trip.RoleDriver, trip.SideBefore, r.Intn(4))
	p = rec.SetExtraDays(p, trip.RoleDriver, trip.SideAfter, r.Intn(4))

	for _, v := range [][]float64{
		p.Guide.DailyRatesDuring, p.Guide.DailyRatesBefore, p.Guide.DailyRatesAfter,
		p.Driver.DailyRatesDuring, p.Driver.DailyRatesBefore, p.Driver.DailyRatesAfter,
		p.StaffDailyLunchCosts, p.StaffDailyLunchCostsBefore, p.StaffDailyLunchCostsAfter,
		p.StaffDailyAccommodationCosts, p.StaffDailyAccommodationCostsBefore, p.StaffDailyAccommodationCostsAfter,
		p.VanDailyRentalCosts, p.VanDailyRentalCostsBefore, p.VanDailyRentalCostsAfter,
		p.FuelDailyCosts, p.FuelDailyCostsBefore, p.FuelDailyCostsAfter,
		p.BikeDailyRentalCosts, p.ClientDailyDinnerCosts, p.GuideBikeDailyCosts,
	} {
		for i := range v {
			v[i] = amount(r, 250)
		}
	}
	return p
}

// amount returns a value with at most two decimals.
func amount(r *rand.Rand, max int) float64 {
	return float64(r.Intn(max*100)) / 100
}
