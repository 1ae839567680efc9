// README: Keeps per-day vectors and hotel nights in step with duration and extra days.
package trip

import "tourcalc/internal/types"

// Reconciler repairs the shape of a snapshot after a duration or extra-day edit.
// It is pure: every call returns a new snapshot and leaves its input untouched.
type Reconciler struct {
	Defaults    Defaults
	MinDuration int
	NewID       func() types.ID
}

type ReconcilerConfig struct {
	MinDuration int
}

func NewReconciler(cfg ReconcilerConfig) *Reconciler {
	minDuration := cfg.MinDuration
	if minDuration < 0 {
		minDuration = 0
	}
	return &Reconciler{
		Defaults:    DefaultDefaults(),
		MinDuration: minDuration,
		NewID:       types.NewID,
	}
}

// Resize grows v by repeating its last element (def when v is empty) or
// truncates its tail. The result never aliases v.
func Resize(v []float64, n int, def float64) []float64 {
	if n < 0 {
		n = 0
	}
	out := make([]float64, n)
	copy(out, v)
	if n > len(v) {
		last := def
		if len(v) > 0 {
			last = v[len(v)-1]
		}
		for i := len(v); i < n; i++ {
			out[i] = last
		}
	}
	return out
}

// SetDuration changes the tour length, resizes every "during" vector and
// rebalances hotel nights so that their sum equals the new duration.
func (r *Reconciler) SetDuration(p Params, days int) Params {
	if days < r.MinDuration {
		days = r.MinDuration
	}
	if days < 0 {
		days = 0
	}
	d := r.Defaults
	out := p.Clone()
	out.DurationDays = days
	out.BikeDailyRentalCosts = Resize(p.BikeDailyRentalCosts, days, d.BikeRental)
	out.VanDailyRentalCosts = Resize(p.VanDailyRentalCosts, days, d.VanRental)
	out.FuelDailyCosts = Resize(p.FuelDailyCosts, days, d.Fuel)
	out.StaffDailyLunchCosts = Resize(p.StaffDailyLunchCosts, days, d.StaffLunch)
	out.StaffDailyAccommodationCosts = Resize(p.StaffDailyAccommodationCosts, days, d.StaffLodging)
	out.Guide.DailyRatesDuring = Resize(p.Guide.DailyRatesDuring, days, d.GuideRate)
	out.Driver.DailyRatesDuring = Resize(p.Driver.DailyRatesDuring, days, d.DriverRate)
	out.ClientDailyDinnerCosts = Resize(p.ClientDailyDinnerCosts, days, d.ClientDinner)
	out.GuideBikeDailyCosts = Resize(p.GuideBikeDailyCosts, days, d.GuideBike)
	out.HotelStays = r.rebalanceNights(out.HotelStays, days)
	return out
}

// rebalanceNights adds missing nights to the last stay or removes surplus nights
// walking backward. A stay never drops below zero nights and is never deleted here;
// zero-night stays remain until the operator removes them.
func (r *Reconciler) rebalanceNights(stays []HotelStay, days int) []HotelStay {
	current := 0
	for _, s := range stays {
		current += s.Nights
	}
	delta := days - current
	switch {
	case delta > 0:
		if len(stays) == 0 {
			stays = append(stays, HotelStay{
				ID:           r.NewID(),
				Name:         "Hotel Standard",
				CostPerNight: r.Defaults.HotelPerNight,
			})
		}
		stays[len(stays)-1].Nights += delta
	case delta < 0:
		remove := -delta
		for i := len(stays) - 1; i >= 0 && remove > 0; i-- {
			take := stays[i].Nights
			if take > remove {
				take = remove
			}
			if take < 0 {
				take = 0
			}
			stays[i].Nights -= take
			remove -= take
		}
	}
	return stays
}

// SetExtraDays changes one role's extra-day window and resizes the vectors that
// depend on it. The shared staff lunch and accommodation pools are sized to the
// longer-staying role on that side.
func (r *Reconciler) SetExtraDays(p Params, role Role, side Side, days int) Params {
	if days < 0 {
		days = 0
	}
	d := r.Defaults
	out := p.Clone()
	staff := out.Role(role)
	rate := d.GuideRate
	if role == RoleDriver {
		rate = d.DriverRate
	}

	if side == SideBefore {
		staff.ExtraDaysBefore = days
		staff.DailyRatesBefore = Resize(staff.DailyRatesBefore, days, rate)
		if role == RoleDriver {
			out.VanDailyRentalCostsBefore = Resize(out.VanDailyRentalCostsBefore, days, d.VanRental)
			out.FuelDailyCostsBefore = Resize(out.FuelDailyCostsBefore, days, d.Fuel)
		}
		shared := SharedBefore(out)
		out.StaffDailyLunchCostsBefore = Resize(out.StaffDailyLunchCostsBefore, shared, d.StaffLunch)
		out.StaffDailyAccommodationCostsBefore = Resize(out.StaffDailyAccommodationCostsBefore, shared, d.StaffLodging)
		return out
	}

	staff.ExtraDaysAfter = days
	staff.DailyRatesAfter = Resize(staff.DailyRatesAfter, days, rate)
	if role == RoleDriver {
		out.VanDailyRentalCostsAfter = Resize(out.VanDailyRentalCostsAfter, days, d.VanRental)
		out.FuelDailyCostsAfter = Resize(out.FuelDailyCostsAfter, days, d.Fuel)
	}
	shared := SharedAfter(out)
	out.StaffDailyLunchCostsAfter = Resize(out.StaffDailyLunchCostsAfter, shared, d.StaffLunch)
	out.StaffDailyAccommodationCostsAfter = Resize(out.StaffDailyAccommodationCostsAfter, shared, d.StaffLodging)
	return out
}

// SharedBefore is the length of the shared staff pool before the tour.
func SharedBefore(p Params) int {
	return max(p.Guide.ExtraDaysBefore, p.Driver.ExtraDaysBefore)
}

// SharedAfter is the length of the shared staff pool after the tour.
func SharedAfter(p Params) int {
	return max(p.Guide.ExtraDaysAfter, p.Driver.ExtraDaysAfter)
}
