// README: Hotel stay edits, per-day vector edits and soft-invariant warnings.
package trip

import (
	"fmt"
	"strings"

	"tourcalc/internal/types"
)

// Vector names a per-day cost vector by its JSON field name.
type Vector string

const (
	VecGuideRatesDuring         Vector = "guide.dailyRatesDuring"
	VecGuideRatesBefore         Vector = "guide.dailyRatesBefore"
	VecGuideRatesAfter          Vector = "guide.dailyRatesAfter"
	VecDriverRatesDuring        Vector = "driver.dailyRatesDuring"
	VecDriverRatesBefore        Vector = "driver.dailyRatesBefore"
	VecDriverRatesAfter         Vector = "driver.dailyRatesAfter"
	VecStaffLunch               Vector = "staffDailyLunchCosts"
	VecStaffLunchBefore         Vector = "staffDailyLunchCostsBefore"
	VecStaffLunchAfter          Vector = "staffDailyLunchCostsAfter"
	VecStaffAccommodation       Vector = "staffDailyAccommodationCosts"
	VecStaffAccommodationBefore Vector = "staffDailyAccommodationCostsBefore"
	VecStaffAccommodationAfter  Vector = "staffDailyAccommodationCostsAfter"
	VecVanRental                Vector = "vanDailyRentalCosts"
	VecVanRentalBefore          Vector = "vanDailyRentalCostsBefore"
	VecVanRentalAfter           Vector = "vanDailyRentalCostsAfter"
	VecFuel                     Vector = "fuelDailyCosts"
	VecFuelBefore               Vector = "fuelDailyCostsBefore"
	VecFuelAfter                Vector = "fuelDailyCostsAfter"
	VecBikeRental               Vector = "bikeDailyRentalCosts"
	VecClientDinner             Vector = "clientDailyDinnerCosts"
	VecGuideBike                Vector = "guideBikeDailyCosts"
)

// vectorRef resolves a vector name to its slot inside p.
func vectorRef(p *Params, name Vector) (*[]float64, error) {
	switch name {
	case VecGuideRatesDuring:
		return &p.Guide.DailyRatesDuring, nil
	case VecGuideRatesBefore:
		return &p.Guide.DailyRatesBefore, nil
	case VecGuideRatesAfter:
		return &p.Guide.DailyRatesAfter, nil
	case VecDriverRatesDuring:
		return &p.Driver.DailyRatesDuring, nil
	case VecDriverRatesBefore:
		return &p.Driver.DailyRatesBefore, nil
	case VecDriverRatesAfter:
		return &p.Driver.DailyRatesAfter, nil
	case VecStaffLunch:
		return &p.StaffDailyLunchCosts, nil
	case VecStaffLunchBefore:
		return &p.StaffDailyLunchCostsBefore, nil
	case VecStaffLunchAfter:
		return &p.StaffDailyLunchCostsAfter, nil
	case VecStaffAccommodation:
		return &p.StaffDailyAccommodationCosts, nil
	case VecStaffAccommodationBefore:
		return &p.StaffDailyAccommodationCostsBefore, nil
	case VecStaffAccommodationAfter:
		return &p.StaffDailyAccommodationCostsAfter, nil
	case VecVanRental:
		return &p.VanDailyRentalCosts, nil
	case VecVanRentalBefore:
		return &p.VanDailyRentalCostsBefore, nil
	case VecVanRentalAfter:
		return &p.VanDailyRentalCostsAfter, nil
	case VecFuel:
		return &p.FuelDailyCosts, nil
	case VecFuelBefore:
		return &p.FuelDailyCostsBefore, nil
	case VecFuelAfter:
		return &p.FuelDailyCostsAfter, nil
	case VecBikeRental:
		return &p.BikeDailyRentalCosts, nil
	case VecClientDinner:
		return &p.ClientDailyDinnerCosts, nil
	case VecGuideBike:
		return &p.GuideBikeDailyCosts, nil
	}
	return nil, fmt.Errorf("%w: unknown vector %q", ErrBadRequest, name)
}

// ReplaceVector swaps a whole vector. The new values must keep the current length.
func ReplaceVector(p Params, name Vector, values []float64) (Params, error) {
	out := p.Clone()
	ref, err := vectorRef(&out, name)
	if err != nil {
		return p, err
	}
	if len(values) != len(*ref) {
		return p, fmt.Errorf("%w: %s needs %d values, got %d", ErrBadRequest, name, len(*ref), len(values))
	}
	*ref = cloneVec(values)
	return out, nil
}

// SetDailyCost sets a single day of a vector.
func SetDailyCost(p Params, name Vector, index int, value float64) (Params, error) {
	out := p.Clone()
	ref, err := vectorRef(&out, name)
	if err != nil {
		return p, err
	}
	if index < 0 || index >= len(*ref) {
		return p, fmt.Errorf("%w: day %d out of range for %s", ErrBadRequest, index, name)
	}
	(*ref)[index] = value
	return out, nil
}

// FillVector copies the first day's value to every day of the vector.
func FillVector(p Params, name Vector) (Params, error) {
	out := p.Clone()
	ref, err := vectorRef(&out, name)
	if err != nil {
		return p, err
	}
	if len(*ref) == 0 {
		return out, nil
	}
	first := (*ref)[0]
	for i := range *ref {
		(*ref)[i] = first
	}
	return out, nil
}

// AddHotelStay appends a stay covering the nights not yet booked.
func AddHotelStay(p Params, id types.ID, name string, costPerNight float64) (Params, error) {
	missing := p.DurationDays - p.HotelNights()
	if missing <= 0 {
		return p, ErrNightsCovered
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "New Hotel"
	}
	out := p.Clone()
	out.HotelStays = append(out.HotelStays, HotelStay{
		ID:           id,
		Name:         name,
		Nights:       missing,
		CostPerNight: costPerNight,
	})
	return out, nil
}

// RemoveHotelStay deletes a stay by id. The last stay cannot be removed.
func RemoveHotelStay(p Params, id types.ID) (Params, error) {
	idx := stayIndex(p, id)
	if idx < 0 {
		return p, ErrNotFound
	}
	if len(p.HotelStays) <= 1 {
		return p, ErrLastStay
	}
	out := p.Clone()
	out.HotelStays = append(out.HotelStays[:idx], out.HotelStays[idx+1:]...)
	return out, nil
}

// UpdateHotelStay replaces the stay with the same id.
func UpdateHotelStay(p Params, stay HotelStay) (Params, error) {
	idx := stayIndex(p, stay.ID)
	if idx < 0 {
		return p, ErrNotFound
	}
	if stay.Nights < 0 {
		stay.Nights = 0
	}
	out := p.Clone()
	out.HotelStays[idx] = stay
	return out, nil
}

func stayIndex(p Params, id types.ID) int {
	for i, s := range p.HotelStays {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// Warning is a soft-invariant violation shown to the operator and never enforced.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const WarnHotelNights = "HOTEL_NIGHTS_MISMATCH"

func Warnings(p Params) []Warning {
	var out []Warning
	if n := p.HotelNights(); n != p.DurationDays {
		out = append(out, Warning{
			Code:    WarnHotelNights,
			Message: fmt.Sprintf("total hotel nights (%d) differ from trip duration (%d)", n, p.DurationDays),
		})
	}
	return out
}
