// README: Trip parameter snapshot, staff roles, hotel stays and saved trips.
package trip

import (
	"errors"
	"time"

	"tourcalc/internal/types"
)

var (
	ErrBadRequest      = errors.New("bad request")
	ErrNotFound        = errors.New("not found")
	ErrInvalidSnapshot = errors.New("invalid trip snapshot")
	ErrNightsCovered   = errors.New("hotel stays already cover every night of the tour")
	ErrLastStay        = errors.New("cannot remove the last hotel stay")
)

// StaffRole is the pay and travel record shared by the guide and the driver.
type StaffRole struct {
	Included         bool      `json:"included"`
	DailyRatesDuring []float64 `json:"dailyRatesDuring"`
	DailyRatesBefore []float64 `json:"dailyRatesBefore"`
	DailyRatesAfter  []float64 `json:"dailyRatesAfter"`
	TravelCost       float64   `json:"travelCost"`
	ExtraDaysBefore  int       `json:"extraDaysBefore"`
	ExtraDaysAfter   int       `json:"extraDaysAfter"`
}

// HotelStay is one client accommodation block. DUSSupplement (single-use double room)
// is recorded but not priced.
type HotelStay struct {
	ID                 types.ID `json:"id"`
	Name               string   `json:"name"`
	Nights             int      `json:"nights"`
	CostPerNight       float64  `json:"costPerNight"`
	PaymentTerms       string   `json:"paymentTerms"`
	CancellationPolicy string   `json:"cancellationPolicy"`
	DUSSupplement      float64  `json:"dusSupplement"`
}

// Params is the whole editable trip snapshot. It is replaced on every edit and
// never shared between two owners; use Clone before handing it out.
type Params struct {
	TripName            string  `json:"tripName"`
	ParticipantCount    int     `json:"participantCount"`
	DurationDays        int     `json:"durationDays"`
	ProfitMarginPercent float64 `json:"profitMarginPercent"`

	Guide  StaffRole `json:"guide"`
	Driver StaffRole `json:"driver"`

	// Shared logistics pool: Before/After are sized to the longer-staying role.
	StaffDailyLunchCosts               []float64 `json:"staffDailyLunchCosts"`
	StaffDailyLunchCostsBefore         []float64 `json:"staffDailyLunchCostsBefore"`
	StaffDailyLunchCostsAfter          []float64 `json:"staffDailyLunchCostsAfter"`
	StaffDailyAccommodationCosts       []float64 `json:"staffDailyAccommodationCosts"`
	StaffDailyAccommodationCostsBefore []float64 `json:"staffDailyAccommodationCostsBefore"`
	StaffDailyAccommodationCostsAfter  []float64 `json:"staffDailyAccommodationCostsAfter"`

	// Vehicle vectors follow the driver's extra days.
	VanDailyRentalCosts       []float64 `json:"vanDailyRentalCosts"`
	VanDailyRentalCostsBefore []float64 `json:"vanDailyRentalCostsBefore"`
	VanDailyRentalCostsAfter  []float64 `json:"vanDailyRentalCostsAfter"`
	FuelDailyCosts            []float64 `json:"fuelDailyCosts"`
	FuelDailyCostsBefore      []float64 `json:"fuelDailyCostsBefore"`
	FuelDailyCostsAfter       []float64 `json:"fuelDailyCostsAfter"`

	StaffTollsCost float64 `json:"staffTollsCost"`
	ScoutingCost   float64 `json:"scoutingCost"`

	HotelStays []HotelStay `json:"hotelStays"`

	HasBikeRental           bool      `json:"hasBikeRental"`
	BikeDailyRentalCosts    []float64 `json:"bikeDailyRentalCosts"`
	ClientDailyDinnerCosts  []float64 `json:"clientDailyDinnerCosts"`
	ClientTotalTransferCost float64   `json:"clientTotalTransferCost"`
	ClientExperienceCost    float64   `json:"clientExperienceCost"`
	ClientInsuranceCost     float64   `json:"clientInsuranceCost"`
	GuideBikeDailyCosts     []float64 `json:"guideBikeDailyCosts"`

	BankingFeePercent       float64 `json:"bankingFeePercent"`
	AgencyCommissionPercent float64 `json:"agencyCommissionPercent"`
}

// SavedTrip is a named snapshot kept by the persistence layer.
type SavedTrip struct {
	ID     types.ID  `json:"id"`
	Name   string    `json:"name"`
	Date   time.Time `json:"date"`
	Params Params    `json:"params"`
}

// Role selects the guide or the driver.
type Role string

const (
	RoleGuide  Role = "guide"
	RoleDriver Role = "driver"
)

// Side selects the extra-day window before or after the tour.
type Side string

const (
	SideBefore Side = "before"
	SideAfter  Side = "after"
)

func ParseRole(v string) (Role, error) {
	switch Role(v) {
	case RoleGuide, RoleDriver:
		return Role(v), nil
	}
	return "", ErrBadRequest
}

func ParseSide(v string) (Side, error) {
	switch Side(v) {
	case SideBefore, SideAfter:
		return Side(v), nil
	}
	return "", ErrBadRequest
}

// HotelNights returns the total nights booked across all stays.
func (p Params) HotelNights() int {
	n := 0
	for _, s := range p.HotelStays {
		n += s.Nights
	}
	return n
}

// Role returns a pointer to the named staff role inside p.
func (p *Params) Role(r Role) *StaffRole {
	if r == RoleDriver {
		return &p.Driver
	}
	return &p.Guide
}

// Clone returns a deep copy of p.
func (p Params) Clone() Params {
	out := p
	out.Guide = p.Guide.clone()
	out.Driver = p.Driver.clone()
	out.StaffDailyLunchCosts = cloneVec(p.StaffDailyLunchCosts)
	out.StaffDailyLunchCostsBefore = cloneVec(p.StaffDailyLunchCostsBefore)
	out.StaffDailyLunchCostsAfter = cloneVec(p.StaffDailyLunchCostsAfter)
	out.StaffDailyAccommodationCosts = cloneVec(p.StaffDailyAccommodationCosts)
	out.StaffDailyAccommodationCostsBefore = cloneVec(p.StaffDailyAccommodationCostsBefore)
	out.StaffDailyAccommodationCostsAfter = cloneVec(p.StaffDailyAccommodationCostsAfter)
	out.VanDailyRentalCosts = cloneVec(p.VanDailyRentalCosts)
	out.VanDailyRentalCostsBefore = cloneVec(p.VanDailyRentalCostsBefore)
	out.VanDailyRentalCostsAfter = cloneVec(p.VanDailyRentalCostsAfter)
	out.FuelDailyCosts = cloneVec(p.FuelDailyCosts)
	out.FuelDailyCostsBefore = cloneVec(p.FuelDailyCostsBefore)
	out.FuelDailyCostsAfter = cloneVec(p.FuelDailyCostsAfter)
	out.BikeDailyRentalCosts = cloneVec(p.BikeDailyRentalCosts)
	out.ClientDailyDinnerCosts = cloneVec(p.ClientDailyDinnerCosts)
	out.GuideBikeDailyCosts = cloneVec(p.GuideBikeDailyCosts)
	out.HotelStays = append([]HotelStay{}, p.HotelStays...)
	return out
}

func (r StaffRole) clone() StaffRole {
	out := r
	out.DailyRatesDuring = cloneVec(r.DailyRatesDuring)
	out.DailyRatesBefore = cloneVec(r.DailyRatesBefore)
	out.DailyRatesAfter = cloneVec(r.DailyRatesAfter)
	return out
}

func cloneVec(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
