// README: Growth defaults and the session-start snapshot.
package trip

// Defaults are the values used when a vector has to grow from empty.
type Defaults struct {
	GuideRate     float64
	DriverRate    float64
	StaffLunch    float64
	StaffLodging  float64
	VanRental     float64
	Fuel          float64
	BikeRental    float64
	ClientDinner  float64
	GuideBike     float64
	HotelPerNight float64
}

func DefaultDefaults() Defaults {
	return Defaults{
		GuideRate:     150,
		DriverRate:    120,
		StaffLunch:    25,
		StaffLodging:  90,
		VanRental:     160,
		Fuel:          40,
		BikeRental:    30,
		ClientDinner:  0,
		GuideBike:     0,
		HotelPerNight: 90,
	}
}

const defaultDuration = 7

// DefaultParams is the snapshot a new session starts from.
func DefaultParams() Params {
	d := DefaultDefaults()
	return Params{
		TripName:            "Cycling Tour Tuscany",
		ParticipantCount:    8,
		DurationDays:        defaultDuration,
		ProfitMarginPercent: 25,
		Guide: StaffRole{
			Included:         true,
			DailyRatesDuring: fill(defaultDuration, d.GuideRate),
			DailyRatesBefore: []float64{},
			DailyRatesAfter:  []float64{},
			TravelCost:       200,
		},
		Driver: StaffRole{
			Included:         true,
			DailyRatesDuring: fill(defaultDuration, d.DriverRate),
			DailyRatesBefore: []float64{d.DriverRate},
			DailyRatesAfter:  []float64{d.DriverRate},
			TravelCost:       200,
			ExtraDaysBefore:  1,
			ExtraDaysAfter:   1,
		},
		StaffDailyLunchCosts:               fill(defaultDuration, d.StaffLunch),
		StaffDailyLunchCostsBefore:         []float64{d.StaffLunch},
		StaffDailyLunchCostsAfter:          []float64{d.StaffLunch},
		StaffDailyAccommodationCosts:       fill(defaultDuration, d.StaffLodging),
		StaffDailyAccommodationCostsBefore: []float64{d.StaffLodging},
		StaffDailyAccommodationCostsAfter:  []float64{d.StaffLodging},
		VanDailyRentalCosts:                fill(defaultDuration, d.VanRental),
		VanDailyRentalCostsBefore:          []float64{d.VanRental},
		VanDailyRentalCostsAfter:           []float64{d.VanRental},
		FuelDailyCosts:                     fill(defaultDuration, d.Fuel),
		FuelDailyCostsBefore:               []float64{d.Fuel},
		FuelDailyCostsAfter:                []float64{d.Fuel},
		HotelStays: []HotelStay{{
			ID:                 "1",
			Name:               "Hotel Base",
			Nights:             defaultDuration,
			CostPerNight:       d.HotelPerNight,
			PaymentTerms:       "30% on confirmation, balance 30 days before",
			CancellationPolicy: "100% penalty from 15 days before",
			DUSSupplement:      30,
		}},
		HasBikeRental:          true,
		BikeDailyRentalCosts:   fill(defaultDuration, d.BikeRental),
		ClientDailyDinnerCosts: fill(defaultDuration, d.ClientDinner),
		GuideBikeDailyCosts:    fill(defaultDuration, d.GuideBike),
	}
}

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
