package pricing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/goccy/go-json"

	"tourcalc/internal/modules/trip"
	"tourcalc/internal/modules/trip/triptest"
	"tourcalc/internal/types"
)

const eps = 1e-6

func near(a, b float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Abs(b))
}

func TestCalculate_DefaultScenario(t *testing.T) {
	b := Calculate(trip.DefaultParams())

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"staff fees", b.FixedCosts.StaffFees, 2130},
		{"staff travel", b.FixedCosts.StaffTravel, 400},
		{"staff accommodation", b.FixedCosts.StaffAccommodation, 1440},
		{"staff lunch", b.FixedCosts.StaffLunch, 400},
		{"van rental", b.FixedCosts.VanRental, 1440},
		{"fuel", b.FixedCosts.Fuel, 360},
		{"fixed total", b.FixedCosts.Total, 6170},
		{"client accommodation", b.VariableCosts.ClientAccommodation, 5040},
		{"client bike", b.VariableCosts.ClientBike, 1680},
		{"variable total", b.VariableCosts.Total, 6720},
		{"total cost", b.TotalCost, 12890},
		{"cost per person", b.CostPerPerson, 1611.25},
		{"suggested price", b.SuggestedPricePerPerson, 2014.0625},
		{"revenue", b.TotalRevenue, 16112.5},
		{"profit", b.TotalProfit, 3222.5},
		{"commissions", b.CommercialCosts.Total, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !near(tt.got, tt.want) {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}

	// contribution = 2014.0625 - 840 = 1174.0625, 6170 / 1174.0625 = 5.26
	if b.BreakEvenParticipants != 6 || b.IsBreakEvenImpossible {
		t.Errorf("break-even = %d (impossible=%v), want 6", b.BreakEvenParticipants, b.IsBreakEvenImpossible)
	}
}

func TestCalculate_ExcludedRolesAndBikes(t *testing.T) {
	p := trip.DefaultParams()
	p.Driver.Included = false
	p.HasBikeRental = false
	p.GuideBikeDailyCosts[0] = 35

	b := Calculate(p)
	if b.FixedCosts.VanRental != 0 || b.FixedCosts.Fuel != 0 {
		t.Errorf("vehicle costs without driver: van=%v fuel=%v", b.FixedCosts.VanRental, b.FixedCosts.Fuel)
	}
	if b.FixedCosts.StaffFees != 1050 || b.FixedCosts.StaffAccommodation != 630 || b.FixedCosts.StaffLunch != 175 {
		t.Errorf("guide only costs: %+v", b.FixedCosts)
	}
	if b.FixedCosts.GuideBike != 35 {
		t.Errorf("guide bike = %v, want 35", b.FixedCosts.GuideBike)
	}
	if b.VariableCosts.ClientBike != 0 {
		t.Errorf("client bike = %v, want 0", b.VariableCosts.ClientBike)
	}

	p.Guide.Included = false
	if got := Calculate(p).FixedCosts.GuideBike; got != 0 {
		t.Errorf("guide bike without guide = %v", got)
	}
}

func TestCalculate_TransferIsGroupTotal(t *testing.T) {
	p := trip.DefaultParams()
	p.ClientTotalTransferCost = 400
	p.ClientExperienceCost = 50
	p.ClientInsuranceCost = 10

	b := Calculate(p)
	if b.VariableCosts.ClientTransfer != 400 {
		t.Errorf("transfer = %v, want 400", b.VariableCosts.ClientTransfer)
	}
	if b.VariableCosts.ClientExperience != 400 || b.VariableCosts.ClientInsurance != 80 {
		t.Errorf("per person extras not scaled: %+v", b.VariableCosts)
	}
}

func TestCalculate_ZeroParticipants(t *testing.T) {
	p := trip.DefaultParams()
	p.ParticipantCount = 0

	b := Calculate(p)
	if b.CostPerPerson != 0 || b.SuggestedPricePerPerson != 0 || b.TotalRevenue != 0 {
		t.Fatalf("zero participants: %+v", b)
	}
	if b.TotalCost != 6170 {
		t.Errorf("total cost = %v, want fixed only 6170", b.TotalCost)
	}
	if !b.IsBreakEvenImpossible || b.BreakEvenParticipants != Unbounded {
		t.Errorf("break-even should be unbounded, got %d", b.BreakEvenParticipants)
	}
}

func TestCalculate_CommissionsAtOrAboveHundred(t *testing.T) {
	p := trip.DefaultParams()
	p.BankingFeePercent = 40
	p.AgencyCommissionPercent = 70

	b := Calculate(p)
	if math.IsInf(b.SuggestedPricePerPerson, 0) || math.IsNaN(b.SuggestedPricePerPerson) {
		t.Fatalf("price not finite: %v", b.SuggestedPricePerPerson)
	}
	want := 1611.25 * 1.25 / 0.01
	if !near(b.SuggestedPricePerPerson, want) {
		t.Errorf("price = %v, want %v", b.SuggestedPricePerPerson, want)
	}
	if !b.IsBreakEvenImpossible {
		t.Error("commissions above 100% leave no contribution margin")
	}
}

func TestCalculate_Commissions(t *testing.T) {
	p := trip.DefaultParams()
	p.BankingFeePercent = 2
	p.AgencyCommissionPercent = 18

	b := Calculate(p)
	price := 2014.0625 / 0.8
	if !near(b.SuggestedPricePerPerson, price) {
		t.Fatalf("price = %v, want %v", b.SuggestedPricePerPerson, price)
	}
	if !near(b.CommercialCosts.BankingFees, price*8*0.02) || !near(b.CommercialCosts.AgencyCommissions, price*8*0.18) {
		t.Errorf("commercial costs: %+v", b.CommercialCosts)
	}
	// Grossing up keeps the net margin intact.
	if !near(b.TotalProfit, 3222.5) {
		t.Errorf("profit = %v, want 3222.5", b.TotalProfit)
	}
}

func TestCalculate_Invariants(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	for i := 0; i < 500; i++ {
		p := triptest.Random(rnd)
		b := Calculate(p)

		f := b.FixedCosts
		if !near(f.Total, f.StaffFees+f.StaffTravel+f.StaffAccommodation+f.StaffLunch+f.GuideBike+f.VanRental+f.Fuel+f.Tolls+f.Scouting) {
			t.Fatalf("fixed total not additive: %+v", f)
		}
		v := b.VariableCosts
		if !near(v.Total, v.ClientAccommodation+v.ClientBike+v.ClientDinner+v.ClientTransfer+v.ClientExperience+v.ClientInsurance) {
			t.Fatalf("variable total not additive: %+v", v)
		}
		if !near(b.TotalCost, f.Total+v.Total) {
			t.Fatalf("total cost %v != %v + %v", b.TotalCost, f.Total, v.Total)
		}
		if !near(b.TotalProfit, b.TotalRevenue-b.TotalCost-b.CommercialCosts.Total) {
			t.Fatalf("profit %v inconsistent", b.TotalProfit)
		}
		if p.ParticipantCount == 0 && b.CostPerPerson != 0 {
			t.Fatalf("cost per person with no participants: %v", b.CostPerPerson)
		}
		if b.IsBreakEvenImpossible != (b.BreakEvenParticipants == Unbounded) {
			t.Fatalf("break-even flag mismatch: %+v", b)
		}
		if !b.IsBreakEvenImpossible && b.BreakEvenParticipants < 0 {
			t.Fatalf("negative break-even: %d", b.BreakEvenParticipants)
		}
		if c := contributionOf(p, b); c > 0 {
			want := math.Max(0, math.Ceil(f.Total/c))
			if want < float64(math.MaxInt) && float64(b.BreakEvenParticipants) != want {
				t.Fatalf("break-even = %d, want ceil(%v/%v) = %v", b.BreakEvenParticipants, f.Total, c, want)
			}
		} else if !b.IsBreakEvenImpossible {
			t.Fatalf("contribution %v <= 0 but break-even %d", c, b.BreakEvenParticipants)
		}
		if b.Guide.Fees+b.Driver.Fees != f.StaffFees || b.Guide.Travel+b.Driver.Travel != f.StaffTravel {
			t.Fatalf("role costs do not add up: %+v %+v %+v", b.Guide, b.Driver, f)
		}
	}
}

// contributionOf rebuilds the per-participant contribution margin from the
// snapshot and the quoted price, summing in the engine's order.
func contributionOf(p trip.Params, b Breakdown) float64 {
	hotel := 0.0
	for _, s := range p.HotelStays {
		hotel += float64(s.Nights) * s.CostPerNight
	}
	bike := 0.0
	if p.HasBikeRental {
		bike = types.Sum(p.BikeDailyRentalCosts)
	}
	transfer := p.ClientTotalTransferCost / float64(max(p.ParticipantCount, 1))
	perPerson := hotel + bike + types.Sum(p.ClientDailyDinnerCosts) + transfer +
		p.ClientExperienceCost + p.ClientInsuranceCost
	commission := b.SuggestedPricePerPerson * ((p.BankingFeePercent + p.AgencyCommissionPercent) / 100)
	return b.SuggestedPricePerPerson - perPerson - commission
}

func TestCalculate_HugeBreakEvenIsUnbounded(t *testing.T) {
	p := trip.DefaultParams()
	p.ParticipantCount = 1 << 40
	p.ProfitMarginPercent = -99.9999999
	p.HasBikeRental = false
	for i := range p.HotelStays {
		p.HotelStays[i].CostPerNight = 0
	}
	if err := trip.Validate(p); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	b := Calculate(p)
	if !b.IsBreakEvenImpossible || b.BreakEvenParticipants != Unbounded {
		t.Fatalf("break-even = %d impossible=%v, want unbounded", b.BreakEvenParticipants, b.IsBreakEvenImpossible)
	}
}

func TestBreakEvenCount(t *testing.T) {
	cases := []struct {
		name         string
		fixed        float64
		contribution float64
		want         int
		impossible   bool
	}{
		{"exact", 6000, 1000, 6, false},
		{"rounds up", 6170, 1000, 7, false},
		{"no fixed costs", 0, 10, 0, false},
		{"zero contribution", 100, 0, Unbounded, true},
		{"negative contribution", 100, -5, Unbounded, true},
		{"NaN contribution", 100, math.NaN(), Unbounded, true},
		{"past int range", 6170, 1e-18, Unbounded, true},
		{"infinite ratio", math.Inf(1), 1, Unbounded, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, impossible := breakEvenCount(tc.fixed, tc.contribution)
			if got != tc.want || impossible != tc.impossible {
				t.Fatalf("breakEvenCount(%v, %v) = %d, %v; want %d, %v", tc.fixed, tc.contribution, got, impossible, tc.want, tc.impossible)
			}
		})
	}
}

func TestCalculate_StableAcrossCodec(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	for i := 0; i < 100; i++ {
		p := triptest.Random(rnd)
		data, err := trip.Encode(p)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		back, err := trip.Decode(data)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		b1, _ := json.Marshal(Calculate(p))
		b2, _ := json.Marshal(Calculate(back))
		if string(b1) != string(b2) {
			t.Fatalf("breakdown changed across codec:\n%s\n%s", b1, b2)
		}
	}
}

type countingRecorder struct{ n int }

func (c *countingRecorder) Recomputed() { c.n++ }

func TestServiceQuoteRecords(t *testing.T) {
	rec := &countingRecorder{}
	svc := NewService(rec)
	svc.Quote(trip.DefaultParams())
	svc.Quote(trip.DefaultParams())
	if rec.n != 2 {
		t.Fatalf("recorded %d recomputations, want 2", rec.n)
	}
	if NewService(nil).Quote(trip.DefaultParams()).TotalCost != 12890 {
		t.Fatal("nil recorder changed the result")
	}
}
