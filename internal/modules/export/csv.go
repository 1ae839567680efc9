// README: CSV quote summary (UTF-8 with BOM so spreadsheet tools pick the encoding).
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"tourcalc/internal/modules/pricing"
	"tourcalc/internal/modules/trip"
	"tourcalc/internal/types"
)

const utf8BOM = "\uFEFF"

// CSV renders the quote summary. Values come from p and b as they are; nothing
// is recomputed here except per-stay display totals.
func CSV(p trip.Params, b pricing.Breakdown) ([]byte, string, error) {
	amt := types.FormatAmount
	rows := [][]string{
		{"TRIP SUMMARY", ""},
		{"Trip name", p.TripName},
		{"Participants", strconv.Itoa(p.ParticipantCount)},
		{"Duration (days)", strconv.Itoa(p.DurationDays)},
		{""},
		{"HOTEL DETAIL", "NIGHTS", "COST/NIGHT", "TOTAL"},
	}
	for _, h := range p.HotelStays {
		rows = append(rows, []string{h.Name, strconv.Itoa(h.Nights), amt(h.CostPerNight), amt(float64(h.Nights) * h.CostPerNight)})
	}

	f, v, c := b.FixedCosts, b.VariableCosts, b.CommercialCosts
	breakEven := strconv.Itoa(b.BreakEvenParticipants)
	if b.IsBreakEvenImpossible {
		breakEven = "IMPOSSIBLE"
	}
	rows = append(rows,
		[]string{""},
		[]string{"FIXED COSTS", "AMOUNT"},
		[]string{"Staff fees", amt(f.StaffFees)},
		[]string{"Staff travel", amt(f.StaffTravel)},
		[]string{"Staff accommodation", amt(f.StaffAccommodation)},
		[]string{"Staff meals", amt(f.StaffLunch)},
		[]string{"Guide bike", amt(f.GuideBike)},
		[]string{"Van rental", amt(f.VanRental)},
		[]string{"Fuel", amt(f.Fuel)},
		[]string{"Tolls", amt(f.Tolls)},
		[]string{"Scouting", amt(f.Scouting)},
		[]string{"TOTAL FIXED COSTS", amt(f.Total)},
		[]string{""},
		[]string{"VARIABLE COSTS", "AMOUNT"},
		[]string{"Client accommodation", amt(v.ClientAccommodation)},
		[]string{"Bike rental", amt(v.ClientBike)},
		[]string{"Client dinners", amt(v.ClientDinner)},
		[]string{"Transfers", amt(v.ClientTransfer)},
		[]string{"Experiences", amt(v.ClientExperience)},
		[]string{"Insurance", amt(v.ClientInsurance)},
		[]string{"TOTAL VARIABLE COSTS", amt(v.Total)},
		[]string{""},
		[]string{"COMMERCIAL COSTS", "AMOUNT"},
		[]string{"Banking fees", amt(c.BankingFees)},
		[]string{"Agency commissions", amt(c.AgencyCommissions)},
		[]string{""},
		[]string{"RESULTS", ""},
		[]string{"Total cost", amt(b.TotalCost)},
		[]string{"Cost per person", amt(b.CostPerPerson)},
		[]string{"Margin (%)", strconv.FormatFloat(p.ProfitMarginPercent, 'f', -1, 64)},
		[]string{"SUGGESTED PRICE", amt(b.SuggestedPricePerPerson)},
		[]string{"Total revenue", amt(b.TotalRevenue)},
		[]string{"Total profit", amt(b.TotalProfit)},
		[]string{"Break-even (pax)", breakEven},
	)

	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), Filename(p.TripName, "csv"), nil
}
