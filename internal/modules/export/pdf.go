// README: PDF quote document rendered with gofpdf.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"tourcalc/internal/modules/pricing"
	"tourcalc/internal/modules/trip"
	"tourcalc/internal/types"
)

type rgb struct{ r, g, b int }

var (
	brand      = rgb{109, 40, 217}
	brandLight = rgb{245, 243, 255}
	violet     = rgb{139, 92, 246}
	rose       = rgb{244, 63, 94}
)

// PDF renders the quote. now is printed as the quote date.
func PDF(p trip.Params, b pricing.Breakdown, now time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Quote", false)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	eur := func(v float64) string { return tr("€") + types.FormatAmount(v) }

	// Header band
	pdf.SetFillColor(brand.r, brand.g, brand.b)
	pdf.Rect(0, 0, 210, 24, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Text(14, 15, "TourCalc Pro")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(110, 10)
	pdf.CellFormat(90, 8, "Detailed quote", "", 0, "R", false, 0, "")

	// Trip box
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(255, 255, 255)
	pdf.Rect(14, 30, 182, 25, "FD")
	pdf.SetTextColor(50, 50, 50)
	pdf.SetFont("Helvetica", "B", 14)
	name := p.TripName
	if name == "" {
		name = "Untitled Trip"
	}
	pdf.Text(18, 40, tr(name))
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(18, 48, "Date: "+now.Format("2006-01-02"))
	pdf.Text(90, 48, fmt.Sprintf("Participants: %d", p.ParticipantCount))
	pdf.Text(150, 48, fmt.Sprintf("Duration: %d days", p.DurationDays))
	pdf.SetY(60)

	if rows := staffRows(p, b, eur); len(rows) > 0 {
		table(pdf, brand, []string{"Role", "Days / service", "Total cost"}, []float64{55, 82, 45}, rows)
	}

	vanDays := 0
	if p.Driver.Included {
		vanDays = p.DurationDays + p.Driver.ExtraDaysBefore + p.Driver.ExtraDaysAfter
	}
	table(pdf, violet, []string{"Logistics", "Notes", "Cost"}, []float64{55, 82, 45}, [][]string{
		{"Van rental", fmt.Sprintf("Total for %d days", vanDays), eur(b.FixedCosts.VanRental)},
		{"Fuel", "Estimated total", eur(b.FixedCosts.Fuel)},
		{"Staff accommodation", "Guide + driver (half board)", eur(b.FixedCosts.StaffAccommodation)},
		{"Staff meals", "Lunches on tour", eur(b.FixedCosts.StaffLunch)},
	})

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(50, 50, 50)
	pdf.CellFormat(0, 6, "Client hotels", "", 1, "L", false, 0, "")
	var hotels [][]string
	for _, h := range p.HotelStays {
		hotels = append(hotels, []string{
			tr(h.Name),
			fmt.Sprintf("%d nights", h.Nights),
			eur(h.CostPerNight),
			eur(float64(h.Nights) * h.CostPerNight * float64(p.ParticipantCount)),
		})
	}
	table(pdf, rose, []string{"Hotel", "Stay", "Cost/night (pax)", "Group total"}, []float64{62, 30, 45, 45}, hotels)

	// Price box
	y := pdf.GetY() + 5
	if y > 240 {
		pdf.AddPage()
		y = 20
	}
	pdf.SetFillColor(brandLight.r, brandLight.g, brandLight.b)
	pdf.SetDrawColor(brand.r, brand.g, brand.b)
	pdf.Rect(120, y, 80, 50, "FD")
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(brand.r, brand.g, brand.b)
	pdf.Text(125, y+10, "SUGGESTED PRICE")
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(125, y+22, tr("€")+types.FormatWhole(b.SuggestedPricePerPerson))
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(125, y+28, "per person")
	pdf.SetTextColor(80, 80, 80)
	pdf.Text(125, y+38, "Net cost: "+tr("€")+types.FormatWhole(b.CostPerPerson))
	pdf.Text(125, y+44, fmt.Sprintf("Margin: %s%s (%s%%)", tr("€"),
		types.FormatWhole(b.SuggestedPricePerPerson-b.CostPerPerson),
		types.FormatWhole(p.ProfitMarginPercent)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), Filename(p.TripName, "pdf"), nil
}

func table(pdf *gofpdf.Fpdf, head rgb, cols []string, widths []float64, rows [][]string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(head.r, head.g, head.b)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(200, 200, 200)
	for i, c := range cols {
		pdf.CellFormat(widths[i], 7, c, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(50, 50, 50)
	for _, row := range rows {
		for i, v := range row {
			pdf.CellFormat(widths[i], 6, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(6)
}

// staffRows lists fees and travel per included role, as the engine priced them.
func staffRows(p trip.Params, b pricing.Breakdown, eur func(float64) string) [][]string {
	var rows [][]string
	if p.Guide.Included {
		rows = append(rows,
			[]string{"Cycling guide", staffDays(p, p.Guide), eur(b.Guide.Fees)},
			[]string{"Guide travel", "Flight / transfer", eur(b.Guide.Travel)},
		)
	}
	if p.Driver.Included {
		rows = append(rows,
			[]string{"Driver", staffDays(p, p.Driver), eur(b.Driver.Fees)},
			[]string{"Driver travel", "Flight / transfer", eur(b.Driver.Travel)},
		)
	}
	return rows
}

func staffDays(p trip.Params, r trip.StaffRole) string {
	return fmt.Sprintf("Tour (%dd) + extra (%dd)", p.DurationDays, r.ExtraDaysBefore+r.ExtraDaysAfter)
}
