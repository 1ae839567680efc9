// README: Scalar field patch for the trip snapshot.
package trip

import "fmt"

// ScalarPatch carries the non-vector fields an operator may change. Nil fields
// are left as they are. Duration and extra days go through the reconciler instead.
type ScalarPatch struct {
	TripName                *string  `json:"tripName,omitempty"`
	ParticipantCount        *int     `json:"participantCount,omitempty"`
	ProfitMarginPercent     *float64 `json:"profitMarginPercent,omitempty"`
	GuideIncluded           *bool    `json:"guideIncluded,omitempty"`
	GuideTravelCost         *float64 `json:"guideTravelCost,omitempty"`
	DriverIncluded          *bool    `json:"driverIncluded,omitempty"`
	DriverTravelCost        *float64 `json:"driverTravelCost,omitempty"`
	StaffTollsCost          *float64 `json:"staffTollsCost,omitempty"`
	ScoutingCost            *float64 `json:"scoutingCost,omitempty"`
	HasBikeRental           *bool    `json:"hasBikeRental,omitempty"`
	ClientTotalTransferCost *float64 `json:"clientTotalTransferCost,omitempty"`
	ClientExperienceCost    *float64 `json:"clientExperienceCost,omitempty"`
	ClientInsuranceCost     *float64 `json:"clientInsuranceCost,omitempty"`
	BankingFeePercent       *float64 `json:"bankingFeePercent,omitempty"`
	AgencyCommissionPercent *float64 `json:"agencyCommissionPercent,omitempty"`
}

// Apply returns p with the patch applied.
func (sp ScalarPatch) Apply(p Params) (Params, error) {
	out := p.Clone()
	if sp.TripName != nil {
		out.TripName = *sp.TripName
	}
	if sp.ParticipantCount != nil {
		if *sp.ParticipantCount < 0 {
			return p, fmt.Errorf("%w: participantCount must be >= 0", ErrBadRequest)
		}
		out.ParticipantCount = *sp.ParticipantCount
	}
	if sp.GuideIncluded != nil {
		out.Guide.Included = *sp.GuideIncluded
	}
	if sp.DriverIncluded != nil {
		out.Driver.Included = *sp.DriverIncluded
	}
	if sp.HasBikeRental != nil {
		out.HasBikeRental = *sp.HasBikeRental
	}

	amounts := []struct {
		name string
		src  *float64
		dst  *float64
	}{
		{"profitMarginPercent", sp.ProfitMarginPercent, &out.ProfitMarginPercent},
		{"guideTravelCost", sp.GuideTravelCost, &out.Guide.TravelCost},
		{"driverTravelCost", sp.DriverTravelCost, &out.Driver.TravelCost},
		{"staffTollsCost", sp.StaffTollsCost, &out.StaffTollsCost},
		{"scoutingCost", sp.ScoutingCost, &out.ScoutingCost},
		{"clientTotalTransferCost", sp.ClientTotalTransferCost, &out.ClientTotalTransferCost},
		{"clientExperienceCost", sp.ClientExperienceCost, &out.ClientExperienceCost},
		{"clientInsuranceCost", sp.ClientInsuranceCost, &out.ClientInsuranceCost},
		{"bankingFeePercent", sp.BankingFeePercent, &out.BankingFeePercent},
		{"agencyCommissionPercent", sp.AgencyCommissionPercent, &out.AgencyCommissionPercent},
	}
	for _, a := range amounts {
		if a.src == nil {
			continue
		}
		if !finite(*a.src) {
			return p, fmt.Errorf("%w: %s is not a finite number", ErrBadRequest, a.name)
		}
		*a.dst = *a.src
	}
	return out, nil
}
