// README: Cost breakdown produced for one trip snapshot.
package pricing

// Unbounded is reported as break-even participants when no headcount can cover fixed costs.
const Unbounded = -1

type FixedCosts struct {
	StaffFees          float64 `json:"staffFees"`
	StaffTravel        float64 `json:"staffTravel"`
	StaffAccommodation float64 `json:"staffAccommodation"`
	StaffLunch         float64 `json:"staffLunch"`
	GuideBike          float64 `json:"guideBike"`
	VanRental          float64 `json:"vanRental"`
	Fuel               float64 `json:"fuel"`
	Tolls              float64 `json:"tolls"`
	Scouting           float64 `json:"scouting"`
	Total              float64 `json:"total"`
}

type VariableCosts struct {
	ClientAccommodation float64 `json:"clientAccommodation"`
	ClientBike          float64 `json:"clientBike"`
	ClientDinner        float64 `json:"clientDinner"`
	ClientTransfer      float64 `json:"clientTransfer"`
	ClientExperience    float64 `json:"clientExperience"`
	ClientInsurance     float64 `json:"clientInsurance"`
	Total               float64 `json:"total"`
}

type CommercialCosts struct {
	BankingFees       float64 `json:"bankingFees"`
	AgencyCommissions float64 `json:"agencyCommissions"`
	Total             float64 `json:"total"`
}

// Breakdown is derived wholesale from a snapshot and never stored or edited.
type Breakdown struct {
	FixedCosts      FixedCosts      `json:"fixedCosts"`
	VariableCosts   VariableCosts   `json:"variableCosts"`
	CommercialCosts CommercialCosts `json:"commercialCosts"`
	Guide           RoleCosts       `json:"guide"`
	Driver          RoleCosts       `json:"driver"`

	TotalCost               float64 `json:"totalCost"`
	CostPerPerson           float64 `json:"costPerPerson"`
	SuggestedPricePerPerson float64 `json:"suggestedPricePerPerson"`
	TotalRevenue            float64 `json:"totalRevenue"`
	TotalProfit             float64 `json:"totalProfit"`
	BreakEvenParticipants   int     `json:"breakEvenParticipants"`
	IsBreakEvenImpossible   bool    `json:"isBreakEvenImpossible"`
}

// RoleCosts is one staff role's share of the fixed costs. An excluded role is all zero.
type RoleCosts struct {
	Fees          float64 `json:"fees"`
	Travel        float64 `json:"travel"`
	Accommodation float64 `json:"accommodation"`
	Lunch         float64 `json:"lunch"`
}
