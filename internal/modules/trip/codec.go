// README: JSON codec for trip snapshots; decoding fails closed on any malformed input.
package trip

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

var (
	requiredParamKeys = []string{
		"tripName", "participantCount", "durationDays", "profitMarginPercent",
		"guide", "driver",
		"staffDailyLunchCosts", "staffDailyLunchCostsBefore", "staffDailyLunchCostsAfter",
		"staffDailyAccommodationCosts", "staffDailyAccommodationCostsBefore", "staffDailyAccommodationCostsAfter",
		"vanDailyRentalCosts", "vanDailyRentalCostsBefore", "vanDailyRentalCostsAfter",
		"fuelDailyCosts", "fuelDailyCostsBefore", "fuelDailyCostsAfter",
		"staffTollsCost", "scoutingCost", "hotelStays",
		"hasBikeRental", "bikeDailyRentalCosts", "clientDailyDinnerCosts",
		"clientTotalTransferCost", "clientExperienceCost", "clientInsuranceCost", "guideBikeDailyCosts",
		"bankingFeePercent", "agencyCommissionPercent",
	}
	requiredRoleKeys = []string{
		"included", "dailyRatesDuring", "dailyRatesBefore", "dailyRatesAfter",
		"travelCost", "extraDaysBefore", "extraDaysAfter",
	}
	requiredStayKeys = []string{"id", "name", "nights", "costPerNight"}
)

// Encode serializes a snapshot. Nil vectors are written as empty arrays.
func Encode(p Params) ([]byte, error) {
	return json.Marshal(p.Clone())
}

// Decode parses and validates a snapshot. Missing keys, unknown keys, nulls in
// required places and shape violations are all rejected.
func Decode(data []byte) (Params, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if raw == nil {
		return Params{}, invalid("snapshot is null")
	}
	if err := requireKeys("params", raw, requiredParamKeys); err != nil {
		return Params{}, err
	}
	for _, role := range []string{"guide", "driver"} {
		var r map[string]json.RawMessage
		if err := json.Unmarshal(raw[role], &r); err != nil || r == nil {
			return Params{}, invalid(role + " must be an object")
		}
		if err := requireKeys(role, r, requiredRoleKeys); err != nil {
			return Params{}, err
		}
	}
	var stays []map[string]json.RawMessage
	if err := json.Unmarshal(raw["hotelStays"], &stays); err != nil {
		return Params{}, invalid("hotelStays must be an array")
	}
	for i, s := range stays {
		if err := requireKeys(fmt.Sprintf("hotelStays[%d]", i), s, requiredStayKeys); err != nil {
			return Params{}, err
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var p Params
	if err := dec.Decode(&p); err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if err := Validate(p); err != nil {
		return Params{}, err
	}
	return p, nil
}

func requireKeys(scope string, obj map[string]json.RawMessage, keys []string) error {
	for _, k := range keys {
		v, ok := obj[k]
		if !ok {
			return invalid(fmt.Sprintf("%s.%s is missing", scope, k))
		}
		if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			return invalid(fmt.Sprintf("%s.%s is null", scope, k))
		}
	}
	return nil
}
