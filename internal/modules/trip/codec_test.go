package trip

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestCodecRoundTrip(t *testing.T) {
	rec := newTestReconciler(0)
	rnd := rand.New(rand.NewSource(3))
	p := DefaultParams()
	for i := 0; i < 50; i++ {
		p = rec.SetDuration(p, rnd.Intn(12))
		p = rec.SetExtraDays(p, RoleGuide, SideAfter, rnd.Intn(3))
		p.ProfitMarginPercent = float64(rnd.Intn(10000)) / 7

		data, err := Encode(p)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		back, err := Decode(data)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		again, err := Encode(back)
		if err != nil {
			t.Fatalf("re-encode: %v", err)
		}
		if string(data) != string(again) {
			t.Fatalf("round trip changed the snapshot:\n%s\n%s", data, again)
		}
	}
}

func mutateJSON(t *testing.T, fn func(m map[string]any)) []byte {
	t.Helper()
	data, err := Encode(DefaultParams())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	fn(m)
	out, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return out
}

func TestDecodeRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"not json", []byte("{nope")},
		{"null", []byte("null")},
		{"missing top-level key", mutateJSON(t, func(m map[string]any) { delete(m, "fuelDailyCosts") })},
		{"missing role key", mutateJSON(t, func(m map[string]any) {
			delete(m["driver"].(map[string]any), "extraDaysAfter")
		})},
		{"null vector", mutateJSON(t, func(m map[string]any) { m["bikeDailyRentalCosts"] = nil })},
		{"wrong during length", mutateJSON(t, func(m map[string]any) { m["bikeDailyRentalCosts"] = []float64{1, 2} })},
		{"wrong shared length", mutateJSON(t, func(m map[string]any) { m["staffDailyLunchCostsAfter"] = []float64{} })},
		{"unknown field", mutateJSON(t, func(m map[string]any) { m["surprise"] = 1 })},
		{"missing stay key", mutateJSON(t, func(m map[string]any) {
			delete(m["hotelStays"].([]any)[0].(map[string]any), "nights")
		})},
		{"negative participants", mutateJSON(t, func(m map[string]any) { m["participantCount"] = -2 })},
		{"wrong type", mutateJSON(t, func(m map[string]any) { m["durationDays"] = "seven" })},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.data)
			if !errors.Is(err, ErrInvalidSnapshot) {
				t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
			}
		})
	}
}

func TestValidateReportsFirstBadScalar(t *testing.T) {
	p := DefaultParams()
	p.AgencyCommissionPercent = math.Inf(1)
	p.ProfitMarginPercent = math.NaN()
	p.ScoutingCost = math.NaN()
	for i := 0; i < 20; i++ {
		err := Validate(p)
		if !errors.Is(err, ErrInvalidSnapshot) {
			t.Fatalf("expected ErrInvalidSnapshot, got %v", err)
		}
		if !strings.Contains(err.Error(), "profitMarginPercent") {
			t.Fatalf("run %d: error names %q, want profitMarginPercent", i, err)
		}
	}
}

func TestEncodeWritesEmptyArrays(t *testing.T) {
	p := DefaultParams()
	p.Guide.DailyRatesBefore = nil
	data, err := Encode(p)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if strings.Contains(string(data), "null") {
		t.Fatalf("encoded snapshot contains null: %s", data)
	}
	if _, err := Decode(data); err != nil {
		t.Fatalf("Decode: %v", err)
	}
}
