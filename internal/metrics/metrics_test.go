package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()
	m.Recomputed()
	m.Recomputed()
	m.Edit("duration", nil)
	m.Edit("duration", errors.New("bad"))

	if got := testutil.ToFloat64(m.Recomputations); got != 2 {
		t.Fatalf("recomputations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Edits.WithLabelValues("duration", "rejected")); got != 1 {
		t.Fatalf("rejected edits = %v, want 1", got)
	}
}
