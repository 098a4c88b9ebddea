package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegister(t *testing.T) {
	registry := prometheus.NewRegistry()
	Register(registry)

	BalloonsResolvedTotal.WithLabelValues("2", "red", OutcomeLabel(true)).Inc()

	families, err := registry.Gather()
	if err != nil {
		t.Fatal(err)
	}

	var found bool
	for _, f := range families {
		if f.GetName() != "balloon_factory_balloons_resolved_total" {
			continue
		}
		found = true
		if got := f.GetMetric()[0].GetCounter().GetValue(); got != 1 {
			t.Errorf("counter = %v, want 1", got)
		}
	}
	if !found {
		t.Error("balloons_resolved_total not gathered")
	}
}

func TestOutcomeLabel(t *testing.T) {
	if OutcomeLabel(false) != "cashed_out" || OutcomeLabel(true) != "popped" {
		t.Error("unexpected outcome labels")
	}
}
