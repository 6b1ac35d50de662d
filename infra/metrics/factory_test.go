package metrics_test

import (
	"testing"

	"github.com/kilianp07/co2path/core/factory"
	coremetrics "github.com/kilianp07/co2path/core/metrics"
	_ "github.com/kilianp07/co2path/infra/metrics"
)

func TestRegisteredSinks(t *testing.T) {
	types := coremetrics.SinkTypes()
	for _, want := range []string{"influx", "nop", "prometheus"} {
		found := false
		for _, got := range types {
			if got == want {
				found = true
			}
		}
		if !found {
			t.Errorf("sink %q not registered (have %v)", want, types)
		}
	}
}

func TestNewSink_Nop(t *testing.T) {
	s, err := coremetrics.NewSink([]factory.ModuleConfig{{Type: "nop"}})
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	if _, ok := s.(coremetrics.NopSink); !ok {
		t.Fatalf("expected NopSink, got %T", s)
	}
}

func TestNewSink_Unknown(t *testing.T) {
	if _, err := coremetrics.NewSink([]factory.ModuleConfig{{Type: "statsd"}}); err == nil {
		t.Fatal("expected error for unknown sink type")
	}
}
