package finance

import (
	"math"
	"testing"
)

func TestAmortization(t *testing.T) {
	if got := Amortization(50000, 4000); got != 12.5 {
		t.Fatalf("amortization: got %v want 12.5", got)
	}
	for _, s := range []float64{0, -1} {
		if got := Amortization(50000, s); !math.IsInf(got, 1) {
			t.Fatalf("savings %v: expected +Inf, got %v", s, got)
		}
	}
}

func TestAmortizationMonotonic(t *testing.T) {
	prev := math.Inf(1)
	for s := 100.0; s <= 10000; s += 100 {
		got := Amortization(50000, s)
		if got > prev {
			t.Fatalf("amortization increased at savings %v: %v > %v", s, got, prev)
		}
		prev = got
	}
}

func TestNPVGolden(t *testing.T) {
	if got := NPV(50000, 4000, 25, 0, 0); got != 50000 {
		t.Fatalf("NPV at zero rates: got %v want 50000", got)
	}
	got := NPV(50000, 4000, 25, 2.0, 2.5)
	if math.Abs(got-56629.651332) > 1e-5 {
		t.Fatalf("NPV golden: got %.6f", got)
	}
	if got := NPV(50000, 4000, 0, 2, 2.5); got != -50000 {
		t.Fatalf("NPV without horizon: got %v", got)
	}
}

func TestNPVNonIncreasingInDiscountRate(t *testing.T) {
	prev := math.Inf(1)
	for d := 0.0; d <= 15; d += 0.25 {
		got := NPV(50000, 4000, 25, d, 2.5)
		if got > prev {
			t.Fatalf("NPV increased at discount %v: %v > %v", d, got, prev)
		}
		prev = got
	}
}

func TestROI(t *testing.T) {
	tests := []struct {
		name         string
		net, savings float64
		want         float64
	}{
		{"regular", 50000, 4000, 8},
		{"zero savings", 50000, 0, 0},
		{"fully subsidised", 0, 4000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ROI(tt.net, tt.savings); got != tt.want {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}

func TestLifetimeROI(t *testing.T) {
	total := TotalReturn(4000, 25, 0)
	if total != 100000 {
		t.Fatalf("total return: %v", total)
	}
	if got := LifetimeROI(50000, total); got != 100 {
		t.Fatalf("lifetime ROI: got %v want 100", got)
	}
}

func TestCashFlows(t *testing.T) {
	cf := CashFlows(1000, 100, 3, 10)
	if len(cf) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(cf))
	}
	if cf[0].Year != 0 || cf[0].CashFlowCHF != -1000 || cf[0].CumulativeCHF != -1000 {
		t.Fatalf("year 0: %+v", cf[0])
	}
	want := []float64{110, 121, 133.1}
	cum := -1000.0
	for i, w := range want {
		r := cf[i+1]
		cum += w
		if r.Year != i+1 || math.Abs(r.CashFlowCHF-w) > 1e-9 || math.Abs(r.CumulativeCHF-cum) > 1e-9 {
			t.Fatalf("year %d: %+v", i+1, r)
		}
	}
}
