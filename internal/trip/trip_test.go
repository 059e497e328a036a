package trip

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/iwvelando/trip-forecast/internal/faretable"
	"github.com/iwvelando/trip-forecast/internal/route"
)

func floatPtr(v float64) *float64 {
	return &v
}

func testEngine(t *testing.T, records ...faretable.FareRecord) *route.Engine {
	t.Helper()
	engine, err := route.NewEngine(faretable.New(records))
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine
}

func TestComputeOneWay(t *testing.T) {
	engine := testEngine(t,
		faretable.FareRecord{OriginCity: "Austin", DestinationCity: "Denver", OriginAirport: "AUS", DestinationAirport: "DEN", LowFare: 200.00},
	)

	summary, err := Compute(zap.NewNop(), engine, Request{
		Source:      "austin",
		Destination: "denver",
		Nights:      3,
		NightlyRate: 100.00,
	})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if summary.FlightCost != 200.00 {
		t.Errorf("FlightCost = %v, expected 200.00", summary.FlightCost)
	}
	if summary.LodgingCost != 300.00 {
		t.Errorf("LodgingCost = %v, expected 300.00", summary.LodgingCost)
	}
	if summary.GrandTotal != 500.00 {
		t.Errorf("GrandTotal = %v, expected 500.00", summary.GrandTotal)
	}
	if summary.ReturnRequested || summary.ReturnUnavailable {
		t.Errorf("one-way quote should not carry return flags: %+v", summary)
	}
	if summary.Budget != nil {
		t.Errorf("Budget verdict should be absent when no budget supplied")
	}
}

func TestComputeRoundTrip(t *testing.T) {
	engine := testEngine(t,
		faretable.FareRecord{OriginCity: "Austin", DestinationCity: "Denver", OriginAirport: "AUS", DestinationAirport: "DEN", LowFare: 200.00},
		faretable.FareRecord{OriginCity: "Denver", DestinationCity: "Austin", OriginAirport: "DEN", DestinationAirport: "AUS", LowFare: 180.00},
	)

	summary, err := Compute(zap.NewNop(), engine, Request{
		Source:      "austin",
		Destination: "denver",
		Nights:      2,
		NightlyRate: 50.00,
		RoundTrip:   true,
	})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if summary.Return == nil {
		t.Fatal("expected return leg on round trip")
	}
	if summary.Return.Fare != 180.00 {
		t.Errorf("return fare = %v, expected 180.00", summary.Return.Fare)
	}
	if summary.FlightCost != 380.00 {
		t.Errorf("FlightCost = %v, expected 380.00", summary.FlightCost)
	}
	if summary.GrandTotal != 480.00 {
		t.Errorf("GrandTotal = %v, expected 480.00", summary.GrandTotal)
	}
	if summary.ReturnUnavailable {
		t.Error("ReturnUnavailable should be false when the return leg exists")
	}
}

func TestComputeReturnDowngrade(t *testing.T) {
	// Outbound exists, return does not: the quote degrades to one-way with
	// a warning rather than failing.
	engine := testEngine(t,
		faretable.FareRecord{OriginCity: "Austin", DestinationCity: "Denver", OriginAirport: "AUS", DestinationAirport: "DEN", LowFare: 200.00},
	)

	summary, err := Compute(zap.NewNop(), engine, Request{
		Source:      "austin",
		Destination: "denver",
		Nights:      3,
		NightlyRate: 100.00,
		RoundTrip:   true,
	})
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}

	if !summary.ReturnUnavailable {
		t.Error("ReturnUnavailable flag not set")
	}
	if summary.Return != nil {
		t.Error("Return leg should be absent after downgrade")
	}
	if summary.FlightCost != 200.00 {
		t.Errorf("FlightCost = %v, expected one-way 200.00", summary.FlightCost)
	}
	if summary.GrandTotal != 500.00 {
		t.Errorf("GrandTotal = %v, expected 500.00", summary.GrandTotal)
	}
	if len(summary.Warnings) != 1 || !strings.Contains(summary.Warnings[0], "one-way") {
		t.Errorf("expected a one-way downgrade warning, got %v", summary.Warnings)
	}
}

func TestComputeNoOutboundRoute(t *testing.T) {
	engine := testEngine(t,
		faretable.FareRecord{OriginCity: "Houston", DestinationCity: "Dallas", OriginAirport: "HOU", DestinationAirport: "DAL", LowFare: 40.00},
	)

	_, err := Compute(zap.NewNop(), engine, Request{
		Source:      "austin",
		Destination: "denver",
		Nights:      3,
		NightlyRate: 100.00,
	})
	if err != ErrNoOutboundRoute {
		t.Fatalf("Compute() error = %v, expected ErrNoOutboundRoute", err)
	}
}

func TestComputeBudgetVerdicts(t *testing.T) {
	engine := testEngine(t,
		faretable.FareRecord{OriginCity: "Austin", DestinationCity: "Denver", OriginAirport: "AUS", DestinationAirport: "DEN", LowFare: 200.00},
	)

	tests := []struct {
		name         string
		budget       float64
		withinBudget bool
		delta        float64
	}{
		{
			name:         "Over budget reports overage",
			budget:       400.00,
			withinBudget: false,
			delta:        100.00,
		},
		{
			name:         "Within budget reports headroom",
			budget:       600.00,
			withinBudget: true,
			delta:        100.00,
		},
		{
			name:         "Exact budget counts as within",
			budget:       500.00,
			withinBudget: true,
			delta:        0.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := Compute(zap.NewNop(), engine, Request{
				Source:      "austin",
				Destination: "denver",
				Nights:      3,
				NightlyRate: 100.00,
				Budget:      floatPtr(tt.budget),
			})
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if summary.Budget == nil {
				t.Fatal("expected a budget verdict")
			}
			if summary.Budget.WithinBudget != tt.withinBudget {
				t.Errorf("WithinBudget = %v, expected %v", summary.Budget.WithinBudget, tt.withinBudget)
			}
			if summary.Budget.Delta != tt.delta {
				t.Errorf("Delta = %v, expected %v", summary.Budget.Delta, tt.delta)
			}
		})
	}
}

func TestConnectionLabel(t *testing.T) {
	tests := []struct {
		name     string
		result   *route.Result
		expected string
	}{
		{"Nil result", nil, "Direct"},
		{"Direct route", &route.Result{Found: true}, "Direct"},
		{"One stop", &route.Result{Found: true, Stops: []string{"chicago"}}, "chicago"},
		{"Two stops", &route.Result{Found: true, Stops: []string{"houston", "dallas"}}, "houston -> dallas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConnectionLabel(tt.result); got != tt.expected {
				t.Errorf("ConnectionLabel() = %q, expected %q", got, tt.expected)
			}
		})
	}
}
