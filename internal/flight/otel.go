package flight

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/san-kum/projsim/internal/flight"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

type instruments struct {
	launches     metric.Int64Counter
	landings     metric.Int64Counter
	substeps     metric.Int64Counter
	timeOfFlight metric.Float64Histogram
}

// newInstruments uses the global OTel meter (no-op if not configured).
func newInstruments() (*instruments, error) {
	m := meter()
	var (
		in  instruments
		err error
	)

	in.launches, err = m.Int64Counter(
		"flight.launches",
		metric.WithDescription("Total flights launched"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating launches counter: %w", err)
	}

	in.landings, err = m.Int64Counter(
		"flight.landings",
		metric.WithDescription("Total flights that reached the ground"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating landings counter: %w", err)
	}

	in.substeps, err = m.Int64Counter(
		"flight.substeps",
		metric.WithDescription("Integration sub-steps executed"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating substeps counter: %w", err)
	}

	in.timeOfFlight, err = m.Float64Histogram(
		"flight.time_of_flight",
		metric.WithDescription("Simulated time from launch to landing"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating time of flight histogram: %w", err)
	}

	return &in, nil
}
