package semaforo_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aretw0/semaforo"
	"github.com/aretw0/semaforo/pkg/domain"
)

// ExampleSimulator_Run shows the lines printed for a ten minute window.
func ExampleSimulator_Run() {
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	signals, _ := domain.ParseSignals("RRGG")

	sim, err := semaforo.New(domain.Config{
		Signals:  signals,
		Start:    start,
		End:      start.Add(10 * time.Minute),
		RedGreen: 300,
		Yellow:   30,
	}, semaforo.WithOutput(os.Stdout))
	if err != nil {
		log.Fatal(err)
	}

	if err := sim.Run(context.Background()); err != nil {
		log.Fatal(err)
	}
	// Output:
	// Initial State: RRGG
	// Normalised State: RRGG
	// 9:05:00 AM RRYY
	// 9:05:30 AM GGRR
}

// ExampleSimulate shows how to collect the steps of an invalid start state.
func ExampleSimulate() {
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	signals, _ := domain.ParseSignals("GYGR")

	res, err := semaforo.Simulate(context.Background(), domain.Config{
		Signals:  signals,
		Start:    start,
		End:      start,
		RedGreen: 300,
		Yellow:   30,
	})
	if err != nil {
		log.Fatal(err)
	}

	for _, step := range res.Steps {
		fmt.Println(step.Kind, step.Signals)
	}
	// Output:
	// initial GYGR
	// normalize YRYR
	// normalize RRRR
	// normalized RRRR
}
