/*
Package semaforo simulates a four-way traffic intersection whose signals cycle
through Red, Yellow and Green over a bounded time window.

The North and South signals always mirror each other, as do East and West.
Only five states are safe to run: RRRR, RRGG, GGRR, RRYY and YYRR. Any other
starting state is first decayed to all red (greens turn yellow, everything
else turns red) and the regular cycle starts from there:

	RRGG -> RRYY -> GGRR -> YYRR -> RRGG ...

Time is simulated, not waited for. A red/green phase counts as one change
unit and a yellow phase as yellow/redGreen units; the run ends when the
completed units exceed the units that fit in the window.

# Usage

	package main

	import (
		"context"
		"log"
		"time"

		"github.com/aretw0/semaforo"
		"github.com/aretw0/semaforo/pkg/domain"
	)

	func main() {
		cfg := domain.DefaultConfig(time.Now())
		cfg.Signals, _ = domain.ParseSignals("GGRR")

		sim, err := semaforo.New(cfg)
		if err != nil {
			log.Fatal(err)
		}

		// Prints "Initial State: GGRR", "Normalised State: GGRR" and then
		// one "<time> <state>" line per transition.
		if err := sim.Run(context.Background()); err != nil {
			log.Fatal(err)
		}
	}
*/
package semaforo
