/*
Package domain contains the core domain models of the semaforo simulator.

It defines the signal colours, the four-way intersection state and the rules
that decide which states are safe to run. This package is kept pure and free
of external dependencies like I/O or clocks, following Hexagonal Architecture
principles.

# Key Entities

  - Color: A single signal colour (R, Y or G).
  - Signals: The colours of the North, South, East and West signals, in that order.
  - Phase: A Signals value known to be one of the valid states.
  - Config: The parameters of one simulation run.
  - Step: A structural representation of one displayed line of the simulation.
*/
package domain
