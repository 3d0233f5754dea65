package domain

import (
	"context"
	"time"
)

// StepKind defines the category of a displayed step.
type StepKind string

const (
	StepInitial    StepKind = "initial"    // Raw state before normalization
	StepNormalize  StepKind = "normalize"  // One forced decay towards all red
	StepNormalized StepKind = "normalized" // State once normalization finished
	StepTransition StepKind = "transition" // One forward change of the cycle
)

// Step is one line of simulation output.
type Step struct {
	Kind        StepKind  `json:"kind"`
	Signals     Signals   `json:"signals"`
	ChangeUnits float64   `json:"change_units"`
	Seconds     int64     `json:"seconds"` // Simulated seconds since start
	At          time.Time `json:"at"`
}

// Summary describes a finished run.
type Summary struct {
	Transitions      int     `json:"transitions"`
	NormalizeSteps   int     `json:"normalize_steps"`
	TotalChanges     float64 `json:"total_changes"`
	ChangesCompleted float64 `json:"changes_completed"`
}

// LifecycleHooks defines callbacks for simulation observability.
// Every field is optional.
type LifecycleHooks struct {
	OnStep       func(context.Context, *Step)
	OnNormalize  func(ctx context.Context, from, to Signals)
	OnTransition func(ctx context.Context, from, to Signals)
	OnComplete   func(context.Context, *Summary)
}

// CombineHooks returns hooks that call every non-nil hook of each set, in order.
func CombineHooks(sets ...LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnStep: func(ctx context.Context, s *Step) {
			for _, h := range sets {
				if h.OnStep != nil {
					h.OnStep(ctx, s)
				}
			}
		},
		OnNormalize: func(ctx context.Context, from, to Signals) {
			for _, h := range sets {
				if h.OnNormalize != nil {
					h.OnNormalize(ctx, from, to)
				}
			}
		},
		OnTransition: func(ctx context.Context, from, to Signals) {
			for _, h := range sets {
				if h.OnTransition != nil {
					h.OnTransition(ctx, from, to)
				}
			}
		},
		OnComplete: func(ctx context.Context, s *Summary) {
			for _, h := range sets {
				if h.OnComplete != nil {
					h.OnComplete(ctx, s)
				}
			}
		},
	}
}
