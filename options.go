package simplex

const (
	// DefaultMaxIterations caps the number of pivots per phase.
	DefaultMaxIterations = 100

	// DefaultOptimalityTol is the tolerance for reduced costs and pivot candidates.
	DefaultOptimalityTol = 1e-8

	// DefaultFeasibilityTol bounds the phase 1 objective of a feasible problem.
	DefaultFeasibilityTol = 1e-6
)

type settings struct {
	maxIterations  int
	optimalityTol  float64
	feasibilityTol float64
	observer       Observer
}

func defaultSettings() settings {
	return settings{
		maxIterations:  DefaultMaxIterations,
		optimalityTol:  DefaultOptimalityTol,
		feasibilityTol: DefaultFeasibilityTol,
		observer:       NopObserver{},
	}
}

// Option configures a solve.
type Option func(*settings)

// WithMaxIterations sets the pivot cap per phase. Values below 1 are ignored.
func WithMaxIterations(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxIterations = n
		}
	}
}

// WithOptimalityTol sets ε, used for the entering and leaving rules.
func WithOptimalityTol(eps float64) Option {
	return func(s *settings) {
		if eps >= 0 {
			s.optimalityTol = eps
		}
	}
}

// WithFeasibilityTol sets the largest phase 1 objective still considered feasible.
func WithFeasibilityTol(tol float64) Option {
	return func(s *settings) {
		if tol >= 0 {
			s.feasibilityTol = tol
		}
	}
}

// WithObserver attaches an observer that is called for every iteration.
// Passing several observers requires Observers(...).
func WithObserver(o Observer) Option {
	return func(s *settings) {
		if o != nil {
			s.observer = o
		}
	}
}
