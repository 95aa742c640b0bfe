package simplex

// Phase identifies the stage of the two-phase method.
type Phase int

const (
	Phase1 Phase = iota + 1
	Phase2
)

func (p Phase) String() string {
	switch p {
	case Phase1:
		return "phase1"
	case Phase2:
		return "phase2"
	}
	return "unknown"
}

// Iteration describes one step of the solver. Number 0 is the initial tableau
// of a phase and carries Entering and Leaving of -1.
type Iteration struct {
	Phase  Phase
	Number int

	Entering int
	Leaving  int

	// Tableau is the live tableau. Observers that keep it must Clone it.
	Tableau *Tableau
}

// Observer receives every iteration of a solve.
type Observer interface {
	ObserveIteration(Iteration)
}

// ResultObserver is implemented by observers that also want the outcome of a
// solve once it reached a terminal state.
type ResultObserver interface {
	ObserveResult(*Result)
}

// NopObserver ignores all iterations.
type NopObserver struct{}

func (NopObserver) ObserveIteration(Iteration) {}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Iteration)

func (f ObserverFunc) ObserveIteration(it Iteration) { f(it) }

// Recorder keeps a snapshot of every iteration it observes.
type Recorder struct {
	Iterations []Iteration
}

func (r *Recorder) ObserveIteration(it Iteration) {
	it.Tableau = it.Tableau.Clone()
	r.Iterations = append(r.Iterations, it)
}

// Pivots returns the recorded iterations that performed a pivot in phase p.
func (r *Recorder) Pivots(p Phase) []Iteration {
	var out []Iteration
	for _, it := range r.Iterations {
		if it.Phase == p && it.Number > 0 {
			out = append(out, it)
		}
	}
	return out
}

type multiObserver []Observer

func (m multiObserver) ObserveIteration(it Iteration) {
	for _, o := range m {
		o.ObserveIteration(it)
	}
}

func (m multiObserver) ObserveResult(r *Result) {
	for _, o := range m {
		if ro, ok := o.(ResultObserver); ok {
			ro.ObserveResult(r)
		}
	}
}

// Observers fans every iteration out to all given observers, in order.
func Observers(obs ...Observer) Observer {
	out := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}
