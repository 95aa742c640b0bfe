package simplex

import (
	"github.com/sirupsen/logrus"
)

// LogObserver writes one log entry per iteration. The tableau itself is only
// rendered when the logger is at debug level.
type LogObserver struct {
	Logger *logrus.Logger
}

// NewLogObserver returns an observer logging to logger, or to the logrus
// standard logger when logger is nil.
func NewLogObserver(logger *logrus.Logger) *LogObserver {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogObserver{Logger: logger}
}

func (o *LogObserver) ObserveIteration(it Iteration) {
	entry := o.Logger.WithFields(logrus.Fields{
		"phase":     it.Phase.String(),
		"iteration": it.Number,
	})

	if it.Number == 0 {
		entry.Info("initial tableau")
	} else {
		entry.WithFields(logrus.Fields{
			"entering": it.Entering,
			"leaving":  it.Leaving,
		}).Info("pivot")
	}

	if o.Logger.IsLevelEnabled(logrus.DebugLevel) {
		entry.Debugf("tableau:\n%v", it.Tableau)
	}
}

func (o *LogObserver) ObserveResult(r *Result) {
	entry := o.Logger.WithFields(logrus.Fields{
		"status":            string(r.Status),
		"phase1_iterations": r.Phase1Iterations,
		"phase2_iterations": r.Phase2Iterations,
	})
	if sol, err := r.Solution(); err == nil {
		entry = entry.WithField("objective", sol.Objective)
	}
	entry.Info("solve finished")
}
