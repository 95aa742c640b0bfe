package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	simplex "github.com/jjhbw/GoSimplex"
	"github.com/jjhbw/GoSimplex/problemfile"
)

type solveOpts struct {
	*globalOpts

	maxIterations int
	trace         bool
	verify        bool
	verifyTimeout time.Duration
	output        string
	metricsFile   string
}

func newSolveCommand(global *globalOpts) *cobra.Command {
	opts := &solveOpts{globalOpts: global}

	cmd := &cobra.Command{
		Use:   "solve FILE",
		Short: "Solve a linear program and print the optimum and a sensitivity report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.maxIterations = opts.vip.GetInt("max-iterations")
			opts.trace = opts.vip.GetBool("trace")
			opts.verify = opts.vip.GetBool("verify")
			opts.verifyTimeout = opts.vip.GetDuration("verify-timeout")
			opts.output = opts.vip.GetString("output")
			opts.metricsFile = opts.vip.GetString("metrics-file")
			return opts.run(cmd.OutOrStdout(), args[0])
		},
	}
	cmd.Flags().Int("max-iterations", simplex.DefaultMaxIterations, "Maximum number of pivots per phase")
	cmd.Flags().Bool("trace", false, "Log every iteration (the tableau itself at debug level)")
	cmd.Flags().Bool("verify", false, "Cross-check the optimum with gonum's simplex implementation")
	cmd.Flags().Duration("verify-timeout", 10*time.Second, "Give up on the cross-check after this long")
	cmd.Flags().StringP("output", "o", "text", "Output format: text, yaml or json")
	cmd.Flags().String("metrics-file", "", "Write solver metrics in the prometheus text format to this file")

	return cmd
}

func (opts *solveOpts) run(out io.Writer, path string) error {
	switch opts.output {
	case "text", "yaml", "json":
	default:
		return errors.Errorf("unknown output format %q", opts.output)
	}

	log := opts.logger.WithField("file", path)
	log.Info("loading problem")
	p, err := problemfile.Load(path)
	if err != nil {
		return err
	}

	var observers []simplex.Observer
	if opts.trace {
		observers = append(observers, simplex.NewLogObserver(opts.logger))
	}
	var registry *prometheus.Registry
	if opts.metricsFile != "" {
		registry = prometheus.NewRegistry()
		m, err := simplex.NewMetricsObserver(registry)
		if err != nil {
			return errors.Wrap(err, "registering metrics")
		}
		observers = append(observers, m)
	}

	res, solveErr := simplex.Solve(p,
		simplex.WithMaxIterations(opts.maxIterations),
		simplex.WithObserver(simplex.Observers(observers...)),
	)
	if res == nil {
		return solveErr
	}

	if registry != nil {
		if err := prometheus.WriteToTextfile(opts.metricsFile, registry); err != nil {
			return errors.Wrapf(err, "writing metrics to %s", opts.metricsFile)
		}
		log.WithField("metricsFile", opts.metricsFile).Info("wrote metrics")
	}

	rep, err := newReport(p, res)
	if err != nil {
		return err
	}
	if opts.verify && res.IsOptimal() {
		rep.CrossCheck = opts.crossCheck(res)
	}

	if err := writeReport(out, p, rep, opts.output); err != nil {
		return err
	}

	// non-convergence is a failure, infeasible and unbounded are answers
	return solveErr
}

// crossCheck verifies an optimal result and names the outcome for the report.
func (opts *solveOpts) crossCheck(res *simplex.Result) string {
	ctx, cancel := context.WithTimeout(context.Background(), opts.verifyTimeout)
	defer cancel()

	err := res.Verify(ctx, 1e-6)
	switch {
	case err == nil:
		return crossCheckAgrees
	case errors.Is(err, simplex.ErrInconclusive):
		opts.logger.WithError(err).Info("cross-check inconclusive")
		return crossCheckInconclusive
	default:
		opts.logger.WithError(err).Warn("cross-check disagrees")
		return crossCheckDisagrees
	}
}

func writeReport(out io.Writer, p simplex.Problem, rep *report, format string) error {
	switch format {
	case "yaml":
		data, err := yaml.Marshal(rep)
		if err != nil {
			return errors.Wrap(err, "encoding report")
		}
		_, err = out.Write(data)
		return err
	case "json":
		data, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			return errors.Wrap(err, "encoding report")
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
	return printReport(out, p, rep)
}
