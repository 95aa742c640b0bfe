package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix prefixes the environment variables that override flags,
// e.g. LPSOLVE_MAX_ITERATIONS for --max-iterations.
const envPrefix = "LPSOLVE"

// globalOpts is shared by all subcommands.
type globalOpts struct {
	vip    *viper.Viper
	logger *logrus.Logger
}

func newRootCommand() *cobra.Command {
	opts := &globalOpts{
		vip:    newViper(),
		logger: logrus.New(),
	}

	cmd := &cobra.Command{
		Use:   "lpsolve",
		Short: "Solve linear programs with the two-phase simplex method",
		Long: `lpsolve reads a linear program from a text, YAML or JSON file, solves it
with the two-phase tableau simplex method and reports the optimum together
with shadow prices, reduced costs and right-hand-side ranges.

Every flag can also be set through an environment variable prefixed with
LPSOLVE_, e.g. LPSOLVE_MAX_ITERATIONS=200.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.vip.BindPFlags(cmd.Flags()); err != nil {
				return err
			}

			level, err := logrus.ParseLevel(opts.vip.GetString("log-level"))
			if err != nil {
				return errors.Wrap(err, "--log-level")
			}
			opts.logger.SetLevel(level)
			opts.logger.SetOutput(cmd.ErrOrStderr())
			opts.logger.WithField("flags", flagNames(cmd.Flags())).Debug("flags bound to environment")
			return nil
		},
	}
	cmd.PersistentFlags().String("log-level", "warning", "Log level (debug, info, warning, error)")

	cmd.AddCommand(
		newSolveCommand(opts),
		newConvertCommand(opts),
	)
	return cmd
}

func newViper() *viper.Viper {
	vip := viper.New()
	vip.SetEnvPrefix(envPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()
	return vip
}

// flagNames lists the flags of a flag set, for debug logging.
func flagNames(fs *pflag.FlagSet) []string {
	var names []string
	fs.VisitAll(func(f *pflag.Flag) {
		names = append(names, f.Name)
	})
	return names
}
