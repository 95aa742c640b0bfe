package main

import (
	"github.com/spf13/cobra"

	"github.com/jjhbw/GoSimplex/problemfile"
)

func newConvertCommand(global *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert FILE",
		Short: "Re-encode a problem file as text, YAML or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := problemfile.ParseFormat(global.vip.GetString("to"))
			if err != nil {
				return err
			}

			global.logger.WithField("file", args[0]).Info("loading problem")
			p, err := problemfile.Load(args[0])
			if err != nil {
				return err
			}
			return problemfile.Write(cmd.OutOrStdout(), p, format)
		},
	}
	cmd.Flags().String("to", "yaml", "Target format: text, yaml or json")

	return cmd
}
