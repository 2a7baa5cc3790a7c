package main

import (
	"github.com/spf13/cobra"

	"github.com/you-not-fish/opcanon/internal/driver"
	"github.com/you-not-fish/opcanon/internal/encode"
)

func newDecodeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <module.yaml>",
		Short: "List the op calls of a module as written, without rewriting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.load(cmd, args[0])
			if err != nil {
				return err
			}
			res, err := driver.Decode(cmd.Context(), s.module, s.options(nil))
			if err != nil {
				return err
			}
			if err := encode.WriteText(cmd.OutOrStdout(), s.module.Name, res.Records()); err != nil {
				return err
			}
			return opts.report(cmd.ErrOrStderr(), res)
		},
	}
}
