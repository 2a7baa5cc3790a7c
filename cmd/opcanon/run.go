package main

import (
	"github.com/spf13/cobra"

	"github.com/you-not-fish/opcanon/internal/driver"
	"github.com/you-not-fish/opcanon/internal/ssa"
)

type runOptions struct {
	*rootOptions
	EmitSSA bool
	Dump    bool
	DumpFn  string
}

func newRunCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &runOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <module.yaml>",
		Short: "Canonicalize every op call and report diagnostics",
		Example: `  opcanon run model.yaml
  opcanon run --emit-ssa model.yaml
  opcanon run --dump --dump-func main model.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModule(cmd, opts, args[0])
		},
	}

	cmd.Flags().BoolVar(&opts.EmitSSA, "emit-ssa", false, "print the rewritten module")
	cmd.Flags().BoolVar(&opts.Dump, "dump", false, "dump SSA before and after each pass")
	cmd.Flags().StringVar(&opts.DumpFn, "dump-func", "", "only dump this function")
	return cmd
}

func runModule(cmd *cobra.Command, opts *runOptions, path string) error {
	s, err := opts.load(cmd, path)
	if err != nil {
		return err
	}
	if opts.Dump {
		s.cfg.Pass.DumpIntermediates = true
	}
	if opts.DumpFn != "" {
		s.cfg.Pass.DumpFunc = opts.DumpFn
	}

	res, err := driver.Run(cmd.Context(), s.module, s.options(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	if opts.EmitSSA {
		ssa.FprintModule(cmd.OutOrStdout(), s.module)
	}
	return opts.report(cmd.ErrOrStderr(), res)
}
