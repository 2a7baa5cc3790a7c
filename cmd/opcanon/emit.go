package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/opcanon/internal/driver"
	"github.com/you-not-fish/opcanon/internal/encode"
)

type emitOptions struct {
	*rootOptions
	Output string
	Format string
}

var emitFormats = []string{"text", "msgpack"}

func newEmitCommand(rootOpts *rootOptions) *cobra.Command {
	opts := &emitOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "emit <module.yaml>",
		Short: "Canonicalize a module and write its op records",
		Long: `Canonicalize a module and write one record per canonical op call.
Functions that could not be processed contribute no records.`,
		Example: `  opcanon emit model.yaml
  opcanon emit -o model.ops --format msgpack model.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return emitModule(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "record format (text|msgpack)")
	return cmd
}

func emitModule(cmd *cobra.Command, opts *emitOptions, path string) error {
	var write func(w io.Writer, module string, recs []encode.Record) error
	switch opts.Format {
	case "text":
		write = encode.WriteText
	case "msgpack":
		write = encode.Write
	default:
		return commandError(fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, emitFormats), nil)
	}

	s, err := opts.load(cmd, path)
	if err != nil {
		return err
	}
	res, err := driver.Run(cmd.Context(), s.module, s.options(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}

	if err := writeOutput(cmd.OutOrStdout(), opts.Output, func(w io.Writer) error {
		return write(w, s.module.Name, res.Records())
	}); err != nil {
		return commandError("failed to write records", err)
	}
	s.log.Debug("records written", "count", len(res.Records()), "format", opts.Format)
	return opts.report(cmd.ErrOrStderr(), res)
}

// writeOutput runs write against path, or against stdout if path is
// empty or "-".
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) (err error) {
	if path == "" || path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
