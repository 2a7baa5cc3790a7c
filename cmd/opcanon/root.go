package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/opcanon/internal/config"
	"github.com/you-not-fish/opcanon/internal/diag"
	"github.com/you-not-fish/opcanon/internal/driver"
	"github.com/you-not-fish/opcanon/internal/irfile"
	"github.com/you-not-fish/opcanon/internal/ssa"
)

// rootOptions holds the persistent flags.
type rootOptions struct {
	ConfigPath     string
	Color          string
	Verbose        bool
	MaxDiagnostics int
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "opcanon",
		Short: "Extract and canonicalize graph op calls",
		Long: `opcanon decodes the op calls of an SSA module, checks that their
attributes are compile-time constants and rewrites them into the
canonical form the graph builder consumes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.Color {
			case "auto", "on", "off":
				return nil
			}
			return commandError(fmt.Sprintf("invalid color mode %q (want auto, on or off)", opts.Color), nil)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "settings file (default: nearest "+config.FileName+")")
	cmd.PersistentFlags().StringVar(&opts.Color, "color", "auto", "colorize diagnostics (auto|on|off)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log debug events to stderr")
	cmd.PersistentFlags().IntVar(&opts.MaxDiagnostics, "max-diagnostics", 100, "maximum diagnostics kept per function (0 for no limit)")

	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newDecodeCommand(opts))
	cmd.AddCommand(newEmitCommand(opts))
	cmd.AddCommand(newVersionCommand())
	return cmd
}

// session is the state shared by the commands that process a module.
type session struct {
	cfg    config.Config
	log    *slog.Logger
	module *ssa.Module
}

// load reads the settings and the module at path. Settings come from
// --config, else from the nearest settings file above the module, else
// from the defaults; flags given explicitly override them.
func (o *rootOptions) load(cmd *cobra.Command, path string) (*session, error) {
	cfg := config.Default()
	cfgPath := o.ConfigPath
	if cfgPath == "" {
		found, ok, err := config.Find(filepath.Dir(path))
		if err != nil {
			return nil, commandError("failed to look up settings", err)
		}
		if ok {
			cfgPath = found
		}
	}
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return nil, commandError("invalid settings", err)
		}
		cfg = loaded
	}
	if cmd.Flags().Changed("max-diagnostics") {
		cfg.Diagnostics.Max = o.MaxDiagnostics
	}

	level := slog.LevelWarn
	if o.Verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if cfgPath != "" {
		log.Debug("settings loaded", "path", cfgPath)
	}

	m, err := irfile.Load(path)
	if err != nil {
		return nil, commandError("failed to load module", err)
	}
	log.Debug("module loaded", "module", m.Name, "funcs", len(m.Funcs), "globals", len(m.Globals))
	return &session{cfg: cfg, log: log, module: m}, nil
}

func (s *session) options(dumpOut io.Writer) driver.Options {
	return driver.Options{Config: s.cfg, Logger: s.log, DumpOut: dumpOut}
}

// report prints the diagnostics of res to w and turns errors into the
// command's failure.
func (o *rootOptions) report(w io.Writer, res *driver.Result) error {
	f, _ := w.(*os.File)
	useColor, err := diag.ColorEnabled(o.Color, f)
	if err != nil {
		return commandError("invalid flags", err)
	}
	diag.Pretty(w, res.Diagnostics.Items(), diag.PrettyOpts{Color: useColor})
	if n := res.Diagnostics.Dropped(); n > 0 {
		fmt.Fprintf(w, "%d more diagnostics not shown\n", n)
	}

	if err := res.Err(); err != nil {
		return &exitError{code: exitFailure, msg: "some functions were not processed", err: err}
	}
	if res.Diagnostics.HasFatal() {
		return &exitError{code: exitFailure, msg: "malformed op calls"}
	}
	if res.Diagnostics.HasErrors() {
		return &exitError{code: exitFailure, msg: "invalid op calls"}
	}
	return nil
}
