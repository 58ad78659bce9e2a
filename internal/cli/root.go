// Package cli implements the ccsbridge command-line interface.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/ccsbridge/internal/config"
	"github.com/roach88/ccsbridge/internal/engine"
	"github.com/roach88/ccsbridge/internal/metrics"
	"github.com/roach88/ccsbridge/internal/store"
)

// ValidFormats lists the allowed output formats.
var ValidFormats = []string{"text", "json"}

// RootOptions holds global flags and the state built from them.
type RootOptions struct {
	Verbose    bool
	Format     string
	ConfigPath string
	DBPath     string

	// Populated by prepare.
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

// NewRootCommand creates the root cobra command with all subcommands.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "ccsbridge",
		Short: "ccsbridge - GEOTRANS coordinate-system boundary translator",
		Long: `ccsbridge translates GEOTRANS coordinate-system values between managed
objects and native values.

Managed objects are read from CUE, YAML or JSON documents. Every parameters,
coordinates and accuracy class of the GEOTRANS catalogue is preregistered;
documents may declare further subclasses.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.prepare(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.writeMetrics(cmd.ErrOrStderr())
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ./ccsbridge.yaml if present)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "SQLite store path (overrides store.path)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "enable verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")

	cmd.AddCommand(NewTranslateCommand(opts))
	cmd.AddCommand(NewRoundtripCommand(opts))
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewClassesCommand(opts))
	cmd.AddCommand(NewEPSGCommand(opts))
	cmd.AddCommand(NewJournalCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// prepare loads configuration and builds the logger and metrics. It runs
// once per process; subcommands call it too so they work when executed
// without the root command.
func (o *RootOptions) prepare(cmd *cobra.Command) error {
	if o.Config != nil {
		return nil
	}

	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if o.DBPath != "" {
		cfg.Store.Path = o.DBPath
	}

	formatFlag := cmd.Flags().Lookup("format")
	if o.Format == "" || (formatFlag != nil && !formatFlag.Changed) {
		o.Format = cfg.Output.Format
	}
	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError,
			fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.Logger = newLogger(cmd.ErrOrStderr(), cfg.Log.Format, level)

	if cfg.Metrics.Enabled {
		o.Metrics = metrics.New()
	}
	o.Config = cfg
	return nil
}

func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	handlerOpts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// formatter returns an OutputFormatter bound to the command's writers.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	f := &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   o.Verbose,
		Precision: 6,
	}
	if o.Config != nil {
		f.Precision = o.Config.Output.Precision
	}
	return f
}

// openStore opens the configured SQLite store.
func (o *RootOptions) openStore() (*store.Store, error) {
	st, err := store.Open(o.Config.Store.Path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open store", err)
	}
	o.Logger.Debug("store opened", "path", o.Config.Store.Path)
	return st, nil
}

// recorder returns the metrics recorder, or nil when metrics are disabled.
func (o *RootOptions) recorder() engine.Recorder {
	if o.Metrics == nil {
		return nil
	}
	return o.Metrics
}

func (o *RootOptions) writeMetrics(w io.Writer) error {
	if o.Metrics == nil {
		return nil
	}
	return o.Metrics.WriteText(w)
}

func isValidFormat(format string) bool {
	for _, valid := range ValidFormats {
		if format == valid {
			return true
		}
	}
	return false
}
