package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/ccsbridge/internal/ccs"
	"github.com/roach88/ccsbridge/internal/epsg"
)

// NewEPSGCommand creates the epsg command and its subcommands.
func NewEPSGCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "epsg",
		Short: "Manage the EPSG code registry",
		Long: `Import EPSG code files into the store and look codes up.

EPSG files are CSV rows of the form EPSG,<code>,<key>,<value>,... with an
optional Authority header row.`,
	}

	cmd.AddCommand(newEPSGImportCommand(rootOpts))
	cmd.AddCommand(newEPSGLookupCommand(rootOpts))

	return cmd
}

func newEPSGImportCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import an EPSG code file",
		Long: `Read an EPSG code file and upsert its codes into the store. Rows that
cannot be read are reported as warnings and skipped.

Example:
  ccsbridge epsg import epsg.csv --db ./ccsbridge.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEPSGImport(cmd.Context(), opts, args[0], cmd)
		},
	}
}

// importOutput is the JSON payload of epsg import.
type importOutput struct {
	Imported int      `json:"imported"`
	Total    int      `json:"total"`
	Warnings []string `json:"warnings,omitempty"`
}

func runEPSGImport(ctx context.Context, opts *RootOptions, path string, cmd *cobra.Command) error {
	if err := opts.prepare(cmd); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)

	result, err := epsg.ReadFile(path)
	if err != nil {
		return formatter.Fail("failed to read EPSG file", err)
	}
	for _, w := range result.Warnings {
		opts.Logger.Warn("epsg row skipped", "file", path, "warning", w)
	}

	st, err := opts.openStore()
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return err
	}
	defer st.Close()

	n, err := st.ImportEPSG(ctx, result.Entries)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "import failed", err)
	}
	if opts.Metrics != nil {
		opts.Metrics.EPSGImported.Add(float64(n))
	}
	total, err := st.CountEPSG(ctx)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "import failed", err)
	}

	opts.Logger.Info("epsg imported", "file", path, "codes", n, "warnings", len(result.Warnings))

	if formatter.Format == "json" {
		return formatter.Success(importOutput{Imported: n, Total: total, Warnings: result.Warnings})
	}
	msg := fmt.Sprintf("Imported %d EPSG codes (%d in registry, %d warnings)", n, total, len(result.Warnings))
	for _, w := range result.Warnings {
		msg += "\n  warning: " + w
	}
	return formatter.Success(msg)
}

func newEPSGLookupCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <code>",
		Short: "Show the attributes of an EPSG code",
		Long: `Look an EPSG code up in the store and print its attributes and, when
one of them names a coordinate system, its coordinate type.

Example:
  ccsbridge epsg lookup 4326`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEPSGLookup(cmd.Context(), opts, args[0], cmd)
		},
	}
}

// lookupOutput is the JSON payload of epsg lookup.
type lookupOutput struct {
	Code           string            `json:"code"`
	Attributes     map[string]string `json:"attributes"`
	CoordinateType string            `json:"coordinate_type,omitempty"`
}

func runEPSGLookup(ctx context.Context, opts *RootOptions, code string, cmd *cobra.Command) error {
	if err := opts.prepare(cmd); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)

	st, err := opts.openStore()
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return err
	}
	defer st.Close()

	entry, ok, err := st.LookupEPSG(ctx, code)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "lookup failed", err)
	}
	if !ok {
		msg := fmt.Sprintf("EPSG code %s not found", code)
		_ = formatter.Error(ErrCodeNotFound, msg, nil)
		return NewExitError(ExitFailure, msg)
	}

	out := lookupOutput{Code: entry.Code, Attributes: entry.Attributes}
	if ct, ok := entry.CoordinateType(); ok {
		out.CoordinateType = ct.String()
	}

	if formatter.Format == "json" {
		return formatter.Success(out)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s:%s", epsg.Authority, out.Code)
	if out.CoordinateType != "" {
		fmt.Fprintf(&b, " (%s)", out.CoordinateType)
	}
	for _, k := range ccs.SortedKeys(out.Attributes) {
		fmt.Fprintf(&b, "\n  %s: %s", k, out.Attributes[k])
	}
	return formatter.Success(b.String())
}
