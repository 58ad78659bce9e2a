package cli

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/cobra"

	"github.com/roach88/ccsbridge/internal/bridge"
	"github.com/roach88/ccsbridge/internal/ccs"
	"github.com/roach88/ccsbridge/internal/cuesource"
	"github.com/roach88/ccsbridge/internal/managed"
)

// RoundtripOptions holds flags for the roundtrip command.
type RoundtripOptions struct {
	*RootOptions
	Name string
	As   string
}

// NewRoundtripCommand creates the roundtrip command.
func NewRoundtripCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RoundtripOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "roundtrip <file>",
		Short: "Translate a managed object in, back out, and in again",
		Long: `Translate a managed object to its native value, build a fresh managed
object from that value, and translate the rebuilt object once more.

The command fails unless both native values are equal. The rebuilt object
is printed as CUE (text) or as a document (json).

Example:
  ccsbridge roundtrip accuracy.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoundtrip(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "document name within the file")
	cmd.Flags().StringVar(&opts.As, "as", "", "value kind (parameters|coordinates|accuracy)")

	return cmd
}

// roundtripOutput is the JSON payload of roundtrip.
type roundtripOutput struct {
	Inbound  string           `json:"inbound"`
	Outbound string           `json:"outbound"`
	Value    map[string]any   `json:"value"`
	Rebuilt  managed.Document `json:"rebuilt"`
	Lossless bool             `json:"lossless"`
}

func runRoundtrip(opts *RoundtripOptions, path string, cmd *cobra.Command) error {
	if err := opts.prepare(cmd); err != nil {
		return err
	}
	formatter := opts.formatter(cmd)

	rt := bridge.NewRuntime()
	obj, err := loadObject(rt, path, opts.Name)
	if err != nil {
		return formatter.Fail("failed to load document", err)
	}

	inOp, first, err := opts.fromManaged(rt, obj, opts.As)
	if err != nil {
		return formatter.Fail("translation failed", err)
	}
	outOp, rebuilt, err := opts.toManaged(rt, first)
	if err != nil {
		return formatter.Fail("translation failed", err)
	}
	// The rebuilt object carries a catalogue class, so the kind is inferred.
	_, second, err := opts.fromManaged(rt, rebuilt, "")
	if err != nil {
		return formatter.Fail("translation failed", err)
	}

	desc, err := ccs.Describe(first)
	if err != nil {
		return formatter.Fail("describe failed", err)
	}
	lossless := cmp.Equal(first, second, cmpopts.EquateNaNs())

	if !lossless {
		secondDesc, _ := ccs.Describe(second)
		_ = formatter.Error(ErrCodeLossy, "round trip changed the value", map[string]any{
			"first":  jsonFields(desc),
			"second": jsonFields(secondDesc),
		})
		return NewExitError(ExitFailure, "round trip changed the value")
	}

	if formatter.Format == "json" {
		return formatter.Success(roundtripOutput{
			Inbound:  string(inOp),
			Outbound: string(outOp),
			Value:    jsonFields(desc),
			Rebuilt:  jsonDocument(rebuilt),
			Lossless: true,
		})
	}

	src, err := cuesource.Format(rebuilt)
	if err != nil {
		return formatter.Fail("format failed", err)
	}
	return formatter.Success(fmt.Sprintf("%s -> %s: lossless\n%s\n%s",
		inOp, outOp, describedText(desc, formatter.Precision), src))
}
