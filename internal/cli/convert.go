package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/ccsbridge/internal/bridge"
	"github.com/roach88/ccsbridge/internal/ccs"
	"github.com/roach88/ccsbridge/internal/engine"
	"github.com/roach88/ccsbridge/internal/managed"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	Reverse     bool
	Source      string
	Target      string
	Coordinates string
	Accuracy    string

	// IDGenerator overrides the call ID generator (for testing).
	// If nil, the service default (UUIDv7) is used.
	IDGenerator engine.IDGenerator
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Run one conversion call through the boundary",
		Long: `Run one conversion call: translate the source and target parameters, the
input coordinates and the input accuracy, run the conversion engine, and
translate the results back to managed objects.

The file holds four named documents. The in-tree engine is the identity
converter, which accepts equal source and target parameters only.

When store.journal is enabled every crossing is journaled under the call ID.

Example:
  ccsbridge convert conversion.cue
  ccsbridge convert conversion.yaml --reverse --db ./ccsbridge.db`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Reverse, "reverse", false, "convert from target to source")
	cmd.Flags().StringVar(&opts.Source, "source", "source", "name of the source parameters document")
	cmd.Flags().StringVar(&opts.Target, "target", "target", "name of the target parameters document")
	cmd.Flags().StringVar(&opts.Coordinates, "coordinates", "coordinates", "name of the coordinates document")
	cmd.Flags().StringVar(&opts.Accuracy, "accuracy", "accuracy", "name of the accuracy document")

	return cmd
}

// convertOutput is the JSON payload of convert.
type convertOutput struct {
	CallID      string             `json:"call_id"`
	Direction   string             `json:"direction"`
	Coordinates map[string]any     `json:"coordinates"`
	Accuracy    map[string]any     `json:"accuracy"`
	Objects     []managed.Document `json:"objects"`
}

func runConvert(ctx context.Context, opts *ConvertOptions, path string, cmd *cobra.Command) error {
	if err := opts.prepare(cmd); err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := opts.formatter(cmd)

	src, err := openDocuments(path)
	if err != nil {
		return formatter.Fail("failed to load document", err)
	}

	rt := bridge.NewRuntime()
	objects := make(map[string]*managed.Object, 4)
	for _, name := range []string{opts.Source, opts.Target, opts.Coordinates, opts.Accuracy} {
		if _, ok := objects[name]; ok {
			continue
		}
		obj, err := src.Object(rt, name)
		if err != nil {
			return formatter.Fail(fmt.Sprintf("failed to load document %q", name), err)
		}
		objects[name] = obj
	}

	svcOpts := []engine.Option{
		engine.WithLogger(opts.Logger),
		engine.WithRecorder(opts.recorder()),
		engine.WithIDGenerator(opts.IDGenerator),
	}
	if opts.Config.Store.Journal {
		st, err := opts.openStore()
		if err != nil {
			return err
		}
		defer st.Close()
		svcOpts = append(svcOpts, engine.WithJournal(st))
	}

	svc, err := engine.NewService(rt, objects[opts.Source], objects[opts.Target], engine.Identity{}, svcOpts...)
	if err != nil {
		return formatter.Fail("failed to translate parameters", err)
	}

	convert := svc.ConvertSourceToTarget
	if opts.Reverse {
		convert = svc.ConvertTargetToSource
	}
	res, err := convert(ctx, objects[opts.Coordinates], objects[opts.Accuracy])
	if err != nil {
		formatter.VerboseLog("call %s failed", res.CallID)
		return formatter.Fail("conversion failed", err)
	}

	coords, err := ccs.Describe(res.NativeCoordinates)
	if err != nil {
		return formatter.Fail("describe failed", err)
	}
	acc, err := ccs.Describe(res.NativeAccuracy)
	if err != nil {
		return formatter.Fail("describe failed", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(convertOutput{
			CallID:      res.CallID,
			Direction:   string(res.Direction),
			Coordinates: jsonFields(coords),
			Accuracy:    jsonFields(acc),
			Objects:     []managed.Document{jsonDocument(res.Coordinates), jsonDocument(res.Accuracy)},
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "call %s (%s)\n", res.CallID, res.Direction)
	fmt.Fprintf(&b, "coordinates %s\n", res.Coordinates.Class().Name())
	writeDescribed(&b, "  ", coords, formatter.Precision)
	fmt.Fprintf(&b, "accuracy %s\n", res.Accuracy.Class().Name())
	writeDescribed(&b, "  ", acc, formatter.Precision)
	return formatter.Success(strings.TrimSuffix(b.String(), "\n"))
}
