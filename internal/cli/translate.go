package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/ccsbridge/internal/bridge"
	"github.com/roach88/ccsbridge/internal/ccs"
	"github.com/roach88/ccsbridge/internal/managed"
)

// TranslateOptions holds flags for the translate command.
type TranslateOptions struct {
	*RootOptions
	Name string
	As   string
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "translate <file>",
		Short: "Translate a managed object to its native value",
		Long: `Read a managed object from a document file and translate it to its
native coordinate-system value.

The operation is chosen from the object's class: parameters classes,
coordinate tuples and accuracy classes. Use --as for classes outside those
hierarchies.

Example:
  ccsbridge translate utm.yaml
  ccsbridge translate conversion.cue --name coordinates --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "document name within the file")
	cmd.Flags().StringVar(&opts.As, "as", "", "value kind (parameters|coordinates|accuracy)")

	return cmd
}

// translateOutput is the JSON payload of translate.
type translateOutput struct {
	Operation string         `json:"operation"`
	Class     string         `json:"class"`
	Value     map[string]any `json:"value"`
}

func runTranslate(opts *TranslateOptions, path string, cmd *cobra.Command) error {
	if err := opts.prepare(cmd); err != nil {
		return err
	}
	formatter := opts.formatter(cmd)

	rt := bridge.NewRuntime()
	obj, err := loadObject(rt, path, opts.Name)
	if err != nil {
		return formatter.Fail("failed to load document", err)
	}

	op, native, err := opts.fromManaged(rt, obj, opts.As)
	if err != nil {
		return formatter.Fail("translation failed", err)
	}

	desc, err := ccs.Describe(native)
	if err != nil {
		return formatter.Fail("describe failed", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(translateOutput{
			Operation: string(op),
			Class:     obj.Class().Name(),
			Value:     jsonFields(desc),
		})
	}
	return formatter.Success(fmt.Sprintf("%s %s\n%s", op, obj.Class().Name(),
		describedText(desc, formatter.Precision)))
}

// loadObject opens path and decodes the named document into rt.
func loadObject(rt *managed.Runtime, path, name string) (*managed.Object, error) {
	src, err := openDocuments(path)
	if err != nil {
		return nil, err
	}
	return src.Object(rt, name)
}

// fromManaged runs the inbound operation for kind, inferring the kind from
// the object's class when it is empty.
func (o *RootOptions) fromManaged(rt *managed.Runtime, obj *managed.Object, kind string) (bridge.Operation, any, error) {
	if kind == "" {
		var err error
		if kind, err = inferKind(rt, obj); err != nil {
			return "", nil, err
		}
	}
	op, err := inboundOp(kind)
	if err != nil {
		return "", nil, err
	}

	start := time.Now()
	var native any
	switch op {
	case bridge.OpParametersFromManaged:
		native, err = bridge.ParametersFromManaged(rt, obj)
	case bridge.OpCoordinatesFromManaged:
		native, err = bridge.CoordinatesFromManaged(rt, obj)
	case bridge.OpAccuracyFromManaged:
		native, err = bridge.AccuracyFromManaged(rt, obj)
	}
	o.observe(op, err, time.Since(start))
	if err != nil {
		return op, nil, err
	}

	o.Logger.Debug("translated",
		"op", string(op),
		"class", obj.Class().Name())
	return op, native, nil
}

// toManaged runs the outbound operation matching native's kind.
func (o *RootOptions) toManaged(rt *managed.Runtime, native any) (bridge.Operation, *managed.Object, error) {
	var (
		op  bridge.Operation
		obj *managed.Object
		err error
	)
	start := time.Now()
	switch v := native.(type) {
	case ccs.Parameters:
		op = bridge.OpParametersToManaged
		obj, err = bridge.ParametersToManaged(rt, v)
	case ccs.Coordinates:
		op = bridge.OpCoordinatesToManaged
		obj, err = bridge.CoordinatesToManaged(rt, v)
	case ccs.Accuracy:
		op = bridge.OpAccuracyToManaged
		obj, err = bridge.AccuracyToManaged(rt, v)
	default:
		return "", nil, fmt.Errorf("no outbound operation for %T", native)
	}
	o.observe(op, err, time.Since(start))
	return op, obj, err
}

func (o *RootOptions) observe(op bridge.Operation, err error, d time.Duration) {
	r := o.recorder()
	if r == nil {
		return
	}
	r.ObserveTranslation(op, bridge.Outcome(err), d)
}
