package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/ccsbridge/internal/bridge"
	"github.com/roach88/ccsbridge/internal/managed"
)

// ClassesOptions holds flags for the classes command.
type ClassesOptions struct {
	*RootOptions
	Prefix string
}

// NewClassesCommand creates the classes command.
func NewClassesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ClassesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "classes",
		Short: "List the managed class catalogue",
		Long: `List every preregistered managed class with its superclass and the
fields it declares.

Example:
  ccsbridge classes --prefix geotrans3/coordinates/`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClasses(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "only list classes whose name starts with prefix")

	return cmd
}

func runClasses(opts *ClassesOptions, cmd *cobra.Command) error {
	if err := opts.prepare(cmd); err != nil {
		return err
	}
	formatter := opts.formatter(cmd)

	var docs []managed.ClassDocument
	for _, c := range bridge.NewRuntime().Classes() {
		if !strings.HasPrefix(c.Name(), opts.Prefix) {
			continue
		}
		doc := managed.ClassDocument{Name: c.Name()}
		if c.Super() != nil {
			doc.Super = c.Super().Name()
		}
		for _, f := range c.DeclaredFields() {
			doc.Fields = append(doc.Fields, managed.FieldDocument{Name: f.Name, Kind: f.Kind.String()})
		}
		docs = append(docs, doc)
	}

	if formatter.Format == "json" {
		return formatter.Success(docs)
	}

	var b strings.Builder
	for _, doc := range docs {
		if doc.Super != "" {
			fmt.Fprintf(&b, "%s extends %s\n", doc.Name, doc.Super)
		} else {
			fmt.Fprintln(&b, doc.Name)
		}
		for _, f := range doc.Fields {
			fmt.Fprintf(&b, "  %s %s\n", f.Name, f.Kind)
		}
	}
	fmt.Fprintf(&b, "%d classes", len(docs))
	return formatter.Success(b.String())
}
