package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/ccsbridge/internal/store"
)

// JournalOptions holds flags for the journal command.
type JournalOptions struct {
	*RootOptions
	Status string
	Limit  int
}

// NewJournalCommand creates the journal command.
func NewJournalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &JournalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "journal [call-id]",
		Short: "Show journaled conversion calls",
		Long: `Without arguments, list journaled calls newest first. With a call ID,
show the call and every boundary crossing it made, in order.

Example:
  ccsbridge journal --status translation_error
  ccsbridge journal 0192f0c4-3c1e-7b4e-9a53-3f6a1c2d9e10`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if len(args) == 1 {
				return runJournalShow(ctx, opts, args[0], cmd)
			}
			return runJournalList(ctx, opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Status, "status", "", "only list calls with this status (ok|translation_error|conversion_error)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 50, "maximum number of calls to list")

	return cmd
}

var validStatuses = []string{store.StatusOK, store.StatusTranslationError, store.StatusConversionError}

func runJournalList(ctx context.Context, opts *JournalOptions, cmd *cobra.Command) error {
	if err := opts.prepare(cmd); err != nil {
		return err
	}
	formatter := opts.formatter(cmd)

	if opts.Status != "" && !contains(validStatuses, opts.Status) {
		msg := fmt.Sprintf("invalid status %q: must be one of %v", opts.Status, validStatuses)
		_ = formatter.Error(ErrCodeInvalidInput, msg, nil)
		return NewExitError(ExitCommandError, msg)
	}

	st, err := opts.openStore()
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return err
	}
	defer st.Close()

	calls, err := st.ListCalls(ctx, opts.Status, opts.Limit)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list calls", err)
	}

	if formatter.Format == "json" {
		out := make([]map[string]any, len(calls))
		for i, c := range calls {
			out[i] = callMap(c)
		}
		return formatter.Success(out)
	}

	if len(calls) == 0 {
		return formatter.Success("No calls journaled")
	}
	var b strings.Builder
	for _, c := range calls {
		fmt.Fprintf(&b, "%s  %-16s  %s -> %s  %s", c.ID, c.Direction, c.SourceType, c.TargetType, c.Status)
		if c.ErrorCode != "" {
			fmt.Fprintf(&b, " [%s]", c.ErrorCode)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%d calls", len(calls))
	return formatter.Success(b.String())
}

func runJournalShow(ctx context.Context, opts *JournalOptions, callID string, cmd *cobra.Command) error {
	if err := opts.prepare(cmd); err != nil {
		return err
	}
	formatter := opts.formatter(cmd)

	st, err := opts.openStore()
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return err
	}
	defer st.Close()

	call, translations, err := st.ReadCall(ctx, callID)
	if errors.Is(err, store.ErrCallNotFound) {
		msg := fmt.Sprintf("call %s not found", callID)
		_ = formatter.Error(ErrCodeNotFound, msg, nil)
		return NewExitError(ExitFailure, msg)
	}
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read call", err)
	}

	if formatter.Format == "json" {
		out := callMap(call)
		crossings := make([]map[string]any, len(translations))
		for i, t := range translations {
			crossings[i] = translationMap(t)
		}
		out["translations"] = crossings
		return formatter.Success(out)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Call: %s\n", call.ID)
	fmt.Fprintf(&b, "Direction: %s (%s -> %s)\n", call.Direction, call.SourceType, call.TargetType)
	fmt.Fprintf(&b, "Status: %s", call.Status)
	if call.ErrorCode != "" {
		fmt.Fprintf(&b, " [%s] %s", call.ErrorCode, call.Error)
	}
	b.WriteString("\n\nTranslations:")
	for _, t := range translations {
		fmt.Fprintf(&b, "\n  [%d] %s %s", t.Seq, t.Operation, t.Class)
		switch {
		case t.ErrorCode != "":
			fmt.Fprintf(&b, " -> %s: %s", t.ErrorCode, t.ErrorMessage)
		case t.Variant != "":
			fmt.Fprintf(&b, " -> %s", t.Variant)
		}
		if opts.Verbose && t.Value != "" {
			fmt.Fprintf(&b, "\n      %s", t.Value)
		}
	}
	return formatter.Success(b.String())
}

func callMap(c store.Call) map[string]any {
	m := map[string]any{
		"id":          c.ID,
		"direction":   c.Direction,
		"source_type": c.SourceType,
		"target_type": c.TargetType,
		"status":      c.Status,
		"seq":         c.Seq,
	}
	if c.ErrorCode != "" {
		m["error_code"] = c.ErrorCode
		m["error"] = c.Error
	}
	return m
}

func translationMap(t store.Translation) map[string]any {
	m := map[string]any{
		"seq":       t.Seq,
		"operation": t.Operation,
		"class":     t.Class,
	}
	if t.ErrorCode != "" {
		m["error_code"] = t.ErrorCode
		m["error_message"] = t.ErrorMessage
	} else {
		m["variant"] = t.Variant
		m["value_id"] = t.ValueID
		m["value"] = t.Value
	}
	return m
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
