package harness

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/roach88/ccsbridge/internal/ccs"
	"github.com/roach88/ccsbridge/internal/store"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			outcome := event.Variant
			if event.Error != "" {
				outcome = event.Error
			}
			fmt.Fprintf(&buf, "  [%d] %s %s -> %s\n", event.Seq, event.Step, event.Operation, outcome)
		}
	}
	return buf.String()
}

// assertTraceContains checks that some event matches the operation and the
// optional variant, error code and value subset.
func assertTraceContains(trace []TraceEvent, a Assertion) error {
	for _, event := range trace {
		if event.Operation != a.Op {
			continue
		}
		if a.Variant != "" && event.Variant != a.Variant {
			continue
		}
		if a.Error != "" && event.Error != a.Error {
			continue
		}
		if matchValue(event.Value, a.Value) {
			return nil
		}
	}

	expected := a.Op
	if a.Variant != "" {
		expected += " variant " + a.Variant
	}
	if a.Error != "" {
		expected += " error " + a.Error
	}
	if len(a.Value) > 0 {
		expected += fmt.Sprintf(" value %v", a.Value)
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: expected,
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks that operations first appear in the given order.
// Other events may come between them.
func assertTraceOrder(trace []TraceEvent, a Assertion) error {
	positions := make(map[string]int)
	for i, event := range trace {
		if _, seen := positions[event.Operation]; !seen {
			positions[event.Operation] = i
		}
	}

	for _, op := range a.Ops {
		if _, ok := positions[op]; !ok {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all operations present: %v", a.Ops),
				Actual:   fmt.Sprintf("missing operation: %s", op),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(a.Ops); i++ {
		prev, curr := a.Ops[i-1], a.Ops[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("operations in order: %v", a.Ops),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev]+1, curr, positions[curr]+1),
				Trace: trace,
			}
		}
	}
	return nil
}

// assertTraceCount checks that the operation appears exactly Count times,
// counting only events with the given error code when one is set.
func assertTraceCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Operation == a.Op && (a.Error == "" || event.Error == a.Error) {
			count++
		}
	}

	if count != a.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", a.Count, a.Op),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertJournalCount reads the call's translations back from the store.
func assertJournalCount(ctx context.Context, st *store.Store, callID string, a Assertion) error {
	translations, err := st.ReadTranslations(ctx, callID)
	if err != nil {
		return &AssertionError{
			Type:     AssertJournalCount,
			Expected: fmt.Sprintf("translations for call %s", callID),
			Actual:   fmt.Sprintf("read error: %v", err),
		}
	}

	count := 0
	for _, t := range translations {
		if a.Op == "" || t.Operation == a.Op {
			count++
		}
	}
	if count != a.Count {
		what := "translations"
		if a.Op != "" {
			what = a.Op + " translations"
		}
		return &AssertionError{
			Type:     AssertJournalCount,
			Expected: fmt.Sprintf("%d %s journaled", a.Count, what),
			Actual:   fmt.Sprintf("%d journaled", count),
		}
	}
	return nil
}

// matchValue reports whether actual holds every key of expected with an
// equal value. Extra keys in actual are ignored.
func matchValue(actual, expected map[string]any) bool {
	for k, want := range expected {
		got, ok := actual[k]
		if !ok || !sameValue(got, want) {
			return false
		}
	}
	return true
}

// sameValue compares a described native value with a YAML-decoded one.
// Both sides are rendered as canonical JSON, so 18 matches int64(18) and
// 500000 matches 500000.0.
func sameValue(actual, expected any) bool {
	a, aerr := ccs.MarshalCanonical(actual)
	e, eerr := ccs.MarshalCanonical(expected)
	if aerr != nil || eerr != nil {
		return reflect.DeepEqual(actual, expected)
	}
	return string(a) == string(e)
}

// EvaluateAssertions evaluates all assertions against the result and
// returns one message per failed assertion. st is the scenario's journal.
func EvaluateAssertions(ctx context.Context, result *Result, assertions []Assertion, st *store.Store) []string {
	var errors []string

	for i, a := range assertions {
		var err error

		switch a.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, a)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, a)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, a)
		case AssertJournalCount:
			if st == nil {
				err = fmt.Errorf("assertion[%d]: journal_count requires a store", i)
			} else {
				err = assertJournalCount(ctx, st, result.CallID, a)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, a.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}
	return errors
}
