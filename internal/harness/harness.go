package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/ccsbridge/internal/bridge"
	"github.com/roach88/ccsbridge/internal/ccs"
	"github.com/roach88/ccsbridge/internal/engine"
	"github.com/roach88/ccsbridge/internal/managed"
	"github.com/roach88/ccsbridge/internal/store"
	"github.com/roach88/ccsbridge/internal/testutil"
)

// Option configures a scenario run.
type Option func(*Harness)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithRecorder meters every crossing the scenario performs.
func WithRecorder(r engine.Recorder) Option {
	return func(h *Harness) { h.recorder = r }
}

// Harness executes one scenario. It is created by Run.
type Harness struct {
	rt       *managed.Runtime
	store    *store.Store
	clock    *engine.Clock
	callID   string
	logger   *slog.Logger
	recorder engine.Recorder

	// natives holds the native value produced by each successful step.
	natives map[string]any
}

// Run executes a scenario and returns its result.
//
// Each scenario runs against a fresh runtime and in-memory store. Steps run
// in order; a failed expectation is recorded in the result and the run
// continues. Run returns an error only when the scenario itself cannot be
// executed, e.g. an object document that does not decode.
func Run(ctx context.Context, scenario *Scenario, opts ...Option) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	rt := bridge.NewRuntime()
	if err := managed.DefineClasses(rt, scenario.Classes); err != nil {
		return nil, fmt.Errorf("failed to declare classes: %w", err)
	}

	h := &Harness{
		rt:      rt,
		store:   st,
		clock:   engine.NewClock(),
		callID:  testutil.NewFixedCallIDGenerator(scenario.CallID).Generate(),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		natives: make(map[string]any, len(scenario.Steps)),
	}
	for _, opt := range opts {
		opt(h)
	}

	result := NewResult(h.callID)
	failed := ""
	for _, step := range scenario.Steps {
		code, err := h.runStep(ctx, step, result)
		if err != nil {
			return nil, fmt.Errorf("step %q: %w", step.Name, err)
		}
		if code != "" && failed == "" {
			failed = code
		}
	}

	if err := h.writeCall(ctx, failed); err != nil {
		return nil, err
	}

	for _, msg := range EvaluateAssertions(ctx, result, scenario.Assertions, st) {
		result.AddError(msg)
	}

	h.logger.Info("scenario finished",
		"scenario", scenario.Name,
		"call_id", h.callID,
		"pass", result.Pass,
		"crossings", len(result.Trace))
	return result, nil
}

// runStep performs one crossing, journals it and checks its expectation.
// It returns the translation error code of a failed crossing.
func (h *Harness) runStep(ctx context.Context, step Step, result *Result) (string, error) {
	op, err := bridge.ParseOperation(step.Op)
	if err != nil {
		return "", err
	}

	var (
		input  *managed.Object
		native any
	)
	if op.Inbound() {
		input, err = managed.Decode(h.rt, *step.Object)
		if err != nil {
			return "", fmt.Errorf("decode object: %w", err)
		}
	} else {
		native = h.natives[step.From]
		if native == nil {
			result.AddError(fmt.Sprintf("step %q: step %q produced no value", step.Name, step.From))
			return "", nil
		}
	}

	event := TraceEvent{Seq: h.clock.Next(), Step: step.Name, Operation: string(op)}
	start := time.Now()
	var built *managed.Object
	if op.Inbound() {
		event.Class = input.Class().Name()
		native, err = translateInbound(h.rt, op, input)
	} else {
		built, err = translateOutbound(h.rt, op, native)
		if built != nil {
			event.Class = built.Class().Name()
		}
	}
	h.observe(op, err, time.Since(start))

	var desc map[string]any
	if err != nil {
		code, ok := bridge.CodeOf(err)
		if !ok {
			return "", err
		}
		event.Error = string(code)
	} else {
		desc, err = ccs.Describe(native)
		if err != nil {
			return "", err
		}
		event.Variant, _ = desc["variant"].(string)
		event.Value = withoutVariant(desc)
		h.natives[step.Name] = native
	}
	result.addEvent(event)

	if jerr := h.journal(ctx, event, desc, err); jerr != nil {
		return "", jerr
	}

	for _, msg := range checkExpect(step.Expect, event, built, err) {
		result.AddError(fmt.Sprintf("step %q: %s", step.Name, msg))
	}

	h.logger.Debug("step completed",
		"step", step.Name,
		"op", string(op),
		"seq", event.Seq,
		"class", event.Class,
		"error", event.Error)
	return event.Error, nil
}

func translateInbound(env managed.Env, op bridge.Operation, obj *managed.Object) (any, error) {
	switch op {
	case bridge.OpParametersFromManaged:
		return bridge.ParametersFromManaged(env, obj)
	case bridge.OpCoordinatesFromManaged:
		return bridge.CoordinatesFromManaged(env, obj)
	case bridge.OpAccuracyFromManaged:
		return bridge.AccuracyFromManaged(env, obj)
	default:
		return nil, fmt.Errorf("%s is not an inbound operation", op)
	}
}

func translateOutbound(env managed.Env, op bridge.Operation, native any) (*managed.Object, error) {
	switch op {
	case bridge.OpParametersToManaged:
		p, ok := native.(ccs.Parameters)
		if !ok {
			return nil, fmt.Errorf("%s needs parameters, got %T", op, native)
		}
		return bridge.ParametersToManaged(env, p)
	case bridge.OpCoordinatesToManaged:
		c, ok := native.(ccs.Coordinates)
		if !ok {
			return nil, fmt.Errorf("%s needs coordinates, got %T", op, native)
		}
		return bridge.CoordinatesToManaged(env, c)
	case bridge.OpAccuracyToManaged:
		a, ok := native.(ccs.Accuracy)
		if !ok {
			return nil, fmt.Errorf("%s needs accuracy, got %T", op, native)
		}
		return bridge.AccuracyToManaged(env, a)
	default:
		return nil, fmt.Errorf("%s is not an outbound operation", op)
	}
}

func (h *Harness) observe(op bridge.Operation, err error, d time.Duration) {
	if h.recorder == nil {
		return
	}
	h.recorder.ObserveTranslation(op, bridge.Outcome(err), d)
}

// journal writes the crossing under the scenario's call ID.
func (h *Harness) journal(ctx context.Context, event TraceEvent, desc map[string]any, err error) error {
	t := store.Translation{
		CallID:    h.callID,
		Seq:       event.Seq,
		Operation: event.Operation,
		Class:     event.Class,
		Variant:   event.Variant,
		ErrorCode: event.Error,
	}
	if err != nil {
		t.ErrorMessage = err.Error()
	} else {
		b, merr := ccs.MarshalCanonical(desc)
		if merr != nil {
			return fmt.Errorf("marshal value: %w", merr)
		}
		id, merr := ccs.ValueID(desc)
		if merr != nil {
			return fmt.Errorf("value id: %w", merr)
		}
		t.Value = string(b)
		t.ValueID = id
	}

	id, idErr := ccs.TranslationID(h.callID, event.Seq, event.Operation)
	if idErr != nil {
		return fmt.Errorf("translation id: %w", idErr)
	}
	t.ID = id
	return h.store.WriteTranslation(ctx, t)
}

func (h *Harness) writeCall(ctx context.Context, failedCode string) error {
	c := store.Call{
		ID:        h.callID,
		Direction: "scenario",
		Status:    store.StatusOK,
		Seq:       h.clock.Next(),
	}
	if failedCode != "" {
		c.Status = store.StatusTranslationError
		c.ErrorCode = failedCode
	}
	return h.store.WriteCall(ctx, c)
}

func withoutVariant(desc map[string]any) map[string]any {
	out := make(map[string]any, len(desc))
	for k, v := range desc {
		if k != "variant" {
			out[k] = v
		}
	}
	return out
}

// checkExpect compares a step's outcome with its expectation and returns
// one message per mismatch. A step without an expected error must succeed.
func checkExpect(want *Expect, event TraceEvent, built *managed.Object, err error) []string {
	if want == nil {
		want = &Expect{}
	}

	if want.Error != "" {
		switch {
		case err == nil:
			return []string{fmt.Sprintf("expected error %s, got success", want.Error)}
		case event.Error != want.Error:
			return []string{fmt.Sprintf("expected error %s, got %s", want.Error, event.Error)}
		}
		return nil
	}
	if err != nil {
		return []string{fmt.Sprintf("unexpected error: %v", err)}
	}

	var msgs []string
	if want.Variant != "" && want.Variant != event.Variant {
		msgs = append(msgs, fmt.Sprintf("variant = %s, want %s", event.Variant, want.Variant))
	}
	for _, k := range ccs.SortedKeys(want.Value) {
		got, ok := event.Value[k]
		if !ok {
			msgs = append(msgs, fmt.Sprintf("value has no %q", k))
			continue
		}
		if !sameValue(got, want.Value[k]) {
			msgs = append(msgs, fmt.Sprintf("value %q = %v, want %v", k, got, want.Value[k]))
		}
	}

	if want.Class != "" && event.Class != want.Class {
		msgs = append(msgs, fmt.Sprintf("class = %s, want %s", event.Class, want.Class))
	}
	if built != nil {
		msgs = append(msgs, checkFields(built, want.Fields)...)
	}
	return msgs
}

func checkFields(obj *managed.Object, fields map[string]any) []string {
	var msgs []string
	for _, name := range ccs.SortedKeys(fields) {
		decl, ok := obj.Class().Field(name)
		if !ok {
			msgs = append(msgs, fmt.Sprintf("field %q not declared by %s", name, obj.Class().Name()))
			continue
		}
		want, err := managed.Coerce(decl.Kind, fields[name])
		if err != nil {
			msgs = append(msgs, fmt.Sprintf("field %q: %v", name, err))
			continue
		}
		got, _ := obj.Field(name)
		if got != want {
			msgs = append(msgs, fmt.Sprintf("field %q = %v, want %v", name, got, want))
		}
	}
	return msgs
}
