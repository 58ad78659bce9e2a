package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/roach88/ccsbridge/internal/bridge"
	"github.com/roach88/ccsbridge/internal/ccs"
	"github.com/roach88/ccsbridge/internal/managed"
	"github.com/roach88/ccsbridge/internal/store"
)

// Direction selects which parameter set a conversion reads from.
type Direction string

const (
	SourceToTarget Direction = "source_to_target"
	TargetToSource Direction = "target_to_source"
)

// Journal records calls and their boundary crossings. *store.Store
// implements it.
type Journal interface {
	WriteTranslation(ctx context.Context, t store.Translation) error
	WriteCall(ctx context.Context, c store.Call) error
}

// Recorder observes translations and conversions. The metrics package
// provides a Prometheus implementation.
type Recorder interface {
	ObserveTranslation(op bridge.Operation, code string, d time.Duration)
	ObserveConversion(direction string, status string, d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveTranslation(bridge.Operation, string, time.Duration) {}
func (nopRecorder) ObserveConversion(string, string, time.Duration)            {}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithJournal journals every call and crossing.
func WithJournal(j Journal) Option {
	return func(s *Service) { s.journal = j }
}

// WithIDGenerator sets the call ID generator. The default is UUIDv7.
func WithIDGenerator(g IDGenerator) Option {
	return func(s *Service) {
		if g != nil {
			s.ids = g
		}
	}
}

// WithClock sets the logical clock used to order crossings.
func WithClock(c *Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// Service converts managed coordinates and accuracy between a source and a
// target coordinate system. Every call translates its managed inputs to
// native values, runs the converter, and translates the results back.
//
// The parameter sets are translated once, at construction. A Service is
// safe for concurrent use if its Converter and Journal are.
type Service struct {
	env    managed.Env
	source ccs.Parameters
	target ccs.Parameters
	conv   Converter

	logger   *slog.Logger
	recorder Recorder
	journal  Journal
	ids      IDGenerator
	clock    *Clock
}

// Result is the outcome of one conversion call.
type Result struct {
	CallID      string
	Direction   Direction
	Coordinates *managed.Object
	Accuracy    *managed.Object

	// Native values handed back through the boundary.
	NativeCoordinates ccs.Coordinates
	NativeAccuracy    ccs.Accuracy
}

// NewService translates the source and target parameter objects and
// returns a Service bound to them. Translation failures are returned as
// *bridge.TranslationError.
func NewService(env managed.Env, source, target *managed.Object, conv Converter, opts ...Option) (*Service, error) {
	if conv == nil {
		return nil, errors.New("engine: converter is required")
	}
	s := &Service{
		env:      env,
		conv:     conv,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		recorder: nopRecorder{},
		ids:      UUIDv7Generator{},
		clock:    NewClock(),
	}
	for _, opt := range opts {
		opt(s)
	}

	var err error
	if s.source, err = s.translateParameters(source, "source"); err != nil {
		return nil, err
	}
	if s.target, err = s.translateParameters(target, "target"); err != nil {
		return nil, err
	}
	s.logger.Info("service ready",
		"source", s.source.CoordinateType().String(),
		"target", s.target.CoordinateType().String())
	return s, nil
}

func (s *Service) translateParameters(obj *managed.Object, role string) (ccs.Parameters, error) {
	start := time.Now()
	p, err := bridge.ParametersFromManaged(s.env, obj)
	s.recorder.ObserveTranslation(bridge.OpParametersFromManaged, bridge.Outcome(err), time.Since(start))
	if err != nil {
		s.logger.Error("parameters translation failed", "role", role, "error", err)
		return nil, err
	}
	return p, nil
}

// Source returns the translated source parameters.
func (s *Service) Source() ccs.Parameters { return s.source }

// Target returns the translated target parameters.
func (s *Service) Target() ccs.Parameters { return s.target }

// ConvertSourceToTarget converts coordinates and accuracy expressed in the
// source system into the target system.
func (s *Service) ConvertSourceToTarget(ctx context.Context, coordinates, accuracy *managed.Object) (Result, error) {
	return s.convert(ctx, SourceToTarget, coordinates, accuracy)
}

// ConvertTargetToSource converts coordinates and accuracy expressed in the
// target system back into the source system.
func (s *Service) ConvertTargetToSource(ctx context.Context, coordinates, accuracy *managed.Object) (Result, error) {
	return s.convert(ctx, TargetToSource, coordinates, accuracy)
}

// call carries the state of one conversion call.
type call struct {
	id        string
	direction Direction
	from, to  ccs.Parameters
}

func (s *Service) convert(ctx context.Context, dir Direction, coordinates, accuracy *managed.Object) (Result, error) {
	start := time.Now()
	c := &call{id: s.ids.Generate(), direction: dir, from: s.source, to: s.target}
	if dir == TargetToSource {
		c.from, c.to = s.target, s.source
	}
	log := s.logger.With("call_id", c.id, "direction", string(dir))

	res, err := s.run(ctx, c, coordinates, accuracy)

	status := store.StatusOK
	switch {
	case err == nil:
	case bridge.IsTranslationError(err):
		status = store.StatusTranslationError
	default:
		status = store.StatusConversionError
	}
	s.recorder.ObserveConversion(string(dir), status, time.Since(start))
	s.journalCall(ctx, log, c, status, err)

	if err != nil {
		log.Warn("conversion failed", "status", status, "error", err)
		return Result{CallID: c.id, Direction: dir}, err
	}
	log.Debug("conversion complete",
		"from", c.from.CoordinateType().String(),
		"to", c.to.CoordinateType().String())
	return res, nil
}

func (s *Service) run(ctx context.Context, c *call, coordinates, accuracy *managed.Object) (Result, error) {
	res := Result{CallID: c.id, Direction: c.direction}

	var nativeCoords ccs.Coordinates
	err := s.cross(ctx, c, bridge.OpCoordinatesFromManaged, className(coordinates), func() (any, error) {
		v, err := bridge.CoordinatesFromManaged(s.env, coordinates)
		nativeCoords = v
		return v, err
	})
	if err != nil {
		return res, err
	}

	var nativeAcc ccs.Accuracy
	err = s.cross(ctx, c, bridge.OpAccuracyFromManaged, className(accuracy), func() (any, error) {
		v, err := bridge.AccuracyFromManaged(s.env, accuracy)
		nativeAcc = v
		return v, err
	})
	if err != nil {
		return res, err
	}

	outCoords, outAcc, err := s.conv.Convert(ctx, Request{
		Source:      c.from,
		Target:      c.to,
		Coordinates: nativeCoords,
		Accuracy:    nativeAcc,
	})
	if err != nil {
		var ce *ConversionError
		if !errors.As(err, &ce) {
			ce = &ConversionError{Code: CodeEngineFailure, Message: "converter failed", Err: err}
		}
		if ce.Direction == "" {
			ce.Direction = c.direction
		}
		return res, ce
	}
	if err := checkOutput(c, outCoords, outAcc); err != nil {
		return res, err
	}

	err = s.cross(ctx, c, bridge.OpCoordinatesToManaged, "", func() (any, error) {
		obj, err := bridge.CoordinatesToManaged(s.env, outCoords)
		res.Coordinates = obj
		return outCoords, err
	})
	if err != nil {
		return res, err
	}

	err = s.cross(ctx, c, bridge.OpAccuracyToManaged, "", func() (any, error) {
		obj, err := bridge.AccuracyToManaged(s.env, outAcc)
		res.Accuracy = obj
		return outAcc, err
	})
	if err != nil {
		return res, err
	}

	res.NativeCoordinates = outCoords
	res.NativeAccuracy = outAcc
	return res, nil
}

// cross performs one boundary crossing: it stamps a seq, times and meters
// the translation, and journals its outcome. fn returns the native value
// involved in the crossing.
func (s *Service) cross(ctx context.Context, c *call, op bridge.Operation, class string, fn func() (any, error)) error {
	seq := s.clock.Next()
	start := time.Now()
	native, err := fn()
	s.recorder.ObserveTranslation(op, bridge.Outcome(err), time.Since(start))

	if s.journal == nil {
		return err
	}

	t := store.Translation{CallID: c.id, Seq: seq, Operation: string(op), Class: class}
	if t.Class == "" {
		t.Class = outboundClass(native)
	}
	if err != nil {
		code, _ := bridge.CodeOf(err)
		t.ErrorCode = string(code)
		t.ErrorMessage = err.Error()
	} else if jerr := describeInto(&t, native); jerr != nil {
		s.logger.Warn("journal: describe failed", "call_id", c.id, "op", string(op), "error", jerr)
	}

	id, idErr := ccs.TranslationID(c.id, seq, string(op))
	if idErr != nil {
		s.logger.Warn("journal: translation id failed", "call_id", c.id, "error", idErr)
		return err
	}
	t.ID = id
	if jerr := s.journal.WriteTranslation(ctx, t); jerr != nil {
		s.logger.Warn("journal: write translation failed", "call_id", c.id, "op", string(op), "error", jerr)
	}
	return err
}

func (s *Service) journalCall(ctx context.Context, log *slog.Logger, c *call, status string, err error) {
	if s.journal == nil {
		return
	}
	rec := store.Call{
		ID:         c.id,
		Direction:  string(c.direction),
		SourceType: c.from.CoordinateType().String(),
		TargetType: c.to.CoordinateType().String(),
		Status:     status,
		Seq:        s.clock.Next(),
	}
	if err != nil {
		rec.Error = err.Error()
		if code, ok := bridge.CodeOf(err); ok {
			rec.ErrorCode = string(code)
		} else if code, ok := ConversionCode(err); ok {
			rec.ErrorCode = string(code)
		}
	}
	if jerr := s.journal.WriteCall(ctx, rec); jerr != nil {
		log.Warn("journal: write call failed", "error", jerr)
	}
}

func describeInto(t *store.Translation, native any) error {
	m, err := ccs.Describe(native)
	if err != nil {
		return err
	}
	if v, ok := m["variant"].(string); ok {
		t.Variant = v
	}
	b, err := ccs.MarshalCanonical(m)
	if err != nil {
		return err
	}
	id, err := ccs.ValueID(m)
	if err != nil {
		return err
	}
	t.Value = string(b)
	t.ValueID = id
	return nil
}

// checkOutput rejects converter results the outbound translators cannot
// represent for c. A converter that breaks its contract is an engine failure,
// not a translation failure.
func checkOutput(c *call, coords ccs.Coordinates, acc ccs.Accuracy) error {
	fail := func(msg string, err error) error {
		return &ConversionError{Code: CodeEngineFailure, Direction: c.direction, Message: msg, Err: err}
	}
	if err := ccs.CheckCoordinates(coords); err != nil {
		return fail("converter returned invalid coordinates", err)
	}
	if acc == nil {
		return fail("converter returned no accuracy", nil)
	}
	if got, want := coords.CoordinateType(), c.to.CoordinateType(); got != want {
		return fail(fmt.Sprintf("converter returned %s coordinates, target is %s", got, want), nil)
	}
	return nil
}

func outboundClass(native any) string {
	switch v := native.(type) {
	case ccs.Coordinates:
		name, _ := bridge.CoordinatesClass(v.CoordinateType())
		return name
	case ccs.Accuracy:
		name, _ := bridge.AccuracyClass(v.Shape())
		return name
	}
	return ""
}

func className(obj *managed.Object) string {
	if obj == nil || obj.Class() == nil {
		return ""
	}
	return obj.Class().Name()
}
