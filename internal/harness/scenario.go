package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/ccsbridge/internal/bridge"
	"github.com/roach88/ccsbridge/internal/managed"
)

// Scenario is one conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// CallID is the fixed call ID the crossings are journaled under.
	// Defaults to testutil.DefaultCallID.
	CallID string `yaml:"call_id,omitempty"`

	// Classes are declared on the runtime before any step runs, after the
	// GEOTRANS catalogue. Scenarios use them to build malformed objects.
	Classes []managed.ClassDocument `yaml:"classes,omitempty"`

	// Steps run in order.
	Steps []Step `yaml:"steps"`

	// Assertions are evaluated after the last step.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one boundary crossing.
type Step struct {
	// Name identifies the step; outbound steps refer to it through From.
	Name string `yaml:"name"`

	// Op is a bridge operation name, e.g. "coordinates_from_managed".
	Op string `yaml:"op"`

	// Object is the managed object an inbound step translates.
	Object *managed.Document `yaml:"object,omitempty"`

	// From names the earlier step whose native result an outbound step
	// translates.
	From string `yaml:"from,omitempty"`

	// Expect is checked against the step's outcome. Without it the step
	// only has to succeed.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect describes the outcome of a step. Value and Fields are subset
// matches: only the listed keys are compared.
type Expect struct {
	// Error is the expected translation error code.
	Error string `yaml:"error,omitempty"`

	// Variant is the expected native variant, e.g. "UTMCoordinates".
	Variant string `yaml:"variant,omitempty"`

	// Value holds expected keys of the described native value.
	Value map[string]any `yaml:"value,omitempty"`

	// Class is the expected class of the object an outbound step builds.
	Class string `yaml:"class,omitempty"`

	// Fields holds expected field values of that object.
	Fields map[string]any `yaml:"fields,omitempty"`
}

// Assertion validates the trace or the journal.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Op is the operation (trace_contains, trace_count, journal_count).
	Op string `yaml:"op,omitempty"`

	// Variant narrows trace_contains to one native variant.
	Variant string `yaml:"variant,omitempty"`

	// Error narrows trace_contains and trace_count to one error code.
	Error string `yaml:"error,omitempty"`

	// Value is a subset of the described value (trace_contains).
	Value map[string]any `yaml:"value,omitempty"`

	// Ops is the expected operation order (trace_order).
	Ops []string `yaml:"ops,omitempty"`

	// Count is the expected number of matches (trace_count, journal_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertJournalCount  = "journal_count"
)

// LoadScenario reads and validates a scenario YAML file. Unknown fields are
// rejected so typos surface as errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario decodes and validates a scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenarios loads every *.yaml and *.yml file in dir, sorted by path.
func LoadScenarios(dir string) ([]*Scenario, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(s.Steps))
	for i, step := range s.Steps {
		if err := validateStep(step, seen); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
		seen[step.Name] = true
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertions[%d]: %w", i, err)
		}
	}
	return nil
}

// validateStep checks one step; earlier holds the names of the steps
// before it.
func validateStep(step Step, earlier map[string]bool) error {
	if step.Name == "" {
		return fmt.Errorf("name is required")
	}
	if earlier[step.Name] {
		return fmt.Errorf("duplicate step name %q", step.Name)
	}
	op, err := bridge.ParseOperation(step.Op)
	if err != nil {
		return err
	}

	if op.Inbound() {
		if step.Object == nil {
			return fmt.Errorf("object is required for %s", op)
		}
		if step.From != "" {
			return fmt.Errorf("from is not allowed for %s", op)
		}
		if step.Expect != nil && (step.Expect.Class != "" || len(step.Expect.Fields) > 0) {
			return fmt.Errorf("expect.class and expect.fields apply to outbound steps only")
		}
	} else {
		if step.From == "" {
			return fmt.Errorf("from is required for %s", op)
		}
		if !earlier[step.From] {
			return fmt.Errorf("from %q does not name an earlier step", step.From)
		}
		if step.Object != nil {
			return fmt.Errorf("object is not allowed for %s", op)
		}
	}

	if e := step.Expect; e != nil && e.Error != "" {
		if e.Variant != "" || len(e.Value) > 0 || e.Class != "" || len(e.Fields) > 0 {
			return fmt.Errorf("expect.error excludes the other expectations")
		}
	}
	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("type is required")
	case AssertTraceContains:
		if a.Op == "" {
			return fmt.Errorf("op is required for trace_contains")
		}
	case AssertTraceOrder:
		if len(a.Ops) == 0 {
			return fmt.Errorf("ops list is required for trace_order")
		}
	case AssertTraceCount:
		if a.Op == "" {
			return fmt.Errorf("op is required for trace_count")
		}
		if a.Count < 0 {
			return fmt.Errorf("count must be non-negative for trace_count")
		}
	case AssertJournalCount:
		if a.Count < 0 {
			return fmt.Errorf("count must be non-negative for journal_count")
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
