package harness

// TraceEvent is one boundary crossing in a scenario trace.
type TraceEvent struct {
	Seq       int64  `json:"seq"`
	Step      string `json:"step"`
	Operation string `json:"operation"`

	// Class is the managed class read by an inbound step or built by an
	// outbound one.
	Class string `json:"class,omitempty"`

	// Variant and Value describe the native value on the native side of the
	// crossing. Both are empty when the crossing failed.
	Variant string         `json:"variant,omitempty"`
	Value   map[string]any `json:"value,omitempty"`

	// Error is the translation error code of a failed crossing.
	Error string `json:"error,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every step met its expectation and every assertion
	// held.
	Pass bool `json:"pass"`

	// CallID is the ID the crossings were journaled under.
	CallID string `json:"call_id"`

	// Trace lists the crossings in seq order.
	Trace []TraceEvent `json:"trace"`

	// Errors holds expectation and assertion failures.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result with an empty trace.
func NewResult(callID string) *Result {
	return &Result{
		Pass:   true,
		CallID: callID,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError records a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// addEvent appends a crossing to the trace.
func (r *Result) addEvent(e TraceEvent) {
	r.Trace = append(r.Trace, e)
}
