// Package harness runs conformance scenarios against the boundary translator.
//
// A scenario is a YAML file listing boundary crossings. Inbound steps decode
// a managed object and translate it to a native value; outbound steps take
// the native value produced by an earlier step and translate it back into a
// managed object. Each step may state what it expects, and the scenario ends
// with assertions over the whole trace and over the journal.
//
// # Scenario Format
//
//	name: geodetic_parameters
//	description: "Geodetic parameters survive a round trip"
//	call_id: test-call-geodetic
//	classes:
//	  - name: test/Broken
//	    super: geotrans3/coordinates/CoordinateTuple
//	steps:
//	  - name: read
//	    op: parameters_from_managed
//	    object:
//	      class: geotrans3/parameters/GeodeticParameters
//	      fields: { coordinateType: 10, ellipsoidCode: WE, heightType: 1 }
//	    expect:
//	      variant: GeodeticParameters
//	      value: { ellipsoid_code: WE, height_type: ELLIPSOID }
//	  - name: write
//	    op: parameters_to_managed
//	    from: read
//	    expect:
//	      class: geotrans3/parameters/GeodeticParameters
//	      fields: { heightType: 1 }
//	assertions:
//	  - type: trace_order
//	    ops: [parameters_from_managed, parameters_to_managed]
//	  - type: journal_count
//	    count: 2
//
// # Assertion Types
//
//   - trace_contains: an event with the operation, and optionally the
//     variant, error code and value subset, appears in the trace
//   - trace_order: operations first appear in the given order
//   - trace_count: an operation appears exactly N times
//   - journal_count: the journal holds exactly N translations for the call,
//     optionally filtered by operation
//
// # Deterministic Testing
//
// Every scenario runs against a fresh in-memory store with a fixed call ID
// and a logical clock starting at zero, so its canonical trace is identical
// across runs and can be compared against testdata/golden.
package harness
