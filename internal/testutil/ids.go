package testutil

// FixedCallIDGenerator returns the same call ID every time, so a scenario
// run twice journals byte-identical records.
//
// Unlike engine.FixedGenerator, which hands out IDs in sequence, every call
// shares one ID.
type FixedCallIDGenerator struct {
	id string
}

// DefaultCallID is used when no ID is given.
const DefaultCallID = "test-call-default"

// NewFixedCallIDGenerator creates a generator for id, or DefaultCallID when
// id is empty.
func NewFixedCallIDGenerator(id string) *FixedCallIDGenerator {
	if id == "" {
		id = DefaultCallID
	}
	return &FixedCallIDGenerator{id: id}
}

// Generate returns the fixed ID. Implements engine.IDGenerator.
func (g *FixedCallIDGenerator) Generate() string {
	return g.id
}
