package ccs

import "fmt"

// AccuracyShape names an Accuracy variant.
type AccuracyShape int

const (
	AccuracyCircular AccuracyShape = iota
	AccuracyThreeAxis
)

func (s AccuracyShape) String() string {
	switch s {
	case AccuracyCircular:
		return "CircularAccuracy"
	case AccuracyThreeAxis:
		return "ThreeAxisAccuracy"
	default:
		return fmt.Sprintf("AccuracyShape(%d)", int(s))
	}
}

// Accuracy is a sealed interface over the error-estimate variants.
// All errors are 90% confidence values in meters; -1 means unknown.
type Accuracy interface {
	Shape() AccuracyShape
	CircularError() float64
	accuracy() // Sealed
}

// CircularAccuracy is a horizontal circular error only.
type CircularAccuracy struct {
	CE90 float64
}

func (CircularAccuracy) Shape() AccuracyShape     { return AccuracyCircular }
func (a CircularAccuracy) CircularError() float64 { return a.CE90 }
func (CircularAccuracy) accuracy()                {}

// ThreeAxisAccuracy carries circular, linear (vertical) and spherical errors.
type ThreeAxisAccuracy struct {
	CE90 float64
	LE90 float64
	SE90 float64
}

func (ThreeAxisAccuracy) Shape() AccuracyShape     { return AccuracyThreeAxis }
func (a ThreeAxisAccuracy) CircularError() float64 { return a.CE90 }
func (ThreeAxisAccuracy) accuracy()                {}

// UnknownAccuracy is the three-axis value the engine uses when no estimate
// is available.
func UnknownAccuracy() ThreeAxisAccuracy {
	return ThreeAxisAccuracy{CE90: -1, LE90: -1, SE90: -1}
}
