package measurement

import "fmt"

// Messages holds the user-visible strings produced by the controller
type Messages struct {
	// ReferencePrompt is shown while collecting the reference pair
	ReferencePrompt string
	// MeasurePrompt is shown once calibration is complete
	MeasurePrompt string
	// TooClose is shown when a reference pair is rejected
	TooClose string
	// Measured is a format string taking the distance and the unit label
	Measured string
}

// DefaultMessages returns the English strings
func DefaultMessages() Messages {
	return Messages{
		ReferencePrompt: "Step 1: Tap two points for the reference",
		MeasurePrompt:   "Step 2: Tap the object you want to measure",
		TooClose:        "Reference points are too close, tap two points again",
		Measured:        "Measured: %.2f %s",
	}
}

// FormatMeasured renders a measured distance with two decimals
func (m Messages) FormatMeasured(distance float64, unit string) string {
	return fmt.Sprintf(m.Measured, distance, unit)
}

// withDefaults fills empty fields from DefaultMessages
func (m Messages) withDefaults() Messages {
	d := DefaultMessages()
	if m.ReferencePrompt == "" {
		m.ReferencePrompt = d.ReferencePrompt
	}
	if m.MeasurePrompt == "" {
		m.MeasurePrompt = d.MeasurePrompt
	}
	if m.TooClose == "" {
		m.TooClose = d.TooClose
	}
	if m.Measured == "" {
		m.Measured = d.Measured
	}
	return m
}
