package hardware

import "errors"

// FakeDevice is a test double that returns scripted temperatures.
type FakeDevice struct {
	// Temps contains scripted readings; each ReadTemperature call
	// consumes the next one. When exhausted, the last value repeats.
	Temps []float64

	// ReadError, if set, is returned by every ReadTemperature call.
	ReadError error

	// SetHeatError, if set, is returned by SetHeat.
	SetHeatError error

	// HeatLevels records every SetHeat call.
	HeatLevels []int

	// Closed tracks whether Close was called.
	Closed bool

	index int
}

// NewFakeDevice creates a FakeDevice with the given readings.
func NewFakeDevice(temps ...float64) *FakeDevice {
	return &FakeDevice{Temps: temps}
}

// ReadTemperature returns the next scripted reading.
func (f *FakeDevice) ReadTemperature() (float64, error) {
	if f.ReadError != nil {
		return 0, f.ReadError
	}
	if len(f.Temps) == 0 {
		return 0, errors.New("no readings configured")
	}
	v := f.Temps[f.index]
	if f.index < len(f.Temps)-1 {
		f.index++
	}
	return v, nil
}

// SetHeat records the requested level.
func (f *FakeDevice) SetHeat(level int) error {
	if f.SetHeatError != nil {
		return f.SetHeatError
	}
	f.HeatLevels = append(f.HeatLevels, level)
	return nil
}

// Close marks the device as closed.
func (f *FakeDevice) Close() error {
	f.Closed = true
	return nil
}
