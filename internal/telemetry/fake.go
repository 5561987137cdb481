package telemetry

// FakePublisher records published telemetry for test assertions.
type FakePublisher struct {
	// Temperatures contains every published reading.
	Temperatures []float64

	// Cracks contains every published crack notice.
	Cracks []CrackNotice

	// PublishError, if set, is returned by both publish methods.
	PublishError error

	// Closed tracks whether Close was called.
	Closed bool
}

// NewFakePublisher creates a FakePublisher for testing.
func NewFakePublisher() *FakePublisher {
	return &FakePublisher{}
}

// PublishTemperature records the reading.
func (f *FakePublisher) PublishTemperature(temp float64) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.Temperatures = append(f.Temperatures, temp)
	return nil
}

// PublishCrack records the crack notice.
func (f *FakePublisher) PublishCrack(crack string, elapsed float64) error {
	if f.PublishError != nil {
		return f.PublishError
	}
	f.Cracks = append(f.Cracks, CrackNotice{Crack: crack, ElapsedS: elapsed})
	return nil
}

// Close marks the publisher as closed.
func (f *FakePublisher) Close() error {
	f.Closed = true
	return nil
}
