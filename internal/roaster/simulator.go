package roaster

import (
	"math/rand"
	"sync"
	"time"
)

// ----------- Simulation constants -----------
const (
	DefaultAmbient        = 24.0  // resting room temperature
	DefaultMaxTemp        = 550.0 // max plausible roasting temperature
	DefaultUpdateInterval = 200 * time.Millisecond

	heatPerLevel = 2.0  // degrees of heat effect per heat level unit
	coolingCoeff = 0.02 // cooling pull toward ambient, per degree above it
	rateCoeff    = 0.1  // scales net heat/cool into degrees per second
	maxDeltaSec  = 1.0  // cap on elapsed time per update, avoids jumps after a stall
)

// First and second crack temperature bands. The bands are fixed,
// non-overlapping, and ascending; detection is a pure range test.
const (
	firstCrackLow   = 365.0
	firstCrackHigh  = 385.0
	secondCrackLow  = 435.0
	secondCrackHigh = 450.0
)

// JitterFunc supplies the noise term added on every simulator update.
// Tests inject a zero function for determinism.
type JitterFunc func() float64

// defaultJitter returns a uniform value in [-1, 3), biasing the curve
// slightly upward the way a real drum drifts under steady heat.
func defaultJitter() float64 {
	return rand.Float64()*4 - 1
}

// SimulatorConfig tunes the physical model. Zero values fall back to
// the package defaults.
type SimulatorConfig struct {
	Ambient        float64
	MaxTemp        float64
	UpdateInterval time.Duration
	Jitter         JitterFunc
}

// Simulator models temperature evolution without real hardware. It is
// a pure function of its own retained state plus the injected jitter.
type Simulator struct {
	mu         sync.Mutex
	ambient    float64
	maxTemp    float64
	interval   time.Duration
	jitter     JitterFunc
	current    float64
	lastUpdate time.Time
}

// NewSimulator builds a simulator resting at the ambient baseline.
func NewSimulator(cfg SimulatorConfig) *Simulator {
	if cfg.Ambient == 0 {
		cfg.Ambient = DefaultAmbient
	}
	if cfg.MaxTemp == 0 {
		cfg.MaxTemp = DefaultMaxTemp
	}
	if cfg.UpdateInterval == 0 {
		cfg.UpdateInterval = DefaultUpdateInterval
	}
	if cfg.Jitter == nil {
		cfg.Jitter = defaultJitter
	}
	return &Simulator{
		ambient:  cfg.Ambient,
		maxTemp:  cfg.MaxTemp,
		interval: cfg.UpdateInterval,
		jitter:   cfg.Jitter,
		current:  cfg.Ambient,
	}
}

// Ambient returns the configured ambient baseline.
func (s *Simulator) Ambient() float64 { return s.ambient }

// Reset returns the simulator to the ambient baseline and clears the
// last update time.
func (s *Simulator) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = s.ambient
	s.lastUpdate = time.Time{}
}

// Current returns the current simulated temperature without advancing
// the model.
func (s *Simulator) Current() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// SetCurrent overrides the simulated temperature. Used when restoring
// client state so the curve continues from the last restored sample.
func (s *Simulator) SetCurrent(temp float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = temp
}

// Tick advances the model for the given heat level. Updates are
// rate-limited to the configured interval unless force is set; a
// rate-limited call returns the unchanged value.
func (s *Simulator) Tick(heatLevel int, now time.Time, force bool) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !force && !s.lastUpdate.IsZero() && now.Sub(s.lastUpdate) < s.interval {
		return s.current
	}

	delta := s.interval.Seconds()
	if !s.lastUpdate.IsZero() {
		delta = now.Sub(s.lastUpdate).Seconds()
	}
	if delta < 0 {
		delta = 0
	}
	if delta > maxDeltaSec {
		delta = maxDeltaSec
	}

	heatEffect := float64(heatLevel) * heatPerLevel
	cooling := (s.current - s.ambient) * coolingCoeff
	s.current += (heatEffect-cooling)*rateCoeff*delta + s.jitter()

	if s.current < s.ambient {
		s.current = s.ambient
	}
	if s.current > s.maxTemp {
		s.current = s.maxTemp
	}

	s.lastUpdate = now
	return s.current
}

// InFirstCrackRange reports whether temp sits inside the first crack
// band.
func InFirstCrackRange(temp float64) bool {
	return temp >= firstCrackLow && temp <= firstCrackHigh
}

// InSecondCrackRange reports whether temp sits inside the second crack
// band.
func InSecondCrackRange(temp float64) bool {
	return temp >= secondCrackLow && temp <= secondCrackHigh
}
