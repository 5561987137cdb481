package roaster

import (
	"context"
	"fmt"
	"sync"
	"time"

	"coffee_roaster"
	"coffee_roaster/internal/logger"
)

const (
	// DefaultTick is the sampling period of the monitoring loop.
	DefaultTick = 200 * time.Millisecond

	// stopTimeout bounds how long Stop waits for the loop to exit.
	stopTimeout = 2 * time.Second

	// errBackoff is the extended sleep after a failed tick.
	errBackoff = time.Second

	// diagEvery is the elapsed-seconds spacing of diagnostic log lines.
	diagEvery = 60

	minHeatLevel = 1
	maxHeatLevel = 10
)

// TemperatureSource reads a temperature from real hardware. Any error
// is non-fatal: the monitor falls back to the simulator.
type TemperatureSource interface {
	ReadTemperature() (float64, error)
}

// HeatController is optionally implemented by hardware that can drive
// a heater.
type HeatController interface {
	SetHeat(level int) error
}

// Monitor drives the roast once per tick: it obtains a temperature,
// appends a sample to the active session, runs crack detection, and
// notifies observers. It also owns the sampling loop lifecycle.
type Monitor struct {
	session  *Session
	sim      *Simulator
	detector CrackDetector
	device   TemperatureSource // nil in pure simulation mode
	interval time.Duration
	log      *logger.Logger
	now      func() time.Time

	mu            sync.Mutex
	onTemperature func(float64)
	onFirstCrack  func()
	onSecondCrack func()
	heatLevel     int
	running       bool
	stop          chan struct{}
	done          chan struct{}
}

// MonitorConfig wires the monitor's collaborators. Device may be nil.
type MonitorConfig struct {
	Session   *Session
	Simulator *Simulator
	Device    TemperatureSource
	Interval  time.Duration
	HeatLevel int
	Log       *logger.Logger
}

// NewMonitor builds a monitor. The loop is not started until Start.
func NewMonitor(cfg MonitorConfig) *Monitor {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultTick
	}
	if cfg.HeatLevel < minHeatLevel || cfg.HeatLevel > maxHeatLevel {
		cfg.HeatLevel = maxHeatLevel / 2
	}
	return &Monitor{
		session:   cfg.Session,
		sim:       cfg.Simulator,
		device:    cfg.Device,
		interval:  cfg.Interval,
		heatLevel: cfg.HeatLevel,
		log:       cfg.Log,
		now:       time.Now,
	}
}

// OnTemperature registers the observer called once per tick with the
// raw sampled value. Observers run synchronously and must not block.
// Registration is safe while the loop is running.
func (m *Monitor) OnTemperature(fn func(float64)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onTemperature = fn
}

// OnFirstCrack registers the observer fired when first crack latches.
func (m *Monitor) OnFirstCrack(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onFirstCrack = fn
}

// OnSecondCrack registers the observer fired when second crack latches.
func (m *Monitor) OnSecondCrack(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSecondCrack = fn
}

// observers snapshots the registered callbacks under the lock so the
// loop never reads them concurrently with registration.
func (m *Monitor) observers() (onTemp func(float64), onFirst, onSecond func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.onTemperature, m.onFirstCrack, m.onSecondCrack
}

// Start launches the sampling loop. Starting while already running is
// a no-op.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		m.log.Debugw("monitoring already running")
		return
	}
	m.running = true
	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	go m.run(ctx, m.stop, m.done)
	m.log.Infow("temperature monitoring started", "interval", m.interval, "simulated", m.device == nil)
}

// Stop signals the loop and waits up to stopTimeout for it to exit.
// A timeout is logged but never blocks shutdown indefinitely.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		m.log.Debugw("no monitoring loop running")
		return
	}
	m.running = false
	stop, done := m.stop, m.done
	m.mu.Unlock()

	close(stop)
	select {
	case <-done:
		m.log.Infow("temperature monitoring stopped")
	case <-time.After(stopTimeout):
		m.log.Warnw("monitoring loop did not exit in time", "timeout", stopTimeout)
	}
}

// Running reports whether the sampling loop is live.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// SetHeat sets the heat level used by the simulator and, when the
// device supports it, the real heater. Hardware failures are logged
// and otherwise ignored.
func (m *Monitor) SetHeat(level int) error {
	if level < minHeatLevel || level > maxHeatLevel {
		return fmt.Errorf("heat level %d out of range [%d, %d]", level, minHeatLevel, maxHeatLevel)
	}
	m.mu.Lock()
	m.heatLevel = level
	m.mu.Unlock()

	if hc, ok := m.device.(HeatController); ok {
		if err := hc.SetHeat(level); err != nil {
			m.log.Warnw("hardware heat control failed", "level", level, "err", err)
		}
	}
	return nil
}

// HeatLevel returns the current heat level.
func (m *Monitor) HeatLevel() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.heatLevel
}

// CurrentTemperature returns the freshest temperature reading without
// advancing the simulation: the hardware value when available,
// otherwise the simulator's retained value.
func (m *Monitor) CurrentTemperature() float64 {
	if m.device != nil {
		v, err := m.device.ReadTemperature()
		if err == nil {
			return v
		}
		m.log.Debugw("hardware read failed, using simulator", "err", err)
	}
	return m.sim.Current()
}

// Status assembles the live status snapshot.
func (m *Monitor) Status() coffee_roaster.RoastStatus {
	temp := m.CurrentTemperature()
	return coffee_roaster.RoastStatus{
		IsRoasting:  m.session.Active(),
		Temperature: round1(temp),
		ElapsedTime: m.session.Elapsed(m.now()),
		RoastStage:  string(Stage(temp)),
		CrackStatus: m.session.Crack(),
	}
}

// run is the sampling loop. It only exits on stop or context cancel;
// tick failures are logged and followed by an extended backoff.
func (m *Monitor) run(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	lastDiag := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case now := <-ticker.C:
			if err := m.safeTick(now, &lastDiag); err != nil {
				m.log.Errorw("error in temperature monitoring", "err", err)
				// back off, but stay cancellable
				select {
				case <-ctx.Done():
					return
				case <-stop:
					return
				case <-time.After(errBackoff):
				}
			}
		}
	}
}

// safeTick runs one tick, converting panics from device reads or
// observers into an error so the loop never dies.
func (m *Monitor) safeTick(now time.Time, lastDiag *int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tick panic: %v", r)
		}
	}()

	if !m.session.Active() {
		return nil
	}

	temp := m.sample(now)
	elapsed := unixSeconds(now) - m.session.StartTime()

	m.session.Append(coffee_roaster.TemperaturePoint{
		Time:        round1(elapsed),
		Temperature: round1(temp),
	})

	onTemp, _, _ := m.observers()
	if onTemp != nil {
		onTemp(temp)
	}

	var events []CrackEvent
	m.session.withCrack(func(cs *coffee_roaster.CrackStatus) {
		events = m.detector.Evaluate(temp, elapsed, cs)
	})
	for _, ev := range events {
		m.handleCrack(ev, temp, elapsed)
	}

	if sec := int(elapsed); sec >= *lastDiag+diagEvery {
		m.log.Debugw("roast progress", "temperature", round1(temp), "elapsed_s", round1(elapsed))
		*lastDiag = sec
	}
	return nil
}

// sample obtains one temperature reading, preferring hardware and
// falling back to the simulator on any failure.
func (m *Monitor) sample(now time.Time) float64 {
	if m.device != nil {
		v, err := m.device.ReadTemperature()
		if err == nil {
			return v
		}
		m.log.Warnw("hardware read failed, falling back to simulator", "err", err)
	}
	return m.sim.Tick(m.HeatLevel(), now, false)
}

// handleCrack records the marker for a latched crack and notifies the
// matching observer. Exactly one marker per latch, per session.
func (m *Monitor) handleCrack(ev CrackEvent, temp, elapsed float64) {
	_, onFirst, onSecond := m.observers()
	switch ev {
	case FirstCrack:
		m.log.Infow("first crack detected", "elapsed_s", round1(elapsed), "temperature", round1(temp))
		m.session.AddMarker(elapsed, temp, firstCrackLabel, firstCrackColor, firstCrackNotes)
		if onFirst != nil {
			onFirst()
		}
	case SecondCrack:
		m.log.Infow("second crack detected", "elapsed_s", round1(elapsed), "temperature", round1(temp))
		m.session.AddMarker(elapsed, temp, secondCrackLabel, secondCrackColor, secondCrackNotes)
		if onSecond != nil {
			onSecond()
		}
	}
}
