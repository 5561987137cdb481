package roaster

import (
	"context"
	"errors"
	"testing"
	"time"

	"coffee_roaster/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.Get(logger.ErrorLevel, "")
}

// stubDevice plays back a scripted sequence of readings, repeating the
// last one when exhausted.
type stubDevice struct {
	temps []float64
	err   error
	i     int

	heatLevels []int
	heatErr    error
}

func (d *stubDevice) ReadTemperature() (float64, error) {
	if d.err != nil {
		return 0, d.err
	}
	if len(d.temps) == 0 {
		return 0, errors.New("no readings scripted")
	}
	v := d.temps[d.i]
	if d.i < len(d.temps)-1 {
		d.i++
	}
	return v, nil
}

func (d *stubDevice) SetHeat(level int) error {
	d.heatLevels = append(d.heatLevels, level)
	return d.heatErr
}

func newTestMonitor(t *testing.T, device TemperatureSource) (*Monitor, *Session, *Simulator) {
	t.Helper()
	session := NewSession()
	sim := newTestSimulator()
	mon := NewMonitor(MonitorConfig{
		Session:   session,
		Simulator: sim,
		Device:    device,
		HeatLevel: 10,
		Log:       testLogger(),
	})
	return mon, session, sim
}

func TestMonitor_TickSkipsWhenInactive(t *testing.T) {
	mon, session, _ := newTestMonitor(t, nil)

	lastDiag := 0
	if err := mon.safeTick(time.Now(), &lastDiag); err != nil {
		t.Fatalf("safeTick: %v", err)
	}
	if session.SampleCount() != 0 {
		t.Fatalf("inactive session accumulated samples")
	}
}

func TestMonitor_TickAppendsRoundedSample(t *testing.T) {
	device := &stubDevice{temps: []float64{123.456}}
	mon, session, _ := newTestMonitor(t, device)

	var observed []float64
	mon.OnTemperature(func(v float64) { observed = append(observed, v) })

	start := time.Unix(1_700_000_000, 0)
	session.Start(start)

	lastDiag := 0
	if err := mon.safeTick(start.Add(time.Second), &lastDiag); err != nil {
		t.Fatalf("safeTick: %v", err)
	}

	samples := session.Samples()
	if len(samples) != 1 {
		t.Fatalf("sample count = %d, want 1", len(samples))
	}
	if samples[0].Time != 1.0 || samples[0].Temperature != 123.5 {
		t.Fatalf("sample = %+v, want {1.0 123.5}", samples[0])
	}
	// observers see the raw reading, not the rounded stored value
	if len(observed) != 1 || observed[0] != 123.456 {
		t.Fatalf("observed = %v, want [123.456]", observed)
	}
}

func TestMonitor_DeviceErrorFallsBackToSimulator(t *testing.T) {
	device := &stubDevice{err: errors.New("sensor offline")}
	mon, session, sim := newTestMonitor(t, device)

	start := time.Unix(1_700_000_000, 0)
	session.Start(start)

	lastDiag := 0
	if err := mon.safeTick(start.Add(time.Second), &lastDiag); err != nil {
		t.Fatalf("safeTick: %v", err)
	}
	if session.SampleCount() != 1 {
		t.Fatalf("fallback tick recorded no sample")
	}
	if sim.Current() == DefaultAmbient {
		t.Fatalf("simulator was not advanced on fallback")
	}
}

func TestMonitor_CrackLatchFiresOnce(t *testing.T) {
	// cross the first band, dip out, cross again
	device := &stubDevice{temps: []float64{360, 370, 350, 372, 375}}
	mon, session, _ := newTestMonitor(t, device)

	firstFired := 0
	mon.OnFirstCrack(func() { firstFired++ })

	start := time.Unix(1_700_000_000, 0)
	session.Start(start)

	lastDiag := 0
	for i := 1; i <= 5; i++ {
		now := start.Add(time.Duration(i) * time.Second)
		if err := mon.safeTick(now, &lastDiag); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}

	if firstFired != 1 {
		t.Fatalf("first crack observer fired %d times, want 1", firstFired)
	}
	cs := session.Crack()
	if !cs.First || cs.FirstTime == nil || *cs.FirstTime != 2 {
		t.Fatalf("crack status = %+v, want first latched at elapsed 2", cs)
	}

	markers := session.Markers()
	if len(markers) != 1 {
		t.Fatalf("marker count = %d, want exactly 1", len(markers))
	}
	m := markers[0]
	if m.Label != "First Crack" || m.Color != "#FF5733" || m.Notes != "First crack detected" {
		t.Fatalf("crack marker = %+v", m)
	}
	if m.Time != 2 || m.Temperature != 370 {
		t.Fatalf("crack marker placed at (%.1f, %.1f), want (2, 370)", m.Time, m.Temperature)
	}
}

func TestMonitor_SimulatedRoastReachesFirstCrack(t *testing.T) {
	mon, session, _ := newTestMonitor(t, nil)

	start := time.Unix(1_700_000_000, 0)
	session.Start(start)

	lastDiag := 0
	latched := false
	for i := 1; i <= 20000; i++ {
		now := start.Add(time.Duration(i) * 200 * time.Millisecond)
		if err := mon.safeTick(now, &lastDiag); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
		if session.Crack().First {
			latched = true
			break
		}
	}
	if !latched {
		t.Fatalf("simulated roast at heat 10 never reached first crack")
	}

	markers := session.Markers()
	if len(markers) != 1 || markers[0].Label != "First Crack" {
		t.Fatalf("markers after latch = %+v", markers)
	}
	if temp := markers[0].Temperature; !InFirstCrackRange(temp) {
		t.Fatalf("latch temperature %.2f outside the first crack band", temp)
	}
	if *session.Crack().FirstTime != markers[0].Time {
		t.Fatalf("crack time and marker time diverged")
	}
}

func TestMonitor_SetHeat(t *testing.T) {
	device := &stubDevice{temps: []float64{100}}
	mon, _, _ := newTestMonitor(t, device)

	if err := mon.SetHeat(0); err == nil {
		t.Fatalf("SetHeat(0) accepted an out-of-range level")
	}
	if err := mon.SetHeat(11); err == nil {
		t.Fatalf("SetHeat(11) accepted an out-of-range level")
	}

	if err := mon.SetHeat(7); err != nil {
		t.Fatalf("SetHeat(7): %v", err)
	}
	if got := mon.HeatLevel(); got != 7 {
		t.Fatalf("heat level = %d, want 7", got)
	}
	if len(device.heatLevels) != 1 || device.heatLevels[0] != 7 {
		t.Fatalf("hardware heat calls = %v, want [7]", device.heatLevels)
	}

	// a failing relay must not fail the request
	device.heatErr = errors.New("relay stuck")
	if err := mon.SetHeat(3); err != nil {
		t.Fatalf("SetHeat with hardware failure: %v", err)
	}
}

func TestMonitor_TickRecoversFromObserverPanic(t *testing.T) {
	device := &stubDevice{temps: []float64{100}}
	mon, session, _ := newTestMonitor(t, device)
	mon.OnTemperature(func(float64) { panic("observer bug") })

	start := time.Unix(1_700_000_000, 0)
	session.Start(start)

	lastDiag := 0
	if err := mon.safeTick(start.Add(time.Second), &lastDiag); err == nil {
		t.Fatalf("panicking observer did not surface as an error")
	}
}

func TestMonitor_StartStop(t *testing.T) {
	mon, _, _ := newTestMonitor(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mon.Start(ctx)
	if !mon.Running() {
		t.Fatalf("monitor not running after Start")
	}
	mon.Start(ctx) // second Start is a no-op
	if !mon.Running() {
		t.Fatalf("repeated Start stopped the monitor")
	}

	mon.Stop()
	if mon.Running() {
		t.Fatalf("monitor still running after Stop")
	}
	mon.Stop() // stopping again is harmless
}

func TestMonitor_ObserverRegisteredWhileRunning(t *testing.T) {
	device := &stubDevice{temps: []float64{150.0}}
	session := NewSession()
	sim := newTestSimulator()
	mon := NewMonitor(MonitorConfig{
		Session:   session,
		Simulator: sim,
		Device:    device,
		Interval:  time.Millisecond,
		HeatLevel: 10,
		Log:       testLogger(),
	})

	session.Start(time.Now())
	mon.Start(context.Background())
	defer mon.Stop()

	// The loop is already ticking; a late registration must be safe
	// and visible to subsequent ticks.
	seen := make(chan float64, 1)
	mon.OnTemperature(func(v float64) {
		select {
		case seen <- v:
		default:
		}
	})

	select {
	case v := <-seen:
		if v != 150.0 {
			t.Fatalf("observed %.1f, want 150.0", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("observer registered after Start never fired")
	}
}

func TestMonitor_Status(t *testing.T) {
	device := &stubDevice{temps: []float64{312.34}}
	mon, session, _ := newTestMonitor(t, device)
	mon.now = func() time.Time { return time.Unix(1_700_000_090, 0) }

	session.Start(time.Unix(1_700_000_000, 0))

	st := mon.Status()
	if !st.IsRoasting {
		t.Fatalf("status not roasting")
	}
	if st.Temperature != 312.3 {
		t.Fatalf("temperature = %.2f, want 312.3", st.Temperature)
	}
	if st.ElapsedTime != 90 {
		t.Fatalf("elapsed = %.1f, want 90", st.ElapsedTime)
	}
	if st.RoastStage != string(StageLightBrown) {
		t.Fatalf("stage = %q, want %q", st.RoastStage, StageLightBrown)
	}
}
