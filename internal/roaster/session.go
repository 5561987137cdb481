package roaster

import (
	"math"
	"sync"
	"time"

	"coffee_roaster"
)

// Session owns the state of the single live roast: activity flag,
// start time, sample sequence, marker timeline, and crack latch. All
// fields are guarded by one mutex; only the Monitor and the
// StateReconciler mutate a Session, everything else reads snapshots.
type Session struct {
	mu        sync.Mutex
	active    bool
	startTime float64 // unix seconds; 0 means never started
	samples   []coffee_roaster.TemperaturePoint
	timeline  *MarkerTimeline
	crack     coffee_roaster.CrackStatus
}

// NewSession returns an empty, inactive session.
func NewSession() *Session {
	return &Session{timeline: NewMarkerTimeline()}
}

// unixSeconds converts a time.Time to fractional unix seconds, the
// representation shared with clients over the sync protocol.
func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

// round1 rounds to one decimal, the storage precision for samples.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Start resets all session state and activates sampling. Returns the
// new start time as unix seconds.
func (s *Session) Start(now time.Time) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
	s.active = true
	s.startTime = unixSeconds(now)
	return s.startTime
}

// ForceStart behaves like Start but is explicitly permitted while a
// roast is already active. Recovery flows use it as a one-step
// override; normal callers go through the boundary validation instead.
func (s *Session) ForceStart(now time.Time) float64 {
	return s.Start(now)
}

// Pause deactivates sampling without clearing any collected data.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
}

// Reset returns the session to its initial empty state. The caller is
// responsible for resetting the simulator alongside.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Session) resetLocked() {
	s.active = false
	s.startTime = 0
	s.samples = nil
	s.timeline.Clear()
	s.crack = coffee_roaster.CrackStatus{}
}

// Active reports whether sampling is live.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// ApplySync applies a client-reported state in one critical section,
// so a concurrent sampling tick can land before or after the merge but
// never inside it. The activity flag is adopted directly, bypassing the
// normal start validation and its state reset; samples are restored
// only when the server has none. Returns the temperature of the last
// restored sample and whether samples were restored, so the caller can
// realign the simulator.
func (s *Session) ApplySync(req coffee_roaster.SyncRequest) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = req.IsRoasting

	var (
		lastTemp float64
		restored bool
	)
	if len(s.samples) == 0 && len(req.Data) > 0 {
		lastTemp, restored = s.restoreSamplesLocked(req.Data)
	}
	if req.StartTime > 0 {
		s.startTime = req.StartTime
	}
	if req.CrackStatus != nil {
		s.crack = copyCrack(*req.CrackStatus)
	}
	if len(req.Markers) > 0 {
		s.timeline.Restore(req.Markers)
	}
	return lastTemp, restored
}

// StartTime returns the roast start as unix seconds, 0 if unset.
func (s *Session) StartTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startTime
}

// SetStartTime overwrites the start time. Non-positive values are
// ignored, so a client that never reported a start cannot zero it.
func (s *Session) SetStartTime(start float64) {
	if start <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startTime = start
}

// Elapsed returns seconds since roast start at the given instant, or 0
// when the session is inactive.
func (s *Session) Elapsed(now time.Time) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active || s.startTime == 0 {
		return 0
	}
	return unixSeconds(now) - s.startTime
}

// Append records one sample. Appends from the sampling loop are
// monotonic in time; restored sequences may not be, which is accepted.
func (s *Session) Append(p coffee_roaster.TemperaturePoint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = append(s.samples, p)
}

// Samples returns a defensive copy of the sample sequence.
func (s *Session) Samples() []coffee_roaster.TemperaturePoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]coffee_roaster.TemperaturePoint, len(s.samples))
	copy(out, s.samples)
	return out
}

// SampleCount returns the number of recorded samples.
func (s *Session) SampleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.samples)
}

// RestoreSamples wholesale-replaces the sample sequence from an
// external source (deep copy, no merge). Returns the temperature of
// the last restored point so the caller can realign the simulator, and
// false when the input was empty and nothing changed.
func (s *Session) RestoreSamples(points []coffee_roaster.TemperaturePoint) (float64, bool) {
	if len(points) == 0 {
		return 0, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restoreSamplesLocked(points)
}

func (s *Session) restoreSamplesLocked(points []coffee_roaster.TemperaturePoint) (float64, bool) {
	s.samples = make([]coffee_roaster.TemperaturePoint, len(points))
	copy(s.samples, points)
	return s.samples[len(s.samples)-1].Temperature, true
}

// Crack returns a deep copy of the crack latch state.
func (s *Session) Crack() coffee_roaster.CrackStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyCrack(s.crack)
}

// withCrack runs fn with the live crack status under the session lock.
// The Monitor uses this to latch cracks atomically with the detector.
func (s *Session) withCrack(fn func(*coffee_roaster.CrackStatus)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.crack)
}

// RestoreCrack unconditionally overwrites the latch state and
// timestamps. This is a true restore: it can both advance and regress
// the latch, letting a reconnecting client be authoritative.
func (s *Session) RestoreCrack(cs coffee_roaster.CrackStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.crack = copyCrack(cs)
}

func copyCrack(cs coffee_roaster.CrackStatus) coffee_roaster.CrackStatus {
	out := coffee_roaster.CrackStatus{First: cs.First, Second: cs.Second}
	if cs.FirstTime != nil {
		t := *cs.FirstTime
		out.FirstTime = &t
	}
	if cs.SecondTime != nil {
		t := *cs.SecondTime
		out.SecondTime = &t
	}
	return out
}

// AddMarker places an annotation on the timeline and returns it.
func (s *Session) AddMarker(time, temp float64, label, color, notes string) coffee_roaster.Marker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeline.Add(time, temp, label, color, notes)
}

// RemoveMarker deletes a marker by id.
func (s *Session) RemoveMarker(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeline.Remove(id)
}

// Markers returns a defensive copy of the marker set in insertion
// order.
func (s *Session) Markers() []coffee_roaster.Marker {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeline.All()
}

// RestoreMarkers wholesale-replaces the marker set.
func (s *Session) RestoreMarkers(markers []coffee_roaster.Marker) {
	if len(markers) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeline.Restore(markers)
}
