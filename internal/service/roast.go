package service

import (
	"context"
	"errors"
	"time"

	"coffee_roaster"
	"coffee_roaster/internal/logger"
	"coffee_roaster/internal/roaster"
)

var (
	// ErrAlreadyRoasting rejects Start while a roast is in progress.
	// ForceStart bypasses this check for recovery flows.
	ErrAlreadyRoasting = errors.New("roast already in progress")

	// ErrNotRoasting rejects Pause when nothing is running.
	ErrNotRoasting = errors.New("no roast in progress")
)

// MarkerParams describes an operator-placed marker.
type MarkerParams struct {
	Time        float64
	Temperature float64
	Label       string
	Color       string
	Notes       string
}

const defaultMarkerColor = "#333333"

// RoastService implements roast control against the live session. The
// "already roasting" validation lives here at the boundary; the core
// session itself allows ForceStart as a one-step override.
type RoastService struct {
	session *roaster.Session
	sim     *roaster.Simulator
	monitor *roaster.Monitor
	log     *logger.Logger
	baseCtx context.Context
}

func NewRoastService(d Deps) *RoastService {
	return &RoastService{
		session: d.Session,
		sim:     d.Simulator,
		monitor: d.Monitor,
		log:     d.Log,
		baseCtx: d.BaseCtx,
	}
}

// Start begins a fresh roast and makes sure the sampling loop runs.
// Returns the start time as unix seconds.
func (s *RoastService) Start(ctx context.Context) (float64, error) {
	if s.session.Active() {
		return 0, ErrAlreadyRoasting
	}
	start := s.session.Start(time.Now())
	s.monitor.Start(s.baseCtx)
	s.log.Infow("roast started", "start_time", start)
	return start, nil
}

// ForceStart begins a fresh roast even when one is already active.
// Recovery use only.
func (s *RoastService) ForceStart(ctx context.Context) (float64, error) {
	start := s.session.ForceStart(time.Now())
	s.monitor.Start(s.baseCtx)
	s.log.Infow("roast force-started", "start_time", start)
	return start, nil
}

// Pause stops sampling without discarding any collected data.
func (s *RoastService) Pause(ctx context.Context) error {
	if !s.session.Active() {
		return ErrNotRoasting
	}
	s.session.Pause()
	s.log.Infow("roast paused")
	return nil
}

// Reset clears the session and returns the simulator to ambient.
func (s *RoastService) Reset(ctx context.Context) error {
	s.session.Reset()
	s.sim.Reset()
	s.log.Infow("roast reset")
	return nil
}

// ForceReset is the aggressive recovery path: it restarts the sampling
// loop around a full reset so a wedged loop cannot survive.
func (s *RoastService) ForceReset(ctx context.Context) error {
	s.monitor.Stop()
	s.session.Reset()
	s.sim.Reset()
	s.monitor.Start(s.baseCtx)
	s.log.Infow("roast force-reset, monitoring restarted")
	return nil
}

// SetHeat adjusts the heat level (1..10).
func (s *RoastService) SetHeat(ctx context.Context, level int) error {
	if err := s.monitor.SetHeat(level); err != nil {
		return err
	}
	s.log.Infow("heat level set", "level", level)
	return nil
}

// AddMarker places an operator annotation on the timeline.
func (s *RoastService) AddMarker(p MarkerParams) coffee_roaster.Marker {
	if p.Color == "" {
		p.Color = defaultMarkerColor
	}
	m := s.session.AddMarker(p.Time, p.Temperature, p.Label, p.Color, p.Notes)
	s.log.Infow("marker added", "label", m.Label, "time_s", m.Time, "temperature", m.Temperature)
	return m
}

// RemoveMarker deletes a marker by id.
func (s *RoastService) RemoveMarker(id string) bool {
	removed := s.session.RemoveMarker(id)
	if removed {
		s.log.Infow("marker removed", "id", id)
	}
	return removed
}
