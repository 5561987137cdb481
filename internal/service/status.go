package service

import (
	"coffee_roaster"
	"coffee_roaster/internal/roaster"
)

// StatusService serves read-only snapshots of the live roast. All
// returned collections are defensive copies.
type StatusService struct {
	session *roaster.Session
	monitor *roaster.Monitor
}

func NewStatusService(session *roaster.Session, monitor *roaster.Monitor) *StatusService {
	return &StatusService{session: session, monitor: monitor}
}

func (s *StatusService) Status() coffee_roaster.RoastStatus {
	return s.monitor.Status()
}

func (s *StatusService) Temperature() float64 {
	return s.monitor.CurrentTemperature()
}

func (s *StatusService) Stage() string {
	return string(roaster.Stage(s.monitor.CurrentTemperature()))
}

func (s *StatusService) Data() []coffee_roaster.TemperaturePoint {
	return s.session.Samples()
}

func (s *StatusService) Crack() coffee_roaster.CrackStatus {
	return s.session.Crack()
}

func (s *StatusService) Markers() []coffee_roaster.Marker {
	return s.session.Markers()
}
