package handlers

import (
	"context"

	"coffee_roaster"
	"coffee_roaster/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockRoast struct {
	startTime     float64
	startErr      error
	startCalled   int
	forceStarted  int
	pauseErr      error
	pauseCalled   int
	resetErr      error
	resetCalled   int
	forceResetErr error
	forceResets   int
	setHeatErr    error
	lastHeat      int
	marker        coffee_roaster.Marker
	lastMarker    service.MarkerParams
	removeOK      bool
	lastRemoveID  string
}

func (m *mockRoast) Start(ctx context.Context) (float64, error) {
	m.startCalled++
	return m.startTime, m.startErr
}
func (m *mockRoast) ForceStart(ctx context.Context) (float64, error) {
	m.forceStarted++
	return m.startTime, nil
}
func (m *mockRoast) Pause(ctx context.Context) error {
	m.pauseCalled++
	return m.pauseErr
}
func (m *mockRoast) Reset(ctx context.Context) error {
	m.resetCalled++
	return m.resetErr
}
func (m *mockRoast) ForceReset(ctx context.Context) error {
	m.forceResets++
	return m.forceResetErr
}
func (m *mockRoast) SetHeat(ctx context.Context, level int) error {
	m.lastHeat = level
	return m.setHeatErr
}
func (m *mockRoast) AddMarker(p service.MarkerParams) coffee_roaster.Marker {
	m.lastMarker = p
	return m.marker
}
func (m *mockRoast) RemoveMarker(id string) bool {
	m.lastRemoveID = id
	return m.removeOK
}

type mockStatus struct {
	status  coffee_roaster.RoastStatus
	temp    float64
	stage   string
	data    []coffee_roaster.TemperaturePoint
	crack   coffee_roaster.CrackStatus
	markers []coffee_roaster.Marker
}

func (m *mockStatus) Status() coffee_roaster.RoastStatus      { return m.status }
func (m *mockStatus) Temperature() float64                    { return m.temp }
func (m *mockStatus) Stage() string                           { return m.stage }
func (m *mockStatus) Data() []coffee_roaster.TemperaturePoint { return m.data }
func (m *mockStatus) Crack() coffee_roaster.CrackStatus       { return m.crack }
func (m *mockStatus) Markers() []coffee_roaster.Marker        { return m.markers }

type mockSync struct {
	resp    coffee_roaster.SyncResponse
	lastReq coffee_roaster.SyncRequest
	calls   int
}

func (m *mockSync) Sync(req coffee_roaster.SyncRequest) coffee_roaster.SyncResponse {
	m.calls++
	m.lastReq = req
	return m.resp
}

type mockRoastLogs struct {
	saveID    string
	saveErr   error
	lastSave  service.SaveRoastParams
	listResp  []coffee_roaster.RoastLog
	listErr   error
	getResp   *coffee_roaster.RoastLog
	getErr    error
	deleteOK  bool
	deleteErr error
	lastLogID string
}

func (m *mockRoastLogs) Save(ctx context.Context, p service.SaveRoastParams) (string, error) {
	m.lastSave = p
	return m.saveID, m.saveErr
}
func (m *mockRoastLogs) List(ctx context.Context) ([]coffee_roaster.RoastLog, error) {
	return m.listResp, m.listErr
}
func (m *mockRoastLogs) Get(ctx context.Context, id string) (*coffee_roaster.RoastLog, error) {
	m.lastLogID = id
	return m.getResp, m.getErr
}
func (m *mockRoastLogs) Delete(ctx context.Context, id string) (bool, error) {
	m.lastLogID = id
	return m.deleteOK, m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
