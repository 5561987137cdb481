package service

import (
	"context"

	"coffee_roaster"
	"coffee_roaster/internal/logger"
	"coffee_roaster/internal/repository"
	"coffee_roaster/internal/roaster"
)

// Roast exposes control operations on the live session.
type Roast interface {
	Start(ctx context.Context) (float64, error)
	ForceStart(ctx context.Context) (float64, error)
	Pause(ctx context.Context) error
	Reset(ctx context.Context) error
	ForceReset(ctx context.Context) error
	SetHeat(ctx context.Context, level int) error
	AddMarker(p MarkerParams) coffee_roaster.Marker
	RemoveMarker(id string) bool
}

// Status exposes read-only views of the live roast.
type Status interface {
	Status() coffee_roaster.RoastStatus
	Temperature() float64
	Stage() string
	Data() []coffee_roaster.TemperaturePoint
	Crack() coffee_roaster.CrackStatus
	Markers() []coffee_roaster.Marker
}

// Sync reconciles a reconnecting client's state with the server's.
type Sync interface {
	Sync(req coffee_roaster.SyncRequest) coffee_roaster.SyncResponse
}

// RoastLogs exposes the persisted roast log store.
type RoastLogs interface {
	Save(ctx context.Context, p SaveRoastParams) (string, error)
	List(ctx context.Context) ([]coffee_roaster.RoastLog, error)
	Get(ctx context.Context, id string) (*coffee_roaster.RoastLog, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Service aggregates all sub-services behind one handle for the HTTP
// layer.
type Service struct {
	Roast
	Status
	Sync
	RoastLogs
}

// Deps carries the collaborators the services are wired from. BaseCtx
// is the process-lifetime context used when (re)starting the
// monitoring loop; request contexts must not own the loop.
type Deps struct {
	Repos      *repository.Repository
	Session    *roaster.Session
	Simulator  *roaster.Simulator
	Monitor    *roaster.Monitor
	Reconciler *roaster.StateReconciler
	Log        *logger.Logger
	BaseCtx    context.Context
}

// NewService wires the core and repository layers into services.
func NewService(d Deps) *Service {
	return &Service{
		Roast:     NewRoastService(d),
		Status:    NewStatusService(d.Session, d.Monitor),
		Sync:      NewSyncService(d.Reconciler),
		RoastLogs: NewLogService(d.Repos.RoastLogs, d.Session, d.Log),
	}
}
