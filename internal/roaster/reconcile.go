package roaster

import (
	"time"

	"coffee_roaster"
	"coffee_roaster/internal/logger"
)

// StateReconciler merges a reconnecting client's roast state into the
// server's authoritative state. The merge is deliberately one-sided:
// the client wins on every field it populated, because only one client
// is assumed connected at a time. Missing fields leave the matching
// server state untouched.
type StateReconciler struct {
	session *Session
	sim     *Simulator
	monitor *Monitor
	log     *logger.Logger
	now     func() time.Time
}

// NewStateReconciler wires a reconciler over the live session.
func NewStateReconciler(session *Session, sim *Simulator, monitor *Monitor, log *logger.Logger) *StateReconciler {
	return &StateReconciler{
		session: session,
		sim:     sim,
		monitor: monitor,
		log:     log,
		now:     time.Now,
	}
}

// Reconcile applies the client-reported state and returns the merged
// authoritative view. A client with no samples changes nothing.
func (r *StateReconciler) Reconcile(req coffee_roaster.SyncRequest) coffee_roaster.SyncResponse {
	if len(req.Data) > 0 {
		r.merge(req)
	}
	return r.view()
}

func (r *StateReconciler) merge(req coffee_roaster.SyncRequest) {
	wasActive := r.session.Active()

	// The whole merge runs as one critical section inside the session,
	// so a concurrent sampling tick lands entirely before or entirely
	// after it. Anything interleaved would record a sample against a
	// not-yet-restored start time and then block the restore.
	last, restored := r.session.ApplySync(req)

	if wasActive != req.IsRoasting {
		r.log.Infow("sync: adopting client activity flag", "client_roasting", req.IsRoasting)
	}
	if restored {
		// The simulator continues from the last restored temperature.
		r.sim.SetCurrent(last)
		r.log.Infow("sync: restored data points from client", "count", len(req.Data))
	}
	if req.CrackStatus != nil {
		r.log.Infow("sync: restored crack status",
			"first", req.CrackStatus.First, "second", req.CrackStatus.Second)
	}
	if len(req.Markers) > 0 {
		r.log.Infow("sync: restored markers", "count", len(req.Markers))
	}
}

// view assembles the post-merge authoritative state.
func (r *StateReconciler) view() coffee_roaster.SyncResponse {
	temp := r.sim.Current()
	if r.monitor != nil {
		temp = r.monitor.CurrentTemperature()
	}
	return coffee_roaster.SyncResponse{
		IsRoasting:  r.session.Active(),
		Temperature: round1(temp),
		ElapsedTime: r.session.Elapsed(r.now()),
		StartTime:   r.session.StartTime(),
		DataPoints:  r.session.Samples(),
		CrackStatus: r.session.Crack(),
		Markers:     r.session.Markers(),
	}
}
