package service

import (
	"coffee_roaster"
	"coffee_roaster/internal/roaster"
)

// SyncService runs the state reconciliation invoked on a client
// reconnect.
type SyncService struct {
	reconciler *roaster.StateReconciler
}

func NewSyncService(reconciler *roaster.StateReconciler) *SyncService {
	return &SyncService{reconciler: reconciler}
}

func (s *SyncService) Sync(req coffee_roaster.SyncRequest) coffee_roaster.SyncResponse {
	return s.reconciler.Reconcile(req)
}
