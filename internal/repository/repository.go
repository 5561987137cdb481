package repository

import (
	"context"
	"database/sql"

	"coffee_roaster"
)

// RoastLogRepo persists completed roast records. Get returns (nil,
// nil) when the id is unknown; Delete reports whether a row was
// removed.
type RoastLogRepo interface {
	Save(ctx context.Context, log coffee_roaster.RoastLog) (string, error)
	List(ctx context.Context) ([]coffee_roaster.RoastLog, error)
	Get(ctx context.Context, id string) (*coffee_roaster.RoastLog, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Repository bundles all persistence behind one constructor.
type Repository struct {
	RoastLogs RoastLogRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		RoastLogs: NewRoastLogSQLite(db),
	}
}
