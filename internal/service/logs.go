package service

import (
	"context"
	"errors"
	"time"

	"coffee_roaster"
	"coffee_roaster/internal/logger"
	"coffee_roaster/internal/repository"
	"coffee_roaster/internal/roaster"
)

// ErrNoData rejects saving a roast that produced no samples.
var ErrNoData = errors.New("no roast data to save")

// SaveRoastParams names the roast being persisted.
type SaveRoastParams struct {
	Name    string
	Profile string
	Notes   string
}

const dateLayout = "2006-01-02 15:04:05"

// LogService builds persisted roast records from the live session and
// delegates storage to the repository.
type LogService struct {
	repo    repository.RoastLogRepo
	session *roaster.Session
	log     *logger.Logger
}

func NewLogService(repo repository.RoastLogRepo, session *roaster.Session, log *logger.Logger) *LogService {
	return &LogService{repo: repo, session: session, log: log}
}

// Save correlates markers onto the sample curve and persists the
// result. The store assigns and returns the record id.
func (s *LogService) Save(ctx context.Context, p SaveRoastParams) (string, error) {
	samples := s.session.Samples()
	if len(samples) == 0 {
		return "", ErrNoData
	}
	markers := s.session.Markers()

	now := time.Now()
	record := coffee_roaster.RoastLog{
		Timestamp:   float64(now.UnixNano()) / float64(time.Second),
		Date:        now.Format(dateLayout),
		Name:        p.Name,
		Profile:     p.Profile,
		Notes:       p.Notes,
		Duration:    samples[len(samples)-1].Time,
		Data:        roaster.CorrelateToSamples(samples, markers),
		Markers:     markers,
		CrackStatus: s.session.Crack(),
	}

	id, err := s.repo.Save(ctx, record)
	if err != nil {
		return "", err
	}
	s.log.Infow("roast log saved", "id", id, "name", p.Name, "points", len(samples))
	return id, nil
}

func (s *LogService) List(ctx context.Context) ([]coffee_roaster.RoastLog, error) {
	return s.repo.List(ctx)
}

func (s *LogService) Get(ctx context.Context, id string) (*coffee_roaster.RoastLog, error) {
	return s.repo.Get(ctx, id)
}

func (s *LogService) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
