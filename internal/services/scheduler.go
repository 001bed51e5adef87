package services

import (
	"context"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/eladgl/jobscout/internal/entities"
	"github.com/eladgl/jobscout/internal/events"
	"github.com/eladgl/jobscout/internal/logger"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type userDirectory interface {
	GetEligibleForIngestion(ctx context.Context) ([]entities.User, error)
}

type pipelineRunner interface {
	RunForUser(ctx context.Context, req IngestRequest) error
}

type SchedulerConfig struct {
	CronSpec        string
	Timezone        string
	DefaultLocation string
}

// IngestScheduler fans the ingestion pipeline out over all eligible users and
// their keywords on a recurring schedule, and serves on-demand trigger events
// from the bus. Pairs run sequentially to bound load on the upstream site and
// the browser pool.
type IngestScheduler struct {
	cron            *cron.Cron
	users           userDirectory
	runner          pipelineRunner
	cronSpec        string
	defaultLocation string
	entryID         cron.EntryID
}

func NewIngestScheduler(bus EventBus.Bus, users userDirectory, runner pipelineRunner,
	cfg SchedulerConfig) (*IngestScheduler, error) {

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	s := &IngestScheduler{
		cron:            cron.New(cron.WithLocation(location)),
		users:           users,
		runner:          runner,
		cronSpec:        cfg.CronSpec,
		defaultLocation: cfg.DefaultLocation,
	}

	if err = bus.Subscribe(events.IngestRequestedTopic, s.onIngestRequested); err != nil {
		return nil, err
	}

	return s, nil
}

// Start registers the recurring fan-out. Calling it again is a no-op.
func (s *IngestScheduler) Start() error {

	if s.entryID != 0 {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cronSpec, s.runFanOut)
	if err != nil {
		return err
	}
	s.entryID = entryID

	s.cron.Start()
	log.Infof("ingestion scheduler started with spec %q", s.cronSpec)
	return nil
}

func (s *IngestScheduler) Stop() {
	s.cron.Stop()
}

func (s *IngestScheduler) runFanOut() {

	start := time.Now()
	log.Infof("running scheduled ingestion at %v", start)

	users, err := s.users.GetEligibleForIngestion(context.Background())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to get eligible users: %v", err)
		return
	}

	pairs := 0
	for _, user := range users {
		for _, keyword := range user.KeywordsAsArray() {
			s.runPair(user, keyword)
			pairs++
		}
	}

	log.Infof("scheduled ingestion handled %v (user, keyword) pairs in %v", pairs, time.Since(start))
}

// runPair contains one (user, keyword) failure to that pair: it is logged and
// the fan-out moves on.
func (s *IngestScheduler) runPair(user entities.User, keyword string) {

	location := user.Location
	if location == "" {
		location = s.defaultLocation
	}

	err := s.runner.RunForUser(context.Background(), IngestRequest{
		Email:            user.Email,
		Keyword:          keyword,
		Location:         location,
		ExperienceLevels: user.ExperienceLevelsAsArray(),
		ResumeURL:        user.ResumeURL,
		SessionToken:     user.SessionToken,
	})
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeLinkedin).
			Errorf("ingestion failed for %v (%v): %v", user.Email, keyword, err)
	}
}

// onIngestRequested serves the on-demand trigger path: the caller already got
// its acknowledgment, so the run is detached and self-contained.
func (s *IngestScheduler) onIngestRequested(event events.IngestRequested) {
	go func() {
		err := s.runner.RunForUser(context.Background(), IngestRequest{
			Email:            event.Email,
			Keyword:          event.Keyword,
			Location:         event.Location,
			ExperienceLevels: event.ExperienceLevels,
			ResumeURL:        event.ResumeURL,
			SessionToken:     event.SessionToken,
		})
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeLinkedin).
				Errorf("on-demand ingestion failed for %v (%v): %v", event.Email, event.Keyword, err)
		}
	}()
}
