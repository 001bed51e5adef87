package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/eladgl/jobscout/internal/api"
	"github.com/eladgl/jobscout/internal/browser"
	"github.com/eladgl/jobscout/internal/clients/gemini"
	"github.com/eladgl/jobscout/internal/clients/linkedin"
	"github.com/eladgl/jobscout/internal/config"
	"github.com/eladgl/jobscout/internal/logger"
	"github.com/eladgl/jobscout/internal/metrics"
	"github.com/eladgl/jobscout/internal/repositories"
	"github.com/eladgl/jobscout/internal/services"
	log "github.com/sirupsen/logrus"
)

func buildIngestion(ctx context.Context, cfg *config.Config, pool *browser.Pool,
	jobs *repositories.Jobs) (*services.IngestionService, error) {

	aiClient, err := gemini.NewClient(ctx, cfg.Ingest.AIKey, cfg.Ingest.AIModel)
	if err != nil {
		return nil, err
	}
	if cfg.Ingest.AIMaxRequestsPerMinute > 0 {
		aiClient.SetMinuteRateLimit(cfg.Ingest.AIMaxRequestsPerMinute)
	}
	if cfg.Ingest.AIMaxRequestsPerDay > 0 {
		aiClient.SetDayRateLimit(cfg.Ingest.AIMaxRequestsPerDay)
	}

	linkedinClient := linkedin.NewClient()
	if cfg.Ingest.LinkedinMaxRequestsPerSecond > 0 {
		linkedinClient.SetRateLimit(cfg.Ingest.LinkedinMaxRequestsPerSecond)
	}

	enricher := services.NewDescriptionEnricher(pool, cfg.Ingest.DescriptionWaitTimeout)
	scorer := services.NewMatchScorer(aiClient)
	resumes := services.NewResumeTextService()

	return services.NewIngestionService(linkedinClient, enricher, scorer, resumes, jobs,
		cfg.Ingest.RecencyWindow, cfg.Ingest.FetchAttempts), nil
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(cfg.Logger)
	defer logger.Cleanup()

	metrics.Register()

	dbContext, err := repositories.NewDbContext(cfg.DB.ConnectionString)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	if err = dbContext.Migrate(); err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	users := repositories.NewUsersRepository(dbContext.DB)
	jobs := repositories.NewJobsRepository(dbContext.DB)

	pool := browser.NewPool(ctx, browser.Config{
		PoolSize: cfg.Ingest.BrowserPoolSize,
		Headless: cfg.Ingest.BrowserHeadless,
	})
	defer pool.Close()

	ingestion, err := buildIngestion(ctx, cfg, pool, jobs)
	if err != nil {
		log.Fatalf("can't create ingestion service: %v", err)
	}

	bus := EventBus.New()

	scheduler, err := services.NewIngestScheduler(bus, users, ingestion, services.SchedulerConfig{
		CronSpec:        cfg.Ingest.CronSpec,
		Timezone:        cfg.Ingest.Timezone,
		DefaultLocation: cfg.Ingest.DefaultLocation,
	})
	if err != nil {
		log.Fatalf("can't create scheduler: %v", err)
	}
	if err = scheduler.Start(); err != nil {
		log.Fatalf("can't start scheduler: %v", err)
	}
	defer scheduler.Stop()

	server := api.NewServer(bus, cfg.API.Port)
	server.Run()

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("api server shutdown failed: %v", err)
	}
	log.Info("Services stopped.")
}
