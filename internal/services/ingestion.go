package services

import (
	"context"
	"time"

	"github.com/eladgl/jobscout/internal/clients/linkedin"
	"github.com/eladgl/jobscout/internal/entities"
	"github.com/eladgl/jobscout/internal/metrics"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type listingClient interface {
	Search(ctx context.Context, sessionToken string, parameters linkedin.SearchParameters) (string, error)
}

type descriptionEnricher interface {
	Enrich(ctx context.Context, detailURL string) string
}

type matchScorer interface {
	Score(ctx context.Context, jobDescription, resumeText string) int
}

type resumeTextProvider interface {
	Extract(ctx context.Context, resumeURL string) string
}

type jobStore interface {
	SaveNewForUser(ctx context.Context, email string, jobs []entities.Job) error
}

// IngestRequest identifies one (user, keyword) pipeline run.
type IngestRequest struct {
	Email            string
	Keyword          string
	Location         string
	ExperienceLevels []string
	ResumeURL        string
	SessionToken     string
}

// IngestionService runs the fetch, parse, enrich, score, persist pipeline.
// Failures below the fetch stage are absorbed per job; only fetch-level
// failures surface to the caller.
type IngestionService struct {
	listings      listingClient
	enricher      descriptionEnricher
	scorer        matchScorer
	resumes       resumeTextProvider
	jobs          jobStore
	recencyWindow time.Duration
	fetchAttempts int
}

func NewIngestionService(listings listingClient, enricher descriptionEnricher, scorer matchScorer,
	resumes resumeTextProvider, jobs jobStore, recencyWindow time.Duration, fetchAttempts int) *IngestionService {

	if recencyWindow <= 0 {
		recencyWindow = 2 * time.Hour
	}
	if fetchAttempts <= 0 {
		fetchAttempts = 3
	}

	return &IngestionService{
		listings:      listings,
		enricher:      enricher,
		scorer:        scorer,
		resumes:       resumes,
		jobs:          jobs,
		recencyWindow: recencyWindow,
		fetchAttempts: fetchAttempts,
	}
}

// RunForUser executes one pipeline run. Stages run strictly in order; a
// timeout in one job's enrichment degrades that job alone.
func (s *IngestionService) RunForUser(ctx context.Context, req IngestRequest) error {

	start := time.Now()
	defer func() {
		metrics.IngestionDuration.Observe(time.Since(start).Seconds())
	}()

	markup, err := s.fetchListings(ctx, req)
	if err != nil {
		return err
	}

	summaries := linkedin.ParseListings(markup)
	if len(summaries) == 0 {
		log.Infof("no listings for %v (%v)", req.Email, req.Keyword)
		return nil
	}

	resumeText := s.resumes.Extract(ctx, req.ResumeURL)

	jobs := make([]entities.Job, 0, len(summaries))
	for _, summary := range summaries {

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		jobs = append(jobs, s.enrichSummary(ctx, summary, resumeText))
	}

	stepStart := time.Now()
	err = s.jobs.SaveNewForUser(ctx, req.Email, jobs)
	metrics.IngestionStepDuration.WithLabelValues("persist").Observe(time.Since(stepStart).Seconds())
	return err
}

func (s *IngestionService) fetchListings(ctx context.Context, req IngestRequest) (string, error) {

	params := linkedin.SearchParameters{
		Keyword:          req.Keyword,
		Location:         req.Location,
		ExperienceLevels: req.ExperienceLevels,
		Recency:          s.recencyWindow,
	}

	var markup string
	var err error

	_, _, _ = lo.AttemptWhileWithDelay(s.fetchAttempts, 2*time.Second, func(i int, _ time.Duration) (error, bool) {
		if i > 0 {
			log.Warnf("listing fetch failed for %v (%v), retrying...", req.Email, req.Keyword)
		}
		stepStart := time.Now()
		markup, err = s.listings.Search(ctx, req.SessionToken, params)
		metrics.IngestionStepDuration.WithLabelValues("fetch").Observe(time.Since(stepStart).Seconds())
		return err, errors.Is(err, linkedin.ErrUpstreamUnavailable)
	})

	return markup, err
}

func (s *IngestionService) enrichSummary(ctx context.Context, summary linkedin.JobSummary, resumeText string) entities.Job {

	stepStart := time.Now()
	description := s.enricher.Enrich(ctx, summary.URL)
	metrics.IngestionStepDuration.WithLabelValues("enrich").Observe(time.Since(stepStart).Seconds())

	// No resume on file means the job stays unscored, not that scoring failed.
	score := 0
	if resumeText != "" && description != "" && description != DescriptionNotFound {
		stepStart = time.Now()
		score = s.scorer.Score(ctx, description, resumeText)
		metrics.IngestionStepDuration.WithLabelValues("score").Observe(time.Since(stepStart).Seconds())
	}

	return entities.Job{
		Title:       summary.Title,
		Company:     summary.Company,
		Location:    summary.Location,
		PostedText:  summary.PostedText,
		PostedAt:    summary.PostedAt,
		URL:         summary.URL,
		Salary:      summary.Salary,
		CompanyLogo: summary.CompanyLogo,
		AgoTime:     summary.AgoTime,
		Description: description,
		MatchScore:  score,
	}
}
