package repositories

import (
	"context"
	"time"

	"github.com/eladgl/jobscout/internal/clients/linkedin"
	"github.com/eladgl/jobscout/internal/entities"
	"github.com/eladgl/jobscout/internal/logger"
	"github.com/eladgl/jobscout/internal/metrics"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrNotOwner is returned when a note append targets a job the user does not own.
var ErrNotOwner = errors.New("job belongs to another user")

type Jobs struct {
	db    *gorm.DB
	users *Users
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db, users: NewUsersRepository(db)}
}

// SaveNewForUser persists the previously-unseen jobs of a batch for the user
// with the given email. Re-ingesting an already saved listing is a no-op, an
// unresolvable user skips the whole batch with a warning, and a failure on one
// record does not abort the rest.
func (repo *Jobs) SaveNewForUser(ctx context.Context, email string, jobs []entities.Job) error {

	if email == "" || len(jobs) == 0 {
		return nil
	}

	user, err := repo.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		log.Warnf("user %v not found, skipping %v jobs", email, len(jobs))
		return nil
	}

	for _, job := range jobs {
		listingID, ok := linkedin.ListingID(job.URL)
		if !ok {
			log.Warnf("can't derive listing id from %v, skipping", job.URL)
			metrics.DroppedListingsCounter.Inc()
			continue
		}

		saved, err := repo.isSavedForUser(ctx, user.ID, listingID)
		if err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to check if job %v is saved for user: %v", listingID, err)
			continue
		}
		if saved {
			metrics.DuplicateJobsCounter.Inc()
			continue
		}

		job.UserID = user.ID
		job.ListingID = listingID
		job.Status = entities.StatusReadyToApply
		job.SavedAt = time.Now()

		if err = repo.db.WithContext(ctx).Create(&job).Error; err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to save job %v for user %v: %v", listingID, email, err)
			continue
		}
		metrics.SavedJobsCounter.Inc()
	}

	return nil
}

func (repo *Jobs) isSavedForUser(ctx context.Context, userID int64, listingID string) (bool, error) {

	var job entities.Job
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		First(&job).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (repo *Jobs) GetByUser(ctx context.Context, userID int64, status entities.JobStatus) ([]entities.Job, error) {

	query := repo.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var jobs []entities.Job
	if err := query.Order("saved_at DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// UpdateStatus moves a job through its lifecycle. The first transition to
// applied stamps AppliedAt; later re-applications leave it untouched.
// Returns nil without an error when the job does not exist.
func (repo *Jobs) UpdateStatus(ctx context.Context, jobID int, status entities.JobStatus) (*entities.Job, error) {

	job, err := repo.getByID(ctx, jobID)
	if err != nil || job == nil {
		return nil, err
	}

	updates := map[string]any{"status": status}
	if status == entities.StatusApplied && job.AppliedAt == nil {
		updates["applied_at"] = time.Now()
	}

	err = repo.db.WithContext(ctx).Model(&entities.Job{}).Where("id = ?", jobID).Updates(updates).Error
	if err != nil {
		return nil, err
	}

	return repo.getByID(ctx, jobID)
}

// AddNote appends a note to a job owned by userID and returns the job's notes,
// newest first.
func (repo *Jobs) AddNote(ctx context.Context, jobID int, userID int64, content string) ([]entities.Note, error) {

	job, err := repo.getByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, errors.Errorf("job not found: %v", jobID)
	}
	if job.UserID != userID {
		return nil, ErrNotOwner
	}

	note := entities.Note{JobID: jobID, Content: content, CreatedAt: time.Now()}
	if err = repo.db.WithContext(ctx).Create(&note).Error; err != nil {
		return nil, err
	}

	return repo.GetNotes(ctx, jobID)
}

func (repo *Jobs) GetNotes(ctx context.Context, jobID int) ([]entities.Note, error) {

	var notes []entities.Note
	err := repo.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (repo *Jobs) getByID(ctx context.Context, jobID int) (*entities.Job, error) {

	var job entities.Job
	err := repo.db.WithContext(ctx).First(&job, "id = ?", jobID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}
