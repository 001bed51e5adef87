package entities

import (
	"errors"
	"time"
)

type JobStatus string

const (
	StatusReadyToApply JobStatus = "ready_to_apply"
	StatusApplied      JobStatus = "applied"
	StatusInterviewing JobStatus = "interviewing"
	StatusOffer        JobStatus = "offer"
	StatusRejected     JobStatus = "rejected"
)

func ToJobStatus(s string) (JobStatus, error) {
	switch s {
	case string(StatusReadyToApply):
		return StatusReadyToApply, nil
	case string(StatusApplied):
		return StatusApplied, nil
	case string(StatusInterviewing):
		return StatusInterviewing, nil
	case string(StatusOffer):
		return StatusOffer, nil
	case string(StatusRejected):
		return StatusRejected, nil
	default:
		return "", errors.New("invalid job status")
	}
}

// Job is a scraped posting saved for exactly one user. The (UserID, ListingID)
// pair is unique: re-ingesting the same listing is a no-op.
type Job struct {
	ID          int
	UserID      int64
	ListingID   string
	Title       string
	Company     string
	Location    string
	PostedText  string
	PostedAt    *time.Time
	URL         string
	Salary      string
	CompanyLogo string
	AgoTime     string
	Description string
	MatchScore  int
	Status      JobStatus
	SavedAt     time.Time
	AppliedAt   *time.Time
	Notes       []Note
}

// Note is an append-only annotation owned exclusively by one job.
type Note struct {
	ID        int
	JobID     int
	Content   string
	CreatedAt time.Time
}
