package entities

import (
	"strings"
	"time"
)

// User holds profile data the ingestion pipeline reads. SessionToken is the
// upstream site cookie value, stored as an opaque credential; obtaining it is
// outside this service.
type User struct {
	ID               int64
	Email            string `gorm:"uniqueIndex"`
	FullName         string
	Location         string
	SessionToken     string
	Keywords         string
	ExperienceLevels string
	ResumeURL        string
	CreatedAt        time.Time
}

func NewUser(email, location, sessionToken string, keywords, experienceLevels []string, resumeURL string) *User {
	return &User{
		Email:            strings.ToLower(email),
		Location:         location,
		SessionToken:     sessionToken,
		Keywords:         strings.Join(keywords, ","),
		ExperienceLevels: strings.Join(experienceLevels, ","),
		ResumeURL:        resumeURL,
	}
}

func (u *User) KeywordsAsArray() []string {
	return splitNonEmpty(u.Keywords)
}

func (u *User) ExperienceLevelsAsArray() []string {
	return splitNonEmpty(u.ExperienceLevels)
}

// IsEligibleForIngestion reports whether the scheduler should fan out to this
// user: a stored session token and at least one search keyword.
func (u *User) IsEligibleForIngestion() bool {
	return u.SessionToken != "" && len(u.KeywordsAsArray()) > 0
}

func splitNonEmpty(joined string) []string {
	if joined == "" {
		return nil
	}

	var values []string
	for _, value := range strings.Split(joined, ",") {
		if value = strings.TrimSpace(value); value != "" {
			values = append(values, value)
		}
	}
	return values
}
