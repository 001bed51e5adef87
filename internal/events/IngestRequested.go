package events

var IngestRequestedTopic = "IngestRequestedEvent"

// IngestRequested asks for one (user, keyword) pipeline run, carrying the
// caller-supplied session token so the run needs no further lookups.
type IngestRequested struct {
	Email            string
	Keyword          string
	Location         string
	ExperienceLevels []string
	ResumeURL        string
	SessionToken     string
}
