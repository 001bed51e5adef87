package linkedin

import (
	"regexp"
	"time"
)

// SalaryNotSpecified is the sentinel stored when a listing carries no salary.
const SalaryNotSpecified = "Not specified"

// JobSummary is one search-result card as parsed from the listings page,
// before description enrichment.
type JobSummary struct {
	Title       string
	Company     string
	Location    string
	PostedText  string
	PostedAt    *time.Time
	URL         string
	Salary      string
	CompanyLogo string
	AgoTime     string
}

// listingIDRe matches both /jobs/view/3912004521 and
// /jobs/view/senior-engineer-at-acme-3912004521, with or without a query string.
var listingIDRe = regexp.MustCompile(`/jobs/view/[^?]*?(\d{7,})`)

// ListingID derives the stable dedup identifier from a job detail URL.
// Derivation fails closed: a URL without the expected shape yields ok=false
// instead of a collision-prone fallback.
func ListingID(detailURL string) (string, bool) {
	if m := listingIDRe.FindStringSubmatch(detailURL); m != nil {
		return m[1], true
	}
	return "", false
}
