package linkedin

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// experienceCodes maps experience-level names to LinkedIn f_E filter codes.
var experienceCodes = map[string]string{
	"internship":  "1",
	"entry level": "2",
	"associate":   "3",
	"senior":      "4",
	"director":    "5",
	"executive":   "6",
}

type SearchParameters struct {
	Keyword          string
	Location         string
	ExperienceLevels []string
	// Recency restricts results to listings posted within the window,
	// encoded as LinkedIn's relative-seconds f_TPR filter.
	Recency time.Duration
	Start   int
}

func (s SearchParameters) Validate() error {

	if s.Keyword == "" {
		return fmt.Errorf("keyword must not be empty")
	}

	if s.Recency < 0 {
		return fmt.Errorf("recency window must be non-negative")
	}

	if s.Start < 0 {
		return fmt.Errorf("start must be non-negative")
	}

	return nil
}

func (s SearchParameters) ToUrlParams() url.Values {

	params := url.Values{}
	params.Add("keywords", s.Keyword)

	if s.Location != "" {
		params.Add("location", s.Location)
	}

	if codes := s.experienceFilter(); codes != "" {
		params.Add("f_E", codes)
	}

	if s.Recency > 0 {
		params.Add("f_TPR", "r"+strconv.Itoa(int(s.Recency.Seconds())))
	}

	if s.Start > 0 {
		params.Add("start", strconv.Itoa(s.Start))
	}

	return params
}

// experienceFilter joins the filter codes of recognized levels in input order.
// Unknown level names are dropped, not rejected.
func (s SearchParameters) experienceFilter() string {
	var codes []string
	for _, level := range s.ExperienceLevels {
		if code, ok := experienceCodes[strings.ToLower(level)]; ok {
			codes = append(codes, code)
		}
	}
	return strings.Join(codes, ",")
}
