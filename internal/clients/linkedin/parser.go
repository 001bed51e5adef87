package linkedin

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// ParseListings extracts job summaries from a search-results page. It never
// fails the whole batch: a listing missing title, company or detail URL is
// dropped, and unparsable markup yields an empty result with a debug log.
func ParseListings(markup string) []JobSummary {

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		log.Debugf("failed to parse listings markup: %v", err)
		return nil
	}

	cards := doc.Find("li")
	if cards.Length() == 0 {
		log.Debug("no listing cards found in markup")
		return nil
	}

	var summaries []JobSummary
	dropped := 0

	cards.Each(func(_ int, card *goquery.Selection) {
		summary, ok := parseCard(card)
		if !ok {
			dropped++
			return
		}
		summaries = append(summaries, summary)
	})

	if dropped > 0 {
		log.Debugf("dropped %v of %v listing cards with missing required fields", dropped, cards.Length())
	}

	return summaries
}

func parseCard(card *goquery.Selection) (JobSummary, bool) {

	summary := JobSummary{
		Title:    strings.TrimSpace(card.Find(".base-search-card__title").Text()),
		Company:  strings.TrimSpace(card.Find(".base-search-card__subtitle").Text()),
		Location: strings.TrimSpace(card.Find(".job-search-card__location").Text()),
		AgoTime:  strings.TrimSpace(card.Find(".job-search-card__listdate").Text()),
	}

	postedEl := card.Find("time")
	summary.PostedText = strings.ToLower(strings.TrimSpace(postedEl.Text()))
	if datetime, ok := postedEl.Attr("datetime"); ok {
		if posted, err := time.Parse("2006-01-02", datetime); err == nil {
			summary.PostedAt = &posted
		}
	}

	salary := strings.TrimSpace(card.Find(".job-search-card__salary-info").Text())
	summary.Salary = whitespaceRe.ReplaceAllString(salary, " ")
	if summary.Salary == "" {
		summary.Salary = SalaryNotSpecified
	}

	summary.URL, _ = card.Find("a.base-card__full-link").Attr("href")
	summary.CompanyLogo, _ = card.Find(".artdeco-entity-image").Attr("data-delayed-url")

	if summary.Title == "" || summary.Company == "" || summary.URL == "" {
		return JobSummary{}, false
	}

	return summary, true
}
