package services

import (
	"context"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/eladgl/jobscout/internal/logger"
	log "github.com/sirupsen/logrus"
)

// DescriptionNotFound is stored when a detail page cannot be loaded or parsed.
// An empty description from a page that did render is valid and kept as "".
const DescriptionNotFound = "No description found"

const descriptionSelector = ".show-more-less-html__markup"

type browserPool interface {
	Acquire(ctx context.Context) (context.Context, context.CancelFunc, error)
}

// DescriptionEnricher loads job detail pages in isolated browser sessions and
// extracts the long-form description text.
type DescriptionEnricher struct {
	pool        browserPool
	waitTimeout time.Duration
}

func NewDescriptionEnricher(pool browserPool, waitTimeout time.Duration) *DescriptionEnricher {
	if waitTimeout <= 0 {
		waitTimeout = 20 * time.Second
	}
	return &DescriptionEnricher{pool: pool, waitTimeout: waitTimeout}
}

// Enrich never fails the batch: any navigation or extraction failure is logged
// and absorbed into the DescriptionNotFound sentinel. The session is released
// on every exit path.
func (e *DescriptionEnricher) Enrich(ctx context.Context, detailURL string) string {

	tabCtx, release, err := e.pool.Acquire(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeBrowser).
			Errorf("failed to acquire browser session: %v", err)
		return DescriptionNotFound
	}
	defer release()

	runCtx, cancel := context.WithTimeout(tabCtx, e.waitTimeout)
	defer cancel()

	var description string
	err = chromedp.Run(runCtx,
		chromedp.Navigate(detailURL),
		chromedp.WaitVisible(descriptionSelector, chromedp.ByQuery),
		chromedp.Text(descriptionSelector, &description, chromedp.ByQuery),
	)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeBrowser).
			Warnf("failed to fetch description from %v: %v", detailURL, err)
		return DescriptionNotFound
	}

	return strings.TrimSpace(description)
}
