package browser

import (
	"context"
	"sync"

	"github.com/chromedp/chromedp"
)

const defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/137.0.0.0 Safari/537.36"

type Config struct {
	// PoolSize caps how many tab sessions may be checked out at once.
	PoolSize  int
	Headless  bool
	UserAgent string
}

// Pool hands out isolated tab contexts backed by a shared Chrome process.
// A session must be released on every exit path; an unreleased session holds
// its slot and eventually starves the pool.
type Pool struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	slots       chan struct{}
}

func NewPool(ctx context.Context, cfg Config) *Pool {

	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 1
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(cfg.UserAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)

	slots := make(chan struct{}, cfg.PoolSize)
	for i := 0; i < cfg.PoolSize; i++ {
		slots <- struct{}{}
	}

	return &Pool{
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
		slots:       slots,
	}
}

// Acquire blocks until a session slot frees up and returns an isolated tab
// context. The release func must be called exactly once, success or failure.
func (p *Pool) Acquire(ctx context.Context) (context.Context, context.CancelFunc, error) {

	select {
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	case <-p.slots:
	}

	tabCtx, tabCancel := chromedp.NewContext(p.allocCtx)

	var once sync.Once
	release := func() {
		once.Do(func() {
			tabCancel()
			p.slots <- struct{}{}
		})
	}

	return tabCtx, release, nil
}

// Close tears down the shared browser process. Sessions in flight are
// canceled.
func (p *Pool) Close() {
	p.allocCancel()
}
