package linkedin

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

var (
	// ErrAuthExpired means the upstream rejected the session token, typically
	// by redirecting to the login page.
	ErrAuthExpired = errors.New("linkedin session expired or invalid")
	// ErrUpstreamUnavailable means a network failure or 5xx from the listings
	// endpoint; the next scheduled run retries naturally.
	ErrUpstreamUnavailable = errors.New("linkedin unavailable")
)

const searchURL = "https://www.linkedin.com/jobs-guest/jobs/api/seeMoreJobPostings/search"

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/137.0.0.0 Safari/537.36"

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

func NewClient() *Client {
	return &Client{httpClient: &http.Client{
		Timeout: 30 * time.Second,
		// A redirect signals an expired session being bounced to the login
		// page; following it would hand the parser login-page HTML.
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

// Search fetches one page of the public search-results feed and returns its
// raw markup. An empty-results page is a success, not an error.
func (c *Client) Search(ctx context.Context, sessionToken string, parameters SearchParameters) (string, error) {

	if err := parameters.Validate(); err != nil {
		return "", fmt.Errorf("invalid parameters: %w", err)
	}

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, "GET", searchURL+"?"+parameters.ToUrlParams().Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cookie", SessionCookieName+"="+sessionToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrapf(ErrUpstreamUnavailable, "error sending request: %v", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) (string, error) {

	switch {
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		return "", errors.Wrapf(ErrAuthExpired, "redirected to %v", resp.Header.Get("Location"))
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", errors.Wrapf(ErrAuthExpired, "status %v", resp.StatusCode)
	case resp.StatusCode >= 500:
		return "", errors.Wrapf(ErrUpstreamUnavailable, "status %v", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrapf(ErrUpstreamUnavailable, "error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("request failed with status %v, body: %v", resp.StatusCode, string(body))
	}

	return string(body), nil
}
