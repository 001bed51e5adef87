package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

// DefaultModel balances cost and quality for short scoring prompts.
const DefaultModel = "gemini-1.5-flash"

type Client struct {
	client   *genai.Client
	model    *genai.GenerativeModel
	limiters []*rate.Limiter
}

func NewClient(ctx context.Context, apiKey string, model string) (*Client, error) {

	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &Client{
		client: client,
		model:  client.GenerativeModel(model),
	}, nil
}

func (c *Client) SetMinuteRateLimit(maxRequestsPerMinute float32) {
	c.limiters = append(c.limiters, rate.NewLimiter(rate.Limit(maxRequestsPerMinute/60), 1))
}

func (c *Client) SetDayRateLimit(maxRequestsPerDay float32) {
	c.limiters = append(c.limiters, rate.NewLimiter(rate.Limit(maxRequestsPerDay/86400), int(maxRequestsPerDay)))
}

func (c *Client) Close() error {
	return c.client.Close()
}

// Generate sends a prompt and returns the model's text response, retrying
// transient 500s from the API a bounded number of times.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {

	var resp string
	var err error

	_, _, _ = lo.AttemptWhileWithDelay(3, 2*time.Second, func(i int, _ time.Duration) (error, bool) {
		if i > 0 {
			log.Warn("gemini api returned 500 error, retrying...")
		}
		resp, err = c.generateOnce(ctx, prompt)
		return err, isInternalError(err)
	})

	return resp, err
}

func (c *Client) generateOnce(ctx context.Context, prompt string) (string, error) {

	for _, limiter := range c.limiters {
		if err := limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	response, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil ||
		len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	if text, ok := response.Candidates[0].Content.Parts[0].(genai.Text); ok {
		return string(text), nil
	}

	return "", fmt.Errorf("response part is not text")
}

func isInternalError(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "Error 500")
}
