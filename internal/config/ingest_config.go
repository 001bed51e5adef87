package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type IngestConfig struct {
	AIKey                        string        `mapstructure:"ai_key"`
	AIModel                      string        `mapstructure:"ai_model"`
	AIMaxRequestsPerMinute       float32       `mapstructure:"ai_max_requests_per_minute"`
	AIMaxRequestsPerDay          float32       `mapstructure:"ai_max_requests_per_day"`
	LinkedinMaxRequestsPerSecond float32       `mapstructure:"linkedin_max_requests_per_second"`
	FetchAttempts                int           `mapstructure:"fetch_attempts"`
	RecencyWindow                time.Duration `mapstructure:"recency_window"`
	CronSpec                     string        `mapstructure:"cron_spec"`
	Timezone                     string        `mapstructure:"timezone"`
	DefaultLocation              string        `mapstructure:"default_location"`
	BrowserPoolSize              int           `mapstructure:"browser_pool_size"`
	BrowserHeadless              bool          `mapstructure:"browser_headless"`
	DescriptionWaitTimeout       time.Duration `mapstructure:"description_wait_timeout"`
}

func (config IngestConfig) validate() error {

	var missingFields []string

	if config.AIKey == "" {
		missingFields = append(missingFields, "ai_key")
	}

	if config.CronSpec == "" {
		missingFields = append(missingFields, "cron_spec")
	}

	if config.Timezone == "" {
		missingFields = append(missingFields, "timezone")
	}

	if len(missingFields) > 0 {
		return fmt.Errorf("missing required variables: %s", strings.Join(missingFields, ", "))
	}

	if config.BrowserPoolSize < 1 {
		return errors.New("browser_pool_size must be at least 1")
	}

	return nil
}

func (config IngestConfig) bindEnvironmentVariables() error {
	var errs []error

	bindings := map[string]string{
		"ingest.ai_key":    "AI_KEY",
		"ingest.ai_model":  "AI_MODEL",
		"ingest.cron_spec": "INGEST_CRON_SPEC",
		"ingest.timezone":  "INGEST_TIMEZONE",
	}

	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return createMultiError(errs)
	}

	return nil
}

func createMultiError(errs []error) error {
	return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
}
