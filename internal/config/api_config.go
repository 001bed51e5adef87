package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type APIConfig struct {
	Port int `mapstructure:"port"`
}

func (config APIConfig) validate() error {
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("invalid api port: %d", config.Port)
	}
	return nil
}

func (config APIConfig) bindEnvironmentVariables() error {
	return viper.BindEnv("api.port", "PORT")
}
