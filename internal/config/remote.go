package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/warelog/warelog/internal/remote"
	"github.com/warelog/warelog/internal/service"
)

// LoadRemoteConfig loads the macro endpoint settings from Viper. The
// URL has no default; NewClient rejects an empty one with a pointer at
// the missing key.
func LoadRemoteConfig() remote.Config {
	cfg := remote.Config{
		URL:     viper.GetString("remote.url"),
		AckMode: service.AckChecked,
		Timeout: 30 * time.Second,
	}

	if v := viper.GetString("remote.ack_mode"); v != "" {
		cfg.AckMode = service.AckMode(v)
	}
	if v := viper.GetDuration("remote.timeout"); v > 0 {
		cfg.Timeout = v
	}
	return cfg
}
