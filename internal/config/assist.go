package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// AssistConfig holds tuning knobs for the AI assist pipeline.
type AssistConfig struct {
	Model                string  `mapstructure:"model"`
	ExtractionTemp       float64 `mapstructure:"extractionTemp"`
	ExtractionMaxTokens  int     `mapstructure:"extractionMaxTokens"`
	ExtractionInputLimit int     `mapstructure:"extractionInputLimit"`
	InsightsTemp         float64 `mapstructure:"insightsTemp"`
	InsightsMaxTokens    int     `mapstructure:"insightsMaxTokens"`
}

func DefaultAssistConfig() AssistConfig {
	return AssistConfig{
		Model:                "gemini-2.5-flash",
		ExtractionTemp:       0,
		ExtractionMaxTokens:  400,
		ExtractionInputLimit: 1500,
		InsightsTemp:         0.7,
		InsightsMaxTokens:    300,
	}
}

// AssistConfigHolder serves the current assist config and hot-reloads it
// when the backing file changes.
type AssistConfigHolder struct {
	current atomic.Value // holds AssistConfig
}

func NewAssistConfigHolder() (*AssistConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("assist")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/billora")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BILLORA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultAssistConfig()
	v.SetDefault("assist.model", defaults.Model)
	v.SetDefault("assist.extractionTemp", defaults.ExtractionTemp)
	v.SetDefault("assist.extractionMaxTokens", defaults.ExtractionMaxTokens)
	v.SetDefault("assist.extractionInputLimit", defaults.ExtractionInputLimit)
	v.SetDefault("assist.insightsTemp", defaults.InsightsTemp)
	v.SetDefault("assist.insightsMaxTokens", defaults.InsightsMaxTokens)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg AssistConfig
	if err := v.UnmarshalKey("assist", &cfg); err != nil {
		return nil, err
	}
	if err := validateAssistConfig(cfg); err != nil {
		return nil, err
	}

	holder := &AssistConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated AssistConfig
		if err := v.UnmarshalKey("assist", &updated); err != nil {
			log.Printf("[assist-config] reload failed: %v", err)
			return
		}
		if err := validateAssistConfig(updated); err != nil {
			log.Printf("[assist-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
	})

	return holder, nil
}

func (h *AssistConfigHolder) Current() AssistConfig {
	return h.current.Load().(AssistConfig)
}

func validateAssistConfig(cfg AssistConfig) error {
	if strings.TrimSpace(cfg.Model) == "" {
		return errors.New("assist: model must not be empty")
	}
	if cfg.ExtractionMaxTokens <= 0 || cfg.InsightsMaxTokens <= 0 {
		return errors.New("assist: token budgets must be positive")
	}
	if cfg.ExtractionInputLimit <= 0 {
		return errors.New("assist: input limit must be positive")
	}
	return nil
}
