// Package config holds caredesk configuration: the business policy constants
// consulted by the orchestration rules, plus runtime settings for the optional
// Gemini tone polish and the sentiment backstop.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all caredesk configuration.
type Config struct {
	// Business policy constants (the policy store)
	Policy Policy `yaml:"policy"`

	// Optional Gemini tone polish
	LLM LLMConfig `yaml:"llm"`

	// Sentiment refinement backstop for the emotion classifier
	Sentiment SentimentConfig `yaml:"sentiment"`
}

// Policy is the read-only business policy consulted by the action rules.
// All values have working defaults; a yaml file may override them.
type Policy struct {
	// RefundWindowDays is the number of days after order creation during
	// which a full refund may be issued.
	RefundWindowDays int `yaml:"refund_window_days"`

	// GoodwillCreditDefault is the credit amount applied when a refund is
	// requested outside the window, and for retention offers.
	GoodwillCreditDefault float64 `yaml:"goodwill_credit_default"`

	// LoyaltyCreditAmount is the small thank-you credit for praise and
	// missing-part cases.
	LoyaltyCreditAmount float64 `yaml:"loyalty_credit_amount"`

	// CallbackWindow is the human-readable window quoted when scheduling
	// a callback.
	CallbackWindow string `yaml:"callback_window"`

	ReplacementDeliveryDays int `yaml:"replacement_delivery_days"`
	RefundETADays           int `yaml:"refund_eta_days"`
	PartShipmentETADays     int `yaml:"part_shipment_eta_days"`
}

// LLMConfig configures the optional Gemini polish step.
type LLMConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Polish  bool   `yaml:"polish"`
	Timeout string `yaml:"timeout"`
}

// SentimentConfig controls the VADER refinement of the lexical emotion baseline.
type SentimentConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DefaultConfig returns the stock policy and runtime settings.
func DefaultConfig() *Config {
	return &Config{
		Policy: Policy{
			RefundWindowDays:        30,
			GoodwillCreditDefault:   10.0,
			LoyaltyCreditAmount:     5.0,
			CallbackWindow:          "today 4-6pm",
			ReplacementDeliveryDays: 2,
			RefundETADays:           3,
			PartShipmentETADays:     4,
		},
		LLM: LLMConfig{
			Model:   "gemini-2.0-flash",
			Polish:  true,
			Timeout: "15s",
		},
		Sentiment: SentimentConfig{Enabled: true},
	}
}

// Load reads configuration from an optional yaml file, then applies
// environment overrides. A missing file is not an error; defaults stand.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides lets environment variables win over file values.
func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
	}
	if model := os.Getenv("CAREDESK_GEMINI_MODEL"); model != "" {
		c.LLM.Model = model
	}
}

// PolishTimeout parses the configured polish timeout, falling back to 15s
// on empty or malformed values so a bad config never blocks a reply.
func (c *Config) PolishTimeout() time.Duration {
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}
