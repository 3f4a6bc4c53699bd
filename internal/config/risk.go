package config

import (
	"fmt"

	"github.com/JaimeStill/aicomply/internal/risk"
	"github.com/JaimeStill/aicomply/pkg/envvar"
)

// RiskConfig tunes the classification engine and bulk reclassification.
type RiskConfig struct {
	DowngradeThreshold    float64 `toml:"downgrade_threshold"`
	ReclassifyConcurrency int     `toml:"reclassify_concurrency"`
}

// Finalize applies defaults, environment overrides, and validation.
func (c *RiskConfig) Finalize() error {
	if c.DowngradeThreshold == 0 {
		c.DowngradeThreshold = risk.DefaultDowngradeThreshold
	}
	if c.ReclassifyConcurrency == 0 {
		c.ReclassifyConcurrency = 4
	}

	envvar.Float(&c.DowngradeThreshold, "AICOMPLY_RISK_DOWNGRADE_THRESHOLD")
	envvar.Int(&c.ReclassifyConcurrency, "AICOMPLY_RISK_RECLASSIFY_CONCURRENCY")

	if c.DowngradeThreshold <= 0 || c.DowngradeThreshold > 1 {
		return fmt.Errorf("downgrade_threshold must be in (0, 1]: %v", c.DowngradeThreshold)
	}
	if c.ReclassifyConcurrency < 1 {
		return fmt.Errorf("reclassify_concurrency must be at least 1: %d", c.ReclassifyConcurrency)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *RiskConfig) Merge(overlay *RiskConfig) {
	if overlay.DowngradeThreshold != 0 {
		c.DowngradeThreshold = overlay.DowngradeThreshold
	}
	if overlay.ReclassifyConcurrency != 0 {
		c.ReclassifyConcurrency = overlay.ReclassifyConcurrency
	}
}

// Classifier builds a risk classifier using the configured threshold.
func (c *RiskConfig) Classifier() *risk.Classifier {
	return risk.New(risk.WithDowngradeThreshold(c.DowngradeThreshold))
}
