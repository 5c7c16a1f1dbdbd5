package config

import (
	"time"

	"kakao_order_sheets/internal/retry"
)

// ResilienceConfig groups the retry profiles for the external collaborators.
type ResilienceConfig struct {
	SheetWrite retry.Config
	SheetRead  retry.Config
	Notify     retry.Config
}

var DefaultResilienceConfig = ResilienceConfig{
	SheetWrite: retry.Config{
		MaxRetries: 3,
		BaseDelay:  2 * time.Second,
		MaxDelay:   30 * time.Second,
		Timeout:    30 * time.Second,
	},
	SheetRead: retry.Config{
		MaxRetries: 3,
		BaseDelay:  2 * time.Second,
		MaxDelay:   30 * time.Second,
		Timeout:    15 * time.Second,
	},
	Notify: retry.Config{
		MaxRetries: 2,
		BaseDelay:  1 * time.Second,
		MaxDelay:   10 * time.Second,
		Timeout:    10 * time.Second,
	},
}
