package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Alpaca.APIKey == "" || c.Alpaca.SecretKey == "" {
		return errors.New("alpaca.api_key and alpaca.secret_key are required (ALPACA_API_KEY, ALPACA_SECRET_KEY)")
	}
	if c.Alpaca.PageSize < 1 || c.Alpaca.PageSize > 100 {
		return fmt.Errorf("alpaca.page_size must be between 1 and 100, got %d", c.Alpaca.PageSize)
	}

	if c.Ghostfolio.Token == "" && c.Ghostfolio.Key == "" {
		return errors.New("ghostfolio.token or ghostfolio.key is required (GHOST_TOKEN or GHOST_KEY)")
	}
	if c.Ghostfolio.AccountName == "" {
		return errors.New("ghostfolio.account_name is required")
	}
	if money.GetCurrency(c.Ghostfolio.Currency) == nil {
		return fmt.Errorf("ghostfolio.currency %q is not a known currency code", c.Ghostfolio.Currency)
	}

	switch c.Sync.Operation {
	case OperationSync, OperationList, OperationDelete:
	default:
		return fmt.Errorf("sync.operation %q is not one of %s", c.Sync.Operation,
			strings.Join([]string{OperationSync, OperationList, OperationDelete}, ", "))
	}
	if c.Sync.Days < 0 {
		return fmt.Errorf("sync.days must be >= 0, got %d", c.Sync.Days)
	}
	if c.Sync.BatchSize < 1 {
		return errors.New("sync.batch_size must be >= 1")
	}

	if c.Fees.VolumeWindow < 0 {
		return errors.New("fees.volume_window must be >= 0")
	}
	if err := c.Fees.Table().Validate(); err != nil {
		return fmt.Errorf("fees.tiers: %w", err)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}
