package config

import (
	"time"

	"github.com/rickgao/ghostsync/internal/broker"
	"github.com/rickgao/ghostsync/internal/ghostfolio"
	"github.com/rickgao/ghostsync/internal/model"
	"github.com/rickgao/ghostsync/internal/session"
	"github.com/rickgao/ghostsync/internal/syncer"
)

// Default values for optional configuration fields.
const (
	DefaultAlpacaBaseURL = broker.DefaultBaseURL
	DefaultGhostHost     = ghostfolio.DefaultHost
	DefaultAccountName   = "Alpaca"
	DefaultCurrency      = "USD"
	DefaultDataSource    = model.DataSourceYahoo
	DefaultMappingFile   = "mapping.yaml"
	DefaultOperation     = OperationSync
	DefaultBatchSize     = syncer.DefaultBatchSize
	DefaultPageSize      = broker.DefaultPageSize
	DefaultVolumeWindow  = session.DefaultVolumeWindow
	DefaultAPITimeout    = 30 * time.Second
	DefaultMaxRetries    = 3
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
)

func (c *Config) applyDefaults() {
	// Alpaca defaults
	if c.Alpaca.BaseURL == "" {
		c.Alpaca.BaseURL = DefaultAlpacaBaseURL
	}
	if c.Alpaca.Timeout == 0 {
		c.Alpaca.Timeout = DefaultAPITimeout
	}
	if c.Alpaca.MaxRetries == 0 {
		c.Alpaca.MaxRetries = DefaultMaxRetries
	}
	if c.Alpaca.PageSize == 0 {
		c.Alpaca.PageSize = DefaultPageSize
	}

	// Ghostfolio defaults
	if c.Ghostfolio.Host == "" {
		c.Ghostfolio.Host = DefaultGhostHost
	}
	if c.Ghostfolio.AccountName == "" {
		c.Ghostfolio.AccountName = DefaultAccountName
	}
	if c.Ghostfolio.Currency == "" {
		c.Ghostfolio.Currency = DefaultCurrency
	}
	if c.Ghostfolio.Timeout == 0 {
		c.Ghostfolio.Timeout = DefaultAPITimeout
	}
	if c.Ghostfolio.MaxRetries == 0 {
		c.Ghostfolio.MaxRetries = DefaultMaxRetries
	}

	// Sync defaults
	if c.Sync.Operation == "" {
		c.Sync.Operation = DefaultOperation
	}
	if c.Sync.DataSource == "" {
		c.Sync.DataSource = DefaultDataSource
	}
	if c.Sync.MappingFile == "" {
		c.Sync.MappingFile = DefaultMappingFile
	}
	if c.Sync.BatchSize == 0 {
		c.Sync.BatchSize = DefaultBatchSize
	}

	// Fees defaults
	if c.Fees.VolumeWindow == 0 {
		c.Fees.VolumeWindow = DefaultVolumeWindow
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}
