package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rickgao/ghostsync/internal/fees"
)

// Operations selectable with OPERATION when no subcommand is given.
const (
	OperationSync   = "SYNC_ALPACA"
	OperationList   = "GET_ALL_ACTS"
	OperationDelete = "DELETE_ALL_ACTS"
)

// Config is the root configuration.
type Config struct {
	Alpaca     AlpacaConfig     `yaml:"alpaca"`
	Ghostfolio GhostfolioConfig `yaml:"ghostfolio"`
	Sync       SyncConfig       `yaml:"sync"`
	Fees       FeesConfig       `yaml:"fees"`
	Log        LogConfig        `yaml:"log"`
}

// AlpacaConfig holds Alpaca API settings.
type AlpacaConfig struct {
	APIKey     string        `yaml:"api_key"`
	SecretKey  string        `yaml:"secret_key"`
	BaseURL    string        `yaml:"base_url"`
	Timeout    time.Duration `yaml:"timeout"`
	MaxRetries int           `yaml:"max_retries"`
	PageSize   int           `yaml:"page_size"`
}

// GhostfolioConfig holds Ghostfolio API and account settings.
type GhostfolioConfig struct {
	Host        string        `yaml:"host"`
	Token       string        `yaml:"token"` // bearer token
	Key         string        `yaml:"key"`   // security token, exchanged for a bearer token
	AccountName string        `yaml:"account_name"`
	Currency    string        `yaml:"currency"`
	PlatformID  string        `yaml:"platform_id"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxRetries  int           `yaml:"max_retries"`
}

// SyncConfig holds run settings.
type SyncConfig struct {
	Operation   string `yaml:"operation"`
	Days        int    `yaml:"days"` // 0 syncs full history
	DryRun      bool   `yaml:"dry_run"`
	DataSource  string `yaml:"data_source"`
	MappingFile string `yaml:"mapping_file"`
	BatchSize   int    `yaml:"batch_size"`
}

// FeesConfig holds crypto fee settings.
type FeesConfig struct {
	VolumeWindow time.Duration `yaml:"volume_window"`
	Tiers        []TierConfig  `yaml:"tiers"`
}

// TierConfig is one fee band. A zero Max is unbounded.
type TierConfig struct {
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
	Maker float64 `yaml:"maker"`
	Taker float64 `yaml:"taker"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Table converts the configured tiers. No tiers yields the default schedule.
func (f FeesConfig) Table() fees.Table {
	if len(f.Tiers) == 0 {
		return fees.DefaultTable()
	}
	table := make(fees.Table, 0, len(f.Tiers))
	for _, t := range f.Tiers {
		table = append(table, fees.Tier{
			Min:   decimal.NewFromFloat(t.Min),
			Max:   decimal.NewFromFloat(t.Max),
			Maker: decimal.NewFromFloat(t.Maker),
			Taker: decimal.NewFromFloat(t.Taker),
		})
	}
	return table
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	c.Alpaca.APIKey = redact(c.Alpaca.APIKey)
	c.Alpaca.SecretKey = redact(c.Alpaca.SecretKey)
	c.Ghostfolio.Token = redact(c.Ghostfolio.Token)
	c.Ghostfolio.Key = redact(c.Ghostfolio.Key)
	return c
}

func redact(s string) string {
	if len(s) <= 4 {
		if s == "" {
			return ""
		}
		return "****"
	}
	return fmt.Sprintf("%s****", s[:4])
}
