package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/rickgao/ghostsync/internal/broker"
	"github.com/rickgao/ghostsync/internal/config"
	"github.com/rickgao/ghostsync/internal/ghostfolio"
	"github.com/rickgao/ghostsync/internal/logging"
	"github.com/rickgao/ghostsync/internal/syncer"
	"github.com/rickgao/ghostsync/internal/transform"
	"github.com/rickgao/ghostsync/internal/version"
)

// app carries the global flags and builds the collaborators every command needs.
type app struct {
	configPath  string
	envPath     string
	mappingPath string

	cfg    *config.Config
	logger *slog.Logger
}

// load reads .env, the config file and the environment, then validates.
func (a *app) load() error {
	if a.cfg != nil {
		return nil
	}

	envMissing := false
	if _, err := os.Stat(a.envPath); errors.Is(err, fs.ErrNotExist) {
		envMissing = true
	}
	if err := config.LoadDotEnv(a.envPath); err != nil {
		return err
	}

	cfg, err := config.LoadAndValidate(a.configPath)
	if err != nil {
		return err
	}
	if a.mappingPath != "" {
		cfg.Sync.MappingFile = a.mappingPath
	}

	a.cfg = cfg
	a.logger = logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	slog.SetDefault(a.logger)

	a.logger.Info("ghostsync starting", "version", version.String())
	if envMissing {
		a.logger.Debug("no .env file", "path", a.envPath)
	}
	a.logger.Debug("configuration", "config", fmt.Sprintf("%+v", cfg.Redacted()))
	return nil
}

// defaultCommand resolves the subcommand for a bare invocation. Only the
// environment and the config file are consulted; credentials are checked
// later by the command itself.
func (a *app) defaultCommand() (string, error) {
	if err := config.LoadDotEnv(a.envPath); err != nil {
		return "", err
	}
	cfg, err := config.LoadWithDefaults(a.configPath)
	if err != nil {
		return "", err
	}
	return commandFor(cfg.Sync.Operation), nil
}

func (a *app) broker() *broker.Client {
	c := a.cfg.Alpaca
	return broker.NewClient(c.BaseURL, c.APIKey, c.SecretKey,
		broker.WithTimeout(c.Timeout),
		broker.WithRetries(c.MaxRetries, broker.DefaultRetryDelay),
		broker.WithPageSize(c.PageSize),
		broker.WithLogger(a.logger.With("component", "alpaca")),
	)
}

func (a *app) ghostfolio() *ghostfolio.Client {
	c := a.cfg.Ghostfolio
	return ghostfolio.NewClient(c.Host,
		ghostfolio.Credentials{Token: c.Token, Key: c.Key},
		ghostfolio.WithTimeout(c.Timeout),
		ghostfolio.WithRetries(c.MaxRetries, ghostfolio.DefaultRetryBackoff),
		ghostfolio.WithLogger(a.logger.With("component", "ghostfolio")),
	)
}

// syncer wires both clients and the symbol mapping into a Syncer.
func (a *app) syncer() (*syncer.Syncer, error) {
	mapping, err := transform.LoadSymbolMapping(a.cfg.Sync.MappingFile, a.logger)
	if err != nil {
		return nil, err
	}

	return syncer.New(a.broker(), a.ghostfolio(), syncer.Config{
		AccountName:  a.cfg.Ghostfolio.AccountName,
		Currency:     a.cfg.Ghostfolio.Currency,
		PlatformID:   a.cfg.Ghostfolio.PlatformID,
		DataSource:   a.cfg.Sync.DataSource,
		Mapping:      mapping,
		FeeTiers:     a.cfg.Fees.Table(),
		VolumeWindow: a.cfg.Fees.VolumeWindow,
		BatchSize:    a.cfg.Sync.BatchSize,
	}, a.logger), nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "ghostsync:", err)
	os.Exit(1)
}
