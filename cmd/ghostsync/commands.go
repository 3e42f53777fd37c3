package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tidwall/pretty"

	"github.com/rickgao/ghostsync/internal/model"
	"github.com/rickgao/ghostsync/internal/syncer"
	"github.com/rickgao/ghostsync/internal/version"
)

type syncCmd struct {
	app    *app
	days   int
	dryRun bool
}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "import new Alpaca activities into Ghostfolio" }
func (*syncCmd) Usage() string {
	return `ghostsync sync [-days N] [-dry-run]

  Fetches Alpaca account activities, converts them to Ghostfolio activities,
  imports the ones Ghostfolio does not have yet and updates the account's
  cash balance.
`
}

func (c *syncCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", -1, "only sync the last N days, 0 for full history (default sync.days)")
	f.BoolVar(&c.dryRun, "dry-run", false, "validate imports without storing them")
}

func (c *syncCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.app.load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	s, err := c.app.syncer()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	opts := syncer.Options{
		Days:   c.app.cfg.Sync.Days,
		DryRun: c.app.cfg.Sync.DryRun || c.dryRun,
	}
	if c.days >= 0 {
		opts.Days = c.days
	}

	rep, err := s.Sync(ctx, opts)
	if err != nil {
		c.app.logger.Error("sync failed", "run_id", rep.RunID, "error", err)
		return subcommands.ExitFailure
	}

	fmt.Println(summary(rep))

	if len(rep.FailedBatches) > 0 {
		fmt.Fprintf(os.Stderr, "failed batches: %v\n", rep.FailedBatches)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// summary renders the counts of a finished run on one line.
func summary(rep syncer.Report) string {
	line := fmt.Sprintf("run %s: fetched %d, transformed %d, skipped %d, failed records %d, "+
		"existing %d, new %d, imported %d in %d batches, failed batches %d",
		rep.RunID, rep.Fetched, rep.Transformed, rep.Skipped, rep.Failed,
		rep.Existing, rep.New, rep.Imported, rep.Batches, len(rep.FailedBatches))
	if rep.DryRun {
		line += " (dry run)"
	}
	return line
}

type listCmd struct {
	app *app
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "print every activity of the Ghostfolio account as JSON" }
func (*listCmd) Usage() string {
	return `ghostsync list

  Prints the activities stored in the configured Ghostfolio account.
`
}

func (*listCmd) SetFlags(*flag.FlagSet) {}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.app.load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	s, err := c.app.syncer()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	acts, err := s.ListActivities(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := writeJSON(acts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type deleteCmd struct {
	app *app
	yes bool
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete every activity of the Ghostfolio account" }
func (*deleteCmd) Usage() string {
	return `ghostsync delete -yes

  Deletes all activities of the configured Ghostfolio account. The account
  itself is kept. Requires -yes.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "confirm deletion")
}

func (c *deleteCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes && os.Getenv("CONFIRM_DELETE") != "yes" {
		fmt.Fprintln(os.Stderr, "refusing to delete without -yes (or CONFIRM_DELETE=yes)")
		return subcommands.ExitUsageError
	}
	if err := c.app.load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	s, err := c.app.syncer()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	n, err := s.DeleteActivities(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("deleted %d activities\n", n)
	return subcommands.ExitSuccess
}

type checkCmd struct {
	app *app
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "test connectivity to Alpaca and Ghostfolio" }
func (*checkCmd) Usage() string {
	return `ghostsync check

  Calls each remote service once and reports what it sees. Nothing is written.
`
}

func (*checkCmd) SetFlags(*flag.FlagSet) {}

func (c *checkCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.app.load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	failed := 0
	report := func(name string, err error, detail string) {
		if err != nil {
			failed++
			fmt.Printf("FAIL  %-22s %v\n", name, err)
			return
		}
		fmt.Printf("ok    %-22s %s\n", name, detail)
	}

	gf := c.app.ghostfolio()
	info, err := gf.Info(ctx)
	report("ghostfolio info", err, fmt.Sprintf("base currency %s, read only %t", info.BaseCurrency, info.IsReadOnly))

	err = gf.Authenticate(ctx)
	report("ghostfolio auth", err, "token accepted")
	if err == nil {
		accts, err := gf.ListAccounts(ctx)
		report("ghostfolio accounts", err, fmt.Sprintf("%d accounts", len(accts)))
		platforms, err := gf.ListPlatforms(ctx)
		report("ghostfolio platforms", err, fmt.Sprintf("%d platforms", len(platforms)))
	}

	br := c.app.broker()
	bal, err := br.FetchAccount(ctx)
	report("alpaca account", err, fmt.Sprintf("cash %s %s, equity %s", bal.Cash, bal.Currency, bal.Equity))

	page, err := br.FetchActivityPage(ctx, model.ActivityQuery{}, "")
	report("alpaca activities", err, fmt.Sprintf("%d activities on first page", len(page)))

	if failed > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type versionCmd struct{}

func (*versionCmd) Name() string           { return "version" }
func (*versionCmd) Synopsis() string       { return "print version information" }
func (*versionCmd) Usage() string          { return "ghostsync version\n" }
func (*versionCmd) SetFlags(*flag.FlagSet) {}
func (*versionCmd) Execute(context.Context, *flag.FlagSet, ...interface{}) subcommands.ExitStatus {
	fmt.Println(version.String())
	return subcommands.ExitSuccess
}

// writeJSON prints v as indented JSON on stdout.
func writeJSON(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = os.Stdout.Write(pretty.Pretty(b))
	return err
}
