// Command ghostsync copies Alpaca account activity into a Ghostfolio account.
//
// Usage:
//
//	ghostsync [-config ghostsync.yaml] [-env .env] [-mapping mapping.yaml] <command> [flags]
//
// With no command, the OPERATION environment variable (or sync.operation in
// the config file) selects sync, list or delete.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/google/subcommands"

	"github.com/rickgao/ghostsync/internal/config"
)

func main() {
	app := &app{}
	flag.StringVar(&app.configPath, "config", "ghostsync.yaml", "path to config file (optional)")
	flag.StringVar(&app.envPath, "env", ".env", "path to .env file (optional)")
	flag.StringVar(&app.mappingPath, "mapping", "", "path to symbol mapping file (default sync.mapping_file)")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	commander.Register(&syncCmd{app: app}, "")
	commander.Register(&listCmd{app: app}, "")
	commander.Register(&deleteCmd{app: app}, "")
	commander.Register(&checkCmd{app: app}, "")
	commander.Register(&versionCmd{}, "")

	flag.Parse()

	if flag.NArg() == 0 {
		name, err := app.defaultCommand()
		if err != nil {
			fatal(err)
		}
		if err := flag.CommandLine.Parse([]string{name}); err != nil {
			fatal(err)
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	status := commander.Execute(ctx)
	cancel()
	os.Exit(int(status))
}

// commandFor maps an OPERATION value to its subcommand name.
func commandFor(operation string) string {
	switch operation {
	case config.OperationList:
		return "list"
	case config.OperationDelete:
		return "delete"
	default:
		return "sync"
	}
}
