// Command tacgrid answers movement, line-of-effect and area queries against
// encounter maps loaded from JSON files or the local map store.
//
// Usage:
//
//	tacgrid [global flags] <command> [flags] [args]
//
// Commands:
//
//	path    cheapest path between two cells, optionally against a budget
//	reach   cells reachable within a movement budget
//	los     line of effect between two cells, or visible cells within range
//	aoe     cells covered by a sphere, cube or cone template
//	import  save a map file into the store as a new revision
//	export  write a stored map revision as JSON
//	list    stored map names and revision counts
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/tacgrid/internal/config"
	"github.com/katalvlaran/tacgrid/internal/logging"
	"github.com/katalvlaran/tacgrid/internal/telemetry"
)

type command func(ctx context.Context, a *app, args []string) error

var commands = map[string]command{
	"path":   runPath,
	"reach":  runReach,
	"los":    runLOS,
	"aoe":    runAoE,
	"import": runImport,
	"export": runExport,
	"list":   runList,
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "tacgrid:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := pflag.NewFlagSet("tacgrid", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: tacgrid [flags] <%s> [args]\n", strings.Join(commandNames(), "|"))
		fs.PrintDefaults()
	}

	configDir := fs.String("config-dir", ".", "directory holding "+config.FileName)
	fs.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	fs.String("db", "tacgrid.db", "map store path")
	fs.Duration("timeout", 0, "abandon a query after this long (0 disables)")
	fs.Bool("ignore-difficult", false, "treat difficult terrain as normal")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := config.Load(*configDir); err != nil {
		return err
	}
	for key, flag := range map[string]string{
		"logLevel":               "log-level",
		"store.path":             "db",
		"search.timeout":         "timeout",
		"search.ignoreDifficult": "ignore-difficult",
	} {
		if err := viper.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}

	cfg, err := config.Get()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel, stderr)
	if err != nil {
		return err
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no command given")
	}
	name := strings.ToLower(fs.Arg(0))
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}

	inst, err := telemetry.New(nil)
	if err != nil {
		return err
	}

	a := newApp(cfg, log.With().Str("cmd", name).Logger(), stdout, stderr, inst)
	defer a.close()

	return cmd(ctx, a, fs.Args()[1:])
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
