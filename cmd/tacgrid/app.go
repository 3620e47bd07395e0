package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/tacgrid/grid"
	"github.com/katalvlaran/tacgrid/internal/config"
	"github.com/katalvlaran/tacgrid/internal/store"
	"github.com/katalvlaran/tacgrid/internal/telemetry"
	"github.com/katalvlaran/tacgrid/pathfinding"
)

type app struct {
	cfg    config.Config
	log    zerolog.Logger
	out    io.Writer
	errOut io.Writer
	inst   *telemetry.Instruments
	pf     *pathfinding.Pathfinder
	st     *store.Store
}

func newApp(cfg config.Config, log zerolog.Logger, out, errOut io.Writer, inst *telemetry.Instruments) *app {
	a := &app{cfg: cfg, log: log, out: out, errOut: errOut, inst: inst}

	opts := []pathfinding.Option{
		pathfinding.WithOnExpand(func(pos grid.Position, g, f int) {
			a.log.Trace().Stringer("pos", pos).Int("g", g).Int("f", f).Msg("expand")
		}),
		pathfinding.WithOnPrune(func(pos grid.Position, tentative int) {
			a.log.Trace().Stringer("pos", pos).Int("cost", tentative).Msg("prune")
		}),
	}
	if cfg.Search.IgnoreDifficult {
		opts = append(opts, pathfinding.WithCostCalculator(pathfinding.IgnoreDifficultTerrain{}))
	}
	a.pf = pathfinding.NewPathfinder(opts...)

	return a
}

// openStore opens the map store on first use.
func (a *app) openStore() (*store.Store, error) {
	if a.st != nil {
		return a.st, nil
	}
	st, err := store.Open(a.cfg.Store.Path, a.log)
	if err != nil {
		return nil, err
	}
	a.st = st
	return st, nil
}

func (a *app) close() {
	if a.st == nil {
		return
	}
	if err := a.st.Close(); err != nil {
		a.log.Warn().Err(err).Msg("Failed to close map store")
	}
}

func (a *app) newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func (a *app) printJSON(v any) error {
	return writeJSON(a.out, v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// mapSource is the --map / --stored flag pair shared by the query commands.
type mapSource struct {
	file   string
	stored string
}

func addMapFlags(fs *pflag.FlagSet) *mapSource {
	src := &mapSource{}
	fs.StringVar(&src.file, "map", "", "map JSON file")
	fs.StringVar(&src.stored, "stored", "", "stored map as name or name@revision")
	return src
}

func (a *app) loadGrid(ctx context.Context, src *mapSource) (*grid.Grid, error) {
	switch {
	case src.file != "" && src.stored != "":
		return nil, errors.New("--map and --stored are mutually exclusive")
	case src.file != "":
		return readGridFile(src.file)
	case src.stored != "":
		name, revision, err := parseStoredRef(src.stored)
		if err != nil {
			return nil, err
		}
		st, err := a.openStore()
		if err != nil {
			return nil, err
		}
		if revision > 0 {
			return st.LoadRevision(ctx, name, revision)
		}
		g, rev, err := st.Load(ctx, name)
		if err != nil {
			return nil, err
		}
		a.log.Debug().Str("map", name).Int("revision", rev).Msg("Loaded stored map")
		return g, nil
	default:
		return nil, errors.New("one of --map or --stored is required")
	}
}

func readGridFile(path string) (*grid.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	g := new(grid.Grid)
	if err := json.Unmarshal(data, g); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return g, nil
}

// parseStoredRef splits "name" or "name@revision".
func parseStoredRef(ref string) (string, int, error) {
	name, rev, found := strings.Cut(ref, "@")
	if name == "" {
		return "", 0, fmt.Errorf("invalid stored map %q", ref)
	}
	if !found {
		return name, 0, nil
	}
	n, err := strconv.Atoi(rev)
	if err != nil || n < 1 {
		return "", 0, fmt.Errorf("invalid revision in %q", ref)
	}
	return name, n, nil
}

// parsePosition reads "x,y".
func parsePosition(s string) (grid.Position, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return grid.Position{}, fmt.Errorf("invalid position %q, want x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return grid.Position{}, fmt.Errorf("invalid position %q: %w", s, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return grid.Position{}, fmt.Errorf("invalid position %q: %w", s, err)
	}
	return grid.Pos(x, y), nil
}

// within runs fn, giving up after timeout when one is set. Searches cannot be
// interrupted, so an abandoned fn keeps running until it returns.
func within[T any](ctx context.Context, timeout time.Duration, fn func() T) (T, error) {
	if timeout <= 0 {
		return fn(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan T, 1)
	go func() { done <- fn() }()

	select {
	case v := <-done:
		return v, nil
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("query abandoned: %w", ctx.Err())
	}
}
