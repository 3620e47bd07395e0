package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/katalvlaran/tacgrid/geometry"
	"github.com/katalvlaran/tacgrid/grid"
	"github.com/katalvlaran/tacgrid/internal/store"
	"github.com/katalvlaran/tacgrid/pathfinding"
)

type searchOutcome struct {
	result pathfinding.PathResult
	stats  pathfinding.Stats
}

// runPath prints the cheapest path. With --budget the result is checked
// against the budget afterwards; --prune instead discards over-budget
// candidates during the search.
func runPath(ctx context.Context, a *app, args []string) error {
	fs := a.newFlagSet("path")
	src := addMapFlags(fs)
	from := fs.String("from", "", "start cell x,y")
	to := fs.String("to", "", "destination cell x,y")
	budget := fs.Int("budget", -1, "movement budget in squares (-1 for none)")
	prune := fs.Bool("prune", false, "discard over-budget candidates during the search")
	if err := fs.Parse(args); err != nil {
		return err
	}

	start, err := parsePosition(*from)
	if err != nil {
		return err
	}
	dest, err := parsePosition(*to)
	if err != nil {
		return err
	}
	if *prune && *budget < 0 {
		return errors.New("--prune needs --budget")
	}

	g, err := a.loadGrid(ctx, src)
	if err != nil {
		return err
	}

	searchBudget := -1
	if *prune {
		searchBudget = *budget
	}
	out, err := within(ctx, a.cfg.Search.Timeout, func() searchOutcome {
		res, st := a.pf.FindPathStats(start, dest, g, searchBudget)
		return searchOutcome{res, st}
	})
	if err != nil {
		return err
	}

	res := out.result
	if *budget >= 0 {
		res = pathfinding.CheckBudget(res, *budget)
	}
	a.inst.RecordSearch(ctx, res, out.stats)
	a.log.Debug().
		Str("outcome", res.Kind()).
		Int("expanded", out.stats.Expanded).
		Int("pushed", out.stats.Pushed).
		Int("pruned", out.stats.Pruned).
		Msg("Path search finished")

	return a.printJSON(res)
}

type reachEntry struct {
	Position grid.Position `json:"position"`
	Cost     int           `json:"cost"`
}

// runReach prints every cell reachable within --budget with its cost, or with
// --exact only the cells whose cheapest cost equals the budget.
func runReach(ctx context.Context, a *app, args []string) error {
	fs := a.newFlagSet("reach")
	src := addMapFlags(fs)
	from := fs.String("from", "", "start cell x,y")
	budget := fs.Int("budget", 6, "movement budget in squares")
	exact := fs.Bool("exact", false, "only cells costing exactly the budget")
	if err := fs.Parse(args); err != nil {
		return err
	}

	start, err := parsePosition(*from)
	if err != nil {
		return err
	}
	if *budget < 0 {
		return fmt.Errorf("budget must be non-negative, got %d", *budget)
	}

	g, err := a.loadGrid(ctx, src)
	if err != nil {
		return err
	}

	rc := pathfinding.NewReachabilityCalculator(a.pf)
	if *exact {
		set, err := within(ctx, a.cfg.Search.Timeout, func() geometry.PositionSet {
			return rc.PositionsAtExactCost(start, *budget, g)
		})
		if err != nil {
			return err
		}
		a.inst.RecordReach(ctx, set.Len())
		return a.printJSON(set.Sorted())
	}

	costs, err := within(ctx, a.cfg.Search.Timeout, func() map[grid.Position]int {
		return rc.ReachableCosts(start, *budget, g)
	})
	if err != nil {
		return err
	}
	a.inst.RecordReach(ctx, len(costs))

	entries := make([]reachEntry, 0, len(costs))
	for _, p := range geometry.NewPositionSet(keys(costs)...).Sorted() {
		entries = append(entries, reachEntry{Position: p, Cost: costs[p]})
	}
	return a.printJSON(entries)
}

func keys(m map[grid.Position]int) []grid.Position {
	out := make([]grid.Position, 0, len(m))
	for p := range m {
		out = append(out, p)
	}
	return out
}

type losReport struct {
	Line  []grid.Position `json:"line"`
	Clear bool            `json:"clear"`
}

// runLOS prints the line between --from and --to and whether it is clear, or
// with --range every cell in range that --from can target.
func runLOS(ctx context.Context, a *app, args []string) error {
	fs := a.newFlagSet("los")
	src := addMapFlags(fs)
	from := fs.String("from", "", "origin cell x,y")
	to := fs.String("to", "", "target cell x,y")
	rangeFeet := fs.Int("range", -1, "list targets within this many feet instead")
	if err := fs.Parse(args); err != nil {
		return err
	}

	origin, err := parsePosition(*from)
	if err != nil {
		return err
	}
	if (*to == "") == (*rangeFeet < 0) {
		return errors.New("exactly one of --to or --range is required")
	}

	g, err := a.loadGrid(ctx, src)
	if err != nil {
		return err
	}

	if *rangeFeet >= 0 {
		return a.printJSON(geometry.PositionsWithinRangeAndLOS(origin, *rangeFeet, g))
	}

	target, err := parsePosition(*to)
	if err != nil {
		return err
	}
	return a.printJSON(losReport{
		Line:  geometry.Line(origin, target),
		Clear: geometry.HasLineOfEffect(origin, target, g),
	})
}

type aoeReport struct {
	Shape    string          `json:"shape"`
	Origin   grid.Position   `json:"origin"`
	Affected []grid.Position `json:"affected"`
}

// runAoE prints the cells covered by a template placed at --origin.
func runAoE(ctx context.Context, a *app, args []string) error {
	fs := a.newFlagSet("aoe")
	src := addMapFlags(fs)
	shape := fs.String("shape", "sphere", "sphere, cube or cone")
	size := fs.Int("size", 20, "radius, side or length in feet")
	dir := fs.String("dir", "north", "cone direction")
	at := fs.String("origin", "", "origin cell x,y")
	if err := fs.Parse(args); err != nil {
		return err
	}

	origin, err := parsePosition(*at)
	if err != nil {
		return err
	}
	d, err := grid.ParseDirection(*dir)
	if err != nil {
		return err
	}
	tmpl, err := geometry.ParseTemplate(*shape, *size, d)
	if err != nil {
		return err
	}

	g, err := a.loadGrid(ctx, src)
	if err != nil {
		return err
	}

	return a.printJSON(aoeReport{
		Shape:    tmpl.Shape(),
		Origin:   origin,
		Affected: tmpl.AffectedPositions(origin, g).Sorted(),
	})
}

// runImport saves a map file as the next revision of a stored name.
func runImport(ctx context.Context, a *app, args []string) error {
	fs := a.newFlagSet("import")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return errors.New("usage: tacgrid import <name> <file.json>")
	}

	g, err := readGridFile(fs.Arg(1))
	if err != nil {
		return err
	}
	st, err := a.openStore()
	if err != nil {
		return err
	}
	rev, err := st.Save(ctx, fs.Arg(0), g)
	if err != nil {
		return err
	}

	return a.printJSON(struct {
		Name     string `json:"name"`
		Revision int    `json:"revision"`
	}{fs.Arg(0), rev})
}

// runExport writes a stored map as JSON to --out, or to stdout.
func runExport(ctx context.Context, a *app, args []string) error {
	fs := a.newFlagSet("export")
	out := fs.String("out", "", "output file (stdout when empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("usage: tacgrid export [--out file.json] <name[@revision]>")
	}

	g, err := a.loadGrid(ctx, &mapSource{stored: fs.Arg(0)})
	if err != nil {
		return err
	}
	if *out == "" {
		return a.printJSON(g)
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := writeJSON(f, g); err != nil {
		_ = f.Close()
		return err
	}
	a.log.Info().Str("file", *out).Msg("Exported map")
	return f.Close()
}

// runList prints every stored map name with its latest revision.
func runList(ctx context.Context, a *app, args []string) error {
	fs := a.newFlagSet("list")
	if err := fs.Parse(args); err != nil {
		return err
	}

	st, err := a.openStore()
	if err != nil {
		return err
	}
	maps, err := st.List(ctx)
	if err != nil {
		return err
	}
	if maps == nil {
		maps = []store.Summary{}
	}
	return a.printJSON(maps)
}
