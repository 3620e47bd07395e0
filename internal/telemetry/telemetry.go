package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/katalvlaran/tacgrid/pathfinding"
)

// Instruments records pathfinding activity.
type Instruments struct {
	searches metric.Int64Counter
	expanded metric.Int64Histogram
	pruned   metric.Int64Counter
	reached  metric.Int64Histogram
}

// New creates the instruments on m. A nil meter falls back to the global
// OTel meter, which is a no-op unless a provider has been installed.
func New(m metric.Meter) (*Instruments, error) {
	if m == nil {
		m = meter()
	}

	var (
		in  Instruments
		err error
	)

	in.searches, err = m.Int64Counter(
		"pathfinding.searches",
		metric.WithDescription("Path searches by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating searches counter: %w", err)
	}

	in.expanded, err = m.Int64Histogram(
		"pathfinding.nodes.expanded",
		metric.WithDescription("Nodes expanded per search"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating expanded histogram: %w", err)
	}

	in.pruned, err = m.Int64Counter(
		"pathfinding.nodes.pruned",
		metric.WithDescription("Neighbors discarded for exceeding the movement budget"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pruned counter: %w", err)
	}

	in.reached, err = m.Int64Histogram(
		"reachability.positions",
		metric.WithDescription("Positions reachable per query"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating reached histogram: %w", err)
	}

	return &in, nil
}

// RecordSearch records one completed path search.
func (in *Instruments) RecordSearch(ctx context.Context, res pathfinding.PathResult, stats pathfinding.Stats) {
	if in == nil {
		return
	}
	outcome := metric.WithAttributes(attribute.String("outcome", res.Kind()))
	in.searches.Add(ctx, 1, outcome)
	in.expanded.Record(ctx, int64(stats.Expanded), outcome)
	if stats.Pruned > 0 {
		in.pruned.Add(ctx, int64(stats.Pruned))
	}
}

// RecordReach records the size of one reachability result.
func (in *Instruments) RecordReach(ctx context.Context, n int) {
	if in == nil {
		return
	}
	in.reached.Record(ctx, int64(n))
}
