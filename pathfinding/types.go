// Package pathfinding defines the PathResult variants, search options and
// sentinel errors.
package pathfinding

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/katalvlaran/tacgrid/grid"
)

// Sentinel errors.
var (
	// ErrNegativeBudget indicates a movement budget below zero.
	ErrNegativeBudget = errors.New("pathfinding: budget must be non-negative")
	// ErrUnknownResultKind indicates a decoded result carries an unknown "kind".
	ErrUnknownResultKind = errors.New("pathfinding: unknown result kind")
)

// PathResult is the outcome of a path query. The set of implementations is
// closed: Success, NoPathFound and ExceedsBudget.
type PathResult interface {
	// Kind returns the wire discriminator ("success", "noPathFound", "exceedsBudget").
	Kind() string

	isPathResult()
}

// Result kinds used on the wire.
const (
	KindSuccess       = "success"
	KindNoPathFound   = "noPathFound"
	KindExceedsBudget = "exceedsBudget"
)

// Success carries a path from start to destination, both inclusive, and the
// cost of entering every cell after the first.
type Success struct {
	Path      []grid.Position `json:"path"`
	TotalCost int             `json:"totalCost"`
}

// NoPathFound reports why no path was produced.
type NoPathFound struct {
	Reason string `json:"reason"`
}

// ExceedsBudget reports a path that exists but costs more than allowed.
type ExceedsBudget struct {
	RequiredCost  int `json:"requiredCost"`
	AvailableCost int `json:"availableCost"`
}

// Kind implements PathResult.
func (Success) Kind() string { return KindSuccess }

// Kind implements PathResult.
func (NoPathFound) Kind() string { return KindNoPathFound }

// Kind implements PathResult.
func (ExceedsBudget) Kind() string { return KindExceedsBudget }

func (Success) isPathResult()       {}
func (NoPathFound) isPathResult()   {}
func (ExceedsBudget) isPathResult() {}

// MarshalJSON adds the "kind" discriminator.
func (r Success) MarshalJSON() ([]byte, error) {
	type plain Success
	return json.Marshal(struct {
		Kind string `json:"kind"`
		plain
	}{KindSuccess, plain(r)})
}

// MarshalJSON adds the "kind" discriminator.
func (r NoPathFound) MarshalJSON() ([]byte, error) {
	type plain NoPathFound
	return json.Marshal(struct {
		Kind string `json:"kind"`
		plain
	}{KindNoPathFound, plain(r)})
}

// MarshalJSON adds the "kind" discriminator.
func (r ExceedsBudget) MarshalJSON() ([]byte, error) {
	type plain ExceedsBudget
	return json.Marshal(struct {
		Kind string `json:"kind"`
		plain
	}{KindExceedsBudget, plain(r)})
}

// DecodeResult restores a PathResult written by MarshalJSON.
func DecodeResult(data []byte) (PathResult, error) {
	var head struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	switch head.Kind {
	case KindSuccess:
		var r Success
		err := json.Unmarshal(data, &r)
		return r, err
	case KindNoPathFound:
		var r NoPathFound
		err := json.Unmarshal(data, &r)
		return r, err
	case KindExceedsBudget:
		var r ExceedsBudget
		err := json.Unmarshal(data, &r)
		return r, err
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownResultKind, head.Kind)
	}
}

// Stats counts the work done by one search.
type Stats struct {
	Expanded int // nodes popped and expanded
	Pushed   int // frontier insertions
	Pruned   int // candidates dropped for exceeding the budget
}

// Options configures a Pathfinder.
type Options struct {
	// Cost is the per-cell cost model. Default TerrainCost.
	Cost CostCalculator

	// OnExpand is called when a node is popped for expansion.
	OnExpand func(pos grid.Position, g, f int)

	// OnPrune is called when a candidate is dropped for exceeding the budget.
	OnPrune func(pos grid.Position, tentative int)
}

// Option represents a functional option for configuring a Pathfinder.
type Option func(*Options)

// DefaultOptions returns TerrainCost and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Cost:     TerrainCost{},
		OnExpand: func(grid.Position, int, int) {},
		OnPrune:  func(grid.Position, int) {},
	}
}

// WithCostCalculator replaces the terrain cost model. nil is ignored.
func WithCostCalculator(c CostCalculator) Option {
	return func(o *Options) {
		if c != nil {
			o.Cost = c
		}
	}
}

// WithOnExpand registers a callback for every expanded node.
func WithOnExpand(fn func(pos grid.Position, g, f int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// WithOnPrune registers a callback for every budget-pruned candidate.
func WithOnPrune(fn func(pos grid.Position, tentative int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnPrune = fn
		}
	}
}
