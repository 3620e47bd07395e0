package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tacgrid/grid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "maps.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSave_AssignsRevisions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	g := grid.MustNew(10, 12)
	rev, err := s.Save(ctx, "crypt", g)
	require.NoError(t, err)
	assert.Equal(t, 1, rev)

	g2 := g.WithCell(grid.Pos(3, 4), grid.CellProperties{HasObstacle: true})
	rev, err = s.Save(ctx, "crypt", g2)
	require.NoError(t, err)
	assert.Equal(t, 2, rev)

	rev, err = s.Save(ctx, "bridge", g)
	require.NoError(t, err)
	assert.Equal(t, 1, rev, "revisions are counted per name")
}

func TestSave_EmptyName(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Save(context.Background(), "", grid.MustNew(10, 10))
	assert.Error(t, err)
}

func TestSave_RejectsOutOfBoundsCells(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	good := grid.MustNew(10, 10)
	_, err := s.Save(ctx, "keep", good)
	require.NoError(t, err)

	bad := good.WithCell(grid.Pos(15, 3), grid.CellProperties{HasObstacle: true})
	_, err = s.Save(ctx, "keep", bad)
	assert.ErrorIs(t, err, grid.ErrCellOutOfBounds)

	// the rejected grid did not become the latest revision
	got, rev, err := s.Load(ctx, "keep")
	require.NoError(t, err)
	assert.Equal(t, 1, rev)
	assert.True(t, good.Equal(got))

	_, err = s.Save(ctx, "fresh", bad)
	require.Error(t, err)
	_, _, err = s.Load(ctx, "fresh")
	assert.ErrorIs(t, err, ErrMapNotFound)
}

func TestLoad_LatestAndRevision(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := grid.MustNew(20, 10)
	second := first.WithCells(map[grid.Position]grid.CellProperties{
		grid.Pos(1, 1): {Terrain: grid.Difficult},
		grid.Pos(2, 1): {OccupiedBy: "goblin-1"},
	})
	_, err := s.Save(ctx, "ford", first)
	require.NoError(t, err)
	_, err = s.Save(ctx, "ford", second)
	require.NoError(t, err)

	got, rev, err := s.Load(ctx, "ford")
	require.NoError(t, err)
	assert.Equal(t, 2, rev)
	assert.True(t, second.Equal(got))

	old, err := s.LoadRevision(ctx, "ford", 1)
	require.NoError(t, err)
	assert.True(t, first.Equal(old))
	assert.Equal(t, 20, old.Width())
	assert.Equal(t, 10, old.Height())
}

func TestLoad_NotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, _, err := s.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrMapNotFound)

	_, err = s.Save(ctx, "present", grid.MustNew(10, 10))
	require.NoError(t, err)
	_, err = s.LoadRevision(ctx, "present", 7)
	assert.ErrorIs(t, err, ErrMapNotFound)
}

func TestList(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	empty, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	g := grid.MustNew(10, 10)
	for _, name := range []string{"tower", "bridge", "tower", "tower"} {
		_, err := s.Save(ctx, name, g)
		require.NoError(t, err)
	}

	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Summary{
		{Name: "bridge", Latest: 1, Revisions: 1},
		{Name: "tower", Latest: 3, Revisions: 3},
	}, got)
}

func TestOpen_InMemory(t *testing.T) {
	s, err := Open("", zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	_, err = s.Save(ctx, "scratch", grid.MustNew(10, 10))
	require.NoError(t, err)

	_, rev, err := s.Load(ctx, "scratch")
	require.NoError(t, err)
	assert.Equal(t, 1, rev)
}
