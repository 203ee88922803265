package tilestore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/halo/dataset"
	"github.com/katalvlaran/halo/grid"
	"github.com/katalvlaran/halo/neighbors"
	"github.com/katalvlaran/halo/tilestore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(z, c, r int) tilestore.Key {
	return tilestore.Key{Zoom: z, Coord: grid.Coord{Col: c, Row: r}}
}

func openTemp(t *testing.T) *tilestore.Store {
	t.Helper()
	s, err := tilestore.Open(context.Background(), filepath.Join(t.TempDir(), "tiles.mbtiles"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

// TestOpen_EmptyPath rejects a missing path.
func TestOpen_EmptyPath(t *testing.T) {
	_, err := tilestore.Open(context.Background(), "")
	assert.ErrorIs(t, err, tilestore.ErrEmptyPath)
}

// TestKey_Contract checks WithCoordinate keeps the zoom level.
func TestKey_Contract(t *testing.T) {
	k := key(3, 1, 2)
	moved := k.WithCoordinate(grid.Coord{Col: 4, Row: 0})
	assert.Equal(t, key(3, 4, 0), moved)
	assert.Equal(t, grid.Coord{Col: 1, Row: 2}, k.Coordinate())
	assert.Equal(t, "3/1/2", k.String())
	assert.True(t, k.Valid())
	assert.False(t, key(3, 8, 0).Valid())
	assert.False(t, key(3, 0, -1).Valid())
	assert.NotEqual(t, key(1, 0, 0).Hash64(), key(2, 0, 0).Hash64())
}

// TestStore_PutLoad round-trips tiles and flips TMS rows.
func TestStore_PutLoad(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	in := []dataset.Pair[tilestore.Key, []byte]{
		dataset.KV(key(2, 0, 0), []byte("nw")),
		dataset.KV(key(2, 0, 3), []byte("sw")),
		dataset.KV(key(2, 1, 0), []byte("n1")),
		dataset.KV(key(1, 0, 0), []byte("z1")),
	}
	require.NoError(t, s.Put(ctx, in))

	got, err := s.Load(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, in[:3], got)

	n, err := s.Count(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// replace keeps one row per key
	require.NoError(t, s.Put(ctx, []dataset.Pair[tilestore.Key, []byte]{dataset.KV(key(2, 0, 0), []byte("NW"))}))
	got, err = s.Load(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []byte("NW"), got[0].Value)
}

// TestStore_Errors covers range validation.
func TestStore_Errors(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	err := s.Put(ctx, []dataset.Pair[tilestore.Key, []byte]{dataset.KV(key(1, 2, 0), []byte("x"))})
	assert.ErrorIs(t, err, tilestore.ErrOutOfRange)
	_, err = s.Load(ctx, 31)
	assert.ErrorIs(t, err, tilestore.ErrZoomRange)
}

// TestStore_Metadata sets and replaces metadata entries.
func TestStore_Metadata(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	_, ok, err := s.Metadata(ctx, "name")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetMetadata(ctx, "name", "a"))
	require.NoError(t, s.SetMetadata(ctx, "name", "b"))
	v, ok, err := s.Metadata(ctx, "name")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", v)
}

// TestStore_Neighbors feeds stored tiles to the collector: (0,0) lies above (0,1)
// once TMS rows are flipped, and zoom levels never mix.
func TestStore_Neighbors(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	require.NoError(t, s.Put(ctx, []dataset.Pair[tilestore.Key, []byte]{
		dataset.KV(key(1, 0, 0), []byte("top")),
		dataset.KV(key(1, 0, 1), []byte("bottom")),
		dataset.KV(key(2, 1, 0), []byte("other zoom")),
	}))

	recs, err := s.Load(ctx, 1)
	require.NoError(t, err)
	out, err := neighbors.CollectNeighbors(dataset.Parallelize(recs, 2))
	require.NoError(t, err)

	got := out.CollectMap()
	require.Len(t, got, 2)
	b, ok := got[key(1, 0, 0)].Get(grid.Bottom)
	require.True(t, ok)
	assert.Equal(t, []byte("bottom"), b.Value)
	assert.Len(t, got[key(1, 0, 1)], 2)
}
