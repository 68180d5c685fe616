package tiler

import (
	"testing"

	"github.com/ecopia-map/cesium_tileset/internal/manifest"
	"github.com/stretchr/testify/require"
)

func TestCopyIsDeep(t *testing.T) {
	opts := &TilerOptions{
		Input: "in",
		Srid:  3857,
		Tile: &manifest.Tile{
			Kind:   manifest.KindRegion,
			Output: "tileset.json",
			Anchor: &manifest.Position{X: 1, Y: 2, Z: 3},
			Region: &manifest.Bounds{West: 1, East: 2},
			Box:    []float64{1, 2, 3},
		},
	}

	c := opts.Copy()
	c.Tile.Anchor.X = 99
	c.Tile.Region.West = 99
	c.Tile.Box[0] = 99
	c.Srid = 4326

	require.Equal(t, 1.0, opts.Tile.Anchor.X)
	require.Equal(t, 1.0, opts.Tile.Region.West)
	require.Equal(t, 1.0, opts.Tile.Box[0])
	require.Equal(t, 3857, opts.Srid)
	require.Equal(t, "in", c.Input)
}
