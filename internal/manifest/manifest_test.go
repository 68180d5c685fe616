package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlManifest = `
output: out
tiles:
  - kind: box
    output: box/tileset.json
    content_uri: content.b3dm
    geometric_error: 16
    box: [0, 0, 0, 10, 0, 0, 0, 10, 0, 0, 0, 10]
  - kind: Region
    output: region/tileset.json
    content_uri: content.b3dm
    geometric_error: 8.5
    anchor: {x: 121.47, y: 31.23, z: 10}
    tangent_frame: legacy
    region:
      west: 121.4
      south: 31.2
      east: 121.5
      north: 31.3
      min_height: -5
      max_height: 120
  - kind: anchored
    output: /abs/anchored.json
    content_uri: tile.b3dm
    geometric_error: 4
    anchor: {x: 0, y: 0}
    width: 1000
    length: 500
    height_min: 2
    height_max: 100
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "tiles.yaml", yamlManifest)

	m, err := Load(path)
	require.NoError(t, err)
	require.Len(t, m.Tiles, 3)
	assert.Equal(t, "out", m.Output)

	box := m.Tiles[0]
	assert.Equal(t, KindBox, box.Kind)
	assert.Equal(t, 16.0, box.GeometricError)
	assert.Equal(t, []float64{0, 0, 0, 10, 0, 0, 0, 10, 0, 0, 0, 10}, box.Box)
	assert.Nil(t, box.Anchor)
	assert.Equal(t, filepath.Join("out", "box/tileset.json"), m.OutputPath(box))

	region := m.Tiles[1]
	assert.Equal(t, KindRegion, region.Kind)
	require.NotNil(t, region.Anchor)
	assert.Equal(t, Position{X: 121.47, Y: 31.23, Z: 10}, *region.Anchor)
	require.NotNil(t, region.Region)
	assert.Equal(t, Bounds{West: 121.4, South: 31.2, East: 121.5, North: 31.3, MinHeight: -5, MaxHeight: 120}, *region.Region)
	assert.Equal(t, "legacy", region.TangentFrame)

	anchored := m.Tiles[2]
	assert.Equal(t, KindAnchored, anchored.Kind)
	assert.Equal(t, 1000.0, anchored.Width)
	assert.Equal(t, 500.0, anchored.Length)
	assert.Equal(t, 2.0, anchored.HeightMin)
	assert.Equal(t, 100.0, anchored.HeightMax)
	assert.Equal(t, "/abs/anchored.json", m.OutputPath(anchored))
}

func TestLoadJSONDefaultsOutputToManifestFolder(t *testing.T) {
	path := writeFile(t, "tiles.json", `{"tiles":[{"kind":"box","output":"a.json","geometric_error":1,
		"box":[1,2,3,4,5,6,7,8,9,10,11,12]}]}`)

	m, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Dir(path), m.Output)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "a.json"), m.OutputPath(m.Tiles[0]))
}

func TestLoadRejectsInvalidTiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown kind", content: `{"tiles":[{"kind":"sphere","output":"a.json"}]}`},
		{name: "short box", content: `{"tiles":[{"kind":"box","output":"a.json","box":[1,2,3]}]}`},
		{name: "missing region", content: `{"tiles":[{"kind":"region","output":"a.json"}]}`},
		{name: "swapped region", content: `{"tiles":[{"kind":"region","output":"a.json","region":{"west":2,"east":1}}]}`},
		{name: "anchored without anchor", content: `{"tiles":[{"kind":"anchored","output":"a.json","width":1,"length":1}]}`},
		{name: "anchored without size", content: `{"tiles":[{"kind":"anchored","output":"a.json","anchor":{"x":1,"y":1}}]}`},
		{name: "missing output", content: `{"tiles":[{"kind":"box","box":[1,2,3,4,5,6,7,8,9,10,11,12]}]}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "tiles.json", tc.content))
			require.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading manifest")
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" ANCHORED ")
	require.NoError(t, err)
	require.Equal(t, KindAnchored, k)

	_, err = ParseKind("")
	require.Error(t, err)
}
