package io

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ecopia-map/cesium_tileset/internal/converters"
	"github.com/ecopia-map/cesium_tileset/internal/converters/epsg_coordinate_converter"
	"github.com/ecopia-map/cesium_tileset/internal/converters/offset_elevation_corrector"
	"github.com/ecopia-map/cesium_tileset/internal/geodesy"
	"github.com/ecopia-map/cesium_tileset/internal/manifest"
	"github.com/ecopia-map/cesium_tileset/internal/tiler"
	"github.com/ecopia-map/cesium_tileset/internal/tileset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newProducer(zOffset float64) *StandardProducer {
	opts := &tiler.TilerOptions{Srid: 4326, ZOffset: zOffset}
	return NewStandardProducer(
		opts,
		epsg_coordinate_converter.NewEPSGCoordinateConverter(opts.Srid),
		offset_elevation_corrector.NewOffsetElevationCorrector(opts.ZOffset),
	)
}

func TestFilePersisterCreatesFolders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "tileset.json")
	require.NoError(t, NewFilePersister().Persist(path, []byte(`{}`)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestResolveAnchored(t *testing.T) {
	m := &manifest.Manifest{Output: "out"}
	unit, err := newProducer(10).Resolve(m, manifest.Tile{
		Kind:      manifest.KindAnchored,
		Output:    "a.json",
		Anchor:    &manifest.Position{X: 90, Y: 45, Z: 999},
		Width:     100,
		Length:    200,
		HeightMin: 1,
		HeightMax: 50,
	})
	require.NoError(t, err)

	require.NotNil(t, unit.Anchor)
	assert.InDelta(t, geodesy.ToRadians(90), unit.Anchor.Longitude, 1e-15)
	assert.InDelta(t, geodesy.ToRadians(45), unit.Anchor.Latitude, 1e-15)
	assert.Equal(t, 11.0, unit.Anchor.Height)
	assert.Equal(t, 60.0, unit.HeightMax)
	assert.Equal(t, filepath.Join("out", "a.json"), unit.OutputPath)
}

func TestResolveRegionWithTransform(t *testing.T) {
	unit, err := newProducer(0).Resolve(&manifest.Manifest{}, manifest.Tile{
		Kind:         manifest.KindRegion,
		Output:       "r.json",
		TangentFrame: "LEGACY",
		Anchor:       &manifest.Position{X: 10, Y: 20, Z: 5},
		Region:       &manifest.Bounds{West: 10, South: 20, East: 11, North: 21, MinHeight: -1, MaxHeight: 9},
	})
	require.NoError(t, err)

	assert.Equal(t, geodesy.LegacyScaledTangentFrame, unit.Frame)
	assert.InDelta(t, geodesy.ToRadians(10), unit.Region.West(), 1e-15)
	assert.InDelta(t, geodesy.ToRadians(21), unit.Region.North(), 1e-15)
	assert.Equal(t, -1.0, unit.Region.MinHeight())

	transform := unit.Transform()
	require.NotNil(t, transform)
	assert.Equal(t, geodesy.LegacyScaledTangentFrame.Build(unit.Anchor.Longitude, unit.Anchor.Latitude, 5), *transform)
}

func TestResolveRegionAnchorOutsideFootprint(t *testing.T) {
	unit, err := newProducer(0).Resolve(&manifest.Manifest{}, manifest.Tile{
		Kind:   manifest.KindRegion,
		Output: "r.json",
		Anchor: &manifest.Position{X: 50, Y: 20},
		Region: &manifest.Bounds{West: 10, South: 20, East: 11, North: 21},
	})
	require.NoError(t, err)
	assert.False(t, unit.Region.Contains(unit.Anchor.Longitude, unit.Anchor.Latitude))
	assert.NotNil(t, unit.Transform())
}

func TestResolveBoxWithoutAnchor(t *testing.T) {
	unit, err := newProducer(0).Resolve(&manifest.Manifest{}, manifest.Tile{
		Kind:   manifest.KindBox,
		Output: "b.json",
		Box:    []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
	})
	require.NoError(t, err)
	assert.Nil(t, unit.Transform())
	assert.Equal(t, tileset.Box{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, unit.Box)
}

type failingConverter struct{}

func (failingConverter) ToWGS84(x, y, z float64) (float64, float64, float64, error) {
	return 0, 0, 0, converters.ErrUnknownCRS
}

func (failingConverter) Cleanup() {}

func runPipeline(producer Producer, writer *tileset.Writer, m *manifest.Manifest, numConsumers int) []error {
	workChannel := make(chan *WorkUnit, numConsumers*5)
	errorChannel := make(chan error, numConsumers+1)

	var waitGroup sync.WaitGroup
	waitGroup.Add(1)
	go producer.Produce(workChannel, errorChannel, &waitGroup, m)

	for i := 0; i < numConsumers; i++ {
		waitGroup.Add(1)
		go NewStandardConsumer(writer).Consume(workChannel, errorChannel, &waitGroup)
	}

	waitGroup.Wait()
	close(errorChannel)

	var errs []error
	for err := range errorChannel {
		errs = append(errs, err)
	}
	return errs
}

func TestProducerConsumerWritesEveryTile(t *testing.T) {
	dir := t.TempDir()
	m := &manifest.Manifest{Output: dir}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		m.Tiles = append(m.Tiles, manifest.Tile{
			Kind:           manifest.KindAnchored,
			Output:         filepath.Join(name, "tileset.json"),
			ContentURI:     "content.b3dm",
			GeometricError: 4,
			Anchor:         &manifest.Position{X: 12.5, Y: 41.9},
			Width:          100,
			Length:         100,
			HeightMax:      30,
		})
	}

	writer := tileset.NewWriter(NewFilePersister(), tileset.ShortestNumber, true, geodesy.FixedLatitudeScale)
	errs := runPipeline(newProducer(0), writer, m, 3)
	require.Empty(t, errs)

	for _, tile := range m.Tiles {
		data, err := os.ReadFile(m.OutputPath(tile))
		require.NoError(t, err)
		assert.Equal(t, "content.b3dm", gjson.GetBytes(data, "root.content.uri").String())
		assert.Len(t, gjson.GetBytes(data, "root.transform").Array(), 16)
	}
}

func TestProducerReportsReprojectionErrors(t *testing.T) {
	dir := t.TempDir()
	m := &manifest.Manifest{Output: dir, Tiles: []manifest.Tile{
		{Kind: manifest.KindBox, Output: "plain.json", Box: make([]float64, 12)},
		{Kind: manifest.KindBox, Output: "anchored.json", Box: make([]float64, 12), Anchor: &manifest.Position{}},
	}}

	producer := NewStandardProducer(&tiler.TilerOptions{}, failingConverter{}, offset_elevation_corrector.NewOffsetElevationCorrector(0))
	writer := tileset.NewWriter(NewFilePersister(), tileset.ShortestNumber, false, geodesy.FixedLatitudeScale)

	errs := runPipeline(producer, writer, m, 2)
	require.Len(t, errs, 1)
	assert.True(t, errors.Is(errs[0], converters.ErrUnknownCRS))

	_, err := os.Stat(filepath.Join(dir, "plain.json"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "anchored.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestConsumerReportsWriteFailures(t *testing.T) {
	failing := tileset.PersistFunc(func(string, []byte) bool { return false })
	writer := tileset.NewWriter(failing, tileset.ShortestNumber, false, geodesy.FixedLatitudeScale)
	m := &manifest.Manifest{Tiles: []manifest.Tile{
		{Kind: manifest.KindBox, Output: "a.json", Box: make([]float64, 12)},
		{Kind: manifest.KindBox, Output: "b.json", Box: make([]float64, 12)},
	}}

	errs := runPipeline(newProducer(0), writer, m, 1)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], tileset.ErrWriteFailed)
}
