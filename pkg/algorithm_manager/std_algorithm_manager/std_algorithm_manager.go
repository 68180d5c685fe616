package std_algorithm_manager

import (
	"github.com/ecopia-map/cesium_tileset/internal/converters"
	"github.com/ecopia-map/cesium_tileset/internal/converters/epsg_coordinate_converter"
	"github.com/ecopia-map/cesium_tileset/internal/converters/offset_elevation_corrector"
	"github.com/ecopia-map/cesium_tileset/internal/converters/proj4_coordinate_converter"
	"github.com/ecopia-map/cesium_tileset/internal/io"
	"github.com/ecopia-map/cesium_tileset/internal/tiler"
	"github.com/ecopia-map/cesium_tileset/internal/tileset"
	"github.com/ecopia-map/cesium_tileset/pkg/algorithm_manager"
)

type StandardAlgorithmManager struct {
	options             *tiler.TilerOptions
	coordinateConverter converters.CoordinateConverter
	elevationCorrector  converters.ElevationCorrector
	writer              *tileset.Writer
}

// NewAlgorithmManager builds the strategies selected by the options. A proj4
// definition takes precedence over the srid.
func NewAlgorithmManager(opts *tiler.TilerOptions) (algorithm_manager.AlgorithmManager, error) {
	var coordinateConverter converters.CoordinateConverter
	if opts.Proj4 != "" {
		c, err := proj4_coordinate_converter.NewProj4CoordinateConverter(opts.Proj4)
		if err != nil {
			return nil, err
		}
		coordinateConverter = c
	} else {
		coordinateConverter = epsg_coordinate_converter.NewEPSGCoordinateConverter(opts.Srid)
	}

	return NewAlgorithmManagerWith(opts, coordinateConverter, io.NewFilePersister()), nil
}

// NewAlgorithmManagerWith wires explicit converter and persister implementations.
func NewAlgorithmManagerWith(opts *tiler.TilerOptions, coordinateConverter converters.CoordinateConverter, persister tileset.Persister) algorithm_manager.AlgorithmManager {
	return &StandardAlgorithmManager{
		options:             opts,
		coordinateConverter: coordinateConverter,
		elevationCorrector:  offset_elevation_corrector.NewOffsetElevationCorrector(opts.ZOffset),
		writer:              tileset.NewWriter(persister, opts.NumberFormat, opts.Indent, opts.LongitudeScale),
	}
}

func (m *StandardAlgorithmManager) GetElevationCorrectionAlgorithm() converters.ElevationCorrector {
	return m.elevationCorrector
}

func (m *StandardAlgorithmManager) GetCoordinateConverterAlgorithm() converters.CoordinateConverter {
	return m.coordinateConverter
}

func (m *StandardAlgorithmManager) GetTilesetWriter() *tileset.Writer {
	return m.writer
}
