package algorithm_manager

import (
	"github.com/ecopia-map/cesium_tileset/internal/converters"
	"github.com/ecopia-map/cesium_tileset/internal/tileset"
)

type AlgorithmManager interface {
	GetElevationCorrectionAlgorithm() converters.ElevationCorrector
	GetCoordinateConverterAlgorithm() converters.CoordinateConverter
	GetTilesetWriter() *tileset.Writer
}
