package converters

import (
	"errors"
)

var ErrUnknownCRS = errors.New("unknown coordinate reference system")

// CoordinateConverter reprojects positions from a source CRS to WGS84
// longitude/latitude in degrees. Heights pass through in meters. A converter
// owns its projection handles until Cleanup is called.
type CoordinateConverter interface {
	ToWGS84(x, y, z float64) (lon, lat, height float64, err error)
	Cleanup()
}

type ElevationCorrector interface {
	CorrectElevation(lon, lat, z float64) float64
}
