package epsg_coordinate_converter

import (
	"fmt"
	"math"

	"github.com/ecopia-map/cesium_tileset/internal/converters"
	"github.com/wroge/wgs84"
)

const WGS84Srid = 4326

// EPSGCoordinateConverter reprojects through the built-in EPSG repository of
// wroge/wgs84. It holds no native resources.
type EPSGCoordinateConverter struct {
	srid      int
	transform func(a, b, c float64) (a2, b2, c2 float64)
}

func NewEPSGCoordinateConverter(srid int) converters.CoordinateConverter {
	c := &EPSGCoordinateConverter{srid: srid}
	if srid != WGS84Srid {
		epsg := wgs84.EPSG()
		c.transform = epsg.Transform(srid, WGS84Srid)
	}
	return c
}

func (c *EPSGCoordinateConverter) ToWGS84(x, y, z float64) (float64, float64, float64, error) {
	if c.transform == nil {
		return x, y, z, nil
	}

	lon, lat, _ := c.transform(x, y, z)
	if math.IsNaN(lon) || math.IsNaN(lat) || math.IsInf(lon, 0) || math.IsInf(lat, 0) {
		return 0, 0, 0, fmt.Errorf("%w: EPSG:%d (%v, %v)", converters.ErrUnknownCRS, c.srid, x, y)
	}
	return lon, lat, z, nil
}

func (c *EPSGCoordinateConverter) Cleanup() {}
