package proj4_coordinate_converter

import (
	"fmt"
	"math"
	"sync"

	"github.com/ecopia-map/cesium_tileset/internal/converters"
	proj "github.com/xeonx/proj4"
)

const wgs84LonLat = "+proj=longlat +datum=WGS84 +no_defs"

// Proj4CoordinateConverter reprojects with the PROJ library from a proj4
// definition string. Native handles are released by Cleanup.
type Proj4CoordinateConverter struct {
	sync.Mutex
	definition string
	source     *proj.Proj
	target     *proj.Proj
}

func NewProj4CoordinateConverter(definition string) (converters.CoordinateConverter, error) {
	source, err := proj.InitPlus(definition)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", converters.ErrUnknownCRS, definition, err)
	}
	target, err := proj.InitPlus(wgs84LonLat)
	if err != nil {
		source.Close()
		return nil, err
	}

	return &Proj4CoordinateConverter{
		definition: definition,
		source:     source,
		target:     target,
	}, nil
}

func (c *Proj4CoordinateConverter) ToWGS84(x, y, z float64) (float64, float64, float64, error) {
	c.Lock()
	defer c.Unlock()

	if c.source == nil {
		return 0, 0, 0, fmt.Errorf("converter for %s already cleaned up", c.definition)
	}

	// PROJ works in radians for geographic systems
	if c.source.IsLatLong() {
		x, y = x*math.Pi/180, y*math.Pi/180
	}
	xs, ys, zs := []float64{x}, []float64{y}, []float64{z}
	if err := proj.TransformRaw(c.source, c.target, xs, ys, zs); err != nil {
		return 0, 0, 0, fmt.Errorf("reprojecting (%v, %v) from %s: %w", x, y, c.definition, err)
	}

	return xs[0] * 180 / math.Pi, ys[0] * 180 / math.Pi, zs[0], nil
}

func (c *Proj4CoordinateConverter) Cleanup() {
	c.Lock()
	defer c.Unlock()

	if c.source != nil {
		c.source.Close()
		c.source = nil
	}
	if c.target != nil {
		c.target.Close()
		c.target = nil
	}
}
