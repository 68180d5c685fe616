package tileset

import (
	"github.com/ecopia-map/cesium_tileset/internal/geodesy"
	"github.com/paulmach/orb"
)

// BoundingVolume is one of the 3D Tiles bounding volume encodings.
type BoundingVolume interface {
	// Kind is the property name inside "boundingVolume"
	Kind() string
	Values() []float64
}

// Box is an oriented box: center followed by the x, y and z half-axis vectors.
type Box [12]float64

func (b Box) Kind() string { return "box" }

func (b Box) Values() []float64 {
	values := make([]float64, len(b))
	copy(values, b[:])
	return values
}

// Region is an axis-aligned geodetic region: west, south, east, north in
// radians, then minimum and maximum height in meters.
type Region [6]float64

func (r Region) Kind() string { return "region" }

func (r Region) Values() []float64 {
	values := make([]float64, len(r))
	copy(values, r[:])
	return values
}

func (r Region) West() float64      { return r[0] }
func (r Region) South() float64     { return r[1] }
func (r Region) East() float64      { return r[2] }
func (r Region) North() float64     { return r[3] }
func (r Region) MinHeight() float64 { return r[4] }
func (r Region) MaxHeight() float64 { return r[5] }

// Contains reports whether the position, in radians, falls inside the region
// footprint. Heights are not checked.
func (r Region) Contains(longitude, latitude float64) bool {
	return longitude >= r.West() && longitude <= r.East() &&
		latitude >= r.South() && latitude <= r.North()
}

// RegionAround centers a tileWidth x tileHeight meter footprint on the anchor.
func RegionAround(
	longitude, latitude float64,
	tileWidth, tileHeight float64,
	minHeight, maxHeight float64,
	scale geodesy.LongitudeScale,
) Region {
	halfLon := scale.MetersToRadians(tileWidth/2, latitude)
	halfLat := geodesy.LatMetersToRadians(tileHeight / 2)

	return Region{
		longitude - halfLon,
		latitude - halfLat,
		longitude + halfLon,
		latitude + halfLat,
		minHeight,
		maxHeight,
	}
}

// RegionFromBound converts a lon/lat bound in degrees to a region.
func RegionFromBound(bound orb.Bound, minHeight, maxHeight float64) Region {
	return Region{
		geodesy.ToRadians(bound.Min.Lon()),
		geodesy.ToRadians(bound.Min.Lat()),
		geodesy.ToRadians(bound.Max.Lon()),
		geodesy.ToRadians(bound.Max.Lat()),
		minHeight,
		maxHeight,
	}
}

// Bound is the region footprint in degrees.
func (r Region) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{geodesy.ToDegrees(r.West()), geodesy.ToDegrees(r.South())},
		Max: orb.Point{geodesy.ToDegrees(r.East()), geodesy.ToDegrees(r.North())},
	}
}
