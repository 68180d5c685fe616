package geodesy

import (
	"github.com/paulmach/orb"
)

// Anchor is a geodetic position: longitude and latitude in radians, height in
// meters relative to the WGS84 ellipsoid.
type Anchor struct {
	Longitude float64
	Latitude  float64
	Height    float64
}

// AnchorFromPoint builds an Anchor from a lon/lat point expressed in degrees.
func AnchorFromPoint(p orb.Point, height float64) Anchor {
	return Anchor{
		Longitude: ToRadians(p.Lon()),
		Latitude:  ToRadians(p.Lat()),
		Height:    height,
	}
}

// Point returns the anchor as a lon/lat point in degrees.
func (a Anchor) Point() orb.Point {
	return orb.Point{ToDegrees(a.Longitude), ToDegrees(a.Latitude)}
}

func (a Anchor) Transform(frame TangentFrame) Matrix4 {
	return frame.Build(a.Longitude, a.Latitude, a.Height)
}
