package geodesy

// Ellipsoid holds the three radii of the reference body, in meters.
// A and B lie in the equatorial plane, C is the polar radius.
type Ellipsoid struct {
	A float64
	B float64
	C float64
}

// WGS84 is the reference ellipsoid used by every transform in this module.
// A equals B, so the tangent frames built on it are orthonormal.
var WGS84 = Ellipsoid{
	A: 6378137.0,
	B: 6378137.0,
	C: 6356752.314245179,
}

// RadiiSquared returns A², B² and C².
func (e Ellipsoid) RadiiSquared() (float64, float64, float64) {
	return e.A * e.A, e.B * e.B, e.C * e.C
}
