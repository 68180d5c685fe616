package geodesy

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Matrix4 is a 4x4 affine matrix stored column-major, the layout expected by
// the 3D Tiles "transform" property.
type Matrix4 [16]float64

// Column returns the first three components of column j
func (m Matrix4) Column(j int) r3.Vec {
	return r3.Vec{X: m[j*4], Y: m[j*4+1], Z: m[j*4+2]}
}

func (m Matrix4) East() r3.Vec        { return m.Column(0) }
func (m Matrix4) North() r3.Vec       { return m.Column(1) }
func (m Matrix4) Up() r3.Vec          { return m.Column(2) }
func (m Matrix4) Translation() r3.Vec { return m.Column(3) }

// IsFinite reports whether no element is NaN or infinite.
func (m Matrix4) IsFinite() bool {
	for _, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func newMatrix4(east, north, up, translation r3.Vec) Matrix4 {
	return Matrix4{
		east.X, east.Y, east.Z, 0,
		north.X, north.Y, north.Z, 0,
		up.X, up.Y, up.Z, 0,
		translation.X, translation.Y, translation.Z, 1,
	}
}

// TangentFrame selects the formula used to derive an east/north/up frame.
type TangentFrame int

const (
	// Unit basis from the parametric ellipsoid point, height applied along up.
	NormalizedTangentFrame TangentFrame = iota

	// Basis from the geodetic normal and the radii-squared point, height scaled
	// by that unnormalized point. Kept for descriptors written by older tools.
	LegacyScaledTangentFrame
)

func (f TangentFrame) String() string {
	switch f {
	case NormalizedTangentFrame:
		return "NORMALIZED"
	case LegacyScaledTangentFrame:
		return "LEGACY"
	}
	return ""
}

func ParseTangentFrame(value string) (TangentFrame, error) {
	switch strings.Trim(strings.ToUpper(value), " ") {
	case "", "NORMALIZED":
		return NormalizedTangentFrame, nil
	case "LEGACY":
		return LegacyScaledTangentFrame, nil
	}
	return NormalizedTangentFrame, fmt.Errorf("unknown tangent frame %q, expected NORMALIZED or LEGACY", value)
}

// BuildTransform returns the ENU to ECEF matrix at the given anchor using the
// normalized frame.
func BuildTransform(longitude, latitude, height float64) Matrix4 {
	return NormalizedTangentFrame.Build(longitude, latitude, height)
}

// Build derives the frame at (longitude, latitude) in radians, offset by height
// meters. Nothing is guarded: at the poles east degenerates and the result may
// hold NaN.
func (f TangentFrame) Build(longitude, latitude, height float64) Matrix4 {
	if f == LegacyScaledTangentFrame {
		return buildLegacyScaled(longitude, latitude, height)
	}
	return buildNormalized(longitude, latitude, height)
}

// SurfacePoint is (A·cosφ·cosλ, B·cosφ·sinλ, C·sinφ).
func SurfacePoint(longitude, latitude float64) r3.Vec {
	cosLat := math.Cos(latitude)
	return r3.Vec{
		X: WGS84.A * cosLat * math.Cos(longitude),
		Y: WGS84.B * cosLat * math.Sin(longitude),
		Z: WGS84.C * math.Sin(latitude),
	}
}

// GeodeticSurfacePoint projects the geodetic normal at (longitude, latitude)
// onto the ellipsoid surface.
func GeodeticSurfacePoint(longitude, latitude float64) r3.Vec {
	n := GeodeticNormal(longitude, latitude)
	k := scaledNormal(n)
	return r3.Scale(1/math.Sqrt(r3.Dot(n, k)), k)
}

func GeodeticNormal(longitude, latitude float64) r3.Vec {
	cosLat := math.Cos(latitude)
	return r3.Vec{
		X: cosLat * math.Cos(longitude),
		Y: cosLat * math.Sin(longitude),
		Z: math.Sin(latitude),
	}
}

// scaledNormal multiplies each component of n by the matching squared radius.
func scaledNormal(n r3.Vec) r3.Vec {
	a2, b2, c2 := WGS84.RadiiSquared()
	return r3.Vec{X: a2 * n.X, Y: b2 * n.Y, Z: c2 * n.Z}
}

var unitZ = r3.Vec{X: 0, Y: 0, Z: 1}

func buildNormalized(longitude, latitude, height float64) Matrix4 {
	p0 := SurfacePoint(longitude, latitude)

	up := r3.Unit(p0)
	east := r3.Unit(r3.Cross(unitZ, p0))
	north := r3.Unit(r3.Cross(up, east))

	return newMatrix4(east, north, up, r3.Add(p0, r3.Scale(height, up)))
}

func buildLegacyScaled(longitude, latitude, height float64) Matrix4 {
	n := GeodeticNormal(longitude, latitude)
	k := scaledNormal(n)
	surface := GeodeticSurfacePoint(longitude, latitude)

	east := r3.Vec{X: -k.Y, Y: k.X, Z: 0}
	north := r3.Cross(k, east)

	return newMatrix4(r3.Unit(east), r3.Unit(north), n, r3.Add(surface, r3.Scale(height, k)))
}
