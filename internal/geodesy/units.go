package geodesy

import (
	"fmt"
	"math"
	"strings"
)

const degToRad = math.Pi / 180.0

// LatToMeter is the meridian radius of curvature at the equator, a(1-e²), in
// meters per radian of latitude.
const LatToMeter = 6335439.327292462539571136329447903

// LonToMeter is the longitudinal meter scale evaluated once at 30° of latitude.
// It is used for every latitude, so it is only accurate near that parallel.
var LonToMeter = WGS84.A * degToRad * math.Cos(30.0*degToRad)

// ToRadians converts degrees to radians
func ToRadians(degrees float64) float64 {
	return degrees * degToRad
}

// ToDegrees converts radians to degrees
func ToDegrees(radians float64) float64 {
	return radians / degToRad
}

func LatMetersToRadians(meters float64) float64 {
	return meters / LatToMeter
}

func RadiansToLatMeters(radians float64) float64 {
	return radians * LatToMeter
}

// LonMetersToRadians converts an east-west distance to an angle of longitude
// using the fixed 30° scale. latitude is accepted for signature compatibility
// and ignored, see TrueLatitudeScale for the latitude-aware conversion.
func LonMetersToRadians(meters float64, latitude float64) float64 {
	return FixedLatitudeScale.MetersToRadians(meters, latitude)
}

func RadiansToLonMeters(radians float64, latitude float64) float64 {
	return FixedLatitudeScale.RadiansToMeters(radians, latitude)
}

// LongitudeScale selects how meters along a parallel map to longitude.
type LongitudeScale int

const (
	// Legacy behaviour: LonToMeter for every latitude.
	FixedLatitudeScale LongitudeScale = iota

	// LonToMeter evaluated at the tile latitude, A·(π/180)·cos(latitude).
	// Switching to this scale changes the numeric output of anchored regions
	// away from 30°.
	TrueLatitudeScale
)

func (s LongitudeScale) String() string {
	switch s {
	case FixedLatitudeScale:
		return "FIXED"
	case TrueLatitudeScale:
		return "TRUE"
	}
	return ""
}

func ParseLongitudeScale(value string) (LongitudeScale, error) {
	switch strings.Trim(strings.ToUpper(value), " ") {
	case "", "FIXED":
		return FixedLatitudeScale, nil
	case "TRUE":
		return TrueLatitudeScale, nil
	}
	return FixedLatitudeScale, fmt.Errorf("unknown longitude scale %q, expected FIXED or TRUE", value)
}

// MeterScale returns the divisor that turns meters along a parallel into a
// longitude span. Both scales keep the π/180 factor of LonToMeter, TRUE only
// replaces cos 30° with the cosine of the given latitude, so the two agree at
// 30°.
func (s LongitudeScale) MeterScale(latitude float64) float64 {
	if s == TrueLatitudeScale {
		return WGS84.A * degToRad * math.Cos(latitude)
	}
	return LonToMeter
}

func (s LongitudeScale) MetersToRadians(meters float64, latitude float64) float64 {
	return meters / s.MeterScale(latitude)
}

func (s LongitudeScale) RadiansToMeters(radians float64, latitude float64) float64 {
	return radians * s.MeterScale(latitude)
}
