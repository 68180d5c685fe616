package geodesy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToRadians(t *testing.T) {
	assert.InDelta(t, math.Pi, ToRadians(180), 1e-15)
	assert.InDelta(t, math.Pi/2, ToRadians(90), 1e-15)
	assert.InDelta(t, 0, ToRadians(0), 0)
	assert.InDelta(t, -math.Pi/4, ToRadians(-45), 1e-15)
	assert.InDelta(t, 123.456, ToDegrees(ToRadians(123.456)), 1e-12)
}

func TestMeterConversionRoundTrip(t *testing.T) {
	meters := []float64{0, 0.15, 1, 500, 1000, 12345.678, -250, 1e6}
	latitudes := []float64{0, ToRadians(30), ToRadians(-45), ToRadians(60)}

	for _, m := range meters {
		assert.InDelta(t, m, RadiansToLatMeters(LatMetersToRadians(m)), 1e-9*math.Max(1, math.Abs(m)))
		for _, lat := range latitudes {
			assert.InDelta(t, m, RadiansToLonMeters(LonMetersToRadians(m, lat), lat), 1e-9*math.Max(1, math.Abs(m)))
			assert.InDelta(t, m, TrueLatitudeScale.RadiansToMeters(TrueLatitudeScale.MetersToRadians(m, lat), lat), 1e-9*math.Max(1, math.Abs(m)))
		}
	}
}

func TestFixedLatitudeScaleIgnoresLatitude(t *testing.T) {
	atEquator := LonMetersToRadians(1000, 0)
	atSixty := LonMetersToRadians(1000, ToRadians(60))
	assert.Equal(t, atEquator, atSixty)
	assert.InDelta(t, 1000/LonToMeter, atEquator, 1e-18)
}

func TestTrueLatitudeScale(t *testing.T) {
	equator := TrueLatitudeScale.MetersToRadians(1000, 0)
	sixty := TrueLatitudeScale.MetersToRadians(1000, ToRadians(60))
	// a parallel at 60° is half as long as the equator
	assert.InDelta(t, 2*equator, sixty, 1e-15)
	assert.InDelta(t, 1000/(WGS84.A*degToRad), equator, 1e-15)
}

func TestLongitudeScalesAgreeAtThirtyDegrees(t *testing.T) {
	lat := ToRadians(30)
	assert.InDelta(t, LonToMeter, TrueLatitudeScale.MeterScale(lat), 1e-6)
	assert.InDelta(t,
		FixedLatitudeScale.MetersToRadians(1000, lat),
		TrueLatitudeScale.MetersToRadians(1000, lat), 1e-15)
	assert.Equal(t, LonToMeter, FixedLatitudeScale.MeterScale(lat))
}

func TestParseLongitudeScale(t *testing.T) {
	tests := []struct {
		in     string
		expect LongitudeScale
		fail   bool
	}{
		{in: "", expect: FixedLatitudeScale},
		{in: "fixed", expect: FixedLatitudeScale},
		{in: " TRUE ", expect: TrueLatitudeScale},
		{in: "cosine", fail: true},
	}
	for _, tc := range tests {
		got, err := ParseLongitudeScale(tc.in)
		if tc.fail {
			require.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.expect, got, tc.in)
	}
}
