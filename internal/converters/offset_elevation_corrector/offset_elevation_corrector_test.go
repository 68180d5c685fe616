package offset_elevation_corrector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCorrectElevation(t *testing.T) {
	tests := []struct {
		offset, z, expect float64
	}{
		{offset: 0, z: 12.5, expect: 12.5},
		{offset: 30, z: 12.5, expect: 42.5},
		{offset: -100, z: 20, expect: -80},
	}
	for _, tc := range tests {
		c := NewOffsetElevationCorrector(tc.offset)
		require.Equal(t, tc.expect, c.CorrectElevation(121.4, 31.2, tc.z))
	}
}
