package manifest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Kind string

const (
	KindBox      Kind = "box"
	KindRegion   Kind = "region"
	KindAnchored Kind = "anchored"
)

func ParseKind(value string) (Kind, error) {
	switch k := Kind(strings.Trim(strings.ToLower(value), " ")); k {
	case KindBox, KindRegion, KindAnchored:
		return k, nil
	}
	return "", fmt.Errorf("unknown tile kind %q, expected box, region or anchored", value)
}

var ErrInvalidTile = errors.New("invalid tile")

// Position is expressed in the source CRS of the run. For EPSG:4326 x and y
// are longitude and latitude in degrees. z is a height in meters.
type Position struct {
	X float64 `mapstructure:"x"`
	Y float64 `mapstructure:"y"`
	Z float64 `mapstructure:"z"`
}

// Bounds is a footprint in the source CRS plus a height range in meters.
type Bounds struct {
	West      float64 `mapstructure:"west"`
	South     float64 `mapstructure:"south"`
	East      float64 `mapstructure:"east"`
	North     float64 `mapstructure:"north"`
	MinHeight float64 `mapstructure:"min_height"`
	MaxHeight float64 `mapstructure:"max_height"`
}

// Tile describes one tileset.json to write.
//
// box: Box holds the 12 numbers of the oriented box. With Anchor set the box
// is expressed in the local frame of the anchor and a transform is written.
//
// region: Region holds the footprint. With Anchor set a transform is written.
//
// anchored: Anchor, Width, Length, HeightMin and HeightMax describe a footprint
// of Width x Length meters centered on the anchor. Anchor.Z is ignored.
type Tile struct {
	Kind           Kind      `mapstructure:"kind"`
	Output         string    `mapstructure:"output"`
	ContentURI     string    `mapstructure:"content_uri"`
	GeometricError float64   `mapstructure:"geometric_error"`
	TangentFrame   string    `mapstructure:"tangent_frame"`
	Anchor         *Position `mapstructure:"anchor"`
	Box            []float64 `mapstructure:"box"`
	Region         *Bounds   `mapstructure:"region"`
	Width          float64   `mapstructure:"width"`
	Length         float64   `mapstructure:"length"`
	HeightMin      float64   `mapstructure:"height_min"`
	HeightMax      float64   `mapstructure:"height_max"`
}

func (t Tile) Validate() error {
	if t.Output == "" {
		return fmt.Errorf("%w: output path is empty", ErrInvalidTile)
	}
	if t.GeometricError < 0 {
		return fmt.Errorf("%w %s: negative geometric error %v", ErrInvalidTile, t.Output, t.GeometricError)
	}

	switch t.Kind {
	case KindBox:
		if len(t.Box) != 12 {
			return fmt.Errorf("%w %s: box needs 12 numbers, got %d", ErrInvalidTile, t.Output, len(t.Box))
		}
	case KindRegion:
		if t.Region == nil {
			return fmt.Errorf("%w %s: region is missing", ErrInvalidTile, t.Output)
		}
		if t.Region.West > t.Region.East || t.Region.South > t.Region.North {
			return fmt.Errorf("%w %s: region corners are swapped", ErrInvalidTile, t.Output)
		}
	case KindAnchored:
		if t.Anchor == nil {
			return fmt.Errorf("%w %s: anchored tile needs an anchor", ErrInvalidTile, t.Output)
		}
		if t.Width <= 0 || t.Length <= 0 {
			return fmt.Errorf("%w %s: width and length must be positive", ErrInvalidTile, t.Output)
		}
	default:
		return fmt.Errorf("%w %s: unknown kind %q", ErrInvalidTile, t.Output, t.Kind)
	}
	return nil
}

// Manifest lists the tiles of a batch run. Tile outputs are relative to
// Output unless absolute.
type Manifest struct {
	Output string `mapstructure:"output"`
	Tiles  []Tile `mapstructure:"tiles"`
}

// OutputPath resolves the destination of a tile.
func (m *Manifest) OutputPath(t Tile) string {
	if m.Output == "" || filepath.IsAbs(t.Output) {
		return t.Output
	}
	return filepath.Join(m.Output, t.Output)
}

// Load reads a manifest file. The format follows the file extension
// (yaml, yml, json or toml).
func Load(path string) (*Manifest, error) {
	v := viper.New()
	v.SetDefault("output", filepath.Dir(path))
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading manifest %s: %w", path, err)
	}

	m := &Manifest{}
	if err := v.Unmarshal(m); err != nil {
		return nil, fmt.Errorf("error decoding manifest %s: %w", path, err)
	}

	for i := range m.Tiles {
		kind, err := ParseKind(string(m.Tiles[i].Kind))
		if err != nil {
			return nil, fmt.Errorf("%s tile %d: %w", path, i, err)
		}
		m.Tiles[i].Kind = kind
		if err := m.Tiles[i].Validate(); err != nil {
			return nil, fmt.Errorf("%s tile %d: %w", path, i, err)
		}
	}

	return m, nil
}
