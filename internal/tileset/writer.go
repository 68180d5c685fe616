package tileset

import (
	"errors"
	"fmt"

	"github.com/ecopia-map/cesium_tileset/internal/geodesy"
	"github.com/golang/glog"
)

// Persister stores the bytes of a descriptor at path. Implementations must be
// safe for concurrent writes to distinct paths.
type Persister interface {
	Persist(path string, data []byte) error
}

// PersistFunc adapts a boolean write capability to a Persister, reporting
// false as ErrWriteFailed.
type PersistFunc func(path string, data []byte) bool

func (f PersistFunc) Persist(path string, data []byte) error {
	if !f(path, data) {
		return ErrWriteFailed
	}
	return nil
}

// Writer assembles descriptors and hands them to a Persister. It holds no
// mutable state and can be shared between goroutines.
type Writer struct {
	persister      Persister
	numberFormat   NumberFormat
	indent         bool
	longitudeScale geodesy.LongitudeScale
}

func NewWriter(persister Persister, numberFormat NumberFormat, indent bool, longitudeScale geodesy.LongitudeScale) *Writer {
	return &Writer{
		persister:      persister,
		numberFormat:   numberFormat,
		indent:         indent,
		longitudeScale: longitudeScale,
	}
}

func (w *Writer) Encode(d Descriptor) ([]byte, error) {
	return Encode(d, w.numberFormat, w.indent)
}

// Write encodes the descriptor and persists it once. Failures are not retried.
func (w *Writer) Write(d Descriptor, outputPath string) error {
	if d.Transform != nil && !d.Transform.IsFinite() {
		return fmt.Errorf("%s transform: %w", outputPath, ErrDegenerateGeometry)
	}

	data, err := w.Encode(d)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", outputPath, err)
	}

	if err := w.persister.Persist(outputPath, data); err != nil {
		glog.Errorf("write file %s fail: %v", outputPath, err)
		if errors.Is(err, ErrWriteFailed) {
			return fmt.Errorf("%s: %w", outputPath, err)
		}
		return fmt.Errorf("%w %s: %w", ErrWriteFailed, outputPath, err)
	}
	return nil
}

// WriteBox writes a descriptor bounded by an oriented box. transform may be nil.
func (w *Writer) WriteBox(transform *geodesy.Matrix4, box Box, geometricError float64, contentURI string, outputPath string) error {
	return w.Write(Descriptor{
		GeometricError: geometricError,
		Transform:      transform,
		BoundingVolume: box,
		ContentURI:     contentURI,
	}, outputPath)
}

// WriteRegion writes a descriptor bounded by a geodetic region. transform may be nil.
func (w *Writer) WriteRegion(transform *geodesy.Matrix4, region Region, geometricError float64, contentURI string, outputPath string) error {
	return w.Write(Descriptor{
		GeometricError: geometricError,
		Transform:      transform,
		BoundingVolume: region,
		ContentURI:     contentURI,
	}, outputPath)
}

// WriteAnchoredRegion derives both the transform and the region from an
// anchor in radians. The transform uses the legacy scaled frame offset by
// heightMin; the region spans tileWidth x tileHeight meters around the anchor
// from 0 up to heightMax.
func (w *Writer) WriteAnchoredRegion(
	longitude, latitude float64,
	tileWidth, tileHeight float64,
	heightMin, heightMax float64,
	geometricError float64,
	contentURI string,
	outputPath string,
) error {
	transform := geodesy.LegacyScaledTangentFrame.Build(longitude, latitude, heightMin)
	region := RegionAround(longitude, latitude, tileWidth, tileHeight, 0, heightMax, w.longitudeScale)

	return w.WriteRegion(&transform, region, geometricError, contentURI, outputPath)
}
