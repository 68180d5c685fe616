package io

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ecopia-map/cesium_tileset/internal/converters"
	"github.com/ecopia-map/cesium_tileset/internal/geodesy"
	"github.com/ecopia-map/cesium_tileset/internal/manifest"
	"github.com/ecopia-map/cesium_tileset/internal/tiler"
	"github.com/ecopia-map/cesium_tileset/internal/tileset"
	"github.com/golang/glog"
	"github.com/paulmach/orb"
)

type StandardProducer struct {
	options             *tiler.TilerOptions
	coordinateConverter converters.CoordinateConverter
	elevationCorrector  converters.ElevationCorrector
}

func NewStandardProducer(options *tiler.TilerOptions, coordinateConverter converters.CoordinateConverter, elevationCorrector converters.ElevationCorrector) *StandardProducer {
	return &StandardProducer{
		options:             options,
		coordinateConverter: coordinateConverter,
		elevationCorrector:  elevationCorrector,
	}
}

// Resolves the tiles of the manifest and submits WorkUnits to the provided work channel. Tiles that cannot be
// reprojected are skipped, their errors are joined and submitted to the error channel once.
// Closes the work channel when all work is submitted.
func (p *StandardProducer) Produce(work chan *WorkUnit, errchan chan error, wg *sync.WaitGroup, m *manifest.Manifest) {
	defer wg.Done()
	defer close(work)

	var errs []error
	for i, tile := range m.Tiles {
		unit, err := p.Resolve(m, tile)
		if err != nil {
			glog.Errorf("tile %d (%s) skipped: %v", i, tile.Output, err)
			errs = append(errs, fmt.Errorf("tile %d: %w", i, err))
			continue
		}
		work <- unit
	}

	if len(errs) > 0 {
		errchan <- errors.Join(errs...)
	}
}

// Resolve reprojects the tile coordinates and applies the elevation correction.
func (p *StandardProducer) Resolve(m *manifest.Manifest, tile manifest.Tile) (*WorkUnit, error) {
	unit := &WorkUnit{
		Kind:           tile.Kind,
		Frame:          p.options.TangentFrame,
		GeometricError: tile.GeometricError,
		ContentURI:     tile.ContentURI,
		OutputPath:     m.OutputPath(tile),
	}

	if tile.TangentFrame != "" {
		frame, err := geodesy.ParseTangentFrame(tile.TangentFrame)
		if err != nil {
			return nil, err
		}
		unit.Frame = frame
	}

	if tile.Anchor != nil {
		anchor, err := p.ResolveAnchor(*tile.Anchor)
		if err != nil {
			return nil, err
		}
		unit.Anchor = &anchor
	}

	switch tile.Kind {
	case manifest.KindBox:
		if len(tile.Box) != len(unit.Box) {
			return nil, fmt.Errorf("%w: box needs %d numbers", manifest.ErrInvalidTile, len(unit.Box))
		}
		copy(unit.Box[:], tile.Box)
	case manifest.KindRegion:
		if tile.Region == nil {
			return nil, fmt.Errorf("%w: region is missing", manifest.ErrInvalidTile)
		}
		region, err := p.toRegion(*tile.Region)
		if err != nil {
			return nil, err
		}
		if unit.Anchor != nil && !region.Contains(unit.Anchor.Longitude, unit.Anchor.Latitude) {
			glog.Warningf("tile %s: anchor %v lies outside region %v", tile.Output, unit.Anchor.Point(), region.Bound())
		}
		unit.Region = region
	case manifest.KindAnchored:
		if unit.Anchor == nil {
			return nil, fmt.Errorf("%w: anchored tile needs an anchor", manifest.ErrInvalidTile)
		}
		lon, lat := unit.Anchor.Point().Lon(), unit.Anchor.Point().Lat()
		unit.Anchor.Height = p.elevationCorrector.CorrectElevation(lon, lat, tile.HeightMin)
		unit.HeightMax = p.elevationCorrector.CorrectElevation(lon, lat, tile.HeightMax)
		unit.Width = tile.Width
		unit.Length = tile.Length
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", manifest.ErrInvalidTile, tile.Kind)
	}

	return unit, nil
}

// ResolveAnchor reprojects a position and applies the elevation correction.
func (p *StandardProducer) ResolveAnchor(pos manifest.Position) (geodesy.Anchor, error) {
	lon, lat, z, err := p.coordinateConverter.ToWGS84(pos.X, pos.Y, pos.Z)
	if err != nil {
		return geodesy.Anchor{}, err
	}
	z = p.elevationCorrector.CorrectElevation(lon, lat, z)
	return geodesy.AnchorFromPoint(orb.Point{lon, lat}, z), nil
}

// the footprint may be in a projected CRS, its four corners are reprojected and bounded
func (p *StandardProducer) toRegion(b manifest.Bounds) (tileset.Region, error) {
	corners := orb.MultiPoint{}
	for _, c := range [][2]float64{{b.West, b.South}, {b.East, b.South}, {b.East, b.North}, {b.West, b.North}} {
		lon, lat, _, err := p.coordinateConverter.ToWGS84(c[0], c[1], 0)
		if err != nil {
			return tileset.Region{}, err
		}
		corners = append(corners, orb.Point{lon, lat})
	}

	bound := corners.Bound()
	center := bound.Center()
	minHeight := p.elevationCorrector.CorrectElevation(center.Lon(), center.Lat(), b.MinHeight)
	maxHeight := p.elevationCorrector.CorrectElevation(center.Lon(), center.Lat(), b.MaxHeight)

	return tileset.RegionFromBound(bound, minHeight, maxHeight), nil
}
