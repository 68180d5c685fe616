package io

import (
	"github.com/ecopia-map/cesium_tileset/internal/geodesy"
	"github.com/ecopia-map/cesium_tileset/internal/manifest"
	"github.com/ecopia-map/cesium_tileset/internal/tileset"
)

// Contains the data needed to write a single tileset.json, already reprojected to WGS84 radians
type WorkUnit struct {
	Kind           manifest.Kind
	Anchor         *geodesy.Anchor // nil when no transform is written
	Frame          geodesy.TangentFrame
	Box            tileset.Box
	Region         tileset.Region
	Width          float64 // anchored only
	Length         float64 // anchored only
	HeightMax      float64 // anchored only, the anchor height is the minimum
	GeometricError float64
	ContentURI     string
	OutputPath     string
}

func (w *WorkUnit) Transform() *geodesy.Matrix4 {
	if w.Anchor == nil {
		return nil
	}
	m := w.Anchor.Transform(w.Frame)
	return &m
}
