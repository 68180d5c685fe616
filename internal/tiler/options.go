package tiler

import (
	"github.com/ecopia-map/cesium_tileset/internal/geodesy"
	"github.com/ecopia-map/cesium_tileset/internal/manifest"
	"github.com/ecopia-map/cesium_tileset/internal/tileset"
)

type ITiler interface {
	RunTiler(opts *TilerOptions) error
}

// Contains the options shared by every subcommand
type TilerOptions struct {
	Input            string  // Manifest file/folder for batch, tileset.json file/folder for verify
	Output           string  // Output tileset.json for single tile commands, base folder override for batch
	Srid             int     // EPSG code of the input coordinates
	Proj4            string  // proj4 definition of the input coordinates, takes precedence over Srid
	ZOffset          float64 // Z Offset in meters applied to anchor and region heights
	FolderProcessing bool    // Enables the processing of all manifests in folder
	Recursive        bool    // Recursive lookup of manifests in subfolders

	NumberFormat   tileset.NumberFormat
	Indent         bool
	LongitudeScale geodesy.LongitudeScale
	TangentFrame   geodesy.TangentFrame // default frame for anchors that do not set one

	Command string

	// Single tile commands carry the tile built from the command line flags
	Tile *manifest.Tile
}

func (opt *TilerOptions) Copy() *TilerOptions {
	newOpt := *opt
	if opt.Tile != nil {
		tile := *opt.Tile
		tile.Box = append([]float64(nil), opt.Tile.Box...)
		if opt.Tile.Anchor != nil {
			anchor := *opt.Tile.Anchor
			tile.Anchor = &anchor
		}
		if opt.Tile.Region != nil {
			region := *opt.Tile.Region
			tile.Region = &region
		}
		newOpt.Tile = &tile
	}
	return &newOpt
}
