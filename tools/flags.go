package tools

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/ecopia-map/cesium_tileset/internal/geodesy"
	"github.com/ecopia-map/cesium_tileset/internal/manifest"
	"github.com/ecopia-map/cesium_tileset/internal/tiler"
	"github.com/ecopia-map/cesium_tileset/internal/tileset"
	"github.com/golang/glog"
)

const (
	CommandTransform = "transform"
	CommandBox       = "box"
	CommandRegion    = "region"
	CommandAnchored  = "anchored"
	CommandBatch     = "batch"
	CommandVerify    = "verify"
)

var Commands = []string{CommandTransform, CommandBox, CommandRegion, CommandAnchored, CommandBatch, CommandVerify}

type FlagsGlobal struct {
	Help    *bool `json:"help"`
	Version *bool `json:"version"`
}

// Flags understood by every command that reads coordinates or writes descriptors
type CommonFlags struct {
	Srid           *int     `json:"srid"`
	Proj4          *string  `json:"proj4"`
	ZOffset        *float64 `json:"zoffset"`
	NumberFormat   *string  `json:"number_format"`
	Indent         *bool    `json:"indent"`
	LongitudeScale *string  `json:"longitude_scale"`
	TangentFrame   *string  `json:"tangent_frame"`
	Silent         *bool    `json:"silent"`
	Help           *bool    `json:"help"`
}

// Flags describing the single tile written by box, region and anchored
type TileFlags struct {
	Output         *string  `json:"output"`
	ContentURI     *string  `json:"content_uri"`
	GeometricError *float64 `json:"geometric_error"`
	X              *float64 `json:"x"`
	Y              *float64 `json:"y"`
	Z              *float64 `json:"z"`
	Transform      *bool    `json:"transform"`
}

type FlagsForCommandTransform struct {
	CommonFlags
	X *float64
	Y *float64
	Z *float64
}

type FlagsForCommandBox struct {
	CommonFlags
	TileFlags
	Box *string `json:"box"`
}

type FlagsForCommandRegion struct {
	CommonFlags
	TileFlags
	West      *float64
	South     *float64
	East      *float64
	North     *float64
	HeightMin *float64
	HeightMax *float64
}

type FlagsForCommandAnchored struct {
	CommonFlags
	TileFlags
	Width     *float64
	Length    *float64
	HeightMin *float64
	HeightMax *float64
}

type FlagsForCommandBatch struct {
	CommonFlags
	Input                     *string
	Output                    *string
	FolderProcessing          *bool
	RecursiveFolderProcessing *bool
}

type FlagsForCommandVerify struct {
	Input                     *string
	FolderProcessing          *bool
	RecursiveFolderProcessing *bool
	Silent                    *bool
	Help                      *bool
}

func ParseFlagsGlobal() FlagsGlobal {
	help := defineBoolFlag("help", "h", false, "Displays this help.")
	version := defineBoolFlag("version", "v", false, "Displays the version of cesium_tileset.")

	flag.Parse()

	return FlagsGlobal{
		Help:    help,
		Version: version,
	}
}

func defineCommonFlags(flagCommand *flag.FlagSet) CommonFlags {
	return CommonFlags{
		Srid:           defineIntFlagCommand(flagCommand, "srid", "e", 4326, "EPSG srid code of input coordinates."),
		Proj4:          defineStringFlagCommand(flagCommand, "proj4", "", "", "proj4 definition of input coordinates, overrides srid."),
		ZOffset:        defineFloat64FlagCommand(flagCommand, "zoffset", "z", 0, "Vertical offset to apply to anchor and region heights, in meters."),
		NumberFormat:   defineStringFlagCommand(flagCommand, "number-format", "", "SHORTEST", "Rendering of numbers, can be 'SHORTEST' or 'FIXED6'."),
		Indent:         defineBoolFlagCommand(flagCommand, "indent", "", true, "Writes tab indented json."),
		LongitudeScale: defineStringFlagCommand(flagCommand, "lon-scale", "", "FIXED", "Meters to longitude conversion, 'FIXED' uses the 30 degrees latitude scale, 'TRUE' the scale at the tile latitude."),
		TangentFrame:   defineStringFlagCommand(flagCommand, "frame", "", "NORMALIZED", "Tangent frame used for transforms, can be 'NORMALIZED' or 'LEGACY'."),
		Silent:         defineBoolFlagCommand(flagCommand, "silent", "s", false, "Use to suppress all the non-error messages."),
		Help:           defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help."),
	}
}

func defineTileFlags(flagCommand *flag.FlagSet) TileFlags {
	return TileFlags{
		Output:         defineStringFlagCommand(flagCommand, "output", "o", "tileset.json", "Path of the tileset.json to write."),
		ContentURI:     defineStringFlagCommand(flagCommand, "content", "c", "", "Content uri recorded in the descriptor."),
		GeometricError: defineFloat64FlagCommand(flagCommand, "geometric-error", "g", 0, "Geometric error of the tile in meters."),
		X:              defineFloat64FlagCommand(flagCommand, "x", "", 0, "Anchor x (longitude in degrees for EPSG:4326)."),
		Y:              defineFloat64FlagCommand(flagCommand, "y", "", 0, "Anchor y (latitude in degrees for EPSG:4326)."),
		Z:              defineFloat64FlagCommand(flagCommand, "height", "", 0, "Anchor height in meters."),
		Transform:      defineBoolFlagCommand(flagCommand, "transform", "t", false, "Writes the transform of the anchor into the descriptor."),
	}
}

func ParseFlagsForCommandTransform(args []string) FlagsForCommandTransform {
	glog.V(1).Infoln(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-transform", flag.ExitOnError)

	common := defineCommonFlags(flagCommand)
	x := defineFloat64FlagCommand(flagCommand, "x", "", 0, "Anchor x (longitude in degrees for EPSG:4326).")
	y := defineFloat64FlagCommand(flagCommand, "y", "", 0, "Anchor y (latitude in degrees for EPSG:4326).")
	z := defineFloat64FlagCommand(flagCommand, "height", "", 0, "Anchor height in meters.")

	flagCommand.Parse(args)

	return FlagsForCommandTransform{CommonFlags: common, X: x, Y: y, Z: z}
}

func ParseFlagsForCommandBox(args []string) FlagsForCommandBox {
	glog.V(1).Infoln(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-box", flag.ExitOnError)

	common := defineCommonFlags(flagCommand)
	tile := defineTileFlags(flagCommand)
	box := defineStringFlagCommand(flagCommand, "box", "b", "", "Comma separated center and three half axes, 12 numbers in meters.")

	flagCommand.Parse(args)

	return FlagsForCommandBox{CommonFlags: common, TileFlags: tile, Box: box}
}

func ParseFlagsForCommandRegion(args []string) FlagsForCommandRegion {
	glog.V(1).Infoln(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-region", flag.ExitOnError)

	common := defineCommonFlags(flagCommand)
	tile := defineTileFlags(flagCommand)
	west := defineFloat64FlagCommand(flagCommand, "west", "", 0, "Western bound in source coordinates.")
	south := defineFloat64FlagCommand(flagCommand, "south", "", 0, "Southern bound in source coordinates.")
	east := defineFloat64FlagCommand(flagCommand, "east", "", 0, "Eastern bound in source coordinates.")
	north := defineFloat64FlagCommand(flagCommand, "north", "", 0, "Northern bound in source coordinates.")
	heightMin := defineFloat64FlagCommand(flagCommand, "height-min", "", 0, "Minimum height in meters.")
	heightMax := defineFloat64FlagCommand(flagCommand, "height-max", "", 0, "Maximum height in meters.")

	flagCommand.Parse(args)

	return FlagsForCommandRegion{
		CommonFlags: common,
		TileFlags:   tile,
		West:        west,
		South:       south,
		East:        east,
		North:       north,
		HeightMin:   heightMin,
		HeightMax:   heightMax,
	}
}

func ParseFlagsForCommandAnchored(args []string) FlagsForCommandAnchored {
	glog.V(1).Infoln(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-anchored", flag.ExitOnError)

	common := defineCommonFlags(flagCommand)
	tile := defineTileFlags(flagCommand)
	width := defineFloat64FlagCommand(flagCommand, "width", "w", 0, "East-west size of the tile in meters.")
	length := defineFloat64FlagCommand(flagCommand, "length", "l", 0, "North-south size of the tile in meters.")
	heightMin := defineFloat64FlagCommand(flagCommand, "height-min", "", 0, "Height of the transform origin in meters.")
	heightMax := defineFloat64FlagCommand(flagCommand, "height-max", "", 0, "Maximum height of the region in meters.")

	flagCommand.Parse(args)

	return FlagsForCommandAnchored{
		CommonFlags: common,
		TileFlags:   tile,
		Width:       width,
		Length:      length,
		HeightMin:   heightMin,
		HeightMax:   heightMax,
	}
}

func ParseFlagsForCommandBatch(args []string) FlagsForCommandBatch {
	glog.V(1).Infoln(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-batch", flag.ExitOnError)

	common := defineCommonFlags(flagCommand)
	input := defineStringFlagCommand(flagCommand, "input", "i", "", "Specifies the input manifest file/folder.")
	output := defineStringFlagCommand(flagCommand, "output", "o", "", "Overrides the output folder of the manifests.")
	folderProcessing := defineBoolFlagCommand(flagCommand, "folder", "f", false, "Enables processing of all manifests from input folder. Input must be a folder if specified")
	recursiveFolderProcessing := defineBoolFlagCommand(flagCommand, "recursive", "r", false, "Enables recursive lookup for all manifests inside the subfolders")

	flagCommand.Parse(args)

	return FlagsForCommandBatch{
		CommonFlags:               common,
		Input:                     input,
		Output:                    output,
		FolderProcessing:          folderProcessing,
		RecursiveFolderProcessing: recursiveFolderProcessing,
	}
}

func ParseFlagsForCommandVerify(args []string) FlagsForCommandVerify {
	glog.V(1).Infoln(FmtJSONString(args))

	flagCommand := flag.NewFlagSet("command-verify", flag.ExitOnError)

	input := defineStringFlagCommand(flagCommand, "input", "i", "", "Specifies the tileset.json file/folder to verify.")
	folderProcessing := defineBoolFlagCommand(flagCommand, "folder", "f", false, "Verifies every tileset.json of the input folder.")
	recursiveFolderProcessing := defineBoolFlagCommand(flagCommand, "recursive", "r", false, "Enables recursive lookup for tileset.json inside the subfolders")
	silent := defineBoolFlagCommand(flagCommand, "silent", "s", false, "Use to suppress all the non-error messages.")
	help := defineBoolFlagCommand(flagCommand, "help", "h", false, "Displays this help.")

	flagCommand.Parse(args)

	return FlagsForCommandVerify{
		Input:                     input,
		FolderProcessing:          folderProcessing,
		RecursiveFolderProcessing: recursiveFolderProcessing,
		Silent:                    silent,
		Help:                      help,
	}
}

// TilerOptions converts the common flags, validating the enumerated values.
func (f CommonFlags) TilerOptions(command string) (*tiler.TilerOptions, error) {
	numberFormat, err := tileset.ParseNumberFormat(*f.NumberFormat)
	if err != nil {
		return nil, err
	}
	longitudeScale, err := geodesy.ParseLongitudeScale(*f.LongitudeScale)
	if err != nil {
		return nil, err
	}
	tangentFrame, err := geodesy.ParseTangentFrame(*f.TangentFrame)
	if err != nil {
		return nil, err
	}

	return &tiler.TilerOptions{
		Srid:           *f.Srid,
		Proj4:          *f.Proj4,
		ZOffset:        *f.ZOffset,
		NumberFormat:   numberFormat,
		Indent:         *f.Indent,
		LongitudeScale: longitudeScale,
		TangentFrame:   tangentFrame,
		Command:        command,
	}, nil
}

func (f TileFlags) tile(kind manifest.Kind) *manifest.Tile {
	tile := &manifest.Tile{
		Kind:           kind,
		Output:         *f.Output,
		ContentURI:     *f.ContentURI,
		GeometricError: *f.GeometricError,
	}
	if *f.Transform || kind == manifest.KindAnchored {
		tile.Anchor = &manifest.Position{X: *f.X, Y: *f.Y, Z: *f.Z}
	}
	return tile
}

func (f FlagsForCommandTransform) TilerOptions() (*tiler.TilerOptions, error) {
	opts, err := f.CommonFlags.TilerOptions(CommandTransform)
	if err != nil {
		return nil, err
	}
	opts.Tile = &manifest.Tile{Anchor: &manifest.Position{X: *f.X, Y: *f.Y, Z: *f.Z}}
	return opts, nil
}

func (f FlagsForCommandBox) TilerOptions() (*tiler.TilerOptions, error) {
	opts, err := f.CommonFlags.TilerOptions(CommandBox)
	if err != nil {
		return nil, err
	}
	box, err := ParseFloatList(*f.Box)
	if err != nil {
		return nil, fmt.Errorf("box: %w", err)
	}
	opts.Tile = f.tile(manifest.KindBox)
	opts.Tile.Box = box
	opts.Output = opts.Tile.Output
	return opts, opts.Tile.Validate()
}

func (f FlagsForCommandRegion) TilerOptions() (*tiler.TilerOptions, error) {
	opts, err := f.CommonFlags.TilerOptions(CommandRegion)
	if err != nil {
		return nil, err
	}
	opts.Tile = f.tile(manifest.KindRegion)
	opts.Tile.Region = &manifest.Bounds{
		West:      *f.West,
		South:     *f.South,
		East:      *f.East,
		North:     *f.North,
		MinHeight: *f.HeightMin,
		MaxHeight: *f.HeightMax,
	}
	opts.Output = opts.Tile.Output
	return opts, opts.Tile.Validate()
}

func (f FlagsForCommandAnchored) TilerOptions() (*tiler.TilerOptions, error) {
	opts, err := f.CommonFlags.TilerOptions(CommandAnchored)
	if err != nil {
		return nil, err
	}
	opts.Tile = f.tile(manifest.KindAnchored)
	opts.Tile.Width = *f.Width
	opts.Tile.Length = *f.Length
	opts.Tile.HeightMin = *f.HeightMin
	opts.Tile.HeightMax = *f.HeightMax
	opts.Output = opts.Tile.Output
	return opts, opts.Tile.Validate()
}

func (f FlagsForCommandBatch) TilerOptions() (*tiler.TilerOptions, error) {
	opts, err := f.CommonFlags.TilerOptions(CommandBatch)
	if err != nil {
		return nil, err
	}
	opts.Input = *f.Input
	opts.Output = *f.Output
	opts.FolderProcessing = *f.FolderProcessing
	opts.Recursive = *f.RecursiveFolderProcessing
	return opts, nil
}

func (f FlagsForCommandVerify) TilerOptions() *tiler.TilerOptions {
	return &tiler.TilerOptions{
		Input:            *f.Input,
		FolderProcessing: *f.FolderProcessing,
		Recursive:        *f.RecursiveFolderProcessing,
		Command:          CommandVerify,
	}
}

// ParseFloatList parses comma or space separated numbers.
func ParseFloatList(value string) ([]float64, error) {
	fields := strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == ' ' })
	values := make([]float64, 0, len(fields))
	for _, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

func defineBoolFlag(name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flag.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flag.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineStringFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue string, usage string) *string {
	var output string
	flagCommand.StringVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.StringVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineIntFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue int, usage string) *int {
	var output int
	flagCommand.IntVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.IntVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}

	return &output
}

func defineFloat64FlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue float64, usage string) *float64 {
	var output float64
	flagCommand.Float64Var(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.Float64Var(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}

func defineBoolFlagCommand(flagCommand *flag.FlagSet, name string, shortHand string, defaultValue bool, usage string) *bool {
	var output bool
	flagCommand.BoolVar(&output, name, defaultValue, usage)
	if shortHand != name && shortHand != "" {
		flagCommand.BoolVar(&output, shortHand, defaultValue, usage+" (shorthand for "+name+")")
	}
	return &output
}
