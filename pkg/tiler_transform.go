package pkg

import (
	"errors"
	"fmt"
	stdio "io"
	"os"

	"github.com/ecopia-map/cesium_tileset/internal/io"
	"github.com/ecopia-map/cesium_tileset/internal/tiler"
	"github.com/ecopia-map/cesium_tileset/internal/tileset"
	"github.com/ecopia-map/cesium_tileset/pkg/algorithm_manager"
)

// TilerTransform prints the ENU to ECEF matrix of an anchor as a 16 number
// column-major json array.
type TilerTransform struct {
	algorithmManager algorithm_manager.AlgorithmManager
	out              stdio.Writer
}

func NewTilerTransform(algorithmManager algorithm_manager.AlgorithmManager) tiler.ITiler {
	return NewTilerTransformTo(algorithmManager, os.Stdout)
}

func NewTilerTransformTo(algorithmManager algorithm_manager.AlgorithmManager, out stdio.Writer) tiler.ITiler {
	return &TilerTransform{
		algorithmManager: algorithmManager,
		out:              out,
	}
}

func (tilerTransform *TilerTransform) RunTiler(opts *tiler.TilerOptions) error {
	defer tilerTransform.algorithmManager.GetCoordinateConverterAlgorithm().Cleanup()

	if opts.Tile == nil || opts.Tile.Anchor == nil {
		return errors.New("transform needs an anchor")
	}

	producer := io.NewStandardProducer(
		opts,
		tilerTransform.algorithmManager.GetCoordinateConverterAlgorithm(),
		tilerTransform.algorithmManager.GetElevationCorrectionAlgorithm(),
	)
	anchor, err := producer.ResolveAnchor(*opts.Tile.Anchor)
	if err != nil {
		return err
	}

	data, err := tileset.Marshal(tileset.TransformArray(anchor.Transform(opts.TangentFrame)), opts.NumberFormat, false)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(tilerTransform.out, string(data))
	return err
}
