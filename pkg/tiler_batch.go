package pkg

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"

	"github.com/ecopia-map/cesium_tileset/internal/io"
	"github.com/ecopia-map/cesium_tileset/internal/manifest"
	"github.com/ecopia-map/cesium_tileset/internal/tiler"
	"github.com/ecopia-map/cesium_tileset/pkg/algorithm_manager"
	"github.com/ecopia-map/cesium_tileset/tools"
	"github.com/golang/glog"
)

var ErrExecution = errors.New("errors raised during execution")

// TilerBatch writes the tiles of one or more manifests. Single tile commands
// run through the same pipeline with a one tile manifest.
type TilerBatch struct {
	fileFinder       tools.FileFinder
	algorithmManager algorithm_manager.AlgorithmManager
	numConsumers     int
}

func NewTilerBatch(fileFinder tools.FileFinder, algorithmManager algorithm_manager.AlgorithmManager) tiler.ITiler {
	return &TilerBatch{
		fileFinder:       fileFinder,
		algorithmManager: algorithmManager,
		// a consumer goroutine per CPU
		numConsumers: runtime.NumCPU(),
	}
}

// Starts the writing process
func (tilerBatch *TilerBatch) RunTiler(opts *tiler.TilerOptions) error {
	defer tilerBatch.algorithmManager.GetCoordinateConverterAlgorithm().Cleanup()

	if opts.Tile != nil {
		m := &manifest.Manifest{Tiles: []manifest.Tile{*opts.Tile}}
		return tilerBatch.exportManifest(opts, m)
	}

	glog.Infoln("Preparing list of manifests to process...")

	manifestFiles, err := tilerBatch.fileFinder.GetManifestsToProcess(opts)
	if err != nil {
		return err
	}
	for i, filePath := range manifestFiles {
		glog.Infof("manifest path %d [%s]", i+1, filePath)
	}

	var errs []error
	for i, filePath := range manifestFiles {
		tools.LogOutput("Processing manifest " + strconv.Itoa(i+1) + "/" + strconv.Itoa(len(manifestFiles)))

		m, err := manifest.Load(filePath)
		if err != nil {
			glog.Errorln(err)
			errs = append(errs, err)
			continue
		}
		if opts.Output != "" {
			m.Output = opts.Output
		}

		if err := tilerBatch.exportManifest(opts, m); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", filePath, err))
			continue
		}
		tools.LogOutput("> done processing", filePath)
	}

	return errors.Join(errs...)
}

// Writes every tile of the manifest with a producer goroutine and a pool of consumers
func (tilerBatch *TilerBatch) exportManifest(opts *tiler.TilerOptions, m *manifest.Manifest) error {
	tools.LogOutput("> exporting", len(m.Tiles), "tiles...")

	numConsumers := tilerBatch.numConsumers

	// init channel where to submit work with a buffer 5 times greater than the number of consumer
	workChannel := make(chan *io.WorkUnit, numConsumers*5)

	// init channel where producer and consumers submit at most one error each
	errorChannel := make(chan error, numConsumers+1)

	var waitGroup sync.WaitGroup

	// add producer to waitgroup and launch producer goroutine
	waitGroup.Add(1)

	producer := io.NewStandardProducer(
		opts,
		tilerBatch.algorithmManager.GetCoordinateConverterAlgorithm(),
		tilerBatch.algorithmManager.GetElevationCorrectionAlgorithm(),
	)
	go producer.Produce(workChannel, errorChannel, &waitGroup, m)

	// add consumers to waitgroup and launch them
	for i := 0; i < numConsumers; i++ {
		waitGroup.Add(1)
		consumer := io.NewStandardConsumer(tilerBatch.algorithmManager.GetTilesetWriter())
		go consumer.Consume(workChannel, errorChannel, &waitGroup)
	}

	// wait for producers and consumers to finish
	waitGroup.Wait()

	// close error chan
	close(errorChannel)

	// find if there are errors in the error channel buffer
	var errs []error
	for err := range errorChannel {
		glog.Errorln(err)
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrExecution, errors.Join(errs...))
	}

	return nil
}
