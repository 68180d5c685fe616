package io

import (
	"errors"
	"fmt"
	"sync"

	"github.com/ecopia-map/cesium_tileset/internal/manifest"
	"github.com/ecopia-map/cesium_tileset/internal/tileset"
	"github.com/golang/glog"
)

type StandardConsumer struct {
	writer *tileset.Writer
}

func NewStandardConsumer(writer *tileset.Writer) *StandardConsumer {
	return &StandardConsumer{
		writer: writer,
	}
}

// Continually consumes WorkUnits submitted to a work channel writing the corresponding tileset.json files.
// Continues working until the work channel is closed. Failed units are not retried, their errors are joined
// and submitted to the error channel once before quitting.
func (c *StandardConsumer) Consume(workchan chan *WorkUnit, errchan chan error, waitGroup *sync.WaitGroup) {
	// signal waitgroup finished work
	defer waitGroup.Done()

	var errs []error
	for work := range workchan {
		if err := c.doWork(work); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		errchan <- errors.Join(errs...)
	}
}

// Takes a workunit and writes the corresponding tileset.json file
func (c *StandardConsumer) doWork(workUnit *WorkUnit) error {
	var err error
	switch workUnit.Kind {
	case manifest.KindBox:
		err = c.writer.WriteBox(workUnit.Transform(), workUnit.Box, workUnit.GeometricError, workUnit.ContentURI, workUnit.OutputPath)
	case manifest.KindRegion:
		err = c.writer.WriteRegion(workUnit.Transform(), workUnit.Region, workUnit.GeometricError, workUnit.ContentURI, workUnit.OutputPath)
	case manifest.KindAnchored:
		err = c.writer.WriteAnchoredRegion(
			workUnit.Anchor.Longitude, workUnit.Anchor.Latitude,
			workUnit.Width, workUnit.Length,
			workUnit.Anchor.Height, workUnit.HeightMax,
			workUnit.GeometricError,
			workUnit.ContentURI,
			workUnit.OutputPath,
		)
	default:
		err = fmt.Errorf("%w: unknown kind %q", manifest.ErrInvalidTile, workUnit.Kind)
	}

	if err != nil {
		return err
	}
	glog.V(2).Infof("wrote %s", workUnit.OutputPath)
	return nil
}
