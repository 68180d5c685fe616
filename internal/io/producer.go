package io

import (
	"sync"

	"github.com/ecopia-map/cesium_tileset/internal/manifest"
)

type Producer interface {
	Produce(work chan *WorkUnit, errchan chan error, wg *sync.WaitGroup, m *manifest.Manifest)
}

type Consumer interface {
	Consume(workchan chan *WorkUnit, errchan chan error, waitGroup *sync.WaitGroup)
}
