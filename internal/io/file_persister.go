package io

import (
	"os"
	"path/filepath"

	"github.com/ecopia-map/cesium_tileset/tools"
)

// FilePersister writes descriptors to the local file system, creating parent
// folders on demand. Concurrent writes to distinct paths are safe.
type FilePersister struct{}

func NewFilePersister() *FilePersister {
	return &FilePersister{}
}

func (p *FilePersister) Persist(path string, data []byte) error {
	// Create base folder if it does not exist
	if err := tools.CreateDirectoryIfDoesNotExist(filepath.Dir(path)); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0666)
}
