package tools

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ecopia-map/cesium_tileset/internal/tiler"
)

const TilesetFileName = "tileset.json"

var manifestExtensions = map[string]bool{
	".yaml": true,
	".yml":  true,
	".json": true,
	".toml": true,
}

type FileFinder interface {
	GetManifestsToProcess(opts *tiler.TilerOptions) ([]string, error)
	GetTilesetsToVerify(opts *tiler.TilerOptions) ([]string, error)
}

type StandardFileFinder struct{}

func NewStandardFileFinder() FileFinder {
	return &StandardFileFinder{}
}

func (f *StandardFileFinder) GetManifestsToProcess(opts *tiler.TilerOptions) ([]string, error) {
	// If folder processing is not enabled then the manifest is given by -input flag, otherwise look for manifests
	// in -input folder eventually excluding nested folders if Recursive flag is disabled
	if !opts.FolderProcessing {
		return []string{opts.Input}, nil
	}

	return f.walkInputFolder(opts, func(name string) bool {
		return manifestExtensions[strings.ToLower(filepath.Ext(name))]
	})
}

func (f *StandardFileFinder) GetTilesetsToVerify(opts *tiler.TilerOptions) ([]string, error) {
	if !opts.FolderProcessing {
		return []string{opts.Input}, nil
	}

	return f.walkInputFolder(opts, func(name string) bool {
		return name == TilesetFileName
	})
}

func (f *StandardFileFinder) walkInputFolder(opts *tiler.TilerOptions, match func(name string) bool) ([]string, error) {
	var files = make([]string, 0)

	baseInfo, err := os.Stat(opts.Input)
	if err != nil {
		return nil, err
	}
	err = filepath.Walk(
		opts.Input,
		func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				if !opts.Recursive && !os.SameFile(info, baseInfo) {
					return filepath.SkipDir
				}
				return nil
			}
			if match(info.Name()) {
				files = append(files, path)
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}

	return files, nil
}
