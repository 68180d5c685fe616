package pkg

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/ecopia-map/cesium_tileset/internal/tiler"
	"github.com/ecopia-map/cesium_tileset/internal/tileset"
	"github.com/ecopia-map/cesium_tileset/tools"
	"github.com/golang/glog"
	"github.com/tidwall/gjson"
)

var ErrInvalidTileset = errors.New("invalid tileset")

type TilerVerify struct {
	fileFinder tools.FileFinder
}

func NewTilerVerify(fileFinder tools.FileFinder) tiler.ITiler {
	return &TilerVerify{
		fileFinder: fileFinder,
	}
}

func (tilerVerify *TilerVerify) RunTiler(opts *tiler.TilerOptions) error {
	files, err := tilerVerify.fileFinder.GetTilesetsToVerify(opts)
	if err != nil {
		return err
	}

	var errs []error
	for _, filePath := range files {
		data, err := os.ReadFile(filePath)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := VerifyTileset(data); err != nil {
			glog.Errorf("%s: %v", filePath, err)
			errs = append(errs, fmt.Errorf("%s: %w", filePath, err))
			continue
		}
		tools.LogOutput("> valid", filePath)
	}

	return errors.Join(errs...)
}

var (
	topLevelKeys = []string{"asset", "geometricError", "root"}
	rootKeys     = []string{"boundingVolume", "geometricError", "refine", "content"}
)

// VerifyTileset checks that data is a single tile descriptor: the key order,
// the asset block, a 16 number transform ending in 1 when present, a 12
// number box or a 6 number region, a content uri and equal geometric errors.
func VerifyTileset(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: not valid json", ErrInvalidTileset)
	}
	doc := gjson.ParseBytes(data)

	if keys := objectKeys(doc); !slices.Equal(keys, topLevelKeys) {
		return fmt.Errorf("%w: top level keys %v, expected %v", ErrInvalidTileset, keys, topLevelKeys)
	}

	root := doc.Get("root")
	expectedRootKeys := rootKeys
	if root.Get("transform").Exists() {
		expectedRootKeys = append([]string{"transform"}, rootKeys...)
	}
	if keys := objectKeys(root); !slices.Equal(keys, expectedRootKeys) {
		return fmt.Errorf("%w: root keys %v, expected %v", ErrInvalidTileset, keys, expectedRootKeys)
	}

	if v := doc.Get("asset.version").String(); v != tileset.AssetVersion {
		return fmt.Errorf("%w: asset.version %q", ErrInvalidTileset, v)
	}
	if v := doc.Get("asset.gltfUpAxis").String(); v != tileset.GltfUpAxis {
		return fmt.Errorf("%w: asset.gltfUpAxis %q", ErrInvalidTileset, v)
	}

	if transform := root.Get("transform"); transform.Exists() {
		values := transform.Array()
		if len(values) != 16 {
			return fmt.Errorf("%w: transform has %d numbers", ErrInvalidTileset, len(values))
		}
		if err := allNumbers("transform", values); err != nil {
			return err
		}
		if !tools.IsFloatEqual(values[15].Float(), 1) {
			return fmt.Errorf("%w: transform ends with %s", ErrInvalidTileset, values[15].Raw)
		}
	}

	volume := root.Get("boundingVolume")
	volumeKeys := objectKeys(volume)
	if len(volumeKeys) != 1 {
		return fmt.Errorf("%w: boundingVolume keys %v", ErrInvalidTileset, volumeKeys)
	}
	expectedLen := map[string]int{"box": 12, "region": 6}[volumeKeys[0]]
	values := volume.Get(volumeKeys[0]).Array()
	if expectedLen == 0 || len(values) != expectedLen {
		return fmt.Errorf("%w: boundingVolume %s has %d numbers", ErrInvalidTileset, volumeKeys[0], len(values))
	}
	if err := allNumbers(volumeKeys[0], values); err != nil {
		return err
	}

	if root.Get("refine").String() != tileset.RefineReplace {
		return fmt.Errorf("%w: refine %q", ErrInvalidTileset, root.Get("refine").String())
	}
	if uri := root.Get("content.uri"); uri.Type != gjson.String {
		return fmt.Errorf("%w: content.uri missing", ErrInvalidTileset)
	}

	g, rootG := doc.Get("geometricError"), root.Get("geometricError")
	if g.Type != gjson.Number || rootG.Type != gjson.Number || !tools.IsFloatEqual(g.Float(), rootG.Float()) {
		return fmt.Errorf("%w: geometricError %s and root.geometricError %s differ", ErrInvalidTileset, g.Raw, rootG.Raw)
	}

	return nil
}

func objectKeys(result gjson.Result) []string {
	var keys []string
	result.ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	return keys
}

func allNumbers(name string, values []gjson.Result) error {
	for i, v := range values {
		if v.Type != gjson.Number {
			return fmt.Errorf("%w: %s[%d] is not a number", ErrInvalidTileset, name, i)
		}
	}
	return nil
}
