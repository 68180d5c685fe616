package tileset

import (
	"github.com/ecopia-map/cesium_tileset/internal/geodesy"
)

const (
	AssetVersion  = "0.0"
	GltfUpAxis    = "Y"
	RefineReplace = "REPLACE"
)

// Descriptor holds everything written into a single-tile tileset.json.
type Descriptor struct {
	GeometricError float64
	Transform      *geodesy.Matrix4 // optional
	BoundingVolume BoundingVolume
	ContentURI     string
}

// Document lays the descriptor out as
//
//	{"asset":{...},"geometricError":g,"root":{"transform":[...],"boundingVolume":{...},
//	 "geometricError":g,"refine":"REPLACE","content":{"uri":"..."}}}
//
// geometricError is repeated on the root tile, readers expect both.
func (d Descriptor) Document() (Object, error) {
	if d.BoundingVolume == nil {
		return nil, ErrMissingBoundingVolume
	}

	asset := Object{}.
		With("version", String(AssetVersion)).
		With("gltfUpAxis", String(GltfUpAxis))

	root := Object{}
	if d.Transform != nil {
		root = root.With("transform", TransformArray(*d.Transform))
	}
	root = root.
		With("boundingVolume", Object{}.With(d.BoundingVolume.Kind(), Numbers(d.BoundingVolume.Values()...))).
		With("geometricError", Number(d.GeometricError)).
		With("refine", String(RefineReplace)).
		With("content", Object{}.With("uri", String(d.ContentURI)))

	return Object{}.
		With("asset", asset).
		With("geometricError", Number(d.GeometricError)).
		With("root", root), nil
}

// TransformArray renders the matrix column-major. The homogeneous corner is
// always the literal 1.
func TransformArray(m geodesy.Matrix4) Array {
	array := Numbers(m[:15]...)
	return append(array, Literal("1"))
}

// Encode renders the descriptor to tileset.json bytes.
func Encode(d Descriptor, format NumberFormat, indent bool) ([]byte, error) {
	doc, err := d.Document()
	if err != nil {
		return nil, err
	}
	return Marshal(doc, format, indent)
}
