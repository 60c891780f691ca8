package encode

import (
	"io"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/voxelsplace/dose2gmsh/dose"
)

// WriteGLB writes the outer surface of b as binary glTF with per-vertex
// dose colours. Coordinates are single precision.
func WriteGLB(w io.Writer, b *dose.DoseBlock) error {
	if err := dose.CheckForEncoding(b, Glb.String()); err != nil {
		return err
	}
	doc := BuildGLTF(b, DefaultRamp)
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	return enc.Encode(doc)
}

// BuildGLTF assembles the glTF document for b's surface.
func BuildGLTF(b *dose.DoseBlock, ramp *ColorRamp) *gltf.Document {
	mesh := GenerateSurface(b, ramp)

	positions := make([][3]float32, len(mesh.Vertices))
	normals := make([][3]float32, len(mesh.Vertices))
	colors := make([][4]float32, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		positions[i] = v.Position
		normals[i] = v.Normal
		colors[i] = v.Color
	}
	indices := make([]uint32, len(mesh.Indices))
	copy(indices, mesh.Indices)

	doc := gltf.NewDocument()
	doc.Asset.Generator = "dose2gmsh 3ddose -> GLB"

	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{
			gltf.POSITION: modeler.WritePosition(doc, positions),
			gltf.NORMAL:   modeler.WriteNormal(doc, normals),
			gltf.COLOR_0:  modeler.WriteColor(doc, colors),
		},
		Indices:  gltf.Index(modeler.WriteIndices(doc, indices)),
		Material: gltf.Index(0),
	}

	pbr := &gltf.PBRMetallicRoughness{
		BaseColorFactor: &[4]float64{1, 1, 1, 1},
		MetallicFactor:  gltf.Float(0),
		RoughnessFactor: gltf.Float(1),
	}
	doc.Materials = []*gltf.Material{{PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque}}

	doc.Meshes = []*gltf.Mesh{{Name: "DoseSurface", Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: "DoseBlock", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	return doc
}
