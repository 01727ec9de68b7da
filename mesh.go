package trimesh

import "github.com/google/uuid"

// TriRef records the provenance of a triangle: which input mesh it came
// from, that mesh's original (pre-refine) id, and the triangle index within
// that mesh. Two triangles SameFace when they trace back to the same
// original face of the same original mesh, which is how flat-face detection
// tells a coplanar group of triangles apart from two unrelated triangles
// that merely happen to be coplanar.
type TriRef struct {
	MeshID     uuid.UUID
	OriginalID int32
	Tri        int
}

// SameFace reports whether ref and other trace back to the same original
// face.
func (ref TriRef) SameFace(other TriRef) bool {
	return ref.MeshID == other.MeshID && ref.OriginalID == other.OriginalID &&
		ref.Tri == other.Tri
}

// Barycentric links a refined vertex to a coordinate within a source
// triangle. UVW must sum to 1 and have non-negative components.
type Barycentric struct {
	Tri int
	UVW Vec3
}

// Smoothness marks a half-edge as sharpened to some degree in [0, 1]. A
// smoothness of 0 is fully sharp (zero tangent); 1 is fully smooth
// (equivalent to not being listed at all).
type Smoothness struct {
	Halfedge   int
	Smoothness float64
}

// meshRelation carries the property table and per-triangle provenance that
// rides alongside pure topology.
type meshRelation struct {
	MeshID        uuid.UUID
	OriginalID    int32
	TriRef        []TriRef
	NumProp       int
	Properties    []float64
	TriProperties [][3]int
}

// numPropVert returns the number of rows in the property table.
func (mr meshRelation) numPropVert() int {
	if mr.NumProp == 0 {
		return 0
	}
	return len(mr.Properties) / mr.NumProp
}

// Mesh is a manifold triangle mesh with half-edge connectivity, ready for
// crease-aware normal computation, tangent construction, and Bezier-patch
// refinement.
type Mesh struct {
	VertPos         []Vec3
	Halfedge        []Halfedge
	FaceNormal      []Vec3
	VertNormal      []Vec3
	HalfedgeTangent []Vec4

	relation meshRelation
	opts     meshOptions
}

// New builds a Mesh from a flat vertex position array and a flat
// triangle-vertex index array (three indices per triangle). Half-edges and
// their pairing are derived immediately; face normals are computed from the
// triangle winding.
//
// New panics if triVerts does not pair up into a closed manifold (every
// directed edge must have exactly one opposite twin).
func New(vertPos []Vec3, triVerts [][3]int, opts ...MeshOption) *Mesh {
	o := defaultMeshOptions()
	for _, opt := range opts {
		opt(&o)
	}

	m := &Mesh{
		VertPos: vertPos,
		opts:    o,
	}
	m.CreateHalfedges(triVerts)
	m.relation.MeshID = uuid.New()
	m.relation.TriRef = make([]TriRef, m.NumTri())
	for i := range m.relation.TriRef {
		m.relation.TriRef[i] = TriRef{MeshID: m.relation.MeshID, OriginalID: m.relation.OriginalID, Tri: i}
	}
	m.computeFaceNormals()
	m.computeVertNormals()
	return m
}

// NumVert returns the number of vertices.
func (m *Mesh) NumVert() int { return len(m.VertPos) }

// NumTri returns the number of triangles.
func (m *Mesh) NumTri() int { return len(m.Halfedge) / 3 }

// NumProp returns the width of the property table.
func (m *Mesh) NumProp() int { return m.relation.NumProp }

// NumPropVert returns the number of rows in the property table.
func (m *Mesh) NumPropVert() int { return m.relation.numPropVert() }

// IsEmpty reports whether the mesh has no triangles.
func (m *Mesh) IsEmpty() bool { return m.NumTri() == 0 }
