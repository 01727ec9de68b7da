package trimesh

import "github.com/google/uuid"

// Halfedge is one directed side of an undirected mesh edge. Triangles occupy
// contiguous triples: half-edges 3t, 3t+1, 3t+2 bound triangle t, in
// forward-CCW order.
type Halfedge struct {
	StartVert, EndVert int
	PairedHalfedge     int
	Face               int
}

// IsForward reports whether this half-edge is the canonical direction of its
// undirected edge (start < end). Every undirected edge has exactly one
// forward half-edge and one backward half-edge.
func (h Halfedge) IsForward() bool { return h.StartVert < h.EndVert }

// TmpEdge is a unique undirected edge, identified by its (ordered) endpoint
// pair, carrying the index of one of its two half-edges as a representative.
type TmpEdge struct {
	First, Second int
	HalfedgeIdx   int
}

// NextHalfedge returns the next half-edge within the same triangle,
// following the triangle's winding: 3t+0 -> 3t+1 -> 3t+2 -> 3t+0.
func NextHalfedge(current int) int {
	if current%3 == 2 {
		return current - 2
	}
	return current + 1
}

// CreateTmpEdges builds one TmpEdge per undirected edge, choosing the
// forward half-edge as representative (for a degenerate edge whose two ends
// are the same vertex, the pair of the first half-edge encountered).
func CreateTmpEdges(halfedges []Halfedge) []TmpEdge {
	seen := make(map[[2]int]int, len(halfedges)/2)
	edges := make([]TmpEdge, 0, len(halfedges)/2)
	for i, h := range halfedges {
		a, b := h.StartVert, h.EndVert
		key := [2]int{a, b}
		if a > b {
			key = [2]int{b, a}
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = len(edges)
		rep := i
		if !h.IsForward() {
			rep = h.PairedHalfedge
		}
		edges = append(edges, TmpEdge{First: key[0], Second: key[1], HalfedgeIdx: rep})
	}
	return edges
}

// CreateHalfedges rebuilds the mesh's half-edge array from a flat
// triangle-vertex index array, pairing each half-edge with its twin on the
// opposite triangle.
//
// CreateHalfedges panics if the input is not a closed manifold: every
// directed edge must be matched by exactly one opposite-direction twin.
func (m *Mesh) CreateHalfedges(triVerts [][3]int) {
	n := len(triVerts)
	halfedges := make([]Halfedge, 3*n)
	type edgeKey struct{ a, b int }
	pending := make(map[edgeKey]int, 3*n)

	for t, tri := range triVerts {
		for j := 0; j < 3; j++ {
			startVert := tri[j]
			endVert := tri[(j+1)%3]
			idx := 3*t + j
			halfedges[idx] = Halfedge{StartVert: startVert, EndVert: endVert, Face: t, PairedHalfedge: -1}

			twinKey := edgeKey{endVert, startVert}
			if twin, ok := pending[twinKey]; ok {
				halfedges[idx].PairedHalfedge = twin
				halfedges[twin].PairedHalfedge = idx
				delete(pending, twinKey)
			} else {
				pending[edgeKey{startVert, endVert}] = idx
			}
		}
	}
	if len(pending) != 0 {
		panic("trimesh: unpaired half-edge, mesh is not a closed manifold")
	}
	m.Halfedge = halfedges
}

// ForVertHalfedges walks the fan of half-edges leaving the vertex that owns
// start, calling visit once per half-edge in the fan (including start
// itself), terminating when the walk returns to start.
func (m *Mesh) ForVertHalfedges(start int, visit func(halfedge int)) {
	current := start
	for {
		visit(current)
		current = NextHalfedge(m.Halfedge[current].PairedHalfedge)
		if current == start {
			return
		}
	}
}

// forVertPairwise walks the fan of half-edges leaving the vertex that owns
// start, calling reduce for every consecutive pair (current, next) around
// the full fan. get(halfedge) computes the per-half-edge value once.
func forVertPairwise[T any](m *Mesh, start int, get func(halfedge int) T, reduce func(halfedge int, cur, next T)) {
	current := start
	currentVal := get(current)
	for {
		next := NextHalfedge(m.Halfedge[current].PairedHalfedge)
		nextVal := get(next)
		reduce(current, currentVal, nextVal)
		current = next
		currentVal = nextVal
		if current == start {
			return
		}
	}
}

// computeFaceNormals fills FaceNormal from the current vertex positions and
// triangle winding.
func (m *Mesh) computeFaceNormals() {
	numTri := m.NumTri()
	m.FaceNormal = make([]Vec3, numTri)
	for t := 0; t < numTri; t++ {
		p0 := m.VertPos[m.Halfedge[3*t].StartVert]
		p1 := m.VertPos[m.Halfedge[3*t+1].StartVert]
		p2 := m.VertPos[m.Halfedge[3*t+2].StartVert]
		n := p1.Sub(p0).Cross(p2.Sub(p0))
		m.FaceNormal[t] = SafeNormalize(n)
	}
}

// computeVertNormals fills VertNormal as the normalized sum of the unit
// normals of the incident faces (not weighted by area).
func (m *Mesh) computeVertNormals() {
	numVert := m.NumVert()
	sums := make([]Vec3, numVert)
	for t := 0; t < m.NumTri(); t++ {
		n := m.FaceNormal[t]
		for j := 0; j < 3; j++ {
			v := m.Halfedge[3*t+j].StartVert
			sums[v] = sums[v].Add(n)
		}
	}
	m.VertNormal = make([]Vec3, numVert)
	for v := range sums {
		m.VertNormal[v] = SafeNormalize(sums[v])
	}
}

// ReserveIDs mints n fresh, collision-free mesh identities for newly
// constructed original meshes and returns the first one. Refine calls this
// with n=1 after warping a refined mesh's faces out of coplanarity with
// their originals.
func ReserveIDs(n int) uuid.UUID {
	first := uuid.New()
	for i := 1; i < n; i++ {
		uuid.New()
	}
	return first
}

// InitializeOriginal marks every triangle in the mesh as its own original
// face, so that a freshly refined mesh (whose faces are no longer coplanar
// with the pre-refine originals) starts a new provenance lineage rather than
// falsely claiming membership in the old one.
func (m *Mesh) InitializeOriginal() {
	for t := range m.relation.TriRef {
		m.relation.TriRef[t] = TriRef{MeshID: m.relation.MeshID, OriginalID: m.relation.OriginalID, Tri: t}
	}
}

// Finish recomputes derived per-triangle and per-vertex data (face normals,
// vertex normals) after the vertex positions have changed, and drops any
// half-edge tangents left over from a prior smoothing pass since they no
// longer describe the new geometry.
func (m *Mesh) Finish() {
	if m.IsEmpty() {
		return
	}
	m.computeFaceNormals()
	m.computeVertNormals()
	m.HalfedgeTangent = nil
}
