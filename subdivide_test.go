package trimesh

import (
	"math"
	"testing"
)

func TestSubdivideNoOpDivisionsPreservesTopology(t *testing.T) {
	m := tetrahedron()
	numTriBefore := m.NumTri()
	bary := m.Subdivide(func(Vec3) int { return 0 })
	if m.NumTri() != numTriBefore {
		t.Fatalf("NumTri() = %d, want %d for zero edge divisions", m.NumTri(), numTriBefore)
	}
	if len(bary) != m.NumVert() {
		t.Fatalf("len(bary) = %d, want %d", len(bary), m.NumVert())
	}
	for i, h := range m.Halfedge {
		if m.Halfedge[h.PairedHalfedge].PairedHalfedge != i {
			t.Fatalf("half-edge %d pairing broken after no-op subdivide", i)
		}
	}
}

func TestSubdivideUniformDivisionQuadruplesTriangleCount(t *testing.T) {
	m := tetrahedron()
	m.Subdivide(func(Vec3) int { return 1 })
	// dividing every edge into 2 segments quadruples the triangle count for
	// a closed manifold (standard 1-to-4 loop split).
	if m.NumTri() != 16 {
		t.Fatalf("NumTri() = %d, want 16", m.NumTri())
	}
}

func TestSubdivideBarycentricsAreValid(t *testing.T) {
	m := tetrahedron()
	bary := m.Subdivide(func(Vec3) int { return 2 })
	for v, b := range bary {
		if b.Tri < 0 || b.Tri >= 4 {
			t.Fatalf("vertex %d has out-of-range source triangle %d", v, b.Tri)
		}
		s := b.UVW[0] + b.UVW[1] + b.UVW[2]
		if s < 0.999 || s > 1.001 {
			t.Fatalf("vertex %d barycentric %v sums to %v, want 1", v, b.UVW, s)
		}
	}
}

func TestRefineProducesManifoldMeshWithNewIdentity(t *testing.T) {
	m := tetrahedron()
	m.SetNormals(0, 1)
	m.CreateTangentsFromNormals(0)
	oldID := m.relation.MeshID

	if err := m.Refine(func(Vec3) int { return 1 }); err != nil {
		t.Fatalf("Refine returned error: %v", err)
	}
	if m.relation.MeshID == oldID {
		t.Fatal("Refine should mint a fresh mesh identity")
	}
	if m.HalfedgeTangent != nil {
		t.Fatal("Refine should clear tangents on the result")
	}
	for i, h := range m.Halfedge {
		if m.Halfedge[h.PairedHalfedge].PairedHalfedge != i {
			t.Fatalf("half-edge %d pairing broken after refine", i)
		}
	}
	for tri, ref := range m.relation.TriRef {
		if ref.Tri != tri || ref.MeshID != m.relation.MeshID {
			t.Fatalf("triangle %d TriRef not reinitialized: %+v", tri, ref)
		}
	}
}

func TestRefineWithoutTangentsStillProducesValidMesh(t *testing.T) {
	m := tetrahedron()
	if err := m.Refine(func(Vec3) int { return 1 }); err != nil {
		t.Fatalf("Refine returned error: %v", err)
	}
	if m.NumTri() != 16 {
		t.Fatalf("NumTri() = %d, want 16", m.NumTri())
	}
}

func TestSubdividePropagatesTriRefToChildren(t *testing.T) {
	m := tetrahedron()
	m.Subdivide(func(Vec3) int { return 1 })
	seen := make(map[int]int)
	for _, ref := range m.relation.TriRef {
		seen[ref.Tri]++
	}
	for src, count := range seen {
		if count != 4 {
			t.Fatalf("source triangle %d produced %d children, want 4", src, count)
		}
	}
}

// TestSubdividePropertySeamInterpolatesEachSideTowardItsOwnCorner exercises
// the property-seam path in subdivideProperties: an edge whose two adjacent
// triangles disagree on the property at one endpoint (a UV seam) must get
// two independently interpolated blocks of new property rows, each blended
// toward that triangle's own view of the disagreeing corner, not the other
// triangle's.
func TestSubdividePropertySeamInterpolatesEachSideTowardItsOwnCorner(t *testing.T) {
	m := tetrahedron()
	numVert := m.NumVert()
	m.relation.NumProp = 1
	m.relation.TriProperties = make([][3]int, m.NumTri())
	for tri := 0; tri < m.NumTri(); tri++ {
		for c := 0; c < 3; c++ {
			m.relation.TriProperties[tri][c] = m.Halfedge[3*tri+c].StartVert
		}
	}
	m.relation.Properties = make([]float64, numVert)
	for v := range m.relation.Properties {
		m.relation.Properties[v] = float64(10 * (v + 1))
	}

	var seamEdge int
	for e, h := range m.Halfedge {
		if h.IsForward() {
			seamEdge = e
			break
		}
	}
	pair := m.Halfedge[seamEdge].PairedHalfedge
	tri1, tri2 := seamEdge/3, pair/3
	c2 := pair % 3
	a, b := m.Halfedge[seamEdge].StartVert, m.Halfedge[seamEdge].EndVert
	posA, posB := m.VertPos[a], m.VertPos[b]
	valA, valB := m.relation.Properties[a], m.relation.Properties[b]

	// Give tri2's corner at b its own property row distinct from b's shared
	// one, simulating a UV seam: same vertex position, disagreeing property.
	const seamVal = 99.0
	seamProp := len(m.relation.Properties)
	m.relation.Properties = append(m.relation.Properties, seamVal)
	m.relation.TriProperties[tri2][c2] = seamProp

	m.Subdivide(func(Vec3) int { return 2 })

	findProp := func(triOriginal int, wantPos Vec3) float64 {
		for t := 0; t < m.NumTri(); t++ {
			if m.relation.TriRef[t].Tri != triOriginal {
				continue
			}
			for c := 0; c < 3; c++ {
				v := m.Halfedge[3*t+c].StartVert
				if m.VertPos[v].Sub(wantPos).Len() < 1e-6 {
					prop := m.relation.TriProperties[t][c]
					return m.relation.Properties[prop*m.relation.NumProp]
				}
			}
		}
		t.Fatalf("no child of triangle %d found at position %v", triOriginal, wantPos)
		return 0
	}

	nearA := posA.Add(posB.Sub(posA).Mul(1.0 / 3))
	nearB := posA.Add(posB.Sub(posA).Mul(2.0 / 3))

	tri1AtNearA := findProp(tri1, nearA)
	tri1AtNearB := findProp(tri1, nearB)
	tri2AtNearA := findProp(tri2, nearA)
	tri2AtNearB := findProp(tri2, nearB)

	wantTri1NearA := valA + (valB-valA)/3
	wantTri1NearB := valA + (valB-valA)*2/3
	// tri2 walks the edge from its own corner at b (seamVal) toward a, so
	// its interpolation runs seamVal -> valA, the reverse of tri1's.
	wantTri2NearB := seamVal + (valA-seamVal)/3
	wantTri2NearA := seamVal + (valA-seamVal)*2/3

	const tol = 1e-9
	if math.Abs(tri1AtNearA-wantTri1NearA) > tol {
		t.Fatalf("tri1 side near a = %v, want %v", tri1AtNearA, wantTri1NearA)
	}
	if math.Abs(tri1AtNearB-wantTri1NearB) > tol {
		t.Fatalf("tri1 side near b = %v, want %v", tri1AtNearB, wantTri1NearB)
	}
	if math.Abs(tri2AtNearB-wantTri2NearB) > tol {
		t.Fatalf("tri2 side near b = %v, want %v (should lean toward its own seamed value %v, not tri1's %v)",
			tri2AtNearB, wantTri2NearB, seamVal, valB)
	}
	if math.Abs(tri2AtNearA-wantTri2NearA) > tol {
		t.Fatalf("tri2 side near a = %v, want %v", tri2AtNearA, wantTri2NearA)
	}
}
