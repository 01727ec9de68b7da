package trimesh

import "testing"

// tetrahedron returns a regular tetrahedron with outward-facing winding.
func tetrahedron() *Mesh {
	verts := []Vec3{
		{1, 1, 1},
		{-1, -1, 1},
		{-1, 1, -1},
		{1, -1, -1},
	}
	tris := [][3]int{
		{0, 2, 1},
		{0, 3, 2},
		{0, 1, 3},
		{1, 2, 3},
	}
	return New(verts, tris)
}

func TestNewBuildsManifoldTetrahedron(t *testing.T) {
	m := tetrahedron()
	if m.NumVert() != 4 {
		t.Fatalf("NumVert() = %d, want 4", m.NumVert())
	}
	if m.NumTri() != 4 {
		t.Fatalf("NumTri() = %d, want 4", m.NumTri())
	}
	for i, h := range m.Halfedge {
		pair := m.Halfedge[h.PairedHalfedge]
		if pair.PairedHalfedge != i {
			t.Fatalf("halfedge %d pairing not involutive", i)
		}
		if pair.StartVert != h.EndVert || pair.EndVert != h.StartVert {
			t.Fatalf("halfedge %d paired with non-twin edge", i)
		}
	}
}

func TestNewPanicsOnOpenMesh(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on non-manifold input")
		}
	}()
	verts := []Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	New(verts, [][3]int{{0, 1, 2}})
}

func TestFaceNormalsPointOutward(t *testing.T) {
	m := tetrahedron()
	centroid := Vec3{}
	for _, v := range m.VertPos {
		centroid = centroid.Add(v)
	}
	centroid = centroid.Mul(1.0 / float64(len(m.VertPos)))

	for t2 := 0; t2 < m.NumTri(); t2++ {
		p := m.VertPos[m.Halfedge[3*t2].StartVert]
		if m.FaceNormal[t2].Dot(p.Sub(centroid)) <= 0 {
			t.Fatalf("triangle %d face normal does not point outward", t2)
		}
	}
}

func TestTriRefSameFace(t *testing.T) {
	m := tetrahedron()
	a := m.relation.TriRef[0]
	b := m.relation.TriRef[0]
	if !a.SameFace(b) {
		t.Fatal("identical TriRef should be SameFace")
	}
	c := m.relation.TriRef[1]
	if a.SameFace(c) {
		t.Fatal("distinct triangles should not be SameFace")
	}
}

func TestIsEmpty(t *testing.T) {
	m := &Mesh{}
	if !m.IsEmpty() {
		t.Fatal("zero-value mesh should be empty")
	}
	if tetrahedron().IsEmpty() {
		t.Fatal("tetrahedron should not be empty")
	}
}
