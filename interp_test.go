package trimesh

import "testing"

func TestInterpTriReturnsCornerExactlyAtUnitBary(t *testing.T) {
	m := tetrahedron()
	m.SetNormals(0, 1)
	m.CreateTangentsFromNormals(0)

	for tri := 0; tri < m.NumTri(); tri++ {
		for c := 0; c < 3; c++ {
			var uvw Vec3
			uvw[c] = 1
			got := interpTri(m, tri, uvw)
			want := m.VertPos[m.Halfedge[3*tri+c].StartVert]
			if got.Sub(want).Len() > 1e-9 {
				t.Fatalf("triangle %d corner %d: interpTri = %v, want %v", tri, c, got, want)
			}
		}
	}
}

// TestInterpTriAgreesAcrossSharedEdgeAtMidpoint checks the PN-triangle
// continuity property the whole construction exists for: two triangles
// sharing an edge must evaluate to the same 3D point at that edge's
// midpoint, since they share the same pair of half-edge tangents there
// (each triangle's tangentR/tangentL for that edge is the other's tangentL/
// tangentR). A bug in how the cross-section bitangents or the second cubic's
// tangent vector are built would break this agreement even though each
// triangle's own corner-preservation and general shape stay plausible.
func TestInterpTriAgreesAcrossSharedEdgeAtMidpoint(t *testing.T) {
	m := tetrahedron()
	m.SetNormals(0, 1)
	m.CreateTangentsFromNormals(0)

	for e := 0; e < len(m.Halfedge); e++ {
		if !m.Halfedge[e].IsForward() {
			continue
		}
		pair := m.Halfedge[e].PairedHalfedge
		tri1, c1 := e/3, e%3
		tri2, c2 := pair/3, pair%3

		var uvw1 Vec3
		uvw1[c1] = 0.5
		uvw1[next3(c1)] = 0.5
		p1 := interpTri(m, tri1, uvw1)

		var uvw2 Vec3
		uvw2[c2] = 0.5
		uvw2[next3(c2)] = 0.5
		p2 := interpTri(m, tri2, uvw2)

		if p1.Sub(p2).Len() > 1e-9 {
			t.Fatalf("edge %d: interpTri disagrees across shared edge midpoint: %v (tri %d) vs %v (tri %d)",
				e, p1, tri1, p2, tri2)
		}
	}
}

func TestInterpTriStaysNearTriangleForShallowCurvature(t *testing.T) {
	m := tetrahedron()
	m.SetNormals(0, 1)
	m.CreateTangentsFromNormals(0)

	uvw := Vec3{1.0 / 3, 1.0 / 3, 1.0 / 3}
	for tri := 0; tri < m.NumTri(); tri++ {
		p0 := m.VertPos[m.Halfedge[3*tri].StartVert]
		p1 := m.VertPos[m.Halfedge[3*tri+1].StartVert]
		p2 := m.VertPos[m.Halfedge[3*tri+2].StartVert]
		centroid := p0.Add(p1).Add(p2).Mul(1.0 / 3)

		got := interpTri(m, tri, uvw)
		if got.Sub(centroid).Len() > 1.0 {
			t.Fatalf("triangle %d interpolated centroid %v too far from linear centroid %v", tri, got, centroid)
		}
	}
}
