package trimesh

import "testing"

func sumVec3(v Vec3) float64 { return v[0] + v[1] + v[2] }

func TestGetPartitionTrivialSingleTriangle(t *testing.T) {
	p := GetPartition([3]int{1, 1, 1})
	if len(p.TriVert) != 1 {
		t.Fatalf("len(TriVert) = %d, want 1 for undivided edges", len(p.TriVert))
	}
	if len(p.VertBary) != 3 {
		t.Fatalf("len(VertBary) = %d, want 3", len(p.VertBary))
	}
	if p.NumInterior() != 0 {
		t.Fatalf("NumInterior() = %d, want 0", p.NumInterior())
	}
}

func TestGetPartitionBarycentricsSumToOne(t *testing.T) {
	for _, div := range [][3]int{{1, 1, 1}, {3, 1, 1}, {2, 2, 2}, {4, 3, 2}, {5, 5, 5}} {
		p := GetPartition(div)
		for i, bary := range p.VertBary {
			if s := sumVec3(bary); s < 0.999 || s > 1.001 {
				t.Errorf("div %v vertex %d barycentric %v sums to %v, want 1", div, i, bary, s)
			}
			for c := 0; c < 3; c++ {
				if bary[c] < -1e-9 {
					t.Errorf("div %v vertex %d has negative component %v", div, i, bary)
				}
			}
		}
	}
}

func TestGetPartitionCoversEveryTriangleVertex(t *testing.T) {
	for _, div := range [][3]int{{1, 1, 1}, {3, 1, 1}, {2, 2, 1}, {4, 3, 2}} {
		p := GetPartition(div)
		for _, tri := range p.TriVert {
			for _, v := range tri {
				if v < 0 || v >= len(p.VertBary) {
					t.Fatalf("div %v triangle %v references out-of-range vertex %d", div, tri, v)
				}
			}
		}
	}
}

func TestGetPartitionCachesBySortedDivisions(t *testing.T) {
	a := GetPartition([3]int{3, 1, 2})
	b := GetPartition([3]int{1, 2, 3})
	if len(a.TriVert) != len(b.TriVert) || len(a.VertBary) != len(b.VertBary) {
		t.Fatalf("permutations of the same division multiset should share topology: %v vs %v", a, b)
	}
}

func TestReindexPreservesTriangleCount(t *testing.T) {
	p := GetPartition([3]int{3, 1, 1})
	tris := p.Reindex([3]int{0, 1, 2}, [3]int{10, 20, 30}, [3]bool{true, true, true}, 100)
	if len(tris) != len(p.TriVert) {
		t.Fatalf("Reindex produced %d triangles, want %d", len(tris), len(p.TriVert))
	}
}

func TestReindexKeepsCornersAtOriginalIDs(t *testing.T) {
	p := GetPartition([3]int{2, 2, 2})
	corners := [3]int{7, 8, 9}
	tris := p.Reindex(corners, [3]int{100, 200, 300}, [3]bool{true, true, true}, 1000)
	found := map[int]bool{}
	for _, tri := range tris {
		for _, v := range tri {
			if v == corners[0] || v == corners[1] || v == corners[2] {
				found[v] = true
			}
		}
	}
	for _, c := range corners {
		if !found[c] {
			t.Errorf("corner %d not present in any reindexed triangle", c)
		}
	}
}
