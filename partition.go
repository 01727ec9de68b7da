package trimesh

import (
	"math"

	"github.com/gogpu/trimesh/internal/cache"
)

// Partition is the topological triangulation of a canonical triangle, given
// three edge division counts. It is purely topological: the same
// sortedDivisions always yields the same VertBary/TriVert, independent of
// any particular triangle's geometry, which is what makes it cacheable.
type Partition struct {
	// Idx maps sorted-division slot i to the caller's original edge slot.
	Idx             [3]int
	SortedDivisions [3]int
	VertBary        []Vec3
	TriVert         [][3]int
}

// InteriorOffset returns the index of the first interior (non-boundary)
// vertex in VertBary.
func (p Partition) InteriorOffset() int {
	return p.SortedDivisions[0] + p.SortedDivisions[1] + p.SortedDivisions[2]
}

// NumInterior returns the number of interior vertices.
func (p Partition) NumInterior() int {
	return len(p.VertBary) - p.InteriorOffset()
}

var partitionCache = cache.New[[3]int, Partition]()

// next3 advances a triangle corner index cyclically: 0->1->2->0.
func next3(i int) int { return (i + 1) % 3 }

// GetPartition returns the cached topological sub-triangulation for the
// given (unsorted) per-edge division counts, each >= 1.
func GetPartition(div [3]int) Partition {
	sortedDiv := div
	triIdx := [3]int{0, 1, 2}
	if sortedDiv[2] > sortedDiv[1] {
		sortedDiv[2], sortedDiv[1] = sortedDiv[1], sortedDiv[2]
		triIdx[2], triIdx[1] = triIdx[1], triIdx[2]
	}
	if sortedDiv[1] > sortedDiv[0] {
		sortedDiv[1], sortedDiv[0] = sortedDiv[0], sortedDiv[1]
		triIdx[1], triIdx[0] = triIdx[0], triIdx[1]
		if sortedDiv[2] > sortedDiv[1] {
			sortedDiv[2], sortedDiv[1] = sortedDiv[1], sortedDiv[2]
			triIdx[2], triIdx[1] = triIdx[1], triIdx[2]
		}
	}

	partition := getCachedPartition(sortedDiv)
	partition.Idx = triIdx
	return partition
}

// getCachedPartition builds (or fetches) the triangulation for a sorted
// division triple n[0] >= n[1] >= n[2] >= 1. It is memoized process-wide
// since the result depends only on n.
func getCachedPartition(n [3]int) Partition {
	return partitionCache.GetOrCreate(n, func() Partition {
		Logger().Debug("building partition", "divisions", n)
		return buildPartition(n)
	})
}

func buildPartition(n [3]int) Partition {
	var partition Partition
	partition.SortedDivisions = n
	partition.VertBary = []Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

	for i := 0; i < 3; i++ {
		nextBary := partition.VertBary[(i+1)%3]
		for j := 1; j < n[i]; j++ {
			partition.VertBary = append(partition.VertBary,
				mixVec3(partition.VertBary[i], nextBary, float64(j)/float64(n[i])))
		}
	}

	edgeOffsets := [3]int{3, 3 + n[0] - 1, 3 + n[0] - 1 + n[1] - 1}
	f := float64(n[2]*n[2] + n[0]*n[0])

	switch {
	case n[1] == 1:
		if n[0] == 1 {
			partition.TriVert = append(partition.TriVert, [3]int{0, 1, 2})
		} else {
			partitionFan(&partition.TriVert, [3]int{0, 1, 2}, n[0]-1, edgeOffsets[0])
		}
	case float64(n[1]*n[1]) > f-math.Sqrt2*float64(n[0]*n[2]):
		// acute-ish
		partition.TriVert = append(partition.TriVert, [3]int{edgeOffsets[1] - 1, 1, edgeOffsets[1]})
		partitionQuad(&partition.TriVert, &partition.VertBary,
			[4]int{edgeOffsets[1] - 1, edgeOffsets[1], 2, 0},
			[4]int{-1, edgeOffsets[1] + 1, edgeOffsets[2], edgeOffsets[0]},
			[4]int{0, n[1] - 2, n[2] - 1, n[0] - 2},
			[4]bool{true, true, true, true})
	default:
		// obtuse -> split into two acute regions
		ns := clampInt(int(math.Round((f-float64(n[1]*n[1]))/(2*float64(n[0])))), 0, n[0]-2)
		nh := maxInt(1, int(math.Round(math.Sqrt(float64(n[2]*n[2]-ns*ns)))))

		hOffset := len(partition.VertBary)
		middleBary := partition.VertBary[edgeOffsets[0]+ns-1]
		for j := 1; j < nh; j++ {
			partition.VertBary = append(partition.VertBary,
				mixVec3(partition.VertBary[2], middleBary, float64(j)/float64(nh)))
		}

		partition.TriVert = append(partition.TriVert, [3]int{edgeOffsets[1] - 1, 1, edgeOffsets[1]})
		partitionQuad(&partition.TriVert, &partition.VertBary,
			[4]int{edgeOffsets[1] - 1, edgeOffsets[1], 2, edgeOffsets[0] + ns - 1},
			[4]int{-1, edgeOffsets[1] + 1, hOffset, edgeOffsets[0] + ns},
			[4]int{0, n[1] - 2, nh - 1, n[0] - ns - 2},
			[4]bool{true, true, true, true})

		switch {
		case n[2] == 1:
			partitionFan(&partition.TriVert, [3]int{0, edgeOffsets[0] + ns - 1, 2}, ns-1, edgeOffsets[0])
		case ns == 1:
			partition.TriVert = append(partition.TriVert, [3]int{hOffset, 2, edgeOffsets[2]})
			partitionQuad(&partition.TriVert, &partition.VertBary,
				[4]int{hOffset, edgeOffsets[2], 0, edgeOffsets[0]},
				[4]int{-1, edgeOffsets[2] + 1, -1, hOffset + nh - 2},
				[4]int{0, n[2] - 2, ns - 1, nh - 2},
				[4]bool{true, true, true, false})
		default:
			partition.TriVert = append(partition.TriVert, [3]int{hOffset - 1, 0, edgeOffsets[0]})
			partitionQuad(&partition.TriVert, &partition.VertBary,
				[4]int{hOffset - 1, edgeOffsets[0], edgeOffsets[0] + ns - 1, 2},
				[4]int{-1, edgeOffsets[0] + 1, hOffset + nh - 2, edgeOffsets[2]},
				[4]int{0, ns - 2, nh - 1, n[2] - 2},
				[4]bool{true, true, false, true})
		}
	}

	return partition
}

// partitionFan triangulates a fan with `added` inserted vertices along edge
// 0 of a triangle whose corners are cornerVerts, apex at cornerVerts[2].
func partitionFan(triVert *[][3]int, cornerVerts [3]int, added, edgeOffset int) {
	last := cornerVerts[0]
	for i := 0; i < added; i++ {
		next := edgeOffset + i
		*triVert = append(*triVert, [3]int{last, next, cornerVerts[2]})
		last = next
	}
	*triVert = append(*triVert, [3]int{last, cornerVerts[1], cornerVerts[2]})
}

// partitionQuad triangulates a convex quad whose four sides have
// edgeAdded[k] inserted vertices, walked in direction edgeFwd[k]. It
// terminates directly when two consecutive sides have no insertions,
// otherwise recurses by splitting parallel to edge 0.
func partitionQuad(triVert *[][3]int, vertBary *[]Vec3, cornerVerts, edgeOffsets, edgeAdded [4]int, edgeFwd [4]bool) {
	getEdgeVert := func(edge, idx int) int {
		d := 1
		if !edgeFwd[edge] {
			d = -1
		}
		return edgeOffsets[edge] + d*idx
	}

	for _, a := range edgeAdded {
		if a < 0 {
			panic("trimesh: negative divisions")
		}
	}

	corner := -1
	last := 3
	maxEdge := -1
	for i := 0; i < 4; i++ {
		if corner == -1 && edgeAdded[i] == 0 && edgeAdded[last] == 0 {
			corner = i
		}
		if edgeAdded[i] > 0 {
			if maxEdge == -1 {
				maxEdge = i
			} else {
				maxEdge = -2
			}
		}
		last = i
	}

	if corner >= 0 {
		if maxEdge >= 0 {
			edge := [4]int{maxEdge % 4, (maxEdge + 1) % 4, (maxEdge + 2) % 4, (maxEdge + 3) % 4}
			middle := edgeAdded[maxEdge] / 2
			*triVert = append(*triVert, [3]int{cornerVerts[edge[2]], cornerVerts[edge[3]], getEdgeVert(maxEdge, middle)})
			last := cornerVerts[edge[0]]
			for i := 0; i <= middle; i++ {
				next := getEdgeVert(maxEdge, i)
				*triVert = append(*triVert, [3]int{cornerVerts[edge[3]], last, next})
				last = next
			}
			last = cornerVerts[edge[1]]
			for i := edgeAdded[maxEdge] - 1; i >= middle; i-- {
				next := getEdgeVert(maxEdge, i)
				*triVert = append(*triVert, [3]int{cornerVerts[edge[2]], next, last})
				last = next
			}
		} else {
			sideVert := cornerVerts[0]
			for _, j := range [2]int{1, 2} {
				side := (corner + j) % 4
				if j == 2 && edgeAdded[side] > 0 {
					*triVert = append(*triVert, [3]int{cornerVerts[side], getEdgeVert(side, 0), sideVert})
				} else {
					sideVert = cornerVerts[side]
				}
				for i := 0; i < edgeAdded[side]; i++ {
					nextVert := getEdgeVert(side, i)
					*triVert = append(*triVert, [3]int{cornerVerts[corner], sideVert, nextVert})
					sideVert = nextVert
				}
				if j == 2 || edgeAdded[side] == 0 {
					*triVert = append(*triVert, [3]int{cornerVerts[corner], sideVert, cornerVerts[(corner+j+1)%4]})
				}
			}
		}
		return
	}

	// recursively partition, splitting parallel to edge 0
	partitions := 1 + minInt(edgeAdded[1], edgeAdded[3])
	newCornerVerts := [4]int{cornerVerts[1], -1, -1, cornerVerts[0]}
	newEdgeOffsets := [4]int{edgeOffsets[1], -1, getEdgeVert(3, edgeAdded[3]+1), edgeOffsets[0]}
	newEdgeAdded := [4]int{0, -1, 0, edgeAdded[0]}
	newEdgeFwd := [4]bool{edgeFwd[1], true, edgeFwd[3], edgeFwd[0]}

	for i := 1; i < partitions; i++ {
		cornerOffset1 := (edgeAdded[1] * i) / partitions
		cornerOffset3 := edgeAdded[3] - 1 - (edgeAdded[3]*i)/partitions
		nextOffset1 := getEdgeVert(1, cornerOffset1+1)
		nextOffset3 := getEdgeVert(3, cornerOffset3+1)
		added := int(math.Round(mixFloat(float64(edgeAdded[0]), float64(edgeAdded[2]), float64(i)/float64(partitions))))

		newCornerVerts[1] = getEdgeVert(1, cornerOffset1)
		newCornerVerts[2] = getEdgeVert(3, cornerOffset3)
		newEdgeAdded[0] = absInt(nextOffset1-newEdgeOffsets[0]) - 1
		newEdgeAdded[1] = added
		newEdgeAdded[2] = absInt(nextOffset3-newEdgeOffsets[2]) - 1
		newEdgeOffsets[1] = len(*vertBary)
		newEdgeOffsets[2] = nextOffset3

		for j := 0; j < added; j++ {
			*vertBary = append(*vertBary, mixVec3((*vertBary)[newCornerVerts[1]], (*vertBary)[newCornerVerts[2]],
				(float64(j)+1.0)/(float64(added)+1.0)))
		}

		partitionQuad(triVert, vertBary, newCornerVerts, newEdgeOffsets, newEdgeAdded, newEdgeFwd)

		newCornerVerts[0] = newCornerVerts[1]
		newCornerVerts[3] = newCornerVerts[2]
		newEdgeAdded[3] = newEdgeAdded[1]
		newEdgeOffsets[0] = nextOffset1
		newEdgeOffsets[3] = newEdgeOffsets[1] + newEdgeAdded[1] - 1
		newEdgeFwd[3] = false
	}

	newCornerVerts[1] = cornerVerts[2]
	newCornerVerts[2] = cornerVerts[3]
	newEdgeOffsets[1] = edgeOffsets[2]
	newEdgeAdded[0] = edgeAdded[1] - absInt(newEdgeOffsets[0]-edgeOffsets[1])
	newEdgeAdded[1] = edgeAdded[2]
	newEdgeAdded[2] = absInt(newEdgeOffsets[2]-edgeOffsets[3]) - 1
	newEdgeOffsets[2] = edgeOffsets[3]
	newEdgeFwd[1] = edgeFwd[2]

	partitionQuad(triVert, vertBary, newCornerVerts, newEdgeOffsets, newEdgeAdded, newEdgeFwd)
}

// Reindex renumbers the partition's local vertex ids to the global ids of
// the triangle it belongs to: tri gives the three global corner ids,
// edgeOffsets/edgeFwd give the global starting offset and direction of each
// of the triangle's three edges' inserted vertices, and interiorOffset gives
// the global starting offset of its interior vertices. Winding is corrected
// (outputs permuted) when the partition's sorted-to-original mapping isn't
// itself a cyclic rotation.
func (p Partition) Reindex(tri [3]int, edgeOffsets [3]int, edgeFwd [3]bool, interiorOffset int) [][3]int {
	idx := p.Idx
	triIdx := idx
	outTri := [3]int{0, 1, 2}
	if idx[1] != next3(idx[0]) {
		triIdx = [3]int{idx[2], idx[0], idx[1]}
		edgeFwd = [3]bool{!edgeFwd[0], !edgeFwd[1], !edgeFwd[2]}
		outTri[0], outTri[1] = outTri[1], outTri[0]
	}

	newVerts := make([]int, 0, len(p.VertBary))
	for i := 0; i < 3; i++ {
		newVerts = append(newVerts, tri[triIdx[i]])
	}
	for i := 0; i < 3; i++ {
		n := p.SortedDivisions[i] - 1
		fwd := edgeFwd[idx[i]]
		offset := edgeOffsets[idx[i]]
		if !fwd {
			offset += n - 1
		}
		d := 1
		if !fwd {
			d = -1
		}
		for j := 0; j < n; j++ {
			newVerts = append(newVerts, offset)
			offset += d
		}
	}
	offset := interiorOffset - len(newVerts)
	for i := len(newVerts); i < len(p.VertBary); i++ {
		newVerts = append(newVerts, i+offset)
	}

	newTriVert := make([][3]int, len(p.TriVert))
	for t, tv := range p.TriVert {
		for j := 0; j < 3; j++ {
			newTriVert[t][outTri[j]] = newVerts[tv[j]]
		}
	}
	return newTriVert
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func mixFloat(a, b, t float64) float64 { return a + (b-a)*t }
