package trimesh

import "github.com/gogpu/trimesh/internal/parallel"

// Subdivide splits every triangle by an edge-adaptive factor and rebuilds
// the mesh's topology in place, returning one Barycentric per vertex of the
// resulting mesh that records where it came from in the pre-subdivide
// triangle it was born on. edgeDivisions(edgeVec) gives the number of new
// vertices to insert along an edge with that vector (0 leaves the edge
// untouched); every edge gets edgeDivisions(vec)+1 segments.
//
// New vertex positions are plain linear barycentric combinations of their
// source triangle's corners: Subdivide alone produces a flat refinement.
// Refine layers Bezier-patch evaluation on top of this using the returned
// Barycentric slice.
func (m *Mesh) Subdivide(edgeDivisions func(Vec3) int) []Barycentric {
	numVert := m.NumVert()
	numTri := m.NumTri()
	if numTri == 0 {
		return nil
	}

	tmpEdges := CreateTmpEdges(m.Halfedge)
	numEdge := len(tmpEdges)
	half2Edge := make([]int, len(m.Halfedge))
	segments := make([]int, numEdge)
	for e, te := range tmpEdges {
		half2Edge[te.HalfedgeIdx] = e
		half2Edge[m.Halfedge[te.HalfedgeIdx].PairedHalfedge] = e
		edgeVec := m.VertPos[te.Second].Sub(m.VertPos[te.First])
		segments[e] = edgeDivisions(edgeVec) + 1
	}

	edgeAdded := make([]int, numEdge)
	for e, n := range segments {
		edgeAdded[e] = n - 1
	}
	edgeOffset := parallel.ExclusiveScan(edgeAdded, numVert)
	totalEdgeVerts := 0
	for _, n := range edgeAdded {
		totalEdgeVerts += n
	}

	partitions := make([]Partition, numTri)
	interiorCount := make([]int, numTri)
	for t := 0; t < numTri; t++ {
		var divisions [3]int
		for c := 0; c < 3; c++ {
			divisions[c] = segments[half2Edge[3*t+c]]
		}
		partitions[t] = GetPartition(divisions)
		interiorCount[t] = partitions[t].NumInterior()
	}
	interiorOffset := parallel.ExclusiveScan(interiorCount, numVert+totalEdgeVerts)
	totalInterior := 0
	for _, n := range interiorCount {
		totalInterior += n
	}

	vertBary := make([]Barycentric, numVert+totalEdgeVerts+totalInterior)
	for t := 0; t < numTri; t++ {
		for c := 0; c < 3; c++ {
			v := m.Halfedge[3*t+c].StartVert
			var uvw Vec3
			uvw[c] = 1
			vertBary[v] = Barycentric{Tri: t, UVW: uvw}
		}
	}
	for e, te := range tmpEdges {
		tri := te.HalfedgeIdx / 3
		j := te.HalfedgeIdx % 3
		k := next3(j)
		n := segments[e]
		for step := 1; step < n; step++ {
			frac := float64(step) / float64(n)
			var uvw Vec3
			uvw[j] = 1 - frac
			uvw[k] = frac
			vertBary[edgeOffset[e]+step-1] = Barycentric{Tri: tri, UVW: uvw}
		}
	}

	triCount := make([]int, numTri)
	for t, p := range partitions {
		triCount[t] = len(p.TriVert)
	}
	triOffset := parallel.ExclusiveScan(triCount, 0)
	totalTri := 0
	for _, n := range triCount {
		totalTri += n
	}
	newTriVerts := make([][3]int, totalTri)
	newTriRef := make([]TriRef, totalTri)

	policy := m.opts.resolvePolicy(numTri)
	parallel.ForEachN(policy, numTri, func(t int) {
		var corners [3]int
		var edgeOffsets [3]int
		var edgeFwd [3]bool
		for c := 0; c < 3; c++ {
			corners[c] = m.Halfedge[3*t+c].StartVert
			e := half2Edge[3*t+c]
			edgeOffsets[c] = edgeOffset[e]
			edgeFwd[c] = 3*t+c == tmpEdges[e].HalfedgeIdx
		}
		p := partitions[t]
		tris := p.Reindex(corners, edgeOffsets, edgeFwd, interiorOffset[t])
		copy(newTriVerts[triOffset[t]:], tris)
		for i := range tris {
			newTriRef[triOffset[t]+i] = m.relation.TriRef[t]
		}
		idx := p.Idx
		for s, ib := range p.VertBary[p.InteriorOffset():] {
			var uvw Vec3
			for k := 0; k < 3; k++ {
				uvw[idx[k]] = ib[k]
			}
			vertBary[interiorOffset[t]+s] = Barycentric{Tri: t, UVW: uvw}
		}
	})

	newVertPos := make([]Vec3, len(vertBary))
	parallel.ForEachN(policy, len(vertBary), func(v int) {
		by := vertBary[v]
		var p0, p1, p2 Vec3
		p0 = m.VertPos[m.Halfedge[3*by.Tri].StartVert]
		p1 = m.VertPos[m.Halfedge[3*by.Tri+1].StartVert]
		p2 = m.VertPos[m.Halfedge[3*by.Tri+2].StartVert]
		newVertPos[v] = p0.Mul(by.UVW[0]).Add(p1.Mul(by.UVW[1])).Add(p2.Mul(by.UVW[2]))
	})

	var newNumProp int
	var newProperties []float64
	var newTriProperties [][3]int
	if m.relation.NumProp > 0 {
		newNumProp, newProperties, newTriProperties = m.subdivideProperties(
			tmpEdges, half2Edge, segments, edgeOffset, partitions, interiorOffset, triOffset, totalTri)
	}

	m.VertPos = newVertPos
	m.relation.TriRef = newTriRef
	m.relation.NumProp = newNumProp
	m.relation.Properties = newProperties
	m.relation.TriProperties = newTriProperties
	m.CreateHalfedges(newTriVerts)
	m.computeFaceNormals()
	m.computeVertNormals()

	return vertBary
}

// subdivideProperties interpolates the property table across a subdivision,
// splitting the inserted property vertices along an edge whenever the two
// triangles sharing it disagree on the property vertex at either endpoint
// (a property seam), so each side keeps its own property curve there.
// Interior property vertices are always private to their triangle, since no
// other triangle touches them.
func (m *Mesh) subdivideProperties(tmpEdges []TmpEdge, half2Edge, segments, edgeOffset []int,
	partitions []Partition, interiorOffset, triOffset []int, totalTri int) (int, []float64, [][3]int) {

	numProp := m.relation.NumProp
	numTri := m.NumTri()
	triProp := m.relation.TriProperties
	if len(triProp) == 0 {
		triProp = make([][3]int, numTri)
		for t := 0; t < numTri; t++ {
			for c := 0; c < 3; c++ {
				triProp[t][c] = m.Halfedge[3*t+c].StartVert
			}
		}
	}

	numOldProp := m.NumPropVert()
	// sharedOffset[e] >= 0: a shared block of `added` new rows,
	// used by both triangles on this edge (no seam).
	// splitOffset[e][0], [1]: per-triangle-side private blocks (seam).
	sharedOffset := make([]int, len(tmpEdges))
	splitOffset := make([][2]int, len(tmpEdges))
	for i := range sharedOffset {
		sharedOffset[i] = -1
		splitOffset[i] = [2]int{-1, -1}
	}

	rows := make([][]float64, 0, numOldProp)
	for i := 0; i < numOldProp; i++ {
		row := make([]float64, numProp)
		copy(row, m.relation.Properties[i*numProp:(i+1)*numProp])
		rows = append(rows, row)
	}
	addRow := func(a, b []float64, t float64) int {
		row := make([]float64, numProp)
		for i := 0; i < numProp; i++ {
			row[i] = a[i] + (b[i]-a[i])*t
		}
		rows = append(rows, row)
		return len(rows) - 1
	}
	propRow := func(id int) []float64 { return rows[id] }

	for e, te := range tmpEdges {
		n := segments[e]
		added := n - 1
		if added == 0 {
			continue
		}
		repHalf := te.HalfedgeIdx
		tri1 := repHalf / 3
		c1 := repHalf % 3
		pairedHalf := m.Halfedge[repHalf].PairedHalfedge
		tri2 := pairedHalf / 3
		c2 := pairedHalf % 3

		propA1 := triProp[tri1][c1]
		propB1 := triProp[tri1][next3(c1)]
		propA2 := triProp[tri2][next3(c2)]
		propB2 := triProp[tri2][c2]
		seam := propA1 != propA2 || propB1 != propB2

		if !seam {
			offset := len(rows)
			for step := 1; step <= added; step++ {
				addRow(propRow(propA1), propRow(propB1), float64(step)/float64(n))
			}
			sharedOffset[e] = offset
		} else {
			offset1 := len(rows)
			for step := 1; step <= added; step++ {
				addRow(propRow(propA1), propRow(propB1), float64(step)/float64(n))
			}
			offset2 := len(rows)
			for step := 1; step <= added; step++ {
				// tri2's side is assembled ascending from its own corner c2
				// (propB2) toward next3(c2) (propA2), the reverse of tri1's
				// propA1->propB1 direction, matching the paired triangle's
				// own forward winding.
				addRow(propRow(propB2), propRow(propA2), float64(step)/float64(n))
			}
			splitOffset[e] = [2]int{offset1, offset2}
		}
	}

	newTriProp := make([][3]int, totalTri)
	for t := 0; t < numTri; t++ {
		var corners [3]int
		var edgeOffsets [3]int
		var edgeFwd [3]bool
		for c := 0; c < 3; c++ {
			corners[c] = triProp[t][c]
			e := half2Edge[3*t+c]
			fwd := 3*t+c == tmpEdges[e].HalfedgeIdx
			edgeFwd[c] = true // this triangle's private/shared block is always laid out in its own forward direction
			switch {
			case sharedOffset[e] >= 0:
				edgeOffsets[c] = sharedOffset[e]
				edgeFwd[c] = fwd
			case fwd:
				edgeOffsets[c] = splitOffset[e][0]
			default:
				edgeOffsets[c] = splitOffset[e][1]
			}
		}

		p := partitions[t]
		interiorOff := len(rows)
		idx := p.Idx
		for _, ib := range p.VertBary[p.InteriorOffset():] {
			var uvw Vec3
			for k := 0; k < 3; k++ {
				uvw[idx[k]] = ib[k]
			}
			row := make([]float64, numProp)
			a, b, c := propRow(corners[0]), propRow(corners[1]), propRow(corners[2])
			for i := 0; i < numProp; i++ {
				row[i] = a[i]*uvw[0] + b[i]*uvw[1] + c[i]*uvw[2]
			}
			rows = append(rows, row)
		}

		tris := p.Reindex(corners, edgeOffsets, edgeFwd, interiorOff)
		copy(newTriProp[triOffset[t]:], tris)
	}

	flat := make([]float64, len(rows)*numProp)
	for i, row := range rows {
		copy(flat[i*numProp:(i+1)*numProp], row)
	}
	return numProp, flat, newTriProp
}

// Refine subdivides the mesh per edgeDivisions and, if half-edge tangents
// were present beforehand, replaces the flat linear positions with
// Bezier-patch evaluations of the pre-refine surface. It then mints a fresh
// mesh identity for the result, since its faces are no longer coplanar with
// the pre-refine originals, and recomputes derived normals.
func (m *Mesh) Refine(edgeDivisions func(Vec3) int) error {
	old := &Mesh{VertPos: m.VertPos, Halfedge: m.Halfedge, HalfedgeTangent: m.HalfedgeTangent}
	hadTangents := len(m.HalfedgeTangent) > 0

	bary := m.Subdivide(edgeDivisions)

	if hadTangents {
		newPos := make([]Vec3, len(bary))
		policy := m.opts.resolvePolicy(len(bary))
		parallel.ForEachN(policy, len(bary), func(v int) {
			newPos[v] = interpTri(old, bary[v].Tri, bary[v].UVW)
		})
		m.VertPos = newPos
	}

	m.relation.MeshID = ReserveIDs(1)
	m.InitializeOriginal()
	m.HalfedgeTangent = nil
	m.Finish()
	return nil
}
