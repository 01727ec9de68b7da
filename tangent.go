package trimesh

import (
	"math"
	"sort"

	"github.com/gogpu/trimesh/internal/parallel"
)

// CircularTangent computes a weighted cubic Bezier control in the form of a
// homogeneous 4-vector, given a desired tangent direction (whose length is
// irrelevant) and the edge vector to the neighboring vertex. In the
// symmetric case where the tangent at the far end is the mirror image of
// this one, the resulting cubic Bezier traces a circular arc.
func CircularTangent(tangent, edgeVec Vec3) Vec4 {
	dir := SafeNormalize(tangent)

	weight := math.Abs(dir.Dot(SafeNormalize(edgeVec)))
	if weight == 0 {
		Logger().Warn("degenerate tangent, defaulting weight to 1", "tangent", tangent, "edgeVec", edgeVec)
		weight = 1
	}
	// Quadratic weighted bezier for circular interpolation.
	scaled := dir.Mul(edgeVec.Len() / (2 * weight))
	bz2 := Vec4{scaled[0] * weight, scaled[1] * weight, scaled[2] * weight, weight}
	// Equivalent cubic weighted bezier.
	bz3 := mixVec4(Vec4{0, 0, 0, 1}, bz2, 2.0/3.0)
	// Convert from homogeneous form to geometric form.
	p := vec4XYZ(bz3).Mul(1 / bz3[3])
	return Vec4{p[0], p[1], p[2], bz3[3]}
}

// smoothBezier fills every half-edge's tangent with a circular-arc
// approximation, using the average of the two adjacent face normals crossed
// with the edge to pick a direction consistent with the vertex normal at the
// edge's start.
func smoothBezier(halfedge []Halfedge, vertPos, triNormal, vertNormal []Vec3, tangent []Vec4, policy parallel.Policy) {
	parallel.ForEachN(policy, len(halfedge), func(e int) {
		h := halfedge[e]
		edgeVec := vertPos[h.EndVert].Sub(vertPos[h.StartVert])
		edgeNormal := triNormal[h.Face].Add(triNormal[halfedge[h.PairedHalfedge].Face]).Mul(0.5)
		dir := edgeNormal.Cross(edgeVec).Cross(vertNormal[h.StartVert])
		tangent[e] = CircularTangent(dir, edgeVec)
	})
}

// CreateTangentsFromNormals fills HalfedgeTangent from the per-corner
// property normal stored at normalIdx, producing circular arcs everywhere
// the normal is continuous. Where the normal jumps across exactly two
// half-edges around a vertex, those two get a shared crease tangent and the
// rest of the fan is zeroed; where it jumps across more than two, every
// tangent around the vertex is zeroed.
func (m *Mesh) CreateTangentsFromNormals(normalIdx int) {
	numVert := m.NumVert()
	numHalfedge := len(m.Halfedge)
	m.HalfedgeTangent = make([]Vec4, numHalfedge)

	vertNormal := make([]Vec3, numVert)
	// vertSharpHalfedge[v] holds up to two half-edges around v where the
	// property normal changes; (-1, -1) means smooth.
	vertSharpHalfedge := make([][2]int, numVert)
	for i := range vertSharpHalfedge {
		vertSharpHalfedge[i] = [2]int{-1, -1}
	}

	getNormal := func(halfedge int) Vec3 { return m.getNormal(halfedge, normalIdx) }

	seen := make([]bool, numVert)
	for e := 0; e < numHalfedge; e++ {
		v := m.Halfedge[e].StartVert
		if seen[v] {
			continue
		}
		sharp := &vertSharpHalfedge[v]
		if sharp[0] >= 0 && sharp[1] >= 0 {
			continue
		}
		seen[v] = true

		idx := 0
		tol := m.opts.tolerance
		var lastNormal Vec3
		forVertPairwise(m, e, getNormal, func(halfedge int, normal, nextNormal Vec3) {
			diff := nextNormal.Sub(normal)
			if diff.Dot(diff) > tol*tol {
				if idx > 1 {
					sharp[0] = -1
				} else {
					sharp[idx] = halfedge
					idx++
				}
			}
			lastNormal = normal
		})
		vertNormal[v] = lastNormal
	}

	policy := m.opts.resolvePolicy(numHalfedge)
	smoothBezier(m.Halfedge, m.VertPos, m.FaceNormal, vertNormal, m.HalfedgeTangent, policy)

	for v := 0; v < numVert; v++ {
		first, second := vertSharpHalfedge[v][0], vertSharpHalfedge[v][1]
		if second == -1 {
			continue
		}
		if first != -1 {
			// Make continuous edge.
			newTangent := m.getNormal(first, normalIdx).Cross(m.getNormal(second, normalIdx))
			newTangent = SafeNormalize(newTangent)
			if !isFinite(newTangent[0]) {
				continue
			}
			m.HalfedgeTangent[first] = CircularTangent(newTangent,
				m.VertPos[m.Halfedge[first].EndVert].Sub(m.VertPos[v]))
			m.HalfedgeTangent[second] = CircularTangent(newTangent.Mul(-1),
				m.VertPos[m.Halfedge[second].EndVert].Sub(m.VertPos[v]))

			m.ForVertHalfedges(first, func(current int) {
				if current != first && current != second {
					m.HalfedgeTangent[current] = Vec4{}
				}
			})
		} else {
			// Sharpen vertex uniformly.
			m.ForVertHalfedges(second, func(current int) {
				m.HalfedgeTangent[current] = Vec4{}
			})
		}
	}
}

// getNormal reads the normal stored at offset normalIdx of the property row
// used at the corner that halfedge starts.
func (m *Mesh) getNormal(halfedge, normalIdx int) Vec3 {
	tri := halfedge / 3
	j := halfedge % 3
	prop := m.relation.TriProperties[tri][j]
	base := prop * m.relation.NumProp
	return Vec3{
		m.relation.Properties[base+normalIdx],
		m.relation.Properties[base+normalIdx+1],
		m.relation.Properties[base+normalIdx+2],
	}
}

// smoothnessPair holds the forward and backward Smoothness of one undirected
// edge, defaulting a missing side to fully smooth (1).
type smoothnessPair struct {
	forward, backward Smoothness
}

// CreateTangentsFromSharpened fills HalfedgeTangent using the vertex normal
// field, then narrows tangents along the given sharpened edges (plus every
// flat-face boundary) so that curvature concentrates at creases instead of
// oscillating across them.
func (m *Mesh) CreateTangentsFromSharpened(sharpenedEdges []Smoothness) {
	numHalfedge := len(m.Halfedge)
	m.HalfedgeTangent = make([]Vec4, numHalfedge)

	flatFaces := m.FlatFaces()
	vertFlatFace := m.VertFlatFace(flatFaces)
	vertNormal := make([]Vec3, len(m.VertNormal))
	copy(vertNormal, m.VertNormal)
	for v := range vertNormal {
		if vertFlatFace[v] >= 0 {
			vertNormal[v] = m.FaceNormal[vertFlatFace[v]]
		}
	}

	policy := m.opts.resolvePolicy(numHalfedge)
	smoothBezier(m.Halfedge, m.VertPos, m.FaceNormal, vertNormal, m.HalfedgeTangent, policy)

	sharpened := append([]Smoothness(nil), sharpenedEdges...)
	for tri := 0; tri < m.NumTri(); tri++ {
		if !flatFaces[tri] {
			continue
		}
		for j := 0; j < 3; j++ {
			tri2 := m.Halfedge[3*tri+j].PairedHalfedge / 3
			if !flatFaces[tri2] || !m.relation.TriRef[tri].SameFace(m.relation.TriRef[tri2]) {
				sharpened = append(sharpened, Smoothness{Halfedge: 3*tri + j, Smoothness: 0})
			}
		}
	}
	if len(sharpened) == 0 {
		return
	}

	// Combine forward/backward pairs, taking the minimum smoothness on
	// duplicates and defaulting the missing side to fully smooth.
	edges := make(map[int]*smoothnessPair)
	edgeKeys := make([]int, 0, len(sharpened))
	for _, edge := range sharpened {
		if edge.Smoothness >= 1 {
			continue
		}
		forward := m.Halfedge[edge.Halfedge].IsForward()
		pair := m.Halfedge[edge.Halfedge].PairedHalfedge
		idx := edge.Halfedge
		if !forward {
			idx = pair
		}
		p, ok := edges[idx]
		if !ok {
			p = &smoothnessPair{}
			if forward {
				p.forward = edge
				p.backward = Smoothness{Halfedge: pair, Smoothness: 1}
			} else {
				p.backward = edge
				p.forward = Smoothness{Halfedge: pair, Smoothness: 1}
			}
			edges[idx] = p
			edgeKeys = append(edgeKeys, idx)
		} else {
			if forward {
				p.forward.Smoothness = math.Min(p.forward.Smoothness, edge.Smoothness)
			} else {
				p.backward.Smoothness = math.Min(p.backward.Smoothness, edge.Smoothness)
			}
		}
	}
	sort.Ints(edgeKeys)

	type dirPair struct{ this, other Smoothness }
	vertTangents := make(map[int][]dirPair)
	vertOrder := make([]int, 0, 2*len(edgeKeys))
	addVert := func(v int, p dirPair) {
		if _, ok := vertTangents[v]; !ok {
			vertOrder = append(vertOrder, v)
		}
		vertTangents[v] = append(vertTangents[v], p)
	}
	for _, idx := range edgeKeys {
		e := edges[idx]
		addVert(m.Halfedge[e.forward.Halfedge].StartVert, dirPair{e.forward, e.backward})
		addVert(m.Halfedge[e.backward.Halfedge].StartVert, dirPair{e.backward, e.forward})
	}
	sort.Ints(vertOrder)

	tangent := m.HalfedgeTangent
	for _, v := range vertOrder {
		vert := vertTangents[v]
		if len(vert) == 1 {
			continue
		}
		if len(vert) == 2 {
			first := vert[0].this.Halfedge
			second := vert[1].this.Halfedge
			newTangent := SafeNormalize(vec4XYZ(tangent[first]).Sub(vec4XYZ(tangent[second])))
			pos := m.VertPos[m.Halfedge[first].StartVert]
			tangent[first] = CircularTangent(newTangent, m.VertPos[m.Halfedge[first].EndVert].Sub(pos))
			tangent[second] = CircularTangent(newTangent.Mul(-1), m.VertPos[m.Halfedge[second].EndVert].Sub(pos))

			smoothHalf := func(first, last int, smoothness float64) {
				current := NextHalfedge(m.Halfedge[first].PairedHalfedge)
				for current != last {
					tangent[current] = tangent[current].Mul(smoothness)
					current = NextHalfedge(m.Halfedge[current].PairedHalfedge)
				}
			}
			smoothHalf(first, second, (vert[0].other.Smoothness+vert[1].this.Smoothness)/2)
			smoothHalf(second, first, (vert[1].other.Smoothness+vert[0].this.Smoothness)/2)
		} else {
			smoothness := 0.0
			for _, pair := range vert {
				smoothness += pair.this.Smoothness
				smoothness += pair.other.Smoothness
			}
			smoothness /= 2 * float64(len(vert))

			start := vert[0].this.Halfedge
			current := start
			for {
				tangent[current] = tangent[current].Mul(smoothness)
				current = NextHalfedge(m.Halfedge[current].PairedHalfedge)
				if current == start {
					break
				}
			}
		}
	}
}

// SharpenEdges emits both directions of every edge whose dihedral exceeds
// minSharpAngleDeg, each assigned minSmoothness.
func (m *Mesh) SharpenEdges(minSharpAngleDeg, minSmoothness float64) []Smoothness {
	var sharpened []Smoothness
	minRadians := minSharpAngleDeg * math.Pi / 180
	for e := 0; e < len(m.Halfedge); e++ {
		if !m.Halfedge[e].IsForward() {
			continue
		}
		pair := m.Halfedge[e].PairedHalfedge
		dihedral := math.Acos(clampUnit(m.FaceNormal[e/3].Dot(m.FaceNormal[pair/3])))
		if dihedral > minRadians {
			sharpened = append(sharpened, Smoothness{Halfedge: e, Smoothness: minSmoothness})
			sharpened = append(sharpened, Smoothness{Halfedge: pair, Smoothness: minSmoothness})
		}
	}
	return sharpened
}

// UpdateSharpenedEdges remaps a caller's sharpened-edge list, whose
// half-edge ids reference an earlier triangle ordering (before boolean or
// hull operations resorted triangles), to the current triangle ids via
// triRef.tri.
func (m *Mesh) UpdateSharpenedEdges(sharpenedEdges []Smoothness) []Smoothness {
	oldHalfedgeToNew := make(map[int]int, len(m.Halfedge))
	for tri := 0; tri < m.NumTri(); tri++ {
		oldTri := m.relation.TriRef[tri].Tri
		for i := 0; i < 3; i++ {
			oldHalfedgeToNew[3*oldTri+i] = 3*tri + i
		}
	}
	newSharp := make([]Smoothness, len(sharpenedEdges))
	for i, edge := range sharpenedEdges {
		edge.Halfedge = oldHalfedgeToNew[edge.Halfedge]
		newSharp[i] = edge
	}
	return newSharp
}
