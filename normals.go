package trimesh

import "math"

// FlatFaces marks triangle t flat iff at least two of its three edge
// neighbors trace back to the same original face. Each matching neighbor is
// also marked flat.
//
// A pair of coplanar triangles alone is not enough to mark either flat: the
// asymmetry (two matches promote three triangles, one match promotes none)
// is preserved from the source algorithm because a lone matching pair
// doesn't yet establish that a face, rather than an incidental coplanar
// coincidence, is present.
func (m *Mesh) FlatFaces() []bool {
	numTri := m.NumTri()
	flat := make([]bool, numTri)
	for tri := 0; tri < numTri; tri++ {
		ref := m.relation.TriRef[tri]
		faceNeighbors := 0
		var faceTris [3]int
		faceTris[0], faceTris[1], faceTris[2] = -1, -1, -1
		for j := 0; j < 3; j++ {
			neighborTri := m.Halfedge[m.Halfedge[3*tri+j].PairedHalfedge].Face
			if m.relation.TriRef[neighborTri].SameFace(ref) {
				faceNeighbors++
				faceTris[j] = neighborTri
			}
		}
		if faceNeighbors > 1 {
			flat[tri] = true
			for j := 0; j < 3; j++ {
				if faceTris[j] >= 0 {
					flat[faceTris[j]] = true
				}
			}
		}
	}
	return flat
}

// VertFlatFace returns, per vertex, the id of a neighboring flat-face
// triangle if exactly one distinct flat face surrounds the vertex, -1 if
// none, or -2 if more than one distinct flat face meets there.
func (m *Mesh) VertFlatFace(flatFaces []bool) []int {
	vertFlatFace := make([]int, m.NumVert())
	for i := range vertFlatFace {
		vertFlatFace[i] = -1
	}
	vertRef := make([]TriRef, m.NumVert())
	for i := range vertRef {
		vertRef[i] = TriRef{OriginalID: -1, Tri: -1}
	}
	for tri := 0; tri < m.NumTri(); tri++ {
		if !flatFaces[tri] {
			continue
		}
		for j := 0; j < 3; j++ {
			vert := m.Halfedge[3*tri+j].StartVert
			if vertRef[vert].SameFace(m.relation.TriRef[tri]) {
				continue
			}
			vertRef[vert] = m.relation.TriRef[tri]
			if vertFlatFace[vert] == -1 {
				vertFlatFace[vert] = tri
			} else {
				vertFlatFace[vert] = -2
			}
		}
	}
	return vertFlatFace
}

// faceSplit reports whether the two faces on either side of an edge are a
// flat/non-flat mismatch, or two distinct flat faces meeting edge-to-edge.
func faceSplit(m *Mesh, triIsFlatFace []bool, tri1, tri2 int) bool {
	if triIsFlatFace[tri1] != triIsFlatFace[tri2] {
		return true
	}
	if triIsFlatFace[tri1] && triIsFlatFace[tri2] &&
		!m.relation.TriRef[tri1].SameFace(m.relation.TriRef[tri2]) {
		return true
	}
	return false
}

// SetNormals writes three floats starting at property offset normalIdx for
// every property vertex, splitting property vertices across dihedral
// creases (and flat-face boundaries) above minSharpAngleDeg so that smooth
// regions keep one shared normal while sharp regions get distinct ones on
// each side.
func (m *Mesh) SetNormals(normalIdx int, minSharpAngleDeg float64) {
	if m.IsEmpty() || normalIdx < 0 {
		return
	}

	oldNumProp := m.relation.NumProp
	numTri := m.NumTri()

	triIsFlatFace := m.FlatFaces()
	vertFlatFace := m.VertFlatFace(triIsFlatFace)
	vertNumSharp := make([]int, m.NumVert())
	for e := 0; e < len(m.Halfedge); e++ {
		if !m.Halfedge[e].IsForward() {
			continue
		}
		pair := m.Halfedge[e].PairedHalfedge
		tri1, tri2 := e/3, pair/3
		dihedral := math.Acos(clampUnit(m.FaceNormal[tri1].Dot(m.FaceNormal[tri2]))) * 180 / math.Pi
		if dihedral > minSharpAngleDeg {
			vertNumSharp[m.Halfedge[e].StartVert]++
			vertNumSharp[m.Halfedge[e].EndVert]++
		} else {
			split := faceSplit(m, triIsFlatFace, tri1, tri2)
			if vertFlatFace[m.Halfedge[e].StartVert] == -2 && split {
				vertNumSharp[m.Halfedge[e].StartVert]++
			}
			if vertFlatFace[m.Halfedge[e].EndVert] == -2 && split {
				vertNumSharp[m.Halfedge[e].EndVert]++
			}
		}
	}

	numProp := oldNumProp
	if normalIdx+3 > numProp {
		numProp = normalIdx + 3
	}
	numPropVertOld := m.NumPropVert()
	if oldNumProp == 0 {
		// No property table yet: one row per vertex, matching the StartVert
		// defaults given to TriProperties below.
		numPropVertOld = m.NumVert()
	}
	oldProperties := m.relation.Properties
	m.relation.Properties = make([]float64, numProp*numPropVertOld)
	m.relation.NumProp = numProp

	if len(m.relation.TriProperties) == 0 {
		m.relation.TriProperties = make([][3]int, numTri)
		for tri := 0; tri < numTri; tri++ {
			for j := 0; j < 3; j++ {
				m.relation.TriProperties[tri][j] = m.Halfedge[3*tri+j].StartVert
			}
		}
	}
	oldTriProp := make([][3]int, numTri)
	for i := range oldTriProp {
		oldTriProp[i] = [3]int{-1, -1, -1}
	}
	oldTriProp, m.relation.TriProperties = m.relation.TriProperties, oldTriProp

	for tri := 0; tri < numTri; tri++ {
		for i := 0; i < 3; i++ {
			if m.relation.TriProperties[tri][i] >= 0 {
				continue
			}
			current := 3*tri + i
			startEdge := current
			vert := m.Halfedge[current].StartVert

			if vertNumSharp[vert] < 2 {
				var normal Vec3
				if vertFlatFace[vert] >= 0 {
					normal = m.FaceNormal[vertFlatFace[vert]]
				} else {
					normal = m.VertNormal[vert]
				}
				lastProp := -1
				for {
					current = NextHalfedge(m.Halfedge[current].PairedHalfedge)
					thisTri := current / 3
					j := current - 3*thisTri
					prop := oldTriProp[thisTri][j]
					m.relation.TriProperties[thisTri][j] = prop
					if prop != lastProp {
						lastProp = prop
						m.copyPropertyRow(oldProperties, oldNumProp, prop, numProp)
						m.setNormalAt(prop, numProp, normalIdx, normal)
					}
					if current == startEdge {
						break
					}
				}
			} else {
				current = m.setNormalsCreased(current, startEdge, vert, normalIdx, numProp, oldNumProp,
					triIsFlatFace, oldTriProp, oldProperties, minSharpAngleDeg)
			}
		}
	}
}

// copyPropertyRow copies row prop of the old (narrower) property table into
// the new (possibly wider) table at the same row index.
func (m *Mesh) copyPropertyRow(oldProperties []float64, oldNumProp, prop, numProp int) {
	src := oldProperties[prop*oldNumProp : prop*oldNumProp+oldNumProp]
	dst := m.relation.Properties[prop*numProp : prop*numProp+oldNumProp]
	copy(dst, src)
}

// setNormalAt writes normal into the three floats starting at normalIdx of
// property row prop.
func (m *Mesh) setNormalAt(prop, numProp, normalIdx int, normal Vec3) {
	base := prop*numProp + normalIdx
	m.relation.Properties[base] = normal[0]
	m.relation.Properties[base+1] = normal[1]
	m.relation.Properties[base+2] = normal[2]
}

// setNormalsCreased handles the >= 2 sharp neighbors case of SetNormals: it
// finds the fan groups separated by creases or face-boundary splits,
// accumulates an angle-weighted face normal per group, then walks the fan a
// second time allocating a fresh property vertex whenever the group changes.
// It returns the half-edge the walk ends on (unused by the caller, mirroring
// the source's do-while structure).
func (m *Mesh) setNormalsCreased(current, startEdge, vert, normalIdx, numProp, oldNumProp int,
	triIsFlatFace []bool, oldTriProp [][3]int, oldProperties []float64, minSharpAngleDeg float64) int {

	centerPos := m.VertPos[vert]
	var group []int
	var normals []Vec3
	prevFace := m.Halfedge[current].Face

	for {
		next := NextHalfedge(m.Halfedge[current].PairedHalfedge)
		face := m.Halfedge[next].Face
		dihedral := math.Acos(clampUnit(m.FaceNormal[face].Dot(m.FaceNormal[prevFace]))) * 180 / math.Pi
		if dihedral > minSharpAngleDeg || faceSplit(m, triIsFlatFace, face, prevFace) {
			break
		}
		current = next
		prevFace = face
		if current == startEdge {
			break
		}
	}
	endEdge := current
	prevEdgeVec := SafeNormalize(m.VertPos[m.Halfedge[current].EndVert].Sub(centerPos))

	for {
		current = NextHalfedge(m.Halfedge[current].PairedHalfedge)
		face := m.Halfedge[current].Face
		dihedral := math.Acos(clampUnit(m.FaceNormal[face].Dot(m.FaceNormal[prevFace]))) * 180 / math.Pi
		if dihedral > minSharpAngleDeg || faceSplit(m, triIsFlatFace, face, prevFace) {
			normals = append(normals, Vec3{})
		}
		group = append(group, len(normals)-1)

		edgeVec := SafeNormalize(m.VertPos[m.Halfedge[current].EndVert].Sub(centerPos))
		dot := prevEdgeVec.Dot(edgeVec)
		var phi float64
		switch {
		case dot >= 1:
			phi = 0
		case dot <= -1:
			phi = math.Pi
		default:
			phi = math.Acos(dot)
		}
		last := len(normals) - 1
		normals[last] = normals[last].Add(m.FaceNormal[face].Mul(phi))

		prevFace = face
		prevEdgeVec = edgeVec
		if current == endEdge {
			break
		}
	}

	for i := range normals {
		normals[i] = SafeNormalize(normals[i])
	}

	lastGroup := 0
	lastProp := -1
	newProp := -1
	idx := 0
	for {
		current = NextHalfedge(m.Halfedge[current].PairedHalfedge)
		thisTri := current / 3
		j := current - 3*thisTri
		prop := oldTriProp[thisTri][j]

		switch {
		case group[idx] != lastGroup && group[idx] != 0 && prop == lastProp:
			lastGroup = group[idx]
			newProp = m.NumPropVert()
			m.relation.Properties = append(m.relation.Properties, make([]float64, numProp)...)
			src := oldProperties[prop*oldNumProp : prop*oldNumProp+oldNumProp]
			dst := m.relation.Properties[newProp*numProp : newProp*numProp+oldNumProp]
			copy(dst, src)
			m.setNormalAt(newProp, numProp, normalIdx, normals[group[idx]])
		case prop != lastProp:
			lastProp = prop
			newProp = prop
			m.copyPropertyRow(oldProperties, oldNumProp, prop, numProp)
			m.setNormalAt(prop, numProp, normalIdx, normals[group[idx]])
		}

		m.relation.TriProperties[thisTri][j] = newProp
		idx++
		if current == endEdge {
			break
		}
	}
	return current
}
