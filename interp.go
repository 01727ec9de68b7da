package trimesh

// prev3 retreats a triangle corner index cyclically: 0->2->1->0.
func prev3(i int) int { return (i + 2) % 3 }

// interpTri evaluates the PN-triangle Bezier patch belonging to triangle
// tri of old at barycentric coordinate uvw. The patch reproduces the three
// corner positions exactly and blends three per-corner cubic overlays,
// each weighted by the squared barycentrics of the other two corners, so
// that it fades out toward the two edges meeting at its own corner and alone
// defines the patch along the opposite edge, producing a G1-continuous surface wherever the corner tangents agree
// with their neighbors across an edge.
func interpTri(old *Mesh, tri int, uvw Vec3) Vec3 {
	var pos [3]Vec3
	var tangentR, tangentL [3]Vec4
	for c := 0; c < 3; c++ {
		edge := 3*tri + c
		pos[c] = old.VertPos[old.Halfedge[edge].StartVert]
		tangentR[c] = old.HalfedgeTangent[edge]
	}
	for c := 0; c < 3; c++ {
		prevEdge := 3*tri + prev3(c)
		tangentL[c] = old.HalfedgeTangent[old.Halfedge[prevEdge].PairedHalfedge]
	}

	b := [3]float64{uvw[0], uvw[1], uvw[2]}
	for i := 0; i < 3; i++ {
		if b[i] == 1 {
			return pos[i]
		}
	}

	var sum Vec4
	for i := 0; i < 3; i++ {
		j := next3(i)
		k := next3(j)
		x := b[k] / (1 - b[i])

		c0 := homogeneous(pos[j])
		c1 := homogeneousWeighted(Vec4{
			pos[j][0] + tangentR[j][0], pos[j][1] + tangentR[j][1], pos[j][2] + tangentR[j][2], tangentR[j][3],
		})
		c2 := homogeneousWeighted(Vec4{
			pos[k][0] + tangentL[k][0], pos[k][1] + tangentL[k][1], pos[k][2] + tangentL[k][2], tangentL[k][3],
		})
		c3 := homogeneous(pos[k])
		d, e := cubicBezier2Linear(c0, c1, c2, c3, x)
		end := hNormalize(mixVec4(d, e, x))
		tangentDir := SafeNormalize(hNormalize(e).Sub(hNormalize(d)))

		bitangentJ := SafeNormalize(orthogonalTo(vec4XYZ(tangentL[j]), SafeNormalize(vec4XYZ(tangentR[j]))))
		bitangentK := SafeNormalize(orthogonalTo(vec4XYZ(tangentR[k]), SafeNormalize(vec4XYZ(tangentL[k])).Mul(-1)))
		bitangent := mixVec3(bitangentJ, bitangentK, x)

		normal := SafeNormalize(bitangent.Cross(tangentDir))
		crossTangent := orthogonalTo(mixVec3(vec4XYZ(tangentL[j]), vec4XYZ(tangentR[k]), x), normal)
		deltaW := mixFloat(tangentL[j][3], tangentR[k][3], x)

		midTangent := mixVec4(tangentR[i], tangentL[i], x)
		overlay := [4]Vec4{
			homogeneous(end),
			homogeneousWeighted(Vec4{end[0] + crossTangent[0], end[1] + crossTangent[1], end[2] + crossTangent[2], deltaW}),
			homogeneousWeighted(Vec4{
				pos[i][0] + midTangent[0], pos[i][1] + midTangent[1], pos[i][2] + midTangent[2], midTangent[3],
			}),
			homogeneous(pos[i]),
		}
		p := hNormalize(bezierPoint(overlay, b[i]))

		w := b[j] * b[j] * b[k] * b[k]
		sum[0] += p[0] * w
		sum[1] += p[1] * w
		sum[2] += p[2] * w
		sum[3] += w
	}

	return hNormalize(sum)
}

// cubicBezier2Linear reduces a cubic weighted Bezier curve to the two
// control points of the linear segment produced by two de Casteljau steps
// at parameter x, leaving the final step to the caller.
func cubicBezier2Linear(c0, c1, c2, c3 Vec4, x float64) (Vec4, Vec4) {
	a := mixVec4(c0, c1, x)
	b := mixVec4(c1, c2, x)
	c := mixVec4(c2, c3, x)
	return mixVec4(a, b, x), mixVec4(b, c, x)
}

// bezierPoint evaluates a cubic weighted Bezier curve (given as four
// homogeneous control points) at parameter t via de Casteljau's algorithm.
func bezierPoint(p [4]Vec4, t float64) Vec4 {
	a := mixVec4(p[0], p[1], t)
	b := mixVec4(p[1], p[2], t)
	c := mixVec4(p[2], p[3], t)
	d := mixVec4(a, b, t)
	e := mixVec4(b, c, t)
	return mixVec4(d, e, t)
}
