// Package trimesh provides the smoothing and refinement core of a manifold
// triangle-mesh engine: half-edge topology, PN-triangle tangent construction,
// crease-aware normal splitting, and Bezier-patch subdivision.
//
// # Overview
//
// trimesh operates on an indexed triangle mesh stored as a flat array of
// vertex positions and a flat array of half-edges (three per triangle, in
// forward-CCW order). Given per-vertex or per-halfedge smoothness weights it
// builds circular-arc tangents, splits normals across crease edges, and
// refines each triangle into a finer mesh whose new vertices are interpolated
// off a cubic PN-triangle patch rather than linearly off the flat triangle.
//
// # Quick Start
//
//	m := trimesh.New(vertPos, triVerts)
//	m.SetNormals(0, 60)
//	m.CreateTangentsFromNormals(0)
//	err := m.Refine(func(edge trimesh.Vec3) int {
//		return int(edge.Len() / targetEdgeLength)
//	})
//
// # Architecture
//
//   - Public API: Mesh, Halfedge, TriRef, Smoothness, Barycentric
//   - internal/cache: memoized partition lookup keyed on edge division counts
//   - internal/parallel: bulk data-parallel fan-out over flat index ranges
//
// # Coordinate System
//
// Positions and normals are ordinary right-handed 3D vectors (github.com/
// go-gl/mathgl/mgl64.Vec3); no screen-space or projection convention applies.
package trimesh

// Version information.
const (
	// Version is the current version of the library.
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version.
	VersionMajor = 0

	// VersionMinor is the minor version.
	VersionMinor = 1

	// VersionPatch is the patch version.
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier.
	VersionPrerelease = "alpha.1"
)
