package trimesh

import "github.com/gogpu/trimesh/internal/parallel"

// MeshOption configures a Mesh during construction.
// Use functional options to customize construction behavior.
//
// Example:
//
//	// Default construction
//	m := trimesh.New(vertPos, triVerts)
//
//	// Force sequential execution (useful for deterministic tests)
//	m := trimesh.New(vertPos, triVerts, trimesh.WithPolicy(parallel.Sequential))
type MeshOption func(*meshOptions)

// meshOptions holds optional configuration for Mesh construction.
type meshOptions struct {
	policy    parallel.Policy
	tolerance float64
}

// defaultMeshOptions returns the default mesh construction options.
func defaultMeshOptions() meshOptions {
	return meshOptions{
		policy:    -1, // unset: AutoPolicy(n) decides per pass
		tolerance: 1e-12,
	}
}

// WithPolicy overrides the automatic sequential/parallel selection for every
// bulk pass the Mesh runs (tangent construction, refinement); SetNormals
// always runs sequentially. Pass parallel.Sequential for deterministic iteration order in
// tests; leave unset in production to let AutoPolicy size the work.
func WithPolicy(p parallel.Policy) MeshOption {
	return func(o *meshOptions) {
		o.policy = p
	}
}

// WithTolerance sets the absolute tolerance CreateTangentsFromNormals uses to
// decide whether two adjacent corner normals differ (their squared
// difference is compared against tol*tol). The default, 1e-12,
// matches the source library's kTolerance.
func WithTolerance(tol float64) MeshOption {
	return func(o *meshOptions) {
		o.tolerance = tol
	}
}

// resolvePolicy returns the configured policy for a pass of n elements,
// falling back to AutoPolicy when no explicit policy was set.
func (o meshOptions) resolvePolicy(n int) parallel.Policy {
	if o.policy == parallel.Sequential || o.policy == parallel.Parallel {
		return o.policy
	}
	return parallel.AutoPolicy(n)
}
