package trimesh

import (
	"testing"

	"github.com/gogpu/trimesh/internal/parallel"
)

func TestDefaultMeshOptions(t *testing.T) {
	o := defaultMeshOptions()
	if o.tolerance != 1e-12 {
		t.Errorf("default tolerance = %v, want 1e-12", o.tolerance)
	}
	if got := o.resolvePolicy(10); got != parallel.Sequential {
		t.Errorf("resolvePolicy(10) = %v, want Sequential (AutoPolicy fallback)", got)
	}
	if got := o.resolvePolicy(parallel.SequentialThreshold + 1); got != parallel.Parallel {
		t.Errorf("resolvePolicy(large) = %v, want Parallel (AutoPolicy fallback)", got)
	}
}

func TestWithPolicyOverridesAutoPolicy(t *testing.T) {
	o := defaultMeshOptions()
	WithPolicy(parallel.Sequential)(&o)

	if got := o.resolvePolicy(parallel.SequentialThreshold + 1); got != parallel.Sequential {
		t.Errorf("resolvePolicy(large) after WithPolicy(Sequential) = %v, want Sequential", got)
	}
}

func TestWithTolerance(t *testing.T) {
	o := defaultMeshOptions()
	WithTolerance(1e-6)(&o)

	if o.tolerance != 1e-6 {
		t.Errorf("tolerance = %v, want 1e-6", o.tolerance)
	}
}
