package parallel

import (
	"sync/atomic"
	"testing"
)

func TestAutoPolicy(t *testing.T) {
	if AutoPolicy(10) != Sequential {
		t.Error("AutoPolicy(10) should be Sequential")
	}
	if AutoPolicy(SequentialThreshold+1) != Parallel {
		t.Error("AutoPolicy(threshold+1) should be Parallel")
	}
}

func TestForEachN_Sequential_VisitsEveryIndex(t *testing.T) {
	n := 100
	seen := make([]bool, n)
	ForEachN(Sequential, n, func(i int) { seen[i] = true })
	for i, s := range seen {
		if !s {
			t.Fatalf("index %d not visited", i)
		}
	}
}

func TestForEachN_Parallel_VisitsEveryIndex(t *testing.T) {
	n := 50000
	var count atomic.Int64
	seen := make([]int32, n)
	ForEachN(Parallel, n, func(i int) {
		seen[i] = 1
		count.Add(1)
	})
	if count.Load() != int64(n) {
		t.Fatalf("count = %d, want %d", count.Load(), n)
	}
	for i, s := range seen {
		if s != 1 {
			t.Fatalf("index %d not visited exactly once", i)
		}
	}
}

func TestForEachN_ZeroN(t *testing.T) {
	ForEachN(Parallel, 0, func(i int) { t.Fatal("fn should not be called for n=0") })
}

func TestExclusiveScan(t *testing.T) {
	in := []int{1, 2, 3, 4}
	got := ExclusiveScan(in, 10)
	want := []int{10, 11, 13, 16}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ExclusiveScan()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestExclusiveScan_Empty(t *testing.T) {
	got := ExclusiveScan(nil, 5)
	if len(got) != 0 {
		t.Fatalf("ExclusiveScan(nil) = %v, want empty", got)
	}
}
