// Package cache provides the process-wide, mutex-guarded memoization used by
// the mesh partition cache: a generic key-to-value map whose GetOrCreate
// builds a missing entry outside the lock, with no eviction.
//
// No eviction is deliberate: callers key on a bounded domain (sorted
// per-edge division triples), so the number of distinct entries is bounded
// by the distinct triangle shapes actually refined, not by time or memory
// pressure.
//
//	c := cache.New[[3]int, Partition]()
//	partition := c.GetOrCreate(key, func() Partition { return buildPartition(key) })
//
// Cache is safe for concurrent use; it must not be copied after creation.
package cache
