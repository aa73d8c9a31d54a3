// Package cache provides in-memory LRU caches for fixed-size blob blocks.
//
// [LRUBlockCache] is a single byte-bounded LRU. [ShardedLRUBlockCache] hashes
// keys over 64 of them for parallel readers. Both can charge a
// [MemoryAccountant], typically a resource.Controller, for cached bytes and
// skip caching when it refuses.
package cache
