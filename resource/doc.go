// Package resource bounds the memory, concurrency and IO bandwidth used by a Store.
//
// Controller implements arena.MemoryAcquirer, so arenas created by a Store
// charge every chunk against the shared memory limit.
package resource
