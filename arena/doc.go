// Package arena provides a bump allocator together with the containers that live
// inside it: Array, Box, BoxedSlice, BoxedStr and Cell.
//
// # Ownership
//
// An Arena has a single owner and is not safe for concurrent use. Memory is only
// released as a whole through Reset or Free; there is no per-object free. Growing
// an Array orphans its previous storage inside the arena.
//
// # Pointer rules
//
// Arena chunks are not scanned by the garbage collector. A value stored in an arena
// may only point into the same arena or into static data (string literals, type
// descriptors). The arena must stay reachable for as long as any value derived
// from it is in use.
//
// # Off-heap chunks
//
// WithOffHeap backs chunks with anonymous mappings instead of Go heap memory.
// Chunks are then returned to the OS by Free.
package arena
