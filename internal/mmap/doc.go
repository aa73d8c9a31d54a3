// Package mmap maps files and anonymous memory for the arena, archive and
// blobstore packages.
//
// Open maps a file read-only so archive units can be viewed in place. MapAnon
// hands the arena zeroed chunks outside the garbage collector's heap.
//
//	m, err := mmap.Open("main.rkyv", mmap.AdviceRandom)
//	if err != nil { ... }
//	defer m.Close()
//	buf := m.Bytes()
//
// On unix this is mmap(2) and madvise(2). On Windows file views come from
// MapViewOfFile, anonymous memory from VirtualAlloc, and advice is ignored.
//
// Close is idempotent. Slices returned by Bytes must not be touched after it.
package mmap
