// Package fs abstracts the file system calls behind atomic unit writes.
//
// [LocalFS] is the production implementation. [FaultyFS] wraps another
// FileSystem and fails writes, syncs, closes or renames for paths that match
// a rule, which lets tests observe what a crash mid-commit leaves behind:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule(".tmp-", fs.Fault{FailAfterBytes: -1, FailOnSync: true})
//
// Calls take no context. Local file operations cannot be interrupted at the
// syscall level; remote stores go through blobstore, which does.
package fs
