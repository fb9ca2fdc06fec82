// Package fs abstracts the file operations of the local blob store so tests
// can inject failures.
//
//   - [LocalFS]: production implementation on the os package
//   - [FaultyFS]: wraps another FileSystem and fails writes, syncs or closes
//     of matching files
//
// Production code uses fs.Default:
//
//	f, err := fs.Default.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
//
// Tests inject a FaultyFS:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("timings", fs.Fault{FailAfterBytes: 64})
//	store := blobstore.NewLocalStoreFS(dir, ffs)
package fs
