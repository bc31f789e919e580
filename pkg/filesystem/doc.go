// Package filesystem provides filesystem implementations for plugboot.
//
// This package contains the FS interface used by the path registry, the
// downloader and the weights copy, with an OS-backed implementation and an
// afero-backed one used by tests.
package filesystem
