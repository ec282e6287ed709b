// Package filesystem provides filesystem implementations for linkfarm.
//
// This package contains the implementation of the types.FS interface backed
// by the operating system. Tests wrap it with fault injection from
// pkg/testutil.
package filesystem
