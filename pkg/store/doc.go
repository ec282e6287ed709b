// Package store holds linkfarm's persistent record of what it manages.
//
// The store is a map from target path to source path. It contains every link
// and directory linkfarm created (or confirmed) and has not yet retired, and
// nothing else. It is the sole authority for deciding whether a path in the
// target tree is managed.
//
// A Store is loaded once per invocation, mutated in memory while packages are
// processed, and written back atomically at the end of a non-dry run. The file
// is a msgpack map of strings.
package store
