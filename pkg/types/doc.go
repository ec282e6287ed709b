// Package types defines the core types shared across linkfarm.
// This includes the planned Link, the tagged ActionKind decided for each
// link, the per-link, per-package and per-run results, the resolved Options
// record consumed by the engine, and the FS interface every component uses to
// touch the filesystem.
package types
