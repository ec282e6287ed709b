package types

import (
	"fmt"
)

// LinkResult represents the outcome of executing a single decision
type LinkResult struct {
	// Decision that was executed
	Decision Decision

	// Applied is true when the action took effect (or would have, on a dry run)
	Applied bool

	// DryRun is true when nothing was actually changed
	DryRun bool

	// Err contains the conflict, adoption or filesystem error, if any
	Err error
}

// ZombieReport lists what the zombie collector retired for one package
type ZombieReport struct {
	// Links are the removed (or would-be-removed) zombie links
	Links []string

	// Dirs are the removed (or would-be-removed) now-empty managed directories
	Dirs []string

	// Forgotten are store entries retired without touching the filesystem
	Forgotten []string
}

// Total returns the number of retired paths
func (z *ZombieReport) Total() int {
	if z == nil {
		return 0
	}
	return len(z.Links) + len(z.Dirs) + len(z.Forgotten)
}

// Counts summarises the link results of a package
type Counts struct {
	Created   int
	Removed   int
	Adopted   int
	Unchanged int
	Conflicts int
	Errors    int
}

// PackageResult contains the result for a single package
type PackageResult struct {
	// Package is the package path as given
	Package string

	// Target is the absolute target root used for the package
	Target string

	// Command that was run
	Command Command

	// Zombies holds what the zombie collector retired before planning
	Zombies *ZombieReport

	// Links are the per-link results, in plan order
	Links []LinkResult

	// Err is set when the package could not be processed at all
	Err error
}

// Failed reports whether the package failed or any of its links did
func (p *PackageResult) Failed() bool {
	if p.Err != nil {
		return true
	}
	for _, l := range p.Links {
		if l.Err != nil {
			return true
		}
	}
	return false
}

// FirstError returns the package error or the first link error
func (p *PackageResult) FirstError() error {
	if p.Err != nil {
		return p.Err
	}
	for _, l := range p.Links {
		if l.Err != nil {
			return l.Err
		}
	}
	return nil
}

// Counts tallies the link results
func (p *PackageResult) Counts() Counts {
	var c Counts
	for _, l := range p.Links {
		kind := l.Decision.Kind
		switch {
		case kind == ActionConflict:
			c.Conflicts++
		case l.Err != nil || kind == ActionError:
			c.Errors++
		case !l.Applied:
			c.Unchanged++
		case kind == ActionCreateDir || kind == ActionCreateLink:
			c.Created++
		case kind == ActionRemoveDir || kind == ActionRemoveLink:
			c.Removed++
		case kind == ActionAdopt:
			c.Adopted++
		default:
			c.Unchanged++
		}
	}
	return c
}

// RunResult contains the result of one invocation across all packages
type RunResult struct {
	Command  Command
	DryRun   bool
	Packages []PackageResult
}

// Failed reports whether any package failed
func (r *RunResult) Failed() bool {
	for i := range r.Packages {
		if r.Packages[i].Failed() {
			return true
		}
	}
	return false
}

// FailedCount returns how many packages failed
func (r *RunResult) FailedCount() int {
	n := 0
	for i := range r.Packages {
		if r.Packages[i].Failed() {
			n++
		}
	}
	return n
}

// Err returns an error summarising failed packages, or nil
func (r *RunResult) Err() error {
	n := r.FailedCount()
	if n == 0 {
		return nil
	}
	if n == 1 {
		return fmt.Errorf("1 package failed to %s", r.Command)
	}
	return fmt.Errorf("%d packages failed to %s", n, r.Command)
}
