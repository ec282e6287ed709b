// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/linkfarm/pkg/types"
	"github.com/arthur-debert/linkfarm/pkg/ui/report"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderRun renders one block per package: a summary line followed by a
// line for every link that changed or failed.
func (r *Renderer) RenderRun(result *types.RunResult) error {
	run := report.FromRun(result)
	w := &writer{out: r.output}

	if run.DryRun {
		w.printf("Dry run: nothing was changed\n")
	}
	for _, pkg := range run.Packages {
		w.printf("%s %s -> %s: %s\n", run.Command, pkg.Package, pkg.Target, report.Summary(pkg.Counts))
		if pkg.Error != "" {
			w.printf("  error: %s\n", pkg.Error)
		}
		if z := pkg.Zombies; z != nil {
			for _, p := range z.Links {
				w.printf("  %s zombie link %s\n", removed(run.DryRun), p)
			}
			for _, p := range z.Dirs {
				w.printf("  %s zombie directory %s\n", removed(run.DryRun), p)
			}
			for _, p := range z.Forgotten {
				w.printf("  forgot %s\n", p)
			}
		}
		for _, l := range pkg.Links {
			switch {
			case l.Action == string(types.ActionConflict):
				w.printf("  conflict %s: %s\n", l.Target, l.Reason)
			case l.Error != "":
				w.printf("  error %s: %s\n", l.Target, l.Error)
			case l.Visible():
				w.printf("  %s %s\n", report.Verb(l.Action, run.DryRun), l.Target)
			}
		}
	}
	return w.err
}

// RenderStatus renders one line per recorded link
func (r *Renderer) RenderStatus(entries []types.StatusEntry) error {
	w := &writer{out: r.output}
	if len(entries) == 0 {
		w.printf("No links recorded\n")
		return w.err
	}
	for _, e := range entries {
		w.printf("%-8s %s -> %s\n", e.State, e.Target, e.Source)
	}
	return w.err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}

func removed(dryRun bool) string {
	if dryRun {
		return "would have removed"
	}
	return "removed"
}

// writer keeps the first write error so callers can print freely
type writer struct {
	out io.Writer
	err error
}

func (w *writer) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.out, format, args...)
}
