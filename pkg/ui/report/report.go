// Package report converts engine results into the flat records every
// renderer shows. Errors become strings so the records serialise cleanly.
package report

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/linkfarm/pkg/types"
)

// Run is the rendered form of a types.RunResult
type Run struct {
	Command  string    `json:"command" yaml:"command"`
	DryRun   bool      `json:"dryRun" yaml:"dryRun"`
	Failed   int       `json:"failed" yaml:"failed"`
	Packages []Package `json:"packages" yaml:"packages"`
}

// Package is the rendered form of a types.PackageResult
type Package struct {
	Package string   `json:"package" yaml:"package"`
	Target  string   `json:"target" yaml:"target"`
	Failed  bool     `json:"failed" yaml:"failed"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
	Counts  Counts   `json:"counts" yaml:"counts"`
	Zombies *Zombies `json:"zombies,omitempty" yaml:"zombies,omitempty"`
	Links   []Link   `json:"links" yaml:"links"`
}

// Counts mirrors types.Counts
type Counts struct {
	Created   int `json:"created" yaml:"created"`
	Removed   int `json:"removed" yaml:"removed"`
	Adopted   int `json:"adopted" yaml:"adopted"`
	Unchanged int `json:"unchanged" yaml:"unchanged"`
	Conflicts int `json:"conflicts" yaml:"conflicts"`
	Errors    int `json:"errors" yaml:"errors"`
}

// Zombies mirrors types.ZombieReport
type Zombies struct {
	Links     []string `json:"links,omitempty" yaml:"links,omitempty"`
	Dirs      []string `json:"dirs,omitempty" yaml:"dirs,omitempty"`
	Forgotten []string `json:"forgotten,omitempty" yaml:"forgotten,omitempty"`
}

// Link is one executed decision
type Link struct {
	Action  string `json:"action" yaml:"action"`
	Source  string `json:"source" yaml:"source"`
	Target  string `json:"target" yaml:"target"`
	Applied bool   `json:"applied" yaml:"applied"`
	Reason  string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// FromRun builds the report for a run
func FromRun(r *types.RunResult) Run {
	out := Run{
		Command:  string(r.Command),
		DryRun:   r.DryRun,
		Failed:   r.FailedCount(),
		Packages: make([]Package, 0, len(r.Packages)),
	}
	for i := range r.Packages {
		out.Packages = append(out.Packages, fromPackage(&r.Packages[i]))
	}
	return out
}

func fromPackage(p *types.PackageResult) Package {
	c := p.Counts()
	out := Package{
		Package: p.Package,
		Target:  p.Target,
		Failed:  p.Failed(),
		Counts:  Counts(c),
		Links:   make([]Link, 0, len(p.Links)),
	}
	if p.Err != nil {
		out.Error = p.Err.Error()
	}
	if p.Zombies.Total() > 0 {
		out.Zombies = &Zombies{
			Links:     p.Zombies.Links,
			Dirs:      p.Zombies.Dirs,
			Forgotten: p.Zombies.Forgotten,
		}
	}
	for _, l := range p.Links {
		link := Link{
			Action:  string(l.Decision.Kind),
			Source:  l.Decision.Link.Source,
			Target:  l.Decision.Link.Target,
			Applied: l.Applied,
			Reason:  l.Decision.Reason,
		}
		if l.Err != nil {
			link.Error = l.Err.Error()
		}
		out.Links = append(out.Links, link)
	}
	return out
}

// Verb describes what an applied action did, or would do on a dry run
func Verb(action string, dryRun bool) string {
	var verb string
	switch types.ActionKind(action) {
	case types.ActionCreateDir:
		verb = "created directory"
	case types.ActionCreateLink:
		verb = "linked"
	case types.ActionAlreadyCorrect:
		verb = "relinked"
	case types.ActionAdopt:
		verb = "adopted"
	case types.ActionRemoveDir:
		verb = "removed directory"
	case types.ActionRemoveLink:
		verb = "unlinked"
	case types.ActionForget:
		verb = "forgot"
	default:
		verb = action
	}
	if dryRun {
		return "would have " + verb
	}
	return verb
}

// Summary renders the non-zero counts, e.g. "2 created, 1 conflict"
func Summary(c Counts) string {
	parts := []string{}
	add := func(n int, one, many string) {
		switch {
		case n == 1:
			parts = append(parts, "1 "+one)
		case n > 1:
			parts = append(parts, fmt.Sprintf("%d %s", n, many))
		}
	}
	add(c.Created, "created", "created")
	add(c.Removed, "removed", "removed")
	add(c.Adopted, "adopted", "adopted")
	add(c.Unchanged, "unchanged", "unchanged")
	add(c.Conflicts, "conflict", "conflicts")
	add(c.Errors, "error", "errors")
	if len(parts) == 0 {
		return "nothing to do"
	}
	return strings.Join(parts, ", ")
}

// Visible reports whether a link deserves its own line in human output
func (l Link) Visible() bool {
	return l.Applied || l.Error != ""
}
