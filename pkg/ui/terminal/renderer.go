// Package terminal provides rich terminal output with colors and tables
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/linkfarm/pkg/types"
	"github.com/arthur-debert/linkfarm/pkg/ui/report"
	"github.com/arthur-debert/linkfarm/pkg/ui/styles"
	"github.com/pterm/pterm"
)

// Renderer provides styled terminal output
type Renderer struct {
	output io.Writer
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w}
}

// RenderRun renders a styled block per package
func (r *Renderer) RenderRun(result *types.RunResult) error {
	run := report.FromRun(result)
	var b strings.Builder

	if run.DryRun {
		b.WriteString(styles.Render("DryRunBanner", "DRY RUN: nothing was changed"))
		b.WriteString("\n")
	}

	for _, pkg := range run.Packages {
		summary := styles.Render("Success", report.Summary(pkg.Counts))
		if pkg.Failed {
			summary = styles.Render("Error", report.Summary(pkg.Counts))
		}
		fmt.Fprintf(&b, "%s %s %s %s  %s\n",
			styles.Render("Header", run.Command),
			styles.Render("Package", pkg.Package),
			styles.Render("Muted", "->"),
			styles.Render("Path", pkg.Target),
			summary)

		var lines []string
		if pkg.Error != "" {
			lines = append(lines, styles.Render("Error", "error: ")+pkg.Error)
		}
		if z := pkg.Zombies; z != nil {
			verb := "removed"
			if run.DryRun {
				verb = "would have removed"
			}
			for _, p := range append(append([]string{}, z.Links...), z.Dirs...) {
				lines = append(lines, styles.Render("Warning", verb+" zombie ")+p)
			}
			for _, p := range z.Forgotten {
				lines = append(lines, styles.Render("Muted", "forgot ")+p)
			}
		}
		for _, l := range pkg.Links {
			switch {
			case l.Action == string(types.ActionConflict):
				lines = append(lines, styles.Render("Error", "conflict ")+l.Target+styles.Render("Muted", " ("+l.Reason+")"))
			case l.Error != "":
				lines = append(lines, styles.Render("Error", "error ")+l.Target+": "+l.Error)
			case l.Visible():
				lines = append(lines, styles.Render("Success", report.Verb(l.Action, run.DryRun)+" ")+l.Target)
			}
		}
		for _, line := range lines {
			b.WriteString(styles.Render("Indent", line))
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(r.output, b.String())
	return err
}

// RenderStatus renders the recorded links as a table
func (r *Renderer) RenderStatus(entries []types.StatusEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(r.output, styles.Render("Muted", "No links recorded"))
		return err
	}

	data := pterm.TableData{{"State", "Target", "Source"}}
	for _, e := range entries {
		data = append(data, []string{stateLabel(e.State), e.Target, e.Source})
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(r.output, table)
	return err
}

func stateLabel(state types.StatusState) string {
	switch state {
	case types.StatusLinked, types.StatusDir:
		return styles.Render("Success", string(state))
	case types.StatusBroken, types.StatusReplaced:
		return styles.Render("Error", string(state))
	default:
		return styles.Render("Warning", string(state))
	}
}

// RenderError renders an error in the error style
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintln(r.output, styles.Render("Error", "Error:")+" "+err.Error())
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
