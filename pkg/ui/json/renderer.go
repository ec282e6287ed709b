// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/linkfarm/pkg/types"
	"github.com/arthur-debert/linkfarm/pkg/ui/report"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

// RenderRun renders the run report as JSON
func (r *Renderer) RenderRun(result *types.RunResult) error {
	return r.encoder.Encode(report.FromRun(result))
}

// RenderStatus renders the status entries as a JSON array
func (r *Renderer) RenderStatus(entries []types.StatusEntry) error {
	if entries == nil {
		entries = []types.StatusEntry{}
	}
	return r.encoder.Encode(entries)
}

// RenderError renders an error as JSON
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]string{"error": err.Error()})
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
