// Package yaml provides machine-readable YAML output
package yaml

import (
	"io"

	"github.com/arthur-debert/linkfarm/pkg/types"
	"github.com/arthur-debert/linkfarm/pkg/ui/report"
	"gopkg.in/yaml.v3"
)

// Renderer provides YAML output for machine consumption
type Renderer struct {
	output io.Writer
}

// New creates a new YAML renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

func (r *Renderer) encode(v interface{}) error {
	enc := yaml.NewEncoder(r.output)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// RenderRun renders the run report as YAML
func (r *Renderer) RenderRun(result *types.RunResult) error {
	return r.encode(report.FromRun(result))
}

// RenderStatus renders the status entries as a YAML sequence
func (r *Renderer) RenderStatus(entries []types.StatusEntry) error {
	if entries == nil {
		entries = []types.StatusEntry{}
	}
	return r.encode(entries)
}

// RenderError renders an error as YAML
func (r *Renderer) RenderError(err error) error {
	return r.encode(map[string]string{"error": err.Error()})
}

// RenderMessage renders a simple message as YAML
func (r *Renderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": msg})
}
