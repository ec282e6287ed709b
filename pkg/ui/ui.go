// Package ui renders run summaries, status listings and errors for the
// command line. It supports terminal (rich), text (plain), JSON and YAML
// output.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/linkfarm/pkg/errors"
	"github.com/arthur-debert/linkfarm/pkg/types"
	"github.com/arthur-debert/linkfarm/pkg/ui/json"
	"github.com/arthur-debert/linkfarm/pkg/ui/terminal"
	"github.com/arthur-debert/linkfarm/pkg/ui/text"
	"github.com/arthur-debert/linkfarm/pkg/ui/yaml"
)

// Renderer is the common interface for all output renderers
type Renderer interface {
	// RenderRun renders the outcome of a link, unlink or relink run
	RenderRun(result *types.RunResult) error

	// RenderStatus renders the live state of recorded links
	RenderStatus(entries []types.StatusEntry) error

	// RenderError renders an error with appropriate formatting
	RenderError(err error) error

	// RenderMessage renders a simple message
	RenderMessage(msg string) error
}

// NewRenderer creates a renderer for format writing to output.
// FormatAuto inspects output when it is a file and falls back to text.
func NewRenderer(format Format, output io.Writer) (Renderer, error) {
	switch format {
	case FormatAuto:
		if file, ok := output.(*os.File); ok {
			return NewRenderer(DetectFormat(file), output)
		}
		return NewRenderer(FormatText, output)
	case FormatTerminal:
		return terminal.New(output), nil
	case FormatText:
		return text.New(output), nil
	case FormatJSON:
		return json.New(output), nil
	case FormatYAML:
		return yaml.New(output), nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format: %v", format)
	}
}
