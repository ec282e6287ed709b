package styles_test

import (
	"testing"

	"github.com/arthur-debert/linkfarm/pkg/ui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleRegistry(t *testing.T) {
	for _, name := range []string{
		"Header", "Package", "Success", "Error", "Warning", "Muted", "Path", "DryRunBanner", "Indent",
	} {
		t.Run(name, func(t *testing.T) {
			_, exists := styles.StyleRegistry[name]
			assert.True(t, exists, "style %s should exist", name)
		})
	}
}

func TestGetStyle(t *testing.T) {
	assert.True(t, styles.GetStyle("Error").GetBold())
	assert.Equal(t, 2, styles.GetStyle("Indent").GetMarginLeft())

	// Unknown names fall back to a plain style
	assert.Equal(t, "text", styles.GetStyle("NoSuchStyle").Render("text"))
}

func TestLoadStylesFromData(t *testing.T) {
	saved := styles.StyleRegistry
	t.Cleanup(func() { styles.StyleRegistry = saved })

	data := []byte(`
colors:
  accent:
    light: "#000000"
    dark: "#FFFFFF"
styles:
  Accent:
    bold: true
    foreground: accent
`)
	require.NoError(t, styles.LoadStylesFromData(data))
	assert.Len(t, styles.StyleRegistry, 1)
	assert.True(t, styles.GetStyle("Accent").GetBold())
	assert.Equal(t, lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}, styles.GetStyle("Accent").GetForeground())

	assert.Error(t, styles.LoadStylesFromData([]byte("styles: [")))
}
