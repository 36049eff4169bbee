// Package matugen drives the matugen palette generator, which renders the
// user's application templates from a seed color or image.
package matugen

import (
	"context"

	"github.com/chromash/chromash/pkg/command"
	"github.com/chromash/chromash/pkg/theme"
)

// Generator invokes matugen through a command.Runner.
type Generator struct {
	runner command.Runner
	binary string
}

// New returns a generator running binary ("matugen" when empty).
func New(r command.Runner, binary string) *Generator {
	if binary == "" {
		binary = "matugen"
	}
	return &Generator{runner: r, binary: binary}
}

// FromColor generates a theme seeded by a six-digit hex color.
func (g *Generator) FromColor(ctx context.Context, hex string, mode theme.ColorMode, scheme theme.SchemeType) error {
	_, err := g.runner.Run(ctx, g.binary, args(mode, scheme, "color", "hex", hex)...)
	return err
}

// FromImage generates a theme from the image at path.
func (g *Generator) FromImage(ctx context.Context, path string, mode theme.ColorMode, scheme theme.SchemeType) error {
	_, err := g.runner.Run(ctx, g.binary, args(mode, scheme, "image", path)...)
	return err
}

func args(mode theme.ColorMode, scheme theme.SchemeType, rest ...string) []string {
	return append([]string{"-m", mode.String(), "-t", scheme.String()}, rest...)
}
