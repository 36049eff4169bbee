package wallpaper

import (
	"context"

	"github.com/chromash/chromash/pkg/command"
)

// Swww displays images through the swww daemon, which keeps its own state
// and needs no managed copy.
type Swww struct {
	Runner     command.Runner
	Binary     string
	Transition string
}

func (s *Swww) Name() string { return "swww" }

// Set runs `swww img <path> --transition-type <t>`.
func (s *Swww) Set(ctx context.Context, path string) (string, error) {
	bin := s.Binary
	if bin == "" {
		bin = "swww"
	}
	args := []string{"img", path}
	if s.Transition != "" {
		args = append(args, "--transition-type", s.Transition)
	}
	if _, err := s.Runner.Run(ctx, bin, args...); err != nil {
		return "", err
	}
	return path, nil
}

var _ Backend = (*Swww)(nil)
