// Package command runs the external tools chromash drives (matugen,
// hyprctl, swww) and turns their failures into coded errors.
package command

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"

	cerrors "github.com/chromash/chromash/pkg/errors"
	"github.com/chromash/chromash/pkg/observability"
)

// Runner executes a program and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// Exec runs programs with os/exec.
type Exec struct {
	// Env, when non-nil, replaces the inherited environment.
	Env []string
}

// NewExec returns a runner inheriting the current environment.
func NewExec() *Exec {
	return &Exec{}
}

// Run executes name with args. A non-zero exit is reported as
// PROCESS_FAILED carrying the tool's stderr; a binary missing from PATH
// as TOOL_NOT_FOUND.
func (e *Exec) Run(ctx context.Context, name string, args ...string) (string, error) {
	start := time.Now()
	out, err := e.run(ctx, name, args)
	observability.Command().OnCommand(ctx, name, args, time.Since(start), err)
	return out, err
}

func (e *Exec) run(ctx context.Context, name string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if e.Env != nil {
		cmd.Env = e.Env
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return stdout.String(), nil
	}
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if errors.Is(err, exec.ErrNotFound) {
		return "", cerrors.Wrap(cerrors.ErrCodeToolNotFound, err, "%s is not installed or not on PATH", name)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = exitErr.Error()
		}
		return stdout.String(), cerrors.New(cerrors.ErrCodeProcess, "%s: %s", name, msg)
	}
	return "", cerrors.Wrap(cerrors.ErrCodeProcess, err, "run %s", name)
}

// Tool describes an external program and what chromash uses it for.
type Tool struct {
	Name    string
	Binary  string
	Purpose string
}

// ToolStatus is the result of locating a Tool.
type ToolStatus struct {
	Tool
	Path  string
	Found bool
}

// Locate resolves each tool's binary on PATH.
func Locate(tools []Tool) []ToolStatus {
	out := make([]ToolStatus, 0, len(tools))
	for _, t := range tools {
		st := ToolStatus{Tool: t}
		if p, err := exec.LookPath(t.Binary); err == nil {
			st.Path, st.Found = p, true
		}
		out = append(out, st)
	}
	return out
}
