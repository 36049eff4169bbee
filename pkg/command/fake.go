package command

import (
	"context"
	"strings"
	"sync"
)

// Call is one invocation recorded by Fake.
type Call struct {
	Name string
	Args []string
}

// String renders the call as a shell-like line.
func (c Call) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Fake is a Runner that records calls and answers from a table keyed by
// the call line. It is safe for concurrent use.
type Fake struct {
	mu    sync.Mutex
	calls []Call

	// Outputs maps a call line (or a prefix ending in "*") to stdout.
	Outputs map[string]string
	// Errors maps a call line (or a prefix ending in "*") to an error.
	Errors map[string]error
}

// NewFake returns an empty fake runner.
func NewFake() *Fake {
	return &Fake{Outputs: map[string]string{}, Errors: map[string]error{}}
}

// Run records the call and returns the configured result.
func (f *Fake) Run(ctx context.Context, name string, args ...string) (string, error) {
	call := Call{Name: name, Args: append([]string(nil), args...)}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)

	line := call.String()
	if err, ok := lookup(f.Errors, line); ok {
		return "", err
	}
	out, _ := lookup(f.Outputs, line)
	return out, nil
}

// Calls returns a copy of the recorded calls.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Lines returns the recorded calls rendered with Call.String.
func (f *Fake) Lines() []string {
	calls := f.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

func lookup[V any](m map[string]V, line string) (V, bool) {
	if v, ok := m[line]; ok {
		return v, true
	}
	for k, v := range m {
		if p, ok := strings.CutSuffix(k, "*"); ok && strings.HasPrefix(line, p) {
			return v, true
		}
	}
	var zero V
	return zero, false
}

var _ Runner = (*Fake)(nil)
