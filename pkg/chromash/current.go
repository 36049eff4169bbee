package chromash

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/chromash/chromash/pkg/errors"
	"github.com/chromash/chromash/pkg/theme"
)

// currentStore reads and writes current_theme.json.
type currentStore struct {
	path string
	now  func() time.Time
}

func (s currentStore) save(source string, presetName string) (*theme.Current, error) {
	cur := &theme.Current{
		Source:    source,
		Timestamp: s.now().Unix(),
		Revision:  uuid.NewString(),
	}
	if presetName != "" {
		cur.PresetName = &presetName
	}

	data, err := json.MarshalIndent(cur, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write current theme: %w", err)
	}
	return cur, nil
}

// load returns nil when no theme was ever recorded.
func (s currentStore) load() (*theme.Current, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cur theme.Current
	if err := json.Unmarshal(data, &cur); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse %s", s.path)
	}
	return &cur, nil
}
