package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	th := NoopThemeHooks{}
	th.OnApplyStart(ctx, "color", "ff0000")
	th.OnApplyComplete(ctx, "color", "ff0000", time.Second, nil)

	NoopCommandHooks{}.OnCommand(ctx, "matugen", []string{"-m", "dark"}, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "palette")
	c.OnCacheMiss(ctx, "palette")
	c.OnCacheSet(ctx, "palette", 32)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Theme().(NoopThemeHooks); !ok {
		t.Error("Theme() should return NoopThemeHooks by default")
	}
	if _, ok := Command().(NoopCommandHooks); !ok {
		t.Error("Command() should return NoopCommandHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customTheme := &testThemeHooks{}
	SetThemeHooks(customTheme)
	if Theme() != customTheme {
		t.Error("SetThemeHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Theme().(NoopThemeHooks); !ok {
		t.Error("Reset() should restore NoopThemeHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testThemeHooks{}
	SetThemeHooks(custom)
	SetThemeHooks(nil)

	if Theme() != custom {
		t.Error("SetThemeHooks(nil) should be ignored")
	}
}

func TestLogHooks(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	h := NewLogHooks(logger)
	h.Register()

	ctx := context.Background()
	Theme().OnApplyStart(ctx, "wallpaper", "/w/a.png")
	Theme().OnApplyComplete(ctx, "wallpaper", "/w/a.png", time.Millisecond, errors.New("boom"))
	Command().OnCommand(ctx, "hyprctl", []string{"monitors"}, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "palette")

	out := buf.String()
	for _, want := range []string{"apply started", "apply failed", "boom", "hyprctl monitors", "cache hit"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := NewLogHooks(log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel}))
	h.OnCacheMiss(context.Background(), "palette")
	if buf.Len() != 0 {
		t.Errorf("debug events should be filtered at info level, got %q", buf.String())
	}
}

type testThemeHooks struct{ NoopThemeHooks }
type testCacheHooks struct{ NoopCacheHooks }
