package theme

import (
	"testing"

	"github.com/chromash/chromash/pkg/errors"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ColorMode
		wantErr bool
	}{
		{"light", Light, false},
		{"DARK", Dark, false},
		{" Light ", Light, false},
		{"dim", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidMode) {
				t.Errorf("error code = %v, want INVALID_MODE", errors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseScheme(t *testing.T) {
	tests := []struct {
		in      string
		want    SchemeType
		wantErr bool
	}{
		{"content", SchemeContent, false},
		{"scheme-content", SchemeContent, false},
		{"Expressive", SchemeExpressive, false},
		{"fidelity", SchemeFidelity, false},
		{"fruit-salad", SchemeFruitSalad, false},
		{"fruit_salad", SchemeFruitSalad, false},
		{"FruitSalad", SchemeFruitSalad, false},
		{"scheme_fruit_salad", SchemeFruitSalad, false},
		{"monochrome", SchemeMonochrome, false},
		{"neutral", SchemeNeutral, false},
		{"rainbow", SchemeRainbow, false},
		{"tonal-spot", SchemeTonalSpot, false},
		{"tonalspot", SchemeTonalSpot, false},
		{"scheme-tonal-spot", SchemeTonalSpot, false},

		{"scheme", "", true},
		{"", "", true},
		{"pastel", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseScheme(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseScheme(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidScheme) {
				t.Errorf("error code = %v, want INVALID_SCHEME", errors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("ParseScheme(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSchemeNames(t *testing.T) {
	if got := SchemeTonalSpot.String(); got != "scheme-tonal-spot" {
		t.Errorf("String() = %q", got)
	}
	if got := SchemeFruitSalad.Name(); got != "fruit-salad" {
		t.Errorf("Name() = %q", got)
	}
	if len(Schemes) != 8 {
		t.Errorf("len(Schemes) = %d, want 8", len(Schemes))
	}
}

func TestModeFromBrightness(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		want ColorMode
	}{
		{"white", RGB{255, 255, 255}, Light},
		{"black", RGB{0, 0, 0}, Dark},
		{"mid gray is dark", RGB{128, 128, 128}, Dark},
		{"just above", RGB{129, 129, 129}, Light},
		{"pure green is light", RGB{0, 255, 0}, Light},
		{"pure blue is dark", RGB{0, 0, 255}, Dark},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModeFromBrightness(tt.c); got != tt.want {
				t.Errorf("ModeFromBrightness(%v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestSchemeFromChroma(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		want SchemeType
	}{
		{"gray", RGB{100, 100, 100}, SchemeNeutral},
		{"chroma 29", RGB{100, 129, 100}, SchemeNeutral},
		{"chroma 30", RGB{100, 130, 100}, SchemeTonalSpot},
		{"chroma 59", RGB{100, 159, 100}, SchemeTonalSpot},
		{"chroma 60", RGB{100, 160, 100}, SchemeExpressive},
		{"red", RGB{255, 0, 0}, SchemeExpressive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SchemeFromChroma(tt.c); got != tt.want {
				t.Errorf("SchemeFromChroma(%v) = %v, want %v", tt.c, got, tt.want)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	var o Options
	if o.ModeOr(Light) != Light || o.SchemeOr(SchemeTonalSpot) != SchemeTonalSpot {
		t.Error("empty options should fall back")
	}

	o = o.WithMode(Dark).WithScheme(SchemeRainbow)
	if o.ModeOr(Light) != Dark || o.SchemeOr(SchemeTonalSpot) != SchemeRainbow {
		t.Error("set options should win over fallback")
	}

	if _, ok := o.PresetToSave(); ok {
		t.Error("PresetToSave without SavePreset should be false")
	}
	o.SavePreset = true
	if _, ok := o.PresetToSave(); ok {
		t.Error("PresetToSave without a name should be false")
	}
	o.PresetName = "dusk"
	if name, ok := o.PresetToSave(); !ok || name != "dusk" {
		t.Errorf("PresetToSave = %q, %v; want dusk, true", name, ok)
	}
}

func TestParseSource(t *testing.T) {
	tests := []struct {
		in        string
		wantKind  SourceKind
		wantValue string
	}{
		{ColorSource("ff0000"), SourceColor, "ff0000"},
		{WallpaperSource("/w/a.png"), SourceWallpaper, "/w/a.png"},
		{WallpaperSource("/w/color_b.png"), SourceWallpaper, "/w/color_b.png"},
		{"manual", SourceUnknown, "manual"},
	}
	for _, tt := range tests {
		kind, value := ParseSource(tt.in)
		if kind != tt.wantKind || value != tt.wantValue {
			t.Errorf("ParseSource(%q) = %v, %q; want %v, %q", tt.in, kind, value, tt.wantKind, tt.wantValue)
		}
	}
}
