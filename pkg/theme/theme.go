// Package theme defines the vocabulary shared by every chromash component:
// color modes, matugen scheme types, theme sources and the record of the
// currently applied theme.
package theme

import (
	"strings"

	"github.com/chromash/chromash/pkg/errors"
)

// ColorMode selects a light or dark palette.
type ColorMode string

const (
	Light ColorMode = "light"
	Dark  ColorMode = "dark"
)

// ParseMode parses "light" or "dark", ignoring case.
func ParseMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	}
	return "", errors.New(errors.ErrCodeInvalidMode, "invalid mode %q (want light or dark)", s)
}

// String returns the matugen spelling.
func (m ColorMode) String() string { return string(m) }

// ModeFromBrightness picks light for colors whose perceived brightness
// (ITU-R BT.601 weights, integer math) exceeds 128.
func ModeFromBrightness(c RGB) ColorMode {
	if (uint32(c.R)*299+uint32(c.G)*587+uint32(c.B)*114)/1000 > 128 {
		return Light
	}
	return Dark
}

// SchemeType is a matugen color scheme.
type SchemeType string

const (
	SchemeContent    SchemeType = "scheme-content"
	SchemeExpressive SchemeType = "scheme-expressive"
	SchemeFidelity   SchemeType = "scheme-fidelity"
	SchemeFruitSalad SchemeType = "scheme-fruit-salad"
	SchemeMonochrome SchemeType = "scheme-monochrome"
	SchemeNeutral    SchemeType = "scheme-neutral"
	SchemeRainbow    SchemeType = "scheme-rainbow"
	SchemeTonalSpot  SchemeType = "scheme-tonal-spot"
)

// Schemes lists every scheme in display order.
var Schemes = []SchemeType{
	SchemeContent,
	SchemeExpressive,
	SchemeFidelity,
	SchemeFruitSalad,
	SchemeMonochrome,
	SchemeNeutral,
	SchemeRainbow,
	SchemeTonalSpot,
}

// ParseScheme accepts "fruit-salad", "fruit_salad", "FruitSalad" and
// "scheme-fruit-salad" alike.
func ParseScheme(s string) (SchemeType, error) {
	key := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	key = strings.TrimPrefix(key, "scheme")
	for _, scheme := range Schemes {
		if key != "" && key == strings.ReplaceAll(scheme.Name(), "-", "") {
			return scheme, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidScheme, "invalid scheme %q", s)
}

// String returns the matugen spelling, e.g. "scheme-tonal-spot".
func (s SchemeType) String() string { return string(s) }

// Name returns the short name, e.g. "tonal-spot".
func (s SchemeType) Name() string { return strings.TrimPrefix(string(s), "scheme-") }

// SchemeFromChroma maps low-chroma colors to neutral, moderate ones to
// tonal-spot and vivid ones to expressive.
func SchemeFromChroma(c RGB) SchemeType {
	switch chroma := c.Chroma(); {
	case chroma < 30:
		return SchemeNeutral
	case chroma < 60:
		return SchemeTonalSpot
	default:
		return SchemeExpressive
	}
}

// Options tunes a single apply. Nil Mode/Scheme mean "use the default for
// the kind of source".
type Options struct {
	Mode       *ColorMode
	Scheme     *SchemeType
	SavePreset bool
	PresetName string
}

// WithMode returns a copy of o with Mode set.
func (o Options) WithMode(m ColorMode) Options {
	o.Mode = &m
	return o
}

// WithScheme returns a copy of o with Scheme set.
func (o Options) WithScheme(s SchemeType) Options {
	o.Scheme = &s
	return o
}

// ModeOr returns the configured mode or fallback.
func (o Options) ModeOr(fallback ColorMode) ColorMode {
	if o.Mode != nil {
		return *o.Mode
	}
	return fallback
}

// SchemeOr returns the configured scheme or fallback.
func (o Options) SchemeOr(fallback SchemeType) SchemeType {
	if o.Scheme != nil {
		return *o.Scheme
	}
	return fallback
}

// PresetToSave reports the preset name to save under, if any.
func (o Options) PresetToSave() (string, bool) {
	if o.SavePreset && o.PresetName != "" {
		return o.PresetName, true
	}
	return "", false
}
