package theme

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/chromash/chromash/pkg/errors"
)

// RGB is an 8-bit sRGB color.
type RGB struct {
	R, G, B uint8
}

// Chroma is max(r,g,b) - min(r,g,b).
func (c RGB) Chroma() uint8 {
	return max(c.R, c.G, c.B) - min(c.R, c.G, c.B)
}

// Hex returns the lowercase six-digit hex form without "#".
func (c RGB) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// String returns "#rrggbb".
func (c RGB) String() string { return "#" + c.Hex() }

// ParseHex accepts "#rrggbb", "rrggbb", "#rgb" and "rgb".
func ParseHex(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if (len(h) != 3 && len(h) != 6) || strings.Trim(h, "0123456789abcdefABCDEF") != "" {
		return RGB{}, errors.New(errors.ErrCodeInvalidColor, "invalid color %q (want #rrggbb or #rgb)", s)
	}
	c, err := colorful.Hex("#" + h)
	if err != nil {
		return RGB{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid color %q", s)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

// NormalizeHex parses s and returns its canonical "rrggbb" form.
func NormalizeHex(s string) (string, error) {
	c, err := ParseHex(s)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}
