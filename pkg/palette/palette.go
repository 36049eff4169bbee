// Package palette finds the color a theme should be seeded with from an
// image.
//
// The algorithm favors colors that are both frequent and saturated:
//
//  1. Downscale so the longer side is at most 128px (Catmull-Rom).
//  2. Quantize each channel to 16 levels and count the buckets.
//  3. Score every bucket as chroma × lightness × ln(count), where chroma
//     saturates at 30 and mid-range lightness scores twice as high as
//     near-black or near-white.
//  4. Return the best bucket, or mid gray if nothing scores above zero.
package palette

import (
	"image"
	"math"
	"os"
	"sort"

	// Register decoders for every wallpaper format we accept.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/chromash/chromash/pkg/errors"
	"github.com/chromash/chromash/pkg/theme"
)

// MaxSide is the longest edge analyzed.
const MaxSide = 128

// Fallback is returned when no color scores above zero.
var Fallback = theme.RGB{R: 128, G: 128, B: 128}

// DecodeFile decodes an image, sniffing the format from its content.
func DecodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "failed to decode %s", path)
	}
	return img, nil
}

// DominantFile decodes the image at path and returns its dominant color.
func DominantFile(path string) (theme.RGB, error) {
	img, err := DecodeFile(path)
	if err != nil {
		return theme.RGB{}, err
	}
	return Dominant(img), nil
}

// Dominant returns the highest scoring quantized color of img.
func Dominant(img image.Image) theme.RGB {
	// Non-premultiplied pixels, alpha ignored.
	px := imaging.Clone(downscale(img))

	counts := make(map[theme.RGB]int)
	for i := 0; i+3 < len(px.Pix); i += 4 {
		counts[quantize(px.Pix[i], px.Pix[i+1], px.Pix[i+2])]++
	}

	// Visit buckets in a fixed order so ties resolve the same way every run.
	buckets := make([]theme.RGB, 0, len(counts))
	for c := range counts {
		buckets = append(buckets, c)
	}
	sort.Slice(buckets, func(i, j int) bool {
		a, c := buckets[i], buckets[j]
		if a.R != c.R {
			return a.R < c.R
		}
		if a.G != c.G {
			return a.G < c.G
		}
		return a.B < c.B
	})

	best, bestScore := Fallback, 0.0
	for _, c := range buckets {
		if s := Score(c, counts[c]); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best
}

// Score rates a quantized color occurring count times.
func Score(c theme.RGB, count int) float64 {
	chroma := c.Chroma()
	chromaScore := 1.0
	if chroma <= 30 {
		chromaScore = float64(chroma) / 30
	}

	lightness := (uint32(c.R) + uint32(c.G) + uint32(c.B)) / 3
	lightnessScore := 0.5
	if lightness > 50 && lightness < 200 {
		lightnessScore = 1.0
	}

	return chromaScore * lightnessScore * math.Log(float64(count))
}

func quantize(r, g, b uint8) theme.RGB {
	return theme.RGB{R: r / 16 * 16, G: g / 16 * 16, B: b / 16 * 16}
}

func downscale(img image.Image) image.Image {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w <= MaxSide && h <= MaxSide {
		return img
	}
	scale := float64(MaxSide) / float64(max(w, h))
	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))
	return imaging.Resize(img, nw, nh, imaging.CatmullRom)
}
