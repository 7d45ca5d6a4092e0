package placeholder

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	MaxDimension = 2000
	DefaultText  = "RGB"
)

// Spec describes one placeholder image in the placehold.co URL scheme
// ({width}x{height}/{bg}/{fg}?text=).
type Spec struct {
	Width      int
	Height     int
	Background color.RGBA
	Foreground color.RGBA
	Text       string
}

// ParseSpec parses the path segments of a placeholder URL.
func ParseSpec(size, bg, fg, text string) (Spec, error) {
	width, height, err := parseSize(size)
	if err != nil {
		return Spec{}, err
	}
	background, err := ParseHexColor(bg)
	if err != nil {
		return Spec{}, fmt.Errorf("invalid background colour: %w", err)
	}
	foreground, err := ParseHexColor(fg)
	if err != nil {
		return Spec{}, fmt.Errorf("invalid foreground colour: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		text = DefaultText
	}
	return Spec{
		Width:      width,
		Height:     height,
		Background: background,
		Foreground: foreground,
		Text:       text,
	}, nil
}

func parseSize(size string) (int, int, error) {
	w, h, found := strings.Cut(strings.ToLower(size), "x")
	if !found {
		h = w
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in size %q", size)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in size %q", size)
	}
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return 0, 0, fmt.Errorf("size %q out of range (1..%d)", size, MaxDimension)
	}
	return width, height, nil
}

// ParseHexColor accepts 3 or 6 hex digits with an optional leading '#'.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("expected 3 or 6 hex digits, got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// SVG returns the document rasterized by Render: the background and a
// two pixel frame in the foreground colour.
func (s Spec) SVG() []byte {
	return []byte(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+
			`<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`+
			`<rect x="1" y="1" width="%d" height="%d" fill="none" stroke="%s" stroke-width="2"/>`+
			`</svg>`,
		s.Width, s.Height, s.Width, s.Height,
		s.Width, s.Height, hex(s.Background),
		max(s.Width-2, 0), max(s.Height-2, 0), hex(s.Foreground)))
}

// Render draws the placeholder and encodes it as PNG.
func Render(s Spec) ([]byte, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("invalid placeholder dimensions: %dx%d", s.Width, s.Height)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(s.SVG()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse placeholder SVG: %w", err)
	}
	icon.SetTarget(0, 0, float64(s.Width), float64(s.Height))

	dst := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))

	scanner := rasterx.NewScannerGV(s.Width, s.Height, dst, dst.Bounds())
	dasher := rasterx.NewDasher(s.Width, s.Height, scanner)
	icon.Draw(dasher, 1.0)

	drawLabel(dst, s.Text, s.Foreground)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode placeholder as PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// drawLabel centres text using the fixed 7x13 face. Text wider than the
// image is clipped by the destination bounds.
func drawLabel(dst *image.RGBA, text string, fg color.RGBA) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg),
		Face: face,
	}
	bounds := dst.Bounds()
	width := d.MeasureString(text)
	x := (fixed.I(bounds.Dx()) - width) / 2
	if x < 0 {
		x = 0
	}
	metrics := face.Metrics()
	y := (fixed.I(bounds.Dy()) + metrics.Ascent - metrics.Descent) / 2
	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(text)
}
