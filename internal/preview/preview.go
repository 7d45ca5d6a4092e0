// Package preview shrinks inscription preview images until they fit the
// RGB21 smallblob limit.
package preview

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"log/slog"

	xdraw "golang.org/x/image/draw"
)

const (
	MimeJPEG = "image/jpeg"
	MimePNG  = "image/png"

	// MinDimension is the smallest edge Fit scales down to before giving up.
	MinDimension = 16

	scaleStep   = 0.8
	jpegQuality = 85
)

var ErrCannotFit = errors.New("image cannot be reduced below the size limit")

var pngSignature = []byte{0x89, 0x50, 0x4E, 0x47}

// MimeType sniffs PNG by its signature. Anything else is treated as JPEG.
func MimeType(data []byte) string {
	if bytes.HasPrefix(data, pngSignature) {
		return MimePNG
	}
	return MimeJPEG
}

// Fit returns data unchanged when it is within limit bytes. Otherwise the
// image is re-encoded as JPEG and scaled down, keeping its aspect ratio,
// until the encoding fits.
func Fit(data []byte, limit int) ([]byte, string, error) {
	if len(data) <= limit {
		return data, MimeType(data), nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image: %w", err)
	}
	flat := flatten(img)
	bounds := flat.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	slog.Debug("Fit: reducing image", "format", format, "width", width, "height", height,
		"size_bytes", len(data), "limit_bytes", limit)

	for {
		out, err := encodeJPEG(scale(flat, width, height))
		if err != nil {
			return nil, "", err
		}
		if len(out) <= limit {
			slog.Debug("Fit: image reduced", "width", width, "height", height, "size_bytes", len(out))
			return out, MimeJPEG, nil
		}
		width = int(float64(width) * scaleStep)
		height = int(float64(height) * scaleStep)
		if width < MinDimension || height < MinDimension {
			return nil, "", fmt.Errorf("%w: %d bytes", ErrCannotFit, limit)
		}
	}
}

// flatten draws img onto white so transparent PNGs survive JPEG encoding.
func flatten(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{color.White}, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Over)
	return dst
}

func scale(img *image.RGBA, width, height int) image.Image {
	if img.Bounds().Dx() == width && img.Bounds().Dy() == height {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode JPEG image: %w", err)
	}
	return buf.Bytes(), nil
}
