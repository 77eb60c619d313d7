// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// compressedDecoders maps normalized format names to decoders.
var compressedDecoders = map[string]func(io.Reader) (image.Image, error){
	"jpeg": jpeg.Decode,
	"png":  png.Decode,
	"gif":  gif.Decode,
	"webp": webp.Decode,
	"bmp":  bmp.Decode,
	"tiff": tiff.Decode,
}

var formatAliases = map[string]string{
	"jpg": "jpeg",
	"tif": "tiff",
}

// NormalizeFormat extracts a known format name from a format tag. Tags
// such as "bgr8; jpeg compressed bgr8" are scanned word by word. It
// returns "" when no known format is named.
func NormalizeFormat(format string) string {
	words := strings.FieldsFunc(strings.ToLower(format), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	for _, w := range words {
		if alias, ok := formatAliases[w]; ok {
			w = alias
		}
		if _, ok := compressedDecoders[w]; ok {
			return w
		}
	}
	return ""
}

func decodeCompressed(f *Frame) (*image.RGBA, error) {
	if len(f.Data) == 0 {
		return nil, fmt.Errorf("%w: empty compressed payload", ErrMalformedFrame)
	}

	format := NormalizeFormat(f.Format)
	var (
		img image.Image
		err error
	)
	if dec, ok := compressedDecoders[format]; ok {
		img, err = dec(bytes.NewReader(f.Data))
	} else {
		img, _, err = image.Decode(bytes.NewReader(f.Data))
	}
	if err != nil {
		if format == "" {
			return nil, fmt.Errorf("%w %q: %w", ErrUnsupportedFormat, f.Format, err)
		}
		return nil, fmt.Errorf("codec: decode %s: %w", format, err)
	}
	return toRGBA(img), nil
}

// toRGBA returns img as an *image.RGBA anchored at the origin, copying only
// when needed.
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
