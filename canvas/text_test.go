// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"errors"
	"image/color"
	"testing"

	"github.com/go-text/typesetting/di"
)

func TestParseFont(t *testing.T) {
	tests := []struct {
		in      string
		want    Font
		wantErr bool
	}{
		{in: "10px sans-serif", want: Font{Size: 10, Family: "sans-serif"}},
		{in: "bold 14px monospace", want: Font{Size: 14, Family: "monospace", Bold: true}},
		{in: "italic 700 12.5px 'Go Mono', monospace", want: Font{Size: 12.5, Family: "Go Mono", Bold: true}},
		{in: "12px/1.5 serif", want: Font{Size: 12, Family: "serif"}},
		{in: "9pt sans-serif", want: Font{Size: 12, Family: "sans-serif"}},
		{in: "12px", wantErr: true},
		{in: "sans-serif", wantErr: true},
		{in: "-3px sans-serif", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFont(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidFont) {
					t.Errorf("ParseFont(%q) error = %v, want ErrInvalidFont", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFont(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFont(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSurface_SetFontIgnoresInvalid(t *testing.T) {
	s := New(1, 1)
	s.SetFont("24px monospace")
	s.SetFont("not a font")
	if got := s.Font(); got.Size != 24 || got.Family != "monospace" {
		t.Errorf("Font() = %+v, want 24px monospace", got)
	}
}

func TestTextDirection(t *testing.T) {
	tests := []struct {
		in   string
		want di.Direction
	}{
		{"hello", di.DirectionLTR},
		{"42", di.DirectionLTR},
		{"שלום", di.DirectionRTL},
		{"مرحبا", di.DirectionRTL},
		{"abc שלום", di.DirectionLTR},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := textDirection(tt.in); got != tt.want {
				t.Errorf("textDirection(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMeasureText(t *testing.T) {
	s := New(1, 1)
	s.SetFont("20px sans-serif")

	short := s.MeasureText("ab")
	long := s.MeasureText("abcdef")
	if short.Width <= 0 {
		t.Fatalf("Width = %v, want > 0", short.Width)
	}
	if long.Width <= short.Width {
		t.Errorf("Width(abcdef) = %v, want > Width(ab) = %v", long.Width, short.Width)
	}
	if short.FontBoundingBoxAscent <= 0 || short.FontBoundingBoxDescent <= 0 {
		t.Errorf("font bounding box = %+v, want positive ascent and descent", short)
	}
	if h := short.Height(); h < 15 || h > 30 {
		t.Errorf("Height() = %v, want roughly the font size", h)
	}

	if got := s.MeasureText(""); got != (TextMetrics{}) {
		t.Errorf("MeasureText(\"\") = %+v, want zero", got)
	}
}

func TestMeasureText_ScalesWithSize(t *testing.T) {
	s := New(1, 1)
	s.SetFont("10px sans-serif")
	small := s.MeasureText("hello")
	s.SetFont("20px sans-serif")
	big := s.MeasureText("hello")

	ratio := big.Width / small.Width
	if ratio < 1.8 || ratio > 2.2 {
		t.Errorf("width ratio = %v, want ~2", ratio)
	}
}

func inkBounds(s *Surface) (minY, maxY int, found bool) {
	minY, maxY = s.Height(), -1
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c, _ := s.Pixel(x, y); c.A != 0 {
				minY = min(minY, y)
				maxY = max(maxY, y)
				found = true
			}
		}
	}
	return minY, maxY, found
}

func TestSurface_FillText(t *testing.T) {
	s := New(120, 40)
	s.SetFont("20px sans-serif")
	s.SetFillStyle(color.NRGBA{A: 255})
	s.FillText("Hello", 5, 30)

	minY, maxY, found := inkBounds(s)
	if !found {
		t.Fatal("FillText drew nothing")
	}
	if maxY > 30 {
		t.Errorf("alphabetic text reaches y=%d, want no descent below the baseline for \"Hello\"", maxY)
	}
	if minY < 10 {
		t.Errorf("text top = %d, want glyphs within one em above the baseline", minY)
	}
}

func TestSurface_FillTextBaselines(t *testing.T) {
	draw := func(b Baseline) (int, int) {
		s := New(120, 80)
		s.SetFont("20px sans-serif")
		s.SetTextBaseline(b)
		s.FillText("Hx", 5, 40)
		minY, maxY, found := inkBounds(s)
		if !found {
			t.Fatalf("baseline %v drew nothing", b)
		}
		return minY, maxY
	}

	topMin, _ := draw(BaselineTop)
	_, bottomMax := draw(BaselineBottom)
	alphaMin, alphaMax := draw(BaselineAlphabetic)

	if topMin < 40 {
		t.Errorf("top baseline ink starts at %d, want at or below the anchor", topMin)
	}
	if bottomMax >= 40 {
		t.Errorf("bottom baseline ink ends at %d, want above the anchor", bottomMax)
	}
	if alphaMin >= 40 || alphaMax > 40 {
		t.Errorf("alphabetic ink spans %d..%d, want above the anchor", alphaMin, alphaMax)
	}
}

func TestSurface_FillTextHardEdges(t *testing.T) {
	s := New(120, 40, WithAntialias(false))
	s.SetFont("20px sans-serif")
	s.SetFillStyle(IndexColor(7))
	s.FillText("Wg", 5, 30)

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			c, _ := s.Pixel(x, y)
			if c.A == 0 {
				continue
			}
			if index, ok := DecodeIndex(c); !ok || index != 7 {
				t.Fatalf("pixel (%d,%d) = %v, want exact index 7", x, y, c)
			}
		}
	}
}
