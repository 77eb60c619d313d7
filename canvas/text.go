// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
)

// DefaultFont is the font a fresh surface draws text with.
const DefaultFont = "10px sans-serif"

// ErrInvalidFont is returned by ParseFont for strings it cannot interpret.
var ErrInvalidFont = errors.New("canvas: invalid font")

// Font is a parsed CSS font shorthand. Only weight, size and family are
// significant; the family selects one of the embedded Go fonts.
type Font struct {
	Size   float64
	Family string
	Bold   bool
}

// String formats the font back into CSS shorthand.
func (f Font) String() string {
	size := strconv.FormatFloat(f.Size, 'f', -1, 64)
	if f.Bold {
		return "bold " + size + "px " + f.Family
	}
	return size + "px " + f.Family
}

// ParseFont parses a CSS font shorthand such as "12px sans-serif" or
// "bold 14px/1.2 'Go Mono', monospace". Sizes may be given in px or pt.
func ParseFont(s string) (Font, error) {
	fields := strings.Fields(s)
	for i, tok := range fields {
		size, ok := parseFontSize(tok)
		if !ok {
			continue
		}
		family := strings.TrimSpace(strings.Join(fields[i+1:], " "))
		if first, _, found := strings.Cut(family, ","); found {
			family = strings.TrimSpace(first)
		}
		family = strings.Trim(family, `"'`)
		if family == "" {
			break
		}

		f := Font{Size: size, Family: family}
		for _, mod := range fields[:i] {
			switch mod {
			case "bold", "bolder", "600", "700", "800", "900":
				f.Bold = true
			}
		}
		return f, nil
	}
	return Font{}, fmt.Errorf("%w: %q", ErrInvalidFont, s)
}

func parseFontSize(tok string) (float64, bool) {
	tok, _, _ = strings.Cut(tok, "/")
	pt := false
	switch {
	case strings.HasSuffix(tok, "px"):
		tok = strings.TrimSuffix(tok, "px")
	case strings.HasSuffix(tok, "pt"):
		tok = strings.TrimSuffix(tok, "pt")
		pt = true
	default:
		return 0, false
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil || !(v > 0) || math.IsInf(v, 0) {
		return 0, false
	}
	if pt {
		v = v * 4 / 3
	}
	return v, true
}

// Baseline selects the vertical anchor of text drawn with FillText.
type Baseline int

const (
	BaselineAlphabetic Baseline = iota
	BaselineTop
	BaselineHanging
	BaselineMiddle
	BaselineIdeographic
	BaselineBottom
)

var baselineNames = [...]string{
	BaselineAlphabetic:  "alphabetic",
	BaselineTop:         "top",
	BaselineHanging:     "hanging",
	BaselineMiddle:      "middle",
	BaselineIdeographic: "ideographic",
	BaselineBottom:      "bottom",
}

// String returns the CSS keyword for the baseline.
func (b Baseline) String() string {
	if b < 0 || int(b) >= len(baselineNames) {
		return "Baseline(" + strconv.Itoa(int(b)) + ")"
	}
	return baselineNames[b]
}

// offset returns how far the alphabetic baseline sits below the anchor.
func (b Baseline) offset(m font.Metrics) float64 {
	ascent := fixedToFloat(m.Ascent)
	descent := fixedToFloat(m.Descent)
	switch b {
	case BaselineTop:
		return ascent
	case BaselineHanging:
		return ascent * 0.8
	case BaselineMiddle:
		return (ascent - descent) / 2
	case BaselineIdeographic, BaselineBottom:
		return -descent
	default:
		return 0
	}
}

// TextMetrics describes the extent of a run of text in user-space units.
type TextMetrics struct {
	Width float64

	// FontBoundingBoxAscent and FontBoundingBoxDescent are the distances
	// from the alphabetic baseline to the top and bottom of the font's
	// line box. Both are zero when the font offers no line metrics.
	FontBoundingBoxAscent  float64
	FontBoundingBoxDescent float64
}

// Height returns the height of the font bounding box.
func (m TextMetrics) Height() float64 {
	return m.FontBoundingBoxAscent + m.FontBoundingBoxDescent
}

// typeface holds one embedded font parsed for both glyph rendering and
// shaping. Parsed fonts are read-only and shared by every surface.
type typeface struct {
	ttf  []byte
	once sync.Once

	glyphs *opentype.Font
	shapes *gotext.Font
	err    error
}

func (t *typeface) load() error {
	t.once.Do(func() {
		t.glyphs, t.err = opentype.Parse(t.ttf)
		if t.err != nil {
			return
		}
		face, err := gotext.ParseTTF(bytes.NewReader(t.ttf))
		if err != nil {
			t.err = err
			return
		}
		t.shapes = face.Font
	})
	return t.err
}

var (
	sansRegular = &typeface{ttf: goregular.TTF}
	sansBold    = &typeface{ttf: gobold.TTF}
	monospace   = &typeface{ttf: gomono.TTF}
)

// lookupTypeface picks the embedded font for a CSS family.
func lookupTypeface(f Font) *typeface {
	switch strings.ToLower(f.Family) {
	case "monospace", "go mono", "courier", "courier new", "menlo", "consolas":
		return monospace
	}
	if f.Bold {
		return sansBold
	}
	return sansRegular
}

type faceKey struct {
	tf   *typeface
	size float64
}

// faceCache keeps x/image faces per surface. Faces are not safe for
// concurrent use, which matches a surface's single-owner contract.
type faceCache map[faceKey]font.Face

const maxCachedFaces = 32

func (c *faceCache) face(tf *typeface, size float64) (font.Face, error) {
	if err := tf.load(); err != nil {
		return nil, err
	}
	key := faceKey{tf: tf, size: size}
	if f, ok := (*c)[key]; ok {
		return f, nil
	}
	if *c == nil || len(*c) >= maxCachedFaces {
		c.close()
		*c = make(faceCache)
	}
	f, err := opentype.NewFace(tf.glyphs, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, err
	}
	(*c)[key] = f
	return f, nil
}

func (c *faceCache) close() {
	for k, f := range *c {
		_ = f.Close()
		delete(*c, k)
	}
}

// measure shapes s with HarfBuzz and reports its advance and line bounds.
// Without shaping data it falls back to glyph advances and reports no
// line metrics.
func measure(s string, f Font, faces *faceCache) TextMetrics {
	if s == "" || f.Size <= 0 {
		return TextMetrics{}
	}
	tf := lookupTypeface(f)
	if err := tf.load(); err != nil {
		return TextMetrics{}
	}

	runes := []rune(s)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: textDirection(s),
		Face:      gotext.NewFace(tf.shapes),
		Size:      floatToFixed(f.Size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	var shaper shaping.HarfbuzzShaper
	out := shaper.Shape(input)

	m := TextMetrics{
		Width:                  math.Abs(fixedToFloat(out.Advance)),
		FontBoundingBoxAscent:  fixedToFloat(out.LineBounds.Ascent),
		FontBoundingBoxDescent: -fixedToFloat(out.LineBounds.Descent),
	}
	if m.Width == 0 {
		if face, err := faces.face(tf, f.Size); err == nil {
			m.Width = fixedToFloat(font.MeasureString(face, s))
		}
	}
	return m
}

// textDirection reports the base direction of the first bidi run of s.
func textDirection(s string) di.Direction {
	p := bidi.Paragraph{}
	if _, err := p.SetString(s, bidi.DefaultDirection(bidi.LeftToRight)); err != nil {
		return di.DirectionLTR
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return di.DirectionLTR
	}
	if run := ordering.Run(0); run.Direction() == bidi.RightToLeft {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
