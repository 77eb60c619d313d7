// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()

	frame := image.NewNRGBA(image.Rect(0, 0, 6, 4))
	for i := range frame.Pix {
		frame.Pix[i] = 0xff
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, frame); err != nil {
		t.Fatal(err)
	}
	imagePath := filepath.Join(dir, "frame.png")
	markersPath := filepath.Join(dir, "markers.json")
	outPath := filepath.Join(dir, "out.png")
	hitPath := filepath.Join(dir, "hit.png")
	writeFile(t, imagePath, buf.Bytes())
	writeFile(t, markersPath, []byte(`[{"markers": [
		{"type": 3, "filled": true, "fill_color": {"b": 1, "a": 1},
		 "points": [{"x": 0, "y": 0}, {"x": 2, "y": 0}, {"x": 2, "y": 2}, {"x": 0, "y": 2}]}
	]}]`))

	var stderr bytes.Buffer
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"render",
		"--image", imagePath,
		"--markers", markersPath,
		"-o", outPath,
		"--hitmap", hitPath,
	})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("render: %v\n%s", err, stderr.String())
	}

	out := readPNG(t, outPath)
	if b := out.Bounds(); b.Dx() != 6 || b.Dy() != 4 {
		t.Fatalf("output bounds = %v, want 6x4", b)
	}
	if got := color.NRGBAModel.Convert(out.At(0, 0)); got != (color.NRGBA{B: 255, A: 255}) {
		t.Errorf("output (0,0) = %v, want blue", got)
	}
	if got := color.NRGBAModel.Convert(out.At(5, 3)); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("output (5,3) = %v, want white", got)
	}

	hit := readPNG(t, hitPath)
	if got := color.NRGBAModel.Convert(hit.At(1, 1)); got != (color.NRGBA{B: 1, A: 255}) {
		t.Errorf("hit-map (1,1) = %v, want index 1", got)
	}
	if _, _, _, a := hit.At(4, 3).RGBA(); a != 0 {
		t.Errorf("hit-map (4,3) alpha = %d, want 0", a)
	}
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
}

func readPNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return img
}
