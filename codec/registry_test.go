// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package codec

import (
	"image"
	"slices"
	"testing"
)

func noopDecode(*image.RGBA, *Frame, Options) error { return nil }

func TestRegister(t *testing.T) {
	const name = "test_gray16"
	Register(name, Encoding{PixelSize: 2, Decode: noopDecode})
	t.Cleanup(func() { Unregister(name) })

	if _, ok := Lookup(name); !ok {
		t.Fatal("Lookup() after Register = false")
	}
	if !slices.Contains(Encodings(), name) {
		t.Errorf("Encodings() = %v, missing %q", Encodings(), name)
	}
	if !slices.IsSorted(Encodings()) {
		t.Errorf("Encodings() = %v, want sorted", Encodings())
	}

	img, err := Decode("sensor_msgs/Image", &Frame{Encoding: name, Width: 1, Height: 1, Data: []byte{0, 0}}, Options{})
	if err != nil || img == nil {
		t.Errorf("Decode() with registered encoding = %v, %v", img, err)
	}
}

func TestRegister_Panics(t *testing.T) {
	tests := []struct {
		name string
		enc  string
		e    Encoding
	}{
		{"duplicate", "mono8", Encoding{PixelSize: 1, Decode: noopDecode}},
		{"nil decoder", "test_nil", Encoding{PixelSize: 1}},
		{"zero pixel size", "test_zero", Encoding{Decode: noopDecode}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("Register() did not panic")
				}
			}()
			Register(tt.enc, tt.e)
		})
	}
}

func TestUnregister(t *testing.T) {
	const name = "test_tmp"
	Register(name, Encoding{PixelSize: 1, Decode: noopDecode})
	Unregister(name)
	if _, ok := Lookup(name); ok {
		t.Error("Lookup() after Unregister = true")
	}
	Unregister(name) // no-op
}
