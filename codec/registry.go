// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package codec

import (
	"image"
	"sort"
	"sync"
)

// Encoding describes how one raw encoding tag is decoded.
type Encoding struct {
	// PixelSize is the number of bytes one pixel occupies in a packed row.
	PixelSize int

	// Decode writes the frame into dst, which has the frame's size. The
	// payload has already been checked to cover every row.
	Decode func(dst *image.RGBA, f *Frame, opts Options) error
}

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu sync.RWMutex
	encodings  = make(map[string]Encoding)
)

// Register makes a raw encoding available to Decode under name.
// Built-in encodings are registered from init; other packages may add
// their own the same way:
//
//	func init() {
//	    codec.Register("rgba8", codec.Encoding{PixelSize: 4, Decode: decodeRGBA8})
//	}
//
// Register panics if Decode is nil, PixelSize is not positive, or the name
// is already registered.
func Register(name string, e Encoding) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if e.Decode == nil {
		panic("codec: Register decoder is nil")
	}
	if e.PixelSize <= 0 {
		panic("codec: Register pixel size must be positive for " + name)
	}
	if _, dup := encodings[name]; dup {
		panic("codec: Register called twice for " + name)
	}
	encodings[name] = e
}

// Unregister removes an encoding from the registry.
// This is primarily useful for testing to clean up between tests.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(encodings, name)
}

// Lookup returns the encoding registered under name.
func Lookup(name string) (Encoding, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	e, ok := encodings[name]
	return e, ok
}

// Encodings returns the sorted names of all registered encodings.
func Encodings() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(encodings))
	for name := range encodings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	mono8 := Encoding{PixelSize: 1, Decode: decodeMono8}
	Register("mono8", mono8)
	Register("8UC1", mono8)

	mono16 := Encoding{PixelSize: 2, Decode: decodeMono16}
	Register("mono16", mono16)
	Register("16UC1", mono16)

	Register("rgb8", Encoding{PixelSize: 3, Decode: decodeRGB8})
	bgr8 := Encoding{PixelSize: 3, Decode: decodeBGR8}
	Register("bgr8", bgr8)
	Register("8UC3", bgr8)

	uyvy := Encoding{PixelSize: 2, Decode: decodeUYVY}
	Register("yuv422", uyvy)
	Register("uyvy", uyvy)
	yuyv := Encoding{PixelSize: 2, Decode: decodeYUYV}
	Register("yuv422_yuy2", yuyv)
	Register("yuyv", yuyv)

	Register("32FC1", Encoding{PixelSize: 4, Decode: decodeFloat32})

	for name, pattern := range bayerPatterns {
		Register(name, Encoding{PixelSize: 1, Decode: pattern.decode})
	}
}
