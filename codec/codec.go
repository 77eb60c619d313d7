// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package codec decodes sensor camera frames into RGBA bitmaps.
//
// Raw frames are dispatched on their encoding tag through a registry of
// decoders (see Register). Compressed frames are handed to the image
// decoders registered with the standard image package, selected by the
// frame's format tag or by content sniffing.
//
//	img, err := codec.Decode("sensor_msgs/Image", &codec.Frame{
//		Encoding: "mono8",
//		Width:    4,
//		Height:   4,
//		Data:     pixels,
//	}, codec.Options{})
package codec

import (
	"fmt"
	"image"
	"math"
	"slices"
)

// Frame is one camera frame as carried by sensor_msgs/Image or
// sensor_msgs/CompressedImage. Raw frames set Encoding, compressed frames
// set Format.
type Frame struct {
	Encoding    string `json:"encoding,omitempty"`
	Format      string `json:"format,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Step        int    `json:"step,omitempty"`
	IsBigEndian bool   `json:"is_bigendian,omitempty"`
	Data        []byte `json:"data"`
}

// Options tunes numeric conversion of raw frames.
type Options struct {
	// MinValue and MaxValue bound the input range of 16-bit mono frames.
	// Nil bounds default to the full 16-bit range.
	MinValue *float64 `json:"minValue,omitempty"`
	MaxValue *float64 `json:"maxValue,omitempty"`
}

// Message datatypes of raw and compressed image frames.
var (
	RawDatatypes = []string{
		"sensor_msgs/Image",
		"sensor_msgs/msg/Image",
		"ros.sensor_msgs.Image",
	}
	CompressedDatatypes = []string{
		"sensor_msgs/CompressedImage",
		"sensor_msgs/msg/CompressedImage",
		"ros.sensor_msgs.CompressedImage",
	}
)

// IsImageDatatype reports whether datatype names an image message.
func IsImageDatatype(datatype string) bool {
	return slices.Contains(RawDatatypes, datatype) || slices.Contains(CompressedDatatypes, datatype)
}

// Decode converts f to an RGBA bitmap.
//
// A frame of a raw datatype that carries an encoding takes the raw path.
// Anything else with an image datatype or a format tag is decoded as a
// compressed blob, since a bridge may deliver either shape under either
// datatype.
func Decode(datatype string, f *Frame, opts Options) (*image.RGBA, error) {
	if f == nil || f.Data == nil {
		return nil, fmt.Errorf("%w: no byte payload", ErrMalformedFrame)
	}
	switch {
	case slices.Contains(RawDatatypes, datatype) && f.Encoding != "":
		return decodeRaw(f, opts)
	case IsImageDatatype(datatype) || f.Format != "":
		return decodeCompressed(f)
	default:
		return nil, &DatatypeError{Datatype: datatype}
	}
}

// Stride returns the distance in bytes between rows of a raw frame with
// the given packed pixel size. A missing or too small Step means rows are
// tightly packed.
func (f *Frame) Stride(pixelSize int) int {
	if packed := f.Width * pixelSize; f.Step < packed {
		return packed
	}
	return f.Step
}

func decodeRaw(f *Frame, opts Options) (*image.RGBA, error) {
	enc, ok := Lookup(f.Encoding)
	if !ok {
		return nil, &EncodingError{Encoding: f.Encoding}
	}
	if f.Width <= 0 || f.Height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrMalformedFrame, f.Width, f.Height)
	}
	if f.Width > math.MaxInt/enc.PixelSize {
		return nil, fmt.Errorf("%w: width %d overflows", ErrMalformedFrame, f.Width)
	}
	row := f.Width * enc.PixelSize
	stride := f.Stride(enc.PixelSize)
	if f.Height-1 > (math.MaxInt-row)/stride {
		return nil, fmt.Errorf("%w: size %dx%d with stride %d overflows", ErrMalformedFrame, f.Width, f.Height, stride)
	}
	if need := (f.Height-1)*stride + row; len(f.Data) < need {
		return nil, fmt.Errorf("%w: %s %dx%d needs %d bytes, got %d",
			ErrMalformedFrame, f.Encoding, f.Width, f.Height, need, len(f.Data))
	}

	dst := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	if err := enc.Decode(dst, f, opts); err != nil {
		return nil, err
	}
	return dst, nil
}

// rows calls fn for every row of a raw frame with the source row bytes and
// the destination row pixels.
func rows(dst *image.RGBA, f *Frame, pixelSize int, fn func(src, out []byte)) {
	stride := f.Stride(pixelSize)
	n := f.Width * pixelSize
	for y := 0; y < f.Height; y++ {
		src := f.Data[y*stride : y*stride+n]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+f.Width*4]
		fn(src, out)
	}
}

func clamp8(v float64) uint8 {
	switch {
	case v <= 0 || v != v:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v + 0.5)
	}
}
