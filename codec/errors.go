// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package codec

import (
	"errors"
	"fmt"
)

// Decode errors.
var (
	// ErrMalformedFrame is returned when a frame has no byte payload or a
	// payload too short for its declared size.
	ErrMalformedFrame = errors.New("codec: malformed frame")

	// ErrUnsupportedEncoding is returned for raw frames with an encoding
	// tag no decoder is registered for.
	ErrUnsupportedEncoding = errors.New("codec: unsupported encoding")

	// ErrUnsupportedDatatype is returned when the message datatype is not
	// an image and the frame carries no format tag.
	ErrUnsupportedDatatype = errors.New("codec: unsupported datatype")

	// ErrUnsupportedFormat is returned when a compressed blob cannot be
	// decoded and its format tag names no known codec.
	ErrUnsupportedFormat = errors.New("codec: unsupported format")
)

// EncodingError reports a raw encoding without a decoder.
type EncodingError struct {
	Encoding string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("codec: unsupported encoding %q", e.Encoding)
}

// Unwrap returns ErrUnsupportedEncoding.
func (e *EncodingError) Unwrap() error { return ErrUnsupportedEncoding }

// DatatypeError reports a message datatype that is not an image.
type DatatypeError struct {
	Datatype string
}

func (e *DatatypeError) Error() string {
	return fmt.Sprintf("codec: unsupported datatype %q", e.Datatype)
}

// Unwrap returns ErrUnsupportedDatatype.
func (e *DatatypeError) Unwrap() error { return ErrUnsupportedDatatype }
