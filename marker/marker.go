// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package marker models image overlay markers (the ROS ImageMarker and
// ImageMarkerArray messages) and flattens them into one indexed sequence.
package marker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind is the shape a marker draws.
type Kind int

// Marker kinds, numbered as on the wire.
const (
	Circle    Kind = 0
	LineStrip Kind = 1
	LineList  Kind = 2
	Polygon   Kind = 3
	Points    Kind = 4
	Text      Kind = 5
)

var kindNames = map[Kind]string{
	Circle:    "circle",
	LineStrip: "line_strip",
	LineList:  "line_list",
	Polygon:   "polygon",
	Points:    "points",
	Text:      "text",
}

// String returns the lower-case wire name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Known reports whether k is one of the defined kinds.
func (k Kind) Known() bool {
	_, ok := kindNames[k]
	return ok
}

// Point is a marker coordinate in image pixels. Z is carried but unused.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z,omitempty"`
}

// Flag is a boolean that also decodes from the 0/1 integers ROS uses for
// uint8 flags.
type Flag bool

// UnmarshalJSON accepts true, false and numbers.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true":
		*f = true
		return nil
	case "false", "null":
		*f = false
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("marker: flag must be boolean or number, got %s", data)
	}
	*f = n != 0
	return nil
}

// String is the std_msgs/String wrapper carried by text markers.
type String struct {
	Data string `json:"data"`
}

// Marker is one image overlay marker.
type Marker struct {
	Namespace     string  `json:"ns"`
	ID            int     `json:"id"`
	Type          Kind    `json:"type"`
	Action        int     `json:"action"`
	Position      Point   `json:"position"`
	Scale         float64 `json:"scale"`
	OutlineColor  Color   `json:"outline_color"`
	Filled        Flag    `json:"filled"`
	FillColor     Color   `json:"fill_color"`
	Points        []Point `json:"points"`
	OutlineColors []Color `json:"outline_colors"`
	Text          *String `json:"text,omitempty"`
}

// Label identifies the marker as "ns:id", or just the id without a
// namespace.
func (m *Marker) Label() string {
	if m.Namespace == "" {
		return strconv.Itoa(m.ID)
	}
	return m.Namespace + ":" + strconv.Itoa(m.ID)
}

// TextData returns the marker text, "" when there is none.
func (m *Marker) TextData() string {
	if m.Text == nil {
		return ""
	}
	return m.Text.Data
}

// Array is a message carrying several markers.
type Array struct {
	Markers []Marker `json:"markers"`
}

// Message is either a *Marker or an *Array.
type Message interface {
	markers() []*Marker
}

func (m *Marker) markers() []*Marker {
	if m == nil {
		return nil
	}
	return []*Marker{m}
}

func (a *Array) markers() []*Marker {
	if a == nil {
		return nil
	}
	out := make([]*Marker, len(a.Markers))
	for i := range a.Markers {
		out[i] = &a.Markers[i]
	}
	return out
}

// Messages is an ordered list of marker messages. In JSON, an element with
// a "markers" array decodes as an *Array and anything else as a *Marker.
type Messages []Message

// UnmarshalJSON decodes a JSON array of single markers and marker arrays.
func (ms *Messages) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Messages, 0, len(raw))
	for i, elem := range raw {
		var probe struct {
			Markers json.RawMessage `json:"markers"`
		}
		if err := json.Unmarshal(elem, &probe); err != nil {
			return fmt.Errorf("marker: message %d: %w", i, err)
		}
		if len(probe.Markers) > 0 && probe.Markers[0] == '[' {
			var a Array
			if err := json.Unmarshal(elem, &a); err != nil {
				return fmt.Errorf("marker: message %d: %w", i, err)
			}
			out = append(out, &a)
			continue
		}
		var m Marker
		if err := json.Unmarshal(elem, &m); err != nil {
			return fmt.Errorf("marker: message %d: %w", i, err)
		}
		out = append(out, &m)
	}
	*ms = out
	return nil
}

// Record is a flattened marker with its 1-based render order. The index is
// the marker's identity in the hit-map; 0 means no marker.
type Record struct {
	Index  int     `json:"index"`
	Marker *Marker `json:"marker"`
}

// Flatten expands arrays in place and numbers the markers from 1 in input
// order. Nil messages, typed nil pointers included, are skipped.
func Flatten(msgs []Message) []Record {
	var out []Record
	for _, msg := range msgs {
		if msg == nil {
			continue
		}
		for _, m := range msg.markers() {
			out = append(out, Record{Index: len(out) + 1, Marker: m})
		}
	}
	return out
}
