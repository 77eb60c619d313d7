// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package marker

import (
	"encoding/json"
	"image/color"
	"testing"
)

func TestFlatten(t *testing.T) {
	a := &Marker{ID: 1}
	b := &Marker{ID: 2}
	arr := &Array{Markers: []Marker{{ID: 10}, {ID: 11}, {ID: 12}}}
	empty := &Array{}

	got := Flatten([]Message{a, arr, nil, empty, b})

	wantIDs := []int{1, 10, 11, 12, 2}
	if len(got) != len(wantIDs) {
		t.Fatalf("len(Flatten) = %d, want %d", len(got), len(wantIDs))
	}
	for i, rec := range got {
		if rec.Index != i+1 {
			t.Errorf("record %d index = %d, want %d", i, rec.Index, i+1)
		}
		if rec.Marker.ID != wantIDs[i] {
			t.Errorf("record %d marker id = %d, want %d", i, rec.Marker.ID, wantIDs[i])
		}
	}
	if got[0].Marker != a {
		t.Error("single marker record should reference the input marker")
	}
	if got[1].Marker != &arr.Markers[0] {
		t.Error("array record should reference the array element")
	}
}

func TestFlatten_TypedNil(t *testing.T) {
	tests := []struct {
		name string
		msgs []Message
		want []int
	}{
		{"nil array", []Message{(*Array)(nil)}, nil},
		{"nil marker", []Message{(*Marker)(nil)}, nil},
		{"between markers", []Message{&Marker{ID: 1}, (*Array)(nil), (*Marker)(nil), &Marker{ID: 2}}, []int{1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Flatten(tt.msgs)
			if len(got) != len(tt.want) {
				t.Fatalf("len(Flatten) = %d, want %d", len(got), len(tt.want))
			}
			for i, rec := range got {
				if rec.Index != i+1 || rec.Marker.ID != tt.want[i] {
					t.Errorf("record %d = {%d, id %d}, want {%d, id %d}", i, rec.Index, rec.Marker.ID, i+1, tt.want[i])
				}
			}
		})
	}
}

func TestFlatten_Deterministic(t *testing.T) {
	msgs := []Message{&Array{Markers: []Marker{{ID: 1}, {ID: 2}}}, &Marker{ID: 3}}
	first := Flatten(msgs)
	second := Flatten(msgs)
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("record %d differs between calls: %+v vs %+v", i, first[i], second[i])
		}
	}
	if len(Flatten(nil)) != 0 {
		t.Error("Flatten(nil) should be empty")
	}
}

func TestMessages_UnmarshalJSON(t *testing.T) {
	doc := `[
		{"ns": "a", "id": 1, "type": 0, "scale": 2, "filled": 1,
		 "position": {"x": 2, "y": 3},
		 "fill_color": {"r": 1, "g": 0, "b": 0, "a": 1}},
		{"markers": [
			{"id": 2, "type": 2, "points": [{"x": 0, "y": 0}, {"x": 1, "y": 1}]},
			{"id": 3, "type": 5, "text": {"data": "hi"}, "filled": true}
		]},
		{"id": 4, "type": 4, "markers": null}
	]`

	var msgs Messages
	if err := json.Unmarshal([]byte(doc), &msgs); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("len(msgs) = %d, want 3", len(msgs))
	}

	single, ok := msgs[0].(*Marker)
	if !ok {
		t.Fatalf("msgs[0] = %T, want *Marker", msgs[0])
	}
	if single.Type != Circle || !bool(single.Filled) || single.Position != (Point{X: 2, Y: 3}) {
		t.Errorf("single marker = %+v", single)
	}
	if single.Label() != "a:1" {
		t.Errorf("Label() = %q, want a:1", single.Label())
	}

	arr, ok := msgs[1].(*Array)
	if !ok {
		t.Fatalf("msgs[1] = %T, want *Array", msgs[1])
	}
	if len(arr.Markers) != 2 || arr.Markers[1].TextData() != "hi" || !bool(arr.Markers[1].Filled) {
		t.Errorf("array = %+v", arr)
	}

	if _, ok := msgs[2].(*Marker); !ok {
		t.Errorf("msgs[2] = %T, want *Marker (null markers field)", msgs[2])
	}

	recs := Flatten(msgs)
	if len(recs) != 4 || recs[3].Marker.ID != 4 {
		t.Errorf("Flatten = %+v", recs)
	}
}

func TestMessages_UnmarshalJSONErrors(t *testing.T) {
	for _, doc := range []string{
		`{"id": 1}`,
		`[{"id": "one"}]`,
		`[{"markers": [{"type": "circle"}]}]`,
		`[{"filled": "yes"}]`,
	} {
		var msgs Messages
		if err := json.Unmarshal([]byte(doc), &msgs); err == nil {
			t.Errorf("Unmarshal(%s) succeeded, want error", doc)
		}
	}
}

func TestMessages_RoundTrip(t *testing.T) {
	in := Messages{&Marker{ID: 7, Type: Polygon}, &Array{Markers: []Marker{{ID: 8}}}}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out Messages
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if _, ok := out[1].(*Array); !ok {
		t.Errorf("out[1] = %T, want *Array", out[1])
	}
	if m, ok := out[0].(*Marker); !ok || m.Type != Polygon {
		t.Errorf("out[0] = %+v, want polygon marker", out[0])
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		k     Kind
		name  string
		known bool
	}{
		{Circle, "circle", true},
		{LineStrip, "line_strip", true},
		{LineList, "line_list", true},
		{Polygon, "polygon", true},
		{Points, "points", true},
		{Text, "text", true},
		{Kind(42), "Kind(42)", false},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.name {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.k), got, tt.name)
		}
		if got := tt.k.Known(); got != tt.known {
			t.Errorf("Kind(%d).Known() = %v, want %v", int(tt.k), got, tt.known)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := (&Marker{ID: 3}).Label(); got != "3" {
		t.Errorf("Label() = %q, want 3", got)
	}
}

func TestColor(t *testing.T) {
	tests := []struct {
		name string
		c    Color
		want color.NRGBA
	}{
		{"opaque red", Color{R: 1, A: 1}, color.NRGBA{R: 255, A: 255}},
		{"half alpha", Color{G: 1, A: 0.5}, color.NRGBA{G: 255, A: 128}},
		{"clamped", Color{R: 2, G: -1, B: 0.2, A: 1}, color.NRGBA{R: 255, B: 51, A: 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.NRGBA(); got != tt.want {
				t.Errorf("NRGBA() = %v, want %v", got, tt.want)
			}
			var _ color.Color = tt.c
			r, _, _, a := tt.c.RGBA()
			wr, _, _, wa := tt.want.RGBA()
			if r != wr || a != wa {
				t.Errorf("RGBA() = %d,%d want %d,%d", r, a, wr, wa)
			}
		})
	}
	if (Color{R: 1}).Visible() {
		t.Error("zero alpha color reported visible")
	}
}
