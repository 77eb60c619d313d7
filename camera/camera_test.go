// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package camera

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func pinhole() *Info {
	return &Info{
		Width:  640,
		Height: 480,
		D:      []float64{0, 0, 0, 0, 0},
		K:      []float64{500, 0, 320, 0, 500, 240, 0, 0, 1},
		R:      []float64{1, 0, 0, 0, 1, 0, 0, 0, 1},
		P:      []float64{500, 0, 320, 0, 0, 500, 240, 0, 0, 0, 1, 0},
	}
}

func near(a, b Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestUnrectifyPoint_NilModel(t *testing.T) {
	var m *Model
	p := Point{X: 12.5, Y: -3}
	if got := m.UnrectifyPoint(p); got != p {
		t.Errorf("nil model UnrectifyPoint(%v) = %v, want identity", p, got)
	}
}

func TestUnrectifyPoint_NoDistortion(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Info)
	}{
		{"plumb_bob", func(i *Info) { i.DistortionModel = PlumbBob }},
		{"empty model", func(i *Info) {}},
		{"short D", func(i *Info) { i.D = nil }},
		{"zero R", func(i *Info) { i.R = make([]float64, 9) }},
		{"rational", func(i *Info) { i.DistortionModel = RationalPolynomial; i.D = make([]float64, 8) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := pinhole()
			tt.modify(info)
			m, err := New(info)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			for _, p := range []Point{{0, 0}, {320, 240}, {100.5, 400.25}} {
				if got := m.UnrectifyPoint(p); !near(got, p) {
					t.Errorf("UnrectifyPoint(%v) = %v, want unchanged", p, got)
				}
			}
		})
	}
}

func TestUnrectifyPoint_RadialDistortion(t *testing.T) {
	info := pinhole()
	info.DistortionModel = PlumbBob
	info.D = []float64{0.1, 0, 0, 0, 0}
	m, err := New(info)
	if err != nil {
		t.Fatal(err)
	}

	// Normalized (0.2, 0): r2 = 0.04, barrel = 1.004, x'' = 0.2008.
	got := m.UnrectifyPoint(Point{X: 420, Y: 240})
	want := Point{X: 0.2008*500 + 320, Y: 240}
	if !near(got, want) {
		t.Errorf("UnrectifyPoint = %v, want %v", got, want)
	}

	// The principal point does not move.
	if got := m.UnrectifyPoint(Point{X: 320, Y: 240}); !near(got, Point{X: 320, Y: 240}) {
		t.Errorf("principal point moved to %v", got)
	}
}

func TestUnrectifyPoint_TangentialDistortion(t *testing.T) {
	info := pinhole()
	info.D = []float64{0, 0, 0.01, 0.02, 0}
	m, err := New(info)
	if err != nil {
		t.Fatal(err)
	}

	// Normalized (0.2, 0.1): r2 = 0.05.
	xp, yp, r2 := 0.2, 0.1, 0.05
	xpp := xp + 2*0.01*xp*yp + 0.02*(r2+2*xp*xp)
	ypp := yp + 0.01*(r2+2*yp*yp) + 2*0.02*xp*yp
	got := m.UnrectifyPoint(Point{X: 420, Y: 290})
	want := Point{X: xpp*500 + 320, Y: ypp*500 + 240}
	if !near(got, want) {
		t.Errorf("UnrectifyPoint = %v, want %v", got, want)
	}
}

func TestUnrectifyPoint_RationalDenominator(t *testing.T) {
	info := pinhole()
	info.DistortionModel = RationalPolynomial
	info.D = []float64{0, 0, 0, 0, 0, 0.25, 0, 0}
	m, err := New(info)
	if err != nil {
		t.Fatal(err)
	}

	// Normalized (0.2, 0): barrel = 1 / (1 + 0.25*0.04) = 1/1.01.
	got := m.UnrectifyPoint(Point{X: 420, Y: 240})
	want := Point{X: 0.2/1.01*500 + 320, Y: 240}
	if !near(got, want) {
		t.Errorf("UnrectifyPoint = %v, want %v", got, want)
	}
}

func TestUnrectifyPoint_Rotation(t *testing.T) {
	info := pinhole()
	// 90 degrees about the optical axis: R maps (x, y) to (-y, x), R^T back.
	info.R = []float64{0, -1, 0, 1, 0, 0, 0, 0, 1}
	m, err := New(info)
	if err != nil {
		t.Fatal(err)
	}

	// Normalized (0.2, 0) becomes R^T * (0.2, 0, 1) = (0, -0.2, 1).
	got := m.UnrectifyPoint(Point{X: 420, Y: 240})
	want := Point{X: 320, Y: -0.2*500 + 240}
	if !near(got, want) {
		t.Errorf("UnrectifyPoint = %v, want %v", got, want)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Info)
	}{
		{"short K", func(i *Info) { i.K = i.K[:8] }},
		{"short P", func(i *Info) { i.P = i.P[:9] }},
		{"missing R", func(i *Info) { i.R = nil }},
		{"unknown model", func(i *Info) { i.DistortionModel = "equidistant" }},
		{"too many plumb_bob coefficients", func(i *Info) { i.D = make([]float64, 8) }},
		{"zero focal length", func(i *Info) { i.P[0] = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := pinhole()
			tt.modify(info)
			if _, err := New(info); !errors.Is(err, ErrInvalidCameraModel) {
				t.Errorf("New() error = %v, want ErrInvalidCameraModel", err)
			}
		})
	}

	if _, err := New(nil); !errors.Is(err, ErrInvalidCameraModel) {
		t.Errorf("New(nil) error = %v, want ErrInvalidCameraModel", err)
	}
}

func TestInfo_JSONDialects(t *testing.T) {
	for _, doc := range []string{
		`{"width":4,"height":3,"distortion_model":"plumb_bob","D":[0.1],"K":[1,0,0,0,1,0,0,0,1],"R":[1,0,0,0,1,0,0,0,1],"P":[1,0,0,0,0,1,0,0,0,0,1,0]}`,
		`{"width":4,"height":3,"distortion_model":"plumb_bob","d":[0.1],"k":[1,0,0,0,1,0,0,0,1],"r":[1,0,0,0,1,0,0,0,1],"p":[1,0,0,0,0,1,0,0,0,0,1,0]}`,
	} {
		var info Info
		if err := json.Unmarshal([]byte(doc), &info); err != nil {
			t.Fatalf("Unmarshal: %v", err)
		}
		if len(info.K) != 9 || len(info.P) != 12 || len(info.D) != 1 {
			t.Errorf("decoded %+v, want all matrices", info)
		}
		if _, err := New(&info); err != nil {
			t.Errorf("New() error = %v", err)
		}
	}
}
