// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package camera maps points between rectified and raw pixel coordinates of
// a pinhole camera calibrated the ROS way (sensor_msgs/CameraInfo).
package camera

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrInvalidCameraModel is returned by New for calibrations it cannot use.
var ErrInvalidCameraModel = errors.New("camera: invalid camera model")

// Distortion models understood by New.
const (
	PlumbBob           = "plumb_bob"
	RationalPolynomial = "rational_polynomial"
)

// Info is a camera calibration message. JSON field matching is case
// insensitive, so both ROS 1 (D, K, R, P) and ROS 2 (d, k, r, p) spellings
// decode.
type Info struct {
	Width           int       `json:"width"`
	Height          int       `json:"height"`
	DistortionModel string    `json:"distortion_model"`
	D               []float64 `json:"D"`
	K               []float64 `json:"K"`
	R               []float64 `json:"R"`
	P               []float64 `json:"P"`
}

// Point is a 2D pixel coordinate.
type Point struct {
	X, Y float64
}

// Model un-rectifies points for one calibration. A nil *Model is valid and
// maps every point to itself.
type Model struct {
	d        [8]float64
	k        [9]float64
	p        [12]float64
	rt       *mat.Dense
	rational bool
}

// New validates info and precomputes the inverse rectification rotation.
func New(info *Info) (*Model, error) {
	if info == nil {
		return nil, fmt.Errorf("%w: missing calibration", ErrInvalidCameraModel)
	}
	if len(info.K) != 9 {
		return nil, fmt.Errorf("%w: K has %d elements, want 9", ErrInvalidCameraModel, len(info.K))
	}
	if len(info.P) != 12 {
		return nil, fmt.Errorf("%w: P has %d elements, want 12", ErrInvalidCameraModel, len(info.P))
	}
	if len(info.R) != 9 {
		return nil, fmt.Errorf("%w: R has %d elements, want 9", ErrInvalidCameraModel, len(info.R))
	}

	m := &Model{}
	switch info.DistortionModel {
	case "", PlumbBob:
		if len(info.D) > 5 {
			return nil, fmt.Errorf("%w: %s takes 5 coefficients, got %d", ErrInvalidCameraModel, PlumbBob, len(info.D))
		}
	case RationalPolynomial:
		if len(info.D) > 8 {
			return nil, fmt.Errorf("%w: %s takes 8 coefficients, got %d", ErrInvalidCameraModel, RationalPolynomial, len(info.D))
		}
		m.rational = true
	default:
		return nil, fmt.Errorf("%w: unsupported distortion model %q", ErrInvalidCameraModel, info.DistortionModel)
	}
	copy(m.d[:], info.D)
	copy(m.k[:], info.K)
	copy(m.p[:], info.P)

	if m.p[0] == 0 || m.p[5] == 0 {
		return nil, fmt.Errorf("%w: projection has zero focal length", ErrInvalidCameraModel)
	}

	r := mat.NewDense(3, 3, append([]float64(nil), info.R...))
	if mat.Equal(r, mat.NewDense(3, 3, nil)) {
		r = identity()
	}
	m.rt = mat.DenseCopyOf(r.T())
	return m, nil
}

func identity() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
}

// UnrectifyPoint maps a point in rectified image coordinates to the
// corresponding raw, lens-distorted pixel.
func (m *Model) UnrectifyPoint(pt Point) Point {
	if m == nil {
		return pt
	}
	p, k, d := &m.p, &m.k, &m.d

	// Back-project through P onto the normalized rectified plane.
	x := (pt.X - p[2] - p[3]) / p[0]
	y := (pt.Y - p[6] - p[7]) / p[5]

	// Undo the rectification rotation.
	var ray mat.VecDense
	ray.MulVec(m.rt, mat.NewVecDense(3, []float64{x, y, 1}))
	w := ray.AtVec(2)
	if w == 0 {
		return pt
	}
	xp := ray.AtVec(0) / w
	yp := ray.AtVec(1) / w

	k1, k2, p1, p2, k3 := d[0], d[1], d[2], d[3], d[4]
	r2 := xp*xp + yp*yp
	r4 := r2 * r2
	r6 := r4 * r2
	barrel := 1 + k1*r2 + k2*r4 + k3*r6
	if m.rational {
		k4, k5, k6 := d[5], d[6], d[7]
		if den := 1 + k4*r2 + k5*r4 + k6*r6; den != 0 {
			barrel /= den
		}
	}

	xpp := xp*barrel + 2*p1*xp*yp + p2*(r2+2*xp*xp)
	ypp := yp*barrel + p1*(r2+2*yp*yp) + 2*p2*xp*yp

	return Point{
		X: xpp*k[0] + k[2],
		Y: ypp*k[4] + k[5],
	}
}
