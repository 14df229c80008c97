// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides helpers for generating particle sets for Voronoi
// containers.
package utils

import (
	"math/rand"

	"github.com/golang/geo/r2"
)

// GenerateRandomPoints generates cnt uniform random points inside the domain
// rectangle. The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, seed int64, dom r2.Rect) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	pts := make([]r2.Point, cnt)

	for i := range cnt {
		pts[i] = r2.Point{
			X: dom.X.Lo + random.Float64()*dom.X.Length(),
			Y: dom.Y.Lo + random.Float64()*dom.Y.Length(),
		}
	}

	return pts
}

// GenerateRandomRadii generates cnt uniform random radii in [rmin, rmax).
// The seed parameter ensures reproducibility.
func GenerateRandomRadii(cnt int, seed int64, rmin, rmax float64) []float64 {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	radii := make([]float64, cnt)

	for i := range cnt {
		radii[i] = rmin + random.Float64()*(rmax-rmin)
	}

	return radii
}
