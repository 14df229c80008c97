// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
)

func unitDomain() r2.Rect {
	return r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1})
}

func TestStepInt(t *testing.T) {
	tests := []struct {
		a    float64
		want int
	}{
		{0, 0},
		{0.9, 0},
		{1.0, 1},
		{-0.1, -1},
		{-1.0, -1},
		{-1.5, -2},
		{3.7, 3},
	}
	for _, tt := range tests {
		if got := stepInt(tt.a); got != tt.want {
			t.Errorf("stepInt(%v) = %v, want %v", tt.a, got, tt.want)
		}
	}
}

func TestStepDiv(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{0, 4, 0},
		{3, 4, 0},
		{4, 4, 1},
		{7, 4, 1},
		{-1, 4, -1},
		{-4, 4, -1},
		{-5, 4, -2},
	}
	for _, tt := range tests {
		if got := stepDiv(tt.a, tt.b); got != tt.want {
			t.Errorf("stepDiv(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestStepMod(t *testing.T) {
	tests := []struct {
		a, b, want int
	}{
		{0, 4, 0},
		{3, 4, 3},
		{4, 4, 0},
		{7, 4, 3},
		{-1, 4, 3},
		{-4, 4, 0},
		{-5, 4, 3},
	}
	for _, tt := range tests {
		if got := stepMod(tt.a, tt.b); got != tt.want {
			t.Errorf("stepMod(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestGridBase_PutRemap(t *testing.T) {
	tests := []struct {
		name       string
		xPrd, yPrd bool
		x, y       float64
		wantBlock  int
		wantX      float64
		wantY      float64
		wantOK     bool
	}{
		{"interior", false, false, 0.3, 0.7, 1 + 4*2, 0.3, 0.7, true},
		{"origin corner", false, false, 0, 0, 0, 0, 0, true},
		{"upper face rejected", false, false, 1.0, 0.5, 0, 0, 0, false},
		{"outside rejected", false, false, 1.5, 0.5, 0, 0, 0, false},
		{"below rejected", false, false, 0.5, -0.1, 0, 0, 0, false},
		{"x wrap", true, false, 1.5, 0.5, 2 + 4*2, 0.5, 0.5, true},
		{"x wrap negative", true, false, -0.25, 0.5, 3 + 4*2, 0.75, 0.5, true},
		{"y wrap", false, true, 0.5, 1.25, 2 + 4*1, 0.5, 0.25, true},
		{"upper face periodic", true, true, 1.0, 1.0, 0, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGridBase(unitDomain(), 4, 4, tt.xPrd, tt.yPrd)
			ij, x, y, ok := g.putRemap(tt.x, tt.y)
			if ok != tt.wantOK {
				t.Fatalf("putRemap(%v, %v) ok = %v, want %v", tt.x, tt.y, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if ij != tt.wantBlock {
				t.Errorf("putRemap(%v, %v) block = %v, want %v", tt.x, tt.y, ij, tt.wantBlock)
			}
			if math.Abs(x-tt.wantX) > 1e-14 || math.Abs(y-tt.wantY) > 1e-14 {
				t.Errorf("putRemap(%v, %v) position = (%v, %v), want (%v, %v)",
					tt.x, tt.y, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestGridBase_Remap(t *testing.T) {
	tests := []struct {
		name       string
		xPrd, yPrd bool
		x, y       float64
		wantAI     int
		wantAJ     int
		wantX      float64
		wantY      float64
		wantOK     bool
	}{
		{"interior", false, false, 0.3, 0.7, 0, 0, 0.3, 0.7, true},
		{"outside non-periodic", false, false, 1.5, 0.5, 0, 0, 0, 0, false},
		{"one image right", true, true, 1.5, 0.5, 1, 0, 0.5, 0.5, true},
		{"one image left", true, true, -0.25, 0.5, -1, 0, 0.75, 0.5, true},
		{"two images up", true, true, 0.5, 2.5, 0, 2, 0.5, 0.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGridBase(unitDomain(), 4, 4, tt.xPrd, tt.yPrd)
			ai, aj, ci, cj, x, y, ij, ok := g.remap(tt.x, tt.y)
			if ok != tt.wantOK {
				t.Fatalf("remap(%v, %v) ok = %v, want %v", tt.x, tt.y, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if ai != tt.wantAI || aj != tt.wantAJ {
				t.Errorf("remap(%v, %v) image = (%v, %v), want (%v, %v)",
					tt.x, tt.y, ai, aj, tt.wantAI, tt.wantAJ)
			}
			if math.Abs(x-tt.wantX) > 1e-14 || math.Abs(y-tt.wantY) > 1e-14 {
				t.Errorf("remap(%v, %v) position = (%v, %v), want (%v, %v)",
					tt.x, tt.y, x, y, tt.wantX, tt.wantY)
			}
			// The remapped position must reconstruct the input.
			if rx := x + float64(ai)*1.0; math.Abs(rx-tt.x) > 1e-14 {
				t.Errorf("remap(%v, %v) does not reconstruct x: %v", tt.x, tt.y, rx)
			}
			if ij != ci+4*cj {
				t.Errorf("remap(%v, %v) block = %v, want %v", tt.x, tt.y, ij, ci+4*cj)
			}
		})
	}
}

func TestGridBase_BlockMinDistSq(t *testing.T) {
	g := newGridBase(unitDomain(), 4, 4, false, false)
	tests := []struct {
		name string
		x, y float64
		i, j int
		want float64
	}{
		{"inside own block", 0.1, 0.1, 0, 0, 0},
		{"adjacent right", 0.1, 0.1, 1, 0, 0.15 * 0.15},
		{"diagonal", 0.1, 0.1, 1, 1, 2 * 0.15 * 0.15},
		{"periodic image", 0.1, 0.1, -1, 0, 0.1 * 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.blockMinDistSq(tt.x, tt.y, tt.i, tt.j); math.Abs(got-tt.want) > 1e-14 {
				t.Errorf("blockMinDistSq(%v, %v, %v, %v) = %v, want %v",
					tt.x, tt.y, tt.i, tt.j, got, tt.want)
			}
		})
	}
}
