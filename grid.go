// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"math"

	"github.com/golang/geo/r2"
)

// Sentinel neighbor IDs carried by cell edges produced by the domain
// boundary rather than by another particle.
const (
	WallLeft   = -1
	WallRight  = -2
	WallBottom = -3
	WallTop    = -4
)

// gridBase holds the domain geometry: a rectangle [ax,bx]x[ay,by] divided
// into nx*ny uniform blocks, with optional periodicity per axis.
type gridBase struct {
	ax, bx, ay, by float64
	nx, ny, nxy    int
	xPrd, yPrd     bool

	// Block edge lengths and their inverses.
	boxx, boxy float64
	xsp, ysp   float64
}

func newGridBase(dom r2.Rect, nx, ny int, xPrd, yPrd bool) gridBase {
	g := gridBase{
		ax: dom.X.Lo, bx: dom.X.Hi,
		ay: dom.Y.Lo, by: dom.Y.Hi,
		nx: nx, ny: ny, nxy: nx * ny,
		xPrd: xPrd, yPrd: yPrd,
	}
	g.boxx = (g.bx - g.ax) / float64(nx)
	g.boxy = (g.by - g.ay) / float64(ny)
	g.xsp = 1 / g.boxx
	g.ysp = 1 / g.boxy
	return g
}

// Domain returns the primary domain rectangle.
func (g *gridBase) Domain() r2.Rect {
	return r2.RectFromPoints(r2.Point{X: g.ax, Y: g.ay}, r2.Point{X: g.bx, Y: g.by})
}

// stepInt rounds toward negative infinity.
func stepInt(a float64) int {
	return int(math.Floor(a))
}

// stepDiv computes the floor division a/b for b>0.
func stepDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// stepMod computes the true modulo of a by b, always in [0,b).
func stepMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// putRemap maps a position into the primary domain and computes the block it
// belongs to. On a periodic axis the coordinate is wrapped; on a non-periodic
// axis a position outside [lo,hi) is rejected. Positions exactly on an upper
// non-periodic face land in block index nx (or ny) and are therefore rejected.
func (g *gridBase) putRemap(x, y float64) (ij int, rx, ry float64, ok bool) {
	i := stepInt((x - g.ax) * g.xsp)
	if g.xPrd {
		l := stepMod(i, g.nx)
		x += g.boxx * float64(l-i)
		i = l
	} else if i < 0 || i >= g.nx {
		return 0, x, y, false
	}

	j := stepInt((y - g.ay) * g.ysp)
	if g.yPrd {
		l := stepMod(j, g.ny)
		y += g.boxy * float64(l-j)
		j = l
	} else if j < 0 || j >= g.ny {
		return 0, x, y, false
	}

	return i + g.nx*j, x, y, true
}

// remap is like putRemap but also reports the periodic image (ai,aj) the
// position came from, so that x == rx + ai*(bx-ax) and y == ry + aj*(by-ay).
func (g *gridBase) remap(x, y float64) (ai, aj, ci, cj int, rx, ry float64, ij int, ok bool) {
	ci = stepInt((x - g.ax) * g.xsp)
	if ci < 0 || ci >= g.nx {
		if !g.xPrd {
			return
		}
		ai = stepDiv(ci, g.nx)
		x -= float64(ai) * (g.bx - g.ax)
		ci -= ai * g.nx
	}

	cj = stepInt((y - g.ay) * g.ysp)
	if cj < 0 || cj >= g.ny {
		if !g.yPrd {
			return
		}
		aj = stepDiv(cj, g.ny)
		y -= float64(aj) * (g.by - g.ay)
		cj -= aj * g.ny
	}

	rx, ry = x, y
	ij = ci + g.nx*cj
	ok = true
	return
}

// blockMinDistSq returns a lower bound on the squared distance from (x,y) to
// any point of image block (i,j). Indices outside [0,nx)x[0,ny) address
// periodic images of the primary grid.
func (g *gridBase) blockMinDistSq(x, y float64, i, j int) float64 {
	var dx, dy float64
	if lo := g.ax + float64(i)*g.boxx; x < lo {
		dx = lo - x
	} else if hi := lo + g.boxx; x > hi {
		dx = x - hi
	}
	if lo := g.ay + float64(j)*g.boxy; y < lo {
		dy = lo - y
	} else if hi := lo + g.boxy; y > hi {
		dy = y - hi
	}
	return dx*dx + dy*dy
}
