// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"math"

	"github.com/golang/geo/r2"
)

// VoronoiCell is a convex polygon in the coordinate frame of its generating
// site (site at the origin). Vertices form a doubly linked counter-clockwise
// ring stored in an index arena with a free list; each vertex carries the
// neighbor ID of the outgoing edge to the next vertex.
//
// A cell returned by the compute entry points is valid until the next
// computation on the same container worker; use Clone to keep it.
type VoronoiCell struct {
	x, y       []float64
	nb         []int
	next, prev []int

	free []int
	head int
	n    int

	// Snap tolerance for Plane, in units of squared length. Zero means
	// exact comparisons.
	tol float64

	// Cut classification scratch, reused between Plane calls.
	ring []int
	s    []float64
}

// Init resets the cell to the axis-aligned rectangle
// [xlo,xhi]x[ylo,yhi], which must contain the origin. The four edges carry
// the wall sentinel IDs.
func (c *VoronoiCell) Init(xlo, xhi, ylo, yhi float64) {
	c.x = c.x[:0]
	c.y = c.y[:0]
	c.nb = c.nb[:0]
	c.next = c.next[:0]
	c.prev = c.prev[:0]
	c.free = c.free[:0]

	c.alloc(xlo, ylo, WallBottom)
	c.alloc(xhi, ylo, WallRight)
	c.alloc(xhi, yhi, WallTop)
	c.alloc(xlo, yhi, WallLeft)
	for i := range 4 {
		c.next[i] = (i + 1) & 3
		c.prev[i] = (i + 3) & 3
	}
	c.head = 0
	c.n = 4
}

// alloc takes a vertex slot from the free list, or extends the arena.
func (c *VoronoiCell) alloc(x, y float64, nb int) int {
	if l := len(c.free); l > 0 {
		v := c.free[l-1]
		c.free = c.free[:l-1]
		c.x[v], c.y[v], c.nb[v] = x, y, nb
		return v
	}
	c.x = append(c.x, x)
	c.y = append(c.y, y)
	c.nb = append(c.nb, nb)
	c.next = append(c.next, 0)
	c.prev = append(c.prev, 0)
	return len(c.x) - 1
}

func (c *VoronoiCell) release(v int) {
	c.free = append(c.free, v)
}

// NumVertices returns the number of vertices; zero for an empty cell.
func (c *VoronoiCell) NumVertices() int {
	return c.n
}

// Plane cuts the cell by the half-plane {p : 2 p.(dx,dy) <= rs}, the side of
// the perpendicular bisector of the site and a neighbor displaced by (dx,dy)
// that contains the site. For radical cells rs carries the difference of
// squared radii on top of dx*dx+dy*dy. The edges created by the cut record
// id as their neighbor.
//
// It returns false if the cut leaves no cell, in which case the cell is
// empty and must not be queried further until the next Init.
func (c *VoronoiCell) Plane(dx, dy, rs float64, id int) bool {
	if c.n == 0 {
		return false
	}

	// Classify every vertex by the signed residual of the cut line.
	c.ring = c.ring[:0]
	c.s = c.s[:0]
	anyIn, anyOut := false, false
	v := c.head
	for range c.n {
		sv := 2*(c.x[v]*dx+c.y[v]*dy) - rs
		c.ring = append(c.ring, v)
		c.s = append(c.s, sv)
		if sv < -c.tol {
			anyIn = true
		} else if sv > c.tol {
			anyOut = true
		}
		v = c.next[v]
	}
	if !anyOut {
		return true
	}
	if !anyIn {
		c.n = 0
		return false
	}

	// The outside vertices of a convex ring form one contiguous run. Find
	// its first element, then its extent.
	m := len(c.ring)
	start := -1
	for i := range m {
		if c.s[i] > c.tol && c.s[(i+m-1)%m] <= c.tol {
			start = i
			break
		}
	}
	end := start
	runLen := 1
	for c.s[(end+1)%m] > c.tol {
		end = (end + 1) % m
		runLen++
	}
	pi, ni := (start+m-1)%m, (end+1)%m
	pv, nv := c.ring[pi], c.ring[ni]
	firstOut, lastOut := c.ring[start], c.ring[end]

	// Boundary vertices adjacent to the run are reused in place of
	// near-coincident intersection points.
	snapA := c.s[pi] >= -c.tol
	snapB := c.s[ni] >= -c.tol
	var ax, ay, bx, by float64
	if !snapA {
		t := c.s[pi] / (c.s[pi] - c.s[start])
		ax = c.x[pv] + t*(c.x[firstOut]-c.x[pv])
		ay = c.y[pv] + t*(c.y[firstOut]-c.y[pv])
	}
	if !snapB {
		t := c.s[end] / (c.s[end] - c.s[ni])
		bx = c.x[lastOut] + t*(c.x[nv]-c.x[lastOut])
		by = c.y[lastOut] + t*(c.y[nv]-c.y[lastOut])
	}
	lastNb := c.nb[lastOut]

	nn := c.n - runLen
	if !snapA {
		nn++
	}
	if !snapB {
		nn++
	}
	if nn < 3 {
		c.n = 0
		return false
	}

	for i, k := start, 0; k < runLen; i, k = (i+1)%m, k+1 {
		c.release(c.ring[i])
	}

	a := pv
	if !snapA {
		a = c.alloc(ax, ay, id)
		c.next[pv] = a
		c.prev[a] = pv
	}
	b := nv
	if !snapB {
		b = c.alloc(bx, by, lastNb)
		c.next[b] = nv
		c.prev[nv] = b
	}
	c.next[a] = b
	c.prev[b] = a
	c.nb[a] = id

	c.head = a
	c.n = nn
	return true
}

// Area returns the cell area via the shoelace formula, or zero for an empty
// cell.
func (c *VoronoiCell) Area() float64 {
	if c.n == 0 {
		return 0
	}
	area := 0.0
	v := c.head
	for range c.n {
		w := c.next[v]
		area += c.x[v]*c.y[w] - c.x[w]*c.y[v]
		v = w
	}
	return 0.5 * area
}

// Perimeter returns the total edge length of the cell.
func (c *VoronoiCell) Perimeter() float64 {
	if c.n == 0 {
		return 0
	}
	per := 0.0
	v := c.head
	for range c.n {
		w := c.next[v]
		per += math.Hypot(c.x[w]-c.x[v], c.y[w]-c.y[v])
		v = w
	}
	return per
}

// Centroid returns the centroid of the cell in the site's local frame.
func (c *VoronoiCell) Centroid() r2.Point {
	if c.n == 0 {
		return r2.Point{}
	}
	var cx, cy, area float64
	v := c.head
	for range c.n {
		w := c.next[v]
		cr := c.x[v]*c.y[w] - c.x[w]*c.y[v]
		cx += (c.x[v] + c.x[w]) * cr
		cy += (c.y[v] + c.y[w]) * cr
		area += cr
		v = w
	}
	return r2.Point{X: cx / (3 * area), Y: cy / (3 * area)}
}

// MaxRadiusSquared returns the largest squared distance from the site to a
// cell vertex.
func (c *VoronoiCell) MaxRadiusSquared() float64 {
	r := 0.0
	v := c.head
	for range c.n {
		if d := c.x[v]*c.x[v] + c.y[v]*c.y[v]; d > r {
			r = d
		}
		v = c.next[v]
	}
	return r
}

// Vertices returns the cell vertices in counter-clockwise ring order, in the
// site's local frame.
func (c *VoronoiCell) Vertices() []r2.Point {
	pts := make([]r2.Point, 0, c.n)
	v := c.head
	for range c.n {
		pts = append(pts, r2.Point{X: c.x[v], Y: c.y[v]})
		v = c.next[v]
	}
	return pts
}

// Neighbors returns the neighbor IDs of the cell edges, aligned with
// Vertices: entry i belongs to the edge from vertex i to vertex i+1.
// Negative entries are wall sentinels.
func (c *VoronoiCell) Neighbors() []int {
	nbs := make([]int, 0, c.n)
	v := c.head
	for range c.n {
		nbs = append(nbs, c.nb[v])
		v = c.next[v]
	}
	return nbs
}

// Clone returns an independent copy of the cell.
func (c *VoronoiCell) Clone() *VoronoiCell {
	d := &VoronoiCell{tol: c.tol}
	pts := c.Vertices()
	nbs := c.Neighbors()
	for i, p := range pts {
		d.alloc(p.X, p.Y, nbs[i])
	}
	d.n = len(pts)
	for i := range pts {
		d.next[i] = (i + 1) % d.n
		d.prev[i] = (i + d.n - 1) % d.n
	}
	return d
}
