// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"container/heap"
	"math"
)

// blockDist is a candidate image block keyed by a lower bound on its squared
// distance from the query site.
type blockDist struct {
	d2   float64
	i, j int
}

type blockHeap []blockDist

func (h blockHeap) Len() int           { return len(h) }
func (h blockHeap) Less(a, b int) bool { return h[a].d2 < h[b].d2 }
func (h blockHeap) Swap(a, b int)      { h[a], h[b] = h[b], h[a] }
func (h *blockHeap) Push(x any)        { *h = append(*h, x.(blockDist)) }
func (h *blockHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// computeScratch is the per-worker workspace for cell computation and point
// location: a frontier of image blocks ordered by distance, a visited stamp
// grid sized to the periodic image range, and a cell polygon.
type computeScratch struct {
	gx, gy int
	visit  []int
	stamp  int
	h      blockHeap
	cell   VoronoiCell
}

func newComputeScratch(g *gridBase, tol float64) *computeScratch {
	gx, gy := g.nx, g.ny
	if g.xPrd {
		gx = 2*g.nx + 1
	}
	if g.yPrd {
		gy = 2*g.ny + 1
	}
	s := &computeScratch{gx: gx, gy: gy, visit: make([]int, gx*gy)}
	s.cell.tol = tol
	return s
}

// frontier seeds the scratch for a query centered on block (ci,cj) and
// returns the image index ranges the search may visit. On a periodic axis
// the range spans one full domain width on either side of the seed block.
func (s *computeScratch) frontier(g *gridBase, ci, cj int) (baseI, baseJ int) {
	baseI, baseJ = 0, 0
	if g.xPrd {
		baseI = ci - g.nx
	}
	if g.yPrd {
		baseJ = cj - g.ny
	}
	s.stamp++
	s.h = s.h[:0]
	s.visit[(cj-baseJ)*s.gx+(ci-baseI)] = s.stamp
	heap.Push(&s.h, blockDist{0, ci, cj})
	return baseI, baseJ
}

// expand pushes the unvisited 8-connected neighbors of image block (i,j)
// onto the frontier.
func (s *computeScratch) expand(g *gridBase, x, y float64, i, j, baseI, baseJ int) {
	for dj := -1; dj <= 1; dj++ {
		nj := j + dj
		if nj < baseJ || nj >= baseJ+s.gy {
			continue
		}
		for di := -1; di <= 1; di++ {
			if di == 0 && dj == 0 {
				continue
			}
			ni := i + di
			if ni < baseI || ni >= baseI+s.gx {
				continue
			}
			idx := (nj-baseJ)*s.gx + (ni - baseI)
			if s.visit[idx] == s.stamp {
				continue
			}
			s.visit[idx] = s.stamp
			heap.Push(&s.h, blockDist{g.blockMinDistSq(x, y, ni, nj), ni, nj})
		}
	}
}

// computeCell computes the Voronoi cell of the site stored at
// (selfBlock,selfSlot), located at (x,y) in block (ci,cj), into scr.cell.
// For poly containers rsite is the site radius. It returns false if the cell
// is cut away entirely.
func (c *containerBase) computeCell(scr *computeScratch, x, y, rsite float64,
	ci, cj, selfBlock, selfSlot int) bool {
	cell := &scr.cell

	// The initial cell is the domain box in the site's local frame. On a
	// periodic axis it is instead centered on the site, since any cell fits
	// within one domain length of its generator.
	xlo, xhi := c.ax-x, c.bx-x
	if c.xPrd {
		h := 0.5 * (c.bx - c.ax)
		xlo, xhi = -h, h
	}
	ylo, yhi := c.ay-y, c.by-y
	if c.yPrd {
		h := 0.5 * (c.by - c.ay)
		ylo, yhi = -h, h
	}
	cell.Init(xlo, xhi, ylo, yhi)

	radical := c.ps == 3
	baseI, baseJ := scr.frontier(&c.gridBase, ci, cj)
	for len(scr.h) > 0 {
		bd := heap.Pop(&scr.h).(blockDist)

		// Termination: no site in a block at least twice the cell
		// circumradius away (plus the largest radius, for power
		// diagrams) can reach inside the cell.
		crs := cell.MaxRadiusSquared()
		bound := 4 * crs
		if radical {
			rr := 2*math.Sqrt(crs) + c.maxRadius
			bound = rr * rr
		}
		if bd.d2 >= bound {
			break
		}

		im, jm := bd.i, bd.j
		var dispX, dispY float64
		if c.xPrd {
			m := stepMod(bd.i, c.nx)
			dispX = float64((bd.i-m)/c.nx) * (c.bx - c.ax)
			im = m
		}
		if c.yPrd {
			m := stepMod(bd.j, c.ny)
			dispY = float64((bd.j-m)/c.ny) * (c.by - c.ay)
			jm = m
		}
		blk := im + c.nx*jm
		primary := dispX == 0 && dispY == 0

		pp := c.p[blk]
		ids := c.id[blk]
		for q := range int(c.co[blk]) {
			if primary && blk == selfBlock && q == selfSlot {
				continue
			}
			dx := pp[c.ps*q] + dispX - x
			dy := pp[c.ps*q+1] + dispY - y
			rsq := dx*dx + dy*dy
			if rsq >= bound {
				continue
			}
			rs := rsq
			if radical {
				rq := pp[c.ps*q+2]
				rs += rsite*rsite - rq*rq
			}
			if !cell.Plane(dx, dy, rs, ids[q]) {
				return false
			}
		}

		scr.expand(&c.gridBase, x, y, bd.i, bd.j, baseI, baseJ)
	}
	return true
}

// findNearest locates the particle with the smallest (power) distance to the
// point (x,y) in block (ci,cj). The returned qi,qj count how many domain
// widths the matching periodic image is displaced from the primary domain.
func (c *containerBase) findNearest(scr *computeScratch, x, y float64,
	ci, cj int) (blk, slot, qi, qj int, found bool) {
	radical := c.ps == 3
	margin := 0.0
	if radical {
		margin = c.maxRadius * c.maxRadius
	}

	best := math.MaxFloat64
	baseI, baseJ := scr.frontier(&c.gridBase, ci, cj)
	for len(scr.h) > 0 {
		bd := heap.Pop(&scr.h).(blockDist)
		if bd.d2-margin >= best {
			break
		}

		im, jm, bqi, bqj := bd.i, bd.j, 0, 0
		var dispX, dispY float64
		if c.xPrd {
			m := stepMod(bd.i, c.nx)
			bqi = (bd.i - m) / c.nx
			dispX = float64(bqi) * (c.bx - c.ax)
			im = m
		}
		if c.yPrd {
			m := stepMod(bd.j, c.ny)
			bqj = (bd.j - m) / c.ny
			dispY = float64(bqj) * (c.by - c.ay)
			jm = m
		}
		b := im + c.nx*jm

		pp := c.p[b]
		for q := range int(c.co[b]) {
			dx := pp[c.ps*q] + dispX - x
			dy := pp[c.ps*q+1] + dispY - y
			pw := dx*dx + dy*dy
			if radical {
				rq := pp[c.ps*q+2]
				pw -= rq * rq
			}
			if pw < best {
				best = pw
				blk, slot, qi, qj = b, q, bqi, bqj
				found = true
			}
		}

		scr.expand(&c.gridBase, x, y, bd.i, bd.j, baseI, baseJ)
	}
	return
}
