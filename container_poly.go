// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"sync"

	"github.com/golang/geo/r2"
)

// ContainerPoly stores particles carrying radii and computes their radical
// (power) Voronoi tessellation.
type ContainerPoly struct {
	containerBase
}

// NewContainerPoly creates a poly container over the domain rectangle dom,
// divided into nx*ny blocks, periodic per axis according to xPrd and yPrd.
func NewContainerPoly(dom r2.Rect, nx, ny int, xPrd, yPrd bool,
	setters ...ContainerOption) (*ContainerPoly, error) {
	c := &ContainerPoly{}
	if err := c.init(dom, nx, ny, xPrd, yPrd, 3, setters); err != nil {
		return nil, err
	}
	return c, nil
}

// MaxRadius returns the largest radius inserted since the last Clear.
func (c *ContainerPoly) MaxRadius() float64 {
	return c.maxRadius
}

// Radius returns the stored radius of a particle.
func (c *ContainerPoly) Radius(pa Particle) float64 {
	return c.p[pa.Block][3*pa.Slot+2]
}

// Put inserts a particle with radius r. It reports whether the particle was
// accepted: a position outside a non-periodic axis is silently skipped.
func (c *ContainerPoly) Put(id int, q r2.Point, r float64) bool {
	ij, x, y, ok := c.putLocateBlock(q.X, q.Y)
	if !ok {
		return false
	}
	m := int(c.co[ij])
	c.id[ij][m] = id
	pp := c.p[ij][3*m:]
	pp[0], pp[1], pp[2] = x, y, r
	c.co[ij]++
	if r > c.maxRadius {
		c.maxRadius = r
	}
	return true
}

// PutOrdered inserts a particle with radius r and appends its storage handle
// to po, so that the caller can later iterate particles in insertion order.
func (c *ContainerPoly) PutOrdered(po *ParticleOrder, id int, q r2.Point, r float64) bool {
	ij, x, y, ok := c.putLocateBlock(q.X, q.Y)
	if !ok {
		return false
	}
	m := int(c.co[ij])
	c.id[ij][m] = id
	po.add(Particle{Block: ij, Slot: m})
	pp := c.p[ij][3*m:]
	pp[0], pp[1], pp[2] = x, y, r
	c.co[ij]++
	if r > c.maxRadius {
		c.maxRadius = r
	}
	return true
}

// PutParallel inserts a particle from inside a parallel batch running on
// worker w. The slot is reserved atomically; if it overruns the block's
// current capacity the particle is routed to the overflow buffer instead.
// The radius feeds worker w's thread-local maximum, folded into the global
// maximum at reconciliation. The container is not readable until
// PutReconcileOverflow has run.
func (c *ContainerPoly) PutParallel(w, id int, q r2.Point, r float64) {
	ij, x, y, ok := c.putRemap(q.X, q.Y)
	if !ok {
		return
	}
	if r > c.maxR[w] {
		c.maxR[w] = r
	}
	m := c.reserveSlot(ij)
	if m < c.mem[ij] {
		c.id[ij][m] = id
		pp := c.p[ij][3*m:]
		pp[0], pp[1], pp[2] = x, y, r
		return
	}
	c.appendOverflow(overflowRecord{block: ij, slot: m, id: id, x: x, y: y, r: r})
}

// PutAllParallel inserts pts with the matching radii across the worker pool,
// using each point's index as its ID, and blocks until the batch completes.
// The caller must follow with PutReconcileOverflow. pts and radii must have
// equal length.
func (c *ContainerPoly) PutAllParallel(pts []r2.Point, radii []float64) {
	if len(pts) != len(radii) {
		panic("PutAllParallel: mismatched pts and radii lengths")
	}
	var wg sync.WaitGroup
	for w := range c.workers {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(pts); i += c.workers {
				c.PutParallel(w, i, pts[i], radii[i])
			}
		}(w)
	}
	wg.Wait()
}

// Diagram computes every cell and returns the tessellation snapshot.
func (c *ContainerPoly) Diagram() *Diagram {
	d := c.buildDiagram()
	parts := c.collectParticles()
	d.Radii = make([]float64, len(parts))
	for i, pa := range parts {
		d.Radii[i] = c.Radius(pa)
	}
	return d
}
