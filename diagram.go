// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"github.com/golang/geo/r2"
)

// Diagram is a snapshot of the full tessellation: every particle's cell,
// computed fork-join across the worker pool and stored in flat offset
// arrays. Cells appear in the container's block-then-slot iteration order,
// which is independent of the worker count.
//
// A cell cut away entirely (possible in radical diagrams) is present with
// zero vertices.
type Diagram struct {
	Domain r2.Rect

	Sites []r2.Point
	IDs   []int
	// Radii is populated by ContainerPoly.Diagram and nil otherwise.
	Radii []float64

	// Vertices holds every cell's vertex loop concatenated, in global
	// coordinates, CCW per cell.
	Vertices []r2.Point
	// CellNeighbors holds the neighbor ID of each outgoing cell edge,
	// aligned with Vertices. Negative entries are wall sentinels.
	CellNeighbors []int
	// CellOffsets indexes cell i's slice of Vertices and CellNeighbors as
	// [CellOffsets[i], CellOffsets[i+1]).
	CellOffsets []int
}

// NumCells returns the number of cells, one per stored particle.
func (d *Diagram) NumCells() int {
	return len(d.Sites)
}

func (c *containerBase) buildDiagram() *Diagram {
	parts := c.collectParticles()
	d := &Diagram{
		Domain: c.Domain(),
		Sites:  make([]r2.Point, len(parts)),
		IDs:    make([]int, len(parts)),
	}

	index := make(map[Particle]int, len(parts))
	for i, pa := range parts {
		index[pa] = i
		d.Sites[i] = c.Position(pa)
		d.IDs[i] = c.ID(pa)
	}

	verts := make([][]r2.Point, len(parts))
	nbs := make([][]int, len(parts))
	c.forEachCell(func(_ int, pa Particle, cell *VoronoiCell, ok bool) {
		if !ok {
			return
		}
		i := index[pa]
		site := d.Sites[i]
		local := cell.Vertices()
		global := make([]r2.Point, len(local))
		for k, v := range local {
			global[k] = site.Add(v)
		}
		verts[i] = global
		nbs[i] = cell.Neighbors()
	})

	d.CellOffsets = make([]int, len(parts)+1)
	for i := range parts {
		d.CellOffsets[i+1] = d.CellOffsets[i] + len(verts[i])
	}
	d.Vertices = make([]r2.Point, 0, d.CellOffsets[len(parts)])
	d.CellNeighbors = make([]int, 0, d.CellOffsets[len(parts)])
	for i := range parts {
		d.Vertices = append(d.Vertices, verts[i]...)
		d.CellNeighbors = append(d.CellNeighbors, nbs[i]...)
	}
	return d
}
