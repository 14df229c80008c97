// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"fmt"

	"github.com/golang/geo/r2"
)

// Cell is a view structure for accessing one cell of a Diagram. The cell's
// index corresponds to the index of its site in the Diagram's Sites.
type Cell struct {
	idx int
	d   *Diagram
}

// Cell returns the view of cell i. It returns an error if the index is out
// of range.
func (d *Diagram) Cell(i int) (Cell, error) {
	if i < 0 || i >= d.NumCells() {
		return Cell{}, fmt.Errorf("Cell: index %d out of range [0 %d)", i, d.NumCells())
	}
	return Cell{idx: i, d: d}, nil
}

// SiteIndex returns the index of the cell's site in the Diagram's Sites.
func (c Cell) SiteIndex() int {
	return c.idx
}

// Site returns the site point of the cell.
func (c Cell) Site() r2.Point {
	return c.d.Sites[c.idx]
}

// ID returns the user-supplied particle ID of the cell's site.
func (c Cell) ID() int {
	return c.d.IDs[c.idx]
}

// NumVertices returns the number of vertices in the cell. This equals the
// number of edges; it is zero for a cell that was cut away entirely.
func (c Cell) NumVertices() int {
	return c.d.CellOffsets[c.idx+1] - c.d.CellOffsets[c.idx]
}

// Vertices returns the cell's vertex loop in global coordinates, sorted
// counter-clockwise. The slice aliases the Diagram's storage.
func (c Cell) Vertices() []r2.Point {
	return c.d.Vertices[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

// Vertex returns the vertex at the specified index. It returns an error if
// the index is out of range.
func (c Cell) Vertex(i int) (r2.Point, error) {
	start := c.d.CellOffsets[c.idx]
	end := c.d.CellOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return r2.Point{}, fmt.Errorf("Vertex: index %d out of range [0 %d)", i, end-start)
	}
	return c.d.Vertices[start+i], nil
}

// Neighbors returns the neighbor ID of each outgoing cell edge, aligned
// with Vertices: entry i belongs to the edge from vertex i to vertex i+1.
// Negative entries are wall sentinels. The slice aliases the Diagram's
// storage.
func (c Cell) Neighbors() []int {
	return c.d.CellNeighbors[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

// Area returns the cell area via the shoelace formula.
func (c Cell) Area() float64 {
	vs := c.Vertices()
	if len(vs) < 3 {
		return 0
	}
	area := 0.0
	for i, v := range vs {
		w := vs[(i+1)%len(vs)]
		area += v.X*w.Y - w.X*v.Y
	}
	return 0.5 * area
}

// Centroid returns the centroid of the cell in global coordinates.
func (c Cell) Centroid() r2.Point {
	vs := c.Vertices()
	if len(vs) < 3 {
		return c.Site()
	}
	var cx, cy, area float64
	for i, v := range vs {
		w := vs[(i+1)%len(vs)]
		cr := v.X*w.Y - w.X*v.Y
		cx += (v.X + w.X) * cr
		cy += (v.Y + w.Y) * cr
		area += cr
	}
	return r2.Point{X: cx / (3 * area), Y: cy / (3 * area)}
}
