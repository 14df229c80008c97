// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package draw renders Voronoi diagrams to SVG and Gnuplot formats. It
// consumes only the flat cell data of a computed Diagram.
package draw

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/golang/geo/r2"

	"github.com/2dChan/r2voronoi"
)

const (
	cellStyle   = "fill:rgb(255,255,255);stroke:rgb(170,170,170);stroke-width:1;stroke-opacity:1.0"
	siteStyle   = "fill:rgb(0,0,255)"
	canvasStyle = "fill:rgb(255,255,255)"

	siteDotRadius = 2
)

// projection maps domain coordinates to integer canvas pixels, y flipped so
// the domain's lower edge lands at the canvas bottom.
type projection struct {
	dom    r2.Rect
	w, h   int
	xScale float64
	yScale float64
}

func newProjection(dom r2.Rect, width int) projection {
	height := int(float64(width) * dom.Y.Length() / dom.X.Length())
	return projection{
		dom: dom, w: width, h: height,
		xScale: float64(width) / dom.X.Length(),
		yScale: float64(height) / dom.Y.Length(),
	}
}

func (pr projection) screen(p r2.Point) (int, int) {
	x := (p.X - pr.dom.X.Lo) * pr.xScale
	y := (pr.dom.Y.Hi - p.Y) * pr.yScale
	return int(x), int(y)
}

// DiagramSVG renders every cell of the diagram and a dot per site to w as an
// SVG document of the given pixel width. The height follows the domain's
// aspect ratio.
func DiagramSVG(w io.Writer, d *r2voronoi.Diagram, width int) {
	pr := newProjection(d.Domain, width)
	canvas := svg.New(w)
	canvas.Start(pr.w, pr.h)
	canvas.Rect(0, 0, pr.w, pr.h, canvasStyle)

	xs := make([]int, 0, 8)
	ys := make([]int, 0, 8)
	for i := range d.NumCells() {
		c, err := d.Cell(i)
		if err != nil || c.NumVertices() == 0 {
			continue
		}
		xs = xs[:0]
		ys = ys[:0]
		for _, v := range c.Vertices() {
			x, y := pr.screen(v)
			xs = append(xs, x)
			ys = append(ys, y)
		}
		canvas.Polygon(xs, ys, cellStyle)
	}
	for _, s := range d.Sites {
		x, y := pr.screen(s)
		canvas.Circle(x, y, siteDotRadius, siteStyle)
	}
	canvas.End()
}

// CellsGnuplot writes every cell as a closed vertex loop, loops separated by
// blank lines, suitable for "plot ... with lines".
func CellsGnuplot(w io.Writer, d *r2voronoi.Diagram) error {
	for i := range d.NumCells() {
		c, err := d.Cell(i)
		if err != nil || c.NumVertices() == 0 {
			continue
		}
		vs := c.Vertices()
		for _, v := range vs {
			if _, err := fmt.Fprintf(w, "%g %g\n", v.X, v.Y); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%g %g\n\n", vs[0].X, vs[0].Y); err != nil {
			return err
		}
	}
	return nil
}

// ParticlesGnuplot dumps particle IDs and positions, one "id x y" record per
// line, with a trailing radius for diagrams that carry radii.
func ParticlesGnuplot(w io.Writer, d *r2voronoi.Diagram) error {
	for i, s := range d.Sites {
		var err error
		if d.Radii != nil {
			_, err = fmt.Fprintf(w, "%d %g %g %g\n", d.IDs[i], s.X, s.Y, d.Radii[i])
		} else {
			_, err = fmt.Fprintf(w, "%d %g %g\n", d.IDs[i], s.X, s.Y)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// DomainGnuplot writes the domain outline as a closed loop.
func DomainGnuplot(w io.Writer, dom r2.Rect) error {
	_, err := fmt.Fprintf(w, "%g %g\n%g %g\n%g %g\n%g %g\n%g %g\n",
		dom.X.Lo, dom.Y.Lo, dom.X.Hi, dom.Y.Lo, dom.X.Hi, dom.Y.Hi,
		dom.X.Lo, dom.Y.Hi, dom.X.Lo, dom.Y.Lo)
	return err
}
