// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/golang/geo/r2"

	"github.com/2dChan/r2voronoi"
	"github.com/2dChan/r2voronoi/utils"
)

func unitDomain() r2.Rect {
	return r2.RectFromPoints(r2.Point{X: 0, Y: 0}, r2.Point{X: 1, Y: 1})
}

func mustDiagram(t *testing.T, numPts int) *r2voronoi.Diagram {
	t.Helper()
	con, err := r2voronoi.NewContainer(unitDomain(), 4, 4, false, false)
	if err != nil {
		t.Fatalf("NewContainer(...) error = %v, want nil", err)
	}
	for i, p := range utils.GenerateRandomPoints(numPts, 23, unitDomain()) {
		con.Put(i, p)
	}
	return con.Diagram()
}

func TestDiagramSVG(t *testing.T) {
	const numPts = 20
	d := mustDiagram(t, numPts)
	var buf bytes.Buffer
	DiagramSVG(&buf, d, 500)

	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatal("DiagramSVG output is not an SVG document")
	}
	if got := strings.Count(out, "<polygon"); got != numPts {
		t.Errorf("DiagramSVG polygon count = %v, want %v", got, numPts)
	}
	if got := strings.Count(out, "<circle"); got != numPts {
		t.Errorf("DiagramSVG circle count = %v, want %v", got, numPts)
	}
}

func TestCellsGnuplot(t *testing.T) {
	d := mustDiagram(t, 10)
	var buf bytes.Buffer
	if err := CellsGnuplot(&buf, d); err != nil {
		t.Fatalf("CellsGnuplot(...) error = %v, want nil", err)
	}

	blocks := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n\n")
	if got := len(blocks); got != 10 {
		t.Fatalf("CellsGnuplot block count = %v, want 10", got)
	}
	for i, b := range blocks {
		lines := strings.Split(b, "\n")
		if len(lines) < 4 {
			t.Errorf("block %d has %d lines, want >= 4", i, len(lines))
		}
		if lines[0] != lines[len(lines)-1] {
			t.Errorf("block %d is not a closed loop: first %q, last %q",
				i, lines[0], lines[len(lines)-1])
		}
	}
}

func TestParticlesGnuplot(t *testing.T) {
	d := mustDiagram(t, 15)
	var buf bytes.Buffer
	if err := ParticlesGnuplot(&buf, d); err != nil {
		t.Fatalf("ParticlesGnuplot(...) error = %v, want nil", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if got := len(lines); got != 15 {
		t.Fatalf("ParticlesGnuplot line count = %v, want 15", got)
	}
	for i, l := range lines {
		if got := len(strings.Fields(l)); got != 3 {
			t.Errorf("line %d has %d fields, want 3", i, got)
		}
	}
}

func TestParticlesGnuplot_Poly(t *testing.T) {
	con, err := r2voronoi.NewContainerPoly(unitDomain(), 4, 4, false, false)
	if err != nil {
		t.Fatalf("NewContainerPoly(...) error = %v, want nil", err)
	}
	pts := utils.GenerateRandomPoints(5, 24, unitDomain())
	radii := utils.GenerateRandomRadii(5, 25, 0, 0.1)
	for i, p := range pts {
		con.Put(i, p, radii[i])
	}

	var buf bytes.Buffer
	if err := ParticlesGnuplot(&buf, con.Diagram()); err != nil {
		t.Fatalf("ParticlesGnuplot(...) error = %v, want nil", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for i, l := range lines {
		if got := len(strings.Fields(l)); got != 4 {
			t.Errorf("line %d has %d fields, want 4", i, got)
		}
	}
}

func TestDomainGnuplot(t *testing.T) {
	var buf bytes.Buffer
	if err := DomainGnuplot(&buf, unitDomain()); err != nil {
		t.Fatalf("DomainGnuplot(...) error = %v, want nil", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if got := len(lines); got != 5 {
		t.Fatalf("DomainGnuplot line count = %v, want 5", got)
	}
	if lines[0] != lines[4] {
		t.Errorf("DomainGnuplot outline is not closed: first %q, last %q", lines[0], lines[4])
	}
}
