// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/golang/geo/r2"
)

// importRecords parses whitespace-separated records of one integer ID
// followed by nf floats, calling fn for each. Blank lines are skipped; any
// other malformed line aborts with ErrImportParse.
func importRecords(r io.Reader, nf int, fn func(id int, vals []float64)) error {
	sc := bufio.NewScanner(r)
	vals := make([]float64, nf)
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != nf+1 {
			return fmt.Errorf("%w: line %d has %d fields, want %d",
				ErrImportParse, line, len(fields), nf+1)
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrImportParse, line, err)
		}
		for k, f := range fields[1:] {
			vals[k], err = strconv.ParseFloat(f, 64)
			if err != nil {
				return fmt.Errorf("%w: line %d: %v", ErrImportParse, line, err)
			}
		}
		fn(id, vals)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("r2voronoi: import read: %w", err)
	}
	return nil
}

// Import reads "id x y" records from r, inserting each particle. Positions
// outside a non-periodic axis are silently skipped, as with Put.
func (c *Container) Import(r io.Reader) error {
	return importRecords(r, 2, func(id int, v []float64) {
		c.Put(id, r2.Point{X: v[0], Y: v[1]})
	})
}

// ImportOrdered reads "id x y" records from r, inserting each particle and
// recording accepted ones in po in file order.
func (c *Container) ImportOrdered(po *ParticleOrder, r io.Reader) error {
	return importRecords(r, 2, func(id int, v []float64) {
		c.PutOrdered(po, id, r2.Point{X: v[0], Y: v[1]})
	})
}

// Import reads "id x y r" records from rd, inserting each particle.
// Positions outside a non-periodic axis are silently skipped, as with Put.
func (c *ContainerPoly) Import(rd io.Reader) error {
	return importRecords(rd, 3, func(id int, v []float64) {
		c.Put(id, r2.Point{X: v[0], Y: v[1]}, v[2])
	})
}

// ImportOrdered reads "id x y r" records from rd, inserting each particle
// and recording accepted ones in po in file order.
func (c *ContainerPoly) ImportOrdered(po *ParticleOrder, rd io.Reader) error {
	return importRecords(rd, 3, func(id int, v []float64) {
		c.PutOrdered(po, id, r2.Point{X: v[0], Y: v[1]}, v[2])
	})
}
