// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import "iter"

// Particle is a lightweight storage handle for an inserted particle. The
// (Block,Slot) pair uniquely identifies a particle for its whole lifetime.
type Particle struct {
	Block, Slot int
}

// Particles enumerates all stored particles in block-then-slot order. The
// sequence is stable as long as the container is not mutated; no ordering is
// guaranteed across Clear and re-insert cycles.
func (c *containerBase) Particles() iter.Seq[Particle] {
	return func(yield func(Particle) bool) {
		for l := range c.nxy {
			for q := range int(c.co[l]) {
				if !yield(Particle{Block: l, Slot: q}) {
					return
				}
			}
		}
	}
}

// collectParticles materializes the particle sequence for chunked fork-join
// dispatch.
func (c *containerBase) collectParticles() []Particle {
	parts := make([]Particle, 0, c.NumParticles())
	for pa := range c.Particles() {
		parts = append(parts, pa)
	}
	return parts
}
