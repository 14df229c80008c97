// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import "iter"

// ParticleOrder records the storage handles of particles in the order they
// were inserted, so that output code can traverse the container in insertion
// order rather than block order. Pass it to the PutOrdered entry points.
type ParticleOrder struct {
	o []Particle
}

func (po *ParticleOrder) add(pa Particle) {
	po.o = append(po.o, pa)
}

// Len returns the number of recorded particles.
func (po *ParticleOrder) Len() int {
	return len(po.o)
}

// At returns the i-th recorded handle.
func (po *ParticleOrder) At(i int) Particle {
	return po.o[i]
}

// Particles enumerates the recorded handles in insertion order.
func (po *ParticleOrder) Particles() iter.Seq[Particle] {
	return func(yield func(Particle) bool) {
		for _, pa := range po.o {
			if !yield(pa) {
				return
			}
		}
	}
}
