// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/golang/geo/r2"
	"go.uber.org/zap"
)

// overflowRecord holds a particle whose reserved slot exceeded its block's
// capacity during parallel insertion. Records live only until the next
// PutReconcileOverflow.
type overflowRecord struct {
	block, slot int
	id          int
	x, y, r     float64
}

// containerBase carries the block storage and machinery shared by Container
// and ContainerPoly. The packed coordinate stride ps is 2 for plain
// containers and 3 for poly (x, y, radius).
type containerBase struct {
	gridBase
	ps  int
	tol float64
	log *zap.Logger

	id  [][]int
	p   [][]float64
	co  []int32
	mem []int

	// Poly bookkeeping: the supremum of inserted radii, and per-worker
	// maxima folded in at reconciliation. Unused when ps==2.
	maxRadius float64
	maxR      []float64

	workers int
	vc      []*computeScratch

	ovMu     sync.Mutex
	overflow []overflowRecord
}

func (c *containerBase) init(dom r2.Rect, nx, ny int, xPrd, yPrd bool, ps int,
	setters []ContainerOption) error {
	opts := ContainerOptions{
		InitMem: defaultInitMem,
		Workers: defaultWorkers,
		Eps:     defaultEps,
	}
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return err
		}
	}
	if !(dom.X.Lo < dom.X.Hi) || !(dom.Y.Lo < dom.Y.Hi) {
		return fmt.Errorf("r2voronoi: domain %v is not a proper rectangle", dom)
	}
	if nx < 1 || ny < 1 {
		return fmt.Errorf("r2voronoi: invalid grid size %dx%d", nx, ny)
	}

	c.gridBase = newGridBase(dom, nx, ny, xPrd, yPrd)
	c.ps = ps
	c.log = opts.Logger
	if c.log == nil {
		c.log = zap.NewNop()
	}

	// The cut tolerance works on raw signed residuals, which are in units
	// of squared length, so scale eps by the squared longer domain edge.
	scale := max(c.bx-c.ax, c.by-c.ay)
	c.tol = opts.Eps * scale * scale

	c.id = make([][]int, c.nxy)
	c.p = make([][]float64, c.nxy)
	c.co = make([]int32, c.nxy)
	c.mem = make([]int, c.nxy)
	for l := range c.nxy {
		c.id[l] = make([]int, opts.InitMem)
		c.p[l] = make([]float64, ps*opts.InitMem)
		c.mem[l] = opts.InitMem
	}

	c.buildWorkers(opts.Workers)
	return nil
}

// buildWorkers constructs the per-worker compute scratches and poly radius
// slots.
func (c *containerBase) buildWorkers(n int) {
	c.workers = n
	c.vc = make([]*computeScratch, n)
	for w := range n {
		c.vc[w] = newComputeScratch(&c.gridBase, c.tol)
	}
	c.maxR = make([]float64, n)
}

// SetWorkers resizes the worker pool, rebuilding every per-worker scratch.
// It must not be called while a parallel entry point is running.
func (c *containerBase) SetWorkers(n int) error {
	if n < 1 {
		return fmt.Errorf("r2voronoi: invalid worker count %d", n)
	}
	c.buildWorkers(n)
	return nil
}

// Workers returns the current worker pool size.
func (c *containerBase) Workers() int {
	return c.workers
}

// growBlock raises block b's capacity to nmem slots, preserving stored
// particles. Growth past the hard ceiling is fatal.
func (c *containerBase) growBlock(b, nmem int) {
	if nmem > maxParticleMemory {
		panic(&FatalError{StatusMemoryError, "absolute maximum memory allocation exceeded"})
	}
	c.log.Debug("block memory scaled up", zap.Int("block", b), zap.Int("mem", nmem))

	idp := make([]int, nmem)
	copy(idp, c.id[b])
	pp := make([]float64, c.ps*nmem)
	copy(pp, c.p[b])
	c.id[b] = idp
	c.p[b] = pp
	c.mem[b] = nmem
}

// putLocateBlock remaps a position into the primary domain and ensures its
// block has room for one more particle.
func (c *containerBase) putLocateBlock(x, y float64) (int, float64, float64, bool) {
	ij, rx, ry, ok := c.putRemap(x, y)
	if !ok {
		c.log.Debug("particle out of bounds", zap.Float64("x", x), zap.Float64("y", y))
		return 0, rx, ry, false
	}
	if int(c.co[ij]) == c.mem[ij] {
		c.growBlock(ij, 2*c.mem[ij])
	}
	return ij, rx, ry, true
}

// reserveSlot atomically reserves the next slot of block ij during parallel
// insertion. The returned slot may exceed the block's capacity, in which
// case the caller must route the particle to the overflow buffer.
func (c *containerBase) reserveSlot(ij int) int {
	return int(atomic.AddInt32(&c.co[ij], 1)) - 1
}

func (c *containerBase) appendOverflow(rec overflowRecord) {
	c.ovMu.Lock()
	c.overflow = append(c.overflow, rec)
	c.ovMu.Unlock()
}

// PutReconcileOverflow makes the container consistent after a batch of
// parallel insertions: it folds per-worker radius maxima into the global
// maximum, grows any block whose reserved slots overran its capacity, and
// drains the overflow buffer in insertion order. It must run after any
// parallel batch and before any read or cell computation. Single-threaded.
func (c *containerBase) PutReconcileOverflow() {
	for w, r := range c.maxR {
		if r > c.maxRadius {
			c.maxRadius = r
		}
		c.maxR[w] = 0
	}

	for _, ov := range c.overflow {
		if ov.slot >= c.mem[ov.block] {
			nmem := 2 * c.mem[ov.block]
			for ov.slot >= nmem {
				nmem *= 2
			}
			c.growBlock(ov.block, nmem)
		}
		c.id[ov.block][ov.slot] = ov.id
		pp := c.p[ov.block][c.ps*ov.slot:]
		pp[0], pp[1] = ov.x, ov.y
		if c.ps == 3 {
			pp[2] = ov.r
		}
	}
	c.overflow = c.overflow[:0]
}

// Clear removes all particles, keeping allocated block capacity. For poly
// containers the maximum radius is reset to zero.
func (c *containerBase) Clear() {
	for l := range c.co {
		c.co[l] = 0
	}
	for w := range c.maxR {
		c.maxR[w] = 0
	}
	c.maxRadius = 0
	c.overflow = c.overflow[:0]
}

// PointInside reports whether q lies within the domain box.
func (c *containerBase) PointInside(q r2.Point) bool {
	return q.X >= c.ax && q.X <= c.bx && q.Y >= c.ay && q.Y <= c.by
}

// RegionCount returns the particle count of every block, indexed i + nx*j.
func (c *containerBase) RegionCount() []int {
	counts := make([]int, c.nxy)
	for l := range counts {
		counts[l] = int(c.co[l])
	}
	return counts
}

// NumParticles returns the total number of stored particles.
func (c *containerBase) NumParticles() int {
	n := 0
	for _, ct := range c.co {
		n += int(ct)
	}
	return n
}

// ID returns the user-supplied ID of a stored particle.
func (c *containerBase) ID(pa Particle) int {
	return c.id[pa.Block][pa.Slot]
}

// Position returns the stored position of a particle, remapped into the
// primary domain.
func (c *containerBase) Position(pa Particle) r2.Point {
	pp := c.p[pa.Block][c.ps*pa.Slot:]
	return r2.Point{X: pp[0], Y: pp[1]}
}

// FindVoronoiCell finds the particle whose Voronoi cell contains q. The
// returned position is the particle's, adjusted for the periodic image the
// query point came from; for a non-periodic axis a query outside the domain
// reports no cell, as does an empty container.
func (c *containerBase) FindVoronoiCell(q r2.Point) (r2.Point, int, bool) {
	ai, aj, ci, cj, x, y, _, ok := c.remap(q.X, q.Y)
	if !ok {
		return r2.Point{}, 0, false
	}
	blk, slot, qi, qj, found := c.findNearest(c.vc[0], x, y, ci, cj)
	if !found {
		return r2.Point{}, 0, false
	}
	pp := c.p[blk][c.ps*slot:]
	return r2.Point{
		X: pp[0] + float64(ai+qi)*(c.bx-c.ax),
		Y: pp[1] + float64(aj+qj)*(c.by-c.ay),
	}, c.id[blk][slot], true
}

// computeCellWorker computes the cell of a stored particle using worker w's
// scratch.
func (c *containerBase) computeCellWorker(w int, pa Particle) (*VoronoiCell, bool) {
	pp := c.p[pa.Block][c.ps*pa.Slot:]
	rsite := 0.0
	if c.ps == 3 {
		rsite = pp[2]
	}
	ci := pa.Block % c.nx
	cj := pa.Block / c.nx
	scr := c.vc[w]
	if !c.computeCell(scr, pp[0], pp[1], rsite, ci, cj, pa.Block, pa.Slot) {
		return nil, false
	}
	return &scr.cell, true
}

// ComputeCell computes the Voronoi cell of a stored particle. It returns
// false if the cell is completely cut away (possible for radical diagrams).
// The returned cell aliases worker 0's scratch: it is valid until the next
// compute call on this container, and ComputeCell must not be called
// concurrently. Use Diagram for a parallel snapshot of every cell.
func (c *containerBase) ComputeCell(pa Particle) (*VoronoiCell, bool) {
	return c.computeCellWorker(0, pa)
}

// forEachCell runs fn over every particle's computed cell, fork-join across
// the worker pool. Particles are split into contiguous chunks so that each
// worker touches an independent index range.
func (c *containerBase) forEachCell(fn func(w int, pa Particle, cell *VoronoiCell, ok bool)) {
	parts := c.collectParticles()
	n := len(parts)
	if n == 0 {
		return
	}
	var wg sync.WaitGroup
	chunk := (n + c.workers - 1) / c.workers
	for w := range c.workers {
		lo := w * chunk
		if lo >= n {
			break
		}
		hi := min(lo+chunk, n)
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			for _, pa := range parts[lo:hi] {
				cell, ok := c.computeCellWorker(w, pa)
				fn(w, pa, cell, ok)
			}
		}(w, lo, hi)
	}
	wg.Wait()
}

// ComputeAllCells computes every cell and discards the results. It is useful
// for measuring the pure computation cost of the tessellation.
func (c *containerBase) ComputeAllCells() {
	c.forEachCell(func(int, Particle, *VoronoiCell, bool) {})
}

// SumCellAreas computes every cell and returns the sum of their areas. For a
// non-periodic, non-radical container the sum equals the domain area to
// numerical precision.
func (c *containerBase) SumCellAreas() float64 {
	sums := make([]float64, c.workers)
	c.forEachCell(func(w int, _ Particle, cell *VoronoiCell, ok bool) {
		if ok {
			sums[w] += cell.Area()
		}
	})
	total := 0.0
	for _, s := range sums {
		total += s
	}
	return total
}

// Container stores size-less particles and computes their Voronoi
// tessellation.
type Container struct {
	containerBase
}

// NewContainer creates a container over the domain rectangle dom, divided
// into nx*ny blocks, periodic per axis according to xPrd and yPrd.
func NewContainer(dom r2.Rect, nx, ny int, xPrd, yPrd bool,
	setters ...ContainerOption) (*Container, error) {
	c := &Container{}
	if err := c.init(dom, nx, ny, xPrd, yPrd, 2, setters); err != nil {
		return nil, err
	}
	return c, nil
}

// Put inserts a particle. It reports whether the particle was accepted: a
// position outside a non-periodic axis is silently skipped.
func (c *Container) Put(id int, q r2.Point) bool {
	ij, x, y, ok := c.putLocateBlock(q.X, q.Y)
	if !ok {
		return false
	}
	m := int(c.co[ij])
	c.id[ij][m] = id
	c.p[ij][2*m] = x
	c.p[ij][2*m+1] = y
	c.co[ij]++
	return true
}

// PutOrdered inserts a particle and appends its storage handle to po, so
// that the caller can later iterate particles in insertion order.
func (c *Container) PutOrdered(po *ParticleOrder, id int, q r2.Point) bool {
	ij, x, y, ok := c.putLocateBlock(q.X, q.Y)
	if !ok {
		return false
	}
	m := int(c.co[ij])
	c.id[ij][m] = id
	po.add(Particle{Block: ij, Slot: m})
	c.p[ij][2*m] = x
	c.p[ij][2*m+1] = y
	c.co[ij]++
	return true
}

// PutParallel inserts a particle from inside a parallel batch. The slot is
// reserved atomically; if it overruns the block's current capacity the
// particle is routed to the overflow buffer instead. The container is not
// readable until PutReconcileOverflow has run.
func (c *Container) PutParallel(id int, q r2.Point) {
	ij, x, y, ok := c.putRemap(q.X, q.Y)
	if !ok {
		return
	}
	m := c.reserveSlot(ij)
	if m < c.mem[ij] {
		c.id[ij][m] = id
		c.p[ij][2*m] = x
		c.p[ij][2*m+1] = y
		return
	}
	c.appendOverflow(overflowRecord{block: ij, slot: m, id: id, x: x, y: y})
}

// PutAllParallel inserts pts across the worker pool, using each point's
// index as its ID, and blocks until the batch completes. The caller must
// follow with PutReconcileOverflow.
func (c *Container) PutAllParallel(pts []r2.Point) {
	var wg sync.WaitGroup
	for w := range c.workers {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := w; i < len(pts); i += c.workers {
				c.PutParallel(i, pts[i])
			}
		}(w)
	}
	wg.Wait()
}

// Diagram computes every cell and returns the tessellation snapshot.
func (c *Container) Diagram() *Diagram {
	return c.buildDiagram()
}
