// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package r2voronoi computes Voronoi tessellations of point sets in a
// rectangular planar domain that may be periodic in either axis.
//
// Particles are stored in a uniform grid of blocks. Each particle has an
// associated Voronoi cell: the region of the plane closer to it than to any
// other particle. When particles carry radii (ContainerPoly), distances are
// power distances and the tessellation is the radical Voronoi diagram.
//
// Cells are computed one site at a time by cutting a convex polygon against
// the perpendicular bisectors of candidate neighbors, discovered by an
// outward block-by-block search that terminates once no unseen site can
// reach the cell.
package r2voronoi
