// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	defaultInitMem = 8
	defaultWorkers = 1
	defaultEps     = 1e-11

	// Hard ceiling on per-block capacity. Growth past this aborts.
	maxParticleMemory = 1 << 24
)

// ContainerOptions collects the tunable parameters of a container.
type ContainerOptions struct {
	// InitMem is the initial per-block particle capacity.
	InitMem int
	// Workers is the size of the worker pool used by the parallel entry
	// points. Each worker owns its own compute scratch.
	Workers int
	// Eps is the half-plane cut tolerance, in units of the squared longer
	// domain edge. Residuals within Eps of a cut line snap to existing
	// vertices instead of creating new ones.
	Eps float64
	// Logger receives debug events: out-of-domain rejections and block
	// capacity growth.
	Logger *zap.Logger
}

// ContainerOption configures a container at construction.
type ContainerOption func(*ContainerOptions) error

// WithInitMem sets the initial per-block particle capacity.
func WithInitMem(n int) ContainerOption {
	return func(o *ContainerOptions) error {
		if n < 1 {
			return fmt.Errorf("WithInitMem: %d is not a valid capacity", n)
		}
		o.InitMem = n
		return nil
	}
}

// WithWorkers sets the worker pool size.
func WithWorkers(n int) ContainerOption {
	return func(o *ContainerOptions) error {
		if n < 1 {
			return fmt.Errorf("WithWorkers: %d is not a valid pool size", n)
		}
		o.Workers = n
		return nil
	}
}

// WithEps sets the half-plane cut tolerance.
func WithEps(eps float64) ContainerOption {
	return func(o *ContainerOptions) error {
		if eps <= 0 {
			return fmt.Errorf("WithEps: eps must be positive, got %v", eps)
		}
		o.Eps = eps
		return nil
	}
}

// WithLogger sets the container logger.
func WithLogger(l *zap.Logger) ContainerOption {
	return func(o *ContainerOptions) error {
		if l == nil {
			return fmt.Errorf("WithLogger: logger must be non-nil")
		}
		o.Logger = l
		return nil
	}
}
