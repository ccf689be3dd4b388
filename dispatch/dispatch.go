// Copyright 2025-2026 The GridFn Authors. SPDX-License-Identifier: Apache-2.0

// Package dispatch walks an N-dimensional launch grid and invokes a kernel
// once per grid point, materializing every bound parameter's value for that
// invocation.
//
// The runtime relies on the guarantees the binding layer established: bound
// parameters cannot fail to materialize, share nothing mutable, and depend
// only on their own invocation coordinate. Invocations therefore run in
// arbitrary order across a worker pool, without synchronization between them.
//
// Everything that can go wrong -- rank disagreement between the grid and a
// binding, an empty or degenerate grid -- is rejected before the first
// invocation runs.
package dispatch

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/gridfn/gridfn/binding"
	"github.com/gridfn/gridfn/internal/workers"
	"github.com/gridfn/gridfn/types/grids"
)

// Kernel is the per-invocation entry point. coord identifies the grid point;
// args holds one materialized value per binding, in binding order. coord and
// args are reused between invocations on the same worker, so the kernel must
// not retain them past its return.
type Kernel func(coord grids.Coordinate, args []any)

// Launch dispatches kernel over every coordinate of grid, in parallel across
// one worker per CPU. It blocks until all invocations finished.
//
// grid gives the extent of each axis; every binding must have rank
// len(grid). Returns an error -- before running anything -- if the grid is
// degenerate or a binding's rank disagrees with it.
func Launch(grid []int, kernel Kernel, bindings ...*binding.Binding) error {
	return LaunchContext(context.Background(), grid, kernel, bindings...)
}

// LaunchContext is Launch with cancellation: when ctx is cancelled no new
// invocations are scheduled and LaunchContext returns ctx's error after the
// already-running ones drain. Invocations themselves are never interrupted
// mid-kernel.
func LaunchContext(ctx context.Context, grid []int, kernel Kernel, bindings ...*binding.Binding) error {
	if len(grid) == 0 {
		return errors.New("dispatch: launch grid must have at least 1 axis")
	}
	total := 1
	for axis, extent := range grid {
		if extent < 1 {
			return errors.Errorf("dispatch: launch grid axis %d has extent %d, must be at least 1", axis, extent)
		}
		total *= extent
	}
	for _, b := range bindings {
		if b.Rank() != len(grid) {
			return errors.Errorf("dispatch: binding %s has rank %d, launch grid %v has rank %d",
				b, b.Rank(), grid, len(grid))
		}
	}

	launchID := uuid.NewString()
	klog.V(1).Infof("dispatch %s: grid %v, %d invocations, %d bindings", launchID, grid, total, len(bindings))

	// One task per index of axis 0; each task walks the remaining axes. The
	// pool spreads the tasks over the CPUs.
	pool := workers.NewDefault()
	for first := 0; first < grid[0]; first++ {
		if err := ctx.Err(); err != nil {
			pool.Wait()
			klog.V(1).Infof("dispatch %s: cancelled after %d of %d tasks", launchID, first, grid[0])
			return errors.Wrapf(err, "dispatch %s cancelled", launchID)
		}
		pool.Go(sliceTask(grid, first, kernel, bindings))
	}
	pool.Wait()
	klog.V(2).Infof("dispatch %s: done", launchID)
	return nil
}

// sliceTask returns the task running every invocation whose axis-0 index is
// first, iterating the remaining axes in row-major order.
func sliceTask(grid []int, first int, kernel Kernel, bindings []*binding.Binding) func() {
	return func() {
		coord := make(grids.Coordinate, len(grid))
		coord[0] = first
		args := make([]any, len(bindings))
		for {
			for bi, b := range bindings {
				args[bi] = b.Materialize(coord)
			}
			kernel(coord, args)

			// Advance axes 1..N-1 like an odometer; axis 0 is fixed.
			axis := len(grid) - 1
			for ; axis >= 1; axis-- {
				coord[axis]++
				if coord[axis] < grid[axis] {
					break
				}
				coord[axis] = 0
			}
			if axis < 1 {
				return
			}
		}
	}
}
