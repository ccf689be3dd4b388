// Copyright 2025-2026 The GridFn Authors. SPDX-License-Identifier: Apache-2.0

// Package workers provides the bounded pool the dispatch runtime runs grid
// invocations on. Invocations are independent by construction, so the pool
// makes no ordering promises -- it only caps how many run at once.
package workers

import (
	"runtime"
	"sync"
)

// Pool bounds the number of concurrently running tasks.
//
// maxParallelism == 0 disables parallelism (tasks run inline on the calling
// goroutine) and maxParallelism < 0 removes the bound entirely.
type Pool struct {
	maxParallelism int
	sem            chan struct{}
	wg             sync.WaitGroup
}

// New returns a Pool targeting the given parallelism. Pass runtime.NumCPU()
// (see NewDefault) unless the caller knows better.
func New(maxParallelism int) *Pool {
	p := &Pool{maxParallelism: maxParallelism}
	if maxParallelism > 0 {
		p.sem = make(chan struct{}, maxParallelism)
	}
	return p
}

// NewDefault returns a Pool with one worker per CPU.
func NewDefault() *Pool {
	return New(runtime.NumCPU())
}

// MaxParallelism returns the pool's parallelism target.
func (p *Pool) MaxParallelism() int { return p.maxParallelism }

// Go runs task, blocking the caller until a worker slot is free. With
// parallelism disabled the task runs inline -- don't rely on concurrency
// between tasks in that mode.
func (p *Pool) Go(task func()) {
	if p.maxParallelism == 0 {
		task()
		return
	}
	p.wg.Add(1)
	if p.sem != nil {
		p.sem <- struct{}{}
	}
	go func() {
		defer func() {
			if p.sem != nil {
				<-p.sem
			}
			p.wg.Done()
		}()
		task()
	}()
}

// Wait blocks until every task handed to Go has finished.
func (p *Pool) Wait() {
	p.wg.Wait()
}
