// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package lights

// Option configures a Graph during creation.
//
// Example:
//
//	pool := lights.NewBatcherPool()
//	pool.Warmup(2)
//	g := lights.NewGraph(lights.WithBatcherPool(pool), lights.WithCapacity(1024))
type Option func(*options)

type options struct {
	pool         *BatcherPool
	capacityHint int
}

func defaultOptions() options {
	return options{
		pool:         DefaultBatcherPool,
		capacityHint: 64,
	}
}

// WithBatcherPool sets the pool traversal batchers are taken from.
// A nil pool selects DefaultBatcherPool.
func WithBatcherPool(p *BatcherPool) Option {
	return func(o *options) {
		if p == nil {
			p = DefaultBatcherPool
		}
		o.pool = p
	}
}

// WithCapacity pre-sizes the graph for the expected number of visible
// lights per frame.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacityHint = n
		}
	}
}
