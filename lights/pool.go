// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package lights

import (
	"sync"

	"github.com/gogpu/deferred/internal/batch"
)

type batcher = batch.Batcher[Entry, ShaderID, ArrayID]

// BatcherPool manages a pool of reusable traversal batchers.
// After warmup, Execute does not allocate for batching.
//
// A pool may be shared by graphs executed on different goroutines.
type BatcherPool struct {
	pool sync.Pool
}

// NewBatcherPool creates a new batcher pool.
func NewBatcherPool() *BatcherPool {
	return &BatcherPool{
		pool: sync.Pool{
			New: func() any {
				return batch.New(entryShader, entryArray)
			},
		},
	}
}

func (p *BatcherPool) get() *batcher {
	b := p.pool.Get().(*batcher)
	b.Reset()
	return b
}

func (p *BatcherPool) put(b *batcher) {
	if b == nil {
		return
	}
	p.pool.Put(b)
}

// Warmup pre-allocates batchers. Call this during initialization if
// allocation-free traversal is required from the first frame.
func (p *BatcherPool) Warmup(count int) {
	bs := make([]*batcher, count)
	for i := range bs {
		bs[i] = p.get()
	}
	for _, b := range bs {
		p.put(b)
	}
}

// DefaultBatcherPool is shared by graphs created without WithBatcherPool.
var DefaultBatcherPool = NewBatcherPool()
