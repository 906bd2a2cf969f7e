// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package batch groups an ordered sequence of draw entries so that
// expensive state changes happen as rarely as possible.
//
// Entries are first partitioned by shader key. The partition is stable:
// shaders appear in the order they were first seen and entries keep their
// relative order inside each shader. Each shader's entries are then split
// into runs of consecutive entries that share an array key. Runs are never
// merged across a different intervening array key.
package batch

// Span is a half-open index range [Start, End).
type Span struct {
	Start int
	End   int
}

// Len returns the number of indices covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Empty reports whether the span covers nothing.
func (s Span) Empty() bool { return s.End <= s.Start }

// ShaderBatch is one shader's share of a Plan.
type ShaderBatch[S comparable] struct {
	// Shader is the shader key shared by every entry of the batch.
	Shader S

	// Entries indexes Plan.Entries.
	Entries Span

	// Arrays indexes Plan.Arrays.
	Arrays Span
}

// Plan is the batched order of a sequence of entries.
//
// A Plan returned by Batcher.Build aliases the batcher's buffers and is
// valid until the next call to Build or Reset.
type Plan[E any, S comparable] struct {
	// Entries holds the input entries in shader-major order.
	Entries []E

	// Shaders lists the shader batches in first-seen order.
	Shaders []ShaderBatch[S]

	// Arrays lists the array runs of all shader batches. Each run indexes
	// Entries; a shader batch's runs are contiguous in this slice.
	Arrays []Span
}

// Len returns the number of entries in the plan.
func (p *Plan[E, S]) Len() int { return len(p.Entries) }

// ShaderEntries returns the entries of shader batch i.
func (p *Plan[E, S]) ShaderEntries(i int) []E {
	s := p.Shaders[i].Entries
	return p.Entries[s.Start:s.End]
}

// ShaderArrays returns the array runs of shader batch i.
func (p *Plan[E, S]) ShaderArrays(i int) []Span {
	a := p.Shaders[i].Arrays
	return p.Arrays[a.Start:a.End]
}

// Batcher builds Plans. Its buffers are reused between builds, so a warm
// batcher does not allocate.
//
// A Batcher is not safe for concurrent use.
type Batcher[E any, S comparable, A comparable] struct {
	shaderOf func(E) S
	arrayOf  func(E) A

	bucketOf map[S]int
	slots    []int // bucket index per input entry
	cursor   []int // next write position per bucket

	plan Plan[E, S]
}

// New creates a Batcher that reads the shader and array keys of an entry
// through the given accessors.
func New[E any, S comparable, A comparable](shader func(E) S, array func(E) A) *Batcher[E, S, A] {
	if shader == nil || array == nil {
		panic("batch: New requires shader and array accessors")
	}
	return &Batcher[E, S, A]{
		shaderOf: shader,
		arrayOf:  array,
		bucketOf: make(map[S]int),
	}
}

// Reset drops the last plan while keeping the allocated buffers.
func (b *Batcher[E, S, A]) Reset() {
	clear(b.bucketOf)
	clear(b.plan.Entries) // release references held by E
	b.plan.Entries = b.plan.Entries[:0]
	b.plan.Shaders = b.plan.Shaders[:0]
	b.plan.Arrays = b.plan.Arrays[:0]
	b.slots = b.slots[:0]
	b.cursor = b.cursor[:0]
}

// Build computes the batched order of entries. The input slice is not
// modified.
func (b *Batcher[E, S, A]) Build(entries []E) *Plan[E, S] {
	b.Reset()
	if len(entries) == 0 {
		return &b.plan
	}

	// Pass 1: bucket per entry, buckets numbered in first-seen order.
	for _, e := range entries {
		key := b.shaderOf(e)
		idx, ok := b.bucketOf[key]
		if !ok {
			idx = len(b.plan.Shaders)
			b.bucketOf[key] = idx
			b.plan.Shaders = append(b.plan.Shaders, ShaderBatch[S]{Shader: key})
		}
		b.plan.Shaders[idx].Entries.End++ // count for now
		b.slots = append(b.slots, idx)
	}

	// Prefix sums turn counts into spans.
	offset := 0
	for i := range b.plan.Shaders {
		n := b.plan.Shaders[i].Entries.End
		b.plan.Shaders[i].Entries = Span{Start: offset, End: offset + n}
		b.cursor = append(b.cursor, offset)
		offset += n
	}

	// Pass 2: stable placement.
	b.plan.Entries = growEntries(b.plan.Entries, len(entries))
	for i, e := range entries {
		idx := b.slots[i]
		b.plan.Entries[b.cursor[idx]] = e
		b.cursor[idx]++
	}

	// Run-length coalescing of array keys inside each shader batch.
	for i := range b.plan.Shaders {
		sb := &b.plan.Shaders[i]
		sb.Arrays.Start = len(b.plan.Arrays)
		start := sb.Entries.Start
		current := b.arrayOf(b.plan.Entries[start])
		for j := start + 1; j < sb.Entries.End; j++ {
			next := b.arrayOf(b.plan.Entries[j])
			if next != current {
				b.plan.Arrays = append(b.plan.Arrays, Span{Start: start, End: j})
				start = j
				current = next
			}
		}
		b.plan.Arrays = append(b.plan.Arrays, Span{Start: start, End: sb.Entries.End})
		sb.Arrays.End = len(b.plan.Arrays)
	}

	return &b.plan
}

// growEntries returns s resized to n, reallocating only when needed.
func growEntries[E any](s []E, n int) []E {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]E, n)
}

// Build is a convenience wrapper that batches entries with a fresh Batcher.
func Build[E any, S comparable, A comparable](entries []E, shader func(E) S, array func(E) A) *Plan[E, S] {
	return New(shader, array).Build(entries)
}
