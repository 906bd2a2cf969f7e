// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package lights

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gogpu/deferred"
	"github.com/gogpu/deferred/stencil"
)

// groupSlot is the storage behind a Group handle.
type groupSlot struct {
	created bool
	entries []Entry

	// clips indexes Graph.clips in creation order.
	clips []int
}

// clipSlot is the storage behind a ClipGroup handle.
type clipSlot struct {
	instance InstanceID
	group    GroupID
	entries  []Entry
}

// Graph collects the lights visible in one frame.
//
// The zero value is not usable; create graphs with NewGraph.
type Graph struct {
	groups  [stencil.MaximumGroups]groupSlot
	handles [stencil.MaximumGroups]*Group

	// clips is an arena in creation order. Slots are reused across frames
	// and handles are validated against generation.
	clips      []clipSlot
	generation uint64

	visible map[LightID]Placement

	pool      *BatcherPool
	executing bool
}

// NewGraph creates an empty light graph.
func NewGraph(opts ...Option) *Graph {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	g := &Graph{
		visible: make(map[LightID]Placement, o.capacityHint),
		pool:    o.pool,
	}
	for i := range g.handles {
		g.handles[i] = &Group{graph: g, id: GroupID(i)}
	}
	return g
}

// Group returns the group with the given id, creating it if it does not
// exist yet. The same handle is returned for the same id on every call,
// and it stays usable after Reset.
func (g *Graph) Group(id GroupID) (*Group, error) {
	if _, err := stencil.CheckValidGroup(int(id)); err != nil {
		return nil, fmt.Errorf("lights: group %d: %w", id, err)
	}
	g.groups[id].created = true
	return g.handles[id], nil
}

// LightsCount returns the number of lights placed in the graph.
func (g *Graph) LightsCount() int {
	return len(g.visible)
}

// Lookup reports where a light was placed in the current frame.
func (g *Graph) Lookup(light LightID) (Placement, bool) {
	p, ok := g.visible[light]
	return p, ok
}

// Groups returns the ids of the groups created since the last Reset, in
// ascending order.
func (g *Graph) Groups() []GroupID {
	var ids []GroupID
	for i := 1; i < len(g.groups); i++ {
		if g.groups[i].created {
			ids = append(ids, GroupID(i))
		}
	}
	return ids
}

// ClipGroupsCount returns the number of clip groups created since the last
// Reset.
func (g *Graph) ClipGroupsCount() int {
	return len(g.clips)
}

// Reset removes every group, clip group and light from the graph. Clip
// group handles obtained before the call report Deleted and reject new
// lights. Reset on an empty graph is a no-op apart from invalidating
// handles.
//
// Reset panics if called from inside a traversal of the graph.
func (g *Graph) Reset() {
	if g.executing {
		panic("lights: Reset called during Execute")
	}
	for i := range g.groups {
		s := &g.groups[i]
		s.created = false
		s.entries = s.entries[:0]
		s.clips = s.clips[:0]
	}
	for i := range g.clips {
		g.clips[i].entries = g.clips[i].entries[:0]
	}
	g.clips = g.clips[:0]
	g.generation++
	clear(g.visible)

	deferred.Logger().Debug("lights: graph reset", "generation", g.generation)
}

// newClip appends a clip slot, reusing the entry buffer of a slot from an
// earlier frame when one is available.
func (g *Graph) newClip(instance InstanceID, group GroupID) int {
	n := len(g.clips)
	if n < cap(g.clips) {
		g.clips = g.clips[:n+1]
		s := &g.clips[n]
		s.instance = instance
		s.group = group
		s.entries = s.entries[:0]
	} else {
		g.clips = append(g.clips, clipSlot{instance: instance, group: group})
	}
	gs := &g.groups[group]
	gs.created = true
	gs.clips = append(gs.clips, n)
	return n
}

// place records a light as visible in the given container. It fails
// without modifying the graph if the light is already visible.
func (g *Graph) place(e Entry, c Container) error {
	if g.executing {
		return fmt.Errorf("%w: cannot add light %d", ErrTraversalActive, e.Light)
	}
	if prev, ok := g.visible[e.Light]; ok {
		return fmt.Errorf("%w: light %d already in %s", ErrLightAlreadyVisible, e.Light, prev.Container)
	}
	g.visible[e.Light] = Placement{Container: c, Shader: e.Shader, Array: e.Array}

	if log := deferred.Logger(); log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("lights: light placed",
			"light", e.Light,
			"shader", e.Shader,
			"array", e.Array,
			"container", c.String())
	}
	return nil
}
