// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package lights

import (
	"fmt"

	"github.com/gogpu/deferred"
)

// TraversalStats summarizes one Execute call.
type TraversalStats struct {
	Containers int
	Shaders    int
	Arrays     int
	Lights     int
}

// traversal holds the scratch state of one Execute call.
type traversal struct {
	graph    *Graph
	consumer Consumer
	batcher  *batcher
	stats    TraversalStats
}

// Execute replays the graph to c.
//
// The consumer's OnStart is called first. Then every non-empty clip group is
// replayed, ordered by the id of its group and then by creation order,
// followed by every non-empty group in ascending id order. OnFinish is
// called last. Empty containers are skipped entirely.
//
// The graph is not modified. The first error returned by a callback aborts
// the traversal and is returned wrapped with the container it occurred in.
// While Execute runs, the graph rejects mutation: Execute and
// AddLightSingle return ErrTraversalActive, and Reset and NewClipGroup
// panic.
func (g *Graph) Execute(c Consumer) error {
	_, err := g.ExecuteStats(c)
	return err
}

// ExecuteStats is like Execute but also reports what was replayed. On error
// the stats cover the callbacks made before the failure.
func (g *Graph) ExecuteStats(c Consumer) (TraversalStats, error) {
	if c == nil {
		return TraversalStats{}, ErrNilConsumer
	}
	if g.executing {
		return TraversalStats{}, ErrTraversalActive
	}
	g.executing = true
	defer func() { g.executing = false }()

	t := traversal{graph: g, consumer: c, batcher: g.pool.get()}
	defer g.pool.put(t.batcher)

	err := t.run()
	if err == nil {
		deferred.Logger().Debug("lights: traversal finished",
			"containers", t.stats.Containers,
			"shaders", t.stats.Shaders,
			"arrays", t.stats.Arrays,
			"lights", t.stats.Lights)
	}
	return t.stats, err
}

func (t *traversal) run() error {
	g := t.graph
	if err := t.consumer.OnStart(); err != nil {
		return fmt.Errorf("lights: start: %w", err)
	}

	for id := 1; id < len(g.groups); id++ {
		for _, ci := range g.groups[id].clips {
			s := &g.clips[ci]
			if len(s.entries) == 0 {
				continue
			}
			c := Container{Kind: ContainerClipGroup, Group: s.group, Instance: s.instance}
			cc, err := t.consumer.OnStartClipGroup(c.Instance, c.Group)
			if err != nil {
				return fmt.Errorf("lights: %s: %w", c, err)
			}
			if err := t.replay(c, cc, s.entries); err != nil {
				return err
			}
		}
	}

	for id := 1; id < len(g.groups); id++ {
		entries := g.groups[id].entries
		if len(entries) == 0 {
			continue
		}
		c := Container{Kind: ContainerGroup, Group: GroupID(id)}
		cc, err := t.consumer.OnStartGroup(c.Group)
		if err != nil {
			return fmt.Errorf("lights: %s: %w", c, err)
		}
		if err := t.replay(c, cc, entries); err != nil {
			return err
		}
	}

	if err := t.consumer.OnFinish(); err != nil {
		return fmt.Errorf("lights: finish: %w", err)
	}
	return nil
}

// replay batches the entries of one container and feeds them to cc.
func (t *traversal) replay(c Container, cc ContainerConsumer, entries []Entry) error {
	if cc == nil {
		return fmt.Errorf("lights: %s: %w", c, ErrNilConsumer)
	}
	wrap := func(err error) error {
		return fmt.Errorf("lights: %s: %w", c, err)
	}

	t.stats.Containers++
	if err := cc.OnStart(); err != nil {
		return wrap(err)
	}

	plan := t.batcher.Build(entries)
	for i, sb := range plan.Shaders {
		t.stats.Shaders++
		if err := cc.OnLightShaderStart(sb.Shader); err != nil {
			return wrap(err)
		}
		for _, run := range plan.ShaderArrays(i) {
			t.stats.Arrays++
			if err := cc.OnLightArrayStart(plan.Entries[run.Start].Light); err != nil {
				return wrap(err)
			}
			for _, e := range plan.Entries[run.Start:run.End] {
				t.stats.Lights++
				if err := cc.OnLight(sb.Shader, e.Light); err != nil {
					return wrap(err)
				}
			}
		}
		if err := cc.OnLightShaderFinish(sb.Shader); err != nil {
			return wrap(err)
		}
	}

	if err := cc.OnFinish(); err != nil {
		return wrap(err)
	}
	return nil
}
