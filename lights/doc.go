// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package lights implements the per-frame light graph of the deferred
// light pass.
//
// # Overview
//
// Once per frame the scene builder asks the Graph for numbered groups and
// adds the visible lights to them, either directly or through clip groups
// that restrict a light's effect to the inside of a clipping volume. The
// renderer then calls Execute with a Consumer. The graph replays every
// non-empty container, ordering its lights so that shader switches and
// vertex array rebinds are minimized. After the frame, Reset empties the
// graph for reuse.
//
//	g := lights.NewGraph()
//	grp, err := g.Group(1)
//	if err != nil {
//	    return err
//	}
//	if err := grp.AddLightSingle(light, shader, array); err != nil {
//	    return err
//	}
//	if err := g.Execute(renderer); err != nil {
//	    return err
//	}
//	g.Reset()
//
// # Uniqueness
//
// A light may be placed at most once per frame, in exactly one group or one
// clip group. Adding it a second time anywhere in the graph fails with
// ErrLightAlreadyVisible.
//
// # Traversal Order
//
// Clip groups are visited first, ordered by the id of their group and then
// by creation order. Groups follow in ascending id order. Inside a container, lights are partitioned by shader in
// first-seen order, and each shader's lights are split into runs sharing a
// vertex array. Insertion order is otherwise preserved.
//
// # Thread Safety
//
// A Graph is owned by the frame-building goroutine. It has no locks and
// must not be used concurrently.
package lights
