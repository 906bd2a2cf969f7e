// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package lights

import (
	"errors"

	"github.com/gogpu/deferred/stencil"
)

// Package errors. Returned errors wrap these with context; test with errors.Is.
var (
	// ErrInvalidGroup is returned by Graph.Group for ids outside
	// [1, stencil.MaximumGroups). It is the stencil package's sentinel.
	ErrInvalidGroup = stencil.ErrInvalidGroup

	// ErrLightAlreadyVisible is returned when a light is added while it is
	// already placed somewhere in the graph.
	ErrLightAlreadyVisible = errors.New("lights: light already visible")

	// ErrClipGroupDeleted is returned when adding to a clip group created
	// before the last Reset.
	ErrClipGroupDeleted = errors.New("lights: clip group has been deleted")

	// ErrTraversalActive is returned by Execute and AddLightSingle when
	// called from inside a traversal of the same graph.
	ErrTraversalActive = errors.New("lights: traversal already in progress")

	// ErrNilConsumer is returned when Execute receives a nil consumer or a
	// consumer returns a nil container consumer.
	ErrNilConsumer = errors.New("lights: nil consumer")
)
