// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package deferred is the light-pass core of a deferred 3D renderer.
//
// # Overview
//
// A deferred renderer shades every visible light against the geometry
// buffer in a separate pass. Switching light shaders and rebinding the
// vertex arrays that hold light volumes are the expensive state changes of
// that pass. This module collects the lights visible in one frame into a
// rebuildable graph and replays them to the renderer in an order that
// batches both.
//
// # Packages
//
//   - lights: the per-frame light graph (groups, clip groups, traversal)
//   - stencil: stencil layout and depth-stencil states for grouped lights
//   - shader: light shader registry backed by naga WGSL compilation
//   - lightpass: a lights.Consumer that records the light pass on the GPU
//   - debug: a lights.Consumer that renders a traversal overview image
//
// # Frame Lifecycle
//
//	g := lights.NewGraph()
//	grp, _ := g.Group(1)
//	_ = grp.AddLightSingle(lightID, shaderID, arrayID)
//	_ = g.Execute(consumer)
//	g.Reset()
//
// # Logging
//
// The module produces no log output by default. Call SetLogger to route
// diagnostics from every sub-package to a slog.Logger.
package deferred

// Version information
const (
	// Version is the current version of the module
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
