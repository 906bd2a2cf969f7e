// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package lights

// Consumer receives the traversal of a Graph. It is implemented by the
// renderer.
//
// Callbacks run synchronously on the goroutine that called Execute. A
// non-nil error aborts the traversal immediately: no further callbacks are
// made, including the pending OnFinish calls, and Execute returns the error.
type Consumer interface {
	// OnStart is called once before any container.
	OnStart() error

	// OnStartGroup is called for each non-empty group and returns the
	// consumer for that group's lights.
	OnStartGroup(group GroupID) (ContainerConsumer, error)

	// OnStartClipGroup is called for each non-empty clip group and returns
	// the consumer for that clip group's lights. group is the group the
	// clip group was created under.
	OnStartClipGroup(instance InstanceID, group GroupID) (ContainerConsumer, error)

	// OnFinish is called once after the last container.
	OnFinish() error
}

// ContainerConsumer receives the lights of one group or clip group.
//
// For every shader batch the graph calls OnLightShaderStart, then for each
// run of lights sharing a vertex array OnLightArrayStart with the first
// light of the run followed by OnLight for every light of the run, and
// finally OnLightShaderFinish.
type ContainerConsumer interface {
	// OnStart is called before the first shader batch.
	OnStart() error

	// OnLightShaderStart is called when a shader batch begins.
	OnLightShaderStart(shader ShaderID) error

	// OnLightArrayStart is called when a run of lights sharing a vertex
	// array begins. light is the first light of the run.
	OnLightArrayStart(light LightID) error

	// OnLight is called for every light.
	OnLight(shader ShaderID, light LightID) error

	// OnLightShaderFinish is called when a shader batch ends.
	OnLightShaderFinish(shader ShaderID) error

	// OnFinish is called after the last shader batch.
	OnFinish() error
}
