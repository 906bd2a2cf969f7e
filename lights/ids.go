// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package lights

import "fmt"

// LightID identifies a light. It is supplied by the light object and is
// unique among the lights of a scene.
type LightID uint64

// ShaderID identifies a light shader binding.
type ShaderID uint64

// ArrayID identifies the vertex array holding a light's volume geometry.
type ArrayID uint32

// InstanceID identifies the instance whose geometry is a clip volume.
type InstanceID uint64

// GroupID numbers a light group. Valid groups lie in
// [1, stencil.MaximumGroups); 0 means "no group".
type GroupID int

// Entry is one light placed in a container.
type Entry struct {
	Light  LightID
	Shader ShaderID
	Array  ArrayID
}

func entryShader(e Entry) ShaderID { return e.Shader }
func entryArray(e Entry) ArrayID   { return e.Array }

// ContainerKind tags the two kinds of light containers.
type ContainerKind uint8

// Container kinds.
const (
	// ContainerGroup is a numbered group of directly visible lights.
	ContainerGroup ContainerKind = iota

	// ContainerClipGroup is a group of lights clipped by an instance volume.
	ContainerClipGroup
)

// String returns a human-readable name for the container kind.
func (k ContainerKind) String() string {
	switch k {
	case ContainerGroup:
		return "Group"
	case ContainerClipGroup:
		return "ClipGroup"
	default:
		return "Unknown"
	}
}

// Container describes a light container. Instance is meaningful only for
// ContainerClipGroup.
type Container struct {
	Kind     ContainerKind
	Group    GroupID
	Instance InstanceID
}

// String formats the container for logs and error messages.
func (c Container) String() string {
	if c.Kind == ContainerClipGroup {
		return fmt.Sprintf("clip group (instance %d, group %d)", c.Instance, c.Group)
	}
	return fmt.Sprintf("group %d", c.Group)
}

// Placement records where a light was placed in the current frame.
type Placement struct {
	Container

	// Shader and Array are the keys the light was added with.
	Shader ShaderID
	Array  ArrayID
}
