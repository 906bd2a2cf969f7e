// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package lights

import "fmt"

// Group is a handle onto a numbered light group of a Graph.
//
// Lights in a group are drawn with the stencil test restricted to pixels
// tagged with the group's id.
type Group struct {
	graph *Graph
	id    GroupID
}

// ID returns the group's id.
func (grp *Group) ID() GroupID {
	return grp.id
}

// LightsCount returns the number of lights added directly to the group.
// Lights in the group's clip groups are not counted.
func (grp *Group) LightsCount() int {
	return len(grp.graph.groups[grp.id].entries)
}

// ClipGroupsCount returns the number of clip groups created under the group
// since the last Reset.
func (grp *Group) ClipGroupsCount() int {
	return len(grp.graph.groups[grp.id].clips)
}

// AddLightSingle adds a light to the group.
//
// It returns ErrLightAlreadyVisible if the light has already been added
// anywhere in the graph during this frame, and ErrTraversalActive if the
// graph is being executed.
func (grp *Group) AddLightSingle(light LightID, shader ShaderID, array ArrayID) error {
	e := Entry{Light: light, Shader: shader, Array: array}
	if err := grp.graph.place(e, Container{Kind: ContainerGroup, Group: grp.id}); err != nil {
		return err
	}
	s := &grp.graph.groups[grp.id]
	s.created = true
	s.entries = append(s.entries, e)
	return nil
}

// NewClipGroup creates a clip group for the given instance. Lights added to
// it affect only the parts of the group that lie inside the instance's
// volume.
//
// NewClipGroup panics if called from inside a traversal of the graph.
func (grp *Group) NewClipGroup(instance InstanceID) *ClipGroup {
	g := grp.graph
	if g.executing {
		panic("lights: NewClipGroup called during Execute")
	}
	return &ClipGroup{
		graph:      g,
		index:      g.newClip(instance, grp.id),
		generation: g.generation,
		instance:   instance,
		group:      grp.id,
	}
}

// ClipGroup is a handle onto a set of lights clipped against the volume of
// an instance. A ClipGroup is deleted by the next Graph.Reset.
type ClipGroup struct {
	graph      *Graph
	index      int
	generation uint64
	instance   InstanceID
	group      GroupID
}

// Instance returns the instance whose volume clips the lights.
func (cg *ClipGroup) Instance() InstanceID {
	return cg.instance
}

// Group returns the id of the group the clip group was created under.
func (cg *ClipGroup) Group() GroupID {
	return cg.group
}

// Deleted reports whether the graph has been reset since the clip group
// was created.
func (cg *ClipGroup) Deleted() bool {
	return cg.generation != cg.graph.generation
}

// LightsCount returns the number of lights in the clip group, or 0 if it
// has been deleted.
func (cg *ClipGroup) LightsCount() int {
	if cg.Deleted() {
		return 0
	}
	return len(cg.graph.clips[cg.index].entries)
}

// AddLightSingle adds a light to the clip group.
//
// It returns ErrClipGroupDeleted if the graph has been reset since the clip
// group was created, ErrLightAlreadyVisible if the light has already
// been added anywhere in the graph during this frame, and
// ErrTraversalActive if the graph is being executed.
func (cg *ClipGroup) AddLightSingle(light LightID, shader ShaderID, array ArrayID) error {
	if cg.Deleted() {
		return fmt.Errorf("%w: instance %d", ErrClipGroupDeleted, cg.instance)
	}
	e := Entry{Light: light, Shader: shader, Array: array}
	c := Container{Kind: ContainerClipGroup, Group: cg.group, Instance: cg.instance}
	if err := cg.graph.place(e, c); err != nil {
		return err
	}
	s := &cg.graph.clips[cg.index]
	s.entries = append(s.entries, e)
	return nil
}
