// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package lights

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/deferred/stencil"
)

func mustGroup(t *testing.T, g *Graph, id GroupID) *Group {
	t.Helper()
	grp, err := g.Group(id)
	if err != nil {
		t.Fatalf("Group(%d): %v", id, err)
	}
	return grp
}

func mustAdd(t *testing.T, add func(LightID, ShaderID, ArrayID) error, light LightID, shader ShaderID, array ArrayID) {
	t.Helper()
	if err := add(light, shader, array); err != nil {
		t.Fatalf("AddLightSingle(%d, %d, %d): %v", light, shader, array, err)
	}
}

func execute(t *testing.T, g *Graph) string {
	t.Helper()
	r := &recorder{}
	if err := g.Execute(r); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	return r.String()
}

func TestEmpty(t *testing.T) {
	g := NewGraph()
	if n := g.LightsCount(); n != 0 {
		t.Errorf("LightsCount() = %d, want 0", n)
	}
	got := execute(t, g)
	if want := transcript("onStart", "onFinish"); got != want {
		t.Errorf("transcript:\n%s\nwant:\n%s", got, want)
	}
}

func TestGroupInvalid(t *testing.T) {
	g := NewGraph()
	for _, id := range []GroupID{0, -1, GroupID(stencil.MaximumGroups), 100} {
		grp, err := g.Group(id)
		if !errors.Is(err, ErrInvalidGroup) {
			t.Errorf("Group(%d) error = %v, want ErrInvalidGroup", id, err)
		}
		if !errors.Is(err, stencil.ErrInvalidGroup) {
			t.Errorf("Group(%d) error = %v, want stencil.ErrInvalidGroup", id, err)
		}
		if grp != nil {
			t.Errorf("Group(%d) returned a handle", id)
		}
	}
}

func TestGroupSameHandle(t *testing.T) {
	g := NewGraph()
	a := mustGroup(t, g, 1)
	b := mustGroup(t, g, 1)
	if a != b {
		t.Error("Group(1) returned different handles")
	}
	if a.ID() != 1 {
		t.Errorf("ID() = %d, want 1", a.ID())
	}
	if got := g.Groups(); !slices.Equal(got, []GroupID{1}) {
		t.Errorf("Groups() = %v, want [1]", got)
	}
}

func TestGroupSingleExec(t *testing.T) {
	g := NewGraph()
	grp := mustGroup(t, g, 1)
	mustAdd(t, grp.AddLightSingle, 10, 40, 7)

	if n := g.LightsCount(); n != 1 {
		t.Errorf("LightsCount() = %d, want 1", n)
	}
	got := execute(t, g)
	want := transcript(
		"onStart",
		"onStartGroup 1",
		"group 1: onStart",
		"group 1: onLightShaderStart 40",
		"group 1: onLightArrayStart 10",
		"group 1: onLight 40 10",
		"group 1: onLightShaderFinish 40",
		"group 1: onFinish",
		"onFinish",
	)
	if got != want {
		t.Errorf("transcript:\n%s\nwant:\n%s", got, want)
	}
}

func TestGroupSingleClearExec(t *testing.T) {
	g := NewGraph()
	grp := mustGroup(t, g, 1)
	mustAdd(t, grp.AddLightSingle, 10, 40, 7)
	g.Reset()

	if n := g.LightsCount(); n != 0 {
		t.Errorf("LightsCount() after Reset = %d, want 0", n)
	}
	if got, want := execute(t, g), transcript("onStart", "onFinish"); got != want {
		t.Errorf("transcript:\n%s\nwant:\n%s", got, want)
	}
}

func TestGroupBatching(t *testing.T) {
	const (
		a0 ArrayID = 0
		a1 ArrayID = 1
	)
	g := NewGraph()
	grp := mustGroup(t, g, 1)
	for _, e := range []Entry{
		{20, 40, a0}, {21, 40, a0}, {22, 40, a0},
		{23, 40, a1}, {24, 40, a1}, {25, 40, a1},
		{26, 41, a0}, {27, 41, a0}, {28, 41, a0},
		{29, 41, a1}, {30, 41, a1}, {31, 41, a1},
	} {
		mustAdd(t, grp.AddLightSingle, e.Light, e.Shader, e.Array)
	}

	got := execute(t, g)
	want := transcript(
		"onStart",
		"onStartGroup 1",
		"group 1: onStart",
		"group 1: onLightShaderStart 40",
		"group 1: onLightArrayStart 20",
		"group 1: onLight 40 20",
		"group 1: onLight 40 21",
		"group 1: onLight 40 22",
		"group 1: onLightArrayStart 23",
		"group 1: onLight 40 23",
		"group 1: onLight 40 24",
		"group 1: onLight 40 25",
		"group 1: onLightShaderFinish 40",
		"group 1: onLightShaderStart 41",
		"group 1: onLightArrayStart 26",
		"group 1: onLight 41 26",
		"group 1: onLight 41 27",
		"group 1: onLight 41 28",
		"group 1: onLightArrayStart 29",
		"group 1: onLight 41 29",
		"group 1: onLight 41 30",
		"group 1: onLight 41 31",
		"group 1: onLightShaderFinish 41",
		"group 1: onFinish",
		"onFinish",
	)
	if got != want {
		t.Errorf("transcript:\n%s\nwant:\n%s", got, want)
	}
	if n := g.LightsCount(); n != 12 {
		t.Errorf("LightsCount() = %d, want 12", n)
	}
}

func TestGroupInterleavedShaders(t *testing.T) {
	g := NewGraph()
	grp := mustGroup(t, g, 2)
	mustAdd(t, grp.AddLightSingle, 1, 41, 0)
	mustAdd(t, grp.AddLightSingle, 2, 40, 0)
	mustAdd(t, grp.AddLightSingle, 3, 41, 0)
	mustAdd(t, grp.AddLightSingle, 4, 40, 1)
	mustAdd(t, grp.AddLightSingle, 5, 40, 0)

	got := execute(t, g)
	want := transcript(
		"onStart",
		"onStartGroup 2",
		"group 2: onStart",
		"group 2: onLightShaderStart 41",
		"group 2: onLightArrayStart 1",
		"group 2: onLight 41 1",
		"group 2: onLight 41 3",
		"group 2: onLightShaderFinish 41",
		"group 2: onLightShaderStart 40",
		"group 2: onLightArrayStart 2",
		"group 2: onLight 40 2",
		"group 2: onLightArrayStart 4",
		"group 2: onLight 40 4",
		"group 2: onLightArrayStart 5",
		"group 2: onLight 40 5",
		"group 2: onLightShaderFinish 40",
		"group 2: onFinish",
		"onFinish",
	)
	if got != want {
		t.Errorf("transcript:\n%s\nwant:\n%s", got, want)
	}
}

func TestGroupDiscontinuous(t *testing.T) {
	g := NewGraph()
	grp := mustGroup(t, g, 3)
	mustAdd(t, grp.AddLightSingle, 10, 40, 0)

	got := execute(t, g)
	want := transcript(
		"onStart",
		"onStartGroup 3",
		"group 3: onStart",
		"group 3: onLightShaderStart 40",
		"group 3: onLightArrayStart 10",
		"group 3: onLight 40 10",
		"group 3: onLightShaderFinish 40",
		"group 3: onFinish",
		"onFinish",
	)
	if got != want {
		t.Errorf("transcript:\n%s\nwant:\n%s", got, want)
	}
}

func TestGroupsAscending(t *testing.T) {
	g := NewGraph()
	for _, id := range []GroupID{5, 2, 9} {
		grp := mustGroup(t, g, id)
		mustAdd(t, grp.AddLightSingle, LightID(id)*10, 1, 0)
	}

	r := &recorder{}
	if err := g.Execute(r); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	var starts []string
	for _, l := range r.lines {
		if strings.HasPrefix(l, "onStartGroup") {
			starts = append(starts, l)
		}
	}
	want := []string{"onStartGroup 2", "onStartGroup 5", "onStartGroup 9"}
	if !slices.Equal(starts, want) {
		t.Errorf("group order = %v, want %v", starts, want)
	}
	if got := g.Groups(); !slices.Equal(got, []GroupID{2, 5, 9}) {
		t.Errorf("Groups() = %v, want [2 5 9]", got)
	}
}

func TestEmptyContainersSkipped(t *testing.T) {
	g := NewGraph()
	grp := mustGroup(t, g, 1)
	grp.NewClipGroup(100)
	mustGroup(t, g, 4)

	if got, want := execute(t, g), transcript("onStart", "onFinish"); got != want {
		t.Errorf("transcript:\n%s\nwant:\n%s", got, want)
	}
}

func TestGroupAddTwice(t *testing.T) {
	g := NewGraph()
	grp := mustGroup(t, g, 1)
	mustAdd(t, grp.AddLightSingle, 10, 40, 0)

	err := grp.AddLightSingle(10, 41, 1)
	if !errors.Is(err, ErrLightAlreadyVisible) {
		t.Fatalf("second AddLightSingle error = %v, want ErrLightAlreadyVisible", err)
	}
	if n := g.LightsCount(); n != 1 {
		t.Errorf("LightsCount() = %d, want 1", n)
	}
	if n := grp.LightsCount(); n != 1 {
		t.Errorf("Group.LightsCount() = %d, want 1", n)
	}
	p, ok := g.Lookup(10)
	if !ok {
		t.Fatal("Lookup(10) not found")
	}
	if p.Shader != 40 || p.Array != 0 {
		t.Errorf("failed add changed placement: %+v", p)
	}
}

func TestGroupAddTwiceViaDifferentGroup(t *testing.T) {
	g := NewGraph()
	mustAdd(t, mustGroup(t, g, 1).AddLightSingle, 10, 40, 0)

	err := mustGroup(t, g, 2).AddLightSingle(10, 40, 0)
	if !errors.Is(err, ErrLightAlreadyVisible) {
		t.Errorf("error = %v, want ErrLightAlreadyVisible", err)
	}
}

func TestGroupAddTwiceViaClipGroup(t *testing.T) {
	g := NewGraph()
	grp := mustGroup(t, g, 1)
	mustAdd(t, grp.AddLightSingle, 10, 40, 0)

	cg := grp.NewClipGroup(100)
	if err := cg.AddLightSingle(10, 40, 0); !errors.Is(err, ErrLightAlreadyVisible) {
		t.Errorf("error = %v, want ErrLightAlreadyVisible", err)
	}
	if n := cg.LightsCount(); n != 0 {
		t.Errorf("ClipGroup.LightsCount() = %d, want 0", n)
	}
}

func TestClipGroupAddTwiceViaGroup(t *testing.T) {
	g := NewGraph()
	grp := mustGroup(t, g, 1)
	cg := grp.NewClipGroup(100)
	mustAdd(t, cg.AddLightSingle, 10, 40, 0)

	if err := mustGroup(t, g, 2).AddLightSingle(10, 40, 0); !errors.Is(err, ErrLightAlreadyVisible) {
		t.Errorf("error = %v, want ErrLightAlreadyVisible", err)
	}
}

func TestClipGroupAddTwiceViaDifferentClipGroup(t *testing.T) {
	g := NewGraph()
	grp := mustGroup(t, g, 1)
	mustAdd(t, grp.NewClipGroup(100).AddLightSingle, 10, 40, 0)

	other := mustGroup(t, g, 2).NewClipGroup(101)
	if err := other.AddLightSingle(10, 40, 0); !errors.Is(err, ErrLightAlreadyVisible) {
		t.Errorf("error = %v, want ErrLightAlreadyVisible", err)
	}
}

func TestClipGroupSingleExec(t *testing.T) {
	g := NewGraph()
	grp := mustGroup(t, g, 1)
	cg := grp.NewClipGroup(100)
	mustAdd(t, cg.AddLightSingle, 10, 40, 7)

	if cg.Instance() != 100 || cg.Group() != 1 {
		t.Errorf("clip group = (%d, %d), want (100, 1)", cg.Instance(), cg.Group())
	}
	got := execute(t, g)
	want := transcript(
		"onStart",
		"onStartClipGroup 100 1",
		"clip 100: onStart",
		"clip 100: onLightShaderStart 40",
		"clip 100: onLightArrayStart 10",
		"clip 100: onLight 40 10",
		"clip 100: onLightShaderFinish 40",
		"clip 100: onFinish",
		"onFinish",
	)
	if got != want {
		t.Errorf("transcript:\n%s\nwant:\n%s", got, want)
	}
	if n := grp.LightsCount(); n != 0 {
		t.Errorf("Group.LightsCount() = %d, want 0", n)
	}
	if n := g.LightsCount(); n != 1 {
		t.Errorf("LightsCount() = %d, want 1", n)
	}
}

func TestClipGroupsBeforeGroups(t *testing.T) {
	g := NewGraph()
	g5 := mustGroup(t, g, 5)
	g2 := mustGroup(t, g, 2)

	mustAdd(t, g5.NewClipGroup(300).AddLightSingle, 1, 40, 0)
	mustAdd(t, g2.NewClipGroup(100).AddLightSingle, 2, 40, 0)
	mustAdd(t, g5.AddLightSingle, 3, 40, 0)
	mustAdd(t, g2.AddLightSingle, 4, 40, 0)
	mustAdd(t, g5.NewClipGroup(200).AddLightSingle, 5, 40, 0)
	g2.NewClipGroup(150)

	r := &recorder{}
	if err := g.Execute(r); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	var order []string
	for _, l := range r.lines {
		if strings.HasPrefix(l, "onStartGroup") || strings.HasPrefix(l, "onStartClipGroup") {
			order = append(order, l)
		}
	}
	want := []string{
		"onStartClipGroup 100 2",
		"onStartClipGroup 300 5",
		"onStartClipGroup 200 5",
		"onStartGroup 2",
		"onStartGroup 5",
	}
	if !slices.Equal(order, want) {
		t.Errorf("container order = %v, want %v", order, want)
	}
	if n := g.ClipGroupsCount(); n != 4 {
		t.Errorf("ClipGroupsCount() = %d, want 4", n)
	}
	if n := g5.ClipGroupsCount(); n != 2 {
		t.Errorf("Group(5).ClipGroupsCount() = %d, want 2", n)
	}
}

func TestClipGroupDeleted(t *testing.T) {
	g := NewGraph()
	grp := mustGroup(t, g, 1)
	cg := grp.NewClipGroup(100)
	mustAdd(t, cg.AddLightSingle, 10, 40, 0)

	g.Reset()

	if !cg.Deleted() {
		t.Error("Deleted() = false after Reset")
	}
	if n := cg.LightsCount(); n != 0 {
		t.Errorf("LightsCount() of deleted clip group = %d, want 0", n)
	}
	err := cg.AddLightSingle(11, 40, 0)
	if !errors.Is(err, ErrClipGroupDeleted) {
		t.Fatalf("error = %v, want ErrClipGroupDeleted", err)
	}
	if n := g.LightsCount(); n != 0 {
		t.Errorf("LightsCount() = %d, want 0", n)
	}
}

func TestClipGroupDeletedBeforeAlreadyVisible(t *testing.T) {
	g := NewGraph()
	grp := mustGroup(t, g, 1)
	cg := grp.NewClipGroup(100)
	g.Reset()
	mustAdd(t, grp.AddLightSingle, 10, 40, 0)

	err := cg.AddLightSingle(10, 40, 0)
	if !errors.Is(err, ErrClipGroupDeleted) {
		t.Errorf("error = %v, want ErrClipGroupDeleted", err)
	}
	if errors.Is(err, ErrLightAlreadyVisible) {
		t.Errorf("error = %v, should not report ErrLightAlreadyVisible", err)
	}
}

func TestClipGroupSlotReuse(t *testing.T) {
	g := NewGraph()
	grp := mustGroup(t, g, 1)
	stale := grp.NewClipGroup(100)
	mustAdd(t, stale.AddLightSingle, 10, 40, 0)
	g.Reset()

	// The new clip group takes over the stale handle's slot.
	fresh := grp.NewClipGroup(200)
	mustAdd(t, fresh.AddLightSingle, 20, 41, 0)

	if !stale.Deleted() || fresh.Deleted() {
		t.Fatalf("Deleted() stale=%v fresh=%v", stale.Deleted(), fresh.Deleted())
	}
	if n := stale.LightsCount(); n != 0 {
		t.Errorf("stale LightsCount() = %d, want 0", n)
	}
	if err := stale.AddLightSingle(30, 40, 0); !errors.Is(err, ErrClipGroupDeleted) {
		t.Errorf("stale add error = %v, want ErrClipGroupDeleted", err)
	}
	got := execute(t, g)
	want := transcript(
		"onStart",
		"onStartClipGroup 200 1",
		"clip 200: onStart",
		"clip 200: onLightShaderStart 41",
		"clip 200: onLightArrayStart 20",
		"clip 200: onLight 41 20",
		"clip 200: onLightShaderFinish 41",
		"clip 200: onFinish",
		"onFinish",
	)
	if got != want {
		t.Errorf("transcript:\n%s\nwant:\n%s", got, want)
	}
}

func TestResetIdempotent(t *testing.T) {
	g := NewGraph()
	g.Reset()
	g.Reset()
	if n := g.LightsCount(); n != 0 {
		t.Errorf("LightsCount() = %d, want 0", n)
	}
	if n := g.ClipGroupsCount(); n != 0 {
		t.Errorf("ClipGroupsCount() = %d, want 0", n)
	}
	if ids := g.Groups(); len(ids) != 0 {
		t.Errorf("Groups() = %v, want none", ids)
	}
	if got, want := execute(t, g), transcript("onStart", "onFinish"); got != want {
		t.Errorf("transcript:\n%s\nwant:\n%s", got, want)
	}
}

func TestGroupHandleAfterReset(t *testing.T) {
	g := NewGraph()
	grp := mustGroup(t, g, 3)
	mustAdd(t, grp.AddLightSingle, 10, 40, 0)
	g.Reset()

	if len(g.Groups()) != 0 {
		t.Errorf("Groups() = %v after Reset, want none", g.Groups())
	}
	mustAdd(t, grp.AddLightSingle, 10, 40, 0)
	if got := g.Groups(); !slices.Equal(got, []GroupID{3}) {
		t.Errorf("Groups() = %v, want [3]", got)
	}
	if n := g.LightsCount(); n != 1 {
		t.Errorf("LightsCount() = %d, want 1", n)
	}
}

func TestCountConsistency(t *testing.T) {
	g := NewGraph()
	g1 := mustGroup(t, g, 1)
	g2 := mustGroup(t, g, 2)
	c1 := g1.NewClipGroup(100)

	adds := []struct {
		add   func(LightID, ShaderID, ArrayID) error
		light LightID
		ok    bool
	}{
		{g1.AddLightSingle, 1, true},
		{g2.AddLightSingle, 2, true},
		{c1.AddLightSingle, 3, true},
		{g2.AddLightSingle, 1, false},
		{c1.AddLightSingle, 2, false},
		{g1.AddLightSingle, 3, false},
		{c1.AddLightSingle, 4, true},
	}
	want := 0
	for _, a := range adds {
		err := a.add(a.light, 40, 0)
		if a.ok {
			if err != nil {
				t.Fatalf("add %d: %v", a.light, err)
			}
			want++
		} else if !errors.Is(err, ErrLightAlreadyVisible) {
			t.Fatalf("add %d error = %v, want ErrLightAlreadyVisible", a.light, err)
		}
		if n := g.LightsCount(); n != want {
			t.Fatalf("after add %d: LightsCount() = %d, want %d", a.light, n, want)
		}
	}
	if sum := g1.LightsCount() + g2.LightsCount() + c1.LightsCount(); sum != want {
		t.Errorf("container counts sum to %d, want %d", sum, want)
	}

	st, err := g.ExecuteStats(&recorder{})
	if err != nil {
		t.Fatalf("ExecuteStats: %v", err)
	}
	if st.Lights != want || st.Containers != 3 {
		t.Errorf("stats = %+v, want %d lights in 3 containers", st, want)
	}
}

func TestLookup(t *testing.T) {
	g := NewGraph()
	grp := mustGroup(t, g, 2)
	mustAdd(t, grp.AddLightSingle, 1, 40, 5)
	mustAdd(t, grp.NewClipGroup(100).AddLightSingle, 2, 41, 6)

	p, ok := g.Lookup(1)
	if !ok || p.Kind != ContainerGroup || p.Group != 2 || p.Shader != 40 || p.Array != 5 {
		t.Errorf("Lookup(1) = %+v, %v", p, ok)
	}
	p, ok = g.Lookup(2)
	if !ok || p.Kind != ContainerClipGroup || p.Group != 2 || p.Instance != 100 {
		t.Errorf("Lookup(2) = %+v, %v", p, ok)
	}
	if _, ok := g.Lookup(3); ok {
		t.Error("Lookup(3) found a light that was never added")
	}
}

func TestContainerString(t *testing.T) {
	tests := []struct {
		c    Container
		want string
	}{
		{Container{Kind: ContainerGroup, Group: 3}, "group 3"},
		{Container{Kind: ContainerClipGroup, Group: 1, Instance: 7}, "clip group (instance 7, group 1)"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
	if ContainerKind(9).String() != "Unknown" {
		t.Error("unknown kind should format as Unknown")
	}
}
