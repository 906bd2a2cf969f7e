// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package lights

import (
	"errors"
	"fmt"
	"strings"
)

// recorder is a Consumer that logs every callback as one line.
type recorder struct {
	lines []string

	// failAt makes the callback whose line equals failAt return errFail.
	failAt string

	// onLight, if set, runs inside every OnLight callback.
	onLight func() error
}

var errFail = errors.New("injected failure")

func (r *recorder) log(format string, args ...any) error {
	line := fmt.Sprintf(format, args...)
	r.lines = append(r.lines, line)
	if r.failAt != "" && line == r.failAt {
		return errFail
	}
	return nil
}

func (r *recorder) String() string { return strings.Join(r.lines, "\n") }

func (r *recorder) OnStart() error  { return r.log("onStart") }
func (r *recorder) OnFinish() error { return r.log("onFinish") }

func (r *recorder) OnStartGroup(group GroupID) (ContainerConsumer, error) {
	if err := r.log("onStartGroup %d", group); err != nil {
		return nil, err
	}
	return &containerRecorder{r: r, name: fmt.Sprintf("group %d", group)}, nil
}

func (r *recorder) OnStartClipGroup(instance InstanceID, group GroupID) (ContainerConsumer, error) {
	if err := r.log("onStartClipGroup %d %d", instance, group); err != nil {
		return nil, err
	}
	return &containerRecorder{r: r, name: fmt.Sprintf("clip %d", instance)}, nil
}

type containerRecorder struct {
	r    *recorder
	name string
}

func (c *containerRecorder) OnStart() error { return c.r.log("%s: onStart", c.name) }
func (c *containerRecorder) OnLightShaderStart(s ShaderID) error {
	return c.r.log("%s: onLightShaderStart %d", c.name, s)
}
func (c *containerRecorder) OnLightArrayStart(l LightID) error {
	return c.r.log("%s: onLightArrayStart %d", c.name, l)
}
func (c *containerRecorder) OnLight(s ShaderID, l LightID) error {
	if c.r.onLight != nil {
		if err := c.r.onLight(); err != nil {
			return err
		}
	}
	return c.r.log("%s: onLight %d %d", c.name, s, l)
}
func (c *containerRecorder) OnLightShaderFinish(s ShaderID) error {
	return c.r.log("%s: onLightShaderFinish %d", c.name, s)
}
func (c *containerRecorder) OnFinish() error { return c.r.log("%s: onFinish", c.name) }

// nilConsumer returns a nil container consumer for every group.
type nilConsumer struct{ recorder }

func (n *nilConsumer) OnStartGroup(GroupID) (ContainerConsumer, error) { return nil, nil }

func transcript(lines ...string) string { return strings.Join(lines, "\n") }
