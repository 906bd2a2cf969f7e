// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package stencil

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Mode identifies one of the stencil configurations used by the light pass.
type Mode uint8

// Stencil mode constants.
const (
	// ModeGroupLight draws lights of a group: test group bits, write nothing.
	ModeGroupLight Mode = iota

	// ModeClipVolume rasterizes a clip volume and toggles LightMaskBit
	// where it covers pixels of the group.
	ModeClipVolume

	// ModeClipLight draws lights of a clip group: test group bits and
	// LightMaskBit, write nothing.
	ModeClipLight

	// ModeClipClear resets LightMaskBit after a clip group is finished.
	ModeClipClear
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeGroupLight:
		return "GroupLight"
	case ModeClipVolume:
		return "ClipVolume"
	case ModeClipLight:
		return "ClipLight"
	case ModeClipClear:
		return "ClipClear"
	default:
		return "Unknown"
	}
}

// Writes reports whether the mode modifies the stencil buffer.
func (m Mode) Writes() bool {
	return m == ModeClipVolume || m == ModeClipClear
}

// DefaultFormat is the depth-stencil format of the geometry buffer.
const DefaultFormat = gputypes.TextureFormatDepth24PlusStencil8

// keepFace returns a face state that tests with compare and never writes.
func keepFace(compare gputypes.CompareFunction) hal.StencilFaceState {
	return hal.StencilFaceState{
		Compare:     compare,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
}

// State returns the depth-stencil state for mode in the given format.
// Depth is neither tested nor written; light volumes are drawn over the
// populated depth buffer of the geometry pass.
//
// The reference value is dynamic state; set it on the render pass with
// Reference.
func State(mode Mode, format gputypes.TextureFormat) *hal.DepthStencilState {
	ds := &hal.DepthStencilState{
		Format:            format,
		DepthWriteEnabled: false,
		DepthCompare:      gputypes.CompareFunctionAlways,
	}

	switch mode {
	case ModeGroupLight:
		ds.StencilFront = keepFace(gputypes.CompareFunctionEqual)
		ds.StencilBack = keepFace(gputypes.CompareFunctionEqual)
		ds.StencilReadMask = GroupBits
		ds.StencilWriteMask = 0

	case ModeClipVolume:
		// Front and back faces both invert: pixels covered by an odd number
		// of volume faces end up marked.
		face := hal.StencilFaceState{
			Compare:     gputypes.CompareFunctionEqual,
			FailOp:      hal.StencilOperationKeep,
			DepthFailOp: hal.StencilOperationKeep,
			PassOp:      hal.StencilOperationInvert,
		}
		ds.StencilFront = face
		ds.StencilBack = face
		ds.StencilReadMask = GroupBits
		ds.StencilWriteMask = LightMaskBit

	case ModeClipLight:
		ds.StencilFront = keepFace(gputypes.CompareFunctionEqual)
		ds.StencilBack = keepFace(gputypes.CompareFunctionEqual)
		ds.StencilReadMask = GroupBits | LightMaskBit
		ds.StencilWriteMask = 0

	case ModeClipClear:
		face := hal.StencilFaceState{
			Compare:     gputypes.CompareFunctionAlways,
			FailOp:      hal.StencilOperationKeep,
			DepthFailOp: hal.StencilOperationKeep,
			PassOp:      hal.StencilOperationZero,
		}
		ds.StencilFront = face
		ds.StencilBack = face
		ds.StencilReadMask = 0
		ds.StencilWriteMask = LightMaskBit
	}

	return ds
}

// Reference returns the dynamic stencil reference used with mode for group.
func Reference(mode Mode, group int) uint32 {
	switch mode {
	case ModeClipLight:
		return ClipReference(group)
	case ModeClipClear:
		return 0
	default:
		return GroupReference(group)
	}
}
