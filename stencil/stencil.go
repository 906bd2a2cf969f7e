// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package stencil defines how the light pass uses the 8-bit stencil buffer.
//
// The geometry pass writes each opaque instance's light group into the
// group bits of the stencil buffer. The light pass then tests against those
// bits so that a light only affects the pixels of its own group. Clip groups
// additionally mark the pixels covered by a clipping volume in the light
// mask bit before their lights are drawn.
//
// Layout:
//
//	bit 7     AllowBit      pixel may receive lighting at all
//	bits 6-3  GroupBits     light group of the pixel (1-15)
//	bits 2-1  unused
//	bit 0     LightMaskBit  pixel lies inside the current clip volume
package stencil

import (
	"errors"
	"fmt"
)

const (
	// AllowBit marks pixels that may be lit.
	AllowBit uint32 = 0b1000_0000

	// GroupBits selects the group number stored in the stencil buffer.
	GroupBits uint32 = 0b0111_1000

	// GroupLeftShift is the position of the lowest group bit.
	GroupLeftShift = 3

	// LightMaskBit marks pixels inside the clip volume being processed.
	LightMaskBit uint32 = 0b0000_0001

	// MaximumGroups is one more than the largest valid group number.
	// Group 0 means "no group" and is never valid.
	MaximumGroups = int(GroupBits>>GroupLeftShift) + 1
)

// ErrInvalidGroup is returned for group numbers outside [1, MaximumGroups).
var ErrInvalidGroup = errors.New("stencil: invalid group")

// CheckValidGroup returns group unchanged if it can be encoded in the group
// bits, or an error wrapping ErrInvalidGroup.
func CheckValidGroup(group int) (int, error) {
	if group <= 0 || group >= MaximumGroups {
		return group, fmt.Errorf("%w: %d (must be in [1, %d))", ErrInvalidGroup, group, MaximumGroups)
	}
	return group, nil
}

// ValidGroup reports whether group can be encoded in the group bits.
func ValidGroup(group int) bool {
	return group > 0 && group < MaximumGroups
}

// GroupReference returns the stencil reference value that selects the
// pixels of group. The group must be valid.
func GroupReference(group int) uint32 {
	return (uint32(group) << GroupLeftShift) & GroupBits
}

// ClipReference returns the stencil reference value that selects the
// pixels of group lying inside the current clip volume.
func ClipReference(group int) uint32 {
	return GroupReference(group) | LightMaskBit
}

// GroupFromValue extracts the group number from a stencil buffer value.
func GroupFromValue(value uint32) int {
	return int((value & GroupBits) >> GroupLeftShift)
}
