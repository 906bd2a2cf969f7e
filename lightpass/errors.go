package lightpass

import "errors"

var (
	// ErrNilFactory is returned by New without a PipelineFactory.
	ErrNilFactory = errors.New("lightpass: nil pipeline factory")

	// ErrNilDrawer is returned by New without a LightDrawer.
	ErrNilDrawer = errors.New("lightpass: nil light drawer")

	// ErrNoClipVolumeDrawer is returned when a clip group is drawn by a
	// renderer created without WithClipVolumeDrawer.
	ErrNoClipVolumeDrawer = errors.New("lightpass: clip group without clip volume drawer")

	// ErrClosed is returned when a closed renderer is used.
	ErrClosed = errors.New("lightpass: renderer closed")
)
