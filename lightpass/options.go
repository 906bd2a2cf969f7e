package lightpass

import (
	"github.com/gogpu/deferred/stencil"
	"github.com/gogpu/gputypes"
)

// Option configures a Renderer during creation.
type Option func(*options)

type options struct {
	cacheSize    int
	depthStencil gputypes.TextureFormat
	target       gputypes.TextureFormat
	clipVolumes  ClipVolumeDrawer
}

// DefaultPipelineCacheSize is the pipeline cache capacity used when
// WithPipelineCacheSize is not given.
const DefaultPipelineCacheSize = 64

func defaultOptions() options {
	return options{
		cacheSize:    DefaultPipelineCacheSize,
		depthStencil: stencil.DefaultFormat,
	}
}

// WithPipelineCacheSize sets how many pipelines are kept alive.
func WithPipelineCacheSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.cacheSize = n
		}
	}
}

// WithDepthStencilFormat sets the format of the geometry buffer's
// depth-stencil attachment. It must have a stencil aspect.
func WithDepthStencilFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.depthStencil = f
	}
}

// WithTargetFormat sets the color format lights are accumulated into.
// By default the device's surface format is used, or BGRA8Unorm if the
// device has none.
func WithTargetFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.target = f
	}
}

// WithClipVolumeDrawer enables clip groups.
func WithClipVolumeDrawer(d ClipVolumeDrawer) Option {
	return func(o *options) {
		o.clipVolumes = d
	}
}
