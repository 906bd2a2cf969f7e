package debug

import (
	"image/color"

	"golang.org/x/text/language"
)

// Option configures a Visualizer.
type Option func(*options)

type options struct {
	fontSize   float64
	rowHeight  int
	lightWidth int
	scale      int
	locale     language.Tag
	background color.RGBA
	foreground color.RGBA
}

func defaultOptions() options {
	return options{
		fontSize:   12,
		rowHeight:  20,
		lightWidth: 6,
		scale:      1,
		locale:     language.English,
		background: color.RGBA{R: 0x20, G: 0x20, B: 0x24, A: 0xff},
		foreground: color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff},
	}
}

// WithFontSize sets the label font size in points.
func WithFontSize(size float64) Option {
	return func(o *options) {
		if size > 0 {
			o.fontSize = size
		}
	}
}

// WithRowHeight sets the height of a container row in pixels.
func WithRowHeight(h int) Option {
	return func(o *options) {
		if h > 0 {
			o.rowHeight = h
		}
	}
}

// WithLightWidth sets the bar width of a single light in pixels.
func WithLightWidth(w int) Option {
	return func(o *options) {
		if w > 0 {
			o.lightWidth = w
		}
	}
}

// WithScale enlarges the rendered image by an integer factor.
func WithScale(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.scale = n
		}
	}
}

// WithLocale sets the locale used to format counts.
func WithLocale(tag language.Tag) Option {
	return func(o *options) {
		o.locale = tag
	}
}

// WithColors sets the background and text colors.
func WithColors(background, foreground color.RGBA) Option {
	return func(o *options) {
		o.background = background
		o.foreground = foreground
	}
}
