// Package render draws tornado point maps over clipped census boundaries.
package render

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/paulmach/orb"
)

// Context is an explicit rendering target: one canvas, one viewport, one
// longitude/latitude → pixel projection. Draw calls mutate only the context
// they are given, so renders compose and test without any global figure
// state or a live display.
type Context struct {
	dc       *gg.Context
	viewport orb.Bound
	width    int
	height   int
}

// NewContext creates a canvas of the given pixel size mapped onto the
// viewport rectangle, pre-filled with the background color.
func NewContext(width, height int, viewport orb.Bound) *Context {
	dc := gg.NewContext(width, height)
	dc.SetHexColor(colorBackground)
	dc.Clear()
	return &Context{
		dc:       dc,
		viewport: viewport,
		width:    width,
		height:   height,
	}
}

// Project converts a longitude/latitude point to canvas pixels. North is up:
// latitude grows toward the top of the viewport, pixels grow downward.
func (c *Context) Project(p orb.Point) (x, y float64) {
	spanX := c.viewport.Max.X() - c.viewport.Min.X()
	spanY := c.viewport.Max.Y() - c.viewport.Min.Y()
	x = (p.X() - c.viewport.Min.X()) / spanX * float64(c.width)
	y = (c.viewport.Max.Y() - p.Y()) / spanY * float64(c.height)
	return x, y
}

// Viewport returns the longitude/latitude rectangle this context maps.
func (c *Context) Viewport() orb.Bound { return c.viewport }

// Image returns the rendered canvas.
func (c *Context) Image() image.Image { return c.dc.Image() }
