package render

import "image/color"

type Point struct {
	X, Y float64
}

// Surface is a drawing target with a mutable logical size. Coordinates are
// pixels, origin top-left, y growing down.
type Surface interface {
	Size() (w, h float64)
	Resize(w, h float64)
	Clear()
	FillRect(x, y, w, h float64, c color.Color)
	FillEllipse(cx, cy, rx, ry float64, c color.Color)
	FillPolygon(pts []Point, c color.Color)
	StrokeLine(x0, y0, x1, y1 float64, c color.Color)
}
