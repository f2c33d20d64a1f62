package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
)

const ellipseSegments = 64

// Raster is a Surface backed by an RGBA image. Shapes are filled with an
// anti-aliasing rasterizer; the logical size may be fractional, the image is
// rounded up to whole pixels.
type Raster struct {
	width, height float64
	img           *image.RGBA
	z             *vector.Rasterizer
}

func NewRaster(width, height float64) *Raster {
	r := &Raster{}
	r.Resize(width, height)
	return r
}

func (r *Raster) Size() (float64, float64) {
	return r.width, r.height
}

// Resize drops the current content, as resizing a canvas does.
func (r *Raster) Resize(w, h float64) {
	r.width, r.height = w, h
	pw, ph := int(math.Ceil(w)), int(math.Ceil(h))
	if pw < 1 {
		pw = 1
	}
	if ph < 1 {
		ph = 1
	}
	r.img = image.NewRGBA(image.Rect(0, 0, pw, ph))
	r.z = vector.NewRasterizer(pw, ph)
	r.z.DrawOp = draw.Over
}

func (r *Raster) Image() *image.RGBA {
	return r.img
}

func (r *Raster) Clear() {
	draw.Draw(r.img, r.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func (r *Raster) FillRect(x, y, w, h float64, c color.Color) {
	r.FillPolygon([]Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}, c)
}

func (r *Raster) FillEllipse(cx, cy, rx, ry float64, c color.Color) {
	pts := make([]Point, ellipseSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		pts[i] = Point{cx + rx*math.Cos(a), cy + ry*math.Sin(a)}
	}
	r.FillPolygon(pts, c)
}

// StrokeLine draws a one pixel wide line centred on the segment.
func (r *Raster) StrokeLine(x0, y0, x1, y1 float64, c color.Color) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*0.5, dx/l*0.5
	r.FillPolygon([]Point{
		{x0 + nx, y0 + ny},
		{x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny},
		{x0 - nx, y0 - ny},
	}, c)
}

func (r *Raster) FillPolygon(pts []Point, c color.Color) {
	b := r.img.Bounds()
	pts = clip(pts, float64(b.Dx()), float64(b.Dy()))
	if len(pts) < 3 {
		return
	}
	r.z.Reset(b.Dx(), b.Dy())
	r.z.DrawOp = draw.Over
	r.z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		r.z.LineTo(float32(p.X), float32(p.Y))
	}
	r.z.ClosePath()
	r.z.Draw(r.img, b, image.NewUniform(c), image.Point{})
}

func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.img)
}

// clip cuts a polygon to the rectangle [0,w]x[0,h] edge by edge.
func clip(pts []Point, w, h float64) []Point {
	type edge struct {
		inside    func(Point) bool
		intersect func(a, b Point) Point
	}
	lerpX := func(a, b Point, x float64) Point {
		t := (x - a.X) / (b.X - a.X)
		return Point{x, a.Y + t*(b.Y-a.Y)}
	}
	lerpY := func(a, b Point, y float64) Point {
		t := (y - a.Y) / (b.Y - a.Y)
		return Point{a.X + t*(b.X-a.X), y}
	}
	edges := []edge{
		{func(p Point) bool { return p.X >= 0 }, func(a, b Point) Point { return lerpX(a, b, 0) }},
		{func(p Point) bool { return p.X <= w }, func(a, b Point) Point { return lerpX(a, b, w) }},
		{func(p Point) bool { return p.Y >= 0 }, func(a, b Point) Point { return lerpY(a, b, 0) }},
		{func(p Point) bool { return p.Y <= h }, func(a, b Point) Point { return lerpY(a, b, h) }},
	}
	out := pts
	for _, e := range edges {
		if len(out) == 0 {
			break
		}
		in := out
		out = make([]Point, 0, len(in)+4)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur) && e.inside(prev):
				out = append(out, cur)
			case e.inside(cur):
				out = append(out, e.intersect(prev, cur), cur)
			case e.inside(prev):
				out = append(out, e.intersect(prev, cur))
			}
			prev = cur
		}
	}
	return out
}
