package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten"
	"github.com/zucenko/showdown/render"
)

// Nine draws a nine-patch: corners keep their size scaled by Scale, edges and
// the center stretch to fill the bounds.
type Nine struct {
	image          *ebiten.Image
	alpha          float64
	R, G, B, Scale float64
	// slice borders in the source image, per axis
	positions [4][2]int
	bounds    image.Rectangle
	targets   [4][2]float64
}

// newButtonNine builds the rounded button sprite on a raster surface.
func newButtonNine(radius int) (*Nine, error) {
	side := float64(radius * 3)
	r := float64(radius)
	raster := render.NewRaster(side, side)
	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	for _, c := range [][2]float64{{r, r}, {2 * r, r}, {r, 2 * r}, {2 * r, 2 * r}} {
		raster.FillEllipse(c[0], c[1], r, r, white)
	}
	raster.FillRect(r, 0, r, side, white)
	raster.FillRect(0, r, side, r, white)

	img, err := ebiten.NewImageFromImage(raster.Image(), ebiten.FilterDefault)
	if err != nil {
		return nil, err
	}
	s := int(side)
	return &Nine{
		image: img,
		alpha: 1,
		R:     1, G: 1, B: 1, Scale: 1,
		positions: [4][2]int{{0, 0}, {radius, radius}, {s - radius, s - radius}, {s, s}},
	}, nil
}

func (n *Nine) SetBounds(b image.Rectangle) {
	n.bounds = b
	lo := [2]int{b.Min.X, b.Min.Y}
	hi := [2]int{b.Max.X, b.Max.Y}
	for axis := 0; axis < 2; axis++ {
		n.targets[0][axis] = float64(lo[axis])
		n.targets[1][axis] = float64(lo[axis]) + n.Scale*float64(n.positions[1][axis]-n.positions[0][axis])
		n.targets[2][axis] = float64(hi[axis]) - n.Scale*float64(n.positions[3][axis]-n.positions[2][axis])
		n.targets[3][axis] = float64(hi[axis])
	}
}

func (n *Nine) SetColor(c color.RGBA) {
	n.R = float64(c.R) / 255
	n.G = float64(c.G) / 255
	n.B = float64(c.B) / 255
}

func (n *Nine) Draw(screen *ebiten.Image) {
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			src := image.Rect(n.positions[col][0], n.positions[row][1], n.positions[col+1][0], n.positions[row+1][1])
			if src.Empty() {
				continue
			}
			w := n.targets[col+1][0] - n.targets[col][0]
			h := n.targets[row+1][1] - n.targets[row][1]
			if w <= 0 || h <= 0 {
				continue
			}
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(w/float64(src.Dx()), h/float64(src.Dy()))
			op.GeoM.Translate(n.targets[col][0], n.targets[row][1])
			op.ColorM.Scale(n.R, n.G, n.B, n.alpha)
			screen.DrawImage(n.image.SubImage(src).(*ebiten.Image), op)
		}
	}
}
