package render

import (
	"image/color"
	"math"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/showdown/model"
)

var (
	COLOR_GRID      = model.Hex(0xc2c2a3)
	COLOR_WALL      = color.RGBA{0, 0, 0, 0xff}
	COLOR_GOLD      = model.Hex(0xf5b041)
	COLOR_GOLD_CORE = model.Hex(0xf7dc6f)
	COLOR_EXPLOSION = model.Hex(0xffd700)
	COLOR_ARROW     = color.RGBA{0, 0, 0, 0xff}
)

const beams = 8

// Renderer paints MapState snapshots. Layout metrics are cached from the last
// Render call; one Renderer per surface.
type Renderer struct {
	cols, rows int
	size, half float64
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// CellSize is the edge of one cell in pixels, as of the last Render.
func (r *Renderer) CellSize() float64 {
	return r.size
}

// Render repaints s with the given snapshot. The surface height is adjusted so
// cells stay square. An unknown team fails before anything is touched.
func (r *Renderer) Render(state *model.MapState, s Surface) error {
	if err := state.CheckTeams(); err != nil {
		return err
	}

	r.layout(state, s)
	s.Clear()

	r.drawGrid(s)
	for _, w := range state.Walls {
		r.drawWall(s, w)
	}
	for _, g := range state.Golds {
		r.drawGold(s, g)
	}
	for _, cb := range state.Cowboys {
		r.drawCowboy(s, cb)
	}
	for _, b := range state.Bullets {
		r.drawBullet(s, b)
	}
	for _, sd := range state.ShotDirections {
		r.drawFiringArrow(s, sd)
	}
	for _, e := range state.Explosions {
		r.drawExplosion(s, e)
	}
	return nil
}

func (r *Renderer) layout(state *model.MapState, s Surface) {
	r.cols = state.Width
	r.rows = state.Height
	w, h := s.Size()
	r.size = w / float64(r.cols)
	r.half = r.size / 2

	if want := r.size * float64(r.rows); h != want {
		log.WithFields(log.Fields{"from": h, "to": want}).Debug("surface height changed")
		s.Resize(w, want)
	}
}

// cell returns the top-left pixel of a grid cell, flipping y.
func (r *Renderer) cell(c model.Coord) (x, y float64) {
	return float64(c.X) * r.size, float64(r.rows-c.Y-1) * r.size
}

func (r *Renderer) center(c model.Coord) (x, y float64) {
	x, y = r.cell(c)
	return x + r.half, y + r.half
}

func (r *Renderer) drawGrid(s Surface) {
	width := float64(r.cols) * r.size
	height := float64(r.rows) * r.size
	for x := 0; x <= r.cols; x++ {
		s.StrokeLine(float64(x)*r.size, 0, float64(x)*r.size, height, COLOR_GRID)
	}
	for y := 0; y <= r.rows; y++ {
		s.StrokeLine(0, float64(y)*r.size, width, float64(y)*r.size, COLOR_GRID)
	}
}

func (r *Renderer) drawWall(s Surface, c model.Coord) {
	x, y := r.cell(c)
	s.FillRect(x, y, r.size, r.size, COLOR_WALL)
}

func (r *Renderer) drawCowboy(s Surface, p model.Placement) {
	colors, _ := model.Palette(p.Team)
	x, y := r.cell(p.Pos)

	s.FillEllipse(x+r.half, y+r.half+r.half/4, r.size/4, r.size/3, colors.Face)

	s.FillRect(x+r.size/8, y+r.half, r.size*3/4, r.half/6, colors.Hat)
	s.FillRect(x+r.half/2, y+r.half/2, r.half, r.size/3, colors.Hat)
}

func (r *Renderer) drawBullet(s Surface, p model.Placement) {
	colors, _ := model.Palette(p.Team)
	cx, cy := r.center(p.Pos)
	s.FillEllipse(cx, cy, r.half/3, r.half/3, colors.Hat)
}

func (r *Renderer) drawGold(s Surface, c model.Coord) {
	cx, cy := r.center(c)
	s.FillEllipse(cx, cy, r.half*7/10, r.half*7/10, COLOR_GOLD)
	s.FillEllipse(cx, cy, r.half*5/10, r.half*5/10, COLOR_GOLD_CORE)
}

func (r *Renderer) drawExplosion(s Surface, c model.Coord) {
	radius := r.size / 3
	cx, cy := r.center(c)
	for i := 0; i < beams; i++ {
		angle := math.Pi * 2 / beams * float64(i)
		endX := cx + math.Cos(angle)*radius
		endY := cy + math.Sin(angle)*radius
		s.FillPolygon([]Point{
			{cx, cy},
			{endX, endY},
			{endX + math.Cos(angle-math.Pi/2)*radius, endY + math.Sin(angle-math.Pi/2)*radius},
		}, COLOR_EXPLOSION)
	}
}

// drawFiringArrow puts a chevron on the cell edge the cowboy fires toward.
func (r *Renderer) drawFiringArrow(s Surface, shot model.Shot) {
	x, y := r.cell(model.Coord{X: shot.X, Y: shot.Y})
	sz, h := r.size, r.half

	var pts []Point
	switch shot.Dir {
	case model.W:
		pts = []Point{{x, y + sz/2}, {x + sz*0.2, y + sz*0.4}, {x + sz*0.2, y + sz*0.6}}
	case model.NW:
		pts = []Point{{x, y}, {x + sz*0.2, y + sz*0.2}, {x + sz*0.2, y + sz*0.4}}
	case model.N:
		pts = []Point{{x + h, y}, {x + h/2, y + sz/5}, {x + h*1.5, y + sz/5}}
	case model.NE:
		pts = []Point{{x + sz, y}, {x + sz*0.8, y + sz*0.2}, {x + sz*0.8, y + sz*0.4}}
	case model.E:
		pts = []Point{{x + sz, y + sz/2}, {x + sz*0.8, y + sz*0.4}, {x + sz*0.8, y + sz*0.6}}
	case model.SE:
		pts = []Point{{x + sz, y + sz}, {x + sz*0.8, y + sz*0.8}, {x + sz*0.8, y + sz*0.6}}
	case model.S:
		pts = []Point{{x + h, y + sz}, {x + h/2, y + sz*0.8}, {x + h*1.5, y + sz*0.8}}
	case model.SW:
		pts = []Point{{x, y + sz}, {x + sz*0.2, y + sz*0.8}, {x + sz*0.2, y + sz*0.6}}
	default:
		return
	}
	s.FillPolygon(pts, COLOR_ARROW)
}
