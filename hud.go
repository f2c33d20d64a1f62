package main

import (
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/text"
	"github.com/zucenko/showdown/model"
	"github.com/zucenko/showdown/panel"
	"github.com/zucenko/showdown/timeline"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	COLOR_BACKGROUND = color.RGBA{0xf4, 0xf1, 0xe8, 0xff}
	COLOR_BUTTON     = color.RGBA{0x8a, 0x6d, 0x4b, 0xff}
	COLOR_DISABLED   = color.RGBA{0xc8, 0xc0, 0xb0, 0xff}
	COLOR_TEXT       = color.RGBA{0x22, 0x22, 0x22, 0xff}
	COLOR_LABEL      = color.RGBA{0xff, 0xff, 0xff, 0xff}
)

// Hud shows the playback panel under the map.
type Hud struct {
	view   timeline.PanelView
	layout panel.Layout
	top    int
	width  int
	face   font.Face
	button *Nine
	badge  float64
}

func NewHud(width int) (*Hud, error) {
	tt, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	face := truetype.NewFace(tt, &truetype.Options{
		Size:    14,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	button, err := newButtonNine(6)
	if err != nil {
		return nil, err
	}
	h := &Hud{width: width, face: face, button: button}
	h.relayout(0)
	return h, nil
}

func (h *Hud) Show(v timeline.PanelView) {
	h.view = v
	h.relayout(h.top)
}

func (h *Hud) relayout(top int) {
	h.top = top
	h.layout = panel.Build(h.view, top, h.width)
}

func (h *Hud) Height() int {
	return h.layout.Height
}

func (h *Hud) Hit(x, y int) panel.Action {
	return h.layout.Hit(x, y)
}

func (h *Hud) Draw(screen *ebiten.Image) {
	ebitenutil.DrawRect(screen, 0, float64(h.top), float64(h.width), float64(h.layout.Height), COLOR_BACKGROUND)

	step := h.layout.Step
	text.Draw(screen, step.Text, h.face, step.At.X, step.At.Y, COLOR_TEXT)
	if h.badge > 0 {
		bx := step.At.X + font.MeasureString(h.face, step.Text+"  ").Ceil()
		badge := color.NRGBA{0xc0, 0x39, 0x2b, uint8(h.badge * 0xff)}
		text.Draw(screen, "new", h.face, bx, step.At.Y, badge)
	}

	for _, b := range h.layout.Buttons {
		if b.Enabled {
			h.button.SetColor(COLOR_BUTTON)
		} else {
			h.button.SetColor(COLOR_DISABLED)
		}
		h.button.SetBounds(b.Rect)
		h.button.Draw(screen)
		h.drawCentered(screen, b.Label, b.Rect)
	}

	for _, s := range h.layout.Scores {
		c, err := model.Palette(s.Team)
		if err == nil {
			ebitenutil.DrawRect(screen, float64(s.At.X), float64(s.At.Y-10), 10, 10, c.Hat)
		}
		text.Draw(screen, s.Text, h.face, s.At.X+16, s.At.Y, COLOR_TEXT)
	}
}

func (h *Hud) drawCentered(screen *ebiten.Image, label string, r image.Rectangle) {
	w := font.MeasureString(h.face, label).Ceil()
	m := h.face.Metrics()
	x := r.Min.X + (r.Dx()-w)/2
	y := r.Min.Y + (r.Dy()+m.Ascent.Ceil()-m.Descent.Ceil())/2
	text.Draw(screen, label, h.face, x, y, COLOR_LABEL)
}
