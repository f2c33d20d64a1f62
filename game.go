package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten"
	"github.com/hajimehoshi/ebiten/ebitenutil"
	"github.com/hajimehoshi/ebiten/inpututil"
	log "github.com/sirupsen/logrus"
	"github.com/tanema/gween"
	"github.com/zucenko/showdown/model"
	"github.com/zucenko/showdown/panel"
	"github.com/zucenko/showdown/viewer"
)

// StrokeSource represents a input device to provide taps.
type StrokeSource interface {
	Position() (int, int)
	IsJustReleased() bool
}

type MouseStrokeSource struct{}

func (m *MouseStrokeSource) Position() (int, int) {
	return ebiten.CursorPosition()
}

func (m *MouseStrokeSource) IsJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}

type TouchStrokeSource struct {
	ID int
}

func (t *TouchStrokeSource) Position() (int, int) {
	return ebiten.TouchPosition(t.ID)
}

func (t *TouchStrokeSource) IsJustReleased() bool {
	return inpututil.IsTouchJustReleased(t.ID)
}

// Stroke follows one press until release; the last known position is where
// the tap lands, touch positions read zero once the finger is up.
type Stroke struct {
	source   StrokeSource
	x, y     int
	released bool
}

func NewStroke(source StrokeSource) *Stroke {
	x, y := source.Position()
	return &Stroke{source: source, x: x, y: y}
}

func (s *Stroke) Update() {
	if s.released {
		return
	}
	if s.source.IsJustReleased() {
		s.released = true
		return
	}
	s.x, s.y = s.source.Position()
}

func NewViewer(width int, states <-chan *model.MapState) (*Viewer, error) {
	hud, err := NewHud(width)
	if err != nil {
		return nil, err
	}
	v := &Viewer{
		Session: viewer.NewSession(width, states, hud),
		Hud:     hud,
		Tweens:  make(map[*gween.Tween]Action),
		strokes: map[*Stroke]struct{}{},
		Width:   width,
	}
	v.Session.OnBehind = v.flashBadge
	v.screenW, v.screenH = width, hud.Height()
	return v, nil
}

func (v *Viewer) handleInput() {
	actions := []panel.Action{}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		actions = append(actions, panel.TOGGLE)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		actions = append(actions, panel.PREVIOUS)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		actions = append(actions, panel.NEXT)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		v.strokes[NewStroke(&MouseStrokeSource{})] = struct{}{}
	}
	for _, id := range inpututil.JustPressedTouchIDs() {
		v.strokes[NewStroke(&TouchStrokeSource{id})] = struct{}{}
	}
	for s := range v.strokes {
		s.Update()
		if s.released {
			actions = append(actions, v.Hud.Hit(s.x, s.y))
			delete(v.strokes, s)
		}
	}

	v.Session.Apply(actions...)
}

// syncFrame copies the raster into the ebiten image and fits the window.
func (v *Viewer) syncFrame() error {
	img := v.Session.Surface.Image()
	b := img.Bounds()
	if v.Frame == nil || v.Frame.Bounds() != b {
		if v.Frame != nil {
			v.Frame.Dispose()
		}
		frame, err := ebiten.NewImageFromImage(img, ebiten.FilterDefault)
		if err != nil {
			return err
		}
		v.Frame = frame
	} else if err := v.Frame.ReplacePixels(img.Pix); err != nil {
		return err
	}
	v.Session.FrameDirty = false

	v.Hud.relayout(b.Dy())
	w, h := v.Width, b.Dy()+v.Hud.Height()
	if w != v.screenW || h != v.screenH {
		v.screenW, v.screenH = w, h
		ebiten.SetScreenSize(w, h)
	}
	return nil
}

func (v *Viewer) update(screen *ebiten.Image) error {
	v.updateTweens()
	v.Session.Drain()
	v.handleInput()
	if v.Session.FrameDirty {
		if err := v.syncFrame(); err != nil {
			return err
		}
	}

	if ebiten.IsDrawingSkipped() {
		return nil
	}

	if err := screen.Fill(color.White); err != nil {
		log.Printf("%v", err)
	}
	if v.Frame != nil {
		screen.DrawImage(v.Frame, &ebiten.DrawImageOptions{})
	}
	v.Hud.Draw(screen)

	ebitenutil.DebugPrintAt(screen, v.Session.State.Name(), v.Width-60, v.Hud.top+4)
	return nil
}
