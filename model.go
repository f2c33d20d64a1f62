package main

import (
	"github.com/hajimehoshi/ebiten"
	"github.com/tanema/gween"
	"github.com/zucenko/showdown/viewer"
)

type Viewer struct {
	Session *viewer.Session
	Frame   *ebiten.Image
	Hud     *Hud
	Tweens  map[*gween.Tween]Action
	strokes map[*Stroke]struct{}

	Width            int
	screenW, screenH int
}
