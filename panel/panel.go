// Package panel lays out the playback controls shown under the map: the step
// counter, the play/pause toggle, previous/next buttons and the scoreboard.
package panel

import (
	"fmt"
	"image"

	"github.com/zucenko/showdown/model"
	"github.com/zucenko/showdown/timeline"
)

type Action int

const (
	NONE Action = iota
	TOGGLE
	PREVIOUS
	NEXT
)

const (
	Padding      = 8
	LineHeight   = 20
	ButtonWidth  = 96
	ButtonHeight = 28
)

type Button struct {
	Label   string
	Action  Action
	Rect    image.Rectangle
	Enabled bool
}

type Line struct {
	Text string
	Team model.Team
	At   image.Point
}

// Layout is rebuilt from scratch for every view.
type Layout struct {
	Step    Line
	Buttons []Button
	Scores  []Line
	Height  int
}

// Build places the controls in a strip starting at y = top.
func Build(v timeline.PanelView, top, width int) Layout {
	l := Layout{}
	y := top + Padding
	l.Step = Line{Text: v.Step, At: image.Pt(Padding, y+LineHeight-4)}
	y += LineHeight + Padding

	l.Buttons = append(l.Buttons, button(v.PlayLabel, TOGGLE, Padding, y, v.Count > 0))
	y += ButtonHeight + Padding

	l.Buttons = append(l.Buttons,
		button(timeline.LABEL_PREVIOUS, PREVIOUS, Padding, y, v.CanPrev),
		button(timeline.LABEL_NEXT, NEXT, Padding*2+ButtonWidth, y, v.CanNext))
	y += ButtonHeight + Padding

	// scoreboard to the right of the buttons when there is room, else below
	sx, sy := Padding*4+ButtonWidth*2, top+Padding
	if width-sx < ButtonWidth {
		sx, sy = Padding, y
	}
	for _, p := range v.Points {
		sy += LineHeight
		l.Scores = append(l.Scores, Line{
			Text: fmt.Sprintf("%s: %d", p.Team, p.Points),
			Team: p.Team,
			At:   image.Pt(sx, sy-4),
		})
	}
	if sy+Padding > y {
		y = sy + Padding
	}
	l.Height = y - top
	return l
}

func button(label string, a Action, x, y int, enabled bool) Button {
	return Button{
		Label:   label,
		Action:  a,
		Rect:    image.Rect(x, y, x+ButtonWidth, y+ButtonHeight),
		Enabled: enabled,
	}
}

// Hit returns the action of the button under (x, y). Disabled buttons still
// answer; stepping past either end is a no-op in the controller.
func (l Layout) Hit(x, y int) Action {
	p := image.Pt(x, y)
	for _, b := range l.Buttons {
		if p.In(b.Rect) {
			return b.Action
		}
	}
	return NONE
}

// Apply runs the action against the controller.
func Apply(c *timeline.Controller, a Action) error {
	switch a {
	case TOGGLE:
		return c.TogglePlay()
	case PREVIOUS:
		return c.StepPrevious()
	case NEXT:
		return c.StepNext()
	}
	return nil
}
