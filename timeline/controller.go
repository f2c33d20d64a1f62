package timeline

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/showdown/model"
	"github.com/zucenko/showdown/render"
)

var ErrNoSurface = errors.New("timeline: no drawing surface")

const (
	LABEL_PAUSE    = "Pause"
	LABEL_PLAY     = "Play"
	LABEL_PREVIOUS = "Previous"
	LABEL_NEXT     = "Next"
)

// ControlPanel shows the playback state. Show gets a freshly built view on
// every render.
type ControlPanel interface {
	Show(v PanelView)
}

type PanelView struct {
	Step      string             `json:"step"`
	PlayLabel string             `json:"play_label"`
	Live      bool               `json:"live"`
	Cursor    int                `json:"cursor"`
	Count     int                `json:"count"`
	CanPrev   bool               `json:"can_prev"`
	CanNext   bool               `json:"can_next"`
	Points    []model.TeamPoints `json:"points,omitempty"`
}

// Controller keeps an append-only history of snapshots and a cursor into it.
// In live mode the cursor follows the newest snapshot. Stepping does not leave
// live mode, so the next AddState jumps back to the end.
//
// A Controller is not safe for concurrent use; callers serialize access.
type Controller struct {
	snapshots []*model.MapState
	cursor    int
	live      bool

	renderer *render.Renderer
	surface  render.Surface
	panel    ControlPanel
	log      *log.Entry
}

type Option func(*Controller)

func WithSurface(s render.Surface) Option {
	return func(c *Controller) {
		c.surface = s
	}
}

func WithPanel(p ControlPanel) Option {
	return func(c *Controller) {
		c.panel = p
	}
}

func WithLogger(e *log.Entry) Option {
	return func(c *Controller) {
		c.log = e
	}
}

func NewController(r *render.Renderer, opts ...Option) *Controller {
	c := &Controller{
		live:     true,
		renderer: r,
		log:      log.WithField("component", "timeline"),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// AddState appends a snapshot. A nil surface keeps the current one.
func (c *Controller) AddState(state *model.MapState, surface render.Surface) error {
	if state == nil {
		return fmt.Errorf("add state: nil snapshot: %w", model.ErrInvalidState)
	}
	if err := state.Validate(); err != nil {
		return fmt.Errorf("add state: %w", err)
	}
	if surface != nil {
		c.surface = surface
	}

	c.snapshots = append(c.snapshots, state)
	if c.live {
		c.cursor = len(c.snapshots) - 1
	}
	c.log.WithFields(log.Fields{"cursor": c.cursor, "count": len(c.snapshots)}).Debug("state added")
	return c.render()
}

func (c *Controller) TogglePlay() error {
	c.live = !c.live
	c.log.WithField("live", c.live).Debug("play toggled")
	return c.render()
}

func (c *Controller) StepPrevious() error {
	if c.cursor > 0 {
		c.cursor--
	}
	return c.render()
}

func (c *Controller) StepNext() error {
	if c.cursor < len(c.snapshots)-1 {
		c.cursor++
	}
	return c.render()
}

func (c *Controller) Cursor() int {
	return c.cursor
}

func (c *Controller) Len() int {
	return len(c.snapshots)
}

func (c *Controller) Live() bool {
	return c.live
}

// Current returns the snapshot under the cursor.
func (c *Controller) Current() (*model.MapState, bool) {
	if len(c.snapshots) == 0 {
		return nil, false
	}
	return c.snapshots[c.cursor], true
}

// Snapshot returns the snapshot at index i.
func (c *Controller) Snapshot(i int) (*model.MapState, bool) {
	if i < 0 || i >= len(c.snapshots) {
		return nil, false
	}
	return c.snapshots[i], true
}

func (c *Controller) View() PanelView {
	v := PanelView{
		Step:      fmt.Sprintf("%d / %d", c.cursor+1, len(c.snapshots)),
		PlayLabel: LABEL_PLAY,
		Live:      c.live,
		Cursor:    c.cursor,
		Count:     len(c.snapshots),
		CanPrev:   c.cursor > 0,
		CanNext:   c.cursor < len(c.snapshots)-1,
	}
	if c.live {
		v.PlayLabel = LABEL_PAUSE
	}
	state, ok := c.Current()
	if !ok {
		v.Step = "0 / 0"
		return v
	}
	v.Points = state.Points
	return v
}

func (c *Controller) render() error {
	state, ok := c.Current()
	if !ok {
		return nil
	}
	if c.surface == nil {
		return ErrNoSurface
	}
	if err := c.renderer.Render(state, c.surface); err != nil {
		return fmt.Errorf("render state %d: %w", c.cursor, err)
	}
	if c.panel != nil {
		c.panel.Show(c.View())
	}
	return nil
}
