// Package viewer holds the window-free half of the desktop viewer: it feeds
// incoming snapshots to a timeline controller, applies panel actions and
// tracks whether the frame needs to be copied to the screen.
package viewer

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/showdown/model"
	"github.com/zucenko/showdown/panel"
	"github.com/zucenko/showdown/render"
	"github.com/zucenko/showdown/timeline"
)

type FeedState int

const (
	WAITING FeedState = iota + 1
	FOLLOWING
	PAUSED
)

func (s FeedState) Name() string {
	switch s {
	case WAITING:
		return "WAITING"
	case FOLLOWING:
		return "LIVE"
	case PAUSED:
		return "PAUSED"
	default:
		return fmt.Sprintf("N/A(%d)", s)
	}
}

type Session struct {
	State      FeedState
	Controller *timeline.Controller
	Surface    *render.Raster
	States     <-chan *model.MapState
	// called for every snapshot added while paused
	OnBehind   func()
	FrameDirty bool

	panel timeline.ControlPanel
}

// NewSession renders into a width x width raster and reports every view to p.
func NewSession(width int, states <-chan *model.MapState, p timeline.ControlPanel) *Session {
	s := &Session{
		State:   WAITING,
		Surface: render.NewRaster(float64(width), float64(width)),
		States:  states,
		panel:   p,
	}
	s.Controller = timeline.NewController(render.NewRenderer(),
		timeline.WithSurface(s.Surface),
		timeline.WithPanel(s),
		timeline.WithLogger(log.WithField("component", "viewer")))
	p.Show(s.Controller.View())
	return s
}

// Show is called by the controller after every successful render.
func (s *Session) Show(pv timeline.PanelView) {
	s.panel.Show(pv)
	s.FrameDirty = true
	switch {
	case pv.Count == 0:
		s.State = WAITING
	case pv.Live:
		s.State = FOLLOWING
	default:
		s.State = PAUSED
	}
}

// Drain takes whatever arrived since the last frame without blocking and
// returns how many snapshots were added.
func (s *Session) Drain() int {
	added := 0
	for {
		select {
		case state, ok := <-s.States:
			if !ok {
				s.States = nil
				return added
			}
			if err := s.Controller.AddState(state, nil); err != nil {
				log.Warnf("Session dropped snapshot: %v", err)
				continue
			}
			added++
			if !s.Controller.Live() && s.OnBehind != nil {
				s.OnBehind()
			}
		default:
			return added
		}
	}
}

func (s *Session) Apply(actions ...panel.Action) {
	for _, a := range actions {
		if err := panel.Apply(s.Controller, a); err != nil {
			log.Warnf("Session action failed: %v", err)
		}
	}
	if len(actions) > 0 && s.Controller.Len() == 0 {
		// nothing rendered, the label still has to flip
		s.panel.Show(s.Controller.View())
	}
}
