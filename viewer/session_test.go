package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/showdown/model"
	"github.com/zucenko/showdown/panel"
	"github.com/zucenko/showdown/timeline"
)

type panelRecorder struct {
	views []timeline.PanelView
}

func (p *panelRecorder) Show(v timeline.PanelView) {
	p.views = append(p.views, v)
}

func (p *panelRecorder) last() timeline.PanelView {
	return p.views[len(p.views)-1]
}

func newSession(t *testing.T, buffer int) (*Session, chan *model.MapState, *panelRecorder) {
	t.Helper()
	ch := make(chan *model.MapState, buffer)
	p := &panelRecorder{}
	s := NewSession(90, ch, p)
	require.Len(t, p.views, 1)
	return s, ch, p
}

func snapshot() *model.MapState {
	return &model.MapState{Width: 3, Height: 2}
}

func TestNewSessionWaiting(t *testing.T) {
	s, _, p := newSession(t, 1)
	assert.Equal(t, WAITING, s.State)
	assert.Equal(t, "0 / 0", p.last().Step)
	assert.False(t, s.FrameDirty)
}

func TestDrainFollowsFeed(t *testing.T) {
	s, ch, p := newSession(t, 4)
	ch <- snapshot()
	ch <- snapshot()

	assert.Equal(t, 2, s.Drain())
	assert.Equal(t, FOLLOWING, s.State)
	assert.True(t, s.FrameDirty)
	assert.Equal(t, "2 / 2", p.last().Step)
	_, h := s.Surface.Size()
	assert.Equal(t, 60.0, h)

	assert.Equal(t, 0, s.Drain())
}

func TestDrainWhilePausedCallsOnBehind(t *testing.T) {
	s, ch, _ := newSession(t, 4)
	behind := 0
	s.OnBehind = func() { behind++ }

	ch <- snapshot()
	s.Drain()
	assert.Equal(t, 0, behind)

	s.Apply(panel.TOGGLE)
	assert.Equal(t, PAUSED, s.State)

	ch <- snapshot()
	ch <- snapshot()
	s.Drain()
	assert.Equal(t, 2, behind)
	assert.Equal(t, 0, s.Controller.Cursor())
	assert.Equal(t, PAUSED, s.State)
}

func TestDrainSkipsInvalid(t *testing.T) {
	s, ch, _ := newSession(t, 4)
	ch <- &model.MapState{Width: 0, Height: 1}
	ch <- snapshot()

	assert.Equal(t, 1, s.Drain())
	assert.Equal(t, 1, s.Controller.Len())
}

func TestDrainClosedFeed(t *testing.T) {
	s, ch, _ := newSession(t, 1)
	ch <- snapshot()
	close(ch)

	assert.Equal(t, 1, s.Drain())
	assert.Nil(t, s.States)
	assert.Equal(t, 0, s.Drain())
}

func TestApplyOnEmptyFlipsLabel(t *testing.T) {
	s, _, p := newSession(t, 1)
	assert.Equal(t, timeline.LABEL_PAUSE, p.last().PlayLabel)

	s.Apply(panel.TOGGLE)
	assert.Equal(t, timeline.LABEL_PLAY, p.last().PlayLabel)
	assert.False(t, s.FrameDirty)
	assert.Equal(t, WAITING, s.State)

	views := len(p.views)
	s.Apply()
	assert.Len(t, p.views, views)
}

func TestApplySteps(t *testing.T) {
	s, ch, p := newSession(t, 4)
	for i := 0; i < 3; i++ {
		ch <- snapshot()
	}
	s.Drain()

	s.Apply(panel.PREVIOUS, panel.PREVIOUS)
	assert.Equal(t, 0, s.Controller.Cursor())
	assert.Equal(t, "1 / 3", p.last().Step)
	s.Apply(panel.NEXT)
	assert.Equal(t, "2 / 3", p.last().Step)
	assert.Equal(t, FOLLOWING, s.State)
}

func TestFeedStateName(t *testing.T) {
	assert.Equal(t, "WAITING", WAITING.Name())
	assert.Equal(t, "LIVE", FOLLOWING.Name())
	assert.Equal(t, "PAUSED", PAUSED.Name())
	assert.Equal(t, "N/A(0)", FeedState(0).Name())
}
