package panel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zucenko/showdown/model"
	"github.com/zucenko/showdown/render"
	"github.com/zucenko/showdown/timeline"
)

func TestBuild(t *testing.T) {
	v := timeline.PanelView{Step: "2 / 5", PlayLabel: timeline.LABEL_PLAY, Count: 5, CanPrev: true, CanNext: true}
	l := Build(v, 400, 800)

	assert.Equal(t, "2 / 5", l.Step.Text)
	require.Len(t, l.Buttons, 3)
	assert.Equal(t, timeline.LABEL_PLAY, l.Buttons[0].Label)
	assert.Equal(t, timeline.LABEL_PREVIOUS, l.Buttons[1].Label)
	assert.Equal(t, timeline.LABEL_NEXT, l.Buttons[2].Label)
	for _, b := range l.Buttons {
		assert.True(t, b.Rect.Min.Y > 400)
		assert.True(t, b.Enabled)
	}
	assert.Equal(t, l.Buttons[1].Rect.Min.Y, l.Buttons[2].Rect.Min.Y)
	assert.True(t, l.Buttons[2].Rect.Min.X > l.Buttons[1].Rect.Max.X)
	assert.True(t, l.Height > 2*ButtonHeight)
}

func TestBuildDisabled(t *testing.T) {
	l := Build(timeline.PanelView{Step: "0 / 0", PlayLabel: timeline.LABEL_PAUSE}, 0, 800)
	for _, b := range l.Buttons {
		assert.False(t, b.Enabled, b.Label)
	}
}

func TestHit(t *testing.T) {
	l := Build(timeline.PanelView{Count: 1}, 100, 800)
	for _, b := range l.Buttons {
		c := b.Rect.Min.Add(b.Rect.Size().Div(2))
		assert.Equal(t, b.Action, l.Hit(c.X, c.Y))
	}
	assert.Equal(t, NONE, l.Hit(0, 0))
	assert.Equal(t, NONE, l.Hit(799, 101))
}

func TestScoreboard(t *testing.T) {
	v := timeline.PanelView{Points: []model.TeamPoints{{Team: model.RED, Points: 4}, {Team: model.BLUE, Points: 1}}}

	wide := Build(v, 0, 800)
	require.Len(t, wide.Scores, 2)
	assert.Equal(t, "red: 4", wide.Scores[0].Text)
	assert.Equal(t, model.BLUE, wide.Scores[1].Team)
	assert.True(t, wide.Scores[0].At.X > wide.Buttons[2].Rect.Max.X)

	narrow := Build(v, 0, 220)
	assert.Equal(t, Padding, narrow.Scores[0].At.X)
	assert.True(t, narrow.Scores[0].At.Y > narrow.Buttons[2].Rect.Max.Y)
	assert.True(t, narrow.Height > wide.Height)
}

func TestApply(t *testing.T) {
	c := timeline.NewController(render.NewRenderer(), timeline.WithSurface(render.NewSVG(10, 10)))
	for i := 0; i < 3; i++ {
		require.NoError(t, c.AddState(&model.MapState{Width: 1, Height: 1}, nil))
	}
	require.NoError(t, Apply(c, PREVIOUS))
	assert.Equal(t, 1, c.Cursor())
	require.NoError(t, Apply(c, NEXT))
	assert.Equal(t, 2, c.Cursor())
	require.NoError(t, Apply(c, TOGGLE))
	assert.False(t, c.Live())
	require.NoError(t, Apply(c, NONE))
	assert.Equal(t, 2, c.Cursor())
}
