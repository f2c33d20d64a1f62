package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
	"width": 4, "height": 3,
	"walls": [[0, 0], [3, 2]],
	"golds": [[1, 1]],
	"cowboys": [[[2, 1], "red"], [[0, 2], "gray"]],
	"bullets": [[[1, 2], "blue"]],
	"shot_directions": [[2, 1, 5]],
	"explosions": [[3, 0]],
	"points": [["red", 12], ["gray", 0]]
}`

func TestParse(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, 4, m.Width)
	assert.Equal(t, 3, m.Height)
	assert.Equal(t, []Coord{{0, 0}, {3, 2}}, m.Walls)
	assert.Equal(t, []Placement{{Coord{2, 1}, RED}, {Coord{0, 2}, GRAY}}, m.Cowboys)
	assert.Equal(t, []Placement{{Coord{1, 2}, BLUE}}, m.Bullets)
	assert.Equal(t, []Shot{{2, 1, SE}}, m.ShotDirections)
	assert.Equal(t, []Coord{{3, 0}}, m.Explosions)
	assert.Equal(t, []TeamPoints{{RED, 12}, {GRAY, 0}}, m.Points)
	assert.NoError(t, m.Validate())
}

func TestParseMissingCollections(t *testing.T) {
	m, err := Parse([]byte(`{"width": 2, "height": 2}`))
	require.NoError(t, err)
	assert.Empty(t, m.Walls)
	assert.NoError(t, m.Validate())

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"width":2,"height":2,"walls":[],"golds":[],"cowboys":[],
		"bullets":[],"shot_directions":[],"explosions":[]}`, string(out))
}

func TestParseMalformedTuples(t *testing.T) {
	for _, in := range []string{
		`{"width": 2, "height": 2, "walls": [[1]]}`,
		`{"width": 2, "height": 2, "cowboys": [[[1, 1]]]}`,
		`{"width": 2, "height": 2, "shot_directions": [[1, 1]]}`,
		`{"width": 2, "height": 2, "points": [["red"]]}`,
		`not json`,
	} {
		_, err := Parse([]byte(in))
		assert.Error(t, err, in)
	}
}

func TestMarshalKeepsWireShape(t *testing.T) {
	m, err := Parse([]byte(sample))
	require.NoError(t, err)
	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, sample, string(out))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		state MapState
		want  error
	}{
		{"zero width", MapState{Width: 0, Height: 3}, ErrInvalidDimensions},
		{"wall outside", MapState{Width: 2, Height: 2, Walls: []Coord{{2, 0}}}, ErrOutOfBounds},
		{"negative gold", MapState{Width: 2, Height: 2, Golds: []Coord{{0, -1}}}, ErrOutOfBounds},
		{"explosion outside", MapState{Width: 2, Height: 2, Explosions: []Coord{{0, 2}}}, ErrOutOfBounds},
		{"unknown cowboy team", MapState{Width: 2, Height: 2,
			Cowboys: []Placement{{Coord{0, 0}, "purple"}}}, ErrUnknownTeam},
		{"unknown bullet team", MapState{Width: 2, Height: 2,
			Bullets: []Placement{{Coord{0, 0}, "Red"}}}, ErrUnknownTeam},
		{"shot outside", MapState{Width: 2, Height: 2,
			ShotDirections: []Shot{{5, 0, W}}}, ErrOutOfBounds},
		{"shot direction", MapState{Width: 2, Height: 2,
			ShotDirections: []Shot{{0, 0, 8}}}, ErrInvalidDirection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.state.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), err.Error())
			assert.True(t, errors.Is(err, ErrInvalidState), err.Error())
		})
	}
}

func TestCheckTeams(t *testing.T) {
	m := MapState{Width: 1, Height: 1, Bullets: []Placement{{Coord{}, "teal"}}}
	err := m.CheckTeams()
	assert.True(t, errors.Is(err, ErrUnknownTeam))

	m.Bullets[0].Team = OLIVE
	assert.NoError(t, m.CheckTeams())
}

func TestPalette(t *testing.T) {
	for _, team := range Teams {
		_, err := Palette(team)
		assert.NoError(t, err, string(team))
	}
	c, err := Palette(RED)
	require.NoError(t, err)
	assert.Equal(t, Hex(0x78281f), c.Hat)
	assert.Equal(t, Hex(0xf1948a), c.Face)

	_, err = Palette("orange")
	assert.True(t, errors.Is(err, ErrUnknownTeam))
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, "W", W.String())
	assert.Equal(t, "SW", SW.String())
	assert.Equal(t, "N/A", Direction(9).String())
	assert.False(t, Direction(-1).Valid())
}
