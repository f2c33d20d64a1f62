package model

type Team string

const (
	RED    Team = "red"
	GREEN  Team = "green"
	BLUE   Team = "blue"
	YELLOW Team = "yellow"
	PINK   Team = "pink"
	VIOLET Team = "violet"
	OLIVE  Team = "olive"
	MAROON Team = "maroon"
	BLACK  Team = "black"
	WHITE  Team = "white"
	GRAY   Team = "gray"
)

// Direction of a shot, cyclic starting west and turning clockwise.
type Direction int

const (
	W Direction = iota
	NW
	N
	NE
	E
	SE
	S
	SW
)

var directionNames = [...]string{"W", "NW", "N", "NE", "E", "SE", "S", "SW"}

func (d Direction) Valid() bool {
	return d >= W && d <= SW
}

func (d Direction) String() string {
	if !d.Valid() {
		return "N/A"
	}
	return directionNames[d]
}

// Coord is a grid cell, origin bottom-left, y growing up.
type Coord struct {
	X, Y int
}

type Placement struct {
	Pos  Coord
	Team Team
}

type Shot struct {
	X, Y int
	Dir  Direction
}

type TeamPoints struct {
	Team   Team
	Points int
}

// MapState is one snapshot of the world. It is never modified after decoding.
type MapState struct {
	Width, Height  int
	Walls          []Coord
	Golds          []Coord
	Cowboys        []Placement
	Bullets        []Placement
	ShotDirections []Shot
	Explosions     []Coord
	Points         []TeamPoints
}

func (m *MapState) Inside(c Coord) bool {
	return c.X >= 0 && c.X < m.Width && c.Y >= 0 && c.Y < m.Height
}
