package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// wire shape produced by the game server: tuples are JSON arrays
type mapStateWire struct {
	Width          int          `json:"width"`
	Height         int          `json:"height"`
	Walls          []Coord      `json:"walls"`
	Golds          []Coord      `json:"golds"`
	Cowboys        []Placement  `json:"cowboys"`
	Bullets        []Placement  `json:"bullets"`
	ShotDirections []Shot       `json:"shot_directions"`
	Explosions     []Coord      `json:"explosions"`
	Points         []TeamPoints `json:"points,omitempty"`
}

func Decode(r io.Reader) (*MapState, error) {
	m := &MapState{}
	if err := json.NewDecoder(r).Decode(m); err != nil {
		return nil, fmt.Errorf("decode map state: %w", err)
	}
	return m, nil
}

func Parse(data []byte) (*MapState, error) {
	return Decode(bytes.NewReader(data))
}

func (m *MapState) UnmarshalJSON(data []byte) error {
	var w mapStateWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*m = MapState(w)
	return nil
}

func (m MapState) MarshalJSON() ([]byte, error) {
	w := mapStateWire(m)
	if w.Walls == nil {
		w.Walls = []Coord{}
	}
	if w.Golds == nil {
		w.Golds = []Coord{}
	}
	if w.Cowboys == nil {
		w.Cowboys = []Placement{}
	}
	if w.Bullets == nil {
		w.Bullets = []Placement{}
	}
	if w.ShotDirections == nil {
		w.ShotDirections = []Shot{}
	}
	if w.Explosions == nil {
		w.Explosions = []Coord{}
	}
	return json.Marshal(w)
}

func (c Coord) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{c.X, c.Y})
}

func (c *Coord) UnmarshalJSON(data []byte) error {
	var xy []int
	if err := json.Unmarshal(data, &xy); err != nil {
		return err
	}
	if len(xy) != 2 {
		return fmt.Errorf("coordinate needs 2 values, got %d", len(xy))
	}
	c.X, c.Y = xy[0], xy[1]
	return nil
}

func (p Placement) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{p.Pos, p.Team})
}

func (p *Placement) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("placement needs position and team, got %d values", len(raw))
	}
	if err := json.Unmarshal(raw[0], &p.Pos); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &p.Team)
}

func (s Shot) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{s.X, s.Y, int(s.Dir)})
}

func (s *Shot) UnmarshalJSON(data []byte) error {
	var v []int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if len(v) != 3 {
		return fmt.Errorf("shot direction needs 3 values, got %d", len(v))
	}
	s.X, s.Y, s.Dir = v[0], v[1], Direction(v[2])
	return nil
}

func (t TeamPoints) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{t.Team, t.Points})
}

func (t *TeamPoints) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("points entry needs team and points, got %d values", len(raw))
	}
	if err := json.Unmarshal(raw[0], &t.Team); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &t.Points)
}
