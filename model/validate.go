package model

import "fmt"

// Validate checks that the snapshot can be drawn: positive size, every
// coordinate on the grid, known teams and directions in range.
func (m *MapState) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return fmt.Errorf("%dx%d: %w", m.Width, m.Height, ErrInvalidDimensions)
	}
	if err := m.checkCoords("walls", m.Walls); err != nil {
		return err
	}
	if err := m.checkCoords("golds", m.Golds); err != nil {
		return err
	}
	if err := m.checkCoords("explosions", m.Explosions); err != nil {
		return err
	}
	if err := m.checkPlacements("cowboys", m.Cowboys); err != nil {
		return err
	}
	if err := m.checkPlacements("bullets", m.Bullets); err != nil {
		return err
	}
	for i, s := range m.ShotDirections {
		if !m.Inside(Coord{s.X, s.Y}) {
			return fmt.Errorf("shot_directions[%d] (%d,%d): %w", i, s.X, s.Y, ErrOutOfBounds)
		}
		if !s.Dir.Valid() {
			return fmt.Errorf("shot_directions[%d] direction %d: %w", i, int(s.Dir), ErrInvalidDirection)
		}
	}
	return nil
}

// CheckTeams reports the first cowboy or bullet with a team outside the palette.
func (m *MapState) CheckTeams() error {
	for i, p := range m.Cowboys {
		if !p.Team.Known() {
			return fmt.Errorf("cowboys[%d] team %q: %w", i, string(p.Team), ErrUnknownTeam)
		}
	}
	for i, p := range m.Bullets {
		if !p.Team.Known() {
			return fmt.Errorf("bullets[%d] team %q: %w", i, string(p.Team), ErrUnknownTeam)
		}
	}
	return nil
}

func (m *MapState) checkCoords(field string, cs []Coord) error {
	for i, c := range cs {
		if !m.Inside(c) {
			return fmt.Errorf("%s[%d] (%d,%d): %w", field, i, c.X, c.Y, ErrOutOfBounds)
		}
	}
	return nil
}

func (m *MapState) checkPlacements(field string, ps []Placement) error {
	for i, p := range ps {
		if !m.Inside(p.Pos) {
			return fmt.Errorf("%s[%d] (%d,%d): %w", field, i, p.Pos.X, p.Pos.Y, ErrOutOfBounds)
		}
		if !p.Team.Known() {
			return fmt.Errorf("%s[%d] team %q: %w", field, i, string(p.Team), ErrUnknownTeam)
		}
	}
	return nil
}
