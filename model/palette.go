package model

import (
	"fmt"
	"image/color"
)

// Colors of one team: Hat is the dark accent, Face the light fill.
type Colors struct {
	Hat  color.RGBA
	Face color.RGBA
}

func Hex(u uint32) color.RGBA {
	return color.RGBA{
		R: uint8(0xff & (u >> 16)),
		G: uint8(0xff & (u >> 8)),
		B: uint8(0xff & u),
		A: 0xff,
	}
}

var palette = map[Team]Colors{
	RED:    {Hex(0x78281f), Hex(0xf1948a)},
	GREEN:  {Hex(0x196f3d), Hex(0x82e0aa)},
	BLUE:   {Hex(0x1a5276), Hex(0x85c1e9)},
	YELLOW: {Hex(0x9a7d0a), Hex(0xf7dc6f)},
	PINK:   {Hex(0xc3c3c3), Hex(0xec64e4)},
	VIOLET: {Hex(0x533073), Hex(0x922ced)},
	OLIVE:  {Hex(0x637361), Hex(0x808000)},
	MAROON: {Hex(0x800000), Hex(0xbc001c)},
	BLACK:  {Hex(0x96500f), Hex(0x000000)},
	WHITE:  {Hex(0x000000), Hex(0xd3d3d3)},
	GRAY:   {Hex(0x808080), Hex(0x808080)},
}

// Teams lists the known teams in palette order.
var Teams = []Team{RED, GREEN, BLUE, YELLOW, PINK, VIOLET, OLIVE, MAROON, BLACK, WHITE, GRAY}

func (t Team) Known() bool {
	_, ok := palette[t]
	return ok
}

func Palette(t Team) (Colors, error) {
	c, ok := palette[t]
	if !ok {
		return Colors{}, fmt.Errorf("team %q: %w", string(t), ErrUnknownTeam)
	}
	return c, nil
}
