package world

import (
	"doomlike/internal/graphics"
	"doomlike/internal/player"
)

// DefaultLevel returns the built-in map: four square rooms of side 32,
// each 40 units tall, with the camera south of them.
func DefaultLevel() *Level {
	room := func(x, y int, a, b graphics.ColorID) []Wall {
		return []Wall{
			{x, y, x + 32, y, a},
			{x + 32, y, x + 32, y + 32, b},
			{x + 32, y + 32, x, y + 32, a},
			{x, y + 32, x, y, b},
		}
	}

	var walls []Wall
	walls = append(walls, room(0, 0, graphics.Yellow, graphics.DarkYellow)...)
	walls = append(walls, room(64, 0, graphics.Green, graphics.DarkGreen)...)
	walls = append(walls, room(64, 64, graphics.Cyan, graphics.DarkCyan)...)
	walls = append(walls, room(0, 64, graphics.Brown, graphics.DarkBrown)...)

	return &Level{
		Name: "four rooms",
		Sectors: []Sector{
			{0, 4, 0, 40, graphics.Green, graphics.DarkGreen},
			{4, 8, 0, 40, graphics.Cyan, graphics.DarkCyan},
			{8, 12, 0, 40, graphics.Brown, graphics.DarkBrown},
			{12, 16, 0, 40, graphics.Yellow, graphics.DarkYellow},
		},
		Walls: walls,
		Start: player.Player{X: 70, Y: -110, Z: 20},
	}
}
