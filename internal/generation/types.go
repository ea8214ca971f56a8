package generation

import (
	"fmt"
	"math"
)

// Point represents a 2D coordinate
type Point struct {
	X, Y int
}

// Add returns a new point offset by dx, dy
func (p Point) Add(dx, dy int) Point {
	return Point{p.X + dx, p.Y + dy}
}

// Step returns the point n tiles away in direction d
func (p Point) Step(d Direction, n int) Point {
	dx, dy := d.Delta()
	return Point{p.X + dx*n, p.Y + dy*n}
}

// Adjacent returns the 4 cardinal neighbors in Directions order
func (p Point) Adjacent() []Point {
	return []Point{
		{p.X, p.Y - 1}, // N
		{p.X + 1, p.Y}, // E
		{p.X, p.Y + 1}, // S
		{p.X - 1, p.Y}, // W
	}
}

// Dist returns the Euclidean distance between two points
func (p Point) Dist(o Point) float64 {
	dx := float64(p.X - o.X)
	dy := float64(p.Y - o.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction represents cardinal directions
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every direction in the fixed scan order used across the package.
var Directions = [4]Direction{North, East, South, West}

var directionNames = [4]string{"north", "east", "south", "west"}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Horizontal reports whether d runs along the x axis
func (d Direction) Horizontal() bool {
	return d == East || d == West
}

// Delta returns the x,y offset for moving in this direction
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	if d < North || d > West {
		return fmt.Sprintf("direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection is the inverse of Direction.String
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), nil
		}
	}
	return North, fmt.Errorf("unknown direction %q", s)
}

// DirectionBetween returns the direction from a to b. The points must be
// 4-adjacent; anything else is a caller bug and panics.
func DirectionBetween(a, b Point) Direction {
	dx, dy := b.X-a.X, b.Y-a.Y
	switch {
	case dx == 0 && dy == -1:
		return North
	case dx == 1 && dy == 0:
		return East
	case dx == 0 && dy == 1:
		return South
	case dx == -1 && dy == 0:
		return West
	}
	panic(fmt.Sprintf("generation: %v and %v are not 4-adjacent", a, b))
}

// Bounds represents a rectangular region
type Bounds struct {
	MinX, MinY, MaxX, MaxY int
}

// Width returns the width of the bounds
func (b Bounds) Width() int {
	return b.MaxX - b.MinX + 1
}

// Height returns the height of the bounds
func (b Bounds) Height() int {
	return b.MaxY - b.MinY + 1
}

// Contains checks if a point is within bounds
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}
