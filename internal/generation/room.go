package generation

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// growthIterationFactor bounds room growth at maxSize*factor frontier pops
// (plus growthIterationSlack) no matter what the frontier looks like.
const (
	growthIterationFactor = 32
	growthIterationSlack  = 256
)

// Room is a grown room: its seed and every tile it covers, row-major
type Room struct {
	ID     int
	Origin Point
	Tiles  []Point
}

// Bounds returns the bounding box of the room
func (r *Room) Bounds() Bounds {
	b := Bounds{r.Origin.X, r.Origin.Y, r.Origin.X, r.Origin.Y}
	for _, p := range r.Tiles {
		b.MinX = min(b.MinX, p.X)
		b.MinY = min(b.MinY, p.Y)
		b.MaxX = max(b.MaxX, p.X)
		b.MaxY = max(b.MaxY, p.Y)
	}
	return b
}

// Doors returns the reinforced doors of the room keyed by direction
func (r *Room) Doors(g *Grid) map[Direction]Point {
	doors := make(map[Direction]Point)
	for _, p := range r.Tiles {
		for _, d := range Directions {
			if g.Edge(p, d) == EdgeReinforcedDoor {
				if _, seen := doors[d]; !seen {
					doors[d] = p
				}
			}
		}
	}
	return doors
}

// GrowRoom grows a room from seed by randomized flood growth over wall and
// corridor tiles, capped at maxSize tiles and maxRadius distance from the
// seed. It returns nil, leaving the grid untouched, when maxSize < 1 or the
// seed is not growable.
func GrowRoom(g *Grid, seed Point, maxSize int, maxRadius float64, src Source) *Room {
	if maxSize < 1 || !g.Is(seed, Growable) {
		return nil
	}

	grown := mapset.New[Point]()
	frontier := []Point{seed}
	size := 0
	limit := maxSize*growthIterationFactor + growthIterationSlack

	for iter := 0; len(frontier) > 0 && size < maxSize && iter < limit; iter++ {
		i := src.Intn(len(frontier))
		p := frontier[i]
		frontier[i] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		if !g.Is(p, Growable) || p.Dist(seed) > maxRadius {
			continue
		}
		g.Set(p, TileRoom)
		grown.Put(p)
		size++

		for _, n := range g.Neighbors4(p) {
			if g.Is(n, Growable) {
				frontier = append(frontier, n)
			}
		}
	}

	size += closePinholes(g, grown, maxSize-size)
	g.Set(seed, TileRoomOrigin)

	room := &Room{Origin: seed, Tiles: sortedPoints(grown)}
	for _, rule := range roomBoundaryRules {
		ClassifyEdges(g, rule, room.Tiles)
	}
	placeRoomDoors(g, room)
	return room
}

// closePinholes absorbs the wall and corridor tiles the random growth left
// enclosed: corridors touching only room or wall, walls touching only room.
// Each absorbed tile borders at least two room tiles.
func closePinholes(g *Grid, grown mapset.Set[Point], budget int) int {
	candidates := mapset.New[Point]()
	grown.Each(func(p Point) {
		for _, n := range g.Neighbors4(p) {
			if g.Is(n, Growable) {
				candidates.Put(n)
			}
		}
	})

	absorbed := 0
	for _, p := range sortedPoints(candidates) {
		if absorbed >= budget {
			break
		}
		allowed := NewTileSet(TileRoom, TileWall)
		if g.At(p) == TileWall {
			allowed = NewTileSet(TileRoom)
		}

		enclosed := true
		for _, n := range g.Neighbors4(p) {
			if !g.Is(n, allowed) {
				enclosed = false
				break
			}
		}
		if !enclosed || g.CountNeighbors(p, NewTileSet(TileRoom)) < 2 {
			continue
		}

		g.Set(p, TileRoom)
		grown.Put(p)
		absorbed++
	}
	return absorbed
}

// placeRoomDoors puts at most one reinforced door on each side of the room:
// the embrasure farthest from the origin in that direction. Ties keep the
// first tile in row-major order.
func placeRoomDoors(g *Grid, room *Room) {
	for _, d := range Directions {
		dx, dy := d.Delta()
		best := -1
		var door Point

		for _, p := range room.Tiles {
			if g.Edge(p, d) != EdgeEmbrasure {
				continue
			}
			reach := (p.X-room.Origin.X)*dx + (p.Y-room.Origin.Y)*dy
			if reach < 0 || reach <= best {
				continue
			}
			best = reach
			door = p
		}

		if best >= 0 {
			g.SetEdge(door, d, EdgeReinforcedDoor)
		}
	}
}

// sortedPoints returns the keys of a point set in row-major order
func sortedPoints(set mapset.Set[Point]) []Point {
	out := make([]Point, 0, set.Size())
	set.Each(func(p Point) {
		out = append(out, p)
	})
	sortRowMajor(out)
	return out
}

func sortRowMajor(points []Point) {
	sort.Slice(points, func(i, j int) bool {
		if points[i].Y != points[j].Y {
			return points[i].Y < points[j].Y
		}
		return points[i].X < points[j].X
	})
}
