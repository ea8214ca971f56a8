package generation

import "github.com/zyedidia/generic/mapset"

// Decorator is a post-pass that reclassifies tiles of a finished layout
type Decorator interface {
	// Name identifies the decorator in logs and stage events
	Name() string
	// Decorate mutates the grid and returns how many tiles it changed
	Decorate(g *Grid, src Source) int
}

// slideClearance keeps slides this far (Euclidean) from room entrances
const slideClearance = 2.0

// PlaceTraps turns percent% of the corridor tiles that do not touch a
// secret corridor into pitfall traps.
func PlaceTraps(g *Grid, percent int, src Source) int {
	percent = min(max(percent, 0), 100)

	nearSecret := tilesNear(g, secretTiles)
	var eligible []Point
	for _, p := range g.TilesOfType(TileCorridor) {
		if !nearSecret.Has(p) {
			eligible = append(eligible, p)
		}
	}

	n := len(eligible) * percent / 100
	for _, p := range Shuffled(src, eligible)[:n] {
		g.Set(p, TilePitfallTrap)
	}
	return n
}

// PlaceLadders turns up to count rock tiles beside a secret corridor into
// ladders down. Only tiles with at least three wall neighbors qualify, so
// ladders sit in solid rock. The side facing the passage gets a hidden door.
func PlaceLadders(g *Grid, count int, src Source) int {
	var eligible []Point
	for _, p := range g.TilesOfType(TileWall) {
		if g.CountNeighbors(p, secretTiles) > 0 && g.CountNeighbors(p, NewTileSet(TileWall)) >= 3 {
			eligible = append(eligible, p)
		}
	}

	placed := 0
	for _, p := range Shuffled(src, eligible) {
		if placed >= count {
			break
		}
		g.Set(p, TileLadderDown)
		for _, d := range Directions {
			if g.Is(p.Step(d, 1), secretTiles) {
				g.SetEdge(p, d, EdgeHiddenDoor)
				break
			}
		}
		placed++
	}
	return placed
}

// PlaceSlides gives every room one slide and, when a second candidate
// exists, a slide trap that looks the same. Candidates hug the room wall
// (two or more wall neighbors), keep clear of entrances and do not touch
// secret corridors.
func PlaceSlides(g *Grid, rooms []*Room, src Source) int {
	placed := 0
	for _, r := range rooms {
		entrances := roomEntrances(g, r)

		var eligible []Point
		for _, p := range r.Tiles {
			if g.At(p) != TileRoom {
				continue
			}
			if g.CountNeighbors(p, NewTileSet(TileWall)) < 2 || g.CountNeighbors(p, secretTiles) > 0 {
				continue
			}
			if nearAny(p, entrances, slideClearance) {
				continue
			}
			eligible = append(eligible, p)
		}

		shuffled := Shuffled(src, eligible)
		for i, kind := range []TileType{TileSlide, TileSlideTrap} {
			if i >= len(shuffled) {
				break
			}
			g.Set(shuffled[i], kind)
			placed++
		}
	}
	return placed
}

// roomEntrances lists the room tiles carrying a reinforced door or embrasure
func roomEntrances(g *Grid, r *Room) []Point {
	var out []Point
	for _, p := range r.Tiles {
		for _, e := range g.Edges(p) {
			if e == EdgeReinforcedDoor || e == EdgeEmbrasure {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func nearAny(p Point, points []Point, radius float64) bool {
	for _, q := range points {
		if p.Dist(q) <= radius {
			return true
		}
	}
	return false
}

// PlaceEntrances turns up to count dead-end corridors into ladders up
func PlaceEntrances(g *Grid, count int, src Source) int {
	var deadEnds []Point
	for _, p := range g.TilesOfType(TileCorridor) {
		if g.CountNeighbors(p, Walkable) == 1 {
			deadEnds = append(deadEnds, p)
		}
	}

	placed := 0
	for _, p := range Shuffled(src, deadEnds) {
		if placed >= count {
			break
		}
		g.Set(p, TileLadderUp)
		placed++
	}
	return placed
}

// TrapDecorator places pitfall traps
type TrapDecorator struct{ Percent int }

func (d TrapDecorator) Name() string { return "traps" }
func (d TrapDecorator) Decorate(g *Grid, src Source) int {
	return PlaceTraps(g, d.Percent, src)
}

// LadderDecorator places ladders down beside secret corridors
type LadderDecorator struct{ Count int }

func (d LadderDecorator) Name() string { return "ladders" }
func (d LadderDecorator) Decorate(g *Grid, src Source) int {
	return PlaceLadders(g, d.Count, src)
}

// EntranceDecorator places ladders up at dead ends
type EntranceDecorator struct{ Count int }

func (d EntranceDecorator) Name() string { return "entrances" }
func (d EntranceDecorator) Decorate(g *Grid, src Source) int {
	return PlaceEntrances(g, d.Count, src)
}

// SlideDecorator places slides and slide traps in rooms
type SlideDecorator struct{ Rooms []*Room }

func (d SlideDecorator) Name() string { return "slides" }
func (d SlideDecorator) Decorate(g *Grid, src Source) int {
	return PlaceSlides(g, d.Rooms, src)
}

// tilesNear returns the set of tiles holding a type in set, plus their
// 4-neighbors
func tilesNear(g *Grid, set TileSet) mapset.Set[Point] {
	near := mapset.New[Point]()
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p := Point{x, y}
			if !g.Is(p, set) {
				continue
			}
			near.Put(p)
			for _, n := range g.Neighbors4(p) {
				near.Put(n)
			}
		}
	}
	return near
}
