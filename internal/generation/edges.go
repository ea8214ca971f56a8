package generation

// EdgeRule describes one edge classification: a From tile next to a To tile
// across one of Dirs gets Inner on its own side and Outer on the neighbor's
// facing side. An Outer of EdgeNone leaves the neighbor untouched.
type EdgeRule struct {
	From, To     TileSet
	Inner, Outer EdgeType
	Dirs         []Direction
}

// AllDirections permits every side
var AllDirections = Directions[:]

var (
	horizontalDirs = []Direction{East, West}
	verticalDirs   = []Direction{North, South}
)

// ClassifyEdges applies rule to every tile in tiles and returns the number
// of sides written. Slots are assigned, never accumulated, so running the
// same rule twice leaves the grid unchanged.
func ClassifyEdges(g *Grid, rule EdgeRule, tiles []Point) int {
	dirs := rule.Dirs
	if dirs == nil {
		dirs = AllDirections
	}

	written := 0
	for _, p := range tiles {
		if !g.Is(p, rule.From) {
			continue
		}
		for _, d := range dirs {
			n := p.Step(d, 1)
			if !g.Is(n, rule.To) {
				continue
			}
			g.setEdgeSide(p, d, rule.Inner)
			if rule.Outer != EdgeNone {
				g.setEdgeSide(n, d.Opposite(), rule.Outer)
			}
			written++
		}
	}
	return written
}

// roomBoundaryRules are the rules a freshly grown room is outlined with
var roomBoundaryRules = []EdgeRule{
	{From: RoomTiles, To: NewTileSet(TileWall), Inner: EdgeRoomWall, Outer: EdgeRoomWall},
	{From: RoomTiles, To: NewTileSet(TileCorridor), Inner: EdgeEmbrasure, Outer: EdgeEmbrasure},
}

// RefreshRoomEdges re-derives every room boundary after later stages have
// changed what lies around the rooms: walls carved into corridors, corridors
// pruned back to wall, rooms that ended up touching each other.
func RefreshRoomEdges(g *Grid, rooms []*Room) int {
	owner := make(map[Point]int)
	for _, r := range rooms {
		for _, p := range r.Tiles {
			owner[p] = r.ID
		}
	}

	written := 0
	for _, r := range rooms {
		for _, p := range r.Tiles {
			for _, d := range Directions {
				n := p.Step(d, 1)
				if !g.InBounds(n) {
					continue
				}
				want := roomSideEdge(g, owner, r.ID, p, d, n)
				if g.Edge(p, d) != want {
					g.SetEdge(p, d, want)
					written++
				}
			}
		}
	}
	return written
}

func roomSideEdge(g *Grid, owner map[Point]int, roomID int, p Point, d Direction, n Point) EdgeType {
	current := g.Edge(p, d)
	switch g.At(n) {
	case TileWall:
		if current == EdgeWindow {
			return EdgeWindow
		}
		return EdgeRoomWall
	case TileCorridor:
		if current == EdgeReinforcedDoor {
			return EdgeReinforcedDoor
		}
		return EdgeEmbrasure
	case TileRoom, TileRoomOrigin:
		if id, ok := owner[n]; ok && id != roomID {
			return EdgeDoor
		}
		return EdgeNone
	}
	return current
}

// PlaceWindows turns room walls that are a single tile thick, with a
// corridor straight behind them, into windows with probability chance.
func PlaceWindows(g *Grid, rooms []*Room, chance float64, src Source) int {
	placed := 0
	for _, r := range rooms {
		for _, p := range r.Tiles {
			for _, d := range Directions {
				if g.Edge(p, d) != EdgeRoomWall {
					continue
				}
				wall := p.Step(d, 1)
				behind := p.Step(d, 2)
				if !g.Is(wall, NewTileSet(TileWall)) || !g.Is(behind, NewTileSet(TileCorridor)) {
					continue
				}
				if Chance(src, chance) {
					g.SetEdge(p, d, EdgeWindow)
					placed++
				}
			}
		}
	}
	return placed
}
