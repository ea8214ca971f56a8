package generation

var lavaGrowable = NewTileSet(TileWall)

// PlaceSpikes turns percent% of the plain room floor into spikes. Tiles with
// any edge, the origin and anything already decorated are left alone.
func PlaceSpikes(g *Grid, rooms []*Room, percent int, src Source) int {
	percent = min(max(percent, 0), 100)

	var eligible []Point
	for _, r := range rooms {
		for _, p := range r.Tiles {
			if g.At(p) == TileRoom && g.Edges(p).Empty() {
				eligible = append(eligible, p)
			}
		}
	}

	n := len(eligible) * percent / 100
	for _, p := range Shuffled(src, eligible)[:n] {
		g.Set(p, TileSpikes)
	}
	return n
}

// PlaceLavaPools grows up to count pools of at most size tiles inside solid
// rock. Pools only replace walls whose eight neighbors are walls too, so
// they never touch anything walkable.
func PlaceLavaPools(g *Grid, count, size int, src Source) int {
	if count < 1 || size < 1 {
		return 0
	}

	placed := 0
	pools := 0
	for _, seed := range Shuffled(src, deepRock(g)) {
		if pools >= count {
			break
		}
		if !isDeepRock(g, seed) {
			continue
		}
		placed += growPool(g, seed, size, src)
		pools++
	}
	return placed
}

// growPool is the room grower's frontier growth restricted to deep rock
func growPool(g *Grid, seed Point, size int, src Source) int {
	frontier := []Point{seed}
	grown := 0
	limit := size*growthIterationFactor + growthIterationSlack

	for iter := 0; len(frontier) > 0 && grown < size && iter < limit; iter++ {
		i := src.Intn(len(frontier))
		p := frontier[i]
		frontier[i] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		if !isDeepRock(g, p) {
			continue
		}
		g.Set(p, TileLava)
		grown++

		for _, n := range g.Neighbors4(p) {
			if g.Is(n, lavaGrowable) {
				frontier = append(frontier, n)
			}
		}
	}
	return grown
}

func deepRock(g *Grid) []Point {
	var out []Point
	for _, p := range g.TilesOfType(TileWall) {
		if isDeepRock(g, p) {
			out = append(out, p)
		}
	}
	return out
}

// isDeepRock reports whether p is a wall away from the map edge whose eight
// neighbors are wall or lava
func isDeepRock(g *Grid, p Point) bool {
	if !g.Is(p, lavaGrowable) {
		return false
	}
	rock := NewTileSet(TileWall, TileLava)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			n := p.Add(dx, dy)
			if !g.InBounds(n) || !rock.Has(g.At(n)) {
				return false
			}
		}
	}
	return true
}

// SpikeDecorator scatters spikes over room floors
type SpikeDecorator struct {
	Rooms   []*Room
	Percent int
}

func (d SpikeDecorator) Name() string { return "spikes" }
func (d SpikeDecorator) Decorate(g *Grid, src Source) int {
	return PlaceSpikes(g, d.Rooms, d.Percent, src)
}

// LavaDecorator grows lava pools in solid rock
type LavaDecorator struct {
	Pools, Size int
}

func (d LavaDecorator) Name() string { return "lava" }
func (d LavaDecorator) Decorate(g *Grid, src Source) int {
	return PlaceLavaPools(g, d.Pools, d.Size, src)
}
