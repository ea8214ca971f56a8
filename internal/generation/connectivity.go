package generation

import "github.com/zyedidia/generic/mapset"

// Cluster is a maximal 4-connected group of tiles, in discovery order
type Cluster []Point

// FindClusters groups the corridor, room and room-origin tiles into
// 4-connected clusters. Clusters are discovered scanning row-major.
func FindClusters(g *Grid) []Cluster {
	return FindClustersOf(g, Traversable)
}

// FindClustersOf is FindClusters over an arbitrary tile set
func FindClustersOf(g *Grid, set TileSet) []Cluster {
	seen := mapset.New[Point]()
	var clusters []Cluster

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			start := Point{x, y}
			if seen.Has(start) || !g.Is(start, set) {
				continue
			}

			seen.Put(start)
			cluster := Cluster{}
			stack := []Point{start}
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				cluster = append(cluster, p)

				for _, adj := range p.Adjacent() {
					if seen.Has(adj) || !g.Is(adj, set) {
						continue
					}
					seen.Put(adj)
					stack = append(stack, adj)
				}
			}
			clusters = append(clusters, cluster)
		}
	}

	return clusters
}

// PruneIsolatedCorridors turns every corridor tile that cannot be reached
// from a room origin back into wall and returns how many were pruned.
// Rooms are kept even when nothing reaches them.
func PruneIsolatedCorridors(g *Grid) int {
	reached := g.FloodFill(g.TilesOfType(TileRoomOrigin), Traversable)

	pruned := 0
	for _, p := range g.TilesOfType(TileCorridor) {
		if !reached.Has(p) {
			g.Set(p, TileWall)
			pruned++
		}
	}
	return pruned
}

// FillBorder walls over every corridor outside the inner rectangle of the
// published map, so no corridor runs into the map edge or the carving margin.
func FillBorder(g *Grid, width, height int) {
	g.Rect(0, 0, g.Width, 1, TileWall, TileCorridor)
	g.Rect(0, 0, 1, g.Height, TileWall, TileCorridor)
	g.Rect(0, height-1, g.Width, g.Height-height+1, TileWall, TileCorridor)
	g.Rect(width-1, 0, g.Width-width+1, g.Height, TileWall, TileCorridor)
}

// latticeEndpoints returns the cluster tiles sitting on the lattice (every
// wallStep, offset by corridorStep/2). A cluster that never crosses the
// lattice offers all of its traversable tiles instead.
func latticeEndpoints(g *Grid, c Cluster, wallStep, corridorStep int) []Point {
	offset := corridorStep / 2
	var points, fallback []Point
	for _, p := range c {
		if !g.Is(p, Traversable) {
			continue
		}
		fallback = append(fallback, p)
		if mod(p.X-offset, wallStep) == 0 && mod(p.Y-offset, wallStep) == 0 {
			points = append(points, p)
		}
	}
	if len(points) == 0 {
		return fallback
	}
	return points
}

func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}
