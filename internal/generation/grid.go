package generation

import (
	"fmt"

	"github.com/zyedidia/generic/mapset"
)

// Grid is the tile and edge storage every pipeline stage works on.
// Cells are addressed by (x, y); rows are stored y-major.
type Grid struct {
	Width, Height int
	tiles         [][]TileType
	edges         [][]Edges
}

// NewGrid creates a new grid filled with a default tile and no edges
func NewGrid(width, height int, fill TileType) *Grid {
	if width < 1 || height < 1 {
		panic(fmt.Sprintf("generation: invalid grid size %dx%d", width, height))
	}
	tiles := make([][]TileType, height)
	edges := make([][]Edges, height)
	for y := 0; y < height; y++ {
		tiles[y] = make([]TileType, width)
		edges[y] = make([]Edges, width)
		if fill != TileWall {
			for x := range tiles[y] {
				tiles[y][x] = fill
			}
		}
	}
	return &Grid{Width: width, Height: height, tiles: tiles, edges: edges}
}

// InBounds checks if a point is within the grid
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

func (g *Grid) mustBeInBounds(p Point) {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("generation: %v outside %dx%d grid", p, g.Width, g.Height))
	}
}

// At returns the tile at a position
func (g *Grid) At(p Point) TileType {
	g.mustBeInBounds(p)
	return g.tiles[p.Y][p.X]
}

// Is reports whether p is in bounds and holds one of the types in set
func (g *Grid) Is(p Point, set TileSet) bool {
	return g.InBounds(p) && set.Has(g.tiles[p.Y][p.X])
}

// Set sets a tile at a position
func (g *Grid) Set(p Point, t TileType) {
	g.mustBeInBounds(p)
	g.tiles[p.Y][p.X] = t
}

// Edges returns all four edge slots of a cell
func (g *Grid) Edges(p Point) Edges {
	g.mustBeInBounds(p)
	return g.edges[p.Y][p.X]
}

// Edge returns the edge on side d of a cell
func (g *Grid) Edge(p Point, d Direction) EdgeType {
	g.mustBeInBounds(p)
	return g.edges[p.Y][p.X][d]
}

// SetEdge sets side d of p and the facing side of the neighbor, keeping
// both views of the boundary consistent.
func (g *Grid) SetEdge(p Point, d Direction, e EdgeType) {
	g.setEdgeSide(p, d, e)
	if n := p.Step(d, 1); g.InBounds(n) {
		g.edges[n.Y][n.X][d.Opposite()] = e
	}
}

func (g *Grid) setEdgeSide(p Point, d Direction, e EdgeType) {
	g.mustBeInBounds(p)
	g.edges[p.Y][p.X][d] = e
}

// Neighbors4 returns the in-bounds cardinal neighbors in N, E, S, W order
func (g *Grid) Neighbors4(p Point) []Point {
	out := make([]Point, 0, 4)
	for _, n := range p.Adjacent() {
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// CountNeighbors counts in-bounds cardinal neighbors holding a type in set
func (g *Grid) CountNeighbors(p Point, set TileSet) int {
	count := 0
	for _, n := range p.Adjacent() {
		if g.Is(n, set) {
			count++
		}
	}
	return count
}

// TilesOfType returns every cell holding one of the given types, row-major
func (g *Grid) TilesOfType(types ...TileType) []Point {
	set := NewTileSet(types...)
	var out []Point
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if set.Has(g.tiles[y][x]) {
				out = append(out, Point{x, y})
			}
		}
	}
	return out
}

// Count returns how many cells hold one of the given types
func (g *Grid) Count(types ...TileType) int {
	set := NewTileSet(types...)
	count := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if set.Has(g.tiles[y][x]) {
				count++
			}
		}
	}
	return count
}

// Rect fills the in-bounds part of a w*h rectangle at (x, y). When only is
// non-empty, just the cells currently holding one of those types change.
func (g *Grid) Rect(x, y, w, h int, t TileType, only ...TileType) {
	replace := NewTileSet(only...)
	for yy := max(y, 0); yy < min(y+h, g.Height); yy++ {
		for xx := max(x, 0); xx < min(x+w, g.Width); xx++ {
			if len(only) > 0 && !replace.Has(g.tiles[yy][xx]) {
				continue
			}
			g.tiles[yy][xx] = t
		}
	}
}

// FloodFill returns every cell reachable from the starts through cells of
// the passable set, using an explicit stack.
func (g *Grid) FloodFill(starts []Point, passable TileSet) mapset.Set[Point] {
	visited := mapset.New[Point]()
	stack := make([]Point, 0, len(starts))
	for _, s := range starts {
		if g.Is(s, passable) && !visited.Has(s) {
			visited.Put(s)
			stack = append(stack, s)
		}
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, adj := range p.Adjacent() {
			if visited.Has(adj) || !g.Is(adj, passable) {
				continue
			}
			visited.Put(adj)
			stack = append(stack, adj)
		}
	}

	return visited
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.Width, g.Height, TileWall)
	for y := 0; y < g.Height; y++ {
		copy(c.tiles[y], g.tiles[y])
		copy(c.edges[y], g.edges[y])
	}
	return c
}

// Crop returns a new grid holding the cells inside b, re-indexed so that
// (b.MinX, b.MinY) becomes (0, 0). Cells of b outside g are walls.
func (g *Grid) Crop(b Bounds) *Grid {
	c := NewGrid(b.Width(), b.Height(), TileWall)
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			src := Point{x + b.MinX, y + b.MinY}
			if !g.InBounds(src) {
				continue
			}
			c.tiles[y][x] = g.tiles[src.Y][src.X]
			c.edges[y][x] = g.edges[src.Y][src.X]
		}
	}
	return c
}
