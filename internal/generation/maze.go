package generation

import "fmt"

// MazeConfig sizes the coarse lattice the maze is carved on
type MazeConfig struct {
	Width, Height int
	WallStep      int // distance between lattice points
	CorridorStep  int // corridor thickness
}

// Validate checks the lattice can be carved at all. The smallest usable map
// is WallStep+CorridorStep tiles on each side.
func (c MazeConfig) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return fmt.Errorf("%w: maze size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.CorridorStep < 1 || c.WallStep <= c.CorridorStep {
		return fmt.Errorf("%w: wall step %d must exceed corridor step %d (>= 1)",
			ErrInvalidConfig, c.WallStep, c.CorridorStep)
	}
	return nil
}

// PaddedSize returns the carving dimensions: each side rounded up to a
// multiple of WallStep plus a CorridorStep margin for the last block.
func (c MazeConfig) PaddedSize() (int, int) {
	return roundUp(c.Width, c.WallStep) + c.CorridorStep, roundUp(c.Height, c.WallStep) + c.CorridorStep
}

// LatticeSize returns the number of lattice points along each axis
func (c MazeConfig) LatticeSize() (int, int) {
	w, h := c.PaddedSize()
	return (w-c.CorridorStep)/c.WallStep + 1, (h-c.CorridorStep)/c.WallStep + 1
}

func roundUp(n, step int) int {
	return (n + step - 1) / step * step
}

// CarveMaze carves a depth-first backtracker maze over the lattice. Every
// lattice point is reached exactly once, so the corridors form a spanning
// tree of the lattice.
func CarveMaze(cfg MazeConfig, src Source) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	width, height := cfg.PaddedSize()
	grid := NewGrid(width, height, TileWall)
	cols, rows := cfg.LatticeSize()

	start := Point{src.Intn(cols) * cfg.WallStep, src.Intn(rows) * cfg.WallStep}
	carveBlock(grid, start, cfg.CorridorStep)
	stack := []Point{start}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates := make([]Point, 0, 4)

		for _, d := range Directions {
			next := curr.Step(d, cfg.WallStep)
			if !blockFits(grid, next, cfg.CorridorStep) {
				continue
			}
			if grid.At(next) == TileWall {
				candidates = append(candidates, next)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := candidates[src.Intn(len(candidates))]
		carveLine(grid, curr, next, cfg.CorridorStep)
		stack = append(stack, next)
	}

	return grid, nil
}

// carveBlock opens a size*size corridor block with its top-left corner at p
func carveBlock(g *Grid, p Point, size int) {
	g.Rect(p.X, p.Y, size, size, TileCorridor)
}

func blockFits(g *Grid, p Point, size int) bool {
	return g.InBounds(p) && g.InBounds(p.Add(size-1, size-1))
}

// carveLine walks from a to b one tile at a time, opening a block at each
// step. a and b share a row or a column.
func carveLine(g *Grid, a, b Point, size int) {
	dx, dy := sign(b.X-a.X), sign(b.Y-a.Y)
	for p := a; p != b; {
		p = p.Add(dx, dy)
		carveBlock(g, p, size)
	}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
