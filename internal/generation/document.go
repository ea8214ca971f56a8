package generation

import (
	"fmt"

	"dconn.dev/dungeon/internal/models"
)

// DocumentMeta is what a document carries besides the grid itself
type DocumentMeta struct {
	Seed    uint64
	Profile string
	Rooms   []*Room
	Stats   *Stats
}

// Document serializes a generation result
func (r *Result) Document() *models.MapDocument {
	return ToDocument(r.Grid, DocumentMeta{
		Seed:    r.Seed,
		Profile: string(r.Config.Profile),
		Rooms:   r.Rooms,
		Stats:   &r.Stats,
	})
}

// ToDocument converts a grid to its serialized form. Every non-empty edge
// side is listed, so both views of a shared boundary appear.
func ToDocument(g *Grid, meta DocumentMeta) *models.MapDocument {
	doc := &models.MapDocument{
		Width:   g.Width,
		Height:  g.Height,
		Seed:    meta.Seed,
		Profile: meta.Profile,
		Tiles:   TileNames(g),
		Edges:   make([]models.EdgeEntry, 0),
		Rooms:   make([]models.RoomEntry, 0, len(meta.Rooms)),
	}

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			for _, d := range Directions {
				e := g.Edge(Point{x, y}, d)
				if e == EdgeNone {
					continue
				}
				doc.Edges = append(doc.Edges, models.EdgeEntry{X: x, Y: y, Dir: d.String(), Type: e.String()})
			}
		}
	}

	for _, r := range meta.Rooms {
		b := r.Bounds()
		entry := models.RoomEntry{
			ID:     r.ID,
			Origin: models.Position{X: r.Origin.X, Y: r.Origin.Y},
			Bounds: models.Bounds{MinX: b.MinX, MaxX: b.MaxX, MinY: b.MinY, MaxY: b.MaxY},
			Size:   len(r.Tiles),
		}
		doors := r.Doors(g)
		for _, d := range Directions {
			if _, ok := doors[d]; ok {
				entry.Doors = append(entry.Doors, d.String())
			}
		}
		doc.Rooms = append(doc.Rooms, entry)
	}

	if meta.Stats != nil {
		doc.Stats = &models.MapStats{
			Tiles:       meta.Stats.Tiles,
			Edges:       meta.Stats.Edges,
			Links:       meta.Stats.Links,
			Pruned:      meta.Stats.Pruned,
			Decorations: meta.Stats.Decorations,
		}
	}
	return doc
}

// TileNames returns the tile names of g, row-major
func TileNames(g *Grid) [][]string {
	tiles := make([][]string, g.Height)
	for y := range tiles {
		tiles[y] = make([]string, g.Width)
		for x := range tiles[y] {
			tiles[y][x] = g.At(Point{x, y}).String()
		}
	}
	return tiles
}

// FromDocument rebuilds the grid a document was made from
func FromDocument(doc *models.MapDocument) (*Grid, error) {
	if doc.Width < 1 || doc.Height < 1 {
		return nil, fmt.Errorf("document size %dx%d", doc.Width, doc.Height)
	}
	if len(doc.Tiles) != doc.Height {
		return nil, fmt.Errorf("document has %d rows, want %d", len(doc.Tiles), doc.Height)
	}

	g := NewGrid(doc.Width, doc.Height, TileWall)
	for y, row := range doc.Tiles {
		if len(row) != doc.Width {
			return nil, fmt.Errorf("row %d has %d tiles, want %d", y, len(row), doc.Width)
		}
		for x, name := range row {
			t, err := ParseTileType(name)
			if err != nil {
				return nil, fmt.Errorf("tile (%d,%d): %w", x, y, err)
			}
			g.Set(Point{x, y}, t)
		}
	}

	for i, entry := range doc.Edges {
		p := Point{entry.X, entry.Y}
		if !g.InBounds(p) {
			return nil, fmt.Errorf("edge %d: %v out of bounds", i, p)
		}
		d, err := ParseDirection(entry.Dir)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		e, err := ParseEdgeType(entry.Type)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		g.setEdgeSide(p, d, e)
	}

	return g, nil
}
