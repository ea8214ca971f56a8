package render

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/gdamore/tcell/v2"

	"dconn.dev/dungeon/internal/generation"
)

// ErrIncompletePalette is returned when a palette misses a tile or edge color
var ErrIncompletePalette = errors.New("incomplete palette")

// Default colors, one per tile and edge type
var (
	RgbWall           = tcell.NewRGBColor(24, 22, 28)    // Near black rock
	RgbCorridor       = tcell.NewRGBColor(120, 112, 100) // Worn flagstone
	RgbSecretCorridor = tcell.NewRGBColor(70, 62, 84)    // Dim violet
	RgbRoom           = tcell.NewRGBColor(176, 164, 140) // Sandstone floor
	RgbRoomOrigin     = tcell.NewRGBColor(214, 196, 150) // Lit floor
	RgbPitfallTrap    = tcell.NewRGBColor(40, 30, 24)    // Dark pit
	RgbSpikes         = tcell.NewRGBColor(150, 150, 165) // Steel
	RgbLava           = tcell.NewRGBColor(230, 90, 20)   // Molten orange
	RgbSlide          = tcell.NewRGBColor(90, 140, 200)  // Slick blue
	RgbSlideTrap      = tcell.NewRGBColor(90, 140, 200)  // Same as slide
	RgbLadderUp       = tcell.NewRGBColor(160, 110, 60)  // Wood
	RgbLadderDown     = tcell.NewRGBColor(120, 80, 40)   // Dark wood

	RgbRoomWall       = tcell.NewRGBColor(60, 52, 44)    // Masonry
	RgbDoor           = tcell.NewRGBColor(140, 90, 40)   // Oak
	RgbHiddenDoor     = tcell.NewRGBColor(100, 80, 120)  // Faint violet
	RgbReinforcedDoor = tcell.NewRGBColor(200, 170, 60)  // Iron-bound brass
	RgbWindow         = tcell.NewRGBColor(150, 200, 230) // Glass
	RgbEmbrasure      = tcell.NewRGBColor(190, 40, 40)   // Red slit
)

// Palette maps every tile and edge type to a color, plus an optional glyph
// drawn over some tile types
type Palette struct {
	Tiles map[generation.TileType]color.RGBA
	Edges map[generation.EdgeType]color.RGBA
	Text  map[generation.TileType]string

	CellSize  int     // pixels per tile
	EdgeWidth int     // pixels per edge bar
	Subtle    float64 // how far hidden doors fade into their tile, 0..1
}

// DefaultPalette returns the built-in colors
func DefaultPalette() *Palette {
	return &Palette{
		Tiles: map[generation.TileType]color.RGBA{
			generation.TileWall:           toRGBA(RgbWall),
			generation.TileCorridor:       toRGBA(RgbCorridor),
			generation.TileSecretCorridor: toRGBA(RgbSecretCorridor),
			generation.TileRoom:           toRGBA(RgbRoom),
			generation.TileRoomOrigin:     toRGBA(RgbRoomOrigin),
			generation.TilePitfallTrap:    toRGBA(RgbPitfallTrap),
			generation.TileSpikes:         toRGBA(RgbSpikes),
			generation.TileLava:           toRGBA(RgbLava),
			generation.TileSlide:          toRGBA(RgbSlide),
			generation.TileSlideTrap:      toRGBA(RgbSlideTrap),
			generation.TileLadderUp:       toRGBA(RgbLadderUp),
			generation.TileLadderDown:     toRGBA(RgbLadderDown),
		},
		Edges: map[generation.EdgeType]color.RGBA{
			generation.EdgeRoomWall:       toRGBA(RgbRoomWall),
			generation.EdgeDoor:           toRGBA(RgbDoor),
			generation.EdgeHiddenDoor:     toRGBA(RgbHiddenDoor),
			generation.EdgeReinforcedDoor: toRGBA(RgbReinforcedDoor),
			generation.EdgeWindow:         toRGBA(RgbWindow),
			generation.EdgeEmbrasure:      toRGBA(RgbEmbrasure),
		},
		Text: map[generation.TileType]string{
			generation.TilePitfallTrap: "^",
			generation.TileSpikes:      "*",
			generation.TileSlide:       "~",
			generation.TileSlideTrap:   "~",
			generation.TileLadderUp:    "<",
			generation.TileLadderDown:  ">",
		},
		CellSize:  16,
		EdgeWidth: 2,
		Subtle:    0.5,
	}
}

// Validate checks the palette covers every tile and edge type
func (p *Palette) Validate() error {
	var missing []string
	for _, t := range generation.AllTileTypes() {
		if _, ok := p.Tiles[t]; !ok {
			missing = append(missing, "tile "+t.String())
		}
	}
	for _, e := range generation.AllEdgeTypes() {
		if _, ok := p.Edges[e]; !ok {
			missing = append(missing, "edge "+e.String())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompletePalette, strings.Join(missing, ", "))
	}
	if p.CellSize < 1 || p.EdgeWidth < 0 || p.EdgeWidth*2 > p.CellSize {
		return fmt.Errorf("cell size %d with edge width %d", p.CellSize, p.EdgeWidth)
	}
	return nil
}

// Override replaces colors and glyphs by type name. Colors are anything
// tcell understands: W3C names or #rrggbb.
func (p *Palette) Override(tiles, edges, text map[string]string) error {
	for name, value := range tiles {
		t, err := generation.ParseTileType(name)
		if err != nil {
			return err
		}
		c, err := ParseColor(value)
		if err != nil {
			return fmt.Errorf("tile %s: %w", name, err)
		}
		p.Tiles[t] = c
	}
	for name, value := range edges {
		e, err := generation.ParseEdgeType(name)
		if err != nil {
			return err
		}
		c, err := ParseColor(value)
		if err != nil {
			return fmt.Errorf("edge %s: %w", name, err)
		}
		p.Edges[e] = c
	}
	for name, glyph := range text {
		t, err := generation.ParseTileType(name)
		if err != nil {
			return err
		}
		if glyph == "" {
			delete(p.Text, t)
			continue
		}
		p.Text[t] = glyph
	}
	return nil
}

// ParseColor resolves a color name or hex string
func ParseColor(s string) (color.RGBA, error) {
	c := tcell.GetColor(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return color.RGBA{}, fmt.Errorf("unknown color %q", s)
	}
	return toRGBA(c), nil
}

func toRGBA(c tcell.Color) color.RGBA {
	r, g, b := c.RGB()
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}
