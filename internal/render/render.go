package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"dconn.dev/dungeon/internal/generation"
)

// glyphFace is the face tile text is drawn with
var glyphFace = basicfont.Face7x13

// Render rasterizes g: one CellSize square per tile, an EdgeWidth bar on
// every side carrying an edge, and the palette glyph on top.
func Render(g *generation.Grid, p *Palette) (*image.RGBA, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	cs := p.CellSize
	img := image.NewRGBA(image.Rect(0, 0, g.Width*cs, g.Height*cs))

	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			pt := generation.Point{X: x, Y: y}
			tile := g.At(pt)
			cell := image.Rect(x*cs, y*cs, (x+1)*cs, (y+1)*cs)
			fill(img, cell, p.Tiles[tile])

			for _, d := range generation.Directions {
				e := g.Edge(pt, d)
				if e == generation.EdgeNone {
					continue
				}
				c := p.Edges[e]
				if e == generation.EdgeHiddenDoor {
					c = blend(c, p.Tiles[tile], p.Subtle)
				}
				fill(img, edgeBar(cell, d, p.EdgeWidth), c)
			}

			if text, ok := p.Text[tile]; ok && cs >= glyphFace.Height {
				drawGlyph(img, cell, text, contrast(p.Tiles[tile]))
			}
		}
	}

	return img, nil
}

// EncodePNG writes img as a PNG
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// edgeBar is the strip of cell along side d
func edgeBar(cell image.Rectangle, d generation.Direction, width int) image.Rectangle {
	switch d {
	case generation.North:
		return image.Rect(cell.Min.X, cell.Min.Y, cell.Max.X, cell.Min.Y+width)
	case generation.East:
		return image.Rect(cell.Max.X-width, cell.Min.Y, cell.Max.X, cell.Max.Y)
	case generation.South:
		return image.Rect(cell.Min.X, cell.Max.Y-width, cell.Max.X, cell.Max.Y)
	default:
		return image.Rect(cell.Min.X, cell.Min.Y, cell.Min.X+width, cell.Max.Y)
	}
}

// drawGlyph centers text in cell
func drawGlyph(img *image.RGBA, cell image.Rectangle, text string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: glyphFace,
	}
	width := d.MeasureString(text).Ceil()
	x := cell.Min.X + (cell.Dx()-width)/2
	y := cell.Min.Y + (cell.Dy()+glyphFace.Ascent-glyphFace.Descent)/2
	d.Dot = fixed.P(x, y)
	d.DrawString(text)
}

// blend mixes a toward b by t in Lab space
func blend(a, b color.RGBA, t float64) color.RGBA {
	ca, _ := colorful.MakeColor(a)
	cb, _ := colorful.MakeColor(b)
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: bl, A: 0xff}
}

// contrast picks black or white text for a background
func contrast(bg color.RGBA) color.RGBA {
	c, _ := colorful.MakeColor(bg)
	if l, _, _ := c.Lab(); l > 0.55 {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
}
