package generation

var (
	secretTiles  = NewTileSet(TileSecretCorridor)
	secretBorder = NewTileSet(TileCorridor, TileRoom, TileRoomOrigin)
)

// CarveSecretPassages runs a one tile wide secret corridor from every room
// origin toward each lattice neighbor that is still solid rock. Where a
// passage meets a corridor or room across its thin side, that boundary
// becomes a hidden door. It returns the number of passages carved.
func CarveSecretPassages(g *Grid, wallStep int) int {
	carved := 0
	for _, origin := range g.TilesOfType(TileRoomOrigin) {
		for _, d := range Directions {
			target := origin.Step(d, wallStep)
			if !g.InBounds(target) || g.At(target) != TileWall {
				continue
			}

			strip := make([]Point, 0, wallStep)
			for k := 1; k <= wallStep; k++ {
				p := origin.Step(d, k)
				if g.At(p) == TileWall {
					g.Set(p, TileSecretCorridor)
					strip = append(strip, p)
				}
			}

			dirs := verticalDirs
			if d.Horizontal() {
				dirs = horizontalDirs
			}
			ClassifyEdges(g, EdgeRule{
				From:  secretTiles,
				To:    secretBorder,
				Inner: EdgeHiddenDoor,
				Outer: EdgeHiddenDoor,
				Dirs:  dirs,
			}, strip)
			carved++
		}
	}
	return carved
}
