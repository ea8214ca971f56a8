package generation

import "testing"

// trapGrid is a corridor row with one secret tile below its fourth tile
func trapGrid() *Grid {
	g := NewGrid(10, 8, TileWall)
	g.Rect(0, 5, 10, 1, TileCorridor)
	g.Set(Point{3, 6}, TileSecretCorridor)
	return g
}

func TestPlaceTraps_ZeroPercentIsNoop(t *testing.T) {
	g := trapGrid()
	before := g.Clone()
	if n := PlaceTraps(g, 0, NewRNG(1)); n != 0 {
		t.Errorf("expected no traps, got %d", n)
	}
	if !gridsEqual(before, g) {
		t.Error("expected the grid unchanged")
	}
}

func TestPlaceTraps_HundredPercentTakesAllEligible(t *testing.T) {
	g := trapGrid()
	if n := PlaceTraps(g, 100, NewRNG(1)); n != 9 {
		t.Errorf("expected 9 traps, got %d", n)
	}
	if g.At(Point{3, 5}) != TileCorridor {
		t.Error("expected the corridor beside the secret passage left alone")
	}
	if g.Count(TilePitfallTrap) != 9 || g.Count(TileCorridor) != 1 {
		t.Errorf("expected 9 traps and 1 corridor, got %d and %d", g.Count(TilePitfallTrap), g.Count(TileCorridor))
	}
}

func TestPlaceTraps_ClampsPercent(t *testing.T) {
	g := trapGrid()
	if n := PlaceTraps(g, 250, NewRNG(1)); n != 9 {
		t.Errorf("expected percent clamped to 100, got %d traps", n)
	}
}

func TestPlaceLadders(t *testing.T) {
	g := NewGrid(10, 10, TileWall)
	secret := Point{5, 5}
	g.Set(secret, TileSecretCorridor)

	if n := PlaceLadders(g, 2, NewRNG(4)); n != 2 {
		t.Fatalf("expected 2 ladders, got %d", n)
	}
	for _, p := range g.TilesOfType(TileLadderDown) {
		d := DirectionBetween(p, secret)
		if g.Edge(p, d) != EdgeHiddenDoor || g.Edge(secret, d.Opposite()) != EdgeHiddenDoor {
			t.Errorf("expected a hidden door between ladder %v and the passage", p)
		}
	}
}

func TestPlaceLadders_NeedsSolidRock(t *testing.T) {
	g := NewGrid(3, 3, TileCorridor)
	g.Set(Point{1, 1}, TileSecretCorridor)
	g.Set(Point{1, 0}, TileWall)

	if n := PlaceLadders(g, 5, NewRNG(1)); n != 0 {
		t.Errorf("expected no ladders outside solid rock, got %d", n)
	}
}

func TestPlaceEntrances(t *testing.T) {
	g := NewGrid(10, 5, TileWall)
	g.Rect(1, 2, 6, 1, TileCorridor)
	g.Set(Point{4, 1}, TileCorridor)

	if n := PlaceEntrances(g, 10, NewRNG(2)); n != 3 {
		t.Fatalf("expected 3 dead ends turned into ladders, got %d", n)
	}
	for _, p := range []Point{{1, 2}, {6, 2}, {4, 1}} {
		if g.At(p) != TileLadderUp {
			t.Errorf("expected ladder up at dead end %v", p)
		}
	}
}

func TestPlaceSlides(t *testing.T) {
	g := NewGrid(9, 9, TileWall)
	room := roomBlock(g, 0, 2, 2, 5, 5)

	if n := PlaceSlides(g, []*Room{room}, NewRNG(3)); n != 2 {
		t.Fatalf("expected a slide and a slide trap, got %d", n)
	}
	if g.Count(TileSlide) != 1 || g.Count(TileSlideTrap) != 1 {
		t.Fatalf("expected one of each, got %d slides and %d traps", g.Count(TileSlide), g.Count(TileSlideTrap))
	}

	corners := map[Point]bool{{2, 2}: true, {6, 2}: true, {2, 6}: true, {6, 6}: true}
	for _, p := range g.TilesOfType(TileSlide, TileSlideTrap) {
		if !corners[p] {
			t.Errorf("expected slides only in corners, got %v", p)
		}
	}
}

func TestPlaceSlides_KeepsClearOfEntrances(t *testing.T) {
	g := NewGrid(9, 9, TileWall)
	room := roomBlock(g, 0, 2, 2, 5, 5)
	for _, p := range []Point{{2, 2}, {6, 2}, {2, 6}, {6, 6}} {
		g.setEdgeSide(p, North, EdgeEmbrasure)
	}

	if n := PlaceSlides(g, []*Room{room}, NewRNG(3)); n != 0 {
		t.Errorf("expected no slides beside entrances, got %d", n)
	}
}

func TestDecorators_Names(t *testing.T) {
	decorators := []Decorator{
		TrapDecorator{}, LadderDecorator{}, EntranceDecorator{},
		SlideDecorator{}, SpikeDecorator{}, LavaDecorator{},
	}
	seen := make(map[string]bool)
	for _, d := range decorators {
		if d.Name() == "" || seen[d.Name()] {
			t.Errorf("expected a unique name, got %q", d.Name())
		}
		seen[d.Name()] = true
	}
}
