package generation

import (
	"errors"
	"testing"
)

func generate(t *testing.T, profile ProfileType, seed uint64) *Result {
	t.Helper()
	res, err := NewGenerator(GetProfile(profile), seed).Generate()
	if err != nil {
		t.Fatalf("%s/%d: Generate: %v", profile, seed, err)
	}
	return res
}

func TestGenerator_EveryProfile(t *testing.T) {
	for _, profile := range Profiles {
		cfg := GetProfile(profile)
		for seed := uint64(1); seed <= 5; seed++ {
			res := generate(t, profile, seed)
			g := res.Grid

			if g.Width != cfg.Width || g.Height != cfg.Height {
				t.Errorf("%s/%d: expected %dx%d, got %dx%d", profile, seed, cfg.Width, cfg.Height, g.Width, g.Height)
			}
			if n := len(FindClustersOf(g, Walkable)); n != 1 {
				t.Errorf("%s/%d: expected one walkable region, got %d", profile, seed, n)
			}
			if len(res.Rooms) == 0 || len(res.Rooms) > cfg.RoomCount {
				t.Errorf("%s/%d: expected 1..%d rooms, got %d", profile, seed, cfg.RoomCount, len(res.Rooms))
			}
			if got := g.Count(TileRoomOrigin); got != len(res.Rooms) {
				t.Errorf("%s/%d: expected one origin per room, got %d for %d rooms", profile, seed, got, len(res.Rooms))
			}
			for _, r := range res.Rooms {
				if g.At(r.Origin) != TileRoomOrigin {
					t.Errorf("%s/%d: room %d lost its origin", profile, seed, r.ID)
				}
			}
			if !res.Links.IsConnected(clusterID(0)) {
				t.Errorf("%s/%d: repair links do not join every cluster", profile, seed)
			}
		}
	}
}

func TestGenerator_KeepsBorderSolid(t *testing.T) {
	res := generate(t, ProfileCatacombs, 17)
	g := res.Grid
	for x := 0; x < g.Width; x++ {
		for _, y := range []int{0, g.Height - 1} {
			if g.At(Point{x, y}) == TileCorridor {
				t.Errorf("corridor on the border at (%d,%d)", x, y)
			}
		}
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a := generate(t, ProfileCatacombs, 99)
	b := generate(t, ProfileCatacombs, 99)
	if !gridsEqual(a.Grid, b.Grid) {
		t.Fatal("expected identical maps for the same seed")
	}
	for name, n := range a.Stats.Tiles {
		if b.Stats.Tiles[name] != n {
			t.Errorf("stat %s: %d vs %d", name, n, b.Stats.Tiles[name])
		}
	}

	c := generate(t, ProfileCatacombs, 100)
	if gridsEqual(a.Grid, c.Grid) {
		t.Error("expected different maps for different seeds")
	}
}

func TestGenerator_Stats(t *testing.T) {
	res := generate(t, ProfileFortress, 3)
	total := 0
	for _, n := range res.Stats.Tiles {
		total += n
	}
	if total != res.Grid.Width*res.Grid.Height {
		t.Errorf("expected tile stats to cover %d cells, got %d", res.Grid.Width*res.Grid.Height, total)
	}
	if res.Stats.Rooms != len(res.Rooms) {
		t.Errorf("expected %d rooms in stats, got %d", len(res.Rooms), res.Stats.Rooms)
	}
	if _, ok := res.Stats.Decorations["traps"]; !ok {
		t.Error("expected a trap count in the decoration stats")
	}
	if res.Seed != 3 || res.Config.Profile != ProfileFortress {
		t.Errorf("expected seed 3 and fortress, got %d and %s", res.Seed, res.Config.Profile)
	}
}

func TestGenerator_OnStage(t *testing.T) {
	gen := NewGenerator(GetProfile(ProfileWarren), 5)
	var stages []Stage
	gen.OnStage = func(s Stage) { stages = append(stages, s) }

	res, err := gen.Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if len(stages) == 0 || stages[0].Name != "maze" {
		t.Fatalf("expected the maze stage first, got %v", stages)
	}
	names := make(map[string]bool)
	for i, s := range stages {
		names[s.Name] = true
		if s.Index != i+1 {
			t.Errorf("stage %s: expected index %d, got %d", s.Name, i+1, s.Index)
		}
	}
	for _, want := range []string{"rooms", "repair", "crop", "secrets", "lava"} {
		if !names[want] {
			t.Errorf("expected a %q stage", want)
		}
	}

	last := stages[len(stages)-1]
	if !gridsEqual(last.Grid, res.Grid) {
		t.Error("expected the last snapshot to match the result")
	}
	if last.Grid == res.Grid {
		t.Error("expected snapshots to be copies")
	}
}

func TestGenerator_InvalidConfig(t *testing.T) {
	cases := map[string]func(*Config){
		"trap percent":  func(c *Config) { c.TrapPercent = 101 },
		"steps":         func(c *Config) { c.CorridorStep = c.WallStep },
		"too small":     func(c *Config) { c.Width = 3 },
		"negative":      func(c *Config) { c.LadderCount = -1 },
		"window rate":   func(c *Config) { c.WindowRate = 2 },
		"room class":    func(c *Config) { c.RoomClasses = []RoomClass{{MaxSize: 0}} },
		"radius order":  func(c *Config) { c.RoomClasses = []RoomClass{{MaxSize: 5, MinRadius: 4, MaxRadius: 2}} },
		"zero height":   func(c *Config) { c.Height = 0 },
		"spike percent": func(c *Config) { c.SpikePercent = -5 },
	}
	for name, mutate := range cases {
		cfg := GetProfile(ProfileCatacombs)
		mutate(&cfg)
		if _, err := NewGenerator(cfg, 1).Generate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
}

func TestGenerator_NoRooms(t *testing.T) {
	cfg := GetProfile(ProfileCatacombs)
	cfg.RoomCount = 0
	res, err := NewGenerator(cfg, 8).Generate()
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(res.Rooms) != 0 {
		t.Errorf("expected no rooms, got %d", len(res.Rooms))
	}
	if res.Grid.Count(TileCorridor, TilePitfallTrap, TileLadderUp) == 0 {
		t.Error("expected corridors to survive without rooms")
	}
}

func TestGetProfile_FallsBack(t *testing.T) {
	if got := GetProfile("swamp").Profile; got != ProfileCatacombs {
		t.Errorf("expected catacombs fallback, got %s", got)
	}
	for _, p := range Profiles {
		if err := GetProfile(p).Validate(); err != nil {
			t.Errorf("profile %s: %v", p, err)
		}
	}
}
