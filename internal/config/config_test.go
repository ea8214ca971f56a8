package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"dconn.dev/dungeon/internal/generation"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadFile_MissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.ServerAddr != ":8080" || cfg.Profile != generation.ProfileCatacombs {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFile_BadJSON(t *testing.T) {
	if _, err := LoadFile(writeConfig(t, "{")); err == nil {
		t.Error("expected a parse error")
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("DUNGEON_CONFIG", writeConfig(t, `{"profile": "fortress"}`))
	t.Setenv("SERVER_ADDR", ":9999")
	t.Setenv("DUNGEON_PROFILE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerAddr != ":9999" {
		t.Errorf("expected SERVER_ADDR applied, got %s", cfg.ServerAddr)
	}
	if cfg.Profile != generation.ProfileFortress {
		t.Errorf("expected fortress from the file, got %s", cfg.Profile)
	}

	t.Setenv("DUNGEON_PROFILE", "warren")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Profile != generation.ProfileWarren {
		t.Errorf("expected DUNGEON_PROFILE to win, got %s", cfg.Profile)
	}
}

func TestGeneration_Overrides(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `{
		"profiles": {
			"warren": {"room_count": 3, "trap_percent": 0},
			"pits": {"width": 40, "height": 30, "trap_percent": 20}
		}
	}`))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	warren, err := cfg.Generation("warren")
	if err != nil {
		t.Fatalf("Generation: %v", err)
	}
	base := generation.GetProfile(generation.ProfileWarren)
	if warren.RoomCount != 3 || warren.TrapPercent != 0 || warren.WallStep != base.WallStep {
		t.Errorf("expected partial override of warren, got %+v", warren)
	}

	pits, err := cfg.Generation("pits")
	if err != nil {
		t.Fatalf("Generation: %v", err)
	}
	if pits.Profile != "pits" || pits.Width != 40 || pits.TrapPercent != 20 {
		t.Errorf("expected custom profile on catacombs defaults, got %+v", pits)
	}

	names := cfg.ProfileNames()
	if len(names) != 4 || names[3] != "pits" {
		t.Errorf("expected built-ins plus pits, got %v", names)
	}

	def, err := cfg.Generation("")
	if err != nil || def.Profile != generation.ProfileCatacombs {
		t.Errorf("expected the default profile, got %s, %v", def.Profile, err)
	}
}

func TestGeneration_InvalidOverride(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `{"profiles": {"catacombs": {"trap_percent": 400}}}`))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if _, err := cfg.Generation("catacombs"); !errors.Is(err, generation.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestPalette(t *testing.T) {
	cfg, err := LoadFile(writeConfig(t, `{"render": {"cell_size": 8, "tiles": {"lava": "orange"}}}`))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	p, err := cfg.Palette()
	if err != nil {
		t.Fatalf("Palette: %v", err)
	}
	if p.CellSize != 8 {
		t.Errorf("expected cell size 8, got %d", p.CellSize)
	}

	cfg.Render.Edges = map[string]string{"door": "chartreuse-ish"}
	if _, err := cfg.Palette(); err == nil {
		t.Error("expected an error for an unknown color")
	}
}
