package generation

import (
	"encoding/json"
	"testing"

	"dconn.dev/dungeon/internal/models"
)

func TestDocument_RoundTrip(t *testing.T) {
	res := generate(t, ProfileCatacombs, 21)
	doc := res.Document()

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded models.MapDocument
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	g, err := FromDocument(&decoded)
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	if !gridsEqual(res.Grid, g) {
		t.Error("expected the rebuilt grid to match")
	}

	if decoded.Seed != 21 || decoded.Profile != "catacombs" {
		t.Errorf("expected seed 21 and catacombs, got %d and %q", decoded.Seed, decoded.Profile)
	}
	if len(decoded.Rooms) != len(res.Rooms) {
		t.Errorf("expected %d rooms, got %d", len(res.Rooms), len(decoded.Rooms))
	}
	if decoded.Stats == nil || decoded.Stats.Tiles["wall"] != res.Grid.Count(TileWall) {
		t.Error("expected tile stats in the document")
	}
}

func TestToDocument_Layout(t *testing.T) {
	g := NewGrid(3, 2, TileWall)
	g.Set(Point{2, 1}, TileLava)
	g.SetEdge(Point{0, 0}, East, EdgeDoor)

	doc := ToDocument(g, DocumentMeta{Seed: 4, Profile: "warren"})
	if doc.Tiles[1][2] != "lava" || doc.Tiles[0][0] != "wall" {
		t.Errorf("unexpected tiles %v", doc.Tiles)
	}
	if len(doc.Edges) != 2 {
		t.Fatalf("expected both sides of the door listed, got %v", doc.Edges)
	}
	want := models.EdgeEntry{X: 0, Y: 0, Dir: "east", Type: "door"}
	if doc.Edges[0] != want {
		t.Errorf("expected %+v, got %+v", want, doc.Edges[0])
	}
	if doc.Stats != nil {
		t.Error("expected no stats without meta stats")
	}
}

func TestFromDocument_Errors(t *testing.T) {
	base := func() *models.MapDocument {
		return &models.MapDocument{
			Width:  2,
			Height: 1,
			Tiles:  [][]string{{"wall", "corridor"}},
			Edges:  []models.EdgeEntry{{X: 0, Y: 0, Dir: "east", Type: "window"}},
		}
	}

	if _, err := FromDocument(base()); err != nil {
		t.Fatalf("expected the base document to decode: %v", err)
	}

	cases := map[string]func(*models.MapDocument){
		"tile name":   func(d *models.MapDocument) { d.Tiles[0][1] = "moat" },
		"edge name":   func(d *models.MapDocument) { d.Edges[0].Type = "portcullis" },
		"direction":   func(d *models.MapDocument) { d.Edges[0].Dir = "up" },
		"row count":   func(d *models.MapDocument) { d.Height = 2 },
		"row width":   func(d *models.MapDocument) { d.Tiles[0] = []string{"wall"} },
		"edge bounds": func(d *models.MapDocument) { d.Edges[0].X = 5 },
		"size":        func(d *models.MapDocument) { d.Width = 0 },
	}
	for name, mutate := range cases {
		doc := base()
		mutate(doc)
		if _, err := FromDocument(doc); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
