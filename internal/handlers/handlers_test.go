package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"

	"dconn.dev/dungeon/internal/config"
	"dconn.dev/dungeon/internal/models"
	"dconn.dev/dungeon/internal/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	cfg.Profiles["broken"] = json.RawMessage(`{"trap_percent": 400}`)

	ms, err := services.NewMapService(cfg, log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("NewMapService: %v", err)
	}
	srv := httptest.NewServer(NewRouter(ms))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv.URL+"/api/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body)
	}
}

func TestListProfiles(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv.URL+"/api/profiles")
	var profiles []models.ProfileInfo
	if err := json.NewDecoder(resp.Body).Decode(&profiles); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The broken profile fails validation and is left out
	if len(profiles) != 3 {
		t.Fatalf("expected 3 profiles, got %+v", profiles)
	}
	if profiles[0].Name != "catacombs" || profiles[0].Width != 64 {
		t.Errorf("unexpected first profile %+v", profiles[0])
	}
}

func TestGetMap(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv.URL+"/api/maps/42?profile=warren")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}

	var doc models.MapDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if doc.Seed != 42 || doc.Profile != "warren" || doc.Width != 48 || len(doc.Tiles) != 48 {
		t.Errorf("unexpected document header: seed %d, %s, %dx%d", doc.Seed, doc.Profile, doc.Width, doc.Height)
	}
	if doc.Stats == nil {
		t.Error("expected stats in the document")
	}
}

func TestGetMapErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path string
		want int
	}{
		{"/api/maps/abc", http.StatusBadRequest},
		{"/api/maps/-1", http.StatusBadRequest},
		{"/api/maps/1?profile=volcano", http.StatusNotFound},
		{"/api/maps/1?profile=broken", http.StatusBadRequest},
		{"/api/maps/abc/image", http.StatusBadRequest},
		{"/api/maps/1/image?profile=volcano", http.StatusNotFound},
	}

	for _, tt := range tests {
		resp := get(t, srv.URL+tt.path)
		if resp.StatusCode != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.path, tt.want, resp.StatusCode)
		}
		var body map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body["error"] == "" {
			t.Errorf("%s: expected an error body, got %v (%v)", tt.path, body, err)
		}
	}
}

func TestGetImage(t *testing.T) {
	srv := newTestServer(t)

	resp := get(t, srv.URL+"/api/maps/9/image?profile=warren")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("expected image/png, got %s", ct)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), "\x89PNG") {
		t.Error("expected PNG signature")
	}
}

func TestStreamStages(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/maps/3/stream?profile=warren"
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.CloseNow()
	conn.SetReadLimit(1 << 20)

	var frames []models.StageFrame
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure {
				t.Fatalf("expected a normal close, got %v", err)
			}
			break
		}
		var f models.StageFrame
		if err := json.Unmarshal(data, &f); err != nil {
			t.Fatalf("decode frame: %v", err)
		}
		frames = append(frames, f)
	}

	if len(frames) == 0 {
		t.Fatal("expected stage frames")
	}
	if frames[0].Name != "maze" || frames[len(frames)-1].Name != "lava" {
		t.Errorf("expected maze..lava, got %s..%s", frames[0].Name, frames[len(frames)-1].Name)
	}
	if got := len(frames[len(frames)-1].Tiles); got != 48 {
		t.Errorf("expected 48 rows in the final frame, got %d", got)
	}
}

func TestStreamUnknownProfile(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/maps/3/stream?profile=volcano"
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer conn.CloseNow()

	_, _, err = conn.Read(ctx)
	if websocket.CloseStatus(err) != websocket.StatusPolicyViolation {
		t.Errorf("expected a policy violation close, got %v", err)
	}
}
