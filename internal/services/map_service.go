package services

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"

	"dconn.dev/dungeon/internal/config"
	"dconn.dev/dungeon/internal/generation"
	"dconn.dev/dungeon/internal/models"
	"dconn.dev/dungeon/internal/render"
)

// ErrUnknownProfile is returned for profile names neither built in nor configured
var ErrUnknownProfile = errors.New("unknown profile")

// MapService generates maps on demand and caches the results
type MapService struct {
	cfg     *config.Config
	palette *render.Palette
	logger  *log.Logger

	mu    sync.Mutex
	maps  map[string]*generation.Result // cached results
	order []string                      // cache keys, oldest first
}

// NewMapService creates a new MapService
func NewMapService(cfg *config.Config, logger *log.Logger) (*MapService, error) {
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &MapService{
		cfg:     cfg,
		palette: palette,
		logger:  logger,
		maps:    make(map[string]*generation.Result),
	}, nil
}

// resolve turns a requested profile name into a validated generation config
func (s *MapService) resolve(profile string) (generation.Config, error) {
	if profile == "" {
		profile = string(s.cfg.Profile)
	}
	if !slices.Contains(s.cfg.ProfileNames(), profile) {
		return generation.Config{}, fmt.Errorf("%w: %s", ErrUnknownProfile, profile)
	}
	return s.cfg.Generation(profile)
}

// Generate returns the map for a seed and profile, generating it on a miss
func (s *MapService) Generate(seed uint64, profile string) (*generation.Result, error) {
	gc, err := s.resolve(profile)
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s:%d", gc.Profile, seed)

	// Check cache
	s.mu.Lock()
	if res, cached := s.maps[key]; cached {
		s.mu.Unlock()
		return res, nil
	}
	s.mu.Unlock()

	gen := generation.NewGenerator(gc, seed)
	res, err := gen.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s: %w", key, err)
	}
	s.logger.Printf("generated %s: %d rooms, %d links", key, res.Stats.Rooms, res.Stats.Links)

	// Cache it
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, cached := s.maps[key]; !cached {
		s.maps[key] = res
		s.order = append(s.order, key)
		for len(s.order) > max(s.cfg.CacheSize, 1) {
			delete(s.maps, s.order[0])
			s.order = s.order[1:]
		}
	}
	return s.maps[key], nil
}

// Document returns the serialized map
func (s *MapService) Document(seed uint64, profile string) (*models.MapDocument, error) {
	res, err := s.Generate(seed, profile)
	if err != nil {
		return nil, err
	}
	return res.Document(), nil
}

// PNG returns the rendered map as PNG bytes
func (s *MapService) PNG(seed uint64, profile string) ([]byte, error) {
	res, err := s.Generate(seed, profile)
	if err != nil {
		return nil, err
	}
	img, err := render.Render(res.Grid, s.palette)
	if err != nil {
		return nil, fmt.Errorf("failed to render: %w", err)
	}

	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Stream runs a fresh generation and hands every pipeline stage to send.
// Streamed runs bypass the cache. After send fails the remaining stages are
// dropped and the send error is returned.
func (s *MapService) Stream(seed uint64, profile string, send func(models.StageFrame) error) error {
	gc, err := s.resolve(profile)
	if err != nil {
		return err
	}

	var sendErr error
	gen := generation.NewGenerator(gc, seed)
	gen.OnStage = func(st generation.Stage) {
		if sendErr != nil {
			return
		}
		sendErr = send(models.StageFrame{
			Index: st.Index,
			Name:  st.Name,
			Tiles: generation.TileNames(st.Grid),
		})
	}

	if _, err := gen.Generate(); err != nil {
		return fmt.Errorf("failed to generate %s:%d: %w", gc.Profile, seed, err)
	}
	return sendErr
}

// Profiles lists every profile that can be requested
func (s *MapService) Profiles() []models.ProfileInfo {
	var out []models.ProfileInfo
	for _, name := range s.cfg.ProfileNames() {
		gc, err := s.cfg.Generation(name)
		if err != nil {
			s.logger.Printf("skipping profile %s: %v", name, err)
			continue
		}
		out = append(out, models.ProfileInfo{
			Name:   name,
			Width:  gc.Width,
			Height: gc.Height,
			Rooms:  gc.RoomCount,
		})
	}
	return out
}
