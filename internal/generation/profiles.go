package generation

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every configuration validation failure
var ErrInvalidConfig = errors.New("invalid generation config")

// ProfileType names a generation preset
type ProfileType string

const (
	ProfileCatacombs ProfileType = "catacombs"
	ProfileFortress  ProfileType = "fortress"
	ProfileWarren    ProfileType = "warren"
)

// Profiles lists every preset in a stable order
var Profiles = []ProfileType{ProfileCatacombs, ProfileFortress, ProfileWarren}

// RoomClass is one weighted room size option
type RoomClass struct {
	MaxSize   int     `json:"max_size"`
	MinRadius float64 `json:"min_radius"`
	MaxRadius float64 `json:"max_radius"`
	Weight    float64 `json:"weight"`
}

// Config holds every generation constant of one run
type Config struct {
	Profile ProfileType `json:"profile"`

	// Published map size and lattice
	Width        int `json:"width"`
	Height       int `json:"height"`
	WallStep     int `json:"wall_step"`
	CorridorStep int `json:"corridor_step"`

	// Rooms
	RoomCount   int         `json:"room_count"`
	RoomClasses []RoomClass `json:"room_classes"`
	RoomSpacing float64     `json:"room_spacing"` // minimum distance between origins
	WindowRate  float64     `json:"window_rate"`

	// Secondary content
	TrapPercent   int `json:"trap_percent"`
	LadderCount   int `json:"ladder_count"`
	EntranceCount int `json:"entrance_count"`
	SpikePercent  int `json:"spike_percent"`
	LavaPools     int `json:"lava_pools"`
	LavaPoolSize  int `json:"lava_pool_size"`
}

// Maze returns the lattice configuration for this run
func (c Config) Maze() MazeConfig {
	return MazeConfig{
		Width:        c.Width,
		Height:       c.Height,
		WallStep:     c.WallStep,
		CorridorStep: c.CorridorStep,
	}
}

// Validate rejects configurations the pipeline cannot run
func (c Config) Validate() error {
	if err := c.Maze().Validate(); err != nil {
		return err
	}
	if c.Width < c.WallStep+c.CorridorStep || c.Height < c.WallStep+c.CorridorStep {
		return fmt.Errorf("%w: map %dx%d smaller than one lattice cell (%d)",
			ErrInvalidConfig, c.Width, c.Height, c.WallStep+c.CorridorStep)
	}
	if c.RoomCount < 0 || c.LadderCount < 0 || c.EntranceCount < 0 || c.LavaPools < 0 {
		return fmt.Errorf("%w: counts must not be negative", ErrInvalidConfig)
	}
	if c.TrapPercent < 0 || c.TrapPercent > 100 || c.SpikePercent < 0 || c.SpikePercent > 100 {
		return fmt.Errorf("%w: percentages must be within 0..100", ErrInvalidConfig)
	}
	if c.WindowRate < 0 || c.WindowRate > 1 {
		return fmt.Errorf("%w: window rate %.2f outside 0..1", ErrInvalidConfig, c.WindowRate)
	}
	for i, rc := range c.RoomClasses {
		if rc.MaxSize < 1 || rc.MinRadius < 0 || rc.MaxRadius < rc.MinRadius {
			return fmt.Errorf("%w: room class %d", ErrInvalidConfig, i)
		}
	}
	return nil
}

// GetProfile returns the configuration preset for a profile
func GetProfile(p ProfileType) Config {
	switch p {
	case ProfileCatacombs:
		return Config{
			Profile:      ProfileCatacombs,
			Width:        64,
			Height:       48,
			WallStep:     4,
			CorridorStep: 2,
			RoomCount:    6,
			RoomClasses: []RoomClass{
				{MaxSize: 30, MinRadius: 3, MaxRadius: 4, Weight: 3},
				{MaxSize: 60, MinRadius: 4, MaxRadius: 6, Weight: 2},
				{MaxSize: 110, MinRadius: 6, MaxRadius: 8, Weight: 1},
			},
			RoomSpacing:   12,
			WindowRate:    0.05,
			TrapPercent:   4,
			LadderCount:   2,
			EntranceCount: 1,
			SpikePercent:  2,
			LavaPools:     2,
			LavaPoolSize:  12,
		}

	case ProfileFortress:
		return Config{
			Profile:      ProfileFortress,
			Width:        80,
			Height:       60,
			WallStep:     6,
			CorridorStep: 2,
			RoomCount:    8,
			RoomClasses: []RoomClass{
				{MaxSize: 80, MinRadius: 5, MaxRadius: 7, Weight: 2},
				{MaxSize: 160, MinRadius: 7, MaxRadius: 10, Weight: 1},
			},
			RoomSpacing:   18,
			WindowRate:    0.2,
			TrapPercent:   2,
			LadderCount:   3,
			EntranceCount: 2,
			SpikePercent:  0,
			LavaPools:     1,
			LavaPoolSize:  20,
		}

	case ProfileWarren:
		return Config{
			Profile:      ProfileWarren,
			Width:        48,
			Height:       48,
			WallStep:     3,
			CorridorStep: 1,
			RoomCount:    10,
			RoomClasses: []RoomClass{
				{MaxSize: 12, MinRadius: 2, MaxRadius: 3, Weight: 4},
				{MaxSize: 25, MinRadius: 3, MaxRadius: 4, Weight: 1},
			},
			RoomSpacing:   8,
			WindowRate:    0,
			TrapPercent:   8,
			LadderCount:   4,
			EntranceCount: 3,
			SpikePercent:  5,
			LavaPools:     4,
			LavaPoolSize:  6,
		}

	default:
		return GetProfile(ProfileCatacombs)
	}
}
