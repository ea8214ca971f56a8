package models

// MapDocument is the serialized form of a generated map. Tiles are row-major
// (Tiles[y][x]) kebab-case tile names; only non-empty edge sides are listed.
type MapDocument struct {
	Width   int         `json:"width"`
	Height  int         `json:"height"`
	Seed    uint64      `json:"seed"`
	Profile string      `json:"profile"`
	Tiles   [][]string  `json:"tiles"`
	Edges   []EdgeEntry `json:"edges"`
	Rooms   []RoomEntry `json:"rooms"`
	Stats   *MapStats   `json:"stats,omitempty"`
}

// EdgeEntry is one side of one cell
type EdgeEntry struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Dir  string `json:"dir"`
	Type string `json:"type"`
}

// RoomEntry describes a grown room
type RoomEntry struct {
	ID     int      `json:"id"`
	Origin Position `json:"origin"`
	Bounds Bounds   `json:"bounds"`
	Size   int      `json:"size"`
	Doors  []string `json:"doors,omitempty"` // directions carrying a reinforced door
}

// MapStats are the tile and edge totals of a map
type MapStats struct {
	Tiles       map[string]int `json:"tiles"`
	Edges       map[string]int `json:"edges"`
	Links       int            `json:"links"`
	Pruned      int            `json:"pruned"`
	Decorations map[string]int `json:"decorations,omitempty"`
}

// Position is a tile coordinate
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Bounds defines a rectangular area
type Bounds struct {
	MinX int `json:"min_x"`
	MaxX int `json:"max_x"`
	MinY int `json:"min_y"`
	MaxY int `json:"max_y"`
}

// ProfileInfo summarizes a generation profile for listings
type ProfileInfo struct {
	Name   string `json:"name"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Rooms  int    `json:"rooms"`
}

// StageFrame is one pipeline snapshot sent over the stage stream
type StageFrame struct {
	Index int        `json:"index"`
	Name  string     `json:"name"`
	Tiles [][]string `json:"tiles"`
}
