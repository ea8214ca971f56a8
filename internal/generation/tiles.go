package generation

import "fmt"

// TileType is the semantic content of a single cell. The zero value is a
// wall, which also stands in for "nothing here".
type TileType uint8

const (
	TileWall TileType = iota
	TileCorridor
	TileSecretCorridor
	TileRoom
	TileRoomOrigin
	TilePitfallTrap
	TileSpikes
	TileLava
	TileSlide
	TileSlideTrap
	TileLadderUp
	TileLadderDown

	tileTypeCount
)

var tileNames = [tileTypeCount]string{
	TileWall:           "wall",
	TileCorridor:       "corridor",
	TileSecretCorridor: "secret-corridor",
	TileRoom:           "room",
	TileRoomOrigin:     "room-origin",
	TilePitfallTrap:    "pitfall-trap",
	TileSpikes:         "spikes",
	TileLava:           "lava",
	TileSlide:          "slide",
	TileSlideTrap:      "slide-trap",
	TileLadderUp:       "ladder-up",
	TileLadderDown:     "ladder-down",
}

// AllTileTypes returns every tile type in declaration order
func AllTileTypes() []TileType {
	types := make([]TileType, 0, tileTypeCount)
	for t := TileType(0); t < tileTypeCount; t++ {
		types = append(types, t)
	}
	return types
}

func (t TileType) String() string {
	if t >= tileTypeCount {
		return fmt.Sprintf("tile(%d)", uint8(t))
	}
	return tileNames[t]
}

// ParseTileType is the inverse of TileType.String
func ParseTileType(s string) (TileType, error) {
	for i, name := range tileNames {
		if name == s {
			return TileType(i), nil
		}
	}
	return TileWall, fmt.Errorf("unknown tile type %q", s)
}

// EdgeType describes the boundary on one side of a cell. EdgeNone is the
// zero value and means the side is open.
type EdgeType uint8

const (
	EdgeNone EdgeType = iota
	EdgeRoomWall
	EdgeDoor
	EdgeHiddenDoor
	EdgeReinforcedDoor
	EdgeWindow
	EdgeEmbrasure

	edgeTypeCount
)

var edgeNames = [edgeTypeCount]string{
	EdgeNone:           "none",
	EdgeRoomWall:       "room-wall",
	EdgeDoor:           "door",
	EdgeHiddenDoor:     "hidden-door",
	EdgeReinforcedDoor: "reinforced-door",
	EdgeWindow:         "window",
	EdgeEmbrasure:      "embrasure",
}

// AllEdgeTypes returns every real edge type (EdgeNone excluded)
func AllEdgeTypes() []EdgeType {
	types := make([]EdgeType, 0, edgeTypeCount-1)
	for e := EdgeRoomWall; e < edgeTypeCount; e++ {
		types = append(types, e)
	}
	return types
}

func (e EdgeType) String() string {
	if e >= edgeTypeCount {
		return fmt.Sprintf("edge(%d)", uint8(e))
	}
	return edgeNames[e]
}

// ParseEdgeType is the inverse of EdgeType.String
func ParseEdgeType(s string) (EdgeType, error) {
	for i, name := range edgeNames {
		if name == s {
			return EdgeType(i), nil
		}
	}
	return EdgeNone, fmt.Errorf("unknown edge type %q", s)
}

// Edges holds one edge slot per Direction
type Edges [4]EdgeType

// Empty reports whether no side carries an edge
func (e Edges) Empty() bool {
	return e == Edges{}
}

// TileSet is a small bitset over TileType
type TileSet uint16

// NewTileSet builds a set from the given types
func NewTileSet(types ...TileType) TileSet {
	var s TileSet
	for _, t := range types {
		s |= 1 << t
	}
	return s
}

// Has reports whether t is in the set
func (s TileSet) Has(t TileType) bool {
	return s&(1<<t) != 0
}

// Commonly used tile sets.
var (
	// Traversable is what the connectivity analyzer clusters.
	Traversable = NewTileSet(TileCorridor, TileRoom, TileRoomOrigin)
	// RoomTiles are the cells that belong to a grown room.
	RoomTiles = NewTileSet(TileRoom, TileRoomOrigin)
	// Growable is what room growth may convert.
	Growable = NewTileSet(TileWall, TileCorridor)
	// Walkable is everything a visitor can stand on in the finished map,
	// secret corridors and hazards included.
	Walkable = NewTileSet(TileCorridor, TileRoom, TileRoomOrigin, TileSecretCorridor,
		TilePitfallTrap, TileSpikes, TileSlide, TileSlideTrap, TileLadderUp, TileLadderDown)
)
