package generation

import (
	"fmt"
	"io"
	"log"
)

// junctionBranches is how many corridor branches make a lattice point a
// junction worth putting a room on
const junctionBranches = 3

// Stage is a snapshot of the grid after one pipeline step
type Stage struct {
	Index int
	Name  string
	Grid  *Grid
}

// Stats summarizes a finished map
type Stats struct {
	Tiles       map[string]int `json:"tiles"`
	Edges       map[string]int `json:"edges"` // cell sides, so a shared boundary counts twice
	Rooms       int            `json:"rooms"`
	Links       int            `json:"links"`
	LinkLength  int            `json:"link_length"`
	Pruned      int            `json:"pruned"`
	Secrets     int            `json:"secrets"`
	Windows     int            `json:"windows"`
	Decorations map[string]int `json:"decorations"`
}

// Result is everything a generation run produces
type Result struct {
	Grid   *Grid
	Rooms  []*Room
	Links  *LinkGraph
	Stats  Stats
	Seed   uint64
	Config Config
}

// Generator runs the whole pipeline for one map. It owns its grid and
// random source, so one Generator must not be shared between goroutines.
type Generator struct {
	config Config
	seed   uint64
	rng    *RNG

	grid  *Grid
	rooms []*Room
	links *LinkGraph
	stats Stats
	stage int

	// OnStage, when set, receives a copy of the grid after every step
	OnStage func(Stage)
	// Logger receives progress lines; nil discards them
	Logger *log.Logger
}

// NewGenerator creates a generator for cfg seeded with seed
func NewGenerator(cfg Config, seed uint64) *Generator {
	return &Generator{
		config: cfg,
		seed:   seed,
		rng:    NewRNG(seed),
		stats: Stats{
			Tiles:       make(map[string]int),
			Edges:       make(map[string]int),
			Decorations: make(map[string]int),
		},
	}
}

// Generate produces the map
func (gen *Generator) Generate() (*Result, error) {
	if gen.Logger == nil {
		gen.Logger = log.New(io.Discard, "", 0)
	}
	if err := gen.config.Validate(); err != nil {
		return nil, err
	}

	// 1. Carve the maze over the padded lattice
	if err := gen.carveMaze(); err != nil {
		return nil, fmt.Errorf("carving maze: %w", err)
	}

	// 2. Grow rooms on junctions
	gen.growRooms()

	// 3. Wall over corridors on the border and in the carving margin
	FillBorder(gen.grid, gen.config.Width, gen.config.Height)
	gen.emit("border")

	// 4. Drop corridors no room can reach
	gen.pruneCorridors()

	// 5. Join what is left into one cluster
	gen.repair()

	// 6. Re-derive room boundaries now that the layout is final
	gen.refreshEdges()

	// 7. Crop to the published size before anything is carved outward
	gen.grid = gen.grid.Crop(Bounds{0, 0, gen.config.Width - 1, gen.config.Height - 1})
	gen.emit("crop")

	// 8. Secret passages from room origins
	gen.stats.Secrets = CarveSecretPassages(gen.grid, gen.config.WallStep)
	gen.emit("secrets")

	// 9. Decorate
	gen.decorate()

	// 10. Validate accessibility
	if err := gen.validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// 11. Build output
	return gen.buildOutput(), nil
}

func (gen *Generator) carveMaze() error {
	grid, err := CarveMaze(gen.config.Maze(), gen.rng)
	if err != nil {
		return err
	}
	gen.grid = grid
	gen.Logger.Printf("maze carved: %dx%d padded, %d corridor tiles",
		grid.Width, grid.Height, grid.Count(TileCorridor))
	gen.emit("maze")
	return nil
}

func (gen *Generator) growRooms() {
	classes := gen.config.RoomClasses
	if gen.config.RoomCount == 0 || len(classes) == 0 {
		gen.emit("rooms")
		return
	}

	weights := make([]float64, len(classes))
	for i, rc := range classes {
		weights[i] = rc.Weight
	}

	for _, c := range gen.roomCandidates() {
		if len(gen.rooms) >= gen.config.RoomCount {
			break
		}
		if gen.tooClose(c) {
			continue
		}
		idx := WeightedIndex(gen.rng, weights)
		if idx < 0 {
			break
		}
		class := classes[idx]
		radius := Uniform(gen.rng, class.MinRadius, class.MaxRadius)
		if !gen.fitsInside(c, radius) {
			continue
		}

		room := GrowRoom(gen.grid, c, class.MaxSize, radius, gen.rng)
		if room == nil {
			continue
		}
		room.ID = len(gen.rooms)
		gen.rooms = append(gen.rooms, room)
	}

	gen.stats.Rooms = len(gen.rooms)
	gen.Logger.Printf("grew %d rooms", len(gen.rooms))
	gen.emit("rooms")
}

// roomCandidates lists the corridor lattice intersections, junctions first.
// Both groups are shuffled.
func (gen *Generator) roomCandidates() []Point {
	ws, cs := gen.config.WallStep, gen.config.CorridorStep
	var junctions, others []Point

	for y := cs / 2; y < gen.grid.Height; y += ws {
		for x := cs / 2; x < gen.grid.Width; x += ws {
			p := Point{x, y}
			if gen.grid.At(p) != TileCorridor {
				continue
			}
			branches := 0
			for _, d := range Directions {
				if gen.grid.Is(p.Step(d, ws/2), NewTileSet(TileCorridor)) {
					branches++
				}
			}
			if branches >= junctionBranches {
				junctions = append(junctions, p)
			} else {
				others = append(others, p)
			}
		}
	}

	return concat(Shuffled(gen.rng, junctions), Shuffled(gen.rng, others))
}

func (gen *Generator) tooClose(p Point) bool {
	return nearAny(p, gen.roomOrigins(), gen.config.RoomSpacing)
}

// fitsInside keeps a room of the given radius off the published border
func (gen *Generator) fitsInside(p Point, radius float64) bool {
	r := int(radius)
	inner := Bounds{1, 1, gen.config.Width - 2, gen.config.Height - 2}
	return inner.Contains(p.Add(-r, -r)) && inner.Contains(p.Add(r, r))
}

func (gen *Generator) roomOrigins() []Point {
	origins := make([]Point, len(gen.rooms))
	for i, r := range gen.rooms {
		origins[i] = r.Origin
	}
	return origins
}

func (gen *Generator) pruneCorridors() {
	// With no rooms every corridor would count as isolated
	if len(gen.rooms) > 0 {
		gen.stats.Pruned = PruneIsolatedCorridors(gen.grid)
		gen.Logger.Printf("pruned %d isolated corridor tiles", gen.stats.Pruned)
	}
	gen.emit("prune")
}

func (gen *Generator) repair() {
	clusters := FindClusters(gen.grid)
	gen.Logger.Printf("repairing %d clusters", len(clusters))
	gen.links = RepairConnectivity(gen.grid, clusters, gen.config.WallStep, gen.config.CorridorStep, gen.rng)
	// Wide repair corridors may spill onto the border; their paths never do
	FillBorder(gen.grid, gen.config.Width, gen.config.Height)
	gen.stats.Links = len(gen.links.Links)
	gen.stats.LinkLength = gen.links.TotalLength()
	gen.emit("repair")
}

func (gen *Generator) refreshEdges() {
	RefreshRoomEdges(gen.grid, gen.rooms)
	gen.stats.Windows = PlaceWindows(gen.grid, gen.rooms, gen.config.WindowRate, gen.rng)
	gen.emit("edges")
}

// decorators lists the secondary content passes in the order they run
func (gen *Generator) decorators() []Decorator {
	cfg := gen.config
	return []Decorator{
		LadderDecorator{Count: cfg.LadderCount},
		EntranceDecorator{Count: cfg.EntranceCount},
		SlideDecorator{Rooms: gen.rooms},
		TrapDecorator{Percent: cfg.TrapPercent},
		SpikeDecorator{Rooms: gen.rooms, Percent: cfg.SpikePercent},
		LavaDecorator{Pools: cfg.LavaPools, Size: cfg.LavaPoolSize},
	}
}

func (gen *Generator) decorate() {
	for _, d := range gen.decorators() {
		n := d.Decorate(gen.grid, gen.rng)
		gen.stats.Decorations[d.Name()] = n
		gen.Logger.Printf("%s: %d tiles", d.Name(), n)
		gen.emit(d.Name())
	}
}

// validate checks that everything walkable forms a single region
func (gen *Generator) validate() error {
	clusters := FindClustersOf(gen.grid, Walkable)
	if len(clusters) > 1 {
		return fmt.Errorf("%d disconnected regions", len(clusters))
	}

	if len(gen.links.Nodes) > 0 && !gen.links.IsConnected(gen.links.firstNode()) {
		return fmt.Errorf("unjoined clusters: %v", gen.links.FindUnreachable(gen.links.firstNode()))
	}
	return nil
}

func (gen *Generator) buildOutput() *Result {
	for _, t := range AllTileTypes() {
		gen.stats.Tiles[t.String()] = gen.grid.Count(t)
	}
	for _, e := range AllEdgeTypes() {
		gen.stats.Edges[e.String()] = 0
	}
	for y := 0; y < gen.grid.Height; y++ {
		for x := 0; x < gen.grid.Width; x++ {
			for _, e := range gen.grid.Edges(Point{x, y}) {
				if e != EdgeNone {
					gen.stats.Edges[e.String()]++
				}
			}
		}
	}

	return &Result{
		Grid:   gen.grid,
		Rooms:  gen.rooms,
		Links:  gen.links,
		Stats:  gen.stats,
		Seed:   gen.seed,
		Config: gen.config,
	}
}

func (gen *Generator) emit(name string) {
	gen.stage++
	if gen.OnStage == nil {
		return
	}
	gen.OnStage(Stage{Index: gen.stage, Name: name, Grid: gen.grid.Clone()})
}
