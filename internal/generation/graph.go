package generation

import "fmt"

// Node is one cluster the repairer started from
type Node struct {
	ID       string
	Position Point // first tile of the cluster in discovery order
	Size     int
}

// Link is a corridor the repairer carved between two clusters
type Link struct {
	From, To string  // Node IDs
	Weight   float64 // Euclidean distance between the joined endpoints
	Ends     [2]Point
	Path     []Point // Tiles along the carved route, corner included
}

// LinkGraph records which clusters the repairer joined and how
type LinkGraph struct {
	Nodes map[string]*Node
	Links []*Link

	// Adjacency list for quick lookups
	Adjacent map[string][]string
}

// NewLinkGraph creates an empty graph
func NewLinkGraph() *LinkGraph {
	return &LinkGraph{
		Nodes:    make(map[string]*Node),
		Links:    make([]*Link, 0),
		Adjacent: make(map[string][]string),
	}
}

// AddNode adds a node to the graph
func (g *LinkGraph) AddNode(n *Node) {
	g.Nodes[n.ID] = n
	if g.Adjacent[n.ID] == nil {
		g.Adjacent[n.ID] = make([]string, 0)
	}
}

// AddLink records a carved link between two known nodes
func (g *LinkGraph) AddLink(l *Link) error {
	if _, ok := g.Nodes[l.From]; !ok {
		return fmt.Errorf("node %s not found", l.From)
	}
	if _, ok := g.Nodes[l.To]; !ok {
		return fmt.Errorf("node %s not found", l.To)
	}

	g.Links = append(g.Links, l)
	g.Adjacent[l.From] = append(g.Adjacent[l.From], l.To)
	g.Adjacent[l.To] = append(g.Adjacent[l.To], l.From)
	return nil
}

// TotalLength returns the number of path tiles over all links
func (g *LinkGraph) TotalLength() int {
	total := 0
	for _, l := range g.Links {
		total += len(l.Path)
	}
	return total
}

// IsConnected checks if all nodes are reachable from a starting node using BFS
func (g *LinkGraph) IsConnected(startID string) bool {
	if len(g.Nodes) == 0 {
		return true
	}
	return len(g.reachable(startID)) == len(g.Nodes)
}

// FindUnreachable returns nodes not reachable from the start node
func (g *LinkGraph) FindUnreachable(startID string) []string {
	visited := g.reachable(startID)
	unreachable := make([]string, 0)
	for id := range g.Nodes {
		if !visited[id] {
			unreachable = append(unreachable, id)
		}
	}
	return unreachable
}

func (g *LinkGraph) reachable(startID string) map[string]bool {
	visited := map[string]bool{startID: true}
	queue := []string{startID}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, neighborID := range g.Adjacent[current] {
			if !visited[neighborID] {
				visited[neighborID] = true
				queue = append(queue, neighborID)
			}
		}
	}
	return visited
}

// firstNode is the ID of the first cluster found, the usual start for
// reachability checks
func (g *LinkGraph) firstNode() string {
	return clusterID(0)
}

func clusterID(i int) string {
	return fmt.Sprintf("cluster_%d", i)
}
