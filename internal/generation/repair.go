package generation

import (
	"fmt"
	"math"
)

// RepairConnectivity joins clusters into one by carving corridors. Each round
// takes the cluster at the front of the list, finds the globally nearest
// endpoint pair between it and any other cluster and carves an L-shaped
// corridor between them. The front cluster is then dropped and the one it
// reached moves to the front. This is a greedy nearest-fragment merge, not a
// minimum spanning tree.
//
// clusters is consumed. The returned graph has one node per input cluster
// and one link per carved corridor.
func RepairConnectivity(g *Grid, clusters []Cluster, wallStep, corridorStep int, src Source) *LinkGraph {
	graph := NewLinkGraph()
	ids := make([]string, len(clusters))
	for i, c := range clusters {
		ids[i] = clusterID(i)
		node := &Node{ID: ids[i], Size: len(c)}
		if len(c) > 0 {
			node.Position = c[0]
		}
		graph.AddNode(node)
	}

	endpoints := make([][]Point, len(clusters))
	for i, c := range clusters {
		endpoints[i] = latticeEndpoints(g, c, wallStep, corridorStep)
	}

	for len(clusters) > 1 {
		nearest, from, to := nearestPair(endpoints)
		if nearest < 0 {
			break
		}

		path := carveElbow(g, from, to, corridorStep, src)
		link := &Link{
			From:   ids[0],
			To:     ids[nearest],
			Weight: from.Dist(to),
			Ends:   [2]Point{from, to},
			Path:   path,
		}
		if err := graph.AddLink(link); err != nil {
			panic(fmt.Sprintf("repair link: %v", err))
		}

		// The current cluster is done; the one it reached becomes current
		next := nearest - 1
		clusters = moveToFront(clusters[1:], next)
		endpoints = moveToFront(endpoints[1:], next)
		ids = moveToFront(ids[1:], next)
	}

	return graph
}

// nearestPair finds the closest endpoints between cluster 0 and any other
// cluster. Ties keep the first pair found scanning clusters in list order.
func nearestPair(endpoints [][]Point) (int, Point, Point) {
	best := -1
	bestDist := math.Inf(1)
	var from, to Point

	for i := 1; i < len(endpoints); i++ {
		for _, a := range endpoints[0] {
			for _, b := range endpoints[i] {
				d := a.Dist(b)
				if d < bestDist {
					best, bestDist = i, d
					from, to = a, b
				}
			}
		}
	}
	return best, from, to
}

// carveElbow opens a corridor from a to b going horizontal-then-vertical or
// vertical-then-horizontal with equal odds. The corridor is width tiles
// thick and only replaces wall, leaving rooms and corridors untouched.
func carveElbow(g *Grid, a, b Point, width int, src Source) []Point {
	corner := Point{b.X, a.Y}
	if Chance(src, 0.5) {
		corner = Point{a.X, b.Y}
	}

	path := straightPath(a, corner)
	path = append(path, straightPath(corner, b)[1:]...)

	off := width / 2
	for _, p := range path {
		g.Rect(p.X-off, p.Y-off, width, width, TileCorridor, TileWall)
	}
	return path
}

// straightPath lists the tiles from a to b inclusive; a and b share a row
// or a column.
func straightPath(a, b Point) []Point {
	dx, dy := sign(b.X-a.X), sign(b.Y-a.Y)
	path := []Point{a}
	for p := a; p != b; {
		p = p.Add(dx, dy)
		path = append(path, p)
	}
	return path
}

func concat[S ~[]E, E any](a, b S) S {
	out := make(S, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

// moveToFront returns items with items[i] moved to index 0, keeping the
// order of the rest
func moveToFront[T any](items []T, i int) []T {
	out := make([]T, 0, len(items))
	out = append(out, items[i])
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}
