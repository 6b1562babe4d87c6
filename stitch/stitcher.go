// Package stitch assembles unordered contour segments into ordered chains.
package stitch

import "topo/core"

// graph is an adjacency map over quantized point keys. Keys and neighbour
// lists keep insertion order so that walks are reproducible.
type graph struct {
	order     []string
	points    map[string]core.Point
	neighbors map[string][]string
}

func newGraph(capacity int) *graph {
	return &graph{
		order:     make([]string, 0, capacity),
		points:    make(map[string]core.Point, capacity),
		neighbors: make(map[string][]string, capacity),
	}
}

func (g *graph) addPoint(p core.Point) string {
	k := p.Key()
	if _, ok := g.points[k]; !ok {
		g.points[k] = p
		g.order = append(g.order, k)
	}
	return k
}

func (g *graph) link(a, b string) {
	for _, n := range g.neighbors[a] {
		if n == b {
			return
		}
	}
	g.neighbors[a] = append(g.neighbors[a], b)
	g.neighbors[b] = append(g.neighbors[b], a)
}

// build adds every segment as a bidirectional edge. Segments whose endpoints
// share a key would be self-loops and are skipped.
func build(segments []core.Segment) *graph {
	g := newGraph(len(segments) * 2)
	for _, s := range segments {
		a := s.P1.Key()
		b := s.P2.Key()
		if a == b {
			continue
		}
		g.addPoint(s.P1)
		g.addPoint(s.P2)
		g.link(a, b)
	}
	return g
}

// Stitch partitions the segments of one threshold into chains.
//
// Open chains are walked first, starting from every unvisited point of
// degree one. The remaining points are then walked as loops: a walk closes
// when it can step back onto its start with more than two points collected,
// and otherwise ends as a degenerate open chain when it runs out of
// unvisited neighbours. No point is used by two chains. When several
// unvisited neighbours are available the first inserted one wins.
func Stitch(segments []core.Segment) []core.Chain {
	if len(segments) == 0 {
		return nil
	}
	g := build(segments)
	visited := make(map[string]bool, len(g.order))

	var chains []core.Chain

	for _, start := range g.order {
		if visited[start] || len(g.neighbors[start]) != 1 {
			continue
		}
		chains = append(chains, g.walkOpen(start, visited))
	}

	for _, start := range g.order {
		if visited[start] {
			continue
		}
		chains = append(chains, g.walkLoop(start, visited))
	}

	return chains
}

func (g *graph) walkOpen(start string, visited map[string]bool) core.Chain {
	chain := core.Chain{Points: []core.Point{g.points[start]}}
	visited[start] = true
	current := start
	for {
		next, ok := g.firstUnvisited(current, visited)
		if !ok {
			return chain
		}
		visited[next] = true
		chain.Points = append(chain.Points, g.points[next])
		current = next
	}
}

func (g *graph) walkLoop(start string, visited map[string]bool) core.Chain {
	chain := core.Chain{Points: []core.Point{g.points[start]}}
	visited[start] = true
	current := start
	for {
		if len(chain.Points) > 2 && g.isNeighbor(current, start) {
			chain.Points = append(chain.Points, g.points[start])
			chain.Closed = true
			return chain
		}
		next, ok := g.firstUnvisited(current, visited)
		if !ok {
			return chain
		}
		visited[next] = true
		chain.Points = append(chain.Points, g.points[next])
		current = next
	}
}

func (g *graph) firstUnvisited(k string, visited map[string]bool) (string, bool) {
	for _, n := range g.neighbors[k] {
		if !visited[n] {
			return n, true
		}
	}
	return "", false
}

func (g *graph) isNeighbor(a, b string) bool {
	for _, n := range g.neighbors[a] {
		if n == b {
			return true
		}
	}
	return false
}
