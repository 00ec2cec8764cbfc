package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/routing"
)

// ValidateSite checks that every location is connected and reachable from
// origin when all accessibility levels are unlocked.
func ValidateSite(site *ports.Site, origin string) error {
	if site == nil || site.Graph == nil || site.Locations == nil {
		return fmt.Errorf("site is not loaded")
	}

	var errors []string

	for _, id := range site.Graph.Nodes() {
		if len(site.Graph.Edges(id)) == 0 {
			errors = append(errors, fmt.Sprintf("Isolated location: '%s'", id))
		}
		if _, err := site.Locations.Lookup(id); err != nil {
			errors = append(errors, fmt.Sprintf("Missing coordinates: '%s'", id))
		}
	}

	if !site.Graph.Has(origin) {
		errors = append(errors, fmt.Sprintf("Origin not found: '%s'", origin))
	} else {
		levels := site.Graph.Levels()
		top := routing.Level(0)
		if len(levels) > 0 {
			top = levels[len(levels)-1]
		}
		reached := Reachable(site.Graph, origin, top)
		for _, id := range site.Graph.Nodes() {
			if !slices.Contains(reached, id) && len(site.Graph.Edges(id)) > 0 {
				errors = append(errors, fmt.Sprintf("Unreachable from '%s': '%s'", origin, id))
			}
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}

	return nil
}

// Reachable crawls the graph breadth-first from origin using only edges whose
// required level is at most level. The result is sorted.
func Reachable(g *routing.Graph, origin string, level routing.Level) []string {
	if !g.Has(origin) {
		return nil
	}

	visited := map[string]bool{origin: true}
	queue := []string{origin}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, e := range g.Edges(current) {
			if e.Level > level || visited[e.To] {
				continue
			}
			visited[e.To] = true
			queue = append(queue, e.To)
		}
	}

	out := make([]string, 0, len(visited))
	for id := range visited {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
