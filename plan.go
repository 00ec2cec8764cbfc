package wayfinder

import (
	"errors"
	"fmt"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/routing"
)

// Plan is a route resolved to world coordinates.
type Plan struct {
	Route     routing.Route
	Waypoints []domain.Coordinates
	Level     routing.Level
}

// UnreachableError reports a destination the requested level cannot reach.
// MinimumLevel is the lowest level that would, when one exists.
type UnreachableError struct {
	Origin       string
	Destination  string
	Level        routing.Level
	MinimumLevel routing.Level
	Connected    bool
}

func (e *UnreachableError) Error() string {
	if !e.Connected {
		return fmt.Sprintf("%s is not connected to %s at any accessibility level", e.Destination, e.Origin)
	}
	return fmt.Sprintf("%s is unreachable from %s at accessibility level %d (requires level %d)",
		e.Destination, e.Origin, e.Level, e.MinimumLevel)
}

// Unwrap allows errors.Is(err, routing.ErrUnreachable).
func (e *UnreachableError) Unwrap() error {
	return routing.ErrUnreachable
}

// PlanRoute computes the shortest route at level and resolves its coordinates.
// An unreachable destination is reported, never retried at another level.
func PlanRoute(site *ports.Site, origin, destination string, level routing.Level) (Plan, error) {
	if site == nil || site.Graph == nil || site.Locations == nil {
		return Plan{}, fmt.Errorf("plan route: site is not loaded")
	}

	route, err := site.Graph.ShortestPath(origin, destination, level)
	if errors.Is(err, routing.ErrUnreachable) {
		ue := &UnreachableError{Origin: origin, Destination: destination, Level: level}
		if lvl, merr := site.Graph.MinimumLevel(origin, destination); merr == nil {
			ue.MinimumLevel, ue.Connected = lvl, true
		}
		return Plan{}, ue
	}
	if err != nil {
		return Plan{}, fmt.Errorf("plan route %s -> %s: %w", origin, destination, err)
	}

	waypoints, err := site.Locations.ResolveRoute(route.Nodes)
	if err != nil {
		return Plan{}, fmt.Errorf("resolve route: %w", err)
	}

	return Plan{Route: route, Waypoints: waypoints, Level: level}, nil
}
