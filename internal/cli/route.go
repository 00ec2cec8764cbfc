package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/config"
	"github.com/aretw0/wayfinder/internal/presentation/graph"
	"github.com/aretw0/wayfinder/internal/presentation/tui"
	"github.com/aretw0/wayfinder/pkg/routing"
)

// RouteFormat selects how a planned route is printed.
type RouteFormat string

const (
	RouteFormatMarkdown RouteFormat = "markdown"
	RouteFormatMermaid  RouteFormat = "mermaid"
	RouteFormatPlain    RouteFormat = "plain"
)

// PrintRoute plans the route of s without moving anything and writes it to w.
// An unreachable destination reports the level that would unlock it.
func PrintRoute(ctx context.Context, w io.Writer, s config.Settings, format RouteFormat) error {
	site, err := LoadSite(ctx, s)
	if err != nil {
		return err
	}

	level := routing.Level(s.Level)
	plan, err := wayfinder.PlanRoute(site, s.Origin, s.Destination, level)
	if err != nil {
		if format == RouteFormatMermaid {
			// Still useful: show the site with the blocked edges dotted.
			fmt.Fprint(w, graph.GenerateMermaid(site.Graph, &graph.Overlay{Level: level}))
		}
		return err
	}

	switch format {
	case RouteFormatMermaid:
		fmt.Fprint(w, graph.GenerateMermaid(site.Graph, &graph.Overlay{
			Route:   plan.Route.Nodes,
			Current: s.Origin,
			Level:   level,
		}))
	case RouteFormatPlain:
		fmt.Fprint(w, tui.RouteMarkdown(plan.Route, plan.Waypoints, plan.Level))
	default:
		md := tui.RouteMarkdown(plan.Route, plan.Waypoints, plan.Level)
		out, err := tui.NewRenderer()(md)
		if err != nil {
			out = md
		}
		fmt.Fprint(w, out)
	}
	return nil
}
