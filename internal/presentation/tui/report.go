package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/routing"
)

// RouteMarkdown describes a computed route as a markdown table.
// waypoints must be aligned with route.Nodes.
func RouteMarkdown(route routing.Route, waypoints []domain.Coordinates, level routing.Level) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Route %s → %s\n\n", route.Source(), route.Destination())
	fmt.Fprintf(&sb, "Accessibility level **%d**, total cost **%g**, %d waypoints.\n\n", level, route.Cost, route.Len())

	sb.WriteString("| # | Location | X | Y | Leg |\n")
	sb.WriteString("|---|----------|---|---|-----|\n")
	for i, id := range route.Nodes {
		var c domain.Coordinates
		if i < len(waypoints) {
			c = waypoints[i]
		}
		leg := "-"
		if i > 0 && i < len(waypoints) {
			leg = fmt.Sprintf("%.2f m", waypoints[i-1].DistanceTo(c))
		}
		fmt.Fprintf(&sb, "| %d | %s | %.2f | %.2f | %s |\n", i, id, c.X, c.Y, leg)
	}
	return sb.String()
}

// ProgressMarkdown describes a stored session.
func ProgressMarkdown(p domain.Progress) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Session %s\n\n", p.SessionID)

	status := "in progress"
	switch {
	case p.Arrived:
		status = "arrived"
	case p.Failed:
		status = "navigation failed"
	}
	fmt.Fprintf(&sb, "- **State:** %s (%s)\n", p.State, status)
	fmt.Fprintf(&sb, "- **Position:** %s\n", p.Position)
	fmt.Fprintf(&sb, "- **Reached:** %d of %d\n", min(p.Index, len(p.Route)), len(p.Route))
	if p.Retries > 0 {
		fmt.Fprintf(&sb, "- **Retries:** %d\n", p.Retries)
	}
	if !p.UpdatedAt.IsZero() {
		fmt.Fprintf(&sb, "- **Updated:** %s\n", p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	if rest := p.Remaining(); len(rest) > 0 {
		fmt.Fprintf(&sb, "\nRemaining: `%s`\n", strings.Join(rest, " → "))
	}
	return sb.String()
}
