package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/wayfinder/pkg/routing"
)

// Overlay contains route data to highlight on the site graph.
type Overlay struct {
	Route   []string
	Current string
	// Level hides edges that need a higher accessibility level. Negative shows all.
	Level routing.Level
}

// GenerateMermaid produces a Mermaid flowchart of the site graph.
// Edges are undirected and labelled with weight and required level.
// Route legs are drawn thick; edges above the overlay level are dotted.
func GenerateMermaid(g *routing.Graph, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	endpoints := map[string]bool{}
	legs := map[[2]string]bool{}
	if overlay != nil && len(overlay.Route) > 0 {
		endpoints[overlay.Route[0]] = true
		endpoints[overlay.Route[len(overlay.Route)-1]] = true
		for i := 1; i < len(overlay.Route); i++ {
			legs[edgeKey(overlay.Route[i-1], overlay.Route[i])] = true
		}
	}

	for _, id := range g.Nodes() {
		opener, closer := "[", "]"
		if endpoints[id] {
			opener, closer = "((", "))"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(id), opener, id, closer)
	}

	for _, id := range g.Nodes() {
		for _, e := range g.Edges(id) {
			if e.To < e.From {
				continue
			}
			label := strconv.FormatFloat(e.Weight, 'g', -1, 64)
			if e.Level > 0 {
				label += fmt.Sprintf(" / L%d", e.Level)
			}
			arrow := fmt.Sprintf("-- \"%s\" ---", label)
			switch {
			case legs[edgeKey(e.From, e.To)]:
				arrow = fmt.Sprintf("== \"%s\" ===", label)
			case overlay != nil && overlay.Level >= 0 && e.Level > overlay.Level:
				arrow = fmt.Sprintf("-. \"%s\" .-", label)
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", sanitizeMermaidID(e.From), arrow, sanitizeMermaidID(e.To))
		}
	}

	if overlay != nil && len(overlay.Route) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef route fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Route {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && id != overlay.Current {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s route;\n", safeID)
			}
		}
		if overlay.Current != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.Current))
		}
	}

	return sb.String()
}

func edgeKey(a, b string) [2]string {
	if b < a {
		a, b = b, a
	}
	return [2]string{a, b}
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
