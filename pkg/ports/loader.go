package ports

import (
	"context"

	"github.com/aretw0/wayfinder/pkg/lang"
	"github.com/aretw0/wayfinder/pkg/location"
	"github.com/aretw0/wayfinder/pkg/routing"
)

// Site is the static description of the building: the routing graph and the
// coordinates of every location.
type Site struct {
	Graph     *routing.Graph
	Locations *location.Index
}

// SiteLoader loads and validates a site description.
type SiteLoader interface {
	LoadSite(ctx context.Context) (*Site, error)
}

// LanguageLoader loads the sentence table for a language code.
// A missing table is not an error: implementations return an empty table.
type LanguageLoader interface {
	LoadLanguage(ctx context.Context, code string) (*lang.Table, error)
}
