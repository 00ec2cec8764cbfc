package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/wayfinder/pkg/lang"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// Loader implements ports.SiteLoader and ports.LanguageLoader from values
// already held in memory.
type Loader struct {
	site   *ports.Site
	tables map[string]*lang.Table
}

// NewLoader creates a loader serving site and the given language tables.
func NewLoader(site *ports.Site, tables ...*lang.Table) *Loader {
	l := &Loader{
		site:   site,
		tables: make(map[string]*lang.Table, len(tables)),
	}
	for _, t := range tables {
		l.tables[t.Code] = t
	}
	return l
}

// LoadSite returns the site handed to NewLoader.
func (l *Loader) LoadSite(ctx context.Context) (*ports.Site, error) {
	if l.site == nil {
		return nil, fmt.Errorf("memory loader has no site")
	}
	return l.site, nil
}

// LoadLanguage returns the table for code, or an empty table.
func (l *Loader) LoadLanguage(ctx context.Context, code string) (*lang.Table, error) {
	if t, ok := l.tables[code]; ok {
		return t, nil
	}
	return lang.NewTable(code, nil), nil
}
