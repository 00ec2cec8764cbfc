package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/wayfinder/internal/config"
	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/internal/validator"
)

// Validate checks the site file for consistency and the language table for
// missing sentences. Missing sentences are reported but do not fail.
func Validate(ctx context.Context, w io.Writer, s config.Settings) error {
	site, err := LoadSite(ctx, s)
	if err != nil {
		return err
	}
	if err := validator.ValidateSite(site, s.Origin); err != nil {
		return err
	}
	fmt.Fprintf(w, "Site: %d locations, levels %v\n", site.Locations.Len(), site.Graph.Levels())

	table, err := LoadLanguage(ctx, s, logging.NewNop())
	if err != nil {
		return err
	}
	if missing := table.Missing(); len(missing) > 0 {
		fmt.Fprintf(w, "Language '%s': missing %s\n", table.Code, strings.Join(missing, ", "))
	} else {
		fmt.Fprintf(w, "Language '%s': %d sentences\n", table.Code, table.Len())
	}
	return nil
}
