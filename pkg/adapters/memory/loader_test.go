package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/lang"
	"github.com/aretw0/wayfinder/pkg/location"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader(t *testing.T) {
	g, err := routing.Build([]string{"A", "B"}, []routing.Edge{{From: "A", To: "B", Weight: 1}})
	require.NoError(t, err)
	idx, err := location.New([]location.Record{{ID: "A"}, {ID: "B", X: 1}})
	require.NoError(t, err)

	en := lang.NewTable("en", map[string]string{lang.KeyGoodbye: "Bye"})
	loader := memory.NewLoader(&ports.Site{Graph: g, Locations: idx}, en)
	ctx := context.Background()

	site, err := loader.LoadSite(ctx)
	require.NoError(t, err)
	assert.Same(t, g, site.Graph)

	table, err := loader.LoadLanguage(ctx, "en")
	require.NoError(t, err)
	assert.Equal(t, "Bye", table.Lookup(lang.KeyGoodbye))

	missing, err := loader.LoadLanguage(ctx, "fr")
	require.NoError(t, err)
	assert.Zero(t, missing.Len())
	assert.Equal(t, "fr", missing.Code)

	_, err = memory.NewLoader(nil).LoadSite(ctx)
	assert.Error(t, err)
}
