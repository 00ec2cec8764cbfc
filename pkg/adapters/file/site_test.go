package file_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/wayfinder/pkg/adapters/file"
	"github.com/aretw0/wayfinder/pkg/location"
	"github.com/aretw0/wayfinder/pkg/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const diamond = `
locations:
  - {id: A, x: 0, y: 0}
  - {id: B, x: 2, y: 0}
  - {id: C, x: 0, y: 3}
  - {id: D, x: 2, y: 3}
edges:
  - {from: A, to: B, weight: 1, level: 0}
  - {from: A, to: C, weight: 4, level: 0}
  - {from: B, to: D, weight: 1, level: 0}
  - {from: C, to: D, weight: 1, level: 0}
`

func TestSiteLoader_LoadSite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte(diamond), 0o644))

	site, err := file.NewSiteLoader(path).LoadSite(context.Background())
	require.NoError(t, err)

	route, err := site.Graph.ShortestPath("A", "D", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "D"}, route.Nodes)
	assert.InDelta(t, 2.0, route.Cost, 1e-9)

	coords, err := site.Locations.ResolveRoute(route.Nodes)
	require.NoError(t, err)
	assert.Len(t, coords, 3)
	assert.Equal(t, 2.0, coords[2].X)
	assert.Equal(t, 3.0, coords[2].Y)
}

func TestSiteLoader_MissingFile(t *testing.T) {
	_, err := file.NewSiteLoader(filepath.Join(t.TempDir(), "none.yaml")).LoadSite(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseSite_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr error
		fields  []string
	}{
		{
			name:    "dangling endpoint",
			doc:     "locations: [{id: A}]\nedges: [{from: A, to: Z, weight: 1}]",
			wantErr: routing.ErrDanglingEndpoint,
		},
		{
			name:    "duplicate edge",
			doc:     "locations: [{id: A}, {id: B}]\nedges: [{from: A, to: B, weight: 1}, {from: B, to: A, weight: 2}]",
			wantErr: routing.ErrDuplicateEdge,
		},
		{
			name:    "duplicate location",
			doc:     "locations: [{id: A}, {id: A, x: 1}]",
			wantErr: location.ErrDuplicateLocation,
		},
		{
			name:   "field problems are aggregated",
			doc:    "locations: [{id: ''}]\nedges: [{from: A, to: '', weight: 0, level: -1}]",
			fields: []string{"Locations[0].ID", "Edges[0].To", "Edges[0].Weight", "Edges[0].Level"},
		},
		{
			name:   "empty document",
			doc:    "",
			fields: []string{"Locations"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := file.ParseSite(strings.NewReader(tt.doc))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.fields != nil {
				var verrs file.ValidationErrors
				require.ErrorAs(t, err, &verrs)
				got := make([]string, len(verrs))
				for i, v := range verrs {
					got[i] = v.Field
				}
				assert.ElementsMatch(t, tt.fields, got)
			}
		})
	}
}

func TestParseSite_UnknownField(t *testing.T) {
	_, err := file.ParseSite(strings.NewReader("locations: [{id: A, z: 3}]"))
	assert.Error(t, err)
}
