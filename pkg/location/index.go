// Package location maps location ids to world coordinates.
package location

import (
	"errors"
	"fmt"
	"slices"

	"github.com/aretw0/wayfinder/pkg/domain"
)

var (
	// ErrUnknownLocation is returned when an id has no coordinates.
	ErrUnknownLocation = errors.New("unknown location")
	// ErrDuplicateLocation is returned when the coordinate table lists an id twice.
	ErrDuplicateLocation = errors.New("duplicate location")
)

// Record is one row of the coordinate table.
type Record struct {
	ID string  `json:"id" yaml:"id" validate:"required"`
	X  float64 `json:"x" yaml:"x"`
	Y  float64 `json:"y" yaml:"y"`
}

// Index is a read-only lookup table from location id to coordinates.
type Index struct {
	coords map[string]domain.Coordinates
}

// New builds an index from the coordinate table.
func New(records []Record) (*Index, error) {
	idx := &Index{coords: make(map[string]domain.Coordinates, len(records))}
	for _, r := range records {
		if _, exists := idx.coords[r.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLocation, r.ID)
		}
		idx.coords[r.ID] = domain.Coordinates{X: r.X, Y: r.Y}
	}
	return idx, nil
}

// Lookup returns the coordinates of id.
func (i *Index) Lookup(id string) (domain.Coordinates, error) {
	c, ok := i.coords[id]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("%w: %q", ErrUnknownLocation, id)
	}
	return c, nil
}

// ResolveRoute converts a sequence of ids into coordinates, preserving order.
// It returns no partial output: any missing id fails the whole call.
func (i *Index) ResolveRoute(ids []string) ([]domain.Coordinates, error) {
	out := make([]domain.Coordinates, len(ids))
	for n, id := range ids {
		c, err := i.Lookup(id)
		if err != nil {
			return nil, fmt.Errorf("waypoint %d: %w", n, err)
		}
		out[n] = c
	}
	return out, nil
}

// IDs returns the known ids in ascending order.
func (i *Index) IDs() []string {
	ids := make([]string, 0, len(i.coords))
	for id := range i.coords {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of locations.
func (i *Index) Len() int {
	return len(i.coords)
}
