package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/wayfinder/pkg/location"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/routing"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// siteDocument is the on-disk shape of a site file.
type siteDocument struct {
	Locations []location.Record `yaml:"locations" validate:"required,min=1,dive"`
	Edges     []edgeRecord      `yaml:"edges" validate:"dive"`
}

type edgeRecord struct {
	From   string  `yaml:"from" validate:"required"`
	To     string  `yaml:"to" validate:"required"`
	Weight float64 `yaml:"weight" validate:"gt=0"`
	Level  int     `yaml:"level" validate:"gte=0"`
}

// ValidationError describes one invalid field of a site file.
type ValidationError struct {
	Field   string
	Problem string
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Problem
}

// ValidationErrors aggregates every field problem found in one document.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return "invalid site: " + strings.Join(parts, "; ")
}

// SiteLoader implements ports.SiteLoader for a YAML site file.
type SiteLoader struct {
	Path string
}

// NewSiteLoader creates a loader for the site file at path.
func NewSiteLoader(path string) *SiteLoader {
	return &SiteLoader{Path: path}
}

// LoadSite reads, validates and assembles the site.
func (l *SiteLoader) LoadSite(ctx context.Context) (*ports.Site, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read site file: %w", err)
	}
	site, err := ParseSite(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Path, err)
	}
	return site, nil
}

// ParseSite decodes a site document from r.
func ParseSite(r io.Reader) (*ports.Site, error) {
	var doc siteDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode site: %w", err)
	}

	if err := validate.Struct(&doc); err != nil {
		return nil, toValidationErrors(err)
	}

	return BuildSite(doc.Locations, doc.edges())
}

func (d siteDocument) edges() []routing.Edge {
	edges := make([]routing.Edge, len(d.Edges))
	for i, e := range d.Edges {
		edges[i] = routing.Edge{From: e.From, To: e.To, Weight: e.Weight, Level: routing.Level(e.Level)}
	}
	return edges
}

// BuildSite assembles the routing graph and the location index from records.
// Every location is a graph node, so an edge naming an unlisted id fails.
func BuildSite(records []location.Record, edges []routing.Edge) (*ports.Site, error) {
	idx, err := location.New(records)
	if err != nil {
		return nil, err
	}
	graph, err := routing.Build(idx.IDs(), edges)
	if err != nil {
		return nil, err
	}
	return &ports.Site{Graph: graph, Locations: idx}, nil
}

func toValidationErrors(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   strings.TrimPrefix(fe.Namespace(), "siteDocument."),
			Problem: describe(fe),
		})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "needs at least " + fe.Param() + " entry"
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	}
	return fmt.Sprintf("failed %q check", fe.Tag())
}
