package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/lang"
	"gopkg.in/yaml.v3"
)

// LanguageLoader implements ports.LanguageLoader over a directory of tables.
type LanguageLoader struct {
	Dir    string
	logger *slog.Logger
}

// LanguageOption configures a LanguageLoader.
type LanguageOption func(*LanguageLoader)

// WithLogger sets the logger used to warn about missing tables.
func WithLogger(logger *slog.Logger) LanguageOption {
	return func(l *LanguageLoader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLanguageLoader creates a loader reading tables from dir.
func NewLanguageLoader(dir string, opts ...LanguageOption) *LanguageLoader {
	l := &LanguageLoader{Dir: dir, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadLanguage reads <code>.json, then <code>.yaml, then <code>.yml.
// When none exists it warns and returns an empty table, so every sentence
// falls back to its placeholder.
func (l *LanguageLoader) LoadLanguage(ctx context.Context, code string) (*lang.Table, error) {
	if code == "" || filepath.Base(code) != code {
		return nil, fmt.Errorf("invalid language code %q", code)
	}

	for _, ext := range []string{".json", ".yaml", ".yml"} {
		path := filepath.Join(l.Dir, code+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read language file: %w", err)
		}

		sentences := make(map[string]string)
		if ext == ".json" {
			err = json.Unmarshal(data, &sentences)
		} else {
			err = yaml.Unmarshal(data, &sentences)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}

		table := lang.NewTable(code, sentences)
		if missing := table.Missing(); len(missing) > 0 {
			l.logger.Warn("language table is incomplete", "lang", code, "missing", missing)
		}
		return table, nil
	}

	l.logger.Warn("language file not found, using placeholders", "lang", code, "dir", l.Dir)
	return lang.NewTable(code, nil), nil
}
