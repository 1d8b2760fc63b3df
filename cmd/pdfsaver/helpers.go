package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/markma27/pdfsaver/internal/config"
	"github.com/markma27/pdfsaver/internal/engine"
	"github.com/markma27/pdfsaver/internal/model"
	"github.com/markma27/pdfsaver/internal/pdftext"
	"github.com/markma27/pdfsaver/internal/rules"
	"github.com/markma27/pdfsaver/internal/storage"
)

// newRuleStore builds the rule store from the configured rules file, or
// the built-in defaults when none is set.
func newRuleStore() *rules.Store {
	path := viper.GetString("rules.path")
	if path != "" {
		path = config.ExpandPath(path)
	}
	return rules.NewStore(path)
}

// newEngine builds the classification engine from configuration.
func newEngine() *engine.Engine {
	return engine.New(newRuleStore())
}

// newExtractor builds a text extractor reading up to pages pages, or the
// configured/default page count when pages is zero.
func newExtractor(pages int) *pdftext.Extractor {
	if pages <= 0 {
		pages = viper.GetInt("classification.pages")
	}
	return pdftext.NewExtractor(pdftext.Config{MaxPages: pages})
}

// openStore opens the learning store at the configured database path and
// brings its schema up to date.
func openStore(ctx context.Context) (*storage.SQLiteStore, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/pdfsaver/pdfsaver.db"
	}
	store, err := storage.NewSQLiteStore(config.ExpandPath(dbPath))
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// collectPDFs expands the argument list into PDF file paths: files are
// taken as-is, directories are listed (recursively when asked).
func collectPDFs(args []string, recursive bool) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		if recursive {
			err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if !d.IsDir() && isPDF(path) {
					paths = append(paths, path)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("failed to walk %s: %w", arg, err)
			}
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", arg, err)
		}
		for _, entry := range entries {
			if !entry.IsDir() && isPDF(entry.Name()) {
				paths = append(paths, filepath.Join(arg, entry.Name()))
			}
		}
	}
	return paths, nil
}

func isPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// canonicalNamePattern matches a filename in the standard
// date_issuer_doctype form (optionally with a collision counter).
var canonicalNamePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}|YYYY-MM-DD)_([^_]+)_([^_]+?)(?:_\d+)?\.pdf$`)

// parseFilenameFields recovers detected fields from a filename in the
// canonical form, as far as the name allows. Placeholder segments map back
// to empty fields; a doc type segment is only kept when it round-trips
// through the display table.
func parseFilenameFields(name string) model.DetectedFields {
	var fields model.DetectedFields

	match := canonicalNamePattern.FindStringSubmatch(filepath.Base(name))
	if match == nil {
		return fields
	}

	if match[1] != "YYYY-MM-DD" {
		fields.DateISO = match[1]
	}
	if match[2] != "Unknown" {
		fields.Issuer = match[2]
	}
	if dt, ok := model.DocTypeFromDisplay(match[3]); ok {
		fields.DocType = string(dt)
	}
	return fields
}
