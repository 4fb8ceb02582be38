package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandevgo/replybot/internal/core"
	"github.com/sandevgo/replybot/internal/storage/sqlite"
	"github.com/sandevgo/replybot/pkg/log"
	"gopkg.in/yaml.v3"
)

// Format identifies a knowledge source encoding.
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// FormatOf infers the source format from the file extension. Unknown extensions are read as JSON.
func FormatOf(location string) Format {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite
	default:
		return FormatJSON
	}
}

// Load reads the knowledge source at location. It never fails: an unreadable
// or malformed source is logged and yields an empty base so greetings and the
// generative fallback keep working.
func Load(ctx context.Context, location string) *Base {
	logger := log.FromCtx(ctx)

	records, err := ReadRecords(ctx, location)
	if err != nil {
		logger.Error().
			Err(err).
			Str("category", "load_failure").
			Str("location", location).
			Msg("knowledge base unavailable, continuing with an empty one")
		return Empty()
	}

	base := NewBase(ctx, records)
	logger.Info().
		Str("location", location).
		Int("records", len(records)).
		Int("entries", base.Len()).
		Msg("knowledge base loaded")
	return base
}

// ReadRecords returns the raw records of a source, failing on any read or structure error.
func ReadRecords(ctx context.Context, location string) ([]core.KnowledgeRecord, error) {
	format := FormatOf(location)
	if format == FormatSQLite {
		return readSQLite(ctx, location)
	}

	f, err := os.Open(location)
	if err != nil {
		return nil, fmt.Errorf("open knowledge source: %w", err)
	}
	defer f.Close()

	return Parse(f, format)
}

// Parse decodes records from r. The top level must be a list of records.
func Parse(r io.Reader, format Format) ([]core.KnowledgeRecord, error) {
	var records []core.KnowledgeRecord

	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported knowledge format: %s", format)
	}

	return records, nil
}

func readSQLite(ctx context.Context, path string) ([]core.KnowledgeRecord, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat knowledge db: %w", err)
	}

	db, err := sqlite.NewDB(ctx, path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return sqlite.NewKnowledgeRepo(db).All(ctx)
}
