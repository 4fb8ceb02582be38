package knowledge

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sandevgo/replybot/internal/core"
	"github.com/sandevgo/replybot/internal/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_JSON(t *testing.T) {
	path := writeFile(t, "faq.json", `[
		{"triggers": ["hours", "opening time"], "answer": "9-5"},
		{"question": "VAT rate", "answer": "5%"}
	]`)

	base := Load(context.Background(), path)
	require.Equal(t, 2, base.Len())

	e, ok := NewMatcher(base, PolicyFirstHit).Match("hours")
	require.True(t, ok)
	assert.Equal(t, "9-5", e.Answer())

	e, ok = NewMatcher(base, PolicyFirstHit).Match("what is the vat rate?")
	require.True(t, ok)
	assert.Equal(t, "5%", e.Answer())
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "faq.yaml", `
- triggers: [hours]
  answer: "9-5"
- question: company setup
  answer: Bring your ID.
`)

	base := Load(context.Background(), path)
	require.Equal(t, 2, base.Len())
	assert.Equal(t, []string{"company setup"}, base.Entries()[1].Triggers())
}

func TestLoad_SoftFailures(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{"missing file", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") }},
		{"malformed json", func(t *testing.T) string { return writeFile(t, "faq.json", `[{"answer": `) }},
		{"wrong top level", func(t *testing.T) string { return writeFile(t, "faq.json", `{"answer": "x"}`) }},
		{"malformed yaml", func(t *testing.T) string { return writeFile(t, "faq.yml", "- [unclosed") }},
		{"missing db", func(t *testing.T) string { return filepath.Join(t.TempDir(), "kb.db") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := Load(context.Background(), tt.path(t))
			require.NotNil(t, base)
			assert.Zero(t, base.Len())
		})
	}
}

func TestLoad_SQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kb.db")

	db, err := sqlite.NewDB(ctx, path)
	require.NoError(t, err)
	require.NoError(t, sqlite.NewKnowledgeRepo(db).ReplaceAll(ctx, []core.KnowledgeRecord{
		{Triggers: []string{"hours"}, Answer: "9-5"},
	}))
	require.NoError(t, db.Close())

	base := Load(ctx, path)
	require.Equal(t, 1, base.Len())
	assert.Equal(t, "9-5", base.Entries()[0].Answer())
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatOf("faq.json"))
	assert.Equal(t, FormatJSON, FormatOf("faq"))
	assert.Equal(t, FormatYAML, FormatOf("FAQ.YML"))
	assert.Equal(t, FormatYAML, FormatOf("faq.yaml"))
	assert.Equal(t, FormatSQLite, FormatOf("kb.sqlite3"))
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := Parse(strings.NewReader("[]"), FormatSQLite)
	assert.Error(t, err)
}
