package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/sandevgo/replybot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *KnowledgeRepo {
	t.Helper()
	ctx := context.Background()

	db, err := NewDB(ctx, filepath.Join(t.TempDir(), "kb", "knowledge.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewKnowledgeRepo(db)
}

func TestKnowledgeRepo_RoundTripKeepsOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	in := []core.KnowledgeRecord{
		{Triggers: []string{"hours", "opening time"}, Answer: "9-5"},
		{Question: "vat rate", Answer: "5%"},
		{Triggers: []string{"register company"}, Question: "company setup", Answer: "Bring your ID."},
	}
	require.NoError(t, repo.ReplaceAll(ctx, in))

	out, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, out, 3)

	assert.Equal(t, []string{"hours", "opening time"}, out[0].Triggers)
	assert.Equal(t, "9-5", out[0].Answer)
	assert.Equal(t, []string{"vat rate"}, out[1].Triggers)
	assert.Equal(t, []string{"register company", "company setup"}, out[2].Triggers)
	assert.Empty(t, out[2].Question)
}

func TestKnowledgeRepo_ReplaceAllOverwrites(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, []core.KnowledgeRecord{
		{Triggers: []string{"old"}, Answer: "stale"},
	}))
	require.NoError(t, repo.ReplaceAll(ctx, []core.KnowledgeRecord{
		{Triggers: []string{"new"}, Answer: "fresh"},
	}))

	out, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "fresh", out[0].Answer)
}

func TestKnowledgeRepo_EntryWithoutTriggers(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.ReplaceAll(ctx, []core.KnowledgeRecord{{Answer: "orphan"}}))

	out, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Triggers)
	assert.Equal(t, "orphan", out[0].Answer)
}

func TestKnowledgeRepo_Empty(t *testing.T) {
	repo := newTestRepo(t)

	out, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
}
