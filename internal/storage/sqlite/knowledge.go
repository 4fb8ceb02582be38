package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/replybot/internal/core"
	"github.com/sandevgo/replybot/pkg/log"
)

type KnowledgeRepo struct {
	db *sql.DB
}

func NewKnowledgeRepo(db *sql.DB) *KnowledgeRepo {
	return &KnowledgeRepo{db: db}
}

// ReplaceAll swaps the stored knowledge for records in one transaction,
// keeping record order as entry position.
func (r *KnowledgeRepo) ReplaceAll(ctx context.Context, records []core.KnowledgeRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Triggers go with their entries through ON DELETE CASCADE.
	if _, err := tx.ExecContext(ctx, `DELETE FROM knowledge_entries`); err != nil {
		return fmt.Errorf("failed to clear knowledge: %w", err)
	}

	entryStmt, err := tx.PrepareContext(ctx, `INSERT INTO knowledge_entries (position, answer) VALUES (?, ?)`)
	if err != nil {
		return err
	}
	defer entryStmt.Close()

	triggerStmt, err := tx.PrepareContext(ctx, `INSERT INTO knowledge_triggers (entry_id, position, phrase) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer triggerStmt.Close()

	for i, rec := range records {
		res, err := entryStmt.ExecContext(ctx, i, rec.Answer)
		if err != nil {
			return fmt.Errorf("failed to insert knowledge entry %d: %w", i, err)
		}

		id, err := res.LastInsertId()
		if err != nil {
			return err
		}

		for j, phrase := range rec.AllTriggers() {
			if _, err := triggerStmt.ExecContext(ctx, id, j, phrase); err != nil {
				return fmt.Errorf("failed to insert trigger for entry %d: %w", i, err)
			}
		}
	}

	return tx.Commit()
}

// All returns every stored record ordered by position.
func (r *KnowledgeRepo) All(ctx context.Context) ([]core.KnowledgeRecord, error) {
	query := `
		SELECT e.id, e.answer, t.phrase
		FROM knowledge_entries e
		LEFT JOIN knowledge_triggers t ON t.entry_id = e.id
		ORDER BY e.position, e.id, t.position`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query knowledge: %w", err)
	}
	defer rows.Close()

	var (
		records []core.KnowledgeRecord
		lastID  int64 = -1
	)
	for rows.Next() {
		var (
			id     int64
			answer string
			phrase sql.NullString
		)
		if err := rows.Scan(&id, &answer, &phrase); err != nil {
			return nil, fmt.Errorf("failed to scan knowledge row: %w", err)
		}

		if id != lastID {
			records = append(records, core.KnowledgeRecord{Answer: answer})
			lastID = id
		}
		if phrase.Valid {
			cur := &records[len(records)-1]
			cur.Triggers = append(cur.Triggers, phrase.String)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Int("count", len(records)).Msg("loaded knowledge records")
	return records, nil
}

var _ core.KnowledgeRepository = (*KnowledgeRepo)(nil)
