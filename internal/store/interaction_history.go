package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const MaxHistoryLimit = 500

type InteractionStore struct {
	db *sqlx.DB
}

const postgresSchema = `CREATE TABLE IF NOT EXISTS interaction_history (
	id            BIGSERIAL PRIMARY KEY,
	session_id    TEXT NOT NULL DEFAULT '',
	question      TEXT NOT NULL,
	response      TEXT NOT NULL,
	tool_used     TEXT NOT NULL,
	reason        TEXT NOT NULL,
	evidence_keys TEXT NOT NULL DEFAULT '',
	duration_ms   BIGINT NOT NULL DEFAULT 0,
	created_at    TIMESTAMPTZ NOT NULL
)`

const sqliteSchema = `CREATE TABLE IF NOT EXISTS interaction_history (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id    TEXT NOT NULL DEFAULT '',
	question      TEXT NOT NULL,
	response      TEXT NOT NULL,
	tool_used     TEXT NOT NULL,
	reason        TEXT NOT NULL,
	evidence_keys TEXT NOT NULL DEFAULT '',
	duration_ms   INTEGER NOT NULL DEFAULT 0,
	created_at    TIMESTAMP NOT NULL
)`

func (is *InteractionStore) EnsureSchema(ctx context.Context) error {
	ddl := postgresSchema
	if is.db.DriverName() != "postgres" {
		ddl = sqliteSchema
	}
	if _, err := is.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create interaction_history: %w", err)
	}
	return nil
}

func (is *InteractionStore) InsertInteraction(ctx context.Context, interaction *Interaction) error {
	query := `INSERT INTO interaction_history (
		session_id,
		question,
		response,
		tool_used,
		reason,
		evidence_keys,
		duration_ms,
		created_at
	) VALUES (
		:session_id,
		:question,
		:response,
		:tool_used,
		:reason,
		:evidence_keys,
		:duration_ms,
		:created_at
	) RETURNING id`

	if interaction.CreatedAt.IsZero() {
		interaction.CreatedAt = time.Now().UTC()
	}

	query, args, err := sqlx.Named(query, interaction)
	if err != nil {
		return err
	}
	query = is.db.Rebind(query)

	if err := is.db.QueryRowxContext(ctx, query, args...).Scan(&interaction.ID); err != nil {
		return fmt.Errorf("insert interaction: %w", err)
	}
	return nil
}

// GetLatest returns the most recent interactions, newest first.
func (is *InteractionStore) GetLatest(ctx context.Context, limit int) ([]Interaction, error) {
	if limit <= 0 || limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}
	query := is.db.Rebind(`SELECT id, session_id, question, response, tool_used, reason, evidence_keys, duration_ms, created_at
		FROM interaction_history
		ORDER BY created_at DESC, id DESC
		LIMIT ?`)

	interactions := []Interaction{}
	if err := is.db.SelectContext(ctx, &interactions, query, limit); err != nil {
		return nil, fmt.Errorf("select interactions: %w", err)
	}
	return interactions, nil
}
