package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"

	"stratcore/domain/core"
	"stratcore/domain/strategy"
	"stratcore/ports"
)

// ContextRepositoryImpl implements ContextRepository for PostgreSQL
type ContextRepositoryImpl struct {
	db *sqlx.DB
}

// NewContextRepository creates a new PostgreSQL context repository
func NewContextRepository(db *sqlx.DB) ports.ContextRepository {
	return &ContextRepositoryImpl{db: db}
}

// Save upserts the full context document keyed by session ID
func (r *ContextRepositoryImpl) Save(ctx context.Context, sctx strategy.Context) error {
	payload, err := json.Marshal(sctx)
	if err != nil {
		return fmt.Errorf("failed to marshal context: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO strategic_contexts (session_id, context, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (session_id)
		DO UPDATE SET context = EXCLUDED.context, updated_at = NOW()
	`, sctx.SessionID.String(), payload)
	return err
}

// Load retrieves a context document by session ID
func (r *ContextRepositoryImpl) Load(ctx context.Context, sessionID core.SessionID) (*strategy.Context, error) {
	var payload []byte
	err := r.db.GetContext(ctx, &payload, `
		SELECT context FROM strategic_contexts WHERE session_id = $1
	`, sessionID.String())
	if err == sql.ErrNoRows {
		return nil, core.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var sctx strategy.Context
	if err := json.Unmarshal(payload, &sctx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal context: %w", err)
	}
	return &sctx, nil
}

// Delete removes a context document by session ID
func (r *ContextRepositoryImpl) Delete(ctx context.Context, sessionID core.SessionID) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM strategic_contexts WHERE session_id = $1
	`, sessionID.String())
	return err
}
