package ports

import (
	"context"

	"stratcore/domain/core"
	"stratcore/domain/strategy"
)

// ContextRepository persists strategic contexts so a planning session can be
// rehydrated. The core never reads or writes a store directly.
type ContextRepository interface {
	Save(ctx context.Context, sctx strategy.Context) error
	Load(ctx context.Context, sessionID core.SessionID) (*strategy.Context, error)
	Delete(ctx context.Context, sessionID core.SessionID) error
}
