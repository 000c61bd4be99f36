package session

import (
	"context"
	"time"

	"github.com/outrun/memeverse/internal/domain/project"
)

// Repository provides persistence for view sessions.
type Repository interface {
	Save(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	Delete(ctx context.Context, id string) error
	DeleteIdle(ctx context.Context, before time.Time) (int, error)
}

// ProjectSource supplies the project collection views are rendered from.
type ProjectSource interface {
	All(ctx context.Context) ([]project.Project, error)
}
