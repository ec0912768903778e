package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/totegamma/hateoas-playground/internal/domain"
)

// UserRepository supplies user snapshots.
type UserRepository interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (domain.User, error)
	ListGroupMembers(ctx context.Context, group string) ([]domain.User, error)
}

// GroupRepository supplies group snapshots.
type GroupRepository interface {
	ListGroups(ctx context.Context) ([]domain.Group, error)
	GetGroup(ctx context.Context, name string) (domain.Group, error)
}

// ResponseCache stores serialized envelopes keyed by request path.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}
