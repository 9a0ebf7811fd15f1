// Package storage contains a storage interface.
package storage

import (
	"context"
	"errors"

	"github.com/agora-forum/agora/internal/entities"
)

//go:generate mockgen -destination=./mock/storage.go -package=mock -source=storage.go

// ErrNotFound ...
var ErrNotFound = errors.New("not found")

// Storage provides methods for interacting with database.
// Post aggregates are saved as a whole: replies and sub-replies are never stored separately.
type Storage interface {
	// InTx runs f in a transaction. GetPost called on the storage passed to f locks the post until f returns.
	InTx(ctx context.Context, f func(s Storage) error) error
	Ping(ctx context.Context) error

	// SavePost inserts the post or replaces the stored one with the same id.
	SavePost(ctx context.Context, p *entities.Post) error
	GetPost(ctx context.Context, id string) (*entities.Post, error)
	// ListPosts returns all posts in creation order.
	ListPosts(ctx context.Context) ([]*entities.Post, error)
	ListPostsByAccessibility(ctx context.Context, a entities.Accessibility) ([]*entities.Post, error)
	ListPostsByOwner(ctx context.Context, owner int64) ([]*entities.Post, error)
}
