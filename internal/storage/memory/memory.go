// Package memory is an in-memory implementation of storage interface used in tests.
// Transactions of different posts are serialized by one store-wide lock, so it is not meant for production load.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/agora-forum/agora/internal/entities"
	"github.com/agora-forum/agora/internal/storage"
)

type store struct {
	mu    sync.RWMutex
	posts map[string]*entities.Post
	order []string // post ids in insertion order
}

type tx struct {
	*store
}

// New creates new instance of in-memory storage.
func New() storage.Storage {
	return &store{
		posts: make(map[string]*entities.Post),
	}
}

// InTx runs f holding the store's write lock. Transactions on different posts contend too,
// unlike postgres where only the rows read by GetPost are locked.
func (s *store) InTx(_ context.Context, f func(s storage.Storage) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return f(tx{s})
}

func (s *store) Ping(_ context.Context) error {
	return nil
}

func (s *store) SavePost(_ context.Context, p *entities.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.savePost(p)
	return nil
}

func (s *store) savePost(p *entities.Post) {
	if _, ok := s.posts[p.ID]; !ok {
		s.order = append(s.order, p.ID)
	}
	s.posts[p.ID] = p.Clone()
}

func (s *store) GetPost(_ context.Context, id string) (*entities.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getPost(id)
}

func (s *store) getPost(id string) (*entities.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	return p.Clone(), nil
}

func (s *store) ListPosts(_ context.Context) ([]*entities.Post, error) {
	return s.filter(func(*entities.Post) bool { return true }), nil
}

func (s *store) ListPostsByAccessibility(_ context.Context, a entities.Accessibility) ([]*entities.Post, error) {
	return s.filter(func(p *entities.Post) bool { return p.Accessibility == a }), nil
}

func (s *store) ListPostsByOwner(_ context.Context, owner int64) ([]*entities.Post, error) {
	return s.filter(func(p *entities.Post) bool { return p.OwnerID == owner }), nil
}

func (s *store) filter(f func(p *entities.Post) bool) []*entities.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entities.Post, 0, len(s.order))
	for _, id := range s.order {
		if p := s.posts[id]; f(p) {
			out = append(out, p.Clone())
		}
	}

	return out
}

// tx methods are called with the write lock held by InTx.

func (t tx) InTx(_ context.Context, _ func(s storage.Storage) error) error {
	return fmt.Errorf("nested transactions are not supported")
}

func (t tx) SavePost(_ context.Context, p *entities.Post) error {
	t.savePost(p)
	return nil
}

func (t tx) GetPost(_ context.Context, id string) (*entities.Post, error) {
	return t.getPost(id)
}

func (t tx) ListPosts(_ context.Context) ([]*entities.Post, error) {
	return t.filterLocked(func(*entities.Post) bool { return true }), nil
}

func (t tx) ListPostsByAccessibility(_ context.Context, a entities.Accessibility) ([]*entities.Post, error) {
	return t.filterLocked(func(p *entities.Post) bool { return p.Accessibility == a }), nil
}

func (t tx) ListPostsByOwner(_ context.Context, owner int64) ([]*entities.Post, error) {
	return t.filterLocked(func(p *entities.Post) bool { return p.OwnerID == owner }), nil
}

func (s *store) filterLocked(f func(p *entities.Post) bool) []*entities.Post {
	out := make([]*entities.Post, 0, len(s.order))
	for _, id := range s.order {
		if p := s.posts[id]; f(p) {
			out = append(out, p.Clone())
		}
	}

	return out
}
