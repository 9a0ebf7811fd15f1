// Package memory is an in-process LRU implementation of cache backend.
package memory

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/agora-forum/agora/internal/cache"
)

type backend struct {
	lru *expirable.LRU[string, []byte]
}

// New returns backend holding at most size entries, each one for ttl.
func New(size int, ttl time.Duration) cache.Backend {
	return backend{
		lru: expirable.NewLRU[string, []byte](size, nil, ttl),
	}
}

func (b backend) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := b.lru.Get(key)
	if !ok {
		return nil, cache.ErrMiss
	}

	return v, nil
}

func (b backend) Set(_ context.Context, key string, value []byte) error {
	b.lru.Add(key, value)
	return nil
}

func (b backend) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		b.lru.Remove(k)
	}
	return nil
}
