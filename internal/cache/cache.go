// Package cache contains read-through post cache placed in front of storage.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/agora-forum/agora/internal/entities"
)

//go:generate mockgen -destination=./mock/backend.go -package=mock -source=cache.go

var log = logrus.WithField("layer", "cache").WithField("package", "cache")

// ErrMiss is returned by backend when key is absent or expired.
var ErrMiss = errors.New("cache miss")

const stripesCount = 256

// fillTimeout bounds a load shared by coalesced callers.
const fillTimeout = 30 * time.Second

const (
	postKeyPrefix = "post:"
	listKeyPrefix = "list:"
)

// nolint:gochecknoglobals
var requests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "agora",
		Subsystem: "cache",
		Name:      "requests_total",
		Help:      "Number of cache lookups by entry kind and result.",
	},
	[]string{"kind", "result"},
)

func init() {
	prometheus.MustRegister(requests)
}

// Backend is a byte-oriented key-value store with eviction.
type Backend interface {
	// Get returns ErrMiss when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}

// ListKey identifies a cached posts listing.
type ListKey string

// AllPosts is a listing of every post.
const AllPosts ListKey = listKeyPrefix + "all"

// ByAccessibility returns key of posts listing filtered by accessibility.
func ByAccessibility(a entities.Accessibility) ListKey {
	return ListKey(listKeyPrefix + "accessibility:" + string(a))
}

// ListKeys returns all listing keys the cache may hold.
func ListKeys() []ListKey {
	keys := make([]ListKey, 0, len(entities.Accessibilities)+1)
	keys = append(keys, AllPosts)
	for _, a := range entities.Accessibilities {
		keys = append(keys, ByAccessibility(a))
	}
	return keys
}

// stripe guards writes of a group of keys. gen is bumped by every Put and Invalidate,
// a fill is stored only if gen did not change while the value was loading.
type stripe struct {
	mu  sync.Mutex
	gen uint64
}

// Cache stores encoded copies of posts, so callers never share memory with it.
type Cache struct {
	b Backend

	posts [stripesCount]stripe
	lists stripe

	sf singleflight.Group
}

// New returns new instance of cache over backend b.
func New(b Backend) *Cache {
	return &Cache{b: b}
}

// GetPost returns post from cache or loads it with load and fills the cache.
// Errors of load are returned as is and are never cached.
func (c *Cache) GetPost(ctx context.Context, id string, load func(ctx context.Context) (*entities.Post, error)) (*entities.Post, error) {
	key := postKeyPrefix + id

	var p entities.Post
	b, err := c.lookup(ctx, "post", key, c.stripe(id), func(ctx context.Context) (interface{}, error) {
		return load(ctx)
	})
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(b, &p); err != nil {
		return nil, fmt.Errorf("failed to decode post %s: %w", id, err)
	}

	return &p, nil
}

// GetList returns cached posts listing or loads it with load and fills the cache.
func (c *Cache) GetList(ctx context.Context, key ListKey, load func(ctx context.Context) ([]*entities.Post, error)) ([]*entities.Post, error) {
	var pp []*entities.Post
	b, err := c.lookup(ctx, "list", string(key), &c.lists, func(ctx context.Context) (interface{}, error) {
		return load(ctx)
	})
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(b, &pp); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}

	return pp, nil
}

// PutPost stores p. It should be called after p is saved to storage.
func (c *Cache) PutPost(ctx context.Context, p *entities.Post) {
	b, err := json.Marshal(p)
	if err != nil {
		log.WithError(err).WithField("id", p.ID).Error("failed to encode post")
		c.InvalidatePost(ctx, p.ID)
		return
	}

	s := c.stripe(p.ID)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	if err := c.b.Set(ctx, postKeyPrefix+p.ID, b); err != nil {
		log.WithError(err).WithField("id", p.ID).Error("failed to put post")
		c.delete(ctx, postKeyPrefix+p.ID)
	}
}

// InvalidatePost removes post with id.
func (c *Cache) InvalidatePost(ctx context.Context, id string) {
	s := c.stripe(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	c.delete(ctx, postKeyPrefix+id)
}

// InvalidateLists removes every posts listing.
func (c *Cache) InvalidateLists(ctx context.Context) {
	c.lists.mu.Lock()
	defer c.lists.mu.Unlock()

	c.lists.gen++

	keys := ListKeys()
	s := make([]string, len(keys))
	for i, v := range keys {
		s[i] = string(v)
	}
	c.delete(ctx, s...)
}

func (c *Cache) lookup(ctx context.Context, kind, key string, s *stripe,
	load func(ctx context.Context) (interface{}, error)) ([]byte, error) {
	b, err := c.b.Get(ctx, key)
	switch {
	case err == nil:
		requests.WithLabelValues(kind, "hit").Inc()
		return b, nil
	case errors.Is(err, ErrMiss):
		requests.WithLabelValues(kind, "miss").Inc()
	default:
		requests.WithLabelValues(kind, "error").Inc()
		log.WithError(err).WithField("key", key).Warn("failed to get from cache")
	}

	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	// Callers only join a load started after the last write to the key.
	// The load is detached from callers' contexts, every caller stops waiting on its own ctx.
	ch := c.sf.DoChan(fmt.Sprintf("%s#%d", key, gen), func() (interface{}, error) {
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fillTimeout)
		defer cancel()

		v, err := load(fctx)
		if err != nil {
			return nil, err
		}

		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		if s.gen == gen {
			if err := c.b.Set(fctx, key, b); err != nil {
				log.WithError(err).WithField("key", key).Warn("failed to fill cache")
			}
		}

		return b, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *Cache) delete(ctx context.Context, keys ...string) {
	if err := c.b.Delete(ctx, keys...); err != nil {
		log.WithError(err).WithField("keys", keys).Error("failed to delete from cache")
	}
}

func (c *Cache) stripe(id string) *stripe {
	h := fnv.New32a()
	h.Write([]byte(id)) // nolint:errcheck
	return &c.posts[h.Sum32()%stripesCount]
}
