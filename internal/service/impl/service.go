// Package impl is implementation of service interface.
package impl

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/agora-forum/agora/internal/cache"
	"github.com/agora-forum/agora/internal/directory"
	"github.com/agora-forum/agora/internal/entities"
	"github.com/agora-forum/agora/internal/service"
	"github.com/agora-forum/agora/internal/storage"
)

var log = logrus.WithField("layer", "service").WithField("package", "impl")

// topPostsLimit is a number of posts returned by ListTopPostsByUser.
const topPostsLimit = 3

type srv struct {
	s storage.Storage
	d directory.Directory
	c *cache.Cache
	l *locker

	now func() time.Time
}

// New creates new instance of service.
func New(s storage.Storage, d directory.Directory, c *cache.Cache) service.Service {
	return &srv{
		s:   s,
		d:   d,
		c:   c,
		l:   newLocker(),
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (s *srv) CreatePost(ctx context.Context, requester int64, params service.CreatePostParams) (*entities.Post, error) {
	if _, err := s.activeUser(ctx, requester); err != nil {
		return nil, err
	}

	p, err := entities.NewPost(requester, params.Title, params.Content, params.Accessibility, s.now())
	if err != nil {
		return nil, err
	}
	p.Images = params.Images
	p.Attachments = params.Attachments

	if err := s.s.SavePost(ctx, p); err != nil {
		s.c.InvalidateLists(ctx)
		return nil, fmt.Errorf("failed to save post: %w", err)
	}

	s.c.PutPost(ctx, p)
	s.c.InvalidateLists(ctx)

	return p, nil
}

func (s *srv) UpdatePost(ctx context.Context, requester int64, id string, params service.UpdatePostParams) (*entities.Post, error) {
	perm, err := s.permissions(ctx, requester)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, func(p *entities.Post) error {
		if !canModerate(p, requester, perm) {
			return service.ErrUnauthorized
		}

		return p.Edit(params.Title, params.Content, params.IsArchived, s.now())
	})
}

func (s *srv) DeletePost(ctx context.Context, requester int64, id string) (*entities.Post, error) {
	perm, err := s.permissions(ctx, requester)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, func(p *entities.Post) error {
		if !canModerate(p, requester, perm) {
			return service.ErrUnauthorized
		}

		if !p.MarkDeleted(s.now()) {
			log.WithField("id", p.ID).Debug("post is already deleted")
		}

		return nil
	})
}

func (s *srv) UpdateAccessibility(ctx context.Context, requester int64, id string, to entities.Accessibility) (*entities.Post, error) {
	perm, err := s.permissions(ctx, requester)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, id, func(p *entities.Post) error {
		if !canModerate(p, requester, perm) {
			return service.ErrUnauthorized
		}

		return p.SetAccessibility(to, perm.Role, p.OwnerID == requester, s.now())
	})
}

func (s *srv) AddReply(ctx context.Context, requester int64, postID, comment string) (*entities.Post, error) {
	if _, err := s.activeUser(ctx, requester); err != nil {
		return nil, err
	}

	return s.mutate(ctx, postID, func(p *entities.Post) error {
		_, err := p.AddReply(requester, comment, s.now())
		return err
	})
}

func (s *srv) AddSubReply(ctx context.Context, requester int64, postID, replyID, comment string) (*entities.Post, error) {
	if _, err := s.activeUser(ctx, requester); err != nil {
		return nil, err
	}

	return s.mutate(ctx, postID, func(p *entities.Post) error {
		_, err := p.AddSubReply(replyID, requester, comment, s.now())
		return err
	})
}

// UpdateReply replaces reply's comment. Any requester may edit any reply.
func (s *srv) UpdateReply(ctx context.Context, requester int64, postID, replyID, comment string) (*entities.Post, error) {
	log.WithField("requester", requester).WithField("post", postID).WithField("reply", replyID).Debug("update reply")

	return s.mutate(ctx, postID, func(p *entities.Post) error {
		return p.UpdateReply(replyID, comment, s.now())
	})
}

// UpdateSubReply replaces sub-reply's comment. Any requester may edit any sub-reply.
func (s *srv) UpdateSubReply(ctx context.Context, requester int64, postID, replyID, subReplyID, comment string) (*entities.Post, error) {
	log.WithField("requester", requester).WithField("post", postID).WithField("reply", replyID).
		WithField("sub_reply", subReplyID).Debug("update sub-reply")

	return s.mutate(ctx, postID, func(p *entities.Post) error {
		return p.UpdateSubReply(replyID, subReplyID, comment, s.now())
	})
}

func (s *srv) SoftDeleteReply(ctx context.Context, requester int64, postID, replyID string) (*entities.Post, error) {
	perm, err := s.permissions(ctx, requester)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, postID, func(p *entities.Post) error {
		if !canModerate(p, requester, perm) {
			return service.ErrUnauthorized
		}

		return p.SoftDeleteReply(replyID, s.now())
	})
}

func (s *srv) SoftDeleteSubReply(ctx context.Context, requester int64, postID, replyID, subReplyID string) (*entities.Post, error) {
	perm, err := s.permissions(ctx, requester)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, postID, func(p *entities.Post) error {
		if !canModerate(p, requester, perm) {
			return service.ErrUnauthorized
		}

		return p.SoftDeleteSubReply(replyID, subReplyID, s.now())
	})
}

func (s *srv) LikePost(ctx context.Context, requester int64, postID string) (*entities.Post, error) {
	return s.mutate(ctx, postID, func(p *entities.Post) error {
		return p.Like(requester, s.now())
	})
}

func (s *srv) UnlikePost(ctx context.Context, requester int64, postID string) (*entities.Post, error) {
	return s.mutate(ctx, postID, func(p *entities.Post) error {
		return p.Unlike(requester, s.now())
	})
}

func (s *srv) IncrementViews(ctx context.Context, postID string) (*entities.Post, error) {
	return s.mutate(ctx, postID, func(p *entities.Post) error {
		p.IncrementViews(s.now())
		return nil
	})
}

func (s *srv) GetPost(ctx context.Context, id string) (*entities.PostWithAuthor, error) {
	p, err := s.c.GetPost(ctx, id, func(ctx context.Context) (*entities.Post, error) {
		return getPost(ctx, s.s, id)
	})
	if err != nil {
		return nil, err
	}

	return s.withAuthors(ctx, []*entities.Post{p})[0], nil
}

func (s *srv) ListPosts(ctx context.Context) ([]*entities.PostWithAuthor, error) {
	pp, err := s.c.GetList(ctx, cache.AllPosts, func(ctx context.Context) ([]*entities.Post, error) {
		pp, err := s.s.ListPosts(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list posts: %w", err)
		}
		return pp, nil
	})
	if err != nil {
		return nil, err
	}

	return s.withAuthors(ctx, pp), nil
}

func (s *srv) ListPostsByAccessibility(ctx context.Context, a entities.Accessibility) ([]*entities.PostWithAuthor, error) {
	pp, err := s.c.GetList(ctx, cache.ByAccessibility(a), func(ctx context.Context) ([]*entities.Post, error) {
		pp, err := s.s.ListPostsByAccessibility(ctx, a)
		if err != nil {
			return nil, fmt.Errorf("failed to list posts by accessibility: %w", err)
		}
		return pp, nil
	})
	if err != nil {
		return nil, err
	}

	return s.withAuthors(ctx, pp), nil
}

func (s *srv) ListPostsByUser(ctx context.Context, userID int64) ([]*entities.PostWithAuthor, error) {
	pp, err := s.s.ListPostsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by owner: %w", err)
	}

	return s.withAuthors(ctx, pp), nil
}

func (s *srv) ListTopPostsByUser(ctx context.Context, userID int64) ([]*entities.PostWithAuthor, error) {
	pp, err := s.s.ListPostsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts by owner: %w", err)
	}

	sort.SliceStable(pp, func(i, j int) bool {
		return len(pp[i].Replies) > len(pp[j].Replies)
	})

	if len(pp) > topPostsLimit {
		pp = pp[:topPostsLimit]
	}

	return s.withAuthors(ctx, pp), nil
}

// mutate loads post, applies f and saves the result. Mutations of one post never interleave:
// they are serialized in process by the post's lock and across processes by the storage transaction.
// The cache is updated while the lock is still held.
func (s *srv) mutate(ctx context.Context, id string, f func(p *entities.Post) error) (*entities.Post, error) {
	unlock := s.l.Lock(id)
	defer unlock()

	var (
		out   *entities.Post
		saved bool
	)

	err := s.s.InTx(ctx, func(tx storage.Storage) error {
		p, err := getPost(ctx, tx, id)
		if err != nil {
			return err
		}

		if err := f(p); err != nil {
			return err
		}

		saved = true
		if err := tx.SavePost(ctx, p); err != nil {
			return fmt.Errorf("failed to save post: %w", err)
		}

		out = p
		return nil
	})

	if err != nil {
		if saved {
			// the write may or may not have reached storage
			s.c.InvalidatePost(ctx, id)
			s.c.InvalidateLists(ctx)
		}
		return nil, err
	}

	s.c.PutPost(ctx, out)
	s.c.InvalidateLists(ctx)

	return out, nil
}

func getPost(ctx context.Context, s storage.Storage, id string) (*entities.Post, error) {
	p, err := s.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: id=%s", service.ErrPostNotFound, id)
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return p, nil
}

func (s *srv) permissions(ctx context.Context, user int64) (*entities.Permissions, error) {
	p, err := s.d.GetPermissions(ctx, user)
	if err != nil {
		if errors.Is(err, directory.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: id=%d", service.ErrUserNotFound, user)
		}
		return nil, fmt.Errorf("%w: %s", service.ErrUpstreamUnavailable, err.Error())
	}

	return p, nil
}

func (s *srv) activeUser(ctx context.Context, user int64) (*entities.Permissions, error) {
	p, err := s.permissions(ctx, user)
	if err != nil {
		return nil, err
	}

	if !p.Active {
		return nil, fmt.Errorf("%w: id=%d", service.ErrAuthorNotActive, user)
	}

	return p, nil
}

// withAuthors decorates posts with owners' profiles. Profile lookup failures leave Author nil.
func (s *srv) withAuthors(ctx context.Context, pp []*entities.Post) []*entities.PostWithAuthor {
	profiles := make(map[int64]*entities.Profile)
	out := make([]*entities.PostWithAuthor, len(pp))

	for i, p := range pp {
		profile, ok := profiles[p.OwnerID]
		if !ok {
			var err error
			if profile, err = s.d.GetProfile(ctx, p.OwnerID); err != nil {
				log.WithError(err).WithField("user", p.OwnerID).Warn("failed to get author's profile")
			}
			profiles[p.OwnerID] = profile
		}

		out[i] = &entities.PostWithAuthor{Post: *p, Author: profile}
	}

	return out
}

func canModerate(p *entities.Post, requester int64, perm *entities.Permissions) bool {
	return p.OwnerID == requester || perm.Role.IsAdmin()
}
