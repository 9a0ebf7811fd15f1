package impl

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agora-forum/agora/internal/cache"
	cachememory "github.com/agora-forum/agora/internal/cache/memory"
	"github.com/agora-forum/agora/internal/directory"
	dirmock "github.com/agora-forum/agora/internal/directory/mock"
	"github.com/agora-forum/agora/internal/entities"
	"github.com/agora-forum/agora/internal/service"
	"github.com/agora-forum/agora/internal/storage"
	"github.com/agora-forum/agora/internal/storage/memory"
	storagemock "github.com/agora-forum/agora/internal/storage/mock"
)

const (
	owner       int64 = 7
	user        int64 = 42
	outsider    int64 = 99
	admin       int64 = 1
	superAdmin  int64 = 2
	inactive    int64 = 5
	unknown     int64 = 404
	unavailable int64 = 503
)

var ctx = context.Background()

var errTest = errors.New("test")

func stubDirectory(d *dirmock.MockDirectory) {
	d.EXPECT().GetPermissions(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id int64) (*entities.Permissions, error) {
			switch id {
			case admin:
				return &entities.Permissions{UserID: id, Role: entities.Admin, Active: true}, nil
			case superAdmin:
				return &entities.Permissions{UserID: id, Role: entities.SuperAdmin, Active: true}, nil
			case inactive:
				return &entities.Permissions{UserID: id, Role: entities.Visitor, Active: false}, nil
			case unknown:
				return nil, directory.ErrUserNotFound
			case unavailable:
				return nil, fmt.Errorf("%w: timeout", directory.ErrUnavailable)
			default:
				return &entities.Permissions{UserID: id, Role: entities.Normal, Active: true}, nil
			}
		},
	).AnyTimes()

	d.EXPECT().GetProfile(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id int64) (*entities.Profile, error) {
			if id == unavailable {
				return nil, directory.ErrUnavailable
			}
			return &entities.Profile{ID: id, FirstName: fmt.Sprintf("user%d", id)}, nil
		},
	).AnyTimes()
}

func newTestService(t *testing.T) (*srv, storage.Storage) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	d := dirmock.NewMockDirectory(ctrl)
	stubDirectory(d)

	st := memory.New()
	s := New(st, d, cache.New(cachememory.New(100, time.Minute))).(*srv)

	return s, st
}

func createPost(t *testing.T, s service.Service, by int64) *entities.Post {
	p, err := s.CreatePost(ctx, by, service.CreatePostParams{Title: "title", Content: "content"})
	require.NoError(t, err)
	return p
}

// requireConsistent checks that cached post equals stored one.
func requireConsistent(t *testing.T, s *srv, st storage.Storage, id string) *entities.Post {
	stored, err := st.GetPost(ctx, id)
	require.NoError(t, err)

	cached, err := s.GetPost(ctx, id)
	require.NoError(t, err)
	require.Equal(t, stored, &cached.Post)

	return stored
}

func TestSrv_Scenario(t *testing.T) {
	s, st := newTestService(t)

	p1 := createPost(t, s, owner)

	got, err := s.GetPost(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.Unpublished, got.Accessibility)
	assert.Zero(t, got.Metadata.Views)
	assert.Zero(t, got.Metadata.Likes)
	require.NotNil(t, got.Author)
	assert.Equal(t, owner, got.Author.ID)

	for i := 0; i < 3; i++ {
		_, err := s.IncrementViews(ctx, p1.ID)
		require.NoError(t, err)
	}
	got, err = s.GetPost(ctx, p1.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, got.Metadata.Views)

	_, err = s.LikePost(ctx, user, p1.ID)
	require.NoError(t, err)
	_, err = s.LikePost(ctx, user, p1.ID)
	require.True(t, errors.Is(err, service.ErrAlreadyLiked))

	got, err = s.GetPost(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Metadata.Likes)

	p, err := s.AddReply(ctx, user, p1.ID, "hi")
	require.NoError(t, err)
	require.Len(t, p.Replies, 1)
	reply := p.Replies[0]
	assert.Equal(t, "hi", reply.Comment)
	assert.False(t, reply.IsDeleted)

	_, err = s.SoftDeleteReply(ctx, outsider, p1.ID, reply.ID)
	require.True(t, errors.Is(err, service.ErrUnauthorized))

	got, err = s.GetPost(ctx, p1.ID)
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Replies[0].Comment)

	_, err = s.SoftDeleteReply(ctx, owner, p1.ID, reply.ID)
	require.NoError(t, err)

	stored := requireConsistent(t, s, st, p1.ID)
	require.Len(t, stored.Replies, 1)
	assert.True(t, stored.Replies[0].IsDeleted)
	assert.Equal(t, entities.DeletedReplyPlaceholder, stored.Replies[0].Comment)
	assert.Equal(t, reply.ID, stored.Replies[0].ID)
}

func TestSrv_CreatePost(t *testing.T) {
	tt := []struct {
		name   string
		by     int64
		params service.CreatePostParams
		err    error
	}{
		{
			name:   "default_accessibility",
			by:     owner,
			params: service.CreatePostParams{Title: "t", Content: "c"},
		},
		{
			name:   "published",
			by:     owner,
			params: service.CreatePostParams{Title: "t", Content: "c", Accessibility: entities.Published},
		},
		{
			name:   "banned",
			by:     owner,
			params: service.CreatePostParams{Title: "t", Content: "c", Accessibility: entities.Banned},
			err:    service.ErrInvalidPost,
		},
		{
			name:   "long_title",
			by:     owner,
			params: service.CreatePostParams{Title: strings.Repeat("a", 101), Content: "c"},
			err:    service.ErrInvalidPost,
		},
		{
			name:   "empty_content",
			by:     owner,
			params: service.CreatePostParams{Title: "t"},
			err:    service.ErrInvalidPost,
		},
		{
			name:   "inactive",
			by:     inactive,
			params: service.CreatePostParams{Title: "t", Content: "c"},
			err:    service.ErrAuthorNotActive,
		},
		{
			name:   "unknown",
			by:     unknown,
			params: service.CreatePostParams{Title: "t", Content: "c"},
			err:    service.ErrUserNotFound,
		},
		{
			name:   "unavailable",
			by:     unavailable,
			params: service.CreatePostParams{Title: "t", Content: "c"},
			err:    service.ErrUpstreamUnavailable,
		},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			s, st := newTestService(t)

			p, err := s.CreatePost(ctx, tc.by, tc.params)
			if tc.err != nil {
				require.True(t, errors.Is(err, tc.err), err)
				require.False(t, errors.Is(err, service.ErrUnauthorized))

				all, err := st.ListPosts(ctx)
				require.NoError(t, err)
				require.Empty(t, all)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.by, p.OwnerID)
			if tc.params.Accessibility == "" {
				require.Equal(t, entities.Unpublished, p.Accessibility)
			} else {
				require.Equal(t, tc.params.Accessibility, p.Accessibility)
			}
			requireConsistent(t, s, st, p.ID)
		})
	}
}

func TestSrv_UpdatePost(t *testing.T) {
	s, st := newTestService(t)
	p := createPost(t, s, owner)

	_, err := s.UpdatePost(ctx, outsider, p.ID, service.UpdatePostParams{Title: "x", Content: "y"})
	require.True(t, errors.Is(err, service.ErrUnauthorized))

	_, err = s.UpdatePost(ctx, owner, p.ID, service.UpdatePostParams{Title: "", Content: "y"})
	require.True(t, errors.Is(err, service.ErrInvalidPost))

	_, err = s.UpdatePost(ctx, owner, "missing", service.UpdatePostParams{Title: "x", Content: "y"})
	require.True(t, errors.Is(err, service.ErrPostNotFound))

	upd, err := s.UpdatePost(ctx, owner, p.ID, service.UpdatePostParams{Title: "new", Content: "body", IsArchived: true})
	require.NoError(t, err)
	require.Equal(t, "new", upd.Title)
	require.True(t, upd.IsArchived)

	_, err = s.UpdatePost(ctx, admin, p.ID, service.UpdatePostParams{Title: "moderated", Content: "body"})
	require.NoError(t, err)

	stored := requireConsistent(t, s, st, p.ID)
	require.Equal(t, "moderated", stored.Title)
}

func TestSrv_UpdateAccessibility(t *testing.T) {
	tt := []struct {
		name      string
		requester int64
		to        entities.Accessibility
		err       error
	}{
		{name: "admin_ban", requester: admin, to: entities.Banned},
		{name: "admin_publish", requester: admin, to: entities.Published},
		{name: "admin_hide", requester: admin, to: entities.Hidden, err: service.ErrInvalidTransition},
		{name: "superadmin_ban", requester: superAdmin, to: entities.Banned},
		{name: "superadmin_unpublish", requester: superAdmin, to: entities.Unpublished, err: service.ErrInvalidTransition},
		{name: "owner_hide", requester: owner, to: entities.Hidden},
		{name: "owner_publish", requester: owner, to: entities.Published, err: service.ErrInvalidTransition},
		{name: "owner_ban", requester: owner, to: entities.Banned, err: service.ErrInvalidTransition},
		{name: "owner_delete", requester: owner, to: entities.Deleted, err: service.ErrInvalidTransition},
		{name: "outsider_hide", requester: outsider, to: entities.Hidden, err: service.ErrUnauthorized},
		{name: "outsider_publish", requester: outsider, to: entities.Published, err: service.ErrUnauthorized},
		{name: "unknown", requester: unknown, to: entities.Banned, err: service.ErrUserNotFound},
		{name: "unavailable", requester: unavailable, to: entities.Banned, err: service.ErrUpstreamUnavailable},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			s, st := newTestService(t)
			p := createPost(t, s, owner)

			_, err := s.UpdateAccessibility(ctx, tc.requester, p.ID, tc.to)

			stored := requireConsistent(t, s, st, p.ID)
			if tc.err != nil {
				require.True(t, errors.Is(err, tc.err), err)
				require.Equal(t, entities.Unpublished, stored.Accessibility)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.to, stored.Accessibility)
		})
	}
}

func TestSrv_UpdateAccessibility_Lists(t *testing.T) {
	s, _ := newTestService(t)
	p := createPost(t, s, owner)

	published, err := s.ListPostsByAccessibility(ctx, entities.Published)
	require.NoError(t, err)
	require.Empty(t, published)

	_, err = s.UpdateAccessibility(ctx, admin, p.ID, entities.Published)
	require.NoError(t, err)

	published, err = s.ListPostsByAccessibility(ctx, entities.Published)
	require.NoError(t, err)
	require.Len(t, published, 1)
	require.Equal(t, p.ID, published[0].ID)

	unpublished, err := s.ListPostsByAccessibility(ctx, entities.Unpublished)
	require.NoError(t, err)
	require.Empty(t, unpublished)
}

func TestSrv_DeletePost(t *testing.T) {
	s, st := newTestService(t)
	p := createPost(t, s, owner)

	_, err := s.DeletePost(ctx, outsider, p.ID)
	require.True(t, errors.Is(err, service.ErrUnauthorized))

	_, err = s.DeletePost(ctx, owner, "missing")
	require.True(t, errors.Is(err, service.ErrPostNotFound))

	for i := 0; i < 2; i++ {
		deleted, err := s.DeletePost(ctx, owner, p.ID)
		require.NoError(t, err)
		require.Equal(t, entities.Deleted, deleted.Accessibility)
	}

	_, err = s.UpdateAccessibility(ctx, admin, p.ID, entities.Published)
	require.True(t, errors.Is(err, service.ErrInvalidTransition))

	stored := requireConsistent(t, s, st, p.ID)
	require.Equal(t, entities.Deleted, stored.Accessibility)

	deleted, err := s.ListPostsByAccessibility(ctx, entities.Deleted)
	require.NoError(t, err)
	require.Len(t, deleted, 1)

	q := createPost(t, s, owner)
	_, err = s.DeletePost(ctx, admin, q.ID)
	require.NoError(t, err)
}

func TestSrv_AddSubReply(t *testing.T) {
	s, st := newTestService(t)
	p := createPost(t, s, owner)

	p, err := s.AddReply(ctx, user, p.ID, "hi")
	require.NoError(t, err)
	replyID := p.Replies[0].ID

	_, err = s.AddSubReply(ctx, user, p.ID, "missing", "hey")
	require.True(t, errors.Is(err, service.ErrReplyNotFound))

	_, err = s.AddSubReply(ctx, inactive, p.ID, replyID, "hey")
	require.True(t, errors.Is(err, service.ErrAuthorNotActive))

	_, err = s.AddReply(ctx, inactive, p.ID, "hey")
	require.True(t, errors.Is(err, service.ErrAuthorNotActive))

	_, err = s.AddReply(ctx, user, "missing", "hey")
	require.True(t, errors.Is(err, service.ErrPostNotFound))

	p, err = s.AddSubReply(ctx, owner, p.ID, replyID, "thanks")
	require.NoError(t, err)
	require.Len(t, p.Replies[0].SubReplies, 1)
	require.Equal(t, owner, p.Replies[0].SubReplies[0].AuthorID)

	requireConsistent(t, s, st, p.ID)
}

// Editing replies is not restricted to their authors, unlike soft deletion.
func TestSrv_UpdateReply_AnyUserMayEdit(t *testing.T) {
	s, st := newTestService(t)
	p := createPost(t, s, owner)

	p, err := s.AddReply(ctx, user, p.ID, "hi")
	require.NoError(t, err)
	replyID := p.Replies[0].ID

	p, err = s.AddSubReply(ctx, user, p.ID, replyID, "sub")
	require.NoError(t, err)
	subReplyID := p.Replies[0].SubReplies[0].ID

	_, err = s.UpdateReply(ctx, outsider, p.ID, replyID, "edited by outsider")
	require.NoError(t, err)

	_, err = s.UpdateSubReply(ctx, outsider, p.ID, replyID, subReplyID, "sub edited by outsider")
	require.NoError(t, err)

	stored := requireConsistent(t, s, st, p.ID)
	require.Equal(t, "edited by outsider", stored.Replies[0].Comment)
	require.Equal(t, "sub edited by outsider", stored.Replies[0].SubReplies[0].Comment)

	_, err = s.SoftDeleteReply(ctx, outsider, p.ID, replyID)
	require.True(t, errors.Is(err, service.ErrUnauthorized))
}

func TestSrv_UpdateReply_NotFound(t *testing.T) {
	s, _ := newTestService(t)
	p := createPost(t, s, owner)

	p, err := s.AddReply(ctx, user, p.ID, "hi")
	require.NoError(t, err)
	replyID := p.Replies[0].ID

	_, err = s.UpdateReply(ctx, user, p.ID, "missing", "x")
	require.True(t, errors.Is(err, service.ErrReplyNotFound))

	_, err = s.UpdateSubReply(ctx, user, p.ID, replyID, "missing", "x")
	require.True(t, errors.Is(err, service.ErrSubReplyNotFound))

	_, err = s.UpdateSubReply(ctx, user, p.ID, "missing", "missing", "x")
	require.True(t, errors.Is(err, service.ErrReplyNotFound))

	_, err = s.SoftDeleteReply(ctx, owner, p.ID, replyID)
	require.NoError(t, err)

	_, err = s.UpdateReply(ctx, user, p.ID, replyID, "x")
	require.True(t, errors.Is(err, service.ErrReplyNotFound))
}

func TestSrv_SoftDeleteSubReply(t *testing.T) {
	s, st := newTestService(t)
	p := createPost(t, s, owner)

	p, err := s.AddReply(ctx, user, p.ID, "hi")
	require.NoError(t, err)
	replyID := p.Replies[0].ID

	p, err = s.AddSubReply(ctx, user, p.ID, replyID, "sub")
	require.NoError(t, err)
	subReplyID := p.Replies[0].SubReplies[0].ID

	_, err = s.SoftDeleteSubReply(ctx, outsider, p.ID, replyID, subReplyID)
	require.True(t, errors.Is(err, service.ErrUnauthorized))

	once, err := s.SoftDeleteSubReply(ctx, admin, p.ID, replyID, subReplyID)
	require.NoError(t, err)
	twice, err := s.SoftDeleteSubReply(ctx, owner, p.ID, replyID, subReplyID)
	require.NoError(t, err)

	require.Equal(t, once.Replies, twice.Replies)
	require.True(t, twice.Replies[0].SubReplies[0].IsDeleted)
	require.Equal(t, entities.DeletedReplyPlaceholder, twice.Replies[0].SubReplies[0].Comment)

	_, err = s.SoftDeleteSubReply(ctx, owner, p.ID, replyID, "missing")
	require.True(t, errors.Is(err, service.ErrSubReplyNotFound))

	requireConsistent(t, s, st, p.ID)
}

func TestSrv_UnlikePost(t *testing.T) {
	s, st := newTestService(t)
	p := createPost(t, s, owner)

	_, err := s.UnlikePost(ctx, user, p.ID)
	require.True(t, errors.Is(err, service.ErrNotLiked))

	_, err = s.LikePost(ctx, user, p.ID)
	require.NoError(t, err)
	_, err = s.LikePost(ctx, outsider, p.ID)
	require.NoError(t, err)

	p, err = s.UnlikePost(ctx, user, p.ID)
	require.NoError(t, err)
	require.Equal(t, 1, p.Metadata.Likes)
	require.Equal(t, []int64{outsider}, p.Metadata.LikedBy)

	_, err = s.UnlikePost(ctx, user, p.ID)
	require.True(t, errors.Is(err, service.ErrNotLiked))

	_, err = s.LikePost(ctx, user, "missing")
	require.True(t, errors.Is(err, service.ErrPostNotFound))

	requireConsistent(t, s, st, p.ID)
}

func TestSrv_IncrementViews_NotFound(t *testing.T) {
	s, _ := newTestService(t)

	_, err := s.IncrementViews(ctx, "missing")
	require.True(t, errors.Is(err, service.ErrPostNotFound))

	_, err = s.GetPost(ctx, "missing")
	require.True(t, errors.Is(err, service.ErrPostNotFound))
}

func TestSrv_ConcurrentMutations(t *testing.T) {
	s, st := newTestService(t)
	p := createPost(t, s, owner)

	const users = 50

	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(3)
		go func(i int) {
			defer wg.Done()
			_, err := s.LikePost(ctx, int64(1000+i), p.ID)
			assert.NoError(t, err)
		}(i)
		go func(i int) {
			defer wg.Done()
			_, err := s.UpdatePost(ctx, owner, p.ID, service.UpdatePostParams{Title: fmt.Sprintf("title %d", i), Content: "c"})
			assert.NoError(t, err)
		}(i)
		go func() {
			defer wg.Done()
			_, err := s.GetPost(ctx, p.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored := requireConsistent(t, s, st, p.ID)
	require.Equal(t, users, stored.Metadata.Likes)
	require.Len(t, stored.Metadata.LikedBy, users)

	all, err := s.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, stored, &all[0].Post)
}

func TestSrv_UpdatePost_ReadYourWrites(t *testing.T) {
	s, _ := newTestService(t)
	p := createPost(t, s, owner)

	for i := 0; i < 20; i++ {
		title := fmt.Sprintf("title %d", i)

		var wg sync.WaitGroup
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.LikePost(ctx, int64(2000+i), p.ID)
			assert.NoError(t, err)
		}(i)

		_, err := s.UpdatePost(ctx, owner, p.ID, service.UpdatePostParams{Title: title, Content: "c"})
		require.NoError(t, err)

		got, err := s.GetPost(ctx, p.ID)
		require.NoError(t, err)
		require.Equal(t, title, got.Title)

		wg.Wait()
	}

	got, err := s.GetPost(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 20, got.Metadata.Likes)
}

func TestSrv_ListPosts(t *testing.T) {
	s, _ := newTestService(t)

	p1 := createPost(t, s, owner)
	p2 := createPost(t, s, user)

	all, err := s.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, p1.ID, all[0].ID)
	require.Equal(t, p2.ID, all[1].ID)
	require.Equal(t, user, all[1].Author.ID)

	_, err = s.LikePost(ctx, outsider, p1.ID)
	require.NoError(t, err)
	p3 := createPost(t, s, owner)

	all, err = s.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, 1, all[0].Metadata.Likes)
	require.Equal(t, p3.ID, all[2].ID)

	byUser, err := s.ListPostsByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, byUser, 2)
	require.Equal(t, p1.ID, byUser[0].ID)
	require.Equal(t, p3.ID, byUser[1].ID)
}

func TestSrv_ListTopPostsByUser(t *testing.T) {
	s, _ := newTestService(t)

	top, err := s.ListTopPostsByUser(ctx, owner)
	require.NoError(t, err)
	require.Empty(t, top)

	replies := []int{1, 3, 0, 3, 2}
	ids := make([]string, len(replies))
	for i, n := range replies {
		p := createPost(t, s, owner)
		ids[i] = p.ID
		for j := 0; j < n; j++ {
			_, err := s.AddReply(ctx, user, p.ID, "hi")
			require.NoError(t, err)
		}
	}
	createPost(t, s, user)

	top, err = s.ListTopPostsByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, top, 3)
	require.Equal(t, ids[1], top[0].ID)
	require.Equal(t, ids[3], top[1].ID)
	require.Equal(t, ids[4], top[2].ID)

	s2, _ := newTestService(t)
	q1 := createPost(t, s2, owner)
	q2 := createPost(t, s2, owner)
	_, err = s2.AddReply(ctx, user, q2.ID, "hi")
	require.NoError(t, err)

	top, err = s2.ListTopPostsByUser(ctx, owner)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, q2.ID, top[0].ID)
	require.Equal(t, q1.ID, top[1].ID)
}

func TestSrv_GetPost_ProfileUnavailable(t *testing.T) {
	s, _ := newTestService(t)

	p := createPost(t, s, unavailable+1)
	got, err := s.GetPost(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Author)

	// owner whose profile lookup fails is still listed, without author
	p.OwnerID = unavailable
	require.NoError(t, s.s.SavePost(ctx, p))
	s.c.InvalidatePost(ctx, p.ID)

	got, err = s.GetPost(ctx, p.ID)
	require.NoError(t, err)
	require.Nil(t, got.Author)
}

func TestSrv_StorageFailureInvalidatesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := storagemock.NewMockStorage(ctrl)
	d := dirmock.NewMockDirectory(ctrl)
	stubDirectory(d)

	c := cache.New(cachememory.New(100, time.Minute))
	s := New(st, d, c)

	p, err := entities.NewPost(owner, "t", "c", entities.Published, time.Now().UTC())
	require.NoError(t, err)
	c.PutPost(ctx, p)

	st.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, f func(s storage.Storage) error) error {
		return f(st)
	})
	st.EXPECT().GetPost(gomock.Any(), p.ID).Return(p.Clone(), nil)
	st.EXPECT().SavePost(gomock.Any(), gomock.Any()).Return(errTest)

	_, err = s.LikePost(ctx, user, p.ID)
	require.True(t, errors.Is(err, errTest))

	st.EXPECT().GetPost(gomock.Any(), p.ID).Return(p.Clone(), nil)
	got, err := s.GetPost(ctx, p.ID)
	require.NoError(t, err)
	require.Zero(t, got.Metadata.Likes)
}

func TestSrv_DomainErrorKeepsCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	st := storagemock.NewMockStorage(ctrl)
	d := dirmock.NewMockDirectory(ctrl)
	stubDirectory(d)

	c := cache.New(cachememory.New(100, time.Minute))
	s := New(st, d, c)

	p, err := entities.NewPost(owner, "t", "c", entities.Published, time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, p.Like(user, time.Now().UTC()))
	c.PutPost(ctx, p)

	st.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, f func(s storage.Storage) error) error {
		return f(st)
	})
	st.EXPECT().GetPost(gomock.Any(), p.ID).Return(p.Clone(), nil)

	_, err = s.LikePost(ctx, user, p.ID)
	require.True(t, errors.Is(err, service.ErrAlreadyLiked))

	got, err := s.GetPost(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Metadata.Likes)
}
