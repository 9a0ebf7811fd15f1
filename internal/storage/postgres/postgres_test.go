//+build integration

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	m "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/agora-forum/agora/internal/entities"
	"github.com/agora-forum/agora/internal/storage"
)

var (
	db  *sql.DB
	ctx = context.Background()
	s   storage.Storage
)

func TestMain(m *testing.M) {
	shutdown := setup()

	s = New(db)

	code := m.Run()
	shutdown()
	os.Exit(code)
}

func setup() func() {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:12",
		Env:          map[string]string{"POSTGRES_PASSWORD": "root"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
	})
	if err != nil {
		logrus.WithError(err).Fatalf("failed to create container")
	}

	if err := c.Start(ctx); err != nil {
		logrus.WithError(err).Fatal("failed to start container")
	}

	host, err := c.Host(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to get host")
	}

	port, err := c.MappedPort(ctx, "5432")
	if err != nil {
		logrus.WithError(err).Fatal("failed to map port")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=postgres password=root sslmode=disable", host, port.Int())

	db, err = sql.Open("postgres", dsn)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open connection")
	}

	if err := db.Ping(); err != nil {
		logrus.WithError(err).Fatal("failed to ping postgres")
	}

	shutdownFn := func() {
		if c != nil {
			c.Terminate(ctx)
		}
	}

	migrate("postgres", "root", host, "postgres", port.Int())

	return shutdownFn
}

func migrate(username, password, hostname, dbname string, port int) {
	_, currFile, _, ok := runtime.Caller(0)
	if !ok {
		logrus.Fatal("failed to get current file location")
	}

	migrations := filepath.Join(currFile, "../../../../scripts/migrations/postgres/")

	migrator, err := m.New(
		fmt.Sprintf("file://%s", migrations),
		fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
			username, password, hostname, port, dbname),
	)
	if err != nil {
		logrus.WithError(err).Fatal("failed to create migrator")
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil {
		logrus.WithError(err).Fatal("failed to migrate")
	}
}

func cleanup(t *testing.T) {
	_, err := db.ExecContext(ctx, `DELETE FROM post`)
	require.NoError(t, err)
}

func newPost(t *testing.T, owner int64, a entities.Accessibility) *entities.Post {
	p, err := entities.NewPost(owner, "title", "content", a, time.Now().UTC().Truncate(time.Millisecond))
	require.NoError(t, err)
	return p
}

func TestPg_Ping(t *testing.T) {
	require.NoError(t, s.Ping(ctx))
}

func TestPg_GetPost(t *testing.T) {
	defer cleanup(t)

	for _, id := range []string{"8c6a0b4e-6a4b-4c1e-9d4a-0f3f6d8d2b11", "abc", "", "65f1a2b3c4d5e6f708192a3b"} {
		_, err := s.GetPost(ctx, id)
		require.True(t, errors.Is(err, storage.ErrNotFound), id)
	}

	require.NoError(t, s.InTx(ctx, func(tx storage.Storage) error {
		_, err := tx.GetPost(ctx, "abc")
		require.True(t, errors.Is(err, storage.ErrNotFound))
		return nil
	}))
}

func TestPg_SavePost(t *testing.T) {
	defer cleanup(t)

	now := time.Now().UTC().Truncate(time.Millisecond)
	p := newPost(t, 7, entities.Published)
	p.Images = []string{"https://img/1.png"}

	r, err := p.AddReply(42, "nice", now)
	require.NoError(t, err)
	_, err = p.AddSubReply(r.ID, 7, "thanks", now)
	require.NoError(t, err)
	require.NoError(t, p.Like(42, now))
	p.IncrementViews(now)

	require.NoError(t, s.SavePost(ctx, p))

	got, err := s.GetPost(ctx, p.ID)
	require.NoError(t, err)

	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.OwnerID, got.OwnerID)
	assert.Equal(t, p.Title, got.Title)
	assert.Equal(t, p.Content, got.Content)
	assert.Equal(t, p.Accessibility, got.Accessibility)
	assert.Equal(t, p.Images, got.Images)
	assert.Empty(t, got.Attachments)
	assert.EqualValues(t, 1, got.Metadata.Views)
	assert.Equal(t, 1, got.Metadata.Likes)
	assert.Equal(t, []int64{42}, got.Metadata.LikedBy)
	assert.Equal(t, p.Metadata.CreatedAt.Unix(), got.Metadata.CreatedAt.Unix())

	require.Len(t, got.Replies, 1)
	assert.Equal(t, r.ID, got.Replies[0].ID)
	assert.Equal(t, "nice", got.Replies[0].Comment)
	require.Len(t, got.Replies[0].SubReplies, 1)
	assert.Equal(t, "thanks", got.Replies[0].SubReplies[0].Comment)
	assert.EqualValues(t, 7, got.Replies[0].SubReplies[0].AuthorID)

	require.NoError(t, got.SoftDeleteReply(r.ID, now))
	require.NoError(t, got.SetAccessibility(entities.Hidden, entities.Normal, true, now))
	require.NoError(t, s.SavePost(ctx, got))

	again, err := s.GetPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.Hidden, again.Accessibility)
	assert.True(t, again.Replies[0].IsDeleted)
	assert.Equal(t, entities.DeletedReplyPlaceholder, again.Replies[0].Comment)
}

func TestPg_ListPosts(t *testing.T) {
	defer cleanup(t)

	p1 := newPost(t, 1, entities.Published)
	p2 := newPost(t, 2, entities.Unpublished)
	p3 := newPost(t, 1, entities.Published)
	for _, p := range []*entities.Post{p1, p2, p3} {
		require.NoError(t, s.SavePost(ctx, p))
	}

	ids := func(pp []*entities.Post) []string {
		out := make([]string, len(pp))
		for i, v := range pp {
			out[i] = v.ID
		}
		return out
	}

	all, err := s.ListPosts(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{p1.ID, p2.ID, p3.ID}, ids(all))

	published, err := s.ListPostsByAccessibility(ctx, entities.Published)
	require.NoError(t, err)
	require.Equal(t, []string{p1.ID, p3.ID}, ids(published))

	byOwner, err := s.ListPostsByOwner(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, []string{p2.ID}, ids(byOwner))

	none, err := s.ListPostsByOwner(ctx, 3)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestPg_InTx_Nested(t *testing.T) {
	require.Equal(t, errBeginCalledWithinTx, s.InTx(ctx, func(tx storage.Storage) error {
		return tx.InTx(ctx, func(storage.Storage) error { return nil })
	}))
}

func TestPg_InTx_Rollback(t *testing.T) {
	defer cleanup(t)

	errTest := errors.New("test")
	p := newPost(t, 1, entities.Published)

	require.Equal(t, errTest, s.InTx(ctx, func(tx storage.Storage) error {
		require.NoError(t, tx.SavePost(ctx, p))
		return errTest
	}))

	_, err := s.GetPost(ctx, p.ID)
	require.True(t, errors.Is(err, storage.ErrNotFound))
}

func TestPg_InTx_LocksPost(t *testing.T) {
	defer cleanup(t)

	p := newPost(t, 1, entities.Published)
	require.NoError(t, s.SavePost(ctx, p))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			assert.NoError(t, s.InTx(ctx, func(tx storage.Storage) error {
				cur, err := tx.GetPost(ctx, p.ID)
				if err != nil {
					return err
				}
				time.Sleep(10 * time.Millisecond)
				cur.IncrementViews(time.Now())
				return tx.SavePost(ctx, cur)
			}))
		}()
	}
	wg.Wait()

	got, err := s.GetPost(ctx, p.ID)
	require.NoError(t, err)
	require.EqualValues(t, 10, got.Metadata.Views)
}
