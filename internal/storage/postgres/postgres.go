// Package postgres is implementation of storage interface.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/agora-forum/agora/internal/entities"
	"github.com/agora-forum/agora/internal/storage"
)

var log = logrus.WithField("layer", "storage").WithField("package", "postgres")
var errBeginCalledWithinTx = errors.New("can not run InTx in tx")

const selectPost = `
	SELECT id, owner_id, title, content, accessibility, is_archived, images, attachments,
		views, likes, liked_by, replies, created_at, updated_at, last_activity_at
	FROM post
`

type pg struct {
	ext sqlx.ExtContext
}

// postDTO keeps collections as jsonb, the whole reply tree is rewritten on every save.
type postDTO struct {
	ID             string    `db:"id"`
	OwnerID        int64     `db:"owner_id"`
	Title          string    `db:"title"`
	Content        string    `db:"content"`
	Accessibility  string    `db:"accessibility"`
	IsArchived     bool      `db:"is_archived"`
	Images         string    `db:"images"`
	Attachments    string    `db:"attachments"`
	Views          int64     `db:"views"`
	Likes          int       `db:"likes"`
	LikedBy        string    `db:"liked_by"`
	Replies        string    `db:"replies"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
	LastActivityAt time.Time `db:"last_activity_at"`
}

type replyDTO struct {
	ID         string        `json:"id"`
	AuthorID   int64         `json:"author_id"`
	Comment    string        `json:"comment"`
	IsDeleted  bool          `json:"is_deleted"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	SubReplies []subReplyDTO `json:"sub_replies"`
}

type subReplyDTO struct {
	ID        string    `json:"id"`
	AuthorID  int64     `json:"author_id"`
	Comment   string    `json:"comment"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates new instance of pg.
func New(db *sql.DB) storage.Storage {
	return pg{
		ext: sqlx.NewDb(db, "postgres"),
	}
}

func (s pg) InTx(ctx context.Context, f func(s storage.Storage) error) error {
	db, ok := s.ext.(*sqlx.DB)
	if !ok {
		return errBeginCalledWithinTx
	}

	tx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to create tx: %w", err)
	}

	if err := f(pg{ext: tx}); err != nil {
		if err := tx.Rollback(); err != nil {
			log.WithError(err).Error("failed to rollback tx")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}

	return nil
}

func (s pg) Ping(ctx context.Context) error {
	if _, err := s.ext.ExecContext(ctx, `SELECT 1`); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) SavePost(ctx context.Context, p *entities.Post) error {
	dto, err := toDTO(p)
	if err != nil {
		return err
	}

	if _, err := sqlx.NamedExecContext(ctx, s.ext,
		`
			INSERT INTO post(id, owner_id, title, content, accessibility, is_archived, images, attachments,
				views, likes, liked_by, replies, created_at, updated_at, last_activity_at)
			VALUES(:id, :owner_id, :title, :content, :accessibility, :is_archived, :images, :attachments,
				:views, :likes, :liked_by, :replies, :created_at, :updated_at, :last_activity_at)
			ON CONFLICT(id) DO UPDATE SET
				title=excluded.title, content=excluded.content, accessibility=excluded.accessibility,
				is_archived=excluded.is_archived, images=excluded.images, attachments=excluded.attachments,
				views=excluded.views, likes=excluded.likes, liked_by=excluded.liked_by, replies=excluded.replies,
				updated_at=excluded.updated_at, last_activity_at=excluded.last_activity_at
		`, dto,
	); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

// GetPost returns post by id. Within InTx the row stays locked until the transaction ends.
func (s pg) GetPost(ctx context.Context, id string) (*entities.Post, error) {
	// ids are uuids, anything else can not be stored
	if _, err := uuid.Parse(id); err != nil {
		return nil, storage.ErrNotFound
	}

	query := selectPost + `WHERE id = $1`
	if _, ok := s.ext.(*sqlx.Tx); ok {
		query += ` FOR UPDATE`
	}

	var p postDTO
	if err := sqlx.GetContext(ctx, s.ext, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return fromDTO(&p)
}

func (s pg) ListPosts(ctx context.Context) ([]*entities.Post, error) {
	return s.selectPosts(ctx, selectPost+`ORDER BY seq`)
}

func (s pg) ListPostsByAccessibility(ctx context.Context, a entities.Accessibility) ([]*entities.Post, error) {
	return s.selectPosts(ctx, selectPost+`WHERE accessibility = $1 ORDER BY seq`, string(a))
}

func (s pg) ListPostsByOwner(ctx context.Context, owner int64) ([]*entities.Post, error) {
	return s.selectPosts(ctx, selectPost+`WHERE owner_id = $1 ORDER BY seq`, owner)
}

func (s pg) selectPosts(ctx context.Context, query string, args ...interface{}) ([]*entities.Post, error) {
	var pp []*postDTO
	if err := sqlx.SelectContext(ctx, s.ext, &pp, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.Post, len(pp))
	for i, v := range pp {
		p, err := fromDTO(v)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}

	return out, nil
}

func toDTO(p *entities.Post) (*postDTO, error) {
	replies := make([]replyDTO, len(p.Replies))
	for i, r := range p.Replies {
		replies[i] = replyDTO{
			ID:         r.ID,
			AuthorID:   r.AuthorID,
			Comment:    r.Comment,
			IsDeleted:  r.IsDeleted,
			CreatedAt:  r.CreatedAt.UTC(),
			UpdatedAt:  r.UpdatedAt.UTC(),
			SubReplies: make([]subReplyDTO, len(r.SubReplies)),
		}
		for j, sr := range r.SubReplies {
			replies[i].SubReplies[j] = subReplyDTO{
				ID:        sr.ID,
				AuthorID:  sr.AuthorID,
				Comment:   sr.Comment,
				IsDeleted: sr.IsDeleted,
				CreatedAt: sr.CreatedAt.UTC(),
				UpdatedAt: sr.UpdatedAt.UTC(),
			}
		}
	}

	dto := postDTO{
		ID:             p.ID,
		OwnerID:        p.OwnerID,
		Title:          p.Title,
		Content:        p.Content,
		Accessibility:  string(p.Accessibility),
		IsArchived:     p.IsArchived,
		Views:          int64(p.Metadata.Views),
		Likes:          p.Metadata.Likes,
		CreatedAt:      p.Metadata.CreatedAt.UTC(),
		UpdatedAt:      p.Metadata.UpdatedAt.UTC(),
		LastActivityAt: p.Metadata.LastActivityAt.UTC(),
	}

	for _, v := range []struct {
		dst *string
		src interface{}
	}{
		{&dto.Images, nonNilStrings(p.Images)},
		{&dto.Attachments, nonNilStrings(p.Attachments)},
		{&dto.LikedBy, nonNilInts(p.Metadata.LikedBy)},
		{&dto.Replies, replies},
	} {
		b, err := json.Marshal(v.src)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal post %s: %w", p.ID, err)
		}
		*v.dst = string(b)
	}

	return &dto, nil
}

func fromDTO(dto *postDTO) (*entities.Post, error) {
	p := entities.Post{
		ID:            dto.ID,
		OwnerID:       dto.OwnerID,
		Title:         dto.Title,
		Content:       dto.Content,
		Accessibility: entities.Accessibility(dto.Accessibility),
		IsArchived:    dto.IsArchived,
		Metadata: entities.Metadata{
			Views:          uint64(dto.Views),
			Likes:          dto.Likes,
			CreatedAt:      dto.CreatedAt.UTC(),
			UpdatedAt:      dto.UpdatedAt.UTC(),
			LastActivityAt: dto.LastActivityAt.UTC(),
		},
	}

	var replies []replyDTO
	for _, v := range []struct {
		src string
		dst interface{}
	}{
		{dto.Images, &p.Images},
		{dto.Attachments, &p.Attachments},
		{dto.LikedBy, &p.Metadata.LikedBy},
		{dto.Replies, &replies},
	} {
		if err := json.Unmarshal([]byte(v.src), v.dst); err != nil {
			return nil, fmt.Errorf("failed to unmarshal post %s: %w", dto.ID, err)
		}
	}

	p.Replies = make([]entities.Reply, len(replies))
	for i, r := range replies {
		p.Replies[i] = entities.Reply{
			ID:         r.ID,
			AuthorID:   r.AuthorID,
			Comment:    r.Comment,
			IsDeleted:  r.IsDeleted,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
			SubReplies: make([]entities.SubReply, len(r.SubReplies)),
		}
		for j, sr := range r.SubReplies {
			p.Replies[i].SubReplies[j] = entities.SubReply{
				ID:        sr.ID,
				AuthorID:  sr.AuthorID,
				Comment:   sr.Comment,
				IsDeleted: sr.IsDeleted,
				CreatedAt: sr.CreatedAt,
				UpdatedAt: sr.UpdatedAt,
			}
		}
	}

	if p.Metadata.LikedBy == nil {
		p.Metadata.LikedBy = []int64{}
	}

	return &p, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilInts(s []int64) []int64 {
	if s == nil {
		return []int64{}
	}
	return s
}
