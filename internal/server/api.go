package server

import (
	"time"

	"github.com/agora-forum/agora/internal/entities"
)

// Response is an envelope of every response.
// swagger:model
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// CreatePostRequest ...
// swagger:model
type CreatePostRequest struct {
	Title   string `json:"title" validate:"required,max=100"`
	Content string `json:"content" validate:"required"`
	// UNPUBLISHED when empty.
	Accessibility string   `json:"accessibility" validate:"omitempty,oneof=UNPUBLISHED PUBLISHED"`
	Images        []string `json:"images" validate:"omitempty,dive,url"`
	Attachments   []string `json:"attachments" validate:"omitempty,dive,url"`
}

// UpdatePostRequest ...
// swagger:model
type UpdatePostRequest struct {
	Title      string `json:"title" validate:"required,max=100"`
	Content    string `json:"content" validate:"required"`
	IsArchived bool   `json:"isArchived"`
}

// UpdateAccessibilityRequest ...
// swagger:model
type UpdateAccessibilityRequest struct {
	Accessibility string `json:"accessibility" validate:"required"`
}

// ReplyRequest is a body of reply and sub-reply create and update requests.
// swagger:model
type ReplyRequest struct {
	Comment string `json:"comment" validate:"required,max=2000"`
}

// Post ...
// swagger:model
type Post struct {
	ID            string   `json:"id"`
	OwnerID       int64    `json:"ownerId"`
	Author        *Author  `json:"author,omitempty"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	Accessibility string   `json:"accessibility"`
	IsArchived    bool     `json:"isArchived"`
	Images        []string `json:"images"`
	Attachments   []string `json:"attachments"`
	Metadata      Metadata `json:"metadata"`
	Replies       []Reply  `json:"replies"`
}

// Author ...
type Author struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`
}

// Metadata ...
type Metadata struct {
	Views          uint64    `json:"views"`
	Likes          int       `json:"likes"`
	LikedBy        []int64   `json:"likedBy"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	LastActivityAt time.Time `json:"lastActivityAt"`
}

// Reply ...
type Reply struct {
	ID         string     `json:"id"`
	AuthorID   int64      `json:"authorId"`
	Comment    string     `json:"comment"`
	IsDeleted  bool       `json:"isDeleted"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	SubReplies []SubReply `json:"subReplies"`
}

// SubReply ...
type SubReply struct {
	ID        string    `json:"id"`
	AuthorID  int64     `json:"authorId"`
	Comment   string    `json:"comment"`
	IsDeleted bool      `json:"isDeleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toAPIPost(p *entities.Post, author *entities.Profile) *Post {
	out := &Post{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		Title:         p.Title,
		Content:       p.Content,
		Accessibility: string(p.Accessibility),
		IsArchived:    p.IsArchived,
		Images:        nonNil(p.Images),
		Attachments:   nonNil(p.Attachments),
		Metadata: Metadata{
			Views:          p.Metadata.Views,
			Likes:          p.Metadata.Likes,
			LikedBy:        p.Metadata.LikedBy,
			CreatedAt:      p.Metadata.CreatedAt,
			UpdatedAt:      p.Metadata.UpdatedAt,
			LastActivityAt: p.Metadata.LastActivityAt,
		},
		Replies: make([]Reply, len(p.Replies)),
	}

	if out.Metadata.LikedBy == nil {
		out.Metadata.LikedBy = []int64{}
	}

	if author != nil {
		out.Author = &Author{
			ID:              author.ID,
			Name:            author.DisplayName(),
			ProfileImageURL: author.ProfileImageURL,
		}
	}

	for i, r := range p.Replies {
		out.Replies[i] = Reply{
			ID:         r.ID,
			AuthorID:   r.AuthorID,
			Comment:    r.Comment,
			IsDeleted:  r.IsDeleted,
			CreatedAt:  r.CreatedAt,
			UpdatedAt:  r.UpdatedAt,
			SubReplies: make([]SubReply, len(r.SubReplies)),
		}

		for j, s := range r.SubReplies {
			out.Replies[i].SubReplies[j] = SubReply{
				ID:        s.ID,
				AuthorID:  s.AuthorID,
				Comment:   s.Comment,
				IsDeleted: s.IsDeleted,
				CreatedAt: s.CreatedAt,
				UpdatedAt: s.UpdatedAt,
			}
		}
	}

	return out
}

func toAPIPosts(pp []*entities.PostWithAuthor) []*Post {
	out := make([]*Post, len(pp))
	for i, p := range pp {
		out[i] = toAPIPost(&p.Post, p.Author)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
