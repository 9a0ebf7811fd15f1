// Package service contains interface for service business-logic.
package service

import (
	"context"
	"errors"

	"github.com/agora-forum/agora/internal/entities"
)

//go:generate mockgen -destination=./mock/service.go -package=mock -source=service.go

var (
	// ErrPostNotFound is returned when post does not exist.
	ErrPostNotFound = errors.New("post not found")
	// ErrUserNotFound is returned when requester is unknown to users directory.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnauthorized is returned when requester is neither post's owner nor an admin.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrAuthorNotActive is returned when an inactive user tries to create a post or reply.
	ErrAuthorNotActive = errors.New("author is not active")
	// ErrUpstreamUnavailable is returned when users directory can not be reached.
	ErrUpstreamUnavailable = errors.New("users directory is unavailable")

	// ErrReplyNotFound ...
	ErrReplyNotFound = entities.ErrReplyNotFound
	// ErrSubReplyNotFound ...
	ErrSubReplyNotFound = entities.ErrSubReplyNotFound
	// ErrInvalidTransition ...
	ErrInvalidTransition = entities.ErrInvalidTransition
	// ErrAlreadyLiked ...
	ErrAlreadyLiked = entities.ErrAlreadyLiked
	// ErrNotLiked ...
	ErrNotLiked = entities.ErrNotLiked
	// ErrInvalidPost is returned when post or reply fields are invalid.
	ErrInvalidPost = entities.ErrInvalidInput
)

// CreatePostParams ...
type CreatePostParams struct {
	Title         string
	Content       string
	Accessibility entities.Accessibility
	Images        []string
	Attachments   []string
}

// UpdatePostParams ...
type UpdatePostParams struct {
	Title      string
	Content    string
	IsArchived bool
}

// Service is the only entry point to posts. Every mutation of a post is serialized with
// other mutations of the same post and is reflected in cache before the call returns.
type Service interface {
	CreatePost(ctx context.Context, requester int64, p CreatePostParams) (*entities.Post, error)
	UpdatePost(ctx context.Context, requester int64, id string, p UpdatePostParams) (*entities.Post, error)
	// DeletePost marks post as deleted. Post remains available by id and accessibility.
	DeletePost(ctx context.Context, requester int64, id string) (*entities.Post, error)
	UpdateAccessibility(ctx context.Context, requester int64, id string, to entities.Accessibility) (*entities.Post, error)

	AddReply(ctx context.Context, requester int64, postID, comment string) (*entities.Post, error)
	AddSubReply(ctx context.Context, requester int64, postID, replyID, comment string) (*entities.Post, error)
	UpdateReply(ctx context.Context, requester int64, postID, replyID, comment string) (*entities.Post, error)
	UpdateSubReply(ctx context.Context, requester int64, postID, replyID, subReplyID, comment string) (*entities.Post, error)
	SoftDeleteReply(ctx context.Context, requester int64, postID, replyID string) (*entities.Post, error)
	SoftDeleteSubReply(ctx context.Context, requester int64, postID, replyID, subReplyID string) (*entities.Post, error)

	LikePost(ctx context.Context, requester int64, postID string) (*entities.Post, error)
	UnlikePost(ctx context.Context, requester int64, postID string) (*entities.Post, error)
	IncrementViews(ctx context.Context, postID string) (*entities.Post, error)

	GetPost(ctx context.Context, id string) (*entities.PostWithAuthor, error)
	ListPosts(ctx context.Context) ([]*entities.PostWithAuthor, error)
	ListPostsByAccessibility(ctx context.Context, a entities.Accessibility) ([]*entities.PostWithAuthor, error)
	ListPostsByUser(ctx context.Context, userID int64) ([]*entities.PostWithAuthor, error)
	// ListTopPostsByUser returns up to 3 user's posts with the most replies.
	ListTopPostsByUser(ctx context.Context, userID int64) ([]*entities.PostWithAuthor, error)
}
