package entities

import "errors"

var (
	// ErrInvalidInput is returned when post or reply fields fail validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrReplyNotFound is returned when reply id does not resolve within the post.
	ErrReplyNotFound = errors.New("reply not found")

	// ErrSubReplyNotFound is returned when sub-reply id does not resolve within the reply.
	ErrSubReplyNotFound = errors.New("sub-reply not found")

	// ErrInvalidTransition is returned when requested accessibility is not allowed for requester's role.
	ErrInvalidTransition = errors.New("invalid accessibility transition")

	// ErrAlreadyLiked ...
	ErrAlreadyLiked = errors.New("post is already liked by user")

	// ErrNotLiked ...
	ErrNotLiked = errors.New("post is not liked by user")
)
