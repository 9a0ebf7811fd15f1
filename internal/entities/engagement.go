package entities

import (
	"fmt"
	"time"
)

// IncrementViews ...
func (p *Post) IncrementViews(now time.Time) {
	p.Metadata.Views++
	p.Metadata.LastActivityAt = now
}

// IsLikedBy ...
func (p *Post) IsLikedBy(user int64) bool {
	return p.likeIndex(user) >= 0
}

// Like adds user to post's likes.
func (p *Post) Like(user int64, now time.Time) error {
	if p.IsLikedBy(user) {
		return fmt.Errorf("%w: user=%d", ErrAlreadyLiked, user)
	}

	p.Metadata.LikedBy = append(p.Metadata.LikedBy, user)
	p.Metadata.Likes = len(p.Metadata.LikedBy)
	p.Metadata.LastActivityAt = now

	return nil
}

// Unlike removes user from post's likes.
func (p *Post) Unlike(user int64, now time.Time) error {
	i := p.likeIndex(user)
	if i < 0 {
		return fmt.Errorf("%w: user=%d", ErrNotLiked, user)
	}

	p.Metadata.LikedBy = append(p.Metadata.LikedBy[:i], p.Metadata.LikedBy[i+1:]...)
	p.Metadata.Likes = len(p.Metadata.LikedBy)
	p.Metadata.LastActivityAt = now

	return nil
}

func (p *Post) likeIndex(user int64) int {
	for i, v := range p.Metadata.LikedBy {
		if v == user {
			return i
		}
	}

	return -1
}
