package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DeletedReplyPlaceholder replaces the comment of a soft-deleted reply or sub-reply.
const DeletedReplyPlaceholder = "[this reply has been deleted]"

// MaxCommentLength is a maximal length of reply's comment in characters.
const MaxCommentLength = 2000

func validateComment(comment string) error {
	if err := validate.Var(comment, "notblank"); err != nil {
		return fmt.Errorf("%w: comment can not be empty", ErrInvalidInput)
	}

	if err := validate.Var(comment, "max=2000"); err != nil {
		return fmt.Errorf("%w: comment is too long", ErrInvalidInput)
	}

	return nil
}

// AddReply appends a new reply to the post.
func (p *Post) AddReply(author int64, comment string, now time.Time) (*Reply, error) {
	if err := validateComment(comment); err != nil {
		return nil, err
	}

	p.Replies = append(p.Replies, Reply{
		ID:         uuid.NewString(),
		AuthorID:   author,
		Comment:    comment,
		CreatedAt:  now,
		UpdatedAt:  now,
		SubReplies: []SubReply{},
	})
	p.Metadata.LastActivityAt = now

	return &p.Replies[len(p.Replies)-1], nil
}

// AddSubReply appends a new sub-reply to the reply.
func (p *Post) AddSubReply(replyID string, author int64, comment string, now time.Time) (*SubReply, error) {
	r := p.findReply(replyID)
	if r == nil {
		return nil, fmt.Errorf("%w: id=%s", ErrReplyNotFound, replyID)
	}

	if err := validateComment(comment); err != nil {
		return nil, err
	}

	r.SubReplies = append(r.SubReplies, SubReply{
		ID:        uuid.NewString(),
		AuthorID:  author,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	})
	p.Metadata.LastActivityAt = now

	return &r.SubReplies[len(r.SubReplies)-1], nil
}

// UpdateReply replaces reply's comment. Soft-deleted replies can not be edited.
func (p *Post) UpdateReply(replyID, comment string, now time.Time) error {
	r := p.findReply(replyID)
	if r == nil || r.IsDeleted {
		return fmt.Errorf("%w: id=%s", ErrReplyNotFound, replyID)
	}

	if err := validateComment(comment); err != nil {
		return err
	}

	r.Comment = comment
	r.UpdatedAt = now

	return nil
}

// UpdateSubReply replaces sub-reply's comment. Soft-deleted sub-replies can not be edited.
func (p *Post) UpdateSubReply(replyID, subReplyID, comment string, now time.Time) error {
	s, err := p.findSubReply(replyID, subReplyID)
	if err != nil {
		return err
	}

	if s.IsDeleted {
		return fmt.Errorf("%w: id=%s", ErrSubReplyNotFound, subReplyID)
	}

	if err := validateComment(comment); err != nil {
		return err
	}

	s.Comment = comment
	s.UpdatedAt = now

	return nil
}

// SoftDeleteReply marks reply as deleted. Deleting an already deleted reply is a no-op.
func (p *Post) SoftDeleteReply(replyID string, now time.Time) error {
	r := p.findReply(replyID)
	if r == nil {
		return fmt.Errorf("%w: id=%s", ErrReplyNotFound, replyID)
	}

	if r.IsDeleted {
		return nil
	}

	r.IsDeleted = true
	r.Comment = DeletedReplyPlaceholder
	r.UpdatedAt = now

	return nil
}

// SoftDeleteSubReply marks sub-reply as deleted. Deleting an already deleted sub-reply is a no-op.
func (p *Post) SoftDeleteSubReply(replyID, subReplyID string, now time.Time) error {
	s, err := p.findSubReply(replyID, subReplyID)
	if err != nil {
		return err
	}

	if s.IsDeleted {
		return nil
	}

	s.IsDeleted = true
	s.Comment = DeletedReplyPlaceholder
	s.UpdatedAt = now

	return nil
}

// Reply returns a copy of the reply with the given id.
func (p *Post) Reply(replyID string) (Reply, bool) {
	if r := p.findReply(replyID); r != nil {
		return *r, true
	}

	return Reply{}, false
}

func (p *Post) findReply(id string) *Reply {
	for i := range p.Replies {
		if p.Replies[i].ID == id {
			return &p.Replies[i]
		}
	}

	return nil
}

func (p *Post) findSubReply(replyID, subReplyID string) (*SubReply, error) {
	r := p.findReply(replyID)
	if r == nil {
		return nil, fmt.Errorf("%w: id=%s", ErrReplyNotFound, replyID)
	}

	for i := range r.SubReplies {
		if r.SubReplies[i].ID == subReplyID {
			return &r.SubReplies[i], nil
		}
	}

	return nil, fmt.Errorf("%w: id=%s", ErrSubReplyNotFound, subReplyID)
}
