package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/agora-forum/agora/internal/entities"
)

// document is a post exported from the document store.
type document struct {
	ID          string   `json:"postId"`
	UserID      int64    `json:"userId"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	IsArchived  bool     `json:"isArchived"`
	Status      string   `json:"status"`
	Images      []string `json:"images"`
	Attachments []string `json:"attachments"`
	Metadata    struct {
		Views          uint64 `json:"views"`
		Likes          int    `json:"likes"`
		LastActivityAt date   `json:"lastActivityAt"`
	} `json:"metadata"`
	CreatedAt date             `json:"created_at"`
	UpdatedAt date             `json:"updated_at"`
	Replies   []replyDocument `json:"postReplies"`
}

type replyDocument struct {
	ID         string             `json:"replyId"`
	UserID     int64              `json:"userId"`
	Comment    string             `json:"comment"`
	IsActive   *bool              `json:"isActive"`
	CreatedAt  date               `json:"created_at"`
	UpdatedAt  date               `json:"updated_at"`
	SubReplies []subReplyDocument `json:"subReplies"`
}

type subReplyDocument struct {
	ID        string `json:"subReplyId"`
	UserID    int64  `json:"userId"`
	Comment   string `json:"comment"`
	IsActive  *bool  `json:"isActive"`
	CreatedAt date   `json:"created_at"`
	UpdatedAt date   `json:"updated_at"`
}

// date accepts RFC3339 strings, unix milliseconds and extended json {"$date": ...}.
type date struct {
	time.Time
}

func (d *date) UnmarshalJSON(b []byte) error {
	var ext struct {
		Date json.RawMessage `json:"$date"`
	}
	if len(b) > 0 && b[0] == '{' {
		if err := json.Unmarshal(b, &ext); err != nil {
			return err
		}
		b = ext.Date
	}

	if string(b) == "null" || len(b) == 0 {
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", s, err)
		}
		d.Time = t.UTC()
		return nil
	}

	ms, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid date %s: %w", string(b), err)
	}
	d.Time = time.Unix(0, ms*int64(time.Millisecond)).UTC()
	return nil
}

// toPost converts exported document into a post. Likes are dropped since the export has no likers.
func (d document) toPost() (*entities.Post, error) {
	a := entities.Unpublished
	if d.Status != "" {
		var err error
		if a, err = entities.ParseAccessibility(d.Status); err != nil {
			return nil, err
		}
	}

	updated := or(d.UpdatedAt.Time, d.CreatedAt.Time)

	p := &entities.Post{
		ID:            normalizeID(d.ID),
		OwnerID:       d.UserID,
		Title:         d.Title,
		Content:       d.Content,
		Accessibility: a,
		IsArchived:    d.IsArchived,
		Images:        d.Images,
		Attachments:   d.Attachments,
		Metadata: entities.Metadata{
			Views:          d.Metadata.Views,
			CreatedAt:      d.CreatedAt.Time,
			UpdatedAt:      updated,
			LastActivityAt: or(d.Metadata.LastActivityAt.Time, updated),
		},
	}

	for _, r := range d.Replies {
		reply := entities.Reply{
			ID:        normalizeID(r.ID),
			AuthorID:  r.UserID,
			Comment:   r.Comment,
			IsDeleted: deleted(r.IsActive),
			CreatedAt: r.CreatedAt.Time,
			UpdatedAt: or(r.UpdatedAt.Time, r.CreatedAt.Time),
		}
		if reply.IsDeleted {
			reply.Comment = entities.DeletedReplyPlaceholder
		}

		for _, s := range r.SubReplies {
			sub := entities.SubReply{
				ID:        normalizeID(s.ID),
				AuthorID:  s.UserID,
				Comment:   s.Comment,
				IsDeleted: deleted(s.IsActive),
				CreatedAt: s.CreatedAt.Time,
				UpdatedAt: or(s.UpdatedAt.Time, s.CreatedAt.Time),
			}
			if sub.IsDeleted {
				sub.Comment = entities.DeletedReplyPlaceholder
			}

			reply.SubReplies = append(reply.SubReplies, sub)
		}

		p.Replies = append(p.Replies, reply)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// normalizeID keeps uuids as is and maps other ids (e.g. object ids) to stable uuids.
func normalizeID(id string) string {
	if id == "" {
		return uuid.New().String()
	}

	if v, err := uuid.Parse(id); err == nil {
		return v.String()
	}

	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(id)).String()
}

// deleted reports whether reply was deactivated. Replies written without the flag are active.
func deleted(active *bool) bool {
	return active != nil && !*active
}

func or(t, def time.Time) time.Time {
	if t.IsZero() {
		return def
	}
	return t
}
