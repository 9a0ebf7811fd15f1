// Package entities contains main entities of service.
package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
)

// MaxTitleLength is a maximal length of post's title in characters.
const MaxTitleLength = 100

// nolint:gochecknoglobals
var validate = newValidator()

// newValidator returns validator with notblank tag which rejects whitespace-only strings.
func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// Accessibility defines who can see a post.
type Accessibility string

const (
	// Unpublished is a draft visible to its owner only.
	Unpublished Accessibility = "UNPUBLISHED"
	// Published ...
	Published Accessibility = "PUBLISHED"
	// Hidden is set by the owner to hide a post.
	Hidden Accessibility = "HIDDEN"
	// Banned is set by moderators.
	Banned Accessibility = "BANNED"
	// Deleted is a terminal soft-delete marker.
	Deleted Accessibility = "DELETED"
)

// Accessibilities lists every accessibility value.
// nolint:gochecknoglobals
var Accessibilities = []Accessibility{Unpublished, Published, Hidden, Banned, Deleted}

// ParseAccessibility parses accessibility case-insensitively.
func ParseAccessibility(s string) (Accessibility, error) {
	a := Accessibility(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range Accessibilities {
		if a == v {
			return a, nil
		}
	}

	return "", fmt.Errorf("%w: unknown accessibility %q", ErrInvalidInput, s)
}

// Role is a user's type in users directory.
type Role string

const (
	// Visitor ...
	Visitor Role = "VISITOR"
	// Normal ...
	Normal Role = "NORMAL"
	// Admin ...
	Admin Role = "ADMIN"
	// SuperAdmin ...
	SuperAdmin Role = "SUPERADMIN"
)

// IsAdmin returns true for roles allowed to moderate posts.
func (r Role) IsAdmin() bool {
	return r == Admin || r == SuperAdmin
}

// Post is an aggregate root. Replies and sub-replies are owned by the post and saved with it.
type Post struct {
	ID            string
	OwnerID       int64
	Title         string `validate:"notblank,max=100"`
	Content       string `validate:"notblank"`
	Accessibility Accessibility
	IsArchived    bool
	Images        []string
	Attachments   []string
	Metadata      Metadata
	Replies       []Reply
}

// Metadata contains post's counters and audit timestamps.
type Metadata struct {
	Views          uint64
	Likes          int
	LikedBy        []int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastActivityAt time.Time
}

// Reply ...
type Reply struct {
	ID         string
	AuthorID   int64
	Comment    string
	IsDeleted  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
	SubReplies []SubReply
}

// SubReply ...
type SubReply struct {
	ID        string
	AuthorID  int64
	Comment   string
	IsDeleted bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Permissions is a user's role and status resolved by users directory.
type Permissions struct {
	UserID int64
	Role   Role
	Active bool
}

// Profile ...
type Profile struct {
	ID              int64
	FirstName       string
	LastName        string
	ProfileImageURL string
}

// DisplayName ...
func (p Profile) DisplayName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// PostWithAuthor is a post decorated with its owner's profile.
// Author is nil when the profile could not be resolved.
type PostWithAuthor struct {
	Post
	Author *Profile
}

// NewPost creates a new post owned by owner. Accessibility should be Unpublished or Published.
func NewPost(owner int64, title, content string, accessibility Accessibility, now time.Time) (*Post, error) {
	if accessibility == "" {
		accessibility = Unpublished
	}

	if accessibility != Unpublished && accessibility != Published {
		return nil, fmt.Errorf("%w: post can not be created as %s", ErrInvalidInput, accessibility)
	}

	p := &Post{
		ID:            uuid.NewString(),
		OwnerID:       owner,
		Title:         title,
		Content:       content,
		Accessibility: accessibility,
		Metadata: Metadata{
			LikedBy:        []int64{},
			CreatedAt:      now,
			UpdatedAt:      now,
			LastActivityAt: now,
		},
		Replies: []Reply{},
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

// Validate checks post's fields.
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	return nil
}

// Edit replaces post's editable fields.
func (p *Post) Edit(title, content string, archived bool, now time.Time) error {
	upd := *p
	upd.Title, upd.Content, upd.IsArchived = title, content, archived

	if err := upd.Validate(); err != nil {
		return err
	}

	p.Title, p.Content, p.IsArchived = title, content, archived
	p.Metadata.UpdatedAt = now

	return nil
}

// Clone returns a deep copy of the post.
func (p *Post) Clone() *Post {
	if p == nil {
		return nil
	}

	out := *p
	out.Images = cloneStrings(p.Images)
	out.Attachments = cloneStrings(p.Attachments)
	if p.Metadata.LikedBy != nil {
		out.Metadata.LikedBy = append(make([]int64, 0, len(p.Metadata.LikedBy)), p.Metadata.LikedBy...)
	}

	if p.Replies != nil {
		out.Replies = make([]Reply, len(p.Replies))
		for i, r := range p.Replies {
			out.Replies[i] = r
			if r.SubReplies != nil {
				out.Replies[i].SubReplies = append(make([]SubReply, 0, len(r.SubReplies)), r.SubReplies...)
			}
		}
	}

	return &out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}

	return append(make([]string, 0, len(s)), s...)
}
