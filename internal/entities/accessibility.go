package entities

import (
	"fmt"
	"time"
)

// AccessibilitySet is a set of accessibility values.
type AccessibilitySet map[Accessibility]struct{}

// Contains ...
func (s AccessibilitySet) Contains(a Accessibility) bool {
	_, ok := s[a]
	return ok
}

// AllowedTransitions returns accessibility values the requester may set on a post.
// Moderators may ban or (re)publish any post, an owner may only hide a post they own.
// Deleted is never returned: it is reachable through the delete path only.
func AllowedTransitions(role Role, isOwner bool) AccessibilitySet {
	switch {
	case role.IsAdmin():
		return AccessibilitySet{Banned: {}, Published: {}}
	case isOwner:
		return AccessibilitySet{Hidden: {}}
	default:
		return AccessibilitySet{}
	}
}

// SetAccessibility applies the transition when it is allowed for the requester.
func (p *Post) SetAccessibility(to Accessibility, role Role, isOwner bool, now time.Time) error {
	if p.Accessibility == Deleted {
		return fmt.Errorf("%w: post is deleted", ErrInvalidTransition)
	}

	if !AllowedTransitions(role, isOwner).Contains(to) {
		return fmt.Errorf("%w: %s can not set %s", ErrInvalidTransition, role, to)
	}

	p.Accessibility = to
	p.Metadata.UpdatedAt = now

	return nil
}

// MarkDeleted moves the post to the terminal Deleted state. It returns false if the post is already deleted.
func (p *Post) MarkDeleted(now time.Time) bool {
	if p.Accessibility == Deleted {
		return false
	}

	p.Accessibility = Deleted
	p.Metadata.UpdatedAt = now

	return true
}
