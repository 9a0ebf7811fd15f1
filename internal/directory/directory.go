// Package directory contains an interface of users directory.
package directory

import (
	"context"
	"errors"

	"github.com/agora-forum/agora/internal/entities"
)

//go:generate mockgen -destination=./mock/directory.go -package=mock -source=directory.go

var (
	// ErrUserNotFound is returned when user does not exist in directory.
	ErrUserNotFound = errors.New("user not found")
	// ErrUnavailable is returned when directory can not be reached or answers with unexpected error.
	ErrUnavailable = errors.New("users directory is unavailable")
)

// Directory resolves users' permissions and profiles.
type Directory interface {
	GetPermissions(ctx context.Context, userID int64) (*entities.Permissions, error)
	GetProfile(ctx context.Context, userID int64) (*entities.Profile, error)
	Ping(ctx context.Context) error
}
