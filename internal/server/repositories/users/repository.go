// Package users declares the server-side repository contract for
// registered identities.
package users

import (
	"context"

	"github.com/chenterphai/article-stack/internal/server/models"
)

// Repository defines persistence operations for user credentials.
type Repository interface {
	// Create inserts a new user. A duplicate username or email yields
	// common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByLogin looks up a user by username or email (either matches).
	// Returns common.ErrorNotFound when no user exists.
	GetByLogin(ctx context.Context, usernameOrEmail string) (*models.User, error)

	// GetByID looks up a user by primary key.
	// Returns common.ErrorNotFound when no user exists.
	GetByID(ctx context.Context, id string) (*models.User, error)
}
