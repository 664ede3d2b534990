// Package sessions declares the server-side repository contract for
// refresh-token sessions in persistent storage. The store is a dumb
// persistence layer: the one-active-session-per-user policy is enforced
// by the auth service, not here.
package sessions

import (
	"context"
	"time"

	"github.com/chenterphai/article-stack/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking
// refresh-token sessions.
type Repository interface {
	// Create stores a new session for userID holding the given refresh
	// token, with an expiry of now+validity.
	Create(ctx context.Context, userID string, token string, validity time.Duration) (*models.Session, error)

	// FindActiveByUser returns the most recently created non-revoked
	// session for userID, or common.ErrorNotFound. The row is locked
	// FOR UPDATE, so concurrent logins inside transactions serialize on
	// the session they are about to replace.
	FindActiveByUser(ctx context.Context, userID string) (*models.Session, error)

	// FindActiveByUserAndToken returns the non-revoked session holding
	// exactly the presented token, or common.ErrorNotFound. The row is
	// locked FOR UPDATE, so concurrent rotations of the same token
	// serialize when called inside a transaction.
	FindActiveByUserAndToken(ctx context.Context, userID string, token string) (*models.Session, error)

	// Revoke marks the session revoked and expires it immediately.
	// Revoking an already-revoked or absent session is not an error.
	Revoke(ctx context.Context, id string) error
}
