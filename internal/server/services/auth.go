// Package services contains server-side business logic. This file implements
// AuthService, which handles registration, login, refresh-token rotation,
// and logout over the credential and session repositories.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/chenterphai/article-stack/internal/common"
	"github.com/chenterphai/article-stack/internal/dbx"
	"github.com/chenterphai/article-stack/internal/server/auth"
	"github.com/chenterphai/article-stack/internal/server/config"
	"github.com/chenterphai/article-stack/internal/server/models"
	"github.com/chenterphai/article-stack/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthService provides the credential/session lifecycle:
//   - Register: create identities and mint the first token pair
//   - Login: verify credentials, revoke the prior session, mint tokens
//   - Refresh: rotate refresh tokens (single use)
//   - Logout: revoke the current session
//
// Every state transition is persisted before tokens are handed to the
// caller: token issuance happens inside the same transaction that writes
// the session row.
type AuthService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                           db,
		repomanager:                  m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates a new identity and signs it in. A duplicate username or
// email yields common.ErrorAlreadyExists; the unique constraints are the
// source of truth, so two concurrent registrations cannot both win.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, *TokenPair, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	var user *models.User
	var pair *TokenPair

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		u, err := s.repomanager.Users(tx).Create(ctx, &models.User{
			Username:     username,
			Email:        email,
			PasswordHash: hash,
		})
		if err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return err
			}
			return fmt.Errorf("error creating user: %w", err)
		}

		pair, err = s.issueTokens(ctx, tx, u.ID, u.Username)
		if err != nil {
			return err
		}

		user = u
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Login verifies the password for the identity matching usernameOrEmail.
// On success any previously active session is revoked, so at most one
// session stays live per identity.
func (s *AuthService) Login(ctx context.Context, usernameOrEmail, password string) (*models.User, *TokenPair, error) {
	user, err := s.repomanager.Users(s.db).GetByLogin(ctx, usernameOrEmail)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorNotFound
		}
		return nil, nil, common.ErrorInternal
	}

	if !auth.CheckPassword(password, user.PasswordHash) {
		return nil, nil, common.ErrorInvalidCredentials
	}

	var pair *TokenPair

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Sessions(tx)

		active, err := repo.FindActiveByUser(ctx, user.ID)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error searching active session: %w", err)
		}
		if active != nil {
			if err := repo.Revoke(ctx, active.ID); err != nil {
				return fmt.Errorf("error revoking session: %w", err)
			}
		}

		pair, err = s.issueTokens(ctx, tx, user.ID, user.Username)
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return user, pair, nil
}

// Refresh validates a refresh token and rotates it transactionally.
// The presented session row is revoked and replaced in one transaction,
// so a consumed token always fails on its second use; of two concurrent
// refreshes, exactly one wins the row lock.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, common.ErrorUnauthenticated
	}

	claims, err := auth.ParseRefreshToken(refreshToken, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorForbidden
	}

	var pair *TokenPair

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Sessions(tx)

		session, err := repo.FindActiveByUserAndToken(ctx, claims.Subject, refreshToken)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthenticated
			}
			return fmt.Errorf("error searching session: %w", err)
		}

		if !session.Active(time.Now()) {
			return common.ErrRefreshTokenExpired
		}

		if err := repo.Revoke(ctx, session.ID); err != nil {
			return fmt.Errorf("error revoking session: %w", err)
		}

		pair, err = s.issueTokens(ctx, tx, claims.Subject, claims.Username)
		return err
	})
	if err != nil {
		return nil, err
	}

	return pair, nil
}

// Logout revokes the most recent active session of the given identity.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return common.ErrorUnauthenticated
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Sessions(tx)

		session, err := repo.FindActiveByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorNotFound
			}
			return fmt.Errorf("error searching active session: %w", err)
		}

		if err := repo.Revoke(ctx, session.ID); err != nil {
			return fmt.Errorf("error revoking session: %w", err)
		}
		return nil
	})
}

// GetUser returns the identity record behind an authenticated request.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, common.ErrorUnauthenticated
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	return user, nil
}

// issueTokens mints the access/refresh pair and persists the session that
// backs the refresh token. Must run on the same DBTX as the surrounding
// state transition.
func (s *AuthService) issueTokens(ctx context.Context, tx dbx.DBTX, userID, username string) (*TokenPair, error) {
	access, err := auth.GenerateAccessToken(userID, username, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refresh, err := auth.GenerateRefreshToken(userID, username, s.jwtSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	if _, err := s.repomanager.Sessions(tx).Create(ctx, userID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
