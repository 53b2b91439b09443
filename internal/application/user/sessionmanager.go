package user

import (
	"context"
	"fmt"
	"time"

	domainUser "github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/token"
	"github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
)

// ResolvedSession is a live session together with its owner's public view.
type ResolvedSession struct {
	Session *domainUser.Session
	User    domainUser.Projection
}

// SessionManager issues and resolves opaque bearer-token sessions. Only the
// SHA-256 digest of a token is persisted; every lookup hits the database.
type SessionManager struct {
	sessionRepo domainUser.SessionRepository
	userRepo    domainUser.Repository
	tokens      token.TokenGenerator
	ttl         time.Duration
	now         func() time.Time
	logger      logger.Interface
}

func NewSessionManager(
	sessionRepo domainUser.SessionRepository,
	userRepo domainUser.Repository,
	tokens token.TokenGenerator,
	ttl time.Duration,
	logger logger.Interface,
) *SessionManager {
	return &SessionManager{
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		tokens:      tokens,
		ttl:         ttl,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      logger,
	}
}

// WithClock replaces the time source; tests use it to age sessions.
func (m *SessionManager) WithClock(now func() time.Time) *SessionManager {
	m.now = now
	return m
}

// TTL is the lifetime given to new sessions.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Create starts a session for userID and returns the plaintext token.
func (m *SessionManager) Create(ctx context.Context, userID uint) (string, error) {
	plain, hash, err := m.tokens.Generate(token.SessionTokenBytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}

	session, err := domainUser.NewSession(userID, hash, m.now(), m.ttl)
	if err != nil {
		return "", errors.NewValidationError(err.Error())
	}

	if err := m.sessionRepo.Create(ctx, session); err != nil {
		m.logger.Errorw("failed to create session", "user_id", userID, "error", err)
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	m.logger.Debugw("session created", "user_id", userID, "expires_at", session.ExpiresAt)
	return plain, nil
}

// Resolve returns the session for plainToken, or nil when the token is empty,
// unknown or expired. Expired rows are deleted on sight.
func (m *SessionManager) Resolve(ctx context.Context, plainToken string) (*ResolvedSession, error) {
	if plainToken == "" {
		return nil, nil
	}

	hash := m.tokens.Hash(plainToken)
	session, err := m.sessionRepo.GetByTokenHash(ctx, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if session == nil {
		return nil, nil
	}

	if session.IsExpired(m.now()) {
		if err := m.sessionRepo.DeleteByTokenHash(ctx, hash); err != nil {
			m.logger.Warnw("failed to delete expired session", "session_id", session.ID, "error", err)
		}
		return nil, nil
	}

	owner, err := m.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	if owner == nil {
		return nil, nil
	}

	return &ResolvedSession{Session: session, User: owner.Projection()}, nil
}

// Require is Resolve that treats a missing session as Unauthorized.
func (m *SessionManager) Require(ctx context.Context, plainToken string) (*ResolvedSession, error) {
	resolved, err := m.Resolve(ctx, plainToken)
	if err != nil {
		return nil, err
	}
	if resolved == nil {
		return nil, errors.NewUnauthorizedError("authentication required")
	}
	return resolved, nil
}

// Revoke deletes the session for plainToken. Unknown tokens are not an error.
func (m *SessionManager) Revoke(ctx context.Context, plainToken string) error {
	if plainToken == "" {
		return nil
	}
	if err := m.sessionRepo.DeleteByTokenHash(ctx, m.tokens.Hash(plainToken)); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// RevokeAllForUser deletes every session of userID. It joins a transaction
// carried by ctx.
func (m *SessionManager) RevokeAllForUser(ctx context.Context, userID uint) error {
	if err := m.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}
