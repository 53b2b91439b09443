package user

import "context"

// Repository persists users. Getters return (nil, nil) when no row matches.
type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// GetFirst returns the earliest created user, the portfolio owner.
	GetFirst(ctx context.Context) (*User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
}

type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*Session, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

type PasskeyCredentialRepository interface {
	Create(ctx context.Context, credential *PasskeyCredential) error
	GetBySID(ctx context.Context, sid string) (*PasskeyCredential, error)
	GetByCredentialID(ctx context.Context, credentialID []byte) (*PasskeyCredential, error)
	GetByUserID(ctx context.Context, userID uint) ([]*PasskeyCredential, error)
	Update(ctx context.Context, credential *PasskeyCredential) error
	Delete(ctx context.Context, id uint) error
	DeleteByUserID(ctx context.Context, userID uint) error
}
