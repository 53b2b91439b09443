package gallery

import (
	"context"
	"errors"
	"io"
)

// CategoryRepository persists categories. Getters return (nil, nil) when no row matches.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id uint) (*Category, error)
	GetBySID(ctx context.Context, sid string) (*Category, error)
	GetBySlug(ctx context.Context, userID uint, slug string) (*Category, error)
	// ListByUserID returns categories newest first; publicOnly drops protected ones.
	ListByUserID(ctx context.Context, userID uint, publicOnly bool) ([]*Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uint) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

// PhotoFilter selects photos for listing. Zero values mean "any".
type PhotoFilter struct {
	UserID     uint
	CategoryID uint
	// PublicOnly keeps photos without a password in categories without a password.
	PublicOnly bool
	// UnprotectedOnly keeps photos without a password regardless of category.
	UnprotectedOnly bool
}

type PhotoRepository interface {
	Create(ctx context.Context, photo *Photo) error
	GetBySID(ctx context.Context, sid string) (*Photo, error)
	// List returns matching photos newest first.
	List(ctx context.Context, filter PhotoFilter) ([]*Photo, error)
	// CountByCategory returns photo counts keyed by category ID.
	CountByCategory(ctx context.Context, filter PhotoFilter) (map[uint]int64, error)
	Delete(ctx context.Context, id uint) error
	DeleteByCategoryID(ctx context.Context, categoryID uint) error
	DeleteByUserID(ctx context.Context, userID uint) error
}

// ErrBlobNotFound is returned by BlobStore.Open for unknown names.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore holds encoded image files under system-generated names.
type BlobStore interface {
	Put(ctx context.Context, name string, data []byte, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Delete removes name; a missing blob is not an error.
	Delete(ctx context.Context, name string) error
}
