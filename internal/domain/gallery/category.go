// Package gallery holds the portfolio content model: categories, photos and
// the blob store their image files live in.
package gallery

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const MaxCategoryNameLength = 100

// Category groups photos. A category with a password hash is hidden from the
// public gallery until unlocked.
type Category struct {
	id           uint
	sid          string
	userID       uint
	name         string
	slug         string
	description  *string
	passwordHash *string
	createdAt    time.Time
	updatedAt    time.Time
}

func NewCategory(userID uint, sid, name string, description, passwordHash *string, now time.Time) (*Category, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if sid == "" {
		return nil, fmt.Errorf("category SID is required")
	}

	c := &Category{
		sid:          sid,
		userID:       userID,
		description:  description,
		passwordHash: passwordHash,
		createdAt:    now,
		updatedAt:    now,
	}
	if err := c.Rename(name, now); err != nil {
		return nil, err
	}
	return c, nil
}

// ReconstructCategory rebuilds a category from persistence
func ReconstructCategory(id uint, sid string, userID uint, name, slug string, description, passwordHash *string, createdAt, updatedAt time.Time) (*Category, error) {
	if id == 0 {
		return nil, fmt.Errorf("category ID cannot be zero")
	}
	return &Category{
		id:           id,
		sid:          sid,
		userID:       userID,
		name:         name,
		slug:         slug,
		description:  description,
		passwordHash: passwordHash,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (c *Category) ID() uint              { return c.id }
func (c *Category) SID() string           { return c.sid }
func (c *Category) UserID() uint          { return c.userID }
func (c *Category) Name() string          { return c.name }
func (c *Category) Slug() string          { return c.slug }
func (c *Category) Description() *string  { return c.description }
func (c *Category) PasswordHash() *string { return c.passwordHash }
func (c *Category) CreatedAt() time.Time  { return c.createdAt }
func (c *Category) UpdatedAt() time.Time  { return c.updatedAt }

// IsPublic reports whether the category has no password.
func (c *Category) IsPublic() bool { return c.passwordHash == nil }

// IsOwnedBy reports whether userID owns the category.
func (c *Category) IsOwnedBy(userID uint) bool { return c.userID == userID }

// SetID sets the internal ID (only for persistence layer use)
func (c *Category) SetID(id uint) error {
	if c.id != 0 {
		return fmt.Errorf("category ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("category ID cannot be zero")
	}
	c.id = id
	return nil
}

// Rename changes the name and recomputes the slug.
func (c *Category) Rename(name string, now time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("category name is required")
	}
	if utf8.RuneCountInString(name) > MaxCategoryNameLength {
		return fmt.Errorf("category name must be at most %d characters", MaxCategoryNameLength)
	}
	slug := Slugify(name)
	if slug == "" {
		return fmt.Errorf("category name must contain at least one letter or digit")
	}
	c.name = name
	c.slug = slug
	c.updatedAt = now
	return nil
}

func (c *Category) SetDescription(description *string, now time.Time) {
	c.description = description
	c.updatedAt = now
}

// SetPasswordHash protects the category; nil makes it public.
func (c *Category) SetPasswordHash(hash *string, now time.Time) {
	c.passwordHash = hash
	c.updatedAt = now
}
