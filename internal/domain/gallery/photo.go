package gallery

import (
	"fmt"
	"strings"
	"time"
)

// ImageMetadata is what the ingestion pipeline extracts from an upload.
// Pointer fields are nil when the source carried no such EXIF data.
type ImageMetadata struct {
	Width        int
	Height       int
	Size         int64
	MimeType     string
	Latitude     *float64
	Longitude    *float64
	DateTaken    *time.Time
	Camera       *string
	Lens         *string
	FocalLength  *string
	Aperture     *string
	ShutterSpeed *string
	ISO          *string
}

// Photo is a stored image plus its descriptive and EXIF metadata.
type Photo struct {
	id           uint
	sid          string
	userID       uint
	categoryID   uint
	title        string
	description  *string
	filename     string
	originalName string
	passwordHash *string
	metadata     ImageMetadata
	createdAt    time.Time
	updatedAt    time.Time
}

// PhotoParams carries the fields needed to create a photo.
type PhotoParams struct {
	SID          string
	UserID       uint
	CategoryID   uint
	Title        string
	Description  *string
	Filename     string
	OriginalName string
	PasswordHash *string
	Metadata     ImageMetadata
}

func NewPhoto(p PhotoParams, now time.Time) (*Photo, error) {
	if p.UserID == 0 || p.CategoryID == 0 {
		return nil, fmt.Errorf("user ID and category ID are required")
	}
	if p.SID == "" {
		return nil, fmt.Errorf("photo SID is required")
	}
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, fmt.Errorf("photo title is required")
	}
	if p.Filename == "" {
		return nil, fmt.Errorf("stored filename is required")
	}
	if p.Metadata.Width <= 0 || p.Metadata.Height <= 0 {
		return nil, fmt.Errorf("photo dimensions are required")
	}

	return &Photo{
		sid:          p.SID,
		userID:       p.UserID,
		categoryID:   p.CategoryID,
		title:        title,
		description:  p.Description,
		filename:     p.Filename,
		originalName: p.OriginalName,
		passwordHash: p.PasswordHash,
		metadata:     p.Metadata,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructPhoto rebuilds a photo from persistence
func ReconstructPhoto(id uint, p PhotoParams, createdAt, updatedAt time.Time) (*Photo, error) {
	if id == 0 {
		return nil, fmt.Errorf("photo ID cannot be zero")
	}
	return &Photo{
		id:           id,
		sid:          p.SID,
		userID:       p.UserID,
		categoryID:   p.CategoryID,
		title:        p.Title,
		description:  p.Description,
		filename:     p.Filename,
		originalName: p.OriginalName,
		passwordHash: p.PasswordHash,
		metadata:     p.Metadata,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (p *Photo) ID() uint                { return p.id }
func (p *Photo) SID() string             { return p.sid }
func (p *Photo) UserID() uint            { return p.userID }
func (p *Photo) CategoryID() uint        { return p.categoryID }
func (p *Photo) Title() string           { return p.title }
func (p *Photo) Description() *string    { return p.description }
func (p *Photo) Filename() string        { return p.filename }
func (p *Photo) OriginalName() string    { return p.originalName }
func (p *Photo) PasswordHash() *string   { return p.passwordHash }
func (p *Photo) Metadata() ImageMetadata { return p.metadata }
func (p *Photo) CreatedAt() time.Time    { return p.createdAt }
func (p *Photo) UpdatedAt() time.Time    { return p.updatedAt }

func (p *Photo) IsPublic() bool { return p.passwordHash == nil }

func (p *Photo) IsOwnedBy(userID uint) bool { return p.userID == userID }

// SetID sets the internal ID (only for persistence layer use)
func (p *Photo) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("photo ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("photo ID cannot be zero")
	}
	p.id = id
	return nil
}
