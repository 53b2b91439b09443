package dto

import (
	"time"

	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/shared/mapper"
)

// UploadURLPrefix is where stored image files are served.
const UploadURLPrefix = "/api/uploads/"

type CreateCategoryRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description"`
	Password    *string `json:"password"`
}

// UpdateCategoryRequest changes only the fields that are present. An empty
// password removes protection.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
	Password    *string `json:"password"`
}

type UnlockCategoryRequest struct {
	Password string `json:"password" binding:"required"`
}

type CategoryResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Slug            string    `json:"slug"`
	Description     *string   `json:"description"`
	DescriptionHTML string    `json:"description_html,omitempty"`
	IsProtected     bool      `json:"is_protected"`
	PhotoCount      int64     `json:"photo_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type PhotoResponse struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  *string          `json:"description"`
	Filename     string           `json:"filename"`
	URL          string           `json:"url"`
	OriginalName string           `json:"original_name"`
	Width        int              `json:"width"`
	Height       int              `json:"height"`
	Size         int64            `json:"size"`
	MimeType     string           `json:"mime_type"`
	Latitude     *float64         `json:"latitude"`
	Longitude    *float64         `json:"longitude"`
	DateTaken    *time.Time       `json:"date_taken"`
	Camera       *string          `json:"camera"`
	Lens         *string          `json:"lens"`
	FocalLength  *string          `json:"focal_length"`
	Aperture     *string          `json:"aperture"`
	ShutterSpeed *string          `json:"shutter_speed"`
	ISO          *string          `json:"iso"`
	IsProtected  bool             `json:"is_protected"`
	Category     *CategorySummary `json:"category,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
}

// GalleryResponse is the public portfolio. User is null until someone signs up.
type GalleryResponse struct {
	User       *user.Projection   `json:"user"`
	Categories []CategoryResponse `json:"categories"`
	Photos     []PhotoResponse    `json:"photos"`
}

type UnlockCategoryResponse struct {
	Category CategoryResponse `json:"category"`
	Photos   []PhotoResponse  `json:"photos"`
}

// ToCategoryResponse converts a category. descriptionHTML is the rendered
// markdown, or empty when there is no description.
func ToCategoryResponse(c *gallery.Category, photoCount int64, descriptionHTML string) CategoryResponse {
	return CategoryResponse{
		ID:              c.SID(),
		Name:            c.Name(),
		Slug:            c.Slug(),
		Description:     c.Description(),
		DescriptionHTML: descriptionHTML,
		IsProtected:     !c.IsPublic(),
		PhotoCount:      photoCount,
		CreatedAt:       c.CreatedAt(),
		UpdatedAt:       c.UpdatedAt(),
	}
}

func ToCategorySummary(c *gallery.Category) *CategorySummary {
	if c == nil {
		return nil
	}
	return &CategorySummary{ID: c.SID(), Name: c.Name(), Slug: c.Slug()}
}

// ToPhotoResponse converts a photo; category may be nil.
func ToPhotoResponse(p *gallery.Photo, category *gallery.Category) PhotoResponse {
	m := p.Metadata()
	return PhotoResponse{
		ID:           p.SID(),
		Title:        p.Title(),
		Description:  p.Description(),
		Filename:     p.Filename(),
		URL:          UploadURLPrefix + p.Filename(),
		OriginalName: p.OriginalName(),
		Width:        m.Width,
		Height:       m.Height,
		Size:         m.Size,
		MimeType:     m.MimeType,
		Latitude:     m.Latitude,
		Longitude:    m.Longitude,
		DateTaken:    m.DateTaken,
		Camera:       m.Camera,
		Lens:         m.Lens,
		FocalLength:  m.FocalLength,
		Aperture:     m.Aperture,
		ShutterSpeed: m.ShutterSpeed,
		ISO:          m.ISO,
		IsProtected:  !p.IsPublic(),
		Category:     ToCategorySummary(category),
		CreatedAt:    p.CreatedAt(),
	}
}

// ToPhotoResponses converts photos, attaching categories found in byID.
func ToPhotoResponses(photos []*gallery.Photo, byID map[uint]*gallery.Category) []PhotoResponse {
	return mapper.MapSlice(photos, func(p *gallery.Photo) PhotoResponse {
		return ToPhotoResponse(p, byID[p.CategoryID()])
	})
}
