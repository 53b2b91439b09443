package mappers

import (
	"fmt"

	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/persistence/models"
)

func CategoryToModel(c *gallery.Category) *models.CategoryModel {
	return &models.CategoryModel{
		ID:           c.ID(),
		SID:          c.SID(),
		UserID:       c.UserID(),
		Name:         c.Name(),
		Slug:         c.Slug(),
		Description:  c.Description(),
		PasswordHash: c.PasswordHash(),
		CreatedAt:    c.CreatedAt(),
		UpdatedAt:    c.UpdatedAt(),
	}
}

func CategoryToEntity(m *models.CategoryModel) (*gallery.Category, error) {
	c, err := gallery.ReconstructCategory(m.ID, m.SID, m.UserID, m.Name, m.Slug, m.Description, m.PasswordHash, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct category entity: %w", err)
	}
	return c, nil
}

func CategoriesToEntities(list []*models.CategoryModel) ([]*gallery.Category, error) {
	out := make([]*gallery.Category, 0, len(list))
	for _, m := range list {
		c, err := CategoryToEntity(m)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func PhotoToModel(p *gallery.Photo) *models.PhotoModel {
	md := p.Metadata()
	return &models.PhotoModel{
		ID:           p.ID(),
		SID:          p.SID(),
		UserID:       p.UserID(),
		CategoryID:   p.CategoryID(),
		Title:        p.Title(),
		Description:  p.Description(),
		Filename:     p.Filename(),
		OriginalName: p.OriginalName(),
		MimeType:     md.MimeType,
		Size:         md.Size,
		Width:        md.Width,
		Height:       md.Height,
		PasswordHash: p.PasswordHash(),
		Latitude:     md.Latitude,
		Longitude:    md.Longitude,
		DateTaken:    md.DateTaken,
		Camera:       md.Camera,
		Lens:         md.Lens,
		FocalLength:  md.FocalLength,
		Aperture:     md.Aperture,
		ShutterSpeed: md.ShutterSpeed,
		ISO:          md.ISO,
		CreatedAt:    p.CreatedAt(),
		UpdatedAt:    p.UpdatedAt(),
	}
}

func PhotoToEntity(m *models.PhotoModel) (*gallery.Photo, error) {
	p, err := gallery.ReconstructPhoto(m.ID, gallery.PhotoParams{
		SID:          m.SID,
		UserID:       m.UserID,
		CategoryID:   m.CategoryID,
		Title:        m.Title,
		Description:  m.Description,
		Filename:     m.Filename,
		OriginalName: m.OriginalName,
		PasswordHash: m.PasswordHash,
		Metadata: gallery.ImageMetadata{
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
		},
	}, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct photo entity: %w", err)
	}
	return p, nil
}

func PhotosToEntities(list []*models.PhotoModel) ([]*gallery.Photo, error) {
	out := make([]*gallery.Photo, 0, len(list))
	for _, m := range list {
		p, err := PhotoToEntity(m)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
