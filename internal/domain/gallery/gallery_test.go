package gallery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Street Photography", "street-photography"},
		{"Black & White", "black--white"},
		{"Café Crème", "cafe-creme"},
		{"2024 Trips!", "2024-trips"},
		{"???", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestNewCategory(t *testing.T) {
	c, err := NewCategory(1, "cat_a", "Street Photography", nil, nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, "street-photography", c.Slug())
	assert.True(t, c.IsPublic())

	_, err = NewCategory(1, "cat_b", "!!!", nil, nil, testNow)
	assert.Error(t, err)
}

func TestCategoryRenameAndProtect(t *testing.T) {
	c, err := NewCategory(1, "cat_a", "Portraits", nil, nil, testNow)
	require.NoError(t, err)

	later := testNow.Add(time.Hour)
	require.NoError(t, c.Rename("Family Portraits", later))
	assert.Equal(t, "family-portraits", c.Slug())
	assert.Equal(t, later, c.UpdatedAt())

	hash := "$2a$10$x"
	c.SetPasswordHash(&hash, later)
	assert.False(t, c.IsPublic())
	c.SetPasswordHash(nil, later)
	assert.True(t, c.IsPublic())
}

func TestNewPhoto(t *testing.T) {
	params := PhotoParams{
		SID:        "ph_a",
		UserID:     1,
		CategoryID: 2,
		Title:      " Sunset ",
		Filename:   "0123abcd.jpg",
		Metadata:   ImageMetadata{Width: 40, Height: 20, Size: 100, MimeType: "image/jpeg"},
	}

	p, err := NewPhoto(params, testNow)
	require.NoError(t, err)
	assert.Equal(t, "Sunset", p.Title())
	assert.True(t, p.IsPublic())
	assert.True(t, p.IsOwnedBy(1))

	params.Title = ""
	_, err = NewPhoto(params, testNow)
	assert.Error(t, err)
}
