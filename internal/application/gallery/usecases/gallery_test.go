package usecases

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/domain/user"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/auth"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/imageproc"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/persistence/models"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/persistence/testdb"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/repository"
	"github.com/myphoto-inc/myphoto/internal/infrastructure/storage"
	"github.com/myphoto-inc/myphoto/internal/shared/config"
	"github.com/myphoto-inc/myphoto/internal/shared/db"
	"github.com/myphoto-inc/myphoto/internal/shared/errors"
	"github.com/myphoto-inc/myphoto/internal/shared/logger"
	"github.com/myphoto-inc/myphoto/internal/shared/services/markdown"
)

// failingPhotoRepo rejects every insert.
type failingPhotoRepo struct {
	*repository.PhotoRepository
}

func (failingPhotoRepo) Create(context.Context, *gallery.Photo) error {
	return fmt.Errorf("disk full")
}

// lockedPhotoRepo rejects every delete.
type lockedPhotoRepo struct {
	*repository.PhotoRepository
}

func (lockedPhotoRepo) Delete(context.Context, uint) error {
	return fmt.Errorf("database is locked")
}

type galleryFixture struct {
	db         *gorm.DB
	root       string
	users      *repository.UserRepository
	categories *repository.CategoryRepository
	photos     *repository.PhotoRepository
	blobs      *storage.FileSystemStore
	pipeline   *imageproc.Pipeline
	hasher     *auth.BcryptPasswordHasher
	owner      *user.User

	createCategory *CreateCategoryUseCase
	updateCategory *UpdateCategoryUseCase
	deleteCategory *DeleteCategoryUseCase
	listCategories *ListCategoriesUseCase
	upload         *UploadPhotoUseCase
	listPhotos     *ListPhotosUseCase
	deletePhoto    *DeletePhotoUseCase
	public         *PublicGalleryUseCase
	unlock         *UnlockCategoryUseCase
}

func newGalleryFixture(t *testing.T) *galleryFixture {
	t.Helper()
	gdb := testdb.New(t)
	log := logger.NewNopLogger()
	root := t.TempDir()
	blobs, err := storage.NewFileSystemStore(root)
	require.NoError(t, err)

	f := &galleryFixture{
		db:         gdb,
		root:       root,
		users:      repository.NewUserRepository(gdb, log),
		categories: repository.NewCategoryRepository(gdb, log),
		photos:     repository.NewPhotoRepository(gdb, log),
		blobs:      blobs,
		hasher:     auth.NewBcryptPasswordHasher(bcrypt.MinCost),
	}
	f.pipeline = imageproc.NewPipeline(blobs, config.ImageConfig{Quality: 85, MaxConcurrent: 2}, log)
	md := markdown.NewMarkdownService()
	tx := db.NewTransactionManager(gdb)

	f.createCategory = NewCreateCategoryUseCase(f.categories, f.hasher, md, log)
	f.updateCategory = NewUpdateCategoryUseCase(f.categories, f.photos, f.hasher, md, log)
	f.deleteCategory = NewDeleteCategoryUseCase(f.categories, f.photos, blobs, tx, log)
	f.listCategories = NewListCategoriesUseCase(f.categories, f.photos, md, log)
	f.upload = NewUploadPhotoUseCase(f.categories, f.photos, f.pipeline, blobs, f.hasher, log)
	f.listPhotos = NewListPhotosUseCase(f.categories, f.photos, log)
	f.deletePhoto = NewDeletePhotoUseCase(f.photos, blobs, log)
	f.public = NewPublicGalleryUseCase(f.users, f.categories, f.photos, md, log)
	f.unlock = NewUnlockCategoryUseCase(f.users, f.categories, f.photos, f.hasher, md, log)
	return f
}

func (f *galleryFixture) createUser(t *testing.T, username string) *user.User {
	t.Helper()
	u, err := user.NewUser(username, username, "$2a$10$hash", time.Now().UTC())
	require.NoError(t, err)
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func (f *galleryFixture) category(t *testing.T, u *user.User, name string, password *string) string {
	t.Helper()
	resp, err := f.createCategory.Execute(context.Background(), CreateCategoryCommand{
		UserID:   u.ID(),
		Name:     name,
		Password: password,
	})
	require.NoError(t, err)
	return resp.ID
}

func (f *galleryFixture) uploadPNG(t *testing.T, u *user.User, categorySID, title string, password *string) string {
	t.Helper()
	resp, err := f.upload.Execute(context.Background(), UploadPhotoCommand{
		UserID:           u.ID(),
		CategorySID:      categorySID,
		Title:            title,
		Password:         password,
		OriginalFilename: "holiday.png",
		Data:             pngBytes(t),
	})
	require.NoError(t, err)
	return resp.ID
}

func (f *galleryFixture) storedFiles(t *testing.T) []string {
	t.Helper()
	entries, err := os.ReadDir(f.root)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func (f *galleryFixture) photoRows(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.PhotoModel{}).Count(&n).Error)
	return n
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 16, 8))
	for x := 0; x < 16; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func strPtr(s string) *string { return &s }

func TestCreateCategory(t *testing.T) {
	f := newGalleryFixture(t)
	owner := f.createUser(t, "alice")
	ctx := context.Background()

	resp, err := f.createCategory.Execute(ctx, CreateCategoryCommand{
		UserID:      owner.ID(),
		Name:        "  Café Nights ",
		Description: strPtr("Shot on **film**"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Café Nights", resp.Name)
	assert.Equal(t, "cafe-nights", resp.Slug)
	assert.False(t, resp.IsProtected)
	assert.Contains(t, resp.DescriptionHTML, "<strong>film</strong>")

	_, err = f.createCategory.Execute(ctx, CreateCategoryCommand{UserID: owner.ID(), Name: "cafe nights"})
	assert.True(t, errors.IsConflictError(err), "same slug for the same user")

	_, err = f.createCategory.Execute(ctx, CreateCategoryCommand{UserID: owner.ID(), Name: "!!!"})
	assert.True(t, errors.IsValidationError(err))

	bob := f.createUser(t, "bob")
	_, err = f.createCategory.Execute(ctx, CreateCategoryCommand{UserID: bob.ID(), Name: "Café Nights"})
	assert.NoError(t, err, "slugs are unique per user")
}

func TestUpdateCategory_Password(t *testing.T) {
	f := newGalleryFixture(t)
	owner := f.createUser(t, "alice")
	ctx := context.Background()
	sid := f.category(t, owner, "Family", strPtr("secret"))

	resp, err := f.updateCategory.Execute(ctx, UpdateCategoryCommand{UserID: owner.ID(), CategorySID: sid, Name: strPtr("Family 2024")})
	require.NoError(t, err)
	assert.Equal(t, "family-2024", resp.Slug)
	assert.True(t, resp.IsProtected, "omitted password leaves protection")

	resp, err = f.updateCategory.Execute(ctx, UpdateCategoryCommand{UserID: owner.ID(), CategorySID: sid, Password: strPtr("")})
	require.NoError(t, err)
	assert.False(t, resp.IsProtected, "empty password clears protection")

	bob := f.createUser(t, "bob")
	_, err = f.updateCategory.Execute(ctx, UpdateCategoryCommand{UserID: bob.ID(), CategorySID: sid, Name: strPtr("Mine")})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestUploadPhoto_Success(t *testing.T) {
	f := newGalleryFixture(t)
	owner := f.createUser(t, "alice")
	ctx := context.Background()
	sid := f.category(t, owner, "Landscapes", nil)

	resp, err := f.upload.Execute(ctx, UploadPhotoCommand{
		UserID:           owner.ID(),
		CategorySID:      sid,
		Title:            "<b>Sunset</b>",
		Description:      strPtr("Evening <script>x()</script>light"),
		OriginalFilename: "../../etc/sunset.png",
		Data:             pngBytes(t),
	})
	require.NoError(t, err)
	assert.Equal(t, "Sunset", resp.Title)
	assert.Equal(t, "Evening light", *resp.Description)
	assert.Equal(t, "sunset.png", resp.OriginalName)
	assert.Equal(t, "image/jpeg", resp.MimeType)
	assert.Equal(t, 16, resp.Width)
	assert.Equal(t, 8, resp.Height)
	assert.Regexp(t, `^[0-9a-f]{32}\.jpg$`, resp.Filename)
	assert.Equal(t, "/api/uploads/"+resp.Filename, resp.URL)
	require.NotNil(t, resp.Category)
	assert.Equal(t, sid, resp.Category.ID)

	assert.Equal(t, []string{resp.Filename}, f.storedFiles(t))

	listed, err := f.listCategories.Execute(ctx, ListCategoriesCommand{UserID: owner.ID()})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, int64(1), listed[0].PhotoCount)
}

func TestUploadPhoto_DecodeErrorWritesNothing(t *testing.T) {
	f := newGalleryFixture(t)
	owner := f.createUser(t, "alice")
	sid := f.category(t, owner, "Landscapes", nil)

	_, err := f.upload.Execute(context.Background(), UploadPhotoCommand{
		UserID:           owner.ID(),
		CategorySID:      sid,
		Title:            "Not a photo",
		OriginalFilename: "notes.jpg",
		Data:             []byte("definitely not an image"),
	})
	assert.True(t, errors.IsDecodeError(err))
	assert.Empty(t, f.storedFiles(t))
	assert.Zero(t, f.photoRows(t))
}

func TestUploadPhoto_Rejections(t *testing.T) {
	f := newGalleryFixture(t)
	owner := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	sid := f.category(t, owner, "Landscapes", nil)
	ctx := context.Background()

	_, err := f.upload.Execute(ctx, UploadPhotoCommand{UserID: owner.ID(), CategorySID: sid, Title: "  ", Data: pngBytes(t)})
	assert.True(t, errors.IsValidationError(err))

	_, err = f.upload.Execute(ctx, UploadPhotoCommand{UserID: bob.ID(), CategorySID: sid, Title: "Mine", Data: pngBytes(t)})
	assert.True(t, errors.IsNotFoundError(err))

	assert.Empty(t, f.storedFiles(t))
}

func TestUploadPhoto_InsertFailureRemovesFile(t *testing.T) {
	f := newGalleryFixture(t)
	owner := f.createUser(t, "alice")
	sid := f.category(t, owner, "Landscapes", nil)

	uc := NewUploadPhotoUseCase(f.categories, failingPhotoRepo{f.photos}, f.pipeline, f.blobs, f.hasher, logger.NewNopLogger())
	_, err := uc.Execute(context.Background(), UploadPhotoCommand{
		UserID:      owner.ID(),
		CategorySID: sid,
		Title:       "Sunset",
		Data:        pngBytes(t),
	})
	require.Error(t, err)
	assert.Empty(t, f.storedFiles(t))
}

func TestListAndDeletePhotos(t *testing.T) {
	f := newGalleryFixture(t)
	owner := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	ctx := context.Background()
	landscapes := f.category(t, owner, "Landscapes", nil)
	portraits := f.category(t, owner, "Portraits", nil)

	first := f.uploadPNG(t, owner, landscapes, "Hills", nil)
	f.uploadPNG(t, owner, portraits, "Face", nil)

	all, err := f.listPhotos.Execute(ctx, ListPhotosCommand{UserID: owner.ID()})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	only, err := f.listPhotos.Execute(ctx, ListPhotosCommand{UserID: owner.ID(), CategorySID: landscapes})
	require.NoError(t, err)
	require.Len(t, only, 1)
	assert.Equal(t, "Hills", only[0].Title)
	assert.Equal(t, "Landscapes", only[0].Category.Name)

	_, err = f.listPhotos.Execute(ctx, ListPhotosCommand{UserID: bob.ID(), CategorySID: landscapes})
	assert.True(t, errors.IsNotFoundError(err))

	err = f.deletePhoto.Execute(ctx, DeletePhotoCommand{UserID: bob.ID(), PhotoSID: first})
	assert.True(t, errors.IsNotFoundError(err))

	require.NoError(t, f.deletePhoto.Execute(ctx, DeletePhotoCommand{UserID: owner.ID(), PhotoSID: first}))
	assert.Len(t, f.storedFiles(t), 1)
	assert.Equal(t, int64(1), f.photoRows(t))
}

func TestDeletePhoto_RowFailureKeepsFile(t *testing.T) {
	f := newGalleryFixture(t)
	owner := f.createUser(t, "alice")
	sid := f.category(t, owner, "Landscapes", nil)
	photoSID := f.uploadPNG(t, owner, sid, "Hills", nil)

	uc := NewDeletePhotoUseCase(lockedPhotoRepo{f.photos}, f.blobs, logger.NewNopLogger())
	err := uc.Execute(context.Background(), DeletePhotoCommand{UserID: owner.ID(), PhotoSID: photoSID})
	require.Error(t, err)
	assert.Len(t, f.storedFiles(t), 1)
	assert.Equal(t, int64(1), f.photoRows(t))
}

func TestDeleteCategory_Cascades(t *testing.T) {
	f := newGalleryFixture(t)
	owner := f.createUser(t, "alice")
	ctx := context.Background()
	doomed := f.category(t, owner, "Doomed", nil)
	kept := f.category(t, owner, "Kept", nil)

	f.uploadPNG(t, owner, doomed, "One", nil)
	f.uploadPNG(t, owner, doomed, "Two", nil)
	keptPhoto := f.uploadPNG(t, owner, kept, "Three", nil)

	require.NoError(t, f.deleteCategory.Execute(ctx, DeleteCategoryCommand{UserID: owner.ID(), CategorySID: doomed}))

	assert.Len(t, f.storedFiles(t), 1)
	assert.Equal(t, int64(1), f.photoRows(t))

	remaining, err := f.listPhotos.Execute(ctx, ListPhotosCommand{UserID: owner.ID()})
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, keptPhoto, remaining[0].ID)

	err = f.deleteCategory.Execute(ctx, DeleteCategoryCommand{UserID: owner.ID(), CategorySID: doomed})
	assert.True(t, errors.IsNotFoundError(err))
}

func TestPublicGallery(t *testing.T) {
	f := newGalleryFixture(t)
	ctx := context.Background()

	empty, err := f.public.Execute(ctx)
	require.NoError(t, err)
	assert.Nil(t, empty.User)
	assert.Empty(t, empty.Categories)

	owner := f.createUser(t, "alice")
	open := f.category(t, owner, "Open", nil)
	locked := f.category(t, owner, "Locked", strPtr("secret"))

	f.uploadPNG(t, owner, open, "Visible", nil)
	f.uploadPNG(t, owner, open, "Hidden photo", strPtr("photo-secret"))
	f.uploadPNG(t, owner, locked, "Hidden category", nil)

	resp, err := f.public.Execute(ctx)
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, "alice", resp.User.Username)

	require.Len(t, resp.Categories, 1)
	assert.Equal(t, open, resp.Categories[0].ID)
	assert.Equal(t, int64(1), resp.Categories[0].PhotoCount)

	require.Len(t, resp.Photos, 1)
	assert.Equal(t, "Visible", resp.Photos[0].Title)
}

func TestUnlockCategory(t *testing.T) {
	f := newGalleryFixture(t)
	owner := f.createUser(t, "alice")
	ctx := context.Background()
	locked := f.category(t, owner, "Family Trip", strPtr("secret"))

	f.uploadPNG(t, owner, locked, "Beach", nil)
	f.uploadPNG(t, owner, locked, "Private", strPtr("extra"))

	_, err := f.unlock.Execute(ctx, UnlockCategoryCommand{Slug: "family-trip", Password: "wrong"})
	assert.True(t, errors.IsUnauthorizedError(err))

	_, err = f.unlock.Execute(ctx, UnlockCategoryCommand{Slug: "missing", Password: "secret"})
	assert.True(t, errors.IsNotFoundError(err))

	resp, err := f.unlock.Execute(ctx, UnlockCategoryCommand{Slug: "family-trip", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, locked, resp.Category.ID)
	require.Len(t, resp.Photos, 1)
	assert.Equal(t, "Beach", resp.Photos[0].Title)
}
