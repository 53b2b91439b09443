package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/interfaces/http/handlers/testutil"
)

type mockBlobOpener struct {
	mock.Mock
}

func (m *mockBlobOpener) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	args := m.Called(ctx, name)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func serveUpload(blobs blobOpener, filename string) (int, http.Header, string) {
	c, w := testutil.NewTestContext(http.MethodGet, "/api/uploads/file", nil)
	testutil.SetURLParam(c, "filename", filename)

	NewUploadHandler(blobs, testutil.NewMockLogger()).Serve(c)
	return w.Code, w.Header(), w.Body.String()
}

func TestUploadHandler_Serve(t *testing.T) {
	blobs := &mockBlobOpener{}
	blobs.On("Open", mock.Anything, "1700000000000-ab12cd34.jpg").
		Return(io.NopCloser(strings.NewReader("jpeg-bytes")), nil)

	code, header, body := serveUpload(blobs, "1700000000000-ab12cd34.jpg")

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "image/jpeg", header.Get("Content-Type"))
	assert.Equal(t, "public, max-age=31536000, immutable", header.Get("Cache-Control"))
	assert.Equal(t, "jpeg-bytes", body)
	blobs.AssertExpectations(t)
}

func TestUploadHandler_UppercaseExtensionAccepted(t *testing.T) {
	blobs := &mockBlobOpener{}
	blobs.On("Open", mock.Anything, "ABC-1.JPG").Return(io.NopCloser(strings.NewReader("x")), nil)

	code, _, _ := serveUpload(blobs, "ABC-1.JPG")
	assert.Equal(t, http.StatusOK, code)
}

func TestUploadHandler_RejectsUnsafeNamesBeforeStorage(t *testing.T) {
	names := []string{
		"../etc/passwd",
		"..%2Fsecret.jpg",
		"a/b.jpg",
		"photo.png",
		"photo.jpg.exe",
		"ph oto.jpg",
		"photo_1.jpg",
		".jpg",
		"",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			blobs := &mockBlobOpener{}
			code, _, _ := serveUpload(blobs, name)

			assert.Equal(t, http.StatusBadRequest, code)
			blobs.AssertNotCalled(t, "Open", mock.Anything, mock.Anything)
		})
	}
}

func TestUploadHandler_Missing(t *testing.T) {
	blobs := &mockBlobOpener{}
	blobs.On("Open", mock.Anything, "gone.jpg").Return(nil, gallery.ErrBlobNotFound)

	code, _, _ := serveUpload(blobs, "gone.jpg")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestUploadHandler_StorageFailure(t *testing.T) {
	blobs := &mockBlobOpener{}
	blobs.On("Open", mock.Anything, "x.jpg").Return(nil, errors.New("bucket unreachable"))

	code, _, body := serveUpload(blobs, "x.jpg")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.NotContains(t, body, "bucket unreachable")
}
