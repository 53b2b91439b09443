package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myphoto-inc/myphoto/internal/domain/gallery"
	"github.com/myphoto-inc/myphoto/internal/shared/config"
)

func TestFileSystemStore(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")
	store, err := NewFileSystemStore(root)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("put open delete", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "abc.jpg", []byte("jpeg-bytes"), "image/jpeg"))

		rc, err := store.Open(ctx, "abc.jpg")
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, "jpeg-bytes", string(data))

		require.NoError(t, store.Delete(ctx, "abc.jpg"))
		require.NoError(t, store.Delete(ctx, "abc.jpg"))

		_, err = store.Open(ctx, "abc.jpg")
		assert.ErrorIs(t, err, gallery.ErrBlobNotFound)
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "def.jpg", []byte("x"), "image/jpeg"))
		entries, err := os.ReadDir(root)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "def.jpg", entries[0].Name())
	})

	t.Run("rejects traversal", func(t *testing.T) {
		assert.Error(t, store.Put(ctx, "../evil.jpg", []byte("x"), "image/jpeg"))
		assert.Error(t, store.Put(ctx, ".hidden", []byte("x"), "image/jpeg"))
		_, err := store.Open(ctx, "../../etc/passwd")
		assert.ErrorIs(t, err, gallery.ErrBlobNotFound)
	})
}

type fakeS3 struct {
	objects map[string][]byte
	types   map[string]string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Bucket+"/"+*in.Key] = data
	f.types[*in.Bucket+"/"+*in.Key] = *in.ContentType
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*in.Bucket+"/"+*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, *in.Bucket+"/"+*in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Store(t *testing.T) {
	fake := newFakeS3()
	store := NewS3Store(fake, "photos", "uploads")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "abc.jpg", []byte("jpeg"), "image/jpeg"))
	assert.Contains(t, fake.objects, "photos/uploads/abc.jpg")
	assert.Equal(t, "image/jpeg", fake.types["photos/uploads/abc.jpg"])

	rc, err := store.Open(ctx, "abc.jpg")
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	assert.Equal(t, "jpeg", string(data))

	require.NoError(t, store.Delete(ctx, "abc.jpg"))
	_, err = store.Open(ctx, "abc.jpg")
	assert.ErrorIs(t, err, gallery.ErrBlobNotFound)
}

func TestNewBlobStoreFromConfig(t *testing.T) {
	store, err := NewBlobStoreFromConfig(context.Background(), config.StorageConfig{
		Type: config.StorageFilesystem,
		Root: t.TempDir(),
	})
	require.NoError(t, err)
	assert.IsType(t, &FileSystemStore{}, store)

	_, err = NewBlobStoreFromConfig(context.Background(), config.StorageConfig{Type: "ftp"})
	assert.Error(t, err)
}
