package images

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public")
	storage := NewLocalStorage(dir, "/")

	path, err := storage.Save(context.Background(), "hero-image.jpg", "image/jpeg", strings.NewReader("jpeg bytes"))

	require.NoError(t, err)
	assert.Equal(t, "/hero-image.jpg", path)
	data, err := os.ReadFile(filepath.Join(dir, "hero-image.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLocalStorage_SaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	storage := NewLocalStorage(dir, "/assets")

	_, err := storage.Save(context.Background(), "dashboard-bg.jpg", "image/jpeg", strings.NewReader("old"))
	require.NoError(t, err)
	path, err := storage.Save(context.Background(), "dashboard-bg.jpg", "image/jpeg", strings.NewReader("new"))
	require.NoError(t, err)

	assert.Equal(t, "/assets/dashboard-bg.jpg", path)
	data, err := os.ReadFile(filepath.Join(dir, "dashboard-bg.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestLocalStorage_RejectsPaths(t *testing.T) {
	storage := NewLocalStorage(t.TempDir(), "/")

	_, err := storage.Save(context.Background(), "../escape.png", "image/png", strings.NewReader("x"))

	assert.Error(t, err)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestLocalStorage_BodyErrorLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	storage := NewLocalStorage(dir, "/")

	_, err := storage.Save(context.Background(), "ben-cartoon.png", "image/png", failingReader{})

	require.Error(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

type fakePutObject struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakePutObject) PutObject(
	_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	f.input = params
	data, _ := io.ReadAll(params.Body)
	f.body = string(data)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Storage_Save(t *testing.T) {
	client := &fakePutObject{}
	storage := NewS3Storage(client, "site-assets", "/images/", "https://cdn.example/")

	path, err := storage.Save(context.Background(), "hero-image.jpg", "image/jpeg", strings.NewReader("jpeg bytes"))

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/images/hero-image.jpg", path)
	assert.Equal(t, "site-assets", aws.ToString(client.input.Bucket))
	assert.Equal(t, "images/hero-image.jpg", aws.ToString(client.input.Key))
	assert.Equal(t, "image/jpeg", aws.ToString(client.input.ContentType))
	assert.Equal(t, int64(len("jpeg bytes")), aws.ToInt64(client.input.ContentLength))
	assert.Equal(t, "jpeg bytes", client.body)
}

func TestS3Storage_SaveError(t *testing.T) {
	client := &fakePutObject{err: errors.New("AccessDenied")}
	storage := NewS3Storage(client, "site-assets", "", "https://cdn.example")

	_, err := storage.Save(context.Background(), "hero-image.jpg", "image/jpeg", strings.NewReader("x"))

	assert.ErrorContains(t, err, "AccessDenied")
}
