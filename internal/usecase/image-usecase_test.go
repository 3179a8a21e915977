package usecase

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thefortaiagency/bendavis/config"
	"github.com/thefortaiagency/bendavis/internal/model"
	"github.com/thefortaiagency/bendavis/internal/storage/images"
)

type fakeImageGenerator struct {
	mu      sync.Mutex
	baseURL string
	failFor map[model.ImageAssetName]error
	assets  []model.ImageAsset
}

func (f *fakeImageGenerator) CreateImage(_ context.Context, asset model.ImageAsset) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assets = append(f.assets, asset)
	if err := f.failFor[asset.Name]; err != nil {
		return "", err
	}
	return f.baseURL + "/" + string(asset.Name), nil
}

func newImageTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "/missing" {
					http.NotFound(w, r)
					return
				}
				_, _ = w.Write([]byte("image" + r.URL.Path))
			},
		),
	)
	t.Cleanup(srv.Close)
	return srv
}

func newTestImages(t *testing.T, gen ImageGenerator) (*ImageUsecase, string) {
	t.Helper()
	dir := t.TempDir()
	return NewImageUsecase(
		ImageUsecaseDeps{
			Generator: gen,
			Storage:   images.NewLocalStorage(dir, "/"),
		},
		config.Images{Concurrency: 2},
	), dir
}

func TestImageAssetsCatalog(t *testing.T) {
	assert.Equal(
		t, []model.ImageAssetName{model.ImageAssetCartoonAvatar, model.ImageAssetDashboardBG, model.ImageAssetHero},
		StoredImageAssets(),
	)

	avatar, ok := LookupImageAsset(model.ImageAssetAvatar)
	require.True(t, ok)
	assert.Equal(t, "/bendavis.jpg", avatar.FallbackPath)
	assert.Empty(t, avatar.FileName)
	assert.Equal(t, "1024x1024", avatar.Size)

	bg, ok := LookupImageAsset(model.ImageAssetDashboardBG)
	require.True(t, ok)
	assert.Equal(t, "dashboard-bg.jpg", bg.FileName)
	assert.Equal(t, "vivid", bg.Style)
	assert.Equal(t, "hd", bg.Quality)

	_, ok = LookupImageAsset("logo")
	assert.False(t, ok)
}

func TestImageUsecase_GenerateURL(t *testing.T) {
	gen := &fakeImageGenerator{baseURL: "https://images.example"}
	u, dir := newTestImages(t, gen)

	url, err := u.GenerateURL(context.Background(), model.ImageAssetAvatar)

	require.NoError(t, err)
	assert.Equal(t, "https://images.example/avatar", url)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = u.GenerateURL(context.Background(), "logo")
	assert.ErrorIs(t, err, ErrUnknownImageAsset)
}

func TestImageUsecase_GenerateAndSave(t *testing.T) {
	srv := newImageTestServer(t)

	t.Run("downloads into storage", func(t *testing.T) {
		u, dir := newTestImages(t, &fakeImageGenerator{baseURL: srv.URL})

		path, err := u.GenerateAndSave(context.Background(), model.ImageAssetHero)

		require.NoError(t, err)
		assert.Equal(t, "/hero-image.jpg", path)
		data, err := os.ReadFile(filepath.Join(dir, "hero-image.jpg"))
		require.NoError(t, err)
		assert.Equal(t, "image/hero", string(data))
	})

	t.Run("avatar is not a stored asset", func(t *testing.T) {
		u, _ := newTestImages(t, &fakeImageGenerator{baseURL: srv.URL})

		_, err := u.GenerateAndSave(context.Background(), model.ImageAssetAvatar)

		assert.ErrorIs(t, err, ErrUnknownImageAsset)
	})

	t.Run("generator error passes through", func(t *testing.T) {
		gen := &fakeImageGenerator{
			baseURL: srv.URL,
			failFor: map[model.ImageAssetName]error{model.ImageAssetCartoonAvatar: ErrImageNotGenerated},
		}
		u, _ := newTestImages(t, gen)

		_, err := u.GenerateAndSave(context.Background(), model.ImageAssetCartoonAvatar)

		assert.ErrorIs(t, err, ErrImageNotGenerated)
	})

	t.Run("download failure", func(t *testing.T) {
		u, dir := newTestImages(t, &fakeImageGenerator{baseURL: srv.URL + "/missing?"})

		_, err := u.GenerateAndSave(context.Background(), model.ImageAssetHero)

		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrImageNotGenerated)
		_, statErr := os.Stat(filepath.Join(dir, "hero-image.jpg"))
		assert.True(t, os.IsNotExist(statErr))
	})
}

func TestImageUsecase_GenerateAll(t *testing.T) {
	srv := newImageTestServer(t)
	failure := errors.New("content policy")
	gen := &fakeImageGenerator{
		baseURL: srv.URL,
		failFor: map[model.ImageAssetName]error{model.ImageAssetHero: failure},
	}
	u, dir := newTestImages(t, gen)

	results := u.GenerateAll(context.Background(), StoredImageAssets())

	require.Len(t, results, 3)
	assert.Equal(t, model.ImageResult{Asset: model.ImageAssetCartoonAvatar, Path: "/ben-cartoon.png"}, results[0])
	assert.Equal(t, model.ImageResult{Asset: model.ImageAssetDashboardBG, Path: "/dashboard-bg.jpg"}, results[1])
	assert.Equal(t, model.ImageAssetHero, results[2].Asset)
	assert.ErrorIs(t, results[2].Err, failure)

	assert.FileExists(t, filepath.Join(dir, "ben-cartoon.png"))
	assert.FileExists(t, filepath.Join(dir, "dashboard-bg.jpg"))
	assert.Len(t, gen.assets, 3)
}
