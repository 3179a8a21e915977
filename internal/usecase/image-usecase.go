package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/sashabaranov/go-openai"
	"github.com/sourcegraph/conc/pool"
	"github.com/thefortaiagency/bendavis/config"
	"github.com/thefortaiagency/bendavis/internal/model"
	"go.uber.org/zap"
)

var ErrUnknownImageAsset = errors.New("unknown image asset")

var imageAssets = map[model.ImageAssetName]model.ImageAsset{
	model.ImageAssetAvatar: {
		Name: model.ImageAssetAvatar,
		Prompt: "Create a friendly, professional cartoon avatar of an elderly businessman with glasses, warm smile, " +
			"wearing a blue sweater over a collared shirt. The style should be approachable and trustworthy, similar " +
			"to a car dealership owner. Circular avatar style with soft blue background. Professional but warm and " +
			"welcoming appearance.",
		Size:         openai.CreateImageSize1024x1024,
		Quality:      openai.CreateImageQualityStandard,
		Style:        openai.CreateImageStyleNatural,
		FallbackPath: "/bendavis.jpg",
	},
	model.ImageAssetCartoonAvatar: {
		Name: model.ImageAssetCartoonAvatar,
		Prompt: "Create a friendly cartoon avatar of a smiling elderly man with glasses, gray/white hair, wearing a " +
			"blue sweater. The style should be like a Pixar character or friendly illustrated mascot. Round face, " +
			"warm smile, professional but approachable. Head and shoulders view. Clean, simple cartoon style with " +
			"soft colors. Background should be light blue or white.",
		Size:        openai.CreateImageSize1024x1024,
		Quality:     openai.CreateImageQualityStandard,
		Style:       openai.CreateImageStyleVivid,
		FileName:    "ben-cartoon.png",
		ContentType: "image/png",
	},
	model.ImageAssetHero: {
		Name: model.ImageAssetHero,
		Prompt: "Heritage-focused hero image capturing the Ben Davis Automotive legacy in Auburn, Indiana - 'Home of " +
			"the Classics'. Create a warm, nostalgic composition that blends Auburn's classic automotive heritage " +
			"with family dealership tradition. Show a classic 1930s Auburn Cord Duesenberg-style vintage car in the " +
			"foreground (honoring Auburn's automotive golden age), alongside modern Chevrolet, Buick, and Ford " +
			"vehicles, symbolizing how Ben Davis connects Auburn's past to its present. Include the Auburn town " +
			"square or courthouse in the soft-focus background, warm golden hour lighting suggesting trust and " +
			"community values, maybe an American flag or 'Auburn - Home of the Classics' sign subtly visible. The " +
			"image should feel like a tribute to entrepreneurial spirit, family values, and community dedication - " +
			"capturing the essence of why Ben Davis (1937-2014) was inducted into the DeKalb County Business Hall " +
			"of Fame. Style: Cinematic, warm tones, heritage documentary photography that honors both automotive " +
			"history and family legacy.",
		Size:        openai.CreateImageSize1792x1024,
		Quality:     openai.CreateImageQualityHD,
		Style:       openai.CreateImageStyleNatural,
		FileName:    "hero-image.jpg",
		ContentType: "image/jpeg",
	},
	model.ImageAssetDashboardBG: {
		Name: model.ImageAssetDashboardBG,
		Prompt: "NO TEXT OR WORDS ANYWHERE. Create a cartoon-style background inspired by Pixar's Cars movie " +
			"aesthetic for a car dealership dashboard. Show a stylized cartoon automotive dealership showroom floor " +
			"with glossy reflective surfaces, soft ambient lighting, and subtle automotive elements like tire tracks " +
			"patterns on the floor. Use warm colors with burgundy/red accents. The style should be clean, " +
			"professional yet playful like the Cars movie - smooth gradients, soft shadows, and a slight glossy " +
			"sheen. Background only, no cars or characters, just the environment. Subtle and not too busy, " +
			"suitable as a dashboard background.",
		Size:        openai.CreateImageSize1792x1024,
		Quality:     openai.CreateImageQualityHD,
		Style:       openai.CreateImageStyleVivid,
		FileName:    "dashboard-bg.jpg",
		ContentType: "image/jpeg",
	},
}

func LookupImageAsset(name model.ImageAssetName) (model.ImageAsset, bool) {
	asset, ok := imageAssets[name]
	return asset, ok
}

// StoredImageAssets lists the assets that are saved to storage, sorted by name.
func StoredImageAssets() []model.ImageAssetName {
	names := make([]model.ImageAssetName, 0, len(imageAssets))
	for name, asset := range imageAssets {
		if asset.FileName != "" {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

type ImageGenerator interface {
	CreateImage(ctx context.Context, asset model.ImageAsset) (string, error)
}

// ImageStorage persists a file and returns the public path it is served from.
type ImageStorage interface {
	Save(ctx context.Context, fileName, contentType string, body io.Reader) (string, error)
}

type ImageUsecaseDeps struct {
	Generator  ImageGenerator
	Storage    ImageStorage
	HTTPClient *http.Client
	Logger     *zap.Logger
}

type ImageUsecase struct {
	ImageUsecaseDeps
	cfg config.Images
}

func NewImageUsecase(deps ImageUsecaseDeps, cfg config.Images) *ImageUsecase {
	if deps.HTTPClient == nil {
		deps.HTTPClient = http.DefaultClient
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &ImageUsecase{
		ImageUsecaseDeps: deps,
		cfg:              cfg,
	}
}

// GenerateURL returns the generator's URL for name without storing anything.
func (i *ImageUsecase) GenerateURL(ctx context.Context, name model.ImageAssetName) (string, error) {
	asset, ok := LookupImageAsset(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownImageAsset, name)
	}
	return i.Generator.CreateImage(ctx, asset)
}

// GenerateAndSave generates name, downloads it and stores it under the asset's
// file name. It returns the public path.
func (i *ImageUsecase) GenerateAndSave(ctx context.Context, name model.ImageAssetName) (string, error) {
	asset, ok := LookupImageAsset(name)
	if !ok || asset.FileName == "" {
		return "", fmt.Errorf("%w: %s", ErrUnknownImageAsset, name)
	}

	imageURL, err := i.Generator.CreateImage(ctx, asset)
	if err != nil {
		return "", err
	}

	path, err := i.download(ctx, imageURL, asset)
	if err != nil {
		return "", err
	}
	i.Logger.Info("image asset saved", zap.String("asset", string(name)), zap.String("path", path))
	return path, nil
}

// GenerateAll runs GenerateAndSave for every name on a bounded pool. Results
// are sorted by asset name; failures are reported per asset.
func (i *ImageUsecase) GenerateAll(ctx context.Context, names []model.ImageAssetName) []model.ImageResult {
	p := pool.NewWithResults[model.ImageResult]().WithMaxGoroutines(i.cfg.Concurrency)
	for _, name := range names {
		p.Go(
			func() model.ImageResult {
				path, err := i.GenerateAndSave(ctx, name)
				if err != nil {
					i.Logger.Warn("image asset generation failed", zap.String("asset", string(name)), zap.Error(err))
				}
				return model.ImageResult{Asset: name, Path: path, Err: err}
			},
		)
	}
	results := p.Wait()
	sort.Slice(results, func(a, b int) bool { return results[a].Asset < results[b].Asset })
	return results
}

func (i *ImageUsecase) download(ctx context.Context, imageURL string, asset model.ImageAsset) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build download request: %w", err)
	}
	resp, err := i.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", asset.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download %s: status %d", asset.Name, resp.StatusCode)
	}

	path, err := i.Storage.Save(ctx, asset.FileName, asset.ContentType, resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to save %s: %w", asset.FileName, err)
	}
	return path, nil
}
