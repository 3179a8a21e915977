package model

type ImageAssetName string

const (
	ImageAssetAvatar        = ImageAssetName("avatar")
	ImageAssetCartoonAvatar = ImageAssetName("cartoon-avatar")
	ImageAssetHero          = ImageAssetName("hero")
	ImageAssetDashboardBG   = ImageAssetName("dashboard-bg")
)

// ImageAsset describes one generated site image. An empty FileName means the
// generated URL is handed back as-is and nothing is stored.
type ImageAsset struct {
	Name         ImageAssetName
	Prompt       string
	Size         string
	Quality      string
	Style        string
	FileName     string
	ContentType  string
	FallbackPath string
}

type ImageResult struct {
	Asset ImageAssetName
	Path  string
	Err   error
}
