package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTP struct {
	Addr            string        `yaml:"addr" env:"HTTP_ADDR" env-default:":3000"`
	StaticDir       string        `yaml:"static_dir" env:"HTTP_STATIC_DIR" env-default:"public"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
	SecureCookies   bool          `yaml:"secure_cookies" env:"HTTP_SECURE_COOKIES" env-default:"false"`
}

type Log struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

type Dialogue struct {
	Provider        string  `yaml:"provider" env:"DIALOGUE_PROVIDER" env-default:"openai"`
	Temperature     float32 `yaml:"temperature" env:"DIALOGUE_TEMPERATURE" env-default:"0.8"`
	MaxTokens       int     `yaml:"max_tokens" env:"DIALOGUE_MAX_TOKENS" env-default:"300"`
	MaxPromptTokens int     `yaml:"max_prompt_tokens" env:"DIALOGUE_MAX_PROMPT_TOKENS" env-default:"0"`
}

type OpenAI struct {
	OpenAIAPIKey  string `yaml:"api_key" env:"OPENAI_API_KEY"`
	OpenAIModel   string `yaml:"model" env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
	OpenAIBaseURL string `yaml:"base_url" env:"OPENAI_BASE_URL"`
	ImageModel    string `yaml:"image_model" env:"OPENAI_IMAGE_MODEL" env-default:"dall-e-3"`
}

type Anthropic struct {
	APIKey string `yaml:"api_key" env:"ANTHROPIC_API_KEY"`
	Model  string `yaml:"model" env:"ANTHROPIC_MODEL" env-default:"claude-3-5-haiku-latest"`
}

// Redis with an empty Endpoint selects the in-memory stores.
type Redis struct {
	Endpoint string `yaml:"endpoint" env:"REDIS_ENDPOINT"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type SeedUser struct {
	Username     string   `yaml:"username"`
	Name         string   `yaml:"name"`
	PasswordHash string   `yaml:"password_hash"`
	Roles        []string `yaml:"roles"`
}

type Auth struct {
	CookieName string        `yaml:"cookie_name" env:"AUTH_COOKIE_NAME" env-default:"auth-session"`
	SessionTTL time.Duration `yaml:"session_ttl" env:"AUTH_SESSION_TTL" env-default:"168h"`
	Users      []SeedUser    `yaml:"users"`
}

type Images struct {
	PublicDir   string `yaml:"public_dir" env:"IMAGES_PUBLIC_DIR" env-default:"public"`
	URLPrefix   string `yaml:"url_prefix" env:"IMAGES_URL_PREFIX" env-default:"/"`
	S3Bucket    string `yaml:"s3_bucket" env:"IMAGES_S3_BUCKET"`
	S3Prefix    string `yaml:"s3_prefix" env:"IMAGES_S3_PREFIX"`
	S3Region    string `yaml:"s3_region" env:"IMAGES_S3_REGION"`
	S3PublicURL string `yaml:"s3_public_url" env:"IMAGES_S3_PUBLIC_URL"`
	Concurrency int    `yaml:"concurrency" env:"IMAGES_CONCURRENCY" env-default:"2"`
}

type GoDaddy struct {
	APIKey    string `yaml:"api_key" env:"GODADDY_API_KEY"`
	APISecret string `yaml:"api_secret" env:"GODADDY_API_SECRET"`
	BaseURL   string `yaml:"base_url" env:"GODADDY_BASE_URL" env-default:"https://api.godaddy.com"`
	Domain    string `yaml:"domain" env:"GODADDY_DOMAIN" env-default:"thefortaiagency.ai"`
}

type Telegram struct {
	TelegramAPIToken  string  `yaml:"api_token" env:"TELEGRAM_APITOKEN"`
	AllowedTelegramID []int64 `yaml:"allowed_telegram_id" env:"ALLOWED_TELEGRAM_ID" env-separator:","`
}

type Tracing struct {
	Enabled     bool   `yaml:"enabled" env:"TRACING_ENABLED" env-default:"false"`
	ServiceName string `yaml:"service_name" env:"OTEL_SERVICE_NAME" env-default:"bendavis"`
}

type Config struct {
	HTTP      HTTP      `yaml:"http"`
	Log       Log       `yaml:"log"`
	Dialogue  Dialogue  `yaml:"dialogue"`
	OpenAI    OpenAI    `yaml:"openai"`
	Anthropic Anthropic `yaml:"anthropic"`
	Redis     Redis     `yaml:"redis"`
	Auth      Auth      `yaml:"auth"`
	Images    Images    `yaml:"images"`
	GoDaddy   GoDaddy   `yaml:"godaddy"`
	Telegram  Telegram  `yaml:"telegram"`
	Tracing   Tracing   `yaml:"tracing"`
}

// LoadConfig reads cfgPath when it is set and then applies the environment on top.
func LoadConfig(cfgPath string) (*Config, error) {
	var cfg Config
	if cfgPath != "" {
		if err := cleanenv.ReadConfig(cfgPath, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
