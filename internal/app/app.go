package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	api "github.com/OvyFlash/telegram-bot-api"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sourcegraph/conc"
	"github.com/thefortaiagency/bendavis/config"
	"github.com/thefortaiagency/bendavis/internal/godaddy"
	"github.com/thefortaiagency/bendavis/internal/observability"
	"github.com/thefortaiagency/bendavis/internal/storage/images"
	in_memory "github.com/thefortaiagency/bendavis/internal/storage/in-memory"
	key_value "github.com/thefortaiagency/bendavis/internal/storage/key-value"
	handler "github.com/thefortaiagency/bendavis/internal/transport/http"
	"github.com/thefortaiagency/bendavis/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	"go.uber.org/zap"
)

const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

var ErrUnknownProvider = errors.New("unknown dialogue provider")

// App holds the wired usecases shared by the server and the CLI commands.
type App struct {
	cfg    *config.Config
	logger *zap.Logger
	rdb    redis.UniversalClient

	Dialogue  *usecase.DialogueUsecase
	Users     *usecase.UserUsecase
	Dashboard *usecase.DashboardUsecase
	Images    *usecase.ImageUsecase

	personaState usecase.PersonaStateStorage
}

// New wires storage, generators and usecases and seeds the configured users.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg.OpenAI.OpenAIBaseURL != "" {
		baseURL, err := url.JoinPath(cfg.OpenAI.OpenAIBaseURL, "/v1")
		if err != nil {
			return nil, err
		}
		cfg.OpenAI.OpenAIBaseURL = baseURL
	}

	a := &App{
		cfg:       cfg,
		logger:    logger,
		Dashboard: usecase.NewDashboardUsecase(),
	}

	var (
		userStorage    usecase.UserStorage
		sessionStorage usecase.SessionStorage
	)
	if cfg.Redis.Endpoint != "" {
		a.rdb = redis.NewClient(
			&redis.Options{
				Addr:     cfg.Redis.Endpoint,
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			},
		)
		if err := a.rdb.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		userStorage = key_value.NewUserStorage(a.rdb)
		sessionStorage = key_value.NewSessionStorage(a.rdb)
		a.personaState = key_value.NewPersonaStateStorage(a.rdb)
		logger.Info("using redis storage", zap.String("endpoint", cfg.Redis.Endpoint))
	} else {
		userStorage = in_memory.NewUserStorage()
		sessionStorage = in_memory.NewSessionStorage()
		a.personaState = in_memory.NewPersonaStateStorage()
		logger.Info("using in-memory storage")
	}

	a.Users = usecase.NewUserUsecase(
		usecase.UserUsecaseDeps{
			UserStorage:    userStorage,
			SessionStorage: sessionStorage,
			Logger:         logger.Named("users"),
		}, cfg.Auth,
	)
	if err := a.Users.SeedUsers(ctx, cfg.Auth.Users); err != nil {
		return nil, fmt.Errorf("failed to seed users: %w", err)
	}

	openAIUsecase := usecase.NewOpenAIUsecase(cfg.OpenAI, cfg.Dialogue.MaxPromptTokens, logger.Named("openai"))

	var generator usecase.TextGenerator
	switch cfg.Dialogue.Provider {
	case ProviderOpenAI, "":
		generator = openAIUsecase
	case ProviderAnthropic:
		generator = usecase.NewAnthropicUsecase(cfg.Anthropic)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Dialogue.Provider)
	}
	a.Dialogue = usecase.NewDialogueUsecase(
		usecase.DialogueUsecaseDeps{
			Generator: generator,
			Logger:    logger.Named("dialogue"),
		}, cfg.Dialogue,
	)

	imageStorage, err := newImageStorage(ctx, cfg.Images)
	if err != nil {
		return nil, err
	}
	a.Images = usecase.NewImageUsecase(
		usecase.ImageUsecaseDeps{
			Generator: openAIUsecase,
			Storage:   imageStorage,
			Logger:    logger.Named("images"),
		}, cfg.Images,
	)

	return a, nil
}

func newImageStorage(ctx context.Context, cfg config.Images) (usecase.ImageStorage, error) {
	if cfg.S3Bucket == "" {
		return images.NewLocalStorage(cfg.PublicDir, cfg.URLPrefix), nil
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.S3Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.S3Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	otelaws.AppendMiddlewares(&awsCfg.APIOptions)

	publicURL := cfg.S3PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.S3Bucket, awsCfg.Region)
	}
	return images.NewS3Storage(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Prefix, publicURL), nil
}

// NewDNSUsecase builds the registrar client from the GoDaddy section.
func NewDNSUsecase(cfg config.GoDaddy, logger *zap.Logger) (*usecase.DNSUsecase, error) {
	client, err := godaddy.NewClient(cfg.BaseURL, cfg.APIKey, cfg.APISecret, nil)
	if err != nil {
		return nil, err
	}
	return usecase.NewDNSUsecase(
		usecase.DNSUsecaseDeps{
			Registrar: client,
			Logger:    logger.Named("dns"),
		}, cfg,
	), nil
}

// Server returns the HTTP server for the site.
func (a *App) Server() *echo.Echo {
	h := handler.NewHandler(
		handler.Deps{
			Dialogue:  a.Dialogue,
			Auth:      a.Users,
			Dashboard: a.Dashboard,
			Images:    a.Images,
			Logger:    a.logger.Named("http"),
		},
		a.cfg.HTTP,
		a.cfg.Auth,
	)
	return handler.NewServer(h, a.logger.Named("http"))
}

func (a *App) newTelegram() (*usecase.TelegramUsecase, error) {
	bot, err := api.NewBotAPI(a.cfg.Telegram.TelegramAPIToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create new bot: %w", err)
	}
	a.logger.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	return usecase.NewTelegramUsecase(
		a.cfg.Telegram, usecase.TelegramUsecaseDeps{
			Dialogue:     a.Dialogue,
			PersonaState: a.personaState,
			Bot:          bot,
			Logger:       a.logger.Named("telegram"),
		},
	)
}

func (a *App) Close() error {
	if a.rdb != nil {
		return a.rdb.Close()
	}
	return nil
}

// Run serves HTTP, and the Telegram bot when a token is configured, until ctx
// is cancelled or one of them fails.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger, version string) error {
	if cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, cfg.Tracing.ServiceName, version)
		if err != nil {
			return fmt.Errorf("failed to init tracing: %w", err)
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Warn("failed to shut down tracer", zap.Error(err))
			}
		}()
	}

	a, err := New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	wg := conc.NewWaitGroup()

	srv := a.Server()
	wg.Go(
		func() {
			logger.Info("http server started", zap.String("addr", cfg.HTTP.Addr))
			if err := srv.Start(cfg.HTTP.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("http server: %w", err)
			}
		},
	)

	if cfg.Telegram.TelegramAPIToken != "" {
		bot, err := a.newTelegram()
		if err != nil {
			_ = srv.Close()
			wg.Wait()
			return err
		}
		wg.Go(
			func() {
				if err := bot.Run(runCtx); err != nil {
					errCh <- fmt.Errorf("telegram bot: %w", err)
				}
			},
		)
	}

	select {
	case <-runCtx.Done():
	case err = <-errCh:
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Warn("http server shutdown", zap.Error(shutdownErr))
	}
	wg.Wait()

	logger.Info("stopped")
	return err
}
