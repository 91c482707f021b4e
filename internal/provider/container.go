package provider

import (
	"github.com/songgate/internal/cache"
	"github.com/songgate/internal/catalog"
	"github.com/songgate/internal/catalog/spotify"
	"github.com/songgate/internal/config"
	"github.com/songgate/internal/logger"
	"github.com/songgate/internal/models"
	"github.com/songgate/internal/queue"
	"github.com/songgate/internal/repository"
	"github.com/songgate/internal/service"
)

// Container wires repositories and services once at startup.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo            repository.AdminRepository
	VerificationCodeRepo repository.VerificationCodeRepository
	SubmissionRepo       repository.SubmissionRepository

	// Services
	CatalogClient       catalog.Client
	EmailService        *service.EmailService
	CaptchaService      *service.CaptchaService
	AuthService         *service.AuthService
	VerificationService *service.VerificationService
	SubmissionService   *service.SubmissionService
}

// NewContainer builds the dependency graph.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.VerificationCodeRepo = repository.NewVerificationCodeRepository(db)
	c.SubmissionRepo = repository.NewSubmissionRepository(db)
}

func (c *Container) initServices() {
	spotifyClient, err := spotify.New(spotify.Config{
		ClientID:     c.Config.Spotify.ClientID,
		ClientSecret: c.Config.Spotify.ClientSecret,
		RefreshToken: c.Config.Spotify.RefreshToken,
		PlaylistID:   c.Config.Spotify.PlaylistID,
		BaseURL:      c.Config.Spotify.BaseURL,
		AccountsURL:  c.Config.Spotify.AccountsURL,
		TimeoutMS:    c.Config.Spotify.TimeoutMS,
	})
	if err != nil {
		// Submissions fail closed with a catalog-unavailable error
		// until credentials are configured.
		logger.Warnw("provider_init_catalog_failed", "error", err)
	} else {
		c.CatalogClient = spotifyClient
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.VerificationService = service.NewVerificationService(
		c.VerificationCodeRepo,
		c.EmailService,
		c.QueueClient,
		c.Config.School,
		c.Config.Email.VerifyCode,
	)
	c.SubmissionService = service.NewSubmissionService(
		c.SubmissionRepo,
		c.VerificationService,
		service.NewContentFilter(),
		c.CatalogClient,
		c.Config.School,
		c.Config.Submission,
	)
}
