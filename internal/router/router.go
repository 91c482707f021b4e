package router

import (
	"fmt"
	"strings"

	"github.com/songgate/internal/cache"
	"github.com/songgate/internal/config"
	adminhandlers "github.com/songgate/internal/http/handlers/admin"
	publichandlers "github.com/songgate/internal/http/handlers/public"
	"github.com/songgate/internal/http/response"
	"github.com/songgate/internal/i18n"
	"github.com/songgate/internal/logger"
	"github.com/songgate/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the HTTP routing tree.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.NewHandler(cfg, c.VerificationService, c.SubmissionService, c.CaptchaService)
	adminHandler := adminhandlers.NewHandler(c.AuthService, c.SubmissionService)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sg"
	}
	redisClient := cache.Client()
	requestCodeRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:request_code", redisPrefix),
		WindowSeconds: cfg.Security.RequestCodeRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.RequestCodeRateLimit.MaxRequests,
	}
	submitRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:submit", redisPrefix),
		WindowSeconds: cfg.Security.SubmitRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.SubmitRateLimit.MaxRequests,
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxRequests,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	api := r.Group("/api")
	{
		api.GET("/captcha", publicHandler.GetCaptcha)
		api.GET("/stats", publicHandler.TodayStats)
		api.POST("/verify-code",
			RateLimitMiddleware(redisClient, requestCodeRule, KeyByIPAndJSONField("email")),
			publicHandler.RequestVerifyCode)
		api.POST("/submissions",
			RateLimitMiddleware(redisClient, submitRule, KeyByIPAndJSONField("email")),
			publicHandler.SubmitSong)

		admin := api.Group("/admin")
		{
			admin.POST("/login",
				RateLimitMiddleware(redisClient, loginRule, KeyByIP),
				adminHandler.Login)

			authed := admin.Group("")
			authed.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
			{
				authed.GET("/me", adminHandler.Me)
				authed.GET("/submissions", adminHandler.RecentSubmissions)
				authed.GET("/stats", adminHandler.TodayStats)
			}
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, response.CodeNotFound, i18n.T(i18n.ResolveLocale(c), "error.not_found"))
	})

	return r
}
