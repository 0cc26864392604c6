package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/tuitionhub/tuitionhub-web/config"
	"github.com/tuitionhub/tuitionhub-web/internal/handlers"
	"github.com/tuitionhub/tuitionhub-web/internal/middleware"
	"github.com/tuitionhub/tuitionhub-web/internal/mutation"
	"github.com/tuitionhub/tuitionhub-web/internal/query"
	"github.com/tuitionhub/tuitionhub-web/internal/services"
	"github.com/tuitionhub/tuitionhub-web/internal/session"
	"github.com/tuitionhub/tuitionhub-web/internal/upstream"
	"github.com/tuitionhub/tuitionhub-web/pkg/httpclient"
	"github.com/tuitionhub/tuitionhub-web/pkg/jwt"
	"github.com/tuitionhub/tuitionhub-web/pkg/logger"
	"github.com/tuitionhub/tuitionhub-web/pkg/metrics"
	"github.com/tuitionhub/tuitionhub-web/pkg/profiling"
	"github.com/tuitionhub/tuitionhub-web/pkg/recaptcha"
	"github.com/tuitionhub/tuitionhub-web/pkg/tracing"
)

type routeHandlers struct {
	tuitions      *handlers.TuitionHandler
	applications  *handlers.ApplicationHandler
	admin         *handlers.AdminHandler
	payments      *handlers.PaymentHandler
	profiles      *handlers.ProfileHandler
	confirmations *handlers.ConfirmationHandler
	auth          *handlers.AuthHandler
	logs          *handlers.LogsHandler
	health        *handlers.HealthHandler
}

type rateLimiters struct {
	general  *middleware.RateLimiter
	mutation *middleware.RateLimiter
	login    *middleware.RateLimiter
}

// registerWebRoutes registers the view and mutation routes
func registerWebRoutes(router *gin.Engine, store session.Store, limits rateLimiters, h routeHandlers) {
	web := router.Group("/web/v1")
	web.Use(limits.general.Middleware(), middleware.SessionMiddleware(store))

	const formLimit = 64 * 1024

	web.GET("/session", h.auth.Current)
	web.POST("/session", limits.login.Middleware(), middleware.BodySizeLimitMiddleware(formLimit), h.auth.Login)
	web.DELETE("/session", h.auth.Logout)

	web.GET("/tuitions", h.tuitions.Browse)
	web.GET("/tuitions/:slug", h.tuitions.Detail)
	web.POST("/tuitions/:id/apply", limits.mutation.Middleware(), middleware.BodySizeLimitMiddleware(formLimit), h.applications.Apply)
	web.GET("/profile/:slug", h.profiles.Get)

	my := web.Group("/my")
	my.GET("/tuitions", h.tuitions.Mine)
	my.POST("/tuitions", limits.mutation.Middleware(), middleware.BodySizeLimitMiddleware(formLimit), h.tuitions.Create)
	my.POST("/tuitions/:id/delete", limits.mutation.Middleware(), h.tuitions.RequestDelete)
	my.GET("/applications", h.applications.Mine)
	my.GET("/applicants", h.applications.Applicants)
	my.GET("/payments", h.payments.MyPayments)
	my.GET("/revenue", h.payments.Revenue)

	admin := web.Group("/admin")
	admin.GET("/dashboard", h.admin.Dashboard)
	admin.GET("/transactions", h.admin.Transactions)
	admin.GET("/users", h.admin.Users)
	admin.POST("/users/:id/status", limits.mutation.Middleware(), middleware.BodySizeLimitMiddleware(formLimit), h.admin.ToggleStatus)
	admin.POST("/users/:id/delete", limits.mutation.Middleware(), h.admin.RequestDeleteUser)
	admin.GET("/users/:id/logs", h.admin.UserLogs)

	web.POST("/confirmations/:token", limits.mutation.Middleware(), h.confirmations.Confirm)
	web.DELETE("/confirmations/:token", h.confirmations.Dismiss)
}

func newSessionStore(cfg *config.Config) (session.Store, func(), error) {
	cookie := session.CookieOptions{
		Domain: cfg.Session.CookieDomain,
		Secure: cfg.Session.CookieSecure,
		TTL:    cfg.SessionTTL(),
	}

	if cfg.Session.Store == config.SessionStoreRedis {
		client, err := session.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if err := client.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
				logger.Warn("Failed to close Redis client", zap.Error(err))
			}
		}
		logger.Info("Using Redis session store", zap.String("addr", cfg.Redis.Addr))
		return session.NewRedisStore(client, cookie), closeFn, nil
	}

	tokens := jwt.NewTokenManager(cfg.Session.JWTSecret, cfg.Session.JWTIssuer, cfg.SessionTTL())
	logger.Info("Using cookie session store")
	return session.NewCookieStore(tokens, cookie), func() {}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting TuitionHub web gateway",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
		zap.String("backend", cfg.Backend.BaseURL),
	)

	tracerShutdown, err := tracing.InitTracer(cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiler, err := profiling.Start(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer stopProfiler()

	metrics.RecordInfrastructureMetrics()

	store, closeStore, err := newSessionStore(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize session store", zap.Error(err))
	}
	defer closeStore()

	httpClient := httpclient.NewTracedClient(cfg.BackendTimeout())
	backend := upstream.NewClient(cfg.Backend.BaseURL, httpClient)

	var captcha services.CaptchaVerifier
	if cfg.Server.RecaptchaSecret != "" {
		captcha = recaptcha.NewVerifier(cfg.Server.RecaptchaSecret, httpClient)
		logger.Info("Login captcha enabled")
	}

	runner := mutation.NewRunner(mutation.NewGuard())
	deps := services.Deps{
		Backend:       backend,
		Queries:       query.NewClient(cfg.StaleTime(), cfg.Query.Retry),
		Memo:          query.NewMemo(cfg.StaleTime()),
		Runner:        runner,
		Confirmations: mutation.NewConfirmations(runner, mutation.DefaultConfirmationTTL),
		Settings:      services.SettingsFromConfig(cfg),
	}

	h := routeHandlers{
		tuitions:      handlers.NewTuitionHandler(services.NewTuitionService(deps)),
		applications:  handlers.NewApplicationHandler(services.NewApplicationService(deps)),
		admin:         handlers.NewAdminHandler(services.NewAdminService(deps)),
		payments:      handlers.NewPaymentHandler(services.NewPaymentService(deps)),
		profiles:      handlers.NewProfileHandler(services.NewProfileService(deps)),
		confirmations: handlers.NewConfirmationHandler(deps.Confirmations),
		auth:          handlers.NewAuthHandler(services.NewAuthService(deps, captcha), store),
		logs:          handlers.NewLogsHandler(cfg.Logging.Dir),
		health:        handlers.NewHealthHandler(backend.BreakerState),
	}

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:5173", "http://127.0.0.1:5173")
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After", "X-View-State"},
		AllowCredentials: true, // session cookie
		MaxAge:           12 * time.Hour,
	}))

	limiterCtx, stopLimiters := context.WithCancel(context.Background())
	defer stopLimiters()
	limits := rateLimiters{
		general:  middleware.NewRateLimiter(limiterCtx, 50, 100),
		mutation: middleware.NewRateLimiter(limiterCtx, 5, 10),
		login:    middleware.NewRateLimiter(limiterCtx, 0.1, 5), // 6 per minute
	}

	api := router.Group("/api")
	api.GET("/healthcheck", limits.general.Middleware(), h.health.Healthcheck)
	api.GET("/metrics", middleware.OpsAuthMiddleware(cfg.Server.MetricsToken), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))
	api.POST("/logs", limits.general.Middleware(), middleware.BodySizeLimitMiddleware(1*1024*1024), h.logs.ReceiveFrontendLogs)

	registerWebRoutes(router, store, limits, h)

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
