package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/sdk/trace"

	"github.com/alimikegami/point-of-sales/admin-console/config"
	"github.com/alimikegami/point-of-sales/admin-console/internal/controller"
	"github.com/alimikegami/point-of-sales/admin-console/internal/dashboard"
	"github.com/alimikegami/point-of-sales/admin-console/internal/domain"
	"github.com/alimikegami/point-of-sales/admin-console/internal/export"
	circuitbreaker "github.com/alimikegami/point-of-sales/admin-console/internal/infrastructure/circuit-breaker"
	"github.com/alimikegami/point-of-sales/admin-console/internal/infrastructure/message-queue/kafka"
	"github.com/alimikegami/point-of-sales/admin-console/internal/infrastructure/tracing"
	"github.com/alimikegami/point-of-sales/admin-console/internal/media"
	"github.com/alimikegami/point-of-sales/admin-console/internal/middleware"
	"github.com/alimikegami/point-of-sales/admin-console/internal/repository"
	"github.com/alimikegami/point-of-sales/admin-console/internal/service"
	"github.com/alimikegami/point-of-sales/admin-console/internal/session"
	"github.com/alimikegami/point-of-sales/admin-console/pkg/httpclient"
	"github.com/alimikegami/point-of-sales/admin-console/pkg/response"
)

const serviceName = "admin-console"

type App struct {
	Config *config.Config
	Server *echo.Echo

	metrics   *echo.Echo
	tracer    *trace.TracerProvider
	scheduler gocron.Scheduler
	publisher *kafka.Publisher
}

// Start wires the console and serves the console API until the server is
// stopped.
func (app *App) Start() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	level, err := zerolog.ParseLevel(app.Config.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = logger

	sess, err := session.New(app.Config.SessionConfig.Token, domain.User{
		Name:     app.Config.SessionConfig.UserName,
		Email:    app.Config.SessionConfig.UserEmail,
		UserType: domain.UserTypeAdmin,
	})
	if err != nil {
		return fmt.Errorf("opening operator session: %w", err)
	}
	logger.Info().Str("operator", sess.User().Name).Str("email", sess.User().Email).Msg("Operator session opened")

	app.tracer, err = tracing.InitTracing(serviceName, app.Config.TracingConfig.CollectorHost)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize tracing")
	}

	e := echo.New()
	e.HideBanner = true

	if app.tracer != nil {
		tracer := app.tracer.Tracer(serviceName)
		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				ctx, span := tracer.Start(c.Request().Context(), fmt.Sprintf("[%s] %s", c.Request().Method, c.Path()))
				defer span.End()

				c.SetRequest(c.Request().WithContext(ctx))

				return next(c)
			}
		})
	}

	// Used empty string so that metrics are not prefixed with the service name
	e.Use(echoprometheus.NewMiddleware(""))

	app.metrics = echo.New()
	app.metrics.HideBanner = true
	app.metrics.GET("/metrics", echoprometheus.NewHandler())
	go func() {
		if err := app.metrics.Start(fmt.Sprintf(":%s", app.Config.MetricsPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Failed to start metrics server")
		}
	}()

	g := e.Group("/api/v1")
	g.Use(middleware.Logger)

	cb := circuitbreaker.CreateCircuitBreaker(serviceName)
	client := httpclient.NewClient(app.Config.BackendConfig.RequestTimeout, cb)
	repo := repository.CreateAdminRepository(client, app.Config.BackendConfig.BaseURL, sess)
	coordinator := dashboard.NewCoordinator(repo, prometheus.DefaultRegisterer)

	var publisher service.EventPublisher = service.NoopPublisher{}
	if app.Config.KafkaConfig.BrokerAddress != "" {
		app.publisher = kafka.CreateKafkaPublisher(app.Config)
		publisher = app.publisher
	}

	svc := service.CreateAdminService(
		repo,
		coordinator,
		media.NewStaticGallery(app.Config.GalleryBaseURL),
		media.NewPreviewRegistry(),
		publisher,
		export.Invoice{},
		sess,
	)
	controller.CreateAdminController(g, svc)

	g.GET("/ping", func(c echo.Context) error {
		return response.WriteSuccessResponse(c, "pong", nil)
	})

	loadCtx, cancel := context.WithTimeout(context.Background(), app.Config.BackendConfig.RequestTimeout)
	if err := svc.LoadDashboard(loadCtx); err != nil {
		logger.Error().Err(err).Msg("Initial dashboard load failed")
	}
	cancel()

	if app.Config.AutoRefreshInterval > 0 {
		app.scheduler, err = coordinator.StartAutoRefresh(app.Config.AutoRefreshInterval)
		if err != nil {
			logger.Error().Err(err).Msg("Failed to schedule auto refresh")
		}
	}

	app.Server = e
	if err := e.Start(fmt.Sprintf(":%s", app.Config.ServicePort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (app *App) StopServer() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errList []error
	if app.Server != nil {
		errList = append(errList, app.Server.Shutdown(ctx))
	}
	if app.metrics != nil {
		errList = append(errList, app.metrics.Shutdown(ctx))
	}
	if app.scheduler != nil {
		errList = append(errList, app.scheduler.Shutdown())
	}
	if app.publisher != nil {
		errList = append(errList, app.publisher.Close())
	}
	if app.tracer != nil {
		errList = append(errList, app.tracer.Shutdown(ctx))
	}

	return errors.Join(errList...)
}
