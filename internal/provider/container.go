package provider

import (
	"github.com/egzit/egzit/internal/authz"
	"github.com/egzit/egzit/internal/cache"
	"github.com/egzit/egzit/internal/config"
	"github.com/egzit/egzit/internal/geo"
	"github.com/egzit/egzit/internal/logger"
	"github.com/egzit/egzit/internal/models"
	"github.com/egzit/egzit/internal/queue"
	"github.com/egzit/egzit/internal/repository"
	"github.com/egzit/egzit/internal/routing"
	"github.com/egzit/egzit/internal/service"
)

// Container dependency injection container
type Container struct {
	Config       *config.Config
	QueueClient  *queue.Client
	GeoEstimator *geo.Estimator

	// Repositories
	AdminRepo         repository.AdminRepository
	UserRepo          repository.UserRepository
	UserLoginLogRepo  repository.UserLoginLogRepository
	AuthzAuditLogRepo repository.AuthzAuditLogRepository
	MoveRepo          repository.MoveRepository
	QuoteRepo         repository.QuoteRepository
	TrackingEventRepo repository.TrackingEventRepository
	BookingRepo       repository.BookingRepository
	MoverRepo         repository.MoverRepository
	PerformanceRepo   repository.PerformanceRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	UserAuthService     *service.UserAuthService
	CaptchaService      *service.CaptchaService
	UserLoginLogService *service.UserLoginLogService
	AuthzAuditService   *service.AuthzAuditService
	MoveService         *service.MoveService
	QuoteService        *service.QuoteService
	TrackingService     *service.TrackingService
	MoverService        *service.MoverService
}

// NewContainer wires repositories and services
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
	c.UserRepo = repository.NewUserRepository(db)
	c.UserLoginLogRepo = repository.NewUserLoginLogRepository(db)
	c.AuthzAuditLogRepo = repository.NewAuthzAuditLogRepository(db)
	c.MoveRepo = repository.NewMoveRepository(db)
	c.QuoteRepo = repository.NewQuoteRepository(db)
	c.TrackingEventRepo = repository.NewTrackingEventRepository(db)
	c.BookingRepo = repository.NewBookingRepository(db)
	c.MoverRepo = repository.NewMoverRepository(db)
	c.PerformanceRepo = repository.NewPerformanceRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	estimator := geo.NewEstimator()
	c.GeoEstimator = estimator
	routeClient := routing.NewClient(c.Config.Routing)

	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.UserLoginLogService = service.NewUserLoginLogService(c.UserLoginLogRepo)
	c.AuthzAuditService = service.NewAuthzAuditService(c.AuthzAuditLogRepo)
	c.MoveService = service.NewMoveService(
		c.MoveRepo,
		c.QuoteRepo,
		c.TrackingEventRepo,
		c.BookingRepo,
		c.MoverRepo,
		c.PerformanceRepo,
		routeClient,
		estimator,
		c.QueueClient,
		c.Config.Routing,
	)
	c.QuoteService = service.NewQuoteService(c.QuoteRepo, c.MoveRepo, c.TrackingEventRepo, c.QueueClient, c.Config.Quote.ValidityDays)
	c.TrackingService = service.NewTrackingService(c.MoveRepo, c.TrackingEventRepo, estimator, c.Config.Tracking.LivePositionTTLSeconds)
	c.MoverService = service.NewMoverService(c.MoverRepo)
}
