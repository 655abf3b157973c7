package container

import (
	"context"
	"fmt"
	"time"

	"citylocal-backend/internal/config"
	infracache "citylocal-backend/internal/infrastructure/cache"
	"citylocal-backend/internal/infrastructure/database"
	"citylocal-backend/internal/infrastructure/email"
	"citylocal-backend/pkg/cache"
	"citylocal-backend/pkg/jwt"
	"citylocal-backend/pkg/logger"

	activityHandler "citylocal-backend/internal/domains/activity/handler"
	activityRepo "citylocal-backend/internal/domains/activity/repository"
	activityService "citylocal-backend/internal/domains/activity/service"
	adminHandler "citylocal-backend/internal/domains/admin/handler"
	adminService "citylocal-backend/internal/domains/admin/service"
	businessHandler "citylocal-backend/internal/domains/business/handler"
	businessRepo "citylocal-backend/internal/domains/business/repository"
	businessService "citylocal-backend/internal/domains/business/service"
	categoryHandler "citylocal-backend/internal/domains/category/handler"
	categoryRepo "citylocal-backend/internal/domains/category/repository"
	categoryService "citylocal-backend/internal/domains/category/service"
	contactHandler "citylocal-backend/internal/domains/contact/handler"
	contactRepo "citylocal-backend/internal/domains/contact/repository"
	contactService "citylocal-backend/internal/domains/contact/service"
	reviewHandler "citylocal-backend/internal/domains/review/handler"
	reviewRepo "citylocal-backend/internal/domains/review/repository"
	reviewService "citylocal-backend/internal/domains/review/service"
	userHandler "citylocal-backend/internal/domains/user/handler"
	userRepo "citylocal-backend/internal/domains/user/repository"
	userService "citylocal-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup; a wiring failure aborts the boot.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Mailer     email.Mailer

	// Repositories
	UserRepo     userRepo.UserRepository
	CategoryRepo categoryRepo.CategoryRepository
	BusinessRepo businessRepo.BusinessRepository
	ClaimRepo    businessRepo.ClaimRepository
	ReviewRepo   reviewRepo.ReviewRepository
	ContactRepo  contactRepo.TicketRepository
	ActivityRepo activityRepo.ActivityRepository

	// Services
	UserService     userService.ServiceInterface
	CategoryService categoryService.ServiceInterface
	BusinessService businessService.ServiceInterface
	ReviewService   reviewService.ServiceInterface
	ContactService  contactService.ServiceInterface
	ActivityService activityService.ServiceInterface
	AdminService    adminService.ServiceInterface

	// Handlers
	UserHandler     *userHandler.UserHandler
	CategoryHandler *categoryHandler.CategoryHandler
	BusinessHandler *businessHandler.BusinessHandler
	ReviewHandler   *reviewHandler.ReviewHandler
	ContactHandler  *contactHandler.ContactHandler
	ActivityHandler *activityHandler.ActivityHandler
	AdminHandler    *adminHandler.AdminHandler
}

// NewContainer builds the full application graph: config, infrastructure,
// then repositories, services and handlers in dependency order.
func NewContainer() (*Container, error) {
	c := &Container{}

	// ========================================
	// 1. CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c.Config = cfg

	logger.Init(cfg.App.Environment)

	// ========================================
	// 2. INFRASTRUCTURE
	// ========================================
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	redisCache := infracache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	c.Mailer = email.NewSMTPMailer(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.From, cfg.Email.AdminEmail)

	// ========================================
	// 3. REPOSITORIES
	// ========================================
	pool := c.DB.Pool
	c.UserRepo = userRepo.NewPostgresUserRepository(pool)
	c.CategoryRepo = categoryRepo.NewPostgresCategoryRepository(pool)
	c.BusinessRepo = businessRepo.NewPostgresBusinessRepository(pool)
	c.ClaimRepo = businessRepo.NewPostgresClaimRepository(pool)
	c.ReviewRepo = reviewRepo.NewPostgresReviewRepository(pool)
	c.ContactRepo = contactRepo.NewPostgresTicketRepository(pool)
	c.ActivityRepo = activityRepo.NewPostgresActivityRepository(pool)

	// ========================================
	// 4. SERVICES
	// ========================================
	c.ActivityService = activityService.NewActivityService(c.ActivityRepo)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager, c.ActivityService)
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.BusinessRepo, c.Cache, c.ActivityService)
	c.BusinessService = businessService.NewBusinessService(
		c.BusinessRepo,
		c.ClaimRepo,
		c.CategoryService,
		c.ReviewRepo,
		c.UserRepo,
		c.ActivityService,
		c.CategoryService,
	)
	c.ReviewService = reviewService.NewReviewService(c.ReviewRepo, c.BusinessRepo, c.ActivityService)
	c.ContactService = contactService.NewContactService(c.ContactRepo, c.Mailer, c.ActivityService)
	c.AdminService = adminService.NewAdminService(
		c.UserRepo,
		c.BusinessRepo,
		c.ReviewRepo,
		c.ContactRepo,
		c.CategoryRepo,
	)

	// ========================================
	// 5. HANDLERS
	// ========================================
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.BusinessHandler = businessHandler.NewBusinessHandler(c.BusinessService)
	c.ReviewHandler = reviewHandler.NewReviewHandler(c.ReviewService)
	c.ContactHandler = contactHandler.NewContactHandler(c.ContactService)
	c.ActivityHandler = activityHandler.NewActivityHandler(c.ActivityService)
	c.AdminHandler = adminHandler.NewAdminHandler(c.AdminService)

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	return c, nil
}

// Cleanup releases infrastructure connections in reverse order.
func (c *Container) Cleanup() {
	if closer, ok := c.Cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Warn("failed to close cache", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logger.Warn("failed to close database", err)
		}
	}
}

// HealthCheck pings the backing stores.
func (c *Container) HealthCheck(ctx context.Context) error {
	if err := c.DB.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if hc, ok := c.Cache.(interface{ HealthCheck(context.Context) error }); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}

	return nil
}
