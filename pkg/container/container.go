package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"github.com/aHaldin/pickmyartist/internal/config"
	infraCache "github.com/aHaldin/pickmyartist/internal/infrastructure/cache"
	"github.com/aHaldin/pickmyartist/internal/infrastructure/database"
	"github.com/aHaldin/pickmyartist/internal/infrastructure/email"
	"github.com/aHaldin/pickmyartist/internal/infrastructure/queue"
	"github.com/aHaldin/pickmyartist/internal/infrastructure/storage"
	"github.com/aHaldin/pickmyartist/pkg/cache"
	"github.com/aHaldin/pickmyartist/pkg/jwt"

	"github.com/aHaldin/pickmyartist/internal/domains/admin"
	adminHandler "github.com/aHaldin/pickmyartist/internal/domains/admin/handler"
	adminRepo "github.com/aHaldin/pickmyartist/internal/domains/admin/repository"
	adminService "github.com/aHaldin/pickmyartist/internal/domains/admin/service"
	"github.com/aHaldin/pickmyartist/internal/domains/enquiry"
	enquiryHandler "github.com/aHaldin/pickmyartist/internal/domains/enquiry/handler"
	enquiryRepo "github.com/aHaldin/pickmyartist/internal/domains/enquiry/repository"
	enquiryService "github.com/aHaldin/pickmyartist/internal/domains/enquiry/service"
	"github.com/aHaldin/pickmyartist/internal/domains/profile"
	profileHandler "github.com/aHaldin/pickmyartist/internal/domains/profile/handler"
	profileRepo "github.com/aHaldin/pickmyartist/internal/domains/profile/repository"
	profileService "github.com/aHaldin/pickmyartist/internal/domains/profile/service"
	"github.com/aHaldin/pickmyartist/internal/domains/user"
	userHandler "github.com/aHaldin/pickmyartist/internal/domains/user/handler"
	userRepo "github.com/aHaldin/pickmyartist/internal/domains/user/repository"
	userService "github.com/aHaldin/pickmyartist/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Everything in here is
// a singleton living for the process lifetime.
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config      *config.Config
	DB          *database.PostgresDB
	Cache       cache.Cache
	JWTManager  *jwt.Manager
	Storage     *storage.MinIOStorage // nil when MINIO_ENDPOINT is unset
	EmailSender email.Sender          // nil when RESEND_API_KEY is unset
	AsynqClient *asynq.Client

	// ========================================
	// REPOSITORY LAYER
	// ========================================
	UserRepo    user.Repository
	ProfileRepo profile.Repository
	EnquiryRepo enquiry.Repository
	AdminRepo   admin.Repository

	// ========================================
	// SERVICE LAYER
	// ========================================
	UserService    user.Service
	ProfileService profile.Service
	EnquiryService enquiry.Service
	AdminService   admin.Service

	// ========================================
	// HANDLER LAYER
	// ========================================
	UserHandler    *userHandler.UserHandler
	ProfileHandler *profileHandler.ProfileHandler
	EnquiryHandler *enquiryHandler.EnquiryHandler
	AdminHandler   *adminHandler.AdminHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer initializes the dependency graph in order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	log.Println("🗄️  Connecting to PostgreSQL...")

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	log.Println("✅ Database connected")

	// ========================================
	// STEP 3: INITIALIZE CACHE
	// ========================================
	log.Println("🔴 Connecting to Redis...")

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)

	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			// Cache misses degrade to DB reads, so keep booting
			log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
		} else {
			log.Println("✅ Redis connected")
		}
	}

	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	// ========================================
	// STEP 4: INITIALIZE OPTIONAL SERVICES
	// ========================================
	// Object storage and email are opt-in. The API answers with a
	// setup hint instead of failing startup when they are missing.
	if cfg.StorageEnabled() {
		log.Println("📁 Connecting to MinIO...")

		minioStorage, err := storage.NewMinIOStorage(cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("failed to init object storage: %w", err)
		}
		c.Storage = minioStorage
		log.Println("✅ Object storage ready")
	} else {
		log.Println("⚠️  MINIO_ENDPOINT not set - profile media uploads disabled")
	}

	if cfg.EmailEnabled() {
		c.EmailSender = email.NewResendSender(cfg.Email)
		log.Println("✅ Email sender configured (Resend)")
	} else {
		log.Println("⚠️  RESEND_API_KEY not set - outbound email disabled")
	}

	c.AsynqClient = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	// ========================================
	// STEP 5: INITIALIZE REPOSITORIES
	// ========================================
	log.Println("📦 Initializing repositories...")

	c.initRepositories()
	log.Println("✅ Repositories initialized")

	// ========================================
	// STEP 6: INITIALIZE SERVICES
	// ========================================
	log.Println("⚙️  Initializing services...")

	c.initServices()
	log.Println("✅ Services initialized")

	// ========================================
	// STEP 7: INITIALIZE HANDLERS
	// ========================================
	log.Println("🎯 Initializing handlers...")

	c.initHandlers()
	log.Println("✅ Handlers initialized")

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.UserRepo = userRepo.NewPostgresRepository(pool, c.Cache)
	c.ProfileRepo = profileRepo.NewPostgresRepository(pool, c.Cache)
	c.EnquiryRepo = enquiryRepo.NewPostgresRepository(pool)
	c.AdminRepo = adminRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	// The interface must stay nil when storage is disabled; assigning a
	// nil *MinIOStorage directly would make it non-nil.
	var store profile.MediaStore
	if c.Storage != nil {
		store = c.Storage
	}

	c.ProfileService = profileService.NewProfileService(
		c.ProfileRepo,
		store,
		storage.NewImageProcessor(),
	)

	c.EnquiryService = enquiryService.NewEnquiryService(
		c.EnquiryRepo,
		c.ProfileRepo,
		c.EmailSender,
		c.AsynqClient,
		c.Config.Features.EnquiryEmailNotifications,
	)

	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.JWTManager,
		time.Duration(c.Config.JWT.AccessTokenExpiry)*time.Minute,
	)

	c.AdminService = adminService.NewAdminService(c.AdminRepo)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService, c.ProfileService)
	c.ProfileHandler = profileHandler.NewProfileHandler(
		c.ProfileService,
		c.EnquiryService,
		c.Config.MinIO.Bucket,
	)
	c.EnquiryHandler = enquiryHandler.NewEnquiryHandler(c.EnquiryService)
	c.AdminHandler = adminHandler.NewAdminHandler(c.AdminService)
}

// ========================================
// HELPER METHODS
// ========================================

// Cleanup releases resources during graceful shutdown.
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("⚠️  Failed to close asynq client: %v", err)
		}
	}

	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
		log.Println("✅ Database connections closed")
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("⚠️  Failed to close Redis: %v", err)
			} else {
				log.Println("✅ Redis connections closed")
			}
		}
	}

	log.Println("✅ Container cleanup completed")
}
