package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"bookclub-backend/internal/config"
	bookdomain "bookclub-backend/internal/domains/book"
	bookhandler "bookclub-backend/internal/domains/book/handler"
	bookrepo "bookclub-backend/internal/domains/book/repository"
	bookservice "bookclub-backend/internal/domains/book/service"
	discussiondomain "bookclub-backend/internal/domains/discussion"
	discussionhandler "bookclub-backend/internal/domains/discussion/handler"
	discussionrepo "bookclub-backend/internal/domains/discussion/repository"
	discussionservice "bookclub-backend/internal/domains/discussion/service"
	eventdomain "bookclub-backend/internal/domains/event"
	eventhandler "bookclub-backend/internal/domains/event/handler"
	eventrepo "bookclub-backend/internal/domains/event/repository"
	eventservice "bookclub-backend/internal/domains/event/service"
	reviewdomain "bookclub-backend/internal/domains/review"
	reviewhandler "bookclub-backend/internal/domains/review/handler"
	reviewrepo "bookclub-backend/internal/domains/review/repository"
	reviewservice "bookclub-backend/internal/domains/review/service"
	userdomain "bookclub-backend/internal/domains/user"
	userhandler "bookclub-backend/internal/domains/user/handler"
	userrepo "bookclub-backend/internal/domains/user/repository"
	userservice "bookclub-backend/internal/domains/user/service"
	infracache "bookclub-backend/internal/infrastructure/cache"
	infradb "bookclub-backend/internal/infrastructure/database"
	"bookclub-backend/internal/infrastructure/queue"
	"bookclub-backend/pkg/cache"
	"bookclub-backend/pkg/jwt"
	"bookclub-backend/pkg/logger"
)

// Container wires configuration, infrastructure, repositories, services and
// handlers for the API process.
type Container struct {
	Config *config.Config

	DB         *infradb.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager
	TaskClient *asynq.Client

	UserRepo       userdomain.Repository
	BookRepo       bookdomain.Repository
	ReviewRepo     reviewdomain.Repository
	DiscussionRepo discussiondomain.Repository
	EventRepo      eventdomain.Repository

	UserService       userdomain.Service
	BookService       bookdomain.Service
	ReviewService     reviewdomain.Service
	DiscussionService discussiondomain.Service
	EventService      eventdomain.Service

	UserHandler       *userhandler.UserHandler
	BookHandler       *bookhandler.BookHandler
	ReviewHandler     *reviewhandler.ReviewHandler
	DiscussionHandler *discussionhandler.DiscussionHandler
	EventHandler      *eventhandler.EventHandler
}

// New builds the full dependency graph. Infrastructure connections are
// verified before anything depends on them.
func New(ctx context.Context) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger.Init(cfg.App.Environment)

	c := &Container{Config: cfg}

	if err := c.initInfrastructure(ctx); err != nil {
		return nil, err
	}
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", map[string]interface{}{
		"env": cfg.App.Environment,
	})
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("load database config: %w", err)
	}

	c.DB = infradb.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	c.Cache = infracache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if rc, ok := c.Cache.(*infracache.RedisCache); ok {
		if err := rc.Connect(ctx); err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
	}

	c.JWTManager = jwt.NewManager(
		c.Config.JWT.Secret,
		time.Duration(c.Config.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(c.Config.JWT.RefreshTokenExpiry)*time.Hour,
	)

	c.TaskClient = queue.NewClient(queue.RedisOpt(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB))
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = userrepo.NewPostgresUserRepository(c.DB.Pool, c.Cache)
	c.BookRepo = bookrepo.NewPostgresBookRepository(c.DB.Pool, c.Cache)
	c.ReviewRepo = reviewrepo.NewPostgresReviewRepository(c.DB.Pool)
	c.DiscussionRepo = discussionrepo.NewPostgresDiscussionRepository(c.DB.Pool)
	c.EventRepo = eventrepo.NewPostgresEventRepository(c.DB.Pool)
}

func (c *Container) initServices() {
	c.UserService = userservice.NewUserService(c.UserRepo, c.BookRepo, c.JWTManager, c.TaskClient)
	c.BookService = bookservice.NewBookService(c.BookRepo)
	c.ReviewService = reviewservice.NewReviewService(c.ReviewRepo, c.BookRepo, c.UserRepo, c.TaskClient)
	c.DiscussionService = discussionservice.NewDiscussionService(c.DiscussionRepo, c.UserRepo)
	c.EventService = eventservice.NewEventService(c.EventRepo)
}

func (c *Container) initHandlers() {
	c.UserHandler = userhandler.NewUserHandler(c.UserService)
	c.BookHandler = bookhandler.NewBookHandler(c.BookService)
	c.ReviewHandler = reviewhandler.NewReviewHandler(c.ReviewService)
	c.DiscussionHandler = discussionhandler.NewDiscussionHandler(c.DiscussionService)
	c.EventHandler = eventhandler.NewEventHandler(c.EventService)
}

// Close releases infrastructure connections in reverse dependency order.
func (c *Container) Close() {
	if c.TaskClient != nil {
		if err := c.TaskClient.Close(); err != nil {
			logger.Warn("closing task client", map[string]interface{}{"error": err.Error()})
		}
	}
	if rc, ok := c.Cache.(*infracache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Warn("closing redis", map[string]interface{}{"error": err.Error()})
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
}
