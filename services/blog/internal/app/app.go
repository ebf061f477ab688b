package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkboard/pkg/access"
	"inkboard/pkg/cache"
	"inkboard/pkg/config"
	"inkboard/pkg/database"
	"inkboard/pkg/jwt"
	"inkboard/pkg/logger"
	"inkboard/pkg/middleware"
	"inkboard/pkg/queue"
	"inkboard/pkg/s3"
	"inkboard/pkg/session"
	blogHTTP "inkboard/services/blog/internal/controller/http"
	"inkboard/services/blog/internal/repo/persistent"
	"inkboard/services/blog/internal/usecase"
	"inkboard/services/blog/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "inkboard/services/blog/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	queueClient *queue.Client
	jwtService  *jwt.Service
	store       persistent.PostStore
	router      *gin.Engine
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()
	a := &App{
		cfg:        cfg,
		log:        log,
		jwtService: jwt.NewService(cfg.JWTSecret),
	}

	if cfg.RedisEnabled() {
		redisClient, err := cache.NewRedisClient(cfg)
		if err != nil {
			if cfg.StorageBackend == persistent.BackendRedis {
				return nil, err
			}
			log.Warn("Redis unavailable, rate limiting disabled: %v", err)
		} else {
			a.redisClient = redisClient
		}
	}

	store, err := a.openPostStore()
	if err != nil {
		log.Error("Failed to open post store: %v", err)
		a.closeClients()
		return nil, err
	}
	a.store = store
	log.Info("Using %s post store", cfg.StorageBackend)

	if cfg.S3Enabled() {
		s3Client, err := s3.NewClient(cfg)
		if err != nil {
			log.Error("Failed to create S3 client: %v", err)
			a.closeClients()
			return nil, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Client.EnsureBucket(ctx); err != nil {
			log.Warn("Could not verify bucket %s: %v", cfg.S3BucketName, err)
		}
		cancel()
		a.s3Client = s3Client
	} else {
		log.Warn("No S3 endpoint or credentials configured, image uploads disabled")
	}

	if cfg.QueueEnabled() {
		queueClient, err := queue.NewRabbitMQClient(cfg, log)
		if err != nil {
			log.Error("Failed to connect to RabbitMQ: %v (continuing without events)", err)
		} else {
			a.queueClient = queueClient
		}
	}

	router, err := a.newRouter()
	if err != nil {
		a.closeClients()
		return nil, err
	}
	a.router = router

	return a, nil
}

func (a *App) openPostStore() (persistent.PostStore, error) {
	if a.cfg.StorageBackend == persistent.BackendPostgres {
		db, err := database.NewPostgresDB(a.cfg)
		if err != nil {
			return nil, err
		}
		a.db = db
	}

	return persistent.NewPostStore(persistent.Options{
		Backend:  a.cfg.StorageBackend,
		FilePath: a.cfg.PostsFilePath,
		Redis:    a.redisClient,
		RedisKey: a.cfg.RedisPostsKey,
		DB:       a.db,
	})
}

func (a *App) newRouter() (*gin.Engine, error) {
	// Avoid typed nils in the optional interfaces.
	var images usecase.ImageStorage
	if a.s3Client != nil {
		images = a.s3Client
	}
	var events usecase.EventPublisher
	if a.queueClient != nil {
		events = a.queueClient
	}

	postUseCase := usecase.NewPostUseCase(a.store, images, events, time.Now, a.log)
	authUseCase, err := usecase.NewAuthUseCase(usecase.DummyCredentials, a.jwtService, a.log)
	if err != nil {
		return nil, err
	}

	policy := access.DefaultPolicy()
	cookies := session.Cookies{Secure: a.cfg.CookieSecure}

	postHandler := blogHTTP.NewPostHandler(postUseCase, a.log)
	authHandler := blogHTTP.NewAuthHandler(authUseCase, cookies, a.log)
	pageHandler := blogHTTP.NewPageHandler(postUseCase, authUseCase, policy, cookies, a.log)

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	r := gin.Default()
	r.SetHTMLTemplate(tmpl)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "storage": a.cfg.StorageBackend})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, policy.ProtectedPrefix)
	})

	api := r.Group("/api")
	{
		api.GET("/posts", postHandler.ListPosts)
		api.GET("/categories", postHandler.ListCategories)

		writes := api.Group("")
		if a.redisClient != nil {
			writes.Use(middleware.RateLimitMiddleware(a.redisClient, a.cfg.RateLimitPerMinute, time.Minute, a.log))
		}
		writes.POST("/posts", postHandler.CreatePost)
		writes.POST("/upload", postHandler.UploadImage)

		auth := api.Group("/auth")
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", middleware.AuthMiddleware(a.jwtService), authHandler.Me)
	}

	guard := middleware.AccessMiddleware(policy)

	r.GET(policy.LoginPath, guard, pageHandler.LoginPage)
	r.POST(policy.LoginPath, pageHandler.LoginSubmit)
	r.POST("/logout", pageHandler.LogoutSubmit)

	dashboard := r.Group(policy.ProtectedPrefix, guard)
	{
		dashboard.GET("", pageHandler.Dashboard)
		dashboard.GET("/user", pageHandler.UserHome)
		dashboard.GET("/admin", pageHandler.AdminHome)
		dashboard.GET("/new-post", pageHandler.NewPostPage)
		dashboard.POST("/new-post", pageHandler.NewPostSubmit)
	}

	return r, nil
}

// Handler exposes the router for in-process use such as tests.
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) Run() error {
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: a.router,
	}

	go func() {
		a.log.Info("Blog service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down blog service...")
}

func (a *App) Shutdown() error {
	// The server has 5 seconds to finish in-flight requests.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var shutdownErr error
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			shutdownErr = err
		}
	}

	a.closeClients()

	a.log.Info("Blog service exited")
	return shutdownErr
}

func (a *App) closeClients() {
	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				a.log.Error("Error closing database: %v", err)
			}
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}
}
