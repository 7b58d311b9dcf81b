package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"wardaropa-backend/internal/config"
	"wardaropa-backend/internal/db"
	"wardaropa-backend/internal/handlers"
	"wardaropa-backend/internal/metrics"
	"wardaropa-backend/internal/repository"
	"wardaropa-backend/internal/services"
	"wardaropa-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func Run() {
	if err := utils.LoadEnv(); err != nil {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	cfg, err := config.Load(utils.GetEnv("CONFIG_FILE", "config.yaml"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	repo, err := OpenRepository(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	// A broken schema is logged but does not stop the server; the affected
	// routes fail on their own.
	if err := repo.InitSchema(ctx); err != nil {
		log.Printf("Error initializing database schema: %v", err)
	} else {
		log.Println("Database schema ready")
	}

	app := New(cfg, repo)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()
	log.Printf("Wardaropa server listening on port %s (pid %d)", cfg.Port, os.Getpid())

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	log.Println("Gracefully shutting down...")
	_ = app.Shutdown()
	log.Println("Server shutdown complete")
}

// OpenRepository builds the connection pool for the configured driver.
func OpenRepository(ctx context.Context, cfg config.Database) (repository.Repository, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := db.NewPostgresPool(ctx, cfg.URL, cfg.MaxConns)
		if err != nil {
			return nil, err
		}
		return repository.NewPostgres(pool), nil
	case config.DriverMySQL:
		sqlDB, err := db.NewMySQLPool(ctx, cfg.URL, cfg.MaxConns)
		if err != nil {
			return nil, err
		}
		return repository.NewMySQL(sqlDB), nil
	case config.DriverMemory:
		log.Println("Using in-memory storage; data is lost on restart")
		return repository.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// New wires the routes and middleware around repo.
func New(cfg *config.Config, repo repository.Repository) *fiber.App {
	userService := services.NewUserService(repo, cfg.BcryptCost)
	postService := services.NewPostService(repo)
	recorder := metrics.NewRecorder()

	app := fiber.New(fiber.Config{
		AppName:      "Wardaropa API",
		BodyLimit:    cfg.BodyLimit,
		ErrorHandler: handlers.ErrorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, X-Requested-With, Content-Type, Accept",
	}))
	app.Use(recorder.Middleware())

	// Plain GET gets the welcome JSON; upgrades fall through to the echo socket.
	app.Get("/", handlers.WelcomeHandler, handlers.WebSocketHandler())

	api := app.Group("/", handlers.RequestTimeout(cfg.Database.AcquireTimeout))

	api.Post("/register", handlers.RegisterHandler(userService))
	api.Post("/login", handlers.LoginHandler(userService))

	api.Post("/posts", handlers.CreatePostHandler(postService))
	api.Get("/posts", handlers.ListPostsHandler(postService))
	api.Post("/posts/:postId/like", handlers.LikeHandler(postService))
	api.Delete("/posts/:postId/like", handlers.UnlikeHandler(postService))
	api.Post("/posts/:postId/comments", handlers.CreateCommentHandler(postService))
	api.Get("/posts/:postId/comments", handlers.ListCommentsHandler(postService))

	app.Get("/stats", recorder.Handler())

	return app
}
