package main

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "blogapi/docs" // swagger docs

	"blogapi/internal/auth"
	"blogapi/internal/cache"
	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/handler"
	"blogapi/internal/model"
	"blogapi/internal/repository"
	"blogapi/internal/router"
	"blogapi/internal/service"
)

// @title Blog API
// @version 1.0
// @description Blogging platform API with JWT authentication, role-based access and ownership rules.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)

	// Auth
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Services
	userService := service.NewUserService(userRepo, jwtService)
	postService := service.NewPostService(postRepo, commentRepo, userRepo, cacheClient)
	commentService := service.NewCommentService(commentRepo)

	// Handlers
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)

	router.Register(
		e,
		jwtService,
		userRepo,
		userHandler,
		postHandler,
		commentHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
