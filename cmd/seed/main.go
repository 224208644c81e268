package main

import (
	"context"
	"log"

	"blogapi/internal/auth"
	"blogapi/internal/config"
	"blogapi/internal/db"
	"blogapi/internal/model"
	"blogapi/internal/repository"
)

const (
	adminEmail = "admin@example.com"
	adminName  = "Admin"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()
	if cfg.AdminPassword == "" {
		log.Fatal("ADMIN_PASSWORD is not set")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	hashed, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := &model.User{
		Email:        adminEmail,
		Name:         adminName,
		PasswordHash: hashed,
		Role:         model.RoleAdmin,
	}

	userRepo := repository.NewUserRepository(gormDB)
	if err := userRepo.UpsertByEmail(context.Background(), admin); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	log.Printf("Admin user seeded: %s", admin.Email)
}
