package main

import (
	"flag"

	"technest_backend/database"
	"technest_backend/internal/config"
	"technest_backend/internal/logger"
	"technest_backend/internal/models"
	"technest_backend/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// createadmin adds an admin console account. Unlike the startup seeding, it
// works regardless of how many admins already exist.
func main() {
	username := flag.String("username", "", "admin username")
	emailAddr := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	flag.Parse()

	if *username == "" || *password == "" {
		logger.Fatal("username and password are required")
	}

	config.LoadConfig()
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("failed to open database", "error", err.Error())
	}
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to migrate", "error", err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		logger.Fatal("failed to hash password", "error", err.Error())
	}

	adminRepo := repositories.NewAdminRepository()
	admin := &models.AdminAccount{
		Username:     *username,
		Email:        *emailAddr,
		PasswordHash: string(hash),
	}
	if err := adminRepo.Create(db, admin); err != nil {
		logger.Fatal("failed to create admin", "error", err.Error())
	}

	logger.Info("admin created", "username", admin.Username)
}
