package main

import (
	"os"

	"cardbank/internal/config"
	"cardbank/internal/models"
	"cardbank/internal/repositories"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminUsername == "" || adminPassword == "" {
		logrus.Fatal("ADMIN_USERNAME and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		logrus.WithError(err).Fatal("failed to initialize database")
	}
	defer func() {
		if repositories.DB != nil {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				sqlDB.Close()
			}
		}
		if repositories.CacheService != nil {
			repositories.CacheService.Close()
		}
	}()

	var existing models.User
	if err := repositories.DB.Where("username = ?", adminUsername).First(&existing).Error; err == nil {
		logrus.Info("admin user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Fatal("failed to hash password")
	}

	admin := models.User{
		Username: adminUsername,
		Password: string(hashed),
		Roles: []models.UserRole{
			{Role: models.RoleAdmin},
			{Role: models.RoleUser},
		},
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		logrus.WithError(err).Fatal("failed to create admin user")
	}

	logrus.WithField("user_id", admin.ID).Info("admin account created")
}
