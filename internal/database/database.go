package database

import (
	"errors"
	"fmt"
	"log"

	"athar/config"
	"athar/internal/domain"
	"athar/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models. Order matters: referenced tables first.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Favorite{},
		&models.Follow{},
		&models.Comment{},
		&models.Notification{},
		&models.Report{},
		&models.ContactMessage{},
	)
}

// SeedAdmin creates the configured admin account when no admin exists yet. No-op without ADMIN_PHONE.
func SeedAdmin(db *gorm.DB, cfg *config.AdminConfig) error {
	if cfg.Phone == "" {
		return nil
	}
	var existing models.User
	err := db.Where("role = ?", domain.RoleAdmin).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	admin := models.User{
		Phone:      cfg.Phone,
		Name:       cfg.Name,
		Role:       domain.RoleAdmin,
		IsVerified: true,
	}
	if cfg.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		h := string(hash)
		admin.PasswordHash = &h
	}
	// Promote instead of insert when the phone already belongs to a user.
	res := db.Model(&models.User{}).Where("phone = ?", cfg.Phone).Update("role", domain.RoleAdmin)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		log.Printf("[database] promoted %s to admin", cfg.Phone)
		return nil
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("[database] seeded admin %s", cfg.Phone)
	return nil
}
