package main

import (
	"context"
	"log"
	"time"

	"github.com/gikomplain/backend/internal/config"
	"github.com/gikomplain/backend/internal/model"
	"github.com/gikomplain/backend/internal/repository"
	"github.com/gikomplain/backend/internal/server"
	"github.com/gikomplain/backend/pkg/credentials"
	"github.com/gikomplain/backend/pkg/database"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var defaultDepartments = []string{
	"Academics",
	"Hostel & Accommodation",
	"IT Services",
	"Transport",
	"Finance",
	"Facilities",
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect()
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := seedDepartments(context.Background(), repository.NewDepartmentRepository(db)); err != nil {
		log.Fatalf("failed to seed departments: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := seedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	redisClient := connectRedis(cfg.RedisURL)

	srv := server.New(cfg, db, redisClient)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Department{},
		&model.User{},
		&model.Complaint{},
	)
}

func connectRedis(redisURL string) *redis.Client {
	if redisURL == "" {
		log.Println("REDIS_URL not set, dashboard stats cache disabled")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}

	return redis.NewClient(opts)
}

func seedDepartments(ctx context.Context, departments repository.DepartmentRepository) error {
	for _, name := range defaultDepartments {
		count, err := departments.CountByName(ctx, name)
		if err != nil {
			return err
		}

		if count == 0 {
			if err := departments.Create(ctx, &model.Department{Name: name}); err != nil {
				return err
			}
		}
	}

	return nil
}

func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "admin@giki.edu.pk").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	hashedPassword, err := credentials.HashPassword("admin123")
	if err != nil {
		return err
	}

	now := time.Now()
	adminUser := model.User{
		Email:           "admin@giki.edu.pk",
		PasswordHash:    hashedPassword,
		Name:            "Administrator",
		Role:            model.RoleAdmin,
		EmailVerifiedAt: &now,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("✅ Admin user seeded successfully")
	log.Println("   Email: admin@giki.edu.pk")
	log.Println("   Password: admin123")

	return nil
}
