package repositories

import (
	"fmt"

	"github.com/eladgl/jobscout/internal/entities"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(entities.User{})
	if err != nil {
		return fmt.Errorf("failed to migrate User entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.Job{})
	if err != nil {
		return fmt.Errorf("failed to migrate Job entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.Note{})
	if err != nil {
		return fmt.Errorf("failed to migrate Note entity: %w", err)
	}

	// Dedup invariant: at most one row per (user, listing).
	if err = c.DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_user_listing_id ON jobs (user_id, listing_id);").
		Error; err != nil {
		return fmt.Errorf("failed to create job dedup index: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
