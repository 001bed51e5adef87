package repositories

import (
	"context"
	"strings"

	"github.com/eladgl/jobscout/internal/entities"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (repo *Users) Add(ctx context.Context, user entities.User) error {
	return repo.db.WithContext(ctx).Create(&user).Error
}

// FindByEmail returns nil without an error when no user matches.
func (repo *Users) FindByEmail(ctx context.Context, email string) (*entities.User, error) {

	var user entities.User
	err := repo.db.WithContext(ctx).First(&user, "email = ?", strings.ToLower(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetEligibleForIngestion lists users the scheduler fans out to: those with a
// stored session token and at least one search keyword.
func (repo *Users) GetEligibleForIngestion(ctx context.Context) ([]entities.User, error) {

	var users []entities.User
	err := repo.db.WithContext(ctx).
		Where("session_token <> '' AND keywords <> ''").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
