package repository

import (
	"gorm.io/gorm"

	"github.com/postium/postium/models"
)

// UserRepo resolves author identities for profile and follow handlers.
type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// ByUsername resolves a user from the username URL segment.
func (r *UserRepo) ByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ByID resolves a user by primary key.
func (r *UserRepo) ByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
