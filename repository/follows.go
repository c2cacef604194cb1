package repository

import (
	"gorm.io/gorm"

	"github.com/postium/postium/models"
)

// FollowRepo manages directed follow edges between users.
type FollowRepo struct {
	db *gorm.DB
}

func NewFollowRepo(db *gorm.DB) *FollowRepo {
	return &FollowRepo{db: db}
}

// Follow creates the (user, author) edge if it does not already exist.
// Repeated calls leave exactly one edge in place.
func (r *FollowRepo) Follow(userID, authorID uint) error {
	edge := models.Follow{UserID: userID, AuthorID: authorID}
	return r.db.
		Where("user_id = ? AND author_id = ?", userID, authorID).
		FirstOrCreate(&edge).Error
}

// Unfollow removes the edge when present. A missing edge is a no-op
// rather than an error.
func (r *FollowRepo) Unfollow(userID, authorID uint) error {
	return r.db.
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{}).Error
}

// IsFollowing reports whether the edge exists.
func (r *FollowRepo) IsFollowing(userID, authorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
