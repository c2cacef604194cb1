package repository

import (
	"gorm.io/gorm"

	"github.com/postium/postium/models"
)

// CommentRepo persists and lists comments. Comments are never edited or
// deleted through the application.
type CommentRepo struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) *CommentRepo {
	return &CommentRepo{db: db}
}

// Create persists a new comment.
func (r *CommentRepo) Create(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// ByPost lists a post's comments oldest first, with their authors.
func (r *CommentRepo) ByPost(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}
