package controllers

import (
	"github.com/postium/postium/models"
	"github.com/postium/postium/repository"
)

// Controllers depend on narrow store interfaces so handlers can be
// exercised against fakes; the repository package provides the real
// implementations.

type PostStore interface {
	Feed(page int) ([]models.Post, repository.Pagination, error)
	FeedByGroup(groupID uint, page int) ([]models.Post, repository.Pagination, error)
	FeedByAuthor(authorID uint, page int) ([]models.Post, repository.Pagination, error)
	FeedByFollowed(userID uint, page int) ([]models.Post, repository.Pagination, error)
	ByAuthorAndID(username string, postID uint) (*models.Post, error)
	Create(post *models.Post) error
	Update(post *models.Post) error
}

type GroupStore interface {
	BySlug(slug string) (*models.Group, error)
	ByID(id uint) (*models.Group, error)
	All() ([]models.Group, error)
}

type UserStore interface {
	ByUsername(username string) (*models.User, error)
}

type CommentStore interface {
	Create(comment *models.Comment) error
	ByPost(postID uint) ([]models.Comment, error)
}

type FollowStore interface {
	Follow(userID, authorID uint) error
	Unfollow(userID, authorID uint) error
	IsFollowing(userID, authorID uint) (bool, error)
}
