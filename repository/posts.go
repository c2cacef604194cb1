package repository

import (
	"gorm.io/gorm"

	"github.com/postium/postium/models"
)

// PostRepo runs all post queries. Every feed variant is reverse
// chronological by pub_date and sliced to the configured page size.
type PostRepo struct {
	db       *gorm.DB
	pageSize int
}

// NewPostRepo creates a PostRepo with a fixed page size.
func NewPostRepo(db *gorm.DB, pageSize int) *PostRepo {
	return &PostRepo{db: db, pageSize: pageSize}
}

// Feed returns the global feed page.
func (r *PostRepo) Feed(page int) ([]models.Post, Pagination, error) {
	return r.page(r.db.Model(&models.Post{}), page)
}

// FeedByGroup returns the page of posts filed under one group.
func (r *PostRepo) FeedByGroup(groupID uint, page int) ([]models.Post, Pagination, error) {
	return r.page(r.db.Model(&models.Post{}).Where("group_id = ?", groupID), page)
}

// FeedByAuthor returns the page of posts written by one user.
func (r *PostRepo) FeedByAuthor(authorID uint, page int) ([]models.Post, Pagination, error) {
	return r.page(r.db.Model(&models.Post{}).Where("author_id = ?", authorID), page)
}

// FeedByFollowed returns the page of posts whose authors the given user
// follows, resolved with a single relational subquery instead of one
// query per followed author.
func (r *PostRepo) FeedByFollowed(userID uint, page int) ([]models.Post, Pagination, error) {
	followed := r.db.Model(&models.Follow{}).Select("author_id").Where("user_id = ?", userID)
	return r.page(r.db.Model(&models.Post{}).Where("author_id IN (?)", followed), page)
}

// ByAuthorAndID looks up one post by its id scoped to the author's
// username, matching how post URLs address posts.
func (r *PostRepo) ByAuthorAndID(username string, postID uint) (*models.Post, error) {
	var post models.Post
	err := r.db.
		Joins("Author").
		Preload("Group").
		Where("`Author`.`username` = ? AND `posts`.`id` = ?", username, postID).
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// Create persists a new post.
func (r *PostRepo) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// Update saves an edit. Only text, group and image may change; the
// author and publication date are immutable.
func (r *PostRepo) Update(post *models.Post) error {
	return r.db.Model(post).Select("text", "group_id", "image").Updates(map[string]interface{}{
		"text":     post.Text,
		"group_id": post.GroupID,
		"image":    post.Image,
	}).Error
}

func (r *PostRepo) page(q *gorm.DB, page int) ([]models.Post, Pagination, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, Pagination{}, err
	}

	p := Paginate(total, page, r.pageSize)

	var posts []models.Post
	err := q.
		Preload("Author").
		Preload("Group").
		Order("pub_date DESC").
		Offset(p.Offset()).
		Limit(p.PageSize).
		Find(&posts).Error
	if err != nil {
		return nil, Pagination{}, err
	}
	return posts, p, nil
}
