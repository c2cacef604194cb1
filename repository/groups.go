package repository

import (
	"gorm.io/gorm"

	"github.com/postium/postium/models"
)

// GroupRepo reads groups. Groups are managed out of band (directly in the
// data store), so there are no write operations here.
type GroupRepo struct {
	db *gorm.DB
}

func NewGroupRepo(db *gorm.DB) *GroupRepo {
	return &GroupRepo{db: db}
}

// BySlug resolves a group from its URL slug.
func (r *GroupRepo) BySlug(slug string) (*models.Group, error) {
	var group models.Group
	if err := r.db.Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// ByID resolves a group by primary key.
func (r *GroupRepo) ByID(id uint) (*models.Group, error) {
	var group models.Group
	if err := r.db.First(&group, id).Error; err != nil {
		return nil, err
	}
	return &group, nil
}

// All lists every group, used to populate the new-post form.
func (r *GroupRepo) All() ([]models.Group, error) {
	var groups []models.Group
	if err := r.db.Order("title").Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}
