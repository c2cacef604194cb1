package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a publication by a user, optionally filed under a group and
// optionally carrying an uploaded image. PubDate is fixed at creation.
type Post struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Text     string    `gorm:"type:text;not null" json:"text"`
	PubDate  time.Time `gorm:"index;not null" json:"pub_date"`
	AuthorID uint      `gorm:"index;not null" json:"author_id"`
	GroupID  *uint     `gorm:"index" json:"group_id,omitempty"`
	Image    string    `gorm:"size:512" json:"image,omitempty"`
	Author   User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Group    *Group    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group,omitempty"`
}

// BeforeCreate stamps the publication time once.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.PubDate.IsZero() {
		p.PubDate = time.Now()
	}
	return nil
}

const previewRunes = 15

// Preview returns the leading fragment of the text used as the post's
// display name in listings and logs.
func (p Post) Preview() string {
	r := []rune(p.Text)
	if len(r) <= previewRunes {
		return p.Text
	}
	return string(r[:previewRunes])
}

func (p Post) String() string { return p.Preview() }
