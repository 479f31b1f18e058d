package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe names are unique per owning user, not globally. The composite
// unique index closes the check-then-insert race on concurrent creates.
type Recipe struct {
	ID            uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	Name          string    `gorm:"size:100;not null;uniqueIndex:idx_recipes_owner_name" json:"name"`
	Ingredients   string    `gorm:"type:text;not null" json:"ingredients"`
	Instructions  string    `gorm:"type:text" json:"instructions"`
	Category      string    `gorm:"size:50;not null;default:'Uncategorized'" json:"category"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_recipes_owner_name" json:"user_id"`
	User          *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	PrepTime      *int      `json:"prep_time,omitempty"`
	CookTime      *int      `json:"cook_time,omitempty"`
	TotalTime     *int      `json:"total_time,omitempty"`
	Servings      *int      `json:"servings,omitempty"`
	ImageLocation string    `gorm:"size:255" json:"image_location,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.Category == "" {
		r.Category = CategoryUncategorized
	}
	return nil
}
