package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User accounts are never deleted through the public interface, so there is
// no soft-delete column. Username and email are immutable after creation by
// policy; only the unique indexes are enforced at the schema level.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	Username     string    `gorm:"size:80;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
