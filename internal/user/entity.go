package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID         uuid.UUID                   `gorm:"type:uuid;primaryKey" json:"id"`
	ExternalID string                      `gorm:"type:text;not null;uniqueIndex" json:"external_id"`
	Email      string                      `gorm:"type:text" json:"email,omitempty"`
	Industry   string                      `gorm:"type:text" json:"industry,omitempty"`
	Skills     datatypes.JSONSlice[string] `json:"skills"`
	CreatedAt  time.Time                   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
