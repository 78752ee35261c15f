package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin is the single dashboard login. The password is stored as a bcrypt hash,
// never plaintext.
type Admin struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex:idx_admins_email"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
