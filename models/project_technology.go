package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectTechnology is one entry of a project's ordered technology list.
// Position preserves the insertion order the dashboard displays; duplicate
// values are allowed.
type ProjectTechnology struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	ProjectID uuid.UUID `json:"project_id" db:"project_id" gorm:"type:uuid;not null;index:idx_project_technologies_project_id"`
	Position  int       `json:"position" db:"position" gorm:"type:integer;not null"`
	Value     string    `json:"value" db:"value" gorm:"type:text;not null"`
}

func (t *ProjectTechnology) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
