package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project represents a portfolio entry managed from the dashboard.
// Image holds either a blob storage id or a direct URL path; callers
// disambiguate by checking for a path separator.
type Project struct {
	ID            uuid.UUID           `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title         string              `json:"title" db:"title" gorm:"type:text;not null"`
	Description   string              `json:"description" db:"description" gorm:"type:text;not null"`
	Image         string              `json:"image" db:"image" gorm:"type:text;not null"`
	DatePublished string              `json:"datePublished" db:"date_published" gorm:"type:text;not null"`
	Category      Category            `json:"category" db:"category" gorm:"type:text;not null;index:idx_projects_category"`
	GithubURL     *string             `json:"githubUrl,omitempty" db:"github_url" gorm:"type:text"`
	DemoURL       *string             `json:"demoUrl,omitempty" db:"demo_url" gorm:"type:text"`
	Technologies  []ProjectTechnology `json:"-" gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TechnologyValues flattens the ordered technology rows into their display form.
func (p *Project) TechnologyValues() []string {
	values := make([]string, 0, len(p.Technologies))
	for _, t := range p.Technologies {
		values = append(values, t.Value)
	}
	return values
}
