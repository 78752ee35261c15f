package database

import (
	"github.com/acamacho/portfolio-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectTechnologyRepo struct {
	db *gorm.DB
}

func NewProjectTechnologyRepo(db *gorm.DB) *ProjectTechnologyRepo {
	return &ProjectTechnologyRepo{db}
}

// FindByProjectID returns a project's technology rows in display order
func (r *ProjectTechnologyRepo) FindByProjectID(projectID uuid.UUID) ([]*models.ProjectTechnology, error) {
	var technologies []*models.ProjectTechnology
	err := r.db.Where("project_id = ?", projectID).
		Order("position ASC").
		Find(&technologies).Error
	return technologies, err
}

// Add inserts a new technology row into the database
func (r *ProjectTechnologyRepo) Add(technology *models.ProjectTechnology) error {
	return r.db.Create(technology).Error
}

// Delete removes a technology row from the database by id
func (r *ProjectTechnologyRepo) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&models.ProjectTechnology{}).Error
}
