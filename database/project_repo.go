package database

import (
	"errors"

	"github.com/acamacho/portfolio-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

func withOrderedTechnologies(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// FindAll returns all projects from the database
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Preload("Technologies", withOrderedTechnologies).Find(&projects).Error
	return projects, err
}

// FindByCategory returns the projects whose category matches, via the
// idx_projects_category index.
func (r *ProjectRepo) FindByCategory(category models.Category) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Preload("Technologies", withOrderedTechnologies).
		Where("category = ?", category).
		Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID, or nil when no such record exists.
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.Preload("Technologies", withOrderedTechnologies).
		Where("id = ?", id).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// Add inserts a new project and its technology rows into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Update overwrites an existing project with the supplied field set. The
// technology list is replaced wholesale so display order survives the rewrite.
func (r *ProjectRepo) Update(project *models.Project) error {
	if err := r.db.Where("project_id = ?", project.ID).
		Delete(&models.ProjectTechnology{}).Error; err != nil {
		return err
	}
	return r.db.Save(project).Error
}

// Delete removes a project and its technology rows from the database by id.
// Permanent and immediate, no soft-delete.
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	if err := r.db.Where("project_id = ?", id).
		Delete(&models.ProjectTechnology{}).Error; err != nil {
		return err
	}
	return r.db.Where("id = ?", id).Delete(&models.Project{}).Error
}
