package database

import (
	"gorm.io/gorm"
)

type Database struct {
	adminRepo             *AdminRepo
	projectRepo           *ProjectRepo
	projectTechnologyRepo *ProjectTechnologyRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		adminRepo:             NewAdminRepo(db),
		projectRepo:           NewProjectRepo(db),
		projectTechnologyRepo: NewProjectTechnologyRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) AdminRepo() *AdminRepo {
	return d.adminRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectTechnologyRepo() *ProjectTechnologyRepo {
	return d.projectTechnologyRepo
}
