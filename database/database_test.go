package database

import (
	"fmt"
	"testing"

	"github.com/acamacho/portfolio-backend/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) Database {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Admin{}, &models.Project{}, &models.ProjectTechnology{}))

	return New(db)
}

func newProject(title string, category models.Category, technologies ...string) *models.Project {
	techs := make([]models.ProjectTechnology, 0, len(technologies))
	for i, value := range technologies {
		techs = append(techs, models.ProjectTechnology{Position: i, Value: value})
	}
	return &models.Project{
		Title:         title,
		Description:   "description of " + title,
		Image:         "kg2b4v8x9z0a1c3d5e7f9h1j3k5m7n9p",
		DatePublished: "2025-06-01",
		Category:      category,
		Technologies:  techs,
	}
}
