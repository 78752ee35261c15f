package api

import (
	"github.com/acamacho/portfolio-backend/auth"
	"github.com/acamacho/portfolio-backend/database"
	"github.com/acamacho/portfolio-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, blobs *services.BlobStore, session auth.SessionManager, c map[string]string) *routeHandlers {
	return &routeHandlers{
		authHandler:    newAuthHandler(database.AdminRepo(), session),
		projectHandler: newProjectHandler(database.ProjectRepo()),
		imageHandler:   newImageHandler(blobs),
		uiHandler:      newUIHandler(c),
	}
}
