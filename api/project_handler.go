package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/acamacho/portfolio-backend/database"
	"github.com/acamacho/portfolio-backend/errs"
	"github.com/acamacho/portfolio-backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	validate    *validator.Validate
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		validate:    validator.New(),
		projectRepo: projectRepo,
	}
}

// projectRequest is the field set the dashboard form submits for both create
// and update. Update is a full replacement of these fields.
type projectRequest struct {
	Title         string   `json:"title" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	Image         string   `json:"image" validate:"required"`
	DatePublished string   `json:"datePublished" validate:"required"`
	Technologies  []string `json:"technologies" validate:"required,min=1"`
	Category      string   `json:"category" validate:"required"`
	GithubURL     *string  `json:"githubUrl,omitempty" validate:"omitempty,url"`
	DemoURL       *string  `json:"demoUrl,omitempty" validate:"omitempty,url"`
}

type projectResponse struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Image         string    `json:"image"`
	DatePublished string    `json:"datePublished"`
	Technologies  []string  `json:"technologies"`
	Category      string    `json:"category"`
	GithubURL     *string   `json:"githubUrl,omitempty"`
	DemoURL       *string   `json:"demoUrl,omitempty"`
}

type projectCollectionResponse struct {
	Projects []projectResponse `json:"projects"`
	Total    int               `json:"total,omitempty"`
}

func newProjectResponse(project *models.Project) projectResponse {
	return projectResponse{
		ID:            project.ID,
		Title:         project.Title,
		Description:   project.Description,
		Image:         project.Image,
		DatePublished: project.DatePublished,
		Technologies:  project.TechnologyValues(),
		Category:      project.Category.String(),
		GithubURL:     project.GithubURL,
		DemoURL:       project.DemoURL,
	}
}

// decodeAndValidate parses the request body into a projectRequest and applies
// field validation, returning an ApiErr suitable for the responder.
func (h projectHandler) decodeAndValidate(r *http.Request) (*projectRequest, models.Category, error) {
	var req projectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error().Err(err).Msg("Failed to decode project request body")
		return nil, "", errs.NewBadRequestError("malformed request body")
	}

	// The form submits "" for cleared optional URLs
	if req.GithubURL != nil && *req.GithubURL == "" {
		req.GithubURL = nil
	}
	if req.DemoURL != nil && *req.DemoURL == "" {
		req.DemoURL = nil
	}

	if err := h.validate.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return nil, "", errs.NewValidationError(fieldErrs[0].Field(), "failed on rule "+fieldErrs[0].Tag())
		}
		return nil, "", errs.NewBadRequestError("invalid project data")
	}

	category, err := models.ParseCategory(req.Category)
	if err != nil {
		return nil, "", errs.NewValidationError("category", err.Error())
	}

	return &req, category, nil
}

func (req *projectRequest) toModel(id uuid.UUID, category models.Category) models.Project {
	technologies := make([]models.ProjectTechnology, 0, len(req.Technologies))
	for i, value := range req.Technologies {
		technologies = append(technologies, models.ProjectTechnology{
			ProjectID: id,
			Position:  i,
			Value:     value,
		})
	}

	return models.Project{
		ID:            id,
		Title:         req.Title,
		Description:   req.Description,
		Image:         req.Image,
		DatePublished: req.DatePublished,
		Category:      category,
		GithubURL:     req.GithubURL,
		DemoURL:       req.DemoURL,
		Technologies:  technologies,
	}
}

// listProjects retrieves all projects, optionally filtered by category.
// "all" (or no category parameter) returns the full list; anything outside
// the closed category set is rejected.
func (h projectHandler) listProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryParam := r.URL.Query().Get("category")

		var projects []*models.Project
		var err error
		if categoryParam == "" || categoryParam == models.CategoryAll {
			projects, err = h.projectRepo.FindAll()
		} else {
			var category models.Category
			category, err = models.ParseCategory(categoryParam)
			if err != nil {
				h.responder.WriteError(w, errs.NewValidationError("category", err.Error()))
				return
			}
			projects, err = h.projectRepo.FindByCategory(category)
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		response := projectCollectionResponse{
			Projects: make([]projectResponse, 0, len(projects)),
			Total:    len(projects),
		}
		for _, project := range projects {
			response.Projects = append(response.Projects, newProjectResponse(project))
		}

		h.responder.WriteJSON(w, response)
	}
}

// getProject retrieves a specific project by ID
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := parseProjectID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if project == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		h.responder.WriteJSON(w, newProjectResponse(project))
	}
}

// createProject creates a new project from the dashboard form submission
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, category, err := h.decodeAndValidate(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := req.toModel(uuid.New(), category)
		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		created, err := h.projectRepo.FindByID(project.ID)
		if err != nil || created == nil {
			h.responder.WriteError(w, wrapDatabaseError("find created project", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, newProjectResponse(created))
	}
}

// updateProject overwrites an existing project with the submitted field set
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := parseProjectID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		existing, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		req, category, err := h.decodeAndValidate(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project := req.toModel(projectID, category)
		if err := h.projectRepo.Update(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		updated, err := h.projectRepo.FindByID(projectID)
		if err != nil || updated == nil {
			h.responder.WriteError(w, wrapDatabaseError("find updated project", "project", err))
			return
		}

		h.responder.WriteJSON(w, newProjectResponse(updated))
	}
}

// deleteProject permanently removes a project by ID
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := parseProjectID(r)
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		existing, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}
		if existing == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("project not found"))
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "project deleted successfully",
		})
	}
}

func parseProjectID(r *http.Request) (uuid.UUID, *errs.ApiErr) {
	projectIDStr := chi.URLParam(r, "projectID")
	if projectIDStr == "" {
		return uuid.Nil, errs.NewBadRequestError("missing projectID")
	}

	projectID, err := uuid.Parse(projectIDStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid projectID")
	}
	return projectID, nil
}
