package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/acamacho/portfolio-backend/auth"
	"github.com/acamacho/portfolio-backend/database"
	"github.com/acamacho/portfolio-backend/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDatabase(t *testing.T) database.Database {
	t.Helper()

	dsn := fmt.Sprintf("file:api_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Admin{}, &models.Project{}, &models.ProjectTechnology{}))

	return database.New(db)
}

func newTestSession() auth.SessionManager {
	return auth.NewSessionManager(map[string]string{"SESSION_SECRET": "api-test-secret"})
}

// newTestRouter mounts the auth and project routes the way setupRoutes does,
// without requiring a live blob store.
func newTestRouter(db database.Database, session auth.SessionManager) *chi.Mux {
	r := chi.NewRouter()

	authMiddleware := newAuthMiddleware(session)
	projectHandler := newProjectHandler(db.ProjectRepo())
	authHandler := newAuthHandler(db.AdminRepo(), session)

	r.Get("/projects", projectHandler.listProjects())
	r.Get("/project/{projectID}", projectHandler.getProject())
	r.Post("/auth/login", authHandler.login())
	r.Post("/auth/logout", authHandler.logout())
	r.Post("/auth/bootstrap", authHandler.bootstrap())

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.requireSession)

		r.Get("/auth/me", authHandler.me())
		r.Post("/project", projectHandler.createProject())
		r.Put("/project/{projectID}", projectHandler.updateProject())
		r.Delete("/project/{projectID}", projectHandler.deleteProject())
	})

	return r
}

func seedAdmin(t *testing.T, db database.Database, email, password string) *models.Admin {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	admin := &models.Admin{Email: email, PasswordHash: string(hash)}
	require.NoError(t, db.AdminRepo().Add(admin))
	return admin
}

func loginCookie(t *testing.T, router *chi.Mux, email, password string) *http.Cookie {
	t.Helper()

	rec := doJSON(router, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == auth.CookieName {
			return cookie
		}
	}
	t.Fatal("login response did not set the adminSession cookie")
	return nil
}

func doJSON(router *chi.Mux, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), into))
}

func validProjectBody(title, category string) map[string]any {
	return map[string]any{
		"title":         title,
		"description":   "description of " + title,
		"image":         "kg2b4v8x9z0a1c3d5e7f9h1j3k5m7n9p",
		"datePublished": "2025-06-01",
		"technologies":  []string{"Go", "React"},
		"category":      category,
	}
}
