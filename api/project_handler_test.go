package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProjectRequiresSession(t *testing.T) {
	db := newTestDatabase(t)
	router := newTestRouter(db, newTestSession())

	rec := doJSON(router, http.MethodPost, "/project", validProjectBody("Tracker", "web"), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateProjectRoundTrip(t *testing.T) {
	db := newTestDatabase(t)
	router := newTestRouter(db, newTestSession())
	seedAdmin(t, db, "owner@example.com", "hunter2")
	cookie := loginCookie(t, router, "owner@example.com", "hunter2")

	body := validProjectBody("Tracker", "web")
	body["githubUrl"] = "https://github.com/acamacho/tracker"

	rec := doJSON(router, http.MethodPost, "/project", body, cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created projectResponse
	decodeBody(t, rec, &created)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Tracker", created.Title)
	assert.Equal(t, "description of Tracker", created.Description)
	assert.Equal(t, "2025-06-01", created.DatePublished)
	assert.Equal(t, []string{"Go", "React"}, created.Technologies)
	assert.Equal(t, "web", created.Category)
	require.NotNil(t, created.GithubURL)
	assert.Equal(t, "https://github.com/acamacho/tracker", *created.GithubURL)
	assert.Nil(t, created.DemoURL)

	rec = doJSON(router, http.MethodGet, "/project/"+created.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var fetched projectResponse
	decodeBody(t, rec, &fetched)
	assert.Equal(t, created, fetched)
}

func TestCreateProjectValidation(t *testing.T) {
	db := newTestDatabase(t)
	router := newTestRouter(db, newTestSession())
	seedAdmin(t, db, "owner@example.com", "hunter2")
	cookie := loginCookie(t, router, "owner@example.com", "hunter2")

	missingTitle := validProjectBody("", "web")
	delete(missingTitle, "title")
	rec := doJSON(router, http.MethodPost, "/project", missingTitle, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	badCategory := validProjectBody("Tracker", "desktop")
	rec = doJSON(router, http.MethodPost, "/project", badCategory, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	missingImage := validProjectBody("Tracker", "web")
	delete(missingImage, "image")
	rec = doJSON(router, http.MethodPost, "/project", missingImage, cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// empty optional URL strings are tolerated, not rejected
	emptyURLs := validProjectBody("Tracker", "web")
	emptyURLs["githubUrl"] = ""
	emptyURLs["demoUrl"] = ""
	rec = doJSON(router, http.MethodPost, "/project", emptyURLs, cookie)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestListProjectsByCategory(t *testing.T) {
	db := newTestDatabase(t)
	router := newTestRouter(db, newTestSession())
	seedAdmin(t, db, "owner@example.com", "hunter2")
	cookie := loginCookie(t, router, "owner@example.com", "hunter2")

	for _, entry := range []struct{ title, category string }{
		{"Site", "web"},
		{"App", "mobile"},
		{"Shop", "fullstack"},
		{"Blog", "web"},
	} {
		rec := doJSON(router, http.MethodPost, "/project", validProjectBody(entry.title, entry.category), cookie)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec := doJSON(router, http.MethodGet, "/projects", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all projectCollectionResponse
	decodeBody(t, rec, &all)
	assert.Equal(t, 4, all.Total)

	rec = doJSON(router, http.MethodGet, "/projects?category=web", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var web projectCollectionResponse
	decodeBody(t, rec, &web)
	assert.Equal(t, 2, web.Total)
	for _, project := range web.Projects {
		assert.Equal(t, "web", project.Category)
	}

	// "all" is a filter sentinel equivalent to no filter
	rec = doJSON(router, http.MethodGet, "/projects?category=all", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sentinel projectCollectionResponse
	decodeBody(t, rec, &sentinel)
	assert.Equal(t, all.Total, sentinel.Total)

	rec = doJSON(router, http.MethodGet, "/projects?category=desktop", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetProjectErrors(t *testing.T) {
	db := newTestDatabase(t)
	router := newTestRouter(db, newTestSession())

	rec := doJSON(router, http.MethodGet, "/project/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(router, http.MethodGet, "/project/"+uuid.NewString(), nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateProjectNotFoundPerformsNoMutation(t *testing.T) {
	db := newTestDatabase(t)
	router := newTestRouter(db, newTestSession())
	seedAdmin(t, db, "owner@example.com", "hunter2")
	cookie := loginCookie(t, router, "owner@example.com", "hunter2")

	rec := doJSON(router, http.MethodPost, "/project", validProjectBody("Keeper", "web"), cookie)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(router, http.MethodPut, "/project/"+uuid.NewString(), validProjectBody("Ghost", "mobile"), cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	projects, err := db.ProjectRepo().FindAll()
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Keeper", projects[0].Title)
}

func TestUpdateProjectReplacesFields(t *testing.T) {
	db := newTestDatabase(t)
	router := newTestRouter(db, newTestSession())
	seedAdmin(t, db, "owner@example.com", "hunter2")
	cookie := loginCookie(t, router, "owner@example.com", "hunter2")

	rec := doJSON(router, http.MethodPost, "/project", validProjectBody("Tracker", "web"), cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created projectResponse
	decodeBody(t, rec, &created)

	update := validProjectBody("Tracker v2", "fullstack")
	update["technologies"] = []string{"Rust", "SQLite", "Rust"}
	rec = doJSON(router, http.MethodPut, "/project/"+created.ID.String(), update, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated projectResponse
	decodeBody(t, rec, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Tracker v2", updated.Title)
	assert.Equal(t, "fullstack", updated.Category)
	assert.Equal(t, []string{"Rust", "SQLite", "Rust"}, updated.Technologies)
}

func TestDeleteProjectThenGet(t *testing.T) {
	db := newTestDatabase(t)
	router := newTestRouter(db, newTestSession())
	seedAdmin(t, db, "owner@example.com", "hunter2")
	cookie := loginCookie(t, router, "owner@example.com", "hunter2")

	rec := doJSON(router, http.MethodPost, "/project", validProjectBody("Doomed", "mobile"), cookie)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created projectResponse
	decodeBody(t, rec, &created)

	rec = doJSON(router, http.MethodDelete, "/project/"+created.ID.String(), nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(router, http.MethodGet, "/project/"+created.ID.String(), nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// a second delete reports not found as well
	rec = doJSON(router, http.MethodDelete, "/project/"+created.ID.String(), nil, cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
