package database

import (
	"testing"

	"github.com/acamacho/portfolio-backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepoRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := db.ProjectRepo()

	github := "https://github.com/acamacho/tracker"
	project := newProject("Tracker", models.CategoryWeb, "Go", "React")
	project.GithubURL = &github

	require.NoError(t, repo.Add(project))
	require.NotEqual(t, uuid.Nil, project.ID)

	found, err := repo.FindByID(project.ID)
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, project.ID, found.ID)
	assert.Equal(t, "Tracker", found.Title)
	assert.Equal(t, "description of Tracker", found.Description)
	assert.Equal(t, project.Image, found.Image)
	assert.Equal(t, "2025-06-01", found.DatePublished)
	assert.Equal(t, models.CategoryWeb, found.Category)
	require.NotNil(t, found.GithubURL)
	assert.Equal(t, github, *found.GithubURL)
	assert.Nil(t, found.DemoURL)
	assert.Equal(t, []string{"Go", "React"}, found.TechnologyValues())
}

func TestProjectRepoFindByIDMissing(t *testing.T) {
	db := newTestDB(t)

	found, err := db.ProjectRepo().FindByID(uuid.New())
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestProjectRepoTechnologyOrderAndDuplicates(t *testing.T) {
	db := newTestDB(t)
	repo := db.ProjectRepo()

	// duplicates are allowed; insertion order is display order
	project := newProject("Pipelines", models.CategoryFullstack, "Go", "Postgres", "Go")
	require.NoError(t, repo.Add(project))

	found, err := repo.FindByID(project.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, []string{"Go", "Postgres", "Go"}, found.TechnologyValues())
}

func TestProjectRepoFindByCategoryPartitionsFindAll(t *testing.T) {
	db := newTestDB(t)
	repo := db.ProjectRepo()

	require.NoError(t, repo.Add(newProject("Site", models.CategoryWeb, "React")))
	require.NoError(t, repo.Add(newProject("App", models.CategoryMobile, "Swift")))
	require.NoError(t, repo.Add(newProject("Shop", models.CategoryFullstack, "Go")))
	require.NoError(t, repo.Add(newProject("Blog", models.CategoryWeb, "Next.js")))

	all, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, all, 4)

	seen := map[uuid.UUID]int{}
	total := 0
	for _, category := range models.Categories() {
		subset, err := repo.FindByCategory(category)
		require.NoError(t, err)
		for _, project := range subset {
			assert.Equal(t, category, project.Category)
			seen[project.ID]++
		}
		total += len(subset)
	}

	// union over the three categories equals the full list, no dups or omissions
	assert.Equal(t, len(all), total)
	for _, project := range all {
		assert.Equal(t, 1, seen[project.ID])
	}
}

func TestProjectRepoUpdateReplacesTechnologies(t *testing.T) {
	db := newTestDB(t)
	repo := db.ProjectRepo()

	project := newProject("CLI", models.CategoryWeb, "Go")
	require.NoError(t, repo.Add(project))

	project.Title = "CLI v2"
	project.Category = models.CategoryFullstack
	project.Technologies = []models.ProjectTechnology{
		{ProjectID: project.ID, Position: 0, Value: "Rust"},
		{ProjectID: project.ID, Position: 1, Value: "SQLite"},
	}
	require.NoError(t, repo.Update(project))

	found, err := repo.FindByID(project.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "CLI v2", found.Title)
	assert.Equal(t, models.CategoryFullstack, found.Category)
	assert.Equal(t, []string{"Rust", "SQLite"}, found.TechnologyValues())

	// no leftover rows from the pre-update list
	techs, err := db.ProjectTechnologyRepo().FindByProjectID(project.ID)
	require.NoError(t, err)
	assert.Len(t, techs, 2)
}

func TestProjectRepoDeleteIsPermanent(t *testing.T) {
	db := newTestDB(t)
	repo := db.ProjectRepo()

	project := newProject("Doomed", models.CategoryMobile, "Kotlin")
	require.NoError(t, repo.Add(project))

	require.NoError(t, repo.Delete(project.ID))

	found, err := repo.FindByID(project.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	techs, err := db.ProjectTechnologyRepo().FindByProjectID(project.ID)
	require.NoError(t, err)
	assert.Empty(t, techs)
}
