package usecase_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	"github.com/joboy-dev/portfolio.api/internal/usecase"
	"github.com/joboy-dev/portfolio.api/internal/usecase/dto"
	"github.com/joboy-dev/portfolio.api/internal/usecase/interfaces"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProjectUseCase(h *harness) interfaces.ProjectUseCase {
	return usecase.NewProjectUseCase(zap.NewNop(), h.repos.Transactor, h.repos.Project, h.tags, h.cats)
}

func TestProjectUseCase_Create(t *testing.T) {
	h := newHarness(t)
	uc := newProjectUseCase(h)
	ctx := context.Background()

	view, err := uc.Create(ctx, newProject("Portfolio API"), dto.ProjectDetails{
		TechnicalDetails: []dto.KeyValue{
			{Key: "language", Value: "Go"},
			{Key: "database", Value: "PostgreSQL"},
		},
		ChallengesAndSolutions: []dto.KeyValue{{Key: "scaling", Value: "cache"}},
		Tags:                   []string{"golang", "api"},
	})
	require.NoError(t, err)

	require.NotNil(t, view.UniqueID)
	assert.True(t, strings.HasPrefix(*view.UniqueID, "PRO-"))
	assert.Equal(t, strings.ToLower(*view.UniqueID)+"-portfolio-api", view.Slug)
	assert.Equal(t, 0, view.Position)
	assert.Equal(t, "Go", view.TechnicalDetails["language"])
	assert.Equal(t, "cache", view.ChallengesAndSolutions["scaling"])
	assert.Len(t, view.Tags, 2)
	assert.Empty(t, view.Categories)

	// 슬러그와 보조 식별자로 조회
	bySlug, err := uc.Get(ctx, view.Slug)
	require.NoError(t, err)
	assert.Equal(t, view.ID, bySlug.ID)
	byUID, err := uc.Get(ctx, *view.UniqueID)
	require.NoError(t, err)
	assert.Equal(t, view.ID, byUID.ID)

	second, err := uc.Create(ctx, newProject("Second"), dto.ProjectDetails{})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)
	assert.NotNil(t, second.Tags)
}

func TestProjectUseCase_ListByTags(t *testing.T) {
	h := newHarness(t)
	uc := newProjectUseCase(h)
	ctx := context.Background()

	goProject, err := uc.Create(ctx, newProject("Go Service"), dto.ProjectDetails{Tags: []string{"golang"}})
	require.NoError(t, err)
	rustProject, err := uc.Create(ctx, newProject("Rust CLI"), dto.ProjectDetails{Tags: []string{"rust"}})
	require.NoError(t, err)
	_, err = uc.Create(ctx, newProject("Untagged"), dto.ProjectDetails{})
	require.NoError(t, err)

	page, err := uc.List(ctx, dto.ListQuery{}, []string{"golang", "rust"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)
	ids := []string{page.Items[0].ID, page.Items[1].ID}
	assert.ElementsMatch(t, []string{goProject.ID, rustProject.ID}, ids)

	page, err = uc.List(ctx, dto.ListQuery{}, []string{"python"})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	assert.Empty(t, page.Items)

	page, err = uc.List(ctx, dto.ListQuery{Search: map[string]string{"name": "rust"}}, nil)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, rustProject.ID, page.Items[0].ID)
	assert.Equal(t, "rust", page.Items[0].Tags[0].Name)
}

func TestProjectUseCase_Featured(t *testing.T) {
	h := newHarness(t)
	uc := newProjectUseCase(h)
	ctx := context.Background()

	var created []*dto.ProjectView
	for i := 0; i < 6; i++ {
		view, err := uc.Create(ctx, newProject(fmt.Sprintf("Project %d", i)), dto.ProjectDetails{})
		require.NoError(t, err)
		created = append(created, view)
	}

	// 마지막 프로젝트를 맨 앞으로 이동
	_, err := uc.Update(ctx, created[5].ID, map[string]interface{}{"position": 0}, dto.ProjectDetails{})
	require.NoError(t, err)

	featured, err := uc.Featured(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 4)
	assert.Equal(t, created[5].ID, featured[0].ID)
	assert.Equal(t, created[0].ID, featured[1].ID)
	assert.Equal(t, created[2].ID, featured[3].ID)
}

func TestProjectUseCase_Update(t *testing.T) {
	h := newHarness(t)
	uc := newProjectUseCase(h)
	ctx := context.Background()

	view, err := uc.Create(ctx, newProject("Portfolio API"), dto.ProjectDetails{
		TechnicalDetails: []dto.KeyValue{
			{Key: "language", Value: "Go"},
			{Key: "database", Value: "PostgreSQL"},
		},
	})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, view.ID, map[string]interface{}{"tagline": "CMS backend"}, dto.ProjectDetails{
		TechnicalDetails:       []dto.KeyValue{{Key: "cache", Value: "Redis"}},
		TechnicalDetailsRemove: []string{"database", "missing"},
		Tags:                   []string{"golang"},
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Tagline)
	assert.Equal(t, "CMS backend", *updated.Tagline)
	assert.Equal(t, "Go", updated.TechnicalDetails["language"])
	assert.Equal(t, "Redis", updated.TechnicalDetails["cache"])
	assert.NotContains(t, updated.TechnicalDetails, "database")
	require.Len(t, updated.Tags, 1)

	_, err = uc.Update(ctx, view.ID, map[string]interface{}{"unknown": "x"}, dto.ProjectDetails{})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrInvalidArgument))

	require.NoError(t, uc.Delete(ctx, view.ID))
	_, err = uc.Get(ctx, view.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrNotFound))
}

func TestBlogUseCase(t *testing.T) {
	h := newHarness(t)
	uc := usecase.NewBlogUseCase(zap.NewNop(), h.repos.Transactor, h.repos.Blog, h.tags, h.cats)
	ctx := context.Background()

	published, err := uc.Create(ctx, &entity.Blog{Title: "Hello World", IsPublished: true}, []string{"intro"}, []string{"announcements"})
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(*published.UniqueID)+"-hello-world", published.Slug)
	require.Len(t, published.Tags, 1)
	require.Len(t, published.Categories, 1)
	assert.Equal(t, "announcements", published.Categories[0].Name)

	_, err = uc.Create(ctx, &entity.Blog{Title: "Draft"}, nil, nil)
	require.NoError(t, err)

	page, err := uc.List(ctx, dto.ListQuery{Filters: map[string]interface{}{"is_published": true}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, published.ID, page.Items[0].ID)
	assert.Equal(t, "intro", page.Items[0].Tags[0].Name)

	updated, err := uc.Update(ctx, published.Slug, map[string]interface{}{"title": "Hello Again"})
	require.NoError(t, err)
	assert.Equal(t, "Hello Again", updated.Title)
	assert.Equal(t, published.Slug, updated.Slug)

	require.NoError(t, uc.Delete(ctx, published.ID))
	_, err = uc.Get(ctx, published.Slug)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrNotFound))
}
