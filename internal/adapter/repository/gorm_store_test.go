package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/joboy-dev/portfolio.api/internal/adapter/repository"
	"github.com/joboy-dev/portfolio.api/internal/domain/entity"
	domainrepo "github.com/joboy-dev/portfolio.api/internal/domain/repository"
	"github.com/joboy-dev/portfolio.api/internal/testutil"
	apperrors "github.com/joboy-dev/portfolio.api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

func newSkillStore(t *testing.T) (*repository.GormStore[entity.Skill, *entity.Skill], *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return repository.MustGormStore[entity.Skill](db), db
}

func seedSkills(t *testing.T, store domainrepo.Store[entity.Skill], names ...string) []entity.Skill {
	t.Helper()
	out := make([]entity.Skill, 0, len(names))
	for i, name := range names {
		s := entity.Skill{Name: name}
		s.Position = i
		require.NoError(t, store.Create(context.Background(), &s))
		out = append(out, s)
	}
	return out
}

func positions(t *testing.T, store domainrepo.Store[entity.Skill]) map[string]int {
	t.Helper()
	rows, _, err := store.List(context.Background(), domainrepo.ListParams{SortBy: "position", Order: "asc"})
	require.NoError(t, err)
	out := make(map[string]int, len(rows))
	for _, r := range rows {
		out[r.Name] = r.Position
	}
	return out
}

func TestGormStore_CreateAssignsIdentifiers(t *testing.T) {
	store, _ := newSkillStore(t)
	ctx := context.Background()

	skill := entity.Skill{Name: "Go"}
	require.NoError(t, store.Create(ctx, &skill))

	assert.Len(t, skill.ID, 32)
	require.NotNil(t, skill.UniqueID)
	assert.Regexp(t, `^SKI-[0-9]{2}[0-9A-Z]{8}$`, *skill.UniqueID)
	assert.False(t, skill.CreatedAt.IsZero())
}

func TestGormStore_FetchByIDFallback(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.MustGormStore[entity.Project](db)
	ctx := context.Background()

	project := entity.Project{Name: "Portfolio", Slug: "pro-portfolio", Domain: "web", ProjectType: "personal", Role: "dev"}
	require.NoError(t, store.Create(ctx, &project))

	for _, identifier := range []string{project.ID, *project.UniqueID, "pro-portfolio"} {
		got, err := store.FetchByID(ctx, identifier)
		require.NoError(t, err, identifier)
		assert.Equal(t, project.ID, got.ID)
	}

	_, err := store.FetchByID(ctx, "missing")
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrNotFound))
	assert.Equal(t, "Record not found in table `projects`", apperrors.ToHTTPError(err).Message)
}

func TestGormStore_SoftAndHardDelete(t *testing.T) {
	store, _ := newSkillStore(t)
	ctx := context.Background()
	skills := seedSkills(t, store, "Go", "SQL")

	require.NoError(t, store.Delete(ctx, skills[0].ID))

	_, err := store.FetchByID(ctx, skills[0].ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrNotFound))

	_, total, err := store.List(ctx, domainrepo.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	deleted, err := store.FetchByIDIncludingDeleted(ctx, skills[0].ID)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)

	// 소프트 삭제된 레코드도 물리 삭제할 수 있습니다
	require.NoError(t, store.HardDelete(ctx, skills[0].ID))
	_, err = store.FetchByIDIncludingDeleted(ctx, skills[0].ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrNotFound))
}

func TestGormStore_DeletionModes(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	files := repository.MustGormStore[entity.File](db)
	f := entity.File{FileName: "a.png", FilePath: "x/a.png", ModelName: "general", URL: "u"}
	require.NoError(t, files.Create(ctx, &f))
	require.NoError(t, files.Delete(ctx, f.ID))
	_, err := files.FetchByIDIncludingDeleted(ctx, f.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrNotFound), "files are hard deleted")

	blacklist := repository.MustGormStore[entity.BlacklistedToken](db)
	b := entity.BlacklistedToken{Token: "t"}
	require.NoError(t, blacklist.Create(ctx, &b))
	err = blacklist.Delete(ctx, b.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrInvalidArgument))
	err = blacklist.HardDelete(ctx, b.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrInvalidArgument))
}

func TestGormStore_Reorder(t *testing.T) {
	store, _ := newSkillStore(t)
	ctx := context.Background()
	skills := seedSkills(t, store, "a", "b", "c", "d")

	// 뒤에서 앞으로
	require.NoError(t, store.Reorder(ctx, skills[3].ID, 0))
	assert.Equal(t, map[string]int{"d": 0, "a": 1, "b": 2, "c": 3}, positions(t, store))

	// 같은 위치는 변화 없음
	require.NoError(t, store.Reorder(ctx, skills[3].ID, 0))
	assert.Equal(t, map[string]int{"d": 0, "a": 1, "b": 2, "c": 3}, positions(t, store))

	// 앞에서 뒤로
	require.NoError(t, store.Reorder(ctx, skills[0].ID, 3))
	assert.Equal(t, map[string]int{"d": 0, "b": 1, "c": 2, "a": 3}, positions(t, store))

	// 범위를 벗어나면 끝으로 제한
	require.NoError(t, store.Reorder(ctx, skills[3].ID, 99))
	assert.Equal(t, map[string]int{"b": 0, "c": 1, "a": 2, "d": 3}, positions(t, store))

	require.NoError(t, store.Reorder(ctx, skills[3].ID, -5))
	assert.Equal(t, map[string]int{"d": 0, "b": 1, "c": 2, "a": 3}, positions(t, store))
}

func TestGormStore_ReorderScopedToOwner(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.MustGormStore[entity.File](db)
	ctx := context.Background()

	create := func(name, owner string, pos int) entity.File {
		f := entity.File{FileName: name, FilePath: name, ModelName: "projects", ModelID: strPtr(owner), URL: name}
		f.Position = pos
		require.NoError(t, store.Create(ctx, &f))
		return f
	}
	a1 := create("a1", "p1", 0)
	create("a2", "p1", 1)
	b1 := create("b1", "p2", 0)
	create("b2", "p2", 1)

	highest, err := store.MaxPosition(ctx, map[string]interface{}{"model_name": "projects", "model_id": "p1"})
	require.NoError(t, err)
	assert.Equal(t, 1, highest)

	require.NoError(t, store.Reorder(ctx, a1.ID, 1))

	got, err := store.FetchByID(ctx, b1.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Position, "other owner's files are untouched")

	rows, _, err := store.List(ctx, domainrepo.ListParams{Filters: map[string]interface{}{"model_id": "p1"}})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a2", rows[0].FileName)
	assert.Equal(t, "a1", rows[1].FileName)
}

func TestGormStore_MaxPositionEmpty(t *testing.T) {
	store, _ := newSkillStore(t)
	highest, err := store.MaxPosition(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, -1, highest)
}

func TestGormStore_List(t *testing.T) {
	store, _ := newSkillStore(t)
	ctx := context.Background()
	seedSkills(t, store, "Golang", "Python", "Go kit", "Rust", "SQL")

	rows, total, err := store.List(ctx, domainrepo.ListParams{Page: 2, PerPage: 2, Paginate: true, SortBy: "position", Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, rows, 2)
	assert.Equal(t, "Go kit", rows[0].Name)
	assert.Equal(t, "Rust", rows[1].Name)

	rows, total, err = store.List(ctx, domainrepo.ListParams{Search: map[string]string{"name": "GO"}, Paginate: true})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, rows, 2)

	rows, total, err = store.List(ctx, domainrepo.ListParams{PerPage: 1, Paginate: false})
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, rows, 5, "paginate=false returns every row")

	rows, _, err = store.List(ctx, domainrepo.ListParams{RestrictIDs: true})
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, _, err = store.List(ctx, domainrepo.ListParams{SortBy: "unknown"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrInvalidArgument))

	_, _, err = store.List(ctx, domainrepo.ListParams{Filters: map[string]interface{}{"nope": 1}})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrInvalidArgument))

	_, _, err = store.List(ctx, domainrepo.ListParams{Order: "sideways"})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrInvalidArgument))
}

func TestGormStore_FetchOneAndCount(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.MustGormStore[entity.Tag](db)
	ctx := context.Background()

	tag := entity.Tag{Name: "go", ModelType: "blogs"}
	require.NoError(t, store.Create(ctx, &tag))

	got, err := store.FetchOne(ctx, map[string]interface{}{"name": "go", "model_type": "blogs"}, true)
	require.NoError(t, err)
	assert.Equal(t, tag.ID, got.ID)

	got, err = store.FetchOne(ctx, map[string]interface{}{"name": "rust"}, false)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = store.FetchOne(ctx, map[string]interface{}{"name": "rust"}, true)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrNotFound))

	count, err := store.Count(ctx, map[string]interface{}{"model_type": "blogs"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormStore_SliceFilterAndRowLock(t *testing.T) {
	db := testutil.NewDB(t)
	tags := repository.MustGormStore[entity.Tag](db)
	store := repository.MustGormStore[entity.TagAssociation](db)
	ctx := context.Background()

	tag := entity.Tag{Name: "go", ModelType: "projects"}
	require.NoError(t, tags.Create(ctx, &tag))
	for _, entityID := range []string{"project-1", "project-2", "project-3"} {
		require.NoError(t, store.Create(ctx, &entity.TagAssociation{TagID: tag.ID, EntityID: entityID, ModelType: "projects"}))
	}

	rows, total, err := store.List(ctx, domainrepo.ListParams{
		Filters: map[string]interface{}{"model_type": "projects", "entity_id": []string{"project-1", "project-3", "unknown"}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.EntityID)
	}
	assert.ElementsMatch(t, []string{"project-1", "project-3"}, ids)

	// 잠금 조회는 트랜잭션 안에서 같은 결과를 돌려줍니다
	tx := repository.NewTransactor(db)
	err = tx.WithinTransaction(ctx, func(ctx context.Context) error {
		got, err := store.FetchOne(domainrepo.WithRowLock(ctx), map[string]interface{}{"entity_id": "project-2"}, true)
		if err != nil {
			return err
		}
		assert.Equal(t, "project-2", got.EntityID)
		return nil
	})
	require.NoError(t, err)
}

func TestGormStore_Update(t *testing.T) {
	store, _ := newSkillStore(t)
	ctx := context.Background()
	skills := seedSkills(t, store, "a", "b", "c")

	updated, err := store.Update(ctx, *skills[2].UniqueID, map[string]interface{}{"name": "C", "position": 0})
	require.NoError(t, err)
	assert.Equal(t, "C", updated.Name)
	assert.Equal(t, 0, updated.Position)
	assert.True(t, !updated.UpdatedAt.Before(skills[2].UpdatedAt))
	assert.Equal(t, map[string]int{"C": 0, "a": 1, "b": 2}, positions(t, store))

	_, err = store.Update(ctx, skills[0].ID, map[string]interface{}{"is_deleted": true})
	require.Error(t, err)
	assert.Equal(t, "Field 'is_deleted' cannot be updated", apperrors.ToHTTPError(err).Message)
}

func TestGormStore_UniqueViolation(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.MustGormStore[entity.User](db)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &entity.User{Email: "me@example.dev", IsActive: true}))
	err := store.Create(ctx, &entity.User{Email: "me@example.dev", IsActive: true})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrInvalidArgument))
	assert.Equal(t, "Record with this email already exists", apperrors.ToHTTPError(err).Message)
}

func TestGormTransactor_Rollback(t *testing.T) {
	db := testutil.NewDB(t)
	store := repository.MustGormStore[entity.Skill](db)
	tx := repository.NewTransactor(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := tx.WithinTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, store.Create(ctx, &entity.Skill{Name: "rolled back"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	count, err := store.Count(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
