package categoryService

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"ExpenseTracker/internal/api/category"
	categoryRepository "ExpenseTracker/internal/api/category/repository"
	"ExpenseTracker/internal/entity"
	"ExpenseTracker/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategories struct {
	rows      map[int64]entity.Category
	nextID    int64
	inUse     map[int64]bool
	failWrite error
}

func newFakeCategories() *fakeCategories {
	return &fakeCategories{rows: map[int64]entity.Category{}, inUse: map[int64]bool{}}
}

func (f *fakeCategories) nameTaken(name string, except int64) bool {
	for id, c := range f.rows {
		if id != except && c.Name == name {
			return true
		}
	}
	return false
}

func (f *fakeCategories) CreateCategory(_ context.Context, c entity.Category) (int64, error) {
	if f.failWrite != nil {
		return 0, f.failWrite
	}
	if f.nameTaken(c.Name, 0) {
		return 0, category.ErrCategoryNameTaken
	}
	f.nextID++
	c.ID = f.nextID
	f.rows[c.ID] = c
	return c.ID, nil
}

func (f *fakeCategories) GetCategoryByID(_ context.Context, id int64) (entity.Category, error) {
	c, ok := f.rows[id]
	if !ok {
		return entity.Category{}, category.ErrCategoryNotFound
	}
	return c, nil
}

func (f *fakeCategories) ListCategories(_ context.Context, search string, ordering category.Ordering, limit, offset int) ([]entity.Category, int, error) {
	var out []entity.Category
	for _, c := range f.rows {
		if search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if ordering == category.OrderNameDesc {
			return out[i].Name > out[j].Name
		}
		return out[i].Name < out[j].Name
	})

	total := len(out)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return out[offset:end], total, nil
}

func (f *fakeCategories) UpdateCategory(_ context.Context, c entity.Category) error {
	if f.failWrite != nil {
		return f.failWrite
	}
	if _, ok := f.rows[c.ID]; !ok {
		return category.ErrCategoryNotFound
	}
	if f.nameTaken(c.Name, c.ID) {
		return category.ErrCategoryNameTaken
	}
	f.rows[c.ID] = c
	return nil
}

func (f *fakeCategories) DeleteCategory(_ context.Context, id int64) error {
	if _, ok := f.rows[id]; !ok {
		return category.ErrCategoryNotFound
	}
	if f.inUse[id] {
		return category.ErrCategoryInUse
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeCategories) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.rows[id]
	return ok, nil
}

type fakeRepository struct {
	store   *fakeCategories
	commits int
}

func (f *fakeRepository) NewClient(bool) (categoryRepository.Client, error) {
	return categoryRepository.Client{
		Categories: f.store,
		Commit: func() error {
			f.commits++
			return nil
		},
		Rollback: func() error { return nil },
	}, nil
}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService() (ICategoryService, *fakeRepository) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	repo := &fakeRepository{store: newFakeCategories()}
	svc := NewCategoryService(log, repo, utils.NewWithClock(func() time.Time { return fixedNow }))
	return svc, repo
}

func strPtr(s string) *string {
	return &s
}

func TestCreateCategory(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.CreateCategory(context.Background(), category.CreateCategoryRequest{Name: "  Food ", Description: strPtr("meals")})
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Food", got.Name)
	assert.Equal(t, "meals", *got.Description)
	assert.Equal(t, fixedNow, got.CreatedAt)
}

func TestCreateCategory_DuplicateName(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateCategory(context.Background(), category.CreateCategoryRequest{Name: "Food"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(context.Background(), category.CreateCategoryRequest{Name: "Food"})
	assert.ErrorIs(t, err, category.ErrCategoryNameTaken)
}

func TestCreateCategory_BlankName(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateCategory(context.Background(), category.CreateCategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, category.ErrInvalidCategoryName)
}

func TestCreateCategory_StoreFailureIsMasked(t *testing.T) {
	svc, repo := newTestService()
	repo.store.failWrite = errors.New("disk full")

	_, err := svc.CreateCategory(context.Background(), category.CreateCategoryRequest{Name: "Food"})
	assert.ErrorIs(t, err, category.ErrCreateCategory)
}

func TestListCategories(t *testing.T) {
	svc, _ := newTestService()
	for _, name := range []string{"Transport", "Food", "Fun"} {
		_, err := svc.CreateCategory(context.Background(), category.CreateCategoryRequest{Name: name})
		require.NoError(t, err)
	}

	got, err := svc.ListCategories(context.Background(), category.ListCategoriesQuery{PageSize: 2})
	require.NoError(t, err)

	assert.Equal(t, 3, got.Count)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "Food", got.Results[0].Name)
	assert.Equal(t, "Fun", got.Results[1].Name)
	require.NotNil(t, got.Next)
	assert.Equal(t, 2, *got.Next)

	got, err = svc.ListCategories(context.Background(), category.ListCategoriesQuery{Search: "f", Ordering: "-name"})
	require.NoError(t, err)
	require.Len(t, got.Results, 2)
	assert.Equal(t, "Fun", got.Results[0].Name)
}

func TestPatchCategory_KeepsUnsuppliedFields(t *testing.T) {
	svc, repo := newTestService()
	created, err := svc.CreateCategory(context.Background(), category.CreateCategoryRequest{Name: "Food", Description: strPtr("meals")})
	require.NoError(t, err)

	got, err := svc.PatchCategory(context.Background(), created.ID, category.PatchCategoryRequest{Name: strPtr("Groceries")})
	require.NoError(t, err)

	assert.Equal(t, "Groceries", got.Name)
	assert.Equal(t, "meals", *got.Description)
	assert.Equal(t, 1, repo.commits)
}

func TestUpdateCategory_ClearsDescription(t *testing.T) {
	svc, _ := newTestService()
	created, err := svc.CreateCategory(context.Background(), category.CreateCategoryRequest{Name: "Food", Description: strPtr("meals")})
	require.NoError(t, err)

	got, err := svc.UpdateCategory(context.Background(), created.ID, category.UpdateCategoryRequest{Name: "Food"})
	require.NoError(t, err)
	assert.Nil(t, got.Description)
}

func TestUpdateCategory_Errors(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.CreateCategory(context.Background(), category.CreateCategoryRequest{Name: "Food"})
	require.NoError(t, err)
	second, err := svc.CreateCategory(context.Background(), category.CreateCategoryRequest{Name: "Travel"})
	require.NoError(t, err)

	_, err = svc.UpdateCategory(context.Background(), 99, category.UpdateCategoryRequest{Name: "X"})
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)

	_, err = svc.UpdateCategory(context.Background(), second.ID, category.UpdateCategoryRequest{Name: "Food"})
	assert.ErrorIs(t, err, category.ErrCategoryNameTaken)
}

func TestDeleteCategory(t *testing.T) {
	svc, repo := newTestService()
	created, err := svc.CreateCategory(context.Background(), category.CreateCategoryRequest{Name: "Food"})
	require.NoError(t, err)

	repo.store.inUse[created.ID] = true
	assert.ErrorIs(t, svc.DeleteCategory(context.Background(), created.ID), category.ErrCategoryInUse)

	repo.store.inUse[created.ID] = false
	require.NoError(t, svc.DeleteCategory(context.Background(), created.ID))
	assert.ErrorIs(t, svc.DeleteCategory(context.Background(), created.ID), category.ErrCategoryNotFound)
}
