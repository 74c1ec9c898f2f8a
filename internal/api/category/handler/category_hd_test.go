package categoryHandler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"ExpenseTracker/internal/api/category"
	validatorPkg "ExpenseTracker/pkg/validator"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type passThroughMiddleware struct{}

func (passThroughMiddleware) NewRateLimiter(ctx *fiber.Ctx) error     { return ctx.Next() }
func (passThroughMiddleware) NewTokenMiddleware(ctx *fiber.Ctx) error { return ctx.Next() }
func (passThroughMiddleware) GetRequestID(*fiber.Ctx) string          { return "test-request" }
func (passThroughMiddleware) NewRequestIDMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error { return ctx.Next() }
}

type fakeCategoryService struct {
	lastID    int64
	lastQuery category.ListCategoriesQuery
	err       error
}

func (s *fakeCategoryService) CreateCategory(_ context.Context, req category.CreateCategoryRequest) (category.CategoryResponse, error) {
	if s.err != nil {
		return category.CategoryResponse{}, s.err
	}
	return category.CategoryResponse{ID: 1, Name: req.Name, Description: req.Description}, nil
}

func (s *fakeCategoryService) GetCategory(_ context.Context, id int64) (category.CategoryResponse, error) {
	s.lastID = id
	if s.err != nil {
		return category.CategoryResponse{}, s.err
	}
	return category.CategoryResponse{ID: id, Name: "Food"}, nil
}

func (s *fakeCategoryService) ListCategories(_ context.Context, query category.ListCategoriesQuery) (*category.CategoryListResponse, error) {
	s.lastQuery = query
	res := category.NewCategoryListResponse([]category.CategoryResponse{{ID: 1, Name: "Food"}}, 1, query.Pagination())
	return &res, s.err
}

func (s *fakeCategoryService) UpdateCategory(_ context.Context, id int64, req category.UpdateCategoryRequest) (category.CategoryResponse, error) {
	s.lastID = id
	if s.err != nil {
		return category.CategoryResponse{}, s.err
	}
	return category.CategoryResponse{ID: id, Name: req.Name}, nil
}

func (s *fakeCategoryService) PatchCategory(_ context.Context, id int64, _ category.PatchCategoryRequest) (category.CategoryResponse, error) {
	s.lastID = id
	if s.err != nil {
		return category.CategoryResponse{}, s.err
	}
	return category.CategoryResponse{ID: id}, nil
}

func (s *fakeCategoryService) DeleteCategory(_ context.Context, id int64) error {
	s.lastID = id
	return s.err
}

func newTestApp(svc *fakeCategoryService) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := fiber.New()
	New(logger, validatorPkg.New(), passThroughMiddleware{}, svc).Start(app.Group("/api/v1"))
	return app
}

func call(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, jsoniter.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestCreateCategoryHandler(t *testing.T) {
	app := newTestApp(&fakeCategoryService{})

	status, body := call(t, app, fiber.MethodPost, "/api/v1/categories", `{"name":"Food","description":"Meals"}`)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "Food", body["name"])
	assert.Equal(t, "Meals", body["description"])

	status, body = call(t, app, fiber.MethodPost, "/api/v1/categories", `{"name":""}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])

	status, _ = call(t, app, fiber.MethodPost, "/api/v1/categories", `{"name":"`+strings.Repeat("x", 101)+`"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCreateCategoryConflict(t *testing.T) {
	app := newTestApp(&fakeCategoryService{err: category.ErrCategoryNameTaken})

	status, body := call(t, app, fiber.MethodPost, "/api/v1/categories", `{"name":"Food"}`)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "category with this name already exists", body["error"])
}

func TestListCategoriesHandler(t *testing.T) {
	svc := &fakeCategoryService{}
	app := newTestApp(svc)

	status, body := call(t, app, fiber.MethodGet, "/api/v1/categories?search=fo&ordering=-name", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "fo", svc.lastQuery.Search)
	assert.Equal(t, category.OrderNameDesc, svc.lastQuery.OrderingOrDefault())
	assert.Equal(t, float64(1), body["count"])

	status, _ = call(t, app, fiber.MethodGet, "/api/v1/categories?ordering=amount", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestCategoryIDParsing(t *testing.T) {
	svc := &fakeCategoryService{}
	app := newTestApp(svc)

	status, body := call(t, app, fiber.MethodGet, "/api/v1/categories/42", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, int64(42), svc.lastID)
	assert.Equal(t, float64(42), body["id"])

	status, body = call(t, app, fiber.MethodGet, "/api/v1/categories/abc", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Category not found", body["error"])
}

func TestDeleteCategoryHandler(t *testing.T) {
	svc := &fakeCategoryService{}
	app := newTestApp(svc)

	status, _ := call(t, app, fiber.MethodDelete, "/api/v1/categories/3", "")
	assert.Equal(t, fiber.StatusNoContent, status)
	assert.Equal(t, int64(3), svc.lastID)

	svc.err = category.ErrCategoryInUse
	status, body := call(t, app, fiber.MethodDelete, "/api/v1/categories/3", "")
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "category is referenced by expenses and cannot be deleted", body["error"])
}

func TestUpdateAndPatchCategoryHandler(t *testing.T) {
	svc := &fakeCategoryService{}
	app := newTestApp(svc)

	status, body := call(t, app, fiber.MethodPut, "/api/v1/categories/5", `{"name":"Groceries"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Groceries", body["name"])

	status, _ = call(t, app, fiber.MethodPatch, "/api/v1/categories/5", `{"description":"weekly"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, int64(5), svc.lastID)
}

func TestMalformedCategoryBody(t *testing.T) {
	app := newTestApp(&fakeCategoryService{})

	status, body := call(t, app, fiber.MethodPost, "/api/v1/categories", `{"name":42}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])

	status, _ = call(t, app, fiber.MethodPatch, "/api/v1/categories/5", `{"name":`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
