package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/linkmart/admin-api/internal/adapters/http/dto"
	"github.com/linkmart/admin-api/internal/adapters/http/handlers"
	"github.com/linkmart/admin-api/internal/domain"
)

// --- GetTree ---

func TestGetTree_Success(t *testing.T) {
	t.Parallel()

	root := validCategory()
	child := validCategory()
	child.ID = uuid.MustParse("2d3e4f5a-6b7c-4d8e-9f0a-1b2c3d4e5f6a")
	child.ParentID = &root.ID
	child.Name = "Laptops"
	child.Slug = "laptops"

	svc := &stubCategoryService{
		getTree: func(context.Context) ([]domain.Category, error) {
			return []domain.Category{root, child}, nil
		},
	}
	h := handlers.NewCategoryHandler(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	h.GetTree(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.CategoryListResponse](t, rec)
	if resp.Count != 2 {
		t.Fatalf("Count = %d, want 2", resp.Count)
	}
	if resp.Categories[0].ParentID != nil {
		t.Errorf("root ParentID = %v, want nil", *resp.Categories[0].ParentID)
	}
	if resp.Categories[1].ParentID == nil || *resp.Categories[1].ParentID != root.ID.String() {
		t.Errorf("child ParentID = %v, want %s", resp.Categories[1].ParentID, root.ID)
	}
}

func TestGetTree_ServiceError(t *testing.T) {
	t.Parallel()

	svc := &stubCategoryService{
		getTree: func(context.Context) ([]domain.Category, error) {
			return nil, domain.ErrUnavailable
		},
	}
	h := handlers.NewCategoryHandler(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	h.GetTree(rec, req)

	requireStatus(t, rec, http.StatusBadGateway)
}

// --- CreateCategory ---

func TestCreateCategory_Success(t *testing.T) {
	t.Parallel()

	created := validCategory()
	svc := &stubCategoryService{
		createCategory: func(_ context.Context, category *domain.Category) (*domain.Category, error) {
			if category.Name != "Electronics" {
				t.Errorf("Name = %q", category.Name)
			}
			if category.ParentID != nil {
				t.Errorf("ParentID = %v, want nil", *category.ParentID)
			}
			return &created, nil
		},
	}
	h := handlers.NewCategoryHandler(svc)

	body := jsonBody(t, dto.CreateCategoryRequest{Name: "Electronics", Slug: "electronics", Position: 1})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", body)
	req.Header.Set("Content-Type", "application/json")
	h.CreateCategory(rec, req)

	requireStatus(t, rec, http.StatusCreated)
	resp := decodeJSON[dto.CategoryResponse](t, rec)
	if resp.Slug != "electronics" {
		t.Errorf("Slug = %q", resp.Slug)
	}
}

func TestCreateCategory_WithParent(t *testing.T) {
	t.Parallel()

	created := validCategory()
	svc := &stubCategoryService{
		createCategory: func(_ context.Context, category *domain.Category) (*domain.Category, error) {
			if category.ParentID == nil || *category.ParentID != testCategoryID {
				t.Errorf("ParentID = %v, want %s", category.ParentID, testCategoryID)
			}
			return &created, nil
		},
	}
	h := handlers.NewCategoryHandler(svc)

	parent := testCategoryID.String()
	body := jsonBody(t, dto.CreateCategoryRequest{ParentID: &parent, Name: "Laptops", Slug: "laptops"})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", body)
	req.Header.Set("Content-Type", "application/json")
	h.CreateCategory(rec, req)

	requireStatus(t, rec, http.StatusCreated)
}

func TestCreateCategory_ValidationError(t *testing.T) {
	t.Parallel()

	h := handlers.NewCategoryHandler(&stubCategoryService{})

	body := jsonBody(t, dto.CreateCategoryRequest{Name: "", Slug: ""})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/categories", body)
	req.Header.Set("Content-Type", "application/json")
	h.CreateCategory(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
}

// --- UpdateCategory ---

func TestUpdateCategory_Success(t *testing.T) {
	t.Parallel()

	current := validCategory()
	svc := &stubCategoryService{
		getTree: func(context.Context) ([]domain.Category, error) {
			return []domain.Category{current}, nil
		},
		updateCategory: func(_ context.Context, id uuid.UUID, category *domain.Category) (*domain.Category, error) {
			if category.Name != "Gadgets" {
				t.Errorf("Name = %q, want %q", category.Name, "Gadgets")
			}
			if category.Slug != current.Slug {
				t.Errorf("Slug changed unexpectedly: %q", category.Slug)
			}
			updated := *category
			updated.ID = id
			return &updated, nil
		},
	}
	h := handlers.NewCategoryHandler(svc)

	name := "Gadgets"
	body := jsonBody(t, dto.UpdateCategoryRequest{Name: &name})
	rec := httptest.NewRecorder()
	req := withChiParams(httptest.NewRequest(http.MethodPatch, "/api/v1/categories/"+testCategoryID.String(), body),
		map[string]string{"id": testCategoryID.String()})
	req.Header.Set("Content-Type", "application/json")
	h.UpdateCategory(rec, req)

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.CategoryResponse](t, rec)
	if resp.Name != "Gadgets" {
		t.Errorf("Name = %q", resp.Name)
	}
}

func TestUpdateCategory_MoveToRoot(t *testing.T) {
	t.Parallel()

	parentID := uuid.MustParse("2d3e4f5a-6b7c-4d8e-9f0a-1b2c3d4e5f6a")
	current := validCategory()
	current.ParentID = &parentID
	svc := &stubCategoryService{
		getTree: func(context.Context) ([]domain.Category, error) {
			return []domain.Category{current}, nil
		},
		updateCategory: func(_ context.Context, id uuid.UUID, category *domain.Category) (*domain.Category, error) {
			if category.ParentID != nil {
				t.Errorf("ParentID = %v, want nil", *category.ParentID)
			}
			updated := *category
			updated.ID = id
			return &updated, nil
		},
	}
	h := handlers.NewCategoryHandler(svc)

	// Empty string parent_id detaches the category from its parent.
	empty := ""
	body := jsonBody(t, dto.UpdateCategoryRequest{ParentID: &empty})
	rec := httptest.NewRecorder()
	req := withChiParams(httptest.NewRequest(http.MethodPatch, "/api/v1/categories/"+testCategoryID.String(), body),
		map[string]string{"id": testCategoryID.String()})
	req.Header.Set("Content-Type", "application/json")
	h.UpdateCategory(rec, req)

	requireStatus(t, rec, http.StatusOK)
}

func TestUpdateCategory_NotFound(t *testing.T) {
	t.Parallel()

	svc := &stubCategoryService{
		getTree: func(context.Context) ([]domain.Category, error) {
			return []domain.Category{}, nil
		},
	}
	h := handlers.NewCategoryHandler(svc)

	name := "Gadgets"
	body := jsonBody(t, dto.UpdateCategoryRequest{Name: &name})
	rec := httptest.NewRecorder()
	req := withChiParams(httptest.NewRequest(http.MethodPatch, "/api/v1/categories/"+testCategoryID.String(), body),
		map[string]string{"id": testCategoryID.String()})
	req.Header.Set("Content-Type", "application/json")
	h.UpdateCategory(rec, req)

	requireStatus(t, rec, http.StatusNotFound)
}

// --- DeleteCategory ---

func TestDeleteCategory_Success(t *testing.T) {
	t.Parallel()

	svc := &stubCategoryService{
		deleteCategory: func(_ context.Context, id uuid.UUID) error {
			if id != testCategoryID {
				t.Errorf("id = %s, want %s", id, testCategoryID)
			}
			return nil
		},
	}
	h := handlers.NewCategoryHandler(svc)

	rec := httptest.NewRecorder()
	req := withChiParams(httptest.NewRequest(http.MethodDelete, "/api/v1/categories/"+testCategoryID.String(), nil),
		map[string]string{"id": testCategoryID.String()})
	h.DeleteCategory(rec, req)

	requireStatus(t, rec, http.StatusNoContent)
}

func TestDeleteCategory_ProductsStillAssigned(t *testing.T) {
	t.Parallel()

	svc := &stubCategoryService{
		deleteCategory: func(context.Context, uuid.UUID) error {
			return fmt.Errorf("category has assigned products: %w", domain.ErrConflict)
		},
	}
	h := handlers.NewCategoryHandler(svc)

	rec := httptest.NewRecorder()
	req := withChiParams(httptest.NewRequest(http.MethodDelete, "/api/v1/categories/"+testCategoryID.String(), nil),
		map[string]string{"id": testCategoryID.String()})
	h.DeleteCategory(rec, req)

	requireStatus(t, rec, http.StatusConflict)
}
