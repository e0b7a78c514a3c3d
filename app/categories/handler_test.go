package categories

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mytheresa/storefront-catalog/models"
	"github.com/stretchr/testify/assert"
)

// --- Mock Repository ---

type MockCategoryRepo struct {
	Categories  []models.Category
	CreateErr   error
	UpdateErr   error
	DeleteErr   error
	ListErr     error
	LastSaved   *models.Category
	LastUpdated *models.Category
	LastDeleted uuid.UUID
}

func (m *MockCategoryRepo) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Categories, nil
}

func (m *MockCategoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	for _, c := range m.Categories {
		if c.Slug != nil && *c.Slug == slug {
			found := c
			return &found, nil
		}
	}
	return nil, models.ErrCategoryNotFound
}

func (m *MockCategoryRepo) CreateCategory(ctx context.Context, cat *models.Category) error {
	m.LastSaved = cat
	if m.CreateErr != nil {
		return m.CreateErr
	}
	if cat.Slug == nil {
		generated := strings.ToLower(strings.ReplaceAll(cat.Name, " ", "-"))
		cat.Slug = &generated
	}
	return nil
}

func (m *MockCategoryRepo) UpdateCategory(ctx context.Context, cat *models.Category) error {
	m.LastUpdated = cat
	return m.UpdateErr
}

func (m *MockCategoryRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	m.LastDeleted = id
	return m.DeleteErr
}

func strPtr(s string) *string { return &s }

func newRouter(repo CategoryProvider) http.Handler {
	r := chi.NewRouter()
	NewCategoryHandler(repo, gecho.NewDefaultLogger()).RegisterRoutes(r)
	return r
}

func seeded() *MockCategoryRepo {
	return &MockCategoryRepo{
		Categories: []models.Category{
			{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Clothing", Slug: strPtr("clothing")},
			{BaseModel: models.BaseModel{ID: uuid.New()}, Name: "Men's Wear", Slug: strPtr("mens-wear")},
		},
	}
}

// --- Tests: GET /admin/categories ---

func TestHandleGetAll(t *testing.T) {
	testCases := []struct {
		name               string
		mockRepoSetup      func() *MockCategoryRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:               "Success with multiple categories",
			mockRepoSetup:      seeded,
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				body := rec.Body.String()
				assert.Contains(t, body, `"clothing"`)
				assert.Contains(t, body, `"mens-wear"`)
			},
		},
		{
			name: "Success with empty list",
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{Categories: []models.Category{}}
			},
			expectedStatusCode: http.StatusOK,
		},
		{
			name: "Repository error",
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{ListErr: errors.New("db down")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), "failed to fetch categories")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			router := newRouter(tc.mockRepoSetup())
			req := httptest.NewRequest(http.MethodGet, "/admin/categories", nil)
			rec := httptest.NewRecorder()

			// Act
			router.ServeHTTP(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

// --- Tests: POST /admin/categories ---

func TestHandleCreate(t *testing.T) {
	testCases := []struct {
		name               string
		requestBody        string
		mockRepoSetup      func() *MockCategoryRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCall      func(t *testing.T, repo *MockCategoryRepo)
	}{
		{
			name:        "Success",
			requestBody: `{"name":"Accessories"}`,
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), "Category created successfully")
				assert.Contains(t, rec.Body.String(), `"accessories"`)
			},
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.NotNil(t, repo.LastSaved)
				assert.Equal(t, "Accessories", repo.LastSaved.Name)
			},
		},
		{
			name:        "Supplied slug is passed through",
			requestBody: `{"name":"Sale","slug":"summer-sale"}`,
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{}
			},
			expectedStatusCode: http.StatusOK,
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.Equal(t, "summer-sale", *repo.LastSaved.Slug)
			},
		},
		{
			name:        "Supplied slug with path characters",
			requestBody: `{"name":"Sale","slug":"Big Sale/50% off"}`,
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), "hyphens and underscores")
			},
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.Nil(t, repo.LastSaved, "CreateCategory should not be called with an invalid slug")
			},
		},
		{
			name:        "Invalid JSON body",
			requestBody: `{invalid json`,
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.Nil(t, repo.LastSaved, "CreateCategory should not be called with invalid JSON")
			},
		},
		{
			name:        "Missing required fields (name)",
			requestBody: `{"image":"category/a.png"}`,
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), "is required")
			},
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.Nil(t, repo.LastSaved, "CreateCategory should not be called with missing fields")
			},
		},
		{
			name:        "Name without slug characters",
			requestBody: `{"name":"!!!"}`,
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{CreateErr: models.ErrInvalidName}
			},
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:        "Slug already taken",
			requestBody: `{"name":"Sale","slug":"sale"}`,
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{CreateErr: &models.ConstraintError{Constraint: models.CategorySlugIndex, Code: "23505"}}
			},
			expectedStatusCode: http.StatusConflict,
		},
		{
			name:        "Repository error on create",
			requestBody: `{"name":"Toys"}`,
			mockRepoSetup: func() *MockCategoryRepo {
				return &MockCategoryRepo{CreateErr: errors.New("insert failed")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), "failed to create category")
			},
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.NotNil(t, repo.LastSaved, "CreateCategory should have been called")
				assert.Equal(t, "Toys", repo.LastSaved.Name)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			router := newRouter(mockRepo)
			req := httptest.NewRequest(http.MethodPost, "/admin/categories", strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			// Act
			router.ServeHTTP(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)

			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}

			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, mockRepo)
			}
		})
	}
}

// --- Tests: /admin/categories/{slug} ---

func TestHandleBySlug(t *testing.T) {
	testCases := []struct {
		name               string
		method             string
		path               string
		requestBody        string
		mockRepoSetup      func() *MockCategoryRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCall      func(t *testing.T, repo *MockCategoryRepo)
	}{
		{
			name:               "Get existing",
			method:             http.MethodGet,
			path:               "/admin/categories/mens-wear",
			mockRepoSetup:      seeded,
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), "Men's Wear")
			},
		},
		{
			name:               "Get unknown",
			method:             http.MethodGet,
			path:               "/admin/categories/unknown",
			mockRepoSetup:      seeded,
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:               "Rename keeps slug",
			method:             http.MethodPut,
			path:               "/admin/categories/clothing",
			requestBody:        `{"name":"Apparel"}`,
			mockRepoSetup:      seeded,
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), `"clothing"`)
			},
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.Equal(t, "Apparel", repo.LastUpdated.Name)
				assert.Equal(t, "clothing", *repo.LastUpdated.Slug)
			},
		},
		{
			name:        "Update error",
			method:      http.MethodPut,
			path:        "/admin/categories/clothing",
			requestBody: `{"name":"Apparel"}`,
			mockRepoSetup: func() *MockCategoryRepo {
				repo := seeded()
				repo.UpdateErr = errors.New("update failed")
				return repo
			},
			expectedStatusCode: http.StatusInternalServerError,
		},
		{
			name:               "Delete existing",
			method:             http.MethodDelete,
			path:               "/admin/categories/clothing",
			mockRepoSetup:      seeded,
			expectedStatusCode: http.StatusOK,
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.Equal(t, repo.Categories[0].ID, repo.LastDeleted)
			},
		},
		{
			name:               "Delete unknown",
			method:             http.MethodDelete,
			path:               "/admin/categories/unknown",
			mockRepoSetup:      seeded,
			expectedStatusCode: http.StatusNotFound,
			checkRepoCall: func(t *testing.T, repo *MockCategoryRepo) {
				assert.Equal(t, uuid.Nil, repo.LastDeleted)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			router := newRouter(mockRepo)
			req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.requestBody))
			rec := httptest.NewRecorder()

			// Act
			router.ServeHTTP(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, mockRepo)
			}
		})
	}
}

func TestHandleSlugPreview(t *testing.T) {
	router := newRouter(&MockCategoryRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/slug?name=Men%27s+Wear", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"mens-wear"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/slug?name=%21%21", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCreateLogsSlugValue(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := gecho.NewLogger(gecho.NewConfig(
		gecho.WithOutput(&buf),
		gecho.WithLogFormat(gecho.LogFormatText),
		gecho.WithColorize(false),
	))
	r := chi.NewRouter()
	NewCategoryHandler(&MockCategoryRepo{}, logger).RegisterRoutes(r)
	req := httptest.NewRequest(http.MethodPost, "/admin/categories", strings.NewReader(`{"name":"Sale","slug":"summer-sale"}`))
	rec := httptest.NewRecorder()

	// Act
	r.ServeHTTP(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), "slug=summer-sale")
	assert.NotContains(t, buf.String(), "slug=0x")
}
