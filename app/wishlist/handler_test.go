package wishlist

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mytheresa/storefront-catalog/handling"
	"github.com/mytheresa/storefront-catalog/models"
	"github.com/stretchr/testify/assert"
)

// --- Mock Repository ---

type MockWishlistRepo struct {
	Items     []models.Wishlist
	ListErr   error
	AddErr    error
	RemoveErr error
	UpdateErr error

	LastUser    uuid.UUID
	LastAdded   *models.Wishlist
	LastRemoved uuid.UUID
	LastUpdated *models.Wishlist
	LastDeleted uuid.UUID
	LastOffset  int
	LastLimit   int
}

func (m *MockWishlistRepo) GetForUser(ctx context.Context, userID uuid.UUID) ([]models.Wishlist, error) {
	m.LastUser = userID
	return m.Items, m.ListErr
}

func (m *MockWishlistRepo) AddItem(ctx context.Context, item *models.Wishlist) error {
	m.LastAdded = item
	return m.AddErr
}

func (m *MockWishlistRepo) RemoveItem(ctx context.Context, userID, id uuid.UUID) error {
	m.LastUser = userID
	m.LastRemoved = id
	return m.RemoveErr
}

func (m *MockWishlistRepo) GetAll(ctx context.Context, offset, limit int) ([]models.Wishlist, int64, error) {
	m.LastOffset, m.LastLimit = offset, limit
	if m.ListErr != nil {
		return nil, 0, m.ListErr
	}
	return m.Items, int64(len(m.Items)), nil
}

func (m *MockWishlistRepo) GetItem(ctx context.Context, id uuid.UUID) (*models.Wishlist, error) {
	for _, item := range m.Items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, models.ErrWishlistNotFound
}

func (m *MockWishlistRepo) UpdateItem(ctx context.Context, item *models.Wishlist) error {
	m.LastUpdated = item
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	for i := range m.Items {
		if m.Items[i].ID == item.ID {
			m.Items[i].SizeVariantID = item.SizeVariantID
			m.Items[i].SizeVariant = nil
			return nil
		}
	}
	return models.ErrWishlistNotFound
}

func (m *MockWishlistRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	m.LastDeleted = id
	for i, item := range m.Items {
		if item.ID == id {
			m.Items = append(m.Items[:i], m.Items[i+1:]...)
			return nil
		}
	}
	return models.ErrWishlistNotFound
}

func newRouter(repo WishlistProvider) http.Handler {
	r := chi.NewRouter()
	NewWishlistHandler(repo, gecho.NewDefaultLogger()).RegisterRoutes(r)
	return r
}

func TestHandleWishlist(t *testing.T) {
	user := uuid.New()
	productID := uuid.New()
	sizeID := uuid.New()
	entryID := uuid.New()

	testCases := []struct {
		name               string
		method             string
		url                string
		user               string
		requestBody        string
		mockRepoSetup      func() *MockWishlistRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCall      func(t *testing.T, repo *MockWishlistRepo)
	}{
		{
			name:   "List for acting user",
			method: http.MethodGet,
			url:    "/admin/wishlist",
			user:   user.String(),
			mockRepoSetup: func() *MockWishlistRepo {
				return &MockWishlistRepo{Items: []models.Wishlist{{
					User:    &models.User{Username: "ada"},
					Product: &models.Product{Name: "Beanie"},
				}}}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), "ada - Beanie - No Size")
			},
			checkRepoCall: func(t *testing.T, repo *MockWishlistRepo) {
				assert.Equal(t, user, repo.LastUser)
			},
		},
		{
			name:   "List without user",
			method: http.MethodGet,
			url:    "/admin/wishlist",
			mockRepoSetup: func() *MockWishlistRepo {
				return &MockWishlistRepo{}
			},
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:   "List error",
			method: http.MethodGet,
			url:    "/admin/wishlist",
			user:   user.String(),
			mockRepoSetup: func() *MockWishlistRepo {
				return &MockWishlistRepo{ListErr: errors.New("db down")}
			},
			expectedStatusCode: http.StatusInternalServerError,
		},
		{
			name:        "Add with size",
			method:      http.MethodPost,
			url:         "/admin/wishlist",
			user:        user.String(),
			requestBody: `{"product_id":"` + productID.String() + `","size_variant_id":"` + sizeID.String() + `"}`,
			mockRepoSetup: func() *MockWishlistRepo {
				return &MockWishlistRepo{}
			},
			expectedStatusCode: http.StatusOK,
			checkRepoCall: func(t *testing.T, repo *MockWishlistRepo) {
				if assert.NotNil(t, repo.LastAdded) {
					assert.Equal(t, user, repo.LastAdded.UserID)
					assert.Equal(t, productID, repo.LastAdded.ProductID)
					assert.Equal(t, sizeID, *repo.LastAdded.SizeVariantID)
				}
			},
		},
		{
			name:        "Add without product",
			method:      http.MethodPost,
			url:         "/admin/wishlist",
			user:        user.String(),
			requestBody: `{}`,
			mockRepoSetup: func() *MockWishlistRepo {
				return &MockWishlistRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkRepoCall: func(t *testing.T, repo *MockWishlistRepo) {
				assert.Nil(t, repo.LastAdded)
			},
		},
		{
			name:        "Add duplicate",
			method:      http.MethodPost,
			url:         "/admin/wishlist",
			user:        user.String(),
			requestBody: `{"product_id":"` + productID.String() + `"}`,
			mockRepoSetup: func() *MockWishlistRepo {
				return &MockWishlistRepo{AddErr: &models.ConstraintError{Constraint: models.WishlistIndex, Code: "23505"}}
			},
			expectedStatusCode: http.StatusConflict,
		},
		{
			name:   "Remove own entry",
			method: http.MethodDelete,
			url:    "/admin/wishlist/" + entryID.String(),
			user:   user.String(),
			mockRepoSetup: func() *MockWishlistRepo {
				return &MockWishlistRepo{}
			},
			expectedStatusCode: http.StatusOK,
			checkRepoCall: func(t *testing.T, repo *MockWishlistRepo) {
				assert.Equal(t, user, repo.LastUser)
				assert.Equal(t, entryID, repo.LastRemoved)
			},
		},
		{
			name:   "Remove entry of someone else",
			method: http.MethodDelete,
			url:    "/admin/wishlist/" + entryID.String(),
			user:   user.String(),
			mockRepoSetup: func() *MockWishlistRepo {
				return &MockWishlistRepo{RemoveErr: models.ErrWishlistNotFound}
			},
			expectedStatusCode: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			router := newRouter(mockRepo)
			req := httptest.NewRequest(tc.method, tc.url, strings.NewReader(tc.requestBody))
			if tc.user != "" {
				req.Header.Set(handling.UserHeader, tc.user)
			}
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

func TestHandleAllWishlists(t *testing.T) {
	entryID := uuid.New()
	sizeID := uuid.New()
	seeded := func() *MockWishlistRepo {
		return &MockWishlistRepo{Items: []models.Wishlist{
			{
				BaseModel:     models.BaseModel{ID: entryID},
				User:          &models.User{Username: "ada"},
				Product:       &models.Product{Name: "Beanie"},
				SizeVariantID: &sizeID,
				SizeVariant:   &models.SizeVariant{Name: "M"},
			},
			{
				BaseModel: models.BaseModel{ID: uuid.New()},
				User:      &models.User{Username: "grace"},
				Product:   &models.Product{Name: "Scarf"},
			},
		}}
	}

	testCases := []struct {
		name               string
		method             string
		url                string
		requestBody        string
		mockRepoSetup      func() *MockWishlistRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCall      func(t *testing.T, repo *MockWishlistRepo)
	}{
		{
			name:               "List across users",
			method:             http.MethodGet,
			url:                "/admin/wishlists?offset=0&limit=5",
			mockRepoSetup:      seeded,
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				body := rec.Body.String()
				assert.Regexp(t, `"total":\s*2\b`, body)
				assert.Contains(t, body, "ada - Beanie - M")
				assert.Contains(t, body, "grace - Scarf - No Size")
				assert.Contains(t, body, `"added_on"`)
			},
			checkRepoCall: func(t *testing.T, repo *MockWishlistRepo) {
				assert.Equal(t, 0, repo.LastOffset)
				assert.Equal(t, 5, repo.LastLimit)
			},
		},
		{
			name:   "List error",
			method: http.MethodGet,
			url:    "/admin/wishlists",
			mockRepoSetup: func() *MockWishlistRepo {
				return &MockWishlistRepo{ListErr: errors.New("db down")}
			},
			expectedStatusCode: http.StatusInternalServerError,
		},
		{
			name:               "Get entry",
			method:             http.MethodGet,
			url:                "/admin/wishlists/" + entryID.String(),
			mockRepoSetup:      seeded,
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), "ada - Beanie - M")
			},
		},
		{
			name:               "Get unknown entry",
			method:             http.MethodGet,
			url:                "/admin/wishlists/" + uuid.NewString(),
			mockRepoSetup:      seeded,
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:               "Clear size",
			method:             http.MethodPut,
			url:                "/admin/wishlists/" + entryID.String(),
			requestBody:        `{"size_variant_id":null}`,
			mockRepoSetup:      seeded,
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Contains(t, rec.Body.String(), "ada - Beanie - No Size")
			},
			checkRepoCall: func(t *testing.T, repo *MockWishlistRepo) {
				if assert.NotNil(t, repo.LastUpdated) {
					assert.Equal(t, entryID, repo.LastUpdated.ID)
					assert.Nil(t, repo.LastUpdated.SizeVariantID)
				}
			},
		},
		{
			name:        "Size already saved for that product",
			method:      http.MethodPut,
			url:         "/admin/wishlists/" + entryID.String(),
			requestBody: `{"size_variant_id":"` + uuid.NewString() + `"}`,
			mockRepoSetup: func() *MockWishlistRepo {
				repo := seeded()
				repo.UpdateErr = &models.ConstraintError{Constraint: models.WishlistIndex, Code: "23505"}
				return repo
			},
			expectedStatusCode: http.StatusConflict,
		},
		{
			name:               "Update unknown entry",
			method:             http.MethodPut,
			url:                "/admin/wishlists/" + uuid.NewString(),
			requestBody:        `{}`,
			mockRepoSetup:      seeded,
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:               "Delete any user's entry",
			method:             http.MethodDelete,
			url:                "/admin/wishlists/" + entryID.String(),
			mockRepoSetup:      seeded,
			expectedStatusCode: http.StatusOK,
			checkRepoCall: func(t *testing.T, repo *MockWishlistRepo) {
				assert.Equal(t, entryID, repo.LastDeleted)
				assert.Len(t, repo.Items, 1)
			},
		},
		{
			name:               "Delete with malformed id",
			method:             http.MethodDelete,
			url:                "/admin/wishlists/abc",
			mockRepoSetup:      seeded,
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			router := newRouter(mockRepo)
			req := httptest.NewRequest(tc.method, tc.url, strings.NewReader(tc.requestBody))
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
