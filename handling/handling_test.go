package handling

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/mytheresa/storefront-catalog/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createSize struct {
	Name  string `json:"size_name" validate:"required,max=20"`
	Price string `json:"price"`
}

func TestDecodeBody(t *testing.T) {
	testCases := []struct {
		name        string
		body        string
		expectErr   bool
		expectField string
	}{
		{name: "Valid body", body: `{"size_name":"M","price":"5.00"}`},
		{name: "Missing required field", body: `{"price":"5.00"}`, expectErr: true, expectField: "name"},
		{name: "Too long", body: `{"size_name":"` + strings.Repeat("x", 21) + `"}`, expectErr: true, expectField: "name"},
		{name: "Unknown field", body: `{"size_name":"M","color":"red"}`, expectErr: true},
		{name: "Malformed JSON", body: `{"size_name":`, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))

			body, err := DecodeBody[createSize](req)

			if !tc.expectErr {
				require.NoError(t, err)
				assert.Equal(t, "M", body.Name)
				return
			}
			assert.Error(t, err)
			if tc.expectField != "" {
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tc.expectField, ve.Errors[0].Field)
			}
		})
	}
}

type renameEntry struct {
	Slug *string `json:"slug" validate:"omitempty,max=120,slug"`
}

func TestDecodeBodySlug(t *testing.T) {
	testCases := []struct {
		name      string
		body      string
		expectErr bool
	}{
		{name: "Absent", body: `{}`},
		{name: "Lower case with hyphen", body: `{"slug":"mens-wear-1"}`},
		{name: "Underscore and capitals", body: `{"slug":"Mens_Wear"}`},
		{name: "Slash", body: `{"slug":"big/sale"}`, expectErr: true},
		{name: "Space and percent", body: `{"slug":"Big Sale 50% off"}`, expectErr: true},
		{name: "Empty", body: `{"slug":""}`, expectErr: true},
		{name: "Accented", body: `{"slug":"café"}`, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))

			_, err := DecodeBody[renameEntry](req)

			if !tc.expectErr {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, "slug", ve.Errors[0].Field)
		})
	}
}

func TestActingUser(t *testing.T) {
	id := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(UserHeader, id.String())
	got, err := ActingUser(req)
	assert.NoError(t, err)
	assert.Equal(t, id, got)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	_, err = ActingUser(req)
	assert.ErrorIs(t, err, ErrMissingUser)

	req.Header.Set(UserHeader, "not-a-uuid")
	_, err = ActingUser(req)
	assert.ErrorIs(t, err, ErrMissingUser)
}

func TestParsePagination(t *testing.T) {
	testCases := []struct {
		query          string
		expectedOffset int
		expectedLimit  int
	}{
		{"", 0, DefaultLimit},
		{"?offset=20&limit=5", 20, 5},
		{"?offset=-1&limit=0", 0, 1},
		{"?limit=1000", 0, MaxLimit},
		{"?offset=abc&limit=xyz", 0, DefaultLimit},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/products"+tc.query, nil)
			offset, limit := ParsePagination(req)
			assert.Equal(t, tc.expectedOffset, offset)
			assert.Equal(t, tc.expectedLimit, limit)
		})
	}
}

func TestParseBool(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?newest=true&bad=maybe", nil)

	val, err := ParseBool(req, "newest")
	require.NoError(t, err)
	require.NotNil(t, val)
	assert.True(t, *val)

	val, err = ParseBool(req, "missing")
	assert.NoError(t, err)
	assert.Nil(t, val)

	_, err = ParseBool(req, "bad")
	assert.Error(t, err)
}

func TestHandleError(t *testing.T) {
	testCases := []struct {
		name               string
		err                error
		expectedStatusCode int
	}{
		{"Not found", models.ErrProductNotFound, http.StatusNotFound},
		{"Wrapped not found", fmt.Errorf("%w: %q", models.ErrSizeNotFound, "XL"), http.StatusNotFound},
		{"Constraint", &models.ConstraintError{Constraint: models.WishlistIndex, Code: "23505"}, http.StatusConflict},
		{"Invalid name", models.ErrInvalidName, http.StatusBadRequest},
		{"Invalid rating", models.ErrInvalidRating, http.StatusBadRequest},
		{"Cyclic parent", models.ErrCyclicParent, http.StatusBadRequest},
		{"Invalid id", ErrInvalidID, http.StatusBadRequest},
		{"Missing user", ErrMissingUser, http.StatusUnauthorized},
		{"Unexpected", errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			HandleError(tc.err, "failed", gecho.NewDefaultLogger(), rec)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
		})
	}
}

func TestInvalidBody(t *testing.T) {
	rec := httptest.NewRecorder()
	err := &ValidationError{Errors: []FieldError{{Field: "name", Message: "is required"}}}

	InvalidBody(err, gecho.NewDefaultLogger(), rec)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "is required")
}
