package categories

import (
	"context"
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mytheresa/storefront-catalog/handling"
	"github.com/mytheresa/storefront-catalog/models"
	"github.com/mytheresa/storefront-catalog/slug"
)

type CategoryResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug"`
	Image string    `json:"image,omitempty"`
}

type CategoryRequest struct {
	Name  string  `json:"name" validate:"required,max=100"`
	Slug  *string `json:"slug" validate:"omitempty,max=120,slug"`
	Image string  `json:"image" validate:"max=255"`
}

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}

type CategoryHandler struct {
	repo   CategoryProvider
	logger *gecho.Logger
}

func NewCategoryHandler(r CategoryProvider, logger *gecho.Logger) *CategoryHandler {
	return &CategoryHandler{repo: r, logger: logger}
}

func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/admin/slug", h.HandleSlugPreview)

	r.Route("/admin/categories", func(r chi.Router) {
		r.Get("/", h.HandleGetAll)
		r.Post("/", h.HandleCreate)
		r.Get("/{slug}", h.HandleGet)
		r.Put("/{slug}", h.HandleUpdate)
		r.Delete("/{slug}", h.HandleDelete)
	})
}

func toResponse(c models.Category) CategoryResponse {
	resp := CategoryResponse{ID: c.ID, Name: c.Name, Image: c.Image}
	if c.Slug != nil {
		resp.Slug = *c.Slug
	}
	return resp
}

// HandleSlugPreview returns the slug a new entry named ?name= would start from.
func (h *CategoryHandler) HandleSlugPreview(w http.ResponseWriter, r *http.Request) {
	base, err := slug.Slugify(r.URL.Query().Get("name"))
	if err != nil {
		if errors.Is(err, slug.ErrInvalidName) {
			gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
			return
		}
		handling.HandleError(err, "failed to build slug", h.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(map[string]string{"slug": base}), gecho.Send())
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories(r.Context())
	if err != nil {
		handling.HandleError(err, "failed to fetch categories", h.logger, w)
		return
	}

	response := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		response[i] = toResponse(c)
	}

	gecho.Success(w, gecho.WithData(response), gecho.Send())
}

func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	category, err := h.repo.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handling.HandleError(err, "failed to fetch category", h.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(toResponse(*category)), gecho.Send())
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	input, err := handling.DecodeBody[CategoryRequest](r)
	if err != nil {
		handling.InvalidBody(err, h.logger, w)
		return
	}

	category := &models.Category{
		Name:  input.Name,
		Slug:  input.Slug,
		Image: input.Image,
	}

	if err := h.repo.CreateCategory(r.Context(), category); err != nil {
		handling.HandleError(err, "failed to create category", h.logger, w)
		return
	}

	resp := toResponse(*category)
	h.logger.Info("Category created", gecho.Field("id", category.ID), gecho.Field("slug", resp.Slug))
	gecho.Success(w,
		gecho.WithMessage("Category created successfully"),
		gecho.WithData(resp),
		gecho.Send(),
	)
}

// HandleUpdate renames a category. The slug in the URL stays valid.
func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	input, err := handling.DecodeBody[CategoryRequest](r)
	if err != nil {
		handling.InvalidBody(err, h.logger, w)
		return
	}

	category, err := h.repo.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handling.HandleError(err, "failed to fetch category", h.logger, w)
		return
	}

	category.Name = input.Name
	category.Image = input.Image

	if err := h.repo.UpdateCategory(r.Context(), category); err != nil {
		handling.HandleError(err, "failed to update category", h.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Category updated successfully"),
		gecho.WithData(toResponse(*category)),
		gecho.Send(),
	)
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	category, err := h.repo.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handling.HandleError(err, "failed to fetch category", h.logger, w)
		return
	}

	if err := h.repo.DeleteCategory(r.Context(), category.ID); err != nil {
		handling.HandleError(err, "failed to delete category", h.logger, w)
		return
	}

	h.logger.Info("Category deleted", gecho.Field("id", category.ID))
	gecho.Success(w, gecho.WithMessage("Category deleted successfully"), gecho.Send())
}
