package variants

import (
	"context"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mytheresa/storefront-catalog/handling"
	"github.com/mytheresa/storefront-catalog/models"
	"github.com/shopspring/decimal"
)

type SizeResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"size_name"`
	Price   string    `json:"price"`
	Display string    `json:"display"`
}

type ColorResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"color_name"`
	Price int64     `json:"price"`
}

type SizeRequest struct {
	ProductID *uuid.UUID      `json:"product_id"`
	Name      string          `json:"size_name" validate:"required,max=20"`
	Price     decimal.Decimal `json:"price"`
}

type ColorRequest struct {
	Name  string `json:"color_name" validate:"required,max=100"`
	Price int64  `json:"price" validate:"gte=0"`
}

type VariantProvider interface {
	GetAllSizes(ctx context.Context) ([]models.SizeVariant, error)
	GetSize(ctx context.Context, id uuid.UUID) (*models.SizeVariant, error)
	CreateSize(ctx context.Context, size *models.SizeVariant) error
	UpdateSize(ctx context.Context, size *models.SizeVariant) error
	DeleteSize(ctx context.Context, id uuid.UUID) error
	GetAllColors(ctx context.Context) ([]models.ColorVariant, error)
	GetColor(ctx context.Context, id uuid.UUID) (*models.ColorVariant, error)
	CreateColor(ctx context.Context, color *models.ColorVariant) error
	UpdateColor(ctx context.Context, color *models.ColorVariant) error
	DeleteColor(ctx context.Context, id uuid.UUID) error
}

type VariantHandler struct {
	repo   VariantProvider
	logger *gecho.Logger
}

func NewVariantHandler(r VariantProvider, logger *gecho.Logger) *VariantHandler {
	return &VariantHandler{repo: r, logger: logger}
}

func (h *VariantHandler) RegisterRoutes(r chi.Router) {
	r.Route("/admin/sizes", func(r chi.Router) {
		r.Get("/", h.HandleGetSizes)
		r.Post("/", h.HandleCreateSize)
		r.Get("/{id}", h.HandleGetSize)
		r.Put("/{id}", h.HandleUpdateSize)
		r.Delete("/{id}", h.HandleDeleteSize)
	})
	r.Route("/admin/colors", func(r chi.Router) {
		r.Get("/", h.HandleGetColors)
		r.Post("/", h.HandleCreateColor)
		r.Get("/{id}", h.HandleGetColor)
		r.Put("/{id}", h.HandleUpdateColor)
		r.Delete("/{id}", h.HandleDeleteColor)
	})
}

func toSize(s models.SizeVariant) SizeResponse {
	return SizeResponse{
		ID:      s.ID,
		Name:    s.Name,
		Price:   s.Price.StringFixed(2),
		Display: s.String(),
	}
}

func toColor(c models.ColorVariant) ColorResponse {
	return ColorResponse{ID: c.ID, Name: c.Name, Price: c.Price}
}

func (h *VariantHandler) HandleGetSizes(w http.ResponseWriter, r *http.Request) {
	sizes, err := h.repo.GetAllSizes(r.Context())
	if err != nil {
		handling.HandleError(err, "failed to fetch sizes", h.logger, w)
		return
	}

	response := make([]SizeResponse, len(sizes))
	for i, s := range sizes {
		response[i] = toSize(s)
	}

	gecho.Success(w, gecho.WithData(response), gecho.Send())
}

func (h *VariantHandler) HandleGetSize(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(err, "invalid size id", h.logger, w)
		return
	}

	size, err := h.repo.GetSize(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "failed to fetch size", h.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(toSize(*size)), gecho.Send())
}

func (h *VariantHandler) HandleCreateSize(w http.ResponseWriter, r *http.Request) {
	input, err := handling.DecodeBody[SizeRequest](r)
	if err != nil {
		handling.InvalidBody(err, h.logger, w)
		return
	}
	if input.Price.IsNegative() {
		gecho.BadRequest(w, gecho.WithMessage("price must not be negative"), gecho.Send())
		return
	}

	size := &models.SizeVariant{
		ProductID: input.ProductID,
		Name:      input.Name,
		Price:     input.Price,
	}

	if err := h.repo.CreateSize(r.Context(), size); err != nil {
		handling.HandleError(err, "failed to create size", h.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Size created successfully"),
		gecho.WithData(toSize(*size)),
		gecho.Send(),
	)
}

func (h *VariantHandler) HandleUpdateSize(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(err, "invalid size id", h.logger, w)
		return
	}

	input, err := handling.DecodeBody[SizeRequest](r)
	if err != nil {
		handling.InvalidBody(err, h.logger, w)
		return
	}
	if input.Price.IsNegative() {
		gecho.BadRequest(w, gecho.WithMessage("price must not be negative"), gecho.Send())
		return
	}

	size := &models.SizeVariant{
		BaseModel: models.BaseModel{ID: id},
		ProductID: input.ProductID,
		Name:      input.Name,
		Price:     input.Price,
	}

	if err := h.repo.UpdateSize(r.Context(), size); err != nil {
		handling.HandleError(err, "failed to update size", h.logger, w)
		return
	}

	updated, err := h.repo.GetSize(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "failed to fetch size", h.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Size updated successfully"),
		gecho.WithData(toSize(*updated)),
		gecho.Send(),
	)
}

func (h *VariantHandler) HandleDeleteSize(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(err, "invalid size id", h.logger, w)
		return
	}

	if err := h.repo.DeleteSize(r.Context(), id); err != nil {
		handling.HandleError(err, "failed to delete size", h.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Size deleted successfully"), gecho.Send())
}

func (h *VariantHandler) HandleGetColors(w http.ResponseWriter, r *http.Request) {
	colors, err := h.repo.GetAllColors(r.Context())
	if err != nil {
		handling.HandleError(err, "failed to fetch colors", h.logger, w)
		return
	}

	response := make([]ColorResponse, len(colors))
	for i, c := range colors {
		response[i] = toColor(c)
	}

	gecho.Success(w, gecho.WithData(response), gecho.Send())
}

func (h *VariantHandler) HandleGetColor(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(err, "invalid color id", h.logger, w)
		return
	}

	color, err := h.repo.GetColor(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "failed to fetch color", h.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(toColor(*color)), gecho.Send())
}

func (h *VariantHandler) HandleCreateColor(w http.ResponseWriter, r *http.Request) {
	input, err := handling.DecodeBody[ColorRequest](r)
	if err != nil {
		handling.InvalidBody(err, h.logger, w)
		return
	}

	color := &models.ColorVariant{Name: input.Name, Price: input.Price}

	if err := h.repo.CreateColor(r.Context(), color); err != nil {
		handling.HandleError(err, "failed to create color", h.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Color created successfully"),
		gecho.WithData(toColor(*color)),
		gecho.Send(),
	)
}

func (h *VariantHandler) HandleUpdateColor(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(err, "invalid color id", h.logger, w)
		return
	}

	input, err := handling.DecodeBody[ColorRequest](r)
	if err != nil {
		handling.InvalidBody(err, h.logger, w)
		return
	}

	color := &models.ColorVariant{BaseModel: models.BaseModel{ID: id}, Name: input.Name, Price: input.Price}

	if err := h.repo.UpdateColor(r.Context(), color); err != nil {
		handling.HandleError(err, "failed to update color", h.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Color updated successfully"),
		gecho.WithData(toColor(*color)),
		gecho.Send(),
	)
}

func (h *VariantHandler) HandleDeleteColor(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(err, "invalid color id", h.logger, w)
		return
	}

	if err := h.repo.DeleteColor(r.Context(), id); err != nil {
		handling.HandleError(err, "failed to delete color", h.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Color deleted successfully"), gecho.Send())
}
