package wishlist

import (
	"context"
	"net/http"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mytheresa/storefront-catalog/handling"
	"github.com/mytheresa/storefront-catalog/models"
)

type ItemResponse struct {
	ID            uuid.UUID  `json:"id"`
	User          string     `json:"user"`
	Product       string     `json:"product"`
	ProductID     uuid.UUID  `json:"product_id"`
	Size          string     `json:"size,omitempty"`
	SizeVariantID *uuid.UUID `json:"size_variant_id,omitempty"`
	AddedOn       time.Time  `json:"added_on"`
	Display       string     `json:"display"`
}

type ItemRequest struct {
	ProductID     uuid.UUID  `json:"product_id" validate:"required"`
	SizeVariantID *uuid.UUID `json:"size_variant_id"`
}

// ListResponse is one page of the entries of every user.
type ListResponse struct {
	Total int            `json:"total"`
	Items []ItemResponse `json:"items"`
}

// SizeRequest moves an entry to another size; a null size clears it.
type SizeRequest struct {
	SizeVariantID *uuid.UUID `json:"size_variant_id"`
}

type WishlistProvider interface {
	GetForUser(ctx context.Context, userID uuid.UUID) ([]models.Wishlist, error)
	AddItem(ctx context.Context, item *models.Wishlist) error
	RemoveItem(ctx context.Context, userID, id uuid.UUID) error
	GetAll(ctx context.Context, offset, limit int) ([]models.Wishlist, int64, error)
	GetItem(ctx context.Context, id uuid.UUID) (*models.Wishlist, error)
	UpdateItem(ctx context.Context, item *models.Wishlist) error
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

// WishlistHandler serves the wishlist of the user in the X-User-ID header
// under /admin/wishlist and the entries of every user under /admin/wishlists.
type WishlistHandler struct {
	repo   WishlistProvider
	logger *gecho.Logger
}

func NewWishlistHandler(r WishlistProvider, logger *gecho.Logger) *WishlistHandler {
	return &WishlistHandler{repo: r, logger: logger}
}

func (h *WishlistHandler) RegisterRoutes(r chi.Router) {
	r.Route("/admin/wishlist", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Post("/", h.HandleAdd)
		r.Delete("/{id}", h.HandleRemove)
	})
	r.Route("/admin/wishlists", func(r chi.Router) {
		r.Get("/", h.HandleGetAll)
		r.Get("/{id}", h.HandleGetItem)
		r.Put("/{id}", h.HandleUpdateItem)
		r.Delete("/{id}", h.HandleDeleteItem)
	})
}

func toResponse(item models.Wishlist) ItemResponse {
	resp := ItemResponse{
		ID:            item.ID,
		ProductID:     item.ProductID,
		SizeVariantID: item.SizeVariantID,
		AddedOn:       item.AddedOn,
		Display:       item.String(),
	}
	if item.User != nil {
		resp.User = item.User.Username
	}
	if item.Product != nil {
		resp.Product = item.Product.Name
	}
	if item.SizeVariant != nil {
		resp.Size = item.SizeVariant.Name
	}
	return resp
}

func (h *WishlistHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, err := handling.ActingUser(r)
	if err != nil {
		handling.HandleError(err, "missing user", h.logger, w)
		return
	}

	items, err := h.repo.GetForUser(r.Context(), userID)
	if err != nil {
		handling.HandleError(err, "failed to fetch wishlist", h.logger, w)
		return
	}

	response := make([]ItemResponse, len(items))
	for i, item := range items {
		response[i] = toResponse(item)
	}

	gecho.Success(w, gecho.WithData(response), gecho.Send())
}

func (h *WishlistHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	userID, err := handling.ActingUser(r)
	if err != nil {
		handling.HandleError(err, "missing user", h.logger, w)
		return
	}

	input, err := handling.DecodeBody[ItemRequest](r)
	if err != nil {
		handling.InvalidBody(err, h.logger, w)
		return
	}

	item := &models.Wishlist{
		UserID:        userID,
		ProductID:     input.ProductID,
		SizeVariantID: input.SizeVariantID,
	}

	if err := h.repo.AddItem(r.Context(), item); err != nil {
		handling.HandleError(err, "failed to add wishlist entry", h.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Added to wishlist"),
		gecho.WithData(toResponse(*item)),
		gecho.Send(),
	)
}

func (h *WishlistHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	userID, err := handling.ActingUser(r)
	if err != nil {
		handling.HandleError(err, "missing user", h.logger, w)
		return
	}

	id, err := handling.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(err, "invalid wishlist id", h.logger, w)
		return
	}

	if err := h.repo.RemoveItem(r.Context(), userID, id); err != nil {
		handling.HandleError(err, "failed to remove wishlist entry", h.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Removed from wishlist"), gecho.Send())
}

func (h *WishlistHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	offset, limit := handling.ParsePagination(r)

	items, total, err := h.repo.GetAll(r.Context(), offset, limit)
	if err != nil {
		handling.HandleError(err, "failed to fetch wishlists", h.logger, w)
		return
	}

	response := make([]ItemResponse, len(items))
	for i, item := range items {
		response[i] = toResponse(item)
	}

	gecho.Success(w, gecho.WithData(ListResponse{
		Total: int(total),
		Items: response,
	}), gecho.Send())
}

func (h *WishlistHandler) HandleGetItem(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(err, "invalid wishlist id", h.logger, w)
		return
	}

	item, err := h.repo.GetItem(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "failed to fetch wishlist entry", h.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(toResponse(*item)), gecho.Send())
}

func (h *WishlistHandler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(err, "invalid wishlist id", h.logger, w)
		return
	}

	input, err := handling.DecodeBody[SizeRequest](r)
	if err != nil {
		handling.InvalidBody(err, h.logger, w)
		return
	}

	item := &models.Wishlist{BaseModel: models.BaseModel{ID: id}, SizeVariantID: input.SizeVariantID}
	if err := h.repo.UpdateItem(r.Context(), item); err != nil {
		handling.HandleError(err, "failed to update wishlist entry", h.logger, w)
		return
	}

	updated, err := h.repo.GetItem(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "failed to fetch wishlist entry", h.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Wishlist entry updated"),
		gecho.WithData(toResponse(*updated)),
		gecho.Send(),
	)
}

func (h *WishlistHandler) HandleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(err, "invalid wishlist id", h.logger, w)
		return
	}

	if err := h.repo.DeleteItem(r.Context(), id); err != nil {
		handling.HandleError(err, "failed to delete wishlist entry", h.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Wishlist entry deleted"), gecho.Send())
}
