package catalog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mytheresa/storefront-catalog/handling"
	"github.com/mytheresa/storefront-catalog/models"
	"github.com/shopspring/decimal"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Category struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product is the list projection of a product.
type Product struct {
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	Price    int64    `json:"price"`
	Newest   bool     `json:"newest_product"`
	Category Category `json:"category"`
}

type Color struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"color_name"`
	Price int64     `json:"price"`
}

type Size struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"size_name"`
	Price string    `json:"price"`
}

type Image struct {
	URL     string `json:"url"`
	Preview string `json:"preview"`
}

type ProductDetail struct {
	ID          uuid.UUID  `json:"id"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Price       int64      `json:"price"`
	Newest      bool       `json:"newest_product"`
	Category    Category   `json:"category"`
	Colors      []Color    `json:"color_variants"`
	Sizes       []Size     `json:"size_variants"`
	Images      []Image    `json:"images"`
}

// ProductRequest is the body of product create and update. Colors and sizes
// reference existing variants by id; images are stored paths.
type ProductRequest struct {
	Name        string      `json:"name" validate:"required,max=100"`
	Slug        *string     `json:"slug" validate:"omitempty,max=120,slug"`
	CategoryID  uuid.UUID   `json:"category_id" validate:"required"`
	ParentID    *uuid.UUID  `json:"parent_id"`
	Price       int64       `json:"price" validate:"gte=0"`
	Description string      `json:"description"`
	Newest      bool        `json:"newest_product"`
	ColorIDs    []uuid.UUID `json:"color_variant_ids"`
	SizeIDs     []uuid.UUID `json:"size_variant_ids"`
	Images      []string    `json:"images" validate:"omitempty,dive,required,max=255"`
}

type ProductProvider interface {
	GetFilteredProducts(ctx context.Context, offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	ListVariants(ctx context.Context, parentID uuid.UUID) ([]models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	GetProductPriceBySize(ctx context.Context, productID uuid.UUID, size string) (decimal.Decimal, error)
	GetRating(ctx context.Context, productID uuid.UUID) (float64, error)
}

type CatalogHandler struct {
	repo         ProductProvider
	logger       *gecho.Logger
	mediaBaseURL string
}

func NewCatalogHandler(r ProductProvider, logger *gecho.Logger, mediaBaseURL string) *CatalogHandler {
	return &CatalogHandler{
		repo:         r,
		logger:       logger,
		mediaBaseURL: mediaBaseURL,
	}
}

// RegisterRoutes registers full paths; the reviews handler shares the
// /admin/products/{slug} prefix.
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/admin/products", h.HandleGet)
	r.Post("/admin/products", h.HandleCreate)
	r.Get("/admin/products/{slug}", h.HandleGetProduct)
	r.Put("/admin/products/{slug}", h.HandleUpdate)
	r.Delete("/admin/products/{slug}", h.HandleDelete)
	r.Get("/admin/products/{slug}/price", h.HandleGetPrice)
	r.Get("/admin/products/{slug}/rating", h.HandleGetRating)
	r.Get("/admin/products/{slug}/variants", h.HandleGetVariants)
}

func slugOf(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toProduct(p models.Product) Product {
	out := Product{
		Name:   p.Name,
		Slug:   slugOf(p.Slug),
		Price:  p.Price,
		Newest: p.NewestProduct,
	}
	if p.Category != nil {
		out.Category = Category{Name: p.Category.Name, Slug: slugOf(p.Category.Slug)}
	}
	return out
}

func (h *CatalogHandler) toDetail(p models.Product) ProductDetail {
	out := ProductDetail{
		ID:          p.ID,
		ParentID:    p.ParentID,
		Name:        p.Name,
		Slug:        slugOf(p.Slug),
		Description: p.Description,
		Price:       p.Price,
		Newest:      p.NewestProduct,
		Colors:      make([]Color, len(p.ColorVariants)),
		Sizes:       make([]Size, len(p.SizeVariants)),
		Images:      make([]Image, len(p.Images)),
	}
	if p.Category != nil {
		out.Category = Category{Name: p.Category.Name, Slug: slugOf(p.Category.Slug)}
	}
	for i, c := range p.ColorVariants {
		out.Colors[i] = Color{ID: c.ID, Name: c.Name, Price: c.Price}
	}
	for i, s := range p.SizeVariants {
		out.Sizes[i] = Size{ID: s.ID, Name: s.Name, Price: s.Price.StringFixed(2)}
	}
	for i, img := range p.Images {
		out.Images[i] = Image{
			URL:     models.MediaURL(h.mediaBaseURL, img.Image),
			Preview: img.Preview(h.mediaBaseURL),
		}
	}
	return out
}

// HandleGet lists products filtered by ?category=, ?newest= and ?price_lt=.
func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	offset, limit := handling.ParsePagination(r)

	filters := models.ProductFilters{
		CategorySlug: r.URL.Query().Get("category"),
	}

	newest, err := handling.ParseBool(r, "newest")
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("invalid newest filter"), gecho.Send())
		return
	}
	filters.Newest = newest

	if priceStr := r.URL.Query().Get("price_lt"); priceStr != "" {
		if val, err := strconv.ParseInt(priceStr, 10, 64); err == nil {
			filters.PriceLessThan = &val
		}
	}

	res, total, err := h.repo.GetFilteredProducts(r.Context(), offset, limit, filters)
	if err != nil {
		handling.HandleError(err, "failed to fetch products", h.logger, w)
		return
	}

	products := make([]Product, len(res))
	for i, p := range res {
		products[i] = toProduct(p)
	}

	gecho.Success(w, gecho.WithData(Response{
		Total:    int(total),
		Products: products,
	}), gecho.Send())
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.repo.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handling.HandleError(err, "failed to fetch product", h.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(h.toDetail(*product)), gecho.Send())
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	input, err := handling.DecodeBody[ProductRequest](r)
	if err != nil {
		handling.InvalidBody(err, h.logger, w)
		return
	}

	product := &models.Product{Slug: input.Slug}
	apply(product, input)

	if err := h.repo.CreateProduct(r.Context(), product); err != nil {
		handling.HandleError(err, "failed to create product", h.logger, w)
		return
	}

	h.logger.Info("Product created", gecho.Field("id", product.ID), gecho.Field("slug", slugOf(product.Slug)))
	gecho.Success(w,
		gecho.WithMessage("Product created successfully"),
		gecho.WithData(h.toDetail(*product)),
		gecho.Send(),
	)
}

// HandleUpdate replaces the product fields and links. Images are only
// replaced when the body lists them.
func (h *CatalogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	input, err := handling.DecodeBody[ProductRequest](r)
	if err != nil {
		handling.InvalidBody(err, h.logger, w)
		return
	}

	product, err := h.repo.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handling.HandleError(err, "failed to fetch product", h.logger, w)
		return
	}

	stored := product.Images
	apply(product, input)

	if err := h.repo.UpdateProduct(r.Context(), product); err != nil {
		handling.HandleError(err, "failed to update product", h.logger, w)
		return
	}
	if input.Images == nil {
		product.Images = stored
	}

	gecho.Success(w,
		gecho.WithMessage("Product updated successfully"),
		gecho.WithData(h.toDetail(*product)),
		gecho.Send(),
	)
}

func (h *CatalogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	product, err := h.repo.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handling.HandleError(err, "failed to fetch product", h.logger, w)
		return
	}

	if err := h.repo.DeleteProduct(r.Context(), product.ID); err != nil {
		handling.HandleError(err, "failed to delete product", h.logger, w)
		return
	}

	h.logger.Info("Product deleted", gecho.Field("id", product.ID))
	gecho.Success(w, gecho.WithMessage("Product deleted successfully"), gecho.Send())
}

// HandleGetPrice returns the product price for the size named by ?size=.
func (h *CatalogHandler) HandleGetPrice(w http.ResponseWriter, r *http.Request) {
	size := r.URL.Query().Get("size")
	if size == "" {
		gecho.BadRequest(w, gecho.WithMessage("missing size"), gecho.Send())
		return
	}

	product, err := h.repo.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handling.HandleError(err, "failed to fetch product", h.logger, w)
		return
	}

	price, err := h.repo.GetProductPriceBySize(r.Context(), product.ID, size)
	if err != nil {
		handling.HandleError(err, "failed to compute price", h.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(map[string]string{
		"product": slugOf(product.Slug),
		"size":    size,
		"price":   price.StringFixed(2),
	}), gecho.Send())
}

func (h *CatalogHandler) HandleGetRating(w http.ResponseWriter, r *http.Request) {
	product, err := h.repo.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handling.HandleError(err, "failed to fetch product", h.logger, w)
		return
	}

	rating, err := h.repo.GetRating(r.Context(), product.ID)
	if err != nil {
		handling.HandleError(err, "failed to compute rating", h.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(map[string]interface{}{
		"product": slugOf(product.Slug),
		"rating":  rating,
	}), gecho.Send())
}

func (h *CatalogHandler) HandleGetVariants(w http.ResponseWriter, r *http.Request) {
	product, err := h.repo.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handling.HandleError(err, "failed to fetch product", h.logger, w)
		return
	}

	variants, err := h.repo.ListVariants(r.Context(), product.ID)
	if err != nil {
		handling.HandleError(err, "failed to fetch variants", h.logger, w)
		return
	}

	out := make([]Product, len(variants))
	for i, v := range variants {
		out[i] = toProduct(v)
	}

	gecho.Success(w, gecho.WithData(out), gecho.Send())
}

// apply copies the request onto product. The slug is left alone.
func apply(product *models.Product, input *ProductRequest) {
	product.Name = input.Name
	if product.Category != nil && product.Category.ID != input.CategoryID {
		product.Category = nil
	}
	product.CategoryID = input.CategoryID
	product.ParentID = input.ParentID
	product.Price = input.Price
	product.Description = input.Description
	product.NewestProduct = input.Newest

	product.ColorVariants = make([]models.ColorVariant, len(input.ColorIDs))
	for i, id := range input.ColorIDs {
		product.ColorVariants[i].ID = id
	}
	product.SizeVariants = make([]models.SizeVariant, len(input.SizeIDs))
	for i, id := range input.SizeIDs {
		product.SizeVariants[i].ID = id
	}

	if input.Images == nil {
		product.Images = nil
		return
	}
	product.Images = make([]models.ProductImage, len(input.Images))
	for i, path := range input.Images {
		product.Images[i].Image = path
	}
}
