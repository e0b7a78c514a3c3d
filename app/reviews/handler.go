package reviews

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

type ReviewResponse struct {
	ID        uuid.UUID `json:"id"`
	Product   string    `json:"product"`
	User      string    `json:"user"`
	Stars     int       `json:"stars"`
	Content   *string   `json:"content,omitempty"`
	DateAdded time.Time `json:"date_added"`
}

type ReviewDetail struct {
	ReviewResponse
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

// ReviewRequest is written by the user in the X-User-ID header. Stars
// default to 3 when left out. On update, omitted stars and content keep
// their stored values.
type ReviewRequest struct {
	Stars   int     `json:"stars" validate:"omitempty,gte=1,lte=5"`
	Content *string `json:"content"`
}

type ReviewProvider interface {
	GetAllReviews(ctx context.Context) ([]models.ProductReview, error)
	GetByProduct(ctx context.Context, productID uuid.UUID) ([]models.ProductReview, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProductReview, error)
	CreateReview(ctx context.Context, review *models.ProductReview) error
	UpdateReview(ctx context.Context, review *models.ProductReview) error
	DeleteReview(ctx context.Context, id uuid.UUID) error
	Like(ctx context.Context, reviewID, userID uuid.UUID) error
	Unlike(ctx context.Context, reviewID, userID uuid.UUID) error
	Dislike(ctx context.Context, reviewID, userID uuid.UUID) error
	Undislike(ctx context.Context, reviewID, userID uuid.UUID) error
	LikeCount(ctx context.Context, reviewID uuid.UUID) (int64, error)
	DislikeCount(ctx context.Context, reviewID uuid.UUID) (int64, error)
}

// ProductFinder resolves the product a review is written for.
type ProductFinder interface {
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
}

type ReviewHandler struct {
	repo     ReviewProvider
	products ProductFinder
	logger   *gecho.Logger
}

func NewReviewHandler(r ReviewProvider, products ProductFinder, logger *gecho.Logger) *ReviewHandler {
	return &ReviewHandler{repo: r, products: products, logger: logger}
}

func (h *ReviewHandler) RegisterRoutes(r chi.Router) {
	r.Get("/admin/products/{slug}/reviews", h.HandleGetForProduct)
	r.Post("/admin/products/{slug}/reviews", h.HandleCreate)

	r.Route("/admin/reviews", func(r chi.Router) {
		r.Get("/", h.HandleGetAll)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
		r.Put("/{id}/like", h.react(h.repo.Like, "Review liked"))
		r.Delete("/{id}/like", h.react(h.repo.Unlike, "Like removed"))
		r.Put("/{id}/dislike", h.react(h.repo.Dislike, "Review disliked"))
		r.Delete("/{id}/dislike", h.react(h.repo.Undislike, "Dislike removed"))
	})
}

func toResponse(r models.ProductReview) ReviewResponse {
	resp := ReviewResponse{
		ID:        r.ID,
		Stars:     int(r.Stars),
		Content:   r.Content,
		DateAdded: r.DateAdded,
	}
	if r.Product != nil {
		resp.Product = r.Product.Name
	}
	if r.User != nil {
		resp.User = r.User.Username
	}
	return resp
}

func (h *ReviewHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.repo.GetAllReviews(r.Context())
	if err != nil {
		handling.HandleError(err, "failed to fetch reviews", h.logger, w)
		return
	}

	response := make([]ReviewResponse, len(reviews))
	for i, rv := range reviews {
		response[i] = toResponse(rv)
	}

	gecho.Success(w, gecho.WithData(response), gecho.Send())
}

// HandleGet returns a review with its like and dislike counts.
func (h *ReviewHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(err, "invalid review id", h.logger, w)
		return
	}

	review, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "failed to fetch review", h.logger, w)
		return
	}

	detail, err := h.detail(r.Context(), *review)
	if err != nil {
		handling.HandleError(err, "failed to count reactions", h.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(detail), gecho.Send())
}

func (h *ReviewHandler) HandleGetForProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handling.HandleError(err, "failed to fetch product", h.logger, w)
		return
	}

	reviews, err := h.repo.GetByProduct(r.Context(), product.ID)
	if err != nil {
		handling.HandleError(err, "failed to fetch reviews", h.logger, w)
		return
	}

	response := make([]ReviewResponse, len(reviews))
	for i, rv := range reviews {
		rv.Product = product
		response[i] = toResponse(rv)
	}

	gecho.Success(w, gecho.WithData(map[string]interface{}{
		"rating":  models.AverageRating(reviews),
		"reviews": response,
	}), gecho.Send())
}

func (h *ReviewHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := handling.ActingUser(r)
	if err != nil {
		handling.HandleError(err, "missing user", h.logger, w)
		return
	}

	input, err := handling.DecodeBody[ReviewRequest](r)
	if err != nil {
		handling.InvalidBody(err, h.logger, w)
		return
	}

	stars := models.DefaultRating
	if input.Stars != 0 {
		if stars, err = models.NewRating(input.Stars); err != nil {
			handling.HandleError(err, "invalid rating", h.logger, w)
			return
		}
	}

	product, err := h.products.GetBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		handling.HandleError(err, "failed to fetch product", h.logger, w)
		return
	}

	review := &models.ProductReview{
		ProductID: product.ID,
		Product:   product,
		UserID:    userID,
		Stars:     stars,
		Content:   input.Content,
	}

	if err := h.repo.CreateReview(r.Context(), review); err != nil {
		handling.HandleError(err, "failed to create review", h.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Review created successfully"),
		gecho.WithData(toResponse(*review)),
		gecho.Send(),
	)
}

func (h *ReviewHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(err, "invalid review id", h.logger, w)
		return
	}

	input, err := handling.DecodeBody[ReviewRequest](r)
	if err != nil {
		handling.InvalidBody(err, h.logger, w)
		return
	}

	review, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "failed to fetch review", h.logger, w)
		return
	}

	if input.Stars != 0 {
		if review.Stars, err = models.NewRating(input.Stars); err != nil {
			handling.HandleError(err, "invalid rating", h.logger, w)
			return
		}
	}
	if input.Content != nil {
		review.Content = input.Content
	}

	if err := h.repo.UpdateReview(r.Context(), review); err != nil {
		handling.HandleError(err, "failed to update review", h.logger, w)
		return
	}

	detail, err := h.detail(r.Context(), *review)
	if err != nil {
		handling.HandleError(err, "failed to count reactions", h.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Review updated successfully"),
		gecho.WithData(detail),
		gecho.Send(),
	)
}

func (h *ReviewHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(err, "invalid review id", h.logger, w)
		return
	}

	if err := h.repo.DeleteReview(r.Context(), id); err != nil {
		handling.HandleError(err, "failed to delete review", h.logger, w)
		return
	}

	h.logger.Info("Review deleted", gecho.Field("id", id))
	gecho.Success(w, gecho.WithMessage("Review deleted successfully"), gecho.Send())
}

// react builds the handler toggling the acting user in one reaction set.
// The response carries the updated counts.
func (h *ReviewHandler) react(apply func(ctx context.Context, reviewID, userID uuid.UUID) error, message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := handling.ActingUser(r)
		if err != nil {
			handling.HandleError(err, "missing user", h.logger, w)
			return
		}

		id, err := handling.ParseID(chi.URLParam(r, "id"))
		if err != nil {
			handling.HandleError(err, "invalid review id", h.logger, w)
			return
		}

		if err := apply(r.Context(), id, userID); err != nil {
			handling.HandleError(err, "failed to update reaction", h.logger, w)
			return
		}

		likes, dislikes, err := h.counts(r.Context(), id)
		if err != nil {
			handling.HandleError(err, "failed to count reactions", h.logger, w)
			return
		}

		gecho.Success(w,
			gecho.WithMessage(message),
			gecho.WithData(map[string]int64{"likes": likes, "dislikes": dislikes}),
			gecho.Send(),
		)
	}
}

func (h *ReviewHandler) counts(ctx context.Context, id uuid.UUID) (likes, dislikes int64, err error) {
	if likes, err = h.repo.LikeCount(ctx, id); err != nil {
		return 0, 0, err
	}
	if dislikes, err = h.repo.DislikeCount(ctx, id); err != nil {
		return 0, 0, err
	}
	return likes, dislikes, nil
}

func (h *ReviewHandler) detail(ctx context.Context, review models.ProductReview) (ReviewDetail, error) {
	likes, dislikes, err := h.counts(ctx, review.ID)
	if err != nil {
		return ReviewDetail{}, err
	}
	return ReviewDetail{
		ReviewResponse: toResponse(review),
		Likes:          likes,
		Dislikes:       dislikes,
	}, nil
}
