package coupons

import (
	"context"
	"net/http"
	"strconv"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mytheresa/storefront-catalog/handling"
	"github.com/mytheresa/storefront-catalog/models"
)

type CouponResponse struct {
	ID             uuid.UUID `json:"id"`
	Code           string    `json:"coupon_code"`
	DiscountAmount int64     `json:"discount_amount"`
	MinimumAmount  int64     `json:"minimum_amount"`
	IsExpired      bool      `json:"is_expired"`
}

// RedemptionResponse is a coupon evaluated against an order amount.
type RedemptionResponse struct {
	CouponResponse
	OrderAmount int64 `json:"order_amount"`
	Applies     bool  `json:"applies"`
	Discount    int64 `json:"discount"`
}

// CouponRequest leaves amounts nil to take the defaults on create and to keep
// the stored amounts on update.
type CouponRequest struct {
	Code           string `json:"coupon_code" validate:"required,max=10"`
	DiscountAmount *int64 `json:"discount_amount" validate:"omitempty,gte=0"`
	MinimumAmount  *int64 `json:"minimum_amount" validate:"omitempty,gte=0"`
	IsExpired      bool   `json:"is_expired"`
}

type CouponProvider interface {
	GetAllCoupons(ctx context.Context) ([]models.Coupon, error)
	GetCoupon(ctx context.Context, id uuid.UUID) (*models.Coupon, error)
	GetByCode(ctx context.Context, code string) (*models.Coupon, error)
	CreateCoupon(ctx context.Context, coupon *models.Coupon) error
	UpdateCoupon(ctx context.Context, coupon *models.Coupon) error
	DeleteCoupon(ctx context.Context, id uuid.UUID) error
}

type CouponHandler struct {
	repo   CouponProvider
	logger *gecho.Logger
}

func NewCouponHandler(r CouponProvider, logger *gecho.Logger) *CouponHandler {
	return &CouponHandler{repo: r, logger: logger}
}

func (h *CouponHandler) RegisterRoutes(r chi.Router) {
	r.Route("/admin/coupons", func(r chi.Router) {
		r.Get("/", h.HandleGetAll)
		r.Post("/", h.HandleCreate)
		r.Get("/lookup", h.HandleLookup)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})
}

func toResponse(c models.Coupon) CouponResponse {
	return CouponResponse{
		ID:             c.ID,
		Code:           c.Code,
		DiscountAmount: c.DiscountAmount,
		MinimumAmount:  c.MinimumAmount,
		IsExpired:      c.IsExpired,
	}
}

func apply(coupon *models.Coupon, input *CouponRequest) {
	coupon.Code = input.Code
	coupon.IsExpired = input.IsExpired
	if input.DiscountAmount != nil {
		coupon.DiscountAmount = *input.DiscountAmount
	}
	if input.MinimumAmount != nil {
		coupon.MinimumAmount = *input.MinimumAmount
	}
}

func (h *CouponHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	coupons, err := h.repo.GetAllCoupons(r.Context())
	if err != nil {
		handling.HandleError(err, "failed to fetch coupons", h.logger, w)
		return
	}

	response := make([]CouponResponse, len(coupons))
	for i, c := range coupons {
		response[i] = toResponse(c)
	}

	gecho.Success(w, gecho.WithData(response), gecho.Send())
}

// HandleLookup finds a coupon by ?code=. With ?order_amount= it also reports
// whether the coupon applies and the discount it grants.
func (h *CouponHandler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		gecho.BadRequest(w, gecho.WithMessage("missing code"), gecho.Send())
		return
	}

	coupon, err := h.repo.GetByCode(r.Context(), code)
	if err != nil {
		handling.HandleError(err, "failed to fetch coupon", h.logger, w)
		return
	}

	raw := r.URL.Query().Get("order_amount")
	if raw == "" {
		gecho.Success(w, gecho.WithData(toResponse(*coupon)), gecho.Send())
		return
	}

	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || amount < 0 {
		gecho.BadRequest(w, gecho.WithMessage("invalid order amount"), gecho.Send())
		return
	}

	gecho.Success(w, gecho.WithData(RedemptionResponse{
		CouponResponse: toResponse(*coupon),
		OrderAmount:    amount,
		Applies:        coupon.Applies(amount),
		Discount:       coupon.Discount(amount),
	}), gecho.Send())
}

func (h *CouponHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	input, err := handling.DecodeBody[CouponRequest](r)
	if err != nil {
		handling.InvalidBody(err, h.logger, w)
		return
	}

	coupon := models.NewCoupon(input.Code)
	apply(coupon, input)

	if err := h.repo.CreateCoupon(r.Context(), coupon); err != nil {
		handling.HandleError(err, "failed to create coupon", h.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Coupon created successfully"),
		gecho.WithData(toResponse(*coupon)),
		gecho.Send(),
	)
}

func (h *CouponHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(err, "invalid coupon id", h.logger, w)
		return
	}

	coupon, err := h.repo.GetCoupon(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "failed to fetch coupon", h.logger, w)
		return
	}

	gecho.Success(w, gecho.WithData(toResponse(*coupon)), gecho.Send())
}

func (h *CouponHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(err, "invalid coupon id", h.logger, w)
		return
	}

	input, err := handling.DecodeBody[CouponRequest](r)
	if err != nil {
		handling.InvalidBody(err, h.logger, w)
		return
	}

	coupon, err := h.repo.GetCoupon(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "failed to fetch coupon", h.logger, w)
		return
	}
	apply(coupon, input)

	if err := h.repo.UpdateCoupon(r.Context(), coupon); err != nil {
		handling.HandleError(err, "failed to update coupon", h.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Coupon updated successfully"),
		gecho.WithData(toResponse(*coupon)),
		gecho.Send(),
	)
}

func (h *CouponHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := handling.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(err, "invalid coupon id", h.logger, w)
		return
	}

	if err := h.repo.DeleteCoupon(r.Context(), id); err != nil {
		handling.HandleError(err, "failed to delete coupon", h.logger, w)
		return
	}

	gecho.Success(w, gecho.WithMessage("Coupon deleted successfully"), gecho.Send())
}
