package models

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	likesTable    = "review_likes"
	dislikesTable = "review_dislikes"
)

type ReviewsRepository struct {
	db *gorm.DB
}

func NewReviewsRepository(db *gorm.DB) *ReviewsRepository {
	return &ReviewsRepository{
		db: db,
	}
}

func (r *ReviewsRepository) GetAllReviews(ctx context.Context) ([]ProductReview, error) {
	var reviews []ProductReview
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("User").
		Order("date_added DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *ReviewsRepository) GetByProduct(ctx context.Context, productID uuid.UUID) ([]ProductReview, error) {
	var reviews []ProductReview
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("product_id = ?", productID).
		Order("date_added DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// CreateReview stores review written by its UserID. Missing stars default to 3.
func (r *ReviewsRepository) CreateReview(ctx context.Context, review *ProductReview) error {
	if review.Stars == 0 {
		review.Stars = DefaultRating
	}
	return MapError(r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error)
}

// UpdateReview saves the stars and content of review. Author, product and
// reactions stay as stored.
func (r *ReviewsRepository) UpdateReview(ctx context.Context, review *ProductReview) error {
	res := r.db.WithContext(ctx).Model(review).Select("Stars", "Content").Updates(review)
	if res.Error != nil {
		return MapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// DeleteReview removes the review together with its likes and dislikes.
func (r *ReviewsRepository) DeleteReview(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&ProductReview{}, "id = ?", id)
	if res.Error != nil {
		return MapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *ReviewsRepository) Like(ctx context.Context, reviewID, userID uuid.UUID) error {
	return r.react(ctx, likesTable, reviewID, userID)
}

func (r *ReviewsRepository) Unlike(ctx context.Context, reviewID, userID uuid.UUID) error {
	return r.unreact(ctx, "Likes", reviewID, userID)
}

func (r *ReviewsRepository) Dislike(ctx context.Context, reviewID, userID uuid.UUID) error {
	return r.react(ctx, dislikesTable, reviewID, userID)
}

func (r *ReviewsRepository) Undislike(ctx context.Context, reviewID, userID uuid.UUID) error {
	return r.unreact(ctx, "Dislikes", reviewID, userID)
}

func (r *ReviewsRepository) LikeCount(ctx context.Context, reviewID uuid.UUID) (int64, error) {
	return r.count(ctx, "Likes", reviewID)
}

func (r *ReviewsRepository) DislikeCount(ctx context.Context, reviewID uuid.UUID) (int64, error) {
	return r.count(ctx, "Dislikes", reviewID)
}

// react adds userID to a reaction set of the review. Reacting twice is a no-op.
func (r *ReviewsRepository) react(ctx context.Context, table string, reviewID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.ensureReview(tx, reviewID); err != nil {
			return err
		}
		err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Table(table).
			Create(map[string]interface{}{
				"product_review_id": reviewID,
				"user_id":           userID,
			}).Error
		return MapError(err)
	})
}

func (r *ReviewsRepository) unreact(ctx context.Context, association string, reviewID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.ensureReview(tx, reviewID); err != nil {
			return err
		}
		review := &ProductReview{BaseModel: BaseModel{ID: reviewID}}
		user := &User{BaseModel: BaseModel{ID: userID}}
		return MapError(tx.Model(review).Association(association).Delete(user))
	})
}

func (r *ReviewsRepository) count(ctx context.Context, association string, reviewID uuid.UUID) (int64, error) {
	db := r.db.WithContext(ctx)
	if err := r.ensureReview(db, reviewID); err != nil {
		return 0, err
	}
	review := &ProductReview{BaseModel: BaseModel{ID: reviewID}}
	assoc := db.Model(review).Association(association)
	n := assoc.Count()
	if assoc.Error != nil {
		return 0, MapError(assoc.Error)
	}
	return n, nil
}

func (r *ReviewsRepository) ensureReview(tx *gorm.DB, reviewID uuid.UUID) error {
	var found int64
	if err := tx.Model(&ProductReview{}).Where("id = ?", reviewID).Count(&found).Error; err != nil {
		return MapError(err)
	}
	if found == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// GetByID loads a review with its product and author.
func (r *ReviewsRepository) GetByID(ctx context.Context, id uuid.UUID) (*ProductReview, error) {
	var review ProductReview
	if err := r.db.WithContext(ctx).Preload("Product").Preload("User").First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}
