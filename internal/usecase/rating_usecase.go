package usecase

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/sanitize"
)

type RatingUsecase struct {
	ratings  repo.RatingRepository
	products repo.ProductRepository
	idGen    IDGenerator
	clock    Clock
}

// DI
func NewRatingUsecase(
	ratings repo.RatingRepository,
	products repo.ProductRepository,
	idGen IDGenerator,
	clock Clock,
) *RatingUsecase {
	return &RatingUsecase{
		ratings:  ratings,
		products: products,
		idGen:    idGen,
		clock:    clock,
	}
}

// CreateRating は (product, user) につき1件だけ許す。
// 上書きの経路は無い。2回目は常にduplicateで失敗する。
func (u *RatingUsecase) CreateRating(ctx context.Context, userID string, productID string, rating int) (model.ProductRating, error) {
	if userID == "" {
		return model.ProductRating{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	productID = sanitize.UUID(productID)
	if productID == "" {
		return model.ProductRating{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if rating < 1 || rating > 5 {
		return model.ProductRating{}, NewHTTPError(http.StatusBadRequest, "rating must be between 1 and 5")
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.ProductRating{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.ProductRating{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return model.ProductRating{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	//事前チェック（fast path）
	_, found, err := u.ratings.FindByProductAndUser(ctx, productID, userID)
	if err != nil {
		return model.ProductRating{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if found {
		return model.ProductRating{}, NewHTTPError(http.StatusConflict, "already rated")
	}

	r := model.ProductRating{
		ID:        u.idGen.NewID(),
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		CreatedAt: u.clock.Now(),
	}

	if err := u.ratings.Create(ctx, r); err != nil {
		//同時作成は複合unique indexが弾く。同じ「already rated」へ畳む。
		if errors.Is(err, repo.ErrDuplicate) {
			return model.ProductRating{}, NewHTTPError(http.StatusConflict, "already rated")
		}
		return model.ProductRating{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//商品の集計値を書き戻す
	avg, count, err := u.ratings.AggregateByProduct(ctx, productID)
	if err != nil {
		return model.ProductRating{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if err := u.products.SetRatingAggregate(ctx, productID, avg, count); err != nil {
		return model.ProductRating{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return r, nil
}
