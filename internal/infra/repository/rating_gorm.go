package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type RatingGormRepository struct {
	db *gorm.DB
}

func NewRatingGormRepository(db *gorm.DB) *RatingGormRepository {
	return &RatingGormRepository{db: db}
}

func (r *RatingGormRepository) FindByProductAndUser(ctx context.Context, productID string, userID string) (model.ProductRating, bool, error) {
	var rating model.ProductRating
	err := r.db.WithContext(ctx).
		Where("product_id = ? AND user_id = ?", productID, userID).
		First(&rating).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProductRating{}, false, nil
	}
	if err != nil {
		return model.ProductRating{}, false, err
	}
	return rating, true, nil
}

// 事前チェックをすり抜けた同時作成は複合unique indexで弾かれ、ErrDuplicateになる。
func (r *RatingGormRepository) Create(ctx context.Context, rating model.ProductRating) error {
	if err := r.db.WithContext(ctx).Create(&rating).Error; err != nil {
		if isUniqueViolation(err) {
			return repo.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *RatingGormRepository) ListByProduct(ctx context.Context, productID string) ([]model.ProductRating, error) {
	var items []model.ProductRating
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at desc").
		Find(&items).Error
	if err != nil {
		return []model.ProductRating{}, err
	}
	return items, nil
}

func (r *RatingGormRepository) AggregateByProduct(ctx context.Context, productID string) (decimal.Decimal, int64, error) {
	var row struct {
		Avg   decimal.Decimal
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&model.ProductRating{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&row).Error
	if err != nil {
		return decimal.Zero, 0, err
	}
	return row.Avg.Round(2), row.Count, nil
}
