package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
)

type RatingRepository interface {
	//存在チェック（found=falseはエラーではない）
	FindByProductAndUser(ctx context.Context, productID string, userID string) (model.ProductRating, bool, error)

	//重複はErrDuplicate（複合unique indexが本体）
	Create(ctx context.Context, r model.ProductRating) error

	//商品の個別評価（新しい順）
	ListByProduct(ctx context.Context, productID string) ([]model.ProductRating, error)

	//商品の平均と件数
	AggregateByProduct(ctx context.Context, productID string) (decimal.Decimal, int64, error)
}
