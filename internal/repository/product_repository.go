package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
)

var (
	ErrNotFound = errors.New("not found")

	//DB側のunique制約違反。slug・order_number・(product,user)などの重複。
	ErrDuplicate = errors.New("duplicate")
)

// 一覧検索。nil/空のフィールドは「そのフィルタなし」。
type ProductListQuery struct {
	Page  int
	Limit int

	CategoryID string
	BrandID    string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal

	//sanitize済みの検索語。多言語name列をORでILIKE検索する。
	Search string

	Featured *bool
	New      *bool

	//usecase側でallow-list検証済み
	Sort  string
	Order string
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindBySlug(ctx context.Context, slug string) (model.Product, error)
	FindByID(ctx context.Context, id string) (model.Product, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	Create(ctx context.Context, p model.Product) error
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id string) error

	//レーティング集計値の更新
	SetRatingAggregate(ctx context.Context, productID string, rating decimal.Decimal, reviewCount int64) error
}
