package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type WishlistRepository interface {
	//冪等insert。既存ならinserted=falseで成功扱い。
	Insert(ctx context.Context, item model.WishlistItem) (bool, error)

	Delete(ctx context.Context, userID string, productID string) error
	ListByUser(ctx context.Context, userID string) ([]model.WishlistItem, error)
}
