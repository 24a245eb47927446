package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CategoryRepository interface {
	//アルファベット順の全件
	ListAll(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id string) (model.Category, error)
	FindBySlug(ctx context.Context, slug string) (model.Category, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	Create(ctx context.Context, c model.Category) error
	Update(ctx context.Context, c model.Category) error
	Delete(ctx context.Context, id string) error
}

// ブランドは読み取りのみ（作成・更新は管理画面の別系統）。
type BrandRepository interface {
	ListAll(ctx context.Context) ([]model.Brand, error)
	FindByID(ctx context.Context, id string) (model.Brand, error)
}
