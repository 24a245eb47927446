package handler_test

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// ハンドラのテストで使うのは読み取り系だけ。書き込み系は呼ばれたら落とす。

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindBySlug(ctx context.Context, slug string) (model.Product, error) {
	args := m.Called(ctx, slug)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	panic("not used in handler tests")
}

func (m *ProductRepoMock) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	panic("not used in handler tests")
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) error {
	panic("not used in handler tests")
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	panic("not used in handler tests")
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id string) error {
	panic("not used in handler tests")
}

func (m *ProductRepoMock) SetRatingAggregate(ctx context.Context, productID string, rating decimal.Decimal, reviewCount int64) error {
	panic("not used in handler tests")
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) ListAll(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Category)
	return items, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id string) (model.Category, error) {
	panic("not used in handler tests")
}

func (m *CategoryRepoMock) FindBySlug(ctx context.Context, slug string) (model.Category, error) {
	args := m.Called(ctx, slug)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	panic("not used in handler tests")
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) error {
	panic("not used in handler tests")
}

func (m *CategoryRepoMock) Update(ctx context.Context, c model.Category) error {
	panic("not used in handler tests")
}

func (m *CategoryRepoMock) Delete(ctx context.Context, id string) error {
	panic("not used in handler tests")
}

type BrandRepoMock struct{ mock.Mock }

func (m *BrandRepoMock) ListAll(ctx context.Context) ([]model.Brand, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Brand)
	return items, args.Error(1)
}

func (m *BrandRepoMock) FindByID(ctx context.Context, id string) (model.Brand, error) {
	panic("not used in handler tests")
}

type RatingRepoMock struct{ mock.Mock }

func (m *RatingRepoMock) FindByProductAndUser(ctx context.Context, productID string, userID string) (model.ProductRating, bool, error) {
	panic("not used in handler tests")
}

func (m *RatingRepoMock) Create(ctx context.Context, r model.ProductRating) error {
	panic("not used in handler tests")
}

func (m *RatingRepoMock) ListByProduct(ctx context.Context, productID string) ([]model.ProductRating, error) {
	args := m.Called(ctx, productID)
	items, _ := args.Get(0).([]model.ProductRating)
	return items, args.Error(1)
}

func (m *RatingRepoMock) AggregateByProduct(ctx context.Context, productID string) (decimal.Decimal, int64, error) {
	panic("not used in handler tests")
}

type PostRepoMock struct{ mock.Mock }

func (m *PostRepoMock) List(ctx context.Context, q repo.PostListQuery) ([]model.BlogPost, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.BlogPost)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *PostRepoMock) FindBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	panic("not used in handler tests")
}

func (m *PostRepoMock) FindByID(ctx context.Context, id string) (model.BlogPost, error) {
	panic("not used in handler tests")
}

func (m *PostRepoMock) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	panic("not used in handler tests")
}

func (m *PostRepoMock) Create(ctx context.Context, p model.BlogPost, tagIDs []string) error {
	panic("not used in handler tests")
}

func (m *PostRepoMock) Update(ctx context.Context, p model.BlogPost, tagIDs []string) error {
	panic("not used in handler tests")
}

func (m *PostRepoMock) Delete(ctx context.Context, id string) error {
	panic("not used in handler tests")
}

func (m *PostRepoMock) IncrementViews(ctx context.Context, postID string) error {
	panic("not used in handler tests")
}

type TagRepoMock struct{ mock.Mock }

func (m *TagRepoMock) ListAll(ctx context.Context) ([]model.BlogTag, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.BlogTag)
	return items, args.Error(1)
}

func (m *TagRepoMock) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	panic("not used in handler tests")
}

func (m *TagRepoMock) ListPostIDsByTag(ctx context.Context, tagID string) ([]string, error) {
	args := m.Called(ctx, tagID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *TagRepoMock) Create(ctx context.Context, t model.BlogTag) error {
	panic("not used in handler tests")
}

func (m *TagRepoMock) Delete(ctx context.Context, id string) error {
	panic("not used in handler tests")
}

type BlogCategoryRepoMock struct{ mock.Mock }

func (m *BlogCategoryRepoMock) ListAll(ctx context.Context) ([]model.BlogCategory, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.BlogCategory)
	return items, args.Error(1)
}

func (m *BlogCategoryRepoMock) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	panic("not used in handler tests")
}

func (m *BlogCategoryRepoMock) Create(ctx context.Context, c model.BlogCategory) error {
	panic("not used in handler tests")
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	panic("not used in handler tests")
}

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

type seqIDGen struct{ n int }

func (g *seqIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("00000000-0000-0000-0000-%012d", g.n)
}
