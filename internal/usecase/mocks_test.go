package usecase_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"
)

// =====================
// Mocks
// =====================

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
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProductRepoMock) SoftDelete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProductRepoMock) SetRatingAggregate(ctx context.Context, productID string, rating decimal.Decimal, reviewCount int64) error {
	args := m.Called(ctx, productID, rating, reviewCount)
	return args.Error(0)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) ListAll(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Category)
	return items, args.Error(1)
}

func (m *CategoryRepoMock) FindByID(ctx context.Context, id string) (model.Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) FindBySlug(ctx context.Context, slug string) (model.Category, error) {
	args := m.Called(ctx, slug)
	c, _ := args.Get(0).(model.Category)
	return c, args.Error(1)
}

func (m *CategoryRepoMock) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *CategoryRepoMock) Create(ctx context.Context, c model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CategoryRepoMock) Update(ctx context.Context, c model.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *CategoryRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type BrandRepoMock struct{ mock.Mock }

func (m *BrandRepoMock) ListAll(ctx context.Context) ([]model.Brand, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Brand)
	return items, args.Error(1)
}

func (m *BrandRepoMock) FindByID(ctx context.Context, id string) (model.Brand, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(model.Brand)
	return b, args.Error(1)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID string, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdatePaymentStatus(ctx context.Context, orderID string, status model.PaymentStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]model.Order)
	return items, args.Get(1).(int64), args.Error(2)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	panic("not used in usecase tests")
}

type RatingRepoMock struct{ mock.Mock }

func (m *RatingRepoMock) FindByProductAndUser(ctx context.Context, productID string, userID string) (model.ProductRating, bool, error) {
	args := m.Called(ctx, productID, userID)
	r, _ := args.Get(0).(model.ProductRating)
	return r, args.Bool(1), args.Error(2)
}

func (m *RatingRepoMock) Create(ctx context.Context, r model.ProductRating) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *RatingRepoMock) ListByProduct(ctx context.Context, productID string) ([]model.ProductRating, error) {
	args := m.Called(ctx, productID)
	items, _ := args.Get(0).([]model.ProductRating)
	return items, args.Error(1)
}

func (m *RatingRepoMock) AggregateByProduct(ctx context.Context, productID string) (decimal.Decimal, int64, error) {
	args := m.Called(ctx, productID)
	avg, _ := args.Get(0).(decimal.Decimal)
	return avg, args.Get(1).(int64), args.Error(2)
}

type WishlistRepoMock struct{ mock.Mock }

func (m *WishlistRepoMock) Insert(ctx context.Context, item model.WishlistItem) (bool, error) {
	args := m.Called(ctx, item)
	return args.Bool(0), args.Error(1)
}

func (m *WishlistRepoMock) Delete(ctx context.Context, userID string, productID string) error {
	args := m.Called(ctx, userID, productID)
	return args.Error(0)
}

func (m *WishlistRepoMock) ListByUser(ctx context.Context, userID string) ([]model.WishlistItem, error) {
	args := m.Called(ctx, userID)
	items, _ := args.Get(0).([]model.WishlistItem)
	return items, args.Error(1)
}

type PostRepoMock struct{ mock.Mock }

func (m *PostRepoMock) List(ctx context.Context, q repo.PostListQuery) ([]model.BlogPost, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.BlogPost)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *PostRepoMock) FindBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	args := m.Called(ctx, slug)
	p, _ := args.Get(0).(model.BlogPost)
	return p, args.Error(1)
}

func (m *PostRepoMock) FindByID(ctx context.Context, id string) (model.BlogPost, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.BlogPost)
	return p, args.Error(1)
}

func (m *PostRepoMock) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *PostRepoMock) Create(ctx context.Context, p model.BlogPost, tagIDs []string) error {
	args := m.Called(ctx, p, tagIDs)
	return args.Error(0)
}

func (m *PostRepoMock) Update(ctx context.Context, p model.BlogPost, tagIDs []string) error {
	args := m.Called(ctx, p, tagIDs)
	return args.Error(0)
}

func (m *PostRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *PostRepoMock) IncrementViews(ctx context.Context, postID string) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

type TagRepoMock struct{ mock.Mock }

func (m *TagRepoMock) ListAll(ctx context.Context) ([]model.BlogTag, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.BlogTag)
	return items, args.Error(1)
}

func (m *TagRepoMock) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *TagRepoMock) ListPostIDsByTag(ctx context.Context, tagID string) ([]string, error) {
	args := m.Called(ctx, tagID)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *TagRepoMock) Create(ctx context.Context, t model.BlogTag) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *TagRepoMock) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type BlogCategoryRepoMock struct{ mock.Mock }

func (m *BlogCategoryRepoMock) ListAll(ctx context.Context) ([]model.BlogCategory, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.BlogCategory)
	return items, args.Error(1)
}

func (m *BlogCategoryRepoMock) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

func (m *BlogCategoryRepoMock) Create(ctx context.Context, c model.BlogCategory) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

// Txは本物を使わず、渡したmockをそのまま返すスタブで代用
type txReposStub struct {
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
	products   *ProductRepoMock
}

func (s txReposStub) Orders() repo.OrderRepository         { return s.orders }
func (s txReposStub) OrderItems() repo.OrderItemRepository { return s.orderItems }
func (s txReposStub) Products() repo.ProductRepository     { return s.products }

type txManagerStub struct {
	repos txReposStub
}

func (m *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}

// =====================
// 共通部品
// =====================

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

type seqIDGen struct{ n int }

func (g *seqIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("00000000-0000-0000-0000-%012d", g.n)
}

func assertErrContains(t *testing.T, err error, msg string) {
	t.Helper()
	assert.Error(t, err)
	if err != nil {
		assert.True(t, strings.Contains(err.Error(), msg), "got: %v", err)
	}
}

func assertHTTPStatus(t *testing.T, err error, status int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok, "expected HTTPError, got: %v", err)
	if ok {
		assert.Equal(t, status, he.Status)
	}
}
