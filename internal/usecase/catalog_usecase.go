package usecase

import (
	"context"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/sanitize"
)

type CatalogUsecase struct {
	products   repo.ProductRepository
	categories repo.CategoryRepository
	brands     repo.BrandRepository
	ratings    repo.RatingRepository
	audit      repo.AuditLogRepository
	idGen      IDGenerator
	clock      Clock
}

// DI
func NewCatalogUsecase(
	products repo.ProductRepository,
	categories repo.CategoryRepository,
	brands repo.BrandRepository,
	ratings repo.RatingRepository,
	audit repo.AuditLogRepository,
	idGen IDGenerator,
	clock Clock,
) *CatalogUsecase {
	return &CatalogUsecase{
		products:   products,
		categories: categories,
		brands:     brands,
		ratings:    ratings,
		audit:      audit,
		idGen:      idGen,
		clock:      clock,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page  int
	Limit int

	CategorySlug string
	BrandID      string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Search       string
	Featured     *bool
	New          *bool

	Sort  string
	Order string
}

type ProductListOutput struct {
	Products   []model.Product `json:"products"`
	Pagination Pagination      `json:"pagination"`
}

func (u *CatalogUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if in.MinPrice != nil && in.MinPrice.IsNegative() {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "minPrice must be >= 0")
	}
	if in.MaxPrice != nil && in.MaxPrice.IsNegative() {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "maxPrice must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && in.MinPrice.GreaterThan(*in.MaxPrice) {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "minPrice must be <= maxPrice")
	}

	//sortはallow-list。知らない列は黙ってフォールバックせずエラー。
	switch in.Sort {
	case "", "created_at", "price", "name", "rating":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}
	switch in.Order {
	case "", "asc", "desc":
	default:
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order")
	}

	q := repo.ProductListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
		Search:   sanitize.Search(in.Search),
		Featured: in.Featured,
		New:      in.New,
		Sort:     in.Sort,
		Order:    in.Order,
	}

	//カテゴリはslug→ID解決。解決できなければフィルタを落とす（fail-open）。
	if slug := sanitize.Slug(in.CategorySlug); slug != "" {
		c, err := u.categories.FindBySlug(ctx, slug)
		if err == nil {
			q.CategoryID = c.ID
		} else if !errors.Is(err, repo.ErrNotFound) {
			return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	//UUID形式でないブランドIDも黙って落とす
	q.BrandID = sanitize.UUID(in.BrandID)

	items, total, err := u.products.List(ctx, q)
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{
		Products:   items,
		Pagination: NewPagination(in.Page, in.Limit, total),
	}, nil
}

// 詳細はカテゴリ・ブランドに加えて個別評価も同梱する
type ProductDetailOutput struct {
	model.Product
	Ratings []model.ProductRating `json:"ratings"`
}

func (u *CatalogUsecase) GetProductBySlug(ctx context.Context, slug string) (ProductDetailOutput, error) {
	slug = sanitize.Slug(slug)
	if slug == "" {
		return ProductDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	p, err := u.products.FindBySlug(ctx, slug)
	if errors.Is(err, repo.ErrNotFound) {
		return ProductDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//非公開は存在しない扱い
	if !p.IsActive {
		return ProductDetailOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	ratings, err := u.ratings.ListByProduct(ctx, p.ID)
	if err != nil {
		return ProductDetailOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductDetailOutput{Product: p, Ratings: ratings}, nil
}

func (u *CatalogUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	items, err := u.categories.ListAll(ctx)
	if err != nil {
		return []model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *CatalogUsecase) ListBrands(ctx context.Context) ([]model.Brand, error) {
	items, err := u.brands.ListAll(ctx)
	if err != nil {
		return []model.Brand{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

type AdminProductInput struct {
	Slug          string
	CategoryID    string
	BrandID       string
	NameHy        string
	NameRu        string
	NameEn        string
	DescriptionHy string
	DescriptionRu string
	DescriptionEn string
	Price         decimal.Decimal
	DiscountPrice *decimal.Decimal
	Stock         int64
	IsFeatured    bool
	IsNew         bool
	IsActive      bool
}

func (in AdminProductInput) validate() error {
	if in.NameEn == "" {
		return NewHTTPError(http.StatusBadRequest, "name_en required")
	}
	if !in.Price.IsPositive() {
		return NewHTTPError(http.StatusBadRequest, "price must be > 0")
	}
	if in.DiscountPrice != nil && !in.DiscountPrice.IsPositive() {
		return NewHTTPError(http.StatusBadRequest, "discount_price must be > 0")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	if sanitize.UUID(in.CategoryID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid category_id")
	}
	if sanitize.UUID(in.BrandID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid brand_id")
	}
	return nil
}

func (u *CatalogUsecase) AdminCreateProduct(ctx context.Context, adminUserID string, in AdminProductInput) (model.Product, error) {
	if adminUserID == "" {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	slug := sanitize.Slug(in.Slug)
	if slug == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "slug required")
	}
	if err := in.validate(); err != nil {
		return model.Product{}, err
	}

	//事前チェック（fast path）。本体はDBのunique制約。
	exists, err := u.products.ExistsBySlug(ctx, slug)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return model.Product{}, NewHTTPError(http.StatusConflict, "duplicate slug")
	}

	now := u.clock.Now()
	p := model.Product{
		ID:            u.idGen.NewID(),
		Slug:          slug,
		CategoryID:    sanitize.UUID(in.CategoryID),
		BrandID:       sanitize.UUID(in.BrandID),
		NameHy:        in.NameHy,
		NameRu:        in.NameRu,
		NameEn:        in.NameEn,
		DescriptionHy: in.DescriptionHy,
		DescriptionRu: in.DescriptionRu,
		DescriptionEn: in.DescriptionEn,
		Price:         in.Price,
		DiscountPrice: in.DiscountPrice,
		Stock:         in.Stock,
		IsFeatured:    in.IsFeatured,
		IsNew:         in.IsNew,
		IsActive:      in.IsActive,
		Rating:        decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := u.products.Create(ctx, p); err != nil {
		//同時作成で事前チェックをすり抜けた場合も同じ409にする
		if errors.Is(err, repo.ErrDuplicate) {
			return model.Product{}, NewHTTPError(http.StatusConflict, "duplicate slug")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionCreate, model.AuditResourceProduct, p.ID, nil, p)
	return p, nil
}

func (u *CatalogUsecase) AdminUpdateProduct(ctx context.Context, adminUserID string, productID string, in AdminProductInput) error {
	if adminUserID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if sanitize.UUID(productID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	slug := sanitize.Slug(in.Slug)
	if slug == "" {
		return NewHTTPError(http.StatusBadRequest, "slug required")
	}
	if err := in.validate(); err != nil {
		return err
	}

	before, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//slugを変える場合だけ重複チェック
	if slug != before.Slug {
		exists, err := u.products.ExistsBySlug(ctx, slug)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if exists {
			return NewHTTPError(http.StatusConflict, "duplicate slug")
		}
	}

	after := before
	after.Slug = slug
	after.CategoryID = sanitize.UUID(in.CategoryID)
	after.BrandID = sanitize.UUID(in.BrandID)
	after.NameHy = in.NameHy
	after.NameRu = in.NameRu
	after.NameEn = in.NameEn
	after.DescriptionHy = in.DescriptionHy
	after.DescriptionRu = in.DescriptionRu
	after.DescriptionEn = in.DescriptionEn
	after.Price = in.Price
	after.DiscountPrice = in.DiscountPrice
	after.Stock = in.Stock
	after.IsFeatured = in.IsFeatured
	after.IsNew = in.IsNew
	after.IsActive = in.IsActive

	if err := u.products.Update(ctx, after); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return NewHTTPError(http.StatusConflict, "duplicate slug")
		}
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionUpdate, model.AuditResourceProduct, productID, before, after)
	return nil
}

func (u *CatalogUsecase) AdminDeleteProduct(ctx context.Context, adminUserID string, productID string) error {
	if adminUserID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if sanitize.UUID(productID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	err := u.products.SoftDelete(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionDelete, model.AuditResourceProduct, productID, nil, nil)
	return nil
}

type AdminCategoryInput struct {
	Slug      string
	NameHy    string
	NameRu    string
	NameEn    string
	SortOrder int
}

func (u *CatalogUsecase) AdminCreateCategory(ctx context.Context, adminUserID string, in AdminCategoryInput) (model.Category, error) {
	if adminUserID == "" {
		return model.Category{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	slug := sanitize.Slug(in.Slug)
	if slug == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "slug required")
	}
	if in.NameEn == "" {
		return model.Category{}, NewHTTPError(http.StatusBadRequest, "name_en required")
	}

	exists, err := u.categories.ExistsBySlug(ctx, slug)
	if err != nil {
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return model.Category{}, NewHTTPError(http.StatusConflict, "duplicate slug")
	}

	now := u.clock.Now()
	c := model.Category{
		ID:        u.idGen.NewID(),
		Slug:      slug,
		NameHy:    in.NameHy,
		NameRu:    in.NameRu,
		NameEn:    in.NameEn,
		SortOrder: in.SortOrder,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.categories.Create(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return model.Category{}, NewHTTPError(http.StatusConflict, "duplicate slug")
		}
		return model.Category{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionCreate, model.AuditResourceCategory, c.ID, nil, c)
	return c, nil
}

func (u *CatalogUsecase) AdminUpdateCategory(ctx context.Context, adminUserID string, categoryID string, in AdminCategoryInput) error {
	if adminUserID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if sanitize.UUID(categoryID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	slug := sanitize.Slug(in.Slug)
	if slug == "" {
		return NewHTTPError(http.StatusBadRequest, "slug required")
	}
	if in.NameEn == "" {
		return NewHTTPError(http.StatusBadRequest, "name_en required")
	}

	before, err := u.categories.FindByID(ctx, categoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//slugを変える場合だけ重複チェック
	if slug != before.Slug {
		exists, err := u.categories.ExistsBySlug(ctx, slug)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if exists {
			return NewHTTPError(http.StatusConflict, "duplicate slug")
		}
	}

	after := before
	after.Slug = slug
	after.NameHy = in.NameHy
	after.NameRu = in.NameRu
	after.NameEn = in.NameEn
	after.SortOrder = in.SortOrder

	if err := u.categories.Update(ctx, after); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return NewHTTPError(http.StatusConflict, "duplicate slug")
		}
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionUpdate, model.AuditResourceCategory, categoryID, before, after)
	return nil
}

func (u *CatalogUsecase) AdminDeleteCategory(ctx context.Context, adminUserID string, categoryID string) error {
	if adminUserID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if sanitize.UUID(categoryID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid category id")
	}

	err := u.categories.Delete(ctx, categoryID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionDelete, model.AuditResourceCategory, categoryID, nil, nil)
	return nil
}

func (u *CatalogUsecase) writeAudit(ctx context.Context, actorID string, action model.AuditAction, resource model.AuditResourceType, resourceID string, before, after interface{}) {
	writeAuditLog(ctx, u.audit, u.idGen, u.clock, actorID, action, resource, resourceID, before, after)
}
