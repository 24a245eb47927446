package usecase

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/sanitize"
)

type WishlistUsecase struct {
	wishlist repo.WishlistRepository
	products repo.ProductRepository
	idGen    IDGenerator
	clock    Clock
}

// DI
func NewWishlistUsecase(
	wishlist repo.WishlistRepository,
	products repo.ProductRepository,
	idGen IDGenerator,
	clock Clock,
) *WishlistUsecase {
	return &WishlistUsecase{
		wishlist: wishlist,
		products: products,
		idGen:    idGen,
		clock:    clock,
	}
}

type WishlistAddOutput struct {
	Message string `json:"message"`
}

// Add は冪等。既に入っていても成功として返す（ratingとは逆の設計）。
func (u *WishlistUsecase) Add(ctx context.Context, userID string, productID string) (WishlistAddOutput, error) {
	if userID == "" {
		return WishlistAddOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	productID = sanitize.UUID(productID)
	if productID == "" {
		return WishlistAddOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	if _, err := u.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return WishlistAddOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return WishlistAddOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	inserted, err := u.wishlist.Insert(ctx, model.WishlistItem{
		ID:        u.idGen.NewID(),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: u.clock.Now(),
	})
	if err != nil {
		return WishlistAddOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !inserted {
		return WishlistAddOutput{Message: "already in wishlist"}, nil
	}
	return WishlistAddOutput{Message: "added to wishlist"}, nil
}

func (u *WishlistUsecase) Remove(ctx context.Context, userID string, productID string) error {
	if userID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	productID = sanitize.UUID(productID)
	if productID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	//冪等削除。無い行を消しても成功。
	if err := u.wishlist.Delete(ctx, userID, productID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *WishlistUsecase) List(ctx context.Context, userID string) ([]model.WishlistItem, error) {
	if userID == "" {
		return []model.WishlistItem{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.wishlist.ListByUser(ctx, userID)
	if err != nil {
		return []model.WishlistItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}
