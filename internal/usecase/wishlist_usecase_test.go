package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"
)

func newWishlistUC(w *WishlistRepoMock, p *ProductRepoMock) *usecase.WishlistUsecase {
	return usecase.NewWishlistUsecase(w, p, &seqIDGen{}, &fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)})
}

func TestWishlistUsecase_Add_UnknownProduct(t *testing.T) {
	wRepo := new(WishlistRepoMock)
	pRepo := new(ProductRepoMock)
	uc := newWishlistUC(wRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, testProductID).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.Add(context.Background(), testUserID, testProductID)
	assertHTTPStatus(t, err, http.StatusNotFound)

	wRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

// 2回目の追加もエラーにしない（ratingとは逆の冪等設計）
func TestWishlistUsecase_Add_Twice_BothSucceed(t *testing.T) {
	wRepo := new(WishlistRepoMock)
	pRepo := new(ProductRepoMock)
	uc := newWishlistUC(wRepo, pRepo)

	pRepo.On("FindByID", mock.Anything, testProductID).Return(model.Product{ID: testProductID, IsActive: true}, nil)
	wRepo.On("Insert", mock.Anything, mock.Anything).Return(true, nil).Once()
	wRepo.On("Insert", mock.Anything, mock.Anything).Return(false, nil).Once()

	out1, err := uc.Add(context.Background(), testUserID, testProductID)
	assert.NoError(t, err)
	assert.Equal(t, "added to wishlist", out1.Message)

	out2, err := uc.Add(context.Background(), testUserID, testProductID)
	assert.NoError(t, err)
	assert.Equal(t, "already in wishlist", out2.Message)

	wRepo.AssertExpectations(t)
}

// 無い行の削除も成功扱い
func TestWishlistUsecase_Remove_MissingRow_StillOK(t *testing.T) {
	wRepo := new(WishlistRepoMock)
	uc := newWishlistUC(wRepo, new(ProductRepoMock))

	wRepo.On("Delete", mock.Anything, testUserID, testProductID).Return(nil)

	err := uc.Remove(context.Background(), testUserID, testProductID)
	assert.NoError(t, err)

	wRepo.AssertExpectations(t)
}

func TestWishlistUsecase_Remove_MalformedProductID(t *testing.T) {
	uc := newWishlistUC(new(WishlistRepoMock), new(ProductRepoMock))

	err := uc.Remove(context.Background(), testUserID, "zzz")
	assertErrContains(t, err, "invalid product_id")
}

func TestWishlistUsecase_List_Unauthorized(t *testing.T) {
	uc := newWishlistUC(new(WishlistRepoMock), new(ProductRepoMock))

	_, err := uc.List(context.Background(), "")
	assertHTTPStatus(t, err, http.StatusUnauthorized)
}
