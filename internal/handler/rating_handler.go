package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"
)

type RatingHandler struct {
	uc *usecase.RatingUsecase
}

// DI
func NewRatingHandler(uc *usecase.RatingUsecase) *RatingHandler {
	return &RatingHandler{uc: uc}
}

type RatingCreateRequest struct {
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating"`
}

func (h *RatingHandler) RegisterRoutes(e *echo.Echo, cfg config.Config, rdb *redis.Client, logger zerolog.Logger) {
	e.POST("/ratings", h.create,
		middleware.AuthJWT(cfg),
		middleware.RateLimiter(rdb, logger),
	)
}

func (h *RatingHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req RatingCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	r, err := h.uc.CreateRating(c.Request().Context(), userID, req.ProductID, req.Rating)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, r)
}
