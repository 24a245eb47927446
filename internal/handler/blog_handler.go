package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront/internal/domain/model"
	"storefront/internal/usecase"
)

// ブログの公開API
type BlogHandler struct {
	uc *usecase.BlogUsecase
}

// DI
func NewBlogHandler(uc *usecase.BlogUsecase) *BlogHandler {
	return &BlogHandler{uc: uc}
}

func (h *BlogHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/blog/posts", h.list)
	e.GET("/blog/posts/:slug", h.detail)
	e.GET("/blog/tags", h.tags)
	e.GET("/blog/categories", h.categories)
}

func (h *BlogHandler) list(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.uc.ListPosts(c.Request().Context(), usecase.ListPostsInput{
		Page:  page,
		Limit: limit,
		//公開側は常にpublishedのみ
		Status:     string(model.PostStatusPublished),
		CategoryID: queryParam(c, "category_id", "category"),
		TagID:      queryParam(c, "tag_id", "tag"),
		AuthorID:   queryParam(c, "author_id", "author"),
		Search:     c.QueryParam("search"),
		Sort:       c.QueryParam("sort"),
		Order:      c.QueryParam("order"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *BlogHandler) detail(c echo.Context) error {
	p, err := h.uc.GetPostBySlug(c.Request().Context(), c.Param("slug"), false)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *BlogHandler) tags(c echo.Context) error {
	items, err := h.uc.ListTags(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, items)
}

func (h *BlogHandler) categories(c echo.Context) error {
	items, err := h.uc.ListBlogCategories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, items)
}
