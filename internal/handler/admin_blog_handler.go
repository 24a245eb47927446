package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"
)

type AdminBlogHandler struct {
	uc *usecase.BlogUsecase
}

// DI
func NewAdminBlogHandler(uc *usecase.BlogUsecase) *AdminBlogHandler {
	return &AdminBlogHandler{uc: uc}
}

type PostUpsertRequest struct {
	Slug       string   `json:"slug"`
	TitleHy    string   `json:"title_hy"`
	TitleRu    string   `json:"title_ru"`
	TitleEn    string   `json:"title_en"`
	BodyHy     string   `json:"body_hy"`
	BodyRu     string   `json:"body_ru"`
	BodyEn     string   `json:"body_en"`
	CategoryID *string  `json:"category_id"`
	TagIDs     []string `json:"tag_ids"`
	Status     string   `json:"status"`
}

func (r PostUpsertRequest) toInput() usecase.AdminPostInput {
	return usecase.AdminPostInput{
		Slug:       r.Slug,
		TitleHy:    r.TitleHy,
		TitleRu:    r.TitleRu,
		TitleEn:    r.TitleEn,
		BodyHy:     r.BodyHy,
		BodyRu:     r.BodyRu,
		BodyEn:     r.BodyEn,
		CategoryID: r.CategoryID,
		TagIDs:     r.TagIDs,
		Status:     r.Status,
	}
}

type TagCreateRequest struct {
	Slug   string `json:"slug"`
	NameHy string `json:"name_hy"`
	NameRu string `json:"name_ru"`
	NameEn string `json:"name_en"`
}

func (h *AdminBlogHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin/blog")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/posts", h.listPosts)
	admin.POST("/posts", h.createPost)
	admin.PUT("/posts/:id", h.updatePost)
	admin.DELETE("/posts/:id", h.deletePost)

	admin.POST("/tags", h.createTag)
	admin.DELETE("/tags/:id", h.deleteTag)

	admin.POST("/categories", h.createCategory)
}

// 管理側は下書きも含めて一覧できる
func (h *AdminBlogHandler) listPosts(c echo.Context) error {
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
		Page:       page,
		Limit:      limit,
		Status:     c.QueryParam("status"),
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

func (h *AdminBlogHandler) createPost(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req PostUpsertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	p, err := h.uc.AdminCreatePost(c.Request().Context(), adminID, req.toInput())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, p)
}

func (h *AdminBlogHandler) updatePost(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req PostUpsertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.AdminUpdatePost(c.Request().Context(), adminID, c.Param("id"), req.toInput()); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *AdminBlogHandler) deletePost(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.AdminDeletePost(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *AdminBlogHandler) createTag(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req TagCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	t, err := h.uc.AdminCreateTag(c.Request().Context(), adminID, usecase.AdminTagInput{
		Slug:   req.Slug,
		NameHy: req.NameHy,
		NameRu: req.NameRu,
		NameEn: req.NameEn,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, t)
}

func (h *AdminBlogHandler) deleteTag(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.AdminDeleteTag(c.Request().Context(), adminID, c.Param("id")); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

func (h *AdminBlogHandler) createCategory(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req TagCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	cat, err := h.uc.AdminCreateBlogCategory(c.Request().Context(), adminID, usecase.AdminBlogCategoryInput{
		Slug:   req.Slug,
		NameHy: req.NameHy,
		NameRu: req.NameRu,
		NameEn: req.NameEn,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, cat)
}
