package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"storefront/internal/handler"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"
)

const testTagID = "44444444-4444-4444-4444-444444444444"

func newBlogServer(posts *PostRepoMock, tags *TagRepoMock) *echo.Echo {
	uc := usecase.NewBlogUsecase(
		posts, tags, new(BlogCategoryRepoMock), new(AuditRepoMock),
		&seqIDGen{}, &fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}, zerolog.Nop(),
	)

	e := echo.New()
	handler.NewBlogHandler(uc).RegisterRoutes(e)
	return e
}

// 記事が1件も無いタグでの絞り込みは全件ではなく空ページを返す
func TestBlogHandler_List_TagIDWithoutPosts_EmptyPage(t *testing.T) {
	posts := new(PostRepoMock)
	tags := new(TagRepoMock)
	e := newBlogServer(posts, tags)

	tags.On("ListPostIDsByTag", mock.Anything, testTagID).Return([]string{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/blog/posts?tag_id="+testTagID, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var out usecase.PostListOutput
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Empty(t, out.Posts)
	assert.Equal(t, int64(0), out.Pagination.Total)
	assert.Equal(t, int64(0), out.Pagination.TotalPages)

	tags.AssertExpectations(t)
	posts.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

// 短い別名（tag=）でも同じ絞り込みが効く
func TestBlogHandler_List_TagAlias_AlsoFilters(t *testing.T) {
	posts := new(PostRepoMock)
	tags := new(TagRepoMock)
	e := newBlogServer(posts, tags)

	tags.On("ListPostIDsByTag", mock.Anything, testTagID).Return([]string{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/blog/posts?tag="+testTagID, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	tags.AssertExpectations(t)
	posts.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

// category_id / author_id はUUIDとしてそのままクエリに渡る
func TestBlogHandler_List_CategoryAndAuthorIDs_Forwarded(t *testing.T) {
	const (
		catID    = "55555555-5555-5555-5555-555555555555"
		authorID = "66666666-6666-6666-6666-666666666666"
	)

	posts := new(PostRepoMock)
	tags := new(TagRepoMock)
	e := newBlogServer(posts, tags)

	posts.On("List", mock.Anything, mock.MatchedBy(func(q repo.PostListQuery) bool {
		return q.CategoryID == catID && q.AuthorID == authorID && q.Status == "published"
	})).Return(nil, int64(0), nil)

	req := httptest.NewRequest(http.MethodGet, "/blog/posts?category_id="+catID+"&author_id="+authorID, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	posts.AssertExpectations(t)
}
