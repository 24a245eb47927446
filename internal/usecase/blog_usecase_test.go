package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"
)

func newBlogUC(p *PostRepoMock, tg *TagRepoMock, bc *BlogCategoryRepoMock, a *AuditRepoMock) *usecase.BlogUsecase {
	return usecase.NewBlogUsecase(p, tg, bc, a, &seqIDGen{}, &fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}, zerolog.Nop())
}

func TestBlogUsecase_ListPosts_InvalidStatus(t *testing.T) {
	uc := newBlogUC(new(PostRepoMock), new(TagRepoMock), new(BlogCategoryRepoMock), new(AuditRepoMock))

	_, err := uc.ListPosts(context.Background(), usecase.ListPostsInput{Page: 1, Limit: 20, Status: "archived"})
	assertErrContains(t, err, "invalid status")
}

// タグに記事が1件も無ければ本クエリを発行せず空ページを返す
func TestBlogUsecase_ListPosts_TagWithoutPosts_ShortCircuits(t *testing.T) {
	pRepo := new(PostRepoMock)
	tRepo := new(TagRepoMock)
	uc := newBlogUC(pRepo, tRepo, new(BlogCategoryRepoMock), new(AuditRepoMock))

	tagID := "44444444-4444-4444-4444-444444444444"
	tRepo.On("ListPostIDsByTag", mock.Anything, tagID).Return([]string{}, nil)

	out, err := uc.ListPosts(context.Background(), usecase.ListPostsInput{Page: 1, Limit: 20, TagID: tagID})
	assert.NoError(t, err)
	assert.Empty(t, out.Posts)
	assert.Equal(t, int64(0), out.Pagination.Total)
	assert.Equal(t, int64(0), out.Pagination.TotalPages)

	pRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	tRepo.AssertExpectations(t)
}

func TestBlogUsecase_ListPosts_TagFilter_RestrictsToPostIDs(t *testing.T) {
	pRepo := new(PostRepoMock)
	tRepo := new(TagRepoMock)
	uc := newBlogUC(pRepo, tRepo, new(BlogCategoryRepoMock), new(AuditRepoMock))

	tagID := "44444444-4444-4444-4444-444444444444"
	tRepo.On("ListPostIDsByTag", mock.Anything, tagID).Return([]string{"a1", "a2"}, nil)

	q := repo.PostListQuery{Page: 1, Limit: 20, Status: "published", PostIDs: []string{"a1", "a2"}}
	pRepo.On("List", mock.Anything, q).Return([]model.BlogPost{{ID: "a1"}}, int64(1), nil)

	out, err := uc.ListPosts(context.Background(), usecase.ListPostsInput{Page: 1, Limit: 20, Status: "published", TagID: tagID})
	assert.NoError(t, err)
	assert.Len(t, out.Posts, 1)

	pRepo.AssertExpectations(t)
}

func TestBlogUsecase_GetPostBySlug_Draft_HiddenFromPublic(t *testing.T) {
	pRepo := new(PostRepoMock)
	uc := newBlogUC(pRepo, new(TagRepoMock), new(BlogCategoryRepoMock), new(AuditRepoMock))

	pRepo.On("FindBySlug", mock.Anything, "wip-post").Return(model.BlogPost{ID: "a1", Slug: "wip-post", Status: model.PostStatusDraft}, nil)

	_, err := uc.GetPostBySlug(context.Background(), "wip-post", false)
	assertErrContains(t, err, "not found")
	assertHTTPStatus(t, err, http.StatusNotFound)

	//下書きは閲覧数を増やさない
	pRepo.AssertNotCalled(t, "IncrementViews", mock.Anything, mock.Anything)
}

func TestBlogUsecase_GetPostBySlug_Draft_VisibleToAdmin(t *testing.T) {
	pRepo := new(PostRepoMock)
	uc := newBlogUC(pRepo, new(TagRepoMock), new(BlogCategoryRepoMock), new(AuditRepoMock))

	pRepo.On("FindBySlug", mock.Anything, "wip-post").Return(model.BlogPost{ID: "a1", Slug: "wip-post", Status: model.PostStatusDraft}, nil)

	p, err := uc.GetPostBySlug(context.Background(), "wip-post", true)
	assert.NoError(t, err)
	assert.Equal(t, "a1", p.ID)
}

func TestBlogUsecase_GetPostBySlug_Published_ReturnsImmediately(t *testing.T) {
	pRepo := new(PostRepoMock)
	uc := newBlogUC(pRepo, new(TagRepoMock), new(BlogCategoryRepoMock), new(AuditRepoMock))

	pRepo.On("FindBySlug", mock.Anything, "live-post").Return(model.BlogPost{ID: "a1", Slug: "live-post", Status: model.PostStatusPublished}, nil)
	//加算は切り離されたgoroutineで走る。呼ばれても呼ばれなくてもテストは通す。
	pRepo.On("IncrementViews", mock.Anything, "a1").Return(nil).Maybe()

	p, err := uc.GetPostBySlug(context.Background(), "live-post", false)
	assert.NoError(t, err)
	assert.Equal(t, "a1", p.ID)
}

func TestBlogUsecase_AdminCreatePost_DuplicateSlug(t *testing.T) {
	pRepo := new(PostRepoMock)
	uc := newBlogUC(pRepo, new(TagRepoMock), new(BlogCategoryRepoMock), new(AuditRepoMock))

	pRepo.On("ExistsBySlug", mock.Anything, "summer-sale").Return(true, nil)

	_, err := uc.AdminCreatePost(context.Background(), "11111111-1111-1111-1111-111111111111", usecase.AdminPostInput{
		Slug:    "summer-sale",
		TitleEn: "Summer Sale",
		Status:  "draft",
	})
	assertHTTPStatus(t, err, http.StatusConflict)
}

// 公開で作成するとpublished_atが入る
func TestBlogUsecase_AdminCreatePost_PublishedAtSet(t *testing.T) {
	pRepo := new(PostRepoMock)
	aRepo := new(AuditRepoMock)
	uc := newBlogUC(pRepo, new(TagRepoMock), new(BlogCategoryRepoMock), aRepo)

	pRepo.On("ExistsBySlug", mock.Anything, "summer-sale").Return(false, nil)
	pRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.BlogPost) bool {
		return p.PublishedAt != nil && p.Status == model.PostStatusPublished
	}), []string(nil)).Return(nil)
	aRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	p, err := uc.AdminCreatePost(context.Background(), "11111111-1111-1111-1111-111111111111", usecase.AdminPostInput{
		Slug:    "summer-sale",
		TitleEn: "Summer Sale",
		Status:  "published",
	})
	assert.NoError(t, err)
	assert.NotNil(t, p.PublishedAt)

	pRepo.AssertExpectations(t)
}

func TestBlogUsecase_AdminCreateTag_DuplicateSlug(t *testing.T) {
	tRepo := new(TagRepoMock)
	uc := newBlogUC(new(PostRepoMock), tRepo, new(BlogCategoryRepoMock), new(AuditRepoMock))

	tRepo.On("ExistsBySlug", mock.Anything, "news").Return(true, nil)

	_, err := uc.AdminCreateTag(context.Background(), "11111111-1111-1111-1111-111111111111", usecase.AdminTagInput{
		Slug:   "news",
		NameEn: "News",
	})
	assertHTTPStatus(t, err, http.StatusConflict)
}
