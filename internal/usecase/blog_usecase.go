package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/sanitize"
)

// 閲覧数加算のbest-effort書き込みに使うタイムアウト
const viewCounterTimeout = 3 * time.Second

type BlogUsecase struct {
	posts    repo.PostRepository
	tags     repo.TagRepository
	blogCats repo.BlogCategoryRepository
	audit    repo.AuditLogRepository
	idGen    IDGenerator
	clock    Clock
	logger   zerolog.Logger
}

// DI
func NewBlogUsecase(
	posts repo.PostRepository,
	tags repo.TagRepository,
	blogCats repo.BlogCategoryRepository,
	audit repo.AuditLogRepository,
	idGen IDGenerator,
	clock Clock,
	logger zerolog.Logger,
) *BlogUsecase {
	return &BlogUsecase{
		posts:    posts,
		tags:     tags,
		blogCats: blogCats,
		audit:    audit,
		idGen:    idGen,
		clock:    clock,
		logger:   logger,
	}
}

type ListPostsInput struct {
	Page  int
	Limit int

	Status     string
	CategoryID string
	TagID      string
	AuthorID   string
	Search     string

	Sort  string
	Order string
}

type PostListOutput struct {
	Posts      []model.BlogPost `json:"posts"`
	Pagination Pagination       `json:"pagination"`
}

func (u *BlogUsecase) ListPosts(ctx context.Context, in ListPostsInput) (PostListOutput, error) {
	if in.Page < 1 {
		return PostListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return PostListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	switch in.Status {
	case "", string(model.PostStatusDraft), string(model.PostStatusPublished):
	default:
		return PostListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	switch in.Sort {
	case "", "created_at", "published_at", "views":
	default:
		return PostListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}
	switch in.Order {
	case "", "asc", "desc":
	default:
		return PostListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order")
	}

	q := repo.PostListQuery{
		Page:       in.Page,
		Limit:      in.Limit,
		Status:     in.Status,
		CategoryID: sanitize.UUID(in.CategoryID),
		AuthorID:   sanitize.UUID(in.AuthorID),
		Search:     sanitize.Search(in.Search),
		Sort:       in.Sort,
		Order:      in.Order,
	}

	//タグ絞り込みは2段階。まずタグに紐づく記事IDを引き、
	//1件も無ければ本クエリを発行せずに空ページを返す。
	if tagID := sanitize.UUID(in.TagID); tagID != "" {
		ids, err := u.tags.ListPostIDsByTag(ctx, tagID)
		if err != nil {
			return PostListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(ids) == 0 {
			return PostListOutput{
				Posts:      []model.BlogPost{},
				Pagination: NewPagination(in.Page, in.Limit, 0),
			}, nil
		}
		q.PostIDs = ids
	}

	items, total, err := u.posts.List(ctx, q)
	if err != nil {
		return PostListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return PostListOutput{
		Posts:      items,
		Pagination: NewPagination(in.Page, in.Limit, total),
	}, nil
}

// GetPostBySlug は記事を1件返す。公開記事の閲覧は閲覧数を加算するが、
// 加算はレスポンスを待たせない（失敗はログに残すだけ）。
func (u *BlogUsecase) GetPostBySlug(ctx context.Context, slug string, includeDrafts bool) (model.BlogPost, error) {
	slug = sanitize.Slug(slug)
	if slug == "" {
		return model.BlogPost{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	p, err := u.posts.FindBySlug(ctx, slug)
	if errors.Is(err, repo.ErrNotFound) {
		return model.BlogPost{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.BlogPost{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if p.Status != model.PostStatusPublished {
		if !includeDrafts {
			return model.BlogPost{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return p, nil
	}

	//リクエストのctxではなく独立したctxで切り離す
	go func(postID string) {
		bgCtx, cancel := context.WithTimeout(context.Background(), viewCounterTimeout)
		defer cancel()
		if err := u.posts.IncrementViews(bgCtx, postID); err != nil {
			u.logger.Error().Err(err).Str("post_id", postID).Msg("view counter increment failed")
		}
	}(p.ID)

	return p, nil
}

func (u *BlogUsecase) ListTags(ctx context.Context) ([]model.BlogTag, error) {
	items, err := u.tags.ListAll(ctx)
	if err != nil {
		return []model.BlogTag{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

func (u *BlogUsecase) ListBlogCategories(ctx context.Context) ([]model.BlogCategory, error) {
	items, err := u.blogCats.ListAll(ctx)
	if err != nil {
		return []model.BlogCategory{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

type AdminPostInput struct {
	Slug       string
	TitleHy    string
	TitleRu    string
	TitleEn    string
	BodyHy     string
	BodyRu     string
	BodyEn     string
	CategoryID *string
	TagIDs     []string
	Status     string
}

func (in AdminPostInput) validate() error {
	if in.TitleEn == "" {
		return NewHTTPError(http.StatusBadRequest, "title_en required")
	}
	if !model.PostStatus(in.Status).Valid() {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}
	if in.CategoryID != nil && sanitize.UUID(*in.CategoryID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid category_id")
	}
	for _, id := range in.TagIDs {
		if sanitize.UUID(id) == "" {
			return NewHTTPError(http.StatusBadRequest, "invalid tag_id")
		}
	}
	return nil
}

func (u *BlogUsecase) AdminCreatePost(ctx context.Context, adminUserID string, in AdminPostInput) (model.BlogPost, error) {
	if adminUserID == "" {
		return model.BlogPost{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	slug := sanitize.Slug(in.Slug)
	if slug == "" {
		return model.BlogPost{}, NewHTTPError(http.StatusBadRequest, "slug required")
	}
	if err := in.validate(); err != nil {
		return model.BlogPost{}, err
	}

	exists, err := u.posts.ExistsBySlug(ctx, slug)
	if err != nil {
		return model.BlogPost{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return model.BlogPost{}, NewHTTPError(http.StatusConflict, "duplicate slug")
	}

	now := u.clock.Now()
	p := model.BlogPost{
		ID:         u.idGen.NewID(),
		Slug:       slug,
		TitleHy:    in.TitleHy,
		TitleRu:    in.TitleRu,
		TitleEn:    in.TitleEn,
		BodyHy:     in.BodyHy,
		BodyRu:     in.BodyRu,
		BodyEn:     in.BodyEn,
		AuthorID:   adminUserID,
		CategoryID: in.CategoryID,
		Status:     model.PostStatus(in.Status),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if p.Status == model.PostStatusPublished {
		p.PublishedAt = &now
	}

	if err := u.posts.Create(ctx, p, in.TagIDs); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return model.BlogPost{}, NewHTTPError(http.StatusConflict, "duplicate slug")
		}
		return model.BlogPost{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionCreate, model.AuditResourcePost, p.ID, nil, p)
	return p, nil
}

func (u *BlogUsecase) AdminUpdatePost(ctx context.Context, adminUserID string, postID string, in AdminPostInput) error {
	if adminUserID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if sanitize.UUID(postID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid post id")
	}

	slug := sanitize.Slug(in.Slug)
	if slug == "" {
		return NewHTTPError(http.StatusBadRequest, "slug required")
	}
	if err := in.validate(); err != nil {
		return err
	}

	before, err := u.posts.FindByID(ctx, postID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if slug != before.Slug {
		exists, err := u.posts.ExistsBySlug(ctx, slug)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if exists {
			return NewHTTPError(http.StatusConflict, "duplicate slug")
		}
	}

	after := before
	after.Slug = slug
	after.TitleHy = in.TitleHy
	after.TitleRu = in.TitleRu
	after.TitleEn = in.TitleEn
	after.BodyHy = in.BodyHy
	after.BodyRu = in.BodyRu
	after.BodyEn = in.BodyEn
	after.CategoryID = in.CategoryID
	after.Status = model.PostStatus(in.Status)

	//初回公開時にpublished_atを立てる
	if after.Status == model.PostStatusPublished && before.PublishedAt == nil {
		now := u.clock.Now()
		after.PublishedAt = &now
	}

	if err := u.posts.Update(ctx, after, in.TagIDs); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return NewHTTPError(http.StatusConflict, "duplicate slug")
		}
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionUpdate, model.AuditResourcePost, postID, before, after)
	return nil
}

func (u *BlogUsecase) AdminDeletePost(ctx context.Context, adminUserID string, postID string) error {
	if adminUserID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if sanitize.UUID(postID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid post id")
	}

	err := u.posts.Delete(ctx, postID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionDelete, model.AuditResourcePost, postID, nil, nil)
	return nil
}

type AdminTagInput struct {
	Slug   string
	NameHy string
	NameRu string
	NameEn string
}

func (u *BlogUsecase) AdminCreateTag(ctx context.Context, adminUserID string, in AdminTagInput) (model.BlogTag, error) {
	if adminUserID == "" {
		return model.BlogTag{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	slug := sanitize.Slug(in.Slug)
	if slug == "" {
		return model.BlogTag{}, NewHTTPError(http.StatusBadRequest, "slug required")
	}
	if in.NameEn == "" {
		return model.BlogTag{}, NewHTTPError(http.StatusBadRequest, "name_en required")
	}

	exists, err := u.tags.ExistsBySlug(ctx, slug)
	if err != nil {
		return model.BlogTag{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return model.BlogTag{}, NewHTTPError(http.StatusConflict, "duplicate slug")
	}

	t := model.BlogTag{
		ID:        u.idGen.NewID(),
		Slug:      slug,
		NameHy:    in.NameHy,
		NameRu:    in.NameRu,
		NameEn:    in.NameEn,
		CreatedAt: u.clock.Now(),
	}

	if err := u.tags.Create(ctx, t); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return model.BlogTag{}, NewHTTPError(http.StatusConflict, "duplicate slug")
		}
		return model.BlogTag{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionCreate, model.AuditResourceTag, t.ID, nil, t)
	return t, nil
}

func (u *BlogUsecase) AdminDeleteTag(ctx context.Context, adminUserID string, tagID string) error {
	if adminUserID == "" {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if sanitize.UUID(tagID) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid tag id")
	}

	err := u.tags.Delete(ctx, tagID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionDelete, model.AuditResourceTag, tagID, nil, nil)
	return nil
}

type AdminBlogCategoryInput struct {
	Slug   string
	NameHy string
	NameRu string
	NameEn string
}

func (u *BlogUsecase) AdminCreateBlogCategory(ctx context.Context, adminUserID string, in AdminBlogCategoryInput) (model.BlogCategory, error) {
	if adminUserID == "" {
		return model.BlogCategory{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	slug := sanitize.Slug(in.Slug)
	if slug == "" {
		return model.BlogCategory{}, NewHTTPError(http.StatusBadRequest, "slug required")
	}
	if in.NameEn == "" {
		return model.BlogCategory{}, NewHTTPError(http.StatusBadRequest, "name_en required")
	}

	exists, err := u.blogCats.ExistsBySlug(ctx, slug)
	if err != nil {
		return model.BlogCategory{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return model.BlogCategory{}, NewHTTPError(http.StatusConflict, "duplicate slug")
	}

	now := u.clock.Now()
	c := model.BlogCategory{
		ID:        u.idGen.NewID(),
		Slug:      slug,
		NameHy:    in.NameHy,
		NameRu:    in.NameRu,
		NameEn:    in.NameEn,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.blogCats.Create(ctx, c); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return model.BlogCategory{}, NewHTTPError(http.StatusConflict, "duplicate slug")
		}
		return model.BlogCategory{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	u.writeAudit(ctx, adminUserID, model.AuditActionCreate, model.AuditResourceBlogCategory, c.ID, nil, c)
	return c, nil
}

func (u *BlogUsecase) writeAudit(ctx context.Context, actorID string, action model.AuditAction, resource model.AuditResourceType, resourceID string, before, after interface{}) {
	writeAuditLog(ctx, u.audit, u.idGen, u.clock, actorID, action, resource, resourceID, before, after)
}
