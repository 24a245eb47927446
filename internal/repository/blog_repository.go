package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 記事一覧の検索条件。
type PostListQuery struct {
	Page  int
	Limit int

	Status     string
	CategoryID string
	AuthorID   string
	Search     string

	//タグ絞り込みの2段階目：このIDセットに制限する（nilなら制限なし）
	PostIDs []string

	Sort  string
	Order string
}

type PostRepository interface {
	List(ctx context.Context, q PostListQuery) ([]model.BlogPost, int64, error)
	FindBySlug(ctx context.Context, slug string) (model.BlogPost, error)
	FindByID(ctx context.Context, id string) (model.BlogPost, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	Create(ctx context.Context, p model.BlogPost, tagIDs []string) error
	Update(ctx context.Context, p model.BlogPost, tagIDs []string) error

	//post_tagsの行を先に消してから本体を消す（孤児行を残さない）
	Delete(ctx context.Context, id string) error

	//閲覧数の加算（best-effort呼び出し元が失敗を握りつぶす）
	IncrementViews(ctx context.Context, postID string) error
}

type TagRepository interface {
	ListAll(ctx context.Context) ([]model.BlogTag, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	//タグに紐づく記事IDの一覧（1段階目）
	ListPostIDsByTag(ctx context.Context, tagID string) ([]string, error)

	Create(ctx context.Context, t model.BlogTag) error
	Delete(ctx context.Context, id string) error
}

type BlogCategoryRepository interface {
	ListAll(ctx context.Context) ([]model.BlogCategory, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, c model.BlogCategory) error
}
