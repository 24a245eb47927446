package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

type PostGormRepository struct {
	db *gorm.DB
}

func NewPostGormRepository(db *gorm.DB) *PostGormRepository {
	return &PostGormRepository{db: db}
}

func (r *PostGormRepository) List(ctx context.Context, q repo.PostListQuery) ([]model.BlogPost, int64, error) {
	var posts []model.BlogPost
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.BlogPost{})

	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.CategoryID != "" {
		tx = tx.Where("category_id = ?", q.CategoryID)
	}
	if q.AuthorID != "" {
		tx = tx.Where("author_id = ?", q.AuthorID)
	}

	//タグ絞り込みの2段階目（IDセットへの制限）
	if q.PostIDs != nil {
		tx = tx.Where("id IN ?", q.PostIDs)
	}

	if q.Search != "" {
		like := "%" + q.Search + "%"
		tx = tx.Where("title_hy ILIKE ? OR title_ru ILIKE ? OR title_en ILIKE ?", like, like, like)
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.BlogPost{}, 0, err
	}

	tx = tx.Order(orderClause(postSortColumn(q.Sort), q.Order)).Order("id asc")

	offset := (q.Page - 1) * q.Limit
	err := tx.Preload("Category").Preload("Tags").
		Offset(offset).Limit(q.Limit).
		Find(&posts).Error
	if err != nil {
		return []model.BlogPost{}, 0, err
	}

	return posts, total, nil
}

func postSortColumn(sort string) string {
	switch sort {
	case "published_at":
		return "published_at"
	case "views":
		return "views"
	default:
		return "created_at"
	}
}

// スラッグで記事を取得（著者・カテゴリ・タグを同時に引く）
func (r *PostGormRepository) FindBySlug(ctx context.Context, slug string) (model.BlogPost, error) {
	var p model.BlogPost
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Where("slug = ?", slug).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.BlogPost{}, repo.ErrNotFound
	}
	if err != nil {
		return model.BlogPost{}, err
	}
	return p, nil
}

func (r *PostGormRepository) FindByID(ctx context.Context, id string) (model.BlogPost, error) {
	var p model.BlogPost
	err := r.db.WithContext(ctx).Preload("Tags").Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.BlogPost{}, repo.ErrNotFound
	}
	if err != nil {
		return model.BlogPost{}, err
	}
	return p, nil
}

func (r *PostGormRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BlogPost{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PostGormRepository) Create(ctx context.Context, p model.BlogPost, tagIDs []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags").Create(&p).Error; err != nil {
			return err
		}
		return replacePostTags(tx, &p, tagIDs)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return repo.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *PostGormRepository) Update(ctx context.Context, p model.BlogPost, tagIDs []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.BlogPost{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
			"slug":         p.Slug,
			"title_hy":     p.TitleHy,
			"title_ru":     p.TitleRu,
			"title_en":     p.TitleEn,
			"body_hy":      p.BodyHy,
			"body_ru":      p.BodyRu,
			"body_en":      p.BodyEn,
			"category_id":  p.CategoryID,
			"status":       p.Status,
			"published_at": p.PublishedAt,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return replacePostTags(tx, &p, tagIDs)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return repo.ErrDuplicate
		}
		return err
	}
	return nil
}

// post_tagsの行を張り替える
func replacePostTags(tx *gorm.DB, p *model.BlogPost, tagIDs []string) error {
	if tagIDs == nil {
		return nil
	}
	tags := make([]model.BlogTag, 0, len(tagIDs))
	for _, id := range tagIDs {
		tags = append(tags, model.BlogTag{ID: id})
	}
	return tx.Model(p).Association("Tags").Replace(&tags)
}

// 記事削除。先にpost_tagsの行を消してから本体を消す（孤児行を残さない）。
func (r *PostGormRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM post_tags WHERE blog_post_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.BlogPost{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}

// 閲覧数を1加算する。行が無くてもエラーにしない（best-effort前提）。
func (r *PostGormRepository) IncrementViews(ctx context.Context, postID string) error {
	return r.db.WithContext(ctx).Model(&model.BlogPost{}).
		Where("id = ?", postID).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

type TagGormRepository struct {
	db *gorm.DB
}

func NewTagGormRepository(db *gorm.DB) *TagGormRepository {
	return &TagGormRepository{db: db}
}

func (r *TagGormRepository) ListAll(ctx context.Context) ([]model.BlogTag, error) {
	var items []model.BlogTag
	err := r.db.WithContext(ctx).Order("name_en asc").Find(&items).Error
	if err != nil {
		return []model.BlogTag{}, err
	}
	return items, nil
}

func (r *TagGormRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BlogTag{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// タグに紐づく記事IDの一覧（タグ絞り込みの1段階目）
func (r *TagGormRepository) ListPostIDsByTag(ctx context.Context, tagID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table("post_tags").
		Where("blog_tag_id = ?", tagID).
		Pluck("blog_post_id", &ids).Error
	if err != nil {
		return []string{}, err
	}
	return ids, nil
}

func (r *TagGormRepository) Create(ctx context.Context, t model.BlogTag) error {
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		if isUniqueViolation(err) {
			return repo.ErrDuplicate
		}
		return err
	}
	return nil
}

// タグ削除。先にpost_tagsの行を消す。
func (r *TagGormRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM post_tags WHERE blog_tag_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.BlogTag{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}

type BlogCategoryGormRepository struct {
	db *gorm.DB
}

func NewBlogCategoryGormRepository(db *gorm.DB) *BlogCategoryGormRepository {
	return &BlogCategoryGormRepository{db: db}
}

func (r *BlogCategoryGormRepository) ListAll(ctx context.Context) ([]model.BlogCategory, error) {
	var items []model.BlogCategory
	err := r.db.WithContext(ctx).Order("name_en asc").Find(&items).Error
	if err != nil {
		return []model.BlogCategory{}, err
	}
	return items, nil
}

func (r *BlogCategoryGormRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.BlogCategory{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BlogCategoryGormRepository) Create(ctx context.Context, c model.BlogCategory) error {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		if isUniqueViolation(err) {
			return repo.ErrDuplicate
		}
		return err
	}
	return nil
}
