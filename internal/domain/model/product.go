package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID         string `gorm:"type:uuid;primaryKey" json:"id"`
	Slug       string `gorm:"type:varchar(50);not null;uniqueIndex" json:"slug"`
	CategoryID string `gorm:"type:uuid;not null;index" json:"category_id"`
	BrandID    string `gorm:"type:uuid;not null;index" json:"brand_id"`

	//多言語名（hy/ru/en）
	NameHy string `gorm:"type:varchar(255);not null" json:"name_hy"`
	NameRu string `gorm:"type:varchar(255);not null" json:"name_ru"`
	NameEn string `gorm:"type:varchar(255);not null" json:"name_en"`

	DescriptionHy string `gorm:"type:text" json:"description_hy"`
	DescriptionRu string `gorm:"type:text" json:"description_ru"`
	DescriptionEn string `gorm:"type:text" json:"description_en"`

	Price         decimal.Decimal  `gorm:"type:decimal(12,2);not null" json:"price"`
	DiscountPrice *decimal.Decimal `gorm:"type:decimal(12,2)" json:"discount_price"`
	Stock         int64            `gorm:"not null;default:0" json:"stock"`

	IsFeatured bool `gorm:"not null;default:false" json:"is_featured"`
	IsNew      bool `gorm:"not null;default:false" json:"is_new"`
	IsActive   bool `gorm:"not null;default:false" json:"is_active"`

	//レビューの集計値（CreateRatingで再計算する）
	Rating      decimal.Decimal `gorm:"type:decimal(3,2);not null;default:0" json:"rating"`
	ReviewCount int64           `gorm:"not null;default:0" json:"review_count"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Brand    *Brand    `gorm:"foreignKey:BrandID" json:"brand,omitempty"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
