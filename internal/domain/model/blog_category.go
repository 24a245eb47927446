package model

import "time"

type BlogCategory struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	Slug   string `gorm:"type:varchar(50);not null;uniqueIndex" json:"slug"`
	NameHy string `gorm:"type:varchar(255);not null" json:"name_hy"`
	NameRu string `gorm:"type:varchar(255);not null" json:"name_ru"`
	NameEn string `gorm:"type:varchar(255);not null" json:"name_en"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
