package model

import "time"

// (product, user) の組で最大1件。複合uniqueIndexがDB側の本体。
type ProductRating struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID string    `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_product_user" json:"product_id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_ratings_product_user" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
