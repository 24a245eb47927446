package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItem struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   string `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID string `gorm:"type:uuid;not null;index" json:"product_id"`

	//注文時点のスナップショット
	ProductNameSnapshot string          `gorm:"type:varchar(255);not null" json:"product_name_snapshot"`
	UnitPrice           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	Quantity            int64           `gorm:"not null" json:"quantity"`

	//unit_price × quantity（サーバ側で再計算する）
	Subtotal decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
