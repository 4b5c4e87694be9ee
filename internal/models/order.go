package models

import "time"

// Order belongs to exactly one User and holds products through OrderProduct
type Order struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderDate time.Time      `gorm:"not null" json:"order_date"`
	UserID    uint64         `gorm:"not null;index" json:"user_id"`
	Items     []OrderProduct `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
}

// OrderProduct records that an order includes a product.
// The pair is the primary key, so a product is attached to an order at most once.
type OrderProduct struct {
	OrderID   uint64  `gorm:"primaryKey;autoIncrement:false;uniqueIndex:unique_order_product,priority:1"`
	ProductID uint64  `gorm:"primaryKey;autoIncrement:false;uniqueIndex:unique_order_product,priority:2;index"`
	Product   Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name for Order
func (Order) TableName() string {
	return "orders"
}

// TableName overrides the table name for OrderProduct
func (OrderProduct) TableName() string {
	return "order_product"
}
