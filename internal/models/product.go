package models

// Product is a catalog entry. Names are not unique.
type Product struct {
	ID          uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductName string  `gorm:"size:255;not null" json:"product_name"`
	Price       float64 `gorm:"not null;default:0" json:"price"`
}

// TableName overrides the table name for Product
func (Product) TableName() string {
	return "products"
}
