package models

// User is a customer record. Email is unique across all users.
type User struct {
	ID      uint64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string  `gorm:"size:255;not null" json:"name"`
	Address string  `gorm:"size:255;not null" json:"address"`
	Email   string  `gorm:"size:255;not null;uniqueIndex:idx_users_email" json:"email"`
	Orders  []Order `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
