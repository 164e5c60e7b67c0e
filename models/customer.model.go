package models

import (
	"time"

	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"
)

// Customer is deduplicated per seller by phone number.
type Customer struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SellerID       uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_seller_phone" json:"seller_id"`
	FullName       string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Phone          string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_seller_phone" json:"phone"`
	City           string    `gorm:"type:varchar(100)" json:"city"`
	Address        string    `gorm:"type:varchar(500)" json:"address"`
	Username       string    `gorm:"type:varchar(100)" json:"username"`
	MarketingOptIn bool      `gorm:"not null;default:false" json:"marketing_opt_in"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	LastUsedAt     time.Time `json:"last_used_at"`
	Orders         []Order   `gorm:"foreignKey:CustomerID" json:"-"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.NewV4()
	}
	return nil
}

// CustomerWithStats is the list projection for the customer directory.
type CustomerWithStats struct {
	ID             uuid.UUID  `json:"id"`
	FullName       string     `json:"full_name"`
	Phone          string     `json:"phone"`
	City           string     `json:"city"`
	Address        string     `json:"address"`
	Username       string     `json:"username"`
	MarketingOptIn bool       `json:"marketing_opt_in"`
	CreatedAt      time.Time  `json:"created_at"`
	LastUsedAt     time.Time  `json:"last_used_at"`
	TotalOrders    int64      `json:"total_orders"`
	LastOrderDate  *time.Time `json:"last_order_date"`
}
