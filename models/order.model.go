package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusNew       = "new"
	PaymentStatusPaid      = "paid"
	PaymentStatusCancelled = "cancelled"

	DeliveryStatusPending   = "pending"
	DeliveryStatusSent      = "sent"
	DeliveryStatusDelivered = "delivered"
)

// ContactSnapshot is the buyer's contact details captured at order time.
// It is written once and never updated, so later customer edits do not
// rewrite the history of past orders.
type ContactSnapshot struct {
	FullName string `json:"fullName"`
	Phone    string `json:"phone"`
	City     string `json:"city"`
	Address  string `json:"address"`
	Username string `json:"username,omitempty"`
}

func (s ContactSnapshot) Value() (driver.Value, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *ContactSnapshot) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	case nil:
		*s = ContactSnapshot{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into ContactSnapshot", src)
	}
}

type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SellerID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"seller_id"`
	Seller          *Seller         `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	CheckoutLinkID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"checkout_link_id"`
	CheckoutLink    *CheckoutLink   `gorm:"foreignKey:CheckoutLinkID" json:"checkout_link,omitempty"`
	CustomerID      *uuid.UUID      `gorm:"type:uuid;index" json:"customer_id"`
	Customer        *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Quantity        int             `gorm:"not null" json:"quantity"`
	TotalPrice      int64           `gorm:"not null" json:"total_price"`
	SelectedSize    string          `gorm:"type:varchar(50);not null" json:"selected_size"`
	DeliveryMethod  string          `gorm:"type:varchar(50);not null" json:"delivery_method"`
	ContactSnapshot ContactSnapshot `gorm:"type:text;not null" json:"contact_snapshot"`
	PaymentStatus   string          `gorm:"type:varchar(20);not null;default:'new'" json:"payment_status"`
	DeliveryStatus  string          `gorm:"type:varchar(20);not null;default:'pending'" json:"delivery_status"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.NewV4()
	}
	return nil
}

type BuyerInput struct {
	FullName string `json:"fullName" validate:"required"`
	Phone    string `json:"phone" validate:"required,uzphone"`
	City     string `json:"city" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Username string `json:"username"`
}

type CreateOrderInput struct {
	CheckoutLinkID string     `json:"checkout_link_id" validate:"required"`
	Quantity       int        `json:"quantity" validate:"required,gt=0"`
	SelectedSize   string     `json:"selected_size" validate:"required"`
	DeliveryMethod string     `json:"delivery_method" validate:"required,oneof=courierCity pickup region"`
	Buyer          BuyerInput `json:"buyer" validate:"required"`
	SaveDetails    bool       `json:"save_details"`
}

// UpdateOrderStatusInput leaves a status untouched when the field is omitted.
type UpdateOrderStatusInput struct {
	ID             string  `json:"id" validate:"required"`
	PaymentStatus  *string `json:"payment_status" validate:"omitempty,oneof=new paid cancelled"`
	DeliveryStatus *string `json:"delivery_status" validate:"omitempty,oneof=pending sent delivered"`
}
