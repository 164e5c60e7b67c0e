package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"
)

// StringList is stored as a JSON array in a single column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

// DeliveryOptions is the set of delivery methods a seller enables for a link.
type DeliveryOptions struct {
	CourierCity bool `json:"courierCity"`
	Pickup      bool `json:"pickup"`
	Region      bool `json:"region"`
}

func (o DeliveryOptions) Value() (driver.Value, error) {
	b, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (o *DeliveryOptions) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	case nil:
		*o = DeliveryOptions{}
		return nil
	default:
		return fmt.Errorf("cannot scan %T into DeliveryOptions", src)
	}
}

func (o DeliveryOptions) Any() bool {
	return o.CourierCity || o.Pickup || o.Region
}

// Allows reports whether the given method name is one of the enabled options.
func (o DeliveryOptions) Allows(method string) bool {
	switch method {
	case "courierCity":
		return o.CourierCity
	case "pickup":
		return o.Pickup
	case "region":
		return o.Region
	}
	return false
}

type CheckoutLink struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SellerID        uuid.UUID       `gorm:"type:uuid;not null;index;uniqueIndex:idx_seller_link_slug" json:"seller_id"`
	Seller          *Seller         `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Name            string          `gorm:"type:varchar(255);not null" json:"name"`
	Slug            string          `gorm:"type:varchar(100);not null;uniqueIndex:idx_seller_link_slug" json:"slug"`
	Price           int64           `gorm:"not null" json:"price"`
	Currency        string          `gorm:"type:varchar(10);not null;default:'UZS'" json:"currency"`
	DefaultQty      int             `gorm:"not null;default:1" json:"default_qty"`
	MaxQty          *int            `json:"max_qty"`
	ImageUrl        string          `gorm:"type:varchar(500)" json:"image_url"`
	Sizes           StringList      `gorm:"type:text;not null" json:"sizes"`
	DeliveryOptions DeliveryOptions `gorm:"type:text;not null" json:"delivery_options"`
	PaymentNote     string          `gorm:"type:text;not null" json:"payment_note"`
	Visits          int64           `gorm:"not null;default:0" json:"visits"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	Orders          []Order         `gorm:"foreignKey:CheckoutLinkID" json:"-"`
}

func (c *CheckoutLink) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.NewV4()
	}
	return nil
}

type CheckoutLinkInput struct {
	Name            string          `json:"name" validate:"required"`
	Price           int64           `json:"price" validate:"required,gt=0"`
	Currency        string          `json:"currency"`
	DefaultQty      int             `json:"default_qty" validate:"omitempty,gt=0"`
	MaxQty          *int            `json:"max_qty" validate:"omitempty,gt=0"`
	ImageUrl        string          `json:"image_url" validate:"omitempty,url"`
	Sizes           []string        `json:"sizes" validate:"required,min=1,dive,required"`
	DeliveryOptions DeliveryOptions `json:"delivery_options"`
	PaymentNote     string          `json:"payment_note" validate:"required"`
}

var ErrNoDeliveryOption = errors.New("at least one delivery option must be enabled")

// Check runs the struct-level rules the validator tags cannot express.
func (in *CheckoutLinkInput) Check() error {
	if !in.DeliveryOptions.Any() {
		return ErrNoDeliveryOption
	}
	return nil
}
