package models

import (
	"time"

	uuid "github.com/satori/go.uuid"
	"gorm.io/gorm"
)

type Seller struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	Slug           string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Email          string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	InstagramUrl   string         `gorm:"type:varchar(255)" json:"instagram_url"`
	TelegramChatID int64          `gorm:"default:0" json:"telegram_chat_id"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	CheckoutLinks  []CheckoutLink `gorm:"foreignKey:SellerID" json:"-"`
	Customers      []Customer     `gorm:"foreignKey:SellerID" json:"-"`
	Orders         []Order        `gorm:"foreignKey:SellerID" json:"-"`
}

func (s *Seller) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.NewV4()
	}
	return nil
}

type SignUpInput struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	InstagramUrl   string `json:"instagram_url" validate:"omitempty,url"`
	TelegramChatID int64  `json:"telegram_chat_id"`
}

type SignInInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SellerResponse is the public shape of a seller, without the password hash.
type SellerResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Email        string    `json:"email"`
	InstagramUrl string    `json:"instagram_url"`
	CreatedAt    time.Time `json:"created_at"`
}

func FilterSellerRecord(seller *Seller) SellerResponse {
	return SellerResponse{
		ID:           seller.ID,
		Name:         seller.Name,
		Slug:         seller.Slug,
		Email:        seller.Email,
		InstagramUrl: seller.InstagramUrl,
		CreatedAt:    seller.CreatedAt,
	}
}
