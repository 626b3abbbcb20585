package models

import (
	"time"
)

type Product struct {
	ID                   uint     `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name                 string   `gorm:"not null"                  json:"name"`
	Description          string   `gorm:"not null"                  json:"description"`
	Price                float64  `gorm:"not null"                  json:"price"`
	Category             string   `gorm:"index"                     json:"category"`
	Images               []string `gorm:"serializer:json"           json:"images"`
	Stock                uint     `json:"stock"`
	RequiresPrescription bool     `json:"requires_prescription"`
}

type Category struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string `gorm:"not null"                 json:"name"`
	Slug     string `gorm:"uniqueIndex;not null"     json:"slug"`
	ImageURL string `json:"image_url"`
}

type Store struct {
	ID      uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name    string  `gorm:"not null"                 json:"name"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type Page struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null"                 json:"title"`
	Slug        string    `gorm:"uniqueIndex;not null"     json:"slug"`
	Content     string    `json:"content"`
	LastUpdated time.Time `json:"last_updated"`
}

type User struct {
	ID             uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string   `gorm:"not null"                 json:"name"`
	Email          string   `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash   string   `json:"-"`
	Role           string   `gorm:"not null"                 json:"role"`
	SavedAddresses []string `gorm:"serializer:json"          json:"saved_addresses"`
}

type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"      json:"id"`
	Token     string `gorm:"unique;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"  json:"user_id"`
	Role      string `json:"role"`
	ExpiresAt int64  `gorm:"not null"        json:"expires_at"`
	Revoked   bool   `gorm:"default:false"   json:"revoked"`
}

type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
)

// statusRank orders the one-directional lifecycle Processing -> Shipped -> Delivered.
var statusRank = map[OrderStatus]int{
	OrderStatusProcessing: 1,
	OrderStatusShipped:    2,
	OrderStatusDelivered:  3,
}

func (s OrderStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanBecome reports whether next is the same status or a later one.
func (s OrderStatus) CanBecome(next OrderStatus) bool {
	return next.Valid() && statusRank[next] >= statusRank[s]
}

// OrderItem is a snapshot of a cart line taken at placement time. It carries its
// own copy of the product fields so later catalog edits never touch old orders.
type OrderItem struct {
	ProductID            uint    `json:"product_id"`
	Name                 string  `json:"name"`
	Price                float64 `json:"price"`
	Quantity             uint    `json:"quantity"`
	RequiresPrescription bool    `json:"requires_prescription"`
	PrescriptionProof    string  `json:"prescription_proof,omitempty"`
}

type Order struct {
	ID              string      `gorm:"primaryKey"      json:"id"`
	UserID          uint        `gorm:"index"           json:"user_id"`
	CustomerName    string      `json:"customer_name"`
	Date            time.Time   `json:"date"`
	Items           []OrderItem `gorm:"serializer:json" json:"items"`
	Total           float64     `json:"total"`
	Status          OrderStatus `gorm:"not null"        json:"status"`
	ShippingAddress string      `json:"shipping_address"`
	PaymentMethod   string      `json:"payment_method"`
}

type PaymentMethodType string

const (
	PaymentCOD    PaymentMethodType = "cod"
	PaymentCard   PaymentMethodType = "card"
	PaymentWallet PaymentMethodType = "wallet"
)

type PaymentMethod struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Type        PaymentMethodType `json:"type"`
	Enabled     bool              `json:"enabled"`
	Description string            `json:"description,omitempty"`
}

type HeroConfig struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"image_url"`
	CTAText  string `json:"cta_text"`
}

type ContactConfig struct {
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// AppSettings is a singleton row; the repository always reads and writes ID 1.
type AppSettings struct {
	ID              uint            `gorm:"primaryKey"      json:"-"`
	LogoURL         string          `json:"logo_url"`
	SiteName        string          `json:"site_name"`
	PrimaryColor    string          `json:"primary_color"`
	PaymentMethods  []PaymentMethod `gorm:"serializer:json" json:"payment_methods"`
	Hero            HeroConfig      `gorm:"serializer:json" json:"hero"`
	Contact         ContactConfig   `gorm:"serializer:json" json:"contact"`
	FooterAboutText string          `json:"footer_about_text"`
	CurrencySymbol  string          `json:"currency_symbol"`
	TaxRate         float64         `json:"tax_rate"`
}

// Normalize applies documented defaults and clamps out-of-range values so callers
// never see a half-filled settings object.
func (s *AppSettings) Normalize() {
	if s.SiteName == "" {
		s.SiteName = "PharmaCare Plus"
	}
	if s.CurrencySymbol == "" {
		s.CurrencySymbol = "$"
	}
	if s.TaxRate < 0 {
		s.TaxRate = 0
	}
	if s.TaxRate > 1 {
		s.TaxRate = 1
	}
	kept := s.PaymentMethods[:0]
	for _, pm := range s.PaymentMethods {
		if pm.ID == "" {
			continue
		}
		kept = append(kept, pm)
	}
	s.PaymentMethods = kept
}

// EnabledPaymentMethods returns the subset a customer may actually pick.
func (s AppSettings) EnabledPaymentMethods() []PaymentMethod {
	var out []PaymentMethod
	for _, pm := range s.PaymentMethods {
		if pm.Enabled {
			out = append(out, pm)
		}
	}
	return out
}
