package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus enumerates the book order lifecycle. Any enumerated value may be
// set from any current state; completed and cancelled are terminal by
// convention only.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

type BlogCategory struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"not null"                 json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null"     json:"slug"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type BlogTag struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null"     json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type BlogPost struct {
	ID               uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title            string     `gorm:"not null"                 json:"title"`
	Slug             string     `gorm:"uniqueIndex;not null"     json:"slug"`
	Content          string     `gorm:"not null"                 json:"content"`
	Excerpt          *string    `json:"excerpt"`
	FeaturedImageURL *string    `json:"featured_image_url"`
	CategoryID       uint       `gorm:"index;not null"           json:"category_id"`
	Published        bool       `gorm:"not null;default:false"   json:"published"`
	PublishedAt      *time.Time `json:"published_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// BlogPostTag is the post/tag junction row.
type BlogPostTag struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"           json:"id"`
	PostID    uint      `gorm:"index:idx_post_tag,unique;not null" json:"post_id"`
	TagID     uint      `gorm:"index:idx_post_tag,unique;not null" json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}

type BlogComment struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID      uint      `gorm:"index;not null"           json:"post_id"`
	AuthorName  string    `gorm:"not null"                 json:"author_name"`
	AuthorEmail string    `gorm:"not null"                 json:"author_email"`
	Content     string    `gorm:"not null"                 json:"content"`
	Approved    bool      `gorm:"not null;default:false"   json:"approved"`
	CreatedAt   time.Time `json:"created_at"`
}

type Book struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	Title         string          `gorm:"not null"                    json:"title"`
	Author        string          `gorm:"not null"                    json:"author"`
	ISBN          *string         `json:"isbn"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	CoverImageURL *string         `json:"cover_image_url"`
	StockQuantity int             `gorm:"not null;default:0"          json:"stock_quantity"`
	PublishedYear *int            `json:"published_year"`
	Publisher     *string         `json:"publisher"`
	Available     bool            `gorm:"not null;default:true"       json:"available"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type BookOrder struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	CustomerName    string          `gorm:"not null"                    json:"customer_name"`
	CustomerEmail   string          `gorm:"not null"                    json:"customer_email"`
	CustomerPhone   string          `gorm:"not null"                    json:"customer_phone"`
	CustomerAddress string          `gorm:"not null"                    json:"customer_address"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	Status          OrderStatus     `gorm:"not null;default:pending"    json:"status"`
	Notes           *string         `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// BookOrderItem snapshots the book price at order time; Price is never
// recomputed from the live catalog.
type BookOrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID   uint            `gorm:"index;not null"              json:"order_id"`
	BookID    uint            `gorm:"not null"                    json:"book_id"`
	Quantity  int             `gorm:"not null"                    json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}

type Subscription struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Email          string     `gorm:"uniqueIndex;not null"     json:"email"`
	Name           *string    `json:"name"`
	Active         bool       `gorm:"not null;default:true"    json:"active"`
	SubscribedAt   time.Time  `gorm:"autoCreateTime"           json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at"`
}

type WhatsappContact struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null"                 json:"name"`
	Phone     string    `gorm:"not null"                 json:"phone"`
	Notes     *string   `json:"notes"`
	Active    bool      `gorm:"not null;default:true"    json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&BlogCategory{},
		&BlogTag{},
		&BlogPost{},
		&BlogPostTag{},
		&BlogComment{},
		&Book{},
		&BookOrder{},
		&BookOrderItem{},
		&Subscription{},
		&WhatsappContact{},
	)
}
