package repository

import (
	"context"
	"errors"

	"github.com/pharmacare/storefront/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrStatusRegression is returned when an order status update would move
	// the one-directional lifecycle backwards.
	ErrStatusRegression = errors.New("order status cannot move backwards")
)

// OrderRepository is the persistence boundary checkout and the back office
// depend on. Checkout only cares about the success or failure of Create.
type OrderRepository interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error
	FindByID(ctx context.Context, orderID string) (models.Order, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Order, error)
}

// CatalogRepository covers the admin-editable reference data: products,
// categories, stores and info pages. Save upserts by id.
type CatalogRepository interface {
	Products(ctx context.Context) ([]models.Product, error)
	ProductByID(ctx context.Context, id uint) (models.Product, error)
	SaveProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id uint) error

	Categories(ctx context.Context) ([]models.Category, error)
	SaveCategory(ctx context.Context, c *models.Category) error
	DeleteCategory(ctx context.Context, id uint) error

	Stores(ctx context.Context) ([]models.Store, error)
	SaveStore(ctx context.Context, s *models.Store) error
	DeleteStore(ctx context.Context, id uint) error

	Pages(ctx context.Context) ([]models.Page, error)
	PageBySlug(ctx context.Context, slug string) (models.Page, error)
	SavePage(ctx context.Context, p *models.Page) error
	DeletePage(ctx context.Context, id uint) error
}

// SettingsRepository reads and writes the AppSettings singleton.
type SettingsRepository interface {
	Get(ctx context.Context) (models.AppSettings, error)
	Save(ctx context.Context, s models.AppSettings) error
}
