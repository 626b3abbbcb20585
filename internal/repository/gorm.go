package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/pharmacare/storefront/internal/models"
)

// GormRepo implements the repository contracts on top of GORM. The backend
// behind the *gorm.DB (postgres or embedded sqlite) is decided once at
// startup in config.InitDB.
type GormRepo struct {
	DB *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

// --- orders ---

func (r *GormRepo) GetAll(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Order("date DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) Create(ctx context.Context, order *models.Order) error {
	return r.DB.WithContext(ctx).Create(order).Error
}

// UpdateStatus is idempotent: setting the current status again succeeds and
// changes nothing. Moving backwards fails with ErrStatusRegression.
func (r *GormRepo) UpdateStatus(ctx context.Context, orderID string, status models.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid status %q", status)
	}

	var order models.Order
	if err := r.DB.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if order.Status == status {
		return nil
	}
	if !order.Status.CanBecome(status) {
		return ErrStatusRegression
	}

	return r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("status", status).Error
}

func (r *GormRepo) FindByID(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrNotFound
		}
		return models.Order{}, err
	}
	return order, nil
}

func (r *GormRepo) ListByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// --- products ---

func (r *GormRepo) Products(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) ProductByID(ctx context.Context, id uint) (models.Product, error) {
	var p models.Product
	if err := r.DB.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, ErrNotFound
		}
		return models.Product{}, err
	}
	return p, nil
}

func (r *GormRepo) SaveProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Product{}, id).Error
}

// --- categories ---

func (r *GormRepo) Categories(ctx context.Context) ([]models.Category, error) {
	var items []models.Category
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) SaveCategory(ctx context.Context, c *models.Category) error {
	return r.DB.WithContext(ctx).Save(c).Error
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Category{}, id).Error
}

// --- stores ---

func (r *GormRepo) Stores(ctx context.Context) ([]models.Store, error) {
	var items []models.Store
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) SaveStore(ctx context.Context, s *models.Store) error {
	return r.DB.WithContext(ctx).Save(s).Error
}

func (r *GormRepo) DeleteStore(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Store{}, id).Error
}

// --- pages ---

func (r *GormRepo) Pages(ctx context.Context) ([]models.Page, error) {
	var items []models.Page
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) PageBySlug(ctx context.Context, slug string) (models.Page, error) {
	var p models.Page
	if err := r.DB.WithContext(ctx).Where("slug = ?", slug).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Page{}, ErrNotFound
		}
		return models.Page{}, err
	}
	return p, nil
}

func (r *GormRepo) SavePage(ctx context.Context, p *models.Page) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *GormRepo) DeletePage(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Page{}, id).Error
}

// --- settings ---

func (r *GormRepo) Get(ctx context.Context) (models.AppSettings, error) {
	var s models.AppSettings
	if err := r.DB.WithContext(ctx).First(&s, 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.AppSettings{}, ErrNotFound
		}
		return models.AppSettings{}, err
	}
	s.Normalize()
	return s, nil
}

func (r *GormRepo) Save(ctx context.Context, s models.AppSettings) error {
	s.ID = 1
	s.Normalize()
	return r.DB.WithContext(ctx).Save(&s).Error
}
