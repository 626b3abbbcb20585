package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pharmacare/storefront/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.Category{},
		&models.Store{},
		&models.Page{},
		&models.Order{},
		&models.AppSettings{},
	))
	return NewGormRepo(db)
}

func sampleOrder(id string, userID uint, placed time.Time) *models.Order {
	return &models.Order{
		ID:           id,
		UserID:       userID,
		CustomerName: "Jordan Lee",
		Date:         placed,
		Items: []models.OrderItem{
			{ProductID: 2, Name: "Vitamin D3 Supplements", Price: 24.50, Quantity: 2},
		},
		Total:           52.92,
		Status:          models.OrderStatusProcessing,
		ShippingAddress: "123 Maple St, Cityville, 10001",
		PaymentMethod:   "cod",
	}
}

func TestOrderCreateAndFind(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	placed := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, sampleOrder("ORD-1001", 7, placed)))

	got, err := repo.FindByID(ctx, "ORD-1001")
	require.NoError(t, err)
	require.Equal(t, "Jordan Lee", got.CustomerName)
	require.Equal(t, models.OrderStatusProcessing, got.Status)
	require.Len(t, got.Items, 1)
	require.Equal(t, uint(2), got.Items[0].Quantity)
	require.InDelta(t, 52.92, got.Total, 1e-9)
}

func TestOrderFindByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.FindByID(context.Background(), "ORD-missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOrderGetAllNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	older := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, sampleOrder("ORD-1", 1, older)))
	require.NoError(t, repo.Create(ctx, sampleOrder("ORD-2", 1, newer)))

	orders, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, "ORD-2", orders[0].ID)
	require.Equal(t, "ORD-1", orders[1].ID)
}

func TestOrderListByUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	placed := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, sampleOrder("ORD-A", 1, placed)))
	require.NoError(t, repo.Create(ctx, sampleOrder("ORD-B", 2, placed.Add(time.Hour))))

	mine, err := repo.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "ORD-A", mine[0].ID)
}

func TestUpdateStatusForwardOnly(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleOrder("ORD-10", 1, time.Now().UTC())))

	require.NoError(t, repo.UpdateStatus(ctx, "ORD-10", models.OrderStatusShipped))

	// Repeating the current status is accepted.
	require.NoError(t, repo.UpdateStatus(ctx, "ORD-10", models.OrderStatusShipped))

	// Moving backwards is not.
	err := repo.UpdateStatus(ctx, "ORD-10", models.OrderStatusProcessing)
	require.ErrorIs(t, err, ErrStatusRegression)

	got, err := repo.FindByID(ctx, "ORD-10")
	require.NoError(t, err)
	require.Equal(t, models.OrderStatusShipped, got.Status)
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.UpdateStatus(context.Background(), "ORD-nope", models.OrderStatusDelivered)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestOrderSnapshotSurvivesCatalogEdit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := &models.Product{Name: "Hydrocortisone Cream", Price: 18.75, Images: []string{"cream.jpg"}, Stock: 5}
	require.NoError(t, repo.SaveProduct(ctx, p))

	order := &models.Order{
		ID:     "ORD-20",
		UserID: 3,
		Date:   time.Now().UTC(),
		Items: []models.OrderItem{
			{ProductID: p.ID, Name: p.Name, Price: p.Price, Quantity: 1},
		},
		Total:  18.75,
		Status: models.OrderStatusProcessing,
	}
	require.NoError(t, repo.Create(ctx, order))

	p.Price = 99.99
	require.NoError(t, repo.SaveProduct(ctx, p))

	got, err := repo.FindByID(ctx, "ORD-20")
	require.NoError(t, err)
	require.InDelta(t, 18.75, got.Items[0].Price, 1e-9)
}

func TestPageBySlug(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SavePage(ctx, &models.Page{Title: "About Us", Slug: "about", Content: "hello"}))

	got, err := repo.PageBySlug(ctx, "about")
	require.NoError(t, err)
	require.Equal(t, "About Us", got.Title)

	_, err = repo.PageBySlug(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSettingsSingletonNormalized(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	in := models.AppSettings{
		SiteName: "",
		TaxRate:  1.7,
		PaymentMethods: []models.PaymentMethod{
			{ID: "cod", Name: "Cash on Delivery", Type: models.PaymentCOD, Enabled: true},
			{ID: "", Name: "broken entry"},
		},
	}
	require.NoError(t, repo.Save(ctx, in))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "PharmaCare Plus", got.SiteName)
	require.Equal(t, 1.0, got.TaxRate)
	require.Len(t, got.PaymentMethods, 1)
	require.Equal(t, "cod", got.PaymentMethods[0].ID)

	// A second save still lands on the same row.
	got.SiteName = "Renamed Pharmacy"
	require.NoError(t, repo.Save(ctx, got))

	again, err := repo.Get(ctx)
	require.NoError(t, err)
	require.Equal(t, "Renamed Pharmacy", again.SiteName)

	var count int64
	require.NoError(t, repo.DB.Model(&models.AppSettings{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}
