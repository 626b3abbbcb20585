package cart

import (
	"testing"

	"github.com/pharmacare/storefront/internal/models"
	"github.com/stretchr/testify/require"
)

func gelProduct() models.Product {
	return models.Product{
		ID:       101,
		Name:     "Advanced Pain Relief Gel",
		Price:    12.99,
		Category: "Pain Relief",
		Images:   []string{"https://example.com/gel.jpg"},
		Stock:    50,
	}
}

func TestAddItemAccumulates(t *testing.T) {
	c := New(nil)

	c.AddItem(gelProduct(), 2)
	c.AddItem(gelProduct(), 3)

	items := c.Items()
	require.Len(t, items, 1)
	require.Equal(t, uint(5), items[0].Quantity)
}

func TestAddItemClampsQuantity(t *testing.T) {
	c := New(nil)
	c.AddItem(gelProduct(), 0)

	items := c.Items()
	require.Len(t, items, 1)
	require.Equal(t, uint(1), items[0].Quantity)
}

func TestRemoveItemAbsentIsNoop(t *testing.T) {
	c := New(nil)
	c.AddItem(gelProduct(), 1)

	c.RemoveItem(999)
	require.Equal(t, 1, c.Len())

	c.RemoveItem(101)
	require.Equal(t, 0, c.Len())
}

func TestUpdateQuantityFloor(t *testing.T) {
	c := New(nil)
	c.AddItem(gelProduct(), 4)

	c.UpdateQuantity(101, 2)
	require.Equal(t, uint(2), c.Items()[0].Quantity)

	c.UpdateQuantity(101, 0)
	require.Equal(t, 0, c.Len())

	c.AddItem(gelProduct(), 4)
	c.UpdateQuantity(101, -5)
	require.Equal(t, 0, c.Len())
}

func TestAttachAndClearPrescription(t *testing.T) {
	rx := gelProduct()
	rx.RequiresPrescription = true

	c := New(nil)
	c.AddItem(rx, 1)
	require.Equal(t, []string{rx.Name}, c.PendingPrescriptions())

	c.AttachPrescription(rx.ID, "rx-scan.pdf")
	require.Empty(t, c.PendingPrescriptions())
	require.Equal(t, "rx-scan.pdf", c.Items()[0].PrescriptionProof)

	// Clearing the proof re-blocks the item.
	c.AttachPrescription(rx.ID, "")
	require.Equal(t, []string{rx.Name}, c.PendingPrescriptions())

	// Absent product id changes nothing.
	c.AttachPrescription(999, "whatever.pdf")
	require.Equal(t, []string{rx.Name}, c.PendingPrescriptions())
}

func TestTotals(t *testing.T) {
	bandages := models.Product{ID: 103, Name: "Premium Bandages Pack", Price: 5.99}

	c := New(nil)
	c.AddItem(gelProduct(), 1)
	c.AddItem(bandages, 2)

	require.InDelta(t, 24.97, c.Subtotal(), 1e-9)
	require.InDelta(t, 1.9976, c.Tax(0.08), 1e-9)
	require.InDelta(t, 26.9676, c.Total(0.08), 1e-9)
}

func TestItemsIsDeepCopy(t *testing.T) {
	c := New(nil)
	c.AddItem(gelProduct(), 1)

	snapshot := c.Items()
	snapshot[0].Quantity = 42
	snapshot[0].Product.Images[0] = "tampered"

	fresh := c.Items()
	require.Equal(t, uint(1), fresh[0].Quantity)
	require.Equal(t, "https://example.com/gel.jpg", fresh[0].Product.Images[0])
}

func TestStoreHandsOutSameCartPerUser(t *testing.T) {
	s := NewStore(nil)

	a := s.Get(7)
	a.AddItem(gelProduct(), 1)

	require.Equal(t, 1, s.Get(7).Len())
	require.Equal(t, 0, s.Get(8).Len())
}
