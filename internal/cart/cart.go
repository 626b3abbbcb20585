package cart

import (
	"fmt"
	"sync"

	"github.com/pharmacare/storefront/internal/models"
	"github.com/pharmacare/storefront/internal/notify"
)

// Item is one cart line: the product it references plus the quantity and, for
// regulated products, the uploaded proof of prescription.
type Item struct {
	models.Product
	Quantity          uint   `json:"quantity"`
	PrescriptionProof string `json:"prescription_proof,omitempty"`
}

// Cart holds the line items of a single session. At most one item per product
// id; every quantity is >= 1. Carts are transient and never persisted.
type Cart struct {
	mu      sync.Mutex
	items   []Item
	emitter notify.Emitter
}

func New(emitter notify.Emitter) *Cart {
	return &Cart{emitter: emitter}
}

func (c *Cart) toast(message, kind string) {
	if c.emitter != nil {
		c.emitter.Show(message, kind)
	}
}

// AddItem puts quantity units of product in the cart, accumulating onto an
// existing line for the same product. Quantities below one are clamped to one.
func (c *Cart) AddItem(product models.Product, quantity uint) {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	found := false
	for i := range c.items {
		if c.items[i].Product.ID == product.ID {
			c.items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		c.items = append(c.items, Item{Product: product, Quantity: quantity})
	}
	c.mu.Unlock()

	c.toast(fmt.Sprintf("Added %d %s to cart", quantity, product.Name), notify.KindSuccess)
}

// RemoveItem drops the line for productID; absent ids are a no-op.
func (c *Cart) RemoveItem(productID uint) {
	c.mu.Lock()
	removed := false
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			removed = true
			break
		}
	}
	c.mu.Unlock()

	if removed {
		c.toast("Item removed from cart", notify.KindInfo)
	}
}

// UpdateQuantity overwrites the quantity of the matching line. Zero or
// negative quantities remove the line instead, so no line ever carries a
// quantity below one.
func (c *Cart) UpdateQuantity(productID uint, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}

	c.mu.Lock()
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = uint(quantity)
			break
		}
	}
	c.mu.Unlock()
}

// AttachPrescription sets the proof on the matching line; an empty proof
// clears it. Absent ids are a no-op.
func (c *Cart) AttachPrescription(productID uint, proof string) {
	c.mu.Lock()
	found := false
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].PrescriptionProof = proof
			found = true
			break
		}
	}
	c.mu.Unlock()

	if !found {
		return
	}
	if proof != "" {
		c.toast("Prescription attached successfully", notify.KindSuccess)
	} else {
		c.toast("Prescription removed", notify.KindInfo)
	}
}

// Clear empties the cart. Called once, after an order is confirmed persisted.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Items returns a deep copy of the cart lines. Mutating the result (or the
// cart afterwards) affects only one side; orders are synthesized from this.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Item, len(c.items))
	copy(out, c.items)
	for i := range out {
		images := make([]string, len(out[i].Product.Images))
		copy(images, out[i].Product.Images)
		out[i].Product.Images = images
	}
	return out
}

func (c *Cart) Subtotal() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var sum float64
	for _, it := range c.items {
		sum += it.Product.Price * float64(it.Quantity)
	}
	return sum
}

func (c *Cart) Tax(rate float64) float64 {
	return c.Subtotal() * rate
}

func (c *Cart) Total(rate float64) float64 {
	sub := c.Subtotal()
	return sub + sub*rate
}

// PendingPrescriptions lists the names of regulated items that still have no
// proof attached. A non-empty result blocks checkout.
func (c *Cart) PendingPrescriptions() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	var names []string
	for _, it := range c.items {
		if it.Product.RequiresPrescription && it.PrescriptionProof == "" {
			names = append(names, it.Product.Name)
		}
	}
	return names
}

// Store hands out the cart belonging to a user id, creating it on first use.
// Each session owns its cart and emits feedback into that user's toast queue;
// the registry lock only guards the map.
type Store struct {
	mu    sync.RWMutex
	carts map[uint]*Cart
	hub   *notify.Hub
}

func NewStore(hub *notify.Hub) *Store {
	return &Store{carts: make(map[uint]*Cart), hub: hub}
}

func (s *Store) Get(userID uint) *Cart {
	s.mu.RLock()
	c, ok := s.carts[userID]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[userID]; ok {
		return c
	}
	c = New(s.hub.For(userID))
	s.carts[userID] = c
	return c
}
