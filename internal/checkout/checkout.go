package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/pharmacare/storefront/internal/cart"
	"github.com/pharmacare/storefront/internal/models"
	"github.com/pharmacare/storefront/internal/notify"
	"github.com/pharmacare/storefront/internal/orderid"
	"github.com/pharmacare/storefront/internal/repository"
)

type State string

const (
	StateCart    State = "CART"
	StateDetails State = "DETAILS"
	StateSuccess State = "SUCCESS"
)

var (
	ErrNotSignedIn  = errors.New("checkout requires a signed-in customer")
	ErrEmptyCart    = errors.New("cart is empty")
	ErrInvalidState = errors.New("operation not allowed in current checkout state")
	ErrInFlight     = errors.New("an order placement is already in progress")
)

// RxPendingError blocks CART -> DETAILS while regulated items have no proof
// attached. Items carries the offending product names for the banner.
type RxPendingError struct {
	Items []string
}

func (e *RxPendingError) Error() string {
	return "prescription required for: " + strings.Join(e.Items, ", ")
}

// FieldErrors maps form field names to messages. Validation never reaches the
// repository; the caller stays in DETAILS and renders these per field.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	return fmt.Sprintf("%d invalid checkout fields", len(e))
}

// DetailsForm is what the customer enters on the DETAILS step. It is kept on
// the machine across back-navigation and failed attempts.
type DetailsForm struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	ZIP           string `json:"zip"`
	PaymentMethod string `json:"payment_method"`
}

// Machine drives one session through CART -> DETAILS -> SUCCESS. There is no
// way back out of SUCCESS; DETAILS -> CART keeps the cart and the form.
type Machine struct {
	mu      sync.Mutex
	state   State
	form    DetailsForm
	loading bool
	placed  *models.Order

	userID       uint
	customerName string

	cart    *cart.Cart
	orders  repository.OrderRepository
	ids     *orderid.Generator
	emitter notify.Emitter
}

func NewMachine(userID uint, customerName string, c *cart.Cart, orders repository.OrderRepository, ids *orderid.Generator, emitter notify.Emitter) *Machine {
	return &Machine{
		state:        StateCart,
		userID:       userID,
		customerName: customerName,
		cart:         c,
		orders:       orders,
		ids:          ids,
		emitter:      emitter,
	}
}

func (m *Machine) toast(message, kind string) {
	if m.emitter != nil {
		m.emitter.Show(message, kind)
	}
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) Form() DetailsForm {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form
}

// PlacedOrder returns the synthesized order once the machine reached SUCCESS.
func (m *Machine) PlacedOrder() *models.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.placed
}

// ProceedToDetails is the CART -> DETAILS transition. It is blocked for
// anonymous sessions, empty carts and carts with unproofed regulated items.
func (m *Machine) ProceedToDetails() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateCart {
		return ErrInvalidState
	}
	if m.userID == 0 {
		return ErrNotSignedIn
	}
	if m.cart.Len() == 0 {
		return ErrEmptyCart
	}
	if pending := m.cart.PendingPrescriptions(); len(pending) > 0 {
		return &RxPendingError{Items: pending}
	}

	m.state = StateDetails
	return nil
}

// BackToCart is the user's "back" action from DETAILS. Cart contents and the
// entered form survive.
func (m *Machine) BackToCart() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateDetails {
		return ErrInvalidState
	}
	m.state = StateCart
	return nil
}

func validate(form DetailsForm, settings models.AppSettings) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(form.FirstName) == "" {
		errs["first_name"] = "First name is required"
	}
	if strings.TrimSpace(form.LastName) == "" {
		errs["last_name"] = "Last name is required"
	}
	if strings.TrimSpace(form.Address) == "" {
		errs["address"] = "Address is required"
	}
	if strings.TrimSpace(form.City) == "" {
		errs["city"] = "City is required"
	}
	if strings.TrimSpace(form.ZIP) == "" {
		errs["zip"] = "ZIP code is required"
	}

	chosen := false
	for _, pm := range settings.EnabledPaymentMethods() {
		if pm.ID == form.PaymentMethod {
			chosen = true
			break
		}
	}
	if !chosen {
		errs["payment_method"] = "Select an available payment method"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// PlaceOrder is the DETAILS -> SUCCESS transition. The form is validated
// before any persistence call; the order is synthesized from a deep copy of
// the cart, persisted, and only after the repository confirms does the cart
// get cleared and the state advance. On repository failure the machine stays
// in DETAILS with the cart intact so the customer can retry.
func (m *Machine) PlaceOrder(ctx context.Context, form DetailsForm, settings models.AppSettings) (*models.Order, error) {
	m.mu.Lock()
	if m.state != StateDetails {
		m.mu.Unlock()
		return nil, ErrInvalidState
	}
	if m.loading {
		m.mu.Unlock()
		return nil, ErrInFlight
	}
	m.form = form
	if errs := validate(form, settings); errs != nil {
		m.mu.Unlock()
		return nil, errs
	}
	m.loading = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	items := m.cart.Items()
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID:            it.Product.ID,
			Name:                 it.Product.Name,
			Price:                it.Product.Price,
			Quantity:             it.Quantity,
			RequiresPrescription: it.Product.RequiresPrescription,
			PrescriptionProof:    it.PrescriptionProof,
		})
	}

	order := &models.Order{
		ID:              m.ids.Next(),
		UserID:          m.userID,
		CustomerName:    m.customerName,
		Date:            time.Now().UTC(),
		Items:           orderItems,
		Total:           m.cart.Total(settings.TaxRate),
		Status:          models.OrderStatusProcessing,
		ShippingAddress: shippingAddress(form),
		PaymentMethod:   form.PaymentMethod,
	}

	if err := m.orders.Create(ctx, order); err != nil {
		m.toast("Could not place your order, please try again", notify.KindError)
		return nil, fmt.Errorf("persist order: %w", err)
	}

	// Clear only after confirmed persistence.
	m.cart.Clear()

	m.mu.Lock()
	m.state = StateSuccess
	m.placed = order
	m.mu.Unlock()

	m.toast("Order placed successfully!", notify.KindSuccess)
	return order, nil
}

func shippingAddress(form DetailsForm) string {
	parts := []string{strings.TrimSpace(form.Address), strings.TrimSpace(form.City), strings.TrimSpace(form.ZIP)}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ", ")
}

// Store keeps one machine per signed-in user, created lazily against that
// user's cart. A fresh machine replaces the old one after SUCCESS so the next
// visit starts back at CART.
type Store struct {
	mu       sync.Mutex
	machines map[uint]*Machine

	carts  *cart.Store
	orders repository.OrderRepository
	ids    *orderid.Generator
	hub    *notify.Hub
}

func NewStore(carts *cart.Store, orders repository.OrderRepository, ids *orderid.Generator, hub *notify.Hub) *Store {
	return &Store{
		machines: make(map[uint]*Machine),
		carts:    carts,
		orders:   orders,
		ids:      ids,
		hub:      hub,
	}
}

func (s *Store) Get(userID uint, customerName string) *Machine {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m, ok := s.machines[userID]; ok && m.State() != StateSuccess {
		return m
	}
	m := NewMachine(userID, customerName, s.carts.Get(userID), s.orders, s.ids, s.hub.For(userID))
	s.machines[userID] = m
	return m
}
