package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	KindSuccess = "success"
	KindError   = "error"
	KindInfo    = "info"
)

// DefaultTTL is how long a toast stays visible unless dismissed earlier.
const DefaultTTL = 3 * time.Second

// Emitter is the fire-and-forget feedback surface mutating operations talk to.
// Nothing in the core reads toast state back to make decisions.
type Emitter interface {
	Show(message, kind string)
}

type Toast struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	Kind    string `json:"kind"`

	userID uint
}

// Hub keeps an ordered queue of active toasts, each owned by the user whose
// action produced it. Toasts expire after ttl and can be removed early by id.
type Hub struct {
	mu     sync.Mutex
	ttl    time.Duration
	toasts []Toast
}

func NewHub() *Hub {
	return &Hub{ttl: DefaultTTL}
}

// NewHubTTL exists for tests that cannot wait three seconds.
func NewHubTTL(ttl time.Duration) *Hub {
	return &Hub{ttl: ttl}
}

// ShowFor appends a toast to userID's queue. A nil hub drops the toast.
func (h *Hub) ShowFor(userID uint, message, kind string) {
	if h == nil {
		return
	}
	if kind == "" {
		kind = KindSuccess
	}

	t := Toast{ID: uuid.NewString(), Message: message, Kind: kind, userID: userID}

	h.mu.Lock()
	h.toasts = append(h.toasts, t)
	h.mu.Unlock()

	time.AfterFunc(h.ttl, func() { h.Remove(t.ID) })
}

// Show emits an unowned toast. Session-scoped emitters come from For instead.
func (h *Hub) Show(message, kind string) {
	h.ShowFor(0, message, kind)
}

// For binds the hub to one user so cart and checkout code can emit through the
// plain Emitter interface without carrying the user id themselves.
func (h *Hub) For(userID uint) Emitter {
	return userEmitter{hub: h, userID: userID}
}

type userEmitter struct {
	hub    *Hub
	userID uint
}

func (e userEmitter) Show(message, kind string) {
	e.hub.ShowFor(e.userID, message, kind)
}

// Remove dismisses a toast early; unknown ids are a no-op.
func (h *Hub) Remove(id string) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, t := range h.toasts {
		if t.ID == id {
			h.toasts = append(h.toasts[:i], h.toasts[i+1:]...)
			return
		}
	}
}

// RemoveFor dismisses a toast only when userID owns it, so one user cannot
// swallow another's feedback.
func (h *Hub) RemoveFor(id string, userID uint) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, t := range h.toasts {
		if t.ID == id && t.userID == userID {
			h.toasts = append(h.toasts[:i], h.toasts[i+1:]...)
			return
		}
	}
}

// Active returns every visible toast in insertion order.
func (h *Hub) Active() []Toast {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Toast, len(h.toasts))
	copy(out, h.toasts)
	return out
}

// ActiveFor returns userID's visible toasts in insertion order.
func (h *Hub) ActiveFor(userID uint) []Toast {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Toast, 0)
	for _, t := range h.toasts {
		if t.userID == userID {
			out = append(out, t)
		}
	}
	return out
}
