package orderid

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Generator produces human-readable order ids of the form "ORD-<n>". The
// counter is monotonic within the process and seeded from the clock so ids
// from separate runs do not collide in practice.
type Generator struct {
	n atomic.Int64
}

func New() *Generator {
	g := &Generator{}
	g.n.Store(time.Now().UTC().UnixMilli() % 1_000_000_000)
	return g
}

func (g *Generator) Next() string {
	return fmt.Sprintf("ORD-%d", g.n.Add(1))
}
