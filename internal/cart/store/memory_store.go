package store

import (
	"sync"

	"github.com/tair/storefront/internal/cart/domain"
	catalog "github.com/tair/storefront/internal/catalog/domain"
)

// MemoryStore guards the process's single cart. HTTP and gRPC handlers run
// on separate goroutines, so every cart operation goes through the mutex.
type MemoryStore struct {
	mu   sync.RWMutex
	cart *domain.Cart
}

var _ domain.CartRepository = (*MemoryStore)(nil)

// NewMemoryStore creates a store around an empty cart
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cart: domain.NewCart()}
}

func (s *MemoryStore) AddItem(product *catalog.Product, size, color string) (domain.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.AddItem(product, size, color)
}

func (s *MemoryStore) RemoveItem(fp domain.Fingerprint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.RemoveItem(fp)
}

func (s *MemoryStore) IncreaseQuantity(fp domain.Fingerprint) (domain.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.IncreaseQuantity(fp)
}

func (s *MemoryStore) DecreaseQuantity(fp domain.Fingerprint) (domain.Line, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.DecreaseQuantity(fp)
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
}

// Snapshot returns the current lines and totals
func (s *MemoryStore) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Drain returns the current contents and empties the cart in one step, so
// a checkout cannot lose or double count lines added concurrently.
func (s *MemoryStore) Drain() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.snapshot()
	s.cart.Clear()
	return snap
}

func (s *MemoryStore) snapshot() domain.Snapshot {
	return domain.Snapshot{
		Lines:     s.cart.Lines(),
		Total:     s.cart.Total(),
		ItemCount: s.cart.ItemCount(),
	}
}
