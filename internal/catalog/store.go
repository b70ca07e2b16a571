package catalog

import (
	"fmt"
	"sync"
)

// Store is the in-memory catalog. Reads return copies in insertion order;
// writes are local to the process and never persisted.
type Store struct {
	mu sync.RWMutex

	shops      []Shop
	shopIdx    map[string]int
	products   []Product
	productIdx map[string]int
	users      []User
	userIdx    map[string]int
	categories []string
}

// NewStore builds a store from seed data. IDs must be unique per entity kind.
func NewStore(seed Seed) (*Store, error) {
	s := &Store{
		shopIdx:    make(map[string]int, len(seed.Shops)),
		productIdx: make(map[string]int, len(seed.Products)),
		userIdx:    make(map[string]int, len(seed.Users)),
		categories: append([]string(nil), seed.Categories...),
	}

	for _, shop := range seed.Shops {
		if _, ok := s.shopIdx[shop.ID]; ok {
			return nil, fmt.Errorf("shop %q: %w", shop.ID, ErrDuplicateID)
		}
		s.shopIdx[shop.ID] = len(s.shops)
		s.shops = append(s.shops, clearDerived(shop))
	}
	for _, p := range seed.Products {
		if _, ok := s.productIdx[p.ID]; ok {
			return nil, fmt.Errorf("product %q: %w", p.ID, ErrDuplicateID)
		}
		s.productIdx[p.ID] = len(s.products)
		s.products = append(s.products, p)
	}
	for _, u := range seed.Users {
		if _, ok := s.userIdx[u.ID]; ok {
			return nil, fmt.Errorf("user %q: %w", u.ID, ErrDuplicateID)
		}
		s.userIdx[u.ID] = len(s.users)
		s.users = append(s.users, u)
	}

	return s, nil
}

// Snapshot returns a copy of all shops and products.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Shops:    append([]Shop(nil), s.shops...),
		Products: append([]Product(nil), s.products...),
	}
}

func (s *Store) Shop(id string) (Shop, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.shopIdx[id]
	if !ok {
		return Shop{}, false
	}
	return s.shops[i], true
}

func (s *Store) Product(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.productIdx[id]
	if !ok {
		return Product{}, false
	}
	return s.products[i], true
}

func (s *Store) User(id string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.userIdx[id]
	if !ok {
		return User{}, false
	}
	return s.users[i], true
}

// UserByPhone finds a user by login handle.
func (s *Store) UserByPhone(phone string) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Phone == phone {
			return u, true
		}
	}
	return User{}, false
}

func (s *Store) Users() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]User(nil), s.users...)
}

func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.categories...)
}

// AddUser appends a new user. IDs and phone numbers must be unique.
func (s *Store) AddUser(u User) (User, error) {
	if err := ValidateUser(u); err != nil {
		return User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.userIdx[u.ID]; ok {
		return User{}, fmt.Errorf("user %q: %w", u.ID, ErrDuplicateID)
	}
	for _, existing := range s.users {
		if existing.Phone == u.Phone {
			return User{}, ErrPhoneTaken
		}
	}
	s.userIdx[u.ID] = len(s.users)
	s.users = append(s.users, u)
	return u, nil
}

// ShopsByOwner returns the shops owned by a user in catalog order.
func (s *Store) ShopsByOwner(ownerID string) []Shop {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Shop
	for _, shop := range s.shops {
		if shop.OwnerID == ownerID {
			out = append(out, shop)
		}
	}
	return out
}

func (s *Store) ProductsByShop(shopID string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Product
	for _, p := range s.products {
		if p.ShopID == shopID {
			out = append(out, p)
		}
	}
	return out
}

// ProductsByCategory matches the stored category exactly.
func (s *Store) ProductsByCategory(category string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// PutShop inserts a new shop or replaces an existing one in place.
// created reports whether the shop was new.
func (s *Store) PutShop(shop Shop) (stored Shop, created bool, err error) {
	if err := ValidateShop(shop); err != nil {
		return Shop{}, false, err
	}
	shop = clearDerived(shop)

	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.shopIdx[shop.ID]; ok {
		s.shops[i] = shop
		return shop, false, nil
	}
	s.shopIdx[shop.ID] = len(s.shops)
	s.shops = append(s.shops, shop)
	return shop, true, nil
}

// PutProduct inserts or replaces a product. The owning shop must exist.
func (s *Store) PutProduct(p Product) (stored Product, created bool, err error) {
	if err := ValidateProduct(p); err != nil {
		return Product{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.shopIdx[p.ShopID]; !ok {
		return Product{}, false, ErrShopNotFound
	}
	if i, ok := s.productIdx[p.ID]; ok {
		s.products[i] = p
		return p, false, nil
	}
	s.productIdx[p.ID] = len(s.products)
	s.products = append(s.products, p)
	return p, true, nil
}

// DeleteProduct removes a product, keeping the order of the rest.
func (s *Store) DeleteProduct(id string) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.productIdx[id]
	if !ok {
		return Product{}, ErrProductNotFound
	}
	removed := s.products[i]

	s.products = append(s.products[:i:i], s.products[i+1:]...)
	delete(s.productIdx, id)
	for j := i; j < len(s.products); j++ {
		s.productIdx[s.products[j].ID] = j
	}
	return removed, nil
}

// SetShopStatus applies an admin status change and returns the previous
// status along with the updated shop.
func (s *Store) SetShopStatus(id string, to ShopStatus) (Shop, ShopStatus, error) {
	if !to.Valid() {
		return Shop{}, "", ErrInvalidStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.shopIdx[id]
	if !ok {
		return Shop{}, "", ErrShopNotFound
	}
	from := s.shops[i].Status
	if !CanTransition(from, to) {
		return Shop{}, from, fmt.Errorf("%s -> %s: %w", from, to, ErrInvalidTransition)
	}
	s.shops[i].Status = to
	return s.shops[i], from, nil
}

// Stats summarises the catalog for the admin dashboard.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{
		TotalShops:    len(s.shops),
		TotalProducts: len(s.products),
		TotalUsers:    len(s.users),
	}
	for _, shop := range s.shops {
		if shop.Status == StatusPending {
			st.PendingApprovals++
		}
	}
	return st
}

func clearDerived(shop Shop) Shop {
	shop.Distance = nil
	shop.DistanceFormatted = ""
	return shop
}
