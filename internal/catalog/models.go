package catalog

import "time"

type ShopStatus string

const (
	StatusActive    ShopStatus = "active"
	StatusPending   ShopStatus = "pending"
	StatusSuspended ShopStatus = "suspended"
)

// Valid reports whether s is one of the known shop statuses.
func (s ShopStatus) Valid() bool {
	switch s {
	case StatusActive, StatusPending, StatusSuspended:
		return true
	}
	return false
}

type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// Shop is a storefront listed in the catalog. Distance and DistanceFormatted
// are derived and only populated when a caller location is known.
type Shop struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Address     string     `json:"address"`
	Category    string     `json:"category"`
	Latitude    *float64   `json:"latitude,omitempty"`
	Longitude   *float64   `json:"longitude,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Logo        string     `json:"logo,omitempty"`
	Rating      float64    `json:"rating"`
	ReviewCount int        `json:"reviewCount"`
	IsOpen      bool       `json:"isOpen"`
	OpeningTime string     `json:"openingTime,omitempty"`
	ClosingTime string     `json:"closingTime,omitempty"`
	OwnerID     string     `json:"ownerId"`
	Owner       string     `json:"owner,omitempty"`
	Phone       string     `json:"phone,omitempty"`
	Status      ShopStatus `json:"status"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`

	Distance          *float64 `json:"distance,omitempty"`
	DistanceFormatted string   `json:"distanceFormatted,omitempty"`
}

// Location returns the shop coordinates, ok is false when either is missing.
func (s Shop) Location() (lat, lng float64, ok bool) {
	if s.Latitude == nil || s.Longitude == nil {
		return 0, 0, false
	}
	return *s.Latitude, *s.Longitude, true
}

// Orderable reports whether customers can order from or contact the shop.
func (s Shop) Orderable() bool {
	return s.IsOpen && s.Status == StatusActive
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Unit        string    `json:"unit"`
	ShopID      string    `json:"shopId"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	InStock     bool      `json:"inStock"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
}

type User struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// Seed is the full dataset a Store is built from.
type Seed struct {
	Shops      []Shop
	Products   []Product
	Users      []User
	Categories []string
}

// Snapshot is a point-in-time copy of the searchable part of the catalog,
// in insertion order.
type Snapshot struct {
	Shops    []Shop
	Products []Product
}

type Stats struct {
	TotalShops       int `json:"totalShops"`
	TotalProducts    int `json:"totalProducts"`
	TotalUsers       int `json:"totalUsers"`
	PendingApprovals int `json:"pendingApprovals"`
}

// Float returns a pointer to v. Handy for optional coordinates.
func Float(v float64) *float64 {
	return &v
}
