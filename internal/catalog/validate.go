package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrShopNotFound    = errors.New("shop not found")
	ErrProductNotFound = errors.New("product not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrDuplicateID     = errors.New("duplicate id")
	ErrPhoneTaken      = errors.New("phone already registered")

	// ErrInvalid matches every validation failure below via errors.Is.
	ErrInvalid = errors.New("invalid catalog entity")

	ErrNameRequired       = invalid("name is required")
	ErrShopRequired       = invalid("product must belong to a shop")
	ErrInvalidPrice       = invalid("price must not be negative")
	ErrInvalidQuantity    = invalid("quantity must not be negative")
	ErrStockMismatch      = invalid("product with zero quantity cannot be in stock")
	ErrInvalidRating      = invalid("rating must be between 0 and 5")
	ErrInvalidTime        = invalid("opening and closing times must be HH:MM")
	ErrInvalidCoordinates = invalid("latitude and longitude must be set together and within range")
	ErrInvalidStatus      = invalid("unknown shop status")
	ErrInvalidTransition  = invalid("shop status transition not allowed")
	ErrPhoneRequired      = invalid("phone is required")
	ErrInvalidRole        = invalid("unknown user role")
)

type validationError struct {
	msg string
}

func invalid(msg string) error {
	return &validationError{msg: msg}
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrInvalid }

// ValidateSeed checks every shop and product of a dataset loaded from
// outside the process, and that each product's shop is part of it.
func ValidateSeed(seed Seed) error {
	shops := make(map[string]bool, len(seed.Shops))
	for _, shop := range seed.Shops {
		if err := ValidateShop(shop); err != nil {
			return fmt.Errorf("shop %q: %w", shop.ID, err)
		}
		shops[shop.ID] = true
	}
	for _, p := range seed.Products {
		if err := ValidateProduct(p); err != nil {
			return fmt.Errorf("product %q: %w", p.ID, err)
		}
		if !shops[p.ShopID] {
			return fmt.Errorf("product %q: %w", p.ID, ErrShopNotFound)
		}
	}
	for _, u := range seed.Users {
		if !u.Role.Valid() {
			return fmt.Errorf("user %q: %w", u.ID, ErrInvalidRole)
		}
	}
	return nil
}

// ValidateUser checks a user before it is added to the catalog.
func ValidateUser(u User) error {
	if strings.TrimSpace(u.Phone) == "" {
		return ErrPhoneRequired
	}
	if strings.TrimSpace(u.Name) == "" {
		return ErrNameRequired
	}
	if !u.Role.Valid() {
		return ErrInvalidRole
	}
	return nil
}

// ValidateShop checks the fields a seller may write.
func ValidateShop(s Shop) error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrNameRequired
	}
	if s.Rating < 0 || s.Rating > 5 {
		return ErrInvalidRating
	}
	if !validClock(s.OpeningTime) || !validClock(s.ClosingTime) {
		return ErrInvalidTime
	}
	if (s.Latitude == nil) != (s.Longitude == nil) {
		return ErrInvalidCoordinates
	}
	if lat, lng, ok := s.Location(); ok && !ValidCoordinates(lat, lng) {
		return ErrInvalidCoordinates
	}
	if s.Status != "" && !s.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}

// ValidateProduct checks the fields a seller may write, including the rule
// that an item with no quantity left is not in stock.
func ValidateProduct(p Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	if p.ShopID == "" {
		return ErrShopRequired
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	if p.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if p.Quantity == 0 && p.InStock {
		return ErrStockMismatch
	}
	return nil
}

// CanTransition reports whether an admin may move a shop from one status to
// another. Nothing moves back to pending; setting the current status again
// is allowed and has no effect.
func CanTransition(from, to ShopStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	return to != StatusPending
}

// ValidCoordinates reports whether lat/lng are in range. NaN and
// infinities are not.
func ValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// empty means unknown hours
func validClock(v string) bool {
	if v == "" {
		return true
	}
	if len(v) != 5 {
		return false
	}
	_, err := time.Parse("15:04", v)
	return err == nil
}
