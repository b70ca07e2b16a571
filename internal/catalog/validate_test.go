package catalog

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateShop(t *testing.T) {
	tests := []struct {
		name    string
		shop    Shop
		wantErr error
	}{
		{"valid", Shop{Name: "A", OpeningTime: "09:00", ClosingTime: "21:00"}, nil},
		{"no hours", Shop{Name: "A"}, nil},
		{"missing name", Shop{Name: "  "}, ErrNameRequired},
		{"rating too high", Shop{Name: "A", Rating: 5.1}, ErrInvalidRating},
		{"short time", Shop{Name: "A", OpeningTime: "9:00"}, ErrInvalidTime},
		{"bad time", Shop{Name: "A", ClosingTime: "25:00"}, ErrInvalidTime},
		{"half coordinates", Shop{Name: "A", Latitude: Float(1)}, ErrInvalidCoordinates},
		{"out of range", Shop{Name: "A", Latitude: Float(91), Longitude: Float(0)}, ErrInvalidCoordinates},
		{"nan latitude", Shop{Name: "A", Latitude: Float(math.NaN()), Longitude: Float(0)}, ErrInvalidCoordinates},
		{"infinite longitude", Shop{Name: "A", Latitude: Float(0), Longitude: Float(math.Inf(1))}, ErrInvalidCoordinates},
		{"unknown status", Shop{Name: "A", Status: "closed"}, ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShop(tt.shop)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateProduct(t *testing.T) {
	base := Product{Name: "Milk", ShopID: "4", Price: 55, InStock: true, Quantity: 10}

	tests := []struct {
		name    string
		mutate  func(p *Product)
		wantErr error
	}{
		{"valid", func(p *Product) {}, nil},
		{"free item", func(p *Product) { p.Price = 0 }, nil},
		{"sold out", func(p *Product) { p.Quantity = 0; p.InStock = false }, nil},
		{"missing name", func(p *Product) { p.Name = "" }, ErrNameRequired},
		{"missing shop", func(p *Product) { p.ShopID = "" }, ErrShopRequired},
		{"negative price", func(p *Product) { p.Price = -1 }, ErrInvalidPrice},
		{"negative quantity", func(p *Product) { p.Quantity = -1; p.InStock = false }, ErrInvalidQuantity},
		{"zero quantity in stock", func(p *Product) { p.Quantity = 0 }, ErrStockMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			err := ValidateProduct(p)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusPending, StatusActive))
	assert.True(t, CanTransition(StatusPending, StatusSuspended))
	assert.True(t, CanTransition(StatusActive, StatusSuspended))
	assert.True(t, CanTransition(StatusSuspended, StatusActive))
	assert.True(t, CanTransition(StatusActive, StatusActive))
	assert.True(t, CanTransition(StatusPending, StatusPending))

	assert.False(t, CanTransition(StatusActive, StatusPending))
	assert.False(t, CanTransition(StatusSuspended, StatusPending))
	assert.False(t, CanTransition("", StatusActive))
}

func TestShop_Orderable(t *testing.T) {
	assert.True(t, Shop{IsOpen: true, Status: StatusActive}.Orderable())
	assert.False(t, Shop{IsOpen: false, Status: StatusActive}.Orderable())
	assert.False(t, Shop{IsOpen: true, Status: StatusPending}.Orderable())
}

func TestValidateUser(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr error
	}{
		{"valid", User{Phone: "2222222222", Name: "Ann", Role: RoleCustomer}, nil},
		{"missing phone", User{Name: "Ann", Role: RoleCustomer}, ErrPhoneRequired},
		{"missing name", User{Phone: "2222222222", Role: RoleCustomer}, ErrNameRequired},
		{"unknown role", User{Phone: "2222222222", Name: "Ann", Role: "owner"}, ErrInvalidRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUser(tt.user)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidCoordinates(t *testing.T) {
	assert.True(t, ValidCoordinates(12.97, 77.59))
	assert.True(t, ValidCoordinates(-90, 180))
	assert.False(t, ValidCoordinates(90.1, 0))
	assert.False(t, ValidCoordinates(math.NaN(), 0))
	assert.False(t, ValidCoordinates(0, math.NaN()))
	assert.False(t, ValidCoordinates(math.Inf(-1), 0))
}

func TestValidateSeed(t *testing.T) {
	assert.NoError(t, ValidateSeed(DefaultSeed()))

	orphan := DefaultSeed()
	orphan.Products = append(orphan.Products, Product{ID: "99", Name: "Stray", ShopID: "missing"})
	assert.ErrorIs(t, ValidateSeed(orphan), ErrShopNotFound)

	badShop := DefaultSeed()
	badShop.Shops[0].Rating = 9
	assert.ErrorIs(t, ValidateSeed(badShop), ErrInvalidRating)

	badProduct := DefaultSeed()
	badProduct.Products[0].Price = -1
	assert.ErrorIs(t, ValidateSeed(badProduct), ErrInvalidPrice)

	badUser := DefaultSeed()
	badUser.Users[0].Role = "owner"
	assert.ErrorIs(t, ValidateSeed(badUser), ErrInvalidRole)
}
