package catalog

import "time"

var seedTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

const unsplash = "https://images.unsplash.com/"

// DefaultSeed returns the demo marketplace: three users (one per role), six
// shops owned by the seller, twenty products and ten categories.
func DefaultSeed() Seed {
	return Seed{
		Users:      defaultUsers(),
		Shops:      defaultShops(),
		Products:   defaultProducts(),
		Categories: []string{"Electronics", "Grocery", "Fashion", "Dairy", "Bakery", "Fruits", "Vegetables", "Home & Garden", "Sports", "Books"},
	}
}

func defaultUsers() []User {
	return []User{
		{ID: "1", Phone: "1234567890", Name: "John Customer", Email: "john@example.com", Role: RoleCustomer, IsActive: true, CreatedAt: seedTime},
		{ID: "2", Phone: "9876543210", Name: "Sarah Seller", Email: "sarah@example.com", Role: RoleSeller, IsActive: true, CreatedAt: seedTime},
		{ID: "3", Phone: "5555555555", Name: "Admin User", Email: "admin@example.com", Role: RoleAdmin, IsActive: true, CreatedAt: seedTime},
	}
}

func seedShop(id, name, desc, addr, category string, lat, lng float64, photo string, rating float64, reviews int, open bool, opens, closes string, status ShopStatus) Shop {
	return Shop{
		ID:          id,
		Name:        name,
		Description: desc,
		Address:     addr,
		Category:    category,
		Latitude:    Float(lat),
		Longitude:   Float(lng),
		ImageURL:    unsplash + photo + "?w=400&h=300&fit=crop",
		Logo:        unsplash + photo + "?w=100&h=100&fit=crop",
		Rating:      rating,
		ReviewCount: reviews,
		IsOpen:      open,
		OpeningTime: opens,
		ClosingTime: closes,
		OwnerID:     "2",
		Owner:       "Sarah Seller",
		Phone:       "9876543210",
		Status:      status,
		IsActive:    true,
		CreatedAt:   seedTime,
	}
}

func defaultShops() []Shop {
	return []Shop{
		seedShop("1", "TechWorld Electronics", "Your one-stop shop for all electronic gadgets and accessories",
			"123 Main Street, Downtown, City 12345", "Electronics", 40.7128, -74.0060,
			"photo-1441986300917-64674bd600d8", 4.5, 128, true, "09:00", "21:00", StatusActive),
		seedShop("2", "Fresh Mart Grocery", "Fresh groceries, fruits, and vegetables delivered daily",
			"456 Oak Avenue, Suburb, City 12346", "Grocery", 40.7589, -73.9851,
			"photo-1542838132-92c53300491e", 4.2, 89, true, "07:00", "22:00", StatusActive),
		seedShop("3", "Fashion Hub", "Trendy clothing and accessories for all ages",
			"789 Fashion Street, Mall Area, City 12347", "Fashion", 40.7505, -73.9934,
			"photo-1441984904996-e0b6ba687e04", 4.7, 156, false, "10:00", "20:00", StatusPending),
		seedShop("4", "Daily Dairy", "Fresh milk, cheese, and dairy products",
			"321 Dairy Lane, Residential, City 12348", "Dairy", 40.7282, -74.0776,
			"photo-1563636619-e9143da7973b", 4.3, 67, true, "06:00", "20:00", StatusActive),
		seedShop("5", "Sweet Bakery", "Freshly baked bread, cakes, and pastries",
			"654 Baker Street, Old Town, City 12349", "Bakery", 40.7614, -73.9776,
			"photo-1509440159596-0249088772ff", 4.8, 203, true, "05:00", "19:00", StatusPending),
		seedShop("6", "Green Vegetables", "Organic and fresh vegetables from local farms",
			"987 Green Street, Farm Area, City 12350", "Vegetables", 40.7831, -73.9712,
			"photo-1540420773420-3366772f4999", 4.4, 91, true, "06:00", "18:00", StatusActive),
	}
}

func seedProduct(id, name, desc string, price float64, category, photo string, qty int, unit, shopID string) Product {
	return Product{
		ID:          id,
		Name:        name,
		Description: desc,
		Category:    category,
		Price:       price,
		Unit:        unit,
		ShopID:      shopID,
		ImageURL:    unsplash + photo + "?w=400&h=400&fit=crop",
		InStock:     qty > 0,
		Quantity:    qty,
		CreatedAt:   seedTime,
	}
}

func defaultProducts() []Product {
	return []Product{
		seedProduct("1", "iPhone 15 Pro", "Latest iPhone with advanced camera system and A17 Pro chip", 99999, "Electronics", "photo-1592750475338-74b7b21085ab", 5, "piece", "1"),
		seedProduct("2", `Samsung 55" 4K TV`, "Ultra HD Smart TV with HDR and built-in streaming apps", 45999, "Electronics", "photo-1593359677879-a4bb92f829d1", 3, "piece", "1"),
		seedProduct("3", "MacBook Air M2", "Lightweight laptop with M2 chip and all-day battery life", 119900, "Electronics", "photo-1517336714731-489689fd1ca8", 2, "piece", "1"),
		seedProduct("4", "Wireless Headphones", "Noise-cancelling wireless headphones with premium sound", 8999, "Electronics", "photo-1505740420928-5e560c06d30e", 10, "piece", "1"),
		seedProduct("5", "Organic Basmati Rice", "Premium quality organic basmati rice, 5kg pack", 450, "Grocery", "photo-1586201375761-83865001e31c", 50, "kg", "2"),
		seedProduct("6", "Fresh Bananas", "Sweet and ripe bananas, perfect for breakfast", 60, "Fruits", "photo-1571771894821-ce9b6c11b08e", 100, "kg", "2"),
		seedProduct("7", "Whole Wheat Bread", "Freshly baked whole wheat bread, healthy and nutritious", 45, "Bakery", "photo-1509440159596-0249088772ff", 20, "loaf", "5"),
		seedProduct("8", "Cotton T-Shirt", "Comfortable cotton t-shirt available in multiple colors", 599, "Fashion", "photo-1521572163474-6864f9cf17ab", 25, "piece", "3"),
		seedProduct("9", "Denim Jeans", "Classic blue denim jeans with perfect fit", 1299, "Fashion", "photo-1542272604-787c3835535d", 15, "piece", "3"),
		seedProduct("10", "Fresh Milk", "Pure and fresh cow milk, 1 liter pack", 55, "Dairy", "photo-1563636619-e9143da7973b", 100, "liter", "4"),
		seedProduct("11", "Cheddar Cheese", "Aged cheddar cheese, perfect for sandwiches", 350, "Dairy", "photo-1486297678162-eb2a19b0a32d", 30, "pack", "4"),
		seedProduct("12", "Fresh Tomatoes", "Red ripe tomatoes, perfect for cooking", 40, "Vegetables", "photo-1546470427-e26264be0b0d", 80, "kg", "6"),
		seedProduct("13", "Green Spinach", "Fresh organic spinach leaves, rich in iron", 30, "Vegetables", "photo-1576045057995-568f588f82fb", 50, "kg", "6"),
		seedProduct("14", "Gaming Console", "Latest gaming console with 4K gaming support", 49999, "Electronics", "photo-1606144042614-b2417e99c4e3", 0, "piece", "1"),
		seedProduct("15", "Bluetooth Speaker", "Portable wireless speaker with deep bass", 2999, "Electronics", "photo-1608043152269-423dbba4e7e1", 8, "piece", "1"),
		seedProduct("16", "Chocolate Cake", "Rich chocolate cake perfect for celebrations", 899, "Bakery", "photo-1578985545062-69928b1d9587", 5, "piece", "5"),
		seedProduct("17", "Croissants", "Buttery and flaky French croissants", 120, "Bakery", "photo-1555507036-ab794f4afe5e", 12, "piece", "5"),
		seedProduct("18", "Fresh Apples", "Crisp and sweet red apples", 180, "Fruits", "photo-1560806887-1e4cd0b6cbd6", 60, "kg", "2"),
		seedProduct("19", "Orange Juice", "Fresh squeezed orange juice, 1 liter", 120, "Fruits", "photo-1621506289937-a8e4df240d0b", 25, "liter", "2"),
		seedProduct("20", "Summer Dress", "Light and comfortable summer dress", 1899, "Fashion", "photo-1515372039744-b8f02a3ae446", 10, "piece", "3"),
	}
}
