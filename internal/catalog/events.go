package catalog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventShopCreated       = "ShopCreated"
	EventShopUpdated       = "ShopUpdated"
	EventShopStatusChanged = "ShopStatusChanged"
	EventProductCreated    = "ProductCreated"
	EventProductUpdated    = "ProductUpdated"
	EventProductDeleted    = "ProductDeleted"
	EventUserRegistered    = "UserRegistered"
)

// Event is the envelope published for every local catalog write.
type Event struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	AggregateID string          `json:"aggregate_id"`
	ActorID     string          `json:"actor_id,omitempty"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Data        json.RawMessage `json:"data"`
}

func NewEvent(eventType, aggregateID, actorID string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:          uuid.New().String(),
		Type:        eventType,
		AggregateID: aggregateID,
		ActorID:     actorID,
		OccurredAt:  time.Now().UTC(),
		Data:        data,
	}, nil
}

type ShopCreated struct {
	ShopID   string     `json:"shop_id"`
	OwnerID  string     `json:"owner_id"`
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Status   ShopStatus `json:"status"`
}

type ShopUpdated struct {
	ShopID string `json:"shop_id"`
	Name   string `json:"name"`
	IsOpen bool   `json:"is_open"`
}

type ShopStatusChanged struct {
	ShopID string     `json:"shop_id"`
	From   ShopStatus `json:"from"`
	To     ShopStatus `json:"to"`
}

type ProductCreated struct {
	ProductID string  `json:"product_id"`
	ShopID    string  `json:"shop_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type ProductUpdated struct {
	ProductID string  `json:"product_id"`
	ShopID    string  `json:"shop_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	InStock   bool    `json:"in_stock"`
	Quantity  int     `json:"quantity"`
}

type ProductDeleted struct {
	ProductID string `json:"product_id"`
	ShopID    string `json:"shop_id"`
}

type UserRegistered struct {
	UserID string `json:"user_id"`
	Phone  string `json:"phone"`
	Role   Role   `json:"role"`
}
