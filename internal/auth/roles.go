package auth

import "github.com/example/storefront/internal/catalog"

type Action string

const (
	ActionRead     Action = "read"
	ActionWrite    Action = "write"
	ActionModerate Action = "moderate"
)

// Resource describes what an action targets. Products carry the owner and
// status of their shop.
type Resource struct {
	OwnerID string
	Status  catalog.ShopStatus
}

func ShopResource(s catalog.Shop) Resource {
	return Resource{OwnerID: s.OwnerID, Status: s.Status}
}

// ProductResource builds the resource for a product of shop.
func ProductResource(shop catalog.Shop) Resource {
	return ShopResource(shop)
}

// Can reports whether user may perform action on res. A nil user is an
// anonymous customer.
//
//	admin:    read anything, moderate shop status, no seller writes
//	seller:   read active shops and their own, write only their own
//	customer: read active shops only
func Can(user *catalog.User, action Action, res Resource) bool {
	role := catalog.RoleCustomer
	userID := ""
	if user != nil {
		role = user.Role
		userID = user.ID
	}

	switch role {
	case catalog.RoleAdmin:
		return action == ActionRead || action == ActionModerate
	case catalog.RoleSeller:
		owns := userID != "" && res.OwnerID == userID
		switch action {
		case ActionRead:
			return owns || res.Status == catalog.StatusActive
		case ActionWrite:
			return owns
		}
		return false
	default:
		return action == ActionRead && res.Status == catalog.StatusActive
	}
}
