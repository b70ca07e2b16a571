// Package search narrows a catalog snapshot by free text, category and
// result type. Everything here is a pure function of its inputs.
package search

import (
	"errors"
	"strings"

	"github.com/example/storefront/internal/catalog"
)

// AllCategories is the UI sentinel meaning "no category filter".
const AllCategories = "All Categories"

type Type string

const (
	TypeAll      Type = "all"
	TypeProducts Type = "products"
	TypeShops    Type = "shops"
)

var ErrInvalidType = errors.New("type must be one of all, products, shops")

// ParseType accepts the wire value of the type selector. Empty means all.
func ParseType(v string) (Type, error) {
	switch Type(v) {
	case "", TypeAll:
		return TypeAll, nil
	case TypeProducts, TypeShops:
		return Type(v), nil
	}
	return "", ErrInvalidType
}

type Params struct {
	Query    string
	Category string
	Type     Type
}

// HasCriteria reports whether a query or a real category was supplied.
func (p Params) HasCriteria() bool {
	return p.Query != "" || categoryFilter(p.Category) != ""
}

type Result struct {
	Shops    []catalog.Shop    `json:"shops"`
	Products []catalog.Product `json:"products"`
}

// Run filters the snapshot. The query is a case-insensitive substring matched
// against name, description and category; the category must match exactly.
// Both must pass. Order follows the snapshot. Result slices are never nil.
func Run(snap catalog.Snapshot, p Params) Result {
	query := strings.ToLower(p.Query)
	category := categoryFilter(p.Category)

	res := Result{
		Shops:    []catalog.Shop{},
		Products: []catalog.Product{},
	}

	if p.Type != TypeProducts {
		for _, s := range snap.Shops {
			if matches(query, category, s.Name, s.Description, s.Category) {
				res.Shops = append(res.Shops, s)
			}
		}
	}
	if p.Type != TypeShops {
		for _, pr := range snap.Products {
			if matches(query, category, pr.Name, pr.Description, pr.Category) {
				res.Products = append(res.Products, pr)
			}
		}
	}
	return res
}

func matches(query, category, name, description, entityCategory string) bool {
	if category != "" && entityCategory != category {
		return false
	}
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), query) ||
		strings.Contains(strings.ToLower(description), query) ||
		strings.Contains(strings.ToLower(entityCategory), query)
}

func categoryFilter(c string) string {
	if c == AllCategories {
		return ""
	}
	return c
}
