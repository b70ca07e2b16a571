package gateway

import (
	"context"

	"github.com/example/storefront/internal/catalog"
	"golang.org/x/sync/errgroup"
)

// MaxRelated caps the related products shown next to a product.
const MaxRelated = 4

type ProductDetail struct {
	Product catalog.Product `json:"product"`
	// Shop is nil when the caller may not see the owning shop.
	Shop      *catalog.Shop     `json:"shop,omitempty"`
	Related   []catalog.Product `json:"related"`
	Orderable bool              `json:"orderable"`
}

// LoadProductDetail fetches a product, then its shop and related products
// (same category, excluding itself) concurrently. The second round starts
// only once the product, and therefore its shop and category, is known.
func LoadProductDetail(ctx context.Context, gw Gateway, productID string) (Envelope[ProductDetail], error) {
	product, err := gw.GetProduct(ctx, productID)
	if err != nil {
		return Envelope[ProductDetail]{}, err
	}
	if !product.Status {
		return recast[ProductDetail](product), nil
	}

	detail := ProductDetail{Product: product.Data, Related: []catalog.Product{}}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		shop, err := gw.GetShop(gctx, product.Data.ShopID)
		if err != nil {
			return err
		}
		if shop.Status {
			detail.Shop = &shop.Data
			detail.Orderable = shop.Data.Orderable()
		}
		return nil
	})
	g.Go(func() error {
		related, err := gw.ProductsByCategory(gctx, product.Data.Category)
		if err != nil {
			return err
		}
		if !related.Status {
			return nil
		}
		for _, p := range related.Data {
			if p.ID == product.Data.ID {
				continue
			}
			detail.Related = append(detail.Related, p)
			if len(detail.Related) == MaxRelated {
				break
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Envelope[ProductDetail]{}, err
	}

	return OK(detail), nil
}
