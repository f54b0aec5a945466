// internal/models/product.go
package models

// Product is the canonical, normalized shape of a catalog record. Instances
// are immutable once produced by the catalog adapter; every remote record,
// however malformed, normalizes into a valid Product.
type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	OldPrice    *float64 `json:"old_price,omitempty"`
	Image       string   `json:"image"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Badge       string   `json:"badge,omitempty"`
	Rating      float64  `json:"rating"`
	Stock       int      `json:"stock"`
}

func (p Product) InStock() bool {
	return p.Stock > 0
}

func (p Product) HasDiscount() bool {
	return p.OldPrice != nil && *p.OldPrice > p.Price
}
