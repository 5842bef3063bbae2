package models

// Product is the catalog entity. Code is the business key used when
// reconciling external batches; ID is only a surrogate assigned on insert.
type Product struct {
	ID          int64   `gorm:"primaryKey" json:"id"`
	Name        string  `json:"name"`
	Code        string  `gorm:"uniqueIndex" json:"code"`
	Description string  `json:"description"`
	Cost        float64 `json:"cost"`
	Retail      float64 `json:"retail"`
	RequiredQty int     `json:"required_qty"`
	GoodQty     int     `json:"good_qty"`
	DamagedQty  int     `json:"damaged_qty"`
	Gift        int     `json:"gift"`
	TotalQty    int     `json:"total_qty"`
	Note        string  `json:"note"`
}

func (Product) TableName() string { return "products" }

// RecomputeTotal refreshes the derived TotalQty from the three stock
// buckets. Every write path that touches a bucket must call this before
// persisting.
func (p *Product) RecomputeTotal() {
	p.TotalQty = p.GoodQty + p.DamagedQty + p.Gift
}

// Variance is stock on hand minus the externally supplied target.
func (p *Product) Variance() int {
	return p.TotalQty - p.RequiredQty
}

// Mismatched reports whether stock on hand differs from the target.
func (p *Product) Mismatched() bool {
	return p.RequiredQty != p.TotalQty
}
