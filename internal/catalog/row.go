package catalog

import (
	"time"

	"github.com/saxonmcleod-commits/wilsons-seafoods/internal/models"
)

// productRow is the wire form of a product. Optional columns are pointers so
// that absent fields can be told apart from zero values; resolve turns a row
// into a Product with every optional field settled to a concrete value.
type productRow struct {
	ID          int        `json:"id,omitempty"`
	Name        string     `json:"name"`
	Price       string     `json:"price"`
	ImageURL    string     `json:"image_url"`
	Category    string     `json:"category,omitempty"`
	Description string     `json:"description,omitempty"`
	IsFresh     *bool      `json:"is_fresh,omitempty"`
	OnOrder     *bool      `json:"on_order,omitempty"`
	OutOfStock  *bool      `json:"out_of_stock,omitempty"`
	IsVisible   *bool      `json:"is_visible,omitempty"`
	SortOrder   *int       `json:"sort_order,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

func (r productRow) resolve() models.Product {
	p := models.Product{
		ID:          r.ID,
		Name:        r.Name,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
		Description: r.Description,
		// Absent visibility counts as visible.
		IsVisible: r.IsVisible == nil || *r.IsVisible,
	}
	if r.IsFresh != nil {
		p.IsFresh = *r.IsFresh
	}
	if r.OnOrder != nil {
		p.OnOrder = *r.OnOrder
	}
	if r.OutOfStock != nil {
		p.OutOfStock = *r.OutOfStock
	}
	if r.SortOrder != nil {
		p.SortOrder = *r.SortOrder
	}
	if r.CreatedAt != nil {
		p.CreatedAt = *r.CreatedAt
	}
	return p
}

func rowFromDraft(d models.ProductDraft) productRow {
	return productRow{
		Name:        d.Name,
		Price:       d.Price,
		ImageURL:    d.ImageURL,
		Category:    d.Category,
		Description: d.Description,
		IsFresh:     &d.IsFresh,
		OnOrder:     &d.OnOrder,
		OutOfStock:  &d.OutOfStock,
		IsVisible:   &d.IsVisible,
	}
}
