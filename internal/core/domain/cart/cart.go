package cart

import "github.com/avatarctic/storefront/internal/core/domain/catalog"

type Cart struct {
	ID        string        `json:"id"`
	Items     []Item        `json:"items"`
	Discounts []Discount    `json:"discounts"`
	Subtotal  catalog.Money `json:"subtotal"`
	Discount  catalog.Money `json:"discount_total"`
	Shipping  catalog.Money `json:"shipping_total"`
	Tax       catalog.Money `json:"tax_total"`
	Total     catalog.Money `json:"total"`
}

type Item struct {
	ID        string        `json:"id"`
	ProductID string        `json:"product_id"`
	VariantID string        `json:"variant_id,omitempty"`
	Slug      string        `json:"slug"`
	Name      string        `json:"name"`
	ImageURL  string        `json:"image_url"`
	Quantity  int           `json:"quantity"`
	UnitPrice catalog.Money `json:"unit_price"`
	Total     catalog.Money `json:"total"`
}

type Discount struct {
	Code        string        `json:"code"`
	Description string        `json:"description"`
	Amount      catalog.Money `json:"amount"`
}

// ItemCount returns the total quantity across all lines.
func (c *Cart) ItemCount() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) IsEmpty() bool { return c.ItemCount() == 0 }

// FindItem returns the line with the given id.
func (c *Cart) FindItem(id string) (*Item, bool) {
	if c == nil {
		return nil, false
	}
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i], true
		}
	}
	return nil, false
}

type AddItemRequest struct {
	ProductID string `json:"product_id" form:"product_id" validate:"required"`
	VariantID string `json:"variant_id,omitempty" form:"variant_id"`
	Quantity  int    `json:"quantity" form:"quantity" validate:"min=1,max=999"`
}

type UpdateItemRequest struct {
	ItemID   string `json:"-" form:"item_id" validate:"required"`
	Quantity int    `json:"quantity" form:"quantity" validate:"min=0,max=999"`
}

type DiscountRequest struct {
	Code string `json:"code" form:"code" validate:"required,max=64"`
}
