package order

import (
	"time"

	"github.com/avatarctic/storefront/internal/core/domain/catalog"
	"github.com/avatarctic/storefront/internal/core/domain/customer"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusFulfilled Status = "fulfilled"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
)

type Order struct {
	ID              string           `json:"id"`
	Number          string           `json:"number"`
	Status          Status           `json:"status"`
	Email           string           `json:"email"`
	Lines           []Line           `json:"lines"`
	ShippingAddress customer.Address `json:"shipping_address"`
	BillingAddress  customer.Address `json:"billing_address"`
	ShippingMethod  string           `json:"shipping_method"`
	PaymentMethod   string           `json:"payment_method"`
	PaymentURL      string           `json:"payment_url,omitempty"`
	Subtotal        catalog.Money    `json:"subtotal"`
	Discount        catalog.Money    `json:"discount_total"`
	Shipping        catalog.Money    `json:"shipping_total"`
	Tax             catalog.Money    `json:"tax_total"`
	Total           catalog.Money    `json:"total"`
	PlacedAt        time.Time        `json:"placed_at"`
}

type Line struct {
	ProductID string        `json:"product_id"`
	Name      string        `json:"name"`
	SKU       string        `json:"sku"`
	Quantity  int           `json:"quantity"`
	UnitPrice catalog.Money `json:"unit_price"`
	Total     catalog.Money `json:"total"`
}

type ShippingMethod struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Price       catalog.Money `json:"price"`
}

type PaymentMethod struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CheckoutOptions lists what the customer can choose from on the checkout page.
type CheckoutOptions struct {
	ShippingMethods []ShippingMethod `json:"shipping_methods"`
	PaymentMethods  []PaymentMethod  `json:"payment_methods"`
}

type CheckoutRequest struct {
	Email            string            `json:"email" form:"email" validate:"required,email"`
	ShippingAddress  customer.Address  `json:"shipping_address"`
	BillingAddress   *customer.Address `json:"billing_address,omitempty"`
	ShippingMethodID string            `json:"shipping_method_id" form:"shipping_method_id" validate:"required"`
	PaymentMethodID  string            `json:"payment_method_id" form:"payment_method_id" validate:"required"`
	Notes            string            `json:"notes,omitempty" form:"notes" validate:"max=1000"`
}

type OrderPage struct {
	Items []*Order         `json:"data"`
	Meta  catalog.PageMeta `json:"meta"`
}
