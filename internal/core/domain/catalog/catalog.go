package catalog

import (
	"net/url"
	"strconv"
	"time"
)

type Product struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	SKU         string    `json:"sku"`
	Price       Money     `json:"price"`
	CompareAt   *Money    `json:"compare_at_price,omitempty"`
	Images      []Image   `json:"images"`
	Variants    []Variant `json:"variants"`
	Brand       *Brand    `json:"brand,omitempty"`
	Categories  []string  `json:"categories"`
	InStock     bool      `json:"in_stock"`
	Featured    bool      `json:"featured"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PrimaryImage returns the first image or nil when the product has none.
func (p *Product) PrimaryImage() *Image {
	if len(p.Images) == 0 {
		return nil
	}
	return &p.Images[0]
}

// OnSale reports whether a compare-at price above the current price is set.
func (p *Product) OnSale() bool {
	return p.CompareAt != nil && p.CompareAt.Amount > p.Price.Amount
}

type Variant struct {
	ID      string            `json:"id"`
	SKU     string            `json:"sku"`
	Name    string            `json:"name"`
	Price   Money             `json:"price"`
	InStock bool              `json:"in_stock"`
	Options map[string]string `json:"options,omitempty"`
}

type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Money is an amount in minor units (cents) with its ISO currency code.
type Money struct {
	Amount    int64  `json:"amount"`
	Currency  string `json:"currency"`
	Formatted string `json:"formatted"`
}

type Category struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ParentID    *string   `json:"parent_id,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Brand struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	LogoURL     string    `json:"logo_url"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductSort string

const (
	SortRelevance ProductSort = ""
	SortNewest    ProductSort = "newest"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
	SortName      ProductSort = "name"
)

// ProductQuery holds the listing filters accepted by the products endpoint.
type ProductQuery struct {
	Search   string      `query:"q"`
	Category string      `query:"category"`
	Brand    string      `query:"brand"`
	Sort     ProductSort `query:"sort"`
	Featured bool        `query:"featured"`
	Page     int         `query:"page"`
	PerPage  int         `query:"per_page"`
}

// Values encodes the query for the upstream API, omitting zero fields.
func (q ProductQuery) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Brand != "" {
		v.Set("brand", q.Brand)
	}
	if q.Sort != SortRelevance {
		v.Set("sort", string(q.Sort))
	}
	if q.Featured {
		v.Set("featured", "true")
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(q.PerPage))
	}
	return v
}

type PageMeta struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// TotalPages returns the number of pages implied by Total and PerPage.
func (m PageMeta) TotalPages() int {
	if m.PerPage <= 0 {
		return 1
	}
	pages := (m.Total + m.PerPage - 1) / m.PerPage
	if pages < 1 {
		return 1
	}
	return pages
}

func (m PageMeta) HasNext() bool { return m.Page < m.TotalPages() }
func (m PageMeta) HasPrev() bool { return m.Page > 1 }

type ProductPage struct {
	Items []*Product `json:"data"`
	Meta  PageMeta   `json:"meta"`
}
