package mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/avatarctic/storefront/internal/core/domain/cart"
	"github.com/avatarctic/storefront/internal/core/domain/catalog"
	"github.com/avatarctic/storefront/internal/core/domain/content"
	"github.com/avatarctic/storefront/internal/core/domain/customer"
	"github.com/avatarctic/storefront/internal/core/domain/order"
	"github.com/avatarctic/storefront/internal/core/domain/promotion"
	"github.com/avatarctic/storefront/internal/core/ports"
)

// APICall records one request made through APIClientMock.
type APICall struct {
	Method string
	Path   string
	Body   any
}

// APIClientMock is a lightweight mock for ports.APIClient. Unset functions
// answer 200 with an empty body.
type APIClientMock struct {
	Site     string
	GetFn    func(ctx context.Context, path string, out any) (*ports.APIResponse, error)
	PostFn   func(ctx context.Context, path string, body, out any) (*ports.APIResponse, error)
	PutFn    func(ctx context.Context, path string, body, out any) (*ports.APIResponse, error)
	PatchFn  func(ctx context.Context, path string, body, out any) (*ports.APIResponse, error)
	DeleteFn func(ctx context.Context, path string, out any) (*ports.APIResponse, error)

	mu    sync.Mutex
	calls []APICall
}

func (m *APIClientMock) record(method, path string, body any) {
	m.mu.Lock()
	m.calls = append(m.calls, APICall{Method: method, Path: path, Body: body})
	m.mu.Unlock()
}

// Calls returns a copy of the recorded calls.
func (m *APIClientMock) Calls() []APICall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]APICall, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *APIClientMock) SiteCode() string {
	if m.Site == "" {
		return "default"
	}
	return m.Site
}

func (m *APIClientMock) Get(ctx context.Context, path string, out any) (*ports.APIResponse, error) {
	m.record(http.MethodGet, path, nil)
	if m.GetFn != nil {
		return m.GetFn(ctx, path, out)
	}
	return OK(), nil
}

func (m *APIClientMock) Post(ctx context.Context, path string, body, out any) (*ports.APIResponse, error) {
	m.record(http.MethodPost, path, body)
	if m.PostFn != nil {
		return m.PostFn(ctx, path, body, out)
	}
	return OK(), nil
}

func (m *APIClientMock) Put(ctx context.Context, path string, body, out any) (*ports.APIResponse, error) {
	m.record(http.MethodPut, path, body)
	if m.PutFn != nil {
		return m.PutFn(ctx, path, body, out)
	}
	return OK(), nil
}

func (m *APIClientMock) Patch(ctx context.Context, path string, body, out any) (*ports.APIResponse, error) {
	m.record(http.MethodPatch, path, body)
	if m.PatchFn != nil {
		return m.PatchFn(ctx, path, body, out)
	}
	return OK(), nil
}

func (m *APIClientMock) Delete(ctx context.Context, path string, out any) (*ports.APIResponse, error) {
	m.record(http.MethodDelete, path, nil)
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, path, out)
	}
	return OK(), nil
}

// OK is a bare 200 response.
func OK() *ports.APIResponse { return &ports.APIResponse{Status: http.StatusOK, Header: http.Header{}} }

// Fill decodes raw JSON into out the way the real client decodes a response body.
func Fill(out any, raw string) (*ports.APIResponse, error) {
	if out != nil {
		if err := json.Unmarshal([]byte(raw), out); err != nil {
			return nil, fmt.Errorf("mock fill: %w", err)
		}
	}
	return OK(), nil
}

// Fail builds the response/error pair for an upstream failure.
func Fail(status int, msg string) (*ports.APIResponse, error) {
	return &ports.APIResponse{Status: status, Header: http.Header{}}, &ports.APIError{Status: status, Message: msg}
}

// CatalogServiceMock is a lightweight mock for ports.CatalogService
type CatalogServiceMock struct {
	ListProductsFn   func(ctx context.Context, api ports.APIClient, q catalog.ProductQuery) (*catalog.ProductPage, error)
	GetProductFn     func(ctx context.Context, api ports.APIClient, slug string) (*catalog.Product, error)
	ListCategoriesFn func(ctx context.Context, api ports.APIClient) ([]*catalog.Category, error)
	GetCategoryFn    func(ctx context.Context, api ports.APIClient, slug string) (*catalog.Category, error)
	ListBrandsFn     func(ctx context.Context, api ports.APIClient) ([]*catalog.Brand, error)
	GetBrandFn       func(ctx context.Context, api ports.APIClient, slug string) (*catalog.Brand, error)
}

func (m *CatalogServiceMock) ListProducts(ctx context.Context, api ports.APIClient, q catalog.ProductQuery) (*catalog.ProductPage, error) {
	if m.ListProductsFn != nil {
		return m.ListProductsFn(ctx, api, q)
	}
	return &catalog.ProductPage{Meta: catalog.PageMeta{Page: 1, PerPage: 24}}, nil
}
func (m *CatalogServiceMock) GetProduct(ctx context.Context, api ports.APIClient, slug string) (*catalog.Product, error) {
	if m.GetProductFn != nil {
		return m.GetProductFn(ctx, api, slug)
	}
	return &catalog.Product{Slug: slug, Name: slug}, nil
}
func (m *CatalogServiceMock) ListCategories(ctx context.Context, api ports.APIClient) ([]*catalog.Category, error) {
	if m.ListCategoriesFn != nil {
		return m.ListCategoriesFn(ctx, api)
	}
	return nil, nil
}
func (m *CatalogServiceMock) GetCategory(ctx context.Context, api ports.APIClient, slug string) (*catalog.Category, error) {
	if m.GetCategoryFn != nil {
		return m.GetCategoryFn(ctx, api, slug)
	}
	return &catalog.Category{Slug: slug, Name: slug}, nil
}
func (m *CatalogServiceMock) ListBrands(ctx context.Context, api ports.APIClient) ([]*catalog.Brand, error) {
	if m.ListBrandsFn != nil {
		return m.ListBrandsFn(ctx, api)
	}
	return nil, nil
}
func (m *CatalogServiceMock) GetBrand(ctx context.Context, api ports.APIClient, slug string) (*catalog.Brand, error) {
	if m.GetBrandFn != nil {
		return m.GetBrandFn(ctx, api, slug)
	}
	return &catalog.Brand{Slug: slug, Name: slug}, nil
}

// PromotionServiceMock is a lightweight mock for ports.PromotionService
type PromotionServiceMock struct {
	ListActiveFn func(ctx context.Context, api ports.APIClient) ([]*promotion.Promotion, error)
}

func (m *PromotionServiceMock) ListActive(ctx context.Context, api ports.APIClient) ([]*promotion.Promotion, error) {
	if m.ListActiveFn != nil {
		return m.ListActiveFn(ctx, api)
	}
	return nil, nil
}

// CartServiceMock is a lightweight mock for ports.CartService
type CartServiceMock struct {
	GetCartFn        func(ctx context.Context, api ports.APIClient) (*cart.Cart, error)
	AddItemFn        func(ctx context.Context, api ports.APIClient, req *cart.AddItemRequest) (*cart.Cart, error)
	UpdateItemFn     func(ctx context.Context, api ports.APIClient, req *cart.UpdateItemRequest) (*cart.Cart, error)
	RemoveItemFn     func(ctx context.Context, api ports.APIClient, itemID string) (*cart.Cart, error)
	ApplyDiscountFn  func(ctx context.Context, api ports.APIClient, req *cart.DiscountRequest) (*cart.Cart, error)
	RemoveDiscountFn func(ctx context.Context, api ports.APIClient, code string) (*cart.Cart, error)
}

func (m *CartServiceMock) GetCart(ctx context.Context, api ports.APIClient) (*cart.Cart, error) {
	if m.GetCartFn != nil {
		return m.GetCartFn(ctx, api)
	}
	return &cart.Cart{}, nil
}
func (m *CartServiceMock) AddItem(ctx context.Context, api ports.APIClient, req *cart.AddItemRequest) (*cart.Cart, error) {
	if m.AddItemFn != nil {
		return m.AddItemFn(ctx, api, req)
	}
	return &cart.Cart{}, nil
}
func (m *CartServiceMock) UpdateItem(ctx context.Context, api ports.APIClient, req *cart.UpdateItemRequest) (*cart.Cart, error) {
	if m.UpdateItemFn != nil {
		return m.UpdateItemFn(ctx, api, req)
	}
	return &cart.Cart{}, nil
}
func (m *CartServiceMock) RemoveItem(ctx context.Context, api ports.APIClient, itemID string) (*cart.Cart, error) {
	if m.RemoveItemFn != nil {
		return m.RemoveItemFn(ctx, api, itemID)
	}
	return &cart.Cart{}, nil
}
func (m *CartServiceMock) ApplyDiscount(ctx context.Context, api ports.APIClient, req *cart.DiscountRequest) (*cart.Cart, error) {
	if m.ApplyDiscountFn != nil {
		return m.ApplyDiscountFn(ctx, api, req)
	}
	return &cart.Cart{}, nil
}
func (m *CartServiceMock) RemoveDiscount(ctx context.Context, api ports.APIClient, code string) (*cart.Cart, error) {
	if m.RemoveDiscountFn != nil {
		return m.RemoveDiscountFn(ctx, api, code)
	}
	return &cart.Cart{}, nil
}

// ContentServiceMock is a lightweight mock for ports.ContentService
type ContentServiceMock struct {
	ListBlogPostsFn func(ctx context.Context, api ports.APIClient, page, perPage int) (*ports.BlogPage, error)
	GetBlogPostFn   func(ctx context.Context, api ports.APIClient, slug string) (*content.BlogPost, error)
	ListPagesFn     func(ctx context.Context, api ports.APIClient) ([]*content.Page, error)
	GetPageFn       func(ctx context.Context, api ports.APIClient, slug string) (*content.Page, error)
	ListSolutionsFn func(ctx context.Context, api ports.APIClient) ([]*content.Solution, error)
	GetSolutionFn   func(ctx context.Context, api ports.APIClient, slug string) (*content.Solution, error)
}

func (m *ContentServiceMock) ListBlogPosts(ctx context.Context, api ports.APIClient, page, perPage int) (*ports.BlogPage, error) {
	if m.ListBlogPostsFn != nil {
		return m.ListBlogPostsFn(ctx, api, page, perPage)
	}
	return &ports.BlogPage{Meta: catalog.PageMeta{Page: page, PerPage: perPage}}, nil
}
func (m *ContentServiceMock) GetBlogPost(ctx context.Context, api ports.APIClient, slug string) (*content.BlogPost, error) {
	if m.GetBlogPostFn != nil {
		return m.GetBlogPostFn(ctx, api, slug)
	}
	return &content.BlogPost{Slug: slug, Title: slug}, nil
}
func (m *ContentServiceMock) ListPages(ctx context.Context, api ports.APIClient) ([]*content.Page, error) {
	if m.ListPagesFn != nil {
		return m.ListPagesFn(ctx, api)
	}
	return nil, nil
}
func (m *ContentServiceMock) GetPage(ctx context.Context, api ports.APIClient, slug string) (*content.Page, error) {
	if m.GetPageFn != nil {
		return m.GetPageFn(ctx, api, slug)
	}
	return &content.Page{Slug: slug, Title: slug}, nil
}
func (m *ContentServiceMock) ListSolutions(ctx context.Context, api ports.APIClient) ([]*content.Solution, error) {
	if m.ListSolutionsFn != nil {
		return m.ListSolutionsFn(ctx, api)
	}
	return nil, nil
}
func (m *ContentServiceMock) GetSolution(ctx context.Context, api ports.APIClient, slug string) (*content.Solution, error) {
	if m.GetSolutionFn != nil {
		return m.GetSolutionFn(ctx, api, slug)
	}
	return &content.Solution{Slug: slug, Title: slug}, nil
}

// CustomerServiceMock is a lightweight mock for ports.CustomerService
type CustomerServiceMock struct {
	LoginFn          func(ctx context.Context, api ports.APIClient, req *customer.LoginRequest) (*customer.AuthResponse, error)
	RegisterFn       func(ctx context.Context, api ports.APIClient, req *customer.RegisterRequest) (*customer.AuthResponse, error)
	LogoutFn         func(ctx context.Context, api ports.APIClient) error
	GetProfileFn     func(ctx context.Context, api ports.APIClient) (*customer.Customer, error)
	UpdateProfileFn  func(ctx context.Context, api ports.APIClient, req *customer.UpdateProfileRequest) (*customer.Customer, error)
	ListOrdersFn     func(ctx context.Context, api ports.APIClient, page int) (*order.OrderPage, error)
	GetOrderFn       func(ctx context.Context, api ports.APIClient, id string) (*order.Order, error)
	ForgotPasswordFn func(ctx context.Context, api ports.APIClient, req *customer.ForgotPasswordRequest) error
}

func (m *CustomerServiceMock) Login(ctx context.Context, api ports.APIClient, req *customer.LoginRequest) (*customer.AuthResponse, error) {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, api, req)
	}
	return nil, &ports.APIError{Status: http.StatusUnauthorized, Message: "Invalid credentials"}
}
func (m *CustomerServiceMock) Register(ctx context.Context, api ports.APIClient, req *customer.RegisterRequest) (*customer.AuthResponse, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, api, req)
	}
	return nil, fmt.Errorf("not implemented")
}
func (m *CustomerServiceMock) Logout(ctx context.Context, api ports.APIClient) error {
	if m.LogoutFn != nil {
		return m.LogoutFn(ctx, api)
	}
	return nil
}
func (m *CustomerServiceMock) GetProfile(ctx context.Context, api ports.APIClient) (*customer.Customer, error) {
	if m.GetProfileFn != nil {
		return m.GetProfileFn(ctx, api)
	}
	return &customer.Customer{}, nil
}
func (m *CustomerServiceMock) UpdateProfile(ctx context.Context, api ports.APIClient, req *customer.UpdateProfileRequest) (*customer.Customer, error) {
	if m.UpdateProfileFn != nil {
		return m.UpdateProfileFn(ctx, api, req)
	}
	return &customer.Customer{FirstName: req.FirstName, LastName: req.LastName}, nil
}
func (m *CustomerServiceMock) ListOrders(ctx context.Context, api ports.APIClient, page int) (*order.OrderPage, error) {
	if m.ListOrdersFn != nil {
		return m.ListOrdersFn(ctx, api, page)
	}
	return &order.OrderPage{Meta: catalog.PageMeta{Page: page}}, nil
}
func (m *CustomerServiceMock) GetOrder(ctx context.Context, api ports.APIClient, id string) (*order.Order, error) {
	if m.GetOrderFn != nil {
		return m.GetOrderFn(ctx, api, id)
	}
	return &order.Order{ID: id}, nil
}
func (m *CustomerServiceMock) ForgotPassword(ctx context.Context, api ports.APIClient, req *customer.ForgotPasswordRequest) error {
	if m.ForgotPasswordFn != nil {
		return m.ForgotPasswordFn(ctx, api, req)
	}
	return nil
}

// CheckoutServiceMock is a lightweight mock for ports.CheckoutService
type CheckoutServiceMock struct {
	GetOptionsFn func(ctx context.Context, api ports.APIClient) (*order.CheckoutOptions, error)
	PlaceOrderFn func(ctx context.Context, api ports.APIClient, req *order.CheckoutRequest) (*order.Order, error)
	GetOrderFn   func(ctx context.Context, api ports.APIClient, id string) (*order.Order, error)
}

func (m *CheckoutServiceMock) GetOptions(ctx context.Context, api ports.APIClient) (*order.CheckoutOptions, error) {
	if m.GetOptionsFn != nil {
		return m.GetOptionsFn(ctx, api)
	}
	return &order.CheckoutOptions{}, nil
}
func (m *CheckoutServiceMock) PlaceOrder(ctx context.Context, api ports.APIClient, req *order.CheckoutRequest) (*order.Order, error) {
	if m.PlaceOrderFn != nil {
		return m.PlaceOrderFn(ctx, api, req)
	}
	return &order.Order{ID: "order-1", Number: "1001"}, nil
}
func (m *CheckoutServiceMock) GetOrder(ctx context.Context, api ports.APIClient, id string) (*order.Order, error) {
	if m.GetOrderFn != nil {
		return m.GetOrderFn(ctx, api, id)
	}
	return &order.Order{ID: id}, nil
}

// SitemapServiceMock is a lightweight mock for ports.SitemapService
type SitemapServiceMock struct {
	IndexFn      func(ctx context.Context, api ports.APIClient, siteCode, baseURL string) ([]byte, error)
	SectionFn    func(ctx context.Context, api ports.APIClient, siteCode, baseURL, section string) ([]byte, error)
	InvalidateFn func(ctx context.Context, siteCode string) error
}

func (m *SitemapServiceMock) Index(ctx context.Context, api ports.APIClient, siteCode, baseURL string) ([]byte, error) {
	if m.IndexFn != nil {
		return m.IndexFn(ctx, api, siteCode, baseURL)
	}
	return []byte("<sitemapindex/>"), nil
}
func (m *SitemapServiceMock) Section(ctx context.Context, api ports.APIClient, siteCode, baseURL, section string) ([]byte, error) {
	if m.SectionFn != nil {
		return m.SectionFn(ctx, api, siteCode, baseURL, section)
	}
	return []byte("<urlset/>"), nil
}
func (m *SitemapServiceMock) Invalidate(ctx context.Context, siteCode string) error {
	if m.InvalidateFn != nil {
		return m.InvalidateFn(ctx, siteCode)
	}
	return nil
}

// EmailServiceMock is a lightweight mock for ports.EmailService
type EmailServiceMock struct {
	SendContactMessageFn func(ctx context.Context, siteName string, msg *ports.ContactMessage) error
}

func (m *EmailServiceMock) SendContactMessage(ctx context.Context, siteName string, msg *ports.ContactMessage) error {
	if m.SendContactMessageFn != nil {
		return m.SendContactMessageFn(ctx, siteName, msg)
	}
	return nil
}

// RateLimiterServiceMock is a lightweight mock for ports.RateLimiterService
type RateLimiterServiceMock struct {
	AllowFn func(ctx context.Context, key string) (bool, int, int, time.Time, error)
}

func (m *RateLimiterServiceMock) Allow(ctx context.Context, key string) (bool, int, int, time.Time, error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, key)
	}
	return true, 10, 10, time.Now().Add(time.Minute), nil
}

// RateLimitRepositoryMock is a lightweight mock for ports.RateLimitRepository
type RateLimitRepositoryMock struct {
	IncrementWindowFn func(ctx context.Context, key string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error)
}

func (m *RateLimitRepositoryMock) IncrementWindow(ctx context.Context, key string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	if m.IncrementWindowFn != nil {
		return m.IncrementWindowFn(ctx, key, window, keyPrefix, ttl)
	}
	return 1, time.Now().Truncate(window), nil
}

// HealthCheckerMock is a lightweight mock for ports.HealthChecker
type HealthCheckerMock struct {
	NameValue string
	CheckFn   func(ctx context.Context) error
}

func (m *HealthCheckerMock) Name() string { return m.NameValue }
func (m *HealthCheckerMock) Check(ctx context.Context) error {
	if m.CheckFn != nil {
		return m.CheckFn(ctx)
	}
	return nil
}

// CacheMock is a lightweight mock for ports.Cache that fails on demand.
type CacheMock struct {
	GetFn    func(ctx context.Context, key string) ([]byte, bool, error)
	SetFn    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFn func(ctx context.Context, key string) error
	ClearFn  func(ctx context.Context) error
}

func (m *CacheMock) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	return nil, false, nil
}
func (m *CacheMock) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFn != nil {
		return m.SetFn(ctx, key, value, ttl)
	}
	return nil
}
func (m *CacheMock) Delete(ctx context.Context, key string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, key)
	}
	return nil
}
func (m *CacheMock) Clear(ctx context.Context) error {
	if m.ClearFn != nil {
		return m.ClearFn(ctx)
	}
	return nil
}

// APIClientFactoryMock hands out Client for every identity and records them.
type APIClientFactoryMock struct {
	Client *APIClientMock

	mu         sync.Mutex
	identities []ports.Identity
}

func (m *APIClientFactoryMock) ForIdentity(id ports.Identity) ports.APIClient {
	m.mu.Lock()
	m.identities = append(m.identities, id)
	m.mu.Unlock()
	if m.Client == nil {
		return &APIClientMock{Site: id.SiteCode}
	}
	return m.Client
}

// Identities returns a copy of every identity a client was built for.
func (m *APIClientFactoryMock) Identities() []ports.Identity {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.Identity, len(m.identities))
	copy(out, m.identities)
	return out
}
