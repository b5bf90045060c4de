package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/storefront/internal/core/ports"
	customMiddleware "github.com/avatarctic/storefront/internal/infrastructure/httpserver/middleware"
	"github.com/avatarctic/storefront/internal/infrastructure/session"
)

type ServerConfig struct {
	Host           string
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	TLSCertFile    string
	TLSKeyFile     string
	AllowedOrigins []string
	Environment    string
	Version        string
}

type ServerDeps struct {
	Sites              ports.SiteResolver
	Sessions           *session.Manager
	APIFactory         ports.APIClientFactory
	CatalogService     ports.CatalogService
	PromotionService   ports.PromotionService
	CartService        ports.CartService
	ContentService     ports.ContentService
	CustomerService    ports.CustomerService
	CheckoutService    ports.CheckoutService
	SitemapService     ports.SitemapService
	EmailService       ports.EmailService
	RateLimiterService ports.RateLimiterService
	HealthCheckers     []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	sites          ports.SiteResolver
	apiFactory     ports.APIClientFactory
	catalogSvc     ports.CatalogService
	promotionSvc   ports.PromotionService
	cartSvc        ports.CartService
	contentSvc     ports.ContentService
	customerSvc    ports.CustomerService
	checkoutSvc    ports.CheckoutService
	sitemapSvc     ports.SitemapService
	emailSvc       ports.EmailService
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	renderer, err := NewTemplateRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = NewValidator()

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		sites:          deps.Sites,
		apiFactory:     deps.APIFactory,
		catalogSvc:     deps.CatalogService,
		promotionSvc:   deps.PromotionService,
		cartSvc:        deps.CartService,
		contentSvc:     deps.ContentService,
		customerSvc:    deps.CustomerService,
		checkoutSvc:    deps.CheckoutService,
		sitemapSvc:     deps.SitemapService,
		emailSvc:       deps.EmailService,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			deps.Sites,
			deps.Sessions,
			deps.APIFactory,
			deps.RateLimiterService,
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}
	e.HTTPErrorHandler = server.errorHandler

	server.setupMiddleware()
	server.setupRoutes()

	return server, nil
}
