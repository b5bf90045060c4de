package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	store := s.echo.Group("")
	store.Use(s.middleware.Site.ResolveSite())
	store.Use(s.middleware.Session.LoadSession())

	store.GET("/robots.txt", s.robots)
	store.GET("/sitemap.xml", s.sitemapIndex)
	store.GET("/sitemaps/:file", s.sitemapSection)

	store.GET("/", s.home)
	store.GET("/products", s.listProducts)
	store.GET("/products/:slug", s.showProduct)
	store.GET("/categories/:slug", s.showCategory)
	store.GET("/brands", s.listBrands)
	store.GET("/brands/:slug", s.showBrand)
	store.GET("/promotions", s.listPromotions)

	store.GET("/blog", s.listBlogPosts)
	store.GET("/blog/:slug", s.showBlogPost)
	store.GET("/solutions", s.listSolutions)
	store.GET("/solutions/:slug", s.showSolution)
	store.GET("/pages/:slug", s.showPage)

	store.GET("/cart", s.showCart)
	store.POST("/cart", s.cartAction)

	store.GET("/checkout", s.showCheckout)
	store.POST("/checkout", s.placeOrder, s.middleware.RateLimit.Limit("checkout"))
	store.GET("/checkout/confirmation/:id", s.showConfirmation)

	store.GET("/contact", s.showContact)
	store.POST("/contact", s.submitContact, s.middleware.RateLimit.Limit("contact"))

	account := store.Group("/account")
	account.GET("/login", s.showLogin)
	account.POST("/login", s.login, s.middleware.RateLimit.Limit("login"))
	account.GET("/register", s.showRegister)
	account.POST("/register", s.register, s.middleware.RateLimit.Limit("register"))
	account.GET("/forgot-password", s.showForgotPassword)
	account.POST("/forgot-password", s.forgotPassword, s.middleware.RateLimit.Limit("forgot-password"))
	account.POST("/logout", s.logout)

	protected := account.Group("")
	protected.Use(s.middleware.Auth.RequireCustomer())
	protected.GET("", s.showAccount)
	protected.POST("", s.updateProfile)
	protected.GET("/orders/:id", s.showOrder)
}
